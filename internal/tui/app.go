package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/rotext/internal/clipboard"
	"github.com/f3rmion/rotext/internal/cycler"
	"github.com/f3rmion/rotext/internal/tui/banner"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

const (
	frameInterval = 16 * time.Millisecond
	// settle keeps the outgoing text visible a little after the last unit
	// has entered.
	settle = 150 * time.Millisecond

	bannerRows = 4
	listSep    = "|"
)

// Settings configures the terminal adapter. Auto and Interval replace the
// cycler's own ticker: the adapter schedules rotation on the bubbletea event
// loop instead.
type Settings struct {
	Title      string
	Banner     bool
	Accent     string
	Background string
	Logger     *zap.Logger

	// Banner renderer; nil selects banner.New().
	Renderer *banner.Renderer
}

// Message types
type rotateMsg struct{ gen int }

type frameMsg struct{ gen int }

type clipboardMsg struct{ err error }

type clearStatusMsg struct{ gen int }

func rotateAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return rotateMsg{gen: gen}
	})
}

func nextFrame(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

func clearStatusAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{gen: gen}
	})
}

// Model is the bubbletea model showing one rotating text.
type Model struct {
	cycler   *cycler.Cycler
	renderer *banner.Renderer
	logger   *zap.Logger
	styles   Styles
	keys     keyMap
	help     help.Model
	input    textinput.Model
	title    string

	// Rotation
	auto     bool
	interval time.Duration
	paused   bool
	rotGen   int

	// Current transition
	units     []cycler.Unit
	outgoing  string
	direction cycler.Direction
	started   time.Time
	elapsed   time.Duration
	animating bool
	frameGen  int

	// Display
	showBanner bool
	showHelp   bool
	editing    bool
	status     string
	statusErr  bool
	statusGen  int
	width      int
	height     int

	now func() time.Time
}

// New builds the model and its cycler. opts.Auto selects rotation on the
// event loop; the cycler itself is built without a ticker.
func New(opts cycler.Options, settings Settings, extra ...cycler.Option) (Model, error) {
	logger := settings.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	auto, interval := opts.Auto, opts.RotationInterval
	opts.Auto = false
	if auto && interval <= 0 {
		return Model{}, &cycler.ConfigurationError{Field: "rotation_interval", Reason: "must be positive when auto is enabled"}
	}

	c, err := cycler.New(opts, append([]cycler.Option{cycler.WithLogger(logger)}, extra...)...)
	if err != nil {
		return Model{}, err
	}

	renderer := settings.Renderer
	if renderer == nil && settings.Banner {
		renderer = banner.New()
	}

	input := textinput.New()
	input.Prompt = "texts> "
	input.Placeholder = "first | second | third"
	input.CharLimit = 1024

	m := Model{
		cycler:     c,
		renderer:   renderer,
		logger:     logger,
		styles:     NewStyles(settings.Accent, settings.Background),
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      input,
		title:      settings.Title,
		auto:       auto,
		interval:   interval,
		showBanner: settings.Banner,
		now:        time.Now,
	}
	m.units = c.Units()
	m.started = m.now()
	m.animating = true
	return m, nil
}

// Cycler exposes the underlying cycler so hosts can drive it.
func (m Model) Cycler() *cycler.Cycler {
	return m.cycler
}

// Init starts the entry animation and, if enabled, the rotation timer.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{nextFrame(m.frameGen)}
	if m.auto {
		cmds = append(cmds, rotateAfter(m.interval, m.rotGen))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-12, 10)
		return m, nil

	case rotateMsg:
		// stale timers from before a pause are dropped
		if msg.gen != m.rotGen || m.paused {
			return m, nil
		}
		prev := m.cycler.Current()
		cmd := rotateAfter(m.interval, m.rotGen)
		if m.cycler.Tick() {
			frame := m.begin(prev)
			return m, tea.Batch(cmd, frame)
		}
		return m, cmd

	case frameMsg:
		if msg.gen != m.frameGen || !m.animating {
			return m, nil
		}
		m.elapsed = m.now().Sub(m.started)
		if m.elapsed >= cycler.MaxDelay(m.units)+settle {
			m.animating = false
			m.outgoing = ""
			return m, nil
		}
		return m, nextFrame(m.frameGen)

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("copy failed", zap.Error(msg.err))
			return m.setStatus("copy failed: "+msg.err.Error(), true)
		}
		return m.setStatus("copied", false)

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev := m.cycler.Current()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cycler.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		if m.cycler.Next() {
			cmd := m.begin(prev)
			return m, cmd
		}

	case key.Matches(msg, m.keys.Previous):
		if m.cycler.Previous() {
			cmd := m.begin(prev)
			return m, cmd
		}

	case key.Matches(msg, m.keys.Jump):
		index := int(msg.Runes[0] - '0')
		if m.cycler.JumpTo(index) {
			cmd := m.begin(prev)
			return m, cmd
		}

	case key.Matches(msg, m.keys.Reset):
		if m.cycler.Reset() {
			cmd := m.begin(prev)
			return m, cmd
		}

	case key.Matches(msg, m.keys.Pause):
		if !m.auto {
			return m.setStatus("auto rotation is off", false)
		}
		m.paused = !m.paused
		m.rotGen++
		if m.paused {
			return m.setStatus("paused", false)
		}
		var status tea.Cmd
		m, status = m.setStatus("resumed", false)
		return m, tea.Batch(status, rotateAfter(m.interval, m.rotGen))

	case key.Matches(msg, m.keys.Banner):
		if m.renderer == nil {
			m.renderer = banner.New()
		}
		if !m.renderer.Available() {
			return m.setStatus("no font available for banner", true)
		}
		m.showBanner = !m.showBanner

	case key.Matches(msg, m.keys.Copy):
		text := m.cycler.Current()
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return clipboardMsg{err: clipboard.Write(ctx, text)}
		}

	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.input.SetValue(strings.Join(m.cycler.Texts(), " "+listSep+" "))
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		texts := ParseList(m.input.Value())
		prev := m.cycler.Current()
		if err := m.cycler.SetTexts(texts); err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.editing = false
		m.input.Blur()
		frame := m.begin(prev)
		var status tea.Cmd
		m, status = m.setStatus(fmt.Sprintf("%d texts loaded", len(texts)), false)
		return m, tea.Batch(status, frame)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// begin restarts the entry animation for the cycler's current item. It
// mutates the receiver's copy, which callers return to bubbletea.
func (m *Model) begin(outgoing string) tea.Cmd {
	m.units = m.cycler.Units()
	m.outgoing = outgoing
	m.direction = m.cycler.Direction()
	m.started = m.now()
	m.elapsed = 0
	m.animating = true
	m.frameGen++
	return nextFrame(m.frameGen)
}

func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.status = text
	m.statusErr = isErr
	m.statusGen++
	return m, clearStatusAfter(2*time.Second, m.statusGen)
}

// ParseList splits an edited list on "|" and drops blank entries.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, listSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// View renders the UI
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var sections []string
	if m.title != "" {
		sections = append(sections, m.styles.Title.Render(m.title), "")
	}

	body := []string{}
	if m.animating && m.outgoing != "" && m.direction == cycler.Backward {
		body = append(body, m.styles.Outgoing.Render(m.outgoing))
	}
	body = append(body, m.renderUnits())
	if m.animating && m.outgoing != "" && m.direction == cycler.Forward {
		body = append(body, m.styles.Outgoing.Render(m.outgoing))
	}
	if m.showBanner && m.renderer.Available() {
		current := m.cycler.Current()
		cols := m.renderer.Fit(current, bannerRows, max(m.width-12, 20))
		if art := m.renderer.Render(current, cols, bannerRows); art != "" {
			body = append(body, "", m.styles.Banner.Render(art))
		}
	}

	sections = append(sections, m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Center, body...)))
	sections = append(sections, m.renderDots())

	if m.editing {
		sections = append(sections, m.styles.Input.Render(m.input.View()))
	}
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}
		sections = append(sections, style.Render(m.status))
	}
	sections = append(sections, m.styles.Help.Render(m.help.View(m.keys)))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// renderUnits shows the units whose delay has elapsed and keeps blank space
// of the same width for the rest, so the line does not reflow.
func (m Model) renderUnits() string {
	var b strings.Builder
	for _, u := range m.units {
		if u.Whitespace || !m.animating || m.elapsed >= u.Delay {
			b.WriteString(m.styles.Unit.Render(u.Text))
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.StringWidth(u.Text)))
	}
	return b.String()
}

// renderDots draws one marker per item with the active one highlighted.
func (m Model) renderDots() string {
	n, current := m.cycler.Len(), m.cycler.Index()
	dots := make([]string, n)
	for i := range dots {
		if i == current {
			dots[i] = m.styles.DotOn.Render("●")
		} else {
			dots[i] = m.styles.Dot.Render("○")
		}
	}
	state := ""
	switch {
	case !m.auto:
		state = "manual"
	case m.paused:
		state = "paused"
	default:
		state = "every " + m.interval.String()
	}
	return strings.Join(dots, " ") + "  " + m.styles.Dot.Render(state)
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Render(m.styles.Title.Render("rotext") + "\n\n" + h.View(m.keys) + "\n\n" +
			lipgloss.NewStyle().Foreground(ColorMuted).Italic(true).Render("Press any key to close"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
