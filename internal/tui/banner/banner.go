// Package banner renders text as large block art using half-block characters.
package banner

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// threshold above which a pixel counts as "on".
const threshold = 40

// maxCached bounds the render cache. Resizing the terminal produces a new key
// per size, so the cache is dropped wholesale once it fills up.
const maxCached = 64

var systemFonts = []string{
	// macOS
	"/System/Library/Fonts/Helvetica.ttc",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/opentype/noto/NotoSans-Bold.ttf",
	// Windows
	"C:\\Windows\\Fonts\\arialbd.ttf",
}

// Renderer draws strings with one font face and caches the results.
type Renderer struct {
	face font.Face

	mu    sync.Mutex
	cache map[string]string
}

// New returns a renderer using the first system font found, falling back to
// the bundled Go Bold face.
func New() *Renderer {
	for _, path := range systemFonts {
		if face, err := loadFace(path); err == nil {
			return NewWithFace(face)
		}
	}
	face, err := GoBold()
	if err != nil {
		return &Renderer{cache: make(map[string]string)}
	}
	return NewWithFace(face)
}

// NewWithFace returns a renderer drawing with face.
func NewWithFace(face font.Face) *Renderer {
	return &Renderer{face: face, cache: make(map[string]string)}
}

// GoBold parses the bundled Go Bold TrueType font.
func GoBold() (font.Face, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing go bold: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: 64, DPI: 72}), nil
}

func loadFace(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	opts := &opentype.FaceOptions{Size: 64, DPI: 72}

	// Try parsing as font collection first
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			return opentype.NewFace(fnt, opts)
		}
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, opts)
}

// Available reports whether a font face was loaded.
func (r *Renderer) Available() bool {
	return r != nil && r.face != nil
}

// Render draws text into a cols x rows cell block. Each cell holds two
// vertical pixels. It returns "" when no face is loaded or the size is empty.
func (r *Renderer) Render(text string, cols, rows int) string {
	if !r.Available() || strings.TrimSpace(text) == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	key := fmt.Sprintf("%s\x00%d\x00%d", text, cols, rows)
	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	rendered := r.render(text, cols, rows)
	if len(r.cache) >= maxCached {
		clear(r.cache)
	}
	r.cache[key] = rendered
	return rendered
}

// Cached returns the number of renders held in the cache.
func (r *Renderer) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

func (r *Renderer) render(text string, cols, rows int) string {
	metrics := r.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	padding := 4
	srcWidth := font.MeasureString(r.face, text).Ceil() + padding*2
	srcHeight := ascent + descent + padding*2

	srcImg := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(srcImg, srcImg.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  srcImg,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.P(padding, padding+ascent),
	}
	d.DrawString(text)

	// rows*2 because half-blocks
	scaled := scaleDown(srcImg, cols, rows*2)
	return toHalfBlocks(scaled, cols, rows)
}

// Fit returns the column count that keeps the glyph aspect ratio for rows
// text rows, capped at maxCols.
func (r *Renderer) Fit(text string, rows, maxCols int) int {
	if !r.Available() || rows <= 0 {
		return 0
	}
	metrics := r.face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil() + 8
	width := font.MeasureString(r.face, text).Ceil() + 8
	// a terminal cell is about twice as tall as wide; two pixels per cell row
	cols := width * rows * 2 / height
	if cols > maxCols {
		cols = maxCols
	}
	return cols
}

// scaleDown scales a grayscale image using area averaging
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := max(int(float64(dx+1)*xRatio), sx1+1)
			sy2 := max(int(float64(dy+1)*yRatio), sy1+1)
			sx2 = min(sx2, srcWidth)
			sy2 = min(sy2, srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

func toHalfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			topOn := img.GrayAt(col, row*2).Y > threshold
			bottomOn := img.GrayAt(col, row*2+1).Y > threshold

			switch {
			case topOn && bottomOn:
				b.WriteRune('█')
			case topOn:
				b.WriteRune('▀')
			case bottomOn:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}

	return b.String()
}
