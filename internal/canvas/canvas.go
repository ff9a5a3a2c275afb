// Package canvas owns the raster of a drawing session. The button chrome is
// rendered once per process into a template; each session canvas starts as
// a copy of it and then accumulates strokes incrementally.
package canvas

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"

	"GestureBoard/internal/layout"
	"GestureBoard/internal/state"
)

const (
	// LineWidth is the pen width of strokes and button borders.
	LineWidth = 2.0

	labelSize     = 13.0
	bytesPerPixel = 4
)

// Background is the canvas ground color.
var Background = gg.White

var (
	templateOnce sync.Once
	templatePix  []uint8
	templateErr  error
)

// Template returns the pixels of a freshly initialized canvas: white
// ground, five button borders and their labels. The slice is shared and
// must not be modified.
func Template() ([]uint8, error) {
	templateOnce.Do(func() {
		templatePix, templateErr = renderTemplate()
	})
	return templatePix, templateErr
}

func renderTemplate() ([]uint8, error) {
	source, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("canvas: load label font: %w", err)
	}
	defer source.Close()

	pm := gg.NewPixmap(layout.Width, layout.Height)
	dc := gg.NewContext(layout.Width, layout.Height, gg.WithPixmap(pm))
	defer dc.Close()

	dc.ClearWithColor(Background)
	dc.SetLineWidth(LineWidth)
	for _, b := range layout.Buttons {
		r := b.Bounds
		dc.SetColor(b.Border)
		dc.DrawRectangle(float64(r.X0), float64(r.Y0), float64(r.X1-r.X0), float64(r.Y1-r.Y0))
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("canvas: draw %s button: %w", b.Zone, err)
		}
	}

	dc.SetFont(source.Face(labelSize))
	dc.SetColor(layout.LabelColor)
	for _, b := range layout.Buttons {
		dc.DrawString(b.Label, float64(b.LabelX), layout.LabelBaseline)
	}

	pix := make([]uint8, len(pm.Data()))
	copy(pix, pm.Data())
	return pix, nil
}

// Canvas is the persistent pixel buffer of one session.
type Canvas struct {
	pm *gg.Pixmap
	dc *gg.Context
}

// New allocates a canvas initialized from the template.
func New() (*Canvas, error) {
	if _, err := Template(); err != nil {
		return nil, err
	}
	pm := gg.NewPixmap(layout.Width, layout.Height)
	c := &Canvas{
		pm: pm,
		dc: gg.NewContext(layout.Width, layout.Height, gg.WithPixmap(pm)),
	}
	c.Reset()
	return c, nil
}

// Reset restores the canvas to the initialized template.
func (c *Canvas) Reset() {
	pix, _ := Template()
	copy(c.pm.Data(), pix)
}

// Pixels exposes the raw RGBA buffer, row-major, 4 bytes per pixel.
func (c *Canvas) Pixels() []uint8 {
	return c.pm.Data()
}

// ClearDrawingArea paints every row from layout.DrawTop down back to the
// background, leaving the button chrome untouched.
func (c *Canvas) ClearDrawingArea() {
	data := c.pm.Data()
	for i := layout.DrawTop * layout.Width * bytesPerPixel; i < len(data); i++ {
		data[i] = 0xff
	}
}

// Redraw strokes every segment of every track onto the canvas in the
// track's ink. Segments never join the end of one stroke to the start of
// the next.
func (c *Canvas) Redraw(ts *state.Tracks) error {
	c.dc.SetLineWidth(LineWidth)
	c.dc.SetLineCap(gg.LineCapRound)
	for _, col := range state.Colors() {
		tr := ts.Track(col)
		segments := 0
		for i := 0; i < tr.Len(); i++ {
			s := tr.Stroke(i)
			for k := 1; k < s.Len(); k++ {
				a, b := s.At(k-1), s.At(k)
				c.dc.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
				segments++
			}
		}
		if segments == 0 {
			continue
		}
		c.dc.SetColor(col.Ink())
		if err := c.dc.Stroke(); err != nil {
			return fmt.Errorf("canvas: stroke %s track: %w", col, err)
		}
	}
	return nil
}

// EncodeJPEG returns the canvas as a JPEG image.
func (c *Canvas) EncodeJPEG(quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodeJPEG(&buf, quality); err != nil {
		return nil, fmt.Errorf("canvas: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNG returns the canvas as a lossless PNG image.
func (c *Canvas) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("canvas: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
