package ui

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/google/go-cmp/cmp"

	"GestureBoard/internal/export"
	boardlayout "GestureBoard/internal/layout"
	"GestureBoard/internal/net"
)

type fakeConn struct {
	msgs    []net.NetworkMessage
	saves   []string
	saveErr error
}

func (c *fakeConn) Receive() (net.NetworkMessage, error) {
	if len(c.msgs) == 0 {
		return net.NetworkMessage{}, errors.New("connection closed")
	}
	m := c.msgs[0]
	c.msgs = c.msgs[1:]
	return m, nil
}

func (c *fakeConn) RequestSave(format string) error {
	c.saves = append(c.saves, format)
	return c.saveErr
}

func newTestViewer(t *testing.T, conn *fakeConn) *Viewer {
	t.Helper()
	test.NewTempApp(t)
	v := NewViewer(conn, nil)
	v.StatusTTL = 0
	v.dispatch = func(fn func()) { fn() }
	return v
}

func jpegFrame(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestViewerStartsBlank(t *testing.T) {
	v := newTestViewer(t, &fakeConn{})
	b := v.Frame().Bounds()
	if b.Dx() != boardlayout.Width || b.Dy() != boardlayout.Height {
		t.Errorf("blank frame = %v", b)
	}
	if v.Status() != "Connecting..." {
		t.Errorf("status = %q", v.Status())
	}
}

func TestViewerShowsFrames(t *testing.T) {
	v := newTestViewer(t, &fakeConn{})
	v.Handle(net.NetworkMessage{Type: net.TypeCanvasFrame, Seq: 1, Image: jpegFrame(t, 40, 30, color.White)})
	if got := v.Frame().Bounds().Dx(); got != 40 {
		t.Fatalf("frame width = %d, want 40", got)
	}
	if v.Status() != "Connected to painting server" {
		t.Errorf("status = %q", v.Status())
	}

	v.Handle(net.NetworkMessage{Type: net.TypeCanvasFrame, Seq: 2, Image: jpegFrame(t, 50, 30, color.White)})
	if got := v.Frame().Bounds().Dx(); got != 50 {
		t.Errorf("frame width = %d, want 50", got)
	}

	// Out-of-order and undecodable frames keep the current one.
	v.Handle(net.NetworkMessage{Type: net.TypeCanvasFrame, Seq: 1, Image: jpegFrame(t, 60, 30, color.White)})
	v.Handle(net.NetworkMessage{Type: net.TypeCanvasFrame, Seq: 3, Image: []byte("garbage")})
	if got := v.Frame().Bounds().Dx(); got != 50 || v.LastSeq() != 2 {
		t.Errorf("frame width = %d seq = %d, want 50 and 2", got, v.LastSeq())
	}
}

func TestViewerSave(t *testing.T) {
	conn := &fakeConn{}
	v := newTestViewer(t, conn)

	v.Save()
	if v.Status() != "Saving canvas..." {
		t.Errorf("status = %q", v.Status())
	}
	v.SetFormat(export.PDF)
	v.Save()
	if diff := cmp.Diff([]string{"png", "pdf"}, conn.saves); diff != "" {
		t.Errorf("save requests (-want +got):\n%s", diff)
	}

	v.Handle(net.NetworkMessage{Type: net.TypeSaveStatus, OK: true, Message: "Canvas saved as canvas_x.pdf"})
	if v.Status() != "Canvas saved as canvas_x.pdf" {
		t.Errorf("status = %q", v.Status())
	}

	conn.saveErr = errors.New("broken pipe")
	v.Save()
	if v.Status() != "Error: Failed to send save request" {
		t.Errorf("status = %q", v.Status())
	}
}

func TestViewerListen(t *testing.T) {
	conn := &fakeConn{msgs: []net.NetworkMessage{
		{Type: net.TypeCanvasFrame, Seq: 1, Image: jpegFrame(t, 20, 20, color.White)},
		{Type: net.TypeError, Message: "Failed to initialize session"},
	}}
	v := newTestViewer(t, conn)

	var statuses []string
	dispatch := v.dispatch
	v.dispatch = func(fn func()) {
		dispatch(fn)
		statuses = append(statuses, v.Status())
	}
	v.Listen()

	want := []string{"Connected to painting server", "Failed to initialize session", "Disconnected from server"}
	if diff := cmp.Diff(want, statuses); diff != "" {
		t.Errorf("status sequence (-want +got):\n%s", diff)
	}
	if v.LastSeq() != 1 {
		t.Errorf("LastSeq() = %d, want 1", v.LastSeq())
	}
}

func TestToolbarSelectsFormat(t *testing.T) {
	conn := &fakeConn{}
	v := newTestViewer(t, conn)
	if NewToolbar(v) == nil {
		t.Fatal("nil toolbar")
	}
	v.Save()
	if diff := cmp.Diff([]string{"png"}, conn.saves); diff != "" {
		t.Errorf("default format (-want +got):\n%s", diff)
	}
}
