package ui

import (
	"bytes"
	"image"
	"image/jpeg"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"GestureBoard/internal/export"
	boardlayout "GestureBoard/internal/layout"
	"GestureBoard/internal/logging"
	"GestureBoard/internal/net"
)

// Connection is the host side of a viewer: frames and statuses come in,
// save requests go out. *net.Client satisfies it.
type Connection interface {
	Receive() (net.NetworkMessage, error)
	RequestSave(format string) error
}

// DefaultStatusTTL is how long a save status stays on screen.
const DefaultStatusTTL = 5 * time.Second

// Viewer shows the canvas frames streamed by a host and a status line.
type Viewer struct {
	conn Connection
	log  *slog.Logger

	image     *canvas.Image
	statusBar *widget.Label
	format    export.Format

	// StatusTTL clears transient statuses after the delay; zero keeps them.
	StatusTTL time.Duration

	// dispatch runs UI updates from the receive goroutine.
	dispatch func(func())

	mu        sync.Mutex
	lastSeq   uint64
	statusGen uint64
}

// NewViewer creates a viewer bound to conn. The canvas starts blank at the
// board size until the first frame arrives.
func NewViewer(conn Connection, log *slog.Logger) *Viewer {
	blank := image.NewRGBA(image.Rect(0, 0, boardlayout.Width, boardlayout.Height))
	for i := range blank.Pix {
		blank.Pix[i] = 0xff
	}
	img := canvas.NewImageFromImage(blank)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(boardlayout.Width, boardlayout.Height))

	return &Viewer{
		conn:      conn,
		log:       logging.OrNop(log),
		image:     img,
		statusBar: widget.NewLabel("Connecting..."),
		format:    export.PNG,
		StatusTTL: DefaultStatusTTL,
		dispatch:  fyne.Do,
	}
}

// Frame returns the image currently on screen.
func (v *Viewer) Frame() image.Image {
	return v.image.Image
}

// Status returns the text of the status line.
func (v *Viewer) Status() string {
	return v.statusBar.Text
}

// LastSeq returns the sequence number of the last frame shown.
func (v *Viewer) LastSeq() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeq
}

// SetFormat selects the format sent with save requests.
func (v *Viewer) SetFormat(f export.Format) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.format = f
}

// SetStatus replaces the status line.
func (v *Viewer) SetStatus(text string) {
	v.mu.Lock()
	v.statusGen++
	v.mu.Unlock()
	v.statusBar.SetText(text)
}

func (v *Viewer) setTransientStatus(text string) {
	v.mu.Lock()
	v.statusGen++
	gen := v.statusGen
	v.mu.Unlock()
	v.statusBar.SetText(text)

	if v.StatusTTL <= 0 {
		return
	}
	time.AfterFunc(v.StatusTTL, func() {
		v.dispatch(func() {
			v.mu.Lock()
			current := v.statusGen == gen
			v.mu.Unlock()
			if current {
				v.statusBar.SetText("")
			}
		})
	})
}

// Handle applies one host message to the widgets. It must run on the UI
// goroutine.
func (v *Viewer) Handle(msg net.NetworkMessage) {
	switch msg.Type {
	case net.TypeCanvasFrame:
		v.showFrame(msg.Seq, msg.Image)
	case net.TypeSaveStatus:
		v.setTransientStatus(msg.Message)
	case net.TypeError:
		v.SetStatus(msg.Message)
	}
}

func (v *Viewer) showFrame(seq uint64, data []byte) {
	v.mu.Lock()
	stale := seq != 0 && seq <= v.lastSeq
	v.mu.Unlock()
	if stale {
		return
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		v.log.Warn("ui: dropping undecodable frame", "seq", seq, "error", err)
		return
	}

	v.mu.Lock()
	first := v.lastSeq == 0
	v.lastSeq = seq
	v.mu.Unlock()

	v.image.Image = img
	v.image.Refresh()
	if first {
		v.SetStatus("Connected to painting server")
	}
}

// Save asks the host to persist the canvas in the selected format.
func (v *Viewer) Save() {
	v.mu.Lock()
	f := v.format
	v.mu.Unlock()

	v.SetStatus("Saving canvas...")
	if err := v.conn.RequestSave(string(f)); err != nil {
		v.log.Warn("ui: save request failed", "error", err)
		v.SetStatus("Error: Failed to send save request")
	}
}

// Listen feeds host messages to Handle until the connection drops, then
// reports the disconnect. It blocks; run it on its own goroutine.
func (v *Viewer) Listen() {
	for {
		msg, err := v.conn.Receive()
		if err != nil {
			v.log.Info("ui: disconnected from host", "error", err)
			v.dispatch(func() { v.SetStatus("Disconnected from server") })
			return
		}
		v.dispatch(func() { v.Handle(msg) })
	}
}
