// Package engine drives the per-frame gesture pipeline: classify a landmark
// sample, mutate the session's tracks, re-render its canvas and hand the
// encoded frame to the output collaborator.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"GestureBoard/internal/export"
	"GestureBoard/internal/gesture"
	"GestureBoard/internal/layout"
	"GestureBoard/internal/logging"
	"GestureBoard/internal/session"
)

// Frame is one encoded canvas update.
type Frame struct {
	Seq   uint64
	Image []byte // JPEG
}

// Emitter delivers frames to the client owning a session.
type Emitter interface {
	EmitFrame(id string, f Frame) error
}

// Options configures an Engine.
type Options struct {
	JPEGQuality int
	SaveDir     string
	SaveFormat  export.Format
	Now         func() time.Time // default time.Now
}

// Engine runs frames against sessions in a registry.
type Engine struct {
	reg  *session.Registry
	out  Emitter
	opts Options
	log  *slog.Logger
}

// New creates an engine over reg emitting through out.
func New(reg *session.Registry, out Emitter, opts Options, log *slog.Logger) *Engine {
	if opts.JPEGQuality == 0 {
		opts.JPEGQuality = 80
	}
	if opts.SaveFormat == "" {
		opts.SaveFormat = export.PNG
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{reg: reg, out: out, opts: opts, log: logging.OrNop(log)}
}

// Sessions returns the number of live sessions.
func (e *Engine) Sessions() int {
	return e.reg.Len()
}

// Open registers a session for id and emits its initial canvas.
func (e *Engine) Open(id string) error {
	s, err := e.reg.Create(id)
	if err != nil {
		e.log.Error("engine: failed to initialize session", "session", id, "error", err)
		return err
	}
	var f Frame
	err = s.Do(func(st *session.State) error {
		out, err := e.encode(st)
		f = out
		return err
	})
	if err != nil {
		e.reg.Destroy(id)
		return fmt.Errorf("%w: %v", session.ErrExhausted, err)
	}
	e.emit(id, f)
	return nil
}

// Close tears a session down. In-flight frames complete first.
func (e *Engine) Close(id string) {
	e.reg.Destroy(id)
}

// ProcessFrame applies one landmark sample (empty = no hand) to session id
// and emits the updated canvas. A malformed sample is rejected without
// touching the session. All errors are local to this frame.
func (e *Engine) ProcessFrame(id string, sample gesture.Sample) error {
	s, err := e.reg.Get(id)
	if err != nil {
		e.log.Warn("engine: frame for unknown session", "session", id)
		return err
	}
	if err := sample.Validate(); err != nil {
		e.log.Warn("engine: skipping frame", "session", id, "error", err)
		return err
	}

	var f Frame
	err = s.Do(func(st *session.State) error {
		action := gesture.Classify(sample)
		e.apply(st, action)
		e.log.Debug("engine: frame", "session", id, "action", action.Kind,
			"x", action.Point.X, "y", action.Point.Y)
		if err := st.Canvas.Redraw(&st.Tracks); err != nil {
			return err
		}
		out, err := e.encode(st)
		f = out
		return err
	})
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			e.log.Error("engine: frame failed", "session", id, "error", err)
		}
		return err
	}
	e.emit(id, f)
	return nil
}

func (e *Engine) apply(st *session.State, a gesture.Action) {
	switch a.Kind {
	case gesture.NoHand, gesture.LiftPen:
		st.Tracks.StartStroke()
	case gesture.ButtonZone:
		zone, ok := gesture.ResolveZone(a.Point.X)
		if !ok {
			return
		}
		if zone == layout.ZoneClear {
			st.Tracks.Clear()
			st.Canvas.ClearDrawingArea()
			return
		}
		if c, ok := zone.Color(); ok {
			st.Active = c
		}
	case gesture.Draw:
		st.Tracks.Track(st.Active).AppendPoint(a.Point)
	}
}

func (e *Engine) encode(st *session.State) (Frame, error) {
	img, err := st.Canvas.EncodeJPEG(e.opts.JPEGQuality)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Seq: st.Clock.Tick(), Image: img}, nil
}

func (e *Engine) emit(id string, f Frame) {
	if e.out == nil {
		return
	}
	if err := e.out.EmitFrame(id, f); err != nil {
		e.log.Warn("engine: emit failed", "session", id, "seq", f.Seq, "error", err)
		return
	}
	e.log.Debug("engine: sent canvas frame", "session", id, "seq", f.Seq, "bytes", len(f.Image))
}

// SaveCanvas persists the current canvas of session id as a lossless image
// in the given format ("" selects the configured default) and returns the
// file name. Unknown sessions fail with session.ErrNotFound without
// touching the disk; write failures wrap export.ErrIO.
func (e *Engine) SaveCanvas(id, format string) (string, error) {
	f, err := export.ParseFormat(format, e.opts.SaveFormat)
	if err != nil {
		return "", err
	}
	s, err := e.reg.Get(id)
	if err != nil {
		e.log.Error("engine: save for unknown session", "session", id)
		return "", err
	}

	var data []byte
	err = s.Do(func(st *session.State) error {
		out, err := st.Canvas.EncodePNG()
		data = out
		return err
	})
	if err != nil {
		return "", err
	}

	name, err := export.Save(e.opts.SaveDir, id, e.opts.Now(), f, data)
	if err != nil {
		e.log.Error("engine: save failed", "session", id, "error", err)
		return "", err
	}
	e.log.Info("engine: saved canvas", "session", id, "file", name)
	return name, nil
}
