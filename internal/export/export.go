// Package export persists session canvases to disk.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrIO is returned when a canvas cannot be written.
var ErrIO = errors.New("export: write failed")

// Format is an on-disk canvas format.
type Format string

const (
	PNG Format = "png"
	PDF Format = "pdf"
)

// ParseFormat accepts "png" and "pdf". An empty string selects def.
func ParseFormat(s string, def Format) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "":
		return def, nil
	case PNG:
		return PNG, nil
	case PDF:
		return PDF, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// Filename returns canvas_<id>_<YYYYMMDD_HHMMSS>.<ext>.
func Filename(id string, at time.Time, f Format) string {
	return fmt.Sprintf("canvas_%s_%s.%s", id, at.Format("20060102_150405"), f)
}

// Save writes the PNG-encoded canvas of session id into dir in format f and
// returns the file name (relative to dir). dir is created when missing.
func Save(dir, id string, at time.Time, f Format, pngData []byte) (string, error) {
	if id == "" || filepath.Base(id) != id {
		return "", fmt.Errorf("export: invalid session id %q", id)
	}

	data := pngData
	if f == PDF {
		var err error
		if data, err = WrapPDF(pngData); err != nil {
			return "", fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	name := Filename(id, at, f)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	return name, nil
}
