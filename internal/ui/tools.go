package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"GestureBoard/internal/export"
)

// NewToolbar builds the save controls for a viewer: a format picker and a
// save action.
func NewToolbar(v *Viewer) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), v.Save),
	)

	formats := widget.NewSelect([]string{string(export.PNG), string(export.PDF)}, func(s string) {
		if f, err := export.ParseFormat(s, export.PNG); err == nil {
			v.SetFormat(f)
		}
	})
	formats.SetSelected(string(export.PNG))

	return container.NewHBox(
		widget.NewLabel("Format:"),
		formats,
		widget.NewSeparator(),
		widget.NewLabel("Save:"),
		tb,
		layout.NewSpacer(),
	)
}
