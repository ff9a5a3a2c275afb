// Package ui is the desktop viewer of client mode: it shows the canvas
// streamed by a host and lets the user save it.
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// Content lays out the toolbar, the canvas and the status line.
func (v *Viewer) Content() fyne.CanvasObject {
	return container.NewBorder(NewToolbar(v), v.statusBar, nil, nil, v.image)
}

// RunApp opens the viewer window, starts listening on the connection and
// blocks until the window is closed.
func RunApp(title string, v *Viewer) {
	myApp := app.NewWithID("gestureboard.viewer")
	myWindow := myApp.NewWindow(title)
	myWindow.SetContent(v.Content())
	myWindow.Resize(fyne.NewSize(720, 600))

	go v.Listen()
	myWindow.ShowAndRun()
}
