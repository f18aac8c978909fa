// Package viewer shows a rendered figure in a desktop window.
package viewer

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

// Largest initial window; bigger figures are scaled down to fit.
const (
	maxWidth  = 1200
	maxHeight = 1000
)

// Show opens the PNG at path in a window and blocks until the window is
// closed.
func Show(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open figure: %w", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode figure %s: %w", path, err)
	}

	a := app.New()
	w := a.NewWindow(filepath.Base(path))
	img := canvas.NewImageFromFile(path)
	img.FillMode = canvas.ImageFillContain
	w.SetContent(img)
	w.Resize(windowSize(cfg.Width, cfg.Height))
	w.ShowAndRun()
	return nil
}

func windowSize(w, h int) fyne.Size {
	scale := 1.0
	if sw := float64(maxWidth) / float64(w); sw < scale {
		scale = sw
	}
	if sh := float64(maxHeight) / float64(h); sh < scale {
		scale = sh
	}
	return fyne.NewSize(float32(float64(w)*scale), float32(float64(h)*scale))
}
