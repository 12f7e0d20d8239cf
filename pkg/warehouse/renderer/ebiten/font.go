package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFontSources parses the embedded Go fonts
func (e *EbitenRenderer) loadFontSources() error {
	var err error
	if e.sansFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("load sans font: %w", err)
	}
	if e.sansBoldFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		return fmt.Errorf("load bold font: %w", err)
	}
	if e.monoFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("load mono font: %w", err)
	}
	return nil
}

// faceForSize returns a cached sans-serif face of the given size. The map
// draws labels at a handful of fixed sizes so the cache stays small.
func (e *EbitenRenderer) faceForSize(size float64) *text.GoTextFace {
	if f, ok := e.cachedFaces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: e.sansFontSource, Size: size}
	e.cachedFaces[size] = f
	return f
}

// getSansFontFace returns the face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	return e.faceForSize(baseFontSize)
}

// getSansBoldFontFace returns a cached bold face for panel titles
func (e *EbitenRenderer) getSansBoldFontFace() *text.GoTextFace {
	if e.cachedSansBoldFace == nil {
		e.cachedSansBoldFace = &text.GoTextFace{Source: e.sansBoldFontSource, Size: baseFontSize + 2}
	}
	return e.cachedSansBoldFace
}

// getMonoFontFace returns a cached monospace face for the search prompt
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	if e.cachedMonoFace == nil {
		e.cachedMonoFace = &text.GoTextFace{Source: e.monoFontSource, Size: baseFontSize}
	}
	return e.cachedMonoFace
}
