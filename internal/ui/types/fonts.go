package types

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/font/opentype"
)

const (
	titleSize  = 40
	bannerSize = 24
)

// Fonts are the faces drawn by the screens. HUD is the small fixed face for
// status rows and key hints, Label the widget face, Banner the game-over
// figures and Title the screen headings.
type Fonts struct {
	HUD    font.Face
	Label  font.Face
	Banner font.Face
	Title  font.Face
}

var (
	fontsOnce    sync.Once
	defaultFonts *Fonts
)

func InitFonts() {
	fontsOnce.Do(func() {
		defaultFonts = loadFonts()
	})
}

func GetFonts() *Fonts {
	InitFonts()
	return defaultFonts
}

func loadFonts() *Fonts {
	fonts := &Fonts{
		HUD:    basicfont.Face7x13,
		Label:  inconsolata.Regular8x16,
		Banner: inconsolata.Bold8x16,
		Title:  inconsolata.Bold8x16,
	}

	parsed, err := opentype.Parse(gobold.TTF)
	if err != nil {
		log.Printf("Fonts: falling back to bitmap titles: %v", err)
		return fonts
	}

	if face, err := newFace(parsed, titleSize); err == nil {
		fonts.Title = face
	} else {
		log.Printf("Fonts: title face: %v", err)
	}
	if face, err := newFace(parsed, bannerSize); err == nil {
		fonts.Banner = face
	} else {
		log.Printf("Fonts: banner face: %v", err)
	}
	return fonts
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// TextWidth is the advance of s in face, in pixels.
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// CenteredX is the pen position that centers s across a span of width w.
func CenteredX(face font.Face, s string, w int) int {
	return (w - TextWidth(face, s)) / 2
}
