package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func init() {
	if err := loadFonts(); err != nil {
		panic(fmt.Sprintf("Failed to load fonts: %v", err))
	}
}

var (
	// HUDFont draws the status line at the bottom of the window. M+ covers
	// the non-latin area names levels may use.
	HUDFont font.Face
	// SpeechFont draws speech bubbles and debug labels above bodies, small
	// enough to sit on a single tile.
	SpeechFont font.Face
)

func loadFonts() error {
	tt, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	if err != nil {
		return fmt.Errorf("failed to parse hud font: %v", err)
	}
	const dpi = 72
	HUDFont, err = opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    14,
		DPI:     dpi,
		Hinting: font.HintingVertical,
	})
	if err != nil {
		return fmt.Errorf("failed to create hud font face: %v", err)
	}

	speech, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse speech font: %v", err)
	}

	SpeechFont = truetype.NewFace(speech, &truetype.Options{
		Size:    10,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})

	return nil
}
