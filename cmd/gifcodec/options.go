package main

import (
	"fmt"
	"image/color"

	"github.com/jdeng/gogif/internal/config"
	"github.com/jdeng/gogif/pkg/gif"
)

func paletteByName(name string) (color.Palette, error) {
	switch name {
	case config.PaletteDefault:
		return gif.DefaultPalette(), nil
	case config.PaletteGrayscale:
		return gif.GrayscalePalette(), nil
	case config.PaletteWebSafe:
		return gif.WebSafePalette(), nil
	default:
		return nil, fmt.Errorf("unknown palette %q (want default, grayscale or websafe)", name)
	}
}

func disposalByName(name string) (gif.Disposal, error) {
	switch name {
	case config.DisposalNone:
		return gif.DisposalNone, nil
	case config.DisposalKeep:
		return gif.DisposalDoNotDispose, nil
	case config.DisposalBackground:
		return gif.DisposalRestoreToBackground, nil
	case config.DisposalPrevious:
		return gif.DisposalRestoreToPrevious, nil
	default:
		return 0, fmt.Errorf("unknown disposal %q (want none, keep, background or previous)", name)
	}
}
