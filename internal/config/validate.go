package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateEncode(); err != nil {
		return err
	}
	return c.validateDecode()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateEncode() error {
	e := c.Encode
	if e.Delay < 0 || e.Delay > maxUint16 {
		return fmt.Errorf("encode.delay must be between 0 and %d", maxUint16)
	}
	if e.LoopCount < omitLoopExtensionValue || e.LoopCount > maxUint16 {
		return fmt.Errorf("encode.loop_count must be between %d and %d", omitLoopExtensionValue, maxUint16)
	}
	if e.TransparentIndex < noTransparentIndex || e.TransparentIndex > maxTransparentIndex {
		return fmt.Errorf("encode.transparent_index must be between %d and %d", noTransparentIndex, maxTransparentIndex)
	}
	switch e.Palette {
	case PaletteDefault, PaletteGrayscale, PaletteWebSafe:
	default:
		return fmt.Errorf("encode.palette must be %s, %s or %s, got %q", PaletteDefault, PaletteGrayscale, PaletteWebSafe, e.Palette)
	}
	switch e.Disposal {
	case DisposalNone, DisposalKeep, DisposalBackground, DisposalPrevious:
	default:
		return fmt.Errorf("encode.disposal must be one of none, keep, background, previous, got %q", e.Disposal)
	}
	if e.Width < 0 || e.Width > maxUint16 || e.Height < 0 || e.Height > maxUint16 {
		return fmt.Errorf("encode.width and encode.height must be between 0 and %d", maxUint16)
	}
	return nil
}

func (c *Config) validateDecode() error {
	if !ValidFramePattern(c.Decode.FramePattern) {
		return errors.New("decode.frame_pattern must contain exactly one integer verb such as %03d")
	}
	return nil
}

// ValidFramePattern reports whether pattern holds exactly one verb that
// formats a frame index cleanly.
func ValidFramePattern(pattern string) bool {
	if strings.Count(pattern, "%") != 1 {
		return false
	}
	return !strings.Contains(fmt.Sprintf(pattern, 0), "%!")
}
