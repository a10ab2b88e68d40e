package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeEncode()
	c.normalizeDecode()
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	var err error
	if c.Logging.File, err = ExpandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeEncode() {
	c.Encode.Palette = strings.ToLower(strings.TrimSpace(c.Encode.Palette))
	if c.Encode.Palette == "" {
		c.Encode.Palette = defaultPalette
	}
	if c.Encode.Palette == "web-safe" || c.Encode.Palette == "web" {
		c.Encode.Palette = PaletteWebSafe
	}
	if c.Encode.Palette == "gray" || c.Encode.Palette == "grey" || c.Encode.Palette == "greyscale" {
		c.Encode.Palette = PaletteGrayscale
	}
	c.Encode.Disposal = strings.ToLower(strings.TrimSpace(c.Encode.Disposal))
	if c.Encode.Disposal == "" {
		c.Encode.Disposal = defaultDisposal
	}
}

func (c *Config) normalizeDecode() {
	c.Decode.FramePattern = strings.TrimSpace(c.Decode.FramePattern)
	if c.Decode.FramePattern == "" {
		c.Decode.FramePattern = defaultFramePattern
	}
}
