package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/jdeng/gogif/internal/config"
	"github.com/jdeng/gogif/internal/fileutil"
	"github.com/jdeng/gogif/internal/logging"
	"github.com/jdeng/gogif/pkg/gif"
)

type encodeSettings struct {
	delay       int
	loopCount   int
	palette     string
	transparent int
	disposal    string
	width       int
	height      int
}

// merge fills every flag the user did not set from the [encode] section.
func (s *encodeSettings) merge(cmd *cobra.Command, cfg config.Encode) {
	changed := cmd.Flags().Changed
	if !changed("delay") {
		s.delay = cfg.Delay
	}
	if !changed("loop") {
		s.loopCount = cfg.LoopCount
	}
	if !changed("palette") {
		s.palette = cfg.Palette
	}
	if !changed("transparent") {
		s.transparent = cfg.TransparentIndex
	}
	if !changed("disposal") {
		s.disposal = cfg.Disposal
	}
	if !changed("width") {
		s.width = cfg.Width
	}
	if !changed("height") {
		s.height = cfg.Height
	}
}

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	var output string
	settings := &encodeSettings{}

	cmd := &cobra.Command{
		Use:   "encode -o <output.gif> <frame>...",
		Short: "Assemble PNG, JPEG or GIF frames into an animated GIF",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			if strings.TrimSpace(output) == "" {
				return errors.New("--output is required")
			}
			settings.merge(cmd, cfg.Encode)

			palette, err := paletteByName(strings.ToLower(settings.palette))
			if err != nil {
				return err
			}
			disposal, err := disposalByName(strings.ToLower(settings.disposal))
			if err != nil {
				return err
			}
			if settings.transparent < -1 || settings.transparent > 255 {
				return fmt.Errorf("--transparent must be -1 or a palette index, got %d", settings.transparent)
			}
			if settings.width < 0 || settings.height < 0 {
				return errors.New("--width and --height must not be negative")
			}

			frames, err := loadFrames(args, logger)
			if err != nil {
				return err
			}
			for i, frame := range frames {
				frames[i] = resizeFrame(frame, settings.width, settings.height)
			}
			size := frames[0].Bounds().Size()

			enc, err := gif.NewEncoder(gif.EncodeOptions{
				Width:     size.X,
				Height:    size.Y,
				Palette:   palette,
				LoopCount: settings.loopCount,
				Logger:    logger,
			})
			if err != nil {
				return err
			}
			opts := &gif.FrameOptions{
				Delay:    time.Duration(settings.delay) * 10 * time.Millisecond,
				Disposal: disposal,
			}
			if settings.transparent >= 0 {
				opts.Transparent = true
				opts.TransparentIndex = uint8(settings.transparent)
			}
			for i, frame := range frames {
				if err := enc.PushImage(opts, frame); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
			}
			data, err := enc.Close()
			if err != nil {
				return err
			}
			if err := fileutil.WriteFileLocked(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			logger.Info("encoded",
				logging.String("output", output),
				logging.Int("frames", len(frames)),
				logging.Int("bytes", len(data)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d frame(s), %dx%d, %s\n",
				output, len(frames), size.X, size.Y, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "Output GIF path")
	f.IntVar(&settings.delay, "delay", 0, "Frame delay in hundredths of a second")
	f.IntVar(&settings.loopCount, "loop", 0, "Loop count (0 forever, -1 no loop extension)")
	f.StringVar(&settings.palette, "palette", "", "Palette: default, grayscale, websafe")
	f.IntVar(&settings.transparent, "transparent", -1, "Transparent palette index (-1 none)")
	f.StringVar(&settings.disposal, "disposal", "", "Disposal: none, keep, background, previous")
	f.IntVar(&settings.width, "width", 0, "Resize frames to this width (0 keeps source)")
	f.IntVar(&settings.height, "height", 0, "Resize frames to this height (0 keeps source)")
	return cmd
}

// loadFrames decodes each input. GIF inputs contribute every composited frame.
func loadFrames(paths []string, logger *slog.Logger) ([]image.Image, error) {
	var frames []image.Image
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if bytes.HasPrefix(data, []byte("GIF8")) {
			gifFrames, err := gifFrames(data, logger)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			frames = append(frames, gifFrames...)
			continue
		}
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("frame loaded",
			logging.String("path", path),
			logging.String("format", format),
		)
		frames = append(frames, img)
	}
	if len(frames) == 0 {
		return nil, errors.New("no frames found in input")
	}
	return frames, nil
}

func gifFrames(data []byte, logger *slog.Logger) ([]image.Image, error) {
	dec, err := gif.Open(data, gif.DecodeOptions{ApplyDisposal: true, Logger: logger})
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	var frames []image.Image
	for {
		res, err := dec.Next()
		switch res {
		case gif.ResultFrame:
			frames = append(frames, dec.Image())
		case gif.ResultEnd:
			return frames, nil
		default:
			return nil, err
		}
	}
}

// resizeFrame scales img to width x height. A zero dimension follows the
// aspect ratio; both zero only moves the frame to the origin.
func resizeFrame(img image.Image, width, height int) image.Image {
	src := img.Bounds()
	switch {
	case width == 0 && height == 0:
		if src.Min == (image.Point{}) {
			return img
		}
		dst := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
		draw.Copy(dst, image.Point{}, img, src, draw.Src, nil)
		return dst
	case width == 0:
		width = max(1, src.Dx()*height/max(1, src.Dy()))
	case height == 0:
		height = max(1, src.Dy()*width/max(1, src.Dx()))
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
