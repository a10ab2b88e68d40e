package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jdeng/gogif/internal/config"
	"github.com/jdeng/gogif/internal/fileutil"
	"github.com/jdeng/gogif/internal/logging"
	"github.com/jdeng/gogif/pkg/gif"
)

func newDecodeCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var pattern string
	var applyDisposal bool
	var maxFrames int

	cmd := &cobra.Command{
		Use:   "decode <input.gif>",
		Short: "Write every composited frame of a GIF as a PNG file",
		Args:  cobra.ExactArgs(1),
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
			if !cmd.Flags().Changed("apply-disposal") {
				applyDisposal = cfg.Decode.ApplyDisposal
			}
			if strings.TrimSpace(pattern) == "" {
				pattern = cfg.Decode.FramePattern
			}
			if !config.ValidFramePattern(pattern) {
				return errors.New("--pattern must contain exactly one integer verb such as %03d")
			}
			input := args[0]
			if outputDir == "" {
				outputDir = strings.TrimSuffix(input, filepath.Ext(input)) + "_frames"
			}

			dec, err := gif.OpenFile(input, gif.DecodeOptions{ApplyDisposal: applyDisposal, Logger: logger})
			if err != nil {
				return fmt.Errorf("open %s: %w", input, err)
			}
			defer dec.Close()

			logger.Info("decoding",
				logging.String("input", input),
				logging.Int("frames", dec.FrameCount()),
				logging.Bool("apply_disposal", applyDisposal),
			)

			var written int
			var total uint64
			for maxFrames <= 0 || written < maxFrames {
				res, err := dec.Next()
				if res == gif.ResultEnd {
					break
				}
				if res == gif.ResultMalformed {
					if written == 0 {
						return fmt.Errorf("decode %s: %w", input, err)
					}
					logger.Warn("stopping at malformed frame",
						logging.Int("frame", written),
						logging.Error(err),
					)
					break
				}

				var buf bytes.Buffer
				if err := png.Encode(&buf, dec.Image()); err != nil {
					return fmt.Errorf("encode frame %d: %w", written, err)
				}
				path := filepath.Join(outputDir, fmt.Sprintf(pattern, written))
				if err := fileutil.WriteFileLocked(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write frame %d: %w", written, err)
				}
				logger.Debug("frame written",
					logging.Int("frame", written),
					logging.String("path", path),
					logging.Int("bytes", buf.Len()),
				)
				written++
				total += uint64(buf.Len())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frame(s) (%s) to %s\n", written, humanize.Bytes(total), outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default <input>_frames)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Frame file name pattern (default from config)")
	cmd.Flags().BoolVar(&applyDisposal, "apply-disposal", false, "Execute frame disposal methods while compositing")
	cmd.Flags().IntVar(&maxFrames, "frames", 0, "Stop after this many frames (0 for all)")
	return cmd
}
