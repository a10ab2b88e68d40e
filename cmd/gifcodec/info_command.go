package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jdeng/gogif/pkg/gif"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var showFrames bool

	cmd := &cobra.Command{
		Use:   "info <input.gif>",
		Short: "Show stream and per-frame metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			input := args[0]
			stat, err := os.Stat(input)
			if err != nil {
				return err
			}
			dec, err := gif.OpenFile(input, gif.DecodeOptions{Logger: logger})
			if err != nil {
				return fmt.Errorf("open %s: %w", input, err)
			}
			defer dec.Close()

			loop := "none"
			switch n := dec.LoopCount(); {
			case n == 0:
				loop = "forever"
			case n > 0:
				loop = strconv.Itoa(n)
			}
			props := [][2]string{
				{"File", input},
				{"Size", humanize.Bytes(uint64(stat.Size()))},
				{"Version", "GIF" + dec.Version()},
				{"Screen", fmt.Sprintf("%dx%d", dec.Width(), dec.Height())},
				{"Frames", humanize.Comma(int64(dec.FrameCount()))},
				{"Loop", loop},
				{"Global palette", paletteLabel(len(dec.Palette()))},
				{"Background", strconv.Itoa(int(dec.BackgroundIndex()))},
			}
			for i, c := range dec.Comments() {
				props = append(props, [2]string{fmt.Sprintf("Comment %d", i+1), strings.TrimSpace(c)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderKeyValues(props))
			if !showFrames {
				return nil
			}

			var rows [][]string
			var stopErr error
			for {
				res, err := dec.Next()
				if res != gif.ResultFrame {
					stopErr = err
					break
				}
				b := dec.FrameBounds()
				transparent := "-"
				if index, ok := dec.Transparency(); ok {
					transparent = strconv.Itoa(int(index))
				}
				rows = append(rows, []string{
					strconv.Itoa(dec.FrameIndex() - 1),
					fmt.Sprintf("%d,%d", b.Min.X, b.Min.Y),
					fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
					dec.Delay().String(),
					dec.Disposal().String(),
					transparent,
					yesNo(dec.Interlaced()),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Offset", "Size", "Delay", "Disposal", "Transparent", "Interlaced"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft, alignRight, alignLeft},
			))
			if stopErr != nil {
				fmt.Fprintf(out, "Decoding stopped early: %v\n", stopErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showFrames, "frames", true, "Decode every frame and list its metadata")
	return cmd
}

func paletteLabel(n int) string {
	if n == 0 {
		return "none"
	}
	return fmt.Sprintf("%d colors", n)
}
