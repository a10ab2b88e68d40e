package gif

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/jdeng/gogif/internal/gif"
)

// EncodeOptions configures GIF encoding.
type EncodeOptions struct {
	Width  int
	Height int
	// Palette is the global color table every frame is quantized against. Its
	// length must be a power of two between 2 and 256. Nil selects
	// DefaultPalette.
	Palette color.Palette
	// LoopCount is the animation loop count: 0 loops forever and a negative
	// value writes no loop extension.
	LoopCount int
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// FrameOptions controls the graphic control extension written before a frame.
type FrameOptions struct {
	// Delay is rounded down to hundredths of a second.
	Delay    time.Duration
	Disposal Disposal
	// Transparent marks TransparentIndex as transparent. PushImage also maps
	// fully transparent source pixels to that index.
	Transparent      bool
	TransparentIndex uint8
}

func (o *FrameOptions) internal() *gif.FrameOptions {
	if o == nil {
		return nil
	}
	delay := o.Delay / (10 * time.Millisecond)
	if delay > 0xFFFF {
		delay = 0xFFFF
	}
	fo := gif.FrameOptions{Delay: uint16(delay)}.WithDisposal(gif.DisposalMethod(o.Disposal))
	if o.Transparent {
		fo = fo.WithTransparency(o.TransparentIndex)
	}
	return &fo
}

// Encoder builds an animated GIF in memory.
type Encoder struct {
	writer  *gif.Writer
	palette gif.ColorTable
}

// NewEncoder validates opts and writes the stream header.
func NewEncoder(opts EncodeOptions) (*Encoder, error) {
	wopts := gif.WriterOptions{
		Width:     opts.Width,
		Height:    opts.Height,
		LoopCount: opts.LoopCount,
		Logger:    opts.Logger,
	}
	if opts.Palette != nil {
		ct := fromPalette(opts.Palette)
		size, ok := ct.CodeSize()
		if !ok {
			return nil, fmt.Errorf("%w: %d colors is not a power of two between 2 and 256", ErrInvalidPalette, len(ct))
		}
		wopts.Palette, wopts.CodeSize = ct, size
	}
	writer, err := gif.NewWriter(wopts)
	if err != nil {
		return nil, err
	}
	return &Encoder{writer: writer, palette: writer.Palette()}, nil
}

// Push appends a frame covering bounds. rgb holds packed RGB triples in
// row-major order for the whole rectangle.
func (e *Encoder) Push(opts *FrameOptions, bounds image.Rectangle, rgb []byte) error {
	return e.writer.Push(opts.internal(), bounds.Min.X, bounds.Min.Y, bounds.Dx(), bounds.Dy(), rgb)
}

// PushImage appends img as a frame placed at img.Bounds().Min.
func (e *Encoder) PushImage(opts *FrameOptions, img image.Image) error {
	b := img.Bounds()
	rgb := make([]byte, 0, b.Dx()*b.Dy()*3)
	var key *gif.RGB
	if opts != nil && opts.Transparent && int(opts.TransparentIndex) < len(e.palette) {
		c := e.palette[opts.TransparentIndex]
		key = &c
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if key != nil && c.A == 0 {
				rgb = append(rgb, key.R, key.G, key.B)
				continue
			}
			rgb = append(rgb, c.R, c.G, c.B)
		}
	}
	return e.Push(opts, b, rgb)
}

// Frames reports how many frames have been pushed.
func (e *Encoder) Frames() int { return e.writer.Frames() }

// Close writes the trailer and returns the encoded stream.
func (e *Encoder) Close() ([]byte, error) {
	return e.writer.End()
}

// DefaultPalette returns the built-in 256-color palette: red and green in
// steps of 32, blue in steps of 64.
func DefaultPalette() color.Palette { return toPalette(gif.DefaultPalette()) }

// GrayscalePalette returns 256 evenly spaced grays.
func GrayscalePalette() color.Palette { return toPalette(gif.GrayscalePalette()) }

// WebSafePalette returns the 216-color web-safe cube padded to 256 entries.
func WebSafePalette() color.Palette { return toPalette(gif.WebSafePalette()) }

func fromPalette(p color.Palette) gif.ColorTable {
	ct := make(gif.ColorTable, len(p))
	for i, c := range p {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		ct[i] = gif.RGB{R: n.R, G: n.G, B: n.B}
	}
	return ct
}
