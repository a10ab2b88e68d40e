package gif

import (
	"fmt"
	"log/slog"

	"github.com/jdeng/gogif/internal/logging"
)

// WriterOptions configures a Writer.
type WriterOptions struct {
	// Palette is the global color table. Nil selects the built-in 256-entry
	// palette with code size 8 and CodeSize is ignored.
	Palette ColorTable
	// CodeSize is log2 of len(Palette), in 1..8.
	CodeSize int
	Width    int
	Height   int
	// LoopCount is written into the Netscape extension; 0 loops forever and a
	// negative value omits the extension.
	LoopCount int
	// Codec overrides the LZW implementation; nil uses StdLZW.
	Codec LZWCodec
	// Logger receives debug output per frame; nil discards it.
	Logger *slog.Logger
}

// FrameOptions produces a graphic control extension ahead of a frame.
type FrameOptions struct {
	// Delay is in hundredths of a second.
	Delay uint16
	// Flags is the raw packed graphic control byte: bit 0 enables
	// transparency and bits 2-4 hold the disposal method.
	Flags            byte
	TransparentIndex byte
}

// WithDisposal returns a copy with the disposal bits set to d.
func (o FrameOptions) WithDisposal(d DisposalMethod) FrameOptions {
	o.Flags = (o.Flags &^ gcDisposalMask) | (byte(d)<<gcDisposalShift)&gcDisposalMask
	return o
}

// WithTransparency returns a copy that marks index as transparent.
func (o FrameOptions) WithTransparency(index byte) FrameOptions {
	o.Flags |= gcTransparent
	o.TransparentIndex = index
	return o
}

// Writer encodes truecolor frames into an in-memory GIF89a stream. The
// header, global table and loop extension are emitted by NewWriter; each Push
// appends one frame and End appends the trailer. A Writer is not safe for
// concurrent use.
type Writer struct {
	out      *Buffer
	width    int
	height   int
	palette  ColorTable
	codeSize int
	quant    *quantizer
	codec    LZWCodec
	logger   *slog.Logger
	frames   int
	closed   bool
}

// NewWriter validates the options and writes the stream preamble.
func NewWriter(opts WriterOptions) (*Writer, error) {
	if opts.Width < 0 || opts.Width > MaxDimension || opts.Height < 0 || opts.Height > MaxDimension {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimensions, opts.Width, opts.Height)
	}
	if opts.LoopCount > MaxDimension {
		return nil, fmt.Errorf("%w: loop count %d", ErrInvalidDimensions, opts.LoopCount)
	}
	palette, codeSize := opts.Palette, opts.CodeSize
	if palette == nil {
		palette, codeSize = DefaultPalette(), MaxCodeSize
	}
	if codeSize < 1 || codeSize > MaxCodeSize {
		return nil, fmt.Errorf("%w: code size %d", ErrInvalidPalette, codeSize)
	}
	if len(palette) != 1<<codeSize {
		return nil, fmt.Errorf("%w: %d entries for code size %d", ErrInvalidPalette, len(palette), codeSize)
	}

	w := &Writer{
		out:      NewBuffer(opts.Width * opts.Height),
		width:    opts.Width,
		height:   opts.Height,
		palette:  palette,
		codeSize: codeSize,
		quant:    newQuantizer(palette),
		codec:    opts.Codec,
		logger:   logging.NewComponentLogger(opts.Logger, "gif.writer"),
	}
	if w.codec == nil {
		w.codec = StdLZW{}
	}

	w.out.Append([]byte(signature89a))
	w.writeLogicalScreen()
	if opts.LoopCount >= 0 {
		w.writeLoopExtension(uint16(opts.LoopCount))
	}
	w.logger.Debug("gif stream started",
		logging.Int("width", w.width),
		logging.Int("height", w.height),
		logging.Int("colors", len(palette)),
	)
	return w, nil
}

func (w *Writer) writeLogicalScreen() {
	var lsd [screenDescriptorSize]byte
	putUint16(lsd[0:2], uint16(w.width))
	putUint16(lsd[2:4], uint16(w.height))
	lsd[4] = fColorTable | byte(w.codeSize-1)
	// Background index and aspect ratio stay zero.
	w.out.Append(lsd[:])
	w.out.Append(w.palette.Bytes())
}

func (w *Writer) writeLoopExtension(count uint16) {
	w.out.Append([]byte{tagExtension, labelApplication, applicationHeaderSize})
	w.out.Append([]byte(netscapeIdentifier))
	var sub [5]byte
	sub[0] = 3
	sub[1] = 1
	putUint16(sub[2:4], count)
	w.out.Append(sub[:])
}

// litWidth is the LZW minimum code size; the format does not allow 1.
func (w *Writer) litWidth() int {
	return max(w.codeSize, MinLZWCodeSize)
}

// Push quantizes, compresses and appends one frame covering the given region.
// rgb holds width*height packed RGB triples. A failed Push leaves the output
// untouched.
func (w *Writer) Push(opts *FrameOptions, left, top, width, height int, rgb []byte) error {
	if w == nil || w.closed {
		return ErrWriterClosed
	}
	for _, v := range [...]int{left, top, width, height} {
		if v < 0 || v > MaxDimension {
			return fmt.Errorf("%w: frame %dx%d at (%d,%d)", ErrInvalidDimensions, width, height, left, top)
		}
	}
	if len(rgb) != width*height*3 {
		return fmt.Errorf("%w: %d bytes for a %dx%d region", ErrInvalidFrame, len(rgb), width, height)
	}

	indices := w.quant.quantize(rgb)
	compressed, err := w.codec.Compress(w.litWidth(), indices)
	if err != nil {
		return fmt.Errorf("gif: frame %d: %w", w.frames, err)
	}

	frame := NewBuffer(len(compressed) + len(compressed)/maxSubBlockSize + 32)
	if opts != nil {
		writeGraphicControl(frame, opts)
	}
	writeImageDescriptor(frame, left, top, width, height)
	frame.AppendByte(byte(w.litWidth()))
	writeSubBlocks(frame, compressed)
	w.out.Append(frame.Take())

	w.logger.Debug("frame written",
		logging.Int("frame", w.frames),
		logging.Int("width", width),
		logging.Int("height", height),
		logging.Int("compressed_bytes", len(compressed)),
	)
	w.frames++
	return nil
}

func writeGraphicControl(b *Buffer, opts *FrameOptions) {
	var gce [8]byte
	gce[0] = tagExtension
	gce[1] = labelGraphicControl
	gce[2] = graphicControlSize
	gce[3] = opts.Flags
	putUint16(gce[4:6], opts.Delay)
	gce[6] = opts.TransparentIndex
	gce[7] = 0
	b.Append(gce[:])
}

func writeImageDescriptor(b *Buffer, left, top, width, height int) {
	var desc [1 + imageDescriptorSize]byte
	desc[0] = tagImageDescriptor
	putUint16(desc[1:3], uint16(left))
	putUint16(desc[3:5], uint16(top))
	putUint16(desc[5:7], uint16(width))
	putUint16(desc[7:9], uint16(height))
	// No local color table, not interlaced.
	desc[9] = 0
	b.Append(desc[:])
}

// End writes the trailer and hands the encoded stream to the caller.
func (w *Writer) End() ([]byte, error) {
	if w == nil || w.closed {
		return nil, ErrWriterClosed
	}
	w.out.AppendByte(tagTrailer)
	w.closed = true
	w.logger.Debug("gif stream finished",
		logging.Int("frames", w.frames),
		logging.Int("bytes", w.out.Len()),
	)
	return w.out.Take(), nil
}

// Frames reports how many frames have been pushed.
func (w *Writer) Frames() int { return w.frames }

// Len reports the number of bytes encoded so far.
func (w *Writer) Len() int { return w.out.Len() }

// Palette returns the global color table frames are quantized against.
func (w *Writer) Palette() ColorTable { return w.palette }
