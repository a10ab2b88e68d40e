package gif

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jdeng/gogif/internal/gif"
)

// Errors reported by the decoder and encoder. Compare with errors.Is.
var (
	ErrBadSignature      = gif.ErrBadSignature
	ErrMalformed         = gif.ErrMalformed
	ErrShortRead         = gif.ErrShortRead
	ErrNilSource         = gif.ErrNilSource
	ErrUnsupportedSource = gif.ErrUnsupportedSource
	ErrClosed            = gif.ErrReaderClosed
	ErrInvalidPalette    = gif.ErrInvalidPalette
	ErrInvalidDimensions = gif.ErrInvalidDimensions
	ErrInvalidFrame      = gif.ErrInvalidFrame
	ErrEncoderClosed     = gif.ErrWriterClosed
)

// DecodeOptions configures GIF decoding behavior.
type DecodeOptions struct {
	// ApplyDisposal executes each frame's disposal method before the next
	// frame is drawn. By default frames are composited additively.
	ApplyDisposal bool
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// Decoder walks the frames of a GIF stream, compositing each onto a canvas.
type Decoder struct {
	reader *gif.Reader
	closer io.Closer
}

// Open creates a decoder over src, which must be a []byte or an
// io.ReadSeeker such as *os.File. The caller keeps ownership of src.
func Open(src any, opts DecodeOptions) (*Decoder, error) {
	stream, err := gif.NewStream(src)
	if err != nil {
		return nil, err
	}
	policy := gif.DisposalIgnore
	if opts.ApplyDisposal {
		policy = gif.DisposalApply
	}
	reader, err := gif.NewReader(stream, gif.ReaderOptions{
		Disposal: policy,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Decoder{reader: reader}, nil
}

// OpenFile opens the named file and creates a decoder that owns it. Close
// releases the file.
func OpenFile(path string, opts DecodeOptions) (*Decoder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec, err := Open(file, opts)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dec.closer = file
	return dec, nil
}

// Next decodes the next frame onto the canvas.
func (d *Decoder) Next() (Result, error) {
	res, err := d.reader.Next()
	return Result(res), err
}

// Head restarts frame iteration from the first frame. The canvas keeps its
// current contents.
func (d *Decoder) Head() error {
	return d.reader.Head()
}

// Close releases the canvas and, for OpenFile decoders, the file.
func (d *Decoder) Close() error {
	if d == nil {
		return nil
	}
	d.reader.Close()
	if d.closer != nil {
		err := d.closer.Close()
		d.closer = nil
		return err
	}
	return nil
}

// Width returns the logical screen width.
func (d *Decoder) Width() int { return d.reader.Width() }

// Height returns the logical screen height.
func (d *Decoder) Height() int { return d.reader.Height() }

// Version returns "87a" or "89a".
func (d *Decoder) Version() string { return d.reader.Version().String() }

// FrameCount returns the number of images found while opening the stream.
func (d *Decoder) FrameCount() int { return d.reader.FrameCount() }

// FrameIndex returns how many frames have been decoded since open or Head.
func (d *Decoder) FrameIndex() int { return d.reader.FrameIndex() }

// LoopCount returns the animation loop count: 0 loops forever, -1 means the
// stream has no loop extension.
func (d *Decoder) LoopCount() int { return d.reader.LoopCount() }

// Comments returns the text of the stream's comment extensions.
func (d *Decoder) Comments() []string { return d.reader.Comments() }

func (d *Decoder) BackgroundIndex() uint8 { return d.reader.BackgroundIndex() }

func (d *Decoder) AspectRatio() uint8 { return d.reader.AspectRatio() }

// Palette returns the global color table, or nil when the stream has none.
func (d *Decoder) Palette() color.Palette {
	return toPalette(d.reader.GlobalColorTable())
}

// Delay returns the most recent frame's delay.
func (d *Decoder) Delay() time.Duration {
	return time.Duration(d.reader.Delay()) * 10 * time.Millisecond
}

// Disposal returns the most recent frame's disposal method.
func (d *Decoder) Disposal() Disposal { return Disposal(d.reader.Disposal()) }

// Transparency returns the most recent frame's transparent index and
// whether transparency was enabled for it.
func (d *Decoder) Transparency() (uint8, bool) {
	return d.reader.TransparentIndex(), d.reader.HasTransparency()
}

// FrameBounds returns the most recent frame's rectangle in canvas
// coordinates. It may extend past the canvas.
func (d *Decoder) FrameBounds() image.Rectangle {
	x0, y0, x1, y1 := d.reader.FrameDescriptor().Bounds()
	return image.Rect(x0, y0, x1, y1)
}

// Interlaced reports whether the most recent frame was stored interlaced.
func (d *Decoder) Interlaced() bool { return d.reader.FrameDescriptor().Interlaced }

// Canvas returns the live packed RGB canvas. It changes on every Next call.
func (d *Decoder) Canvas() []byte { return d.reader.Canvas() }

// Image returns an opaque copy of the canvas.
func (d *Decoder) Image() *image.RGBA {
	w, h := d.Width(), d.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	canvas := d.reader.Canvas()
	for i, j := 0, 0; i+2 < len(canvas); i, j = i+3, j+4 {
		img.Pix[j] = canvas[i]
		img.Pix[j+1] = canvas[i+1]
		img.Pix[j+2] = canvas[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img
}

// Result is the outcome of a single Decoder.Next call.
type Result int

const (
	// ResultFrame indicates a frame was decoded and composited.
	ResultFrame = Result(gif.ResultFrame)
	// ResultEnd indicates there are no more frames.
	ResultEnd = Result(gif.ResultEnd)
	// ResultMalformed indicates decoding stopped on invalid data.
	ResultMalformed = Result(gif.ResultMalformed)
)

func (r Result) String() string {
	return gif.Result(r).String()
}

// Disposal describes what happens to a frame's region before the next frame.
type Disposal int

const (
	DisposalNone                = Disposal(gif.DisposalNone)
	DisposalDoNotDispose        = Disposal(gif.DisposalDoNotDispose)
	DisposalRestoreToBackground = Disposal(gif.DisposalRestoreToBackground)
	DisposalRestoreToPrevious   = Disposal(gif.DisposalRestoreToPrevious)
)

func (d Disposal) String() string {
	return gif.DisposalMethod(d).String()
}

func toPalette(ct gif.ColorTable) color.Palette {
	if ct == nil {
		return nil
	}
	p := make(color.Palette, len(ct))
	for i, c := range ct {
		p[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	return p
}
