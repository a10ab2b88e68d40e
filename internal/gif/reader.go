package gif

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jdeng/gogif/internal/logging"
)

// ReaderOptions configures a Reader.
type ReaderOptions struct {
	// Disposal selects whether parsed disposal methods are executed.
	Disposal DisposalPolicy
	// Codec overrides the LZW implementation; nil uses StdLZW.
	Codec LZWCodec
	// Logger receives debug output for sections and frames; nil discards it.
	Logger *slog.Logger
}

// frameState is what the reader remembers about the most recent frame.
type frameState struct {
	desc ImageDescriptor
	gc   GraphicControl
}

// Reader decodes a GIF stream frame by frame onto a persistent RGB canvas.
// A Reader is not safe for concurrent use.
type Reader struct {
	src    ByteStream
	codec  LZWCodec
	logger *slog.Logger
	policy DisposalPolicy

	version    Version
	screen     LogicalScreen
	canvas     []byte
	frameCount int
	loopCount  int
	comments   []string

	pending    GraphicControl
	hasPending bool
	frame      frameState
	frameIndex int

	done    bool
	doneRes Result
	doneErr error

	// Disposal bookkeeping for DisposalApply.
	prevFrame    *frameState
	prevSnapshot []byte

	closed bool
}

// NewReader parses the header and logical screen, allocates the canvas,
// prescans the stream to count frames and rewinds to the first section.
// Damage after the logical screen does not fail NewReader; it surfaces as
// ResultMalformed from Next once the intact frames have been decoded.
func NewReader(src ByteStream, opts ReaderOptions) (*Reader, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	r := &Reader{
		src:       src,
		codec:     opts.Codec,
		logger:    logging.NewComponentLogger(opts.Logger, "gif.reader"),
		policy:    opts.Disposal,
		loopCount: -1,
	}
	if r.codec == nil {
		r.codec = StdLZW{}
	}

	version, err := readSignature(src)
	if err != nil {
		return nil, err
	}
	r.version = version

	screen, err := readLogicalScreen(src)
	if err != nil {
		return nil, err
	}
	r.screen = screen
	r.canvas = make([]byte, int(screen.Width)*int(screen.Height)*3)

	src.Mark()
	if err := r.prescan(); err != nil {
		// Frames before the damage stay decodable; Next reports the rest.
		r.logger.Debug("prescan stopped early",
			logging.Int("frames", r.frameCount),
			logging.Error(err),
		)
	}
	if err := src.Rewind(); err != nil {
		return nil, fmt.Errorf("gif: rewind after prescan: %w", err)
	}

	r.logger.Debug("gif stream opened",
		logging.String("version", version.String()),
		logging.Int("width", int(screen.Width)),
		logging.Int("height", int(screen.Height)),
		logging.Int("frames", r.frameCount),
		logging.Int("global_colors", len(screen.Global)),
	)
	return r, nil
}

// prescan walks every section from the current cursor to the trailer,
// counting image descriptors without decompressing pixel data. It stops at
// the first unknown tag or truncated section and returns why; frameCount
// then holds the images fully walked before that point.
func (r *Reader) prescan() error {
	for {
		tag, err := r.src.ReadByte()
		if err != nil {
			if errors.Is(err, ErrShortRead) {
				// A stream that ends on a section boundary is treated as if
				// the trailer were present.
				return nil
			}
			return err
		}
		switch tag {
		case tagExtension:
			label, err := r.src.ReadByte()
			if err != nil {
				return malformed("prescan extension label", err)
			}
			info, err := readExtension(r.src, label)
			if err != nil {
				return malformed("prescan extension", err)
			}
			if info.hasLoop {
				r.loopCount = info.loopCount
			}
			if info.hasComment {
				r.comments = append(r.comments, info.comment)
			}
		case tagImageDescriptor:
			if err := skipImage(r.src); err != nil {
				return malformed(fmt.Sprintf("prescan image %d", r.frameCount), err)
			}
			r.frameCount++
		case tagTrailer:
			return nil
		default:
			return fmt.Errorf("%w: unknown section tag 0x%02x at offset %d", ErrMalformed, tag, r.src.Offset()-1)
		}
	}
}

// Next decodes the next frame and composites it onto the canvas. Once the
// trailer or a malformed section has been reached the same result is
// returned until Head is called.
func (r *Reader) Next() (Result, error) {
	if r == nil || r.closed {
		return ResultMalformed, ErrReaderClosed
	}
	if r.done {
		return r.doneRes, r.doneErr
	}
	for {
		tag, err := r.src.ReadByte()
		if err != nil {
			if errors.Is(err, ErrShortRead) {
				return r.finish(ResultEnd, nil)
			}
			return r.finish(ResultMalformed, malformed("read section tag", err))
		}
		switch tag {
		case tagExtension:
			if err := r.extension(); err != nil {
				return r.finish(ResultMalformed, malformed("extension", err))
			}
		case tagImageDescriptor:
			if err := r.decodeFrame(); err != nil {
				return r.finish(ResultMalformed, malformed(fmt.Sprintf("frame %d", r.frameIndex), err))
			}
			return ResultFrame, nil
		case tagTrailer:
			return r.finish(ResultEnd, nil)
		default:
			err := fmt.Errorf("%w: unknown section tag 0x%02x at offset %d", ErrMalformed, tag, r.src.Offset()-1)
			return r.finish(ResultMalformed, err)
		}
	}
}

func (r *Reader) extension() error {
	label, err := r.src.ReadByte()
	if err != nil {
		return err
	}
	if label == labelGraphicControl {
		gc, err := readGraphicControl(r.src)
		if err != nil {
			return err
		}
		r.pending, r.hasPending = gc, true
		r.logger.Debug("graphic control",
			logging.String("disposal", gc.Disposal.String()),
			logging.Int("delay", int(gc.Delay)),
			logging.Bool("transparent", gc.HasTransparency),
		)
		return nil
	}
	_, err = readExtension(r.src, label)
	return err
}

func (r *Reader) decodeFrame() error {
	desc, err := readImageDescriptor(r.src)
	if err != nil {
		return err
	}
	litWidth, err := r.src.ReadByte()
	if err != nil {
		return err
	}
	if litWidth < MinLZWCodeSize || litWidth > MaxCodeSize {
		return fmt.Errorf("%w: LZW code size %d", ErrMalformed, litWidth)
	}
	total, err := measureSubBlocks(r.src)
	if err != nil {
		return err
	}
	compressed, err := readSubBlocks(r.src, total)
	if err != nil {
		return err
	}

	var gc GraphicControl
	if r.hasPending {
		gc = r.pending
	}
	r.pending, r.hasPending = GraphicControl{}, false

	palette := desc.Local
	if palette == nil {
		palette = r.screen.Global
	}
	if len(palette) == 0 {
		return fmt.Errorf("%w: frame has no color table", ErrMalformed)
	}

	n := int(desc.Width) * int(desc.Height)
	indices, err := r.codec.Decompress(int(litWidth), compressed, n)
	if err != nil {
		return err
	}
	if len(indices) < n {
		return fmt.Errorf("%w: %d of %d pixels decoded", ErrMalformed, len(indices), n)
	}
	indices = indices[:n]
	if desc.Interlaced {
		indices = deinterlace(indices, int(desc.Width), int(desc.Height))
	}
	if err := checkIndices(indices, palette, gc); err != nil {
		return err
	}

	if r.policy == DisposalApply {
		r.dispose()
		if gc.Disposal == DisposalRestoreToPrevious {
			r.prevSnapshot = append(r.prevSnapshot[:0], r.canvas...)
		}
	}
	r.composite(desc, palette, gc, indices)

	r.frame = frameState{desc: desc, gc: gc}
	if r.policy == DisposalApply {
		f := r.frame
		r.prevFrame = &f
	}
	r.logger.Debug("frame composited",
		logging.Int("frame", r.frameIndex),
		logging.Int("left", int(desc.Left)),
		logging.Int("top", int(desc.Top)),
		logging.Int("width", int(desc.Width)),
		logging.Int("height", int(desc.Height)),
		logging.Bool("local_table", desc.Local != nil),
		logging.Int("compressed_bytes", total),
	)
	r.frameIndex++
	return nil
}

func (r *Reader) finish(res Result, err error) (Result, error) {
	r.done, r.doneRes, r.doneErr = true, res, err
	if err != nil {
		r.logger.Debug("decode stopped", logging.Error(err))
	}
	return res, err
}

// Head rewinds to the first section after the logical screen so frames can
// be decoded again. The canvas, tables and frame count are kept.
func (r *Reader) Head() error {
	if r == nil || r.closed {
		return ErrReaderClosed
	}
	if err := r.src.Rewind(); err != nil {
		return err
	}
	r.done, r.doneRes, r.doneErr = false, ResultFrame, nil
	r.pending, r.hasPending = GraphicControl{}, false
	r.frame = frameState{}
	r.frameIndex = 0
	r.prevFrame = nil
	r.prevSnapshot = nil
	return nil
}

// Close releases the canvas and color tables. It is safe to call more than once.
func (r *Reader) Close() {
	if r == nil {
		return
	}
	r.canvas = nil
	r.screen.Global = nil
	r.frame = frameState{}
	r.prevFrame = nil
	r.prevSnapshot = nil
	r.comments = nil
	r.closed = true
}

func (r *Reader) Version() Version { return r.version }
func (r *Reader) Width() int { return int(r.screen.Width) }
func (r *Reader) Height() int { return int(r.screen.Height) }
func (r *Reader) FrameCount() int { return r.frameCount }
func (r *Reader) Screen() LogicalScreen { return r.screen }
func (r *Reader) BackgroundIndex() byte { return r.screen.BackgroundIndex }
func (r *Reader) AspectRatio() byte { return r.screen.AspectRatio }
func (r *Reader) GlobalColorTable() ColorTable { return r.screen.Global }

// LoopCount returns the Netscape loop count, 0 for infinite, or -1 when the
// stream carries no loop extension.
func (r *Reader) LoopCount() int { return r.loopCount }

// Comments returns the text of every comment extension, in stream order.
func (r *Reader) Comments() []string { return r.comments }

// FrameIndex returns the number of frames decoded since open or the last Head.
func (r *Reader) FrameIndex() int { return r.frameIndex }

// Delay returns the delay of the most recent frame in hundredths of a second.
func (r *Reader) Delay() int { return int(r.frame.gc.Delay) }

// Disposal returns the disposal method declared for the most recent frame.
func (r *Reader) Disposal() DisposalMethod { return r.frame.gc.Disposal }

// HasTransparency reports whether the most recent frame had a transparent index.
func (r *Reader) HasTransparency() bool { return r.frame.gc.HasTransparency }

// TransparentIndex returns the most recent frame's transparent index.
func (r *Reader) TransparentIndex() byte { return r.frame.gc.TransparentIndex }

// FrameDescriptor returns the image descriptor of the most recent frame.
func (r *Reader) FrameDescriptor() ImageDescriptor { return r.frame.desc }

// Canvas exposes the live RGB canvas. It is overwritten by every Next call.
func (r *Reader) Canvas() []byte { return r.canvas }

func malformed(what string, err error) error {
	if errors.Is(err, ErrMalformed) {
		return fmt.Errorf("gif: %s: %w", what, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformed, what, err)
}
