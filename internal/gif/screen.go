package gif

import (
	"fmt"
	"strings"
)

// LogicalScreen captures the stream-wide canvas description.
type LogicalScreen struct {
	Width           uint16
	Height          uint16
	BackgroundIndex byte
	AspectRatio     byte
	// Global is nil when the global color table flag is clear.
	Global ColorTable
}

// GraphicControl is the state set by a graphic control extension. It applies
// to the next image only.
type GraphicControl struct {
	Disposal         DisposalMethod
	Delay            uint16
	UserInput        bool
	HasTransparency  bool
	TransparentIndex byte
}

// ImageDescriptor describes one frame's region and its optional local table.
type ImageDescriptor struct {
	Left       uint16
	Top        uint16
	Width      uint16
	Height     uint16
	Interlaced bool
	// Local is nil when the frame uses the global table.
	Local ColorTable
}

// Bounds reports the frame rectangle as left, top, right, bottom.
func (d ImageDescriptor) Bounds() (int, int, int, int) {
	return int(d.Left), int(d.Top), int(d.Left) + int(d.Width), int(d.Top) + int(d.Height)
}

func readSignature(s ByteStream) (Version, error) {
	var sig [signatureSize]byte
	if err := s.ReadFull(sig[:]); err != nil {
		return 0, fmt.Errorf("%w: reading header: %v", ErrBadSignature, err)
	}
	switch string(sig[:]) {
	case signature87a:
		return Version87a, nil
	case signature89a:
		return Version89a, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadSignature, sig[:])
	}
}

func readLogicalScreen(s ByteStream) (LogicalScreen, error) {
	var lsd [screenDescriptorSize]byte
	if err := s.ReadFull(lsd[:]); err != nil {
		return LogicalScreen{}, fmt.Errorf("gif: reading logical screen descriptor: %w", err)
	}
	screen := LogicalScreen{
		Width:           readUint16(lsd[0:2]),
		Height:          readUint16(lsd[2:4]),
		BackgroundIndex: lsd[5],
		AspectRatio:     lsd[6],
	}
	if flags := lsd[4]; flags&fColorTable != 0 {
		ct, err := readColorTable(s, flags&fColorTableSize)
		if err != nil {
			return LogicalScreen{}, fmt.Errorf("gif: reading global color table: %w", err)
		}
		screen.Global = ct
	}
	return screen, nil
}

func readGraphicControl(s ByteStream) (GraphicControl, error) {
	size, err := s.ReadByte()
	if err != nil {
		return GraphicControl{}, err
	}
	if size < graphicControlSize {
		return GraphicControl{}, fmt.Errorf("%w: graphic control block size %d", ErrMalformed, size)
	}
	body := make([]byte, size)
	if err := s.ReadFull(body); err != nil {
		return GraphicControl{}, err
	}
	// The block is followed by a terminator, or in broken encoders by more data.
	if err := skipSubBlocks(s); err != nil {
		return GraphicControl{}, err
	}
	flags := body[0]
	gc := GraphicControl{
		Disposal:  DisposalMethod((flags & gcDisposalMask) >> gcDisposalShift),
		Delay:     readUint16(body[1:3]),
		UserInput: flags&gcUserInput != 0,
	}
	if flags&gcTransparent != 0 {
		gc.HasTransparency = true
		gc.TransparentIndex = body[3]
	}
	return gc, nil
}

func readImageDescriptor(s ByteStream) (ImageDescriptor, error) {
	var hdr [imageDescriptorSize]byte
	if err := s.ReadFull(hdr[:]); err != nil {
		return ImageDescriptor{}, err
	}
	desc := ImageDescriptor{
		Left:       readUint16(hdr[0:2]),
		Top:        readUint16(hdr[2:4]),
		Width:      readUint16(hdr[4:6]),
		Height:     readUint16(hdr[6:8]),
		Interlaced: hdr[8]&fInterlace != 0,
	}
	if hdr[8]&fColorTable != 0 {
		ct, err := readColorTable(s, hdr[8]&fColorTableSize)
		if err != nil {
			return ImageDescriptor{}, err
		}
		desc.Local = ct
	}
	return desc, nil
}

// skipImage advances past an image descriptor body without decompressing.
func skipImage(s ByteStream) error {
	var hdr [imageDescriptorSize]byte
	if err := s.ReadFull(hdr[:]); err != nil {
		return err
	}
	if hdr[8]&fColorTable != 0 {
		if err := s.Skip(int64(3 * tableLen(hdr[8]&fColorTableSize))); err != nil {
			return err
		}
	}
	// LZW minimum code size.
	if _, err := s.ReadByte(); err != nil {
		return err
	}
	return skipSubBlocks(s)
}

// extensionInfo collects what the prescan keeps from non-image extensions.
type extensionInfo struct {
	loopCount  int
	hasLoop    bool
	comment    string
	hasComment bool
}

// readExtension consumes one extension other than graphic control, starting
// at its label. Unknown labels are skipped as plain sub-block chains.
func readExtension(s ByteStream, label byte) (extensionInfo, error) {
	var info extensionInfo
	switch label {
	case labelComment:
		var sb strings.Builder
		buf := make([]byte, maxSubBlockSize)
		for {
			size, err := s.ReadByte()
			if err != nil {
				return info, err
			}
			if size == 0 {
				break
			}
			if err := s.ReadFull(buf[:size]); err != nil {
				return info, err
			}
			sb.Write(buf[:size])
		}
		info.comment, info.hasComment = sb.String(), true
		return info, nil
	case labelApplication:
		size, err := s.ReadByte()
		if err != nil {
			return info, err
		}
		header := make([]byte, size)
		if err := s.ReadFull(header); err != nil {
			return info, err
		}
		id := string(header)
		if id != netscapeIdentifier && id != animextsIdentifier {
			return info, skipSubBlocks(s)
		}
		return readLoopBlocks(s)
	case labelPlainText:
		size, err := s.ReadByte()
		if err != nil {
			return info, err
		}
		if err := s.Skip(int64(size)); err != nil {
			return info, err
		}
		return info, skipSubBlocks(s)
	case labelGraphicControl:
		_, err := readGraphicControl(s)
		return info, err
	default:
		return info, skipSubBlocks(s)
	}
}

func readLoopBlocks(s ByteStream) (extensionInfo, error) {
	var info extensionInfo
	buf := make([]byte, maxSubBlockSize)
	for {
		size, err := s.ReadByte()
		if err != nil {
			return info, err
		}
		if size == 0 {
			return info, nil
		}
		if err := s.ReadFull(buf[:size]); err != nil {
			return info, err
		}
		if size >= 3 && buf[0] == 1 {
			info.loopCount = int(readUint16(buf[1:3]))
			info.hasLoop = true
		}
	}
}
