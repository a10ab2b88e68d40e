package gif

import "fmt"

// Section tags.
const (
	tagExtension       = 0x21
	tagImageDescriptor = 0x2C
	tagTrailer         = 0x3B
)

// Extension labels following tagExtension.
const (
	labelPlainText      = 0x01
	labelGraphicControl = 0xF9
	labelComment        = 0xFE
	labelApplication    = 0xFF
)

// Packed field masks.
const (
	// Logical screen and image descriptor fields.
	fColorTable     = 1 << 7
	fInterlace      = 1 << 6
	fColorTableSize = 0x07

	// Graphic control fields.
	gcTransparent   = 1 << 0
	gcUserInput     = 1 << 1
	gcDisposalMask  = 0x07 << 2
	gcDisposalShift = 2
)

// Fixed section sizes in bytes.
const (
	signatureSize         = 6
	screenDescriptorSize  = 7
	imageDescriptorSize   = 9
	graphicControlSize    = 4
	applicationHeaderSize = 11
	plainTextHeaderSize   = 12
	maxSubBlockSize       = 255
)

const (
	// MaxCodeSize is the widest palette code size a GIF color table can carry.
	MaxCodeSize = 8
	// MinLZWCodeSize is the smallest LZW minimum code size the format allows.
	MinLZWCodeSize = 2
	// MaxDimension bounds every width, height and offset field (unsigned 16-bit).
	MaxDimension = 0xFFFF
)

const (
	signature87a = "GIF87a"
	signature89a = "GIF89a"

	netscapeIdentifier = "NETSCAPE2.0"
	animextsIdentifier = "ANIMEXTS1.0"
)

// Version identifies the signature a stream was written with.
type Version int

const (
	Version87a Version = iota
	Version89a
)

func (v Version) String() string {
	switch v {
	case Version87a:
		return "87a"
	case Version89a:
		return "89a"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

// DisposalMethod is the graphic control hint describing how a frame's region
// is treated before the next frame is drawn.
type DisposalMethod uint8

const (
	DisposalNone DisposalMethod = iota
	DisposalDoNotDispose
	DisposalRestoreToBackground
	DisposalRestoreToPrevious
)

func (d DisposalMethod) String() string {
	switch d {
	case DisposalNone:
		return "None"
	case DisposalDoNotDispose:
		return "DoNotDispose"
	case DisposalRestoreToBackground:
		return "RestoreToBackground"
	case DisposalRestoreToPrevious:
		return "RestoreToPrevious"
	default:
		return fmt.Sprintf("DisposalMethod(%d)", int(d))
	}
}

// DisposalPolicy selects whether the reader executes parsed disposal methods.
type DisposalPolicy int

const (
	// DisposalIgnore composites every frame on top of the previous canvas and
	// never erases or restores pixels.
	DisposalIgnore DisposalPolicy = iota
	// DisposalApply executes each frame's disposal method before the
	// following frame is composited.
	DisposalApply
)

func (p DisposalPolicy) String() string {
	switch p {
	case DisposalIgnore:
		return "Ignore"
	case DisposalApply:
		return "Apply"
	default:
		return fmt.Sprintf("DisposalPolicy(%d)", int(p))
	}
}

// Result is the outcome of a single Reader.Next call.
type Result int

const (
	// ResultFrame means a frame was decoded and composited onto the canvas.
	ResultFrame Result = iota
	// ResultEnd means the trailer was reached; no more frames.
	ResultEnd
	// ResultMalformed means decoding stopped on invalid or truncated data.
	// The canvas is left as it was after the last good frame.
	ResultMalformed
)

func (r Result) String() string {
	switch r {
	case ResultFrame:
		return "Frame"
	case ResultEnd:
		return "End"
	case ResultMalformed:
		return "Malformed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

func readUint16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func putUint16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}
