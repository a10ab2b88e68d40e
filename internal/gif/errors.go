package gif

import "errors"

var (
	// ErrNilSource is returned when a reader is opened without a byte source.
	ErrNilSource = errors.New("gif: nil source")
	// ErrUnsupportedSource is returned by NewStream for sources that are
	// neither a byte slice nor an io.ReadSeeker.
	ErrUnsupportedSource = errors.New("gif: unsupported source type")
	// ErrBadSignature is returned when the first six bytes are not GIF87a or GIF89a.
	ErrBadSignature = errors.New("gif: bad signature")
	// ErrShortRead is returned when the stream ends inside a section.
	ErrShortRead = errors.New("gif: unexpected end of stream")
	// ErrMalformed wraps every structural decoding failure.
	ErrMalformed = errors.New("gif: malformed stream")
	// ErrReaderClosed is returned by operations on a closed reader.
	ErrReaderClosed = errors.New("gif: reader closed")

	// ErrInvalidPalette is returned when a palette does not match its code size.
	ErrInvalidPalette = errors.New("gif: invalid palette")
	// ErrInvalidDimensions is returned for sizes or offsets outside 0..65535.
	ErrInvalidDimensions = errors.New("gif: invalid dimensions")
	// ErrInvalidFrame is returned when a pushed image does not match its region.
	ErrInvalidFrame = errors.New("gif: invalid frame")
	// ErrWriterClosed is returned by Push and End after End has run.
	ErrWriterClosed = errors.New("gif: writer closed")
)
