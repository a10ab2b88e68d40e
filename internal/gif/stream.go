package gif

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ByteStream is the cursor the reader walks. Both variants keep a single
// mutable position plus a remembered mark used to restart frame iteration.
type ByteStream interface {
	io.ByteReader
	// ReadFull reads exactly len(p) bytes and advances the cursor.
	ReadFull(p []byte) error
	// Skip advances the cursor by n bytes without copying.
	Skip(n int64) error
	// Offset returns the absolute cursor position.
	Offset() int64
	// SeekTo moves the cursor to an absolute position.
	SeekTo(offset int64) error
	// Mark remembers the current position as the rewind point.
	Mark()
	// Rewind returns the cursor to the remembered mark.
	Rewind() error
}

// NewStream wraps a []byte or an io.ReadSeeker (such as *os.File).
func NewStream(src any) (ByteStream, error) {
	switch v := src.(type) {
	case nil:
		return nil, ErrNilSource
	case []byte:
		if v == nil {
			return nil, ErrNilSource
		}
		return NewSliceStream(v), nil
	case ByteStream:
		return v, nil
	case io.ReadSeeker:
		return NewFileStream(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}

// SliceStream is a ByteStream over an in-memory buffer.
type SliceStream struct {
	buf  []byte
	off  int
	mark int
}

// NewSliceStream constructs a stream positioned at the start of data.
func NewSliceStream(data []byte) *SliceStream {
	return &SliceStream{buf: data}
}

func (s *SliceStream) ReadByte() (byte, error) {
	if s.off >= len(s.buf) {
		return 0, ErrShortRead
	}
	b := s.buf[s.off]
	s.off++
	return b, nil
}

func (s *SliceStream) ReadFull(p []byte) error {
	if len(p) > len(s.buf)-s.off {
		s.off = len(s.buf)
		return ErrShortRead
	}
	s.off += copy(p, s.buf[s.off:])
	return nil
}

func (s *SliceStream) Skip(n int64) error {
	if n < 0 || n > int64(len(s.buf)-s.off) {
		s.off = len(s.buf)
		return ErrShortRead
	}
	s.off += int(n)
	return nil
}

func (s *SliceStream) Offset() int64 { return int64(s.off) }

func (s *SliceStream) SeekTo(offset int64) error {
	if offset < 0 || offset > int64(len(s.buf)) {
		return fmt.Errorf("gif: seek to %d outside buffer of %d bytes", offset, len(s.buf))
	}
	s.off = int(offset)
	return nil
}

func (s *SliceStream) Mark() { s.mark = s.off }

func (s *SliceStream) Rewind() error {
	s.off = s.mark
	return nil
}

// FileStream is a ByteStream over a seekable source. Reads are buffered; the
// buffer is dropped whenever the cursor jumps.
type FileStream struct {
	rs   io.ReadSeeker
	br   *bufio.Reader
	pos  int64
	mark int64
}

// NewFileStream constructs a stream starting at the source's current offset.
func NewFileStream(rs io.ReadSeeker) (*FileStream, error) {
	if rs == nil {
		return nil, ErrNilSource
	}
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("gif: query source offset: %w", err)
	}
	return &FileStream{rs: rs, br: bufio.NewReader(rs), pos: pos, mark: pos}, nil
}

func (f *FileStream) ReadByte() (byte, error) {
	b, err := f.br.ReadByte()
	if err != nil {
		return 0, shortRead(err)
	}
	f.pos++
	return b, nil
}

func (f *FileStream) ReadFull(p []byte) error {
	n, err := io.ReadFull(f.br, p)
	f.pos += int64(n)
	if err != nil {
		return shortRead(err)
	}
	return nil
}

func (f *FileStream) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("gif: negative skip %d", n)
	}
	if n <= int64(f.br.Buffered()) {
		discarded, err := f.br.Discard(int(n))
		f.pos += int64(discarded)
		return shortRead(err)
	}
	return f.SeekTo(f.pos + n)
}

func (f *FileStream) Offset() int64 { return f.pos }

func (f *FileStream) SeekTo(offset int64) error {
	if _, err := f.rs.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("gif: seek to %d: %w", offset, err)
	}
	f.br.Reset(f.rs)
	f.pos = offset
	return nil
}

func (f *FileStream) Mark() { f.mark = f.pos }

func (f *FileStream) Rewind() error {
	return f.SeekTo(f.mark)
}

func shortRead(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortRead
	}
	return fmt.Errorf("gif: read: %w", err)
}
