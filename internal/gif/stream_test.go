package gif

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestSliceStreamReadSkipRewind(t *testing.T) {
	stream := NewSliceStream([]byte{1, 2, 3, 4, 5, 6})

	b, err := stream.ReadByte()
	if err != nil || b != 1 {
		t.Fatalf("ReadByte = %d, %v; want 1, nil", b, err)
	}
	stream.Mark()

	if err := stream.Skip(2); err != nil {
		t.Fatalf("Skip(2) failed: %v", err)
	}
	buf := make([]byte, 2)
	if err := stream.ReadFull(buf); err != nil {
		t.Fatalf("ReadFull failed: %v", err)
	}
	if !bytes.Equal(buf, []byte{4, 5}) {
		t.Errorf("ReadFull got %v, want [4 5]", buf)
	}
	if stream.Offset() != 5 {
		t.Errorf("Offset = %d, want 5", stream.Offset())
	}

	if err := stream.Rewind(); err != nil {
		t.Fatalf("Rewind failed: %v", err)
	}
	if b, _ := stream.ReadByte(); b != 2 {
		t.Errorf("after Rewind got %d, want 2", b)
	}
}

func TestSliceStreamShortRead(t *testing.T) {
	stream := NewSliceStream([]byte{1, 2})

	if err := stream.ReadFull(make([]byte, 3)); !errors.Is(err, ErrShortRead) {
		t.Fatalf("ReadFull past end: got %v, want ErrShortRead", err)
	}
	if _, err := stream.ReadByte(); !errors.Is(err, ErrShortRead) {
		t.Fatalf("ReadByte at end: got %v, want ErrShortRead", err)
	}
	if err := NewSliceStream([]byte{1}).Skip(2); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Skip past end: got %v, want ErrShortRead", err)
	}
	if err := stream.SeekTo(3); err == nil {
		t.Fatal("expected SeekTo past end to fail")
	}
}

func TestFileStreamMatchesSliceStream(t *testing.T) {
	data := make([]byte, 10000)
	for i := range data {
		data[i] = byte(i * 7)
	}
	// The file stream starts wherever the source is positioned.
	src := bytes.NewReader(data)
	if _, err := src.Seek(3, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	fs, err := NewFileStream(src)
	if err != nil {
		t.Fatalf("NewFileStream failed: %v", err)
	}
	ss := NewSliceStream(data)
	if err := ss.Skip(3); err != nil {
		t.Fatal(err)
	}

	streams := []ByteStream{fs, ss}
	for _, s := range streams {
		s.Mark()
	}
	steps := []func(s ByteStream) (byte, error){
		func(s ByteStream) (byte, error) { return s.ReadByte() },
		func(s ByteStream) (byte, error) { return 0, s.Skip(10) },
		func(s ByteStream) (byte, error) { return s.ReadByte() },
		func(s ByteStream) (byte, error) { return 0, s.Skip(6000) },
		func(s ByteStream) (byte, error) {
			buf := make([]byte, 40)
			err := s.ReadFull(buf)
			return buf[39], err
		},
		func(s ByteStream) (byte, error) { return 0, s.Rewind() },
		func(s ByteStream) (byte, error) { return s.ReadByte() },
	}
	for i, step := range steps {
		fb, ferr := step(fs)
		sb, serr := step(ss)
		if ferr != nil || serr != nil {
			t.Fatalf("step %d: file err %v, slice err %v", i, ferr, serr)
		}
		if fb != sb {
			t.Errorf("step %d: file read %d, slice read %d", i, fb, sb)
		}
		if fs.Offset() != ss.Offset() {
			t.Errorf("step %d: file offset %d, slice offset %d", i, fs.Offset(), ss.Offset())
		}
	}
}

func TestFileStreamShortRead(t *testing.T) {
	fs, err := NewFileStream(bytes.NewReader([]byte{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.ReadFull(make([]byte, 4)); !errors.Is(err, ErrShortRead) {
		t.Fatalf("got %v, want ErrShortRead", err)
	}
}

func TestNewStreamSourceKinds(t *testing.T) {
	if _, err := NewStream(nil); !errors.Is(err, ErrNilSource) {
		t.Errorf("nil source: got %v, want ErrNilSource", err)
	}
	if _, err := NewStream([]byte(nil)); !errors.Is(err, ErrNilSource) {
		t.Errorf("nil slice: got %v, want ErrNilSource", err)
	}
	if _, err := NewStream(42); !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("int source: got %v, want ErrUnsupportedSource", err)
	}
	if s, err := NewStream([]byte{0}); err != nil {
		t.Errorf("slice source failed: %v", err)
	} else if _, ok := s.(*SliceStream); !ok {
		t.Errorf("slice source produced %T", s)
	}
	if s, err := NewStream(bytes.NewReader([]byte{0})); err != nil {
		t.Errorf("reader source failed: %v", err)
	} else if _, ok := s.(*FileStream); !ok {
		t.Errorf("reader source produced %T", s)
	}
}
