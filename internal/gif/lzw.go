package gif

import (
	"bytes"
	"compress/lzw"
	"fmt"
	"io"
)

// LZWCodec is the entropy coder the reader and writer delegate to.
type LZWCodec interface {
	// Decompress expands compressed into exactly expected palette indices.
	Decompress(litWidth int, compressed []byte, expected int) ([]byte, error)
	// Compress encodes palette indices with the given minimum code size.
	Compress(litWidth int, indices []byte) ([]byte, error)
}

// StdLZW implements LZWCodec with the GIF (LSB-first) variant of compress/lzw.
type StdLZW struct{}

func (StdLZW) Decompress(litWidth int, compressed []byte, expected int) ([]byte, error) {
	r := lzw.NewReader(bytes.NewReader(compressed), lzw.LSB, litWidth)
	defer r.Close()

	out := make([]byte, expected)
	// Reading exactly expected bytes tolerates encoders that omit the
	// end-of-information code.
	n, err := io.ReadFull(r, out)
	if err != nil {
		return out[:n], fmt.Errorf("gif: lzw decompress (%d of %d indices): %w", n, expected, err)
	}
	return out, nil
}

func (StdLZW) Compress(litWidth int, indices []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.LSB, litWidth)
	if _, err := w.Write(indices); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("gif: lzw compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gif: lzw compress: %w", err)
	}
	return buf.Bytes(), nil
}
