package gif

import (
	"fmt"
	"math/bits"
)

// RGB is one color table entry.
type RGB struct {
	R, G, B uint8
}

// ColorTable is an ordered palette. Valid tables hold 2, 4, ..., 256 entries.
type ColorTable []RGB

// tableLen returns the number of entries encoded by a 3-bit size field.
func tableLen(sizeField byte) int {
	return 1 << (int(sizeField&fColorTableSize) + 1)
}

// ParseColorTable builds a table from packed RGB triples.
func ParseColorTable(data []byte) (ColorTable, error) {
	if len(data)%3 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of entries", ErrInvalidPalette, len(data))
	}
	ct := make(ColorTable, len(data)/3)
	for i := range ct {
		ct[i] = RGB{R: data[3*i], G: data[3*i+1], B: data[3*i+2]}
	}
	return ct, nil
}

func readColorTable(s ByteStream, sizeField byte) (ColorTable, error) {
	raw := make([]byte, 3*tableLen(sizeField))
	if err := s.ReadFull(raw); err != nil {
		return nil, err
	}
	return ParseColorTable(raw)
}

// CodeSize returns log2 of the table length, or false when the length is not
// a power of two in [2,256].
func (ct ColorTable) CodeSize() (int, bool) {
	n := len(ct)
	if n < 2 || n > 256 || n&(n-1) != 0 {
		return 0, false
	}
	return bits.TrailingZeros(uint(n)), true
}

// SizeField returns the packed 3-bit size value describing the table.
func (ct ColorTable) SizeField() (byte, bool) {
	size, ok := ct.CodeSize()
	if !ok {
		return 0, false
	}
	return byte(size - 1), true
}

// Bytes packs the table as consecutive RGB triples.
func (ct ColorTable) Bytes() []byte {
	out := make([]byte, 3*len(ct))
	for i, c := range ct {
		out[3*i] = c.R
		out[3*i+1] = c.G
		out[3*i+2] = c.B
	}
	return out
}

// defaultPalette is the 3-3-2 cube used when the writer gets no palette:
// red and green step by 32, blue by 64.
var defaultPalette = func() [256]RGB {
	var p [256]RGB
	for i := range p {
		p[i] = RGB{
			R: uint8(i>>5) * 32,
			G: uint8((i>>2)&0x07) * 32,
			B: uint8(i&0x03) * 64,
		}
	}
	return p
}()

// DefaultPalette returns a copy of the built-in 256-entry palette.
func DefaultPalette() ColorTable {
	p := defaultPalette
	return ColorTable(p[:])
}

// GrayscalePalette returns a 256-step gray ramp.
func GrayscalePalette() ColorTable {
	ct := make(ColorTable, 256)
	for i := range ct {
		v := uint8(i)
		ct[i] = RGB{R: v, G: v, B: v}
	}
	return ct
}

// WebSafePalette returns the 216-color web cube padded with black to 256 entries.
func WebSafePalette() ColorTable {
	ct := make(ColorTable, 256)
	i := 0
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				ct[i] = RGB{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
				i++
			}
		}
	}
	return ct
}
