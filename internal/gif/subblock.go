package gif

import "fmt"

// skipSubBlocks advances past a chain of length-prefixed sub-blocks,
// including the zero-length terminator.
func skipSubBlocks(s ByteStream) error {
	for {
		size, err := s.ReadByte()
		if err != nil {
			return err
		}
		if size == 0 {
			return nil
		}
		if err := s.Skip(int64(size)); err != nil {
			return err
		}
	}
}

// measureSubBlocks returns the total payload length of the sub-block chain at
// the cursor and leaves the cursor where it started.
func measureSubBlocks(s ByteStream) (int, error) {
	start := s.Offset()
	total := 0
	if err := walkSubBlocks(s, func(size int) { total += size }); err != nil {
		return 0, err
	}
	if err := s.SeekTo(start); err != nil {
		return 0, err
	}
	return total, nil
}

func walkSubBlocks(s ByteStream, visit func(size int)) error {
	for {
		size, err := s.ReadByte()
		if err != nil {
			return err
		}
		if size == 0 {
			return nil
		}
		visit(int(size))
		if err := s.Skip(int64(size)); err != nil {
			return err
		}
	}
}

// readSubBlocks concatenates the sub-block payloads into a buffer of exactly
// total bytes, as measured beforehand.
func readSubBlocks(s ByteStream, total int) ([]byte, error) {
	data := make([]byte, total)
	pos := 0
	for {
		size, err := s.ReadByte()
		if err != nil {
			return nil, err
		}
		if size == 0 {
			break
		}
		if pos+int(size) > total {
			return nil, fmt.Errorf("%w: sub-blocks exceed measured length %d", ErrMalformed, total)
		}
		if err := s.ReadFull(data[pos : pos+int(size)]); err != nil {
			return nil, err
		}
		pos += int(size)
	}
	if pos != total {
		return nil, fmt.Errorf("%w: sub-blocks hold %d bytes, measured %d", ErrMalformed, pos, total)
	}
	return data, nil
}

// writeSubBlocks emits data as 255-byte sub-blocks, one short final block and
// a zero-length terminator.
func writeSubBlocks(b *Buffer, data []byte) {
	for len(data) > maxSubBlockSize {
		b.AppendByte(maxSubBlockSize)
		b.AppendN(data, maxSubBlockSize)
		data = data[maxSubBlockSize:]
	}
	if len(data) > 0 {
		b.AppendByte(byte(len(data)))
		b.Append(data)
	}
	b.AppendByte(0)
}
