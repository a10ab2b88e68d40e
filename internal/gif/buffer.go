package gif

// Buffer is the growable byte sequence the writer accumulates output in.
type Buffer struct {
	data []byte
}

// NewBuffer allocates a buffer with capacity hint bytes.
func NewBuffer(hint int) *Buffer {
	if hint < 0 {
		hint = 0
	}
	return &Buffer{data: make([]byte, 0, hint)}
}

// Append copies p onto the end of the buffer.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.data = append(b.data, c)
}

// AppendN appends the first n bytes of p.
func (b *Buffer) AppendN(p []byte, n int) {
	if n > len(p) {
		n = len(p)
	}
	if n <= 0 {
		return
	}
	b.data = append(b.data, p[:n]...)
}

// Len reports the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes exposes the accumulated bytes without transferring ownership.
func (b *Buffer) Bytes() []byte { return b.data }

// Take hands the accumulated bytes to the caller and leaves the buffer empty.
func (b *Buffer) Take() []byte {
	out := b.data
	b.data = nil
	return out
}
