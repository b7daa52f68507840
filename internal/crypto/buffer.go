package crypto

// Buffer is a growable byte workspace for in-place AEAD operations. Append
// always reserves TagSize bytes of headroom beyond the current length, so
// sealing in place never reallocates the backing array.
//
// A Buffer holds no cryptographic state and is not safe for concurrent use;
// each encryption or decryption call gets its own.
type Buffer struct {
	data []byte
}

// NewBuffer creates an empty buffer sized to hold n bytes of content plus
// the authentication tag.
func NewBuffer(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	return &Buffer{
		data: make([]byte, 0, n+TagSize),
	}
}

// Append adds p to the end of the buffer, growing the backing array with
// tag headroom if needed.
func (b *Buffer) Append(p []byte) {
	need := len(b.data) + len(p) + TagSize
	if cap(b.data) < need {
		grown := make([]byte, len(b.data), need)
		copy(grown, b.data)
		b.data = grown
	}
	b.data = append(b.data, p...)
}

// Truncate shortens the buffer to n bytes. It is a no-op if n is negative
// or beyond the current length.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.data) {
		return
	}
	b.data = b.data[:n]
}

// Bytes returns the current contents. The slice aliases the buffer's
// storage and is only valid until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the current content length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// adopt replaces the buffer contents with the result of an in-place AEAD
// call. The slice is expected to share the buffer's backing array.
func (b *Buffer) adopt(p []byte) {
	b.data = p
}
