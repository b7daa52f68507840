package crypto

import (
	"bytes"
	"testing"
)

func TestBufferAppend(t *testing.T) {
	buf := NewBuffer(0)
	if buf.Len() != 0 {
		t.Errorf("New buffer length: got %d, want 0", buf.Len())
	}

	buf.Append([]byte("hello"))
	buf.Append([]byte(" world"))

	if buf.Len() != 11 {
		t.Errorf("Length after appends: got %d, want 11", buf.Len())
	}
	if !bytes.Equal(buf.Bytes(), []byte("hello world")) {
		t.Errorf("Contents: got %q", buf.Bytes())
	}
}

func TestBufferTagHeadroom(t *testing.T) {
	plaintext := []byte("some plaintext content")
	buf := NewBuffer(len(plaintext))
	buf.Append(plaintext)

	// Sealing appends TagSize bytes; the backing array must already hold them.
	if cap(buf.Bytes()) < buf.Len()+TagSize {
		t.Errorf("Capacity %d leaves no room for a %d-byte tag past %d bytes",
			cap(buf.Bytes()), TagSize, buf.Len())
	}
}

func TestBufferGrowsPastHint(t *testing.T) {
	buf := NewBuffer(4)
	buf.Append([]byte("longer than the size hint"))

	if cap(buf.Bytes()) < buf.Len()+TagSize {
		t.Errorf("Capacity %d after growth leaves no tag headroom", cap(buf.Bytes()))
	}
	if !bytes.Equal(buf.Bytes(), []byte("longer than the size hint")) {
		t.Errorf("Contents after growth: got %q", buf.Bytes())
	}
}

func TestBufferTruncate(t *testing.T) {
	buf := NewBuffer(16)
	buf.Append([]byte("0123456789"))

	buf.Truncate(4)
	if !bytes.Equal(buf.Bytes(), []byte("0123")) {
		t.Errorf("After Truncate(4): got %q", buf.Bytes())
	}

	// Out-of-range truncation is a no-op
	buf.Truncate(100)
	if buf.Len() != 4 {
		t.Errorf("Truncate past length should be a no-op, length is %d", buf.Len())
	}
	buf.Truncate(-1)
	if buf.Len() != 4 {
		t.Errorf("Negative truncate should be a no-op, length is %d", buf.Len())
	}

	buf.Truncate(0)
	if buf.Len() != 0 {
		t.Errorf("After Truncate(0): length is %d", buf.Len())
	}
}
