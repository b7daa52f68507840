package crypto

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestNewContext(t *testing.T) {
	kdf, err := NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}
	keyHex := kdf.DeriveKeyHex([]byte("password"), []byte("salt"), 2)

	ctx, err := NewContext(keyHex)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	// Nonce is the ASCII of the first 12 hex characters, not decoded bytes
	if !bytes.Equal(ctx.Nonce(), []byte(keyHex[:NonceSize])) {
		t.Errorf("Nonce: got %q, want %q", ctx.Nonce(), keyHex[:NonceSize])
	}
}

func TestNewContextShortNonceSource(t *testing.T) {
	for _, keyHex := range []string{"", "abc", "0123456789a"} {
		if _, err := NewContext(keyHex); !errors.Is(err, ErrNonceSource) {
			t.Errorf("NewContext(%q): got %v, want ErrNonceSource", keyHex, err)
		}
	}

	// Exactly 12 bytes is enough
	if _, err := NewContext("0123456789ab"); err != nil {
		t.Errorf("NewContext with 12-byte source failed: %v", err)
	}
}

func TestNewContextWithKey(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, KeySize)
	if _, err := NewContext("0123456789ab", WithKey(key)); err != nil {
		t.Errorf("NewContext with explicit key failed: %v", err)
	}

	if _, err := NewContext("0123456789ab", WithKey(key[:16])); err == nil {
		t.Error("Expected error for 16-byte key")
	}
}

func TestNewContextWithRandom(t *testing.T) {
	// A deterministic source must produce a reproducible context
	seed := bytes.Repeat([]byte{0x07}, KeySize)

	ctxA, err := NewContext("0123456789ab", WithRandom(bytes.NewReader(seed)))
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	ctxB, err := NewContext("0123456789ab", WithRandom(bytes.NewReader(seed)))
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	sealer := NewSealer()
	a, err := sealer.Seal(ctxA, "plaintext")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	b, err := sealer.Seal(ctxB, "plaintext")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if a != b {
		t.Error("Contexts from the same random bytes should seal identically")
	}
}

func TestNewContextRandomFailure(t *testing.T) {
	// An exhausted source cannot supply 32 key bytes
	short := bytes.NewReader([]byte{0x01, 0x02})
	if _, err := NewContext("0123456789ab", WithRandom(short)); err == nil {
		t.Error("Expected error from exhausted random source")
	}

	if _, err := NewContext("0123456789ab", WithRandom(failingReader{})); err == nil {
		t.Error("Expected error from failing random source")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}
