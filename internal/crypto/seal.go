package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrAuthFailed        = errors.New("authentication failed")
)

// Sealer performs authenticated encryption of plaintexts under a cipher
// context. It is the extension point for alternative AEAD backends.
type Sealer interface {
	Seal(ctx *Context, plaintext string) (string, error)
	Open(ctx *Context, ciphertextHex string) (string, error)
}

// AEADSealer drives a Context's cipher through in-place encryption using a
// Buffer, producing lowercase hex of ciphertext followed by the 16-byte
// authentication tag.
type AEADSealer struct{}

// NewSealer creates the default AEAD sealer.
func NewSealer() *AEADSealer {
	return &AEADSealer{}
}

// Seal encrypts plaintext under ctx with empty associated data. The hex
// output length is always 2*(len(plaintext)+16). An internal cipher fault
// is a programming defect, surfaced as an error rather than a panic.
func (s *AEADSealer) Seal(ctx *Context, plaintext string) (string, error) {
	buf := NewBuffer(len(plaintext))
	buf.Append([]byte(plaintext))

	// Seal into the buffer's own storage; Append reserved tag headroom.
	sealed := ctx.aead.Seal(buf.Bytes()[:0], ctx.nonce[:], buf.Bytes(), nil)
	if len(sealed) != len(plaintext)+TagSize {
		return "", fmt.Errorf("sealed %d bytes, expected %d", len(sealed), len(plaintext)+TagSize)
	}
	buf.adopt(sealed)

	return hex.EncodeToString(buf.Bytes()), nil
}

// Open decrypts a hex ciphertext produced by Seal under the same context.
// Malformed or short input returns ErrInvalidCiphertext; a failed tag check
// returns ErrAuthFailed, never corrupted plaintext.
func (s *AEADSealer) Open(ctx *Context, ciphertextHex string) (string, error) {
	raw, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(raw) < TagSize {
		return "", ErrInvalidCiphertext
	}

	buf := NewBuffer(len(raw))
	buf.Append(raw)

	plain, err := ctx.aead.Open(buf.Bytes()[:0], ctx.nonce[:], buf.Bytes(), nil)
	if err != nil {
		return "", ErrAuthFailed
	}
	buf.adopt(plain)
	buf.Truncate(len(raw) - TagSize)

	return string(buf.Bytes()), nil
}
