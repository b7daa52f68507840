package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestDeriveKeyGoldenVector(t *testing.T) {
	kdf, err := NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}

	key := kdf.DeriveKey([]byte("password"), []byte("salt"), 2)

	want := "e1d9c16aa681708a45f5c7c4e215ceb66e011a2e"
	if got := hex.EncodeToString(key); got != want {
		t.Errorf("Derived key mismatch: got %s, want %s", got, want)
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	kdf, err := NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}

	a := kdf.DeriveKey([]byte("password"), []byte("salt"), 100)
	b := kdf.DeriveKey([]byte("password"), []byte("salt"), 100)
	if !bytes.Equal(a, b) {
		t.Error("Identical inputs should yield identical output")
	}

	c := kdf.DeriveKey([]byte("password"), []byte("other"), 100)
	if bytes.Equal(a, c) {
		t.Error("Different salts should yield different output")
	}
}

func TestDeriveKeyFixedSize(t *testing.T) {
	kdf, err := NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}

	inputs := []struct {
		password string
		salt     string
	}{
		{"", ""},
		{"p", "s"},
		{"a very long password that exceeds the output size by a wide margin", "salt"},
	}

	for _, in := range inputs {
		key := kdf.DeriveKey([]byte(in.password), []byte(in.salt), 2)
		if len(key) != KeyMaterialSize {
			t.Errorf("DeriveKey(%q, %q): got %d bytes, want %d", in.password, in.salt, len(key), KeyMaterialSize)
		}
	}
}

func TestKDFOptions(t *testing.T) {
	kdf, err := NewKDF(WithSize(32), WithPRF(sha256.New))
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}
	if kdf.Size() != 32 {
		t.Errorf("Size: got %d, want 32", kdf.Size())
	}

	key := kdf.DeriveKey([]byte("password"), []byte("salt"), 2)
	if len(key) != 32 {
		t.Errorf("Derived key: got %d bytes, want 32", len(key))
	}

	// The default SHA-512 PRF must produce different output
	def, err := NewKDF(WithSize(32))
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}
	if bytes.Equal(key, def.DeriveKey([]byte("password"), []byte("salt"), 2)) {
		t.Error("Different PRFs should yield different output")
	}
}

func TestKDFInvalidConfig(t *testing.T) {
	if _, err := NewKDF(WithSize(0)); err == nil {
		t.Error("Expected error for zero key size")
	}
	if _, err := NewKDF(WithSize(-1)); err == nil {
		t.Error("Expected error for negative key size")
	}
	if _, err := NewKDF(WithPRF(nil)); err == nil {
		t.Error("Expected error for nil PRF")
	}
}

func TestDeriveKeyHex(t *testing.T) {
	kdf, err := NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}

	keyHex := kdf.DeriveKeyHex([]byte("password"), []byte("salt"), 2)
	if len(keyHex) != 2*KeyMaterialSize {
		t.Errorf("Hex length: got %d, want %d", len(keyHex), 2*KeyMaterialSize)
	}
	if keyHex != "e1d9c16aa681708a45f5c7c4e215ceb66e011a2e" {
		t.Errorf("Unexpected hex digest: %s", keyHex)
	}
}
