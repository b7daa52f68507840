package crypto

import (
	"testing"
)

func pipelineContext(t *testing.T, opts ...ContextOption) *Context {
	t.Helper()

	kdf, err := NewKDF()
	if err != nil {
		t.Fatalf("NewKDF failed: %v", err)
	}
	keyHex := kdf.DeriveKeyHex([]byte("password"), []byte("salt"), 2)

	ctx, err := NewContext(keyHex, opts...)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	return ctx
}

func TestSealPipeline(t *testing.T) {
	ctx := pipelineContext(t)
	sealer := NewSealer()

	plaintext := "secret nuke codes"
	ciphertext, err := sealer.Seal(ctx, plaintext)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if ciphertext == "" {
		t.Fatal("Ciphertext should not be empty")
	}
	if want := 2 * (len(plaintext) + TagSize); len(ciphertext) != want {
		t.Errorf("Ciphertext length: got %d, want %d", len(ciphertext), want)
	}
}

func TestSealLengthLaw(t *testing.T) {
	ctx := pipelineContext(t)
	sealer := NewSealer()

	plaintexts := []string{
		"",
		"a",
		"hello world",
		"a somewhat longer plaintext that spans multiple AES blocks to be safe",
	}

	for _, plaintext := range plaintexts {
		ciphertext, err := sealer.Seal(ctx, plaintext)
		if err != nil {
			t.Fatalf("Seal(%q) failed: %v", plaintext, err)
		}
		if want := 2 * (len(plaintext) + TagSize); len(ciphertext) != want {
			t.Errorf("Seal(%q): hex length %d, want %d", plaintext, len(ciphertext), want)
		}
	}
}

func TestSealEmptyPlaintext(t *testing.T) {
	ctx := pipelineContext(t)
	sealer := NewSealer()

	ciphertext, err := sealer.Seal(ctx, "")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	// Tag only: 16 bytes, 32 hex characters
	if len(ciphertext) != 32 {
		t.Errorf("Empty plaintext ciphertext length: got %d, want 32", len(ciphertext))
	}
}

func TestSealDeterministicWithinContext(t *testing.T) {
	ctx := pipelineContext(t)
	sealer := NewSealer()

	a, err := sealer.Seal(ctx, "plaintext")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	b, err := sealer.Seal(ctx, "plaintext")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if a != b {
		t.Error("Same context and plaintext should seal identically")
	}
}

func TestSealDiffersAcrossContexts(t *testing.T) {
	// Same derived key material, independently random cipher keys
	ctxA := pipelineContext(t)
	ctxB := pipelineContext(t)
	sealer := NewSealer()

	a, err := sealer.Seal(ctxA, "plaintext")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	b, err := sealer.Seal(ctxB, "plaintext")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if a == b {
		t.Error("Contexts with random keys should produce different ciphertexts")
	}
}

func TestOpenRoundTrip(t *testing.T) {
	ctx := pipelineContext(t)
	sealer := NewSealer()

	plaintexts := []string{"", "x", "secret nuke codes", "emoji éè and \tcontrol\nbytes"}
	for _, plaintext := range plaintexts {
		ciphertext, err := sealer.Seal(ctx, plaintext)
		if err != nil {
			t.Fatalf("Seal(%q) failed: %v", plaintext, err)
		}

		got, err := sealer.Open(ctx, ciphertext)
		if err != nil {
			t.Fatalf("Open failed for %q: %v", plaintext, err)
		}
		if got != plaintext {
			t.Errorf("Round trip: got %q, want %q", got, plaintext)
		}
	}
}

func TestOpenTamperDetection(t *testing.T) {
	ctx := pipelineContext(t)
	sealer := NewSealer()

	ciphertext, err := sealer.Seal(ctx, "secret nuke codes")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	// Flipping any single hex character must fail authentication
	for i := range ciphertext {
		tampered := []byte(ciphertext)
		if tampered[i] == '0' {
			tampered[i] = '1'
		} else {
			tampered[i] = '0'
		}

		if _, err := sealer.Open(ctx, string(tampered)); err != ErrAuthFailed {
			t.Errorf("Open with tampered character %d: got %v, want ErrAuthFailed", i, err)
		}
	}
}

func TestOpenInvalidInput(t *testing.T) {
	ctx := pipelineContext(t)
	sealer := NewSealer()

	cases := []string{
		"not hex at all!",
		"abc",   // odd length
		"abcd",  // shorter than a tag
		"00112233445566778899aabbccddee", // 15 bytes, still short
	}
	for _, input := range cases {
		if _, err := sealer.Open(ctx, input); err != ErrInvalidCiphertext {
			t.Errorf("Open(%q): got %v, want ErrInvalidCiphertext", input, err)
		}
	}
}

func TestOpenWrongContext(t *testing.T) {
	ctxA := pipelineContext(t)
	ctxB := pipelineContext(t)
	sealer := NewSealer()

	ciphertext, err := sealer.Seal(ctxA, "plaintext")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	// ctxB has a different random key and must reject the ciphertext
	if _, err := sealer.Open(ctxB, ciphertext); err != ErrAuthFailed {
		t.Errorf("Open under wrong context: got %v, want ErrAuthFailed", err)
	}
}
