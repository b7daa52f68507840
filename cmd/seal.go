package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hexseal/hexseal/internal/crypto"
	"github.com/hexseal/hexseal/internal/vault"
)

// Seal encrypts a named secret into the vault. The value comes from piped
// stdin when available, otherwise from a hidden prompt.
func Seal(name string, force bool) {
	v := vault.New(".")

	vaultID, _ := v.GetVaultID()

	password, _, err := GetPasswordWithRetry("Enter password: ", vaultID, v.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	value, err := readSecretValue(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(value)

	// When replacing an existing secret, show what changes first
	old, err := v.Get(name, password)
	switch {
	case err == nil:
		defer crypto.ClearBytes(old)
		diff := vault.UnifiedDiff(name, old, value)
		if diff == "" {
			fmt.Printf("%s is unchanged\n", name)
			return
		}
		if !force {
			fmt.Print(diff)
			if !Confirm(fmt.Sprintf("Replace %s?", name)) {
				fmt.Println("aborted")
				return
			}
		}
	case errors.Is(err, vault.ErrSecretNotFound):
		// New secret
	default:
		HandleError(err)
	}

	if err := v.Set(name, value, password); err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ sealed %s\n", name)
}

// readSecretValue reads a secret value from piped stdin, or prompts without
// echo on a terminal. A single trailing newline from piped input is dropped.
func readSecretValue(name string) ([]byte, error) {
	if StdinIsPipe() {
		value, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return nil, fmt.Errorf("failed to read value: %w", err)
		}
		value = bytes.TrimSuffix(value, []byte("\n"))
		if len(value) == 0 {
			return nil, fmt.Errorf("empty value")
		}
		return value, nil
	}

	value, err := vault.ReadPassword(fmt.Sprintf("Enter value for %s: ", name))
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, fmt.Errorf("empty value")
	}
	return value, nil
}
