package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/hexseal/hexseal/internal/crypto"
	"github.com/hexseal/hexseal/internal/keyring"
	"github.com/hexseal/hexseal/internal/vault"
	"golang.org/x/term"
)

// PasswordSource indicates where a password was obtained from
type PasswordSource int

const (
	SourcePrompt PasswordSource = iota
	SourceEnv
	SourceKeyring
)

// GetPassword retrieves a password from the environment, the OS keyring, or
// an interactive prompt, in that order.
// The caller is responsible for calling crypto.ClearBytes on the returned password
func GetPassword(prompt, vaultID string) ([]byte, PasswordSource, error) {
	if password := vault.GetPasswordFromEnv(); password != nil {
		return password, SourceEnv, nil
	}

	if vaultID != "" {
		if cached, err := keyring.GetPassword(vaultID); err == nil {
			return []byte(cached), SourceKeyring, nil
		}
	}

	password, err := vault.ReadPassword(prompt)
	if err != nil {
		return nil, SourcePrompt, fmt.Errorf("failed to read password: %w", err)
	}
	return password, SourcePrompt, nil
}

// GetPasswordWithRetry retrieves and verifies a password. A stale keyring
// entry falls back to prompting instead of failing outright.
func GetPasswordWithRetry(prompt, vaultID string, verify func([]byte) error) ([]byte, PasswordSource, error) {
	password, source, err := GetPassword(prompt, vaultID)
	if err != nil {
		return nil, source, err
	}

	if err := verify(password); err != nil {
		if source == SourceKeyring && errors.Is(err, vault.ErrWrongPassword) {
			crypto.ClearBytes(password)
			fmt.Fprintln(os.Stderr, "Keyring password is stale")

			password, err = vault.ReadPassword(prompt)
			if err != nil {
				return nil, SourcePrompt, fmt.Errorf("failed to read password: %w", err)
			}
			if err := verify(password); err != nil {
				crypto.ClearBytes(password)
				return nil, SourcePrompt, err
			}
			return password, SourcePrompt, nil
		}
		crypto.ClearBytes(password)
		return nil, source, err
	}

	return password, source, nil
}

// GetPasswordForInit retrieves password for init command
// Checks environment variable first, then prompts with confirmation
func GetPasswordForInit() ([]byte, error) {
	if password := vault.GetPasswordFromEnv(); password != nil {
		return password, nil
	}
	return vault.ReadPasswordConfirm()
}

// Confirm asks a yes/no question on the terminal, defaulting to no
func Confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// StdinIsPipe reports whether stdin carries piped data rather than a terminal
func StdinIsPipe() bool {
	return !term.IsTerminal(int(syscall.Stdin))
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, vault.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: hexseal not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'hexseal init' first\n")
	case errors.Is(err, vault.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: .hexseal already exists in this directory\n")
		fmt.Fprintf(os.Stderr, "Use 'hexseal status' to see current state\n")
	case errors.Is(err, vault.ErrWrongPassword):
		fmt.Fprintf(os.Stderr, "Error: wrong password\n")
	case errors.Is(err, vault.ErrNoSecrets):
		fmt.Fprintf(os.Stderr, "Error: no secrets in vault\n")
		fmt.Fprintf(os.Stderr, "Use 'hexseal seal <name>' to add one\n")
	case errors.Is(err, vault.ErrSecretNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'hexseal ls' to list secrets\n")
	case errors.Is(err, vault.ErrInvalidName):
		fmt.Fprintf(os.Stderr, "Error: invalid secret name (use letters, digits, '_', '.', '-')\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}
