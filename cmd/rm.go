package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hexseal/hexseal/internal/crypto"
	"github.com/hexseal/hexseal/internal/vault"
)

// Remove deletes secrets from the vault
func Remove(ctx context.Context, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: hexseal rm <name> [name...]")
		os.Exit(1)
	}

	v := vault.New(".")

	vaultID, _ := v.GetVaultID()

	password, _, err := GetPasswordWithRetry("Enter password: ", vaultID, v.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	if err := v.Remove(ctx, names, password); err != nil {
		HandleError(err)
	}

	// Reclaim the space the deleted ciphertexts occupied
	if err := v.Compact(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: compaction failed: %s\n", err)
	}

	fmt.Printf("removed: %d secrets\n", len(names))
}
