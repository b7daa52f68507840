package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hexseal/hexseal/internal/crypto"
	"github.com/hexseal/hexseal/internal/keyring"
	"github.com/hexseal/hexseal/internal/vault"
)

// Passwd changes the vault password
func Passwd(ctx context.Context) {
	v := vault.New(".")

	// Get vault ID for keyring lookup
	vaultID, _ := v.GetVaultID()

	// Get current password with retry on stale keyring
	currentPassword, _, err := GetPasswordWithRetry("Enter current password: ", vaultID, v.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(currentPassword)

	// Get new password
	newPassword, err := vault.ReadPasswordConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(newPassword)

	if err := v.ChangePassword(ctx, currentPassword, newPassword); err != nil {
		HandleError(err)
	}

	// Always try to update keyring if vault ID exists
	// This handles both updating existing entry and cases where keyring was unavailable before
	if vaultID != "" {
		if err := keyring.SavePassword(vaultID, string(newPassword)); err == nil {
			fmt.Println("Keyring updated with new password")
		}
	}

	// Compact database after rewriting all data
	if err := v.Compact(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: compaction failed: %s\n", err)
	}

	fmt.Println("password changed successfully")
}
