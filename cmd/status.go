package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/hexseal/hexseal/internal/vault"
)

// Status shows the current state of the vault. No password required.
func Status() {
	v := vault.New(".")

	if _, err := os.Stat(vault.VaultFile); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No .hexseal file found in current directory")
			fmt.Println("Run 'hexseal init' to create one")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		return
	}

	status, err := v.Status()
	if err != nil {
		HandleError(err)
	}

	fmt.Println("Secrets:")
	if len(status.Secrets) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, secret := range status.Secrets {
			fmt.Printf("  %s (%d bytes, updated %s)\n",
				secret.Name, secret.Size, secret.Updated.Format("2006-01-02 15:04"))
		}
	}

	fmt.Printf("\nKDF rounds: %d\n", status.Rounds)
	fmt.Printf(".hexseal: present (last sealed: %s)\n", status.LastSealed.Format(time.RFC3339))
}
