package cmd

import (
	"fmt"
	"os"

	"github.com/hexseal/hexseal/internal/crypto"
	"github.com/hexseal/hexseal/internal/vault"
)

// Init creates a new .hexseal vault
func Init() {
	v := vault.New(".")

	// Read password (env var or prompt with confirmation)
	password, err := GetPasswordForInit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	if err := v.Init(password); err != nil {
		HandleError(err)
	}

	fmt.Println("✓ Initialized .hexseal")
}
