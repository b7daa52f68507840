package cmd

import (
	"context"
	"fmt"

	"github.com/hexseal/hexseal/internal/crypto"
	"github.com/hexseal/hexseal/internal/vault"
)

// Open decrypts secrets and prints them to stdout. With a single name the
// raw value is printed; with several names or none, NAME=value lines are
// emitted. The export flag prefixes each line for shell eval.
func Open(ctx context.Context, names []string, export bool) {
	v := vault.New(".")

	vaultID, _ := v.GetVaultID()

	password, _, err := GetPasswordWithRetry("Enter password: ", vaultID, v.VerifyPassword)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	if len(names) == 1 && !export {
		value, err := v.Get(names[0], password)
		if err != nil {
			HandleError(err)
		}
		fmt.Printf("%s\n", value)
		return
	}

	var secrets []vault.Secret
	if len(names) == 0 {
		secrets, err = v.All(ctx, password)
		if err != nil {
			HandleError(err)
		}
	} else {
		for _, name := range names {
			value, err := v.Get(name, password)
			if err != nil {
				HandleError(err)
			}
			secrets = append(secrets, vault.Secret{Name: name, Value: value})
		}
	}

	prefix := ""
	if export {
		prefix = "export "
	}
	for _, secret := range secrets {
		fmt.Printf("%s%s=%s\n", prefix, secret.Name, secret.Value)
	}
}
