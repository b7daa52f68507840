package cmd

import (
	"fmt"
	"os"

	"github.com/hexseal/hexseal/internal/vault"
)

// Compact compacts the .hexseal database to reclaim unused space
func Compact() {
	v := vault.New(".")

	sizeBefore, err := vaultSize(v)
	if err != nil {
		HandleError(err)
	}

	if err := v.Compact(); err != nil {
		HandleError(err)
	}

	sizeAfter, err := vaultSize(v)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(sizeAfter))
}

func vaultSize(v *vault.Vault) (int64, error) {
	info, err := os.Stat(v.Path())
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
