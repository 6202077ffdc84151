package model

import (
	"os"
	"path/filepath"
)

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".imradgraph-cache"
	}
	return filepath.Join(home, ".imradgraph", "cache")
}
