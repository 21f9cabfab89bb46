package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads KEY=value pairs from path into the process environment.
// Variables that are already set keep their values. A missing file is not
// an error; an empty path disables loading.
//
// The CLI reads two variables:
//   - EDGEVIZ_CACHE: cache URL used when --cache is not given
//   - EDGEVIZ_ADDR: listen address of "edgeviz serve"
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// envOr returns the value of the environment variable key, or fallback
// when it is unset or empty.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
