package keybackend

import (
	"bytes"
	"fmt"
	"os"
)

// LoadSecretFromFile reads a signing secret from path.
// Trailing newlines and carriage returns are trimmed so that files written
// with `echo` or an editor work unchanged. Other bytes are kept as is.
func LoadSecretFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read secret file: %w", err)
	}

	return bytes.TrimRight(data, "\r\n"), nil
}
