package keybackend_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/galleria/keybackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSecretFromFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no newline", "secret-value", "secret-value"},
		{"trailing newline", "secret-value\n", "secret-value"},
		{"crlf", "secret-value\r\n", "secret-value"},
		{"several newlines", "secret-value\n\n", "secret-value"},
		{"inner whitespace kept", "  secret value  \n", "  secret value  "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestFile(t, tt.content)

			got, err := keybackend.LoadSecretFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestLoadSecretFromFile_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := keybackend.LoadSecretFromFile("/nonexistent/path/secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read secret file")
}

func writeTestFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "secret")

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}
