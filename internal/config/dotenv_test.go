package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotEnvLoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STOCKPICKER_DOTENV_TEST=first\n"), 0o600))
	t.Setenv("STOCKPICKER_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("STOCKPICKER_DOTENV_TEST"))

	d := &dotEnv{files: []string{path}}
	require.NoError(t, d.load())
	assert.Equal(t, "first", os.Getenv("STOCKPICKER_DOTENV_TEST"))

	// a second call must not re-read the file
	require.NoError(t, os.WriteFile(path, []byte("STOCKPICKER_DOTENV_OTHER=second\n"), 0o600))
	t.Setenv("STOCKPICKER_DOTENV_OTHER", "")
	require.NoError(t, os.Unsetenv("STOCKPICKER_DOTENV_OTHER"))
	require.NoError(t, d.load())
	_, ok := os.LookupEnv("STOCKPICKER_DOTENV_OTHER")
	assert.False(t, ok)
}

func TestDotEnvMissingFileErrorIsSticky(t *testing.T) {
	d := &dotEnv{files: []string{filepath.Join(t.TempDir(), "absent.env")}}
	err := d.load()
	require.Error(t, err)
	assert.Equal(t, err, d.load())
}
