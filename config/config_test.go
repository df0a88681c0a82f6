package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), DefaultFile)
	src := `
input: api/ds3.yaml
output: ds3
package: ds3
format: false
preview:
  addr: ":9090"
  allowedOrigins: ["http://localhost:3000"]
  debounce: 250ms
`
	require.NoError(t, os.WriteFile(filename, []byte(src), 0644))

	cfg, err := Load(filename)
	require.NoError(t, err)

	assert.Equal(t, "api/ds3.yaml", cfg.Input)
	assert.Equal(t, "ds3", cfg.OutputDir)
	assert.Equal(t, "ds3", cfg.Package)
	assert.False(t, cfg.Format)
	assert.Equal(t, ":9090", cfg.Preview.Addr)
	assert.Equal(t, "/", cfg.Preview.BaseUrl, "unset fields keep their default")
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Preview.AllowedOrigins)

	debounce, err := cfg.Preview.DebounceTime()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, debounce)

	require.NoError(t, cfg.Validate())
}

func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(filename, []byte("input: [oops"), 0644))

	_, err := Load(filename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to parse config")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Input = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.OutputDir = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Preview.Debounce = "soon"
	assert.Error(t, cfg.Validate())
}
