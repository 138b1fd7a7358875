package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string `json:"name"`
	Workers int    `json:"workers"`
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// default config
		name: "stagewatch",
		workers: 4,
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		workers: 8,
	}`), 0o644))

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "stagewatch", cfg.Name)
	require.Equal(t, 8, cfg.Workers)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}
