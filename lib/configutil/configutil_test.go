package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	FarmId string `json:"farm_id"`
	ApiKey string `json:"api_key"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeFile(t, name, `{farm_id: "1", api_key: "committed"}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{FarmId: "1", ApiKey: "committed"}, cfg)
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeFile(t, name, `{farm_id: "1", api_key: "committed"}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{api_key: "secret"}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	// the local layer wins on conflicts, untouched keys survive
	require.Equal(t, testConfig{FarmId: "1", ApiKey: "secret"}, cfg)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{farm_id: "2"}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{FarmId: "2"}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
