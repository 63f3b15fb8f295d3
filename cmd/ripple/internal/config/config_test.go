package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, goMod, rippleYAML string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0o644))
	if rippleYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ripple.yaml"), []byte(rippleYAML), 0o644))
	}
	return dir
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadOptionalInvalidYAML(t *testing.T) {
	dir := writeProject(t, "module example.com/app\n", "app: [not a map\n")
	_, err := LoadOptional(dir)
	assert.ErrorContains(t, err, "failed to parse ripple.yaml")
}

func TestResolveDefaults(t *testing.T) {
	dir := writeProject(t, "module github.com/acme/waves\n\ngo 1.24.0\n", "")

	resolved, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "github.com/acme/waves", resolved.ModulePath)
	assert.Equal(t, "waves", resolved.AppName)
	assert.Equal(t, "counter", resolved.DefaultDemo)
	assert.Equal(t, 3, resolved.Seconds)
	assert.Equal(t, "text", resolved.Format)
}

func TestResolveFromYAML(t *testing.T) {
	dir := writeProject(t, "module github.com/acme/waves\n",
		"app:\n  name: tidepool\ndemo:\n  default: stopwatch\n  seconds: 10\n  format: png\n")

	resolved, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "tidepool", resolved.AppName)
	assert.Equal(t, "stopwatch", resolved.DefaultDemo)
	assert.Equal(t, 10, resolved.Seconds)
	assert.Equal(t, "png", resolved.Format)
}

func TestResolveRejectsUnknownFormat(t *testing.T) {
	dir := writeProject(t, "module example.com/app\n", "demo:\n  format: svg\n")
	_, err := Resolve(dir)
	assert.ErrorContains(t, err, "invalid demo.format")
}

func TestResolveWithoutGoMod(t *testing.T) {
	_, err := Resolve(t.TempDir())
	assert.ErrorContains(t, err, "go.mod")
}

func TestResolveVersionedModulePath(t *testing.T) {
	dir := writeProject(t, "module github.com/acme/waves/v2\n", "")

	resolved, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "waves", resolved.AppName)
}
