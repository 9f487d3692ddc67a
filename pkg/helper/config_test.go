package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCfgPathAbsolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "apiserver.yaml")
	assert.Equal(t, abs, GetCfgPath(abs))
}

func TestGetCfgPathCurrentDir(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	name := "console.yaml"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("base_url: x"), 0644))

	got := GetCfgPath(name)
	assert.Equal(t, name, filepath.Base(got))
	assert.True(t, filepath.IsAbs(got))
}

func TestGetCfgPathConfigsSubdir(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "a.yaml"), []byte("port: 1"), 0644))

	got := GetCfgPath("a.yaml")
	assert.Contains(t, got, filepath.Join("configs", "a.yaml"))
}

func TestGetCfgPathFallback(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	assert.Equal(t, "/etc/crmdeck/missing.yaml", GetCfgPath("missing.yaml"))
}

func TestGetCfgPathEmptyPanics(t *testing.T) {
	assert.Panics(t, func() { GetCfgPath("") })
}
