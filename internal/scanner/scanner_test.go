package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrylabs/scry/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanDirFindsPythonFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "pkg", "util.py"), "y = 2\n")
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "README.md"), "readme\n")

	files, err := New(config.DefaultConfig()).ScanDir(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(root, "app.py"))
	assert.Contains(t, files, filepath.Join(root, "pkg", "util.py"))
}

func TestScanDirExcludesConfiguredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "__pycache__", "app.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, ".venv", "lib", "mod.py"), "x = 1\n")

	files, err := New(config.DefaultConfig()).ScanDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "app.py")}, files)
}

func TestScanDirExcludesTestPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "test_app.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "conftest.py"), "x = 1\n")

	files, err := New(config.DefaultConfig()).ScanDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "app.py")}, files)
}

func TestScanDirHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".gitignore"), "generated/\n")
	writeFile(t, filepath.Join(root, "app.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "generated", "schema.py"), "x = 1\n")

	files, err := New(config.DefaultConfig()).ScanDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "app.py")}, files)
}

func TestScanDirGitignoreDisabled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".gitignore"), "generated/\n")
	writeFile(t, filepath.Join(root, "generated", "schema.py"), "x = 1\n")

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	files, err := New(cfg).ScanDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "generated", "schema.py")}, files)
}

func TestScanDirSkipsEscapingSymlink(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "secret.py"), "x = 1\n")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "x = 1\n")
	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := New(config.DefaultConfig()).ScanDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "app.py")}, files)
}

func TestScanFile(t *testing.T) {
	root := t.TempDir()
	py := filepath.Join(root, "app.py")
	writeFile(t, py, "x = 1\n")
	md := filepath.Join(root, "README.md")
	writeFile(t, md, "readme\n")

	s := New(config.DefaultConfig())
	ok, err := s.ScanFile(py)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ScanFile(md)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.ScanFile(filepath.Join(root, "missing.py"))
	assert.Error(t, err)
}

func TestScanFileHonorsConfigExcludes(t *testing.T) {
	root := t.TempDir()
	tst := filepath.Join(root, "test_app.py")
	writeFile(t, tst, "x = 1\n")
	vendored := filepath.Join(root, ".venv", "lib", "mod.py")
	writeFile(t, vendored, "x = 1\n")

	s := New(config.DefaultConfig())
	ok, err := s.ScanFile(tst)
	require.NoError(t, err)
	assert.False(t, ok)

	// Excluded directories apply even when the file is named directly.
	ok, err = s.ScanFile(vendored)
	require.NoError(t, err)
	assert.False(t, ok)
}
