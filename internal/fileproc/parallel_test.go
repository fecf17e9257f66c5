package fileproc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrylabs/scry/pkg/syntax"
)

func writeSources(t *testing.T, sources map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var files []string
	for name, content := range sources {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

func TestMapFilesParsesEachFile(t *testing.T) {
	files := writeSources(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "y = 2\nz = 3\n",
		"c.py": "def f() -> None:\n    pass\n",
	})

	counts := MapFiles(files, func(p *syntax.Parser, path string) (int, error) {
		mod, err := p.ParseFile(path)
		if err != nil {
			return 0, err
		}
		return len(mod.Body), nil
	})

	sort.Ints(counts)
	assert.Equal(t, []int{1, 1, 2}, counts)
}

func TestMapFilesEmptyInput(t *testing.T) {
	assert.Nil(t, MapFiles(nil, func(p *syntax.Parser, path string) (int, error) {
		return 0, nil
	}))
}

func TestMapFilesSkipsFailedFiles(t *testing.T) {
	files := writeSources(t, map[string]string{
		"good.py":   "x = 1\n",
		"broken.py": "def broken(:\n",
	})

	var failed atomic.Int32
	results := MapFilesN(files, 2, func(p *syntax.Parser, path string) (string, error) {
		if _, err := p.ParseFile(path); err != nil {
			return "", err
		}
		return path, nil
	}, nil, func(path string, err error) {
		failed.Add(1)
		var perr *syntax.ParseError
		assert.ErrorAs(t, err, &perr)
	})

	require.Len(t, results, 1)
	assert.Equal(t, int32(1), failed.Load())
}

func TestMapFilesProgressCallback(t *testing.T) {
	files := writeSources(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "y = 2\n",
	})

	var ticks atomic.Int32
	MapFilesWithProgress(files, func(p *syntax.Parser, path string) (struct{}, error) {
		return struct{}{}, nil
	}, func() {
		ticks.Add(1)
	})
	assert.Equal(t, int32(2), ticks.Load())
}

func TestMapFilesCtxCancellation(t *testing.T) {
	files := writeSources(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "y = 2\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, errs := MapFilesCtx(ctx, files, func(p *syntax.Parser, path string) (string, error) {
		return path, nil
	}, nil)

	assert.Empty(t, results)
	require.NotNil(t, errs)
	assert.True(t, errs.HasErrors())
	assert.ErrorIs(t, errs.Errors[0].Err, context.Canceled)
}

func TestProcessingErrorsMessage(t *testing.T) {
	errs := &ProcessingErrors{}
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "no errors", errs.Error())

	errs.Add("a.py", errors.New("boom"))
	assert.Equal(t, "a.py: boom", errs.Error())

	errs.Add("b.py", errors.New("bang"))
	assert.Contains(t, errs.Error(), "2 files failed")
}
