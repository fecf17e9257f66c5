package syntax

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source string) *Module {
	t.Helper()
	p := New()
	defer p.Close()
	mod, err := p.Parse([]byte(source), "test.py")
	require.NoError(t, err)
	return mod
}

func TestParseSimpleModule(t *testing.T) {
	mod := parse(t, "x = 1\ny = 2\n")
	require.Len(t, mod.Body, 2)
	assert.Equal(t, 1, mod.Line())

	a, ok := mod.Body[0].(*Assign)
	require.True(t, ok)
	assert.Equal(t, 1, a.Line())
	name, ok := a.Targets[0].(*Name)
	require.True(t, ok)
	assert.Equal(t, "x", name.ID)
	assert.False(t, name.Load)
}

func TestParseSyntaxError(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.Parse([]byte("def broken(:\n"), "bad.py")
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bad.py", perr.Path)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	p := New()
	defer p.Close()
	mod, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, mod.Path)
	assert.Len(t, mod.Body, 1)

	_, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.py"))
	assert.Error(t, err)
}

func TestParseFunctionDef(t *testing.T) {
	mod := parse(t, "def add(a: int, b=0) -> int:\n    return a + b\n")
	fn, ok := mod.Body[0].(*FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.True(t, fn.ReturnsAnnotated)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.True(t, fn.Params[0].Annotated)
	assert.Equal(t, "b", fn.Params[1].Name)
	assert.False(t, fn.Params[1].Annotated)
	require.Len(t, fn.Body, 1)
	_, ok = fn.Body[0].(*Return)
	assert.True(t, ok)
}

func TestParseDecoratedFunction(t *testing.T) {
	mod := parse(t, "@cached\ndef f():\n    pass\n")
	fn, ok := mod.Body[0].(*FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, 2, fn.Line())
}

func TestParseElifChain(t *testing.T) {
	src := `if a:
    x = 1
elif b:
    x = 2
else:
    x = 3
`
	mod := parse(t, src)
	outer, ok := mod.Body[0].(*If)
	require.True(t, ok)
	require.Len(t, outer.Else, 1)

	// elif becomes a nested If in the else branch.
	inner, ok := outer.Else[0].(*If)
	require.True(t, ok)
	assert.Len(t, inner.Body, 1)
	assert.Len(t, inner.Else, 1)
}

func TestParseTryExcept(t *testing.T) {
	src := `try:
    risky()
except ValueError as e:
    handle(e)
except:
    pass
finally:
    close()
`
	mod := parse(t, src)
	try, ok := mod.Body[0].(*Try)
	require.True(t, ok)
	require.Len(t, try.Handlers, 2)
	assert.Equal(t, "ValueError", try.Handlers[0].TypeName)
	assert.Equal(t, "", try.Handlers[1].TypeName)
	assert.Len(t, try.Finally, 1)
}

func TestParseImports(t *testing.T) {
	src := `import os
import numpy as np
import os.path
from json import dumps
from json import loads as parse_json
`
	mod := parse(t, src)

	var names []string
	for _, s := range mod.Body {
		imp, ok := s.(*Import)
		require.True(t, ok)
		names = append(names, imp.Names...)
	}
	// Plain imports bind the first dotted component even when aliased;
	// from-imports bind the alias when one is given.
	assert.Equal(t, []string{"os", "numpy", "os", "dumps", "parse_json"}, names)
}

func TestParseBooleanChainFlattens(t *testing.T) {
	mod := parse(t, "x = a and b and c\n")
	a := mod.Body[0].(*Assign)
	b, ok := a.Value.(*BoolOp)
	require.True(t, ok)
	assert.Equal(t, "and", b.Op)
	assert.Len(t, b.Values, 3)
}

func TestParseMixedBooleanChainDoesNotFlatten(t *testing.T) {
	mod := parse(t, "x = a and b or c\n")
	a := mod.Body[0].(*Assign)
	outer, ok := a.Value.(*BoolOp)
	require.True(t, ok)
	assert.Equal(t, "or", outer.Op)
	require.Len(t, outer.Values, 2)
	inner, ok := outer.Values[0].(*BoolOp)
	require.True(t, ok)
	assert.Equal(t, "and", inner.Op)
	assert.Len(t, inner.Values, 2)
}

func TestParseAttributeAccess(t *testing.T) {
	mod := parse(t, "x = obj.field\n")
	a := mod.Body[0].(*Assign)
	attr, ok := a.Value.(*Attribute)
	require.True(t, ok)
	assert.Equal(t, "field", attr.Attr)
	base, ok := attr.Base.(*Name)
	require.True(t, ok)
	assert.Equal(t, "obj", base.ID)
	assert.True(t, base.Load)
}

func TestParseAnnotatedAssignment(t *testing.T) {
	mod := parse(t, "count: int = 0\n")
	a, ok := mod.Body[0].(*Assign)
	require.True(t, ok)
	assert.True(t, a.Annotated)
}

func TestParseSkipsComments(t *testing.T) {
	mod := parse(t, "# leading comment\nx = 1\n# trailing\n")
	assert.Len(t, mod.Body, 1)
}

func TestIsPythonFile(t *testing.T) {
	assert.True(t, IsPythonFile("app.py"))
	assert.True(t, IsPythonFile("APP.PY"))
	assert.True(t, IsPythonFile("gui.pyw"))
	assert.False(t, IsPythonFile("main.go"))
	assert.False(t, IsPythonFile("notes.txt"))
}
