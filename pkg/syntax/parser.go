package syntax

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParseError reports a file that could not be turned into a syntax tree.
// Callers must skip the file; no partial analysis is attempted.
type ParseError struct {
	Path string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failed: %s", e.Path)
}

// Parser turns Python source into a typed Module. A Parser is not safe for
// concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// New creates a new parser instance.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// ParseFile reads and parses a source file.
func (p *Parser) ParseFile(path string) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.Parse(source, path)
}

// Parse parses source code into a typed Module.
func (p *Parser) Parse(source []byte, path string) (*Module, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{Path: path}
	}

	b := &builder{source: source}
	return &Module{
		pos:  pos{LineNo: 1},
		Path: path,
		Body: b.statements(root),
	}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// IsPythonFile reports whether a path looks like a Python source file.
func IsPythonFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyw":
		return true
	}
	return false
}
