package analyzer

import (
	"github.com/scrylabs/scry/pkg/syntax"
)

// DocstringStats counts documentable definitions and how many of them carry
// a docstring.
type DocstringStats struct {
	Total      int
	Documented int
}

// Coverage returns the documented fraction in percent, or 100 when there is
// nothing to document.
func (d DocstringStats) Coverage() float64 {
	if d.Total == 0 {
		return 100
	}
	return float64(d.Documented) / float64(d.Total) * 100
}

func (d *DocstringStats) Add(o DocstringStats) {
	d.Total += o.Total
	d.Documented += o.Documented
}

// hasDocstring reports whether a body opens with a string literal
// expression statement.
func hasDocstring(body []syntax.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	es, ok := body[0].(*syntax.ExprStmt)
	if !ok {
		return false
	}
	_, ok = es.X.(*syntax.StringLit)
	return ok
}

// MeasureDocstrings scans a module for functions and classes and reports
// how many of them are documented.
func MeasureDocstrings(mod *syntax.Module) DocstringStats {
	var stats DocstringStats
	syntax.WalkStmts(mod.Body, func(s syntax.Stmt) bool {
		switch st := s.(type) {
		case *syntax.FunctionDef:
			stats.Total++
			if hasDocstring(st.Body) {
				stats.Documented++
			}
		case *syntax.ClassDef:
			stats.Total++
			if hasDocstring(st.Body) {
				stats.Documented++
			}
		}
		return true
	})
	return stats
}
