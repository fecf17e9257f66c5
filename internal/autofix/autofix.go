// Package autofix applies safe, mechanical fixes for a small set of smells.
package autofix

import (
	"fmt"
	"os"
	"strings"

	"github.com/scrylabs/scry/internal/analyzer"
	"github.com/scrylabs/scry/pkg/models"
	"github.com/scrylabs/scry/pkg/syntax"
)

// marker prefixes every line the fixer comments out, so fixes are easy to
// find and revert.
const marker = "# AUTO-FIX: unused import"

// Fix records one attempted fix.
type Fix struct {
	File     string           `json:"file"`
	Line     int              `json:"line"`
	Type     models.SmellType `json:"smell_type"`
	NodeName string           `json:"node_name"`
	Original string           `json:"original_code"`
	Fixed    string           `json:"fixed_code"`
	Applied  bool             `json:"applied"`
	Reason   string           `json:"reason"`
}

// Engine applies fixes for the allowed smell types. Only unused imports
// have a mechanical fix today; other allowed types are reported as skipped.
type Engine struct {
	allowed map[models.SmellType]bool
	dryRun  bool
}

// New creates a fix engine. In dry-run mode fixes are computed and
// reported but files are left untouched.
func New(allowed map[models.SmellType]bool, dryRun bool) *Engine {
	return &Engine{allowed: allowed, dryRun: dryRun}
}

// FixFile rewrites a single file, commenting out import statements whose
// names are all unused. The result must still parse; if it does not, the
// file is restored and the fixes are reported as rolled back.
func (e *Engine) FixFile(path string) ([]Fix, error) {
	if !e.allowed[models.SmellUnusedImports] {
		return nil, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	psr := syntax.New()
	defer psr.Close()

	mod, err := psr.Parse(source, path)
	if err != nil {
		return nil, err
	}

	unused := make(map[string]bool)
	for _, name := range analyzer.UnusedImportNames(mod) {
		unused[name] = true
	}
	if len(unused) == 0 {
		return nil, nil
	}

	lines := strings.Split(string(source), "\n")
	var fixes []Fix
	changed := false

	for _, s := range mod.Body {
		imp, ok := s.(*syntax.Import)
		if !ok || len(imp.Names) == 0 {
			continue
		}

		allUnused := true
		for _, name := range imp.Names {
			if !unused[name] {
				allUnused = false
				break
			}
		}
		idx := imp.Line() - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		original := lines[idx]

		fix := Fix{
			File:     path,
			Line:     imp.Line(),
			Type:     models.SmellUnusedImports,
			NodeName: strings.Join(imp.Names, ", "),
			Original: original,
		}

		switch {
		case !allUnused:
			fix.Fixed = original
			fix.Reason = "import also binds used names"
		case strings.HasPrefix(strings.TrimSpace(original), "#"):
			fix.Fixed = original
			fix.Reason = "import already commented"
		default:
			fix.Fixed = marker + "\n# " + original
			fix.Applied = true
			fix.Reason = "commented out unused import"
			lines[idx] = fix.Fixed
			changed = true
		}
		fixes = append(fixes, fix)
	}

	if !changed || e.dryRun {
		return fixes, nil
	}

	fixed := strings.Join(lines, "\n")

	// The rewrite is line-based, so reparse before committing it.
	if _, err := psr.Parse([]byte(fixed), path); err != nil {
		for i := range fixes {
			if fixes[i].Applied {
				fixes[i].Applied = false
				fixes[i].Reason = "rolled back: fixed file no longer parses"
			}
		}
		return fixes, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(fixed), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing fixed file: %w", err)
	}
	return fixes, nil
}

// FixFiles applies FixFile across many files, collecting all fixes.
func (e *Engine) FixFiles(paths []string) ([]Fix, error) {
	var all []Fix
	for _, path := range paths {
		fixes, err := e.FixFile(path)
		if err != nil {
			return all, err
		}
		all = append(all, fixes...)
	}
	return all, nil
}
