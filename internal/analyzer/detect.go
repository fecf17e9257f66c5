package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scrylabs/scry/pkg/models"
	"github.com/scrylabs/scry/pkg/syntax"
)

// detector examines a parsed module and reports the smells it finds.
type detector func(path string, mod *syntax.Module) []models.Smell

// detectors run in a fixed order so smell lists are deterministic for a
// given file.
var detectors = []detector{
	detectLongMethods,
	detectGodClasses,
	detectDeepNesting,
	detectLongParameterLists,
	detectMissingTypeHints,
	detectUnusedImports,
	detectManyLocalVariables,
	detectFeatureEnvy,
	detectExceptionSwallowing,
	detectUnreachableCode,
}

// Detect runs every smell detector over a parsed module.
func Detect(path string, mod *syntax.Module) []models.Smell {
	var smells []models.Smell
	for _, d := range detectors {
		smells = append(smells, d(path, mod)...)
	}
	return smells
}

func detectLongMethods(path string, mod *syntax.Module) []models.Smell {
	var smells []models.Smell
	for _, fn := range syntax.Functions(mod.Body) {
		// The definition itself counts as one statement.
		count := 1 + CountStatements(fn.Body)
		if count <= 20 {
			continue
		}
		severity := models.SeverityLow
		switch {
		case count > 50:
			severity = models.SeverityCritical
		case count > 35:
			severity = models.SeverityHigh
		case count > 25:
			severity = models.SeverityMedium
		}
		smells = append(smells, models.Smell{
			Type:        models.SmellLongMethod,
			File:        path,
			NodeName:    fn.Name,
			Line:        fn.Line(),
			Severity:    severity,
			Description: fmt.Sprintf("Method '%s' has %d statements (max. 20)", fn.Name, count),
		})
	}
	return smells
}

func detectGodClasses(path string, mod *syntax.Module) []models.Smell {
	var smells []models.Smell
	for _, cls := range syntax.Classes(mod.Body) {
		lines := 1 + CountStatements(cls.Body)
		methods := 0
		syntax.WalkStmts(cls.Body, func(s syntax.Stmt) bool {
			if _, ok := s.(*syntax.FunctionDef); ok {
				methods++
			}
			return true
		})
		if lines <= 100 && methods <= 10 {
			continue
		}
		severity := models.SeverityHigh
		if lines > 200 || methods > 15 {
			severity = models.SeverityCritical
		}
		smells = append(smells, models.Smell{
			Type:        models.SmellGodClass,
			File:        path,
			NodeName:    cls.Name,
			Line:        cls.Line(),
			Severity:    severity,
			Description: fmt.Sprintf("Class '%s' has %d statements and %d methods", cls.Name, lines, methods),
		})
	}
	return smells
}

func detectDeepNesting(path string, mod *syntax.Module) []models.Smell {
	depth := MaxNestingDepth(mod.Body)
	if depth <= 4 {
		return nil
	}
	severity := models.SeverityMedium
	if depth > 6 {
		severity = models.SeverityHigh
	}
	return []models.Smell{{
		Type:        models.SmellDeepNesting,
		File:        path,
		NodeName:    "complex logic",
		Line:        1,
		Severity:    severity,
		Description: fmt.Sprintf("Nesting depth of %d (max. 4)", depth),
	}}
}

func detectLongParameterLists(path string, mod *syntax.Module) []models.Smell {
	var smells []models.Smell
	for _, fn := range syntax.Functions(mod.Body) {
		params := len(fn.Params)
		if params <= 4 {
			continue
		}
		severity := models.SeverityMedium
		if params > 6 {
			severity = models.SeverityHigh
		}
		smells = append(smells, models.Smell{
			Type:        models.SmellLongParameterList,
			File:        path,
			NodeName:    fn.Name,
			Line:        fn.Line(),
			Severity:    severity,
			Description: fmt.Sprintf("Function '%s' has %d parameters (max. 4)", fn.Name, params),
		})
	}
	return smells
}

func detectMissingTypeHints(path string, mod *syntax.Module) []models.Smell {
	var smells []models.Smell
	for _, fn := range syntax.Functions(mod.Body) {
		annotated := fn.ReturnsAnnotated
		for _, p := range fn.Params {
			if p.Annotated {
				annotated = true
				break
			}
		}
		if annotated {
			continue
		}
		severity := models.SeverityLow
		if len(fn.Params) > 2 {
			severity = models.SeverityMedium
		}
		smells = append(smells, models.Smell{
			Type:        models.SmellMissingTypeHints,
			File:        path,
			NodeName:    fn.Name,
			Line:        fn.Line(),
			Severity:    severity,
			Description: fmt.Sprintf("Function '%s' has no type hints", fn.Name),
		})
	}
	return smells
}

// UnusedImportNames returns the top-level imported names that are never
// read anywhere in the module, sorted for deterministic output. The fixer
// shares this with the detector so both always agree on what is unused.
func UnusedImportNames(mod *syntax.Module) []string {
	imported := make(map[string]struct{})
	for _, s := range mod.Body {
		imp, ok := s.(*syntax.Import)
		if !ok {
			continue
		}
		for _, name := range imp.Names {
			imported[name] = struct{}{}
		}
	}
	if len(imported) == 0 {
		return nil
	}

	used := make(map[string]struct{})
	syntax.WalkExprs(mod.Body, func(e syntax.Expr) bool {
		if n, ok := e.(*syntax.Name); ok && n.Load {
			used[n.ID] = struct{}{}
		}
		return true
	})

	var unused []string
	for name := range imported {
		if _, ok := used[name]; !ok {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)
	return unused
}

func detectUnusedImports(path string, mod *syntax.Module) []models.Smell {
	unused := UnusedImportNames(mod)
	if len(unused) == 0 {
		return nil
	}

	shown := unused
	if len(shown) > 3 {
		shown = shown[:3]
	}
	return []models.Smell{{
		Type:        models.SmellUnusedImports,
		File:        path,
		NodeName:    strings.Join(shown, ", "),
		Line:        1,
		Severity:    models.SeverityLow,
		Description: fmt.Sprintf("%d unused import(s): %s", len(unused), strings.Join(unused, ", ")),
	}}
}

func detectManyLocalVariables(path string, mod *syntax.Module) []models.Smell {
	var smells []models.Smell
	for _, fn := range syntax.Functions(mod.Body) {
		locals := make(map[string]struct{})
		syntax.WalkStmts(fn.Body, func(s syntax.Stmt) bool {
			a, ok := s.(*syntax.Assign)
			if !ok {
				return true
			}
			for _, t := range a.Targets {
				if n, ok := t.(*syntax.Name); ok {
					locals[n.ID] = struct{}{}
				}
			}
			return true
		})
		if len(locals) <= 8 {
			continue
		}
		severity := models.SeverityMedium
		if len(locals) > 15 {
			severity = models.SeverityHigh
		}
		smells = append(smells, models.Smell{
			Type:        models.SmellManyLocalVariables,
			File:        path,
			NodeName:    fn.Name,
			Line:        fn.Line(),
			Severity:    severity,
			Description: fmt.Sprintf("Function '%s' has %d local variables (max. 8)", fn.Name, len(locals)),
		})
	}
	return smells
}

func detectFeatureEnvy(path string, mod *syntax.Module) []models.Smell {
	var smells []models.Smell
	for _, cls := range syntax.Classes(mod.Body) {
		for _, s := range cls.Body {
			method, ok := s.(*syntax.FunctionDef)
			if !ok {
				continue
			}
			selfCount := 0
			foreign := make(map[string]int)
			syntax.WalkExprs(method.Body, func(e syntax.Expr) bool {
				attr, ok := e.(*syntax.Attribute)
				if !ok {
					return true
				}
				base, ok := attr.Base.(*syntax.Name)
				if !ok {
					return true
				}
				if base.ID == "self" {
					selfCount++
				} else {
					foreign[base.ID]++
				}
				return true
			})

			// Most-accessed foreign object wins. Ties break by name so
			// results stay stable across runs.
			envied, count := "", 0
			for name, n := range foreign {
				if n > count || (n == count && (envied == "" || name < envied)) {
					envied, count = name, n
				}
			}
			threshold := selfCount
			if threshold < 1 {
				threshold = 1
			}
			if count < 5 || count < 2*threshold {
				continue
			}
			smells = append(smells, models.Smell{
				Type:        models.SmellFeatureEnvy,
				File:        path,
				NodeName:    fmt.Sprintf("%s.%s", cls.Name, method.Name),
				Line:        method.Line(),
				Severity:    models.SeverityMedium,
				Description: fmt.Sprintf("Method '%s.%s' accesses '%s' %d times but 'self' only %d times", cls.Name, method.Name, envied, count, selfCount),
			})
		}
	}
	return smells
}

func detectExceptionSwallowing(path string, mod *syntax.Module) []models.Smell {
	var smells []models.Smell
	syntax.WalkStmts(mod.Body, func(s syntax.Stmt) bool {
		try, ok := s.(*syntax.Try)
		if !ok {
			return true
		}
		for _, h := range try.Handlers {
			if h.TypeName != "" && h.TypeName != "Exception" {
				continue
			}
			empty := len(h.Body) == 0
			if len(h.Body) == 1 {
				_, isPass := h.Body[0].(*syntax.Pass)
				empty = isPass
			}
			if !empty {
				continue
			}
			smells = append(smells, models.Smell{
				Type:        models.SmellExceptionSwallowing,
				File:        path,
				NodeName:    "<module>",
				Line:        h.Line(),
				Severity:    models.SeverityHigh,
				Description: "Exception handler silently swallows all errors",
			})
		}
		return true
	})
	return smells
}

func detectUnreachableCode(path string, mod *syntax.Module) []models.Smell {
	var smells []models.Smell
	for _, fn := range syntax.Functions(mod.Body) {
		for _, dead := range unreachableStatements(fn.Body) {
			smells = append(smells, models.Smell{
				Type:        models.SmellUnreachableCode,
				File:        path,
				NodeName:    fn.Name,
				Line:        dead.Line(),
				Severity:    models.SeverityMedium,
				Description: fmt.Sprintf("Unreachable code in '%s'", fn.Name),
			})
		}
	}
	return smells
}
