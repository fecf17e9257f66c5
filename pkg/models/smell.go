package models

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// SmellType identifies the kind of structural quality problem detected.
type SmellType string

const (
	SmellLongMethod          SmellType = "long_method"
	SmellGodClass            SmellType = "god_class"
	SmellDeepNesting         SmellType = "deep_nesting"
	SmellLongParameterList   SmellType = "long_parameter_list"
	SmellMissingTypeHints    SmellType = "missing_type_hints"
	SmellUnusedImports       SmellType = "unused_imports"
	SmellManyLocalVariables  SmellType = "many_local_variables"
	SmellFeatureEnvy         SmellType = "feature_envy"
	SmellExceptionSwallowing SmellType = "exception_swallowing"
	SmellUnreachableCode     SmellType = "unreachable_code"
)

// Severity is the ordinal impact classification of a smell.
// Low < Medium < High < Critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Weight returns the penalty weight used in quality scoring. Keeping the
// weight on the enum prevents drift between severity levels and a separate
// lookup table.
func (s Severity) Weight() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 5
	default:
		return 0
	}
}

// Rank returns the ordinal position of the severity, for ordering.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether s is at or above the given severity.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// Severities lists all severity levels in ascending order.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// ParseSeverity converts a string to a Severity, reporting whether the
// string named a known level.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s), true
	}
	return "", false
}

// Smell is a single detected quality problem. A Smell is immutable once
// created; detectors only produce new values.
type Smell struct {
	Type        SmellType `json:"type"`
	File        string    `json:"file"`
	NodeName    string    `json:"node_name"`
	Line        int       `json:"line"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
}

// Fingerprint returns a stable identifier for the smell. Review output
// carries it so findings can be correlated across runs.
func (s Smell) Fingerprint() uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%s:%d:%s:%s", s.File, s.Line, s.Type, s.NodeName))
}
