package review

import (
	"fmt"

	"github.com/scrylabs/scry/pkg/models"
)

// RuleEngine produces review comments from built-in templates. It needs no
// network access, so it always succeeds and serves as the fallback when no
// AI engine is configured or reachable.
type RuleEngine struct{}

func NewRuleEngine() *RuleEngine {
	return &RuleEngine{}
}

func (e *RuleEngine) Review(smell models.Smell) (Review, error) {
	title, explanation, suggestion := templateFor(smell)
	return Review{
		Smell:       smell,
		Fingerprint: smell.Fingerprint(),
		Title:       title,
		Explanation: explanation,
		Suggestion:  suggestion,
		Source:      SourceRules,
	}, nil
}

func templateFor(s models.Smell) (title, explanation, suggestion string) {
	switch s.Type {
	case models.SmellLongMethod:
		return fmt.Sprintf("Function '%s' too long", s.NodeName),
			s.Description + ". Violates the single responsibility principle; methods should ideally do one thing well.",
			"Extract 2-3 focused helper methods (e.g., for validation, computation, I/O) to improve readability and maintainability."
	case models.SmellGodClass:
		return fmt.Sprintf("Class '%s' has too many responsibilities", s.NodeName),
			s.Description + ". A class this large is hard to understand, test, and maintain.",
			"Split this class into several smaller, more focused classes, each handling a single responsibility. Consider patterns like Facade or Strategy."
	case models.SmellDeepNesting:
		return "Excessive nesting detected",
			s.Description + ". Deeply nested code reduces readability and increases cognitive load, creating 'arrow code' that is hard to follow.",
			"Use guard clauses, early returns, or refactor complex conditions into separate functions to flatten the code structure."
	case models.SmellLongParameterList:
		return fmt.Sprintf("Function '%s' has too many parameters", s.NodeName),
			s.Description + ". A long parameter list makes a function harder to call, understand, and test.",
			"Group related parameters into a custom object or a named tuple. Consider whether the function is doing too many things and can be split."
	case models.SmellMissingTypeHints:
		return fmt.Sprintf("Function '%s' missing type hints", s.NodeName),
			s.Description + ". Lack of type hints reduces code clarity and makes static analysis tools less effective.",
			"Add type hints to function parameters and return values to improve readability, enable static analysis, and reduce runtime errors."
	case models.SmellUnusedImports:
		return "Unused imports detected",
			fmt.Sprintf("Unused imports like %s increase file size and can cause confusion. They indicate dead code or incomplete refactoring.", s.NodeName),
			"Remove all unused import statements to clean up the code and prevent potential naming conflicts. A linter can keep them from coming back."
	case models.SmellManyLocalVariables:
		return fmt.Sprintf("Function '%s' uses many local variables", s.NodeName),
			s.Description + ". A large number of local variables often indicates that the function is doing too much and is hard to reason about.",
			"Split the function into smaller, focused helpers, each handling a clear subtask."
	case models.SmellFeatureEnvy:
		return fmt.Sprintf("Method '%s' may exhibit feature envy", s.NodeName),
			s.Description + ". When a method mostly uses another object's data instead of its own, the behavior may belong on that other object.",
			"Consider moving this behavior closer to the data it uses, or introduce a dedicated service to own this logic."
	case models.SmellExceptionSwallowing:
		return "Exceptions are being swallowed",
			s.Description + ". Swallowing exceptions with a bare 'except' or 'except Exception' hides real errors and makes debugging very difficult.",
			"Handle specific exception types and either log, re-raise, or convert them into meaningful error messages."
	case models.SmellUnreachableCode:
		return "Unreachable code detected",
			s.Description + ". Code after a terminating statement will never execute and can confuse future readers.",
			"Remove unreachable statements or refactor control flow so that all remaining code paths are actually executable."
	default:
		return fmt.Sprintf("Issue: %s detected", s.Type),
			fmt.Sprintf("A '%s' code smell was detected: %s.", s.Type, s.Description),
			"Review the code for opportunities to refactor according to common coding standards."
	}
}
