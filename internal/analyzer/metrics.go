package analyzer

import (
	"math"

	"github.com/scrylabs/scry/pkg/syntax"
)

// CyclomaticComplexity computes the cyclomatic complexity of a block: one
// for the linear path, plus one per branching construct, plus one per extra
// operand of each boolean operator chain.
func CyclomaticComplexity(body []syntax.Stmt) int {
	complexity := 1
	syntax.WalkStmts(body, func(s syntax.Stmt) bool {
		switch s.(type) {
		case *syntax.If, *syntax.For, *syntax.While, *syntax.Assert:
			complexity++
		}
		return true
	})
	syntax.WalkExprs(body, func(e syntax.Expr) bool {
		if b, ok := e.(*syntax.BoolOp); ok {
			complexity += len(b.Values) - 1
		}
		return true
	})
	return complexity
}

// halsteadOperatorKinds is the fixed operator vocabulary size, covering the
// eight arithmetic operator symbols. Every binary operation counts as a
// token regardless of its operator.
const halsteadOperatorKinds = 8

// Volume computes a simplified Halstead volume over a block: binary operator
// occurrences form the token count, and the identifiers or syntactic kinds
// of their operands form the operand vocabulary.
func Volume(body []syntax.Stmt) float64 {
	tokens := 0
	operands := make(map[string]struct{})

	syntax.WalkExprs(body, func(e syntax.Expr) bool {
		b, ok := e.(*syntax.BinaryOp)
		if !ok {
			return true
		}
		tokens++
		operands[operandLabel(b.Left)] = struct{}{}
		operands[operandLabel(b.Right)] = struct{}{}
		return true
	})

	if tokens == 0 {
		return 0
	}
	vocabulary := float64(halsteadOperatorKinds + len(operands) + 1)
	return float64(tokens) * math.Log2(math.Max(vocabulary, 2))
}

// operandLabel names an operand for the Halstead vocabulary: identifiers by
// their name, everything else by its syntactic kind.
func operandLabel(e syntax.Expr) string {
	switch v := e.(type) {
	case *syntax.Name:
		return v.ID
	case *syntax.Attribute:
		return "attribute"
	case *syntax.BinaryOp:
		return "binary_operator"
	case *syntax.BoolOp:
		return "boolean_operator"
	case *syntax.Call:
		return "call"
	case *syntax.StringLit:
		return "string"
	case *syntax.OtherExpr:
		return v.Kind
	default:
		return "unknown"
	}
}

// MaintainabilityIndex combines Halstead volume, cyclomatic complexity, and
// lines of code into a 0-100 maintainability score.
func MaintainabilityIndex(volume float64, complexity, loc int) float64 {
	mi := 171 -
		5.2*math.Log(math.Max(volume, 1)) -
		0.23*float64(complexity) -
		16.2*math.Log(math.Max(float64(loc), 1))
	return math.Min(math.Max(mi, 0), 100)
}
