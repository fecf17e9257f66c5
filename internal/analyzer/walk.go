package analyzer

import "github.com/scrylabs/scry/pkg/syntax"

// CountStatements returns the number of logical statements in a block,
// including statements nested in control-flow constructs and in nested
// function and class bodies.
func CountStatements(body []syntax.Stmt) int {
	count := 0
	syntax.WalkStmts(body, func(syntax.Stmt) bool {
		count++
		return true
	})
	return count
}

// isControlFlow reports whether a statement is a control-flow construct for
// nesting purposes: conditionals, loops, context-manager blocks, and
// exception handling. Function and class definitions are scoping constructs,
// not control flow, and do not add depth.
func isControlFlow(s syntax.Stmt) bool {
	switch s.(type) {
	case *syntax.If, *syntax.For, *syntax.While, *syntax.With, *syntax.Try:
		return true
	}
	return false
}

// MaxNestingDepth returns the maximum nesting depth of control-flow
// constructs in a block. Entering a control-flow construct increases the
// depth for its children; any other construct preserves it. The walk uses an
// explicit work list so pathologically nested input cannot overflow the
// goroutine stack.
func MaxNestingDepth(body []syntax.Stmt) int {
	type frame struct {
		block []syntax.Stmt
		depth int
	}

	maxDepth := 0
	work := []frame{{block: body, depth: 0}}
	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		if f.depth > maxDepth {
			maxDepth = f.depth
		}
		for _, s := range f.block {
			childDepth := f.depth
			if isControlFlow(s) {
				childDepth++
			}
			for _, block := range syntax.Blocks(s) {
				if len(block) > 0 {
					work = append(work, frame{block: block, depth: childDepth})
				}
			}
			if childDepth > maxDepth {
				maxDepth = childDepth
			}
		}
	}
	return maxDepth
}

// terminates reports whether a statement unconditionally ends control flow
// in its linear block.
func terminates(s syntax.Stmt) bool {
	switch s.(type) {
	case *syntax.Return, *syntax.Raise, *syntax.Break, *syntax.Continue:
		return true
	}
	return false
}

// unreachableStatements finds statements that follow a terminating statement
// within the same linear block. Every nested control-flow block is scanned
// independently; nested function and class bodies are excluded because they
// are scanned as their own units. Iteration uses an explicit queue so depth
// is bounded only by available memory, and results come out in source order.
func unreachableStatements(body []syntax.Stmt) []syntax.Stmt {
	var dead []syntax.Stmt
	queue := [][]syntax.Stmt{body}
	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]

		terminated := false
		for _, s := range block {
			if terminated {
				dead = append(dead, s)
			}
			if terminates(s) {
				terminated = true
			}
			switch s.(type) {
			case *syntax.FunctionDef, *syntax.ClassDef:
				continue
			}
			for _, nested := range syntax.Blocks(s) {
				if len(nested) > 0 {
					queue = append(queue, nested)
				}
			}
		}
	}
	return dead
}
