package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/token"
)

// comparison — одна сторона двойного сравнения, приведённая к виду `a op b`.
type comparison struct {
	op   token.Kind
	a, b string
}

type opTriple struct {
	lhs, mid, rhs token.Kind
}

var simplifiable = map[opTriple]token.Kind{
	{token.LtEq, token.AndAnd, token.GtEq}: token.EqEq,
	{token.GtEq, token.AndAnd, token.LtEq}: token.EqEq,
	{token.Lt, token.OrOr, token.EqEq}:     token.LtEq,
	{token.EqEq, token.OrOr, token.Lt}:     token.LtEq,
	{token.Gt, token.OrOr, token.EqEq}:     token.GtEq,
	{token.EqEq, token.OrOr, token.Gt}:     token.GtEq,
}

var redundant = map[opTriple]token.Kind{
	{token.LtEq, token.OrOr, token.GtEq}: token.KwTrue,
	{token.GtEq, token.OrOr, token.LtEq}: token.KwTrue,
	{token.Lt, token.OrOr, token.Gt}:     token.BangEq,
	{token.Gt, token.OrOr, token.Lt}:     token.BangEq,
}

var contradictory = map[opTriple]bool{
	{token.EqEq, token.AndAnd, token.Lt}: true,
	{token.Lt, token.AndAnd, token.EqEq}: true,
	{token.EqEq, token.AndAnd, token.Gt}: true,
	{token.Gt, token.AndAnd, token.EqEq}: true,
	{token.Lt, token.AndAnd, token.Gt}:   true,
	{token.Gt, token.AndAnd, token.Lt}:   true,
	{token.LtEq, token.AndAnd, token.Gt}: true,
	{token.GtEq, token.AndAnd, token.Lt}: true,
}

// checkDoubleComparison: `a <= b && a >= b`, `a < b || a > b`, `x > 5 && x < 3` ...
func checkDoubleComparison(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprBinary) {
		mid, lhs, rhs, _ := binary(tree, id)
		if mid != token.AndAnd && mid != token.OrOr {
			continue
		}
		if mid == token.AndAnd && isImpossible(tree, lhs, rhs) {
			ctx.Report(diag.LintImpossibleComparison, id)
		}
		code, ok := classifyDoubleComparison(tree, id)
		if ok {
			ctx.Report(code, id)
		}
	}
}

// classifyDoubleComparison сводит обе стороны к одной паре операндов.
func classifyDoubleComparison(tree *ast.Tree, id ast.NodeID) (diag.Code, bool) {
	triple, _, ok := doubleComparison(tree, id)
	if !ok {
		return diag.UnknownCode, false
	}
	switch {
	case simplifiable[triple] != token.Invalid:
		return diag.LintSimplifiableComparison, true
	case redundant[triple] != token.Invalid:
		return diag.LintRedundantComparison, true
	case contradictory[triple]:
		return diag.LintContradictoryComparison, true
	}
	return diag.UnknownCode, false
}

// doubleComparison returns the operator triple of `a op1 b && a op2 b`,
// with the right comparison flipped when its operands are swapped.
func doubleComparison(tree *ast.Tree, id ast.NodeID) (opTriple, comparison, bool) {
	mid, lhs, rhs, ok := binary(tree, id)
	if !ok {
		return opTriple{}, comparison{}, false
	}
	left, ok := placeComparison(tree, lhs)
	if !ok {
		return opTriple{}, comparison{}, false
	}
	right, ok := placeComparison(tree, rhs)
	if !ok {
		return opTriple{}, comparison{}, false
	}
	switch {
	case left.a == right.a && left.b == right.b:
	case left.a == right.b && left.b == right.a:
		right.op = flipComparison(right.op)
	default:
		return opTriple{}, comparison{}, false
	}
	return opTriple{left.op, mid, right.op}, left, true
}

func placeComparison(tree *ast.Tree, id ast.NodeID) (comparison, bool) {
	op, a, b, ok := binary(tree, id)
	if !ok || !isComparison(op) || !isPlace(tree, a) || !isPlace(tree, b) {
		return comparison{}, false
	}
	return comparison{op: op, a: tree.TextWithoutTrivia(a), b: tree.TextWithoutTrivia(b)}, true
}

// isImpossible: `x > 5 && x < 3` — одна переменная против двух литералов.
func isImpossible(tree *ast.Tree, lhs, rhs ast.NodeID) bool {
	lvar, lop, lval, ok := literalComparison(tree, lhs)
	if !ok {
		return false
	}
	rvar, rop, rval, ok := literalComparison(tree, rhs)
	if !ok || lvar != rvar {
		return false
	}
	switch {
	case lop == token.Gt && rop == token.Lt,
		lop == token.Gt && rop == token.LtEq,
		lop == token.GtEq && rop == token.Lt:
		return lval >= rval
	case lop == token.GtEq && rop == token.LtEq:
		return lval > rval
	case lop == token.Lt && rop == token.Gt,
		lop == token.Lt && rop == token.GtEq,
		lop == token.LtEq && rop == token.Gt:
		return lval <= rval
	case lop == token.LtEq && rop == token.GtEq:
		return lval < rval
	}
	return false
}

// literalComparison приводит `5 < x` к `x > 5`.
func literalComparison(tree *ast.Tree, id ast.NodeID) (string, token.Kind, uint64, bool) {
	op, a, b, ok := binary(tree, id)
	if !ok || !isComparison(op) {
		return "", token.Invalid, 0, false
	}
	if v, ok := intValue(tree, b); ok && isPlace(tree, a) {
		return tree.TextWithoutTrivia(a), op, v, true
	}
	if v, ok := intValue(tree, a); ok && isPlace(tree, b) {
		return tree.TextWithoutTrivia(b), flipComparison(op), v, true
	}
	return "", token.Invalid, 0, false
}

// fixDoubleComparison переписывает всё выражение в одно сравнение или литерал.
func fixDoubleComparison(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	triple, left, ok := doubleComparison(tree, node)
	if !ok {
		return ast.NoNodeID, "", false
	}
	op, ok := simplifiable[triple]
	if !ok {
		op, ok = redundant[triple]
	}
	switch {
	case ok && op == token.KwTrue:
		return node, "true", true
	case ok:
		return node, left.a + " " + op.String() + " " + left.b, true
	case contradictory[triple]:
		return node, "false", true
	}
	return ast.NoNodeID, "", false
}
