package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/token"
)

var eqOpCodes = map[token.Kind]diag.Code{
	token.EqEq:   diag.LintEqCompOp,
	token.LtEq:   diag.LintEqCompOp,
	token.GtEq:   diag.LintEqCompOp,
	token.BangEq: diag.LintNeqCompOp,
	token.Lt:     diag.LintNeqCompOp,
	token.Gt:     diag.LintNeqCompOp,
	token.AndAnd: diag.LintEqLogicalOp,
	token.OrOr:   diag.LintEqLogicalOp,
	token.Amp:    diag.LintEqBitwiseOp,
	token.Pipe:   diag.LintEqBitwiseOp,
	token.Caret:  diag.LintEqBitwiseOp,
	token.Minus:  diag.LintEqDiffOp,
	token.Slash:  diag.LintDivEqOp,
}

// checkEqOp: `a == a`, `a - a`, `a / a` ... Операнды с вызовами пропускаем:
// у них может быть побочный эффект.
func checkEqOp(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprBinary) {
		op, lhs, rhs, _ := binary(tree, id)
		code, ok := eqOpCodes[op]
		if !ok {
			continue
		}
		if hasSideEffects(tree, lhs) || hasSideEffects(tree, rhs) {
			continue
		}
		if ctx.Text(lhs) == ctx.Text(rhs) {
			ctx.Report(code, id)
		}
	}
}
