package rules

import (
	"strconv"
	"strings"

	"cairolint/internal/ast"
	"cairolint/internal/token"
)

// binary разбирает ExprBinary на оператор и операнды.
func binary(tree *ast.Tree, id ast.NodeID) (op token.Kind, lhs, rhs ast.NodeID, ok bool) {
	n := tree.Node(id)
	if n == nil || n.Kind != ast.ExprBinary {
		return token.Invalid, ast.NoNodeID, ast.NoNodeID, false
	}
	kids := tree.Children(id)
	if len(kids) != 2 {
		return token.Invalid, ast.NoNodeID, ast.NoNodeID, false
	}
	return n.Op, kids[0], kids[1], true
}

func isComparison(op token.Kind) bool {
	switch op {
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return true
	}
	return false
}

// flipComparison возвращает оператор для переставленных операндов: a < b  <=>  b > a.
func flipComparison(op token.Kind) token.Kind {
	switch op {
	case token.Lt:
		return token.Gt
	case token.Gt:
		return token.Lt
	case token.LtEq:
		return token.GtEq
	case token.GtEq:
		return token.LtEq
	}
	return op
}

// negateComparison возвращает логическое отрицание сравнения: !(a < b)  <=>  a >= b.
func negateComparison(op token.Kind) token.Kind {
	switch op {
	case token.EqEq:
		return token.BangEq
	case token.BangEq:
		return token.EqEq
	case token.Lt:
		return token.GtEq
	case token.GtEq:
		return token.Lt
	case token.Gt:
		return token.LtEq
	case token.LtEq:
		return token.Gt
	}
	return token.Invalid
}

// unparen снимает все внешние скобки.
func unparen(tree *ast.Tree, id ast.NodeID) ast.NodeID {
	for tree.Kind(id) == ast.ExprParen {
		id = tree.Children(id)[0]
	}
	return id
}

// intValue returns the value of an integer literal such as `1`, `0x10_u8`
// or `1_000`. Values beyond 64 bits are reported as unknown.
func intValue(tree *ast.Tree, id ast.NodeID) (uint64, bool) {
	n := tree.Node(id)
	if n == nil || n.Kind != ast.ExprInt {
		return 0, false
	}
	text := stripIntSuffix(n.Name)
	base := 10
	switch {
	case strings.HasPrefix(text, "0x"):
		base, text = 16, text[2:]
	case strings.HasPrefix(text, "0o"):
		base, text = 8, text[2:]
	case strings.HasPrefix(text, "0b"):
		base, text = 2, text[2:]
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(text, "_", ""), base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// stripIntSuffix убирает суффикс типа: `10_u32` -> `10`, `0xff_u8` -> `0xff`.
func stripIntSuffix(text string) string {
	digits := "0123456789"
	start := 0
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x':
			digits, start = "0123456789abcdefABCDEF", 2
		case 'o', 'b':
			start = 2
		}
	}
	for i := start; i < len(text); i++ {
		if text[i] == '_' && (i+1 >= len(text) || !strings.ContainsRune(digits, rune(text[i+1]))) {
			return text[:i]
		}
	}
	return text
}

func isIntLiteral(tree *ast.Tree, id ast.NodeID, want uint64) bool {
	v, ok := intValue(tree, unparen(tree, id))
	return ok && v == want
}

// hasSideEffects reports whether evaluating id may call code.
func hasSideEffects(tree *ast.Tree, id ast.NodeID) bool {
	if isCall(tree.Kind(id)) {
		return true
	}
	for d := range tree.Descendants(id) {
		if isCall(tree.Kind(d)) {
			return true
		}
	}
	return false
}

func isCall(k ast.Kind) bool {
	return k == ast.ExprCall || k == ast.ExprMethodCall || k == ast.ExprMacro
}

// isPlace reports whether id is a plain variable-like operand: a path, a
// field access on one, or a snapshot of either.
func isPlace(tree *ast.Tree, id ast.NodeID) bool {
	n := tree.Node(id)
	if n == nil {
		return false
	}
	switch n.Kind {
	case ast.ExprPath:
		return true
	case ast.ExprField:
		return isPlace(tree, tree.Children(id)[0])
	case ast.ExprUnary:
		return n.Op == token.At && isPlace(tree, tree.Children(id)[0])
	}
	return false
}

// lineIndent returns the whitespace that starts the line holding id.
func lineIndent(tree *ast.Tree, id ast.NodeID) string {
	content := tree.File.Content
	start := int(tree.Span(id).Start)
	lineStart := start
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	end := lineStart
	for end < start && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[lineStart:end])
}

// dedent removes up to n leading spaces from every line but the first.
func dedent(text string, n int) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		cut := 0
		for cut < n && cut < len(line) && line[cut] == ' ' {
			cut++
		}
		lines[i] = line[cut:]
	}
	return strings.Join(lines, "\n")
}

// ifParts раскладывает ExprIf: условие, блок и необязательную ветку else.
func ifParts(tree *ast.Tree, id ast.NodeID) (cond, block, els ast.NodeID) {
	kids := tree.Children(id)
	if len(kids) < 2 {
		return ast.NoNodeID, ast.NoNodeID, ast.NoNodeID
	}
	cond, block = kids[0], kids[1]
	if len(kids) > 2 {
		els = kids[2]
	}
	return cond, block, els
}

// stmtExpr returns the expression of an expression statement.
func stmtExpr(tree *ast.Tree, stmt ast.NodeID) ast.NodeID {
	if tree.Kind(stmt) != ast.StmtExpr {
		return ast.NoNodeID
	}
	return tree.Child(stmt, 0)
}

// nodesOfKind returns id itself when it has kind k, followed by its
// descendants of that kind.
func nodesOfKind(tree *ast.Tree, id ast.NodeID, k ast.Kind) []ast.NodeID {
	out := tree.DescendantsOfKind(id, k)
	if tree.Kind(id) == k {
		out = append([]ast.NodeID{id}, out...)
	}
	return out
}
