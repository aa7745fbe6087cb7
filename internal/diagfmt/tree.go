package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cairolint/internal/ast"
	"cairolint/internal/source"
	"cairolint/internal/token"
)

// ASTNodeOutput is the JSON form of one syntax node.
type ASTNodeOutput struct {
	Kind     string          `json:"kind"`
	Name     string          `json:"name,omitempty"`
	Alias    string          `json:"alias,omitempty"`
	Op       string          `json:"op,omitempty"`
	Flags    []string        `json:"flags,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatTreePretty prints the syntax tree with box-drawing branches.
func FormatTreePretty(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	if tree == nil || !tree.Root().IsValid() {
		return fmt.Errorf("empty tree")
	}
	fmt.Fprintf(w, "%s (span: %s)\n", describe(tree, tree.Root()), formatSpan(tree.Span(tree.Root()), fs))
	printChildren(w, tree, fs, tree.Root(), "")
	return nil
}

func printChildren(w io.Writer, tree *ast.Tree, fs *source.FileSet, id ast.NodeID, prefix string) {
	kids := tree.Children(id)
	for i, kid := range kids {
		branch, next := "├─ ", "│  "
		if i == len(kids)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, describe(tree, kid), formatSpan(tree.Span(kid), fs))
		printChildren(w, tree, fs, kid, prefix+next)
	}
}

func describe(tree *ast.Tree, id ast.NodeID) string {
	n := tree.Node(id)
	var b strings.Builder
	b.WriteString(n.Kind.String())
	if n.Op != token.Invalid {
		fmt.Fprintf(&b, " %s", n.Op)
	}
	if n.Name != "" {
		fmt.Fprintf(&b, " %q", n.Name)
	}
	if n.Alias != "" {
		fmt.Fprintf(&b, " as %q", n.Alias)
	}
	if fl := flagNames(n.Flags); len(fl) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(fl, " "))
	}
	return b.String()
}

func flagNames(f ast.Flags) []string {
	var out []string
	for _, fl := range []struct {
		bit  ast.Flags
		name string
	}{
		{ast.FlagPub, "pub"},
		{ast.FlagMut, "mut"},
		{ast.FlagRef, "ref"},
		{ast.FlagSemi, "semi"},
		{ast.FlagInline, "inline"},
	} {
		if f&fl.bit != 0 {
			out = append(out, fl.name)
		}
	}
	return out
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil || fs.Get(sp.File) == nil {
		return sp.String()
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// FormatTreeJSON writes the syntax tree as nested JSON objects.
func FormatTreeJSON(w io.Writer, tree *ast.Tree) error {
	if tree == nil || !tree.Root().IsValid() {
		return fmt.Errorf("empty tree")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nodeJSON(tree, tree.Root()))
}

func nodeJSON(tree *ast.Tree, id ast.NodeID) ASTNodeOutput {
	n := tree.Node(id)
	out := ASTNodeOutput{
		Kind:  n.Kind.String(),
		Name:  n.Name,
		Alias: n.Alias,
		Flags: flagNames(n.Flags),
		Span:  n.Span,
	}
	if n.Op != token.Invalid {
		out.Op = n.Op.String()
	}
	for _, kid := range tree.Children(id) {
		out.Children = append(out.Children, nodeJSON(tree, kid))
	}
	return out
}
