package rules

import (
	"bytes"
	"strings"
	"unicode"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

// word is one part of an identifier split at case changes and underscores.
type word struct {
	text       string
	start, end int
}

// splitWords: `BlackForestCake` -> Black Forest Cake, `foo_bar` -> foo bar.
func splitWords(name string) []word {
	var parts []word
	start := 0
	for i := 1; i < len(name); i++ {
		prev, cur := rune(name[i-1]), rune(name[i])
		switch {
		case unicode.IsUpper(cur) && unicode.IsLower(prev):
			parts = append(parts, word{name[start:i], start, i})
			start = i
		case cur == '_':
			parts = append(parts, word{name[start:i], start, i})
			start = i + 1
		}
	}
	if start < len(name) {
		parts = append(parts, word{name[start:], start, len(name)})
	}
	return parts
}

// commonAffixes returns how many leading and trailing words all names
// share. A single-word name disables the check.
func commonAffixes(names []string) (prefix, suffix int) {
	if len(names) < 2 {
		return 0, 0
	}
	first := splitWords(names[0])
	prefix, suffix = len(first), len(first)
	for _, name := range names[1:] {
		words := splitWords(name)
		if len(words) == 1 {
			return 0, 0
		}
		n := 0
		for n < prefix && n < len(words) && words[n].text == first[n].text {
			n++
		}
		prefix = n
		n = 0
		for n < suffix && n < len(words) && words[len(words)-1-n].text == first[len(first)-1-n].text {
			n++
		}
		suffix = n
	}
	return prefix, suffix
}

func variantNames(tree *ast.Tree, enum ast.NodeID) ([]ast.NodeID, []string) {
	variants := tree.ChildrenOfKind(enum, ast.Variant)
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = tree.Node(v).Name
	}
	return variants, names
}

func checkEnumVariantNames(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, enum := range nodesOfKind(tree, item, ast.ItemEnum) {
		_, names := variantNames(tree, enum)
		if prefix, suffix := commonAffixes(names); prefix > 0 || suffix > 0 {
			ctx.Report(diag.LintEnumVariantNames, enum)
		}
	}
}

// fixEnumVariantNames drops the shared words from every variant name.
func fixEnumVariantNames(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	if tree.Kind(node) != ast.ItemEnum {
		return ast.NoNodeID, "", false
	}
	variants, names := variantNames(tree, node)
	prefix, suffix := commonAffixes(names)
	if prefix == 0 && suffix == 0 {
		return ast.NoNodeID, "", false
	}
	base := tree.Span(node).Start
	text := tree.TextWithoutTrivia(node)
	var b strings.Builder
	last := 0
	for i, v := range variants {
		words := splitWords(names[i])
		if prefix+suffix >= len(words) {
			return ast.NoNodeID, "", false
		}
		renamed := names[i][words[prefix].start:words[len(words)-1-suffix].end]
		if renamed == "" || unicode.IsDigit(rune(renamed[0])) {
			return ast.NoNodeID, "", false
		}
		at := variantNameOffset(tree, v) - int(base)
		b.WriteString(text[last:at])
		b.WriteString(renamed)
		last = at + len(names[i])
	}
	b.WriteString(text[last:])
	return node, b.String(), true
}

// variantNameOffset returns the file offset of the variant's name, which
// follows its attributes.
func variantNameOffset(tree *ast.Tree, v ast.NodeID) int {
	start := tree.Span(v).Start
	if attrs := tree.Attributes(v); len(attrs) > 0 {
		start = tree.Span(attrs[len(attrs)-1]).End
	}
	name := []byte(tree.Node(v).Name)
	return int(start) + bytes.Index(tree.File.Content[start:], name)
}

// checkEmptyEnumBracketsVariant: `Variant: ()` равносилен `Variant`.
func checkEmptyEnumBracketsVariant(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, enum := range nodesOfKind(tree, item, ast.ItemEnum) {
		for _, v := range tree.ChildrenOfKind(enum, ast.Variant) {
			if isEmptyTupleVariant(tree, v) {
				ctx.Report(diag.LintEmptyEnumBracketsVariant, v)
			}
		}
	}
}

func isEmptyTupleVariant(tree *ast.Tree, v ast.NodeID) bool {
	ty := tree.Child(v, 0)
	return tree.Kind(ty) == ast.TypeTuple && len(tree.Children(ty)) == 0
}

func fixEmptyEnumBracketsVariant(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	if tree.Kind(node) != ast.Variant || !isEmptyTupleVariant(tree, node) {
		return ast.NoNodeID, "", false
	}
	head := tree.File.Slice(tree.Span(node).Start, tree.Span(tree.Child(node, 0)).Start)
	head = strings.TrimRight(head, " \t\r\n")
	head = strings.TrimSuffix(head, ":")
	return node, strings.TrimRight(head, " \t\r\n"), true
}
