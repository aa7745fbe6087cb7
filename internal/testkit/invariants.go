package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cairolint/internal/ast"
	"cairolint/internal/source"
)

// CheckTreeInvariants runs structural checks on a parsed tree:
// 1) the root is a SourceFile spanning the whole file
// 2) every child is linked back to its parent and lies within the parent's span
// 3) siblings are ordered and never overlap
// 4) each node's Span is contained in its FullSpan
func CheckTreeInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.Node(tree.Root())
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	if root.Kind != ast.SourceFile {
		return fmt.Errorf("root kind is %s, want SourceFile", root.Kind)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.Start != 0 || root.Span.End != lenContent {
		return fmt.Errorf("root span %v does not cover file of %d bytes", root.Span, lenContent)
	}
	return checkNode(tree, tree.Root(), sf.ID)
}

func checkNode(tree *ast.Tree, id ast.NodeID, file source.FileID) error {
	n := tree.Node(id)
	if n.Span.File != file {
		return fmt.Errorf("%s span points to different file id: got=%d want=%d", n.Kind, n.Span.File, file)
	}
	if !n.FullSpan.Contains(n.Span) {
		return fmt.Errorf("%s full span %v does not contain span %v", n.Kind, n.FullSpan, n.Span)
	}
	var prevEnd uint32
	for i, c := range tree.Children(id) {
		child := tree.Node(c)
		if child == nil {
			return fmt.Errorf("nil child #%d of %s", i, n.Kind)
		}
		if child.Parent != id {
			return fmt.Errorf("%s child #%d has parent %d, want %d", n.Kind, i, child.Parent, id)
		}
		if !n.Span.Contains(child.Span) {
			return fmt.Errorf("%s child %s span %v is outside %v", n.Kind, child.Kind, child.Span, n.Span)
		}
		if i > 0 && child.Span.Start < prevEnd {
			return fmt.Errorf("%s children overlap at %d", n.Kind, child.Span.Start)
		}
		prevEnd = child.Span.End
		if err := checkNode(tree, c, file); err != nil {
			return err
		}
	}
	return nil
}
