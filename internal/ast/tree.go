package ast

import (
	"fmt"
	"iter"

	"cairolint/internal/source"

	"fortio.org/safecast"
)

// Tree is an immutable, arena-backed syntax tree of one file. Nodes are
// appended post-order by the parser: children always have smaller ids than
// their parent, and the root is the last node.
type Tree struct {
	File  *source.File
	nodes *Arena[Node]
	kids  []NodeID
	root  NodeID
}

// NewTree prepares an empty tree for file; capHint sizes the node arena.
func NewTree(file *source.File, capHint uint) *Tree {
	return &Tree{
		File:  file,
		nodes: NewArena[Node](capHint),
		kids:  make([]NodeID, 0, capHint),
	}
}

// Add appends n with the given children and links them to it.
func (t *Tree) Add(n Node, children ...NodeID) NodeID {
	first, err := safecast.Conv[uint32](len(t.kids))
	if err != nil {
		panic(fmt.Errorf("tree children overflow: %w", err))
	}
	count, err := safecast.Conv[uint32](len(children))
	if err != nil {
		panic(fmt.Errorf("tree children overflow: %w", err))
	}
	n.first, n.count = first, count
	t.kids = append(t.kids, children...)
	id := NodeID(t.nodes.Allocate(n))
	for _, c := range children {
		if child := t.nodes.Get(uint32(c)); child != nil {
			child.Parent = id
		}
	}
	return id
}

// SetRoot marks id as the SourceFile root.
func (t *Tree) SetRoot(id NodeID) { t.root = id }

func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes.
func (t *Tree) Len() int { return int(t.nodes.Len()) }

// Node returns the node for id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

// Children returns the direct children of id in source order.
// READONLY
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil || n.count == 0 {
		return nil
	}
	return t.kids[n.first : n.first+n.count]
}

// Child returns the i-th child, skipping attributes.
func (t *Tree) Child(id NodeID, i int) NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == Attribute {
			continue
		}
		if i == 0 {
			return c
		}
		i--
	}
	return NoNodeID
}

// NonAttrChildren returns the children of id without its attributes.
func (t *Tree) NonAttrChildren(id NodeID) []NodeID {
	kids := t.Children(id)
	for i, c := range kids {
		if t.Kind(c) != Attribute {
			return kids[i:]
		}
	}
	return nil
}

// ChildrenOfKind returns the direct children of the given kind.
func (t *Tree) ChildrenOfKind(id NodeID, k Kind) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.Kind(c) == k {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child of kind k.
func (t *Tree) FirstChildOfKind(id NodeID, k Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == k {
			return c
		}
	}
	return NoNodeID
}

// Span is the tight span of id, without trivia.
func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

// FullSpan includes the surrounding trivia of id.
func (t *Tree) FullSpan(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.FullSpan
	}
	return source.Span{}
}

// Text returns the source text of id including trivia.
func (t *Tree) Text(id NodeID) string {
	sp := t.FullSpan(id)
	return t.File.Slice(sp.Start, sp.End)
}

// TextWithoutTrivia returns the source text of the tight span of id.
func (t *Tree) TextWithoutTrivia(id NodeID) string {
	sp := t.Span(id)
	return t.File.Slice(sp.Start, sp.End)
}

// Ancestors yields id itself and then every parent up to the root.
func (t *Tree) Ancestors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for cur := id; cur.IsValid(); cur = t.Parent(cur) {
			if !yield(cur) {
				return
			}
		}
	}
}

// Descendants yields every node below id in pre-order (id excluded).
func (t *Tree) Descendants(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		stack := make([]NodeID, 0, 16)
		kids := t.Children(id)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cur) {
				return
			}
			kids := t.Children(cur)
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, kids[i])
			}
		}
	}
}

// DescendantsOfKind collects the descendants of id with kind k in pre-order.
func (t *Tree) DescendantsOfKind(id NodeID, k Kind) []NodeID {
	var out []NodeID
	for d := range t.Descendants(id) {
		if t.Kind(d) == k {
			out = append(out, d)
		}
	}
	return out
}

// Items returns the top-level items of the file.
func (t *Tree) Items() []NodeID {
	return t.Children(t.root)
}

// Depth returns the number of ancestors of id (root has depth 0).
func (t *Tree) Depth(id NodeID) int {
	d := -1
	for range t.Ancestors(id) {
		d++
	}
	return d
}

// IsAncestor reports whether anc is id or one of its ancestors.
func (t *Tree) IsAncestor(anc, id NodeID) bool {
	for a := range t.Ancestors(id) {
		if a == anc {
			return true
		}
	}
	return false
}
