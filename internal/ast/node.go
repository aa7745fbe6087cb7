package ast

import (
	"cairolint/internal/source"
	"cairolint/internal/token"
)

type Flags uint8

const (
	FlagPub    Flags = 1 << iota // pub item
	FlagMut                      // mut binding / param
	FlagRef                      // ref param
	FlagSemi                     // statement terminated by ';'
	FlagInline                   // mod with a `{ ... }` body
)

// Node is one syntax node. Span is tight (first to last token);
// FullSpan also covers the leading trivia of the first token and the
// trailing trivia of the last one.
type Node struct {
	Kind     Kind
	Flags    Flags
	Op       token.Kind
	Name     string
	Alias    string
	Parent   NodeID
	Span     source.Span
	FullSpan source.Span

	first uint32 // индекс первого ребёнка в Tree.kids
	count uint32
}

// Has reports whether all bits of f are set.
func (n *Node) Has(f Flags) bool { return n.Flags&f == f }
