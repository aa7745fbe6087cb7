package fix

import (
	"slices"
	"strings"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/source"
)

// importFixState collects the dead entries of one `{...}` list, keyed by its
// UsePathMulti node. Entries are the direct children of the list.
type importFixState struct {
	decl   ast.NodeID
	remove []ast.NodeID
}

type pruner struct {
	tree    *ast.Tree
	states  map[ast.NodeID]*importFixState
	deleted map[ast.NodeID]struct{} // ItemUse
	rewrite map[ast.NodeID]string   // UsePathMulti -> новый текст
}

// PruneImports turns the unused-import diagnostics of one file into the
// smallest edit set: a list that loses some entries is rewritten with the
// survivors, a list that loses all of them disappears from its parent list,
// and a statement left with nothing is deleted.
func PruneImports(tree *ast.Tree, diags []diag.Diagnostic) []Edit {
	if tree == nil || len(diags) == 0 {
		return nil
	}
	p := &pruner{
		tree:    tree,
		states:  make(map[ast.NodeID]*importFixState),
		deleted: make(map[ast.NodeID]struct{}),
		rewrite: make(map[ast.NodeID]string),
	}
	for _, d := range diags {
		if IsImportDiagnostic(d) && d.Anchor.IsValid() {
			p.climb(d.Anchor)
		}
	}
	p.consolidate()
	return p.edits()
}

// climb walks up from a dead node to the list holding it or to the
// statement. The node itself is the entry when its parent is a list.
func (p *pruner) climb(dead ast.NodeID) {
	entry := dead
	for cur := p.tree.Parent(dead); cur.IsValid(); cur = p.tree.Parent(cur) {
		switch p.tree.Kind(cur) {
		case ast.UsePathList:
			multi := p.tree.Parent(cur)
			st := p.states[multi]
			if st == nil {
				st = &importFixState{decl: multi}
				p.states[multi] = st
			}
			if !slices.Contains(st.remove, entry) {
				st.remove = append(st.remove, entry)
			}
			return
		case ast.ItemUse:
			p.deleted[cur] = struct{}{}
			return
		}
		entry = cur
	}
}

// consolidate processes lists innermost first. A fully dead list climbs
// into its parent list, which may then die as well.
func (p *pruner) consolidate() {
	pending := make([]ast.NodeID, 0, len(p.states))
	for id := range p.states {
		pending = append(pending, id)
	}
	done := make(map[ast.NodeID]bool, len(p.states))
	for len(pending) > 0 {
		// самый глубокий список первым; при равной глубине порядок по id
		slices.SortFunc(pending, func(a, b ast.NodeID) int {
			if da, db := p.tree.Depth(a), p.tree.Depth(b); da != db {
				return db - da
			}
			return int(a) - int(b)
		})
		multi := pending[0]
		pending = pending[1:]
		if done[multi] {
			continue
		}
		done[multi] = true

		st := p.states[multi]
		survivors := p.survivors(st)
		if len(survivors) > 0 {
			p.rewrite[multi] = p.render(survivors)
			continue
		}
		p.climb(multi)
		if parent := p.enclosingMulti(multi); parent.IsValid() && !done[parent] && !slices.Contains(pending, parent) {
			pending = append(pending, parent)
		}
	}
}

func (p *pruner) survivors(st *importFixState) []ast.NodeID {
	list := p.tree.FirstChildOfKind(st.decl, ast.UsePathList)
	var out []ast.NodeID
	for _, entry := range p.tree.Children(list) {
		if !slices.Contains(st.remove, entry) {
			out = append(out, entry)
		}
	}
	return out
}

// enclosingMulti returns the nearest UsePathMulti strictly above id.
func (p *pruner) enclosingMulti(id ast.NodeID) ast.NodeID {
	for cur := p.tree.Parent(id); cur.IsValid(); cur = p.tree.Parent(cur) {
		switch p.tree.Kind(cur) {
		case ast.UsePathMulti:
			return cur
		case ast.ItemUse:
			return ast.NoNodeID
		}
	}
	return ast.NoNodeID
}

// render: один выживший пишется без скобок, иначе `{a, b}` в исходном порядке.
func (p *pruner) render(entries []ast.NodeID) string {
	if len(entries) == 1 {
		return p.textOf(entries[0])
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = p.textOf(e)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// textOf returns the text of id with the rewrites of inner lists applied.
func (p *pruner) textOf(id ast.NodeID) string {
	sp := p.tree.Span(id)
	var inner []Edit
	for multi, text := range p.rewrite {
		if multi != id && p.tree.IsAncestor(id, multi) && !p.coveredByRewrite(multi, id) {
			msp := p.tree.Span(multi)
			inner = append(inner, Edit{Start: msp.Start - sp.Start, End: msp.End - sp.Start, Replacement: text})
		}
	}
	text := p.tree.TextWithoutTrivia(id)
	if len(inner) == 0 {
		return text
	}
	sorted, ok := Resolve(inner)
	if !ok {
		return text
	}
	return ApplyEdits(text, sorted)
}

// coveredByRewrite reports whether a rewritten list sits between multi and
// stop, in which case multi's text is already part of that rewrite.
func (p *pruner) coveredByRewrite(multi, stop ast.NodeID) bool {
	for cur := p.tree.Parent(multi); cur.IsValid() && cur != stop; cur = p.tree.Parent(cur) {
		if _, ok := p.rewrite[cur]; ok {
			return true
		}
	}
	return false
}

func (p *pruner) edits() []Edit {
	var out []Edit
	for use := range p.deleted {
		out = append(out, spanEdit(statementSpan(p.tree, use), ""))
	}
	for multi, text := range p.rewrite {
		if p.insideDeleted(multi) || p.coveredByRewrite(multi, ast.NoNodeID) {
			continue
		}
		out = append(out, spanEdit(p.tree.Span(multi), text))
	}
	slices.SortFunc(out, func(a, b Edit) int { return int(a.Start) - int(b.Start) })
	return out
}

func (p *pruner) insideDeleted(id ast.NodeID) bool {
	for a := range p.tree.Ancestors(id) {
		if _, ok := p.deleted[a]; ok {
			return true
		}
	}
	return false
}

// statementSpan covers the whole `use` line: indentation before it and the
// trailing trivia up to and including the newline. Comments above it stay.
func statementSpan(tree *ast.Tree, use ast.NodeID) source.Span {
	sp := tree.Span(use)
	content := tree.File.Content
	start := sp.Start
	for start > 0 && (content[start-1] == ' ' || content[start-1] == '\t') {
		start--
	}
	if start > 0 && content[start-1] != '\n' {
		// на строке есть что-то ещё: убираем только сам оператор
		start = sp.Start
	}
	sp.Start = start
	sp.End = tree.FullSpan(use).End
	return sp
}
