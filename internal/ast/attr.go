package ast

// Attributes returns the `#[...]` attributes attached to id.
func (t *Tree) Attributes(id NodeID) []NodeID {
	kids := t.Children(id)
	for i, c := range kids {
		if t.Kind(c) != Attribute {
			return kids[:i]
		}
	}
	return kids
}

// HasAttr reports whether id carries `#[name]` or `#[name(...)]`.
func (t *Tree) HasAttr(id NodeID, name string) bool {
	for _, a := range t.Attributes(id) {
		if t.Node(a).Name == name {
			return true
		}
	}
	return false
}

// HasAttrArg reports whether id carries `#[attr(.., arg, ..)]`.
func (t *Tree) HasAttrArg(id NodeID, attr, arg string) bool {
	for _, a := range t.Attributes(id) {
		if t.Node(a).Name != attr {
			continue
		}
		for _, x := range t.Children(a) {
			if t.TextWithoutTrivia(x) == arg {
				return true
			}
		}
	}
	return false
}

// AttrArgs returns the argument nodes of every `#[attr(...)]` on id.
func (t *Tree) AttrArgs(id NodeID, attr string) []NodeID {
	var out []NodeID
	for _, a := range t.Attributes(id) {
		if t.Node(a).Name == attr {
			out = append(out, t.Children(a)...)
		}
	}
	return out
}
