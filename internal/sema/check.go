package sema

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"cairolint/internal/ast"
	"cairolint/internal/source"
)

// Options configure a semantic pass over a file.
type Options struct {
	// Strings интернирует имена привязок; nil — создаётся свой.
	Strings *source.Interner
}

// Import is one name brought into scope by a `use` leaf.
type Import struct {
	Leaf    ast.NodeID      // UsePathLeaf
	Scope   ast.NodeID      // SourceFile or inline ItemModule owning the use
	Binding source.StringID // alias when present, otherwise the leaf name
	Path    string          // `a::b::c` as written, without trivia
	Public  bool            // `pub use` re-export
}

// Result stores semantic facts produced by the checker.
type Result struct {
	Strings *source.Interner
	Imports []Import
	// Unused lists UsePathLeaf nodes whose binding is never referenced,
	// in source order.
	Unused []ast.NodeID
	used   map[scopedName]struct{}
}

type scopedName struct {
	scope ast.NodeID
	name  source.StringID
}

// IsUsed reports whether name is referenced from scope.
func (r *Result) IsUsed(scope ast.NodeID, name string) bool {
	if r == nil || r.Strings == nil {
		return false
	}
	id, ok := r.Strings.Find(norm.NFC.String(name))
	if !ok {
		return false
	}
	_, used := r.used[scopedName{scope, id}]
	return used
}

// ImportOf returns the import bound by leaf.
func (r *Result) ImportOf(leaf ast.NodeID) (Import, bool) {
	if r == nil {
		return Import{}, false
	}
	for _, imp := range r.Imports {
		if imp.Leaf == leaf {
			return imp, true
		}
	}
	return Import{}, false
}

// Check collects imports and name references of tree and computes unused imports.
func Check(tree *ast.Tree, opts Options) Result {
	res := Result{
		Strings: opts.Strings,
		used:    make(map[scopedName]struct{}),
	}
	if res.Strings == nil {
		res.Strings = source.NewInterner()
	}
	if tree == nil || !tree.Root().IsValid() {
		return res
	}

	checker := importChecker{tree: tree, result: &res}
	checker.run()
	return res
}

type importChecker struct {
	tree   *ast.Tree
	result *Result
	// модули, в которых есть вызовы методов: трейт-импорты там считаются использованными
	methodScopes map[ast.NodeID]bool
}

func (c *importChecker) run() {
	c.methodScopes = make(map[ast.NodeID]bool)
	c.walk(c.tree.Root(), c.tree.Root())
	for _, imp := range c.result.Imports {
		if c.isUsed(imp) {
			continue
		}
		c.result.Unused = append(c.result.Unused, imp.Leaf)
	}
}

// walk обходит поддерево id; scope — ближайший модуль.
func (c *importChecker) walk(id, scope ast.NodeID) {
	tree := c.tree
	n := tree.Node(id)
	switch n.Kind {
	case ast.Attribute:
		// аргументы атрибутов (allow(x), derive(Drop)) не ссылаются на импорты
		return
	case ast.ItemUse:
		c.collectUse(id, scope)
		return
	case ast.ItemModule:
		if id != scope && n.Has(ast.FlagInline) {
			scope = id
		}
	case ast.ExprPath, ast.ExprMacro, ast.TypePath:
		c.markUsed(scope, firstSegment(n.Name))
	case ast.ExprMethodCall:
		c.methodScopes[scope] = true
	}
	for _, child := range tree.Children(id) {
		c.walk(child, scope)
	}
}

func (c *importChecker) collectUse(use, scope ast.NodeID) {
	tree := c.tree
	public := tree.Node(use).Has(ast.FlagPub)
	for leaf := range tree.Descendants(use) {
		n := tree.Node(leaf)
		if n.Kind != ast.UsePathLeaf {
			continue
		}
		binding := n.Name
		if n.Alias != "" {
			binding = n.Alias
		}
		c.result.Imports = append(c.result.Imports, Import{
			Leaf:    leaf,
			Scope:   scope,
			Binding: c.intern(binding),
			Path:    importPath(tree, leaf),
			Public:  public,
		})
	}
}

func (c *importChecker) markUsed(scope ast.NodeID, name string) {
	if name == "" {
		return
	}
	c.result.used[scopedName{scope, c.intern(name)}] = struct{}{}
}

// intern приводит идентификатор к NFC: `é` из одного и из двух кодпойнтов
// должны быть одним именем.
func (c *importChecker) intern(name string) source.StringID {
	return c.result.Strings.Intern(norm.NFC.String(name))
}

func (c *importChecker) isUsed(imp Import) bool {
	if imp.Public {
		return true
	}
	if _, ok := c.result.used[scopedName{imp.Scope, imp.Binding}]; ok {
		return true
	}
	// Методы трейтов разрешаются только по типам; без них считаем
	// `...Trait` импорт использованным, если в модуле есть вызовы методов.
	name := c.result.Strings.MustLookup(imp.Binding)
	return strings.HasSuffix(name, "Trait") && c.methodScopes[imp.Scope]
}

func firstSegment(path string) string {
	if i := strings.Index(path, "::"); i >= 0 {
		return path[:i]
	}
	return path
}

// importPath восстанавливает полный путь до leaf: сегменты UsePathSingle сверху вниз.
func importPath(tree *ast.Tree, leaf ast.NodeID) string {
	var segs []string
	for a := range tree.Ancestors(leaf) {
		n := tree.Node(a)
		if n.Kind == ast.ItemUse {
			break
		}
		if n.Kind == ast.UsePathSingle || n.Kind == ast.UsePathLeaf {
			segs = append(segs, n.Name)
		}
	}
	slices.Reverse(segs)
	return strings.Join(segs, "::")
}
