// Package sema derives the semantic facts the lint rules need from a parsed
// tree: which `use` leaves bind which names, and which of those bindings are
// never referenced in their module.
package sema
