// Package token defines lexical token kinds and trivia for the linted Cairo subset.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Trailing trivia of a token runs up to and including the first newline;
//     everything after that belongs to the next token's Leading trivia.
//   - Attributes are lexed as '#' (Kind: Hash) + '[' ...; no per-attribute token kinds.
//   - Integer suffixes (`_u32`, `_felt252`) stay inside the IntLit text.
package token
