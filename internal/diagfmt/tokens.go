package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cairolint/internal/source"
	"cairolint/internal/token"
)

// TokenClass groups token kinds the way rules look at them.
type TokenClass string

const (
	ClassKeyword TokenClass = "keyword"
	ClassLiteral TokenClass = "literal"
	ClassIdent   TokenClass = "ident"
	ClassPunct   TokenClass = "punct"
	ClassEOF     TokenClass = "eof"
	ClassInvalid TokenClass = "invalid"
)

// classOf: true/false считаем литералами, хотя это ключевые слова.
func classOf(tok token.Token) TokenClass {
	switch {
	case tok.Kind == token.EOF:
		return ClassEOF
	case tok.Kind == token.Invalid:
		return ClassInvalid
	case tok.IsLiteral():
		return ClassLiteral
	case tok.IsKeyword():
		return ClassKeyword
	case tok.IsIdent():
		return ClassIdent
	}
	return ClassPunct
}

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"` // только комментарии
}

type TokenOutput struct {
	Kind     string         `json:"kind"`
	Class    TokenClass     `json:"class"`
	Text     string         `json:"text,omitempty"`
	Start    source.LineCol `json:"start"`
	End      source.LineCol `json:"end"`
	Leading  []TriviaOutput `json:"leading,omitempty"`
	Trailing []TriviaOutput `json:"trailing,omitempty"`
}

func triviaOutput(list []token.Trivia) []TriviaOutput {
	if len(list) == 0 {
		return nil
	}
	out := make([]TriviaOutput, 0, len(list))
	for _, tr := range list {
		o := TriviaOutput{Kind: tr.Kind.String()}
		if tr.IsComment() {
			o.Text = strings.TrimRight(tr.Text, "\r\n")
		}
		// подряд идущие пробелы и переводы строк схлопываем
		if n := len(out); n > 0 && o.Text == "" && out[n-1] == o {
			continue
		}
		out = append(out, o)
	}
	return out
}

func tokenOutputs(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		out = append(out, TokenOutput{
			Kind:     tok.Kind.String(),
			Class:    classOf(tok),
			Text:     tok.Text,
			Start:    start,
			End:      end,
			Leading:  triviaOutput(tok.Leading),
			Trailing: triviaOutput(tok.Trailing),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

func formatTrivia(list []TriviaOutput) string {
	parts := make([]string, 0, len(list))
	for _, tr := range list {
		if tr.Text != "" {
			parts = append(parts, tr.Text)
			continue
		}
		parts = append(parts, tr.Kind)
	}
	return strings.Join(parts, ", ")
}

// FormatTokensPretty prints one token per line: index, class, kind, text,
// position and the comments attached to it.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, t := range tokenOutputs(tokens, fs) {
		line := fmt.Sprintf("%3d  %-7s  %-14s", i+1, t.Class, t.Kind)
		if t.Text != "" {
			line += fmt.Sprintf(" %q", t.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", t.Start.Line, t.Start.Col, t.End.Line, t.End.Col)
		if len(t.Leading) > 0 {
			line += " leading[" + formatTrivia(t.Leading) + "]"
		}
		if len(t.Trailing) > 0 {
			line += " trailing[" + formatTrivia(t.Trailing) + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the same stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenOutputs(tokens, fs))
}
