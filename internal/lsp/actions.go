package lsp

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"cairolint/internal/diag"
	"cairolint/internal/fix"
	"cairolint/internal/source"
)

// Code action kinds offered by the server.
const (
	kindQuickFix = "quickfix"
	kindFixAll   = "source.fixAll.cairolint"
)

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	a := s.docs[uri].current()
	s.mu.Unlock()
	actions := []codeAction{}
	if a != nil {
		actions = s.codeActions(uri, a, params)
	}
	return s.sendResponse(msg.ID, actions)
}

func (s *Server) codeActions(uri string, a *analysis, params codeActionParams) []codeAction {
	wantQuick := wantsKind(params.Context.Only, kindQuickFix)
	wantAll := wantsKind(params.Context.Only, kindFixAll)
	var actions []codeAction
	fixable := 0
	for _, d := range a.diags {
		if len(d.Fixes) == 0 {
			continue
		}
		fixable++
		if !wantQuick || !rangesOverlap(rangeOf(a.file, d.Primary), params.Range) {
			continue
		}
		ld := toLSPDiagnostic(a.file, d)
		for _, fx := range d.Fixes {
			actions = append(actions, codeAction{
				Title:       fx.Title,
				Kind:        kindQuickFix,
				Diagnostics: []lspDiagnostic{ld},
				IsPreferred: true,
				Edit:        &workspaceEdit{Changes: map[string][]textEdit{uri: fixEdits(a.file, fx.Edits)}},
			})
		}
	}
	// fix-all предлагаем, только если правки совместимы; без явного only
	// одиночный фикс уже покрыт quickfix
	if wantAll && (fixable > 1 || (fixable == 1 && len(params.Context.Only) > 0)) {
		if edits, ok := fix.Resolve(fix.Plan(a.tree, s.reg, a.diags)); ok && len(edits) > 0 {
			actions = append(actions, codeAction{
				Title: fmt.Sprintf("Fix all cairolint issues (%d)", len(edits)),
				Kind:  kindFixAll,
				Edit:  &workspaceEdit{Changes: map[string][]textEdit{uri: planEdits(a.file, edits)}},
			})
		}
	}
	return actions
}

// wantsKind implements the prefix matching of CodeActionContext.only.
func wantsKind(only []string, kind string) bool {
	if len(only) == 0 {
		return true
	}
	return slices.ContainsFunc(only, func(k string) bool {
		return kind == k || strings.HasPrefix(kind, k+".")
	})
}

func fixEdits(file *source.File, edits []diag.FixEdit) []textEdit {
	out := make([]textEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, textEdit{Range: rangeOf(file, e.Span), NewText: e.NewText})
	}
	return out
}

func planEdits(file *source.File, edits []fix.Edit) []textEdit {
	out := make([]textEdit, 0, len(edits))
	for _, e := range edits {
		sp := source.Span{File: file.ID, Start: e.Start, End: e.End}
		out = append(out, textEdit{Range: rangeOf(file, sp), NewText: e.Replacement})
	}
	return out
}

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	a := s.docs[uri].current()
	s.mu.Unlock()
	if a == nil {
		return s.sendResponse(msg.ID, nil)
	}
	h := s.hoverAt(a, offsetOf(a.file, params.Position))
	if h == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, h)
}

// hoverAt describes the rules of every diagnostic covering offset.
func (s *Server) hoverAt(a *analysis, offset uint32) *hover {
	var b strings.Builder
	var covered *source.Span
	for _, d := range a.diags {
		sp := d.Primary
		if offset < sp.Start || offset > sp.End {
			continue
		}
		if covered == nil {
			covered = &sp
		}
		if b.Len() > 0 {
			b.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&b, "**%s** `%s`\n\n%s", d.Code.Title(), d.Code.ID(), d.Message)
		if s.reg == nil {
			continue
		}
		if rule, ok := s.reg.Resolve(d.Code); ok && rule.Doc != "" {
			b.WriteString("\n\n" + rule.Doc)
		}
	}
	if covered == nil {
		return nil
	}
	r := rangeOf(a.file, *covered)
	return &hover{Contents: markupContent{Kind: "markdown", Value: b.String()}, Range: &r}
}
