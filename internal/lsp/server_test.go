package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cairolint/internal/config"
	"cairolint/internal/rules"
)

const parensSrc = "fn main() {\n    let x = 1;\n    let _y = ((x));\n}\n"

func newTestServer(t *testing.T, out io.Writer) *Server {
	t.Helper()
	return NewServer(bytes.NewReader(nil), out, ServerOptions{
		Debounce:   time.Hour,
		Registry:   rules.Registry(),
		LoadConfig: func(string) (*config.Config, error) { return nil, nil },
		Log:        io.Discard,
	})
}

func call(t *testing.T, s *Server, method string, params any) {
	t.Helper()
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal %s: %v", method, err)
	}
	msg := &rpcMessage{JSONRPC: "2.0", ID: json.RawMessage("1"), Method: method, Params: payload}
	if err := s.handleMessage(msg); err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

// drain читает все сообщения, накопленные в буфере, и очищает его
func drain(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(out.Bytes()))
	out.Reset()
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		if err != nil {
			t.Fatalf("read message: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		msgs = append(msgs, msg)
	}
}

func openDoc(t *testing.T, s *Server, text string) string {
	t.Helper()
	uri := pathToURI(filepath.Join(t.TempDir(), "main.cairo"))
	call(t, s, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: text},
	})
	s.lintDocument(uri)
	return uri
}

func lastPublish(t *testing.T, msgs []rpcMessage) publishDiagnosticsParams {
	t.Helper()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Method != "textDocument/publishDiagnostics" {
			continue
		}
		var params publishDiagnosticsParams
		if err := json.Unmarshal(msgs[i].Params, &params); err != nil {
			t.Fatalf("decode params: %v", err)
		}
		return params
	}
	t.Fatalf("no publishDiagnostics in %d messages", len(msgs))
	return publishDiagnosticsParams{}
}

func TestPublishDiagnostics(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)
	uri := openDoc(t, s, parensSrc)

	params := lastPublish(t, drain(t, &out))
	if params.URI != uri {
		t.Fatalf("expected uri %q, got %q", uri, params.URI)
	}
	if params.Version == nil || *params.Version != 1 {
		t.Fatalf("expected version 1, got %v", params.Version)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", params.Diagnostics)
	}
	got := params.Diagnostics[0]
	if got.Code != "LNT4030" {
		t.Fatalf("unexpected code %q", got.Code)
	}
	want := lspRange{Start: position{Line: 2, Character: 13}, End: position{Line: 2, Character: 18}}
	if got.Range != want {
		t.Fatalf("range = %+v, want %+v", got.Range, want)
	}
	if got.Severity != 2 || got.Source != "cairolint" {
		t.Fatalf("unexpected diagnostic %+v", got)
	}
}

func TestCodeActionQuickFix(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)
	uri := openDoc(t, s, parensSrc)
	drain(t, &out)

	call(t, s, "textDocument/codeAction", codeActionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Range:        lspRange{Start: position{Line: 2, Character: 15}, End: position{Line: 2, Character: 15}},
	})
	msgs := drain(t, &out)
	if len(msgs) != 1 {
		t.Fatalf("expected one response, got %d", len(msgs))
	}
	var actions []codeAction
	if err := json.Unmarshal(msgs[0].Result, &actions); err != nil {
		t.Fatalf("decode actions: %v", err)
	}
	if len(actions) != 1 || actions[0].Kind != kindQuickFix {
		t.Fatalf("expected one quickfix, got %+v", actions)
	}
	edits := actions[0].Edit.Changes[uri]
	if len(edits) != 1 || edits[0].NewText != "x" {
		t.Fatalf("unexpected edits %+v", edits)
	}

	// вне диапазона диагностики ничего не предлагаем
	call(t, s, "textDocument/codeAction", codeActionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Range:        lspRange{Start: position{Line: 0, Character: 0}, End: position{Line: 0, Character: 2}},
	})
	msgs = drain(t, &out)
	if err := json.Unmarshal(msgs[0].Result, &actions); err != nil {
		t.Fatalf("decode actions: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("expected no actions, got %+v", actions)
	}
}

func TestCodeActionStaleAfterChange(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)
	uri := openDoc(t, s, parensSrc)
	call(t, s, "textDocument/didChange", didChangeTextDocumentParams{
		TextDocument: versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{
			Range: &lspRange{Start: position{Line: 0, Character: 0}, End: position{Line: 0, Character: 0}},
			Text:  "// hi\n",
		}},
	})
	drain(t, &out)
	call(t, s, "textDocument/codeAction", codeActionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Range:        lspRange{Start: position{Line: 2, Character: 15}, End: position{Line: 2, Character: 15}},
	})
	var actions []codeAction
	if err := json.Unmarshal(drain(t, &out)[0].Result, &actions); err != nil {
		t.Fatalf("decode actions: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("stale analysis must not produce actions: %+v", actions)
	}

	// после перелинтовки диагностика сдвинулась на строку
	s.lintDocument(uri)
	params := lastPublish(t, drain(t, &out))
	if len(params.Diagnostics) != 1 || params.Diagnostics[0].Range.Start.Line != 3 {
		t.Fatalf("unexpected diagnostics after change: %+v", params.Diagnostics)
	}
}

func TestCodeActionFixAll(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)
	src := "fn main() {\n    let x = 1;\n    let _a = ((x));\n    let _b = ((x));\n}\n"
	uri := openDoc(t, s, src)
	drain(t, &out)

	call(t, s, "textDocument/codeAction", codeActionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Context:      codeActionContext{Only: []string{"source.fixAll"}},
	})
	var actions []codeAction
	if err := json.Unmarshal(drain(t, &out)[0].Result, &actions); err != nil {
		t.Fatalf("decode actions: %v", err)
	}
	if len(actions) != 1 || actions[0].Kind != kindFixAll {
		t.Fatalf("expected one fix-all action, got %+v", actions)
	}
	if n := len(actions[0].Edit.Changes[uri]); n != 2 {
		t.Fatalf("expected 2 edits, got %d", n)
	}
}

func TestHoverShowsRule(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)
	uri := openDoc(t, s, parensSrc)
	drain(t, &out)

	call(t, s, "textDocument/hover", textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     position{Line: 2, Character: 14},
	})
	var h hover
	if err := json.Unmarshal(drain(t, &out)[0].Result, &h); err != nil {
		t.Fatalf("decode hover: %v", err)
	}
	if !strings.Contains(h.Contents.Value, "double_parens") {
		t.Fatalf("hover does not name the rule: %q", h.Contents.Value)
	}

	call(t, s, "textDocument/hover", textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     position{Line: 0, Character: 0},
	})
	if res := string(drain(t, &out)[0].Result); res != "null" {
		t.Fatalf("expected null hover, got %s", res)
	}
}

func TestSettingsDisableRule(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)
	call(t, s, "workspace/didChangeConfiguration", didChangeConfigurationParams{
		Settings: json.RawMessage(`{"cairolint":{"rules":{"double_parens":false,"bogus":true}}}`),
	})
	openDoc(t, s, parensSrc)
	params := lastPublish(t, drain(t, &out))
	if len(params.Diagnostics) != 0 {
		t.Fatalf("disabled rule still reported: %+v", params.Diagnostics)
	}
	if _, ok := s.overrides["bogus"]; ok {
		t.Fatalf("unknown rule accepted into overrides")
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)
	uri := openDoc(t, s, parensSrc)
	drain(t, &out)
	call(t, s, "textDocument/didClose", didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: uri}})
	params := lastPublish(t, drain(t, &out))
	if params.URI != uri || len(params.Diagnostics) != 0 {
		t.Fatalf("expected empty publish for %s, got %+v", uri, params)
	}
	if _, ok := s.docs[uri]; ok {
		t.Fatalf("document still tracked after close")
	}
}

func TestRunLifecycle(t *testing.T) {
	var in bytes.Buffer
	for _, m := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"rootUri":"file:///tmp"}}`,
		`{"jsonrpc":"2.0","method":"initialized","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"textDocument/definition","params":{}}`,
		`{"jsonrpc":"2.0","id":3,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	} {
		if err := writeMessage(&in, []byte(m)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	var out bytes.Buffer
	s := NewServer(&in, &out, ServerOptions{Registry: rules.Registry(), Log: io.Discard})
	if err := s.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("expected ErrExit, got %v", err)
	}
	msgs := drain(t, &out)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(msgs))
	}
	var init initializeResult
	if err := json.Unmarshal(msgs[0].Result, &init); err != nil {
		t.Fatalf("decode initialize: %v", err)
	}
	if init.Capabilities.CodeActionProvider == nil || !init.Capabilities.HoverProvider {
		t.Fatalf("missing capabilities: %+v", init.Capabilities)
	}
	if msgs[1].Error == nil || msgs[1].Error.Code != codeMethodNotFound {
		t.Fatalf("expected method not found, got %+v", msgs[1])
	}
}

func TestExitWithoutShutdown(t *testing.T) {
	var in bytes.Buffer
	if err := writeMessage(&in, []byte(`{"jsonrpc":"2.0","method":"exit"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := NewServer(&in, io.Discard, ServerOptions{Log: io.Discard})
	if err := s.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("expected ErrExitWithoutShutdown, got %v", err)
	}
}

func TestWantsKind(t *testing.T) {
	cases := []struct {
		only []string
		kind string
		want bool
	}{
		{nil, kindQuickFix, true},
		{[]string{"quickfix"}, kindQuickFix, true},
		{[]string{"quickfix"}, kindFixAll, false},
		{[]string{"source"}, kindFixAll, true},
		{[]string{"source.fixAll"}, kindFixAll, true},
		{[]string{"source.fix"}, kindFixAll, false},
	}
	for _, tc := range cases {
		if got := wantsKind(tc.only, tc.kind); got != tc.want {
			t.Fatalf("wantsKind(%v, %q) = %v, want %v", tc.only, tc.kind, got, tc.want)
		}
	}
}
