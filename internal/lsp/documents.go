package lsp

import (
	"encoding/json"
	"path/filepath"
	"time"

	"cairolint/internal/ast"
	"cairolint/internal/config"
	"cairolint/internal/diag"
	"cairolint/internal/driver"
	"cairolint/internal/fix"
	"cairolint/internal/source"
	"cairolint/internal/trace"
)

// document is an open editor buffer.
type document struct {
	path    string
	text    string
	version int
	result  *analysis
}

// analysis is the lint result for one exact version of a document.
type analysis struct {
	version int
	file    *source.File
	tree    *ast.Tree
	diags   []diag.Diagnostic // fixes attached
}

// current returns the analysis only if it matches the buffer.
func (d *document) current() *analysis {
	if d == nil || d.result == nil || d.result.version != d.version {
		return nil
	}
	return d.result
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	s.docs[uri] = &document{
		path:    uriToPath(uri),
		text:    params.TextDocument.Text,
		version: params.TextDocument.Version,
	}
	s.mu.Unlock()
	s.scheduleLint(uri)
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok {
		doc.text = applyChanges(doc.text, params.ContentChanges)
		doc.version = params.TextDocument.Version
	}
	s.mu.Unlock()
	if ok {
		s.scheduleLint(uri)
	}
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok && params.Text != nil && *params.Text != doc.text {
		doc.text = *params.Text
		// версия та же, но текст другой: старый анализ недействителен
		doc.result = nil
	}
	// конфиг мог поменяться вместе с файлом
	clear(s.configs)
	s.mu.Unlock()
	if ok {
		s.scheduleLint(uri)
	}
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.docs, uri)
	if t, ok := s.timers[uri]; ok {
		t.Stop()
		delete(s.timers, uri)
	}
	s.mu.Unlock()
	return s.publish(uri, nil, nil, nil)
}

// scheduleLint restarts the debounce timer of one document.
func (s *Server) scheduleLint(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[uri]; ok {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() { s.lintDocument(uri) })
}

// lintDocument analyses the current text of uri and publishes the result
// unless the buffer changed in the meantime.
func (s *Server) lintDocument(uri string) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return
	}
	text, ver, path := doc.text, doc.version, doc.path
	s.mu.Unlock()

	_, span := trace.Start(trace.WithFile(s.baseCtx, path), trace.ScopeFile, "lsp-lint")
	defer span.End("")

	settings, excluded := s.settingsFor(path)
	if excluded {
		_ = s.publish(uri, &ver, nil, nil)
		return
	}
	content, flags := source.Normalize([]byte(text))
	fileSet := source.NewFileSet()
	file := fileSet.Get(fileSet.Add(path, content, flags))
	tree, diags := driver.Analyze(file, s.reg, settings, s.maxDiagnostics)
	diags = fix.Suggest(tree, s.reg, diags)

	s.mu.Lock()
	doc, ok = s.docs[uri]
	if !ok || doc.version != ver || doc.text != text {
		s.mu.Unlock()
		return
	}
	doc.result = &analysis{version: ver, file: file, tree: tree, diags: diags}
	s.mu.Unlock()

	if err := s.publish(uri, &ver, file, diags); err != nil {
		s.logf("publish %s: %v", uri, err)
	}
}

func (s *Server) publish(uri string, ver *int, file *source.File, diags []diag.Diagnostic) error {
	list := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		list = append(list, toLSPDiagnostic(file, d))
	}
	return s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Version:     ver,
		Diagnostics: list,
	})
}

func toLSPDiagnostic(file *source.File, d diag.Diagnostic) lspDiagnostic {
	return lspDiagnostic{
		Range:    rangeOf(file, d.Primary),
		Severity: lspSeverity(d.Severity),
		Code:     d.Code.ID(),
		Source:   "cairolint",
		Message:  d.Message,
	}
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}

// settingsFor resolves the config of the file's directory (cached) layered
// under the client overrides, and whether the config excludes the file.
func (s *Server) settingsFor(path string) (ruleSettings, bool) {
	dir := filepath.Dir(path)
	s.mu.Lock()
	cfg, cached := s.configs[dir]
	s.mu.Unlock()
	if !cached {
		loaded, err := s.loadConfig(dir)
		if err == nil && loaded != nil && s.reg != nil {
			err = loaded.Validate(s.reg)
		}
		if err != nil {
			s.logf("config for %s: %v", dir, err)
			loaded = nil
		}
		cfg = loaded
		s.mu.Lock()
		s.configs[dir] = cfg
		s.mu.Unlock()
	}
	s.mu.Lock()
	overrides := make(map[string]bool, len(s.overrides))
	for k, v := range s.overrides {
		overrides[k] = v
	}
	s.mu.Unlock()

	excluded := false
	if cfg != nil {
		if rel, err := filepath.Rel(cfg.Dir(), path); err == nil {
			excluded = cfg.Excluded(filepath.ToSlash(rel))
		}
	}
	return ruleSettings{cfg: cfg, overrides: overrides}, excluded
}

// ruleSettings layers client overrides over the project config.
type ruleSettings struct {
	cfg       *config.Config
	overrides map[string]bool
}

func (r ruleSettings) Enabled(name string, def bool) bool {
	if v, ok := r.overrides[name]; ok {
		return v
	}
	return r.cfg.Enabled(name, def)
}
