package lsp

import "encoding/json"

// clientSettings is the `cairolint` section of the client configuration:
//
//	{"cairolint": {"rules": {"panic": false}}}
type clientSettings struct {
	Cairolint struct {
		Rules map[string]bool `json:"rules"`
	} `json:"cairolint"`
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	if s.applySettings(params.Settings) {
		s.relintAll()
	}
	return nil
}

// applySettings replaces the rule overrides; unknown rule names are logged
// and ignored. It reports whether anything was applied.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	var settings clientSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logf("invalid settings: %v", err)
		return false
	}
	overrides := make(map[string]bool, len(settings.Cairolint.Rules))
	for name, on := range settings.Cairolint.Rules {
		if s.reg != nil && !s.reg.IsAllowedName(name) {
			s.logf("settings: unknown rule %q", name)
			continue
		}
		overrides[name] = on
	}
	s.mu.Lock()
	s.overrides = overrides
	s.mu.Unlock()
	return true
}

func (s *Server) relintAll() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	for _, uri := range uris {
		s.scheduleLint(uri)
	}
}
