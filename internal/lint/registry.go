package lint

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"

	"cairolint/internal/diag"
)

var errEmptyGroup = errors.New("lint group has no rules")

// Registry is the read-only rule table. Safe for concurrent use.
type Registry struct {
	rules     []Rule
	byCode    map[diag.Code]int // code -> index into rules
	byName    map[string]int    // allowed name -> index into rules
	byMessage map[string]int    // message template -> index into rules
	checkers  []Checker
}

// NewRegistry indexes groups. Duplicate codes, names or messages and
// groups without rules or checker are reported as errors.
func NewRegistry(groups ...Group) (*Registry, error) {
	r := &Registry{
		byCode:    make(map[diag.Code]int),
		byName:    make(map[string]int),
		byMessage: make(map[string]int),
	}
	seen := make(map[uintptr]bool)
	for gi, g := range groups {
		if len(g.Rules) == 0 {
			return nil, fmt.Errorf("group #%d: %w", gi, errEmptyGroup)
		}
		if g.Check == nil {
			return nil, fmt.Errorf("group #%d (%s): nil checker", gi, g.Rules[0].Name)
		}
		for _, rule := range g.Rules {
			if err := r.add(rule); err != nil {
				return nil, err
			}
		}
		// одна и та же функция может обслуживать несколько групп
		ptr := reflect.ValueOf(g.Check).Pointer()
		if !seen[ptr] {
			seen[ptr] = true
			r.checkers = append(r.checkers, g.Check)
		}
	}
	return r, nil
}

func (r *Registry) add(rule Rule) error {
	switch {
	case rule.Name == "":
		return fmt.Errorf("rule %s: empty name", rule.Code.ID())
	case rule.Message == "":
		return fmt.Errorf("rule %s: empty message", rule.Name)
	}
	if prev, ok := r.byCode[rule.Code]; ok {
		return fmt.Errorf("rule %s: code %s already used by %s", rule.Name, rule.Code.ID(), r.rules[prev].Name)
	}
	if _, ok := r.byName[rule.Name]; ok {
		return fmt.Errorf("rule %s: duplicate allowed name", rule.Name)
	}
	if prev, ok := r.byMessage[rule.Message]; ok {
		return fmt.Errorf("rule %s: message already used by %s", rule.Name, r.rules[prev].Name)
	}
	idx := len(r.rules)
	r.rules = append(r.rules, rule)
	r.byCode[rule.Code] = idx
	r.byName[rule.Name] = idx
	r.byMessage[rule.Message] = idx
	return nil
}

// Resolve returns the rule owning code.
func (r *Registry) Resolve(code diag.Code) (Rule, bool) {
	idx, ok := r.byCode[code]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// ResolveMessage maps a rendered diagnostic message back to its rule code,
// or diag.UnknownCode when no template produces it.
func (r *Registry) ResolveMessage(msg string) diag.Code {
	if idx, ok := r.byMessage[msg]; ok {
		return r.rules[idx].Code
	}
	for _, rule := range r.rules {
		if rule.matches(msg) {
			return rule.Code
		}
	}
	return diag.UnknownCode
}

// Lookup finds a rule by its allowed name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// Rules returns all rules ordered by code.
func (r *Registry) Rules() []Rule {
	out := slices.Clone(r.rules)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// AllowedNames returns the sorted set of names accepted by `#[allow(...)]`.
func (r *Registry) AllowedNames() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAllowedName reports whether name is a known rule name.
func (r *Registry) IsAllowedName(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Checkers returns the number of distinct checkers.
func (r *Registry) Checkers() int { return len(r.checkers) }

// Dispatch runs every distinct checker over every top-level item of ctx.Tree.
func (r *Registry) Dispatch(ctx *Context) {
	if ctx == nil || ctx.Tree == nil {
		return
	}
	ctx.reg = r
	for _, item := range ctx.Tree.Items() {
		for _, check := range r.checkers {
			check(ctx, item)
		}
	}
}
