package style

import (
	"fmt"
	"strings"

	"tableflip.dev/notes/pkg/fileutil"
)

// Rule binds an upper-cased keyword to its sidecar value and parsed token.
type Rule struct {
	Keyword string
	Value   string
	Token   Token
}

// Registry is the keyword→style mapping loaded from the sidecar file.
// Lookups ignore case; Save writes keywords in first-seen order.
type Registry struct {
	passthrough []string
	order       []string
	rules       map[string]Rule
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Load reads the sidecar at path. Lines starting with ';' are comments and
// are kept verbatim, as are non-blank lines without '='. A missing file
// yields an empty registry.
func Load(path string) (*Registry, error) {
	lines, _, err := fileutil.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("style: load %s: %w", path, err)
	}
	r := New()
	for _, line := range lines {
		if strings.HasPrefix(line, ";") {
			r.passthrough = append(r.passthrough, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) == "" {
			r.passthrough = append(r.passthrough, line)
			continue
		}
		r.put(key, strings.TrimSpace(value))
	}
	return r, nil
}

// Passthrough returns the comment lines kept for Save.
func (r *Registry) Passthrough() []string {
	return append([]string(nil), r.passthrough...)
}

// Keywords returns the upper-cased keywords in first-seen order.
func (r *Registry) Keywords() []string {
	return append([]string(nil), r.order...)
}

// Len is the number of rules.
func (r *Registry) Len() int {
	return len(r.order)
}

// Rule returns the rule for keyword, ignoring case.
func (r *Registry) Rule(keyword string) (Rule, bool) {
	rule, ok := r.rules[Key(keyword)]
	return rule, ok
}

// Lookup returns the token for keyword, ignoring case.
func (r *Registry) Lookup(keyword string) (Token, bool) {
	rule, ok := r.Rule(keyword)
	return rule.Token, ok
}

// ResolveOrAssign returns the token for keyword, first recording
// DefaultValue for keywords the registry has not seen. Keywords the sidecar
// cannot hold get DefaultToken without being recorded.
func (r *Registry) ResolveOrAssign(keyword string) Token {
	if tok, ok := r.Lookup(keyword); ok {
		return tok
	}
	if checkKeyword(keyword) != nil {
		return DefaultToken
	}
	return r.put(keyword, DefaultValue).Token
}

// Set validates value and binds it to keyword.
func (r *Registry) Set(keyword, value string) error {
	if err := checkKeyword(keyword); err != nil {
		return err
	}
	if _, err := ParseToken(value); err != nil {
		return err
	}
	r.put(keyword, strings.TrimSpace(value))
	return nil
}

// Save overwrites path: passthrough lines first, then one KEY=value line per
// rule. Changes made to the file since Load are lost.
func (r *Registry) Save(path string) error {
	lines := make([]string, 0, len(r.passthrough)+len(r.order))
	lines = append(lines, r.passthrough...)
	for _, k := range r.order {
		lines = append(lines, k+"="+r.rules[k].Value)
	}
	if err := fileutil.WriteLines(path, lines); err != nil {
		return fmt.Errorf("style: save: %w", err)
	}
	return nil
}

// checkKeyword rejects keywords that would not read back from the sidecar.
func checkKeyword(keyword string) error {
	k := Key(keyword)
	switch {
	case k == "":
		return fmt.Errorf("style: empty keyword")
	case strings.ContainsAny(k, "=\r\n"):
		return fmt.Errorf("style: keyword %q may not contain '=' or line breaks", keyword)
	case strings.HasPrefix(k, ";"):
		return fmt.Errorf("style: keyword %q may not start with ';'", keyword)
	}
	return nil
}

// Key normalizes a keyword.
func Key(keyword string) string {
	return strings.ToUpper(strings.TrimSpace(keyword))
}

func (r *Registry) put(keyword, value string) Rule {
	k := Key(keyword)
	// Unknown values are kept so Save round-trips them; they render plain.
	tok, _ := ParseToken(value)
	rule := Rule{Keyword: k, Value: value, Token: tok}
	if _, seen := r.rules[k]; !seen {
		r.order = append(r.order, k)
	}
	r.rules[k] = rule
	return rule
}
