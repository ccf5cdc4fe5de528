package text

import "regexp"

type replacement struct {
	pattern *regexp.Regexp
	with    string
}

// ContractionReplacer expands English contractions ("won't" -> "will not").
// Rules are applied in order; specific forms come before generic suffixes.
type ContractionReplacer struct {
	rules []replacement
}

// NewContractionReplacer returns a replacer with the default English rules.
func NewContractionReplacer() *ContractionReplacer {
	patterns := []struct{ pattern, with string }{
		{`won't`, "will not"},
		{`can't`, "cannot"},
		{`i'm`, "i am"},
		{`ain't`, "is not"},
		{`(\w+)'ll`, "${1} will"},
		{`(\w+)n't`, "${1} not"},
		{`(\w+)'ve`, "${1} have"},
		{`(\w+)'s`, "${1} is"},
		{`(\w+)'re`, "${1} are"},
		{`(\w+)'d`, "${1} would"},
	}
	r := &ContractionReplacer{rules: make([]replacement, 0, len(patterns))}
	for _, p := range patterns {
		r.rules = append(r.rules, replacement{
			pattern: regexp.MustCompile(`(?i)` + p.pattern),
			with:    p.with,
		})
	}
	return r
}

// Replace applies every rule to s.
func (r *ContractionReplacer) Replace(s string) string {
	for _, rule := range r.rules {
		s = rule.pattern.ReplaceAllString(s, rule.with)
	}
	return s
}
