// Package style annotates rendered HTML with semantic classes.
//
// The engine is a plain ordered list of regular-expression rules. Each rule
// is applied once, globally, to the output of the rules before it. There is
// no fixed-point iteration, so a rule never sees text produced by a rule that
// comes later in the table, and reordering the table changes the output.
//
// A rule marked Text only sees character data: tags, attribute values and
// the contents of <code> and <pre> are passed through untouched.
package style

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidRule indicates a rule whose pattern does not compile.
var ErrInvalidRule = errors.New("invalid style rule")

// Rule rewrites every match of Pattern with Replace. Replace may refer to
// capture groups using regexp.Expand syntax ($1, ${name}).
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
	Text    bool // match character data outside code only
}

// RuleSpec is the declarative form of a Rule, as found in rule files.
type RuleSpec struct {
	Name    string `yaml:"name"`
	Match   string `yaml:"match"`
	Replace string `yaml:"replace"`
	Text    bool   `yaml:"text,omitempty"`
}

// Apply runs rules over text in table order.
func Apply(text string, rules []Rule) string {
	for _, r := range rules {
		if r.Text {
			text = applyToText(text, r)
			continue
		}
		text = r.Pattern.ReplaceAllString(text, r.Replace)
	}
	return text
}

var (
	markupTag = regexp.MustCompile(`<[^>]*>`)
	codeTag   = regexp.MustCompile(`(?i)^<(/?)(?:code|pre)[\s>/]`)
)

// applyToText runs r over each run of character data between tags, skipping
// runs nested in <code> or <pre>. Each run is still one global pass.
func applyToText(text string, r Rule) string {
	var b strings.Builder
	b.Grow(len(text))

	depth, last := 0, 0
	for _, loc := range markupTag.FindAllStringIndex(text, -1) {
		b.WriteString(replaceRun(text[last:loc[0]], r, depth))
		tag := text[loc[0]:loc[1]]
		if m := codeTag.FindStringSubmatch(tag); m != nil {
			if m[1] == "" {
				depth++
			} else if depth > 0 {
				depth--
			}
		}
		b.WriteString(tag)
		last = loc[1]
	}
	b.WriteString(replaceRun(text[last:], r, depth))
	return b.String()
}

func replaceRun(run string, r Rule, codeDepth int) string {
	if run == "" || codeDepth > 0 {
		return run
	}
	return r.Pattern.ReplaceAllString(run, r.Replace)
}

// Compile turns specs into rules, preserving order.
func Compile(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for i, s := range specs {
		if s.Match == "" {
			return nil, fmt.Errorf("%w: rule %d (%q) has an empty pattern", ErrInvalidRule, i, s.Name)
		}
		re, err := regexp.Compile(s.Match)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%q): %v", ErrInvalidRule, i, s.Name, err)
		}
		rules = append(rules, Rule{Name: s.Name, Pattern: re, Replace: s.Replace, Text: s.Text})
	}
	return rules, nil
}

func mustCompile(specs []RuleSpec) []Rule {
	rules, err := Compile(specs)
	if err != nil {
		panic(err)
	}
	return rules
}
