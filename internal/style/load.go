package style

import (
	"errors"
	"fmt"
	"os"

	"github.com/prettypdf/go-prettypdf/internal/yamlutil"
)

// ErrRuleFile indicates a rule file that cannot be read or decoded.
var ErrRuleFile = errors.New("cannot load rule file")

// ruleFile is the on-disk layout:
//
//	rules:
//	  - name: callout
//	    match: '<p>NOTE: '
//	    replace: '<p class="note">'
//	  - name: trademark
//	    match: '\(tm\)'
//	    replace: '&trade;'
//	    text: true
type ruleFile struct {
	Rules []RuleSpec `yaml:"rules"`
}

// LoadRules reads and compiles a YAML rule file. Rules keep file order.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRuleFile, err)
	}

	var f ruleFile
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRuleFile, path, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("%w: %s: no rules defined", ErrRuleFile, path)
	}

	rules, err := Compile(f.Rules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// Table assembles the rule table used for a run. Extra rules are inserted
// before the icon resolvers so they may emit icon placeholders too. With
// replace set, extra rules are used alone, followed by the icon resolvers.
func Table(extra []Rule, replace bool, icons ...string) []Rule {
	var base []Rule
	if !replace {
		base = defaultRules
	}

	rules := make([]Rule, 0, len(base)+len(extra)+len(icons)+1)
	rules = append(rules, base...)
	rules = append(rules, extra...)
	for _, name := range icons {
		rules = append(rules, IconRule(name))
	}
	return append(rules, unresolvedIcons)
}
