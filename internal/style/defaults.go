package style

import (
	"regexp"
	"strconv"
)

// Icon placeholders use Unicode Private Use Area characters so they cannot
// collide with document text. The external-link and task rules emit them;
// the trailing icon rules resolve them to asset references.
const (
	IconStart = "\uE002"
	IconEnd   = "\uE003"
)

// AssetScheme prefixes bundled asset references left for the inliner.
const AssetScheme = "asset:"

// Bundled icon names referenced by the default rules.
const (
	IconExternalLink      = "external-link"
	IconCheckboxChecked   = "checkbox-checked"
	IconCheckboxUnchecked = "checkbox-unchecked"
)

// IconPlaceholder returns the token standing for the named icon.
func IconPlaceholder(name string) string {
	return IconStart + name + IconEnd
}

func headingRule(level int) RuleSpec {
	n := strconv.Itoa(level)
	return RuleSpec{
		Name:    "heading-" + n,
		Match:   `<h` + n + `([^>]*)>`,
		Replace: `<h` + n + ` class="heading heading-` + n + `"${1}>`,
	}
}

// defaultSpecs is the canonical table. Order matters:
//   - strikethrough before underline, both use "~"
//   - block code before inline code, both rewrite <code>
//   - task items before the generic list item
//   - placeholder producers before the icon resolvers appended by DefaultRules
//
// The "~" and "==" rules are Text rules and must open after a non-word
// character, so paths like ~/x and URLs like /~user/ are left alone.
var defaultSpecs = []RuleSpec{
	headingRule(1),
	headingRule(2),
	headingRule(3),
	headingRule(4),
	headingRule(5),
	headingRule(6),
	{
		Name:    "tag-paragraph",
		Match:   `<p>((?:#[\w-]+[ \t]*)+)</p>`,
		Replace: `<p class="tags">${1}</p>`,
	},
	{
		Name:    "blockquote",
		Match:   `<blockquote>`,
		Replace: `<blockquote class="quote">`,
	},
	{
		Name:    "strikethrough",
		Match:   `(^|[^\w/~])~~([^~\s<>"](?:[^~\n<>"]*[^~\s<>"])?)~~`,
		Replace: `${1}<s>${2}</s>`,
		Text:    true,
	},
	{
		Name:    "underline",
		Match:   `(^|[^\w/~])~([^~\s<>"](?:[^~\n<>"]*[^~\s<>"])?)~`,
		Replace: `${1}<u>${2}</u>`,
		Text:    true,
	},
	{
		Name:    "line-break",
		Match:   `<br\s*/?>`,
		Replace: `<br class="line-break" />`,
	},
	{
		Name:    "mark",
		Match:   `(^|[^\w=])==([^=\s<>"](?:[^=\n<>"]*[^=\s<>"])?)==`,
		Replace: `${1}<mark>${2}</mark>`,
		Text:    true,
	},
	{
		Name:    "external-link",
		Match:   `<a href="(https?://[^"]+)"([^>]*)>(.*?)</a>`,
		Replace: `<a class="external-link" href="${1}"${2}>[${3}]` + IconPlaceholder(IconExternalLink) + `</a>`,
	},
	{
		Name:    "code-block-open",
		Match:   `<pre([^>]*)><code([^>]*)>`,
		Replace: `<div class="code-block"><pre${1}><code${2} data-block="true">`,
	},
	{
		Name:    "code-block-close",
		Match:   `</code></pre>`,
		Replace: `</code></pre></div>`,
	},
	{
		Name:    "inline-code",
		Match:   `<code>`,
		Replace: `<code class="inline-code">`,
	},
	{
		Name:    "task-checked",
		Match:   `<li>(\s*<p>)?<input checked="" disabled="" type="checkbox"\s*/?>[ ]?`,
		Replace: `<li class="task checked">${1}` + IconPlaceholder(IconCheckboxChecked),
	},
	{
		Name:    "task-unchecked",
		Match:   `<li>(\s*<p>)?<input disabled="" type="checkbox"\s*/?>[ ]?`,
		Replace: `<li class="task">${1}` + IconPlaceholder(IconCheckboxUnchecked),
	},
	{
		Name:    "list-item",
		Match:   `<li>`,
		Replace: `<li class="item">`,
	},
}

var defaultRules = mustCompile(defaultSpecs)

// unresolvedIcons drops placeholders no icon rule claimed.
var unresolvedIcons = Rule{
	Name:    "unresolved-icons",
	Pattern: regexp.MustCompile(`\x{E002}[^\x{E003}]*\x{E003}`),
}

// IconRule resolves the placeholder of one bundled icon to an <img> whose
// source is the asset reference "asset:NAME".
func IconRule(name string) Rule {
	return Rule{
		Name:    "icon-" + name,
		Pattern: regexp.MustCompile(regexp.QuoteMeta(IconPlaceholder(name))),
		Replace: `<img class="icon icon-` + name + `" alt="" src="` + AssetScheme + name + `" />`,
	}
}

// DefaultRules returns the canonical table followed by one resolver per icon
// and a final rule removing placeholders for icons that were not listed.
// The returned slice is a fresh copy.
func DefaultRules(icons ...string) []Rule {
	return Table(nil, false, icons...)
}

// DefaultIcons lists the icons the default rules emit placeholders for.
func DefaultIcons() []string {
	return []string{IconExternalLink, IconCheckboxChecked, IconCheckboxUnchecked}
}
