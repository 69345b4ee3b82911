package inline

import (
	"regexp"
	"strings"
)

// TagScheme prefixes explicit asset references ("asset:external-link").
const TagScheme = "asset:"

// tagPattern matches a token only as a whole src attribute value, so prose
// and code that mention "asset:NAME" are left alone.
var tagPattern = regexp.MustCompile(`(\ssrc=")asset:([A-Za-z0-9][A-Za-z0-9._-]*)"`)

// Asset is a bundled resource whose content type is already known.
type Asset struct {
	MIME string
	Data []byte
}

// InlineTags replaces every src="asset:NAME" value whose NAME is in assets
// with the asset's data URI. Unknown names are left as they are.
func InlineTags(text string, assets map[string]Asset) string {
	if len(assets) == 0 || !strings.Contains(text, TagScheme) {
		return text
	}

	encoded := make(map[string]string, len(assets))
	return tagPattern.ReplaceAllStringFunc(text, func(match string) string {
		m := tagPattern.FindStringSubmatch(match)
		prefix, name := m[1], m[2]
		uri, ok := encoded[name]
		if !ok {
			a, found := assets[name]
			if !found {
				return match
			}
			uri = Encode(a.MIME, a.Data)
			encoded[name] = uri
		}
		return prefix + uri + `"`
	})
}
