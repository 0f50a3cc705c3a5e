package footer

import "github.com/microcosm-cc/bluemonday"

// SanitizePolicy is the policy applied to fetched footers when sanitising
// is enabled: user-generated-content rules, which drop scripts, event
// handlers and javascript: URLs while keeping links and text formatting.
func SanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "id").Globally()
	return p
}
