// Package converter translates upstream rule-list dialects into the canonical
// rule model and renders the final ruleset artifact.
package converter

import "github.com/xxxbrian/surge-reject/internal/rule"

// Dialect identifies the text format of an upstream rule list.
type Dialect string

const (
	DialectQuanX Dialect = "quanx"
	DialectSurge Dialect = "surge"
)

// Source describes one upstream rule list.
type Source struct {
	Dialect     Dialect
	URL         string
	Description string
}

// quanxTypeMap renames Quantumult X rule-type tokens to canonical types.
// Tokens not listed here are unsupported and dropped with a warning.
var quanxTypeMap = map[string]string{
	"HOST":          rule.Domain,
	"HOST-SUFFIX":   rule.DomainSuffix,
	"HOST-KEYWORD":  rule.DomainKeyword,
	"HOST-WILDCARD": rule.DomainWildcard,
	"HOST-REGEX":    rule.DomainRegex,
	"IP-CIDR":       rule.IPCIDR,
	"IP6-CIDR":      rule.IPCIDR6,
}
