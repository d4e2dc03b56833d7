// Package rule defines the canonical filtering-rule representation shared by
// the converter and the simplifier.
package rule

import "strings"

// Canonical rule types.
const (
	Domain         = "DOMAIN"
	DomainSuffix   = "DOMAIN-SUFFIX"
	DomainKeyword  = "DOMAIN-KEYWORD"
	DomainWildcard = "DOMAIN-WILDCARD"
	DomainRegex    = "DOMAIN-REGEX"
	IPCIDR         = "IP-CIDR"
	IPCIDR6        = "IP-CIDR6"
)

// typeOrder fixes the relative ordering of rule types in the output artifact.
var typeOrder = map[string]int{
	Domain:         0,
	DomainSuffix:   1,
	DomainKeyword:  2,
	DomainWildcard: 3,
	DomainRegex:    4,
	IPCIDR:         5,
	IPCIDR6:        6,
}

// Order returns the sort rank of a rule type. Unknown types sort last.
func Order(ruleType string) int {
	if order, ok := typeOrder[ruleType]; ok {
		return order
	}
	return 99
}

// domainLike holds the types whose values are host names.
var domainLike = map[string]bool{
	Domain:         true,
	DomainSuffix:   true,
	DomainKeyword:  true,
	DomainWildcard: true,
}

// DomainLike reports whether values of this type are host names and therefore
// case-insensitive.
func DomainLike(ruleType string) bool {
	return domainLike[ruleType]
}

// Rule is one filtering directive. Rules are value types; every
// transformation produces a new Rule instead of mutating in place.
type Rule struct {
	Type    string
	Value   string
	Options []string
}

// Line serializes the rule as TYPE,value[,option]*. The serialized form is
// also the rule's identity for deduplication and set membership.
func (r Rule) Line() string {
	parts := make([]string, 0, 2+len(r.Options))
	parts = append(parts, r.Type, r.Value)
	parts = append(parts, r.Options...)
	return strings.Join(parts, ",")
}

// Labels splits the rule value into its dot-separated domain labels.
func (r Rule) Labels() []string {
	return strings.Split(r.Value, ".")
}

// EqualOptions reports whether two option sequences match exactly, in order.
func EqualOptions(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
