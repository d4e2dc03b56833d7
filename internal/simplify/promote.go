// Package simplify implements the ruleset generalization pass: dynamic-label
// promotion and suffix generalization.
package simplify

import (
	"strings"

	"github.com/xxxbrian/surge-reject/internal/rule"
)

const (
	// Labels shorter than this never count as dynamic.
	dynamicLabelMinLen = 4
	// A rule needs this many labels before any label is a promotion candidate.
	promoteMinLabels = 3
)

// PromoteDynamicLabels rewrites a DOMAIN rule whose subdomain labels look
// machine-generated (contain a digit and are at least 4 characters long) into
// a DOMAIN-WILDCARD rule, replacing each such label with "*". The last two
// labels are the registrable domain and are never touched. The second return
// value reports whether the rule was promoted.
func PromoteDynamicLabels(r rule.Rule) (rule.Rule, bool) {
	if r.Type != rule.Domain {
		return rule.Rule{}, false
	}
	labels := r.Labels()
	if len(labels) < promoteMinLabels {
		return rule.Rule{}, false
	}

	promoted := false
	rewritten := make([]string, len(labels))
	copy(rewritten, labels)
	for i, label := range labels[:len(labels)-2] {
		if len(label) >= dynamicLabelMinLen && strings.ContainsAny(label, "0123456789") {
			rewritten[i] = "*"
			promoted = true
		}
	}
	if !promoted {
		return rule.Rule{}, false
	}

	return rule.Rule{
		Type:    rule.DomainWildcard,
		Value:   strings.Join(rewritten, "."),
		Options: r.Options,
	}, true
}
