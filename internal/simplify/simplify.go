package simplify

import "github.com/xxxbrian/surge-reject/internal/rule"

// Simplify runs the whole generalization pass over a deduplicated rule set:
// dynamic-label promotion first, then suffix generalization over whatever was
// not promoted, then assembly. The result keeps surviving originals in input
// order, followed by the covering rules, followed by the promoted wildcards,
// deduplicated by exact rule identity.
func Simplify(rules []rule.Rule) []rule.Rule {
	var promoted []rule.Rule
	remaining := make([]rule.Rule, 0, len(rules))
	for _, r := range rules {
		if p, ok := PromoteDynamicLabels(r); ok {
			promoted = append(promoted, p)
			continue
		}
		remaining = append(remaining, r)
	}

	kept, generalized := generalize(remaining)

	out := make([]rule.Rule, 0, len(kept)+len(generalized)+len(promoted))
	out = append(out, kept...)
	out = append(out, generalized...)
	out = append(out, promoted...)
	return Dedupe(out)
}

// Dedupe drops exact duplicates (type, value and options) while preserving
// first-seen order.
func Dedupe(rules []rule.Rule) []rule.Rule {
	seen := make(map[string]bool, len(rules))
	out := make([]rule.Rule, 0, len(rules))
	for _, r := range rules {
		line := r.Line()
		if seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, r)
	}
	return out
}
