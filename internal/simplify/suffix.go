package simplify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/xxxbrian/surge-reject/internal/rule"
)

// maxSuffixLabels caps how many trailing labels a candidate suffix may have.
const maxSuffixLabels = 5

// forbiddenSuffixes are public suffixes too generic to generalize under.
var forbiddenSuffixes = map[string]bool{
	"com": true,
	"net": true,
	"org": true,
	"cn":  true,
}

// candidateKey groups DOMAIN rules that share the same trailing labels and
// the same number of leading labels.
type candidateKey struct {
	suffix      string // trailing labels joined with "."
	labelCount  int    // number of labels in suffix
	prefixCount int    // number of leading labels before suffix
}

// generalize collapses groups of DOMAIN rules sharing a candidate key into a
// single covering wildcard or regex rule. Selection is greedy over candidates
// ordered most-specific-first; once a candidate consumes its supporters they
// are unavailable to broader candidates. This is a heuristic pass with no
// optimality guarantee. It returns the surviving originals in input order and
// the accepted covering rules sorted by type rank then value.
func generalize(remaining []rule.Rule) (kept, generalized []rule.Rule) {
	support := indexCandidates(remaining)

	keys := make([]candidateKey, 0, len(support))
	for key := range support {
		keys = append(keys, key)
	}
	// Longest suffix first, fewest prefix labels next, largest support third.
	// The final suffix-text comparison keeps runs deterministic when all
	// three ranks tie.
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.labelCount != b.labelCount {
			return a.labelCount > b.labelCount
		}
		if a.prefixCount != b.prefixCount {
			return a.prefixCount < b.prefixCount
		}
		if len(support[a]) != len(support[b]) {
			return len(support[a]) > len(support[b])
		}
		return a.suffix < b.suffix
	})

	consumed := make(map[int]bool)
	existing := make(map[string]bool, len(remaining))
	for _, r := range remaining {
		existing[r.Line()] = true
	}

	for _, key := range keys {
		active := activeSupport(support[key], consumed)
		if len(active) < 2 {
			continue
		}
		if !uniformOptions(remaining, active) {
			continue
		}
		if key.labelCount < 2 || forbiddenSuffixes[key.suffix] {
			continue
		}

		covering := coveringRule(key, remaining[active[0]].Options)
		if existing[covering.Line()] {
			continue
		}
		existing[covering.Line()] = true
		generalized = append(generalized, covering)
		for _, idx := range active {
			consumed[idx] = true
		}
	}

	sort.Slice(generalized, func(i, j int) bool {
		a, b := generalized[i], generalized[j]
		if orderA, orderB := rule.Order(a.Type), rule.Order(b.Type); orderA != orderB {
			return orderA < orderB
		}
		return a.Value < b.Value
	})

	for idx, r := range remaining {
		if !consumed[idx] {
			kept = append(kept, r)
		}
	}
	return kept, generalized
}

// indexCandidates records every DOMAIN rule under each candidate key it could
// support. A rule with many labels lands under several keys at once so the
// selection above can pick the most specific one with enough support.
func indexCandidates(remaining []rule.Rule) map[candidateKey][]int {
	support := make(map[candidateKey][]int)
	for idx, r := range remaining {
		if r.Type != rule.Domain {
			continue
		}
		labels := r.Labels()
		if len(labels) < 3 {
			continue
		}
		maxLen := len(labels) - 1
		if maxLen > maxSuffixLabels {
			maxLen = maxSuffixLabels
		}
		for suffixLen := 2; suffixLen <= maxLen; suffixLen++ {
			prefixCount := len(labels) - suffixLen
			if prefixCount < 1 {
				continue
			}
			key := candidateKey{
				suffix:      strings.Join(labels[len(labels)-suffixLen:], "."),
				labelCount:  suffixLen,
				prefixCount: prefixCount,
			}
			support[key] = append(support[key], idx)
		}
	}
	return support
}

func activeSupport(indexes []int, consumed map[int]bool) []int {
	var active []int
	for _, idx := range indexes {
		if !consumed[idx] {
			active = append(active, idx)
		}
	}
	return active
}

// uniformOptions reports whether every supporter carries the same option
// sequence. Collapsing rules with diverging options would silently change
// behavior for some of them.
func uniformOptions(rules []rule.Rule, indexes []int) bool {
	first := rules[indexes[0]].Options
	for _, idx := range indexes[1:] {
		if !rule.EqualOptions(first, rules[idx].Options) {
			return false
		}
	}
	return true
}

// coveringRule builds the replacement rule for a candidate: a wildcard when a
// single leading label is covered, an anchored regex otherwise.
func coveringRule(key candidateKey, options []string) rule.Rule {
	if key.prefixCount == 1 {
		return rule.Rule{
			Type:    rule.DomainWildcard,
			Value:   "*." + key.suffix,
			Options: options,
		}
	}
	groups := make([]string, key.prefixCount)
	for i := range groups {
		groups[i] = `[^.]+`
	}
	pattern := "^" + strings.Join(groups, `\.`) + `\.` + regexp.QuoteMeta(key.suffix) + "$"
	return rule.Rule{
		Type:    rule.DomainRegex,
		Value:   pattern,
		Options: options,
	}
}
