// Package converter translates upstream rule-list dialects into the canonical
// rule model and renders the final ruleset artifact.
package converter

import (
	"sort"
	"strings"
	"time"

	"github.com/xxxbrian/surge-reject/internal/rule"
)

// Render produces the output artifact: a provenance header followed by the
// serialized rules in their deterministic order. The caller supplies the
// clock so generated timestamps are testable.
func Render(rules []rule.Rule, sources []Source, now time.Time) string {
	lines := make([]string, 0, len(rules))
	for _, r := range rules {
		lines = append(lines, r.Line())
	}
	SortLines(lines)

	var b strings.Builder
	b.WriteString("# DO NOT EDIT MANUALLY\n")
	b.WriteString("# Generated on " + now.UTC().Format("2006-01-02T15:04:05") + "Z\n")
	b.WriteString("# Sources:\n")
	for _, src := range sources {
		b.WriteString("# - " + src.Description + ": " + src.URL + "\n")
	}
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// SortLines orders serialized rule lines by type rank, then the type string
// itself, then the remainder of the line.
func SortLines(lines []string) {
	sort.SliceStable(lines, func(i, j int) bool {
		typeI, restI := splitLine(lines[i])
		typeJ, restJ := splitLine(lines[j])
		if orderI, orderJ := rule.Order(typeI), rule.Order(typeJ); orderI != orderJ {
			return orderI < orderJ
		}
		if typeI != typeJ {
			return typeI < typeJ
		}
		return restI < restJ
	})
}

func splitLine(line string) (ruleType, remainder string) {
	if i := strings.Index(line, ","); i >= 0 {
		return line[:i], line[i+1:]
	}
	return line, ""
}
