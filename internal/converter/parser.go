// Package converter translates upstream rule-list dialects into the canonical
// rule model and renders the final ruleset artifact.
package converter

import (
	"log"
	"regexp"
	"strings"

	"github.com/xxxbrian/surge-reject/internal/rule"
)

// inlineCommentRE matches a trailing comment introduced after whitespace.
var inlineCommentRE = regexp.MustCompile(`\s+(#|//|;).*$`)

// Parse converts upstream content into canonical rules using the dialect of
// its source. Malformed lines are dropped; parsing never fails.
func Parse(dialect Dialect, content string) []rule.Rule {
	if dialect == DialectSurge {
		return parseSurge(content)
	}
	return parseQuanX(content)
}

// parseQuanX parses Quantumult X filter lines. Rule-type tokens are mapped
// through quanxTypeMap; the first trailing field after the value is the
// dialect's policy-group name and is discarded.
func parseQuanX(content string) []rule.Rule {
	var rules []rule.Rule
	for _, raw := range strings.Split(content, "\n") {
		fields := splitRuleLine(raw)
		if fields == nil {
			continue
		}
		kindRaw := strings.ToUpper(fields[0])
		kind, ok := quanxTypeMap[kindRaw]
		if !ok {
			log.Printf("[warn] Unsupported Quantumult X rule type: %s", kindRaw)
			continue
		}
		options := compactFields(fields[2:])
		if len(options) > 0 {
			options = options[1:]
		}
		rules = append(rules, newRule(kind, fields[1], options))
	}
	return rules
}

// parseSurge parses Surge ruleset lines. The first field is used verbatim
// (uppercased) as the rule type and every trailing field is kept as an option.
func parseSurge(content string) []rule.Rule {
	var rules []rule.Rule
	for _, raw := range strings.Split(content, "\n") {
		fields := splitRuleLine(raw)
		if fields == nil {
			continue
		}
		kind := strings.ToUpper(fields[0])
		options := compactFields(fields[2:])
		rules = append(rules, newRule(kind, fields[1], options))
	}
	return rules
}

// splitRuleLine applies the preprocessing shared by both dialects: comment and
// blank-line skipping, inline comment stripping and comma splitting. It
// returns nil when the line carries no rule.
func splitRuleLine(raw string) []string {
	line := strings.TrimSpace(raw)
	if line == "" || isComment(line) {
		return nil
	}
	line = strings.TrimSpace(inlineCommentRE.ReplaceAllString(line, ""))
	if line == "" {
		return nil
	}
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 2 || fields[1] == "" {
		return nil
	}
	return fields
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") || strings.HasPrefix(line, ";")
}

// compactFields drops empty fields, preserving order.
func compactFields(fields []string) []string {
	var out []string
	for _, field := range fields {
		if field != "" {
			out = append(out, field)
		}
	}
	return out
}

// newRule builds a canonical rule, lower-casing host-name values and
// anchoring regex values.
func newRule(kind, value string, options []string) rule.Rule {
	if rule.DomainLike(kind) {
		value = strings.ToLower(value)
	}
	if kind == rule.DomainRegex {
		value = normalizeRegex(value)
	}
	return rule.Rule{Type: kind, Value: value, Options: options}
}

// normalizeRegex anchors a regex value with ^ and $ unless it already carries
// both anchors.
func normalizeRegex(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "^") && strings.HasSuffix(value, "$") {
		return value
	}
	if !strings.HasPrefix(value, "^") {
		value = "^" + value
	}
	if !strings.HasSuffix(value, "$") {
		value = value + "$"
	}
	return value
}
