// Package wildcard converts Surge wildcard patterns to regular expressions
// and provides the match predicates used to check covering rules against the
// domains they replace.
package wildcard

import (
	"regexp"
	"strings"
)

// ToRegex converts a wildcard pattern to an anchored regular expression.
// '*' matches any run of characters, '?' matches a single character, every
// other character matches literally.
func ToRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// Match reports whether a domain matches a wildcard pattern.
func Match(pattern, domain string) bool {
	re, err := regexp.Compile(ToRegex(pattern))
	if err != nil {
		return false
	}
	return re.MatchString(domain)
}

// MatchRegex reports whether a domain matches an anchored regex rule value.
// Invalid patterns never match.
func MatchRegex(pattern, domain string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(domain)
}
