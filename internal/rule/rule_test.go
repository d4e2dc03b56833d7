package rule

import "testing"

func TestLine(t *testing.T) {
	testCases := []struct {
		rule Rule
		want string
	}{
		{Rule{Type: Domain, Value: "example.com"}, "DOMAIN,example.com"},
		{Rule{Type: DomainSuffix, Value: "ads.net", Options: []string{"extended-matching"}}, "DOMAIN-SUFFIX,ads.net,extended-matching"},
		{Rule{Type: IPCIDR, Value: "10.0.0.0/8", Options: []string{"no-resolve"}}, "IP-CIDR,10.0.0.0/8,no-resolve"},
	}

	for _, tc := range testCases {
		if got := tc.rule.Line(); got != tc.want {
			t.Errorf("Line() = %q, want %q", got, tc.want)
		}
	}
}

func TestOrder(t *testing.T) {
	if Order(Domain) != 0 {
		t.Errorf("Order(DOMAIN) = %d, want 0", Order(Domain))
	}
	if Order(IPCIDR6) != 6 {
		t.Errorf("Order(IP-CIDR6) = %d, want 6", Order(IPCIDR6))
	}
	if Order("URL-REGEX") != 99 {
		t.Errorf("Order(URL-REGEX) = %d, want 99", Order("URL-REGEX"))
	}
}

func TestDomainLike(t *testing.T) {
	for _, ruleType := range []string{Domain, DomainSuffix, DomainKeyword, DomainWildcard} {
		if !DomainLike(ruleType) {
			t.Errorf("DomainLike(%s) = false, want true", ruleType)
		}
	}
	for _, ruleType := range []string{DomainRegex, IPCIDR, IPCIDR6, "MATCH"} {
		if DomainLike(ruleType) {
			t.Errorf("DomainLike(%s) = true, want false", ruleType)
		}
	}
}

func TestEqualOptions(t *testing.T) {
	if !EqualOptions(nil, nil) {
		t.Error("EqualOptions(nil, nil) = false")
	}
	if !EqualOptions([]string{"a", "b"}, []string{"a", "b"}) {
		t.Error("identical sequences reported unequal")
	}
	if EqualOptions([]string{"a"}, []string{"a", "b"}) {
		t.Error("different lengths reported equal")
	}
	if EqualOptions([]string{"a", "b"}, []string{"b", "a"}) {
		t.Error("order must be significant")
	}
}
