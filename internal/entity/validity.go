package entity

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxValueLength is the longest entity value that is ever looked up.
	MaxValueLength = 100
	// MaxDomainLabelLength is the longest label allowed between dots of a domain.
	MaxDomainLabelLength = 63
)

// ignoredIPv4 are addresses that never carry useful intelligence.
var ignoredIPv4 = map[string]struct{}{
	"127.0.0.1":       {},
	"255.255.255.255": {},
	"0.0.0.0":         {},
}

// IsInvalid reports whether e must not be looked up. Lengths are counted in
// characters, not bytes. Anything not covered by a rule is considered valid.
func IsInvalid(e Entity) bool {
	if utf8.RuneCountInString(e.Value) > MaxValueLength {
		return true
	}

	if e.Kind == KindDomain {
		for _, label := range strings.Split(e.Value, ".") {
			if utf8.RuneCountInString(label) > MaxDomainLabelLength {
				return true
			}
		}
	}

	if e.Kind == KindIPv4 {
		if _, ok := ignoredIPv4[e.Value]; ok {
			return true
		}
	}

	return false
}
