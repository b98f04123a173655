package entity

import (
	"fmt"
	"net/mail"
	"net/netip"
	"strings"

	"github.com/miekg/dns"

	"github.com/tbckr/insight/internal/apperr"
)

// Detect classifies a raw string into an Entity.
//
// Detection order: IP address, MD5/SHA256 hash, email, domain, phone number.
// Strings matching none of these return an error wrapping apperr.ErrInvalidInput.
func Detect(raw string) (Entity, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Entity{}, fmt.Errorf("%w: empty value", apperr.ErrInvalidInput)
	}

	if addr, err := netip.ParseAddr(s); err == nil {
		if addr.Is4() {
			return New(KindIPv4, s), nil
		}
		return New(KindIPv6, s), nil
	}

	if isHex(s) {
		switch len(s) {
		case 32:
			return New(KindMD5, s), nil
		case 64:
			return New(KindSHA256, s), nil
		}
	}

	if strings.Contains(s, "@") {
		if addr, err := mail.ParseAddress(s); err == nil && addr.Address == s {
			return New(KindEmail, s), nil
		}
	}

	if isDomain(s) {
		return New(KindDomain, s), nil
	}

	if IsPhoneNumber(s) {
		return NewPhone(s), nil
	}

	return Entity{}, fmt.Errorf("%w: %q is not a recognised entity", apperr.ErrInvalidInput, s)
}

// isDomain accepts names with at least two labels and an alphabetic TLD.
func isDomain(s string) bool {
	labels, ok := dns.IsDomainName(s)
	if !ok || labels < 2 {
		return false
	}
	name := strings.TrimSuffix(s, ".")
	tld := name[strings.LastIndex(name, ".")+1:]
	if len(tld) < 2 {
		return false
	}
	for _, c := range tld {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	for _, c := range name {
		if c != '.' && c != '-' && c != '_' && !isAlnum(c) {
			return false
		}
	}
	return true
}

func isAlnum(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isHex(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
