// Package entity models the observables submitted for enrichment and the
// pure validity rules applied to them before any request is built.
package entity

import (
	"fmt"
	"net/netip"
	"strings"
)

// Kind is the closed set of entity types the lookup core understands.
type Kind int

const (
	KindIPv4 Kind = iota + 1
	KindIPv6
	KindDomain
	KindEmail
	KindMD5
	KindSHA256
	KindCustom
)

var kindNames = map[Kind]string{
	KindIPv4:   "IPv4",
	KindIPv6:   "IPv6",
	KindDomain: "domain",
	KindEmail:  "email",
	KindMD5:    "MD5",
	KindSHA256: "SHA256",
	KindCustom: "custom",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown entity kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a kind name ("IPv4", "domain", "md5", ...) into a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity type %q", s)
}

// SubtypePhone marks a custom entity holding a phone number.
const SubtypePhone = "phone"

// Entity is one observable submitted for enrichment. It is never mutated
// after construction.
type Entity struct {
	Value   string `json:"value"`
	Kind    Kind   `json:"type"`
	Subtype string `json:"subtype,omitempty"`
}

// New returns an Entity of the given kind.
func New(kind Kind, value string) Entity {
	return Entity{Value: value, Kind: kind}
}

// NewPhone returns a custom entity with the phone subtype.
func NewPhone(value string) Entity {
	return Entity{Value: value, Kind: KindCustom, Subtype: SubtypePhone}
}

// String returns the entity value.
func (e Entity) String() string { return e.Value }

// IsIP reports whether the entity is an IPv4 or IPv6 address.
func (e Entity) IsIP() bool { return e.Kind == KindIPv4 || e.Kind == KindIPv6 }

// IsHash reports whether the entity is an MD5 or SHA256 hash.
func (e Entity) IsHash() bool { return e.Kind == KindMD5 || e.Kind == KindSHA256 }

// IsPhone reports whether the entity is a custom entity routed as a phone
// number. Custom entities without a subtype are treated as phone numbers.
func (e Entity) IsPhone() bool {
	return e.Kind == KindCustom && (e.Subtype == "" || strings.EqualFold(e.Subtype, SubtypePhone))
}

// IsPrivateIP reports whether the entity is an IP address in a private,
// loopback, link-local or unspecified range. Non-IP entities return false.
func (e Entity) IsPrivateIP() bool {
	if !e.IsIP() {
		return false
	}
	addr, err := netip.ParseAddr(e.Value)
	if err != nil {
		return false
	}
	return addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsUnspecified()
}
