package blocklist

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/tbckr/insight/internal/entity"
)

// Settings is the blocklist part of the per-invocation lookup options.
type Settings struct {
	Values      []string
	DomainRegex string
	IPRegex     string
}

// Filter owns the domain and IP pattern caches shared by every call of a
// Service. Refresh hands back a Matcher bound to the patterns of that call,
// so concurrent calls with different settings never see each other's
// patterns.
type Filter struct {
	domain PatternCache
	ip     PatternCache
	logger *slog.Logger
}

// NewFilter returns a Filter with no patterns configured.
func NewFilter(logger *slog.Logger) *Filter {
	return &Filter{logger: logger}
}

// Refresh brings both pattern caches in line with s and returns a Matcher
// for s. Patterns that fail to compile are reported and leave the previous
// pattern in place.
func (f *Filter) Refresh(s Settings) (*Matcher, error) {
	domain, err := f.refreshOne(&f.domain, "domain", s.DomainRegex)
	if err != nil {
		return nil, err
	}
	ip, err := f.refreshOne(&f.ip, "ip", s.IPRegex)
	if err != nil {
		return nil, err
	}
	return &Matcher{values: s.Values, domain: domain, ip: ip, logger: f.logger}, nil
}

func (f *Filter) refreshOne(c *PatternCache, kind, raw string) (*regexp.Regexp, error) {
	re, changed, err := c.Refresh(raw)
	if err != nil {
		return nil, err
	}
	if changed {
		if raw == "" {
			f.logger.Debug("removing blocklist regex filtering", "kind", kind)
		} else {
			f.logger.Debug("modifying blocklist regex", "kind", kind, "regex", raw)
		}
	}
	return re, nil
}

// Matcher applies one call's blocklist settings. It is immutable and safe
// for concurrent use.
type Matcher struct {
	values []string
	domain *regexp.Regexp
	ip     *regexp.Regexp
	logger *slog.Logger
}

// IsBlocklisted reports whether e must be skipped.
//
// An exact case-insensitive match against the configured values always
// blocks. Public IPs are additionally matched against the IP pattern and
// domains against the domain pattern.
func (m *Matcher) IsBlocklisted(e entity.Entity) bool {
	for _, v := range m.values {
		if strings.EqualFold(strings.TrimSpace(v), e.Value) {
			m.logger.Debug("blocked blocklisted value", "value", e.Value)
			return true
		}
	}

	if m.ip != nil && e.IsIP() && !e.IsPrivateIP() && m.ip.MatchString(e.Value) {
		m.logger.Debug("blocked blocklisted IP lookup", "ip", e.Value)
		return true
	}

	if m.domain != nil && e.Kind == entity.KindDomain && m.domain.MatchString(e.Value) {
		m.logger.Debug("blocked blocklisted domain lookup", "domain", e.Value)
		return true
	}

	return false
}
