// Package blocklist decides whether an entity must be kept away from the
// remote API: an exact value list plus one domain and one IP regular
// expression that are recompiled only when their configuring string changes.
package blocklist

import (
	"fmt"
	"regexp"
	"sync"
)

// PatternCache holds at most one compiled, case-insensitive pattern together
// with the raw string it was compiled from.
type PatternCache struct {
	mu       sync.RWMutex
	raw      string
	compiled *regexp.Regexp
}

// Refresh compiles raw when it differs from the previously seen string and
// returns the current pattern. An empty raw string clears the pattern and
// returns nil. On a compile error the previous state is kept.
// changed reports whether the cached state was replaced.
func (c *PatternCache) Refresh(raw string) (compiled *regexp.Regexp, changed bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if raw == c.raw {
		return c.compiled, false, nil
	}
	if raw == "" {
		c.raw, c.compiled = "", nil
		return nil, true, nil
	}

	re, err := regexp.Compile("(?i)" + raw)
	if err != nil {
		return c.compiled, false, fmt.Errorf("compiling blocklist pattern %q: %w", raw, err)
	}
	c.raw, c.compiled = raw, re
	return re, true, nil
}

// Pattern returns the current compiled pattern, or nil when filtering is off.
func (c *PatternCache) Pattern() *regexp.Regexp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.compiled
}

// Raw returns the string the current pattern was compiled from.
func (c *PatternCache) Raw() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.raw
}
