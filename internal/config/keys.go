package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned for keys that are not part of the config file.
var ErrUnknownKey = errors.New("unknown config key")

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindInt
	kindFloat
	kindList
	kindEnum
)

type keyDef struct {
	kind   keyKind
	values []string
}

// fileKeys lists every setting that may be persisted in the config file.
var fileKeys = map[string]keyDef{
	"api_key":                {kind: kindString},
	"blocklist":              {kind: kindList},
	"domain_blocklist_regex": {kind: kindString},
	"ip_blocklist_regex":     {kind: kindString},
	"max_results":            {kind: kindInt},
	"base_url":               {kind: kindString},
	"proxy":                  {kind: kindString},
	"user_agent":             {kind: kindString},
	"cert":                   {kind: kindString},
	"key":                    {kind: kindString},
	"ca":                     {kind: kindString},
	"insecure":               {kind: kindBool},
	"rate_limit":             {kind: kindFloat},
	"geoip_database":         {kind: kindString},
	"output":                 {kind: kindEnum, values: []string{"table", "json", "plain"}},
	"verbose":                {kind: kindBool},
	"defang":                 {kind: kindBool},
}

// ValidKeys returns the config file keys in sorted order.
func ValidKeys() []string {
	keys := make([]string, 0, len(fileKeys))
	for k := range fileKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ValidateKey accepts both the flag spelling ("api-key") and the key ("api_key").
func ValidateKey(key string) error {
	if _, ok := fileKeys[keyName(key)]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// KeyCompletions returns the fixed values of an enum or bool key.
func KeyCompletions(key string) []string {
	def, ok := fileKeys[keyName(key)]
	if !ok {
		return nil
	}
	switch def.kind {
	case kindEnum:
		return def.values
	case kindBool:
		return []string{"true", "false"}
	}
	return nil
}

// ParseValue converts raw into the type stored for key.
func ParseValue(key, raw string) (any, error) {
	def, ok := fileKeys[keyName(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	switch def.kind {
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", key, raw)
		}
		return b, nil
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s: %q is not a positive integer", key, raw)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%s: %q is not a non-negative number", key, raw)
		}
		return f, nil
	case kindList:
		var out []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	case kindEnum:
		if !slices.Contains(def.values, raw) {
			return nil, fmt.Errorf("%s: %q must be one of %s", key, raw, strings.Join(def.values, ", "))
		}
		return raw, nil
	default:
		return raw, nil
	}
}
