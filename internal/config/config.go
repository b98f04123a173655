// Package config resolves insight settings from flags, INSIGHT_* environment
// variables and the YAML config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tbckr/insight/internal/httpclient"
	"github.com/tbckr/insight/internal/insight"
)

// EnvPrefix is prepended to every environment variable, e.g. INSIGHT_API_KEY.
const EnvPrefix = "INSIGHT"

// Config is the fully resolved configuration of one invocation.
type Config struct {
	ConfigFile string `mapstructure:"config"`
	Verbose    bool   `mapstructure:"verbose"`
	Output     string `mapstructure:"output"`
	Defang     bool   `mapstructure:"defang"`

	APIKey               string   `mapstructure:"api_key"`
	Blocklist            []string `mapstructure:"blocklist"`
	DomainBlocklistRegex string   `mapstructure:"domain_blocklist_regex"`
	IPBlocklistRegex     string   `mapstructure:"ip_blocklist_regex"`
	MaxResults           int      `mapstructure:"max_results"`
	BaseURL              string   `mapstructure:"base_url"`

	Proxy     string  `mapstructure:"proxy"`
	UserAgent string  `mapstructure:"user_agent"`
	Cert      string  `mapstructure:"cert"`
	Key       string  `mapstructure:"key"`
	CA        string  `mapstructure:"ca"`
	Insecure  bool    `mapstructure:"insecure"`
	RateLimit float64 `mapstructure:"rate_limit"`

	GeoIPDatabase string `mapstructure:"geoip_database"`
}

// RegisterFlags adds every config flag to flags. Flag names use hyphens; the
// matching config keys use underscores.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default $XDG_CONFIG_HOME/insight/config.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.StringP("output", "o", "table", "output format: table, json or plain")
	flags.Bool("defang", false, "defang domains, IPs and URLs in output")

	flags.String("api-key", "", "HYAS Insight API key")
	flags.StringSlice("blocklist", nil, "entity values never looked up (case-insensitive)")
	flags.String("domain-blocklist-regex", "", "skip domains matching this regex")
	flags.String("ip-blocklist-regex", "", "skip public IPs matching this regex")
	flags.Int("max-results", insight.DefaultPageSize, "records kept per list lookup")
	flags.String("base-url", insight.DefaultBaseURL, "HYAS Insight API base URL")

	flags.String("proxy", "", "proxy URL (http://, https://, socks5://)")
	flags.String("user-agent", "", "override the HTTP User-Agent")
	flags.String("cert", "", "PEM client certificate")
	flags.String("key", "", "PEM private key of the client certificate")
	flags.String("ca", "", "PEM root certificates used to verify the server")
	flags.Bool("insecure", false, "skip server certificate verification")
	flags.Float64("rate-limit", 0, "maximum requests per second (0 disables)")

	flags.String("geoip-database", "", "MaxMind GeoLite2/GeoIP2 City database for offline IP geolocation")
}

// Load resolves the configuration for flags. The config file is created with
// 0600 permissions when it does not exist yet.
func Load(flags *pflag.FlagSet) (*Config, error) {
	return load(flags, DefaultConfigPath)
}

func load(flags *pflag.FlagSet, defaultPath func() (string, error)) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		bindErr = errors.Join(bindErr, v.BindPFlag(keyName(f.Name), f))
	})
	if bindErr != nil {
		return nil, fmt.Errorf("binding flags: %w", bindErr)
	}

	path := v.GetString("config")
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		path = p
		v.Set("config", path)
	}
	if err := ensureFile(path); err != nil {
		return nil, err
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	switch c.Output {
	case "table", "json", "plain":
	default:
		return fmt.Errorf("invalid output format %q: must be \"table\", \"json\", or \"plain\"", c.Output)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("--max-results must be at least 1, got %d", c.MaxResults)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("--rate-limit must not be negative, got %g", c.RateLimit)
	}
	if (c.Cert == "") != (c.Key == "") {
		return errors.New("--cert and --key must be set together")
	}
	return nil
}

// LookupOptions returns the per-call options handed to the lookup core.
func (c *Config) LookupOptions() insight.Options {
	return insight.Options{
		APIKey:               c.APIKey,
		Blocklist:            c.Blocklist,
		DomainBlocklistRegex: c.DomainBlocklistRegex,
		IPBlocklistRegex:     c.IPBlocklistRegex,
		MaxResults:           c.MaxResults,
	}
}

// HTTPOptions returns the transport settings.
func (c *Config) HTTPOptions() httpclient.Options {
	return httpclient.Options{
		Proxy:     c.Proxy,
		UserAgent: c.UserAgent,
		CertFile:  c.Cert,
		KeyFile:   c.Key,
		CAFile:    c.CA,
		Insecure:  c.Insecure,
	}
}

// keyName converts a flag name to its config key ("api-key" → "api_key").
func keyName(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}
