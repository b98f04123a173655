package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/insight/internal/config"
	"github.com/tbckr/insight/internal/insight"
)

// newTestFlags registers all config flags on a fresh FlagSet, then parses extra args.
func newTestFlags(t *testing.T, cfgFile string, extra ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	args := append([]string{"--config=" + cfgFile}, extra...)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "insight", "config.yaml")

	cfg, err := config.Load(newTestFlags(t, cfgFile))
	require.NoError(t, err)
	assert.Equal(t, cfgFile, cfg.ConfigFile)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, insight.DefaultPageSize, cfg.MaxResults)
	assert.Equal(t, insight.DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.Blocklist)
	assert.Zero(t, cfg.RateLimit)
	require.NoError(t, cfg.Validate())

	// The file holds the API key and must be private.
	info, err := os.Stat(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_ExistingConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte{}, 0o600))

	cfg, err := config.Load(newTestFlags(t, cfgFile, "-v", "-o", "json"))
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoad_Flags(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := config.Load(newTestFlags(t, cfgFile,
		"--api-key=secret",
		"--blocklist=example.com,8.8.8.8",
		"--domain-blocklist-regex=.*\\.test$",
		"--ip-blocklist-regex=^1\\.",
		"--max-results=8",
		"--proxy=socks5://127.0.0.1:1080",
		"--user-agent=MyAgent/1.0",
		"--insecure",
		"--rate-limit=2.5",
		"--defang",
	))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, []string{"example.com", "8.8.8.8"}, cfg.Blocklist)
	assert.Equal(t, `.*\.test$`, cfg.DomainBlocklistRegex)
	assert.Equal(t, `^1\.`, cfg.IPBlocklistRegex)
	assert.Equal(t, 8, cfg.MaxResults)
	assert.Equal(t, "socks5://127.0.0.1:1080", cfg.Proxy)
	assert.Equal(t, "MyAgent/1.0", cfg.UserAgent)
	assert.True(t, cfg.Insecure)
	assert.InDelta(t, 2.5, cfg.RateLimit, 1e-9)
	assert.True(t, cfg.Defang)
}

func TestLoad_ConfigFileValues(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := "api_key: file-key\nmax_results: 20\nblocklist:\n  - a.com\n  - b.com\ngeoip_database: /tmp/city.mmdb\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(yamlContent), 0o600))

	cfg, err := config.Load(newTestFlags(t, cfgFile))
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 20, cfg.MaxResults)
	assert.Equal(t, []string{"a.com", "b.com"}, cfg.Blocklist)
	assert.Equal(t, "/tmp/city.mmdb", cfg.GeoIPDatabase)
}

func TestLoad_Precedence(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("api_key: file-key\nmax_results: 20\n"), 0o600))
	t.Setenv("INSIGHT_API_KEY", "env-key")
	t.Setenv("INSIGHT_MAX_RESULTS", "30")

	cfg, err := config.Load(newTestFlags(t, cfgFile))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey, "env beats file")
	assert.Equal(t, 30, cfg.MaxResults)

	cfg, err = config.Load(newTestFlags(t, cfgFile, "--api-key=flag-key"))
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.APIKey, "flag beats env")
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("api_key: [unterminated\n"), 0o600))

	_, err := config.Load(newTestFlags(t, cfgFile))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := config.Config{Output: "table", MaxResults: 5}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad output", func(c *config.Config) { c.Output = "xml" }},
		{"zero max results", func(c *config.Config) { c.MaxResults = 0 }},
		{"negative rate limit", func(c *config.Config) { c.RateLimit = -1 }},
		{"cert without key", func(c *config.Config) { c.Cert = "client.pem" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestLookupAndHTTPOptions(t *testing.T) {
	c := config.Config{
		APIKey: "k", Blocklist: []string{"x"}, DomainBlocklistRegex: "d", IPBlocklistRegex: "i", MaxResults: 7,
		Proxy: "http://p:3128", UserAgent: "ua", Cert: "c.pem", Key: "k.pem", CA: "ca.pem", Insecure: true,
	}
	assert.Equal(t, insight.Options{
		APIKey: "k", Blocklist: []string{"x"}, DomainBlocklistRegex: "d", IPBlocklistRegex: "i", MaxResults: 7,
	}, c.LookupOptions())

	h := c.HTTPOptions()
	assert.Equal(t, "http://p:3128", h.Proxy)
	assert.Equal(t, "ua", h.UserAgent)
	assert.Equal(t, "c.pem", h.CertFile)
	assert.Equal(t, "k.pem", h.KeyFile)
	assert.Equal(t, "ca.pem", h.CAFile)
	assert.True(t, h.Insecure)
}

func TestValidateKey(t *testing.T) {
	require.NoError(t, config.ValidateKey("api_key"))
	require.NoError(t, config.ValidateKey("api-key"))
	for _, k := range config.ValidKeys() {
		require.NoError(t, config.ValidateKey(k), "key %q should be valid", k)
	}
	require.ErrorIs(t, config.ValidateKey("does_not_exist"), config.ErrUnknownKey)
	require.ErrorIs(t, config.ValidateKey("config"), config.ErrUnknownKey)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    any
		wantErr bool
	}{
		{key: "verbose", value: "true", want: true},
		{key: "insecure", value: "0", want: false},
		{key: "defang", value: "yes", wantErr: true},
		{key: "max_results", value: "10", want: 10},
		{key: "max-results", value: "0", wantErr: true},
		{key: "max_results", value: "abc", wantErr: true},
		{key: "rate_limit", value: "0.5", want: 0.5},
		{key: "rate_limit", value: "-1", wantErr: true},
		{key: "output", value: "plain", want: "plain"},
		{key: "output", value: "xml", wantErr: true},
		{key: "blocklist", value: "a.com, b.com,,", want: []string{"a.com", "b.com"}},
		{key: "api-key", value: "secret", want: "secret"},
	}
	for _, tc := range tests {
		t.Run(tc.key+"/"+tc.value, func(t *testing.T) {
			got, err := config.ParseValue(tc.key, tc.value)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseValue_UnknownKey(t *testing.T) {
	_, err := config.ParseValue("nonexistent", "value")
	require.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestKeyCompletions(t *testing.T) {
	assert.Equal(t, []string{"table", "json", "plain"}, config.KeyCompletions("output"))
	assert.Equal(t, []string{"true", "false"}, config.KeyCompletions("insecure"))
	assert.Nil(t, config.KeyCompletions("api_key"))
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := config.DefaultConfigPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path), "expected absolute path, got %q", path)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "insight", filepath.Base(filepath.Dir(path)))
}
