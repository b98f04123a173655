package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tbckr/insight/internal/config"
	"github.com/tbckr/insight/internal/httpclient"
	"github.com/tbckr/insight/internal/output"
)

func newConfigCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Read and write insight config file values",
		GroupID: "utility",
	}
	cmd.AddCommand(
		newConfigPathCmd(d),
		newConfigShowCmd(d),
		newConfigGetCmd(d),
		newConfigSetCmd(d),
	)
	return cmd
}

func newConfigPathCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), d.cfg.ConfigFile)
			return err
		},
	}
}

// maskSecret hides all but the last four characters of an API key.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// effectiveValue returns the resolved value for key, including defaults,
// environment variables and flag overrides.
func effectiveValue(cfg *config.Config, key string) string {
	switch key {
	case "api_key":
		return maskSecret(cfg.APIKey)
	case "blocklist":
		return strings.Join(cfg.Blocklist, ",")
	case "domain_blocklist_regex":
		return cfg.DomainBlocklistRegex
	case "ip_blocklist_regex":
		return cfg.IPBlocklistRegex
	case "max_results":
		return strconv.Itoa(cfg.MaxResults)
	case "base_url":
		return cfg.BaseURL
	case "proxy":
		return httpclient.ResolveProxy(cfg.Proxy)
	case "user_agent":
		if cfg.UserAgent == "" {
			return httpclient.DefaultUserAgent
		}
		return cfg.UserAgent
	case "cert":
		return cfg.Cert
	case "key":
		return cfg.Key
	case "ca":
		return cfg.CA
	case "insecure":
		return strconv.FormatBool(cfg.Insecure)
	case "rate_limit":
		return strconv.FormatFloat(cfg.RateLimit, 'g', -1, 64)
	case "geoip_database":
		return cfg.GeoIPDatabase
	case "output":
		return cfg.Output
	case "verbose":
		return strconv.FormatBool(cfg.Verbose)
	case "defang":
		return strconv.FormatBool(cfg.Defang)
	default:
		return ""
	}
}

// configRows holds the effective settings in key order.
type configRows [][2]string

func (rows configRows) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 20, 30)
	table.Header([]string{"KEY", "VALUE"})
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r[0], r[1]}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func (rows configRows) WritePlain(w io.Writer) error {
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s=%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return nil
}

func (rows configRows) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(rows))
	for _, r := range rows {
		m[r[0]] = r[1]
	}
	return json.Marshal(m)
}

func newConfigShowCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"cat"},
		Short:   "Display all effective config settings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keys := config.ValidKeys()
			rows := make(configRows, len(keys))
			for i, k := range keys {
				rows[i] = [2]string{k, effectiveValue(d.cfg, k)}
			}
			return output.Write(cmd.OutOrStdout(), output.Format(d.cfg.Output), rows)
		},
	}
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return config.ValidKeys(), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return config.KeyCompletions(args[0]), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func newConfigGetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Print the effective value of a config key",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateKey(args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), effectiveValue(d.cfg, normalizeConfigKey(args[0])))
			return err
		},
	}
}

func newConfigSetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Set a config value and persist it to the config file",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := normalizeConfigKey(args[0])
			value, err := config.ParseValue(key, args[1])
			if err != nil {
				return err
			}
			return setFileValue(d.cfg.ConfigFile, key, value)
		},
	}
}

// setFileValue rewrites path with key set to value. Only keys already in the
// file are carried over, so defaults and environment values never leak in.
func setFileValue(path, key string, value any) error {
	raw := map[string]any{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	}
	raw[key] = value

	out, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// normalizeConfigKey converts hyphenated flag names to config keys
// ("api-key" → "api_key").
func normalizeConfigKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}
