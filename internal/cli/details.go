package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbckr/insight/internal/entity"
	"github.com/tbckr/insight/internal/input"
)

func newDetailsCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "details <entity>",
		Short:   "Look up one entity and run every applicable detail lookup",
		GroupID: "lookup",
		Long: `Look up a single entity, then fetch its supplementary records:

  domain  SSL certificates, passive DNS (newest first), malware samples
  IPv4    dynamic DNS, malware samples, device geolocation
  phone   device geolocation

Hashes and IPv6 addresses have no detail lookups. With --geoip-database set,
public IPs are also located offline.`,
		Example: `  insight details example.com
  insight details --geoip-database GeoLite2-City.mmdb 8.8.8.8`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := input.Entities(args, d.logger)
			if err != nil {
				return err
			}
			opts := d.cfg.LookupOptions()
			if err := checkOptions(opts); err != nil {
				return err
			}

			svc, closeFn, err := d.newService()
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			ctx := cmd.Context()
			results, err := svc.Lookup(ctx, entities, opts)
			if err != nil {
				return err
			}
			result := results[0]
			if result.IsEmpty() {
				d.logger.Info("no data", "entity", describe(result.Entity))
				return writeResult(cmd.OutOrStdout(), d, &result)
			}

			rec, err := svc.Details(ctx, result, opts)
			if err != nil {
				return err
			}
			result.MergeDetails(rec)
			return writeResult(cmd.OutOrStdout(), d, &result)
		},
	}
}

func describe(e entity.Entity) string {
	return fmt.Sprintf("%s %s", e.Kind, e.Value)
}
