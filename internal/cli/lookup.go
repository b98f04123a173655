package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbckr/insight/internal/input"
	"github.com/tbckr/insight/internal/insight"
)

func newLookupCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "lookup [entity...]",
		Short:   "Look up a batch of entities",
		GroupID: "lookup",
		Long: `Look up one or more entities and print one result per entity.

Blocklisted, reserved and over-long values are reported without data and
never sent to the API. List answers are cut to --max-results records.

Multiple inputs can be supplied as arguments or piped via stdin (one per line).
A single failed request aborts the whole batch.`,
		Example: `  insight lookup example.com 8.8.8.8
  cat iocs.txt | insight lookup -o json`,
		Args: cobra.ArbitraryArgs,
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := resolveInputs(cmd, args)
			if err != nil {
				return err
			}
			entities, err := input.Entities(raw, d.logger)
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

			results, err := svc.Lookup(cmd.Context(), entities, opts)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), d, insight.Results(results))
		},
	}
}
