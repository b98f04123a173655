// Package cli provides the Cobra command tree and output wiring for insight.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/tbckr/insight/internal/config"
	"github.com/tbckr/insight/internal/version"
)

// newRootCmd builds the top-level Cobra command for insight.
// Callers must set stdout/stderr via cmd.SetOut / cmd.SetErr before Execute.
func newRootCmd() *cobra.Command {
	// d is populated by PersistentPreRunE before any subcommand's RunE runs.
	// Cobra only runs the innermost PersistentPreRunE; subcommands other than
	// completion must not define their own.
	var d deps

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Enrich IPs, domains, emails, hashes and phone numbers with HYAS Insight",
		Long: `insight looks up indicators against the HYAS Insight threat intelligence API.

Each input is classified (IPv4, IPv6, domain, email, MD5, SHA256 or phone
number), filtered through the configured blocklists and sent to the matching
Insight endpoint. At most 10 requests run at once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := buildDeps(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d = *resolved
			return nil
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	config.RegisterFlagCompletions(cmd)

	cmd.Version = version.Version
	cmd.SetVersionTemplate("insight version {{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: "lookup", Title: "Lookup Commands:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	cmd.AddCommand(
		newLookupCmd(&d),
		newDetailsCmd(&d),
		newValidateCmd(&d),
		newConfigCmd(&d),
		newCompletionCmd(),
		newVersionCmd(&d),
	)

	return cmd
}

// Execute builds the root command and runs it with os.Args. Cancelling ctx
// aborts in-flight lookups.
func Execute(ctx context.Context, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
