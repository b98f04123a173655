package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tbckr/insight/internal/output"
	"github.com/tbckr/insight/internal/version"
)

// versionView renders version.Info for the table and plain formats.
type versionView struct{ version.Info }

func (v versionView) WriteTable(w io.Writer) error {
	_, err := fmt.Fprintln(w, v.Info.String())
	return err
}

func (v versionView) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintln(w, v.Version)
	return err
}

func newVersionCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the insight version",
		Args:    cobra.NoArgs,
		GroupID: "utility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Never defanged: the version string is not an indicator.
			return output.Write(cmd.OutOrStdout(), output.Format(d.cfg.Output), versionView{version.Get()})
		},
	}
}
