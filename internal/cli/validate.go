package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tbckr/insight/internal/insight"
	"github.com/tbckr/insight/internal/output"
)

// validationReport is printed by the validate command.
type validationReport struct {
	Valid  bool                      `json:"valid"`
	Errors []insight.ValidationError `json:"errors"`
}

func (r validationReport) WriteTable(w io.Writer) error {
	if r.Valid {
		_, err := fmt.Fprintln(w, "Options are valid.")
		return err
	}
	table := output.NewWrappingTable(w, 20, 20)
	table.Header([]string{"KEY", "PROBLEM"})
	rows := make([][]string, len(r.Errors))
	for i, e := range r.Errors {
		rows[i] = []string{e.Key, e.Message}
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func (r validationReport) WritePlain(w io.Writer) error {
	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.Key, e.Message); err != nil {
			return err
		}
	}
	return nil
}

func newValidateCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Short:   "Check the lookup options without querying the API",
		GroupID: "utility",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			errs := insight.ValidateOptions(d.cfg.LookupOptions())
			report := validationReport{Valid: len(errs) == 0, Errors: errs}
			if report.Errors == nil {
				report.Errors = []insight.ValidationError{}
			}
			if err := writeResult(cmd.OutOrStdout(), d, report); err != nil {
				return err
			}
			if !report.Valid {
				return fmt.Errorf("%d invalid option(s)", len(errs))
			}
			return nil
		},
	}
}
