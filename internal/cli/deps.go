package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tbckr/insight/internal/config"
	"github.com/tbckr/insight/internal/geo"
	"github.com/tbckr/insight/internal/httpclient"
	"github.com/tbckr/insight/internal/input"
	"github.com/tbckr/insight/internal/insight"
	"github.com/tbckr/insight/internal/output"
	"github.com/tbckr/insight/internal/ratelimit"
)

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger   *slog.Logger
	cfg      *config.Config
	doDefang bool
}

// buildDeps resolves config, logger, output format and defang flag.
func buildDeps(cmd *cobra.Command, stderr io.Writer) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// JSON is for machines and stays raw.
	doDefang := cfg.Defang && output.Format(cfg.Output) != output.FormatJSON

	return &deps{cfg: cfg, logger: logger, doDefang: doDefang}, nil
}

// newService builds the lookup service from the resolved transport settings.
// The returned close function releases the GeoIP database, if one was opened.
func (d *deps) newService() (*insight.Service, func() error, error) {
	client, err := httpclient.New(d.cfg.HTTPOptions(), d.logger, d.cfg.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("creating HTTP client: %w", err)
	}
	httpclient.AttachRateLimit(client, ratelimit.FromConfig(d.cfg.RateLimit))

	opts := []insight.Option{insight.WithBaseURL(d.cfg.BaseURL)}
	closeFn := func() error { return nil }
	if d.cfg.GeoIPDatabase != "" {
		reader, err := geo.Open(d.cfg.GeoIPDatabase)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, insight.WithGeoLocator(reader))
		closeFn = reader.Close
	}
	return insight.NewService(client, d.logger, opts...), closeFn, nil
}

// checkOptions reports every validation problem at once.
func checkOptions(opts insight.Options) error {
	var errs []error
	for _, v := range insight.ValidateOptions(opts) {
		errs = append(errs, v)
	}
	return errors.Join(errs...)
}

// resolveInputs returns positional args, or reads non-empty lines from stdin when
// no args are provided. Returns an error if stdin is an interactive terminal with
// no args (i.e. the user forgot to pass an argument or pipe input).
func resolveInputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	r := cmd.InOrStdin()
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // uintptr→int is safe for file descriptors
		return nil, fmt.Errorf("no input: pass an argument or pipe stdin")
	}
	return input.Read(r)
}

// writeResult formats and writes a result to stdout.
// When d.doDefang is true the writer is wrapped with DefangWriter.
func writeResult(stdout io.Writer, d *deps, result any) error {
	w := stdout
	if d.doDefang {
		w = &output.DefangWriter{Inner: stdout}
	}
	if err := output.Write(w, output.Format(d.cfg.Output), result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
