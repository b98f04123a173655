package config

import "github.com/spf13/cobra"

// CompleteOutputFormat provides shell completion candidates for the --output flag.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"table", "json", "plain"}, cobra.ShellCompDirectiveNoFileComp
}

// completeFiles restricts completion to PEM or database files.
func completeFiles(exts ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

// RegisterFlagCompletions wires completion functions for the persistent flags
// registered by RegisterFlags.
func RegisterFlagCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("output", CompleteOutputFormat)
	_ = cmd.RegisterFlagCompletionFunc("cert", completeFiles("pem", "crt"))
	_ = cmd.RegisterFlagCompletionFunc("key", completeFiles("pem", "key"))
	_ = cmd.RegisterFlagCompletionFunc("ca", completeFiles("pem", "crt"))
	_ = cmd.RegisterFlagCompletionFunc("geoip-database", completeFiles("mmdb"))
}
