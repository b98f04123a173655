package config_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/tbckr/insight/internal/config"
)

func TestCompleteOutputFormat(t *testing.T) {
	// prefix is unused; the full set is always returned
	for _, prefix := range []string{"", "j"} {
		vals, directive := config.CompleteOutputFormat(nil, nil, prefix)
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.ElementsMatch(t, []string{"table", "json", "plain"}, vals)
	}
}
