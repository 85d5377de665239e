package cmd

import (
	"strings"

	"vmforge/internal/config"

	"github.com/spf13/cobra"
)

// DistroNameCompleter provides shell completion for the --distro flag.
func DistroNameCompleter(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.New()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	registry, err := newRegistry(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var completions []string
	for _, name := range registry.Names() {
		if strings.HasPrefix(name, toComplete) {
			completions = append(completions, name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
