package cmd

import (
	"os"

	"vmforge/internal/catalog"

	"github.com/olekukonko/tablewriter"
)

// renderCatalog prints the registered distributions.
func renderCatalog(registry *catalog.Registry) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"DISTRO", "LISTING URL", "FILTER"})

	for _, name := range registry.Names() {
		entry, err := registry.Lookup(name)
		if err != nil {
			continue
		}
		table.Append([]string{entry.Name, entry.ListingURL, entry.FilterPattern})
	}

	table.Render()
}
