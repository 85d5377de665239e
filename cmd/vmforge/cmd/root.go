package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vmforge/internal/catalog"
	"vmforge/internal/config"
	"vmforge/internal/launcher"
	"vmforge/internal/pipeline"
	"vmforge/internal/tools"
	"vmforge/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listDistros bool
	distroName  string
	force       bool
	sizeSpec    string
	verbose     int
	memoryMB    int
)

var rootCmd = &cobra.Command{
	Use:   "vmforge",
	Short: "vmforge provisions and boots a Linux installer VM",
	Long: `vmforge resolves the latest installer ISO for a distribution from its
download listing, fetches it, creates a raw block-storage image and boots
both in an interactive QEMU session.`,
	// SilenceErrors is used to prevent cobra from printing the error,
	// as we handle it ourselves in the Execute function.
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		registry, err := newRegistry(cfg)
		if err != nil {
			return err
		}

		if listDistros {
			renderCatalog(registry)
			return nil
		}

		if err := tools.Check(tools.Required...); err != nil {
			return err
		}

		// Cancel the pipeline on a SIGINT or SIGTERM.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		printer := ui.New(verbose)
		opts := pipeline.Options{
			Distro:   distroName,
			Force:    force,
			Size:     sizeSpec,
			MemoryMB: memoryMB,
			Platform: launcher.CurrentPlatform(),
		}
		if err := pipeline.Run(ctx, cfg, registry, printer, opts); err != nil {
			if ctx.Err() == context.Canceled {
				color.Yellow("\nOperation cancelled by user.")
				return nil
			}
			return err
		}
		return nil
	},
}

// newRegistry builds the catalog from the built-in entries plus the user's
// optional overlay file.
func newRegistry(cfg *config.Config) (*catalog.Registry, error) {
	registry := catalog.Builtin()
	if err := registry.MergeFile(cfg.CatalogPath()); err != nil {
		return nil, err
	}
	return registry, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&listDistros, "list", "l", false, "list the available distributions")
	rootCmd.Flags().StringVarP(&distroName, "distro", "d", "archlinux", "name of the distribution to provision")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "remove and re-download the ISO if it exists")
	rootCmd.Flags().StringVarP(&sizeSpec, "size", "s", "3G", "block-storage image size")
	rootCmd.Flags().CountVarP(&verbose, "verbose", "v", "increase output verbosity")
	rootCmd.Flags().IntVar(&memoryMB, "memory", 2048, "VM memory in MB")

	rootCmd.RegisterFlagCompletionFunc("distro", DistroNameCompleter)
}
