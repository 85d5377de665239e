// Package pipeline drives the provisioning stages in order: catalog lookup,
// candidate resolution, version extraction, ISO download, image creation and
// the hypervisor launch. Each stage blocks until complete and any failure
// aborts the run; already-completed side effects like a downloaded ISO are
// kept, since re-running is idempotent and will reuse them.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"vmforge/internal/catalog"
	"vmforge/internal/config"
	"vmforge/internal/downloader"
	"vmforge/internal/errors"
	"vmforge/internal/image"
	"vmforge/internal/launcher"
	"vmforge/internal/resolver"
	"vmforge/internal/ui"
	"vmforge/internal/util"
	"vmforge/internal/version"
)

// Options carries the per-run knobs from the CLI.
type Options struct {
	Distro   string
	Force    bool
	Size     string
	MemoryMB int
	Platform launcher.Platform
}

// Run executes the whole pipeline for one distribution.
func Run(ctx context.Context, cfg *config.Config, reg *catalog.Registry, p *ui.Printer, opts Options) error {
	// Reject a bad size spec before any network or tool work happens.
	if _, err := util.ParseSize(opts.Size); err != nil {
		return errors.E("pipeline", errors.ProvisionFailed, err)
	}

	entry, err := reg.Lookup(opts.Distro)
	if err != nil {
		return err
	}
	p.Info("--distro %s listed under available distributions", entry.Name)

	artifact, err := resolver.Resolve(ctx, entry)
	if err != nil {
		return err
	}

	ver, err := version.Extract(artifact.FileName)
	if err != nil {
		return err
	}

	isoPath := filepath.Join(cfg.WorkDir(), artifact.FileName)
	imagePath := filepath.Join(cfg.WorkDir(),
		fmt.Sprintf("%s-cloud-%s-x86_64.img", entry.Name, ver))

	p.Info("CD/DVD ISO image: %s", artifact.FileName)
	p.Info("Distribution version: %s", ver)
	p.Info("Cloud image name: %s", filepath.Base(imagePath))

	outcome, err := downloader.Download(ctx, artifact.URL, isoPath, opts.Force)
	if err != nil {
		return err
	}
	p.OK("%s", outcome.Detail)

	if err := image.Provision(ctx, image.Spec{Path: imagePath, Size: opts.Size}); err != nil {
		return err
	}
	p.OK("a block device image '%s' has been created", imagePath)

	argv := launcher.BuildCommand(launcher.Spec{
		ISOPath:   isoPath,
		ImagePath: imagePath,
		MemoryMB:  opts.MemoryMB,
		Platform:  opts.Platform,
	})
	p.Debug("launching: %s", launcher.CommandString(argv))

	return launcher.Execute(ctx, argv)
}
