// Package image creates the raw block-storage image the VM boots onto.
package image

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"vmforge/internal/errors"
	"vmforge/internal/util"
)

var execCommand = exec.CommandContext

// Image creation is local and fast; anything longer than this means the
// tool is wedged.
const createTimeout = 30 * time.Second

// Spec describes the image to provision. The format is always raw.
type Spec struct {
	Path string
	Size string
}

// Provision (re)creates the image described by spec. Any pre-existing file
// at spec.Path is removed first; previous image content is never reused.
var Provision = func(ctx context.Context, spec Spec) error {
	if err := util.RemoveIfExists(spec.Path); err != nil {
		return errors.E("provision", errors.ProvisionFailed,
			fmt.Errorf("failed to remove existing image %s: %w", spec.Path, err))
	}

	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	cmd := execCommand(ctx, "qemu-img", "create", "-f", "raw", spec.Path, spec.Size)
	if output, err := cmd.CombinedOutput(); err != nil {
		return errors.E("provision", errors.ProvisionFailed,
			fmt.Errorf("command failed: %s\n%s", cmd.String(), string(output)))
	}

	// The tool reporting success is not trusted on its own.
	if !util.FileExists(spec.Path) {
		return errors.E("provision", errors.ProvisionFailed,
			fmt.Errorf("image '%s' does not exist after creation", spec.Path))
	}
	return nil
}
