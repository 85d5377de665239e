// Package tools verifies that the external programs the pipeline shells out
// to are installed before any work starts.
package tools

import (
	"fmt"
	"os/exec"

	"vmforge/internal/errors"
)

// Required lists the external programs the pipeline cannot run without.
var Required = []string{"qemu-img", "qemu-system-x86_64"}

// Check fails with MissingPrerequisite on the first tool that is not found
// in PATH.
func Check(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return errors.E("tool-check", errors.MissingPrerequisite,
				fmt.Errorf("'%s' is not installed. Download & install QEMU from https://www.qemu.org/download/", name))
		}
	}
	return nil
}
