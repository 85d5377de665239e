package runner

import (
	"fmt"
	"os/exec"
)

// Run executes a command and returns its combined output. On failure the
// error carries the command line and the output verbatim.
func Run(cmd *exec.Cmd) (string, error) {
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("command failed: %s\n%s", cmd.String(), string(output))
	}
	return string(output), nil
}
