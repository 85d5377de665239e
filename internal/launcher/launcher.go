// Package launcher assembles and runs the hypervisor invocation that boots
// the installer ISO against the provisioned image.
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"vmforge/internal/errors"
	"vmforge/internal/runner"
)

var execCommand = exec.CommandContext

// Platform selects which of the two command templates is used.
type Platform string

const (
	Linux   Platform = "linux"
	Windows Platform = "windows"
)

// CurrentPlatform maps the host OS onto a template. Anything that is not
// Windows gets the Linux template.
func CurrentPlatform() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Linux
}

// Spec describes one interactive VM session.
type Spec struct {
	ISOPath   string
	ImagePath string
	MemoryMB  int
	Platform  Platform
}

// BuildCommand returns the qemu-system-x86_64 argv for the session. Both
// templates wire 2 vCPUs, the ISO as the CD-ROM boot device, the image as a
// virtio disk, a host 8022 -> guest 22 forward and a QXL display. The
// Windows template omits KVM acceleration and the SPICE guest-agent devices,
// which need a hypervisor kernel module that host does not provide.
func BuildCommand(spec Spec) []string {
	args := []string{
		"qemu-system-x86_64",
		"-cpu", "kvm64",
		"-smp", "2",
		"-m", strconv.Itoa(spec.MemoryMB),
		"-machine", "q35",
		"-cdrom", spec.ISOPath,
		"-drive", fmt.Sprintf("file=%s,if=virtio,media=disk,format=raw,cache=none", spec.ImagePath),
		"-device", "virtio-scsi-pci,id=virtio",
	}

	if spec.Platform != Windows {
		args = append(args,
			"-enable-kvm",
			"-device", "virtio-serial-pci",
			"-device", "virtserialport,chardev=spicechannel0,name=com.redhat.spice.0",
			"-chardev", "spicevmc,id=spicechannel0,name=vdagent",
		)
	}

	args = append(args,
		"-nic", "user,model=virtio-net-pci,hostfwd=tcp::8022-:22",
		"-vga", "qxl",
		"-boot", "d",
	)
	return args
}

// CommandString renders the argv as a single line for error messages.
func CommandString(argv []string) string {
	return strings.Join(argv, " ")
}

// Execute runs the invocation. There is no timeout: the session is
// interactive and may run indefinitely.
var Execute = func(ctx context.Context, argv []string) error {
	cmd := execCommand(ctx, argv[0], argv[1:]...)
	if _, err := runner.Run(cmd); err != nil {
		return errors.E("launch", errors.LaunchFailed, err)
	}
	return nil
}
