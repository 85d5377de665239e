package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"testing"

	"vmforge/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockExecCommand(stderr string, fail bool) func(ctx context.Context, command string, args ...string) *exec.Cmd {
	return func(ctx context.Context, command string, args ...string) *exec.Cmd {
		cs := []string{"-test.run=TestHelperProcess", "--", command}
		cs = append(cs, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)

		env := os.Environ()
		env = append(env, "GO_WANT_HELPER_PROCESS=1")
		env = append(env, "STDERR="+stderr)
		if fail {
			env = append(env, "EXIT_CODE=1")
		} else {
			env = append(env, "EXIT_CODE=0")
		}
		cmd.Env = env
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if stderr := os.Getenv("STDERR"); stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}
	if os.Getenv("EXIT_CODE") == "1" {
		os.Exit(1)
	}
	os.Exit(0)
}

func baseSpec(platform Platform) Spec {
	return Spec{
		ISOPath:   "archlinux-2024.03.01-x86_64.iso",
		ImagePath: "archlinux-cloud-2024.03.01-x86_64.img",
		MemoryMB:  2048,
		Platform:  platform,
	}
}

func TestBuildCommand_Linux(t *testing.T) {
	args := BuildCommand(baseSpec(Linux))

	assert.Equal(t, "qemu-system-x86_64", args[0])
	assert.Contains(t, args, "-enable-kvm")
	assert.Contains(t, args, "virtserialport,chardev=spicechannel0,name=com.redhat.spice.0")
	assert.Contains(t, args, "spicevmc,id=spicechannel0,name=vdagent")
	assert.Contains(t, args, "archlinux-2024.03.01-x86_64.iso")
	assert.Contains(t, args, "file=archlinux-cloud-2024.03.01-x86_64.img,if=virtio,media=disk,format=raw,cache=none")
	assert.Contains(t, args, "user,model=virtio-net-pci,hostfwd=tcp::8022-:22")
	assert.Contains(t, args, "qxl")

	// 2 vCPUs, requested memory, CD-ROM boots first.
	require.True(t, slices.Contains(args, "-smp"))
	assert.Equal(t, "2", args[slices.Index(args, "-smp")+1])
	assert.Equal(t, "2048", args[slices.Index(args, "-m")+1])
	assert.Equal(t, "d", args[slices.Index(args, "-boot")+1])
}

func TestBuildCommand_WindowsOmitsKvmAndGuestAgent(t *testing.T) {
	args := BuildCommand(baseSpec(Windows))

	assert.NotContains(t, args, "-enable-kvm")
	assert.NotContains(t, args, "virtio-serial-pci")
	assert.NotContains(t, args, "virtserialport,chardev=spicechannel0,name=com.redhat.spice.0")
	assert.NotContains(t, args, "spicevmc,id=spicechannel0,name=vdagent")
}

func TestBuildCommand_BothPlatformsShareWiring(t *testing.T) {
	linux := BuildCommand(baseSpec(Linux))
	windows := BuildCommand(baseSpec(Windows))

	for _, args := range [][]string{linux, windows} {
		assert.Contains(t, args, "archlinux-2024.03.01-x86_64.iso")
		assert.Contains(t, args, "file=archlinux-cloud-2024.03.01-x86_64.img,if=virtio,media=disk,format=raw,cache=none")
		assert.Contains(t, args, "user,model=virtio-net-pci,hostfwd=tcp::8022-:22")
		assert.Equal(t, "2", args[slices.Index(args, "-smp")+1])
		assert.Equal(t, "d", args[slices.Index(args, "-boot")+1])
	}

	// The Windows template is strictly a subset of the Linux one.
	for _, arg := range windows {
		assert.Contains(t, linux, arg)
	}
}

func TestCurrentPlatform(t *testing.T) {
	// Test binaries do not run this suite on Windows, so the Linux template
	// must be selected.
	assert.Equal(t, Linux, CurrentPlatform())
}

func TestExecute_Success(t *testing.T) {
	originalExecCommand := execCommand
	defer func() { execCommand = originalExecCommand }()
	execCommand = mockExecCommand("", false)

	err := Execute(context.Background(), BuildCommand(baseSpec(Linux)))
	assert.NoError(t, err)
}

func TestExecute_FailureSurfacesStderr(t *testing.T) {
	originalExecCommand := execCommand
	defer func() { execCommand = originalExecCommand }()
	execCommand = mockExecCommand("qemu: could not load PC BIOS", true)

	err := Execute(context.Background(), BuildCommand(baseSpec(Linux)))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.LaunchFailed))
	assert.Contains(t, err.Error(), "qemu: could not load PC BIOS")
}
