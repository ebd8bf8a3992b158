package engine

import (
	"fmt"
	"os/exec"

	"github.com/mitchellh/go-homedir"
)

// DefaultSandboxCommand wraps sandboxed engines when no other command is
// configured.
const DefaultSandboxCommand = "firejail"

// Launcher builds the commands that start engine processes.
type Launcher struct {
	// SandboxCommand is run with the module path and argument when an
	// engine is sandboxed.
	SandboxCommand string
}

// Command returns the command for a module. Sandboxed modules are started
// through the sandbox command. The executable is checked before returning.
func (l Launcher) Command(module, arg string, sandboxed bool) (*exec.Cmd, error) {
	path, err := homedir.Expand(module)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStartup, module, err)
	}

	name, args := path, []string{arg}
	if sandboxed {
		name = l.SandboxCommand
		if name == "" {
			name = DefaultSandboxCommand
		}
		args = []string{path, arg}
	}

	if err := CheckBinary(name); err != nil {
		return nil, err
	}
	return exec.Command(name, args...), nil //nolint:gosec
}

// CheckBinary checks that name resolves to an executable.
func CheckBinary(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s not found: %v", ErrStartup, name, err)
	}
	return nil
}
