package tasks

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultPackageManager is used when neither the workspace nor the user
// configuration names one.
const DefaultPackageManager = "npm"

// installArgs maps each supported package manager to its install command.
var installArgs = map[string][]string{
	"npm":  {"install"},
	"cnpm": {"install"},
	"yarn": {"install"},
	"pnpm": {"install"},
}

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// ErrUnsupportedPackageManager is returned for names outside installArgs.
var ErrUnsupportedPackageManager = errors.New("unsupported package manager")

// SupportedPackageManager reports whether name can run a NodePackageInstall.
func SupportedPackageManager(name string) bool {
	_, ok := installArgs[name]
	return ok
}

// NodePackageInstall runs "<package manager> install" in the workspace root.
type NodePackageInstall struct {
	// PackageManager is one of npm, cnpm, yarn or pnpm; "" means npm.
	PackageManager string
}

// Name implements Task.
func (n NodePackageInstall) Name() string {
	return "node-package-install"
}

// Command returns the binary name and arguments the task will run.
func (n NodePackageInstall) Command() (string, []string, error) {
	pm := n.PackageManager
	if pm == "" {
		pm = DefaultPackageManager
	}
	args, ok := installArgs[pm]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedPackageManager, pm)
	}
	return pm, append([]string(nil), args...), nil
}

// Run implements Task.
func (n NodePackageInstall) Run(ctx context.Context, env Env) error {
	pm, args, err := n.Command()
	if err != nil {
		return err
	}

	bin, err := lookPath(pm)
	if err != nil {
		return fmt.Errorf("package manager %s not found: %w", pm, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = env.Dir
	cmd.Stdout = env.Stdout
	cmd.Stderr = env.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s install exited with code %d", pm, exitErr.ExitCode())
		}
		return fmt.Errorf("running %s install: %w", pm, err)
	}
	return nil
}
