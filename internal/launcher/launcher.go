// Package launcher starts the chosen program for a target path, honoring
// its terminal-attachment mode.
package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// FallbackOpener handles targets no configured category can open
const FallbackOpener = "xdg-open"

// reuseWindowCommand names the editor that reuses an existing window
// instance instead of spawning a new top-level window when detached.
const reuseWindowCommand = "code"

// Launcher starts external programs for selected entries
type Launcher struct {
	out io.Writer
	err io.Writer
}

// New creates a launcher writing directives to stdout and failures to stderr
func New() *Launcher {
	return &Launcher{out: os.Stdout, err: os.Stderr}
}

// ShellDirective emits a shell-sourceable change-directory instruction for
// the invoking shell. The process itself cannot change the parent shell's
// working directory.
func (l *Launcher) ShellDirective(dir string) {
	fmt.Fprintf(l.out, "cd '%s'\n", dir)
}

// Launch starts command for path. Terminal-attached programs inherit the
// controlling terminal and block until exit; everything else is started
// detached. Failures are reported, never fatal: dispatch was attempted.
func (l *Launcher) Launch(command string, terminal bool, path string) {
	args := buildArgs(path)

	if terminal {
		l.runAttached(command, args)
		return
	}
	// Window reuse only applies detached; an attached run owns the
	// terminal regardless.
	if command == reuseWindowCommand {
		args = append([]string{"--reuse-window"}, args...)
	}
	if err := l.runDetached(command, args); err != nil {
		fmt.Fprintf(l.err, "Error: could not start %q: %v\n", command, err)
	}
}

// OpenFallback hands the path to the generic opener, detached
func (l *Launcher) OpenFallback(path string) {
	if err := l.runDetached(FallbackOpener, []string{"--", path}); err != nil {
		fmt.Fprintf(l.err, "Error: could not start %q: %v\n", FallbackOpener, err)
	}
}

// buildArgs assembles the path arguments. File paths are kept apart from
// flags with "--"; directories are passed bare, matching what file
// managers expect.
func buildArgs(path string) []string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return []string{path}
	}
	return []string{"--", path}
}

// runAttached runs the program synchronously on the inherited terminal.
// The child's exit status is informational only.
func (l *Launcher) runAttached(command string, args []string) {
	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(l.err, "Error: could not start %q: %v\n", command, err)
		}
	}
}

// runDetached starts the program in its own session so it survives the
// parent exiting or the terminal closing. Its output is discarded.
func (l *Launcher) runDetached(command string, args []string) error {
	cmd := exec.Command(command, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return err
	}
	// Not waited on; the child is reparented once we exit.
	return nil
}
