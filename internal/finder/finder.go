// Package finder assembles the directory-enumeration command and drives
// the find | fzf pick pipeline. Both ends of the pipe are external
// collaborators; this package only builds their argument lists and wires
// them together.
package finder

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"fopen/internal/apps"
	"fopen/internal/config"
)

// Finder builds enumeration commands from the search configuration
type Finder struct {
	Search    config.SearchConfig
	available apps.Availability
}

// New creates a finder over the search settings
func New(search config.SearchConfig, available apps.Availability) *Finder {
	if available == nil {
		available = apps.IsCommandAvailable
	}
	return &Finder{Search: search, available: available}
}

// Args returns the full enumeration argv, preferring fd when configured
// and installed, with find as the portable fallback. Output is
// NUL-delimited either way.
func (f *Finder) Args(showHidden bool) []string {
	if f.Search.UseFdIfAvailable && f.available("fd") {
		return f.fdArgs(showHidden)
	}
	return f.findArgs(showHidden)
}

func (f *Finder) fdArgs(showHidden bool) []string {
	args := []string{"fd", "-t", "f", "-t", "d", "--strip-cwd-prefix", "--color=never"}

	if showHidden {
		args = append(args, "--hidden")
	}
	if f.Search.FollowSymlinks {
		args = append(args, "--follow")
	}
	for _, dir := range f.Search.ExcludedDirs {
		args = append(args, "--exclude", dir)
	}

	return append(args, "-0")
}

func (f *Finder) findArgs(showHidden bool) []string {
	args := []string{"find", "."}

	if len(f.Search.ExcludedDirs) > 0 {
		args = append(args, "(")
		for i, dir := range f.Search.ExcludedDirs {
			if i > 0 {
				args = append(args, "-o")
			}
			args = append(args, "-path", "*/"+dir)
		}
		args = append(args, ")", "-prune", "-o")
	}

	if !showHidden {
		args = append(args, "-path", "*/.*", "-prune", "-o")
	}

	return append(args, "-type", "f", "-print0", "-o", "-type", "d", "-print0")
}

// header returns the fzf header line reflecting the hidden-entries state
func header(showHidden bool) string {
	if showHidden {
		return "Hidden: ON   (Alt-h on / Alt-H off)"
	}
	return "Hidden: OFF  (Alt-h on / Alt-H off)"
}

// FzfArgs returns the fzf argv for the pick pipeline, including the
// alt-h / alt-H binds that re-enumerate with hidden entries toggled.
// previewCmd, when non-empty, is installed as the preview command with
// fzf's {} placeholder for the highlighted entry.
func (f *Finder) FzfArgs(showHidden bool, iface config.InterfaceConfig, previewCmd string) []string {
	args := []string{
		"fzf",
		"--read0",
		"--height=" + iface.FzfHeight,
		"--border",
		"--header=" + header(showHidden),
		"--bind=alt-h:reload(" + strings.Join(f.Args(true), " ") + ")+change-header(" + header(true) + ")",
		"--bind=alt-H:reload(" + strings.Join(f.Args(false), " ") + ")+change-header(" + header(false) + ")",
	}
	if iface.PreviewEnabled && previewCmd != "" {
		args = append(args, "--preview="+previewCmd+" {}")
	}
	return args
}

// Pick runs the enumerator piped into fzf and returns the selected path.
// An empty path with a nil error means the user made no selection.
func (f *Finder) Pick(showHidden bool, iface config.InterfaceConfig, previewCmd string) (string, error) {
	enumArgs := f.Args(showHidden)
	fzfArgs := f.FzfArgs(showHidden, iface, previewCmd)

	enum := exec.Command(enumArgs[0], enumArgs[1:]...)
	fzf := exec.Command(fzfArgs[0], fzfArgs[1:]...)

	pipe, err := enum.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("enumerator pipe: %w", err)
	}
	fzf.Stdin = pipe
	fzf.Stderr = os.Stderr

	if err := enum.Start(); err != nil {
		return "", fmt.Errorf("start %s: %w", enumArgs[0], err)
	}

	out, err := fzf.Output()
	// The enumerator may still be running when fzf exits; reap it either way.
	_ = enum.Wait()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero from fzf is a cancelled or empty selection.
			return "", nil
		}
		return "", fmt.Errorf("run fzf: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}
