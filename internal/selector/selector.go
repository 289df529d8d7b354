// Package selector presents an ordered candidate list to the user and
// returns the chosen command. The interactive path delegates to an
// external fzf process; a deterministic numbered menu covers everything
// else.
package selector

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"fopen/internal/apps"
	"fopen/internal/ui"
)

// choiceSeparator joins command and label on each fzf line
const choiceSeparator = " :: "

// menuHeight is the fzf height for the compact application menu; the
// configurable height belongs to the main pick pipeline, not this one.
const menuHeight = "40%"

// Selector chooses one application from a resolved candidate list
type Selector struct {
	UseFzf bool

	available apps.Availability
	runFzf    func(input string) (string, error)
	in        io.Reader
	out       io.Writer
}

// New creates a selector honoring the interface preferences
func New(useFzf bool) *Selector {
	return &Selector{
		UseFzf:    useFzf,
		available: apps.IsCommandAvailable,
		runFzf:    runFzfCommand,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// Choose returns the selected command, or false when the user cancelled,
// input ended, or there was nothing to choose from. The candidate list is
// never mutated and repeated calls with the same input choose the same way.
func (s *Selector) Choose(candidates []apps.App) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	if s.UseFzf && s.available("fzf") {
		if command, ok := s.chooseFzf(candidates); ok {
			return command, true
		}
		// A non-zero exit or empty choice from fzf is a cancellation,
		// not a reason to re-prompt.
		return "", false
	}

	return s.chooseMenu(candidates)
}

// chooseFzf feeds "{command} :: {label}" lines to fzf in candidate order
// and parses the command token back out of the chosen line.
func (s *Selector) chooseFzf(candidates []apps.App) (string, bool) {
	var lines []string
	for _, app := range candidates {
		lines = append(lines, app.Command+choiceSeparator+app.Label)
	}

	selected, err := s.runFzf(strings.Join(lines, "\n"))
	if err != nil {
		return "", false
	}
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return "", false
	}

	command, _, _ := strings.Cut(selected, choiceSeparator)
	return command, command != ""
}

// runFzfCommand runs the external fzf collaborator. fzf draws on the
// controlling terminal, so only stdout is captured.
func runFzfCommand(input string) (string, error) {
	cmd := exec.Command("fzf", "--prompt=Open with: ", "--height="+menuHeight, "--reverse")
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// chooseMenu prints a numbered menu and reads one integer selection.
// Non-numeric input, an out-of-range index, or end-of-input all map to
// no selection.
func (s *Selector) chooseMenu(candidates []apps.App) (string, bool) {
	fmt.Fprintln(s.out, ui.PromptStyle.Render("Choose the best option:"))
	for i, app := range candidates {
		number := ui.MenuNumberStyle.Render(fmt.Sprintf("%d)", i+1))
		fmt.Fprintf(s.out, "  %s %s\n", number, app.Label)
	}
	fmt.Fprintf(s.out, "Number [1-%d]: ", len(candidates))

	reader := bufio.NewReader(s.in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || choice < 1 || choice > len(candidates) {
		return "", false
	}
	return candidates[choice-1].Command, true
}
