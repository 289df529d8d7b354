// Package apps defines the application descriptor model and resolves
// which candidate programs are actually installed for a category.
package apps

import (
	"os/exec"
)

// App describes one candidate program for a category
type App struct {
	Command  string `json:"command" yaml:"command"`   // Executable name or path
	Label    string `json:"label" yaml:"label"`       // Human-readable display name
	Terminal bool   `json:"terminal" yaml:"terminal"` // Runs attached to the invoking terminal
	Priority int    `json:"priority" yaml:"priority"` // Lower value = preferred
}

// Category is a named class of user intent mapped to candidate programs
type Category string

const (
	TextEditors      Category = "text_editors"
	FileManagers     Category = "file_managers"
	ImageViewers     Category = "image_viewers"
	PDFViewers       Category = "pdf_viewers"
	DirectoryActions Category = "directory_actions"
)

// ShellHereCommand is the pseudo-action that emits a cd directive instead
// of launching a program. It is always considered available.
const ShellHereCommand = "cd"

// ShellHereAction returns the "open a shell at this location" pseudo-action
func ShellHereAction() App {
	return App{
		Command:  ShellHereCommand,
		Label:    "Open in terminal",
		Terminal: true,
		Priority: 0,
	}
}

// EnvCategories maps environment override variables to their category.
// Each set variable prepends a highest-priority custom descriptor.
var EnvCategories = map[string]Category{
	"FOPEN_TEXT_EDITOR":  TextEditors,
	"FOPEN_FILE_MANAGER": FileManagers,
	"FOPEN_IMAGE_VIEWER": ImageViewers,
	"FOPEN_PDF_VIEWER":   PDFViewers,
}

// Availability reports whether a named executable can be resolved in the
// execution environment. The environment is assumed immutable during a
// single invocation, so one consistent probe per resolution pass suffices.
type Availability func(command string) bool

// IsCommandAvailable checks if a command exists in PATH
func IsCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
