// Package picker drives the top-level flow: pick an entry, classify it,
// resolve candidate applications, select one, dispatch it.
package picker

import (
	"fmt"
	"os"

	"fopen/internal/apps"
	"fopen/internal/classify"
	"fopen/internal/config"
	"fopen/internal/finder"
	"fopen/internal/launcher"
	"fopen/internal/selector"
)

// State tracks the orchestrator's progress through one invocation
type State int

const (
	StateIdle State = iota
	StateClassified
	StateResolved
	StateSelecting
	StateDispatched
	StateDone      // Terminal: dispatch attempted
	StateCancelled // Terminal: nothing dispatched
)

// String returns the state name for debug output
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClassified:
		return "classified"
	case StateResolved:
		return "resolved"
	case StateSelecting:
		return "selecting"
	case StateDispatched:
		return "dispatched"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Exit codes
const (
	ExitOK        = 0
	ExitError     = 1
	ExitInterrupt = 130
)

// chooser selects one command from a candidate list
type chooser interface {
	Choose(candidates []apps.App) (string, bool)
}

// dispatcher launches the chosen program or emits the shell directive
type dispatcher interface {
	ShellDirective(dir string)
	Launch(command string, terminal bool, path string)
	OpenFallback(path string)
}

// Picker is the orchestrator over all collaborators
type Picker struct {
	cfg        *config.Config
	resolver   *apps.Resolver
	classifier classify.Classifier
	selector   chooser
	launcher   dispatcher
	finder     *finder.Finder
	available  apps.Availability

	state State
	Debug bool
}

// New wires a picker over the effective configuration
func New(cfg *config.Config) *Picker {
	available := apps.IsCommandAvailable
	return &Picker{
		cfg:        cfg,
		resolver:   apps.NewResolver(cfg.Applications, available),
		classifier: classify.New(cfg.FileTypes, available),
		selector:   selector.New(cfg.Interface.UseFzfForAppSelection),
		launcher:   launcher.New(),
		finder:     finder.New(cfg.Search, available),
		available:  available,
		state:      StateIdle,
	}
}

// Run executes one full pick-and-open cycle and returns the exit code.
// previewCmd is the command fzf should run to render its preview pane.
func (p *Picker) Run(showHidden bool, previewCmd string) int {
	// The selector has a numbered fallback; the pick pipeline does not.
	if !p.available("fzf") {
		fmt.Fprintln(os.Stderr, "Error: fzf is required but not found in PATH")
		return ExitError
	}

	path, err := p.finder.Pick(showHidden, p.cfg.Interface, previewCmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		p.setState(StateCancelled)
		return ExitError
	}
	if path == "" {
		p.setState(StateCancelled)
		return ExitOK
	}

	return p.Open(path)
}

// Open classifies path, resolves and selects a candidate, and dispatches
// it. Exposed separately from Run so the flow can be driven without the
// interactive pick pipeline.
func (p *Picker) Open(path string) int {
	class := p.classifier.Classify(path)
	p.setState(StateClassified)
	p.debugf("classified %q as %s", path, class)

	candidates, ok := p.resolveCandidates(class)
	if !ok {
		// No category or nothing installed: generic opener, no prompt.
		p.launcher.OpenFallback(path)
		p.setState(StateDispatched)
		p.setState(StateDone)
		return ExitOK
	}
	p.setState(StateResolved)

	p.setState(StateSelecting)
	command, chosen := p.choose(candidates)
	if !chosen {
		fmt.Fprintln(os.Stderr, "Cancelled.")
		p.setState(StateCancelled)
		return ExitOK
	}

	if command.Command == apps.ShellHereCommand {
		p.launcher.ShellDirective(path)
	} else {
		p.launcher.Launch(command.Command, command.Terminal, path)
	}
	p.setState(StateDispatched)
	p.setState(StateDone)
	return ExitOK
}

// resolveCandidates returns the candidate list for a class. Directories
// combine the shell pseudo-action with file managers and text editors,
// in that order. The false return means "use the generic opener".
func (p *Picker) resolveCandidates(class classify.Class) ([]apps.App, bool) {
	if class == classify.Directory {
		var candidates []apps.App
		candidates = append(candidates, p.resolver.Resolve(apps.DirectoryActions)...)
		candidates = append(candidates, p.resolver.Resolve(apps.FileManagers)...)
		candidates = append(candidates, p.resolver.Resolve(apps.TextEditors)...)
		return candidates, true
	}

	category, ok := classify.CategoryFor(class)
	if !ok {
		return nil, false
	}
	candidates := p.resolver.Resolve(category)
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates, true
}

// choose runs the selection engine and maps the chosen command string
// back to its descriptor.
func (p *Picker) choose(candidates []apps.App) (apps.App, bool) {
	command, ok := p.selector.Choose(candidates)
	if !ok {
		return apps.App{}, false
	}
	for _, app := range candidates {
		if app.Command == command {
			return app, true
		}
	}
	return apps.App{}, false
}

func (p *Picker) setState(s State) {
	p.state = s
	p.debugf("state: %s", s)
}

func (p *Picker) debugf(format string, args ...interface{}) {
	if p.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}
