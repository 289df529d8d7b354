package picker

import (
	"testing"

	"fopen/internal/apps"
	"fopen/internal/classify"
	"fopen/internal/config"
)

// stubClassifier returns a fixed class for every path
type stubClassifier struct {
	class classify.Class
}

func (s stubClassifier) Classify(string) classify.Class { return s.class }

// stubChooser records the candidates it saw and returns a canned choice
type stubChooser struct {
	command    string
	ok         bool
	candidates []apps.App
}

func (s *stubChooser) Choose(candidates []apps.App) (string, bool) {
	s.candidates = candidates
	return s.command, s.ok
}

// stubDispatcher records which dispatch path was taken
type stubDispatcher struct {
	directiveDir string
	launched     string
	terminal     bool
	launchPath   string
	fallbackPath string
}

func (s *stubDispatcher) ShellDirective(dir string) { s.directiveDir = dir }

func (s *stubDispatcher) Launch(command string, terminal bool, path string) {
	s.launched = command
	s.terminal = terminal
	s.launchPath = path
}

func (s *stubDispatcher) OpenFallback(path string) { s.fallbackPath = path }

func testPicker(class classify.Class, chooser *stubChooser, dispatcher *stubDispatcher, installed ...string) *Picker {
	set := make(map[string]bool, len(installed))
	for _, n := range installed {
		set[n] = true
	}
	available := func(command string) bool { return set[command] }

	cfg := config.Default()
	return &Picker{
		cfg:        cfg,
		resolver:   apps.NewResolver(cfg.Applications, available),
		classifier: stubClassifier{class: class},
		selector:   chooser,
		launcher:   dispatcher,
		available:  available,
		state:      StateIdle,
	}
}

func TestOpenDispatchesSelection(t *testing.T) {
	chooser := &stubChooser{command: "nvim", ok: true}
	dispatcher := &stubDispatcher{}
	p := testPicker(classify.Text, chooser, dispatcher, "nvim", "vim")

	code := p.Open("notes.txt")

	if code != ExitOK {
		t.Errorf("expected exit 0, got %d", code)
	}
	if dispatcher.launched != "nvim" {
		t.Errorf("expected nvim launched, got %q", dispatcher.launched)
	}
	if !dispatcher.terminal {
		t.Error("nvim should be dispatched attached")
	}
	if dispatcher.launchPath != "notes.txt" {
		t.Errorf("unexpected path %q", dispatcher.launchPath)
	}
	if p.state != StateDone {
		t.Errorf("expected done state, got %s", p.state)
	}
}

func TestOpenFallsBackWhenNothingInstalled(t *testing.T) {
	// A pdf with no installed viewer goes straight to the generic opener.
	chooser := &stubChooser{}
	dispatcher := &stubDispatcher{}
	p := testPicker(classify.PDF, chooser, dispatcher)

	code := p.Open("paper.pdf")

	if code != ExitOK {
		t.Errorf("expected exit 0, got %d", code)
	}
	if dispatcher.fallbackPath != "paper.pdf" {
		t.Errorf("expected fallback dispatch, got %q", dispatcher.fallbackPath)
	}
	if chooser.candidates != nil {
		t.Error("no selection prompt should appear without candidates")
	}
	if p.state != StateDone {
		t.Errorf("fallback dispatch is still done, got %s", p.state)
	}
}

func TestOpenFallsBackForUnknownClass(t *testing.T) {
	dispatcher := &stubDispatcher{}
	p := testPicker(classify.Other, &stubChooser{}, dispatcher, "nvim")

	p.Open("blob.bin")

	if dispatcher.fallbackPath != "blob.bin" {
		t.Errorf("unclassified entries go to the generic opener, got %q", dispatcher.fallbackPath)
	}
}

func TestOpenCancelledSelection(t *testing.T) {
	chooser := &stubChooser{ok: false}
	dispatcher := &stubDispatcher{}
	p := testPicker(classify.Text, chooser, dispatcher, "nvim")

	code := p.Open("notes.txt")

	if code != ExitOK {
		t.Errorf("cancellation is a clean exit, got %d", code)
	}
	if dispatcher.launched != "" || dispatcher.fallbackPath != "" {
		t.Error("nothing should be dispatched after cancellation")
	}
	if p.state != StateCancelled {
		t.Errorf("expected cancelled state, got %s", p.state)
	}
}

func TestOpenDirectoryShellDirective(t *testing.T) {
	chooser := &stubChooser{command: apps.ShellHereCommand, ok: true}
	dispatcher := &stubDispatcher{}
	p := testPicker(classify.Directory, chooser, dispatcher, "nautilus", "nvim")

	code := p.Open("projects")

	if code != ExitOK {
		t.Errorf("expected exit 0, got %d", code)
	}
	if dispatcher.directiveDir != "projects" {
		t.Errorf("expected shell directive for projects, got %q", dispatcher.directiveDir)
	}
	if dispatcher.launched != "" {
		t.Errorf("the pseudo-action must not spawn a process, got %q", dispatcher.launched)
	}
}

func TestOpenDirectoryCandidateOrder(t *testing.T) {
	chooser := &stubChooser{command: apps.ShellHereCommand, ok: true}
	p := testPicker(classify.Directory, chooser, &stubDispatcher{}, "nautilus", "nvim")

	p.Open("projects")

	if len(chooser.candidates) != 3 {
		t.Fatalf("expected cd, nautilus, nvim as candidates, got %v", chooser.candidates)
	}
	if chooser.candidates[0].Command != apps.ShellHereCommand {
		t.Errorf("the shell pseudo-action comes first, got %s", chooser.candidates[0].Command)
	}
	if chooser.candidates[1].Command != "nautilus" {
		t.Errorf("file managers come before editors, got %s", chooser.candidates[1].Command)
	}
	if chooser.candidates[2].Command != "nvim" {
		t.Errorf("editors come last, got %s", chooser.candidates[2].Command)
	}
}

func TestOpenDirectoryWithNothingInstalled(t *testing.T) {
	// Even with no file manager or editor, directories keep the
	// pseudo-action candidate.
	chooser := &stubChooser{command: apps.ShellHereCommand, ok: true}
	dispatcher := &stubDispatcher{}
	p := testPicker(classify.Directory, chooser, dispatcher)

	p.Open("projects")

	if len(chooser.candidates) != 1 || chooser.candidates[0].Command != apps.ShellHereCommand {
		t.Errorf("expected only the pseudo-action, got %v", chooser.candidates)
	}
	if dispatcher.directiveDir != "projects" {
		t.Errorf("expected the shell directive, got %q", dispatcher.directiveDir)
	}
}

func TestOpenDetachedViewer(t *testing.T) {
	chooser := &stubChooser{command: "loupe", ok: true}
	dispatcher := &stubDispatcher{}
	p := testPicker(classify.Image, chooser, dispatcher, "loupe")

	p.Open("photo.png")

	if dispatcher.launched != "loupe" {
		t.Errorf("expected loupe launched, got %q", dispatcher.launched)
	}
	if dispatcher.terminal {
		t.Error("image viewers dispatch detached")
	}
}

func TestRunRequiresFzf(t *testing.T) {
	p := testPicker(classify.Text, &stubChooser{}, &stubDispatcher{})

	if code := p.Run(false, ""); code != ExitError {
		t.Errorf("a missing fzf is a hard error, got %d", code)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateClassified, "classified"},
		{StateResolved, "resolved"},
		{StateSelecting, "selecting"},
		{StateDispatched, "dispatched"},
		{StateDone, "done"},
		{StateCancelled, "cancelled"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestNewWiresCollaborators(t *testing.T) {
	p := New(config.Default())

	if p.resolver == nil || p.classifier == nil || p.selector == nil || p.launcher == nil || p.finder == nil {
		t.Error("New should wire every collaborator")
	}
	if p.state != StateIdle {
		t.Errorf("a fresh picker starts idle, got %s", p.state)
	}
}
