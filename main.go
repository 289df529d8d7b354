package main

import (
	"fmt"
	"os"
	"os/signal"

	"fopen/internal/config"
	"fopen/internal/picker"
	"fopen/internal/preview"

	"github.com/spf13/cobra"
)

// Version info (set by ldflags)
var (
	version = "dev"
)

var (
	showHidden  bool
	writeConfig bool
	previewPath string
	debugMode   bool
)

func main() {
	root := &cobra.Command{
		Use:           "fopen",
		Short:         "Fuzzy file opener",
		Long:          "fopen picks a file or directory with fzf and opens it with the right application.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	root.Flags().BoolVar(&showHidden, "hidden", false, "show hidden files during search")
	root.Flags().BoolVar(&writeConfig, "write-config", false, "write the default configuration file and exit")
	root.Flags().StringVar(&previewPath, "preview", "", "render a preview for a path and exit")
	root.Flags().BoolVar(&debugMode, "debug", false, "log state transitions to stderr")
	_ = root.Flags().MarkHidden("preview")
	_ = root.Flags().MarkHidden("debug")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(picker.ExitError)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if writeConfig {
		path, err := config.WriteDefault()
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("Created default config at: %s\n", path)
		return nil
	}

	if previewPath != "" {
		return preview.Render(os.Stdout, previewPath)
	}

	// An interrupt while a collaborator holds the terminal is a
	// cancellation, not a failure.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		fmt.Fprintln(os.Stderr, "\nCancelled.")
		os.Exit(picker.ExitInterrupt)
	}()

	cfg := config.Load()
	p := picker.New(cfg)
	p.Debug = debugMode

	if code := p.Run(showHidden, previewCommand()); code != picker.ExitOK {
		os.Exit(code)
	}
	return nil
}

// previewCommand returns the command fzf should run for its preview pane:
// this binary, in preview mode.
func previewCommand() string {
	exe, err := os.Executable()
	if err != nil {
		exe = "fopen"
	}
	return exe + " --preview"
}
