package config

import (
	"os"
	"path/filepath"
	"strings"

	"fopen/internal/apps"

	"gopkg.in/yaml.v3"
)

// Overlay reads extra user-defined descriptors from a YAML file. Entries
// are appended to their category after the JSON layer has been applied.
type Overlay struct {
	path string
}

// overlayFile is the root YAML structure of apps.yaml
type overlayFile struct {
	Applications map[apps.Category][]apps.App `yaml:"applications"`
}

// NewOverlay creates an overlay store for the given path
func NewOverlay(path string) *Overlay {
	if strings.TrimSpace(path) == "" {
		path = OverlayPath()
	}
	return &Overlay{path: path}
}

// OverlayPath returns the default overlay file path
func OverlayPath() string {
	return filepath.Join(ConfigDir(), "apps.yaml")
}

// Load returns the per-category extra descriptors. A missing file is not
// an error; it simply contributes nothing.
func (o *Overlay) Load() (map[apps.Category][]apps.App, error) {
	data, err := os.ReadFile(o.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[apps.Category][]apps.App{}, nil
		}
		return nil, err
	}

	var file overlayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.Applications == nil {
		return map[apps.Category][]apps.App{}, nil
	}

	// Entries without a command would resolve to nothing; drop them here
	// so resolution never sees an empty command string.
	cleaned := make(map[apps.Category][]apps.App, len(file.Applications))
	for category, list := range file.Applications {
		for _, app := range list {
			app.Command = strings.TrimSpace(app.Command)
			if app.Command == "" {
				continue
			}
			if app.Label == "" {
				app.Label = app.Command
			}
			cleaned[category] = append(cleaned[category], app)
		}
	}
	return cleaned, nil
}
