// Package config builds the effective configuration from layered sources:
// built-in defaults, environment overrides, the persisted JSON file, and
// an optional YAML descriptor overlay. The result is constructed once per
// invocation and treated as read-only afterwards.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fopen/internal/apps"
)

// Config is the fully merged configuration used for all resolution decisions
type Config struct {
	Applications map[apps.Category][]apps.App `json:"applications"`
	FileTypes    map[string][]string          `json:"file_types"`
	Search       SearchConfig                 `json:"search"`
	Interface    InterfaceConfig              `json:"interface"`
}

// SearchConfig controls directory enumeration
type SearchConfig struct {
	ExcludedDirs     []string `json:"excluded_dirs"`
	UseFdIfAvailable bool     `json:"use_fd_if_available"`
	FollowSymlinks   bool     `json:"follow_symlinks"`
}

// InterfaceConfig holds fuzzy-selector preferences
type InterfaceConfig struct {
	UseFzfForAppSelection bool   `json:"use_fzf_for_app_selection"`
	FzfHeight             string `json:"fzf_height"`
	PreviewEnabled        bool   `json:"preview_enabled"`
}

// configFileName is the name of the persisted config file
const configFileName = "config.json"

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Applications: map[apps.Category][]apps.App{
			apps.TextEditors: {
				{Command: "nvim", Label: "NeoVim", Terminal: true, Priority: 1},
				{Command: "vim", Label: "Vim", Terminal: true, Priority: 2},
				{Command: "code", Label: "Visual Studio Code", Terminal: false, Priority: 3},
				{Command: "gedit", Label: "Text Editor (GTK)", Terminal: false, Priority: 4},
				{Command: "kate", Label: "Kate Editor", Terminal: false, Priority: 5},
			},
			apps.FileManagers: {
				{Command: "nautilus", Label: "Files (GNOME)", Terminal: false, Priority: 1},
				{Command: "dolphin", Label: "Dolphin (KDE)", Terminal: false, Priority: 2},
				{Command: "thunar", Label: "Thunar (XFCE)", Terminal: false, Priority: 3},
			},
			apps.ImageViewers: {
				{Command: "loupe", Label: "Loupe", Terminal: false, Priority: 1},
				{Command: "eog", Label: "Eye of GNOME", Terminal: false, Priority: 2},
				{Command: "feh", Label: "Feh", Terminal: false, Priority: 3},
			},
			apps.PDFViewers: {
				{Command: "okular", Label: "Okular", Terminal: false, Priority: 1},
				{Command: "evince", Label: "Evince", Terminal: false, Priority: 2},
				{Command: "zathura", Label: "Zathura", Terminal: true, Priority: 3},
			},
			apps.DirectoryActions: {
				apps.ShellHereAction(),
			},
		},
		FileTypes: map[string][]string{
			"text": {
				"text/",
				"application/json",
				"application/xml",
				"application/javascript",
				"application/x-yaml",
				"application/x-shellscript",
				"inode/x-empty",
			},
			"images": {"image/"},
			"pdf":    {"application/pdf"},
		},
		Search: SearchConfig{
			ExcludedDirs:     []string{".git", "node_modules", ".vscode", ".idea", "dist", "build", "target", ".cache"},
			UseFdIfAvailable: true,
			FollowSymlinks:   true,
		},
		Interface: InterfaceConfig{
			UseFzfForAppSelection: true,
			FzfHeight:             "90%",
			PreviewEnabled:        true,
		},
	}
}

// ConfigDir returns the directory containing fopen config files,
// honoring XDG_CONFIG_HOME.
func ConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "fopen")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "fopen")
}

// ConfigPath returns the path to the persisted config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Load builds the effective configuration. It never fails: a malformed
// persisted file is recovered by warning and continuing with the layers
// already applied.
func Load() *Config {
	return load(ConfigPath(), OverlayPath())
}

// load merges the layers in order: defaults, environment, file, overlay.
func load(configPath, overlayPath string) *Config {
	cfg := Default()
	applyEnv(cfg)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := mergeFile(cfg, data); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load config file: %v\n", err)
		}
	}

	overlay, err := NewOverlay(overlayPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load apps overlay: %v\n", err)
	}
	for category, extra := range overlay {
		cfg.Applications[category] = append(cfg.Applications[category], extra...)
	}

	return cfg
}

// applyEnv applies environment-variable overrides. Category variables
// prepend a priority-0 descriptor; scalar variables replace wholesale.
func applyEnv(cfg *Config) {
	for envVar, category := range apps.EnvCategories {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		custom := apps.App{
			Command:  value,
			Label:    "Custom " + value,
			Terminal: false,
			Priority: 0,
		}
		cfg.Applications[category] = append([]apps.App{custom}, cfg.Applications[category]...)
	}

	if height := os.Getenv("FOPEN_FZF_HEIGHT"); height != "" {
		cfg.Interface.FzfHeight = height
	}

	if excludes := os.Getenv("FOPEN_EXCLUDE_DIRS"); excludes != "" {
		cfg.Search.ExcludedDirs = strings.Split(excludes, ":")
	}
}

// fileConfig mirrors the persisted JSON schema with optional fields so
// absent keys can be told apart from zero values.
type fileConfig struct {
	Applications map[apps.Category][]apps.App `json:"applications"`
	FileTypes    map[string][]string          `json:"file_types"`
	Search       *fileSearch                  `json:"search"`
	Interface    *fileInterface               `json:"interface"`
}

type fileSearch struct {
	ExcludedDirs     *[]string `json:"excluded_dirs"`
	UseFdIfAvailable *bool     `json:"use_fd_if_available"`
	FollowSymlinks   *bool     `json:"follow_symlinks"`
}

type fileInterface struct {
	UseFzfForAppSelection *bool   `json:"use_fzf_for_app_selection"`
	FzfHeight             *string `json:"fzf_height"`
	PreviewEnabled        *bool   `json:"preview_enabled"`
}

// mergeFile applies the persisted file on top of cfg. Mappings merge
// recursively; every other value present in the file replaces the current
// value wholesale, descriptor lists included.
func mergeFile(cfg *Config, data []byte) error {
	var file fileConfig
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}

	for category, list := range file.Applications {
		cfg.Applications[category] = list
	}
	for class, rules := range file.FileTypes {
		cfg.FileTypes[class] = rules
	}

	if s := file.Search; s != nil {
		if s.ExcludedDirs != nil {
			cfg.Search.ExcludedDirs = *s.ExcludedDirs
		}
		if s.UseFdIfAvailable != nil {
			cfg.Search.UseFdIfAvailable = *s.UseFdIfAvailable
		}
		if s.FollowSymlinks != nil {
			cfg.Search.FollowSymlinks = *s.FollowSymlinks
		}
	}
	if i := file.Interface; i != nil {
		if i.UseFzfForAppSelection != nil {
			cfg.Interface.UseFzfForAppSelection = *i.UseFzfForAppSelection
		}
		if i.FzfHeight != nil {
			cfg.Interface.FzfHeight = *i.FzfHeight
		}
		if i.PreviewEnabled != nil {
			cfg.Interface.PreviewEnabled = *i.PreviewEnabled
		}
	}

	return nil
}

// WriteDefault writes a freshly generated default configuration to the
// standard config path and returns it.
func WriteDefault() (string, error) {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", err
	}
	return configPath, nil
}
