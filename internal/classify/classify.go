// Package classify maps a filesystem entry to a semantic file class.
package classify

import (
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"fopen/internal/apps"
)

// Class is the closed set of semantic file classes
type Class int

const (
	Other Class = iota
	Text
	Image
	PDF
	Directory
)

// String returns a human-readable class name
func (c Class) String() string {
	switch c {
	case Text:
		return "text"
	case Image:
		return "image"
	case PDF:
		return "pdf"
	case Directory:
		return "directory"
	default:
		return "other"
	}
}

// Classifier maps a filesystem entry to a class. Total and side-effect
// free from the caller's point of view.
type Classifier interface {
	Classify(path string) Class
}

// ruleClasses pairs the configured rule-list keys with their class, in
// evaluation order.
var ruleClasses = []struct {
	key   string
	class Class
}{
	{"text", Text},
	{"images", Image},
	{"pdf", PDF},
}

// FileClassifier classifies entries by shelling out to the file utility,
// with a built-in extension table as fallback.
type FileClassifier struct {
	rules     map[string][]string
	available apps.Availability
}

// New creates a classifier over the configured per-class MIME rules
func New(rules map[string][]string, available apps.Availability) *FileClassifier {
	if available == nil {
		available = apps.IsCommandAvailable
	}
	return &FileClassifier{rules: rules, available: available}
}

// Classify returns the class for a path. Anything unreadable or unmatched
// is Other.
func (c *FileClassifier) Classify(path string) Class {
	info, err := os.Stat(path)
	if err != nil {
		return Other
	}
	if info.IsDir() {
		return Directory
	}

	mimeType := c.detectMIME(path)
	if mimeType == "" {
		return Other
	}

	for _, rc := range ruleClasses {
		if MatchesAny(c.rules[rc.key], mimeType) {
			return rc.class
		}
	}
	return Other
}

// detectMIME queries the file utility, falling back to the extension table
func (c *FileClassifier) detectMIME(path string) string {
	if c.available("file") {
		out, err := exec.Command("file", "--brief", "--mime-type", "--", path).Output()
		if err == nil {
			if mimeType := strings.TrimSpace(string(out)); mimeType != "" {
				return mimeType
			}
		}
	}
	return MIMEByExtension(path)
}

// MIMEByExtension guesses a MIME type from the file extension alone.
// Unknown extensions yield application/octet-stream.
func MIMEByExtension(path string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		return "application/octet-stream"
	}
	// TypeByExtension may attach parameters ("text/plain; charset=utf-8")
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

// MatchesAny reports whether a MIME type matches any rule in the list.
// A rule ending in "/" is a prefix rule; anything else is an exact rule.
// The two are evaluated independently, never inferred from list order.
func MatchesAny(rules []string, mimeType string) bool {
	for _, rule := range rules {
		if strings.HasSuffix(rule, "/") {
			if strings.HasPrefix(mimeType, rule) {
				return true
			}
		} else if mimeType == rule {
			return true
		}
	}
	return false
}

// CategoryFor maps a file class to the category that opens it. The false
// return marks classes with no category: they go to the generic opener.
func CategoryFor(class Class) (apps.Category, bool) {
	switch class {
	case Text:
		return apps.TextEditors, true
	case Image:
		return apps.ImageViewers, true
	case PDF:
		return apps.PDFViewers, true
	default:
		return "", false
	}
}
