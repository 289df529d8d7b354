// Package preview renders the fzf preview pane for a filesystem entry:
// a listing for directories, highlighted source for text files, and a
// MIME one-liner for everything else.
package preview

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fopen/internal/classify"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	maxEntries = 50
	maxBytes   = 64 * 1024
)

// Render writes the preview for path to w
func Render(w io.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		return renderDir(w, path)
	}
	return renderFile(w, path)
}

// renderDir lists up to maxEntries directory entries, directories first
// marked with a trailing separator.
func renderDir(w io.Writer, path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", path, err)
	}

	for i, entry := range entries {
		if i >= maxEntries {
			fmt.Fprintf(w, "... and %d more entries\n", len(entries)-maxEntries)
			break
		}
		name := entry.Name()
		if entry.IsDir() {
			name += string(os.PathSeparator)
		}
		fmt.Fprintln(w, name)
	}
	return nil
}

func renderFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if bytes.IndexByte(data, 0) >= 0 {
		fmt.Fprintln(w, classify.MIMEByExtension(path))
		return nil
	}

	return highlight(w, string(data), path)
}

// highlight writes syntax-highlighted source using the lexer matched to
// the file name; unknown formats pass through unstyled.
func highlight(w io.Writer, source, path string) error {
	lexer := getLexerForFile(filepath.Base(path))
	if lexer == nil {
		_, err := io.WriteString(w, source)
		return err
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		_, err := io.WriteString(w, source)
		return err
	}

	formatter := formatters.Get("terminal256")
	style := styles.Get("catppuccin-mocha")
	if style == nil {
		style = styles.Fallback
	}
	return formatter.Format(w, style, iterator)
}

// getLexerForFile returns the appropriate lexer for a filename
func getLexerForFile(filename string) chroma.Lexer {
	if lexer := lexers.Match(filename); lexer != nil {
		return lexer
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".conf", ".cfg", ".ini":
		return lexers.Get("ini")
	case ".zsh":
		return lexers.Get("bash")
	default:
		return nil
	}
}
