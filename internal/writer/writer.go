// Package writer renders readings as Obsidian-friendly Markdown files with
// YAML frontmatter.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/arcanaland/diviner/internal/reading"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	collapseWhitespace  = regexp.MustCompile(`\s+`)
)

// Writer saves readings into a target directory. A Writer with an empty
// directory is a no-op, matching the unconfigured-save-path behavior.
type Writer struct {
	Dir string
}

// New returns a Writer saving into dir.
func New(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Save writes the reading as a Markdown file and returns its path. When no
// directory is configured it returns an empty path and no error. The title
// is used for both the document heading and the filename; pass an empty
// title to use a deterministic fallback.
func (w *Writer) Save(r *reading.Reading, title string) (string, error) {
	if w.Dir == "" {
		return "", nil
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating save directory: %w", err)
	}

	now := r.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	if title == "" {
		title = fmt.Sprintf("%s Reading %s", r.Spread.Name, now.Format("2006-01-02"))
	}

	content := Render(r, title, now)

	// Colons are replaced in the timestamp for cross-platform safety.
	filename := fmt.Sprintf("%s - %s.md", now.Format("2006-01-02 15-04-05"), sanitizeFilename(title))
	path := filepath.Join(w.Dir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing reading: %w", err)
	}
	return path, nil
}

// Render produces the full Markdown document for a reading.
func Render(r *reading.Reading, title string, now time.Time) string {
	created := now.Format("2006-01-02 15:04:05")

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", yamlSafe(title))
	b.WriteString("aliases: []\n")
	b.WriteString("tags: [tarot]\n")
	fmt.Fprintf(&b, "created: %q\n", created)
	fmt.Fprintf(&b, "modified: %q\n", created)
	fmt.Fprintf(&b, "tarot_type: %q\n", r.Spread.Key)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Spread: %s\n\n", r.Spread.Name)
	b.WriteString("## Cards\n")
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "- %d. %s (%s) - %s\n", e.Position.Index, e.Card.Name, e.Orientation, e.Position.Label)
		text := e.Interpretation
		if text == "" {
			text = e.Meaning
		}
		if text != "" {
			fmt.Fprintf(&b, "  - %s\n", text)
		}
	}
	if r.Summary != "" {
		b.WriteString("\n## Summary\n")
		b.WriteString(r.Summary)
		b.WriteString("\n")
	}

	return b.String()
}

func yamlSafe(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func sanitizeFilename(name string) string {
	safe := unsafeFilenameChars.ReplaceAllString(name, "_")
	safe = strings.TrimSpace(collapseWhitespace.ReplaceAllString(safe, " "))
	// Truncate on rune boundaries so a multi-byte title cannot produce an
	// invalid-UTF-8 filename.
	if runes := []rune(safe); len(runes) > 120 {
		safe = string(runes[:120])
	}
	return safe
}
