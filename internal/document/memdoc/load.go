package memdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadText builds a document from plain text. Each line becomes a
// paragraph. Lines opening with 1-10 '#' marks and a space take the
// matching heading style, marks stripped.
func LoadText(text string, opts ...Option) *Doc {
	d := New(opts...)

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var content []rune
	styles := make([]string, 0, len(lines))
	for i, line := range lines {
		style := DefaultStyle
		if level, rest, ok := headingLine(line); ok {
			style = fmt.Sprintf("Heading %d", level)
			line = rest
		}
		if i > 0 {
			content = append(content, '\n')
		}
		content = append(content, []rune(line)...)
		styles = append(styles, style)
	}

	d.content = content
	d.styles = styles
	return d
}

// LoadFile reads path and builds a document from its contents. The
// title defaults to the file's base name and the URL to a file: URL
// unless options override them.
func LoadFile(path string, opts ...Option) (*Doc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("memdoc: load %s: %w", path, err)
	}

	d := LoadText(string(raw), opts...)
	if d.title == "" {
		d.title = filepath.Base(path)
	}
	if d.url == "" {
		if abs, err := filepath.Abs(path); err == nil {
			d.url = "file://" + filepath.ToSlash(abs)
		}
	}
	return d, nil
}

// headingLine reports whether line is a heading marker line and, if so,
// its level and the text after the marker.
func headingLine(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 10 {
		return 0, "", false
	}
	if level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	return level, line[level+1:], true
}
