package markdown

import (
	"fmt"
	"strings"
)

// Section is one heading-delimited block of a document. The implicit root
// section has level 0 and an empty title; it collects text appearing before
// the first heading.
type Section struct {
	Level    int
	Title    string
	Line     int // heading line, 1-based; 0 for the root
	Body     []BodyLine
	Fences   []CodeFence
	Children []*Section
}

// BodyLine is a non-heading line attributed to a section.
type BodyLine struct {
	Number  int
	Text    string
	InFence bool
}

// CodeFence is a fenced code block found inside a section body. Content holds
// the interior lines without the delimiters.
type CodeFence struct {
	Line     int // opening delimiter line
	Info     string
	Language string // first token of Info, lowercased
	Content  []string
}

// Document is the parsed form of one input text. It is immutable once built.
type Document struct {
	Root     *Section
	LastLine int
}

// MalformedFenceError reports a code fence that was opened but never closed
// before end of input.
type MalformedFenceError struct {
	Line int
}

func (e *MalformedFenceError) Error() string {
	return fmt.Sprintf("unterminated code fence opened at line %d", e.Line)
}

// Walk visits every section in document order, root first.
func (d *Document) Walk(fn func(*Section)) {
	var visit func(*Section)
	visit = func(s *Section) {
		fn(s)
		for _, c := range s.Children {
			visit(c)
		}
	}
	visit(d.Root)
}

// NonEmptyBodyLines counts body lines with visible content.
func (s *Section) NonEmptyBodyLines() int {
	n := 0
	for _, l := range s.Body {
		if strings.TrimSpace(l.Text) != "" {
			n++
		}
	}
	return n
}

// Parse builds the section tree for the given source. Headings are lines of
// one to six '#' markers followed by whitespace and text; the marker count is
// the nesting level. Fenced code blocks are opaque: heading-shaped lines
// inside them stay body content. An unterminated fence aborts parsing with
// MalformedFenceError.
func Parse(source []byte) (*Document, error) {
	lines := splitLines(source)

	root := &Section{}
	stack := []*Section{root}

	inFence := false
	var fence *CodeFence
	var fenceMarker byte
	fenceLen := 0

	for i, text := range lines {
		num := i + 1
		cur := stack[len(stack)-1]

		if inFence {
			cur.Body = append(cur.Body, BodyLine{Number: num, Text: text, InFence: true})
			if closesFence(text, fenceMarker, fenceLen) {
				inFence = false
				fence = nil
			} else {
				fence.Content = append(fence.Content, text)
			}
			continue
		}

		if marker, length, info, ok := opensFence(text); ok {
			inFence = true
			fenceMarker = marker
			fenceLen = length
			cur.Body = append(cur.Body, BodyLine{Number: num, Text: text, InFence: true})
			cur.Fences = append(cur.Fences, CodeFence{
				Line:     num,
				Info:     info,
				Language: fenceLanguage(info),
			})
			fence = &cur.Fences[len(cur.Fences)-1]
			continue
		}

		if level, title, ok := parseHeading(text); ok {
			sec := &Section{Level: level, Title: title, Line: num}
			for len(stack) > 1 && stack[len(stack)-1].Level >= level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, sec)
			stack = append(stack, sec)
			continue
		}

		cur.Body = append(cur.Body, BodyLine{Number: num, Text: text})
	}

	if inFence {
		return nil, &MalformedFenceError{Line: fence.Line}
	}

	return &Document{Root: root, LastLine: len(lines)}, nil
}

func splitLines(source []byte) []string {
	if len(source) == 0 {
		return nil
	}
	lines := strings.Split(string(source), "\n")
	// A trailing newline produces one empty trailing element, not a line.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseHeading(line string) (level int, title string, ok bool) {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if i == 0 || i > 6 || i >= len(line) {
		return 0, "", false
	}
	if line[i] != ' ' && line[i] != '\t' {
		return 0, "", false
	}
	title = strings.TrimSpace(line[i:])
	if title == "" {
		return 0, "", false
	}
	return i, title, true
}

func opensFence(line string) (marker byte, length int, info string, ok bool) {
	trimmed, indent := trimFenceIndent(line)
	if trimmed == "" {
		return 0, 0, "", false
	}
	if indent > 3 {
		return 0, 0, "", false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return 0, 0, "", false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return 0, 0, "", false
	}
	info = strings.TrimSpace(trimmed[n:])
	// An opening backtick fence cannot carry backticks in its info string.
	if c == '`' && strings.Contains(info, "`") {
		return 0, 0, "", false
	}
	return c, n, info, true
}

func closesFence(line string, marker byte, openLen int) bool {
	trimmed, indent := trimFenceIndent(line)
	if indent > 3 {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == marker {
		n++
	}
	if n < openLen {
		return false
	}
	return strings.TrimSpace(trimmed[n:]) == ""
}

func trimFenceIndent(line string) (string, int) {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	return line[indent:], indent
}

func fenceLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
