// Package markup renders the small emphasis syntax lesson content may
// carry. Only **bold** and *italic* are interpreted; everything else is
// printed as text after terminal control characters are removed.
package markup

import (
	"regexp"
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*\n]+?)\*`)
)

// Sanitize drops control characters (including ESC, so no terminal
// sequence survives) while keeping newlines and tabs.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Render sanitizes s, applies base to plain runs and layers bold or
// italic on marked spans. Unclosed markers are left as literal text.
func Render(s string, base lipgloss.Style) string {
	s = Sanitize(strings.ReplaceAll(s, "\r\n", "\n"))

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = renderLine(line, base)
	}
	return strings.Join(lines, "\n")
}

// Plain strips the markers and returns sanitized text.
func Plain(s string) string {
	s = Sanitize(s)
	s = boldRe.ReplaceAllString(s, "$1")
	return italicRe.ReplaceAllString(s, "$1")
}

type span struct {
	text   string
	bold   bool
	italic bool
}

func renderLine(line string, base lipgloss.Style) string {
	if line == "" {
		return ""
	}
	var b strings.Builder
	for _, sp := range parse(line) {
		st := base
		if sp.bold {
			st = st.Bold(true)
		}
		if sp.italic {
			st = st.Italic(true)
		}
		b.WriteString(st.Render(sp.text))
	}
	return b.String()
}

func parse(line string) []span {
	var out []span
	for _, bs := range split(line, boldRe) {
		if bs.marked {
			out = append(out, span{text: bs.text, bold: true})
			continue
		}
		for _, is := range split(bs.text, italicRe) {
			out = append(out, span{text: is.text, italic: is.marked})
		}
	}
	return out
}

type piece struct {
	text   string
	marked bool
}

func split(s string, re *regexp.Regexp) []piece {
	var out []piece
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			out = append(out, piece{text: s[last:m[0]]})
		}
		out = append(out, piece{text: s[m[2]:m[3]], marked: true})
		last = m[1]
	}
	if last < len(s) {
		out = append(out, piece{text: s[last:]})
	}
	return out
}
