package display

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return WrapTo(text, DefaultWidth)
}

func WrapTo(text string, width int) string {
	return wordwrap.String(text, width)
}

// Indent wraps text to fit width after indenting every line by n spaces.
func Indent(text string, n, width int) string {
	return indent.String(WrapTo(text, width-n), uint(n))
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
