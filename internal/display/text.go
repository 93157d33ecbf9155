package display

import (
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Title title-cases every word of s.
func Title(s string) string {
	return titleCaser.String(s)
}

// Ago renders t relative to now, e.g. "3 minutes ago". The zero time
// renders as "never".
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
