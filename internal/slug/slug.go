// Package slug turns folder and file names into compact identifier fragments.
package slug

import (
	"strings"
	"unicode"
)

var separators = strings.NewReplacer(" ", "", "_", "", "-", "")

// Slugify title-cases every word of s and drops spaces, underscores and
// hyphens: "daily-status" becomes "DailyStatus", "2021_01_04" becomes
// "20210104". A word is a run of letters; any other rune ends it and is
// kept unchanged unless it is a separator.
//
// Distinct inputs can collapse to the same slug ("a-b" and "a_b"); callers
// get the same identifier for both.
func Slugify(s string) string {
	return separators.Replace(titleCase(s))
}

func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inWord := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			inWord = false
			b.WriteRune(r)
			continue
		}
		if inWord {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToTitle(r))
		}
		inWord = true
	}
	return b.String()
}
