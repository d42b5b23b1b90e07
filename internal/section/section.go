// Package section splits a card's back text into labeled blocks using the
// policy's ordered heading patterns. The parser only structures the text;
// deciding validity is the checkers' job.
package section

import (
	"regexp"
	"strings"

	"github.com/lawcards/cardlint/internal/policy"
)

// Parsed is the structured view of a back text.
type Parsed struct {
	// Sections maps heading label to body text. When a heading repeats,
	// the last occurrence's body wins; Counts is how checkers detect the
	// duplication.
	Sections map[string]string
	// Counts records how many times each heading matched.
	Counts map[string]int
	// Order lists labels by first occurrence, for the order check.
	Order []string
}

// Parse scans text line by line with a single current-heading state. Lines
// before the first heading match belong to no section and are discarded.
func Parse(text string, headings []policy.Heading) Parsed {
	p := Parsed{Sections: map[string]string{}, Counts: map[string]int{}}
	if text == "" {
		return p
	}

	var current string
	var buffer []string
	active := false

	flush := func() {
		if active {
			p.Sections[current] = strings.TrimSpace(strings.Join(buffer, "\n"))
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		matched := ""
		for _, h := range headings {
			if h.Pattern.MatchString(line) {
				matched = h.Label
				break
			}
		}
		if matched != "" {
			flush()
			if p.Counts[matched] == 0 {
				p.Order = append(p.Order, matched)
			}
			p.Counts[matched]++
			current = matched
			active = true
			buffer = buffer[:0]
			continue
		}
		if active {
			buffer = append(buffer, raw)
		}
	}
	flush()
	return p
}

var rationaleRe = regexp.MustCompile(`\(No [^\n)]*applicable\)\s*$`)

// HasRationaleMarker reports whether the back text ends with the
// "(No ... applicable)" sentinel that excuses intentionally omitted
// headings.
func HasRationaleMarker(back string) bool {
	return rationaleRe.MatchString(strings.TrimSpace(back))
}
