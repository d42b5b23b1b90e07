// Package authority extracts and classifies legal citations from authority
// map lines. Each heuristic is a named pure function so it can be tested
// without the aggregate validator; thresholds stay in the policy.
package authority

import (
	"regexp"
	"strings"
)

// Category ranks where an authority sits in the citation hierarchy.
type Category string

const (
	CategoryHCA     Category = "HCA"
	CategoryStateCA Category = "State CA"
	CategoryOtherAus Category = "Other Aus"
	CategoryUKPC    Category = "UK/PC (nuance)"
	CategoryStatute Category = "Statute"
	// CategoryToken marks the policy's explicit uncertainty placeholder.
	CategoryToken Category = "Token"
)

// Authority is one extracted citation with its inferred category.
type Authority struct {
	Text     string
	Category Category
}

var (
	caseRe    = regexp.MustCompile(`[A-Z][A-Za-z]+ v [A-Z][A-Za-z][^;.,]*`)
	statuteRe = regexp.MustCompile(`[A-Z][A-Za-z]+ Act[^;.,]*`)
	yearRe    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	neutralRe = regexp.MustCompile(`\[(19|20)\d{2}\]\s*[A-Z]{2,}\s*\d+`)
	reportRe  = regexp.MustCompile(`\b\d+\s*[A-Z]{2,}\s*\d+\b`)
	statusRe  = regexp.MustCompile(`(?i)\[(overruled|distinguished)\]`)
	nuanceRe  = regexp.MustCompile(`(?i)nuance|approved|persuasive|caution`)
)

// Extract pulls the case and statute citations out of one authority-map
// line, deduplicated in first-appearance order. When the line carries the
// uncertainty token, that token is the only extraction.
func Extract(line, uncertaintyToken string) []Authority {
	if uncertaintyToken != "" && strings.Contains(line, uncertaintyToken) {
		return []Authority{{Text: uncertaintyToken, Category: CategoryToken}}
	}
	matches := caseRe.FindAllString(line, -1)
	matches = append(matches, statuteRe.FindAllString(line, -1)...)
	seen := map[string]bool{}
	var out []Authority
	for _, m := range matches {
		cleaned := strings.TrimSpace(m)
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		out = append(out, Authority{Text: cleaned, Category: Classify(cleaned)})
	}
	return out
}

// Classify infers the category from court identifiers in the citation text.
// Checks run from most to least specific; an unrecognised Australian
// citation falls through to Other Aus.
func Classify(text string) Category {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "hca"):
		return CategoryHCA
	case strings.Contains(lowered, "vsca"),
		strings.Contains(lowered, "nswca"),
		strings.Contains(lowered, "qsca"),
		strings.Contains(lowered, "sascfc"),
		strings.Contains(lowered, "wasca"):
		return CategoryStateCA
	case strings.Contains(lowered, "uk"),
		strings.Contains(lowered, "pc"),
		strings.Contains(lowered, "privy"):
		return CategoryUKPC
	case strings.Contains(lowered, "act"), strings.Contains(lowered, "reg"):
		return CategoryStatute
	default:
		return CategoryOtherAus
	}
}

// HasYearAndCitation reports whether the text carries a four-digit year and
// either a neutral citation ([YYYY] COURT N) or a report citation
// (N REPORT N).
func HasYearAndCitation(text string) bool {
	if !yearRe.MatchString(text) {
		return false
	}
	return neutralRe.MatchString(text) || reportRe.MatchString(text)
}

// StatusMarker returns the [overruled]/[distinguished] marker when present.
func StatusMarker(text string) string {
	m := statusRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// HasNuanceNote reports whether a UK/PC nuance marker appears in the text.
func HasNuanceNote(text string) bool {
	return nuanceRe.MatchString(text)
}

// PriorityRespected reports whether the categories appear in non-decreasing
// rank per the policy's priority index. Categories the policy does not rank
// are ignored.
func PriorityRespected(categories []Category, index map[string]int) bool {
	last := -1
	for _, c := range categories {
		rank, ok := index[string(c)]
		if !ok {
			continue
		}
		if rank < last {
			return false
		}
		last = rank
	}
	return true
}
