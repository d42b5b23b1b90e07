package authority

import (
	"regexp"
	"strings"
)

var (
	caseRefRe    = regexp.MustCompile(`\bv\b`)
	actRefRe     = regexp.MustCompile(`\bAct\b`)
	sectionRefRe = regexp.MustCompile(`\bs\s*\d`)
	cthWordRe    = regexp.MustCompile(`(?i)\b(Cth|Commonwealth|federal)\b`)
)

// ExtractStatutes pulls "<Name> Act ..." mentions out of one line.
func ExtractStatutes(line string) []string {
	matches := statuteRe.FindAllString(line, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HasOperationalSection reports whether a statute mention pinpoints a
// section (" s ", " section ", or "s." in any case).
func HasOperationalSection(mention string) bool {
	lowered := strings.ToLower(mention)
	return strings.Contains(lowered, " s ") ||
		strings.Contains(lowered, " section ") ||
		strings.Contains(lowered, "s.")
}

// ReferencesCaseOrStatute reports whether free text cites a case ("X v Y"),
// an Act, or a section pinpoint.
func ReferencesCaseOrStatute(text string) bool {
	return caseRefRe.MatchString(text) ||
		actRefRe.MatchString(text) ||
		sectionRefRe.MatchString(text)
}

// MentionsCommonwealth reports whether the text engages Commonwealth law:
// a word-boundary match of Cth, Commonwealth or federal, excluding the
// report series name "Commonwealth Law Reports". RE2 has no lookahead, so
// the exclusion is checked against the text following each match.
func MentionsCommonwealth(text string) bool {
	for _, loc := range cthWordRe.FindAllStringIndex(text, -1) {
		word := strings.ToLower(text[loc[0]:loc[1]])
		if word == "commonwealth" && isLawReportsTail(text[loc[1]:]) {
			continue
		}
		return true
	}
	return false
}

// MentionCitesCommonwealth reports whether a statute mention is tagged as
// Commonwealth legislation.
func MentionCitesCommonwealth(mention string) bool {
	if strings.Contains(mention, "(Cth") {
		return true
	}
	for _, loc := range cthWordRe.FindAllStringIndex(mention, -1) {
		word := strings.ToLower(mention[loc[0]:loc[1]])
		if word != "commonwealth" {
			continue
		}
		if !isLawReportsTail(mention[loc[1]:]) {
			return true
		}
	}
	return false
}

func isLawReportsTail(tail string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimLeft(tail, " ")), "law reports")
}
