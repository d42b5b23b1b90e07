package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lawcards/cardlint/internal/card"
	"github.com/lawcards/cardlint/internal/lexical"
)

// proseFields are the free-text fields scanned by the lint checkers.
var proseFields = []string{"front", "back", "why_it_matters", "mnemonic"}

func (v *Validator) checkPlaceholderText(c card.Card, res *Result) {
	for _, field := range proseFields {
		text := c.String(field)
		for i, re := range v.pol.Placeholders {
			if re.MatchString(text) {
				res.AddError(fmt.Sprintf(
					"Field '%s' contains placeholder text matching '%s'",
					field, v.pol.Lint.ForbidPlaceholderTextRegex[i]))
			}
		}
	}
}

// checkRepeatedSentences flags near-duplicate sentences across the combined
// pool of front, back and why_it_matters, including cross-field pairs.
func (v *Validator) checkRepeatedSentences(c card.Card, res *Result) {
	threshold := v.pol.RepeatedSentenceSimilarityThreshold()
	type fieldSentence struct {
		field string
		text  string
	}
	var pool []fieldSentence
	for _, field := range []string{"front", "back", "why_it_matters"} {
		for _, s := range lexical.SplitSentences(c.String(field)) {
			pool = append(pool, fieldSentence{field: field, text: s})
		}
	}
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			if lexical.Similarity(pool[i].text, pool[j].text) >= threshold {
				res.AddError(fmt.Sprintf(
					"Sentences from %s and %s are near-duplicates (>= %v)", pool[i].field, pool[j].field, threshold))
			}
		}
	}
}

var abbrevRe = regexp.MustCompile(`\b[A-Z]{2,}\b`)

// abbrevAllowlist holds jurisdiction and degree abbreviations every law
// student reads without expansion.
var abbrevAllowlist = map[string]bool{
	"HCA": true, "AGLC": true, "JD": true, "LLB": true, "NSW": true,
	"VIC": true, "SA": true, "WA": true, "QLD": true, "ACT": true,
}

// checkAbbreviations requires every all-caps token to be expanded at its
// first occurrence, via "<long form> (ABBR)" or "ABBR (<long form>)" within
// an 80-character window on either side.
func (v *Validator) checkAbbreviations(back string, res *Result) {
	if back == "" {
		return
	}
	token := v.pol.UncertaintyToken()
	seen := map[string]bool{}
	for _, loc := range abbrevRe.FindAllStringIndex(back, -1) {
		abbr := back[loc[0]:loc[1]]
		if seen[abbr] {
			continue
		}
		seen[abbr] = true
		if abbrevAllowlist[abbr] {
			continue
		}
		// The policy's sanctioned uncertainty token is not an abbreviation.
		if token != "" && strings.Contains(token, abbr) {
			continue
		}
		if !hasAbbreviationDefinition(back, abbr, loc[0]) {
			res.AddError(fmt.Sprintf("Abbreviation '%s' must be expanded on first use", abbr))
		}
	}
}

const abbrevWindow = 80

func hasAbbreviationDefinition(text, abbr string, index int) bool {
	start := index - abbrevWindow
	if start < 0 {
		start = 0
	}
	end := index + len(abbr) + abbrevWindow
	if end > len(text) {
		end = len(text)
	}
	window := text[start:end]

	longForm := regexp.MustCompile(`[A-Za-z][A-Za-z\s'-]{3,}\s*\(` + regexp.QuoteMeta(abbr) + `\)`)
	for _, m := range longForm.FindAllStringIndex(window, -1) {
		if start+m[0] <= index && index <= start+m[1] {
			return true
		}
	}
	reverse := regexp.MustCompile(regexp.QuoteMeta(abbr) + `\s*\([A-Za-z][A-Za-z\s'-]{3,}\)`)
	for _, m := range reverse.FindAllStringIndex(window, -1) {
		if start+m[0] <= index && index <= start+m[1] {
			return true
		}
	}
	return false
}
