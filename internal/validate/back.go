package validate

import (
	"fmt"
	"strings"

	"github.com/lawcards/cardlint/internal/lexical"
	"github.com/lawcards/cardlint/internal/section"
)

// checkBackHeadings enforces presence, uniqueness and canonical order of
// the required headings. A trailing "(No ... applicable)" sentinel, when the
// policy permits it, downgrades all missing headings to one warning.
func (v *Validator) checkBackHeadings(back string, parsed section.Parsed, res *Result) {
	var missing []string
	for _, h := range v.pol.Headings {
		count := parsed.Counts[h.Label]
		if count == 0 {
			missing = append(missing, h.Label)
		} else if count > 1 && v.pol.Lint.ForbidDuplicateSectionHeaders {
			res.AddError("Duplicate heading detected: " + h.Label)
		}
	}
	if len(missing) > 0 {
		if v.pol.Back.AllowMissingBlocks && section.HasRationaleMarker(back) {
			res.AddWarning("Missing sections replaced with rationale marker: " + strings.Join(missing, ", "))
		} else {
			for _, label := range missing {
				res.AddError("Missing required heading: " + label)
			}
		}
	}

	// First-occurrence positions must be monotonic in the policy's
	// canonical heading order.
	rank := map[string]int{}
	for i, h := range v.pol.Headings {
		rank[h.Label] = i
	}
	last := -1
	for _, label := range parsed.Order {
		r, ok := rank[label]
		if !ok {
			continue
		}
		if r < last {
			res.AddError("Back headings are out of order (expected policy heading order)")
			break
		}
		last = r
	}
}

func (v *Validator) checkBackWordCounts(back string, res *Result) {
	words := lexical.WordCount(back)
	if words < v.pol.Back.MinWords {
		res.AddError(fmt.Sprintf("Back must contain at least %d words (found %d)", v.pol.Back.MinWords, words))
	}
	if v.pol.Back.MaxWords > 0 && words > v.pol.Back.MaxWords {
		res.AddError(fmt.Sprintf("Back must contain no more than %d words (found %d)", v.pol.Back.MaxWords, words))
	}

	if v.pol.Back.MaxSentenceWords <= 0 {
		return
	}
	// Raw segments keep sentence numbering stable for error messages.
	for idx, sentence := range lexical.SplitSegments(back) {
		n := lexical.WordCount(sentence)
		if n > v.pol.Back.MaxSentenceWords {
			res.AddError(fmt.Sprintf(
				"Sentence %d exceeds %d words (%d words)", idx+1, v.pol.Back.MaxSentenceWords, n))
		}
	}
}
