package validate

import (
	"fmt"
	"regexp"

	"github.com/lawcards/cardlint/internal/authority"
	"github.com/lawcards/cardlint/internal/card"
	"github.com/lawcards/cardlint/internal/lexical"
)

var ukAnchorRe = regexp.MustCompile(`\b(UK|PC|Privy Council)\b`)
var ukNoteRe = regexp.MustCompile(`(?i)nuance|approved|distinguished|persuasive`)

// checkAnchors flattens the anchors union into a flat list and enforces
// count bounds, per-item word caps and reference requirements. A value of
// an unusable fundamental shape (e.g. a number) is a structural error and
// aborts validation.
func (v *Validator) checkAnchors(c card.Card, res *Result) error {
	raw, present := c.Get("anchors")
	if !present {
		res.AddError("Anchors field is missing")
		return nil
	}
	items, err := card.FlattenAnchors(raw)
	if err != nil {
		return err
	}

	min := v.pol.Anchors.MinItems
	max := v.pol.Anchors.MaxItems
	if len(items) < min {
		res.AddError(fmt.Sprintf("Anchors must include at least %d items (found %d)", min, len(items)))
	}
	if max > 0 && len(items) > max {
		res.AddError(fmt.Sprintf("Anchors must include no more than %d items (found %d)", max, len(items)))
	}

	for idx, item := range items {
		n := idx + 1
		if limit := v.pol.Anchors.EachItemMaxWords; limit > 0 {
			if words := lexical.WordCount(item); words > limit {
				res.AddError(fmt.Sprintf("Anchor %d exceeds %d words (%d words)", n, limit, words))
			}
		}
		if v.pol.Anchors.RequireCaseOrStatutePerItem && !authority.ReferencesCaseOrStatute(item) {
			res.AddError(fmt.Sprintf("Anchor %d must reference a case or statute", n))
		}
		if v.pol.Anchors.UKOrPersuasiveRequiresNote &&
			ukAnchorRe.MatchString(item) && !ukNoteRe.MatchString(item) {
			res.AddError("UK/PC anchors must include nuance or note")
		}
	}
	return nil
}
