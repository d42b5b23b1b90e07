// Package validate is the card validation engine: a pure, stateless pass
// over one card under a declarative policy. Every checker runs
// unconditionally so a single call surfaces every problem at once; content
// violations accumulate in the Result and never abort the pass.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lawcards/cardlint/internal/card"
	"github.com/lawcards/cardlint/internal/lexical"
	"github.com/lawcards/cardlint/internal/policy"
	"github.com/lawcards/cardlint/internal/section"
)

// Section labels the checkers address directly.
const (
	authoritiesLabel = "Authorities map."
	statutoryLabel   = "Statutory hook."
)

// Validator binds the compiled policy to the rule checkers. It holds no
// per-card state; a single Validator is safe to reuse across cards.
type Validator struct {
	pol *policy.Compiled
}

func New(pol *policy.Compiled) *Validator {
	return &Validator{pol: pol}
}

// ValidateCard runs every checker over the card and returns the combined
// report. The only error return is structural: a field whose fundamental
// shape violates the input contract cannot be graded.
func (v *Validator) ValidateCard(c card.Card) (*Result, error) {
	res := &Result{}

	v.checkRequiredFields(c, res)
	v.checkTags(c, res)
	v.checkKeywords(c, res)
	v.checkTripwires(c, res)
	if err := v.checkAnchors(c, res); err != nil {
		return nil, err
	}

	back := c.String("back")
	parsed := section.Parse(back, v.pol.Headings)
	v.checkBackHeadings(back, parsed, res)
	v.checkBackWordCounts(back, res)
	v.checkAuthorities(parsed.Sections[authoritiesLabel], res)
	v.checkStatutes(parsed.Sections[statutoryLabel], back, res)
	v.checkDiagram(c, parsed, res)
	v.checkAbbreviations(back, res)

	if tok := v.pol.UncertaintyToken(); tok != "" && strings.Contains(back, tok) {
		res.AddWarning("Back includes explicit uncertainty token; ensure follow-up research")
	}

	v.checkPlaceholderText(c, res)
	v.checkRepeatedSentences(c, res)
	return res, nil
}

func (v *Validator) checkRequiredFields(c card.Card, res *Result) {
	for _, name := range v.pol.Schema.RequiredFields {
		val, ok := c.Get(name)
		if !ok {
			res.AddError("Missing required field: " + name)
			continue
		}
		if card.IsEmptyValue(val) {
			switch val.(type) {
			case string:
				res.AddError(fmt.Sprintf("Field '%s' must not be empty", name))
			case []any:
				res.AddError(fmt.Sprintf("Field '%s' must contain at least one value", name))
			}
		}
	}
}

func (v *Validator) checkTags(c card.Card, res *Result) {
	tags, ok := c.StringList("tags")
	if !ok {
		res.AddError("Tags must be a list")
		return
	}
	have := map[string]bool{}
	for _, t := range tags {
		have[t] = true
	}
	var missing []string
	for _, want := range v.pol.Tags.Required {
		if !have[want] {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		res.AddError("Missing required tags: " + strings.Join(missing, ", "))
	}
}

func (v *Validator) checkKeywords(c card.Card, res *Result) {
	keywords, ok := c.StringList("keywords")
	if !ok {
		res.AddError("Keywords must be a list")
		return
	}
	min := v.pol.Keywords.Min
	max := v.pol.Keywords.Max
	if len(keywords) < min {
		res.AddError(fmt.Sprintf("At least %d keywords required (found %d)", min, len(keywords)))
	}
	if max > 0 && len(keywords) > max {
		res.AddError(fmt.Sprintf("No more than %d keywords allowed (found %d)", max, len(keywords)))
	}

	chosen := map[string]bool{}
	for _, k := range keywords {
		chosen[strings.ToLower(k)] = true
	}
	back := c.String("back")
	lowerBack := strings.ToLower(back)
	seen := map[string]bool{}
	for _, rec := range v.pol.Keywords.RecommendedIfRelevant {
		kw := strings.ToLower(strings.TrimSpace(rec))
		if kw == "" || seen[kw] || chosen[kw] {
			continue
		}
		seen[kw] = true
		// Only nag about recommendations the card's own text makes relevant.
		if strings.Contains(lowerBack, kw) {
			res.AddWarning("Consider adding recommended keyword: " + kw)
		}
	}
}

func (v *Validator) checkTripwires(c card.Card, res *Result) {
	raw, present := c.Get("tripwires")
	if !present {
		res.AddError("Tripwires field is missing")
		return
	}
	tripwires, ok := card.AsStringList(raw)
	if !ok {
		res.AddError("Tripwires must be a list")
		return
	}
	min := v.pol.Tripwires.Min
	max := v.pol.Tripwires.Max
	if len(tripwires) < min {
		res.AddError(fmt.Sprintf("At least %d tripwires required (found %d)", min, len(tripwires)))
	}
	if max > 0 && len(tripwires) > max {
		res.AddError(fmt.Sprintf("No more than %d tripwires allowed (found %d)", max, len(tripwires)))
	}
	threshold := v.pol.TripwireSimilarityThreshold()
	for i := 0; i < len(tripwires); i++ {
		for j := i + 1; j < len(tripwires); j++ {
			if lexical.Similarity(tripwires[i], tripwires[j]) >= threshold {
				res.AddError(fmt.Sprintf(
					"Tripwires %d and %d are near-duplicates (similarity >= %v)", i+1, j+1, threshold))
			}
		}
	}
}
