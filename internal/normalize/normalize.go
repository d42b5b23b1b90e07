// Package normalize applies the bounded set of deterministic fixes a
// validation report licenses: heading stubs, a lead-authority placeholder,
// list truncation, metadata defaults, a stub mindmap and mojibake repair.
// Fixes are idempotent (a second pass over fixed output changes nothing)
// and never touch user content outside these enumerated edits.
package normalize

import (
	"strings"

	"github.com/lawcards/cardlint/internal/authority"
	"github.com/lawcards/cardlint/internal/card"
	"github.com/lawcards/cardlint/internal/lexical"
	"github.com/lawcards/cardlint/internal/mindmap"
	"github.com/lawcards/cardlint/internal/policy"
	"github.com/lawcards/cardlint/internal/section"
)

// headingStubBody seeds an injected section with something a later editing
// pass can find without tripping the placeholder lint.
const headingStubBody = "Pending drafting."

// stubBranchPool supplies top-level branch labels for stub mindmaps. None
// of them mirror a section heading label.
var stubBranchPool = []string{"Elements", "Authorities", "Defences", "Remedies", "Limits", "Overlaps"}

// Apply returns a fixed copy of the card plus a description of each edit
// made. The input card is never mutated.
func Apply(c card.Card, pol *policy.Compiled) (card.Card, []string) {
	fixed := card.Card{}
	for k, v := range c {
		fixed[k] = v
	}
	var fixes []string
	note := func(msg string) { fixes = append(fixes, msg) }

	fixMojibake(fixed, note)
	fixBack(fixed, pol, note)
	fixLists(fixed, pol, note)
	fixMetadata(fixed, pol, note)
	fixDiagram(fixed, pol, note)
	return fixed, fixes
}

func fixMojibake(c card.Card, note func(string)) {
	for _, field := range []string{"front", "back", "why_it_matters", "mnemonic", "diagram"} {
		v, ok := c.Get(field)
		if !ok {
			continue
		}
		if s, isString := v.(string); isString && lexical.HasMojibake(s) {
			c[field] = lexical.RepairMojibake(s)
			note("repaired mojibake in " + field)
		}
	}
}

// fixBack injects missing required headings at their canonical positions
// and seeds an empty Authorities map with a lead line taken from anchors.
func fixBack(c card.Card, pol *policy.Compiled, note func(string)) {
	back := c.String("back")
	parsed := section.Parse(back, pol.Headings)

	lines := []string{}
	if back != "" {
		lines = strings.Split(back, "\n")
	}

	// Line index of each present heading's first occurrence.
	headingLine := map[string]int{}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		for _, h := range pol.Headings {
			if _, done := headingLine[h.Label]; !done && h.Pattern.MatchString(line) {
				headingLine[h.Label] = i
			}
		}
	}

	var injected []string
	for idx, h := range pol.Headings {
		if parsed.Counts[h.Label] > 0 {
			continue
		}
		// Insert before the first later heading that is present, else append.
		insertAt := len(lines)
		for _, later := range pol.Headings[idx+1:] {
			if at, present := headingLine[later.Label]; present && at < insertAt {
				insertAt = at
			}
		}
		stub := []string{h.Label, headingStubBody, ""}
		lines = append(lines[:insertAt], append(append([]string{}, stub...), lines[insertAt:]...)...)
		for label, at := range headingLine {
			if at >= insertAt {
				headingLine[label] = at + len(stub)
			}
		}
		headingLine[h.Label] = insertAt
		injected = append(injected, h.Label)
	}
	if len(injected) > 0 {
		note("injected missing headings: " + strings.Join(injected, ", "))
	}

	back = strings.Join(lines, "\n")
	parsed = section.Parse(back, pol.Headings)
	if body, present := parsed.Sections["Authorities map."]; present || parsed.Counts["Authorities map."] > 0 {
		if strings.TrimSpace(body) == "" || strings.TrimSpace(body) == headingStubBody {
			if lead := leadFromAnchors(c); lead != "" {
				back = replaceSectionBody(back, pol, "Authorities map.", "Lead: "+lead)
				note("seeded authorities map lead from anchors")
			}
		}
	}
	c["back"] = back
}

// leadFromAnchors returns the first anchor that reads as a case citation.
func leadFromAnchors(c card.Card) string {
	raw, ok := c.Get("anchors")
	if !ok {
		return ""
	}
	items, err := card.FlattenAnchors(raw)
	if err != nil {
		return ""
	}
	for _, item := range items {
		if authority.ReferencesCaseOrStatute(item) {
			return item
		}
	}
	return ""
}

// replaceSectionBody swaps the body of one section while leaving every
// other line untouched.
func replaceSectionBody(back string, pol *policy.Compiled, label, body string) string {
	var h *policy.Heading
	for i := range pol.Headings {
		if pol.Headings[i].Label == label {
			h = &pol.Headings[i]
			break
		}
	}
	if h == nil {
		return back
	}
	lines := strings.Split(back, "\n")
	var out []string
	inTarget := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		isHeading := false
		for _, other := range pol.Headings {
			if other.Pattern.MatchString(line) {
				isHeading = true
				inTarget = other.Label == label
				break
			}
		}
		if isHeading {
			out = append(out, raw)
			if inTarget {
				out = append(out, body)
			}
			continue
		}
		if inTarget {
			// Drop only the stub/blank body being replaced.
			if line == "" || line == headingStubBody {
				continue
			}
			inTarget = false
		}
		out = append(out, raw)
	}
	return strings.Join(out, "\n")
}

func fixLists(c card.Card, pol *policy.Compiled, note func(string)) {
	truncate := func(field string, max int) {
		if max <= 0 {
			return
		}
		items, ok := c.StringList(field)
		if !ok || len(items) <= max {
			return
		}
		kept := make([]any, 0, max)
		for _, s := range items[:max] {
			kept = append(kept, s)
		}
		c[field] = kept
		note("truncated " + field + " to policy maximum")
	}
	truncate("keywords", pol.Keywords.Max)
	truncate("tripwires", pol.Tripwires.Max)

	if max := pol.Anchors.MaxItems; max > 0 {
		if raw, ok := c.Get("anchors"); ok {
			if items, err := card.FlattenAnchors(raw); err == nil && len(items) > max {
				kept := make([]any, 0, max)
				for _, s := range items[:max] {
					kept = append(kept, s)
				}
				c["anchors"] = kept
				note("truncated anchors to policy maximum")
			}
		}
	}
}

func fixMetadata(c card.Card, pol *policy.Compiled, note func(string)) {
	if target := strings.TrimSpace(pol.ReadingLevel.Target); target != "" {
		if c.String("reading_level") != target {
			c["reading_level"] = target
			note("set reading_level=" + target)
		}
	}
	if len(pol.Tags.Required) == 0 {
		return
	}
	tags, ok := c.StringList("tags")
	if !ok {
		tags = nil
	}
	have := map[string]bool{}
	for _, t := range tags {
		have[t] = true
	}
	added := false
	for _, want := range pol.Tags.Required {
		if !have[want] {
			tags = append(tags, want)
			added = true
		}
	}
	if added {
		out := make([]any, 0, len(tags))
		for _, t := range tags {
			out = append(out, t)
		}
		c["tags"] = out
		note("added missing required tags")
	}
}

// fixDiagram installs a minimal policy-conformant stub mindmap when the
// card has no usable diagram at all. Existing diagram content, however
// broken, is left for a human.
func fixDiagram(c card.Card, pol *policy.Compiled, note func(string)) {
	if v, ok := c.Get("diagram"); ok {
		if s, isString := v.(string); !isString || strings.TrimSpace(s) != "" {
			return
		}
	}
	branches := pol.Diagram.TopLevelBranchesMin
	if branches < 1 {
		branches = 1
	}
	if branches > len(stubBranchPool) {
		branches = len(stubBranchPool)
	}
	root := "Topic"
	if front := strings.TrimSpace(c.String("front")); front != "" {
		words := strings.Fields(front)
		if len(words) > 3 {
			words = words[:3]
		}
		root = strings.TrimRight(strings.Join(words, " "), "?")
	}
	c["diagram"] = mindmap.Stub(root, stubBranchPool[:branches])
	note("installed stub mindmap")
}
