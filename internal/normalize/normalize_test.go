package normalize

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lawcards/cardlint/internal/card"
	"github.com/lawcards/cardlint/internal/policy"
	"github.com/lawcards/cardlint/internal/section"
)

const testPolicy = `
back:
  required_headings_regex:
    - '^Issue\\.'
    - '^Rule\\.'
    - '^Authorities map\\.'
    - '^Conclusion\\.'
anchors:
  max_items: 3
keywords:
  max: 3
diagram:
  type: mindmap
  must_be_valid_mermaid: true
  top_level_branches_min: 4
tripwires:
  max: 3
tags:
  required: [MLS_H1]
reading_level:
  target: JD-1
`

func compiled(t *testing.T) *policy.Compiled {
	t.Helper()
	c, err := policy.Parse([]byte(testPolicy))
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	return c
}

func baseCard() card.Card {
	return card.Card{
		"front": "When is a duty owed?",
		"back": "Issue.\nWhether a duty arises.\n\nRule.\nA duty is owed to consumers.\n\n" +
			"Authorities map.\nLead: Smith v Jones [2001] HCA 5\n\nConclusion.\nA duty is owed here.",
		"why_it_matters": "Core exam territory.",
		"tripwires":      []any{"Confusing duty with breach"},
		"anchors":        []any{"Smith v Jones [2001] HCA 5"},
		"keywords":       []any{"duty"},
		"tags":           []any{"MLS_H1"},
		"reading_level":  "JD-1",
		"diagram":        "```mermaid\nmindmap\nroot((Duty))\n  Elements\n  Defences\n  Remedies\n  Limits\n```",
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	c := baseCard()
	delete(c, "reading_level")
	before := c.String("back")
	_, fixes := Apply(c, compiled(t))
	if len(fixes) == 0 {
		t.Fatalf("expected at least one fix")
	}
	if c.String("back") != before {
		t.Fatalf("input card was mutated")
	}
	if _, ok := c.Get("reading_level"); ok {
		t.Fatalf("input card gained a field")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	c := baseCard()
	delete(c, "diagram")
	delete(c, "reading_level")
	c["keywords"] = []any{"a", "b", "c", "d", "e"}

	first, notes1 := Apply(c, compiled(t))
	if len(notes1) == 0 {
		t.Fatalf("first pass should fix something")
	}
	second, notes2 := Apply(first, compiled(t))
	if len(notes2) != 0 {
		t.Fatalf("second pass should be a no-op, got %v", notes2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("fixed card changed on second pass:\n%v\n%v", first, second)
	}
}

func TestInjectMissingHeadings(t *testing.T) {
	pol := compiled(t)
	c := baseCard()
	c["back"] = "Issue.\nWhether a duty arises.\n\nAuthorities map.\nLead: Smith v Jones [2001] HCA 5\n\nConclusion.\nA duty is owed here."
	fixed, notes := Apply(c, pol)

	joined := strings.Join(notes, "; ")
	if !strings.Contains(joined, "injected missing headings: Rule.") {
		t.Fatalf("missing injection note: %v", notes)
	}
	parsed := section.Parse(fixed.String("back"), pol.Headings)
	if parsed.Counts["Rule."] != 1 {
		t.Fatalf("Rule. not injected:\n%s", fixed.String("back"))
	}
	// Canonical position: Rule. lands between Issue. and Authorities map.
	want := []string{"Issue.", "Rule.", "Authorities map.", "Conclusion."}
	if !reflect.DeepEqual(parsed.Order, want) {
		t.Fatalf("heading order after injection = %v, want %v", parsed.Order, want)
	}
	if parsed.Sections["Rule."] != "Pending drafting." {
		t.Fatalf("stub body = %q", parsed.Sections["Rule."])
	}
}

func TestSeedAuthoritiesLeadFromAnchors(t *testing.T) {
	pol := compiled(t)
	c := baseCard()
	c["back"] = "Issue.\nWhether a duty arises.\n\nRule.\nA duty is owed to consumers.\n\n" +
		"Authorities map.\n\nConclusion.\nA duty is owed here."
	fixed, notes := Apply(c, pol)
	parsed := section.Parse(fixed.String("back"), pol.Headings)
	if got := parsed.Sections["Authorities map."]; got != "Lead: Smith v Jones [2001] HCA 5" {
		t.Fatalf("authorities body = %q", got)
	}
	if !strings.Contains(strings.Join(notes, "; "), "seeded authorities map lead") {
		t.Fatalf("missing seed note: %v", notes)
	}
}

func TestTruncateLists(t *testing.T) {
	c := baseCard()
	c["keywords"] = []any{"a", "b", "c", "d"}
	c["tripwires"] = []any{"one", "two", "three", "four"}
	fixed, notes := Apply(c, compiled(t))
	if kws, _ := fixed.StringList("keywords"); len(kws) != 3 {
		t.Fatalf("keywords not truncated: %v", kws)
	}
	if tws, _ := fixed.StringList("tripwires"); len(tws) != 3 {
		t.Fatalf("tripwires not truncated: %v", tws)
	}
	joined := strings.Join(notes, "; ")
	if !strings.Contains(joined, "truncated keywords") || !strings.Contains(joined, "truncated tripwires") {
		t.Fatalf("missing truncation notes: %v", notes)
	}
}

func TestMetadataDefaults(t *testing.T) {
	c := baseCard()
	delete(c, "reading_level")
	c["tags"] = []any{"torts"}
	fixed, _ := Apply(c, compiled(t))
	if got := fixed.String("reading_level"); got != "JD-1" {
		t.Fatalf("reading_level = %q", got)
	}
	tags, _ := fixed.StringList("tags")
	found := false
	for _, tag := range tags {
		if tag == "MLS_H1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("required tag not appended: %v", tags)
	}
	if tags[0] != "torts" {
		t.Fatalf("existing tags should keep their order: %v", tags)
	}
}

func TestStubDiagramInstalledOnlyWhenMissing(t *testing.T) {
	pol := compiled(t)
	c := baseCard()
	delete(c, "diagram")
	fixed, notes := Apply(c, pol)
	if !strings.Contains(strings.Join(notes, "; "), "installed stub mindmap") {
		t.Fatalf("stub not installed: %v", notes)
	}
	diagram := fixed.String("diagram")
	if !strings.Contains(diagram, "```mermaid") || !strings.Contains(diagram, "mindmap") {
		t.Fatalf("stub is not a mermaid mindmap:\n%s", diagram)
	}

	// A broken but present diagram is left alone.
	c = baseCard()
	c["diagram"] = "not a fence at all"
	fixed, _ = Apply(c, pol)
	if fixed.String("diagram") != "not a fence at all" {
		t.Fatalf("existing diagram content was replaced")
	}
}

func TestRepairMojibakeFields(t *testing.T) {
	c := baseCard()
	c["front"] = "Whatâ€™s the test for duty?"
	fixed, notes := Apply(c, compiled(t))
	if got := fixed.String("front"); got != "What’s the test for duty?" {
		t.Fatalf("front not repaired: %q", got)
	}
	if !strings.Contains(strings.Join(notes, "; "), "repaired mojibake in front") {
		t.Fatalf("missing repair note: %v", notes)
	}
}
