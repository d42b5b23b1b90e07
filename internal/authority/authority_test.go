package authority

import "testing"

func TestExtractCasesAndStatutes(t *testing.T) {
	line := "Lead: Smith v Jones [2001] HCA 5; fallback Wrongs Act 1958 (Vic) s 48"
	got := Extract(line, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 authorities, got %v", got)
	}
	if got[0].Text != "Smith v Jones [2001] HCA 5" || got[0].Category != CategoryHCA {
		t.Fatalf("unexpected first authority: %+v", got[0])
	}
	if got[1].Category != CategoryStatute {
		t.Fatalf("statute classified as %v", got[1].Category)
	}
}

func TestExtractDeduplicates(t *testing.T) {
	line := "Smith v Jones [2001] HCA 5; Smith v Jones [2001] HCA 5"
	if got := Extract(line, ""); len(got) != 1 {
		t.Fatalf("expected deduplication, got %v", got)
	}
}

func TestExtractUncertaintyToken(t *testing.T) {
	got := Extract("Lead: [UNVERIFIED] pending research", "[UNVERIFIED]")
	if len(got) != 1 || got[0].Category != CategoryToken {
		t.Fatalf("token extraction = %v", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Category
	}{
		{"Smith v Jones [2001] HCA 5", CategoryHCA},
		{"Brown v Crane [2010] VSCA 12", CategoryStateCA},
		{"Reid v Park [1932] UKHL 100", CategoryUKPC},
		{"Wrongs Act 1958 (Vic) s 48", CategoryStatute},
		{"Doe v Roe [2015] FCA 99", CategoryOtherAus},
	}
	for _, c := range cases {
		if got := Classify(c.text); got != c.want {
			t.Fatalf("Classify(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestHasYearAndCitation(t *testing.T) {
	if !HasYearAndCitation("Smith v Jones [2001] HCA 5") {
		t.Fatalf("neutral citation not accepted")
	}
	if !HasYearAndCitation("Smith v Jones (1992) 175 CLR 1") {
		t.Fatalf("report citation not accepted")
	}
	if HasYearAndCitation("Smith v Jones") {
		t.Fatalf("bare case name should not pass")
	}
	if HasYearAndCitation("Smith v Jones 2001") {
		t.Fatalf("year without citation should not pass")
	}
}

func TestStatusMarker(t *testing.T) {
	if got := StatusMarker("Old v New [1950] HCA 1 [overruled]"); got != "overruled" {
		t.Fatalf("StatusMarker = %q", got)
	}
	if got := StatusMarker("Smith v Jones [2001] HCA 5"); got != "" {
		t.Fatalf("unexpected marker %q", got)
	}
}

func TestPriorityRespected(t *testing.T) {
	index := map[string]int{"HCA": 0, "State CA": 1, "Other Aus": 2}
	if !PriorityRespected([]Category{CategoryHCA, CategoryStateCA}, index) {
		t.Fatalf("ordered categories rejected")
	}
	if PriorityRespected([]Category{CategoryStateCA, CategoryHCA}, index) {
		t.Fatalf("descending categories accepted")
	}
	// Unranked categories are ignored.
	if !PriorityRespected([]Category{CategoryHCA, CategoryToken, CategoryStateCA}, index) {
		t.Fatalf("unranked category broke the check")
	}
}
