package extract

import "testing"

const judgmentHTML = `<html><head><title>Case</title></head><body>
<nav><p>Home | Cases | Search</p></nav>
<h1>Smith v Jones</h1>
<p>[1] The appellant manufactured ginger beer.</p>
<p>It was sold in an opaque bottle.</p>
<p>[2] The respondent became ill after
   drinking   it.</p>
<script>trackPage()</script>
<footer><p>Feedback</p></footer>
</body></html>`

func TestParagraphs(t *testing.T) {
	got := Paragraphs([]byte(judgmentHTML))
	var numbered []Paragraph
	for _, p := range got {
		if p.Number != "" {
			numbered = append(numbered, p)
		}
	}
	if len(numbered) != 2 {
		t.Fatalf("expected 2 numbered paragraphs, got %+v", got)
	}
	if numbered[0].Number != "1" || numbered[1].Number != "2" {
		t.Fatalf("numbers = %q, %q", numbered[0].Number, numbered[1].Number)
	}
	// The unnumbered fragment folds into the preceding numbered paragraph.
	want := "[1] The appellant manufactured ginger beer. It was sold in an opaque bottle."
	if numbered[0].Text != want {
		t.Fatalf("paragraph 1 = %q, want %q", numbered[0].Text, want)
	}
	// Whitespace collapses inside a paragraph.
	if numbered[1].Text != "[2] The respondent became ill after drinking it." {
		t.Fatalf("paragraph 2 = %q", numbered[1].Text)
	}
}

func TestParagraphsSkipsBoilerplate(t *testing.T) {
	for _, p := range Paragraphs([]byte(judgmentHTML)) {
		switch p.Text {
		case "Home | Cases | Search", "Feedback", "trackPage()":
			t.Fatalf("boilerplate kept: %q", p.Text)
		}
	}
}

func TestParagraphsHeadnote(t *testing.T) {
	got := Paragraphs([]byte("<p>Headnote text.</p><p>[1] First.</p>"))
	if len(got) != 2 {
		t.Fatalf("expected headnote plus paragraph, got %+v", got)
	}
	if got[0].Number != "" || got[1].Number != "1" {
		t.Fatalf("unexpected numbering: %+v", got)
	}
}
