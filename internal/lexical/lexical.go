package lexical

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	wordRe     = regexp.MustCompile(`[A-Za-z0-9']+`)
	simTokenRe = regexp.MustCompile(`[a-z0-9]+`)
	sentenceRe = regexp.MustCompile(`[.?!]`)
	labelRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// WordCount counts word tokens: runs of alphanumerics and apostrophes.
func WordCount(text string) int {
	return len(wordRe.FindAllString(Fold(text), -1))
}

// SplitSentences splits text on sentence terminators and drops blank
// segments. Offsets into the original text are not preserved; callers that
// need positional error messages should number the returned slice.
func SplitSentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitSegments splits on sentence terminators without dropping blank
// segments, so callers that number sentences keep stable indices.
func SplitSegments(text string) []string {
	return sentenceRe.Split(text, -1)
}

// Fold applies NFC normalisation so that composed and decomposed forms of
// the same text tokenise identically.
func Fold(text string) string {
	return norm.NFC.String(text)
}

// NormalizeLabel lowercases and strips non-alphanumerics, for comparing
// mindmap branch labels against section heading names.
func NormalizeLabel(s string) string {
	return labelRe.ReplaceAllString(strings.ToLower(s), "")
}

// similarityTokens lowercases and extracts alphanumeric runs.
func similarityTokens(text string) []string {
	return simTokenRe.FindAllString(strings.ToLower(Fold(text)), -1)
}

// Similarity computes cosine similarity over token multisets. Empty inputs
// score zero; identical non-empty inputs score one.
func Similarity(a, b string) float64 {
	ta := similarityTokens(a)
	tb := similarityTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	ca := map[string]int{}
	for _, t := range ta {
		ca[t]++
	}
	cb := map[string]int{}
	for _, t := range tb {
		cb[t]++
	}
	dot := 0
	for t, n := range ca {
		if m, ok := cb[t]; ok {
			dot += n * m
		}
	}
	if dot == 0 {
		return 0
	}
	var na, nb float64
	for _, n := range ca {
		na += float64(n * n)
	}
	for _, n := range cb {
		nb += float64(n * n)
	}
	return float64(dot) / (math.Sqrt(na) * math.Sqrt(nb))
}

// mojibake holds the UTF-8-decoded-as-Latin-1 sequences that show up in
// cards edited across mismatched editors, mapped to their intended runes.
var mojibake = []struct{ bad, good string }{
	{"\u00e2\u20ac\u201c", "\u2013"}, // en dash
	{"\u00e2\u20ac\u201d", "\u2014"}, // em dash
	{"\u00e2\u20ac\u2018", "-"},      // non-breaking hyphen
	{"\u00e2\u20ac\u2122", "\u2019"}, // right single quote
	{"\u00e2\u20ac\u0153", "\u201c"}, // left double quote
	{"\u00e2\u20ac\u009d", "\u201d"}, // right double quote
}

// RepairMojibake replaces known double-encoded sequences. Idempotent: the
// replacement strings never themselves match a bad sequence.
func RepairMojibake(text string) string {
	for _, r := range mojibake {
		text = strings.ReplaceAll(text, r.bad, r.good)
	}
	return text
}

// HasMojibake reports whether any known bad sequence remains.
func HasMojibake(text string) bool {
	for _, r := range mojibake {
		if strings.Contains(text, r.bad) {
			return true
		}
	}
	return false
}
