// Package verify confirms pinpoint citations against fetched judgment
// paragraphs. A model pass checks that the cited paragraph supports the
// stated proposition; a deterministic fallback keeps batch runs moving when
// no model is configured or the call fails.
package verify

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lawcards/cardlint/internal/cache"
	"github.com/lawcards/cardlint/internal/extract"
	"github.com/lawcards/cardlint/internal/llm"
)

// Request identifies one pinpoint to verify.
type Request struct {
	CaseName    string
	Citation    string
	Pinpoint    string // paragraph number, e.g. "42"
	Proposition string
	Keywords    []string
}

// Verdict is the verification outcome.
type Verdict struct {
	Confirmed bool   `json:"confirmed"`
	Quote     string `json:"quote"`
	Reason    string `json:"reason"`
	SourceURL string `json:"source_url"`
}

// Verifier runs the verification pass.
type Verifier struct {
	Client llm.ChatClient
	Cache  *cache.VerdictCache
	Model  string
}

// Verify checks the request against the judgment paragraphs. Paragraphs
// are first narrowed around keyword hits to keep prompt size bounded.
func (v *Verifier) Verify(ctx context.Context, req Request, paragraphs []extract.Paragraph, sourceURL string) (Verdict, error) {
	candidates := SliceCandidates(paragraphs, req.Keywords, 2, 6)
	target := findPinpoint(candidates, req.Pinpoint)
	if target == nil {
		// Keyword slicing may have dropped the cited paragraph; check the
		// full document before concluding it is absent.
		target = findPinpoint(paragraphs, req.Pinpoint)
	}
	if target == nil {
		return Verdict{Reason: "cited paragraph [" + req.Pinpoint + "] not found in source", SourceURL: sourceURL}, nil
	}

	if v.Client != nil && strings.TrimSpace(v.Model) != "" {
		if verdict, ok := v.askModel(ctx, req, *target, sourceURL); ok {
			return verdict, nil
		}
	}
	return fallbackVerdict(req, *target, sourceURL), nil
}

func (v *Verifier) askModel(ctx context.Context, req Request, target extract.Paragraph, sourceURL string) (Verdict, bool) {
	sys := systemMessage()
	user := userMessage(req, target)
	if v.Cache != nil {
		key := cache.KeyFrom(v.Model, sys+"\n\n"+user)
		if raw, ok, _ := v.Cache.Get(ctx, key); ok {
			var verdict Verdict
			if err := json.Unmarshal(raw, &verdict); err == nil {
				verdict.SourceURL = sourceURL
				return verdict, true
			}
		}
	}
	resp, err := v.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: v.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.0,
		N:           1,
	})
	if err != nil || len(resp.Choices) == 0 {
		return Verdict{}, false
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	var verdict Verdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return Verdict{}, false
	}
	// The quote must be verbatim from the paragraph; a model that
	// paraphrases does not verify anything.
	if verdict.Confirmed && !strings.Contains(target.Text, verdict.Quote) {
		return Verdict{}, false
	}
	if v.Cache != nil {
		if b, err := json.Marshal(verdict); err == nil {
			_ = v.Cache.Save(ctx, cache.KeyFrom(v.Model, sys+"\n\n"+user), b)
		}
	}
	verdict.SourceURL = sourceURL
	return verdict, true
}

func systemMessage() string {
	return "You verify legal pinpoint citations. Respond with strict JSON only: " +
		`{"confirmed":bool,"quote":string,"reason":string}. ` +
		"The quote must be copied verbatim from the provided paragraph, 20-40 words. " +
		"Confirm only when the paragraph supports the proposition; use only the provided text."
}

func userMessage(req Request, target extract.Paragraph) string {
	var sb strings.Builder
	sb.WriteString("Case: " + req.CaseName + "\n")
	sb.WriteString("Citation: " + req.Citation + "\n")
	sb.WriteString("Pinpoint: [" + req.Pinpoint + "]\n")
	sb.WriteString("Proposition: " + req.Proposition + "\n\n")
	sb.WriteString("Paragraph text:\n" + target.Text + "\n")
	return sb.String()
}

// fallbackVerdict confirms deterministically: the cited paragraph exists
// and a verbatim quote window can be lifted from it. Proposition support
// is reported as unassessed.
func fallbackVerdict(req Request, target extract.Paragraph, sourceURL string) Verdict {
	quote, ok := VerbatimQuote(target.Text, 20, 40)
	if !ok {
		return Verdict{
			Reason:    "paragraph [" + req.Pinpoint + "] too short for a verbatim quote",
			SourceURL: sourceURL,
		}
	}
	return Verdict{
		Confirmed: true,
		Quote:     quote,
		Reason:    "paragraph located; proposition support not assessed (no model configured)",
		SourceURL: sourceURL,
	}
}

// SliceCandidates narrows a document to paragraphs around keyword hits:
// each hit keeps a window of neighbours either side, capped at maxTotal
// paragraphs overall. With no keywords the leading paragraphs are kept.
func SliceCandidates(paragraphs []extract.Paragraph, keywords []string, window, maxTotal int) []extract.Paragraph {
	if maxTotal <= 0 || len(paragraphs) == 0 {
		return nil
	}
	if len(keywords) == 0 {
		if len(paragraphs) > maxTotal {
			return paragraphs[:maxTotal]
		}
		return paragraphs
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	keep := map[int]bool{}
	for i, p := range paragraphs {
		text := strings.ToLower(p.Text)
		for _, k := range lowered {
			if k != "" && strings.Contains(text, k) {
				for j := i - window; j <= i+window; j++ {
					if j >= 0 && j < len(paragraphs) {
						keep[j] = true
					}
				}
				break
			}
		}
	}
	var out []extract.Paragraph
	for i, p := range paragraphs {
		if keep[i] {
			out = append(out, p)
			if len(out) == maxTotal {
				break
			}
		}
	}
	return out
}

func findPinpoint(paragraphs []extract.Paragraph, number string) *extract.Paragraph {
	for i := range paragraphs {
		if paragraphs[i].Number == number {
			return &paragraphs[i]
		}
	}
	return nil
}

// VerbatimQuote lifts a word window from the paragraph: the first maxWords
// words when enough are present, rejecting paragraphs shorter than
// minWords.
func VerbatimQuote(text string, minWords, maxWords int) (string, bool) {
	words := strings.Fields(text)
	if len(words) < minWords {
		return "", false
	}
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " "), true
}
