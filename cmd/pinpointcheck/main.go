package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lawcards/cardlint/internal/app"
	"github.com/lawcards/cardlint/internal/cache"
	"github.com/lawcards/cardlint/internal/extract"
	"github.com/lawcards/cardlint/internal/fetch"
	"github.com/lawcards/cardlint/internal/llm"
	"github.com/lawcards/cardlint/internal/verify"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		sourceURL   string
		caseName    string
		citation    string
		pinpoint    string
		proposition string
		keywords    string
		llmBaseURL  string
		llmModel    string
		llmKey      string
		cacheDir    string
		timeout     time.Duration
		verbose     bool
	)

	flag.StringVar(&sourceURL, "url", "", "Judgment URL to fetch")
	flag.StringVar(&caseName, "case", "", "Case name, e.g. 'Donoghue v Stevenson'")
	flag.StringVar(&citation, "cite", "", "Citation, e.g. '[1992] HCA 23'")
	flag.StringVar(&pinpoint, "para", "", "Pinpoint paragraph number, e.g. '42'")
	flag.StringVar(&proposition, "prop", "", "Proposition the pinpoint is cited for")
	flag.StringVar(&keywords, "keywords", "", "Comma-separated keywords to narrow candidate paragraphs")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name; empty uses the deterministic fallback")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.StringVar(&cacheDir, "cache.dir", ".cardlint-cache", "Verdict cache directory; empty disables caching")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Per-request fetch timeout")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	_ = app.LoadEnvFiles(".env")
	if llmKey == "" {
		llmKey = os.Getenv("LLM_API_KEY")
	}

	if strings.TrimSpace(sourceURL) == "" || strings.TrimSpace(pinpoint) == "" {
		log.Error().Msg("-url and -para are required")
		os.Exit(2)
	}

	ctx := context.Background()
	client := &fetch.Client{
		MaxAttempts:       3,
		PerRequestTimeout: timeout,
		MaxBodyBytes:      8 << 20,
	}
	page, _, err := client.Get(ctx, sourceURL)
	if err != nil {
		log.Error().Err(err).Str("url", sourceURL).Msg("fetch failed")
		os.Exit(2)
	}
	paragraphs := extract.Paragraphs(page)
	log.Debug().Int("paragraphs", len(paragraphs)).Msg("judgment extracted")

	verifier := &verify.Verifier{Model: llmModel}
	if llmModel != "" {
		verifier.Client = llm.NewOpenAIProvider(llmBaseURL, llmKey)
	}
	if cacheDir != "" {
		verifier.Cache = &cache.VerdictCache{Dir: cacheDir}
	}

	req := verify.Request{
		CaseName:    caseName,
		Citation:    citation,
		Pinpoint:    pinpoint,
		Proposition: proposition,
		Keywords:    splitCSV(keywords),
	}
	verdict, err := verifier.Verify(ctx, req, paragraphs, sourceURL)
	if err != nil {
		log.Error().Err(err).Msg("verify failed")
		os.Exit(2)
	}

	status := "NOT CONFIRMED"
	if verdict.Confirmed {
		status = "CONFIRMED"
	}
	fmt.Printf("%s: %s %s at [%s]\n", status, caseName, citation, pinpoint)
	if verdict.Quote != "" {
		fmt.Printf("quote: %q\n", verdict.Quote)
	}
	fmt.Printf("reason: %s\n", verdict.Reason)
	if !verdict.Confirmed {
		os.Exit(1)
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
