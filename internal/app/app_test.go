package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const integrationPolicy = `
schema:
  required_fields: [front, back, tags]
back:
  required_headings_regex:
    - '^Issue\\.'
    - '^Rule\\.'
    - '^Authorities map\\.'
  min_words: 5
  authority_per_step:
    max_per_step: 2
tags:
  required: [MLS_H1]
`

const passingCard = `front: When is a duty owed?
back: |
  Issue.
  Whether a duty arises here.

  Rule.
  A duty is owed to consumers.

  Authorities map.
  Lead: Smith v Jones [2001] HCA 5
tags: [MLS_H1]
keywords: [duty]
tripwires: [Confusing duty with breach]
anchors: [Smith v Jones]
diagram: sketch pending
`

const failingCard = `front: What about breach?
back: |
  Issue.
  Whether the standard was met.

  Authorities map.
  Lead: Brown v Crane [1999] HCA 7
tags: [torts]
keywords: [breach]
tripwires: [Mixing up duty and breach]
anchors: [Brown v Crane]
diagram: sketch pending
`

func setupRun(t *testing.T) (cardsDir, policyPath string) {
	t.Helper()
	dir := t.TempDir()
	cardsDir = filepath.Join(dir, "cards")
	if err := os.Mkdir(cardsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	policyPath = filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(policyPath, []byte(integrationPolicy), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cardsDir, "duty.yaml"), []byte(passingCard), 0o644); err != nil {
		t.Fatalf("write card: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cardsDir, "breach.yaml"), []byte(failingCard), 0o644); err != nil {
		t.Fatalf("write card: %v", err)
	}
	return cardsDir, policyPath
}

func TestRunReportsFailures(t *testing.T) {
	cardsDir, policyPath := setupRun(t)
	outDir := t.TempDir()
	cfg := Config{
		CardsDir:       cardsDir,
		PolicyPath:     policyPath,
		ReportMDPath:   filepath.Join(outDir, "report.md"),
		ReportJSONPath: filepath.Join(outDir, "report.json"),
	}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	summary, err := a.Run(context.Background())
	if !errors.Is(err, ErrCardsFailed) {
		t.Fatalf("expected ErrCardsFailed, got %v", err)
	}
	passed, failed := summary.Counts()
	if passed != 1 || failed != 1 {
		t.Fatalf("counts = %d/%d", passed, failed)
	}

	b, err := os.ReadFile(cfg.ReportJSONPath)
	if err != nil {
		t.Fatalf("read json report: %v", err)
	}
	var decoded struct {
		Results []struct {
			File   string   `json:"file"`
			Status string   `json:"status"`
			Errors []string `json:"errors"`
		} `json:"results"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if len(decoded.Results) != 2 {
		t.Fatalf("expected 2 results, got %+v", decoded)
	}
	// Cards are processed in filename order, so breach.yaml comes first.
	if decoded.Results[0].Status != "FAIL" || len(decoded.Results[0].Errors) == 0 {
		t.Fatalf("breach card should fail: %+v", decoded.Results[0])
	}
	if _, err := os.Stat(cfg.ReportMDPath); err != nil {
		t.Fatalf("markdown report missing: %v", err)
	}
}

func TestRunWithFixRepairsCards(t *testing.T) {
	cardsDir, policyPath := setupRun(t)
	cfg := Config{CardsDir: cardsDir, PolicyPath: policyPath, Fix: true}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	summary, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("fix run should pass: %v", err)
	}
	passed, failed := summary.Counts()
	if passed != 2 || failed != 0 {
		t.Fatalf("counts = %d/%d", passed, failed)
	}
	// The failing card was rewritten on disk with the missing heading and
	// tag supplied.
	b, err := os.ReadFile(filepath.Join(cardsDir, "breach.yaml"))
	if err != nil {
		t.Fatalf("read fixed card: %v", err)
	}
	text := string(b)
	if !strings.Contains(text, "Rule.") || !strings.Contains(text, "MLS_H1") {
		t.Fatalf("fixes not persisted:\n%s", text)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected config validation error")
	}
	if _, err := New(Config{CardsDir: "x", PolicyPath: filepath.Join(t.TempDir(), "absent.yaml")}); err == nil {
		t.Fatalf("expected policy load error")
	}
}
