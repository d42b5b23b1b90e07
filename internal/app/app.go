package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/lawcards/cardlint/internal/card"
	"github.com/lawcards/cardlint/internal/normalize"
	"github.com/lawcards/cardlint/internal/policy"
	"github.com/lawcards/cardlint/internal/report"
	"github.com/lawcards/cardlint/internal/validate"
)

// App wires the policy, validator and normalizer into a batch run over a
// card directory.
type App struct {
	cfg Config
	pol *policy.Compiled
}

// ErrCardsFailed is returned by Run when at least one card has errors.
// Warnings alone never trip it.
var ErrCardsFailed = fmt.Errorf("one or more cards failed validation")

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	pol, err := policy.NewLoader().Load(cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	return &App{cfg: cfg, pol: pol}, nil
}

// Run validates every card under the configured directory, optionally
// applying fixes, and writes the requested report formats. The summary is
// returned even when cards fail so callers can render partial results.
func (a *App) Run(ctx context.Context) (*report.Summary, error) {
	files, err := card.List(a.cfg.CardsDir)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	log.Info().Int("count", len(files)).Str("dir", a.cfg.CardsDir).Msg("cards discovered")

	validator := validate.New(a.pol)
	summary := &report.Summary{Title: a.cfg.ReportTitle}
	if summary.Title == "" {
		summary.Title = "Card QA report"
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}
		entry := a.checkOne(validator, file)
		summary.Entries = append(summary.Entries, entry)
		log.Debug().Str("file", file).Str("status", entry.Status).
			Int("errors", len(entry.Errors)).Int("warnings", len(entry.Warnings)).
			Msg("card checked")
	}

	if err := a.writeReports(summary); err != nil {
		return summary, err
	}
	passed, failed := summary.Counts()
	log.Info().Int("passed", passed).Int("failed", failed).Msg("run complete")
	if failed > 0 {
		return summary, ErrCardsFailed
	}
	return summary, nil
}

func (a *App) checkOne(validator *validate.Validator, file string) report.Entry {
	c, err := card.Load(file)
	if err != nil {
		return report.NewEntry(file, []string{fmt.Sprintf("Cannot read card: %v", err)}, nil, nil)
	}

	var fixes []string
	if a.cfg.Fix {
		fixed, notes := normalize.Apply(c, a.pol)
		if len(notes) > 0 {
			if err := card.Save(file, fixed); err != nil {
				return report.NewEntry(file, []string{fmt.Sprintf("Cannot write fixed card: %v", err)}, nil, nil)
			}
			fixes = notes
			c = fixed
		}
	}

	res, err := validator.ValidateCard(c)
	if err != nil {
		// Structural defects (for example anchors as a number) abort
		// checking for this card and count as its single error.
		return report.NewEntry(file, []string{err.Error()}, fixes, nil)
	}
	return report.NewEntry(file, res.Errors, fixes, res.Warnings)
}

func (a *App) writeReports(summary *report.Summary) error {
	if a.cfg.ReportMDPath != "" {
		if err := os.WriteFile(a.cfg.ReportMDPath, []byte(summary.Markdown()), 0o644); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
		log.Info().Str("out", a.cfg.ReportMDPath).Msg("wrote markdown report")
	}
	if a.cfg.ReportJSONPath != "" {
		b, err := summary.JSON()
		if err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		if err := os.WriteFile(a.cfg.ReportJSONPath, b, 0o644); err != nil {
			return fmt.Errorf("write json report: %w", err)
		}
		log.Info().Str("out", a.cfg.ReportJSONPath).Msg("wrote json report")
	}
	if a.cfg.ReportPDFPath != "" {
		if err := report.WritePDF(summary, a.cfg.ReportPDFPath); err != nil {
			return fmt.Errorf("write pdf report: %w", err)
		}
		log.Info().Str("out", a.cfg.ReportPDFPath).Msg("wrote pdf report")
	}
	return nil
}
