package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lawcards/cardlint/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		cardsDir   string
		policyPath string
		configPath string
		fix        bool
		reportMD   string
		reportJSON string
		reportPDF  string
		title      string
		verbose    bool
	)

	flag.StringVar(&cardsDir, "cards", "cards", "Directory containing card YAML files")
	flag.StringVar(&policyPath, "policy", os.Getenv("CARDLINT_POLICY"), "Path to the policy YAML file")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file; flags take precedence")
	flag.BoolVar(&fix, "fix", false, "Apply safe normalizations and rewrite cards in place")
	flag.StringVar(&reportMD, "report.md", "", "Path to write the Markdown report (empty skips)")
	flag.StringVar(&reportJSON, "report.json", "", "Path to write the JSON report (empty skips)")
	flag.StringVar(&reportPDF, "report.pdf", "", "Path to write the PDF report (empty skips)")
	flag.StringVar(&title, "report.title", "Card QA report", "Report title")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		CardsDir:       cardsDir,
		PolicyPath:     policyPath,
		Fix:            fix,
		ReportMDPath:   reportMD,
		ReportJSONPath: reportJSON,
		ReportPDFPath:  reportPDF,
		ReportTitle:    title,
		Verbose:        verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("init")
		os.Exit(2)
	}
	if _, err := a.Run(context.Background()); err != nil {
		// Failed cards exit 1 so CI can gate on them; anything else is an
		// operational fault and exits 2.
		if errors.Is(err, app.ErrCardsFailed) {
			os.Exit(1)
		}
		log.Error().Err(err).Msg("run failed")
		os.Exit(2)
	}
}
