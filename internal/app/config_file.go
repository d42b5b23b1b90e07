package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to the flag namespace.
type FileConfig struct {
	Cards  string `yaml:"cards" json:"cards"`
	Policy string `yaml:"policy" json:"policy"`
	Fix    bool   `yaml:"fix" json:"fix"`

	Report struct {
		Markdown string `yaml:"markdown" json:"markdown"`
		JSON     string `yaml:"json" json:"json"`
		PDF      string `yaml:"pdf" json:"pdf"`
		Title    string `yaml:"title" json:"title"`
	} `yaml:"report" json:"report"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are still at their flag defaults. Flags should already have been
// parsed; this lets a config file supply defaults while preserving explicit
// flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	const (
		cardsDefault = "cards"
		titleDefault = "Card QA report"
	)
	if (cfg.CardsDir == "" || cfg.CardsDir == cardsDefault) && fc.Cards != "" {
		cfg.CardsDir = fc.Cards
	}
	if cfg.PolicyPath == "" && fc.Policy != "" {
		cfg.PolicyPath = fc.Policy
	}
	if !cfg.Fix && fc.Fix {
		cfg.Fix = true
	}
	if cfg.ReportMDPath == "" && fc.Report.Markdown != "" {
		cfg.ReportMDPath = fc.Report.Markdown
	}
	if cfg.ReportJSONPath == "" && fc.Report.JSON != "" {
		cfg.ReportJSONPath = fc.Report.JSON
	}
	if cfg.ReportPDFPath == "" && fc.Report.PDF != "" {
		cfg.ReportPDFPath = fc.Report.PDF
	}
	if (cfg.ReportTitle == "" || cfg.ReportTitle == titleDefault) && fc.Report.Title != "" {
		cfg.ReportTitle = fc.Report.Title
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
