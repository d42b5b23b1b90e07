package app

import "errors"

// Config holds runtime configuration for a lint run.
type Config struct {
	CardsDir   string
	PolicyPath string

	// Fix applies safe normalizations and rewrites card files in place.
	Fix bool

	// Report outputs. Empty paths skip that format.
	ReportMDPath   string
	ReportJSONPath string
	ReportPDFPath  string
	ReportTitle    string

	Verbose bool
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if trim(cfg.CardsDir) == "" {
		return errors.New("config: cards directory is required")
	}
	if trim(cfg.PolicyPath) == "" {
		return errors.New("config: policy path is required")
	}
	return nil
}

func trim(s string) string {
	i := 0
	j := len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n' || s[j-1] == '\r') {
		j--
	}
	return s[i:j]
}
