// Package report renders batch QA results for humans (markdown, PDF) and
// machines (JSON). It consumes (identifier, result) pairs and knows nothing
// about how cards were validated.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is the outcome for one card.
type Entry struct {
	File     string   `json:"file"`
	Status   string   `json:"status"`
	Errors   []string `json:"errors"`
	Fixes    []string `json:"fixes"`
	Warnings []string `json:"warnings"`
}

// Summary is a complete batch run.
type Summary struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"results"`
}

// NewEntry builds one entry; status derives from the error count alone.
func NewEntry(file string, errors, fixes, warnings []string) Entry {
	status := "PASS"
	if len(errors) > 0 {
		status = "FAIL"
	}
	return Entry{File: file, Status: status, Errors: errors, Fixes: fixes, Warnings: warnings}
}

// Passed reports whether every entry passed.
func (s *Summary) Passed() bool {
	for _, e := range s.Entries {
		if e.Status != "PASS" {
			return false
		}
	}
	return true
}

// Counts returns (passed, failed).
func (s *Summary) Counts() (passed, failed int) {
	for _, e := range s.Entries {
		if e.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Markdown renders the per-card detail report.
func (s *Summary) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# " + s.Title + "\n\n")
	passed, failed := s.Counts()
	fmt.Fprintf(&sb, "%d passed, %d failed\n", passed, failed)
	for _, e := range s.Entries {
		sb.WriteString("\n## " + e.File + "\n- " + e.Status + "\n")
		for _, msg := range e.Errors {
			sb.WriteString("- " + msg + "\n")
		}
		if len(e.Fixes) > 0 {
			sb.WriteString("- fixes: " + strings.Join(e.Fixes, "; ") + "\n")
		}
		if len(e.Warnings) > 0 {
			sb.WriteString("- warnings: " + strings.Join(e.Warnings, "; ") + "\n")
		}
	}
	return sb.String()
}

// JSON renders the machine-readable payload, stable for a fixed input set.
func (s *Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
