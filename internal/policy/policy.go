package policy

import (
	"regexp"
	"strings"
)

// Policy is the declarative ruleset that parameterises validation. Every
// numeric or structural threshold the checkers consult lives here; the
// engine itself hardcodes nothing the policy can supply.
type Policy struct {
	Schema struct {
		RequiredFields []string `yaml:"required_fields"`
	} `yaml:"schema"`

	Back struct {
		RequiredHeadingsRegex []string `yaml:"required_headings_regex"`
		MinWords              int      `yaml:"min_words"`
		MaxWords              int      `yaml:"max_words"`
		MaxSentenceWords      int      `yaml:"max_sentence_words"`
		AllowMissingBlocks    bool     `yaml:"allow_missing_blocks_if_not_applicable"`
		AuthorityPerStep      struct {
			LeadRequired    bool `yaml:"lead_required"`
			FallbackAllowed bool `yaml:"fallback_allowed"`
			MaxPerStep      *int `yaml:"max_per_step"`
		} `yaml:"authority_per_step"`
	} `yaml:"back"`

	Anchors struct {
		MinItems                   int  `yaml:"min_items"`
		MaxItems                   int  `yaml:"max_items"`
		EachItemMaxWords           int  `yaml:"each_item_max_words"`
		RequireCaseOrStatutePerItem bool `yaml:"require_case_or_statute_ref_per_item"`
		UKOrPersuasiveRequiresNote bool `yaml:"uk_or_persuasive_requires_note"`
	} `yaml:"anchors"`

	Statutes struct {
		IncludeOnlyOperationalSections bool `yaml:"include_only_operational_sections"`
		PreferVictoriaFirst            bool `yaml:"prefer_victoria_first"`
		RequireCommonwealthIfEngaged   bool `yaml:"require_commonwealth_if_engaged"`
	} `yaml:"statutes"`

	Authorities struct {
		PriorityOrder                    []string `yaml:"priority_order"`
		RequireYearAndNeutralOrReportCite bool     `yaml:"require_year_and_neutral_or_report_cite"`
	} `yaml:"authorities"`

	Keywords struct {
		Min                      int      `yaml:"min"`
		Max                      int      `yaml:"max"`
		RecommendedIfRelevant    []string `yaml:"recommended_include_if_relevant"`
	} `yaml:"keywords"`

	Diagram struct {
		Type                      string `yaml:"type"`
		MustBeValidMermaid        bool   `yaml:"must_be_valid_mermaid"`
		MaxTotalNodes             int    `yaml:"max_total_nodes"`
		TopLevelBranchesMin       int    `yaml:"top_level_branches_min"`
		TopLevelBranchesMax       int    `yaml:"top_level_branches_max"`
		DiscourageHeadingMirroring bool  `yaml:"discourage_heading_mirroring"`
	} `yaml:"diagram"`

	Tripwires struct {
		Min                          int      `yaml:"min"`
		Max                          int      `yaml:"max"`
		DuplicateSimilarityThreshold *float64 `yaml:"duplicate_similarity_threshold"`
	} `yaml:"tripwires"`

	Lint struct {
		ForbidDuplicateSectionHeaders            bool     `yaml:"forbid_duplicate_section_headers"`
		ForbidPlaceholderTextRegex               []string `yaml:"forbid_placeholder_text_regex"`
		RepeatedSentencesSimilarityThreshold     *float64 `yaml:"forbid_repeated_sentences_similarity_threshold"`
		AllowExplicitUncertaintyToken            string   `yaml:"allow_explicit_uncertainty_token"`
	} `yaml:"lint"`

	Tags struct {
		Required []string `yaml:"required"`
	} `yaml:"tags"`

	ReadingLevel struct {
		Target string `yaml:"target"`
	} `yaml:"reading_level"`
}

// Heading is one required back-section heading: the compiled matcher plus
// the human label used in section maps and error messages.
type Heading struct {
	Pattern *regexp.Regexp
	Label   string
}

// Compiled carries the policy plus the derived artifacts checkers need:
// compiled heading and placeholder patterns and the authority priority index.
type Compiled struct {
	Policy

	Headings      []Heading
	Placeholders  []*regexp.Regexp
	PriorityIndex map[string]int
}

// defaultSimilarity applies when a threshold section omits its cutoff.
const defaultSimilarity = 0.8

// Compile derives the runtime artifacts from a parsed policy. Heading
// patterns arrive with YAML double-backslash escaping; normalise to single
// backslashes before handing them to the regexp engine.
func Compile(p Policy) (*Compiled, error) {
	c := &Compiled{Policy: p, PriorityIndex: map[string]int{}}
	for _, raw := range p.Back.RequiredHeadingsRegex {
		text := strings.ReplaceAll(raw, `\\`, `\`)
		// Heading patterns match at line start, whether or not the policy
		// author anchored them (a doubled ^ is harmless).
		re, err := regexp.Compile(`^(?i:` + text + `)`)
		if err != nil {
			return nil, &ConfigError{Path: "", Reason: "heading pattern " + raw + ": " + err.Error()}
		}
		c.Headings = append(c.Headings, Heading{Pattern: re, Label: headingLabel(text)})
	}
	for _, raw := range p.Lint.ForbidPlaceholderTextRegex {
		re, err := regexp.Compile(`(?i)` + raw)
		if err != nil {
			return nil, &ConfigError{Path: "", Reason: "placeholder pattern " + raw + ": " + err.Error()}
		}
		c.Placeholders = append(c.Placeholders, re)
	}
	for i, name := range p.Authorities.PriorityOrder {
		c.PriorityIndex[name] = i
	}
	return c, nil
}

// MaxAuthoritiesPerStep returns the per-step authority cap, 1 when the
// policy omits it. An explicit zero is kept as written.
func (c *Compiled) MaxAuthoritiesPerStep() int {
	if v := c.Back.AuthorityPerStep.MaxPerStep; v != nil {
		return *v
	}
	return 1
}

// TripwireSimilarityThreshold returns the tripwire near-duplicate cutoff,
// defaulting when the policy omits it. An explicit zero is kept as written
// and flags every pair.
func (c *Compiled) TripwireSimilarityThreshold() float64 {
	if v := c.Tripwires.DuplicateSimilarityThreshold; v != nil {
		return *v
	}
	return defaultSimilarity
}

// RepeatedSentenceSimilarityThreshold returns the cross-field duplicate
// sentence cutoff, defaulting when the policy omits it.
func (c *Compiled) RepeatedSentenceSimilarityThreshold() float64 {
	if v := c.Lint.RepeatedSentencesSimilarityThreshold; v != nil {
		return *v
	}
	return defaultSimilarity
}

// headingLabel recovers a display label from a heading pattern, e.g.
// `^Rule\.` -> "Rule.".
func headingLabel(pattern string) string {
	s := strings.Trim(pattern, "^$")
	s = strings.ReplaceAll(s, `\.`, ".")
	s = strings.ReplaceAll(s, `\`, "")
	return s
}

// UncertaintyToken returns the configured escape token, or "" when unset.
func (c *Compiled) UncertaintyToken() string {
	return strings.TrimSpace(c.Lint.AllowExplicitUncertaintyToken)
}
