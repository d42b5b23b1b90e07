package validate

import (
	"fmt"
	"strings"

	"github.com/lawcards/cardlint/internal/authority"
)

// checkAuthorities enforces the per-step citation discipline over the
// Authorities map section: every step cites something, steps stay within the
// per-step cap, categories respect the policy's priority order, UK/PC
// authorities carry a nuance note, and citations are complete.
func (v *Validator) checkAuthorities(sectionText string, res *Result) {
	if strings.TrimSpace(sectionText) == "" {
		res.AddError("Authorities map section is empty")
		return
	}
	var lines []string
	for _, raw := range strings.Split(sectionText, "\n") {
		if s := strings.TrimSpace(raw); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		res.AddError("Authorities map must describe at least one step")
		return
	}

	rules := v.pol.Back.AuthorityPerStep
	maxPerStep := v.pol.MaxAuthoritiesPerStep()
	anyAuthority := false
	for idx, line := range lines {
		step := idx + 1
		extracted := authority.Extract(line, v.pol.UncertaintyToken())
		if len(extracted) == 0 {
			res.AddError(fmt.Sprintf("Step %d in authorities map lacks cited authority", step))
			continue
		}
		anyAuthority = true
		if len(extracted) > maxPerStep {
			res.AddError(fmt.Sprintf(
				"Step %d lists %d authorities; maximum is %d", step, len(extracted), maxPerStep))
		}
		if len(extracted) > 1 && !rules.FallbackAllowed {
			res.AddError(fmt.Sprintf("Step %d cannot include fallback authorities", step))
		}
		categories := make([]authority.Category, len(extracted))
		for i, a := range extracted {
			categories[i] = a.Category
		}
		if !authority.PriorityRespected(categories, v.pol.PriorityIndex) {
			res.AddError(fmt.Sprintf(
				"Step %d authorities are out of priority order (expected %v)", step, v.pol.Authorities.PriorityOrder))
		}
		for _, a := range extracted {
			v.checkAuthorityDetails(a, line, res)
		}
	}
	if rules.LeadRequired && !anyAuthority {
		res.AddError("Authorities map requires at least one lead authority")
	}
}

func (v *Validator) checkAuthorityDetails(a authority.Authority, line string, res *Result) {
	if a.Category == authority.CategoryToken {
		res.AddWarning("Authority placeholder used; follow up to locate verified authority")
		return
	}
	if marker := authority.StatusMarker(a.Text); marker != "" {
		res.AddWarning("Authority marked as " + a.Text)
	}
	if a.Category == authority.CategoryUKPC && !authority.HasNuanceNote(line) {
		res.AddError("UK/PC authority requires a nuance note")
	}
	if v.pol.Authorities.RequireYearAndNeutralOrReportCite && !authority.HasYearAndCitation(a.Text) {
		res.AddError("Authority missing year and neutral/report citation: " + a.Text)
	}
}

// checkStatutes enforces the Statutory hook discipline: operational section
// pinpoints, Victorian legislation first, and Commonwealth coverage when
// the back text engages Commonwealth law.
func (v *Validator) checkStatutes(sectionText, back string, res *Result) {
	if strings.TrimSpace(sectionText) == "" {
		res.AddWarning("Statutory hook section is empty")
		return
	}

	var mentions []string
	for _, raw := range strings.Split(sectionText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, mention := range authority.ExtractStatutes(line) {
			mentions = append(mentions, mention)
			if v.pol.Statutes.IncludeOnlyOperationalSections && !authority.HasOperationalSection(mention) {
				res.AddError("Statute reference must include operational section: " + mention)
			}
		}
	}
	if len(mentions) == 0 {
		res.AddWarning("No statutes referenced in statutory hook")
	}
	if v.pol.Statutes.PreferVictoriaFirst && len(mentions) > 0 {
		if !strings.Contains(mentions[0], "(Vic") {
			res.AddWarning("Victorian legislation should be prioritised before other jurisdictions")
		}
	}
	if v.pol.Statutes.RequireCommonwealthIfEngaged && authority.MentionsCommonwealth(back) {
		cited := false
		for _, mention := range mentions {
			if authority.MentionCitesCommonwealth(mention) {
				cited = true
				break
			}
		}
		if !cited {
			res.AddError("Commonwealth engagement flagged but no Commonwealth statute cited")
		}
	}
}
