package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lawcards/cardlint/internal/card"
	"github.com/lawcards/cardlint/internal/lexical"
	"github.com/lawcards/cardlint/internal/mindmap"
	"github.com/lawcards/cardlint/internal/policy"
	"github.com/lawcards/cardlint/internal/section"
)

// checkDiagram validates the fenced mindmap block: fence and language tag,
// diagram type declaration, total node cap, top-level branch range, and the
// soft rule against branches that merely mirror section headings.
func (v *Validator) checkDiagram(c card.Card, parsed section.Parsed, res *Result) {
	raw, present := c.Get("diagram")
	if !present {
		res.AddError("Diagram content is missing")
		return
	}
	text, isString := raw.(string)
	if !isString {
		res.AddError("Diagram must be provided as a string")
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		res.AddError("Diagram must not be empty")
		return
	}
	pol := v.pol.Diagram
	if pol == (policy.Policy{}).Diagram {
		return
	}

	block := mindmap.ExtractBlock(text)
	if block == nil {
		res.AddError("Diagram must be a fenced mermaid block")
		return
	}
	if pol.MustBeValidMermaid && block.Language != "mermaid" {
		res.AddError("Diagram fence must declare mermaid language")
	}
	if len(block.Lines) == 0 {
		res.AddError("Diagram mermaid content is empty")
		return
	}
	if pol.Type == "mindmap" && !block.DeclaresMindmap() {
		res.AddError("Diagram must declare a mindmap")
	}

	nodeLines := block.NodeLines()
	if pol.MaxTotalNodes > 0 {
		if total := mindmap.CountNodes(nodeLines); total > pol.MaxTotalNodes {
			res.AddError(fmt.Sprintf("Mindmap contains %d nodes but maximum is %d", total, pol.MaxTotalNodes))
		}
	}

	branches := mindmap.CountTopLevelBranches(nodeLines)
	if pol.TopLevelBranchesMin > 0 && branches < pol.TopLevelBranchesMin {
		res.AddError(fmt.Sprintf(
			"Mindmap must have at least %d top-level branches (found %d)", pol.TopLevelBranchesMin, branches))
	}
	if pol.TopLevelBranchesMax > 0 && branches > pol.TopLevelBranchesMax {
		res.AddError(fmt.Sprintf(
			"Mindmap must have no more than %d top-level branches (found %d)", pol.TopLevelBranchesMax, branches))
	}

	if pol.DiscourageHeadingMirroring {
		headings := map[string]bool{}
		for label := range parsed.Sections {
			headings[lexical.NormalizeLabel(label)] = true
		}
		var mirrored []string
		seen := map[string]bool{}
		for _, label := range mindmap.TopLevelLabels(nodeLines) {
			if headings[lexical.NormalizeLabel(label)] && !seen[label] {
				seen[label] = true
				mirrored = append(mirrored, label)
			}
		}
		if len(mirrored) > 0 {
			sort.Strings(mirrored)
			res.AddWarning("Mindmap branches mirror back section headings: " + strings.Join(mirrored, ", "))
		}
	}
}
