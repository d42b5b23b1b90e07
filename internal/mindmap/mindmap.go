// Package mindmap parses the fenced diagram block on a card and exposes the
// structural counts the diagram checker needs.
package mindmap

import (
	"regexp"
	"strings"
)

// Block is the fenced code block extracted from a diagram field.
type Block struct {
	// Language is the fence's declared language tag, lowercased.
	Language string
	// Lines holds the non-blank content lines, trailing space trimmed.
	Lines []string
}

var fenceRe = regexp.MustCompile("(?s)```\\s*(\\w+)\\s*(.*?)```")

// ExtractBlock finds the first fenced block with a language tag. The tag may
// sit on the fence line or on the next line (a bare fence followed by
// "mindmap" reads that word as the tag). Returns nil when the text contains
// no such fence.
func ExtractBlock(text string) *Block {
	m := fenceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	b := &Block{Language: strings.ToLower(strings.TrimSpace(m[1]))}
	for _, line := range strings.Split(m[2], "\n") {
		if strings.TrimSpace(line) != "" {
			b.Lines = append(b.Lines, strings.TrimRight(line, " \t"))
		}
	}
	return b
}

// DeclaresMindmap reports whether the first content line declares the
// mindmap diagram type.
func (b *Block) DeclaresMindmap() bool {
	return len(b.Lines) > 0 &&
		strings.HasPrefix(strings.ToLower(strings.TrimSpace(b.Lines[0])), "mindmap")
}

// NodeLines returns the content lines excluding a leading mindmap
// declaration.
func (b *Block) NodeLines() []string {
	if b.DeclaresMindmap() {
		return b.Lines[1:]
	}
	return b.Lines
}

// indent counts leading spaces after tab expansion is not applied; the
// source format indents with spaces only.
func indent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// TopLevelLabels returns the labels of lines at the two shallowest
// indentation levels used by the source format, which is how top-level
// branches are written under the root node.
func TopLevelLabels(nodeLines []string) []string {
	var out []string
	for _, line := range nodeLines {
		if n := indent(line); n == 1 || n == 2 {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}

// CountTopLevelBranches counts lines at top-level indentation.
func CountTopLevelBranches(nodeLines []string) int {
	return len(TopLevelLabels(nodeLines))
}

// CountNodes counts all non-blank node lines.
func CountNodes(nodeLines []string) int {
	n := 0
	for _, line := range nodeLines {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// Stub renders a minimal policy-conformant mindmap with the given branch
// labels, used by the fixer when a card has no diagram at all.
func Stub(root string, branches []string) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\nmindmap\n")
	sb.WriteString("root((" + root + "))\n")
	for _, b := range branches {
		sb.WriteString("  " + b + "\n")
	}
	sb.WriteString("```")
	return sb.String()
}
