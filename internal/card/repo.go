package card

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Load reads one card document from a YAML file.
func Load(path string) (Card, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a card from YAML bytes. The document must be a mapping.
func Parse(b []byte) (Card, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse card: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("parse card: document is empty")
	}
	return Card(raw), nil
}

// Save writes the card back to disk with fields in canonical order and
// multi-line strings in literal block style, so repeated fix passes produce
// identical bytes.
func Save(path string, c Card) error {
	node, err := marshalNode(c)
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// List returns the card files under dir (non-recursive), sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yml", ".yaml":
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

func marshalNode(c Card) (*yaml.Node, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	emit := func(key string) error {
		v, ok := c[key]
		if !ok {
			return nil
		}
		var vn yaml.Node
		if err := vn.Encode(v); err != nil {
			return fmt.Errorf("encode field %s: %w", key, err)
		}
		if vn.Kind == yaml.ScalarNode && strings.Contains(vn.Value, "\n") {
			vn.Style = yaml.LiteralStyle
		}
		kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		doc.Content = append(doc.Content, kn, &vn)
		return nil
	}
	seen := map[string]bool{}
	for _, key := range KnownFields {
		if err := emit(key); err != nil {
			return nil, err
		}
		seen[key] = true
	}
	var rest []string
	for key := range c {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		if err := emit(key); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
