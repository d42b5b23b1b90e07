package card

import (
	"fmt"
	"sort"
	"strings"
)

// Card is one flashcard document: a mapping with string keys and
// heterogeneous values as loaded from YAML. Typed accessors below give the
// checkers a stable view; shape-shifting fields (anchors, list fields) are
// resolved at this boundary so the rest of the engine never duck-types.
type Card map[string]any

// KnownFields is the canonical field order used when writing a card back to
// disk. Unknown fields are appended after these, sorted, so a fix pass
// produces byte-stable output.
var KnownFields = []string{
	"front", "back", "why_it_matters", "mnemonic", "diagram",
	"tripwires", "anchors", "keywords", "reading_level", "tags",
}

// Has reports field presence, distinct from emptiness.
func (c Card) Has(key string) bool {
	v, ok := c[key]
	return ok && v != nil
}

// Get returns the raw value for key.
func (c Card) Get(key string) (any, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the field coerced to a string, or "" when absent. Scalar
// non-strings are formatted; this mirrors how the original tooling treated
// every prose field as text.
func (c Card) String(key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	return coerce(v)
}

func coerce(v any) string {
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// StringList interprets the field as a sequence of strings, trimming items
// and dropping blanks. ok is false when the value is not a sequence.
func (c Card) StringList(key string) (items []string, ok bool) {
	v, present := c.Get(key)
	if !present {
		return nil, false
	}
	return AsStringList(v)
}

// AsStringList converts a decoded YAML sequence into trimmed non-blank
// strings. Non-sequence values report ok=false.
func AsStringList(v any) ([]string, bool) {
	seq, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if s := strings.TrimSpace(coerce(item)); s != "" {
			out = append(out, s)
		}
	}
	return out, true
}

// IsEmptyValue reports whether a present field counts as empty for the
// required-fields check: a blank string, or a sequence with no non-blank
// element.
func IsEmptyValue(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		for _, item := range t {
			if strings.TrimSpace(coerce(item)) != "" {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// BadShapeError reports a field whose fundamental shape violates the input
// contract (e.g. anchors holding a number). These abort validation rather
// than grading the card.
type BadShapeError struct {
	Field string
	Value any
}

func (e *BadShapeError) Error() string {
	return fmt.Sprintf("card field %q has unusable shape %T", e.Field, e.Value)
}

// FlattenAnchors resolves the anchors union (a sequence, a mapping of
// sequences such as cases/statutes/notes, or a bare string) into a flat ordered
// list of non-blank strings. Mapping values iterate in sorted key order so
// the flattening is deterministic.
func FlattenAnchors(v any) ([]string, error) {
	switch t := v.(type) {
	case []any:
		items, _ := AsStringList(t)
		return items, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var items []string
		for _, k := range keys {
			switch inner := t[k].(type) {
			case []any:
				flat, _ := AsStringList(inner)
				items = append(items, flat...)
			case string:
				if s := strings.TrimSpace(inner); s != "" {
					items = append(items, s)
				}
			case nil:
			default:
				return nil, &BadShapeError{Field: "anchors." + k, Value: inner}
			}
		}
		return items, nil
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}, nil
		}
		return nil, nil
	default:
		return nil, &BadShapeError{Field: "anchors", Value: t}
	}
}
