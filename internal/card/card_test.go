package card

import (
	"errors"
	"reflect"
	"testing"
)

func TestFlattenAnchorsSequence(t *testing.T) {
	got, err := FlattenAnchors([]any{"Smith v Jones [2001] HCA 5", " ", "Wrongs Act 1958 (Vic) s 48"})
	if err != nil {
		t.Fatalf("FlattenAnchors: %v", err)
	}
	want := []string{"Smith v Jones [2001] HCA 5", "Wrongs Act 1958 (Vic) s 48"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FlattenAnchors = %v, want %v", got, want)
	}
}

func TestFlattenAnchorsMapping(t *testing.T) {
	got, err := FlattenAnchors(map[string]any{
		"statutes": []any{"Wrongs Act 1958 (Vic) s 48"},
		"cases":    []any{"Smith v Jones [2001] HCA 5"},
		"notes":    "persuasive only",
	})
	if err != nil {
		t.Fatalf("FlattenAnchors: %v", err)
	}
	// Mapping keys iterate sorted, so cases precede notes precede statutes.
	want := []string{"Smith v Jones [2001] HCA 5", "persuasive only", "Wrongs Act 1958 (Vic) s 48"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FlattenAnchors = %v, want %v", got, want)
	}
}

func TestFlattenAnchorsBareString(t *testing.T) {
	got, err := FlattenAnchors("Smith v Jones [2001] HCA 5")
	if err != nil {
		t.Fatalf("FlattenAnchors: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected single anchor, got %v", got)
	}
}

func TestFlattenAnchorsBadShape(t *testing.T) {
	_, err := FlattenAnchors(42)
	var bad *BadShapeError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadShapeError, got %v", err)
	}
	_, err = FlattenAnchors(map[string]any{"cases": 7})
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadShapeError for bad mapping value, got %v", err)
	}
}

func TestIsEmptyValue(t *testing.T) {
	if !IsEmptyValue("  ") {
		t.Fatalf("blank string should be empty")
	}
	if !IsEmptyValue([]any{" ", ""}) {
		t.Fatalf("sequence of blanks should be empty")
	}
	if IsEmptyValue([]any{"x"}) {
		t.Fatalf("non-blank sequence should not be empty")
	}
	if IsEmptyValue(0) {
		t.Fatalf("numeric zero is not empty under the schema rules")
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	if _, err := Parse([]byte("")); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestStringCoercesScalars(t *testing.T) {
	c := Card{"front": "Q?", "reading_level": 1}
	if got := c.String("reading_level"); got != "1" {
		t.Fatalf("String coercion = %q", got)
	}
	if got := c.String("absent"); got != "" {
		t.Fatalf("absent field should read empty, got %q", got)
	}
}
