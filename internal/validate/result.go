package validate

// Result accumulates everything the checkers found on one card. A card is
// valid iff it has zero errors; warnings never block.
type Result struct {
	Errors   []string
	Warnings []string
}

func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// IsValid reports whether the card had zero errors.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}
