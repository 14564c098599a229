package contribution

import (
	"fmt"
)

// Validate checks the structural properties the calculator relies on:
// non-empty, ordered, contiguous brackets and a positive period count.
func (t TableSet) Validate() error {
	if t.PeriodsPerYear <= 0 {
		return fmt.Errorf("%w: periods_per_year must be positive", ErrInvalidTableSet)
	}
	if len(t.SSS.Brackets) == 0 {
		return fmt.Errorf("%w: sss brackets are empty", ErrInvalidTableSet)
	}
	for i := 1; i < len(t.SSS.Brackets); i++ {
		prev, cur := t.SSS.Brackets[i-1], t.SSS.Brackets[i]
		if prev.Max == nil {
			return fmt.Errorf("%w: sss bracket %d is open but not last", ErrInvalidTableSet, i-1)
		}
		if !cur.Min.GreaterThan(*prev.Max) || cur.Credit.LessThan(prev.Credit) {
			return fmt.Errorf("%w: sss bracket %d is out of order", ErrInvalidTableSet, i)
		}
	}
	if len(t.Tax.Brackets) == 0 {
		return fmt.Errorf("%w: tax brackets are empty", ErrInvalidTableSet)
	}
	for i := 1; i < len(t.Tax.Brackets); i++ {
		if !t.Tax.Brackets[i].Over.GreaterThan(t.Tax.Brackets[i-1].Over) {
			return fmt.Errorf("%w: tax bracket %d is out of order", ErrInvalidTableSet, i)
		}
	}
	if t.PhilHealth.Ceiling.LessThan(t.PhilHealth.Floor) || t.PagIBIG.Ceiling.LessThan(t.PagIBIG.Floor) {
		return fmt.Errorf("%w: premium ceiling below floor", ErrInvalidTableSet)
	}
	return nil
}
