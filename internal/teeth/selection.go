package teeth

import (
	"slices"
	"strings"

	"github.com/harentsoaR/dentlab-api/internal/digits"
)

// Bulk actions offered by the chart's group buttons.
const (
	BulkClear    = "clear"
	BulkUpperAll = "upper-all"
	BulkLowerAll = "lower-all"
)

// Selection is the set of teeth picked on the chart.
type Selection struct {
	codes map[Code]struct{}
}

// NewSelection loads a selection from a hidden-field value. Arabic commas and
// localized digits are accepted; entries that are not valid FDI codes are
// dropped.
func NewSelection(csv string) *Selection {
	s := &Selection{codes: make(map[Code]struct{})}
	csv = strings.ReplaceAll(digits.Normalize(csv), "،", ",")
	for _, raw := range ParseCSV(csv) {
		if c, err := ParseCode(raw); err == nil {
			s.codes[c] = struct{}{}
		}
	}
	return s
}

// Prefill returns the selection from the first non-empty source, in order:
// the hidden field, the initial data-codes attribute, the card's data-fdi
// attribute, and finally the teeth line found in the notes.
func Prefill(hidden, initCodes, cardFDI, notes string) *Selection {
	for _, src := range []string{hidden, initCodes, cardFDI} {
		if v := strings.TrimSpace(src); v != "" {
			return NewSelection(v)
		}
	}
	return NewSelection(ExtractFromNotes(notes))
}

// Has reports whether code c is selected.
func (s *Selection) Has(c Code) bool {
	_, ok := s.codes[c]
	return ok
}

// Len returns the number of selected teeth.
func (s *Selection) Len() int { return len(s.codes) }

// Toggle flips tooth n of quadrant q and reports whether it is now selected.
func (s *Selection) Toggle(q, n int) (bool, error) {
	c, err := NewCode(q, n)
	if err != nil {
		return false, err
	}
	if s.Has(c) {
		delete(s.codes, c)
		return false, nil
	}
	s.codes[c] = struct{}{}
	return true, nil
}

// Bulk applies a group action. Unknown actions leave the selection as is and
// return false.
func (s *Selection) Bulk(action string) bool {
	var quadrants []int
	switch action {
	case BulkClear:
		clear(s.codes)
		return true
	case BulkUpperAll:
		quadrants = []int{1, 2}
	case BulkLowerAll:
		quadrants = []int{3, 4}
	default:
		return false
	}
	for _, q := range quadrants {
		for n := MinPosition; n <= MaxPosition; n++ {
			s.codes[Code(q*10+n)] = struct{}{}
		}
	}
	return true
}

// Codes returns the selected codes in ascending numeric order.
func (s *Selection) Codes() []Code {
	out := make([]Code, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Strings is Codes rendered as two-digit strings.
func (s *Selection) Strings() []string {
	codes := s.Codes()
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = c.String()
	}
	return out
}

// CSV is the hidden-field value: sorted codes joined by commas.
func (s *Selection) CSV() string {
	return strings.Join(s.Strings(), ",")
}
