// Package teeth implements the FDI tooth chart used on lab orders: code
// parsing, the selection kept in the hidden form field, the per-quadrant
// summary and the "دندان‌ها:" line mirrored into the order notes.
package teeth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/harentsoaR/dentlab-api/internal/digits"
)

const (
	MinQuadrant = 1
	MaxQuadrant = 4
	MinPosition = 1
	MaxPosition = 8
)

var ErrInvalidCode = errors.New("invalid FDI tooth code")

// Code is a two-digit FDI tooth code: quadrant*10 + position.
type Code int

// NewCode builds the code for tooth n in quadrant q.
func NewCode(q, n int) (Code, error) {
	if q < MinQuadrant || q > MaxQuadrant || n < MinPosition || n > MaxPosition {
		return 0, fmt.Errorf("%w: quadrant %d position %d", ErrInvalidCode, q, n)
	}
	return Code(q*10 + n), nil
}

// ParseCode parses a two-digit code such as "11" or "۴۸".
func ParseCode(s string) (Code, error) {
	s = digits.Normalize(strings.TrimSpace(s))
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCode, s)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCode, s)
	}
	return NewCode(v/10, v%10)
}

func (c Code) Quadrant() int { return int(c) / 10 }

func (c Code) Position() int { return int(c) % 10 }

func (c Code) String() string { return strconv.Itoa(int(c)) }

// ParseCSV splits a comma-separated field into trimmed, non-empty entries.
// Entries are not validated.
func ParseCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
