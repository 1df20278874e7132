// Package digits converts Persian and Arabic-Indic digits to ASCII.
package digits

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	persianZero = '۰' // U+06F0
	arabicZero  = '٠' // U+0660
)

var toASCII = runes.Map(func(r rune) rune {
	switch {
	case r >= persianZero && r <= persianZero+9:
		return '0' + (r - persianZero)
	case r >= arabicZero && r <= arabicZero+9:
		return '0' + (r - arabicZero)
	}
	return r
})

// Normalize returns s with every Persian or Arabic-Indic digit replaced by
// its ASCII equivalent. Other runes are left untouched.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	out, _, err := transform.String(toASCII, s)
	if err != nil {
		return s
	}
	return out
}
