package digits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "ascii untouched", input: "2023-03-21", expected: "2023-03-21"},
		{name: "persian digits", input: "۱۴۰۲/۰۱/۰۱", expected: "1402/01/01"},
		{name: "arabic-indic digits", input: "٠١٢٣٤٥٦٧٨٩", expected: "0123456789"},
		{name: "mixed text", input: "دندان‌ها: ۱۱، 12", expected: "دندان‌ها: 11، 12"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}
