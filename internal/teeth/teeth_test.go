package teeth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	testCases := []struct {
		input    string
		expected Code
		wantErr  bool
	}{
		{input: "11", expected: 11},
		{input: " 48 ", expected: 48},
		{input: "۲۳", expected: 23},
		{input: "10", wantErr: true},
		{input: "19", wantErr: true},
		{input: "51", wantErr: true},
		{input: "1", wantErr: true},
		{input: "111", wantErr: true},
		{input: "ab", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			c, err := ParseCode(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestParseCSV(t *testing.T) {
	assert.Equal(t, []string{"11", "22"}, ParseCSV(" 11, ,22,"))
	assert.Nil(t, ParseCSV(""))
}

func TestSelectionToggleKeepsSortedField(t *testing.T) {
	s := NewSelection("")

	for _, tooth := range [][2]int{{3, 4}, {1, 2}, {2, 1}, {1, 1}} {
		active, err := s.Toggle(tooth[0], tooth[1])
		require.NoError(t, err)
		assert.True(t, active)
	}
	assert.Equal(t, "11,12,21,34", s.CSV())

	active, err := s.Toggle(1, 2)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, "11,21,34", s.CSV())

	_, err = s.Toggle(5, 1)
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, "11,21,34", s.CSV())
}

func TestNewSelectionNormalizes(t *testing.T) {
	s := NewSelection("48, 11،۲۱,11,99,x")
	assert.Equal(t, "11,21,48", s.CSV())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(21))
}

func TestSelectionBulk(t *testing.T) {
	s := NewSelection("31")

	require.True(t, s.Bulk(BulkUpperAll))
	assert.Equal(t, 17, s.Len())
	assert.Equal(t, Code(11), s.Codes()[0])
	assert.Equal(t, Code(31), s.Codes()[16])

	require.True(t, s.Bulk(BulkLowerAll))
	assert.Equal(t, 32, s.Len())

	assert.False(t, s.Bulk("left-side"))
	assert.Equal(t, 32, s.Len())

	require.True(t, s.Bulk(BulkClear))
	assert.Equal(t, "", s.CSV())
}

func TestPrefill(t *testing.T) {
	notes := "رنگ A2\n" + NotesLabel + ": ۱۱, ۲۱"

	assert.Equal(t, "12", Prefill("12", "13", "14", notes).CSV())
	assert.Equal(t, "13", Prefill(" ", "13", "14", notes).CSV())
	assert.Equal(t, "14", Prefill("", "", "14", notes).CSV())
	assert.Equal(t, "11,21", Prefill("", "", "", notes).CSV())
	assert.Equal(t, "", Prefill("", "", "", "").CSV())
}

func TestSummary(t *testing.T) {
	testCases := []struct {
		name     string
		csv      string
		expected string
		empty    bool
	}{
		{name: "empty field", csv: "", expected: EmptySummary, empty: true},
		{name: "only invalid", csv: "99,5", expected: EmptySummary, empty: true},
		{
			name:     "all quadrants in fixed order",
			csv:      "48,31,26,12,11",
			expected: "بالا راست: 1, 2  |  بالا چپ: 6  |  پایین چپ: 1  |  پایین راست: 8",
		},
		{
			name:     "positions sorted within quadrant",
			csv:      "37,33,35",
			expected: "پایین چپ: 3, 5, 7",
		},
		{
			name:     "skips quadrant with no teeth",
			csv:      "41,21",
			expected: "بالا چپ: 1  |  پایین راست: 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, empty := Summary(tc.csv)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.empty, empty)
		})
	}
}

func TestExtractFromNotes(t *testing.T) {
	assert.Equal(t, "11,21,36", ExtractFromNotes("رنگ A2\n"+NotesLabel+": ۱۱، 21 ,36"))
	assert.Equal(t, "", ExtractFromNotes("no teeth here"))
	assert.Equal(t, "", ExtractFromNotes(""))
}

func TestSyncNotes(t *testing.T) {
	testCases := []struct {
		name     string
		notes    string
		csv      string
		expected string
	}{
		{
			name:     "appends line to existing notes",
			notes:    "رنگ A2",
			csv:      "11,21",
			expected: "رنگ A2\n" + NotesLabel + ": 11, 21",
		},
		{
			name:     "replaces previous line",
			notes:    "first\n" + NotesLabel + ": 11\nsecond",
			csv:      "12",
			expected: "first\nsecond\n" + NotesLabel + ": 12",
		},
		{
			name:     "removes every previous line",
			notes:    NotesLabel + ": 11\n" + NotesLabel + " : 12\nkeep",
			csv:      "13",
			expected: "keep\n" + NotesLabel + ": 13",
		},
		{
			name:     "only the line when notes empty",
			notes:    "",
			csv:      "48",
			expected: NotesLabel + ": 48",
		},
		{
			name:     "no codes drops the line",
			notes:    "first\n" + NotesLabel + ": 11",
			csv:      "",
			expected: "first",
		},
		{
			name:     "no codes and no line leaves notes",
			notes:    "  untouched  ",
			csv:      "",
			expected: "  untouched  ",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SyncNotes(tc.notes, tc.csv))
		})
	}
}
