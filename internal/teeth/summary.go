package teeth

import (
	"slices"
	"strconv"
	"strings"
)

// EmptySummary is shown while no tooth is selected.
const EmptySummary = "هنوز دندانی انتخاب نشده است."

const summarySeparator = "  |  "

var quadrantLabels = [MaxQuadrant + 1]string{
	1: "بالا راست",
	2: "بالا چپ",
	3: "پایین چپ",
	4: "پایین راست",
}

// Summary renders the codes of a hidden-field value grouped by quadrant,
// e.g. "بالا راست: 1, 2  |  پایین چپ: 6". Invalid entries are ignored.
// When nothing valid is selected it returns EmptySummary and true.
func Summary(csv string) (string, bool) {
	var groups [MaxQuadrant + 1][]int
	for _, raw := range ParseCSV(csv) {
		c, err := ParseCode(raw)
		if err != nil {
			continue
		}
		q := c.Quadrant()
		if !slices.Contains(groups[q], c.Position()) {
			groups[q] = append(groups[q], c.Position())
		}
	}

	var parts []string
	for q := MinQuadrant; q <= MaxQuadrant; q++ {
		if len(groups[q]) == 0 {
			continue
		}
		slices.Sort(groups[q])
		nums := make([]string, len(groups[q]))
		for i, n := range groups[q] {
			nums[i] = strconv.Itoa(n)
		}
		parts = append(parts, quadrantLabels[q]+": "+strings.Join(nums, ", "))
	}
	if len(parts) == 0 {
		return EmptySummary, true
	}
	return strings.Join(parts, summarySeparator), false
}
