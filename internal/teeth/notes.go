package teeth

import (
	"regexp"
	"strings"

	"github.com/harentsoaR/dentlab-api/internal/digits"
)

// NotesLabel prefixes the teeth line written into order notes.
const NotesLabel = "دندان‌ها"

var (
	notesCodes = regexp.MustCompile(NotesLabel + `\s*:\s*([0-9,\s،]+)`)
	notesLine  = regexp.MustCompile(`^\s*` + NotesLabel + `\s*:`)
)

// ExtractFromNotes returns the codes listed on the teeth line of notes as a
// comma-separated value, or "" when there is no such line.
func ExtractFromNotes(notes string) string {
	if notes == "" {
		return ""
	}
	m := notesCodes.FindStringSubmatch(digits.Normalize(notes))
	if m == nil {
		return ""
	}
	return strings.Join(ParseCSV(strings.ReplaceAll(m[1], "،", ",")), ",")
}

// SyncNotes drops every existing teeth line from notes and, when csv holds
// codes, appends a fresh "دندان‌ها: 11, 12" line after the remaining text.
func SyncNotes(notes, csv string) string {
	txt := stripTeethLines(notes)
	codes := ParseCSV(csv)
	if len(codes) == 0 {
		return txt
	}
	line := NotesLabel + ": " + strings.Join(codes, ", ")
	if trimmed := strings.TrimSpace(txt); trimmed != "" {
		return trimmed + "\n" + line
	}
	return line
}

func stripTeethLines(notes string) string {
	lines := strings.Split(notes, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if !notesLine.MatchString(l) {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
