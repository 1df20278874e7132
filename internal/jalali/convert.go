package jalali

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/harentsoaR/dentlab-api/internal/digits"
)

const (
	isoLayout      = "2006-01-02"
	looseISOLayout = "2006-1-2"
)

// gregorianCutoff separates Jalali from Gregorian years in ParseDay. No
// Jalali year the lab deals with comes close to it, and no Gregorian one
// falls below it.
const gregorianCutoff = 1700

var (
	isoPattern    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	jalaliPattern = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	dayPattern    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// ErrInvalidDate is returned by ParseDay when the input is neither a valid
// Gregorian nor a valid Jalali date.
var ErrInvalidDate = errors.New("invalid date")

// NormalizeDateString trims s, converts localized digits to ASCII and
// replaces "/" with "-", so "۱۴۰۴/۰۷/۰۴" becomes "1404-07-04".
func NormalizeDateString(s string) string {
	s = digits.Normalize(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "/", "-")
}

// ISOToJalali converts a Gregorian "YYYY-MM-DD" date into the Jalali
// "YYYY/MM/DD" form. The boolean is false when iso is malformed or names a
// day that does not exist.
func ISOToJalali(iso string) (string, bool) {
	s := digits.Normalize(strings.TrimSpace(iso))
	if !isoPattern.MatchString(s) {
		return "", false
	}
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return "", false
	}
	d := FromTime(t)
	if !yearSupported(d.Year) {
		return "", false
	}
	return d.String(), true
}

// JalaliToISO converts a Jalali "YYYY/MM/DD" date, with either "/" or "-"
// separators and Persian, Arabic-Indic or ASCII digits, into Gregorian
// "YYYY-MM-DD". The boolean is false when the input cannot be converted.
func JalaliToISO(j string) (string, bool) {
	d, ok := ParseJalali(j)
	if !ok {
		return "", false
	}
	return d.Time().Format(isoLayout), true
}

// ParseJalali parses a Jalali date string and checks that the day exists.
func ParseJalali(j string) (Date, bool) {
	s := digits.Normalize(strings.ReplaceAll(strings.TrimSpace(j), "-", "/"))
	m := jalaliPattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	dd, _ := strconv.Atoi(m[3])
	d := Date{Year: y, Month: mo, Day: dd}
	if !d.Valid() {
		return Date{}, false
	}
	return d, true
}

// ParseDay accepts either a Gregorian or a Jalali date with one- or
// two-digit month and day, and returns midnight UTC of that day. Years from
// 1700 on are Gregorian, earlier ones Jalali. "/" separators always mean
// Jalali, so "2023/3/21" is rejected rather than misread.
func ParseDay(s string) (time.Time, error) {
	slashed := strings.Contains(s, "/")
	norm := NormalizeDateString(s)
	m := dayPattern.FindStringSubmatch(norm)
	if m == nil {
		return time.Time{}, ErrInvalidDate
	}
	if y, _ := strconv.Atoi(m[1]); y >= gregorianCutoff {
		if slashed {
			return time.Time{}, ErrInvalidDate
		}
		t, err := time.Parse(looseISOLayout, norm)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return t, nil
	}
	d, ok := ParseJalali(norm)
	if !ok {
		return time.Time{}, ErrInvalidDate
	}
	return d.Time(), nil
}
