// Package jalali converts dates between the Gregorian and the Jalali
// (Persian solar) calendars.
//
// The arithmetic follows the 33-year cycle break table and is valid for
// Jalali years -61 through 3177.
package jalali

import (
	"fmt"
	"time"
)

var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181,
	1210, 1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// Date is a day in the Jalali calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Valid reports whether d names an existing Jalali day in the supported range.
func (d Date) Valid() bool {
	if !yearSupported(d.Year) || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= MonthLength(d.Year, d.Month)
}

// Time returns midnight UTC of the Gregorian day matching d.
func (d Date) Time() time.Time {
	gy, gm, gd := dayToGregorian(jalaliToDay(d.Year, d.Month, d.Day))
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC)
}

// FromTime returns the Jalali date of t's calendar day, in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return dayToJalali(gregorianToDay(y, int(m), d))
}

// IsLeap reports whether jy is a Jalali leap year.
func IsLeap(jy int) bool {
	if !yearSupported(jy) {
		return false
	}
	leap, _, _ := cycle(jy)
	return leap == 0
}

// MonthLength returns the number of days in month jm of year jy.
func MonthLength(jy, jm int) int {
	switch {
	case jm <= 6:
		return 31
	case jm <= 11:
		return 30
	case IsLeap(jy):
		return 30
	}
	return 29
}

func yearSupported(jy int) bool {
	return jy >= breaks[0] && jy < breaks[len(breaks)-1]
}

// cycle locates jy within the break table. It returns the number of years
// since the last leap year (0 means jy is leap), the Gregorian year in which
// jy begins and the March day of Farvardin 1.
func cycle(jy int) (leap, gy, march int) {
	gy = jy + 621
	leapJ := -14
	jp := breaks[0]
	jump := 0
	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + (jump%33)/4
		jp = jm
	}
	n := jy - jp

	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}
	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march = 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap = ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}
	return leap, gy, march
}

func jalaliToDay(jy, jm, jd int) int {
	_, gy, march := cycle(jy)
	return gregorianToDay(gy, 3, march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1
}

func dayToJalali(jdn int) Date {
	gy, _, _ := dayToGregorian(jdn)
	jy := gy - 621
	leap, _, march := cycle(jy)
	k := jdn - gregorianToDay(gy, 3, march)
	if k >= 0 {
		if k <= 185 {
			return Date{Year: jy, Month: 1 + k/31, Day: k%31 + 1}
		}
		k -= 186
	} else {
		jy--
		k += 179
		if leap == 1 {
			k++
		}
	}
	return Date{Year: jy, Month: 7 + k/30, Day: k%30 + 1}
}

// gregorianToDay returns the Julian Day Number of a Gregorian date.
func gregorianToDay(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

func dayToGregorian(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := (j%1461)/4*5 + 308
	gd = (i%153)/5 + 1
	gm = (i/153)%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}
