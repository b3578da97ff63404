// Package workcal computes the Polish public-holiday calendar and the
// statutory working-time norms derived from it.
package workcal

import "time"

// EasterSunday returns the date of Easter Sunday for the given year,
// using the anonymous Gregorian computus. Valid for years >= 1583.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// HolidaysForYear returns the 11 Polish public holidays of the year:
// nine fixed dates plus Easter Monday and Corpus Christi.
func HolidaysForYear(year int) []time.Time {
	easter := EasterSunday(year)

	return []time.Time{
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),   // Nowy Rok
		time.Date(year, time.January, 6, 0, 0, 0, 0, time.UTC),   // Trzech Króli
		easter.AddDate(0, 0, 1),                                   // Poniedziałek Wielkanocny
		time.Date(year, time.May, 1, 0, 0, 0, 0, time.UTC),       // Święto Pracy
		time.Date(year, time.May, 3, 0, 0, 0, 0, time.UTC),       // Święto Konstytucji 3 Maja
		easter.AddDate(0, 0, 60),                                  // Boże Ciało
		time.Date(year, time.August, 15, 0, 0, 0, 0, time.UTC),   // Wniebowzięcie NMP
		time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC),  // Wszystkich Świętych
		time.Date(year, time.November, 11, 0, 0, 0, 0, time.UTC), // Święto Niepodległości
		time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC), // Boże Narodzenie
		time.Date(year, time.December, 26, 0, 0, 0, 0, time.UTC), // drugi dzień Świąt
	}
}

// IsHoliday reports whether the given day (compared by calendar date)
// is a public holiday.
func IsHoliday(day time.Time) bool {
	for _, h := range HolidaysForYear(day.Year()) {
		if h.Month() == day.Month() && h.Day() == day.Day() {
			return true
		}
	}
	return false
}
