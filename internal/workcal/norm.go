package workcal

import (
	"fmt"
	"time"
)

const hoursPerBusinessDay = 8

// BusinessDaysInMonth counts the Monday to Friday days of the month that
// are not public holidays.
func BusinessDaysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("month %d is out of range", month)
	}

	holidays := make(map[time.Time]struct{})
	for _, h := range HolidaysForYear(year) {
		holidays[h] = struct{}{}
	}

	count := 0
	d := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for d.Month() == time.Month(month) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			if _, holiday := holidays[d]; !holiday {
				count++
			}
		}
		d = d.AddDate(0, 0, 1)
	}

	return count, nil
}

// MonthlyNorm is the statutory working-time norm for the month:
// 8 hours per business day.
func MonthlyNorm(year, month int) (int, error) {
	days, err := BusinessDaysInMonth(year, month)
	if err != nil {
		return 0, err
	}
	return days * hoursPerBusinessDay, nil
}

// QuarterlyNorm sums the monthly norms of the quarter's three months.
func QuarterlyNorm(year, quarter int) (int, error) {
	if quarter < 1 || quarter > 4 {
		return 0, fmt.Errorf("quarter %d is out of range", quarter)
	}

	total := 0
	for month := (quarter-1)*3 + 1; month <= quarter*3; month++ {
		norm, err := MonthlyNorm(year, month)
		if err != nil {
			return 0, err
		}
		total += norm
	}

	return total, nil
}

// QuarterOfMonth returns the quarter (1..4) the month belongs to.
func QuarterOfMonth(month int) int {
	return (month-1)/3 + 1
}
