package workcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasterSunday(t *testing.T) {
	// known dates from published Easter tables
	cases := map[int]time.Time{
		2000: time.Date(2000, time.April, 23, 0, 0, 0, 0, time.UTC),
		2024: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		2025: time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC),
		2026: time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC),
		2038: time.Date(2038, time.April, 25, 0, 0, 0, 0, time.UTC),
	}

	for year, want := range cases {
		assert.Equal(t, want, EasterSunday(year), "year %d", year)
	}
}

func TestHolidaysForYear(t *testing.T) {
	holidays := HolidaysForYear(2025)
	require.Len(t, holidays, 11)

	// movable feasts for 2025: Easter Monday and Corpus Christi
	assert.Contains(t, holidays, time.Date(2025, time.April, 21, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, holidays, time.Date(2025, time.June, 19, 0, 0, 0, 0, time.UTC))

	for _, h := range holidays {
		assert.Equal(t, 2025, h.Year())
	}
}

func TestIsHoliday(t *testing.T) {
	assert.True(t, IsHoliday(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsHoliday(time.Date(2025, time.June, 19, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsHoliday(time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsHoliday(time.Date(2025, time.April, 22, 0, 0, 0, 0, time.UTC)))

	// movable feasts shift with the year
	assert.True(t, IsHoliday(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsHoliday(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBusinessDaysInMonth(t *testing.T) {
	// January 2025: 23 weekdays minus New Year (Wed) and Epiphany (Mon)
	days, err := BusinessDaysInMonth(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 21, days)

	// February 2025 has no holidays
	days, err = BusinessDaysInMonth(2025, 2)
	require.NoError(t, err)
	assert.Equal(t, 20, days)

	// leap February
	days, err = BusinessDaysInMonth(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 21, days)

	// November 2025: All Saints falls on a Saturday, only Nov 11 reduces the count
	days, err = BusinessDaysInMonth(2025, 11)
	require.NoError(t, err)
	assert.Equal(t, 19, days)
}

func TestBusinessDaysInMonthInvalid(t *testing.T) {
	_, err := BusinessDaysInMonth(2025, 0)
	assert.Error(t, err)

	_, err = BusinessDaysInMonth(2025, 13)
	assert.Error(t, err)
}

func TestMonthlyNorm(t *testing.T) {
	norm, err := MonthlyNorm(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 168, norm)

	for month := 1; month <= 12; month++ {
		norm, err := MonthlyNorm(2025, month)
		require.NoError(t, err)
		assert.Zero(t, norm%8, "month %d", month)
	}
}

func TestQuarterlyNorm(t *testing.T) {
	for quarter := 1; quarter <= 4; quarter++ {
		want := 0
		for month := (quarter-1)*3 + 1; month <= quarter*3; month++ {
			norm, err := MonthlyNorm(2025, month)
			require.NoError(t, err)
			want += norm
		}

		got, err := QuarterlyNorm(2025, quarter)
		require.NoError(t, err)
		assert.Equal(t, want, got, "quarter %d", quarter)
	}

	_, err := QuarterlyNorm(2025, 0)
	assert.Error(t, err)
	_, err = QuarterlyNorm(2025, 5)
	assert.Error(t, err)
}

func TestQuarterOfMonth(t *testing.T) {
	assert.Equal(t, 1, QuarterOfMonth(1))
	assert.Equal(t, 1, QuarterOfMonth(3))
	assert.Equal(t, 2, QuarterOfMonth(4))
	assert.Equal(t, 3, QuarterOfMonth(9))
	assert.Equal(t, 4, QuarterOfMonth(12))
}
