package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGregorianRoundTrip(t *testing.T) {
	cases := []struct {
		year, month, day int
	}{
		{1404, 1, 1},
		{1404, 6, 31},
		{1404, 7, 1},
		{1404, 7, 30},
		{1404, 11, 30},
		{1404, 12, 29},
		{1403, 12, 30}, // leap year Esfand
	}

	for _, tc := range cases {
		g, err := ToGregorian(tc.year, tc.month, tc.day)
		require.NoError(t, err, "%d/%d/%d", tc.year, tc.month, tc.day)

		key := DateKey(g)
		require.Len(t, key, 10)

		parsed, err := ParseDateKey(key)
		require.NoError(t, err)
		assert.True(t, parsed.Equal(g), "key %s should decode back to the same date", key)

		y, m, d := ToJalali(g)
		assert.Equal(t, tc.year, y)
		assert.Equal(t, tc.month, m)
		assert.Equal(t, tc.day, d)
	}
}

func TestToGregorianRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name             string
		year, month, day int
	}{
		{"day 31 of a 30-day month", 1404, 7, 31},
		{"day 32 of a 31-day month", 1404, 1, 32},
		{"day 30 of Esfand in a common year", 1404, 12, 30},
		{"day zero", 1404, 3, 0},
		{"month zero", 1404, 0, 5},
		{"month thirteen", 1404, 13, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToGregorian(tc.year, tc.month, tc.day)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(1404, 1))
	assert.Equal(t, 31, DaysInMonth(1404, 6))
	assert.Equal(t, 30, DaysInMonth(1404, 7))
	assert.Equal(t, 30, DaysInMonth(1404, 11))
	assert.Equal(t, 29, DaysInMonth(1404, 12))
	assert.Equal(t, 30, DaysInMonth(1403, 12), "1403 is a leap year")
}

func TestDateKeyZeroPadding(t *testing.T) {
	g, err := ToGregorian(1404, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-21", DateKey(g))
}

func TestWeekdayName(t *testing.T) {
	// 2025-08-29 is a Friday.
	friday := time.Date(2025, 8, 29, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "جمعه", WeekdayName(friday))
	assert.Equal(t, "شنبه", WeekdayName(friday.AddDate(0, 0, 1)))
}

func TestMonthNames(t *testing.T) {
	assert.Equal(t, "فروردین", MonthName(1))
	assert.Equal(t, "اسفند", MonthName(12))
	assert.Equal(t, "", MonthName(13))

	n, ok := MonthNumber("شهریور")
	require.True(t, ok)
	assert.Equal(t, 6, n)

	_, ok = MonthNumber("نامشخص")
	assert.False(t, ok)
}

func TestDigitConversion(t *testing.T) {
	assert.Equal(t, "۱۴۰۴", ToPersianDigits("1404"))
	assert.Equal(t, "1404", NormalizeDigits("۱۴۰۴"))
	assert.Equal(t, "12. کار", NormalizeDigits("۱۲. کار"))
}

func TestTodayKeyUsesClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 8, 29, 23, 30, 0, 0, time.Local) }
	assert.Equal(t, "2025-08-29", TodayKey(clock))
	assert.Equal(t, 1404, CurrentYear(clock))
}
