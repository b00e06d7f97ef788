package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// ErrInvalidDate reports a solar-Hijri triple outside calendar bounds.
var ErrInvalidDate = errors.New("invalid date")

// Clock supplies the current time; handlers take it instead of calling
// time.Now so tests can pin the date.
type Clock func() time.Time

const dateKeyLayout = "2006-01-02"

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد",
	"تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر",
	"دی", "بهمن", "اسفند",
}

// Saturday-first week, matching the Jalali calendar.
var weekdayNames = map[time.Weekday]string{
	time.Saturday:  "شنبه",
	time.Sunday:    "یکشنبه",
	time.Monday:    "دوشنبه",
	time.Tuesday:   "سه‌شنبه",
	time.Wednesday: "چهارشنبه",
	time.Thursday:  "پنجشنبه",
	time.Friday:    "جمعه",
}

var persianDigits = map[rune]rune{
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
}

// MonthName returns the Jalali month name for 1-based month, or "" when out
// of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// MonthNumber maps a Jalali month name back to its 1-based number.
func MonthNumber(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, m := range monthNames {
		if m == name {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthNames lists the twelve Jalali month names in order.
func MonthNames() []string {
	names := make([]string, len(monthNames))
	copy(names, monthNames[:])
	return names
}

// DaysInMonth returns the length of a Jalali month: 31 for months 1-6, 30
// for 7-11 and 29 for Esfand, 30 in a leap year.
func DaysInMonth(year, month int) int {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	default:
		if isLeapYear(year) {
			return 30
		}
		return 29
	}
}

func isLeapYear(year int) bool {
	return ptime.Date(year, ptime.Farvardin, 1, 0, 0, 0, 0, ptime.Iran()).IsLeap()
}

// ToGregorian converts a Jalali (year, month, day) triple to a Gregorian
// date at midnight local time. Out-of-range triples fail with ErrInvalidDate
// rather than being normalized.
func ToGregorian(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d: %w", month, ErrInvalidDate)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return time.Time{}, fmt.Errorf("day %d of month %d: %w", day, month, ErrInvalidDate)
	}
	pt := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, time.Local)
	return pt.Time(), nil
}

// ToJalali converts a Gregorian date to its Jalali (year, month, day) triple.
func ToJalali(t time.Time) (year, month, day int) {
	pt := ptime.New(t)
	return pt.Year(), int(pt.Month()), pt.Day()
}

// JalaliDisplay formats a Gregorian date as a zero-padded Jalali
// "YYYY/MM/DD" string.
func JalaliDisplay(t time.Time) string {
	y, m, d := ToJalali(t)
	return fmt.Sprintf("%04d/%02d/%02d", y, m, d)
}

// WeekdayName returns the Persian weekday label for a Gregorian date.
func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// DateKey formats a Gregorian date as the canonical YYYY-MM-DD mapping key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey decodes a YYYY-MM-DD key back to a local-midnight date.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, key, time.Local)
}

// TodayKey returns the date key for the clock's current day.
func TodayKey(clock Clock) string {
	return DateKey(clock())
}

// CurrentYear returns the Jalali year of the clock's current day.
func CurrentYear(clock Clock) int {
	y, _, _ := ToJalali(clock())
	return y
}

// ToPersianDigits replaces ASCII digits with their Persian forms, used for
// keyboard labels.
func ToPersianDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return '۰' + (r - '0')
		}
		return r
	}, s)
}

// NormalizeDigits replaces Persian digits with ASCII so numeric input can be
// parsed regardless of the sender's keyboard.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := persianDigits[r]; ok {
			return d
		}
		return r
	}, s)
}
