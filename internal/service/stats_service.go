package service

import (
	"math"
	"strings"
	"time"

	"github.com/baarcakatalan/daily-tasks-bot/internal/calendar"
	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
)

// RangeKind names the supported reporting periods.
type RangeKind int

const (
	RangeLast5 RangeKind = iota
	RangeLast10
	RangeWeek
	RangeMonth
	RangeYearToDate
)

// Stats aggregates completion over a date range.
type Stats struct {
	Total     int
	Completed int
	Rate      int
}

const progressSegments = 10

// StatsService computes completion statistics over a user's document.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

// Range maps a named period to an inclusive [start, end] day pair ending
// today. "Last N days" means the N calendar days ending today.
func (s *StatsService) Range(kind RangeKind, now time.Time) (time.Time, time.Time) {
	end := midnight(now)
	switch kind {
	case RangeLast5:
		return end.AddDate(0, 0, -4), end
	case RangeLast10:
		return end.AddDate(0, 0, -9), end
	case RangeWeek:
		return end.AddDate(0, 0, -6), end
	case RangeMonth:
		return end.AddDate(0, 0, -29), end
	default:
		return time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, end.Location()), end
	}
}

// Compute walks each day of [start, end]. Daily tasks count once per day in
// the range; dated tasks count when their key falls inside it.
func (s *StatsService) Compute(doc *model.UserDocument, start, end time.Time) Stats {
	var stats Stats
	if doc == nil {
		return stats
	}

	dailyDone := 0
	for _, task := range doc.DailyTasks {
		if task.Completed {
			dailyDone++
		}
	}

	for day := midnight(start); !day.After(midnight(end)); day = day.AddDate(0, 0, 1) {
		stats.Total += len(doc.DailyTasks)
		stats.Completed += dailyDone

		for _, task := range doc.DatedTasks[calendar.DateKey(day)] {
			stats.Total++
			if task.Completed {
				stats.Completed++
			}
		}
	}

	if stats.Total > 0 {
		stats.Rate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

// ProgressBar renders the rate as a fixed ten-segment bar.
func (s *StatsService) ProgressBar(rate int) string {
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	filled := rate / progressSegments
	return strings.Repeat("🟩", filled) + strings.Repeat("⬜", progressSegments-filled)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
