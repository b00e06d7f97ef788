package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestComputeEmptyDocument(t *testing.T) {
	stats := NewStatsService().Compute(model.NewUserDocument("u", "2025-01-01"),
		day(2025, time.August, 25), day(2025, time.August, 29))

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 0, stats.Rate, "zero tasks must not divide")
}

func TestComputeDailyCountsOncePerDay(t *testing.T) {
	doc := model.NewUserDocument("u", "2025-01-01")
	doc.DailyTasks = []model.Task{
		{Name: "workout", Completed: true},
		{Name: "read"},
	}

	// Five days: 2 daily tasks × 5 = 10 total, 1 completed × 5 = 5.
	stats := NewStatsService().Compute(doc, day(2025, time.August, 25), day(2025, time.August, 29))
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 5, stats.Completed)
	assert.Equal(t, 50, stats.Rate)
}

func TestComputeDatedTasksInRangeOnly(t *testing.T) {
	doc := model.NewUserDocument("u", "2025-01-01")
	doc.DatedTasks["2025-08-26"] = []model.Task{{Name: "in range", Completed: true}}
	doc.DatedTasks["2025-08-29"] = []model.Task{{Name: "end of range"}}
	doc.DatedTasks["2025-09-10"] = []model.Task{{Name: "outside", Completed: true}}

	stats := NewStatsService().Compute(doc, day(2025, time.August, 25), day(2025, time.August, 29))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 50, stats.Rate)
}

func TestRangeSpans(t *testing.T) {
	svc := NewStatsService()
	now := time.Date(2025, 8, 29, 15, 45, 0, 0, time.Local)

	cases := []struct {
		kind  RangeKind
		start string
	}{
		{RangeLast5, "2025-08-25"},
		{RangeLast10, "2025-08-20"},
		{RangeWeek, "2025-08-23"},
		{RangeMonth, "2025-07-31"},
		{RangeYearToDate, "2025-01-01"},
	}

	for _, tc := range cases {
		start, end := svc.Range(tc.kind, now)
		assert.Equal(t, tc.start, start.Format("2006-01-02"))
		assert.Equal(t, "2025-08-29", end.Format("2006-01-02"))
	}
}

func TestProgressBar(t *testing.T) {
	svc := NewStatsService()
	assert.Equal(t, "⬜⬜⬜⬜⬜⬜⬜⬜⬜⬜", svc.ProgressBar(0))
	assert.Equal(t, "🟩🟩🟩🟩🟩⬜⬜⬜⬜⬜", svc.ProgressBar(55))
	assert.Equal(t, "🟩🟩🟩🟩🟩🟩🟩🟩🟩🟩", svc.ProgressBar(100))
	assert.Equal(t, "⬜⬜⬜⬜⬜⬜⬜⬜⬜⬜", svc.ProgressBar(-5))
}
