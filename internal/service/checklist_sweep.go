package service

import (
	"context"
	"log"

	"github.com/baarcakatalan/daily-tasks-bot/internal/calendar"
	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
)

// ChecklistNotifier pushes the daily checklist reminder to a user.
type ChecklistNotifier interface {
	NotifyChecklist(userID int64, doc *model.UserDocument)
}

// ChecklistSweep is the once-daily job that stamps every user's
// last-checklist date and nudges those not yet stamped today. It takes the
// same per-user lock as interactive handlers, so it never races a user's
// own edit.
type ChecklistSweep struct {
	tasks    *TaskService
	clock    calendar.Clock
	notifier ChecklistNotifier
}

func NewChecklistSweep(tasks *TaskService, clock calendar.Clock, notifier ChecklistNotifier) *ChecklistSweep {
	return &ChecklistSweep{tasks: tasks, clock: clock, notifier: notifier}
}

func (s *ChecklistSweep) Run(ctx context.Context) error {
	today := calendar.TodayKey(s.clock)

	for _, userID := range s.tasks.Users() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		unlock := s.tasks.LockUser(userID)
		changed, err := s.tasks.MarkChecklistDate(ctx, userID, today)
		doc := s.tasks.Document(userID)
		unlock()

		if err != nil {
			log.Printf("[warn] checklist sweep for %d: %v", userID, err)
			continue
		}
		if changed && s.notifier != nil {
			s.notifier.NotifyChecklist(userID, doc)
		}
	}
	return nil
}
