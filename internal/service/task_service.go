package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/baarcakatalan/daily-tasks-bot/internal/calendar"
	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
	"github.com/baarcakatalan/daily-tasks-bot/internal/repository"
)

// MinTaskNameLen is the shortest task name accepted by AddDated, in runes.
const MinTaskNameLen = 1

// TaskRef identifies a checklist entry the way it looked when the checklist
// was rendered: origin group, position and name at capture time.
type TaskRef struct {
	Origin  string
	DateKey string
	Index   int
	Name    string
}

// TaskService owns every per-user planner document. Documents live in
// memory and are written through to the repository after each mutation.
//
// Callers must hold the per-user lock (LockUser) around any sequence that
// reads or mutates a user's document; the interactive controller and the
// daily sweep share that lock.
type TaskService struct {
	repo  *repository.DocumentRepository
	clock calendar.Clock

	mu    sync.Mutex
	docs  map[int64]*model.UserDocument
	locks map[int64]*sync.Mutex
}

func NewTaskService(repo *repository.DocumentRepository, clock calendar.Clock) *TaskService {
	return &TaskService{
		repo:  repo,
		clock: clock,
		docs:  make(map[int64]*model.UserDocument),
		locks: make(map[int64]*sync.Mutex),
	}
}

// Load seeds the in-memory documents from storage. Called once at startup.
func (s *TaskService) Load(ctx context.Context) error {
	docs, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
	log.Printf("[info] loaded %d user documents", len(docs))
	return nil
}

// LockUser serializes work for one user id and returns the unlock func.
// Distinct users proceed in parallel.
func (s *TaskService) LockUser(userID int64) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// EnsureUser creates an empty document for a first-time user. Idempotent;
// reports whether the document was newly created.
func (s *TaskService) EnsureUser(ctx context.Context, userID int64, displayName string) (bool, error) {
	if _, ok := s.document(userID); ok {
		return false, nil
	}

	doc := model.NewUserDocument(displayName, calendar.TodayKey(s.clock))
	s.mu.Lock()
	s.docs[userID] = doc
	s.mu.Unlock()

	log.Printf("[info] new user %d (%s)", userID, displayName)
	return true, s.save(ctx, userID, doc)
}

// Document returns the live document for a user, or nil when unknown. The
// caller must hold the user lock while using it.
func (s *TaskService) Document(userID int64) *model.UserDocument {
	doc, _ := s.document(userID)
	return doc
}

// Users lists every known user id, used by the daily sweep.
func (s *TaskService) Users() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ListToday merges daily tasks with the tasks dated today, daily first.
func (s *TaskService) ListToday(userID int64) []model.Task {
	return s.ListForDate(userID, calendar.TodayKey(s.clock))
}

// ListForDate returns the tasks for one date key. Daily tasks are included
// when the key is today; they are always "for today".
func (s *TaskService) ListForDate(userID int64, dateKey string) []model.Task {
	doc, ok := s.document(userID)
	if !ok {
		return nil
	}

	var tasks []model.Task
	if dateKey == calendar.TodayKey(s.clock) {
		tasks = append(tasks, doc.DailyTasks...)
	}
	tasks = append(tasks, doc.DatedTasks[dateKey]...)
	return tasks
}

// ListDated returns only the date-keyed tasks, as edit/delete wizards do.
func (s *TaskService) ListDated(userID int64, dateKey string) []model.Task {
	doc, ok := s.document(userID)
	if !ok {
		return nil
	}
	return append([]model.Task(nil), doc.DatedTasks[dateKey]...)
}

// SplitNames breaks free text into candidate task names, one per non-blank
// line, preserving order.
func SplitNames(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

// AddDated appends one task per acceptable name under the date key and
// returns the accepted names. Names shorter than MinTaskNameLen are
// dropped; if nothing remains the call fails with ErrEmptyInput.
func (s *TaskService) AddDated(ctx context.Context, userID int64, dateKey string, names []string) ([]string, error) {
	doc, ok := s.document(userID)
	if !ok {
		return nil, fmt.Errorf("unknown user %d", userID)
	}

	accepted := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if len([]rune(name)) < MinTaskNameLen {
			continue
		}
		accepted = append(accepted, name)
	}
	if len(accepted) == 0 {
		return nil, ErrEmptyInput
	}

	createdAt := calendar.TodayKey(s.clock)
	for _, name := range accepted {
		doc.DatedTasks[dateKey] = append(doc.DatedTasks[dateKey], model.Task{
			Name:      name,
			CreatedAt: createdAt,
			Type:      model.TaskTypeSpecial,
		})
	}

	log.Printf("[info] user %d added %d tasks for %s", userID, len(accepted), dateKey)
	return accepted, s.save(ctx, userID, doc)
}

// EditDated renames a dated task in place and returns the old name.
func (s *TaskService) EditDated(ctx context.Context, userID int64, dateKey string, index int, newName string) (string, error) {
	doc, ok := s.document(userID)
	if !ok {
		return "", fmt.Errorf("unknown user %d", userID)
	}

	tasks := doc.DatedTasks[dateKey]
	if index < 0 || index >= len(tasks) {
		return "", ErrIndexOutOfRange
	}

	old := tasks[index].Name
	tasks[index].Name = newName
	log.Printf("[info] user %d edited task %d on %s", userID, index, dateKey)
	return old, s.save(ctx, userID, doc)
}

// DeleteDated removes a dated task. When the last task under a date key is
// deleted the key is removed too, so DatedTasks never keeps empty leaves.
func (s *TaskService) DeleteDated(ctx context.Context, userID int64, dateKey string, index int) (model.Task, error) {
	doc, ok := s.document(userID)
	if !ok {
		return model.Task{}, fmt.Errorf("unknown user %d", userID)
	}

	tasks := doc.DatedTasks[dateKey]
	if index < 0 || index >= len(tasks) {
		return model.Task{}, ErrIndexOutOfRange
	}

	removed := tasks[index]
	tasks = append(tasks[:index], tasks[index+1:]...)
	if len(tasks) == 0 {
		delete(doc.DatedTasks, dateKey)
	} else {
		doc.DatedTasks[dateKey] = tasks
	}

	log.Printf("[info] user %d deleted task %d on %s", userID, index, dateKey)
	return removed, s.save(ctx, userID, doc)
}

// Toggle flips the completed flag of the referenced task and returns its new
// state. The reference was captured at render time; when the task has been
// edited or deleted since, the call fails with ErrStaleReference so the
// caller re-renders the checklist.
func (s *TaskService) Toggle(ctx context.Context, userID int64, ref TaskRef) (model.Task, error) {
	doc, ok := s.document(userID)
	if !ok {
		return model.Task{}, fmt.Errorf("unknown user %d", userID)
	}

	var tasks []model.Task
	if ref.Origin == model.TaskTypeDaily {
		tasks = doc.DailyTasks
	} else {
		tasks = doc.DatedTasks[ref.DateKey]
	}

	idx := -1
	if ref.Index >= 0 && ref.Index < len(tasks) && tasks[ref.Index].Name == ref.Name {
		idx = ref.Index
	} else {
		for i := range tasks {
			if tasks[i].Name == ref.Name {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return model.Task{}, ErrStaleReference
	}

	tasks[idx].Completed = !tasks[idx].Completed
	return tasks[idx], s.save(ctx, userID, doc)
}

// MarkChecklistDate stamps the last-checklist date, reporting whether the
// stamp changed.
func (s *TaskService) MarkChecklistDate(ctx context.Context, userID int64, dateKey string) (bool, error) {
	doc, ok := s.document(userID)
	if !ok {
		return false, fmt.Errorf("unknown user %d", userID)
	}
	if doc.LastChecklistDate == dateKey {
		return false, nil
	}
	doc.LastChecklistDate = dateKey
	return true, s.save(ctx, userID, doc)
}

func (s *TaskService) document(userID int64) (*model.UserDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[userID]
	return doc, ok
}

// save writes the document through. The in-memory mutation stays applied on
// failure; the dialogue goes on while the durability warning is logged.
func (s *TaskService) save(ctx context.Context, userID int64, doc *model.UserDocument) error {
	if err := s.repo.Save(ctx, userID, doc); err != nil {
		log.Printf("[warn] save document for %d: %v", userID, err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
