package bot

import (
	"sync"

	"github.com/baarcakatalan/daily-tasks-bot/internal/service"
)

// State is the dialogue position of one user. The set is closed; every
// incoming text is dispatched on it.
type State int

const (
	StateMainMenu State = iota
	StateManageTasksMenu
	StateSelectYear
	StateSelectMonth
	StateSelectDay
	StateAddTaskContent
	StateEditTaskSelect
	StateEditTaskContent
	StateDeleteTaskSelect
	StateViewTasksForDate
	StateChecklist
	StateStatsPeriodSelect
)

// Purpose says what the year→month→day wizard resolves the date for.
type Purpose string

const (
	PurposeAdd    Purpose = "add"
	PurposeEdit   Purpose = "edit"
	PurposeDelete Purpose = "delete"
	PurposeView   Purpose = "view"
)

// wizard carries exactly the fields collected across the date-selection
// steps. It is reset whenever a new wizard starts.
type wizard struct {
	purpose  Purpose
	baseYear int // Jalali year offered as "current" when the wizard started
	year     int
	month    int
	dateKey  string
	display  string
}

// session is the ephemeral per-user dialogue state. Process memory only.
type session struct {
	state     State
	wizard    wizard
	editIndex int               // captured selection for the edit wizard
	checklist []service.TaskRef // snapshot behind the rendered checklist
}

// sessionStore keeps sessions keyed by user id.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*session)}
}

// get returns the session for a user, creating it at the main menu on first
// contact.
func (s *sessionStore) get(userID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{state: StateMainMenu}
		s.sessions[userID] = sess
	}
	return sess
}

// reset forces a user back to the main menu, dropping any wizard progress.
func (s *sessionStore) reset(userID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &session{state: StateMainMenu}
	s.sessions[userID] = sess
	return sess
}
