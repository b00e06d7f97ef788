package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode"

	"github.com/baarcakatalan/daily-tasks-bot/internal/calendar"
	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
	"github.com/baarcakatalan/daily-tasks-bot/internal/service"
)

// Controller is the conversation state machine. It is transport-agnostic:
// one incoming text event goes in, the replies to deliver come out. All
// work for a user id runs under that user's store lock, so a turn never
// interleaves with another turn or the daily sweep for the same user.
type Controller struct {
	tasks    *service.TaskService
	stats    *service.StatsService
	clock    calendar.Clock
	sessions *sessionStore
}

func NewController(tasks *service.TaskService, stats *service.StatsService, clock calendar.Clock) *Controller {
	return &Controller{
		tasks:    tasks,
		stats:    stats,
		clock:    clock,
		sessions: newSessionStore(),
	}
}

// Handle processes one text event for a user and returns the replies.
func (c *Controller) Handle(ctx context.Context, userID int64, displayName, text string) []Reply {
	unlock := c.tasks.LockUser(userID)
	defer unlock()

	text = strings.TrimSpace(text)

	created, err := c.tasks.EnsureUser(ctx, userID, displayName)
	if err != nil && !errors.Is(err, service.ErrPersistence) {
		log.Printf("[warn] ensure user %d: %v", userID, err)
	}

	// /start always resets to the main menu, from any state.
	if text == "/start" {
		sess := c.sessions.reset(userID)
		if created {
			return append([]Reply{renderWelcome(displayName)}, c.showMainMenu(sess)...)
		}
		return c.showMainMenu(sess)
	}

	sess := c.sessions.get(userID)
	if created {
		// First-ever contact without /start still gets the welcome once.
		return append([]Reply{renderWelcome(displayName)}, c.showMainMenu(sess)...)
	}

	// The home label is a universal escape hatch, checked before any
	// state-specific matching.
	if text == btnHome {
		return c.showMainMenu(sess)
	}

	switch sess.state {
	case StateMainMenu:
		return c.handleMainMenu(sess, userID, text)
	case StateManageTasksMenu:
		return c.handleManageMenu(sess, text)
	case StateSelectYear:
		return c.handleSelectYear(sess, text)
	case StateSelectMonth:
		return c.handleSelectMonth(sess, text)
	case StateSelectDay:
		return c.handleSelectDay(sess, userID, text)
	case StateAddTaskContent:
		return c.handleAddContent(ctx, sess, userID, text)
	case StateEditTaskSelect:
		return c.handleEditSelect(sess, userID, text)
	case StateEditTaskContent:
		return c.handleEditContent(ctx, sess, userID, text)
	case StateDeleteTaskSelect:
		return c.handleDeleteSelect(ctx, sess, userID, text)
	case StateViewTasksForDate:
		return c.showMainMenu(sess)
	case StateChecklist:
		return c.handleChecklist(ctx, sess, userID, text)
	case StateStatsPeriodSelect:
		return c.handleStatsPeriod(sess, userID, text)
	default:
		return c.showMainMenu(sess)
	}
}

func (c *Controller) showMainMenu(sess *session) []Reply {
	sess.state = StateMainMenu
	return []Reply{renderMainMenu()}
}

func (c *Controller) handleMainMenu(sess *session, userID int64, text string) []Reply {
	switch text {
	case btnToday:
		sess.state = StateMainMenu
		return []Reply{renderTodayView(c.clock(), c.tasks.ListToday(userID))}
	case btnManage:
		sess.state = StateManageTasksMenu
		return []Reply{renderManageMenu()}
	case btnViewSchedule:
		return c.startWizard(sess, PurposeView)
	case btnChecklist:
		return c.showChecklist(sess, userID)
	case btnStats:
		sess.state = StateStatsPeriodSelect
		return []Reply{renderStatsMenu()}
	default:
		return []Reply{notice(noticeUseMenu), renderMainMenu()}
	}
}

func (c *Controller) handleManageMenu(sess *session, text string) []Reply {
	switch text {
	case btnAddTask:
		return c.startWizard(sess, PurposeAdd)
	case btnEditTask:
		return c.startWizard(sess, PurposeEdit)
	case btnDeleteTask:
		return c.startWizard(sess, PurposeDelete)
	default:
		return []Reply{notice(noticeUseMenu), renderManageMenu()}
	}
}

func (c *Controller) startWizard(sess *session, purpose Purpose) []Reply {
	sess.wizard = wizard{purpose: purpose, baseYear: calendar.CurrentYear(c.clock)}
	sess.state = StateSelectYear
	return []Reply{renderYearMenu(sess.wizard.baseYear)}
}

func (c *Controller) handleSelectYear(sess *session, text string) []Reply {
	normalized := calendar.NormalizeDigits(text)
	for _, year := range []int{sess.wizard.baseYear, sess.wizard.baseYear + 1} {
		if strings.Contains(normalized, strconv.Itoa(year)) {
			sess.wizard.year = year
			sess.state = StateSelectMonth
			return []Reply{renderMonthMenu(year)}
		}
	}
	return []Reply{notice(noticeUseMenu), renderYearMenu(sess.wizard.baseYear)}
}

func (c *Controller) handleSelectMonth(sess *session, text string) []Reply {
	month, ok := calendar.MonthNumber(text)
	if !ok {
		return []Reply{notice(noticeUseMenu), renderMonthMenu(sess.wizard.year)}
	}
	sess.wizard.month = month
	sess.state = StateSelectDay
	return []Reply{renderDayMenu(sess.wizard.year, month, calendar.DaysInMonth(sess.wizard.year, month))}
}

func (c *Controller) handleSelectDay(sess *session, userID int64, text string) []Reply {
	w := &sess.wizard
	dayMenu := renderDayMenu(w.year, w.month, calendar.DaysInMonth(w.year, w.month))

	day, err := strconv.Atoi(calendar.NormalizeDigits(text))
	if err != nil {
		return []Reply{notice(noticeUseMenu), dayMenu}
	}

	date, err := calendar.ToGregorian(w.year, w.month, day)
	if err != nil {
		log.Printf("[info] user %d picked invalid date %d/%d/%d: %v", userID, w.year, w.month, day, err)
		return []Reply{notice(noticeInvalidDate), dayMenu}
	}

	w.dateKey = calendar.DateKey(date)
	w.display = fmt.Sprintf("%d %s %d", day, calendar.MonthName(w.month), w.year)

	switch w.purpose {
	case PurposeAdd:
		sess.state = StateAddTaskContent
		return []Reply{renderAddPrompt(w.display)}
	case PurposeEdit:
		tasks := c.tasks.ListDated(userID, w.dateKey)
		if len(tasks) == 0 {
			return append([]Reply{notice("📝 هیچ کاری برای ویرایش وجود نداره!")}, c.showMainMenu(sess)...)
		}
		sess.state = StateEditTaskSelect
		return []Reply{renderTaskSelect(PurposeEdit, tasks)}
	case PurposeDelete:
		tasks := c.tasks.ListDated(userID, w.dateKey)
		if len(tasks) == 0 {
			return append([]Reply{notice("📝 هیچ کاری برای حذف وجود نداره!")}, c.showMainMenu(sess)...)
		}
		sess.state = StateDeleteTaskSelect
		return []Reply{renderTaskSelect(PurposeDelete, tasks)}
	default: // view
		view := renderDateView(date, c.tasks.ListForDate(userID, w.dateKey))
		sess.state = StateMainMenu
		return []Reply{view}
	}
}

func (c *Controller) handleAddContent(ctx context.Context, sess *session, userID int64, text string) []Reply {
	names := service.SplitNames(text)
	accepted, err := c.tasks.AddDated(ctx, userID, sess.wizard.dateKey, names)
	switch {
	case errors.Is(err, service.ErrEmptyInput):
		return []Reply{notice(noticeEmptyTasks)}
	case errors.Is(err, service.ErrPersistence):
		return append([]Reply{notice(noticeSaveFailed)}, c.showMainMenu(sess)...)
	case err != nil:
		log.Printf("[warn] add tasks for %d: %v", userID, err)
		return append([]Reply{notice(noticeSaveFailed)}, c.showMainMenu(sess)...)
	}

	confirmation := renderAddConfirmation(sess.wizard.display, accepted)
	return append([]Reply{confirmation}, c.showMainMenu(sess)...)
}

func (c *Controller) handleEditSelect(sess *session, userID int64, text string) []Reply {
	tasks := c.tasks.ListDated(userID, sess.wizard.dateKey)

	index, ok := parseSelection(text)
	if !ok || index < 1 || index > len(tasks) {
		return []Reply{notice(noticeUseMenu), renderTaskSelect(PurposeEdit, tasks)}
	}

	sess.editIndex = index - 1
	sess.state = StateEditTaskContent
	return []Reply{renderEditPrompt(tasks[index-1].Name)}
}

func (c *Controller) handleEditContent(ctx context.Context, sess *session, userID int64, text string) []Reply {
	newName := strings.TrimSpace(text)
	if newName == "" {
		return []Reply{notice(noticeEmptyName)}
	}

	old, err := c.tasks.EditDated(ctx, userID, sess.wizard.dateKey, sess.editIndex, newName)
	switch {
	case errors.Is(err, service.ErrIndexOutOfRange):
		return append([]Reply{notice(noticeUseMenu)}, c.showMainMenu(sess)...)
	case errors.Is(err, service.ErrPersistence):
		return append([]Reply{notice(noticeSaveFailed)}, c.showMainMenu(sess)...)
	case err != nil:
		log.Printf("[warn] edit task for %d: %v", userID, err)
		return append([]Reply{notice(noticeSaveFailed)}, c.showMainMenu(sess)...)
	}

	return append([]Reply{renderEditConfirmation(old, newName)}, c.showMainMenu(sess)...)
}

func (c *Controller) handleDeleteSelect(ctx context.Context, sess *session, userID int64, text string) []Reply {
	tasks := c.tasks.ListDated(userID, sess.wizard.dateKey)

	index, ok := parseSelection(text)
	if !ok || index < 1 || index > len(tasks) {
		return []Reply{notice(noticeUseMenu), renderTaskSelect(PurposeDelete, tasks)}
	}

	removed, err := c.tasks.DeleteDated(ctx, userID, sess.wizard.dateKey, index-1)
	switch {
	case errors.Is(err, service.ErrIndexOutOfRange):
		return []Reply{notice(noticeUseMenu), renderTaskSelect(PurposeDelete, c.tasks.ListDated(userID, sess.wizard.dateKey))}
	case errors.Is(err, service.ErrPersistence):
		return append([]Reply{notice(noticeSaveFailed)}, c.showMainMenu(sess)...)
	case err != nil:
		log.Printf("[warn] delete task for %d: %v", userID, err)
		return append([]Reply{notice(noticeSaveFailed)}, c.showMainMenu(sess)...)
	}

	return append([]Reply{renderDeleteConfirmation(removed.Name)}, c.showMainMenu(sess)...)
}

// showChecklist snapshots today's items and renders the toggle keyboard.
func (c *Controller) showChecklist(sess *session, userID int64) []Reply {
	doc := c.tasks.Document(userID)
	todayKey := calendar.TodayKey(c.clock)

	var refs []service.TaskRef
	var completed []bool
	if doc != nil {
		for i, task := range doc.DailyTasks {
			refs = append(refs, service.TaskRef{Origin: model.TaskTypeDaily, Index: i, Name: task.Name})
			completed = append(completed, task.Completed)
		}
		for i, task := range doc.DatedTasks[todayKey] {
			refs = append(refs, service.TaskRef{Origin: model.TaskTypeSpecial, DateKey: todayKey, Index: i, Name: task.Name})
			completed = append(completed, task.Completed)
		}
	}

	if len(refs) == 0 {
		return append([]Reply{notice("📝 امروز هیچ کاری برای چک لیست وجود نداره!")}, c.showMainMenu(sess)...)
	}

	sess.checklist = refs
	sess.state = StateChecklist
	return []Reply{renderChecklist(c.clock(), refs, completed)}
}

func (c *Controller) handleChecklist(ctx context.Context, sess *session, userID int64, text string) []Reply {
	if text == btnSaveChecklist {
		return append([]Reply{notice("✅ وضعیت کارها ذخیره شد!")}, c.showMainMenu(sess)...)
	}

	index, ok := parseSelection(text)
	if !ok || index < 1 || index > len(sess.checklist) {
		return c.showChecklist(sess, userID)
	}

	task, err := c.tasks.Toggle(ctx, userID, sess.checklist[index-1])
	switch {
	case errors.Is(err, service.ErrStaleReference):
		return append([]Reply{notice(noticeToggleError)}, c.showChecklist(sess, userID)...)
	case errors.Is(err, service.ErrPersistence):
		return append([]Reply{notice(noticeSaveFailed)}, c.showChecklist(sess, userID)...)
	case err != nil:
		log.Printf("[warn] toggle task for %d: %v", userID, err)
		return append([]Reply{notice(noticeToggleError)}, c.showChecklist(sess, userID)...)
	}

	// Self-loop: re-render so several toggles can happen in one visit.
	return append([]Reply{renderToggleNotice(task.Name, task.Completed)}, c.showChecklist(sess, userID)...)
}

func (c *Controller) handleStatsPeriod(sess *session, userID int64, text string) []Reply {
	var kind service.RangeKind
	var periodName string
	now := c.clock()

	switch text {
	case btnStatsLast5:
		kind, periodName = service.RangeLast5, "۵ روز گذشته"
	case btnStatsLast10:
		kind, periodName = service.RangeLast10, "۱۰ روز گذشته"
	case btnStatsWeek:
		kind, periodName = service.RangeWeek, "این هفته"
	case btnStatsMonth:
		kind, periodName = service.RangeMonth, "این ماه"
	case btnStatsYear:
		kind, periodName = service.RangeYearToDate, fmt.Sprintf("امسال (%d)", calendar.CurrentYear(c.clock))
	default:
		return []Reply{notice(noticeUseMenu), renderStatsMenu()}
	}

	start, end := c.stats.Range(kind, now)
	stats := c.stats.Compute(c.tasks.Document(userID), start, end)
	report := renderStatsReport(periodName, c.stats.ProgressBar(stats.Rate), stats, start, end)
	return append([]Reply{report}, c.showMainMenu(sess)...)
}

// parseSelection extracts the leading number of a "N. ..." keyboard label or
// a bare number, in either digit script.
func parseSelection(text string) (int, bool) {
	text = strings.TrimSpace(calendar.NormalizeDigits(text))
	if text == "" || !unicode.IsDigit(rune(text[0])) {
		return 0, false
	}
	if dot := strings.Index(text, "."); dot >= 0 {
		text = text[:dot]
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return n, true
}
