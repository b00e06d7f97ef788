package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/baarcakatalan/daily-tasks-bot/internal/calendar"
	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
	"github.com/baarcakatalan/daily-tasks-bot/internal/service"
)

// Fixed menu labels. Matching is exact, so these are the single source of
// truth for both rendering and dispatch.
const (
	btnHome         = "🏠 منوی اصلی"
	btnToday        = "📅 برنامه امروز"
	btnManage       = "🔧 مدیریت کارها"
	btnViewSchedule = "📋 مشاهده برنامه کاری"
	btnChecklist    = "✅ چک لیست امروز"
	btnStats        = "📊 آمار و گزارش"

	btnAddTask    = "➕ اضافه کار جدید"
	btnEditTask   = "✏️ ویرایش کار موجود"
	btnDeleteTask = "🗑️ حذف کار"

	btnSaveChecklist = "💾 ثبت و ذخیره"

	btnStatsLast5  = "📊 ۵ روز گذشته"
	btnStatsLast10 = "📊 ۱۰ روز گذشته"
	btnStatsWeek   = "📊 این هفته"
	btnStatsMonth  = "📊 این ماه"
	btnStatsYear   = "📊 امسال"
)

const (
	noticeUseMenu     = "❌ لطفاً از گزینه‌ها استفاده کن"
	noticeInvalidDate = "❌ تاریخ نامعتبر!"
	noticeEmptyTasks  = "❌ هیچ کار معتبری وارد نکردی!"
	noticeEmptyName   = "❌ نام کار نمی‌تونه خالی باشه!"
	noticeSaveFailed  = "❌ ذخیره‌سازی با مشکل مواجه شد، دوباره تلاش کن"
	noticeToggleError = "❌ خطا در به‌روزرسانی کار"
)

const taskLabelRunes = 30

// Reply is one outgoing message: text plus the reply keyboard to show, or an
// instruction to hide the keyboard.
type Reply struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
}

func notice(text string) Reply {
	return Reply{Text: text}
}

func escape(s string) string {
	return html.EscapeString(s)
}

func renderWelcome(name string) Reply {
	text := fmt.Sprintf(
		"👋 <b>سلام %s عزیز!</b>\n\n"+
			"راستش من برای این اینجام تا هم توی مصرف کاغذ صرفه جویی بشه هم چیزی از قلم نیفته\n"+
			"هر کاری که می‌خوای توی هر روزی انجام بدی رو بنویس\n"+
			"نگران نباش اگه چیزی از قلم افتاد میتونی دوباره بهش اضافه کنی یا ویرایش و حذف کنی\n"+
			"همچنین امکاناتی مثل چک لیست و گزارش گیری هم برای شما در نظر گرفته شده\n\n"+
			"🏠 <b>منوی اصلی شامل:</b>\n\n"+
			"📅 <b>برنامه امروز</b> - مشاهده کارهای امروز\n"+
			"🔧 <b>مدیریت کارها</b> - اضافه/ویرایش/حذف کارها\n"+
			"📋 <b>مشاهده برنامه</b> - کارهای تاریخ مشخص\n"+
			"✅ <b>چک لیست امروز</b> - ثبت انجام کارها\n"+
			"📊 <b>آمار و گزارش</b> - عملکرد شما\n\n"+
			"💡 <b>اول برو به «🔧 مدیریت کارها» و کارهایت رو اضافه کن!</b>",
		escape(name),
	)
	return Reply{Text: text, RemoveKeyboard: true}
}

func renderMainMenu() Reply {
	return Reply{
		Text: "🏠 <b>منوی اصلی</b>\n\nلطفاً یکی از گزینه‌ها رو انتخاب کن:",
		Keyboard: [][]string{
			{btnToday, btnManage},
			{btnViewSchedule, btnChecklist},
			{btnStats},
		},
	}
}

func renderManageMenu() Reply {
	return Reply{
		Text: "🔧 <b>مدیریت کارها</b>\n\nچه کاری می‌خوای انجام بدی؟",
		Keyboard: [][]string{
			{btnAddTask, btnEditTask},
			{btnDeleteTask, btnHome},
		},
	}
}

func yearLabel(year int, suffix string) string {
	return fmt.Sprintf("📅 %s (%s)", calendar.ToPersianDigits(strconv.Itoa(year)), suffix)
}

func renderYearMenu(currentYear int) Reply {
	return Reply{
		Text: "📅 <b>انتخاب سال</b>\n\nبرای کدوم سال می‌خوای برنامه‌ریزی کنی؟",
		Keyboard: [][]string{
			{yearLabel(currentYear, "سال جاری"), yearLabel(currentYear+1, "سال آینده")},
			{btnHome},
		},
	}
}

func renderMonthMenu(year int) Reply {
	names := calendar.MonthNames()
	keyboard := make([][]string, 0, 5)
	for i := 0; i < len(names); i += 3 {
		keyboard = append(keyboard, names[i:i+3])
	}
	keyboard = append(keyboard, []string{btnHome})

	return Reply{
		Text: fmt.Sprintf("📅 <b>انتخاب ماه - سال %s</b>\n\nکدوم ماه رو انتخاب می‌کنی؟",
			calendar.ToPersianDigits(strconv.Itoa(year))),
		Keyboard: keyboard,
	}
}

func renderDayMenu(year, month, days int) Reply {
	var keyboard [][]string
	var row []string
	for day := 1; day <= days; day++ {
		row = append(row, strconv.Itoa(day))
		if len(row) == 7 {
			keyboard = append(keyboard, row)
			row = nil
		}
	}
	if len(row) > 0 {
		keyboard = append(keyboard, row)
	}
	keyboard = append(keyboard, []string{btnHome})

	return Reply{
		Text: fmt.Sprintf("📅 <b>انتخاب روز - %s %s</b>\n\nروز مورد نظرت رو انتخاب کن:",
			calendar.MonthName(month), calendar.ToPersianDigits(strconv.Itoa(year))),
		Keyboard: keyboard,
	}
}

func renderAddPrompt(display string) Reply {
	return Reply{
		Text: fmt.Sprintf(
			"📝 <b>کارهای %s</b>\n\n"+
				"کارهایت رو به صورت خط به خط وارد کن:\n\n"+
				"📌 <b>مثال:</b>\n"+
				"ورزش صبحگاهی\n"+
				"مطالعه ۳۰ دقیقه\n"+
				"پروژه برنامه‌نویسی",
			escape(display),
		),
		RemoveKeyboard: true,
	}
}

func renderAddConfirmation(display string, names []string) Reply {
	preview := make([]string, 0, 5)
	for i, name := range names {
		if i == 5 {
			break
		}
		preview = append(preview, "• "+escape(name))
	}
	text := fmt.Sprintf("✅ <b>%d کار با موفقیت ثبت شد!</b>\n\n📅 <b>تاریخ:</b> %s\n📋 <b>کارها:</b>\n%s",
		len(names), escape(display), strings.Join(preview, "\n"))
	if len(names) > 5 {
		text += fmt.Sprintf("\n• و %d کار دیگر...", len(names)-5)
	}
	return notice(text)
}

func shortName(name string) string {
	runes := []rune(name)
	if len(runes) <= taskLabelRunes {
		return name
	}
	return string(runes[:taskLabelRunes])
}

// renderTaskSelect lists dated tasks as numbered buttons for the edit and
// delete wizards.
func renderTaskSelect(purpose Purpose, tasks []model.Task) Reply {
	icon, title, question := "✏️", "ویرایش کارها", "کدوم کار رو می‌خوای ویرایش کنی؟"
	if purpose == PurposeDelete {
		icon, title, question = "🗑️", "حذف کارها", "کدوم کار رو می‌خوای حذف کنی؟"
	}

	var keyboard [][]string
	var listing []string
	for i, task := range tasks {
		keyboard = append(keyboard, []string{fmt.Sprintf("%d. %s %s", i+1, icon, shortName(task.Name))})
		listing = append(listing, fmt.Sprintf("%d. %s", i+1, escape(task.Name)))
	}
	keyboard = append(keyboard, []string{btnHome})

	return Reply{
		Text:     fmt.Sprintf("%s <b>%s</b>\n\n%s\n\n%s", icon, title, question, strings.Join(listing, "\n")),
		Keyboard: keyboard,
	}
}

func renderEditPrompt(oldName string) Reply {
	return Reply{
		Text: fmt.Sprintf("✏️ <b>ویرایش کار</b>\n\nکار فعلی: %s\n\nنام جدید رو وارد کن:",
			escape(oldName)),
		RemoveKeyboard: true,
	}
}

func renderEditConfirmation(oldName, newName string) Reply {
	return notice(fmt.Sprintf("✅ <b>کار ویرایش شد!</b>\n\n📝 <b>قدیمی:</b> %s\n📝 <b>جدید:</b> %s",
		escape(oldName), escape(newName)))
}

func renderDeleteConfirmation(name string) Reply {
	return notice(fmt.Sprintf("✅ <b>کار حذف شد!</b>\n\n🗑️ <b>کار حذف شده:</b> %s", escape(name)))
}

// calendarHeader shows today in both calendars with the Persian weekday.
func calendarHeader(now time.Time) string {
	return fmt.Sprintf(
		"📅 <b>تاریخ امروز:</b>\n\n🇮🇷 <b>شمسی:</b> %s - %s\n🌍 <b>میلادی:</b> %s - %s",
		calendar.JalaliDisplay(now), calendar.WeekdayName(now),
		calendar.DateKey(now), calendar.WeekdayName(now),
	)
}

func dateHeader(date time.Time) string {
	return fmt.Sprintf(
		"📅 <b>تاریخ درخواستی:</b>\n\n🇮🇷 <b>شمسی:</b> %s - %s\n🌍 <b>میلادی:</b> %s - %s",
		calendar.JalaliDisplay(date), calendar.WeekdayName(date),
		calendar.DateKey(date), calendar.WeekdayName(date),
	)
}

func taskLines(tasks []model.Task, emptyText string) string {
	if len(tasks) == 0 {
		return emptyText
	}
	var lines []string
	for _, task := range tasks {
		status := "◻️"
		if task.Completed {
			status = "✅"
		}
		icon := "⭐"
		if task.Type == model.TaskTypeDaily {
			icon = "📅"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", icon, status, escape(task.Name)))
	}
	return strings.Join(lines, "\n")
}

func renderTodayView(now time.Time, tasks []model.Task) Reply {
	return Reply{
		Text: fmt.Sprintf("%s\n\n📅 <b>برنامه امروز:</b>\n\n%s",
			calendarHeader(now), taskLines(tasks, "📝 هیچ کاری برای امروز ثبت نشده")),
		Keyboard: [][]string{
			{btnManage, btnChecklist},
			{btnHome},
		},
	}
}

func renderDateView(date time.Time, tasks []model.Task) Reply {
	return Reply{
		Text: fmt.Sprintf("%s\n\n📋 <b>برنامه کاری:</b>\n\n%s",
			dateHeader(date), taskLines(tasks, "📝 هیچ کاری برای این تاریخ ثبت نشده")),
		Keyboard: [][]string{{btnHome}},
	}
}

// renderChecklist shows every item of today's checklist as a toggle button.
func renderChecklist(now time.Time, refs []service.TaskRef, completed []bool) Reply {
	var keyboard [][]string
	var lines []string
	for i, ref := range refs {
		status := "❌"
		if completed[i] {
			status = "✅"
		}
		keyboard = append(keyboard, []string{fmt.Sprintf("%d. %s %s", i+1, status, shortName(ref.Name))})
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, status, escape(ref.Name)))
	}
	keyboard = append(keyboard, []string{btnSaveChecklist, btnHome})

	return Reply{
		Text: fmt.Sprintf("✅ <b>چک لیست امروز</b>\n\n%s\n\n%s\n\nروی هر کار کلیک کن تا وضعیتش تغییر کنه:",
			calendarHeader(now), strings.Join(lines, "\n")),
		Keyboard: keyboard,
	}
}

func renderToggleNotice(name string, completed bool) Reply {
	status := "لغو تکمیل ❌"
	if completed {
		status = "تکمیل شد ✅"
	}
	return notice(fmt.Sprintf("✅ کار «%s» %s!", escape(name), status))
}

func renderStatsMenu() Reply {
	return Reply{
		Text: "📊 <b>آمار و گزارش</b>\n\nبرای کدوم بازه زمانی می‌خوای آمار ببینی؟",
		Keyboard: [][]string{
			{btnStatsLast5, btnStatsLast10},
			{btnStatsWeek, btnStatsMonth},
			{btnStatsYear, btnHome},
		},
	}
}

func renderStatsReport(periodName, bar string, stats service.Stats, start, end time.Time) Reply {
	verdict := "🚀 نیاز به تلاش بیشتر!"
	switch {
	case stats.Rate >= 80:
		verdict = "🎉 عملکرد عالی!"
	case stats.Rate >= 50:
		verdict = "💪 خوبه، ادامه بده!"
	}

	return notice(fmt.Sprintf(
		"📊 <b>آمار %s</b>\n\n%s\n"+
			"✅ <b>کارهای انجام شده:</b> %d از %d\n"+
			"📈 <b>نرخ تکمیل:</b> %d%%\n\n"+
			"📅 <b>بازه زمانی:</b>\n%s تا %s\n\n%s",
		periodName, bar, stats.Completed, stats.Total, stats.Rate,
		calendar.DateKey(start), calendar.DateKey(end), verdict,
	))
}
