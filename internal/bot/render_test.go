package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
	"github.com/baarcakatalan/daily-tasks-bot/internal/service"
)

func TestRenderDayMenuGrid(t *testing.T) {
	reply := renderDayMenu(1404, 1, 31)

	// 31 days in rows of 7, then the home row.
	require.Len(t, reply.Keyboard, 6)
	assert.Len(t, reply.Keyboard[0], 7)
	assert.Len(t, reply.Keyboard[4], 3)
	assert.Equal(t, []string{btnHome}, reply.Keyboard[5])
	assert.Equal(t, "1", reply.Keyboard[0][0])
	assert.Equal(t, "31", reply.Keyboard[4][2])
}

func TestRenderMonthMenuGrid(t *testing.T) {
	reply := renderMonthMenu(1404)
	require.Len(t, reply.Keyboard, 5)
	assert.Equal(t, []string{"فروردین", "اردیبهشت", "خرداد"}, reply.Keyboard[0])
	assert.Equal(t, []string{btnHome}, reply.Keyboard[4])
	assert.Contains(t, reply.Text, "۱۴۰۴")
}

func TestRenderYearMenuLabels(t *testing.T) {
	reply := renderYearMenu(1404)
	require.Len(t, reply.Keyboard, 2)
	assert.Equal(t, "📅 ۱۴۰۴ (سال جاری)", reply.Keyboard[0][0])
	assert.Equal(t, "📅 ۱۴۰۵ (سال آینده)", reply.Keyboard[0][1])
}

func TestRenderTaskSelectTruncatesLongNames(t *testing.T) {
	long := "این یک نام کار خیلی خیلی خیلی طولانی برای آزمایش است"
	reply := renderTaskSelect(PurposeDelete, []model.Task{{Name: long}})

	require.Len(t, reply.Keyboard, 2)
	label := reply.Keyboard[0][0]
	assert.LessOrEqual(t, len([]rune(label)), taskLabelRunes+len([]rune("1. 🗑️ ")))
	// The full name still appears in the message body.
	assert.Contains(t, reply.Text, long)
}

func TestRenderAddConfirmationPreviewCapsAtFive(t *testing.T) {
	names := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}
	reply := renderAddConfirmation("5 مهر 1404", names)
	assert.Contains(t, reply.Text, "7 کار")
	assert.Contains(t, reply.Text, "• a5")
	assert.NotContains(t, reply.Text, "• a6")
	assert.Contains(t, reply.Text, "و 2 کار دیگر")
}

func TestRenderChecklistMarksCompletion(t *testing.T) {
	refs := []service.TaskRef{
		{Origin: model.TaskTypeDaily, Index: 0, Name: "ورزش"},
		{Origin: model.TaskTypeSpecial, DateKey: "2025-08-29", Index: 0, Name: "خرید"},
	}
	reply := renderChecklist(testNow, refs, []bool{true, false})

	require.Len(t, reply.Keyboard, 3)
	assert.Contains(t, reply.Keyboard[0][0], "✅")
	assert.Contains(t, reply.Keyboard[1][0], "❌")
	assert.Equal(t, []string{btnSaveChecklist, btnHome}, reply.Keyboard[2])
}

func TestRenderWelcomeEscapesName(t *testing.T) {
	reply := renderWelcome("<b>Sara</b>")
	assert.Contains(t, reply.Text, "&lt;b&gt;Sara&lt;/b&gt;")
	assert.True(t, reply.RemoveKeyboard)
}
