package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
)

// Bot adapts Telegram updates to controller events and controller replies
// back to Telegram messages.
type Bot struct {
	api        *tgbotapi.BotAPI
	controller *Controller
}

func New(token string, controller *Controller) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{api: api, controller: controller}, nil
}

// Start begins polling updates until ctx is cancelled. Updates arrive on one
// channel, so per-user event ordering is preserved.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		msg := update.Message
		if msg == nil || msg.From == nil {
			continue
		}
		if msg.Chat == nil || !msg.Chat.IsPrivate() {
			continue
		}

		replies := b.controller.Handle(ctx, msg.From.ID, msg.From.FirstName, msg.Text)
		b.deliver(msg.Chat.ID, replies)
	}

	return nil
}

func (b *Bot) deliver(chatID int64, replies []Reply) {
	for _, reply := range replies {
		if err := b.send(chatID, reply); err != nil {
			log.Printf("send reply to %d: %v", chatID, err)
		}
	}
}

func (b *Bot) send(chatID int64, reply Reply) error {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = tgbotapi.ModeHTML

	switch {
	case reply.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	case len(reply.Keyboard) > 0:
		msg.ReplyMarkup = buildKeyboard(reply.Keyboard)
	}

	_, err := b.api.Send(msg)
	return err
}

// NotifyChecklist pushes the daily checklist reminder, invoked by the sweep.
func (b *Bot) NotifyChecklist(userID int64, doc *model.UserDocument) {
	name := "دوست من"
	if doc != nil && doc.UserName != "" {
		name = doc.UserName
	}
	text := fmt.Sprintf("⏰ <b>%s، وقت چک لیست امروزه!</b>\n\nاز «%s» وضعیت کارهات رو ثبت کن.",
		escape(name), btnChecklist)

	if err := b.send(userID, Reply{Text: text, Keyboard: [][]string{{btnChecklist, btnHome}}}); err != nil {
		log.Printf("send checklist reminder to %d: %v", userID, err)
	}
}

func buildKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	buttonRows := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		buttonRows = append(buttonRows, buttons)
	}
	kb := tgbotapi.NewReplyKeyboard(buttonRows...)
	kb.ResizeKeyboard = true
	return kb
}
