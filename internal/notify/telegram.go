package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram delivers operator messages to a single chat through the bot API.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Send(ctx context.Context, m Message) error {
	_ = ctx // bot API client has its own HTTP timeout

	if m.HasPhoto() {
		photo := tgbotapi.NewPhoto(t.chatID, tgbotapi.FileBytes{
			Name:  m.PhotoName,
			Bytes: m.PhotoBytes,
		})
		photo.Caption = m.Text
		_, err := t.bot.Send(photo)
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, m.Text)
	_, err := t.bot.Send(msg)
	return err
}
