package services

import (
	"fmt"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AlertService pushes short operational notices to the ops Telegram chat.
// Fully optional: when TG_TOKEN or TG_OPS_CHAT_ID is unset every method is a
// no-op, so local runs never need bot credentials.
type AlertService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewAlertService() *AlertService {
	token := os.Getenv("TG_TOKEN")
	rawChatID := os.Getenv("TG_OPS_CHAT_ID")
	if token == "" || rawChatID == "" {
		return &AlertService{}
	}
	chatID, err := strconv.ParseInt(rawChatID, 10, 64)
	if err != nil {
		fmt.Printf("Invalid TG_OPS_CHAT_ID %q, alerts disabled: %v\n", rawChatID, err)
		return &AlertService{}
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		fmt.Printf("Telegram bot init failed, alerts disabled: %v\n", err)
		return &AlertService{}
	}
	return &AlertService{bot: bot, chatID: chatID}
}

func (a *AlertService) enabled() bool {
	return a != nil && a.bot != nil
}

// PipelineFailed reports a terminally failed outfit request.
func (a *AlertService) PipelineFailed(requestID string, cause error) {
	if !a.enabled() {
		return
	}
	text := fmt.Sprintf("Outfit request %s failed: %v", requestID, cause)
	if _, err := a.bot.Send(tgbotapi.NewMessage(a.chatID, text)); err != nil {
		fmt.Printf("Sending ops alert failed: %v\n", err)
	}
}

// ServiceStarted announces a fresh boot so the ops chat shows restarts.
func (a *AlertService) ServiceStarted(env string) {
	if !a.enabled() {
		return
	}
	text := fmt.Sprintf("Stylist API started (env: %s)", env)
	if _, err := a.bot.Send(tgbotapi.NewMessage(a.chatID, text)); err != nil {
		fmt.Printf("Sending ops alert failed: %v\n", err)
	}
}
