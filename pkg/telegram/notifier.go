package telegram

import (
	"fmt"
	"strconv"
	"time"

	"invest-research/pkg/logger"

	"gopkg.in/telebot.v3"
)

// Notifier pushes one-way notifications (scan completions, critical alerts)
// to a personal Telegram chat. It is a no-op when no bot token is configured.
type Notifier struct {
	bot    *telebot.Bot
	chatID int64
	log    *logger.Logger
}

func NewNotifier(botToken, chatID string, log *logger.Logger) (*Notifier, error) {
	if botToken == "" || chatID == "" {
		log.Info("Telegram notifier disabled: no bot token configured")
		return &Notifier{log: log}, nil
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat id '%s': %w", chatID, err)
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:   botToken,
		Offline: false,
		Poller:  &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Notifier{bot: bot, chatID: id, log: log}, nil
}

// Enabled reports whether the notifier can actually send messages.
func (n *Notifier) Enabled() bool {
	return n.bot != nil
}

// Send delivers a plain-text message. A delivery failure is logged, never
// returned: notifications are best-effort and must not fail a workflow.
func (n *Notifier) Send(text string) {
	if n.bot == nil {
		return
	}
	if _, err := n.bot.Send(telebot.ChatID(n.chatID), text); err != nil {
		n.log.Warn("Failed to send telegram notification", logger.ErrorField(err))
	}
}
