package notify

import (
	"context"
	"errors"
	"strings"
	"sync"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Notifier доставляет текст алерта. Ошибка доставки не должна ронять цикл.
type Notifier interface {
	Send(ctx context.Context, msg string) error
}

// CommandHandler отвечает на команду из чата; пустой ответ не отправляется.
type CommandHandler func(ctx context.Context, cmd, args string) string

// Telegram: отправка алертов в один чат + приём команд из него же.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
	log    *zap.Logger

	mu      sync.Mutex
	polling bool
}

func NewTelegram(token string, chatID int64, log *zap.Logger) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return NewTelegramWithBot(b, chatID, log), nil
}

func NewTelegramWithBot(b *tgbot.BotAPI, chatID int64, log *zap.Logger) *Telegram {
	if log == nil {
		log = zap.NewNop()
	}
	return &Telegram{bot: b, chatID: chatID, log: log.Named("telegram")}
}

// Send шлёт Markdown; если Telegram не разобрал разметку, повторяет простым текстом.
func (t *Telegram) Send(ctx context.Context, msg string) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := tgbot.NewMessage(t.chatID, msg)
	m.ParseMode = tgbot.ModeMarkdown
	_, err := t.bot.Send(m)
	if err == nil {
		return nil
	}

	var apiErr *tgbot.Error
	if !errors.As(err, &apiErr) || apiErr.Code != 400 {
		t.log.Warn("send failed", zap.Error(err))
		return err
	}

	t.log.Warn("markdown rejected, resending as plain text", zap.String("reason", apiErr.Message))
	m.ParseMode = ""
	if _, err := t.bot.Send(m); err != nil {
		t.log.Warn("plain send failed", zap.Error(err))
		return err
	}
	return nil
}

// Start: long-polling сообщений, команды принимаются только из своего чата.
func (t *Telegram) Start(ctx context.Context, h CommandHandler) error {
	if t == nil || t.bot == nil || h == nil {
		return nil
	}

	t.mu.Lock()
	if t.polling {
		t.mu.Unlock()
		return nil
	}
	t.polling = true
	t.mu.Unlock()

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				if upd.Message == nil || upd.Message.Chat == nil ||
					upd.Message.Chat.ID != t.chatID || !upd.Message.IsCommand() {
					continue
				}
				cmd := upd.Message.Command()
				args := strings.TrimSpace(upd.Message.CommandArguments())
				t.log.Info("command received", zap.String("cmd", cmd), zap.String("args", args))
				if reply := h(ctx, cmd, args); reply != "" {
					_ = t.Send(ctx, reply)
				}
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {
	if t == nil || t.bot == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.polling {
		t.bot.StopReceivingUpdates()
		t.polling = false
	}
}

// Stdout: заглушка без токена: всё уходит в лог.
type Stdout struct {
	log *zap.Logger
}

func NewStdout(log *zap.Logger) *Stdout {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stdout{log: log.Named("stdout_notifier")}
}

func (s *Stdout) Send(_ context.Context, msg string) error {
	s.log.Info("alert", zap.String("text", msg))
	return nil
}
