package service

import (
	"context"
	"fmt"

	"rpi_trader/internal/models"
)

type ModeStore interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, m models.Mode) error
}

// Commands: ответы на /mode и /help из Telegram-чата.
type Commands struct {
	store ModeStore
}

func NewCommands(store ModeStore) *Commands {
	return &Commands{store: store}
}

func (c *Commands) Handle(ctx context.Context, cmd, args string) string {
	switch cmd {
	case "mode":
		if args == "" {
			raw, err := c.store.Read(ctx)
			if err != nil {
				return fmt.Sprintf("❗️ Cannot read mode: %v", err)
			}
			m, err := models.ParseMode(raw)
			if err != nil {
				return fmt.Sprintf("❗️ Mode file holds %q, expected 0, 1 or 2", raw)
			}
			return StatusText(m)
		}
		m, err := models.ParseMode(args)
		if err != nil {
			return "Usage: /mode [0|1|2]"
		}
		if err := c.store.Write(ctx, m); err != nil {
			return fmt.Sprintf("❗️ Cannot write mode: %v", err)
		}
		return "✅ Mode updated\n" + StatusText(m)
	case "help", "start":
		return "/mode: show current mode\n/mode 0: entry search\n/mode 1: manage buy\n/mode 2: manage sell"
	default:
		return ""
	}
}

// StatusText: общий блок статуса для CLI и чата.
func StatusText(m models.Mode) string {
	return fmt.Sprintf("Mode: %s\nStatus: %s", m.String(), m.Describe())
}
