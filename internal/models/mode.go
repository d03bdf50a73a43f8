package models

import (
	"fmt"
	"strings"
)

// Mode: режим работы бота, хранится во внешнем trigger-файле.
type Mode int

const (
	ModeEntrySearch Mode = iota // "0": ищем вход
	ModeManageBuy               // "1": ведём BUY
	ModeManageSell              // "2": ведём SELL
)

// ParseMode строго разбирает сырое значение из trigger-файла.
func ParseMode(raw string) (Mode, error) {
	switch strings.TrimSpace(raw) {
	case "0":
		return ModeEntrySearch, nil
	case "1":
		return ModeManageBuy, nil
	case "2":
		return ModeManageSell, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, raw)
}

// String: значение в формате trigger-файла.
func (m Mode) String() string {
	switch m {
	case ModeEntrySearch:
		return "0"
	case ModeManageBuy:
		return "1"
	case ModeManageSell:
		return "2"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) Describe() string {
	switch m {
	case ModeEntrySearch:
		return "Entry Mode (Search for opportunities)"
	case ModeManageBuy:
		return "Management Mode (Active BUY Order)"
	case ModeManageSell:
		return "Management Mode (Active SELL Order)"
	}
	return "Unknown Mode"
}

func (m Mode) Valid() bool {
	return m == ModeEntrySearch || m == ModeManageBuy || m == ModeManageSell
}
