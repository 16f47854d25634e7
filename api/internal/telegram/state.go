package telegram

import (
	"sync"

	"wyr-proxy/api/internal/question"
)

var chatMode sync.Map // chatID -> question.Mode

func setMode(chatID int64, m question.Mode) { chatMode.Store(chatID, m) }

func getMode(chatID int64) question.Mode {
	if v, ok := chatMode.Load(chatID); ok {
		if m, ok2 := v.(question.Mode); ok2 {
			return m
		}
	}
	return question.ModeStructured
}
