package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"wyr-proxy/api/internal/llm"
)

func TestHandleCallbackWithoutMessage(t *testing.T) {
	// Callbacks from inline-mode or expired messages carry no Message; the
	// router drops them instead of dereferencing nil.
	r := &Router{}
	for _, data := range []string{"cat:Food", "vote:a", "again", ""} {
		cb := tgbotapi.CallbackQuery{ID: "1", Data: data}
		assert.NotPanics(t, func() {
			r.handleCallback(cb, llm.Engines{})
		})
	}
}
