package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"wyr-proxy/api/internal/llm"
)

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery, engines llm.Engines) {
	// Message is optional: callbacks from inline-mode or expired messages
	// arrive without one, and there is no chat to answer in.
	if cb.Message == nil {
		return
	}
	cid := cb.Message.Chat.ID
	data := cb.Data
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack

	switch {
	case strings.HasPrefix(data, "cat:"):
		r.askQuestion(cid, strings.TrimPrefix(data, "cat:"))
	case data == "vote:a" || data == "vote:b":
		r.onVote(cid, cb.Message.MessageID, data)
	case data == "again":
		r.sendCategoryPicker(cid)
	}
}

func (r *Router) onVote(chatID int64, msgID int, data string) {
	// retire the vote buttons on the answered question
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	_, _ = r.Bot.Send(edit)

	reply := "🅰 Bold choice!"
	if data == "vote:b" {
		reply = "🅱 Interesting pick!"
	}
	msg := tgbotapi.NewMessage(chatID, reply)
	msg.ReplyMarkup = makeAgainKeyboard()
	_, _ = r.Bot.Send(msg)
}
