package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wyr-proxy/api/internal/question"
)

func TestMakeCategoryKeyboard(t *testing.T) {
	kb := makeCategoryKeyboard()

	var buttons int
	for _, row := range kb.InlineKeyboard {
		assert.LessOrEqual(t, len(row), 2)
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)
			assert.Equal(t, "cat:"+btn.Text, *btn.CallbackData)
			buttons++
		}
	}
	assert.Equal(t, len(categories), buttons)
}

func TestMakeVoteKeyboard(t *testing.T) {
	kb := makeVoteKeyboard()
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "vote:a", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "vote:b", *kb.InlineKeyboard[0][1].CallbackData)
}

func TestEsc(t *testing.T) {
	assert.Equal(t, "\\*bold\\* and \\_sly\\_", esc("*bold* and _sly_"))
	assert.Equal(t, "'code'", esc("`code`"))
	assert.Equal(t, "\\[link", esc("[link"))
	assert.Equal(t, "plain text", esc("plain text"))
}

func TestChatModeState(t *testing.T) {
	const chat = int64(424242)
	assert.Equal(t, question.ModeStructured, getMode(chat))
	setMode(chat, question.ModeFreeText)
	assert.Equal(t, question.ModeFreeText, getMode(chat))
	// other chats untouched
	assert.Equal(t, question.ModeStructured, getMode(chat+1))
}
