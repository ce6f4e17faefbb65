package telegram

import (
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/consts"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/dto"
	premiumdto "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/dto"
)

func TestSplitMessage(t *testing.T) {
	t.Run("short text is kept", func(t *testing.T) {
		assert.Equal(t, []string{"salom"}, splitMessage("salom"))
	})

	t.Run("splits on line breaks", func(t *testing.T) {
		line := strings.Repeat("a", 3000)
		parts := splitMessage(line + "\n" + line)
		require.Len(t, parts, 2)
		assert.Equal(t, line, parts[0])
		assert.Equal(t, line, parts[1])
	})

	t.Run("splits long lines on spaces", func(t *testing.T) {
		word := strings.Repeat("b", 99)
		text := strings.TrimSpace(strings.Repeat(word+" ", 100))
		parts := splitMessage(text)
		require.Len(t, parts, 3)
		for _, p := range parts {
			assert.LessOrEqual(t, len(p), MaxMessageLength)
			assert.False(t, strings.HasPrefix(p, " "))
		}
		assert.Equal(t, text, strings.Join(parts, " "))
	})
}

func TestKeyboard(t *testing.T) {
	assert.Nil(t, keyboard(nil))

	markup := keyboard([][]dto.Button{
		{{Text: "Kanal", URL: "https://t.me/kino"}},
		{{Text: "Ha", Data: "yes"}, {Text: "Yo'q", Data: "no"}},
	})
	inline, ok := markup.(*models.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, inline.InlineKeyboard, 2)
	assert.Equal(t, "https://t.me/kino", inline.InlineKeyboard[0][0].URL)
	assert.Equal(t, "no", inline.InlineKeyboard[1][1].CallbackData)
}

func TestCommandArgs(t *testing.T) {
	assert.Equal(t, "", commandArgs("/balance"))
	assert.Equal(t, "3", commandArgs("/premium 3"))
	assert.Equal(t, "55 premium", commandArgs("  /toggle   55 premium "))
}

func TestAttachment(t *testing.T) {
	file, ok := attachment(&models.Message{Photo: []models.PhotoSize{{FileID: "small"}, {FileID: "large"}}})
	require.True(t, ok)
	assert.Equal(t, dto.Attachment{FileID: "large", FileType: premiumdto.FileTypePhoto}, file)

	file, ok = attachment(&models.Message{Document: &models.Document{FileID: "doc"}})
	require.True(t, ok)
	assert.Equal(t, premiumdto.FileTypeDocument, file.FileType)

	_, ok = attachment(&models.Message{Text: "salom"})
	assert.False(t, ok)
	_, ok = attachment(nil)
	assert.False(t, ok)
}

func TestMatchers(t *testing.T) {
	from := &models.User{ID: 7}
	message := func(text string) *models.Update {
		return &models.Update{Message: &models.Message{From: from, Text: text}}
	}

	start := matchCommand(consts.CommandStart)
	assert.True(t, start(message("/start")))
	assert.True(t, start(message("/start ref_5")))
	assert.True(t, start(message("/start@kinobot ref_5")))
	assert.False(t, start(message("/starter")))
	assert.False(t, start(message("start")))
	assert.False(t, start(&models.Update{}))

	assert.True(t, matchFreeText(message("8600 1111 2222 4444")))
	assert.False(t, matchFreeText(message("/help")))

	assert.True(t, matchAttachment(&models.Update{Message: &models.Message{From: from, Document: &models.Document{FileID: "doc"}}}))
	assert.False(t, matchAttachment(message("salom")))

	assert.True(t, matchJoinRequest(&models.Update{ChatJoinRequest: &models.ChatJoinRequest{}}))
	assert.False(t, matchJoinRequest(message("salom")))
}
