package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/dto"
	premiumdto "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/dto"
)

// Constants for Telegram API
const (
	MaxMessageLength    = 4096
	MaxCaptionLength    = 1024
	MessageSplitTimeout = 2 * time.Second
	RequestTimeout      = 30 * time.Second
)

// SendMessage implements deps.TelegramSender interface
func (h *Handlers) SendMessage(ctx context.Context, userID int64, text string) error {
	return h.SendReply(ctx, userID, dto.CommandResponse(text))
}

// SendReply implements deps.TelegramSender interface.
// Long texts are split on line boundaries; the keyboard goes with the last part.
func (h *Handlers) SendReply(ctx context.Context, chatID int64, reply *dto.Reply) error {
	if reply == nil || reply.Text == "" {
		h.logger.Warn().Int64("user_id", chatID).Msg("Attempt to send empty message")
		return fmt.Errorf("message text cannot be empty")
	}

	h.logger.Debug().Int64("user_id", chatID).Int("text_length", len(reply.Text)).Msg("Sending message to user")

	markup := keyboard(reply.Buttons)
	if len(reply.Text) > MaxMessageLength {
		return h.sendSplitMessage(ctx, chatID, reply.Text, markup)
	}
	return h.sendSingleMessage(ctx, chatID, reply.Text, markup)
}

// SendAttachment implements deps.TelegramSender interface
func (h *Handlers) SendAttachment(ctx context.Context, chatID int64, file dto.Attachment, reply *dto.Reply) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	caption := reply.Text
	if len(caption) > MaxCaptionLength {
		caption = caption[:MaxCaptionLength]
	}
	markup := keyboard(reply.Buttons)
	input := &models.InputFileString{Data: file.FileID}

	var err error
	switch file.FileType {
	case premiumdto.FileTypePhoto:
		_, err = h.bot.SendPhoto(msgCtx, &tgbot.SendPhotoParams{
			ChatID:      chatID,
			Photo:       input,
			Caption:     caption,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
	case premiumdto.FileTypeDocument:
		_, err = h.bot.SendDocument(msgCtx, &tgbot.SendDocumentParams{
			ChatID:      chatID,
			Document:    input,
			Caption:     caption,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
	default:
		return fmt.Errorf("unsupported attachment type %q", file.FileType)
	}

	if err != nil {
		handledErr := h.handleSendMessageError(chatID, err)
		h.logMessageSend(chatID, len(caption), false, handledErr)
		return handledErr
	}

	h.logMessageSend(chatID, len(caption), true, nil)
	return nil
}

// keyboard converts reply buttons into an inline keyboard, nil when there are none
func keyboard(rows [][]dto.Button) models.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: make([][]models.InlineKeyboardButton, 0, len(rows)),
	}
	for _, row := range rows {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.InlineKeyboardButton{
				Text:         b.Text,
				URL:          b.URL,
				CallbackData: b.Data,
			})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	return markup
}

func (h *Handlers) sendResponse(ctx context.Context, chatID int64, reply *dto.Reply) {
	if err := h.SendReply(ctx, chatID, reply); err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to send Telegram response")
	}
}

func (h *Handlers) sendSingleMessage(ctx context.Context, userID int64, text string, markup models.ReplyMarkup) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:      userID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})

	if err != nil {
		handledErr := h.handleSendMessageError(userID, err)
		h.logMessageSend(userID, len(text), false, handledErr)
		return handledErr
	}

	h.logMessageSend(userID, len(text), true, nil)
	return nil
}

func (h *Handlers) sendSplitMessage(ctx context.Context, userID int64, text string, markup models.ReplyMarkup) error {
	h.logger.Info().Int64("user_id", userID).Int("total_length", len(text)).Msg("Splitting long message into parts")

	parts := splitMessage(text)
	totalParts := len(parts)
	successCount := 0

	for i, part := range parts {
		partNumber := i + 1

		var partMarkup models.ReplyMarkup
		if partNumber == totalParts {
			partMarkup = markup
		}

		if err := h.sendSingleMessage(ctx, userID, part, partMarkup); err != nil {
			h.logger.Error().Int64("user_id", userID).Int("part", partNumber).Int("total_parts", totalParts).Err(err).Msg("Failed to send message part")
			continue
		}

		successCount++

		if partNumber < totalParts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(MessageSplitTimeout):
			}
		}
	}

	h.logger.Info().Int64("user_id", userID).Int("success_parts", successCount).Int("total_parts", totalParts).Msg("Finished sending split message")

	if successCount == 0 {
		return fmt.Errorf("failed to send all message parts")
	}
	if successCount < totalParts {
		return fmt.Errorf("sent only %d out of %d message parts", successCount, totalParts)
	}
	return nil
}

// splitMessage cuts text into parts of at most MaxMessageLength bytes, preferring line breaks
func splitMessage(text string) []string {
	if len(text) <= MaxMessageLength {
		return []string{text}
	}

	var parts []string
	var current strings.Builder

	for _, line := range strings.Split(text, "\n") {
		if current.Len()+len(line)+1 > MaxMessageLength {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			if len(line) > MaxMessageLength {
				parts = append(parts, splitLongLine(line)...)
				continue
			}
		}

		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func splitLongLine(line string) []string {
	var parts []string
	start := 0

	for start < len(line) {
		end := min(start+MaxMessageLength, len(line))
		if end < len(line) {
			if lastSpace := strings.LastIndex(line[start:end], " "); lastSpace > 0 {
				end = start + lastSpace
			}
		}

		parts = append(parts, line[start:end])
		start = end

		for start < len(line) && line[start] == ' ' {
			start++
		}
	}
	return parts
}

func (h *Handlers) handleSendMessageError(userID int64, err error) error {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "Forbidden"), strings.Contains(errorMsg, "forbidden"):
		h.logger.Warn().Int64("user_id", userID).Msg("User blocked the bot or chat not found")
		return fmt.Errorf("user blocked the bot or chat not found: %w", err)

	case strings.Contains(errorMsg, "chat not found"):
		h.logger.Warn().Int64("user_id", userID).Msg("Chat not found")
		return fmt.Errorf("chat not found: %w", err)

	case strings.Contains(errorMsg, "Too Many Requests"), strings.Contains(errorMsg, "too many requests"):
		h.logger.Warn().Int64("user_id", userID).Msg("Rate limit exceeded")
		return fmt.Errorf("rate limit exceeded: %w", err)

	default:
		h.logger.Error().Int64("user_id", userID).Err(err).Msg("Unknown error while sending message")
		return fmt.Errorf("failed to send message: %w", err)
	}
}

// logMessageSend logs message send result
func (h *Handlers) logMessageSend(userID int64, length int, success bool, err error) {
	logEvent := h.logger.Info()
	if !success {
		logEvent = h.logger.Error()
	}

	logEvent.Int64("user_id", userID).Int("message_length", length).Bool("success", success)

	if err != nil {
		logEvent.Err(err)
	}

	logEvent.Msg("Message send attempt completed")
}
