// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/consts"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/dto"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/usecase/buissines"
	premiumdto "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/dto"
	pkgerrors "github.com/ibrohimkomilov001-web/kinobot/pkg/errors"
)

// commandFunc runs a command for userID with the text after the command name
type commandFunc func(ctx context.Context, userID int64, args string) (*dto.Reply, error)

// Handlers contains Telegram command handlers
// Implements deps.TelegramSender interface
type Handlers struct {
	uc     *buissines.UseCase
	bot    *tgbot.Bot
	mapper *pkgerrors.Mapper
	logger zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *buissines.UseCase, bot *tgbot.Bot, mapper *pkgerrors.Mapper, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		bot:    bot,
		mapper: mapper,
		logger: logger,
	}
}

// HandleStart handles /start with an optional ref_<id> payload
func (h *Handlers) HandleStart(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	req := &dto.StartRequest{
		UserID:   msg.From.ID,
		FullName: fullName(msg.From),
		Username: msg.From.Username,
		Payload:  commandArgs(msg.Text),
	}
	h.respond(ctx, msg.Chat.ID, msg.From.ID, "/start", func() (*dto.Reply, error) {
		return h.uc.HandleStart(ctx, req)
	})
}

// HandleHelp handles /help command
func (h *Handlers) HandleHelp(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/help", func(ctx context.Context, _ int64, _ string) (*dto.Reply, error) {
		return h.uc.HandleHelp(ctx)
	})
}

// HandleBalance handles /balance command
func (h *Handlers) HandleBalance(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/balance", func(ctx context.Context, userID int64, _ string) (*dto.Reply, error) {
		return h.uc.Balance(ctx, userID)
	})
}

// HandleWithdraw handles /withdraw command
func (h *Handlers) HandleWithdraw(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/withdraw", func(ctx context.Context, userID int64, _ string) (*dto.Reply, error) {
		return h.uc.StartWithdrawal(ctx, userID)
	})
}

// HandlePlans handles /plans command
func (h *Handlers) HandlePlans(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/plans", func(ctx context.Context, userID int64, _ string) (*dto.Reply, error) {
		return h.uc.Plans(ctx, userID)
	})
}

// HandlePremium handles /premium <plan_id>
func (h *Handlers) HandlePremium(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/premium", h.uc.StartPremium)
}

// HandleCancel handles /cancel command
func (h *Handlers) HandleCancel(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/cancel", func(ctx context.Context, userID int64, _ string) (*dto.Reply, error) {
		return h.uc.Cancel(ctx, userID)
	})
}

// HandleAddAdmin handles /addadmin <user_id>
func (h *Handlers) HandleAddAdmin(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/addadmin", h.uc.AddAdmin)
}

// HandleDelAdmin handles /deladmin <user_id>
func (h *Handlers) HandleDelAdmin(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/deladmin", h.uc.RemoveAdmin)
}

// HandleToggle handles /toggle <user_id> <capability>
func (h *Handlers) HandleToggle(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/toggle", h.uc.ToggleCapability)
}

// HandleSetting handles /setting <key> <value>
func (h *Handlers) HandleSetting(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/setting", h.uc.SetSetting)
}

// HandleAddChannel handles /addchannel <kind> <channel_id> <url> <title>
func (h *Handlers) HandleAddChannel(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/addchannel", h.uc.AddChannel)
}

// HandleDelChannel handles /delchannel <channel_id>
func (h *Handlers) HandleDelChannel(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/delchannel", h.uc.DeleteChannel)
}

// HandleRefStats handles /refstats
func (h *Handlers) HandleRefStats(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.command(ctx, update, "/refstats", func(ctx context.Context, userID int64, _ string) (*dto.Reply, error) {
		return h.uc.RefStats(ctx, userID)
	})
}

// HandleText feeds free text to the active wizard
func (h *Handlers) HandleText(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	h.respond(ctx, msg.Chat.ID, msg.From.ID, "text", func() (*dto.Reply, error) {
		reply, err := h.uc.HandleText(ctx, msg.From.ID, msg.Text)
		if reply == nil && err == nil {
			reply = dto.CommandResponse(consts.HelpHint)
		}
		return reply, err
	})
}

// HandleUnmatched answers messages no route matched, such as unknown commands and stickers
func (h *Handlers) HandleUnmatched(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	h.respond(ctx, msg.Chat.ID, msg.From.ID, "unmatched", func() (*dto.Reply, error) {
		return h.uc.Unmatched(ctx, msg.From.ID)
	})
}

// HandleReceipt turns a photo or document into a premium request when the receipt wizard is open
func (h *Handlers) HandleReceipt(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	file, ok := attachment(msg)
	if !ok {
		return
	}
	h.respond(ctx, msg.Chat.ID, msg.From.ID, "receipt", func() (*dto.Reply, error) {
		return h.uc.SubmitReceipt(ctx, msg.From.ID, file)
	})
}

// HandleJoinRequest records a join request to a request-group channel.
// The request is left pending for the channel admins.
func (h *Handlers) HandleJoinRequest(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	req := update.ChatJoinRequest
	if err := h.uc.RecordJoinRequest(ctx, req.From.ID, req.Chat.ID); err != nil {
		h.logError(req.From.ID, "join_request", err)
		return
	}
	h.logger.Info().Int64("user_id", req.From.ID).Int64("chat_id", req.Chat.ID).Msg("Join request recorded")
}

// HandleCheckSubscription handles the check button under the join prompt
func (h *Handlers) HandleCheckSubscription(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.callback(ctx, update, func(userID int64, _ string) (*dto.Reply, error) {
		return h.uc.CheckSubscription(ctx, userID)
	})
}

// HandleWithdrawButton opens the withdrawal wizard from the balance keyboard
func (h *Handlers) HandleWithdrawButton(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.callback(ctx, update, func(userID int64, _ string) (*dto.Reply, error) {
		return h.uc.StartWithdrawal(ctx, userID)
	})
}

// HandleWithdrawConfirm submits the withdrawal wizard
func (h *Handlers) HandleWithdrawConfirm(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.callback(ctx, update, func(userID int64, _ string) (*dto.Reply, error) {
		return h.uc.ConfirmWithdrawal(ctx, userID)
	})
}

// HandleWithdrawCancel drops the withdrawal wizard
func (h *Handlers) HandleWithdrawCancel(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.callback(ctx, update, func(userID int64, _ string) (*dto.Reply, error) {
		return h.uc.Cancel(ctx, userID)
	})
}

// HandleWithdrawResolution handles wd_approve:<id> and wd_reject:<id>
func (h *Handlers) HandleWithdrawResolution(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.callback(ctx, update, func(adminID int64, data string) (*dto.Reply, error) {
		if id, ok := strings.CutPrefix(data, consts.CallbackWithdrawApprove); ok {
			return h.uc.ResolveWithdrawal(ctx, adminID, id, true)
		}
		return h.uc.ResolveWithdrawal(ctx, adminID, strings.TrimPrefix(data, consts.CallbackWithdrawReject), false)
	})
}

// HandlePremiumResolution handles pr_approve:<id> and pr_reject:<id>
func (h *Handlers) HandlePremiumResolution(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	h.callback(ctx, update, func(adminID int64, data string) (*dto.Reply, error) {
		if id, ok := strings.CutPrefix(data, consts.CallbackPremiumApprove); ok {
			return h.uc.ResolvePremium(ctx, adminID, id, true)
		}
		return h.uc.ResolvePremium(ctx, adminID, strings.TrimPrefix(data, consts.CallbackPremiumReject), false)
	})
}

// command runs fn for a text command and replies in the same chat
func (h *Handlers) command(ctx context.Context, update *models.Update, name string, fn commandFunc) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	h.respond(ctx, msg.Chat.ID, msg.From.ID, name, func() (*dto.Reply, error) {
		return fn(ctx, msg.From.ID, commandArgs(msg.Text))
	})
}

// callback answers the callback query, then runs fn and replies to the pressing user
func (h *Handlers) callback(ctx context.Context, update *models.Update, fn func(userID int64, data string) (*dto.Reply, error)) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	if _, err := h.bot.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{CallbackQueryID: query.ID}); err != nil {
		h.logger.Warn().Err(err).Str("callback_query_id", query.ID).Msg("Failed to answer callback query")
	}

	h.respond(ctx, query.From.ID, query.From.ID, query.Data, func() (*dto.Reply, error) {
		return fn(query.From.ID, query.Data)
	})
}

// respond sends the reply of fn, or the mapped error message
func (h *Handlers) respond(ctx context.Context, chatID, userID int64, command string, fn func() (*dto.Reply, error)) {
	h.logCommand(userID, command, "processing")

	reply, err := fn()
	if err != nil {
		h.logError(userID, command, err)
		h.sendResponse(ctx, chatID, dto.CommandResponse(h.mapper.UserMessage(err)))
		return
	}
	if reply == nil {
		h.logCommand(userID, command, "ignored")
		return
	}

	h.sendResponse(ctx, chatID, reply)
	h.logCommand(userID, command, "success")
}

func (h *Handlers) logCommand(userID int64, command, result string) {
	h.logger.Info().Int64("user_id", userID).Str("command", command).Str("result", result).Msg("Telegram command processed")
}

func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Error().Int64("user_id", userID).Str("command", command).Err(err).Msg("Telegram command failed")
}

// commandArgs returns the text after the command word
func commandArgs(text string) string {
	_, args, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.TrimSpace(args)
}

func fullName(u *models.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// attachment extracts the largest photo or the document of a message
func attachment(msg *models.Message) (dto.Attachment, bool) {
	if msg == nil {
		return dto.Attachment{}, false
	}
	if n := len(msg.Photo); n > 0 {
		return dto.Attachment{FileID: msg.Photo[n-1].FileID, FileType: premiumdto.FileTypePhoto}, true
	}
	if msg.Document != nil {
		return dto.Attachment{FileID: msg.Document.FileID, FileType: premiumdto.FileTypeDocument}, true
	}
	return dto.Attachment{}, false
}
