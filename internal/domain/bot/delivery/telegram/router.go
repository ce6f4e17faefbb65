// Package telegram contains Telegram delivery layer
package telegram

import (
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/consts"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all command handlers on the bot
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	h := r.handlers

	// User commands
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandStart), h.HandleStart)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandHelp), h.HandleHelp)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandBalance), h.HandleBalance)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandWithdraw), h.HandleWithdraw)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandPlans), h.HandlePlans)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandPremium), h.HandlePremium)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandCancel), h.HandleCancel)

	// Admin commands, permissions are checked by the domains
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandAddAdmin), h.HandleAddAdmin)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandDelAdmin), h.HandleDelAdmin)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandToggle), h.HandleToggle)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandSetting), h.HandleSetting)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandAddChannel), h.HandleAddChannel)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandDelChannel), h.HandleDelChannel)
	bot.RegisterHandlerMatchFunc(matchCommand(consts.CommandRefStats), h.HandleRefStats)

	// Callback buttons
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackCheckSubscription, tgbot.MatchTypeExact, h.HandleCheckSubscription)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CommandWithdraw.Name, tgbot.MatchTypeExact, h.HandleWithdrawButton)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackWithdrawConfirm, tgbot.MatchTypeExact, h.HandleWithdrawConfirm)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackWithdrawCancel, tgbot.MatchTypeExact, h.HandleWithdrawCancel)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackWithdrawApprove, tgbot.MatchTypePrefix, h.HandleWithdrawResolution)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackWithdrawReject, tgbot.MatchTypePrefix, h.HandleWithdrawResolution)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackPremiumApprove, tgbot.MatchTypePrefix, h.HandlePremiumResolution)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackPremiumReject, tgbot.MatchTypePrefix, h.HandlePremiumResolution)

	// Updates without a command
	bot.RegisterHandlerMatchFunc(matchJoinRequest, h.HandleJoinRequest)
	bot.RegisterHandlerMatchFunc(matchAttachment, h.HandleReceipt)
	bot.RegisterHandlerMatchFunc(matchFreeText, h.HandleText)

	r.logger.Info().Msg("All Telegram command handlers registered successfully")
}

// matchCommand matches "/name", "/name args" and "/name@bot args"
func matchCommand(cmd consts.Command) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil || update.Message.From == nil {
			return false
		}
		word, _, _ := strings.Cut(strings.TrimSpace(update.Message.Text), " ")
		word, _, _ = strings.Cut(word, "@")
		return word == "/"+cmd.Name
	}
}

func matchJoinRequest(update *models.Update) bool {
	return update.ChatJoinRequest != nil
}

func matchAttachment(update *models.Update) bool {
	msg := update.Message
	return msg != nil && msg.From != nil && (len(msg.Photo) > 0 || msg.Document != nil)
}

func matchFreeText(update *models.Update) bool {
	msg := update.Message
	return msg != nil && msg.From != nil && msg.Text != "" && !strings.HasPrefix(msg.Text, "/")
}
