package buissines

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/consts"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/dto"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/events"
)

// Notify delivers the Telegram messages that follow a domain event.
// Unknown event types are ignored.
func (uc *UseCase) Notify(ctx context.Context, env *events.Envelope) error {
	if uc.sender == nil {
		return fmt.Errorf("telegram sender is not set")
	}

	var err error
	switch env.Type {
	case events.TopicReferralCredited:
		err = uc.notifyReferralCredited(ctx, env)
	case events.TopicWithdrawalRequested:
		err = uc.notifyWithdrawalRequested(ctx, env)
	case events.TopicWithdrawalResolved:
		err = uc.notifyWithdrawalResolved(ctx, env)
	case events.TopicPremiumRequested:
		err = uc.notifyPremiumRequested(ctx, env)
	case events.TopicPremiumResolved:
		err = uc.notifyPremiumResolved(ctx, env)
	default:
		uc.logger.Debug().Str("type", env.Type).Msg("Skipping event without notification")
		return nil
	}

	uc.metrics.RecordNotification(env.Type, err)
	return err
}

func (uc *UseCase) notifyReferralCredited(ctx context.Context, env *events.Envelope) error {
	var event events.ReferralCredited
	if err := env.Decode(&event); err != nil {
		return err
	}

	name := event.ReferredName
	if name == "" {
		name = strconv.FormatInt(event.ReferredID, 10)
	}
	text := fmt.Sprintf("🎉 Yangi referal: <b>%s</b>\nBalansingizga +%d so'm qo'shildi.", html.EscapeString(name), event.Bonus)
	return uc.sender.SendMessage(ctx, event.ReferrerID, text)
}

func (uc *UseCase) notifyWithdrawalRequested(ctx context.Context, env *events.Envelope) error {
	var event events.WithdrawalRequested
	if err := env.Decode(&event); err != nil {
		return err
	}

	id := strconv.FormatUint(uint64(event.RequestID), 10)
	reply := &dto.Reply{
		Text: fmt.Sprintf("💸 <b>Pul yechish so'rovi #%s</b>\n\nFoydalanuvchi: <code>%d</code>\nSumma: %d so'm\nKarta: <code>%s</code>",
			id, event.UserID, event.Amount, event.CardMasked),
		Buttons: [][]dto.Button{{
			{Text: "✅ Tasdiqlash", Data: consts.CallbackWithdrawApprove + id},
			{Text: "❌ Rad etish", Data: consts.CallbackWithdrawReject + id},
		}},
	}

	recipients, err := uc.admins.Recipients(ctx, adminentities.CapabilityStats)
	if err != nil {
		return err
	}
	return uc.broadcast(recipients, func(chatID int64) error {
		return uc.sender.SendReply(ctx, chatID, reply)
	})
}

func (uc *UseCase) notifyWithdrawalResolved(ctx context.Context, env *events.Envelope) error {
	var event events.WithdrawalResolved
	if err := env.Decode(&event); err != nil {
		return err
	}

	text := fmt.Sprintf("✅ Pul yechish so'rovingiz #%d tasdiqlandi. %d so'm kartangizga o'tkaziladi.", event.RequestID, event.Amount)
	if event.Status == events.StatusRejected {
		text = fmt.Sprintf("❌ Pul yechish so'rovingiz #%d rad etildi. %d so'm balansingizga qaytarildi.", event.RequestID, event.Amount)
	}
	return uc.sender.SendMessage(ctx, event.UserID, text)
}

func (uc *UseCase) notifyPremiumRequested(ctx context.Context, env *events.Envelope) error {
	var event events.PremiumRequested
	if err := env.Decode(&event); err != nil {
		return err
	}

	id := strconv.FormatUint(uint64(event.RequestID), 10)
	reply := &dto.Reply{
		Text: fmt.Sprintf("💎 <b>Premium so'rov #%s</b>\n\nFoydalanuvchi: <code>%d</code>\nTarif: %s\nNarx: %d so'm",
			id, event.UserID, html.EscapeString(event.PlanName), event.Price),
		Buttons: [][]dto.Button{{
			{Text: "✅ Tasdiqlash", Data: consts.CallbackPremiumApprove + id},
			{Text: "❌ Rad etish", Data: consts.CallbackPremiumReject + id},
		}},
	}
	file := dto.Attachment{FileID: event.FileID, FileType: event.FileType}

	recipients, err := uc.admins.Recipients(ctx, adminentities.CapabilityPremium)
	if err != nil {
		return err
	}
	return uc.broadcast(recipients, func(chatID int64) error {
		return uc.sender.SendAttachment(ctx, chatID, file, reply)
	})
}

func (uc *UseCase) notifyPremiumResolved(ctx context.Context, env *events.Envelope) error {
	var event events.PremiumResolved
	if err := env.Decode(&event); err != nil {
		return err
	}

	text := fmt.Sprintf("❌ Premium so'rovingiz #%d rad etildi. Savollar bo'lsa admin bilan bog'laning.", event.RequestID)
	if event.Status == events.StatusApproved && event.EndDate != nil {
		text = fmt.Sprintf("💎 Premium faollashtirildi: <b>%s</b>\nAmal qilish muddati: %s gacha.",
			html.EscapeString(event.PlanName), event.EndDate.Format("2006-01-02 15:04"))
	}
	return uc.sender.SendMessage(ctx, event.UserID, text)
}

// broadcast sends to every recipient and joins the failures
func (uc *UseCase) broadcast(recipients []int64, send func(chatID int64) error) error {
	var errs []error
	for _, chatID := range recipients {
		if err := send(chatID); err != nil {
			uc.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to notify admin")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
