// Package buissines contains business logic for the bot domain
package buissines

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	adminerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/errors"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/consts"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/deps"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/dto"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/entities"
	boterrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/errors"
	gatedto "github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/dto"
	ledgerentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/entities"
	ledgererrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/errors"
	premiumdto "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/dto"
	premiumerrors "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/errors"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
)

const welcomeText = `👋 <b>Xush kelibsiz!</b>

Kino kodini yuboring va filmni oling.

/balance - referal balans
/plans - premium tariflar
/help - yordam`

const helpText = `📚 <b>Yordam</b>

/start - botni ishga tushirish
/balance - referal balans va havola
/withdraw - pul yechish
/plans - premium tariflar
/premium &lt;id&gt; - premium sotib olish
/cancel - joriy amalni bekor qilish`

const subscribePrompt = "📢 Botdan foydalanish uchun quyidagi kanallarga obuna bo'ling:"

// UseCase orchestrates the gate, ledger, premium and admin domains for Telegram users
type UseCase struct {
	settings deps.SettingsProvider
	gate     deps.Gate
	ledger   deps.Ledger
	premium  deps.Premium
	admins   deps.Admins
	wizards  deps.WizardStore
	sender   deps.TelegramSender
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewUseCase creates a new UseCase instance
// Note: sender is not passed here to break cyclic dependency
// Use SetSender after creating TelegramHandlers
func NewUseCase(
	settings deps.SettingsProvider,
	gate deps.Gate,
	ledger deps.Ledger,
	premium deps.Premium,
	admins deps.Admins,
	wizards deps.WizardStore,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		settings: settings,
		gate:     gate,
		ledger:   ledger,
		premium:  premium,
		admins:   admins,
		wizards:  wizards,
		metrics:  m,
		logger:   logger,
	}
}

// SetSender sets the TelegramSender after construction
// This is called by fx.Invoke to resolve cyclic dependency
func (uc *UseCase) SetSender(sender deps.TelegramSender) {
	uc.sender = sender
}

// HandleStart registers the user, credits a referrer from the payload and checks the gate
func (uc *UseCase) HandleStart(ctx context.Context, req *dto.StartRequest) (*dto.Reply, error) {
	cfg, err := uc.settings.LedgerConfig(ctx)
	if err != nil {
		return nil, err
	}

	user := ledgerentities.NewUser{
		UserID:   req.UserID,
		FullName: req.FullName,
		Username: req.Username,
	}
	created, err := uc.ledger.RegisterReferral(ctx, cfg, user, parseReferrer(req.Payload, req.UserID))
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("username", req.Username).
		Bool("new_user", created).
		Msg("User started bot")

	return uc.gateReply(ctx, req.UserID, welcomeText, subscribePrompt)
}

// HandleHelp returns the command list
func (uc *UseCase) HandleHelp(_ context.Context) (*dto.Reply, error) {
	return dto.CommandResponse(helpText), nil
}

// Unmatched answers a message no command matched: the join prompt when the gate blocks, otherwise a help hint
func (uc *UseCase) Unmatched(ctx context.Context, userID int64) (*dto.Reply, error) {
	if prompt, err := uc.requireGate(ctx, userID); prompt != nil || err != nil {
		return prompt, err
	}
	return dto.CommandResponse(consts.HelpHint), nil
}

// CheckSubscription re-runs the gate after the user pressed the check button
func (uc *UseCase) CheckSubscription(ctx context.Context, userID int64) (*dto.Reply, error) {
	return uc.gateReply(ctx, userID, "✅ Rahmat! Endi botdan foydalanishingiz mumkin.", "❌ Siz hali barcha kanallarga obuna bo'lmadingiz:")
}

// RecordJoinRequest stores a join request to a request-group channel
func (uc *UseCase) RecordJoinRequest(ctx context.Context, userID, chatID int64) error {
	return uc.gate.RecordJoinRequest(ctx, userID, strconv.FormatInt(chatID, 10))
}

// gateReply returns okText when the user may use the bot, otherwise the join prompt
func (uc *UseCase) gateReply(ctx context.Context, userID int64, okText, promptText string) (*dto.Reply, error) {
	prompt, err := uc.gatePrompt(ctx, userID, promptText)
	if err != nil || prompt != nil {
		return prompt, err
	}
	return dto.CommandResponse(okText), nil
}

// requireGate returns the join prompt when userID has not joined the required channels.
// It returns nil for admins and for users who pass the gate.
func (uc *UseCase) requireGate(ctx context.Context, userID int64) (*dto.Reply, error) {
	return uc.gatePrompt(ctx, userID, subscribePrompt)
}

func (uc *UseCase) gatePrompt(ctx context.Context, userID int64, promptText string) (*dto.Reply, error) {
	isAdmin, err := uc.admins.IsAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		return nil, nil
	}

	cfg, err := uc.settings.GateConfig(ctx)
	if err != nil {
		return nil, err
	}

	satisfied, err := uc.gate.IsSatisfied(ctx, cfg, userID)
	if err != nil {
		return nil, err
	}
	if satisfied {
		return nil, nil
	}

	channels, err := uc.gate.PromptChannels(ctx, cfg, userID)
	if err != nil {
		return nil, err
	}
	return joinPrompt(promptText, channels), nil
}

func joinPrompt(text string, channels []gatedto.ChannelStatus) *dto.Reply {
	reply := &dto.Reply{Text: text}
	for _, ch := range channels {
		title := ch.Title
		if !ch.External {
			title = "➕ " + title
		}
		reply.Buttons = append(reply.Buttons, []dto.Button{{Text: title, URL: ch.URL}})
	}
	reply.Buttons = append(reply.Buttons, []dto.Button{{Text: "✅ Tekshirish", Data: consts.CallbackCheckSubscription}})
	return reply
}

// parseReferrer extracts the referrer from a ref_<id> payload. Self-referrals are dropped.
func parseReferrer(payload string, userID int64) *int64 {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, consts.ReferralPrefix) {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(payload, consts.ReferralPrefix), 10, 64)
	if err != nil || id <= 0 || id == userID {
		return nil
	}
	return &id
}

// Balance shows the referral balance and the invite payload
func (uc *UseCase) Balance(ctx context.Context, userID int64) (*dto.Reply, error) {
	if prompt, err := uc.requireGate(ctx, userID); prompt != nil || err != nil {
		return prompt, err
	}
	cfg, err := uc.settings.LedgerConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ledgererrors.ErrReferralDisabled
	}

	info, err := uc.ledger.BalanceInfo(ctx, cfg, userID)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf(`💰 <b>Referal balans</b>

Balans: <b>%d so'm</b>
Taklif qilinganlar: %d
Har bir do'st uchun: %d so'm
Minimal yechish: %d so'm

Taklif kodi: <code>/start %s%d</code>`,
		info.Balance, info.ReferralCount, info.Bonus, info.MinWithdrawal, consts.ReferralPrefix, userID)

	reply := dto.CommandResponse(text)
	if info.Balance >= info.MinWithdrawal && info.Balance > 0 {
		reply.Buttons = [][]dto.Button{{{Text: "💸 Pul yechish", Data: consts.CommandWithdraw.Name}}}
	}
	return reply, nil
}

// StartWithdrawal opens the withdrawal wizard when the balance reaches the minimum
func (uc *UseCase) StartWithdrawal(ctx context.Context, userID int64) (*dto.Reply, error) {
	if prompt, err := uc.requireGate(ctx, userID); prompt != nil || err != nil {
		return prompt, err
	}
	cfg, err := uc.settings.LedgerConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ledgererrors.ErrReferralDisabled
	}

	if err := uc.ledger.CheckWithdrawalEligibility(ctx, cfg, userID, max(cfg.MinWithdrawal, 1)); err != nil {
		return nil, err
	}

	if err := uc.wizards.Save(ctx, userID, &entities.Wizard{Kind: entities.WizardWithdraw, Step: entities.StepAmount}); err != nil {
		return nil, err
	}

	return dto.CommandResponse(fmt.Sprintf("💸 Yechmoqchi bo'lgan summani kiriting (kamida %d so'm).\n\n/cancel - bekor qilish", cfg.MinWithdrawal)), nil
}

// HandleText advances the active wizard. It returns nil when no wizard waits for text.
func (uc *UseCase) HandleText(ctx context.Context, userID int64, text string) (*dto.Reply, error) {
	if prompt, err := uc.requireGate(ctx, userID); prompt != nil || err != nil {
		return prompt, err
	}
	wizard, err := uc.wizards.Get(ctx, userID)
	if err != nil || wizard == nil {
		return nil, err
	}

	switch {
	case wizard.Waits(entities.WizardWithdraw, entities.StepAmount):
		return uc.withdrawAmount(ctx, userID, wizard, text)
	case wizard.Waits(entities.WizardWithdraw, entities.StepCard):
		return uc.withdrawCard(ctx, userID, wizard, text)
	case wizard.Waits(entities.WizardWithdraw, entities.StepConfirm):
		return withdrawConfirmation(wizard), nil
	case wizard.Waits(entities.WizardPremium, entities.StepReceipt):
		return dto.CommandResponse("🧾 To'lov chekini rasm yoki fayl ko'rinishida yuboring.\n\n/cancel - bekor qilish"), nil
	}
	return nil, nil
}

func (uc *UseCase) withdrawAmount(ctx context.Context, userID int64, wizard *entities.Wizard, text string) (*dto.Reply, error) {
	amount, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(text), " ", ""), 10, 64)
	if err != nil {
		return nil, boterrors.ErrInvalidAmount
	}

	cfg, err := uc.settings.LedgerConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.CheckWithdrawalEligibility(ctx, cfg, userID, amount); err != nil {
		return nil, err
	}

	wizard.Amount = amount
	wizard.Step = entities.StepCard
	if err := uc.wizards.Save(ctx, userID, wizard); err != nil {
		return nil, err
	}
	return dto.CommandResponse("💳 16 xonali karta raqamingizni kiriting."), nil
}

func (uc *UseCase) withdrawCard(ctx context.Context, userID int64, wizard *entities.Wizard, text string) (*dto.Reply, error) {
	card, ok := ledgerentities.NormalizeCard(text)
	if !ok {
		return nil, ledgererrors.ErrInvalidCard
	}

	wizard.Card = card
	wizard.Step = entities.StepConfirm
	if err := uc.wizards.Save(ctx, userID, wizard); err != nil {
		return nil, err
	}
	return withdrawConfirmation(wizard), nil
}

func withdrawConfirmation(wizard *entities.Wizard) *dto.Reply {
	return &dto.Reply{
		Text: fmt.Sprintf("Summa: <b>%d so'm</b>\nKarta: <code>%s</code>\n\nTasdiqlaysizmi?",
			wizard.Amount, ledgerentities.MaskCard(wizard.Card)),
		Buttons: [][]dto.Button{{
			{Text: "✅ Tasdiqlash", Data: consts.CallbackWithdrawConfirm},
			{Text: "❌ Bekor qilish", Data: consts.CallbackWithdrawCancel},
		}},
	}
}

// ConfirmWithdrawal debits the balance and creates the payout request from the wizard.
// The wizard is closed whatever the outcome.
func (uc *UseCase) ConfirmWithdrawal(ctx context.Context, userID int64) (*dto.Reply, error) {
	if prompt, err := uc.requireGate(ctx, userID); prompt != nil || err != nil {
		return prompt, err
	}
	wizard, err := uc.wizards.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !wizard.Waits(entities.WizardWithdraw, entities.StepConfirm) {
		return nil, boterrors.ErrNoActiveWizard
	}
	defer uc.clearWizard(ctx, userID)

	cfg, err := uc.settings.LedgerConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.CheckWithdrawalEligibility(ctx, cfg, userID, wizard.Amount); err != nil {
		return nil, err
	}

	request, err := uc.ledger.RequestWithdrawal(ctx, userID, wizard.Amount, wizard.Card)
	if err != nil {
		return nil, err
	}

	return dto.CommandResponse(fmt.Sprintf("✅ So'rov #%d qabul qilindi. Admin tasdiqlashini kuting.", request.ID)), nil
}

// Cancel drops any wizard in progress
func (uc *UseCase) Cancel(ctx context.Context, userID int64) (*dto.Reply, error) {
	if err := uc.wizards.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return dto.CommandResponse("❌ Bekor qilindi."), nil
}

func (uc *UseCase) clearWizard(ctx context.Context, userID int64) {
	if err := uc.wizards.Clear(ctx, userID); err != nil {
		uc.logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to clear wizard")
	}
}

// Plans lists purchasable plans and the current premium status of userID
func (uc *UseCase) Plans(ctx context.Context, userID int64) (*dto.Reply, error) {
	if prompt, err := uc.requireGate(ctx, userID); prompt != nil || err != nil {
		return prompt, err
	}
	payment, err := uc.settings.PaymentConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !payment.PremiumEnabled {
		return nil, boterrors.ErrPremiumDisabled
	}

	plans, err := uc.premium.ListActivePlans(ctx)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("💎 <b>Premium tariflar</b>\n\n")

	sub, err := uc.premium.ActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		fmt.Fprintf(&b, "Sizda premium bor: %s gacha\n\n", sub.EndDate.Format("2006-01-02 15:04"))
	}

	if len(plans) == 0 {
		b.WriteString("Hozircha tariflar yo'q.")
		return dto.CommandResponse(b.String()), nil
	}
	for _, p := range plans {
		fmt.Fprintf(&b, "#%d <b>%s</b>: %d kun, %d so'm\n", p.ID, html.EscapeString(p.Name), p.DurationDays, p.Price)
		if p.Description != "" {
			fmt.Fprintf(&b, "   %s\n", html.EscapeString(p.Description))
		}
	}
	b.WriteString("\nSotib olish: /premium &lt;id&gt;")
	return dto.CommandResponse(b.String()), nil
}

// StartPremium opens the receipt wizard for a plan
func (uc *UseCase) StartPremium(ctx context.Context, userID int64, args string) (*dto.Reply, error) {
	if prompt, err := uc.requireGate(ctx, userID); prompt != nil || err != nil {
		return prompt, err
	}
	payment, err := uc.settings.PaymentConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !payment.PremiumEnabled {
		return nil, boterrors.ErrPremiumDisabled
	}

	planID, err := parseRequestID(args)
	if err != nil {
		return nil, boterrors.ErrInvalidCommand
	}

	plan, err := uc.premium.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, premiumerrors.ErrPlanInactive
	}

	if err := uc.wizards.Save(ctx, userID, &entities.Wizard{Kind: entities.WizardPremium, Step: entities.StepReceipt, PlanID: plan.ID}); err != nil {
		return nil, err
	}

	card := payment.Card
	if card == "" {
		card = "admin bilan bog'laning"
	}
	return dto.CommandResponse(fmt.Sprintf(`💎 <b>%s</b> (%d kun)

%d so'm ni quyidagi kartaga o'tkazing:
<code>%s</code>

So'ng to'lov chekini rasm yoki fayl qilib yuboring.
/cancel - bekor qilish`, html.EscapeString(plan.Name), plan.DurationDays, plan.Price, html.EscapeString(card))), nil
}

// SubmitReceipt turns a photo or document into a premium request.
// It returns nil when the user is not in the receipt step.
func (uc *UseCase) SubmitReceipt(ctx context.Context, userID int64, file dto.Attachment) (*dto.Reply, error) {
	if prompt, err := uc.requireGate(ctx, userID); prompt != nil || err != nil {
		return prompt, err
	}
	wizard, err := uc.wizards.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !wizard.Waits(entities.WizardPremium, entities.StepReceipt) {
		return nil, nil
	}

	request, err := uc.premium.SubmitRequest(ctx, &premiumdto.SubmitRequest{
		UserID:   userID,
		PlanID:   wizard.PlanID,
		FileID:   file.FileID,
		FileType: file.FileType,
	})
	if err != nil {
		return nil, err
	}
	uc.clearWizard(ctx, userID)

	return dto.CommandResponse(fmt.Sprintf("✅ Chek qabul qilindi (so'rov #%d). Admin tekshirgach xabar beramiz.", request.ID)), nil
}

// ResolveWithdrawal approves or rejects a payout from an admin callback
func (uc *UseCase) ResolveWithdrawal(ctx context.Context, adminID int64, rawID string, approve bool) (*dto.Reply, error) {
	id, err := parseRequestID(rawID)
	if err != nil {
		return nil, err
	}

	if approve {
		request, err := uc.ledger.ApproveWithdrawal(ctx, id, adminID)
		if err != nil {
			return nil, err
		}
		return dto.CommandResponse(fmt.Sprintf("✅ Pul yechish #%d tasdiqlandi (%d so'm).", request.ID, request.Amount)), nil
	}

	request, err := uc.ledger.RejectWithdrawal(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	return dto.CommandResponse(fmt.Sprintf("❌ Pul yechish #%d rad etildi, %d so'm qaytarildi.", request.ID, request.Amount)), nil
}

// ResolvePremium approves or rejects a premium purchase from an admin callback
func (uc *UseCase) ResolvePremium(ctx context.Context, adminID int64, rawID string, approve bool) (*dto.Reply, error) {
	id, err := parseRequestID(rawID)
	if err != nil {
		return nil, err
	}

	if !approve {
		if err := uc.premium.RejectPremiumRequest(ctx, id, adminID); err != nil {
			return nil, err
		}
		return dto.CommandResponse(fmt.Sprintf("❌ Premium so'rov #%d rad etildi.", id)), nil
	}

	sub, err := uc.premium.ApprovePremiumRequest(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	return dto.CommandResponse(fmt.Sprintf("✅ Premium so'rov #%d tasdiqlandi, %s gacha.", id, sub.EndDate.Format("2006-01-02"))), nil
}

// AddAdmin handles /addadmin <user_id>
func (uc *UseCase) AddAdmin(ctx context.Context, actorID int64, args string) (*dto.Reply, error) {
	userID, err := parseUserID(args)
	if err != nil {
		return nil, err
	}
	if _, err := uc.admins.AddAdmin(ctx, actorID, userID); err != nil {
		return nil, err
	}
	return dto.CommandResponse(fmt.Sprintf("✅ %d admin qilindi.", userID)), nil
}

// RemoveAdmin handles /deladmin <user_id>
func (uc *UseCase) RemoveAdmin(ctx context.Context, actorID int64, args string) (*dto.Reply, error) {
	userID, err := parseUserID(args)
	if err != nil {
		return nil, err
	}
	if err := uc.admins.RemoveAdmin(ctx, actorID, userID); err != nil {
		return nil, err
	}
	return dto.CommandResponse(fmt.Sprintf("✅ %d adminlikdan olindi.", userID)), nil
}

// ToggleCapability handles /toggle <user_id> <capability>
func (uc *UseCase) ToggleCapability(ctx context.Context, actorID int64, args string) (*dto.Reply, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return nil, boterrors.ErrInvalidCommand
	}
	userID, err := parseUserID(fields[0])
	if err != nil {
		return nil, err
	}
	capability, ok := adminentities.ParseCapability(strings.ToLower(fields[1]))
	if !ok {
		return nil, adminerrors.ErrUnknownCapability
	}

	value, err := uc.admins.ToggleCapability(ctx, actorID, userID, capability)
	if err != nil {
		return nil, err
	}

	state := "o'chirildi"
	if value {
		state = "yoqildi"
	}
	return dto.CommandResponse(fmt.Sprintf("✅ %d uchun %s huquqi %s.", userID, capability, state)), nil
}

// SetSetting handles /setting <key> <value>
func (uc *UseCase) SetSetting(ctx context.Context, actorID int64, args string) (*dto.Reply, error) {
	key, value, ok := strings.Cut(strings.TrimSpace(args), " ")
	if !ok || key == "" {
		return nil, boterrors.ErrInvalidCommand
	}
	if err := uc.settings.Set(ctx, actorID, key, value); err != nil {
		return nil, err
	}
	return dto.CommandResponse(fmt.Sprintf("✅ %s saqlandi.", html.EscapeString(key))), nil
}

// AddChannel handles /addchannel <public|request|external> <channel_id|-> <url> <title>
func (uc *UseCase) AddChannel(ctx context.Context, actorID int64, args string) (*dto.Reply, error) {
	fields := strings.Fields(args)
	if len(fields) < 4 {
		return nil, boterrors.ErrInvalidCommand
	}

	req := &gatedto.AddChannelRequest{
		ChannelID: fields[1],
		URL:       fields[2],
		Title:     strings.Join(fields[3:], " "),
	}
	switch fields[0] {
	case "public":
	case "request":
		req.IsRequestGroup = true
	case "external":
		req.IsExternalLink = true
		if req.ChannelID == "-" {
			req.ChannelID = ""
		}
	default:
		return nil, boterrors.ErrInvalidCommand
	}

	channel, err := uc.gate.AddChannel(ctx, actorID, req)
	if err != nil {
		return nil, err
	}
	return dto.CommandResponse(fmt.Sprintf("✅ Kanal qo'shildi: %s", html.EscapeString(channel.Title))), nil
}

// DeleteChannel handles /delchannel <channel_id>
func (uc *UseCase) DeleteChannel(ctx context.Context, actorID int64, args string) (*dto.Reply, error) {
	channelID := strings.TrimSpace(args)
	if channelID == "" {
		return nil, boterrors.ErrInvalidCommand
	}
	if err := uc.gate.DeactivateChannel(ctx, actorID, channelID); err != nil {
		return nil, err
	}
	return dto.CommandResponse("✅ Kanal o'chirildi."), nil
}

// RefStats handles /refstats
func (uc *UseCase) RefStats(ctx context.Context, actorID int64) (*dto.Reply, error) {
	stats, err := uc.ledger.Stats(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `📊 <b>Referal statistika</b>

Jami referallar: %d
Berilgan bonuslar: %d so'm
Yechib olingan: %d so'm
Kutilayotgan so'rovlar: %d
`, stats.TotalReferrals, stats.TotalBonuses, stats.TotalWithdrawn, stats.PendingCount)

	if len(stats.TopReferrers) > 0 {
		b.WriteString("\n<b>Top referallar:</b>\n")
		for i, r := range stats.TopReferrers {
			name := r.FullName
			if name == "" {
				name = strconv.FormatInt(r.UserID, 10)
			}
			fmt.Fprintf(&b, "%d. %s: %d ta, %d so'm\n", i+1, html.EscapeString(name), r.Count, r.Earned)
		}
	}
	return dto.CommandResponse(b.String()), nil
}

func parseRequestID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, boterrors.ErrInvalidRequestID
	}
	return uint(id), nil
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, boterrors.ErrInvalidCommand
	}
	return id, nil
}
