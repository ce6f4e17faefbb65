// Package deps contains interface definitions for the bot domain dependencies
package deps

import (
	"context"

	adminentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/admin/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/dto"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/bot/entities"
	gatedto "github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/dto"
	gateentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/entities"
	ledgerdto "github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/dto"
	ledgerentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/ledger/entities"
	premiumdto "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/dto"
	premiumentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/premium/entities"
	settingsentities "github.com/ibrohimkomilov001-web/kinobot/internal/domain/settings/entities"
)

// TelegramSender defines interface for sending messages via Telegram
// This interface is used to break the cyclic dependency between UseCase and TelegramHandler
type TelegramSender interface {
	// SendMessage sends a text message to user
	SendMessage(ctx context.Context, userID int64, text string) error

	// SendReply sends text with an inline keyboard
	SendReply(ctx context.Context, chatID int64, reply *dto.Reply) error

	// SendAttachment sends a stored photo or document by file id with a caption and keyboard
	SendAttachment(ctx context.Context, chatID int64, file dto.Attachment, reply *dto.Reply) error
}

// SettingsProvider reads and changes bot settings
type SettingsProvider interface {
	GateConfig(ctx context.Context) (settingsentities.GateConfig, error)
	LedgerConfig(ctx context.Context) (settingsentities.LedgerConfig, error)
	PaymentConfig(ctx context.Context) (settingsentities.PaymentConfig, error)
	Set(ctx context.Context, actorID int64, key, value string) error
}

// Gate is the subscription gate
type Gate interface {
	IsSatisfied(ctx context.Context, cfg settingsentities.GateConfig, userID int64) (bool, error)
	PromptChannels(ctx context.Context, cfg settingsentities.GateConfig, userID int64) ([]gatedto.ChannelStatus, error)
	RecordJoinRequest(ctx context.Context, userID int64, channelID string) error
	AddChannel(ctx context.Context, actorID int64, req *gatedto.AddChannelRequest) (*gateentities.Channel, error)
	DeactivateChannel(ctx context.Context, actorID int64, channelID string) error
}

// Ledger is the referral ledger
type Ledger interface {
	RegisterReferral(ctx context.Context, cfg settingsentities.LedgerConfig, user ledgerentities.NewUser, referrerID *int64) (bool, error)
	BalanceInfo(ctx context.Context, cfg settingsentities.LedgerConfig, userID int64) (*ledgerdto.BalanceInfo, error)
	CheckWithdrawalEligibility(ctx context.Context, cfg settingsentities.LedgerConfig, userID, amount int64) error
	RequestWithdrawal(ctx context.Context, userID, amount int64, card string) (*ledgerentities.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, requestID uint, adminID int64) (*ledgerentities.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, requestID uint, adminID int64) (*ledgerentities.WithdrawalRequest, error)
	Stats(ctx context.Context, actorID int64) (*ledgerentities.Stats, error)
}

// Premium is the premium subscription manager
type Premium interface {
	ActiveSubscription(ctx context.Context, userID int64) (*premiumentities.Subscription, error)
	ListActivePlans(ctx context.Context) ([]premiumentities.Plan, error)
	GetPlan(ctx context.Context, planID uint) (*premiumentities.Plan, error)
	SubmitRequest(ctx context.Context, req *premiumdto.SubmitRequest) (*premiumentities.Request, error)
	ApprovePremiumRequest(ctx context.Context, requestID uint, adminID int64) (*premiumentities.Subscription, error)
	RejectPremiumRequest(ctx context.Context, requestID uint, adminID int64) error
}

// Admins is the admin permission resolver
type Admins interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	AddAdmin(ctx context.Context, actorID, userID int64) (*adminentities.Admin, error)
	RemoveAdmin(ctx context.Context, actorID, userID int64) error
	ToggleCapability(ctx context.Context, actorID, userID int64, capability adminentities.Capability) (bool, error)
	Recipients(ctx context.Context, capability adminentities.Capability) ([]int64, error)
}

// WizardStore keeps conversation state between updates
type WizardStore interface {
	// Get returns nil when the user has no wizard in progress
	Get(ctx context.Context, userID int64) (*entities.Wizard, error)

	// Save stores the wizard and restarts its expiry
	Save(ctx context.Context, userID int64, wizard *entities.Wizard) error

	// Clear drops the wizard
	Clear(ctx context.Context, userID int64) error
}
