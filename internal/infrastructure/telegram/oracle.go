package telegram

import (
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ibrohimkomilov001-web/kinobot/config"
	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/gate/entities"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
)

// ChatMemberGetter is the part of the bot API the oracle needs
type ChatMemberGetter interface {
	GetChatMember(ctx context.Context, params *tgbot.GetChatMemberParams) (*models.ChatMember, error)
}

// Oracle answers channel membership queries through getChatMember
type Oracle struct {
	api     ChatMemberGetter
	limiter *rate.Limiter
	timeout time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewOracle creates a rate limited membership oracle
func NewOracle(api ChatMemberGetter, cfg *config.TelegramConfig, m *metrics.Metrics, logger zerolog.Logger) *Oracle {
	burst := int(cfg.OracleRPS)
	if burst < 1 {
		burst = 1
	}
	return &Oracle{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(cfg.OracleRPS), burst),
		timeout: cfg.OracleTimeout,
		metrics: m,
		logger:  logger,
	}
}

// GetMembershipStatus returns the user's status in channelID
func (o *Oracle) GetMembershipStatus(ctx context.Context, channelID string, userID int64) (entities.MembershipStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if err := o.limiter.Wait(ctx); err != nil {
		o.metrics.RecordOracleCall(0, err)
		return "", fmt.Errorf("oracle rate limit wait: %w", err)
	}

	start := time.Now()
	member, err := o.api.GetChatMember(ctx, &tgbot.GetChatMemberParams{
		ChatID: channelID,
		UserID: userID,
	})
	o.metrics.RecordOracleCall(time.Since(start).Seconds(), err)
	if err != nil {
		o.logger.Warn().Err(err).
			Str("channel_id", channelID).
			Int64("user_id", userID).
			Msg("getChatMember failed")
		return "", fmt.Errorf("get chat member %s: %w", channelID, err)
	}

	return memberStatus(member.Type), nil
}

// memberStatus maps the bot API member type onto a gate status.
// Unknown types are reported as member.
func memberStatus(t models.ChatMemberType) entities.MembershipStatus {
	switch t {
	case models.ChatMemberTypeOwner:
		return entities.StatusCreator
	case models.ChatMemberTypeAdministrator:
		return entities.StatusAdministrator
	case models.ChatMemberTypeRestricted:
		return entities.StatusRestricted
	case models.ChatMemberTypeLeft:
		return entities.StatusLeft
	case models.ChatMemberTypeBanned:
		return entities.StatusKicked
	default:
		return entities.StatusMember
	}
}
