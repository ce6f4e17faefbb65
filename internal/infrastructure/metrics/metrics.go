package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bot
type Metrics struct {
	// Subscription gate metrics
	GateChecksTotal *prometheus.CounterVec
	OracleErrors    prometheus.Counter
	OracleDuration  prometheus.Histogram

	// Referral ledger metrics
	UsersRegistered      prometheus.Counter
	ReferralBonuses      prometheus.Counter
	ReferralBonusAmount  prometheus.Counter
	WithdrawalsRequested prometheus.Counter
	WithdrawalAmount     prometheus.Counter
	WithdrawalsResolved  *prometheus.CounterVec
	LedgerErrors         *prometheus.CounterVec

	// Premium metrics
	PremiumGrants           *prometheus.CounterVec
	PremiumRequestsResolved *prometheus.CounterVec
	PremiumExpired          prometheus.Counter

	// Kafka metrics
	KafkaMessagesProduced *prometheus.CounterVec
	KafkaProduceErrors    *prometheus.CounterVec
	KafkaProduceDuration  prometheus.Histogram

	// Notification metrics
	NotificationsSent  *prometheus.CounterVec
	NotificationErrors *prometheus.CounterVec
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics()
	})
	return DefaultMetrics
}

// NewMetrics registers all collectors with the default registry
func NewMetrics() *Metrics {
	return &Metrics{
		GateChecksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinobot_gate_checks_total",
				Help: "Total number of subscription gate evaluations by outcome",
			},
			[]string{"result"},
		),
		OracleErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinobot_oracle_errors_total",
			Help: "Total number of failed channel membership queries",
		}),
		OracleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kinobot_oracle_duration_seconds",
			Help:    "Duration of channel membership queries in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinobot_users_registered_total",
			Help: "Total number of new users",
		}),
		ReferralBonuses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinobot_referral_bonuses_total",
			Help: "Total number of referral bonuses credited",
		}),
		ReferralBonusAmount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinobot_referral_bonus_amount_total",
			Help: "Total amount of referral bonuses credited",
		}),
		WithdrawalsRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinobot_withdrawals_requested_total",
			Help: "Total number of withdrawal requests created",
		}),
		WithdrawalAmount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinobot_withdrawal_amount_total",
			Help: "Total amount debited by withdrawal requests",
		}),
		WithdrawalsResolved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinobot_withdrawals_resolved_total",
				Help: "Total number of resolved withdrawal requests by status",
			},
			[]string{"status"},
		),
		LedgerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinobot_ledger_errors_total",
				Help: "Total number of failed ledger operations",
			},
			[]string{"operation", "error_type"},
		),

		PremiumGrants: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinobot_premium_grants_total",
				Help: "Total number of premium grants by mode",
			},
			[]string{"mode"},
		),
		PremiumRequestsResolved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinobot_premium_requests_resolved_total",
				Help: "Total number of resolved premium purchase requests by status",
			},
			[]string{"status"},
		),
		PremiumExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinobot_premium_expired_total",
			Help: "Total number of premium subscriptions deactivated after expiry",
		}),

		KafkaMessagesProduced: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinobot_kafka_messages_produced_total",
				Help: "Total number of events sent to Kafka",
			},
			[]string{"topic"},
		),
		KafkaProduceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinobot_kafka_produce_errors_total",
				Help: "Total number of Kafka produce errors",
			},
			[]string{"topic"},
		),
		KafkaProduceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kinobot_kafka_produce_duration_seconds",
			Help:    "Duration of Kafka produce operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),

		NotificationsSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinobot_notifications_sent_total",
				Help: "Total number of Telegram notifications sent by event type",
			},
			[]string{"event_type"},
		),
		NotificationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinobot_notification_errors_total",
				Help: "Total number of failed Telegram notifications by event type",
			},
			[]string{"event_type"},
		),
	}
}

// RecordGateCheck records a gate evaluation outcome
func (m *Metrics) RecordGateCheck(result string) {
	m.GateChecksTotal.WithLabelValues(result).Inc()
}

// RecordOracleCall records a membership query
func (m *Metrics) RecordOracleCall(duration float64, err error) {
	m.OracleDuration.Observe(duration)
	if err != nil {
		m.OracleErrors.Inc()
	}
}

// RecordRegistration records a new user and an optional bonus
func (m *Metrics) RecordRegistration(bonus int64) {
	m.UsersRegistered.Inc()
	// Only add positive values to prevent counter from going backwards
	if bonus > 0 {
		m.ReferralBonuses.Inc()
		m.ReferralBonusAmount.Add(float64(bonus))
	}
}

// RecordWithdrawalRequested records a new payout request
func (m *Metrics) RecordWithdrawalRequested(amount int64) {
	m.WithdrawalsRequested.Inc()
	if amount > 0 {
		m.WithdrawalAmount.Add(float64(amount))
	}
}

// RecordWithdrawalResolved records an approve or reject
func (m *Metrics) RecordWithdrawalResolved(status string) {
	m.WithdrawalsResolved.WithLabelValues(status).Inc()
}

// RecordLedgerError records a failed ledger operation
func (m *Metrics) RecordLedgerError(operation, errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	m.LedgerErrors.WithLabelValues(operation, errorType).Inc()
}

// RecordPremiumGrant records a grant; mode is "stacked" or "fresh"
func (m *Metrics) RecordPremiumGrant(mode string) {
	m.PremiumGrants.WithLabelValues(mode).Inc()
}

// RecordPremiumRequestResolved records an approve or reject of a purchase
func (m *Metrics) RecordPremiumRequestResolved(status string) {
	m.PremiumRequestsResolved.WithLabelValues(status).Inc()
}

// RecordPremiumExpired records subscriptions deactivated by the sweep
func (m *Metrics) RecordPremiumExpired(count int64) {
	if count > 0 {
		m.PremiumExpired.Add(float64(count))
	}
}

// RecordKafkaMessage records a produced event
func (m *Metrics) RecordKafkaMessage(topic string, duration float64) {
	m.KafkaMessagesProduced.WithLabelValues(topic).Inc()
	m.KafkaProduceDuration.Observe(duration)
}

// RecordKafkaError records a produce failure
func (m *Metrics) RecordKafkaError(topic string) {
	m.KafkaProduceErrors.WithLabelValues(topic).Inc()
}

// RecordNotification records a notification delivery attempt
func (m *Metrics) RecordNotification(eventType string, err error) {
	if err != nil {
		m.NotificationErrors.WithLabelValues(eventType).Inc()
		return
	}
	m.NotificationsSent.WithLabelValues(eventType).Inc()
}
