// Package entities contains bot settings types
package entities

// Setting keys stored in the settings table
const (
	KeySubscriptionEnabled = "subscription_enabled"
	KeyReferralEnabled     = "referral_enabled"
	KeyReferralBonus       = "referral_bonus"
	KeyMinWithdrawal       = "min_withdrawal"
	KeyPremiumEnabled      = "premium_enabled"
	KeyPaymentCard         = "payment_card"
)

// Kind describes how a setting value is validated
type Kind int

const (
	KindBool Kind = iota
	KindAmount
	KindText
)

// Definition describes a known setting
type Definition struct {
	Key     string
	Kind    Kind
	Default string
}

// Definitions lists every setting the bot understands
var Definitions = []Definition{
	{Key: KeySubscriptionEnabled, Kind: KindBool, Default: "1"},
	{Key: KeyReferralEnabled, Kind: KindBool, Default: "0"},
	{Key: KeyReferralBonus, Kind: KindAmount, Default: "500"},
	{Key: KeyMinWithdrawal, Kind: KindAmount, Default: "10000"},
	{Key: KeyPremiumEnabled, Kind: KindBool, Default: "1"},
	{Key: KeyPaymentCard, Kind: KindText, Default: ""},
}

// Lookup returns the definition of key
func Lookup(key string) (Definition, bool) {
	for _, d := range Definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// GateConfig is the settings snapshot consumed by the subscription gate
type GateConfig struct {
	Enabled bool
}

// LedgerConfig is the settings snapshot consumed by the referral ledger
type LedgerConfig struct {
	Enabled       bool
	Bonus         int64
	MinWithdrawal int64
}

// PaymentConfig is the settings snapshot used by premium purchase flows
type PaymentConfig struct {
	PremiumEnabled bool
	Card           string
}
