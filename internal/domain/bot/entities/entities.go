// Package entities contains bot conversation types
package entities

// WizardKind names a multi-step conversation
type WizardKind string

const (
	WizardWithdraw WizardKind = "withdraw"
	WizardPremium  WizardKind = "premium"
)

// WizardStep is the input the wizard waits for
type WizardStep string

const (
	StepAmount  WizardStep = "amount"
	StepCard    WizardStep = "card"
	StepConfirm WizardStep = "confirm"
	StepReceipt WizardStep = "receipt"
)

// Wizard is the per-user conversation state kept between updates
type Wizard struct {
	Kind   WizardKind `json:"kind"`
	Step   WizardStep `json:"step"`
	Amount int64      `json:"amount,omitempty"`
	Card   string     `json:"card,omitempty"`
	PlanID uint       `json:"plan_id,omitempty"`
}

// Waits reports whether the wizard is of kind and waits for step
func (w *Wizard) Waits(kind WizardKind, step WizardStep) bool {
	return w != nil && w.Kind == kind && w.Step == step
}
