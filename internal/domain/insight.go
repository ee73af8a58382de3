package domain

// FinancialInsight is an AI-generated summary of spending behavior.
// It is derived from the current collection on demand and never persisted.
type FinancialInsight struct {
	Summary          string  `json:"summary"`
	SavingsTip       string  `json:"savingsTip"`
	UnusualSpending  *string `json:"unusualSpending,omitempty"`
	ProjectedSavings string  `json:"projectedSavings"`
}
