// Package insight wraps the external advisory-text service. Every failure
// path degrades to a fixed fallback sentence; callers never see an error
// state on the dashboard.
package insight

import (
	"context"

	"github.com/nikh2951/health-link/internal/model"
)

// Fallback is shown whenever the provider cannot answer.
const Fallback = "Maintain a balanced lifestyle and keep monitoring your vitals regularly."

// Placeholder is shown while a fetch is in flight.
const Placeholder = "Analyzing your vitals for today..."

// Provider produces a short advisory text for a set of vitals.
type Provider interface {
	GetInsight(ctx context.Context, vitals model.Vitals) (string, error)
}

// Static always returns the same text. Used when no endpoint is configured
// and as a test double.
type Static struct {
	Text string
	Err  error
}

func (s Static) GetInsight(ctx context.Context, vitals model.Vitals) (string, error) {
	return s.Text, s.Err
}
