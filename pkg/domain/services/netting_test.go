package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNetRequirement(t *testing.T) {
	tests := []struct {
		name         string
		gross        string
		onHand       string
		safetyStock  string
		wantNet      string
		wantCritical bool
	}{
		{
			name:  "demand fully covered by stock",
			gross: "10", onHand: "25", safetyStock: "0",
			wantNet: "0", wantCritical: false,
		},
		{
			name:  "demand exceeds stock",
			gross: "50", onHand: "10", safetyStock: "0",
			wantNet: "40", wantCritical: true,
		},
		{
			name:  "exact coverage is not critical",
			gross: "30", onHand: "30", safetyStock: "0",
			wantNet: "0", wantCritical: false,
		},
		{
			name:  "safety stock raises net without criticality",
			gross: "10", onHand: "12", safetyStock: "5",
			wantNet: "3", wantCritical: false,
		},
		{
			name:  "safety stock and shortage together",
			gross: "80", onHand: "5", safetyStock: "10",
			wantNet: "85", wantCritical: true,
		},
		{
			name:  "zero gross with excess stock",
			gross: "0", onHand: "100", safetyStock: "0",
			wantNet: "0", wantCritical: false,
		},
		{
			name:  "fractional quantities",
			gross: "2.5", onHand: "1.25", safetyStock: "0.5",
			wantNet: "1.75", wantCritical: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross := decimal.RequireFromString(tt.gross)
			onHand := decimal.RequireFromString(tt.onHand)
			safetyStock := decimal.RequireFromString(tt.safetyStock)
			wantNet := decimal.RequireFromString(tt.wantNet)

			net, critical := NetRequirement(gross, onHand, safetyStock)

			if !net.Equal(wantNet) {
				t.Errorf("NetRequirement() net = %s, want %s", net, wantNet)
			}
			if critical != tt.wantCritical {
				t.Errorf("NetRequirement() critical = %v, want %v", critical, tt.wantCritical)
			}
		})
	}
}

func TestNetRequirementNeverNegative(t *testing.T) {
	net, critical := NetRequirement(
		decimal.NewFromInt(5),
		decimal.NewFromInt(1000),
		decimal.Zero,
	)

	if !net.Equal(decimal.Zero) {
		t.Errorf("expected net clamped to zero, got %s", net)
	}
	if critical {
		t.Error("well-stocked item must not be critical")
	}
}
