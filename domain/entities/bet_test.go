package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBet_Payout(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		odds   string
		want   int64
	}{
		{"whole multiple", 100, "2.00", 200},
		{"fractional odds", 100, "1.85", 185},
		{"truncates fractional units", 33, "1.80", 59},
		{"high odds", 10, "12.50", 125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bet := &Bet{Amount: tt.amount, Odds: decimal.RequireFromString(tt.odds)}
			assert.Equal(t, tt.want, bet.Payout())
		})
	}
}

func TestBet_MarkWon(t *testing.T) {
	bet := &Bet{Amount: 100, Odds: decimal.RequireFromString("2.50"), Status: BetStatusPending}

	bet.MarkWon()
	assert.Equal(t, BetStatusWon, bet.Status)
	require.NotNil(t, bet.Profit)
	assert.Equal(t, int64(250), *bet.Profit)

	// Settling twice is a no-op
	*bet.Profit = 999
	bet.MarkWon()
	assert.Equal(t, int64(999), *bet.Profit)
}

func TestBet_MarkLost(t *testing.T) {
	bet := &Bet{Amount: 100, Odds: decimal.RequireFromString("2.50"), Status: BetStatusPending}

	bet.MarkLost()
	assert.Equal(t, BetStatusLost, bet.Status)
	assert.Nil(t, bet.Profit)

	bet.Status = BetStatusWon
	bet.MarkLost()
	assert.Equal(t, BetStatusWon, bet.Status)
}

func TestBet_Validate(t *testing.T) {
	valid := &Bet{Amount: 100, SelectedOption: "Red", Odds: decimal.RequireFromString("2.00")}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Bet{Amount: 0, SelectedOption: "Red", Odds: decimal.RequireFromString("2.00")}).Validate())
	assert.Error(t, (&Bet{Amount: 100, SelectedOption: "", Odds: decimal.RequireFromString("2.00")}).Validate())
	assert.Error(t, (&Bet{Amount: 100, SelectedOption: "Red", Odds: decimal.RequireFromString("1.00")}).Validate())
}
