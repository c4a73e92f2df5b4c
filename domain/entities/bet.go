package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// BetStatus represents the settlement state of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
)

// Bet represents a user's stake on one of an event's options.
// SelectedOption stores the option's name, not its ID, so the bet keeps the
// outcome the user chose even when display names change; Odds is a snapshot
// taken at placement time and is independent of the option's current odds.
type Bet struct {
	ID             string          `db:"id"`
	UserID         string          `db:"user_id"`
	EventID        string          `db:"event_id"`
	SelectedOption string          `db:"selected_option"`
	Odds           decimal.Decimal `db:"odds"`
	Amount         int64           `db:"amount"`
	Status         BetStatus       `db:"status"`
	Profit         *int64          `db:"profit"`
	CreatedAt      time.Time       `db:"created_at"`
}

// IsPending checks if the bet has not been settled yet
func (b *Bet) IsPending() bool {
	return b.Status == BetStatusPending
}

// Payout returns the total return for a winning bet: stake times the odds
// captured at placement, truncated to whole currency units. The stake is not
// returned separately; the multiplier already includes the principal.
func (b *Bet) Payout() int64 {
	return decimal.NewFromInt(b.Amount).Mul(b.Odds).IntPart()
}

// MarkWon settles the bet as won and realizes its profit
func (b *Bet) MarkWon() {
	if b.Status != BetStatusPending {
		return
	}
	payout := b.Payout()
	b.Status = BetStatusWon
	b.Profit = &payout
}

// MarkLost settles the bet as lost; the stake was taken at placement and is
// not refunded
func (b *Bet) MarkLost() {
	if b.Status != BetStatusPending {
		return
	}
	b.Status = BetStatusLost
}

// Validate performs basic validation on the bet
func (b *Bet) Validate() error {
	if b.Amount <= 0 {
		return errors.New("bet amount must be positive")
	}
	if b.SelectedOption == "" {
		return errors.New("bet must select an option")
	}
	if b.Odds.LessThanOrEqual(decimal.NewFromInt(1)) {
		return errors.New("bet odds must be greater than 1.0")
	}
	return nil
}
