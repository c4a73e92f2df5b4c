package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusOpen   EventStatus = "open"
	EventStatusClosed EventStatus = "closed"
)

// Event represents a betting event with mutually exclusive outcome options
type Event struct {
	ID          string      `db:"id"`
	Name        string      `db:"name"`
	Description *string     `db:"description"`
	Status      EventStatus `db:"status"`
	FinalResult *string     `db:"final_result"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

// EventOption represents a possible outcome of an event with fixed odds
type EventOption struct {
	ID        string          `db:"id"`
	EventID   string          `db:"event_id"`
	Name      string          `db:"name"`
	Odds      decimal.Decimal `db:"odds"`
	CreatedAt time.Time       `db:"created_at"`
}

// EventDetail combines an event with its options and bets
type EventDetail struct {
	Event   *Event
	Options []*EventOption
	Bets    []*Bet
}

// SettlementResult represents the outcome of closing an event
type SettlementResult struct {
	Event         *Event
	WinningOption *EventOption
	Winners       []*Bet
	Losers        []*Bet
	TotalPaidOut  int64
}

// IsOpen checks if the event still accepts bets and edits
func (e *Event) IsOpen() bool {
	return e.Status == EventStatusOpen
}

// IsClosed checks if the event has been settled
func (e *Event) IsClosed() bool {
	return e.Status == EventStatusClosed
}

// Close marks the event closed with the declared winning option name
func (e *Event) Close(finalResult string) {
	if e.Status == EventStatusOpen {
		e.Status = EventStatusClosed
		e.FinalResult = &finalResult
	}
}

// OptionByName returns the option with the given name, or nil
func (d *EventDetail) OptionByName(name string) *EventOption {
	for _, opt := range d.Options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// HasOption checks whether an option with the given name exists
func (d *EventDetail) HasOption(name string) bool {
	return d.OptionByName(name) != nil
}

// PendingBets returns the bets on this event that are still pending
func (d *EventDetail) PendingBets() []*Bet {
	var pending []*Bet
	for _, bet := range d.Bets {
		if bet.IsPending() {
			pending = append(pending, bet)
		}
	}
	return pending
}
