package interfaces

import (
	"context"

	"betbook/domain/entities"
)

// EventRepository defines data access for events and their options
type EventRepository interface {
	// CreateWithOptions creates a new event with its options atomically
	CreateWithOptions(ctx context.Context, event *entities.Event, options []*entities.EventOption) error

	// GetByID retrieves an event by ID, nil if not found
	GetByID(ctx context.Context, id string) (*entities.Event, error)

	// GetDetailByID retrieves an event with all its options and bets, nil if not found
	GetDetailByID(ctx context.Context, id string) (*entities.EventDetail, error)

	// List retrieves all events with their options, newest first. When status
	// is non-empty only events in that status are returned.
	List(ctx context.Context, status entities.EventStatus) ([]*entities.EventDetail, error)

	// Update persists changes to the event's name and description
	Update(ctx context.Context, event *entities.Event) error

	// UpdateOptionName renames a single option
	UpdateOptionName(ctx context.Context, optionID, newName string) error

	// Close transitions the event to closed and records the final result.
	// Only an open event row is updated; the return value reports whether the
	// transition happened, so a concurrent second close is detected.
	Close(ctx context.Context, eventID, finalResult string) (bool, error)

	// Delete removes the event; its options are removed by cascade
	Delete(ctx context.Context, eventID string) error
}

// BetRepository defines data access for bets
type BetRepository interface {
	// Create persists a new pending bet
	Create(ctx context.Context, bet *entities.Bet) error

	// GetByID retrieves a bet by ID, nil if not found
	GetByID(ctx context.Context, id string) (*entities.Bet, error)

	// GetByEvent retrieves all bets on an event regardless of status
	GetByEvent(ctx context.Context, eventID string) ([]*entities.Bet, error)

	// GetByUser retrieves all bets placed by a user, newest first
	GetByUser(ctx context.Context, userID string) ([]*entities.Bet, error)

	// GetPendingByUserAndEvent retrieves the user's pending bet on an event, nil if none
	GetPendingByUserAndEvent(ctx context.Context, userID, eventID string) (*entities.Bet, error)

	// UpdateSelectedOption rewrites the denormalized option name on a bet
	UpdateSelectedOption(ctx context.Context, betID, newName string) error

	// UpdateResult settles a bet's status and realized profit
	UpdateResult(ctx context.Context, betID string, status entities.BetStatus, profit *int64) error

	// Delete removes a bet
	Delete(ctx context.Context, betID string) error
}

// UserRepository defines data access for user accounts and balances
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID, nil if not found
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByUsername retrieves a user by username, nil if not found
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// GetAll retrieves all users, newest first
	GetAll(ctx context.Context) ([]*entities.User, error)

	// AdjustBalance atomically applies a delta to the user's balance and
	// returns the resulting balance
	AdjustBalance(ctx context.Context, userID string, delta int64) (int64, error)
}

// BalanceHistoryRepository defines data access for the balance audit trail
type BalanceHistoryRepository interface {
	// Record stores a balance change entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser retrieves the most recent balance changes for a user
	GetByUser(ctx context.Context, userID string, limit int) ([]*entities.BalanceHistory, error)
}

// UnitOfWork provides transactional access to all repositories
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction; safe to call after Commit
	Rollback() error

	EventRepository() EventRepository
	BetRepository() BetRepository
	UserRepository() UserRepository
	BalanceHistoryRepository() BalanceHistoryRepository
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
