package interfaces

import (
	"context"

	"betbook/domain/entities"

	"github.com/shopspring/decimal"
)

// OptionInput describes an option submitted at event creation
type OptionInput struct {
	Name string
	Odds decimal.Decimal
}

// EventService manages the event registry, option renames and deletions
type EventService interface {
	// CreateEvent creates an open event with at least two options
	CreateEvent(ctx context.Context, name string, description *string, options []OptionInput) (*entities.EventDetail, error)

	// GetEvent retrieves an event with options and bets
	GetEvent(ctx context.Context, id string) (*entities.EventDetail, error)

	// ListEvents retrieves all events, optionally restricted to a status
	ListEvents(ctx context.Context, status entities.EventStatus) ([]*entities.EventDetail, error)

	// UpdateEvent applies name/description changes and option renames to an
	// open event, propagating renames into pending bets
	UpdateEvent(ctx context.Context, id string, name, description *string, optionNames []string) (*entities.EventDetail, error)

	// DeleteEvent removes an open event after refunding all pending bets
	DeleteEvent(ctx context.Context, id string) error
}

// SettlementService closes events and settles their bets
type SettlementService interface {
	// CloseEvent declares the winning option of an open event, settles every
	// pending bet on it and credits winners
	CloseEvent(ctx context.Context, eventID, finalResult string) (*entities.SettlementResult, error)
}

// BettingService manages bet placement and queries
type BettingService interface {
	// PlaceBet stakes an amount on an option of an open event
	PlaceBet(ctx context.Context, userID, eventID, selectedOption string, amount int64) (*entities.Bet, error)

	// GetUserBets retrieves all bets placed by a user
	GetUserBets(ctx context.Context, userID string) ([]*entities.Bet, error)
}

// UserService manages accounts and authentication
type UserService interface {
	// Register creates a user with the configured starting balance
	Register(ctx context.Context, username, password string) (*entities.User, error)

	// Authenticate verifies credentials and returns the user
	Authenticate(ctx context.Context, username, password string) (*entities.User, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id string) (*entities.User, error)

	// ListUsers retrieves all users
	ListUsers(ctx context.Context) ([]*entities.User, error)

	// GetBalanceHistory retrieves the most recent balance changes for a user
	GetBalanceHistory(ctx context.Context, userID string, limit int) ([]*entities.BalanceHistory, error)
}
