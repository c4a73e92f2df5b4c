package repository

import (
	"context"
	"errors"
	"fmt"

	"betbook/database"
	"betbook/domain"
	"betbook/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// BetRepository implements the BetRepository interface
type BetRepository struct {
	q Queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepositoryWithTx creates a new bet repository with a transaction
func newBetRepositoryWithTx(tx Queryable) *BetRepository {
	return &BetRepository{q: tx}
}

// Create persists a new pending bet. The partial unique index on
// (user_id, event_id) rejects a second pending bet on the same event.
func (r *BetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	query := `
		INSERT INTO bets (user_id, event_id, selected_option, odds, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.UserID,
		bet.EventID,
		bet.SelectedOption,
		bet.Odds,
		bet.Amount,
		bet.Status,
	).Scan(&bet.ID, &bet.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicatePendingBet
		}
		return fmt.Errorf("failed to create bet for user %s: %w", bet.UserID, err)
	}

	return nil
}

// GetByID retrieves a bet by ID
func (r *BetRepository) GetByID(ctx context.Context, id string) (*entities.Bet, error) {
	query := `
		SELECT id, user_id, event_id, selected_option, odds, amount, status, profit, created_at
		FROM bets
		WHERE id = $1
	`

	var bet entities.Bet
	err := r.q.QueryRow(ctx, query, id).Scan(
		&bet.ID,
		&bet.UserID,
		&bet.EventID,
		&bet.SelectedOption,
		&bet.Odds,
		&bet.Amount,
		&bet.Status,
		&bet.Profit,
		&bet.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %s: %w", id, err)
	}

	return &bet, nil
}

// GetByEvent retrieves all bets on an event
func (r *BetRepository) GetByEvent(ctx context.Context, eventID string) ([]*entities.Bet, error) {
	query := `
		SELECT id, user_id, event_id, selected_option, odds, amount, status, profit, created_at
		FROM bets
		WHERE event_id = $1
		ORDER BY created_at
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for event %s: %w", eventID, err)
	}
	defer rows.Close()

	return scanBets(rows)
}

// GetByUser retrieves all bets placed by a user, newest first
func (r *BetRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Bet, error) {
	query := `
		SELECT id, user_id, event_id, selected_option, odds, amount, status, profit, created_at
		FROM bets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanBets(rows)
}

// GetPendingByUserAndEvent retrieves the user's pending bet on an event
func (r *BetRepository) GetPendingByUserAndEvent(ctx context.Context, userID, eventID string) (*entities.Bet, error) {
	query := `
		SELECT id, user_id, event_id, selected_option, odds, amount, status, profit, created_at
		FROM bets
		WHERE user_id = $1 AND event_id = $2 AND status = $3
	`

	var bet entities.Bet
	err := r.q.QueryRow(ctx, query, userID, eventID, entities.BetStatusPending).Scan(
		&bet.ID,
		&bet.UserID,
		&bet.EventID,
		&bet.SelectedOption,
		&bet.Odds,
		&bet.Amount,
		&bet.Status,
		&bet.Profit,
		&bet.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending bet for user %s on event %s: %w", userID, eventID, err)
	}

	return &bet, nil
}

// UpdateSelectedOption rewrites the denormalized option name on a bet
func (r *BetRepository) UpdateSelectedOption(ctx context.Context, betID, newName string) error {
	query := `
		UPDATE bets
		SET selected_option = $1
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, newName, betID)
	if err != nil {
		return fmt.Errorf("failed to update selected option for bet %s: %w", betID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("bet %s not found", betID)
	}

	return nil
}

// UpdateResult settles a bet's status and realized profit
func (r *BetRepository) UpdateResult(ctx context.Context, betID string, status entities.BetStatus, profit *int64) error {
	query := `
		UPDATE bets
		SET status = $1, profit = $2
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, status, profit, betID)
	if err != nil {
		return fmt.Errorf("failed to update result for bet %s: %w", betID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("bet %s not found", betID)
	}

	return nil
}

// Delete removes a bet
func (r *BetRepository) Delete(ctx context.Context, betID string) error {
	query := `DELETE FROM bets WHERE id = $1`

	result, err := r.q.Exec(ctx, query, betID)
	if err != nil {
		return fmt.Errorf("failed to delete bet %s: %w", betID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("bet %s not found", betID)
	}

	return nil
}

// scanBets collects bet rows; shared with the event repository
func scanBets(rows pgx.Rows) ([]*entities.Bet, error) {
	var bets []*entities.Bet
	for rows.Next() {
		var bet entities.Bet
		err := rows.Scan(
			&bet.ID,
			&bet.UserID,
			&bet.EventID,
			&bet.SelectedOption,
			&bet.Odds,
			&bet.Amount,
			&bet.Status,
			&bet.Profit,
			&bet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, &bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}
