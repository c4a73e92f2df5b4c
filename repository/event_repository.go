package repository

import (
	"context"
	"fmt"

	"betbook/database"
	"betbook/domain/entities"

	"github.com/jackc/pgx/v5"
)

// EventRepository implements the EventRepository interface
type EventRepository struct {
	q Queryable
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{q: db.Pool}
}

// newEventRepositoryWithTx creates a new event repository with a transaction
func newEventRepositoryWithTx(tx Queryable) *EventRepository {
	return &EventRepository{q: tx}
}

// CreateWithOptions creates the event row and its option rows. Callers run
// this inside a unit of work so a failed option insert rolls everything back.
func (r *EventRepository) CreateWithOptions(ctx context.Context, event *entities.Event, options []*entities.EventOption) error {
	query := `
		INSERT INTO events (name, description, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		event.Name,
		event.Description,
		entities.EventStatusOpen,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	event.Status = entities.EventStatusOpen

	optionQuery := `
		INSERT INTO event_options (event_id, name, odds)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	for _, option := range options {
		option.EventID = event.ID
		err := r.q.QueryRow(ctx, optionQuery,
			option.EventID,
			option.Name,
			option.Odds,
		).Scan(&option.ID, &option.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create option %s: %w", option.Name, err)
		}
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	query := `
		SELECT id, name, description, status, final_result, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event entities.Event
	err := r.q.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Status,
		&event.FinalResult,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}

	return &event, nil
}

// GetDetailByID retrieves an event with its options and bets
func (r *EventRepository) GetDetailByID(ctx context.Context, id string) (*entities.EventDetail, error) {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	options, err := r.getOptions(ctx, id)
	if err != nil {
		return nil, err
	}

	bets, err := r.getBets(ctx, id)
	if err != nil {
		return nil, err
	}

	return &entities.EventDetail{
		Event:   event,
		Options: options,
		Bets:    bets,
	}, nil
}

// List retrieves events with their options, newest first. An empty status
// returns all events.
func (r *EventRepository) List(ctx context.Context, status entities.EventStatus) ([]*entities.EventDetail, error) {
	query := `
		SELECT id, name, description, status, final_result, created_at, updated_at
		FROM events
		WHERE ($1::text = '' OR status = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var details []*entities.EventDetail
	for rows.Next() {
		var event entities.Event
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Description,
			&event.Status,
			&event.FinalResult,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		details = append(details, &entities.EventDetail{Event: &event})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	for _, detail := range details {
		options, err := r.getOptions(ctx, detail.Event.ID)
		if err != nil {
			return nil, err
		}
		detail.Options = options
	}

	return details, nil
}

// Update persists changes to the event's name and description
func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, event.Name, event.Description, event.ID)
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", event.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", event.ID)
	}

	return nil
}

// UpdateOptionName renames a single option
func (r *EventRepository) UpdateOptionName(ctx context.Context, optionID, newName string) error {
	query := `
		UPDATE event_options
		SET name = $1
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, newName, optionID)
	if err != nil {
		return fmt.Errorf("failed to rename option %s: %w", optionID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("option %s not found", optionID)
	}

	return nil
}

// Close transitions an open event to closed. The status guard in the WHERE
// clause fences out a concurrent second close; the return value reports
// whether this call won the transition.
func (r *EventRepository) Close(ctx context.Context, eventID, finalResult string) (bool, error) {
	query := `
		UPDATE events
		SET status = $1, final_result = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	result, err := r.q.Exec(ctx, query,
		entities.EventStatusClosed,
		finalResult,
		eventID,
		entities.EventStatusOpen,
	)
	if err != nil {
		return false, fmt.Errorf("failed to close event %s: %w", eventID, err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes the event; options and bets go with it by cascade
func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.q.Exec(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", eventID)
	}

	return nil
}

func (r *EventRepository) getOptions(ctx context.Context, eventID string) ([]*entities.EventOption, error) {
	query := `
		SELECT id, event_id, name, odds, created_at
		FROM event_options
		WHERE event_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options for event %s: %w", eventID, err)
	}
	defer rows.Close()

	var options []*entities.EventOption
	for rows.Next() {
		var option entities.EventOption
		err := rows.Scan(
			&option.ID,
			&option.EventID,
			&option.Name,
			&option.Odds,
			&option.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, &option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}

	return options, nil
}

func (r *EventRepository) getBets(ctx context.Context, eventID string) ([]*entities.Bet, error) {
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
