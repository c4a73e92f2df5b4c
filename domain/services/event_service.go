package services

import (
	"context"
	"fmt"
	"strings"

	"betbook/domain"
	"betbook/domain/entities"
	"betbook/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var minOdds = decimal.NewFromInt(1)

type eventService struct {
	eventRepo          interfaces.EventRepository
	betRepo            interfaces.BetRepository
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
}

// NewEventService creates a new event service
func NewEventService(
	eventRepo interfaces.EventRepository,
	betRepo interfaces.BetRepository,
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
) interfaces.EventService {
	return &eventService{
		eventRepo:          eventRepo,
		betRepo:            betRepo,
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
	}
}

// CreateEvent creates a new open event with its options
func (s *eventService) CreateEvent(ctx context.Context, name string, description *string, options []interfaces.OptionInput) (*entities.EventDetail, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("event name cannot be empty")
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("must provide at least 2 options")
	}

	// Check for duplicate options (case-insensitive)
	optionNames := make(map[string]bool)
	for _, option := range options {
		if strings.TrimSpace(option.Name) == "" {
			return nil, fmt.Errorf("option name cannot be empty")
		}
		if option.Odds.LessThanOrEqual(minOdds) {
			return nil, fmt.Errorf("odds for option %q must be greater than 1.0", option.Name)
		}
		lowerName := strings.ToLower(strings.TrimSpace(option.Name))
		if optionNames[lowerName] {
			return nil, fmt.Errorf("duplicate option found: %q", option.Name)
		}
		optionNames[lowerName] = true
	}

	event := &entities.Event{
		Name:        name,
		Description: description,
		Status:      entities.EventStatusOpen,
	}

	eventOptions := make([]*entities.EventOption, 0, len(options))
	for _, option := range options {
		eventOptions = append(eventOptions, &entities.EventOption{
			Name: option.Name,
			Odds: option.Odds,
		})
	}

	if err := s.eventRepo.CreateWithOptions(ctx, event, eventOptions); err != nil {
		return nil, fmt.Errorf("failed to create event with options: %w", err)
	}

	return &entities.EventDetail{
		Event:   event,
		Options: eventOptions,
		Bets:    []*entities.Bet{},
	}, nil
}

// GetEvent retrieves an event with its options and bets
func (s *eventService) GetEvent(ctx context.Context, id string) (*entities.EventDetail, error) {
	detail, err := s.eventRepo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event detail: %w", err)
	}
	if detail == nil {
		return nil, domain.NewNotFoundError("event", id)
	}
	return detail, nil
}

// ListEvents retrieves all events, optionally restricted to a status
func (s *eventService) ListEvents(ctx context.Context, status entities.EventStatus) ([]*entities.EventDetail, error) {
	events, err := s.eventRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// UpdateEvent applies name/description changes and option renames to an open
// event. Only option names are mutable; odds and option count are fixed at
// creation. Renames are propagated into every pending bet that references the
// old name so no bet is orphaned by a display change.
func (s *eventService) UpdateEvent(ctx context.Context, id string, name, description *string, optionNames []string) (*entities.EventDetail, error) {
	detail, err := s.eventRepo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event detail: %w", err)
	}
	if detail == nil {
		return nil, domain.NewNotFoundError("event", id)
	}

	event := detail.Event
	if event.IsClosed() {
		return nil, domain.NewInvalidStateError("cannot modify a closed event")
	}

	if name != nil && strings.TrimSpace(*name) != "" {
		event.Name = *name
	}
	if description != nil {
		event.Description = description
	}

	if len(optionNames) > 0 {
		renames, err := s.buildRenameMap(detail.Options, optionNames)
		if err != nil {
			return nil, err
		}

		// Apply the renames to the option records.
		for i := 0; i < len(detail.Options) && i < len(optionNames); i++ {
			option := detail.Options[i]
			newName := optionNames[i]
			if newName == "" || newName == option.Name {
				continue
			}
			if err := s.eventRepo.UpdateOptionName(ctx, option.ID, newName); err != nil {
				return nil, fmt.Errorf("failed to rename option: %w", err)
			}
			option.Name = newName
		}

		if len(renames) > 0 {
			if err := s.propagateRenames(ctx, id, renames); err != nil {
				return nil, err
			}
		}
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return s.GetEvent(ctx, id)
}

// buildRenameMap positionally compares the submitted names against the current
// options and records old name to new name for every entry that differs. The
// map is built from the original names before any mutation, so crossing
// renames (A to B and B to A in the same request) rewrite each bet exactly
// once.
func (s *eventService) buildRenameMap(options []*entities.EventOption, optionNames []string) (map[string]string, error) {
	seen := make(map[string]bool)
	for i := 0; i < len(options); i++ {
		finalName := options[i].Name
		if i < len(optionNames) && optionNames[i] != "" {
			finalName = optionNames[i]
		}
		lowerName := strings.ToLower(strings.TrimSpace(finalName))
		if seen[lowerName] {
			return nil, fmt.Errorf("duplicate option found: %q", finalName)
		}
		seen[lowerName] = true
	}

	renames := make(map[string]string)
	for i := 0; i < len(options) && i < len(optionNames); i++ {
		oldName := options[i].Name
		newName := optionNames[i]
		if newName != "" && newName != oldName {
			renames[oldName] = newName
		}
	}
	return renames, nil
}

// propagateRenames rewrites the denormalized selected option on every pending
// bet affected by a rename. Settled bets keep the name they were settled with.
func (s *eventService) propagateRenames(ctx context.Context, eventID string, renames map[string]string) error {
	bets, err := s.betRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get bets for event: %w", err)
	}

	for _, bet := range bets {
		if !bet.IsPending() {
			continue
		}
		newName, ok := renames[bet.SelectedOption]
		if !ok {
			continue
		}
		if err := s.betRepo.UpdateSelectedOption(ctx, bet.ID, newName); err != nil {
			return fmt.Errorf("failed to update bet option: %w", err)
		}
		bet.SelectedOption = newName
	}

	return nil
}

// DeleteEvent removes an open event. Every pending bet on it is refunded its
// original stake (no odds multiplier, unlike a settlement payout) and removed
// before the event itself is deleted.
func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	detail, err := s.eventRepo.GetDetailByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get event detail: %w", err)
	}
	if detail == nil {
		return domain.NewNotFoundError("event", id)
	}

	if detail.Event.IsClosed() {
		return domain.NewInvalidStateError("cannot delete a closed event")
	}

	var refunded int
	for _, bet := range detail.Bets {
		if !bet.IsPending() {
			continue
		}

		betID := bet.ID
		if _, err := applyBalanceChange(ctx, s.userRepo, s.balanceHistoryRepo,
			bet.UserID, bet.Amount, entities.TransactionTypeBetRefund, &betID); err != nil {
			return fmt.Errorf("failed to refund bet: %w", err)
		}
		if err := s.betRepo.Delete(ctx, bet.ID); err != nil {
			return fmt.Errorf("failed to remove bet: %w", err)
		}
		refunded++
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	log.WithFields(log.Fields{
		"event_id": id,
		"refunded": refunded,
	}).Info("event deleted")

	return nil
}
