package services

import (
	"context"
	"fmt"

	"betbook/domain"
	"betbook/domain/entities"
	"betbook/domain/interfaces"
)

type bettingService struct {
	eventRepo          interfaces.EventRepository
	betRepo            interfaces.BetRepository
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
}

// NewBettingService creates a new betting service
func NewBettingService(
	eventRepo interfaces.EventRepository,
	betRepo interfaces.BetRepository,
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
) interfaces.BettingService {
	return &bettingService{
		eventRepo:          eventRepo,
		betRepo:            betRepo,
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
	}
}

// PlaceBet stakes an amount on an option of an open event. The stake is
// deducted immediately and the option's current odds are captured on the bet;
// later odds or name changes do not alter the terms of an existing bet.
func (s *bettingService) PlaceBet(ctx context.Context, userID, eventID, selectedOption string, amount int64) (*entities.Bet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("bet amount must be positive")
	}

	detail, err := s.eventRepo.GetDetailByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event detail: %w", err)
	}
	if detail == nil {
		return nil, domain.NewNotFoundError("event", eventID)
	}

	if !detail.Event.IsOpen() {
		return nil, domain.NewInvalidStateError("cannot place a bet on a closed event")
	}

	option := detail.OptionByName(selectedOption)
	if option == nil {
		return nil, domain.NewInvalidSelectionError(selectedOption)
	}

	existing, err := s.betRepo.GetPendingByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bet: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicatePendingBet
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user", userID)
	}
	if !user.HasSufficientBalance(amount) {
		return nil, domain.ErrInsufficientBalance
	}

	bet := &entities.Bet{
		UserID:         userID,
		EventID:        eventID,
		SelectedOption: option.Name,
		Odds:           option.Odds,
		Amount:         amount,
		Status:         entities.BetStatusPending,
	}
	if err := s.betRepo.Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	betID := bet.ID
	if _, err := applyBalanceChange(ctx, s.userRepo, s.balanceHistoryRepo,
		userID, -amount, entities.TransactionTypeBetPlaced, &betID); err != nil {
		return nil, fmt.Errorf("failed to deduct stake: %w", err)
	}

	return bet, nil
}

// GetUserBets retrieves all bets placed by a user
func (s *bettingService) GetUserBets(ctx context.Context, userID string) ([]*entities.Bet, error) {
	bets, err := s.betRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bets: %w", err)
	}
	return bets, nil
}
