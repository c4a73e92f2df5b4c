package services

import (
	"context"
	"fmt"

	"betbook/domain"
	"betbook/domain/entities"
	"betbook/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type settlementService struct {
	eventRepo          interfaces.EventRepository
	betRepo            interfaces.BetRepository
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	eventRepo interfaces.EventRepository,
	betRepo interfaces.BetRepository,
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
) interfaces.SettlementService {
	return &settlementService{
		eventRepo:          eventRepo,
		betRepo:            betRepo,
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
	}
}

// CloseEvent declares the winning option of an open event and settles every
// pending bet on it. Winners are credited stake times the odds captured at
// placement; losers keep nothing (their stake was taken at placement). The
// whole pass runs against the caller's unit of work, so a per-bet failure
// rolls the close back instead of leaving the event half settled.
func (s *settlementService) CloseEvent(ctx context.Context, eventID, finalResult string) (*entities.SettlementResult, error) {
	detail, err := s.eventRepo.GetDetailByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event detail: %w", err)
	}
	if detail == nil {
		return nil, domain.NewNotFoundError("event", eventID)
	}

	event := detail.Event
	if event.IsClosed() {
		return nil, domain.NewInvalidStateError("event is already closed")
	}

	winningOption := detail.OptionByName(finalResult)
	if winningOption == nil {
		return nil, domain.NewInvalidSelectionError(finalResult)
	}

	// The conditional UPDATE is the idempotency guard: if a concurrent close
	// already transitioned the row, no wagers or balances are touched here.
	closed, err := s.eventRepo.Close(ctx, eventID, finalResult)
	if err != nil {
		return nil, fmt.Errorf("failed to close event: %w", err)
	}
	if !closed {
		return nil, domain.NewInvalidStateError("event is already closed")
	}
	event.Close(finalResult)

	bets, err := s.betRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error processing wagers: %w", err)
	}

	var winners, losers []*entities.Bet
	var totalPaidOut int64

	for _, bet := range bets {
		// Bets settled in an earlier run are left untouched.
		if !bet.IsPending() {
			continue
		}

		if bet.SelectedOption == finalResult {
			bet.MarkWon()
			if err := s.betRepo.UpdateResult(ctx, bet.ID, bet.Status, bet.Profit); err != nil {
				return nil, fmt.Errorf("error processing wagers: %w", err)
			}

			payout := bet.Payout()
			betID := bet.ID
			if _, err := applyBalanceChange(ctx, s.userRepo, s.balanceHistoryRepo,
				bet.UserID, payout, entities.TransactionTypeBetWin, &betID); err != nil {
				return nil, fmt.Errorf("error processing wagers: %w", err)
			}

			totalPaidOut += payout
			winners = append(winners, bet)
		} else {
			bet.MarkLost()
			if err := s.betRepo.UpdateResult(ctx, bet.ID, bet.Status, nil); err != nil {
				return nil, fmt.Errorf("error processing wagers: %w", err)
			}
			losers = append(losers, bet)
		}
	}

	log.WithFields(log.Fields{
		"event_id":     eventID,
		"final_result": finalResult,
		"winners":      len(winners),
		"losers":       len(losers),
		"paid_out":     totalPaidOut,
	}).Info("event settled")

	return &entities.SettlementResult{
		Event:         event,
		WinningOption: winningOption,
		Winners:       winners,
		Losers:        losers,
		TotalPaidOut:  totalPaidOut,
	}, nil
}
