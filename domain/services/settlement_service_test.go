package services

import (
	"context"
	"errors"
	"testing"

	"betbook/domain"
	"betbook/domain/entities"
	"betbook/domain/testhelpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type settlementMocks struct {
	eventRepo   *testhelpers.MockEventRepository
	betRepo     *testhelpers.MockBetRepository
	userRepo    *testhelpers.MockUserRepository
	historyRepo *testhelpers.MockBalanceHistoryRepository
}

func newSettlementService(t *testing.T) (*settlementMocks, *settlementService) {
	t.Helper()
	m := &settlementMocks{
		eventRepo:   new(testhelpers.MockEventRepository),
		betRepo:     new(testhelpers.MockBetRepository),
		userRepo:    new(testhelpers.MockUserRepository),
		historyRepo: new(testhelpers.MockBalanceHistoryRepository),
	}
	svc := NewSettlementService(m.eventRepo, m.betRepo, m.userRepo, m.historyRepo).(*settlementService)
	return m, svc
}

func (m *settlementMocks) assertExpectations(t *testing.T) {
	m.eventRepo.AssertExpectations(t)
	m.betRepo.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
	m.historyRepo.AssertExpectations(t)
}

func openEventDetail(eventID string) *entities.EventDetail {
	return &entities.EventDetail{
		Event: &entities.Event{
			ID:     eventID,
			Name:   "Grand Final",
			Status: entities.EventStatusOpen,
		},
		Options: []*entities.EventOption{
			{ID: "opt-red", EventID: eventID, Name: "Red", Odds: decimal.RequireFromString("2.00")},
			{ID: "opt-blue", EventID: eventID, Name: "Blue", Odds: decimal.RequireFromString("1.80")},
		},
	}
}

func TestSettlementService_CloseEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("event not found", func(t *testing.T) {
		m, svc := newSettlementService(t)
		m.eventRepo.On("GetDetailByID", ctx, "missing").Return(nil, nil)

		result, err := svc.CloseEvent(ctx, "missing", "Red")
		assert.Nil(t, result)
		assert.True(t, domain.IsNotFound(err))
		m.assertExpectations(t)
	})

	t.Run("event already closed", func(t *testing.T) {
		m, svc := newSettlementService(t)
		detail := openEventDetail("event-1")
		detail.Event.Status = entities.EventStatusClosed
		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(detail, nil)

		result, err := svc.CloseEvent(ctx, "event-1", "Red")
		assert.Nil(t, result)
		assert.True(t, domain.IsInvalidState(err))
		m.assertExpectations(t)
	})

	t.Run("unknown winning option", func(t *testing.T) {
		m, svc := newSettlementService(t)
		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(openEventDetail("event-1"), nil)

		result, err := svc.CloseEvent(ctx, "event-1", "Green")
		assert.Nil(t, result)
		assert.True(t, domain.IsInvalidSelection(err))
		m.assertExpectations(t)
	})

	t.Run("concurrent close loses the fence", func(t *testing.T) {
		m, svc := newSettlementService(t)
		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(openEventDetail("event-1"), nil)
		m.eventRepo.On("Close", ctx, "event-1", "Red").Return(false, nil)

		result, err := svc.CloseEvent(ctx, "event-1", "Red")
		assert.Nil(t, result)
		assert.True(t, domain.IsInvalidState(err))
		// No bet or balance writes after a lost fence
		m.betRepo.AssertNotCalled(t, "GetByEvent", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("settles winners and losers", func(t *testing.T) {
		m, svc := newSettlementService(t)

		winner := &entities.Bet{
			ID: "bet-1", UserID: "user-1", EventID: "event-1",
			SelectedOption: "Red", Odds: decimal.RequireFromString("2.00"),
			Amount: 100, Status: entities.BetStatusPending,
		}
		loser := &entities.Bet{
			ID: "bet-2", UserID: "user-2", EventID: "event-1",
			SelectedOption: "Blue", Odds: decimal.RequireFromString("1.80"),
			Amount: 50, Status: entities.BetStatusPending,
		}

		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(openEventDetail("event-1"), nil)
		m.eventRepo.On("Close", ctx, "event-1", "Red").Return(true, nil)
		m.betRepo.On("GetByEvent", ctx, "event-1").Return([]*entities.Bet{winner, loser}, nil)

		m.betRepo.On("UpdateResult", ctx, "bet-1", entities.BetStatusWon,
			mock.MatchedBy(func(profit *int64) bool { return profit != nil && *profit == 200 })).Return(nil)
		m.userRepo.On("AdjustBalance", ctx, "user-1", int64(200)).Return(int64(1100), nil)
		m.historyRepo.On("Record", ctx, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
			return h.UserID == "user-1" &&
				h.ChangeAmount == 200 &&
				h.BalanceBefore == 900 &&
				h.BalanceAfter == 1100 &&
				h.TransactionType == entities.TransactionTypeBetWin
		})).Return(nil)

		m.betRepo.On("UpdateResult", ctx, "bet-2", entities.BetStatusLost, (*int64)(nil)).Return(nil)

		result, err := svc.CloseEvent(ctx, "event-1", "Red")
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, entities.EventStatusClosed, result.Event.Status)
		require.NotNil(t, result.Event.FinalResult)
		assert.Equal(t, "Red", *result.Event.FinalResult)
		assert.Equal(t, "Red", result.WinningOption.Name)
		assert.Len(t, result.Winners, 1)
		assert.Len(t, result.Losers, 1)
		assert.Equal(t, int64(200), result.TotalPaidOut)
		m.assertExpectations(t)
	})

	t.Run("payout truncates fractional units", func(t *testing.T) {
		m, svc := newSettlementService(t)

		// 33 * 1.80 = 59.4, credited as 59
		bet := &entities.Bet{
			ID: "bet-1", UserID: "user-1", EventID: "event-1",
			SelectedOption: "Blue", Odds: decimal.RequireFromString("1.80"),
			Amount: 33, Status: entities.BetStatusPending,
		}

		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(openEventDetail("event-1"), nil)
		m.eventRepo.On("Close", ctx, "event-1", "Blue").Return(true, nil)
		m.betRepo.On("GetByEvent", ctx, "event-1").Return([]*entities.Bet{bet}, nil)
		m.betRepo.On("UpdateResult", ctx, "bet-1", entities.BetStatusWon, mock.Anything).Return(nil)
		m.userRepo.On("AdjustBalance", ctx, "user-1", int64(59)).Return(int64(59), nil)
		m.historyRepo.On("Record", ctx, mock.Anything).Return(nil)

		result, err := svc.CloseEvent(ctx, "event-1", "Blue")
		require.NoError(t, err)
		assert.Equal(t, int64(59), result.TotalPaidOut)
		m.assertExpectations(t)
	})

	t.Run("already settled bets are skipped", func(t *testing.T) {
		m, svc := newSettlementService(t)

		profit := int64(180)
		settled := &entities.Bet{
			ID: "bet-1", UserID: "user-1", EventID: "event-1",
			SelectedOption: "Red", Odds: decimal.RequireFromString("2.00"),
			Amount: 90, Status: entities.BetStatusWon, Profit: &profit,
		}

		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(openEventDetail("event-1"), nil)
		m.eventRepo.On("Close", ctx, "event-1", "Red").Return(true, nil)
		m.betRepo.On("GetByEvent", ctx, "event-1").Return([]*entities.Bet{settled}, nil)

		result, err := svc.CloseEvent(ctx, "event-1", "Red")
		require.NoError(t, err)
		assert.Empty(t, result.Winners)
		assert.Empty(t, result.Losers)
		assert.Zero(t, result.TotalPaidOut)
		m.betRepo.AssertNotCalled(t, "UpdateResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("wager processing failure reports the cause", func(t *testing.T) {
		m, svc := newSettlementService(t)

		bet := &entities.Bet{
			ID: "bet-1", UserID: "user-1", EventID: "event-1",
			SelectedOption: "Red", Odds: decimal.RequireFromString("2.00"),
			Amount: 100, Status: entities.BetStatusPending,
		}

		cause := errors.New("connection reset")
		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(openEventDetail("event-1"), nil)
		m.eventRepo.On("Close", ctx, "event-1", "Red").Return(true, nil)
		m.betRepo.On("GetByEvent", ctx, "event-1").Return([]*entities.Bet{bet}, nil)
		m.betRepo.On("UpdateResult", ctx, "bet-1", entities.BetStatusWon, mock.Anything).Return(cause)

		result, err := svc.CloseEvent(ctx, "event-1", "Red")
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error processing wagers: connection reset")
		assert.ErrorIs(t, err, cause)
		m.assertExpectations(t)
	})
}
