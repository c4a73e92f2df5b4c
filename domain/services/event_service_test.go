package services

import (
	"context"
	"testing"

	"betbook/domain"
	"betbook/domain/entities"
	"betbook/domain/interfaces"
	"betbook/domain/testhelpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type eventMocks struct {
	eventRepo   *testhelpers.MockEventRepository
	betRepo     *testhelpers.MockBetRepository
	userRepo    *testhelpers.MockUserRepository
	historyRepo *testhelpers.MockBalanceHistoryRepository
}

func newEventService(t *testing.T) (*eventMocks, *eventService) {
	t.Helper()
	m := &eventMocks{
		eventRepo:   new(testhelpers.MockEventRepository),
		betRepo:     new(testhelpers.MockBetRepository),
		userRepo:    new(testhelpers.MockUserRepository),
		historyRepo: new(testhelpers.MockBalanceHistoryRepository),
	}
	svc := NewEventService(m.eventRepo, m.betRepo, m.userRepo, m.historyRepo).(*eventService)
	return m, svc
}

func (m *eventMocks) assertExpectations(t *testing.T) {
	m.eventRepo.AssertExpectations(t)
	m.betRepo.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
	m.historyRepo.AssertExpectations(t)
}

func twoOptions() []interfaces.OptionInput {
	return []interfaces.OptionInput{
		{Name: "Red", Odds: decimal.RequireFromString("2.00")},
		{Name: "Blue", Odds: decimal.RequireFromString("1.80")},
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		m, svc := newEventService(t)
		m.eventRepo.On("CreateWithOptions", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				event := args.Get(1).(*entities.Event)
				event.ID = "event-1"
				for i, option := range args.Get(2).([]*entities.EventOption) {
					option.ID = "opt-" + string(rune('a'+i))
					option.EventID = event.ID
				}
			}).Return(nil)

		detail, err := svc.CreateEvent(ctx, "Grand Final", nil, twoOptions())
		require.NoError(t, err)
		require.NotNil(t, detail)

		assert.Equal(t, "event-1", detail.Event.ID)
		assert.Equal(t, entities.EventStatusOpen, detail.Event.Status)
		require.Len(t, detail.Options, 2)
		assert.Empty(t, detail.Bets)
		m.assertExpectations(t)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, svc := newEventService(t)
		_, err := svc.CreateEvent(ctx, "  ", nil, twoOptions())
		assert.Error(t, err)
	})

	t.Run("fewer than two options rejected", func(t *testing.T) {
		_, svc := newEventService(t)
		_, err := svc.CreateEvent(ctx, "Grand Final", nil, twoOptions()[:1])
		assert.ErrorContains(t, err, "at least 2 options")
	})

	t.Run("odds at or below one rejected", func(t *testing.T) {
		_, svc := newEventService(t)
		options := twoOptions()
		options[1].Odds = decimal.RequireFromString("1.00")
		_, err := svc.CreateEvent(ctx, "Grand Final", nil, options)
		assert.ErrorContains(t, err, "greater than 1.0")
	})

	t.Run("duplicate option names rejected case-insensitively", func(t *testing.T) {
		_, svc := newEventService(t)
		options := twoOptions()
		options[1].Name = "red"
		_, err := svc.CreateEvent(ctx, "Grand Final", nil, options)
		assert.ErrorContains(t, err, "duplicate option")
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()

	newDetail := func() *entities.EventDetail {
		return &entities.EventDetail{
			Event: &entities.Event{ID: "event-1", Name: "Grand Final", Status: entities.EventStatusOpen},
			Options: []*entities.EventOption{
				{ID: "opt-a", EventID: "event-1", Name: "Red", Odds: decimal.RequireFromString("2.00")},
				{ID: "opt-b", EventID: "event-1", Name: "Blue", Odds: decimal.RequireFromString("1.80")},
			},
		}
	}

	t.Run("event not found", func(t *testing.T) {
		m, svc := newEventService(t)
		m.eventRepo.On("GetDetailByID", ctx, "missing").Return(nil, nil)

		_, err := svc.UpdateEvent(ctx, "missing", nil, nil, nil)
		assert.True(t, domain.IsNotFound(err))
		m.assertExpectations(t)
	})

	t.Run("closed event rejected", func(t *testing.T) {
		m, svc := newEventService(t)
		detail := newDetail()
		detail.Event.Status = entities.EventStatusClosed
		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(detail, nil)

		name := "Renamed"
		_, err := svc.UpdateEvent(ctx, "event-1", &name, nil, nil)
		assert.True(t, domain.IsInvalidState(err))
		m.assertExpectations(t)
	})

	t.Run("rename propagates into pending bets", func(t *testing.T) {
		m, svc := newEventService(t)
		detail := newDetail()

		pending := &entities.Bet{
			ID: "bet-1", UserID: "user-1", EventID: "event-1",
			SelectedOption: "Red", Status: entities.BetStatusPending,
		}
		settled := &entities.Bet{
			ID: "bet-2", UserID: "user-2", EventID: "event-1",
			SelectedOption: "Red", Status: entities.BetStatusLost,
		}

		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(detail, nil)
		m.eventRepo.On("UpdateOptionName", ctx, "opt-a", "Crimson").Return(nil)
		m.betRepo.On("GetByEvent", ctx, "event-1").Return([]*entities.Bet{pending, settled}, nil)
		m.betRepo.On("UpdateSelectedOption", ctx, "bet-1", "Crimson").Return(nil)
		m.eventRepo.On("Update", ctx, detail.Event).Return(nil)

		result, err := svc.UpdateEvent(ctx, "event-1", nil, nil, []string{"Crimson", ""})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "Crimson", result.Options[0].Name)
		assert.Equal(t, "Crimson", pending.SelectedOption)
		// Settled bets keep the name they were settled with
		assert.Equal(t, "Red", settled.SelectedOption)
		m.assertExpectations(t)
	})

	t.Run("crossing renames rewrite each bet exactly once", func(t *testing.T) {
		m, svc := newEventService(t)
		detail := newDetail()

		betOnRed := &entities.Bet{
			ID: "bet-1", UserID: "user-1", EventID: "event-1",
			SelectedOption: "Red", Status: entities.BetStatusPending,
		}
		betOnBlue := &entities.Bet{
			ID: "bet-2", UserID: "user-2", EventID: "event-1",
			SelectedOption: "Blue", Status: entities.BetStatusPending,
		}

		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(detail, nil)
		m.eventRepo.On("UpdateOptionName", ctx, "opt-a", "Blue").Return(nil)
		m.eventRepo.On("UpdateOptionName", ctx, "opt-b", "Red").Return(nil)
		m.betRepo.On("GetByEvent", ctx, "event-1").Return([]*entities.Bet{betOnRed, betOnBlue}, nil)
		m.betRepo.On("UpdateSelectedOption", ctx, "bet-1", "Blue").Return(nil).Once()
		m.betRepo.On("UpdateSelectedOption", ctx, "bet-2", "Red").Return(nil).Once()
		m.eventRepo.On("Update", ctx, detail.Event).Return(nil)

		_, err := svc.UpdateEvent(ctx, "event-1", nil, nil, []string{"Blue", "Red"})
		require.NoError(t, err)

		assert.Equal(t, "Blue", betOnRed.SelectedOption)
		assert.Equal(t, "Red", betOnBlue.SelectedOption)
		m.assertExpectations(t)
	})

	t.Run("duplicate final names rejected", func(t *testing.T) {
		m, svc := newEventService(t)
		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(newDetail(), nil)

		_, err := svc.UpdateEvent(ctx, "event-1", nil, nil, []string{"Blue", ""})
		assert.ErrorContains(t, err, "duplicate option")
		m.eventRepo.AssertNotCalled(t, "UpdateOptionName", mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("name and description updated", func(t *testing.T) {
		m, svc := newEventService(t)
		detail := newDetail()

		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(detail, nil)
		m.eventRepo.On("Update", ctx, mock.MatchedBy(func(e *entities.Event) bool {
			return e.Name == "Renamed Final" && e.Description != nil && *e.Description == "updated"
		})).Return(nil)

		name := "Renamed Final"
		description := "updated"
		result, err := svc.UpdateEvent(ctx, "event-1", &name, &description, nil)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Final", result.Event.Name)
		m.assertExpectations(t)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("event not found", func(t *testing.T) {
		m, svc := newEventService(t)
		m.eventRepo.On("GetDetailByID", ctx, "missing").Return(nil, nil)

		err := svc.DeleteEvent(ctx, "missing")
		assert.True(t, domain.IsNotFound(err))
		m.assertExpectations(t)
	})

	t.Run("closed event rejected", func(t *testing.T) {
		m, svc := newEventService(t)
		detail := &entities.EventDetail{
			Event: &entities.Event{ID: "event-1", Status: entities.EventStatusClosed},
		}
		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(detail, nil)

		err := svc.DeleteEvent(ctx, "event-1")
		assert.True(t, domain.IsInvalidState(err))
		m.assertExpectations(t)
	})

	t.Run("pending bets refunded at stake only", func(t *testing.T) {
		m, svc := newEventService(t)

		pending := &entities.Bet{
			ID: "bet-1", UserID: "user-1", EventID: "event-1",
			SelectedOption: "Red", Odds: decimal.RequireFromString("2.00"),
			Amount: 100, Status: entities.BetStatusPending,
		}
		profit := int64(90)
		settled := &entities.Bet{
			ID: "bet-2", UserID: "user-2", EventID: "event-1",
			SelectedOption: "Blue", Amount: 50,
			Status: entities.BetStatusWon, Profit: &profit,
		}
		detail := &entities.EventDetail{
			Event: &entities.Event{ID: "event-1", Status: entities.EventStatusOpen},
			Bets:  []*entities.Bet{pending, settled},
		}

		m.eventRepo.On("GetDetailByID", ctx, "event-1").Return(detail, nil)
		// Refund is the stake alone, not stake times odds
		m.userRepo.On("AdjustBalance", ctx, "user-1", int64(100)).Return(int64(1100), nil)
		m.historyRepo.On("Record", ctx, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
			return h.UserID == "user-1" &&
				h.ChangeAmount == 100 &&
				h.TransactionType == entities.TransactionTypeBetRefund
		})).Return(nil)
		m.betRepo.On("Delete", ctx, "bet-1").Return(nil)
		m.eventRepo.On("Delete", ctx, "event-1").Return(nil)

		err := svc.DeleteEvent(ctx, "event-1")
		require.NoError(t, err)

		// Settled bets are not refunded
		m.userRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, "user-2", mock.Anything)
		m.assertExpectations(t)
	})
}
