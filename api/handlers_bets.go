package api

import (
	"net/http"

	"betbook/domain/entities"
	"betbook/domain/interfaces"
	"betbook/domain/services"
	"betbook/metrics"
)

func (s *Server) handlePlaceBet(w http.ResponseWriter, r *http.Request) {
	var req placeBetRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID := userIDFromContext(r.Context())

	var bet *entities.Bet
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		svc := s.bettingService(uow)
		placed, err := svc.PlaceBet(r.Context(), userID, req.EventID, req.SelectedOption, req.Amount)
		if err != nil {
			return err
		}
		bet = placed
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.BetsPlaced.Inc()
	writeSuccessStatus(w, http.StatusCreated, toBetResponse(bet))
}

func (s *Server) handleMyBets(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var bets []*entities.Bet
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		found, err := s.bettingService(uow).GetUserBets(r.Context(), userID)
		if err != nil {
			return err
		}
		bets = found
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toBetResponses(bets))
}

func (s *Server) bettingService(uow interfaces.UnitOfWork) interfaces.BettingService {
	return services.NewBettingService(
		uow.EventRepository(),
		uow.BetRepository(),
		uow.UserRepository(),
		uow.BalanceHistoryRepository(),
	)
}
