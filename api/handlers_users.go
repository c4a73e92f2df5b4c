package api

import (
	"net/http"
	"strconv"

	"betbook/domain/entities"
	"betbook/domain/interfaces"
	"betbook/domain/services"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var user *entities.User
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		found, err := s.userService(uow).GetUser(r.Context(), userID)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toUserResponse(user))
}

func (s *Server) handleMyHistory(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var entries []*entities.BalanceHistory
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		found, err := s.userService(uow).GetBalanceHistory(r.Context(), userID, limit)
		if err != nil {
			return err
		}
		entries = found
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toBalanceHistoryResponses(entries))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	var users []*entities.User
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		found, err := s.userService(uow).ListUsers(r.Context())
		if err != nil {
			return err
		}
		users = found
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toUserResponses(users))
}

func (s *Server) userService(uow interfaces.UnitOfWork) interfaces.UserService {
	return services.NewUserService(uow.UserRepository(), uow.BalanceHistoryRepository())
}
