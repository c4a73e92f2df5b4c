package api

import (
	"net/http"

	"betbook/domain/entities"
	"betbook/domain/interfaces"
	"betbook/domain/services"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var user *entities.User
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		svc := services.NewUserService(uow.UserRepository(), uow.BalanceHistoryRepository())
		created, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := IssueToken(s.cfg, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, authResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var user *entities.User
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		svc := services.NewUserService(uow.UserRepository(), uow.BalanceHistoryRepository())
		found, err := svc.Authenticate(r.Context(), req.Username, req.Password)
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

	token, err := IssueToken(s.cfg, user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, authResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}
