package api

import (
	"net/http"

	"betbook/domain/entities"
	"betbook/domain/interfaces"
	"betbook/domain/services"
	"betbook/metrics"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	status := entities.EventStatus(r.URL.Query().Get("status"))
	if status != "" && status != entities.EventStatusOpen && status != entities.EventStatusClosed {
		writeError(w, &validationError{Message: "status must be open or closed"})
		return
	}

	var details []*entities.EventDetail
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		svc := s.eventService(uow)
		listed, err := svc.ListEvents(r.Context(), status)
		if err != nil {
			return err
		}
		details = listed
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toEventResponses(details))
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var detail *entities.EventDetail
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		found, err := s.eventService(uow).GetEvent(r.Context(), id)
		if err != nil {
			return err
		}
		detail = found
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toEventResponse(detail))
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var detail *entities.EventDetail
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		created, err := s.eventService(uow).CreateEvent(r.Context(), req.Name, req.Description, req.toServiceOptions())
		if err != nil {
			return err
		}
		detail = created
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.EventsCreated.Inc()
	writeSuccessStatus(w, http.StatusCreated, toEventResponse(detail))
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateEventRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var detail *entities.EventDetail
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		updated, err := s.eventService(uow).UpdateEvent(r.Context(), id, req.Name, req.Description, req.optionNames())
		if err != nil {
			return err
		}
		detail = updated
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, toEventResponse(detail))
}

func (s *Server) handleCloseEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req closeEventRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var result *entities.SettlementResult
	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		svc := services.NewSettlementService(
			uow.EventRepository(),
			uow.BetRepository(),
			uow.UserRepository(),
			uow.BalanceHistoryRepository(),
		)
		settled, err := svc.CloseEvent(r.Context(), id, req.FinalResult)
		if err != nil {
			return err
		}
		result = settled
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.EventsSettled.Inc()
	metrics.PayoutCredited.Add(float64(result.TotalPaidOut))
	writeSuccess(w, toSettlementResponse(result))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.inTx(r.Context(), func(uow interfaces.UnitOfWork) error {
		return s.eventService(uow).DeleteEvent(r.Context(), id)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.EventsDeleted.Inc()
	writeSuccess(w, map[string]string{"status": "deleted"})
}

func (s *Server) eventService(uow interfaces.UnitOfWork) interfaces.EventService {
	return services.NewEventService(
		uow.EventRepository(),
		uow.BetRepository(),
		uow.UserRepository(),
		uow.BalanceHistoryRepository(),
	)
}
