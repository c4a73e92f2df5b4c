package api

import (
	"context"

	"betbook/config"
	"betbook/database"
	"betbook/domain/interfaces"
)

// Server wires the HTTP boundary to the domain services. Each handler runs
// its domain operation inside a unit of work, so every request commits or
// rolls back as a whole.
type Server struct {
	cfg        *config.Config
	db         *database.DB
	uowFactory interfaces.UnitOfWorkFactory
}

// NewServer creates the HTTP server
func NewServer(cfg *config.Config, db *database.DB, uowFactory interfaces.UnitOfWorkFactory) *Server {
	return &Server{
		cfg:        cfg,
		db:         db,
		uowFactory: uowFactory,
	}
}

// inTx runs fn inside a fresh unit of work and commits when it succeeds
func (s *Server) inTx(ctx context.Context, fn func(uow interfaces.UnitOfWork) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit()
}
