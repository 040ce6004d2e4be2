package service

import (
	"log/slog"

	"github.com/casey/kickball-cup/internal/config"
	"github.com/casey/kickball-cup/internal/repository"
)

type Services struct {
	Tournament *TournamentService
	Session    *SessionService
}

func NewServices(store repository.StateStore, cfg *config.Config, log *slog.Logger) *Services {
	return &Services{
		Tournament: NewTournamentService(store, log),
		Session:    NewSessionService(cfg),
	}
}
