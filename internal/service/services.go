package service

import (
	"github.com/rs/zerolog"
	"github.com/tablekick/scoreboard/internal/config"
	"github.com/tablekick/scoreboard/internal/repository"
)

type Services struct {
	Ledger  *LedgerService
	History *HistoryService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, logger zerolog.Logger) *Services {
	return &Services{
		Ledger:  NewLedgerService(repos, cfg.Rating, logger),
		History: NewHistoryService(repos),
	}
}
