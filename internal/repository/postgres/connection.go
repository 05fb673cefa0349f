package postgres

import (
	"context"

	"github.com/tablekick/scoreboard/internal/domain"
	"github.com/tablekick/scoreboard/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Player{},
		&domain.Team{},
		&domain.Match{},
		&domain.MatchPlayerAudit{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Player: NewPlayerRepository(db),
		Team:   NewTeamRepository(db),
		Match:  NewMatchRepository(db),
		Audit:  NewAuditRepository(db),
		Tx:     NewTxManager(db),
	}
}

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) repository.TxManager {
	return &txManager{db: db}
}

// RunInTx executes fn with all repositories rebound to one transaction.
// Returning an error rolls everything back.
func (m *txManager) RunInTx(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
