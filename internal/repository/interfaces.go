package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tablekick/scoreboard/internal/domain"
)

type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Player, error)
	List(ctx context.Context) ([]*domain.Player, error)
	Update(ctx context.Context, player *domain.Player) error
}

type TeamRepository interface {
	// GetOrCreate resolves the ordered (defender, attacker) pair to its durable
	// team, creating the row on first use. Safe under concurrent first-time
	// resolution of the same pair.
	GetOrCreate(ctx context.Context, defenderID, attackerID uuid.UUID, name string, createdAt time.Time) (*domain.Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Team, error)
}

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Match, error)
}

type AuditRepository interface {
	CreateBatch(ctx context.Context, rows []*domain.MatchPlayerAudit) error
	// ListByPlayer returns the player's rows newest match first, Match
	// preloaded. limit <= 0 means no limit.
	ListByPlayer(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*domain.MatchPlayerAudit, error)
	// ListByPlayerAsc returns all of the player's rows oldest match first,
	// Match preloaded.
	ListByPlayerAsc(ctx context.Context, playerID uuid.UUID) ([]*domain.MatchPlayerAudit, error)
	ListByMatchIDs(ctx context.Context, matchIDs []uuid.UUID) ([]*domain.MatchPlayerAudit, error)
}

// TxManager runs a function with every repository bound to one database
// transaction. The match ledger uses it so a submission commits all-or-nothing.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(repos *Repositories) error) error
}

type Repositories struct {
	Player PlayerRepository
	Team   TeamRepository
	Match  MatchRepository
	Audit  AuditRepository
	Tx     TxManager
}
