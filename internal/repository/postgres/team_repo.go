package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tablekick/scoreboard/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *teamRepository {
	return &teamRepository{db: db}
}

// GetOrCreate inserts the pair with ON CONFLICT DO NOTHING against the
// composite unique index and re-reads afterwards, so two first-time
// submissions of the same pairing race to a single row instead of creating
// duplicates.
func (r *teamRepository) GetOrCreate(ctx context.Context, defenderID, attackerID uuid.UUID, name string, createdAt time.Time) (*domain.Team, error) {
	team := &domain.Team{
		ID:         uuid.New(),
		DefenderID: defenderID,
		AttackerID: attackerID,
		Name:       name,
		CreatedAt:  createdAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "defender_id"}, {Name: "attacker_id"}},
		DoNothing: true,
	}).Create(team).Error
	if err != nil {
		return nil, err
	}

	var existing domain.Team
	err = r.db.WithContext(ctx).
		First(&existing, "defender_id = ? AND attacker_id = ?", defenderID, attackerID).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Team, error) {
	if len(ids) == 0 {
		return []*domain.Team{}, nil
	}
	var teams []*domain.Team
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}
