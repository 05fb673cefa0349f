package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablekick/scoreboard/internal/domain"
	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *auditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) CreateBatch(ctx context.Context, rows []*domain.MatchPlayerAudit) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

func (r *auditRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*domain.MatchPlayerAudit, error) {
	q := r.db.WithContext(ctx).
		Preload("Match").
		Joins("JOIN matches ON matches.id = match_player_audits.match_id").
		Where("match_player_audits.player_id = ?", playerID).
		Order("matches.played_at DESC").
		Order("match_player_audits.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var rows []*domain.MatchPlayerAudit
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *auditRepository) ListByPlayerAsc(ctx context.Context, playerID uuid.UUID) ([]*domain.MatchPlayerAudit, error) {
	var rows []*domain.MatchPlayerAudit
	err := r.db.WithContext(ctx).
		Preload("Match").
		Joins("JOIN matches ON matches.id = match_player_audits.match_id").
		Where("match_player_audits.player_id = ?", playerID).
		Order("matches.played_at ASC").
		Order("match_player_audits.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *auditRepository) ListByMatchIDs(ctx context.Context, matchIDs []uuid.UUID) ([]*domain.MatchPlayerAudit, error) {
	if len(matchIDs) == 0 {
		return []*domain.MatchPlayerAudit{}, nil
	}
	var rows []*domain.MatchPlayerAudit
	err := r.db.WithContext(ctx).Where("match_id IN ?", matchIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
