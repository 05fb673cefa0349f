package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tablekick/scoreboard/internal/domain"
	"github.com/tablekick/scoreboard/internal/rating"
	"github.com/tablekick/scoreboard/internal/repository"
)

// LedgerService records match outcomes. One submission resolves both teams,
// runs the rating engine and persists the match row, the four audit rows and
// the four player updates in a single transaction, so readers never observe a
// partially recorded match.
type LedgerService struct {
	repos  *repository.Repositories
	params rating.Parameters
	logger zerolog.Logger
}

func NewLedgerService(repos *repository.Repositories, params rating.Parameters, logger zerolog.Logger) *LedgerService {
	return &LedgerService{
		repos:  repos,
		params: params,
		logger: logger,
	}
}

type SubmitMatchInput struct {
	WhiteDefenderID uuid.UUID
	WhiteAttackerID uuid.UUID
	BlueDefenderID  uuid.UUID
	BlueAttackerID  uuid.UUID
	WhiteScore      int
	BlueScore       int
	PlayedAt        time.Time // zero value means now
}

// PlayerDelta is one player's rating movement in a recorded match.
type PlayerDelta struct {
	PlayerID uuid.UUID   `json:"playerId"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
	Change   int         `json:"change"`
	NewElo   int         `json:"newElo"`
}

type SubmitMatchResult struct {
	MatchID       uuid.UUID     `json:"matchId"`
	WhiteTeamID   uuid.UUID     `json:"whiteTeamId"`
	BlueTeamID    uuid.UUID     `json:"blueTeamId"`
	WhiteTeamName string        `json:"whiteTeamName"`
	BlueTeamName  string        `json:"blueTeamName"`
	WhiteScore    int           `json:"whiteScore"`
	BlueScore     int           `json:"blueScore"`
	PlayedAt      time.Time     `json:"playedAt"`
	Deltas        []PlayerDelta `json:"deltas"`
	Explanation   []string      `json:"explanation"`
}

func (in *SubmitMatchInput) validate() error {
	ids := []uuid.UUID{in.WhiteDefenderID, in.WhiteAttackerID, in.BlueDefenderID, in.BlueAttackerID}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return domain.ErrMissingPlayer
		}
		if _, dup := seen[id]; dup {
			return domain.ErrDuplicatePlayer
		}
		seen[id] = struct{}{}
	}
	if in.WhiteScore < 0 || in.BlueScore < 0 {
		return domain.ErrInvalidScore
	}
	return nil
}

// Submit records one match. Input shape is rejected before any lookup; the
// rest runs inside one transaction and either fully commits or leaves no rows.
func (s *LedgerService) Submit(ctx context.Context, in SubmitMatchInput) (*SubmitMatchResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	playedAt := in.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	var result *SubmitMatchResult
	err := s.repos.Tx.RunInTx(ctx, func(repos *repository.Repositories) error {
		players, err := loadParticipants(ctx, repos, in)
		if err != nil {
			return err
		}
		whiteDef, whiteAtt := players[0], players[1]
		blueDef, blueAtt := players[2], players[3]

		whiteTeam, err := repos.Team.GetOrCreate(ctx, whiteDef.ID, whiteAtt.ID,
			domain.GeneratedTeamName(whiteDef.DisplayName, whiteAtt.DisplayName), playedAt)
		if err != nil {
			return fmt.Errorf("resolve white team: %w", err)
		}
		blueTeam, err := repos.Team.GetOrCreate(ctx, blueDef.ID, blueAtt.ID,
			domain.GeneratedTeamName(blueDef.DisplayName, blueAtt.DisplayName), playedAt)
		if err != nil {
			return fmt.Errorf("resolve blue team: %w", err)
		}

		outcome := rating.Compute(rating.Input{
			White: rating.TeamInput{
				Defender: rating.PlayerInput{Name: whiteDef.DisplayName, Elo: whiteDef.EloDefense, Beginner: whiteDef.Beginner},
				Attacker: rating.PlayerInput{Name: whiteAtt.DisplayName, Elo: whiteAtt.EloOffense, Beginner: whiteAtt.Beginner},
			},
			Blue: rating.TeamInput{
				Defender: rating.PlayerInput{Name: blueDef.DisplayName, Elo: blueDef.EloDefense, Beginner: blueDef.Beginner},
				Attacker: rating.PlayerInput{Name: blueAtt.DisplayName, Elo: blueAtt.EloOffense, Beginner: blueAtt.Beginner},
			},
			WhiteScore: in.WhiteScore,
			BlueScore:  in.BlueScore,
		}, s.params)

		notes, err := json.Marshal(outcome.Explanation)
		if err != nil {
			return fmt.Errorf("marshal rating notes: %w", err)
		}

		match := &domain.Match{
			ID:          uuid.New(),
			WhiteTeamID: whiteTeam.ID,
			BlueTeamID:  blueTeam.ID,
			WhiteScore:  in.WhiteScore,
			BlueScore:   in.BlueScore,
			PlayedAt:    playedAt,
			RatingNotes: notes,
		}
		if err := repos.Match.Create(ctx, match); err != nil {
			return fmt.Errorf("create match: %w", err)
		}

		entries := []struct {
			player *domain.Player
			team   *domain.Team
			role   domain.Role
			delta  int
		}{
			{whiteDef, whiteTeam, domain.RoleDefense, outcome.WhiteDefender},
			{whiteAtt, whiteTeam, domain.RoleOffense, outcome.WhiteAttacker},
			{blueDef, blueTeam, domain.RoleDefense, outcome.BlueDefender},
			{blueAtt, blueTeam, domain.RoleOffense, outcome.BlueAttacker},
		}

		deltas := make([]PlayerDelta, 0, len(entries))
		audits := make([]*domain.MatchPlayerAudit, 0, len(entries))
		for _, e := range entries {
			scored, conceded := match.ScoreFor(e.team.ID)

			audit := &domain.MatchPlayerAudit{
				ID:            uuid.New(),
				MatchID:       match.ID,
				TeamID:        e.team.ID,
				PlayerID:      e.player.ID,
				Scored:        scored,
				Conceded:      conceded,
				OldDefenseElo: e.player.EloDefense,
				NewDefenseElo: e.player.EloDefense,
				OldOffenseElo: e.player.EloOffense,
				NewOffenseElo: e.player.EloOffense,
			}
			newElo := e.player.EloFor(e.role) + e.delta
			if e.role == domain.RoleDefense {
				audit.NewDefenseElo = newElo
			} else {
				audit.NewOffenseElo = newElo
			}
			audits = append(audits, audit)

			e.player.SetEloFor(e.role, newElo)
			e.player.Played++
			e.player.Scored += scored
			e.player.Conceded += conceded
			switch match.ResultFor(e.team.ID) {
			case domain.ResultWin:
				e.player.Wins++
			case domain.ResultLoss:
				e.player.Losses++
			}
			if err := repos.Player.Update(ctx, e.player); err != nil {
				return fmt.Errorf("update player %s: %w", e.player.ID, err)
			}

			deltas = append(deltas, PlayerDelta{
				PlayerID: e.player.ID,
				Name:     e.player.DisplayName,
				Role:     e.role,
				Change:   e.delta,
				NewElo:   newElo,
			})
		}

		if err := repos.Audit.CreateBatch(ctx, audits); err != nil {
			return fmt.Errorf("create audit rows: %w", err)
		}

		result = &SubmitMatchResult{
			MatchID:       match.ID,
			WhiteTeamID:   whiteTeam.ID,
			BlueTeamID:    blueTeam.ID,
			WhiteTeamName: whiteTeam.Name,
			BlueTeamName:  blueTeam.Name,
			WhiteScore:    in.WhiteScore,
			BlueScore:     in.BlueScore,
			PlayedAt:      playedAt,
			Deltas:        deltas,
			Explanation:   outcome.Explanation,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("match_id", result.MatchID.String()).
		Int("white_score", in.WhiteScore).
		Int("blue_score", in.BlueScore).
		Msg("match recorded")

	return result, nil
}

// loadParticipants fetches the four players in submission order, failing with
// ErrPlayerNotFound when any id does not resolve.
func loadParticipants(ctx context.Context, repos *repository.Repositories, in SubmitMatchInput) ([]*domain.Player, error) {
	ids := []uuid.UUID{in.WhiteDefenderID, in.WhiteAttackerID, in.BlueDefenderID, in.BlueAttackerID}
	players, err := repos.Player.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}

	byID := make(map[uuid.UUID]*domain.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	ordered := make([]*domain.Player, len(ids))
	for i, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("player %s: %w", id, domain.ErrPlayerNotFound)
		}
		ordered[i] = p
	}
	return ordered, nil
}
