package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tablekick/scoreboard/internal/domain"
	"github.com/tablekick/scoreboard/internal/repository"
)

// baselineLead is how far before a player's first rated match the synthetic
// starting point of an elo time-series is placed.
const baselineLead = 7 * 24 * time.Hour

// HistoryService rebuilds derived views purely from the ledger tables. It
// performs no writes and tolerates live ratings that are marginally ahead of
// the audit trail.
type HistoryService struct {
	repos *repository.Repositories
}

func NewHistoryService(repos *repository.Repositories) *HistoryService {
	return &HistoryService{repos: repos}
}

// PlayerRef is the minimal player identity embedded in history payloads.
type PlayerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type MatchHistoryEntry struct {
	MatchID    uuid.UUID          `json:"matchId"`
	Date       time.Time          `json:"date"`
	Result     domain.MatchResult `json:"result"`
	Scored     int                `json:"scored"`
	Conceded   int                `json:"conceded"`
	EloChange  int                `json:"eloChange"`
	IsDefender bool               `json:"currentPlayerIsDefender"`
	Teammate   PlayerRef          `json:"teammate"`
	Opponents  []PlayerRef        `json:"opponents"`
}

// GetPlayerMatchHistory returns the player's matches newest first. Referenced
// teams and players are collected first and fetched with one IN query per
// table; nothing is looked up per row. An unknown player yields an empty
// slice, not an error.
func (s *HistoryService) GetPlayerMatchHistory(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]MatchHistoryEntry, error) {
	audits, err := s.repos.Audit.ListByPlayer(ctx, playerID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(audits) == 0 {
		return []MatchHistoryEntry{}, nil
	}

	teamIDs := make([]uuid.UUID, 0, len(audits)*2)
	seenTeams := make(map[uuid.UUID]struct{})
	for _, a := range audits {
		for _, id := range []uuid.UUID{a.TeamID, a.Match.OpponentOf(a.TeamID)} {
			if _, ok := seenTeams[id]; !ok {
				seenTeams[id] = struct{}{}
				teamIDs = append(teamIDs, id)
			}
		}
	}
	teams, err := s.repos.Team.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	teamsByID := make(map[uuid.UUID]*domain.Team, len(teams))
	playerIDs := make([]uuid.UUID, 0, len(teams)*2)
	seenPlayers := make(map[uuid.UUID]struct{})
	for _, t := range teams {
		teamsByID[t.ID] = t
		for _, id := range []uuid.UUID{t.DefenderID, t.AttackerID} {
			if _, ok := seenPlayers[id]; !ok {
				seenPlayers[id] = struct{}{}
				playerIDs = append(playerIDs, id)
			}
		}
	}
	players, err := s.repos.Player.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, err
	}
	playersByID := make(map[uuid.UUID]*domain.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	ref := func(id uuid.UUID) PlayerRef {
		if p, ok := playersByID[id]; ok {
			return PlayerRef{ID: id, Name: p.DisplayName}
		}
		return PlayerRef{ID: id}
	}

	entries := make([]MatchHistoryEntry, 0, len(audits))
	for _, a := range audits {
		ownTeam, ok := teamsByID[a.TeamID]
		if !ok {
			continue
		}
		oppTeam, ok := teamsByID[a.Match.OpponentOf(a.TeamID)]
		if !ok {
			continue
		}

		_, change, _ := a.RoleChange()

		entries = append(entries, MatchHistoryEntry{
			MatchID:    a.MatchID,
			Date:       a.Match.PlayedAt,
			Result:     a.Result(),
			Scored:     a.Scored,
			Conceded:   a.Conceded,
			EloChange:  change,
			IsDefender: ownTeam.DefenderID == playerID,
			Teammate:   ref(ownTeam.TeammateOf(playerID)),
			Opponents:  []PlayerRef{ref(oppTeam.DefenderID), ref(oppTeam.AttackerID)},
		})
	}
	return entries, nil
}

type EloPoint struct {
	Timestamp time.Time   `json:"timestamp"`
	Rating    int         `json:"rating"`
	Role      domain.Role `json:"role"`
}

// GetPlayerEloHistory returns the player's rating time-series. Each audit row
// where the requested role's pair changed yields one point; a synthetic
// baseline one week before the first rated match carries the pre-history
// rating, and a trailing point carries the live rating. role == nil returns
// both roles. Points are deduplicated by (timestamp, role), last value wins.
func (s *HistoryService) GetPlayerEloHistory(ctx context.Context, playerID uuid.UUID, role *domain.Role) ([]EloPoint, error) {
	player, err := s.repos.Player.GetByID(ctx, playerID)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		return []EloPoint{}, nil
	}
	if err != nil {
		return nil, err
	}

	audits, err := s.repos.Audit.ListByPlayerAsc(ctx, playerID)
	if err != nil {
		return nil, err
	}

	roles := domain.AllRoles
	if role != nil {
		roles = []domain.Role{*role}
	}

	points := make([]EloPoint, 0, len(audits)+2*len(roles))
	for _, r := range roles {
		series := make([]EloPoint, 0, len(audits)+2)
		for _, a := range audits {
			old, updated := a.EloFor(r)
			if old == updated {
				continue
			}
			if len(series) == 0 {
				series = append(series, EloPoint{
					Timestamp: a.Match.PlayedAt.Add(-baselineLead),
					Rating:    old,
					Role:      r,
				})
			}
			point := EloPoint{Timestamp: a.Match.PlayedAt, Rating: updated, Role: r}
			if last := len(series) - 1; series[last].Timestamp.Unix() == point.Timestamp.Unix() {
				series[last] = point
			} else {
				series = append(series, point)
			}
		}
		if len(series) == 0 {
			continue
		}
		now := EloPoint{Timestamp: time.Now(), Rating: player.EloFor(r), Role: r}
		if last := len(series) - 1; series[last].Timestamp.Unix() == now.Timestamp.Unix() {
			series[last] = now
		} else {
			series = append(series, now)
		}
		points = append(points, series...)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points, nil
}

type HeadToHeadEntry struct {
	MatchID       uuid.UUID          `json:"matchId"`
	Date          time.Time          `json:"date"`
	SameTeam      bool               `json:"sameTeam"`
	PlayerAResult domain.MatchResult `json:"playerAResult"`
	PlayerBResult domain.MatchResult `json:"playerBResult"`
	PlayerARole   domain.Role        `json:"playerARole"`
	PlayerBRole   domain.Role        `json:"playerBRole"`
	// TeamAScore and TeamAConceded describe the match from player A's side;
	// B's team score is TeamAScore when the two shared a team and
	// TeamAConceded otherwise.
	TeamAScore    int `json:"teamAScore"`
	TeamAConceded int `json:"teamAConceded"`
}

// GetHeadToHead returns the matches both players appeared in, newest first,
// split into same-team and opposing-team entries. limit <= 0 returns all.
func (s *HistoryService) GetHeadToHead(ctx context.Context, playerAID, playerBID uuid.UUID, limit int) ([]HeadToHeadEntry, error) {
	auditsA, err := s.repos.Audit.ListByPlayer(ctx, playerAID, 0, 0)
	if err != nil {
		return nil, err
	}
	auditsB, err := s.repos.Audit.ListByPlayer(ctx, playerBID, 0, 0)
	if err != nil {
		return nil, err
	}

	byMatchB := make(map[uuid.UUID]*domain.MatchPlayerAudit, len(auditsB))
	for _, b := range auditsB {
		byMatchB[b.MatchID] = b
	}

	type pair struct {
		a *domain.MatchPlayerAudit
		b *domain.MatchPlayerAudit
	}
	shared := make([]pair, 0)
	teamIDs := make([]uuid.UUID, 0)
	seenTeams := make(map[uuid.UUID]struct{})
	for _, a := range auditsA {
		b, ok := byMatchB[a.MatchID]
		if !ok {
			continue
		}
		shared = append(shared, pair{a: a, b: b})
		for _, id := range []uuid.UUID{a.TeamID, b.TeamID} {
			if _, dup := seenTeams[id]; !dup {
				seenTeams[id] = struct{}{}
				teamIDs = append(teamIDs, id)
			}
		}
		if limit > 0 && len(shared) == limit {
			break
		}
	}
	if len(shared) == 0 {
		return []HeadToHeadEntry{}, nil
	}

	teams, err := s.repos.Team.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	teamsByID := make(map[uuid.UUID]*domain.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}

	entries := make([]HeadToHeadEntry, 0, len(shared))
	for _, p := range shared {
		entry := HeadToHeadEntry{
			MatchID:       p.a.MatchID,
			Date:          p.a.Match.PlayedAt,
			SameTeam:      p.a.TeamID == p.b.TeamID,
			PlayerAResult: p.a.Result(),
			PlayerBResult: p.b.Result(),
			TeamAScore:    p.a.Scored,
			TeamAConceded: p.a.Conceded,
		}
		if teamA, ok := teamsByID[p.a.TeamID]; ok {
			entry.PlayerARole, _ = teamA.RoleOf(playerAID)
		}
		if teamB, ok := teamsByID[p.b.TeamID]; ok {
			entry.PlayerBRole, _ = teamB.RoleOf(playerBID)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
