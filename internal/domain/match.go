package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MatchResult is a player's outcome in one match.
type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultDraw MatchResult = "draw"
	ResultLoss MatchResult = "loss"
)

// Match is one recorded game between the white and blue teams. Rows are
// immutable once written; corrections happen by recording a new match, never
// by editing history.
type Match struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	WhiteTeamID uuid.UUID      `json:"whiteTeamId" gorm:"type:uuid;not null"`
	BlueTeamID  uuid.UUID      `json:"blueTeamId" gorm:"type:uuid;not null"`
	WhiteScore  int            `json:"whiteScore" gorm:"not null"`
	BlueScore   int            `json:"blueScore" gorm:"not null"`
	PlayedAt    time.Time      `json:"playedAt" gorm:"not null;index"`
	RatingNotes datatypes.JSON `json:"ratingNotes" gorm:"type:jsonb;default:'[]'"`
	CreatedAt   time.Time      `json:"createdAt"`

	// Relations
	WhiteTeam *Team `json:"whiteTeam,omitempty" gorm:"foreignKey:WhiteTeamID"`
	BlueTeam  *Team `json:"blueTeam,omitempty" gorm:"foreignKey:BlueTeamID"`
}

// TableName returns the table name for GORM
func (Match) TableName() string {
	return "matches"
}

// IsDraw reports whether the match ended level.
func (m *Match) IsDraw() bool {
	return m.WhiteScore == m.BlueScore
}

// ScoreFor returns (own, opposing) goals from the given team's perspective.
func (m *Match) ScoreFor(teamID uuid.UUID) (int, int) {
	if teamID == m.WhiteTeamID {
		return m.WhiteScore, m.BlueScore
	}
	return m.BlueScore, m.WhiteScore
}

// OpponentOf returns the id of the team that faced the given team.
func (m *Match) OpponentOf(teamID uuid.UUID) uuid.UUID {
	if teamID == m.WhiteTeamID {
		return m.BlueTeamID
	}
	return m.WhiteTeamID
}

// ResultFor classifies the match from the given team's perspective.
func (m *Match) ResultFor(teamID uuid.UUID) MatchResult {
	own, opp := m.ScoreFor(teamID)
	switch {
	case own > opp:
		return ResultWin
	case own < opp:
		return ResultLoss
	}
	return ResultDraw
}

// MatchPlayerAudit is the per-player ledger row, four per match. It carries
// both rating pairs even though only the pair matching the player's role in
// that match changes; the off-role pair is written equal to the player's
// current rating at submission time. Readers must derive the effective role
// from whichever pair differs (see RoleChange) so the stored shape stays
// read-compatible with existing data.
type MatchPlayerAudit struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MatchID       uuid.UUID `json:"matchId" gorm:"type:uuid;not null;index"`
	TeamID        uuid.UUID `json:"teamId" gorm:"type:uuid;not null"`
	PlayerID      uuid.UUID `json:"playerId" gorm:"type:uuid;not null;index"`
	Scored        int       `json:"scored" gorm:"not null"`
	Conceded      int       `json:"conceded" gorm:"not null"`
	OldDefenseElo int       `json:"oldDefenseElo" gorm:"not null"`
	NewDefenseElo int       `json:"newDefenseElo" gorm:"not null"`
	OldOffenseElo int       `json:"oldOffenseElo" gorm:"not null"`
	NewOffenseElo int       `json:"newOffenseElo" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`

	// Relations
	Match  *Match  `json:"match,omitempty" gorm:"foreignKey:MatchID"`
	Team   *Team   `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Player *Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
}

// TableName returns the table name for GORM
func (MatchPlayerAudit) TableName() string {
	return "match_player_audits"
}

// Result classifies the row's match from the player's perspective. Scored and
// conceded are team-level totals, so the comparison works from the row alone.
func (a *MatchPlayerAudit) Result() MatchResult {
	switch {
	case a.Scored > a.Conceded:
		return ResultWin
	case a.Scored < a.Conceded:
		return ResultLoss
	}
	return ResultDraw
}

// RoleChange returns the role whose rating pair differs in this row and the
// signed change. ok is false when neither pair moved (a draw or a zero-delta
// beginner draw), in which case the rating change for the row is zero.
func (a *MatchPlayerAudit) RoleChange() (role Role, change int, ok bool) {
	if a.NewDefenseElo != a.OldDefenseElo {
		return RoleDefense, a.NewDefenseElo - a.OldDefenseElo, true
	}
	if a.NewOffenseElo != a.OldOffenseElo {
		return RoleOffense, a.NewOffenseElo - a.OldOffenseElo, true
	}
	return "", 0, false
}

// EloFor returns the row's before/after pair for the given role.
func (a *MatchPlayerAudit) EloFor(role Role) (old, new int) {
	if role == RoleDefense {
		return a.OldDefenseElo, a.NewDefenseElo
	}
	return a.OldOffenseElo, a.NewOffenseElo
}
