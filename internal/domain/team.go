package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Team is the durable identity of one ordered (defender, attacker) pairing.
// The pair is content-addressed: at most one row exists per ordered pair,
// enforced by the composite unique index. Swapping roles yields a different
// team.
type Team struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DefenderID uuid.UUID `json:"defenderId" gorm:"type:uuid;not null;uniqueIndex:idx_teams_defender_attacker"`
	AttackerID uuid.UUID `json:"attackerId" gorm:"type:uuid;not null;uniqueIndex:idx_teams_defender_attacker"`
	Name       string    `json:"name" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`

	// Relations
	Defender *Player `json:"defender,omitempty" gorm:"foreignKey:DefenderID"`
	Attacker *Player `json:"attacker,omitempty" gorm:"foreignKey:AttackerID"`
}

// TableName returns the table name for GORM
func (Team) TableName() string {
	return "teams"
}

// HasPlayer reports whether the player is one of the team's two members.
func (t *Team) HasPlayer(playerID uuid.UUID) bool {
	return t.DefenderID == playerID || t.AttackerID == playerID
}

// RoleOf returns the role the player occupies on this team. The second return
// is false when the player is not on the team.
func (t *Team) RoleOf(playerID uuid.UUID) (Role, bool) {
	switch playerID {
	case t.DefenderID:
		return RoleDefense, true
	case t.AttackerID:
		return RoleOffense, true
	}
	return "", false
}

// TeammateOf returns the id of the other member of the team.
func (t *Team) TeammateOf(playerID uuid.UUID) uuid.UUID {
	if t.DefenderID == playerID {
		return t.AttackerID
	}
	return t.DefenderID
}

// GeneratedTeamName builds the display name used when a pairing is first seen.
func GeneratedTeamName(defenderName, attackerName string) string {
	return fmt.Sprintf("%s (D) & %s (O)", defenderName, attackerName)
}
