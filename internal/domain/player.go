package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultElo is the rating every player starts with in both roles.
const DefaultElo = 1400

// Player is an entry in the player directory. Rows are created and renamed by
// the external directory service; this system only mutates ratings and the
// aggregate counters, and never deletes a player.
type Player struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DisplayName string    `json:"displayName" gorm:"uniqueIndex;not null"`
	EloOffense  int       `json:"eloOffense" gorm:"not null;default:1400"`
	EloDefense  int       `json:"eloDefense" gorm:"not null;default:1400"`
	Played      int       `json:"played" gorm:"not null;default:0"`
	Wins        int       `json:"wins" gorm:"not null;default:0"`
	Losses      int       `json:"losses" gorm:"not null;default:0"`
	Scored      int       `json:"scored" gorm:"not null;default:0"`
	Conceded    int       `json:"conceded" gorm:"not null;default:0"`
	Beginner    bool      `json:"beginner" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EloFor returns the player's current rating in the given role.
func (p *Player) EloFor(role Role) int {
	if role == RoleDefense {
		return p.EloDefense
	}
	return p.EloOffense
}

// SetEloFor replaces the player's rating in the given role.
func (p *Player) SetEloFor(role Role, elo int) {
	if role == RoleDefense {
		p.EloDefense = elo
	} else {
		p.EloOffense = elo
	}
}
