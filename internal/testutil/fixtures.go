package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tablekick/scoreboard/internal/domain"
	"gorm.io/gorm"
)

// PlayerBuilder helps create test players with sensible defaults
type PlayerBuilder struct {
	player *domain.Player
}

func NewPlayerBuilder() *PlayerBuilder {
	return &PlayerBuilder{
		player: &domain.Player{
			DisplayName: "player-" + uuid.New().String()[:8],
			EloDefense:  domain.DefaultElo,
			EloOffense:  domain.DefaultElo,
		},
	}
}

func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.player.DisplayName = name
	return b
}

// WithElo sets both role ratings at once.
func (b *PlayerBuilder) WithElo(defense, offense int) *PlayerBuilder {
	b.player.EloDefense = defense
	b.player.EloOffense = offense
	return b
}

func (b *PlayerBuilder) Beginner() *PlayerBuilder {
	b.player.Beginner = true
	return b
}

// Build persists the player and returns it
func (b *PlayerBuilder) Build(t *testing.T, db *gorm.DB) *domain.Player {
	t.Helper()

	if err := db.Create(b.player).Error; err != nil {
		t.Fatalf("failed to create test player: %v", err)
	}
	return b.player
}

// FourPlayers creates a full lineup at the default rating.
func FourPlayers(t *testing.T, db *gorm.DB) (wd, wa, bd, ba *domain.Player) {
	t.Helper()

	wd = NewPlayerBuilder().WithName("white-defender-" + uuid.New().String()[:8]).Build(t, db)
	wa = NewPlayerBuilder().WithName("white-attacker-" + uuid.New().String()[:8]).Build(t, db)
	bd = NewPlayerBuilder().WithName("blue-defender-" + uuid.New().String()[:8]).Build(t, db)
	ba = NewPlayerBuilder().WithName("blue-attacker-" + uuid.New().String()[:8]).Build(t, db)
	return wd, wa, bd, ba
}

// AuthToken mints a token the way the identity service would, signed with the
// test secret.
func AuthToken(t *testing.T, secret string, userID uuid.UUID) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}
