package rating_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablekick/scoreboard/internal/rating"
)

func team(defElo, offElo int) rating.TeamInput {
	return rating.TeamInput{
		Defender: rating.PlayerInput{Name: "def", Elo: defElo},
		Attacker: rating.PlayerInput{Name: "off", Elo: offElo},
	}
}

func TestCompute_GapTable(t *testing.T) {
	expected := map[int]int{1: 5, 2: 10, 3: 15, 4: 20, 5: 25, 6: 30, 7: 40, 8: 50, 9: 60, 10: 100, 11: 100}

	for gap, want := range expected {
		t.Run(fmt.Sprintf("gap_%d", gap), func(t *testing.T) {
			out := rating.Compute(rating.Input{
				White:      team(1400, 1400),
				Blue:       team(1400, 1400),
				WhiteScore: gap,
				BlueScore:  0,
			}, rating.DefaultParameters())

			assert.Equal(t, want, out.WhiteDefender)
			assert.Equal(t, want, out.WhiteAttacker)
			assert.Equal(t, -want, out.BlueDefender)
			assert.Equal(t, -want, out.BlueAttacker)
		})
	}
}

func TestCompute_ModestGapNoProtection(t *testing.T) {
	// strengths 1429 vs 1400, gap 29 is inside the threshold
	out := rating.Compute(rating.Input{
		White:      team(1450, 1420),
		Blue:       team(1400, 1400),
		WhiteScore: 10,
		BlueScore:  6,
	}, rating.DefaultParameters())

	assert.Equal(t, 20, out.WhiteDefender)
	assert.Equal(t, 20, out.WhiteAttacker)
	assert.Equal(t, -20, out.BlueDefender)
	assert.Equal(t, -20, out.BlueAttacker)
}

func TestCompute_ProtectionHalvesDelta(t *testing.T) {
	// strengths 1600 vs 1400, weaker side loses 9-10: base 5 halves to 3
	// (rounding half away from zero).
	out := rating.Compute(rating.Input{
		White:      team(1600, 1600),
		Blue:       team(1400, 1400),
		WhiteScore: 10,
		BlueScore:  9,
	}, rating.DefaultParameters())

	assert.Equal(t, 3, out.WhiteDefender)
	assert.Equal(t, -3, out.BlueDefender)
}

func TestCompute_ProtectionRoundsHalfUp(t *testing.T) {
	// base 15 halves to 7.5 and rounds to 8
	out := rating.Compute(rating.Input{
		White:      team(1600, 1600),
		Blue:       team(1400, 1400),
		WhiteScore: 3,
		BlueScore:  0,
	}, rating.DefaultParameters())

	assert.Equal(t, 8, out.WhiteDefender)
	assert.Equal(t, -8, out.BlueAttacker)
}

func TestCompute_NoProtectionWhenStrongerLoses(t *testing.T) {
	// The favourites losing is not protected; they eat the full delta.
	out := rating.Compute(rating.Input{
		White:      team(1600, 1600),
		Blue:       team(1400, 1400),
		WhiteScore: 9,
		BlueScore:  10,
	}, rating.DefaultParameters())

	assert.Equal(t, -5, out.WhiteDefender)
	assert.Equal(t, 5, out.BlueDefender)
}

func TestCompute_Draw(t *testing.T) {
	out := rating.Compute(rating.Input{
		White:      team(1900, 1200),
		Blue:       team(1400, 1400),
		WhiteScore: 7,
		BlueScore:  7,
	}, rating.DefaultParameters())

	assert.Zero(t, out.WhiteDefender)
	assert.Zero(t, out.WhiteAttacker)
	assert.Zero(t, out.BlueDefender)
	assert.Zero(t, out.BlueAttacker)
	assert.NotEmpty(t, out.Explanation)
}

func TestCompute_BeginnerShortCircuit(t *testing.T) {
	in := rating.Input{
		White:      team(2000, 2000),
		Blue:       team(1100, 1100),
		WhiteScore: 10,
		BlueScore:  0,
	}
	in.Blue.Attacker.Beginner = true

	out := rating.Compute(in, rating.DefaultParameters())

	// Flat +-1 regardless of the sweep or the rating gap.
	assert.Equal(t, 1, out.WhiteDefender)
	assert.Equal(t, 1, out.WhiteAttacker)
	assert.Equal(t, -1, out.BlueDefender)
	assert.Equal(t, -1, out.BlueAttacker)
	require.Len(t, out.Explanation, 1)
}

func TestCompute_BeginnerDraw(t *testing.T) {
	in := rating.Input{
		White:      team(1400, 1400),
		Blue:       team(1400, 1400),
		WhiteScore: 5,
		BlueScore:  5,
	}
	in.White.Defender.Beginner = true

	out := rating.Compute(in, rating.DefaultParameters())

	assert.Zero(t, out.WhiteDefender)
	assert.Zero(t, out.BlueAttacker)
}

func TestCompute_WeakerPlayerDominatesStrength(t *testing.T) {
	// 1450/1420 blends to 1429: the weaker rating carries 70% of the weight.
	// A team of 1429/1429 must therefore be an exact strength match.
	out := rating.Compute(rating.Input{
		White:      team(1450, 1420),
		Blue:       team(1429, 1429),
		WhiteScore: 1,
		BlueScore:  0,
	}, rating.DefaultParameters())

	assert.Equal(t, 5, out.WhiteDefender)

	found := false
	for _, line := range out.Explanation {
		if line == "strength gap 0.0: no protection applied" {
			found = true
		}
	}
	assert.True(t, found, "expected a zero strength gap in the explanation: %v", out.Explanation)
}

func TestCompute_ExplanationIsOrdered(t *testing.T) {
	out := rating.Compute(rating.Input{
		White:      team(1450, 1420),
		Blue:       team(1400, 1400),
		WhiteScore: 10,
		BlueScore:  6,
	}, rating.DefaultParameters())

	require.Len(t, out.Explanation, 5)
	assert.Contains(t, out.Explanation[0], "white strength 1429.0")
	assert.Contains(t, out.Explanation[1], "blue strength 1400.0")
	assert.Contains(t, out.Explanation[2], "goal gap 4, base delta 20")
	assert.Contains(t, out.Explanation[3], "no protection")
	assert.Contains(t, out.Explanation[4], "white wins")
}
