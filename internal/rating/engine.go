// Package rating computes signed rating deltas for a recorded match. It is
// pure: no storage, no clock, no package state. The ledger feeds it current
// ratings and the final score and persists whatever comes back.
package rating

import (
	"fmt"
	"math"
)

// Weighting of the two ratings that make up a team's strength. The weaker
// player dominates the estimate: a strong defender cannot carry a weak
// attacker at the table.
const (
	strongerWeight = 0.3
	weakerWeight   = 0.7
)

// protectionThreshold is the strength gap beyond which the losing underdog
// has its delta halved.
const protectionThreshold = 75.0

// baseDeltaByGap maps a goal gap of 1..9 to the base delta. A gap of ten or
// more (a sweep) is worth 100.
var baseDeltaByGap = [...]int{5, 10, 15, 20, 25, 30, 40, 50, 60}

const sweepDelta = 100

// PlayerInput is one participant's state going into the match. Elo is the
// rating in the role the player occupies in this match (defense rating for
// the defender, offense rating for the attacker).
type PlayerInput struct {
	Name     string
	Elo      int
	Beginner bool
}

// TeamInput is one side of the match in role order.
type TeamInput struct {
	Defender PlayerInput
	Attacker PlayerInput
}

// Input is everything Compute needs for one match.
type Input struct {
	White      TeamInput
	Blue       TeamInput
	WhiteScore int
	BlueScore  int
}

// Outcome carries the four signed deltas plus the ordered explanation trail
// shown in audit and debugging UIs.
type Outcome struct {
	WhiteDefender int
	WhiteAttacker int
	BlueDefender  int
	BlueAttacker  int
	Explanation   []string
}

// Compute applies the rating rules in order: beginner short-circuit, team
// strength, base delta from the goal gap, underdog protection, assignment.
// params is accepted for forward-compatibility; see Parameters.
func Compute(in Input, params Parameters) Outcome {
	if in.White.Defender.Beginner || in.White.Attacker.Beginner ||
		in.Blue.Defender.Beginner || in.Blue.Attacker.Beginner {
		return computeBeginner(in)
	}

	whiteStrength := teamStrength(in.White)
	blueStrength := teamStrength(in.Blue)

	out := Outcome{}
	out.explainf("white strength %.1f (%s defense %d, %s offense %d)",
		whiteStrength, in.White.Defender.Name, in.White.Defender.Elo,
		in.White.Attacker.Name, in.White.Attacker.Elo)
	out.explainf("blue strength %.1f (%s defense %d, %s offense %d)",
		blueStrength, in.Blue.Defender.Name, in.Blue.Defender.Elo,
		in.Blue.Attacker.Name, in.Blue.Attacker.Elo)

	if in.WhiteScore == in.BlueScore {
		out.explainf("draw %d-%d: no rating changes", in.WhiteScore, in.BlueScore)
		return out
	}

	gap := in.WhiteScore - in.BlueScore
	if gap < 0 {
		gap = -gap
	}
	delta := baseDelta(gap)
	out.explainf("score %d-%d, goal gap %d, base delta %d", in.WhiteScore, in.BlueScore, gap, delta)

	strengthGap := math.Abs(whiteStrength - blueStrength)
	whiteWon := in.WhiteScore > in.BlueScore
	weakerLost := (whiteWon && blueStrength < whiteStrength) ||
		(!whiteWon && whiteStrength < blueStrength)
	if strengthGap > protectionThreshold && weakerLost {
		halved := int(math.Round(float64(delta) * 0.5))
		out.explainf("strength gap %.1f exceeds %.0f and the weaker team lost: delta halved %d -> %d",
			strengthGap, protectionThreshold, delta, halved)
		delta = halved
	} else {
		out.explainf("strength gap %.1f: no protection applied", strengthGap)
	}

	if whiteWon {
		out.WhiteDefender, out.WhiteAttacker = delta, delta
		out.BlueDefender, out.BlueAttacker = -delta, -delta
		out.explainf("white wins: white players +%d, blue players -%d", delta, delta)
	} else {
		out.WhiteDefender, out.WhiteAttacker = -delta, -delta
		out.BlueDefender, out.BlueAttacker = delta, delta
		out.explainf("blue wins: blue players +%d, white players -%d", delta, delta)
	}

	return out
}

// computeBeginner applies the flat scoring used whenever any participant is
// still flagged as a beginner: the winning pair gains one point each, the
// losing pair loses one, and a draw moves nothing.
func computeBeginner(in Input) Outcome {
	out := Outcome{}
	switch {
	case in.WhiteScore > in.BlueScore:
		out.WhiteDefender, out.WhiteAttacker = 1, 1
		out.BlueDefender, out.BlueAttacker = -1, -1
		out.explainf("beginner match %d-%d: white players +1, blue players -1", in.WhiteScore, in.BlueScore)
	case in.WhiteScore < in.BlueScore:
		out.WhiteDefender, out.WhiteAttacker = -1, -1
		out.BlueDefender, out.BlueAttacker = 1, 1
		out.explainf("beginner match %d-%d: blue players +1, white players -1", in.WhiteScore, in.BlueScore)
	default:
		out.explainf("beginner match drawn %d-%d: no rating changes", in.WhiteScore, in.BlueScore)
	}
	return out
}

// teamStrength blends the two role-scoped ratings, weighting the weaker
// player more heavily.
func teamStrength(team TeamInput) float64 {
	a := float64(team.Defender.Elo)
	b := float64(team.Attacker.Elo)
	return math.Max(a, b)*strongerWeight + math.Min(a, b)*weakerWeight
}

// baseDelta maps the goal gap through the fixed lookup table. gap must be
// positive.
func baseDelta(gap int) int {
	if gap >= 10 {
		return sweepDelta
	}
	return baseDeltaByGap[gap-1]
}

func (o *Outcome) explainf(format string, args ...interface{}) {
	o.Explanation = append(o.Explanation, fmt.Sprintf(format, args...))
}
