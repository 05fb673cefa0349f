package rating

// Parameters is the tuning bundle exposed to the settings UI and threaded
// explicitly into Compute. Callers must never share a mutable global instance;
// take a copy from DefaultParameters and pass it down.
//
// NOTE: the current algorithm is a fixed gap-lookup table with a beginner
// short-circuit and a protection rule. None of the fields below are read by
// it yet. They are accepted and persisted so that tuning survives a future
// algorithm change, but changing them today has no effect on computed deltas.
// Whoever evolves the algorithm owns deciding their semantics.
type Parameters struct {
	BaseKFactor              int     `json:"baseKFactor"`
	ScoreDiffMultiplier      float64 `json:"scoreDiffMultiplier"`
	SkillGapPenalty          float64 `json:"skillGapPenalty"`
	BalancedTeamBonus        int     `json:"balancedTeamBonus"`
	AggressiveScoreThreshold int     `json:"aggressiveScoreThreshold"`
	MaxEloChange             int     `json:"maxEloChange"`
}

// DefaultParameters returns the stock tuning values.
func DefaultParameters() Parameters {
	return Parameters{
		BaseKFactor:              50,
		ScoreDiffMultiplier:      1.0,
		SkillGapPenalty:          0.5,
		BalancedTeamBonus:        2,
		AggressiveScoreThreshold: 8,
		MaxEloChange:             100,
	}
}
