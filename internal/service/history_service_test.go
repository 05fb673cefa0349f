package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablekick/scoreboard/internal/domain"
	"github.com/tablekick/scoreboard/internal/rating"
	"github.com/tablekick/scoreboard/internal/repository/postgres"
	"github.com/tablekick/scoreboard/internal/service"
	"github.com/tablekick/scoreboard/internal/testutil"
)

func TestHistoryService(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ledger := service.NewLedgerService(repos, rating.DefaultParameters(), zerolog.Nop())
	history := service.NewHistoryService(repos)
	ctx := context.Background()

	submit := func(t *testing.T, wd, wa, bd, ba uuid.UUID, whiteScore, blueScore int, playedAt time.Time) *service.SubmitMatchResult {
		t.Helper()
		result, err := ledger.Submit(ctx, service.SubmitMatchInput{
			WhiteDefenderID: wd,
			WhiteAttackerID: wa,
			BlueDefenderID:  bd,
			BlueAttackerID:  ba,
			WhiteScore:      whiteScore,
			BlueScore:       blueScore,
			PlayedAt:        playedAt,
		})
		require.NoError(t, err)
		return result
	}

	t.Run("match history describes the match from the player's side", func(t *testing.T) {
		testDB.Truncate(t)

		wd, wa, bd, ba := testutil.FourPlayers(t, testDB.DB)
		playedAt := time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC)
		submit(t, wd.ID, wa.ID, bd.ID, ba.ID, 10, 6, playedAt)

		entries, err := history.GetPlayerMatchHistory(ctx, wd.ID, 0, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		entry := entries[0]
		assert.Equal(t, domain.ResultWin, entry.Result)
		assert.Equal(t, 10, entry.Scored)
		assert.Equal(t, 6, entry.Conceded)
		assert.Equal(t, 20, entry.EloChange)
		assert.True(t, entry.IsDefender)
		assert.Equal(t, wa.ID, entry.Teammate.ID)
		assert.Equal(t, wa.DisplayName, entry.Teammate.Name)
		require.Len(t, entry.Opponents, 2)
		assert.Equal(t, bd.ID, entry.Opponents[0].ID)
		assert.Equal(t, ba.ID, entry.Opponents[1].ID)

		// The same match seen from the losing attacker.
		entries, err = history.GetPlayerMatchHistory(ctx, ba.ID, 0, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.ResultLoss, entries[0].Result)
		assert.Equal(t, 6, entries[0].Scored)
		assert.Equal(t, -20, entries[0].EloChange)
		assert.False(t, entries[0].IsDefender)
	})

	t.Run("match history pages newest first", func(t *testing.T) {
		testDB.Truncate(t)

		wd, wa, bd, ba := testutil.FourPlayers(t, testDB.DB)
		older := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
		newer := time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC)
		submit(t, wd.ID, wa.ID, bd.ID, ba.ID, 10, 4, older)
		newest := submit(t, wd.ID, wa.ID, bd.ID, ba.ID, 3, 10, newer)

		entries, err := history.GetPlayerMatchHistory(ctx, wd.ID, 1, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, newest.MatchID, entries[0].MatchID)
		assert.Equal(t, domain.ResultLoss, entries[0].Result)

		entries, err = history.GetPlayerMatchHistory(ctx, wd.ID, 1, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Date.Equal(older))
	})

	t.Run("unknown player has an empty history", func(t *testing.T) {
		testDB.Truncate(t)

		entries, err := history.GetPlayerMatchHistory(ctx, uuid.New(), 0, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("elo history reconstructs the rating curve", func(t *testing.T) {
		testDB.Truncate(t)

		wd, wa, bd, ba := testutil.FourPlayers(t, testDB.DB)
		first := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
		second := time.Date(2025, 10, 27, 12, 0, 0, 0, time.UTC)
		submit(t, wd.ID, wa.ID, bd.ID, ba.ID, 10, 6, first) // +20 defense
		submit(t, wd.ID, wa.ID, bd.ID, ba.ID, 4, 10, second)

		role := domain.RoleDefense
		points, err := history.GetPlayerEloHistory(ctx, wd.ID, &role)
		require.NoError(t, err)
		require.Len(t, points, 4, "baseline, two matches, live rating")

		baseline := points[0]
		assert.Equal(t, domain.DefaultElo, baseline.Rating)
		assert.True(t, baseline.Timestamp.Equal(first.Add(-7*24*time.Hour)))
		assert.Equal(t, 1420, points[1].Rating)

		// The curve ends at the live rating and its total movement matches
		// the per-match changes.
		player, err := repos.Player.GetByID(ctx, wd.ID)
		require.NoError(t, err)
		live := points[len(points)-1]
		assert.Equal(t, player.EloDefense, live.Rating)

		entries, err := history.GetPlayerMatchHistory(ctx, wd.ID, 0, 0)
		require.NoError(t, err)
		sum := 0
		for _, e := range entries {
			sum += e.EloChange
		}
		assert.Equal(t, live.Rating-baseline.Rating, sum)

		for i := 1; i < len(points); i++ {
			assert.False(t, points[i].Timestamp.Before(points[i-1].Timestamp))
		}
	})

	t.Run("elo history is empty for a role never played", func(t *testing.T) {
		testDB.Truncate(t)

		wd, wa, bd, ba := testutil.FourPlayers(t, testDB.DB)
		submit(t, wd.ID, wa.ID, bd.ID, ba.ID, 10, 6, time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC))

		role := domain.RoleOffense
		points, err := history.GetPlayerEloHistory(ctx, wd.ID, &role)
		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("elo history for an unknown player is empty", func(t *testing.T) {
		testDB.Truncate(t)

		points, err := history.GetPlayerEloHistory(ctx, uuid.New(), nil)
		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("head to head splits shared and opposing matches", func(t *testing.T) {
		testDB.Truncate(t)

		a := testutil.NewPlayerBuilder().WithName("alice").Build(t, testDB.DB)
		b := testutil.NewPlayerBuilder().WithName("bob").Build(t, testDB.DB)
		c := testutil.NewPlayerBuilder().WithName("carol").Build(t, testDB.DB)
		d := testutil.NewPlayerBuilder().WithName("dave").Build(t, testDB.DB)

		together := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
		against := time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC)
		submit(t, a.ID, b.ID, c.ID, d.ID, 10, 5, together)
		submit(t, a.ID, c.ID, b.ID, d.ID, 4, 10, against)

		entries, err := history.GetHeadToHead(ctx, a.ID, b.ID, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		// Newest first: the opposing match comes before the shared one.
		opposing := entries[0]
		assert.False(t, opposing.SameTeam)
		assert.Equal(t, domain.ResultLoss, opposing.PlayerAResult)
		assert.Equal(t, domain.ResultWin, opposing.PlayerBResult)
		assert.Equal(t, domain.RoleDefense, opposing.PlayerARole)
		assert.Equal(t, domain.RoleDefense, opposing.PlayerBRole)
		assert.Equal(t, 4, opposing.TeamAScore)
		assert.Equal(t, 10, opposing.TeamAConceded)

		shared := entries[1]
		assert.True(t, shared.SameTeam)
		assert.Equal(t, domain.ResultWin, shared.PlayerAResult)
		assert.Equal(t, domain.ResultWin, shared.PlayerBResult)
		assert.Equal(t, domain.RoleDefense, shared.PlayerARole)
		assert.Equal(t, domain.RoleOffense, shared.PlayerBRole)
	})

	t.Run("head to head of strangers is empty", func(t *testing.T) {
		testDB.Truncate(t)

		wd, wa, bd, ba := testutil.FourPlayers(t, testDB.DB)
		submit(t, wd.ID, wa.ID, bd.ID, ba.ID, 10, 5, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
		outsider := testutil.NewPlayerBuilder().Build(t, testDB.DB)

		entries, err := history.GetHeadToHead(ctx, wd.ID, outsider.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("head to head honors the limit", func(t *testing.T) {
		testDB.Truncate(t)

		wd, wa, bd, ba := testutil.FourPlayers(t, testDB.DB)
		for i := 0; i < 3; i++ {
			playedAt := time.Date(2025, 11, 1+i, 12, 0, 0, 0, time.UTC)
			submit(t, wd.ID, wa.ID, bd.ID, ba.ID, 10, 5, playedAt)
		}

		entries, err := history.GetHeadToHead(ctx, wd.ID, wa.ID, 2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}
