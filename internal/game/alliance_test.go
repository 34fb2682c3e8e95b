package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllianceSplitBattleRoyale(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 1)
	r.GameMode = ModeBattleRoyale

	cases := []struct {
		n, majority, minority int
	}{
		{4, 3, 1},
		{5, 3, 2},
		{6, 4, 2},
		{7, 4, 3},
		{8, 5, 3},
		{9, 5, 4},
		{10, 6, 4},
	}
	for _, tc := range cases {
		maj, min := r.allianceSplit(tc.n)
		require.Equal(t, tc.majority, maj, "majority for n=%d", tc.n)
		require.Equal(t, tc.minority, min, "minority for n=%d", tc.n)
		require.Equal(t, tc.n, maj+min)
	}
}

func TestAllianceSplitLionsVsSnakes(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 1)
	r.GameMode = ModeLionsVsSnakes

	cases := []struct {
		n, majority, minority int
	}{
		{4, 3, 1},
		{5, 3, 2},
		{6, 4, 2},
		{7, 4, 3},
		{8, 5, 3},
		{10, 6, 4},
		{12, 6, 4},
	}
	for _, tc := range cases {
		maj, min := r.allianceSplit(tc.n)
		require.Equal(t, tc.majority, maj, "majority for n=%d", tc.n)
		require.Equal(t, tc.minority, min, "minority for n=%d", tc.n)
	}
}

func TestAllianceSplitNineIsCoinFlip(t *testing.T) {
	t.Parallel()

	seen := map[int]bool{}
	for seed := int64(0); seed < 32; seed++ {
		r := newTestRoom(t, seed)
		r.GameMode = ModeLionsVsSnakes
		maj, min := r.allianceSplit(9)
		require.Equal(t, 9, maj+min)
		require.Contains(t, []int{5, 6}, maj)
		seen[maj] = true
	}
	require.True(t, seen[5] && seen[6], "both 5/4 and 6/3 outcomes should occur across seeds")
}

func TestAssignAlliancesSizes(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 7)
	ids := joinReadyPlayers(t, r, 8)

	r.assignAlliances(ids, 5)
	maj, min := countAlliances(r)
	require.Equal(t, 5, maj)
	require.Equal(t, 3, min)
}

func TestAssignNewMotifsDistinctAndMarked(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 3)

	r.assignNewMotifs()
	majMotif := r.AllianceMotifs[AllianceMajority]
	minMotif := r.AllianceMotifs[AllianceMinority]

	require.NotEmpty(t, majMotif)
	require.NotEmpty(t, minMotif)
	require.NotEqual(t, majMotif, minMotif)
	require.True(t, r.UsedMotifs[majMotif])
	require.True(t, r.UsedMotifs[minMotif])
	require.NotEmpty(t, r.AllianceKeywords[AllianceMajority])
	require.NotEmpty(t, r.AllianceKeywords[AllianceMinority])
}

func TestAssignNewMotifsResetsWhenExhausted(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 3)

	// Mark all but one motif used; the next assignment needs two, so the
	// used set must reset and both slots still fill.
	for i := 0; i < len(r.pool.Motifs)-1; i++ {
		r.UsedMotifs[r.pool.Motifs[i].Text] = true
	}

	r.assignNewMotifs()
	require.NotEmpty(t, r.AllianceMotifs[AllianceMajority])
	require.NotEmpty(t, r.AllianceMotifs[AllianceMinority])
	require.NotEqual(t, r.AllianceMotifs[AllianceMajority], r.AllianceMotifs[AllianceMinority])
	// Reset leaves only the two freshly assigned motifs marked.
	require.Len(t, r.UsedMotifs, 2)
}

func TestRecountAlliancesMatchesActiveCount(t *testing.T) {
	t.Parallel()
	r, ids := startedRoom(t, 11, ModeLionsVsSnakes, 7)

	r.Players[ids[2]].IsEliminated = true
	r.recountAlliances()

	require.Equal(t, len(r.ActivePlayerIDs()), r.RemainingMajority+r.RemainingMinority)
}
