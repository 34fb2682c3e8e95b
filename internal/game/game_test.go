package game

import (
	"io"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/masquerade/internal/content"
	"github.com/lox/masquerade/internal/randutil"
)

func newTestRoom(t *testing.T, seed int64) *Room {
	t.Helper()
	pool, err := content.Default()
	require.NoError(t, err)
	return NewRoom("TEST1", pool, randutil.New(seed), log.New(io.Discard))
}

// joinReadyPlayers joins n human players p1..pn and marks them ready.
func joinReadyPlayers(t *testing.T, r *Room, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		id := "p" + strconv.Itoa(i)
		require.NoError(t, r.Join(id, "Player "+strconv.Itoa(i), ""))
		r.Players[id].Ready = true
		ids = append(ids, id)
	}
	return ids
}

// startedRoom returns a room with n ready players already advanced out of
// the lobby into RoleReveal.
func startedRoom(t *testing.T, seed int64, mode GameMode, n int) (*Room, []string) {
	t.Helper()
	r := newTestRoom(t, seed)
	ids := joinReadyPlayers(t, r, n)
	require.NoError(t, r.SetGameMode(r.HostID, mode))
	require.NoError(t, r.AdvancePhase(r.HostID))
	require.Equal(t, PhaseRoleReveal, r.Phase)
	return r, ids
}

// advanceTo drives the host's advance until the room reaches the wanted
// phase, guarding against loops.
func advanceTo(t *testing.T, r *Room, want Phase) {
	t.Helper()
	for i := 0; i < 20; i++ {
		if r.Phase == want {
			return
		}
		require.NoError(t, r.AdvancePhase(r.HostID))
	}
	t.Fatalf("never reached phase %s, stuck in %s", want, r.Phase)
}

// shareAll makes every active player share their first card so the dance
// can complete.
func shareAll(t *testing.T, r *Room) {
	t.Helper()
	for _, id := range r.ActivePlayerIDs() {
		if _, done := r.SharedCards[id]; done {
			continue
		}
		p := r.Players[id]
		require.NotEmpty(t, p.Hand)
		require.NoError(t, r.ShareCard(id, p.Hand[0].ID))
	}
}

// countAlliances tallies active players per alliance.
func countAlliances(r *Room) (majority, minority int) {
	for _, id := range r.ActivePlayerIDs() {
		switch r.Players[id].Alliance {
		case AllianceMajority:
			majority++
		case AllianceMinority:
			minority++
		}
	}
	return majority, minority
}
