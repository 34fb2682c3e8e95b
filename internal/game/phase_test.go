package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartGameGates(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 50)
	ids := joinReadyPlayers(t, r, 3)

	require.ErrorIs(t, r.AdvancePhase(ids[1]), ErrNotHost)
	require.ErrorIs(t, r.AdvancePhase(r.HostID), ErrNeedMorePlayers)

	require.NoError(t, r.Join("p4", "Player 4", ""))
	require.ErrorIs(t, r.AdvancePhase(r.HostID), ErrNotAllReady)

	r.Players["p4"].Ready = true
	require.NoError(t, r.AdvancePhase(r.HostID))
	require.Equal(t, PhaseRoleReveal, r.Phase)
}

func TestStartGameDealsAndAssigns(t *testing.T) {
	t.Parallel()
	r, ids := startedRoom(t, 51, ModeBattleRoyale, 6)

	require.Equal(t, 1, r.Round)
	maj, min := countAlliances(r)
	require.Equal(t, 4, maj)
	require.Equal(t, 2, min)

	seen := map[string]bool{}
	for _, id := range ids {
		p := r.Players[id]
		require.Len(t, p.Hand, handImageCards+handWordCards)
		images, words := 0, 0
		for _, c := range p.Hand {
			require.False(t, seen[c.ID], "card ids are unique across hands")
			seen[c.ID] = true
			switch c.Type {
			case CardImage:
				images++
			case CardWord:
				words++
			}
		}
		require.Equal(t, handImageCards, images)
		require.Equal(t, handWordCards, words)
	}

	require.NotEmpty(t, r.AllianceMotifs[AllianceMajority])
	require.NotEmpty(t, r.AllianceMotifs[AllianceMinority])
}

func TestPhaseWalkThroughFirstRound(t *testing.T) {
	t.Parallel()
	r, _ := startedRoom(t, 52, ModeLionsVsSnakes, 5)

	want := []Phase{PhaseDealing, PhaseMotifReveal, PhasePrivateDance, PhaseGossipSalon, PhaseEliminationVote}
	for _, phase := range want {
		require.NoError(t, r.AdvancePhase(r.HostID))
		require.Equal(t, phase, r.Phase)
	}
}

func TestPrivateDancePairsEveryActivePlayer(t *testing.T) {
	t.Parallel()
	r, ids := startedRoom(t, 53, ModeBattleRoyale, 7)
	advanceTo(t, r, PhasePrivateDance)

	require.Len(t, r.DancePairs, len(ids))
	require.Empty(t, r.SharedCards)
}

func TestJoinRejectedOnceStarted(t *testing.T) {
	t.Parallel()
	r, _ := startedRoom(t, 54, ModeBattleRoyale, 4)

	require.ErrorIs(t, r.Join("late", "Latecomer", ""), ErrGameInProgress)
	require.NoError(t, r.Join("p1", "Player 1", ""), "members may always re-join")
}

func TestGameOverIsTerminal(t *testing.T) {
	t.Parallel()
	r, _ := startedRoom(t, 55, ModeBattleRoyale, 4)
	advanceTo(t, r, PhaseEliminationVote)

	r.applyElimination(r.ActivePlayerIDs()[0])
	r.applyElimination(r.ActivePlayerIDs()[0])
	require.Equal(t, PhaseGameOver, r.Phase)

	require.NoError(t, r.AdvancePhase(r.HostID))
	require.Equal(t, PhaseGameOver, r.Phase)
}

func TestEndGameResetsToLobby(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 56)
	ids := joinReadyPlayers(t, r, 4)
	require.NoError(t, r.AddBot(r.HostID))
	require.NoError(t, r.AdvancePhase(r.HostID))
	advanceTo(t, r, PhaseEliminationVote)
	r.applyElimination(ids[1])

	require.ErrorIs(t, r.EndGame(ids[1]), ErrNotHost)
	require.NoError(t, r.EndGame(r.HostID))

	require.Equal(t, PhaseLobby, r.Phase)
	require.Equal(t, 0, r.Round)
	require.Empty(t, r.EliminatedThisRound)
	require.Empty(t, r.Winner)
	require.Empty(t, r.CoWinners)
	require.Empty(t, r.DancePairs)
	require.Empty(t, r.Votes)
	require.Len(t, r.Players, 5, "roster survives the reset")

	for _, p := range r.Players {
		require.False(t, p.IsEliminated)
		require.Empty(t, p.Hand)
		require.Empty(t, p.Journal)
		require.Empty(t, p.Alliance)
		require.Equal(t, p.IsBot, p.Ready, "bots come back ready, humans do not")
	}
}

func TestHostReassignedOnLeave(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 57)
	ids := joinReadyPlayers(t, r, 3)
	require.Equal(t, ids[0], r.HostID)

	require.NoError(t, r.Leave(ids[0]))
	require.Equal(t, ids[1], r.HostID)
}

func TestLeaveMidGameRejected(t *testing.T) {
	t.Parallel()
	r, ids := startedRoom(t, 58, ModeBattleRoyale, 4)

	require.ErrorIs(t, r.Leave(ids[2]), ErrWrongPhase)

	// A disconnect mid-game keeps the player in the roster.
	r.Disconnect(ids[2])
	require.Contains(t, r.Players, ids[2])
}

func TestDisconnectInLobbyRemoves(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 59)
	ids := joinReadyPlayers(t, r, 3)

	r.Disconnect(ids[0])
	require.NotContains(t, r.Players, ids[0])
	require.Equal(t, ids[1], r.HostID)
}

func TestAddBotFillsNameAndAvatar(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 60)
	ids := joinReadyPlayers(t, r, 2)

	require.ErrorIs(t, r.AddBot(ids[1]), ErrNotHost)
	require.NoError(t, r.AddBot(r.HostID))

	var bot *Player
	for _, p := range r.Players {
		if p.IsBot {
			bot = p
		}
	}
	require.NotNil(t, bot)
	require.True(t, bot.Ready)
	require.NotEmpty(t, bot.Name)
	require.NotEmpty(t, bot.Avatar)

	taken := 0
	for _, p := range r.Players {
		if p.Avatar == bot.Avatar {
			taken++
		}
	}
	require.Equal(t, 1, taken, "bot avatar does not collide")
}

func TestAvatarCollisionResolved(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 61)
	require.NoError(t, r.Join("p1", "One", avatars[0]))
	require.NoError(t, r.Join("p2", "Two", avatars[0]))
	require.NoError(t, r.Join("p3", "Three", avatarPlaceholder))

	seen := map[string]bool{}
	for _, p := range r.Players {
		require.False(t, seen[p.Avatar], "avatars are unique")
		seen[p.Avatar] = true
		require.NotEqual(t, avatarPlaceholder, p.Avatar)
	}
}

func TestSettingsAreHostLobbyOnly(t *testing.T) {
	t.Parallel()
	r := newTestRoom(t, 62)
	ids := joinReadyPlayers(t, r, 4)

	require.ErrorIs(t, r.SetGameMode(ids[1], ModeLionsVsSnakes), ErrNotHost)
	require.NoError(t, r.SetGameMode(r.HostID, ModeLionsVsSnakes))
	require.Equal(t, ModeLionsVsSnakes, r.GameMode)
	require.ErrorIs(t, r.SetGameMode(r.HostID, GameMode("Duel")), ErrInvalidTarget)

	require.NoError(t, r.SetRevealMotifDuringDiscussion(r.HostID, true))
	require.NoError(t, r.SetRevealMotifDuringElimination(r.HostID, true))

	require.NoError(t, r.AdvancePhase(r.HostID))
	require.ErrorIs(t, r.SetGameMode(r.HostID, ModeBattleRoyale), ErrWrongPhase)
	require.ErrorIs(t, r.SetRevealMotifDuringDiscussion(r.HostID, false), ErrWrongPhase)
}

func TestKickMidGameRecountsAlliances(t *testing.T) {
	t.Parallel()
	r, ids := startedRoom(t, 91, ModeLionsVsSnakes, 6)
	advanceTo(t, r, PhaseEliminationVote)

	require.NoError(t, r.KickPlayer(r.HostID, ids[3]))

	require.NotContains(t, r.Players, ids[3])
	active := r.ActivePlayerIDs()
	require.Equal(t, len(active), r.RemainingMajority+r.RemainingMinority,
		"alliance counts must track the roster after a mid-game kick")
}
