package client

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/masquerade/internal/game"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(nil, "Tester", "", "", log.New(io.Discard))
}

func snapshotFixture() *game.Snapshot {
	return &game.Snapshot{
		RoomID: "ABCDE",
		HostID: "p1",
		Phase:  game.PhaseEliminationVote,
		Players: map[string]*game.PlayerSnapshot{
			"p1": {ID: "p1", Name: "Colombina", IsMe: true, Hand: []game.Card{
				{ID: "c1", Type: game.CardWord, Content: "candelabra"},
				{ID: "c2", Type: game.CardImage, Content: "/cards/fan.svg"},
			}},
			"p2": {ID: "p2", Name: "Pantalone"},
		},
	}
}

func TestPlayerByName(t *testing.T) {
	t.Parallel()
	m := testModel(t)
	m.playerID = "p1"
	m.state = snapshotFixture()

	id, err := m.playerByName("pantalone")
	require.NoError(t, err)
	require.Equal(t, "p2", id)

	_, err = m.playerByName("Nobody")
	require.Error(t, err)

	_, err = m.playerByName("")
	require.Error(t, err)
}

func TestCardByIndex(t *testing.T) {
	t.Parallel()
	m := testModel(t)
	m.playerID = "p1"
	m.state = snapshotFixture()

	card, err := m.cardByIndex("2")
	require.NoError(t, err)
	require.Equal(t, "c2", card.ID)

	_, err = m.cardByIndex("0")
	require.Error(t, err)
	_, err = m.cardByIndex("3")
	require.Error(t, err)
	_, err = m.cardByIndex("two")
	require.Error(t, err)
}

func TestWinnerLine(t *testing.T) {
	t.Parallel()
	m := testModel(t)

	s := snapshotFixture()
	s.Winner = game.AllianceMinority
	require.Equal(t, "The Minority alliance wins", m.winnerLine(s))

	s = snapshotFixture()
	s.CoWinners = []string{"p1", "p2"}
	require.Equal(t, "Co-winners: Colombina & Pantalone", m.winnerLine(s))
}

func TestApplyStateLogsTransitions(t *testing.T) {
	t.Parallel()
	m := testModel(t)
	m.playerID = "p1"

	m.applyState(snapshotFixture())
	require.NotEmpty(t, m.gameLog, "phase transition is logged")

	before := len(m.gameLog)
	next := snapshotFixture()
	next.EliminatedThisRound = "p2"
	m.applyState(next)
	require.Greater(t, len(m.gameLog), before, "elimination is logged")
}
