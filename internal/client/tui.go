package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/masquerade/internal/game"
	"github.com/lox/masquerade/internal/server"
)

// Model is the Bubble Tea model for the masquerade client. All game
// state is server-authoritative; the model only renders the latest
// snapshot and translates typed commands into protocol messages.
type Model struct {
	client *Client
	logger *log.Logger

	name     string
	avatar   string
	joinRoom string

	roomID   string
	playerID string
	state    *game.Snapshot

	logViewport viewport.Model
	input       textinput.Model
	gameLog     []string

	width       int
	height      int
	initialized bool
	quitting    bool
}

type serverMsg struct{ msg *server.Message }

type disconnectedMsg struct{}

// NewModel creates the client model. joinRoom may be empty to create a
// new room on connect.
func NewModel(client *Client, name, avatar, joinRoom string, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "type /help for commands"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	return &Model{
		client:      client,
		logger:      logger.WithPrefix("tui"),
		name:        name,
		avatar:      avatar,
		joinRoom:    joinRoom,
		logViewport: vp,
		input:       ti,
		gameLog:     []string{},
	}
}

// Init joins (or creates) the room and starts listening for messages.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.waitForServer(),
		func() tea.Msg {
			if err := m.client.JoinRoom(m.joinRoom, m.name, m.avatar); err != nil {
				return disconnectedMsg{}
			}
			return nil
		},
	)
}

func (m *Model) waitForServer() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.client.Messages()
		if !ok {
			return disconnectedMsg{}
		}
		return serverMsg{msg: msg}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case disconnectedMsg:
		m.addLog(errorStyle.Render("Disconnected from server"))
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case serverMsg:
		m.handleServer(msg.msg)
		cmds = append(cmds, m.waitForServer())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 4
		m.logViewport.Height = max(5, msg.Height-18)
		m.initialized = true

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line != "" {
				m.handleCommand(line)
			}
			if m.quitting {
				return m, tea.Sequence(tea.ClearScreen, tea.Quit)
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleServer(msg *server.Message) {
	switch msg.Type {
	case server.MessageTypeRoomJoined:
		var data server.RoomJoinedData
		if err := unmarshalData(msg, &data); err != nil {
			return
		}
		m.roomID = data.RoomID
		m.playerID = data.PlayerID
		m.addLog(successStyle.Render("Joined room " + data.RoomID))

	case server.MessageTypeRoomLeft:
		m.roomID = ""
		m.state = nil
		m.addLog(infoStyle.Render("Left the room"))

	case server.MessageTypeRoomState:
		var data server.RoomStateData
		if err := unmarshalData(msg, &data); err != nil {
			return
		}
		m.applyState(data.State)

	case server.MessageTypeError:
		var data server.ErrorData
		if err := unmarshalData(msg, &data); err != nil {
			return
		}
		m.addLog(errorStyle.Render("Error: " + data.Message))

	default:
		m.logger.Debug("unhandled message", "type", msg.Type)
	}
}

func unmarshalData(msg *server.Message, v interface{}) error {
	return json.Unmarshal(msg.Data, v)
}

// applyState swaps in a new snapshot and logs the transitions a player
// would want to see scroll by.
func (m *Model) applyState(next *game.Snapshot) {
	prev := m.state
	m.state = next
	if next == nil {
		return
	}

	if prev == nil || prev.Phase != next.Phase {
		m.addLog(headerStyle.Render(" " + string(next.Phase) + " "))
	}
	if next.CurrentMotif != "" && (prev == nil || prev.CurrentMotif != next.CurrentMotif) {
		m.addLog(motifStyle.Render("Your alliance motif: " + next.CurrentMotif))
	}
	if next.EliminatedThisRound != "" && (prev == nil || prev.EliminatedThisRound != next.EliminatedThisRound) {
		if next.EliminatedThisRound == game.NoElimination {
			m.addLog(successStyle.Render("Nobody was unmasked this round"))
		} else if p, ok := next.Players[next.EliminatedThisRound]; ok {
			m.addLog(errorStyle.Render(p.Name + " was unmasked and eliminated"))
		}
	}
	if next.Phase == game.PhaseGameOver && (prev == nil || prev.Phase != game.PhaseGameOver) {
		m.addLog(headerStyle.Render(" " + m.winnerLine(next) + " "))
	}
}

func (m *Model) winnerLine(s *game.Snapshot) string {
	if len(s.CoWinners) > 0 {
		names := make([]string, 0, len(s.CoWinners))
		for _, id := range s.CoWinners {
			if p, ok := s.Players[id]; ok {
				names = append(names, p.Name)
			}
		}
		return "Co-winners: " + strings.Join(names, " & ")
	}
	if s.Winner != "" {
		return "The " + string(s.Winner) + " alliance wins"
	}
	return "Game over"
}

// handleCommand parses a typed command line and sends the protocol
// message it maps to. Unknown input is treated as a command error, not
// chat; the salon conversation happens out loud at the table.
func (m *Model) handleCommand(line string) {
	fields := strings.Fields(line)
	cmd := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	args := fields[1:]

	var err error
	switch cmd {
	case "help":
		m.showHelp()

	case "join":
		if len(args) != 1 {
			m.addLog(errorStyle.Render("usage: /join <room-code>"))
			return
		}
		err = m.client.JoinRoom(args[0], m.name, m.avatar)

	case "ready":
		err = m.client.UpdatePlayer(m.roomID, m.name, m.avatar, true)

	case "unready":
		err = m.client.UpdatePlayer(m.roomID, m.name, m.avatar, false)

	case "name":
		if len(args) < 1 {
			m.addLog(errorStyle.Render("usage: /name <new name>"))
			return
		}
		m.name = strings.Join(args, " ")
		err = m.client.UpdatePlayer(m.roomID, m.name, m.avatar, m.myReady())

	case "mode":
		if len(args) != 1 {
			m.addLog(errorStyle.Render("usage: /mode battle|lions"))
			return
		}
		switch strings.ToLower(args[0]) {
		case "battle", "battleroyale":
			err = m.client.SetGameMode(m.roomID, game.ModeBattleRoyale)
		case "lions", "lionsvssnakes":
			err = m.client.SetGameMode(m.roomID, game.ModeLionsVsSnakes)
		default:
			m.addLog(errorStyle.Render("unknown mode: " + args[0]))
			return
		}

	case "reveal":
		if len(args) != 2 {
			m.addLog(errorStyle.Render("usage: /reveal discussion|elimination on|off"))
			return
		}
		enabled := strings.EqualFold(args[1], "on")
		switch strings.ToLower(args[0]) {
		case "discussion":
			err = m.client.SetRevealDiscussion(m.roomID, enabled)
		case "elimination":
			err = m.client.SetRevealElimination(m.roomID, enabled)
		default:
			m.addLog(errorStyle.Render("unknown reveal setting: " + args[0]))
			return
		}

	case "bot":
		err = m.client.AddBot(m.roomID)

	case "start", "next":
		err = m.client.AdvancePhase(m.roomID)

	case "share":
		if len(args) != 1 {
			m.addLog(errorStyle.Render("usage: /share <card number>"))
			return
		}
		var card *game.Card
		card, err = m.cardByIndex(args[0])
		if err != nil {
			m.addLog(errorStyle.Render(err.Error()))
			return
		}
		err = m.client.ShareCard(m.roomID, card.ID)

	case "vote":
		var target string
		target, err = m.playerByName(strings.Join(args, " "))
		if err != nil {
			m.addLog(errorStyle.Render(err.Error()))
			return
		}
		err = m.client.Vote(m.roomID, target)

	case "choose":
		var target string
		target, err = m.playerByName(strings.Join(args, " "))
		if err != nil {
			m.addLog(errorStyle.Render(err.Error()))
			return
		}
		err = m.client.ChooseForcedElimination(m.roomID, target)

	case "guess":
		if len(args) != 1 {
			m.addLog(errorStyle.Render("usage: /guess majority|minority"))
			return
		}
		switch strings.ToLower(args[0]) {
		case "majority", "maj":
			err = m.client.SubmitAllianceGuess(m.roomID, game.AllianceMajority)
		case "minority", "min":
			err = m.client.SubmitAllianceGuess(m.roomID, game.AllianceMinority)
		default:
			m.addLog(errorStyle.Render("guess must be majority or minority"))
			return
		}

	case "kick":
		var target string
		target, err = m.playerByName(strings.Join(args, " "))
		if err != nil {
			m.addLog(errorStyle.Render(err.Error()))
			return
		}
		err = m.client.KickPlayer(m.roomID, target)

	case "end":
		err = m.client.EndGame(m.roomID)

	case "leave":
		err = m.client.LeaveRoom(m.roomID)

	case "quit":
		m.quitting = true

	default:
		m.addLog(errorStyle.Render("unknown command: " + cmd + " (try /help)"))
		return
	}

	if err != nil {
		m.addLog(errorStyle.Render("send failed: " + err.Error()))
	}
}

func (m *Model) showHelp() {
	help := []string{
		"/join <code>       join an existing room",
		"/ready /unready    toggle readiness in the lobby",
		"/name <name>       change display name",
		"/mode battle|lions set the ruleset (host)",
		"/reveal discussion|elimination on|off",
		"/bot               add a bot (host)",
		"/start, /next      advance the phase (host)",
		"/share <n>         share hand card n with your dance partner",
		"/vote <player>     vote to unmask a player",
		"/choose <player>   redirect a forced elimination (chooser)",
		"/guess majority|minority",
		"/kick <player>     remove a player (host)",
		"/end               end the game, back to lobby (host)",
		"/leave             leave the room",
	}
	for _, h := range help {
		m.addLog(infoStyle.Render(h))
	}
}

func (m *Model) myReady() bool {
	if m.state == nil {
		return false
	}
	if p, ok := m.state.Players[m.playerID]; ok {
		return p.Ready
	}
	return false
}

func (m *Model) cardByIndex(arg string) (*game.Card, error) {
	if m.state == nil {
		return nil, fmt.Errorf("no game state yet")
	}
	me, ok := m.state.Players[m.playerID]
	if !ok || len(me.Hand) == 0 {
		return nil, fmt.Errorf("you have no cards to share")
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(me.Hand) {
		return nil, fmt.Errorf("card number must be 1-%d", len(me.Hand))
	}
	return &me.Hand[n-1], nil
}

func (m *Model) playerByName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("player name required")
	}
	if m.state == nil {
		return "", fmt.Errorf("no game state yet")
	}
	for id, p := range m.state.Players {
		if strings.EqualFold(p.Name, name) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no player named %q", name)
}

func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.initialized || m.state == nil {
		return "Connecting to the masquerade...\n"
	}

	header := headerStyle.Render(fmt.Sprintf(" Masquerade  room %s  round %d  %s  %s ",
		m.roomID, m.state.Round, m.state.GameMode, m.state.Phase))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPlayers(),
		"  ",
		m.renderPhasePane(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		m.logViewport.View(),
		m.input.View(),
	)
}

func (m *Model) renderPlayers() string {
	var b strings.Builder
	b.WriteString(hostStyle.Render("Guests") + "\n")

	ids := make([]string, 0, len(m.state.Players))
	for id := range m.state.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := m.state.Players[id]
		line := fmt.Sprintf("%s %s", p.Avatar, p.Name)
		switch {
		case p.IsHost:
			line += " (host)"
		case p.IsBot:
			line += " (bot)"
		}
		if m.state.Phase == game.PhaseLobby && p.Ready {
			line += " ✓"
		}
		if p.Alliance != "" && !p.IsMe {
			line += " [" + string(p.Alliance) + "]"
		}
		if p.IsEliminated {
			b.WriteString(eliminatedStyle.Render(line) + "\n")
		} else {
			b.WriteString(playerStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m *Model) renderPhasePane() string {
	s := m.state
	me := s.Players[m.playerID]

	var b strings.Builder
	switch s.Phase {
	case game.PhaseLobby:
		b.WriteString("Waiting in the lobby. /ready when you are, host /start begins.\n")

	case game.PhaseRoleReveal:
		if me != nil && me.Alliance != "" {
			b.WriteString("You belong to the " + motifStyle.Render(string(me.Alliance)) + " alliance.\n")
		}

	case game.PhaseMotifReveal:
		b.WriteString(motifStyle.Render("Motif: "+s.CurrentMotif) + "\n")
		if len(s.MotifKeywords) > 0 {
			b.WriteString(infoStyle.Render("keywords: "+strings.Join(s.MotifKeywords, ", ")) + "\n")
		}

	case game.PhasePrivateDance:
		b.WriteString(m.renderHand())
		if partner, ok := s.DancePairs[m.playerID]; ok {
			if p, found := s.Players[partner]; found {
				b.WriteString("Your dance partner: " + p.Name + "\n")
			}
		}
		if card, ok := s.SharedCards[m.playerID]; ok {
			b.WriteString("You shared " + cardStyle.Render(card.Content) + "\n")
		}
		for id, card := range s.SharedCards {
			if id == m.playerID {
				continue
			}
			if p, found := s.Players[id]; found {
				b.WriteString(p.Name + " shared " + cardStyle.Render(card.Content) + "\n")
			}
		}

	case game.PhaseGossipSalon:
		b.WriteString("Discuss! Accuse! Deflect!\n")
		if me != nil {
			for _, e := range me.Journal {
				b.WriteString(fmt.Sprintf("round %d: %s gave you %s\n",
					e.Round, e.PartnerName, cardStyle.Render(e.ReceivedCard.Content)))
			}
		}

	case game.PhaseEliminationVote:
		b.WriteString(m.renderVotePane())

	case game.PhaseGameOver:
		b.WriteString(m.winnerLine(s) + "\n")
	}
	return b.String()
}

func (m *Model) renderVotePane() string {
	s := m.state
	var b strings.Builder

	switch s.TiebreakerStage {
	case game.TiebreakRevote:
		names := make([]string, 0, len(s.TiebreakerTiedPlayerIDs))
		for _, id := range s.TiebreakerTiedPlayerIDs {
			if p, ok := s.Players[id]; ok {
				names = append(names, p.Name)
			}
		}
		b.WriteString(errorStyle.Render("Revote!") + " tied: " + strings.Join(names, ", ") + "\n")
	case game.TiebreakAllianceGuess:
		b.WriteString(errorStyle.Render("Deadlock! /guess your own alliance to survive.") + "\n")
	default:
		b.WriteString("Vote to unmask with /vote <player>.\n")
	}

	if s.ForcedEliminationChooserID != "" {
		if p, ok := s.Players[s.ForcedEliminationChooserID]; ok {
			if s.ForcedEliminationChooserID == m.playerID {
				b.WriteString(errorStyle.Render("The room spared you; /choose a teammate to take your place.") + "\n")
			} else {
				b.WriteString(p.Name + " must choose who falls in their place...\n")
			}
		}
	}

	for voter, target := range s.Votes {
		vp, ok1 := s.Players[voter]
		tp, ok2 := s.Players[target]
		if ok1 && ok2 {
			b.WriteString(infoStyle.Render(vp.Name+" → "+tp.Name) + "\n")
		}
	}
	return b.String()
}

func (m *Model) renderHand() string {
	me := m.state.Players[m.playerID]
	if me == nil || len(me.Hand) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(hostStyle.Render("Your hand") + "\n")
	for i, c := range me.Hand {
		b.WriteString(fmt.Sprintf("%2d. [%s] %s\n", i+1, c.Type, c.Content))
	}
	return b.String()
}
