package game

import (
	rand "math/rand/v2"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/masquerade/internal/content"
)

// avatars is the pool drawn from when a join request carries no avatar, a
// taken one, or the client-side placeholder.
var avatars = []string{"🎭", "🦊", "🦉", "🦇", "🐺", "🐍", "🦋", "🕷️", "🦚", "🦢"}

// avatarPlaceholder is what the reference client sends before the player
// picks a mask.
const avatarPlaceholder = "mask1"

// MinPlayers is the floor below which a game cannot start.
const MinPlayers = 4

// Room owns all mutable state for one game room. Fields are exported for
// projection and tests; mutate only through the command methods.
type Room struct {
	ID      string
	HostID  string
	Players map[string]*Player
	Phase   Phase
	Round   int

	GameMode GameMode

	AllianceMotifs   map[Alliance]string
	AllianceKeywords map[Alliance][]string
	UsedMotifs       map[string]bool

	DancePairs  map[string]string // sender -> receiver for this round
	SharedCards map[string]Card   // sender -> card shared this round

	Votes           map[string]string
	AllianceGuesses map[string]Alliance

	TiebreakerStage         TiebreakerStage
	TiebreakerTiedPlayerIDs []string

	// EliminatedThisRound holds the id of the most recent elimination,
	// NoElimination when a resolution eliminated nobody, or "" before
	// this round's vote has resolved.
	EliminatedThisRound string

	RemainingMajority int
	RemainingMinority int

	ConsecutiveMajorityEliminations int

	ForcedEliminationChooserID  string
	ForcedEliminationCandidates []string

	Winner    Alliance // set only in LionsVsSnakes
	CoWinners []string // set only in BattleRoyale, always two ids

	RevealMotifDuringDiscussion  bool
	RevealMotifDuringElimination bool

	// order preserves join order so shuffles and broadcasts behave
	// deterministically under a seeded rng.
	order []string

	pool       *content.Pool
	rng        *rand.Rand
	logger     *log.Logger
	nextCardID int
}

// NewRoom creates an empty lobby-phase room. The first Join becomes host.
func NewRoom(id string, pool *content.Pool, rng *rand.Rand, logger *log.Logger) *Room {
	return &Room{
		ID:               id,
		Players:          make(map[string]*Player),
		Phase:            PhaseLobby,
		GameMode:         ModeBattleRoyale,
		AllianceMotifs:   make(map[Alliance]string),
		AllianceKeywords: make(map[Alliance][]string),
		UsedMotifs:       make(map[string]bool),
		DancePairs:       make(map[string]string),
		SharedCards:      make(map[string]Card),
		Votes:            make(map[string]string),
		AllianceGuesses:  make(map[string]Alliance),
		TiebreakerStage:  TiebreakNone,
		pool:             pool,
		rng:              rng,
		logger:           logger.With("room", id),
	}
}

// Join adds a player, or resolves an existing membership (re-sending state
// to a member is always allowed). Joining a room that has left the lobby
// is rejected for non-members.
func (r *Room) Join(playerID, name, avatar string) error {
	if _, ok := r.Players[playerID]; ok {
		return nil
	}
	if r.Phase != PhaseLobby {
		return ErrGameInProgress
	}

	if avatar == "" || avatar == avatarPlaceholder || r.avatarTaken(avatar) {
		avatar = r.availableAvatar()
	}

	r.addPlayer(&Player{
		ID:     playerID,
		Name:   name,
		Avatar: avatar,
	})
	if r.HostID == "" {
		r.HostID = playerID
	}

	r.logger.Info("player joined", "player", playerID, "name", name, "count", len(r.Players))
	return nil
}

var botNames = []string{
	"Lord Byron", "Countess Lovelace", "Duke of Wellington", "Lady Hamilton",
	"Marquis de Carabas", "Casanova", "Marie Antoinette", "King Louis",
}

// AddBot inserts a ready bot player. Host-only, lobby-only.
func (r *Room) AddBot(callerID string) error {
	if callerID != r.HostID {
		return ErrNotHost
	}
	if r.Phase != PhaseLobby {
		return ErrWrongPhase
	}

	botID := "bot_" + r.ID + "_" + strconv.Itoa(len(r.order))
	r.addPlayer(&Player{
		ID:     botID,
		Name:   r.availableBotName(),
		Avatar: r.availableAvatar(),
		Ready:  true,
		IsBot:  true,
	})

	r.logger.Info("bot added", "bot", botID, "count", len(r.Players))
	return nil
}

// UpdatePlayer updates the caller's own display fields and readiness.
func (r *Room) UpdatePlayer(callerID, name, avatar string, ready bool) error {
	p, ok := r.Players[callerID]
	if !ok {
		return ErrNotMember
	}
	p.Name = name
	p.Avatar = avatar
	p.Ready = ready
	return nil
}

// SetGameMode changes the ruleset. Host-only, lobby-only.
func (r *Room) SetGameMode(callerID string, mode GameMode) error {
	if err := r.hostLobbyGuard(callerID); err != nil {
		return err
	}
	if mode != ModeBattleRoyale && mode != ModeLionsVsSnakes {
		return ErrInvalidTarget
	}
	r.GameMode = mode
	return nil
}

// SetRevealMotifDuringDiscussion toggles the discussion-time motif reveal.
func (r *Room) SetRevealMotifDuringDiscussion(callerID string, enabled bool) error {
	if err := r.hostLobbyGuard(callerID); err != nil {
		return err
	}
	r.RevealMotifDuringDiscussion = enabled
	return nil
}

// SetRevealMotifDuringElimination toggles the elimination-time motif reveal.
func (r *Room) SetRevealMotifDuringElimination(callerID string, enabled bool) error {
	if err := r.hostLobbyGuard(callerID); err != nil {
		return err
	}
	r.RevealMotifDuringElimination = enabled
	return nil
}

// KickPlayer removes a player in any phase. Host-only.
func (r *Room) KickPlayer(callerID, targetID string) error {
	if callerID != r.HostID {
		return ErrNotHost
	}
	if _, ok := r.Players[targetID]; !ok {
		return ErrInvalidTarget
	}
	r.removePlayer(targetID)
	r.reassignHost(targetID)
	if r.Phase != PhaseLobby {
		// A mid-game kick shrinks an alliance without an elimination; the
		// live counts must follow immediately.
		r.recountAlliances()
	}
	r.logger.Info("player kicked", "player", targetID, "remaining", len(r.Players))
	return nil
}

// Leave removes the caller. Leaving is only permitted during the lobby; a
// mid-game departure is treated as a disconnect (player stays in place so
// the round math holds).
func (r *Room) Leave(callerID string) error {
	if _, ok := r.Players[callerID]; !ok {
		return ErrNotMember
	}
	if r.Phase != PhaseLobby {
		return ErrWrongPhase
	}

	r.removePlayer(callerID)
	r.reassignHost(callerID)
	r.logger.Info("player left", "player", callerID, "remaining", len(r.Players))
	return nil
}

// Disconnect handles a dropped connection. Lobby-phase players are
// removed (with host reassignment); in-game players stay in the roster.
func (r *Room) Disconnect(playerID string) {
	if _, ok := r.Players[playerID]; !ok {
		return
	}
	if r.Phase != PhaseLobby {
		return
	}
	r.removePlayer(playerID)
	r.reassignHost(playerID)
	r.logger.Info("player disconnected", "player", playerID, "remaining", len(r.Players))
}

// EndGame returns the room to the lobby, clearing all round-scoped state
// but keeping the roster. Host-only.
func (r *Room) EndGame(callerID string) error {
	if callerID != r.HostID {
		return ErrNotHost
	}

	r.Phase = PhaseLobby
	r.Round = 0
	r.Winner = ""
	r.CoWinners = nil
	r.EliminatedThisRound = ""
	r.AllianceMotifs = make(map[Alliance]string)
	r.AllianceKeywords = make(map[Alliance][]string)
	r.UsedMotifs = make(map[string]bool)
	r.DancePairs = make(map[string]string)
	r.SharedCards = make(map[string]Card)
	r.Votes = make(map[string]string)
	r.ConsecutiveMajorityEliminations = 0
	r.RemainingMajority = 0
	r.RemainingMinority = 0
	r.clearTiebreakState()

	for _, p := range r.Players {
		p.IsEliminated = false
		p.Hand = nil
		p.Journal = nil
		p.Alliance = ""
		p.Ready = p.IsBot // bots stay ready
	}

	r.logger.Info("game ended, room reset to lobby")
	return nil
}

// Empty reports whether the roster is empty; empty rooms are destroyed by
// the registry.
func (r *Room) Empty() bool {
	return len(r.Players) == 0
}

// ActivePlayerIDs returns non-eliminated player ids in join order.
func (r *Room) ActivePlayerIDs() []string {
	ids := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if p := r.Players[id]; p != nil && p.Active() {
			ids = append(ids, id)
		}
	}
	return ids
}

// PlayerIDs returns all player ids in join order.
func (r *Room) PlayerIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

func (r *Room) isActive(playerID string) bool {
	p, ok := r.Players[playerID]
	return ok && p.Active()
}

func (r *Room) hostLobbyGuard(callerID string) error {
	if callerID != r.HostID {
		return ErrNotHost
	}
	if r.Phase != PhaseLobby {
		return ErrWrongPhase
	}
	return nil
}

func (r *Room) addPlayer(p *Player) {
	r.Players[p.ID] = p
	r.order = append(r.order, p.ID)
}

func (r *Room) removePlayer(playerID string) {
	delete(r.Players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Room) reassignHost(departedID string) {
	if r.HostID != departedID || len(r.order) == 0 {
		return
	}
	r.HostID = r.order[0]
	r.logger.Info("host reassigned", "host", r.HostID)
}

func (r *Room) avatarTaken(avatar string) bool {
	for _, p := range r.Players {
		if p.Avatar == avatar {
			return true
		}
	}
	return false
}

func (r *Room) availableAvatar() string {
	for _, a := range avatars {
		if !r.avatarTaken(a) {
			return a
		}
	}
	return avatars[0]
}

func (r *Room) availableBotName() string {
	used := make(map[string]bool, len(r.Players))
	for _, p := range r.Players {
		used[p.Name] = true
	}
	for _, name := range botNames {
		if !used[name] {
			return name
		}
	}
	return "Bot " + strconv.Itoa(len(r.Players))
}

func (r *Room) clearTiebreakState() {
	r.TiebreakerStage = TiebreakNone
	r.TiebreakerTiedPlayerIDs = nil
	r.AllianceGuesses = make(map[string]Alliance)
	r.ForcedEliminationChooserID = ""
	r.ForcedEliminationCandidates = nil
}

