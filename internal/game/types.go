package game

// Alliance is one of the two hidden teams a player belongs to.
type Alliance string

const (
	AllianceMajority Alliance = "Majority"
	AllianceMinority Alliance = "Minority"
)

// GameMode selects the ruleset variant, fixed once a game leaves the lobby.
type GameMode string

const (
	// ModeBattleRoyale reshuffles alliances after every elimination and
	// ends with the last two players standing as co-winners.
	ModeBattleRoyale GameMode = "BattleRoyale"

	// ModeLionsVsSnakes keeps alliances fixed and ends when one alliance
	// meets its win condition.
	ModeLionsVsSnakes GameMode = "LionsVsSnakes"
)

// Phase is a state of the room state machine.
type Phase string

const (
	PhaseLobby           Phase = "Lobby"
	PhaseRoleReveal      Phase = "RoleReveal"
	PhaseDealing         Phase = "Dealing"
	PhaseMotifReveal     Phase = "MotifReveal"
	PhasePrivateDance    Phase = "PrivateDance"
	PhaseGossipSalon     Phase = "GossipSalon"
	PhaseEliminationVote Phase = "EliminationVote"
	PhaseGameOver        Phase = "GameOver"
)

// TiebreakerStage tracks progress through the elimination tiebreak
// procedure within the EliminationVote phase.
type TiebreakerStage string

const (
	TiebreakNone          TiebreakerStage = "None"
	TiebreakRevote        TiebreakerStage = "Revote"
	TiebreakAllianceGuess TiebreakerStage = "AllianceGuess"
)

// CardType tags a card as an image or a word card.
type CardType string

const (
	CardImage CardType = "Image"
	CardWord  CardType = "Word"
)

// Card is an immutable dealt card. Cards are cloned from the content pool
// with a fresh ID per deal, so IDs are unique per room even though content
// repeats across hands.
type Card struct {
	ID      string   `json:"id"`
	Type    CardType `json:"type"`
	Content string   `json:"content"`
}

// JournalEntry records a card received during a dance. Entries are
// permanent once appended.
type JournalEntry struct {
	Round        int    `json:"round"`
	PartnerID    string `json:"partnerId"`
	PartnerName  string `json:"partnerName"`
	ReceivedCard Card   `json:"receivedCard"`
}

// Player is one member of a room.
type Player struct {
	ID           string
	Name         string
	Avatar       string
	Alliance     Alliance // empty until role assignment
	Hand         []Card
	IsEliminated bool
	Journal      []JournalEntry
	Ready        bool
	IsBot        bool
}

// Active reports whether the player is still in the game.
func (p *Player) Active() bool {
	return !p.IsEliminated
}

// NoElimination is the sentinel stored in Room.EliminatedThisRound when a
// resolution completed without eliminating anyone (an alliance-guess round
// where every guess was correct).
const NoElimination = "NONE"
