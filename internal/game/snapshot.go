package game

import (
	"maps"
	"slices"
)

// PlayerSnapshot is the redacted per-player view inside a Snapshot.
// Alliance, hand and journal are only populated when the viewer is
// entitled to them.
type PlayerSnapshot struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Avatar       string         `json:"avatar"`
	IsEliminated bool           `json:"isEliminated"`
	Ready        bool           `json:"ready"`
	IsMe         bool           `json:"isMe"`
	IsBot        bool           `json:"isBot"`
	IsHost       bool           `json:"isHost"`
	Alliance     Alliance       `json:"alliance,omitempty"`
	Hand         []Card         `json:"hand,omitempty"`
	Journal      []JournalEntry `json:"journal,omitempty"`
}

// Snapshot is the state a single player is allowed to see, serialized to
// the wire as-is.
type Snapshot struct {
	RoomID                       string                     `json:"roomId"`
	HostID                       string                     `json:"hostId"`
	Players                      map[string]*PlayerSnapshot `json:"players"`
	Phase                        Phase                      `json:"phase"`
	Round                        int                        `json:"round"`
	GameMode                     GameMode                   `json:"gameMode"`
	CurrentMotif                 string                     `json:"currentMotif,omitempty"`
	MotifKeywords                []string                   `json:"motifKeywords,omitempty"`
	DancePairs                   map[string]string          `json:"dancePairs"`
	SharedCards                  map[string]Card            `json:"sharedCards"`
	AllPairsShared               bool                       `json:"allPairsShared"`
	Votes                        map[string]string          `json:"votes"`
	EliminatedThisRound          string                     `json:"eliminatedThisRound,omitempty"`
	Winner                       Alliance                   `json:"winner,omitempty"`
	CoWinners                    []string                   `json:"coWinners,omitempty"`
	RemainingMajority            int                        `json:"remainingMajority"`
	RemainingMinority            int                        `json:"remainingMinority"`
	ForcedEliminationChooserID   string                     `json:"forcedEliminationChooserId,omitempty"`
	ForcedEliminationCandidates  []string                   `json:"forcedEliminationCandidates,omitempty"`
	RevealMotifDuringDiscussion  bool                       `json:"revealMotifDuringDiscussion"`
	RevealMotifDuringElimination bool                       `json:"revealMotifDuringElimination"`
	RevealedAllianceMotifs       map[Alliance]string        `json:"revealedAllianceMotifs,omitempty"`
	TiebreakerStage              TiebreakerStage            `json:"tiebreakerStage"`
	TiebreakerTiedPlayerIDs      []string                   `json:"tiebreakerTiedPlayerIds"`
	AllianceGuesses              map[string]Alliance        `json:"allianceGuesses"`
}

// SnapshotFor projects the room state down to what viewerID may see.
//
// Redaction rules: a player always sees their own hand, alliance and
// journal; everyone else's alliance appears only once that player is
// eliminated or the game is over. The current motif is the viewer's own
// alliance motif and is hidden outside the phases where it matters.
// During the dance only the viewer's and their partner's shared cards are
// visible. Both alliances' motifs are revealed together only when the
// room's reveal settings say so.
//
// The snapshot must not alias live room state: the transport marshals it
// after the room lock is released, while later commands mutate the room
// under the lock. Every map and slice is cloned here.
func (r *Room) SnapshotFor(viewerID string) *Snapshot {
	s := &Snapshot{
		RoomID:                       r.ID,
		HostID:                       r.HostID,
		Players:                      make(map[string]*PlayerSnapshot, len(r.Players)),
		Phase:                        r.Phase,
		Round:                        r.Round,
		GameMode:                     r.GameMode,
		DancePairs:                   maps.Clone(r.DancePairs),
		SharedCards:                  map[string]Card{},
		Votes:                        maps.Clone(r.Votes),
		EliminatedThisRound:          r.EliminatedThisRound,
		Winner:                       r.Winner,
		CoWinners:                    slices.Clone(r.CoWinners),
		RemainingMajority:            r.RemainingMajority,
		RemainingMinority:            r.RemainingMinority,
		ForcedEliminationChooserID:   r.ForcedEliminationChooserID,
		ForcedEliminationCandidates:  slices.Clone(r.ForcedEliminationCandidates),
		RevealMotifDuringDiscussion:  r.RevealMotifDuringDiscussion,
		RevealMotifDuringElimination: r.RevealMotifDuringElimination,
		TiebreakerStage:              r.TiebreakerStage,
		TiebreakerTiedPlayerIDs:      slices.Clone(r.TiebreakerTiedPlayerIDs),
		AllianceGuesses:              maps.Clone(r.AllianceGuesses),
	}

	viewer, isMember := r.Players[viewerID]
	if isMember && viewer.Alliance != "" && r.motifVisible() {
		s.CurrentMotif = r.AllianceMotifs[viewer.Alliance]
		s.MotifKeywords = slices.Clone(r.AllianceKeywords[viewer.Alliance])
	}

	if r.Phase == PhasePrivateDance {
		if card, ok := r.SharedCards[viewerID]; ok {
			s.SharedCards[viewerID] = card
		}
		if partner := r.dancePartnerOf(viewerID); partner != "" {
			if card, ok := r.SharedCards[partner]; ok {
				s.SharedCards[partner] = card
			}
		}
		s.AllPairsShared = r.allPairsShared()
	}

	if (r.Phase == PhaseGossipSalon && r.RevealMotifDuringDiscussion) ||
		((r.Phase == PhaseGameOver || r.EliminatedThisRound != "") && r.RevealMotifDuringElimination) {
		s.RevealedAllianceMotifs = maps.Clone(r.AllianceMotifs)
	}

	for id, p := range r.Players {
		ps := &PlayerSnapshot{
			ID:           p.ID,
			Name:         p.Name,
			Avatar:       p.Avatar,
			IsEliminated: p.IsEliminated,
			Ready:        p.Ready,
			IsMe:         id == viewerID,
			IsBot:        p.IsBot,
			IsHost:       id == r.HostID,
		}
		switch {
		case id == viewerID:
			ps.Alliance = p.Alliance
			ps.Hand = slices.Clone(p.Hand)
			ps.Journal = slices.Clone(p.Journal)
		case p.IsEliminated || r.Phase == PhaseGameOver:
			ps.Alliance = p.Alliance
		}
		s.Players[id] = ps
	}

	return s
}

// motifVisible reports whether the viewer's own motif shows in the
// current phase. Lobby and Dealing precede assignment visibility, the
// salon hides it to force discussion from memory, and GameOver defers to
// the full reveal.
func (r *Room) motifVisible() bool {
	switch r.Phase {
	case PhaseLobby, PhaseDealing, PhaseGossipSalon, PhaseGameOver:
		return false
	}
	return true
}
