package game

// AdvancePhase drives the room state machine one step. Host-only. The
// machine is linear with one cycle: Lobby → RoleReveal → Dealing →
// MotifReveal → PrivateDance → GossipSalon → EliminationVote → back to
// MotifReveal for the next round, or GameOver.
//
// Advancing during EliminationVote resolves the pending vote first; once
// an elimination (or a no-elimination result) has been recorded, the next
// advance moves the round on. A pending forced-elimination hand-off makes
// the advance an accepted no-op: the chooser must act before the round
// can continue.
func (r *Room) AdvancePhase(callerID string) error {
	if callerID != r.HostID {
		return ErrNotHost
	}

	switch r.Phase {
	case PhaseLobby:
		return r.startGame()

	case PhaseRoleReveal:
		r.Phase = PhaseDealing

	case PhaseDealing:
		r.Phase = PhaseMotifReveal

	case PhaseMotifReveal:
		r.startPrivateDance()

	case PhasePrivateDance:
		r.startGossipSalon()

	case PhaseGossipSalon:
		r.startEliminationVote()

	case PhaseEliminationVote:
		if r.GameMode == ModeBattleRoyale && r.ForcedEliminationChooserID != "" {
			// Hand-off still pending; broadcast only.
			return nil
		}
		if r.EliminatedThisRound == "" {
			r.resolveVote()
			return nil
		}
		r.advanceRound()

	case PhaseGameOver:
		// Terminal; only EndGame leaves this phase.
	}

	return nil
}

// startGame performs the Lobby → RoleReveal transition: alliance split,
// motif assignment and hand dealing happen here as a side effect.
func (r *Room) startGame() error {
	ids := r.PlayerIDs()
	if len(ids) < MinPlayers {
		return ErrNeedMorePlayers
	}
	for _, id := range ids {
		if !r.Players[id].Ready {
			return ErrNotAllReady
		}
	}

	r.Round = 1

	majority, minority := r.allianceSplit(len(ids))
	r.RemainingMajority = majority
	r.RemainingMinority = minority
	r.assignAlliances(ids, majority)

	for _, id := range ids {
		r.Players[id].Hand = r.dealHand()
	}

	r.UsedMotifs = make(map[string]bool)
	r.assignNewMotifs()

	r.Phase = PhaseRoleReveal
	r.logger.Info("game started",
		"mode", r.GameMode,
		"players", len(ids),
		"majority", majority,
		"minority", minority)
	return nil
}

// startPrivateDance sets up this round's pairing and lets bots share
// immediately so a bot room never stalls the phase.
func (r *Room) startPrivateDance() {
	r.Phase = PhasePrivateDance
	r.SharedCards = make(map[string]Card)
	r.DancePairs = r.pairActivePlayers()
	r.botShareCards()
}

// startGossipSalon appends a journal entry for every completed pairing,
// keyed by receiver, then opens discussion.
func (r *Room) startGossipSalon() {
	r.Phase = PhaseGossipSalon

	for sender, receiver := range r.DancePairs {
		card, shared := r.SharedCards[sender]
		if !shared {
			continue
		}
		rp, ok := r.Players[receiver]
		if !ok {
			continue
		}
		rp.Journal = append(rp.Journal, JournalEntry{
			Round:        r.Round,
			PartnerID:    sender,
			PartnerName:  r.Players[sender].Name,
			ReceivedCard: card,
		})
	}
}

// startEliminationVote clears prior votes and tiebreak state and seeds
// bot votes; bots never need to wait.
func (r *Room) startEliminationVote() {
	r.Phase = PhaseEliminationVote
	r.Votes = make(map[string]string)
	r.clearTiebreakState()
	r.botCastVotes(nil)
}

// advanceRound moves past a resolved elimination: on to GameOver when a
// winner or co-winner pair exists, otherwise into the next round with
// fresh motifs.
func (r *Room) advanceRound() {
	if r.Winner != "" || (r.GameMode == ModeBattleRoyale && len(r.CoWinners) == 2) {
		r.Phase = PhaseGameOver
		return
	}

	r.Round++
	r.EliminatedThisRound = ""
	r.assignNewMotifs()
	r.Phase = PhaseMotifReveal
}
