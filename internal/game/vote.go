package game

// Vote records the caller's vote for this round. During a Revote only
// non-tied players may vote and only tied players may be targeted; during
// the alliance-guess stage votes are closed entirely.
func (r *Room) Vote(callerID, targetID string) error {
	if r.Phase != PhaseEliminationVote {
		return ErrWrongPhase
	}
	if !r.isActive(callerID) {
		return ErrEliminated
	}
	if !r.isActive(targetID) {
		return ErrInvalidTarget
	}

	switch r.TiebreakerStage {
	case TiebreakRevote:
		if r.isTied(callerID) || !r.isTied(targetID) {
			return ErrInvalidTarget
		}
	case TiebreakAllianceGuess:
		return ErrWrongPhase
	}

	r.Votes[callerID] = targetID
	return nil
}

// SubmitAllianceGuess records the caller's guess during the final
// BattleRoyale tiebreak. Guesses are resolved when the host next
// advances the phase.
func (r *Room) SubmitAllianceGuess(callerID string, guess Alliance) error {
	if r.Phase != PhaseEliminationVote || r.TiebreakerStage != TiebreakAllianceGuess {
		return ErrWrongPhase
	}
	if !r.isActive(callerID) {
		return ErrEliminated
	}
	if guess != AllianceMajority && guess != AllianceMinority {
		return ErrInvalidTarget
	}

	r.AllianceGuesses[callerID] = guess
	return nil
}

// ChooseForcedElimination lets the designated majority chooser redirect
// an elimination onto one of their listed teammates.
func (r *Room) ChooseForcedElimination(callerID, targetID string) error {
	if r.Phase != PhaseEliminationVote || r.GameMode != ModeBattleRoyale {
		return ErrWrongPhase
	}
	if callerID != r.ForcedEliminationChooserID {
		return ErrNotChooser
	}
	found := false
	for _, id := range r.ForcedEliminationCandidates {
		if id == targetID {
			found = true
			break
		}
	}
	if !found {
		return ErrInvalidTarget
	}

	r.applyElimination(targetID)
	return nil
}

// resolveVote is the central elimination algorithm: tally, tie detection,
// the two-stage tiebreak, and the dynamic-mode forced-elimination
// hand-off. Called when the host advances out of EliminationVote before
// an elimination has been recorded.
func (r *Room) resolveVote() {
	active := r.ActivePlayerIDs()
	if len(active) == 0 {
		return
	}

	counts := r.tallyVotes()
	leaders := r.tiedLeaders(counts)

	if len(leaders) > 1 {
		switch r.TiebreakerStage {
		case TiebreakNone:
			// First tie: revote restricted to the tied set.
			r.TiebreakerStage = TiebreakRevote
			r.TiebreakerTiedPlayerIDs = leaders
			r.Votes = make(map[string]string)
			r.botCastVotes(leaders)
			r.logger.Info("vote tied, entering revote", "tied", leaders)
			return

		case TiebreakRevote:
			if r.GameMode == ModeBattleRoyale {
				// Still tied: everyone must guess their own alliance.
				r.TiebreakerStage = TiebreakAllianceGuess
				r.TiebreakerTiedPlayerIDs = leaders
				r.Votes = make(map[string]string)
				r.AllianceGuesses = make(map[string]Alliance)
				r.botGuessAlliances()
				r.logger.Info("revote tied, entering alliance guess", "tied", leaders)
				return
			}

			// LionsVsSnakes settles a second tie immediately: random
			// elimination among the tied majority players, or among all
			// tied players when none are majority.
			pool := make([]string, 0, len(leaders))
			for _, id := range leaders {
				if r.Players[id].Alliance == AllianceMajority {
					pool = append(pool, id)
				}
			}
			if len(pool) == 0 {
				pool = leaders
			}
			r.applyElimination(pool[r.rng.IntN(len(pool))])
			return
		}
	}

	if r.TiebreakerStage == TiebreakAllianceGuess {
		r.resolveAllianceGuesses(active)
		return
	}

	var target string
	if len(leaders) > 0 {
		target = leaders[0]
	} else {
		// Nobody voted at all; the room still demands a victim.
		target = active[r.rng.IntN(len(active))]
	}

	if r.GameMode == ModeBattleRoyale {
		if r.Players[target].Alliance == AllianceMinority {
			r.applyElimination(target)
			return
		}

		// A majority target survives and must redirect the elimination
		// onto a teammate.
		candidates := r.forcedCandidates(target)
		if len(candidates) == 0 {
			// No teammates left to choose from; abandon the hand-off and
			// restart voting from a cleared state.
			r.Votes = make(map[string]string)
			r.logger.Info("forced elimination abandoned, voting restarts", "target", target)
			return
		}

		r.ForcedEliminationChooserID = target
		r.ForcedEliminationCandidates = candidates
		r.logger.Info("forced elimination hand-off", "chooser", target, "candidates", len(candidates))

		if r.Players[target].IsBot {
			r.applyElimination(candidates[r.rng.IntN(len(candidates))])
		}
		return
	}

	r.applyElimination(target)
}

// resolveAllianceGuesses eliminates every active player whose recorded
// guess does not match their true alliance. Zero wrong guesses records a
// no-elimination result and leaves alliances untouched.
func (r *Room) resolveAllianceGuesses(active []string) {
	wrong := make([]string, 0, len(active))
	for _, id := range active {
		guess, guessed := r.AllianceGuesses[id]
		if guessed && guess != r.Players[id].Alliance {
			wrong = append(wrong, id)
		}
	}

	if len(wrong) > 0 {
		r.applyEliminations(wrong)
		return
	}

	r.EliminatedThisRound = NoElimination
	r.clearTiebreakState()
	r.logger.Info("alliance guesses all correct, nobody eliminated")
}

// tallyVotes counts votes cast by eligible voters for eligible targets;
// anything violating eligibility is silently discarded.
func (r *Room) tallyVotes() map[string]int {
	counts := make(map[string]int)
	for voter, target := range r.Votes {
		if !r.isActive(voter) || !r.isActive(target) {
			continue
		}
		if r.TiebreakerStage == TiebreakRevote {
			if r.isTied(voter) || !r.isTied(target) {
				continue
			}
		}
		counts[target]++
	}
	return counts
}

// tiedLeaders returns all targets achieving the maximum tally, in join
// order so seeded runs are reproducible. An empty tally has no leaders.
func (r *Room) tiedLeaders(counts map[string]int) []string {
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return nil
	}

	var leaders []string
	for _, id := range r.order {
		if counts[id] == max {
			leaders = append(leaders, id)
		}
	}
	return leaders
}

func (r *Room) isTied(playerID string) bool {
	for _, id := range r.TiebreakerTiedPlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// forcedCandidates lists every active majority player other than the
// voted player.
func (r *Room) forcedCandidates(excludeID string) []string {
	var out []string
	for _, id := range r.ActivePlayerIDs() {
		if id != excludeID && r.Players[id].Alliance == AllianceMajority {
			out = append(out, id)
		}
	}
	return out
}

// applyElimination applies a single elimination. Idempotent: a target
// that is missing or already eliminated is a no-op, guarding against
// duplicate resolution.
func (r *Room) applyElimination(targetID string) {
	p, ok := r.Players[targetID]
	if !ok || p.IsEliminated {
		return
	}
	p.IsEliminated = true
	r.finishElimination([]string{targetID})
}

// applyEliminations applies a simultaneous batch (the alliance-guess
// outcome). Targets already eliminated are skipped; an all-skipped batch
// changes nothing.
func (r *Room) applyEliminations(targetIDs []string) {
	seen := make(map[string]bool, len(targetIDs))
	eliminated := make([]string, 0, len(targetIDs))
	for _, id := range targetIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, ok := r.Players[id]
		if !ok || p.IsEliminated {
			continue
		}
		p.IsEliminated = true
		eliminated = append(eliminated, id)
	}
	if len(eliminated) == 0 {
		return
	}
	r.finishElimination(eliminated)
}

// finishElimination is the shared tail of every elimination: record the
// result, clear tiebreak transients, rebalance or declare winners, and
// recompute the per-alliance counts.
func (r *Room) finishElimination(eliminated []string) {
	r.EliminatedThisRound = eliminated[len(eliminated)-1]
	r.clearTiebreakState()

	// Streak math reads alliances as they stood at elimination time, so
	// compute before any rebalance.
	allMajority := true
	for _, id := range eliminated {
		if r.Players[id].Alliance != AllianceMajority {
			allMajority = false
			break
		}
	}

	active := r.ActivePlayerIDs()

	if r.GameMode == ModeBattleRoyale {
		if len(active) <= 2 {
			r.recountAlliances()
			r.CoWinners = active
			r.Winner = ""
			r.Phase = PhaseGameOver
			r.logger.Info("co-winners declared", "winners", active)
			return
		}

		majority, _ := r.allianceSplit(len(active))
		r.assignAlliances(active, majority)
		r.recountAlliances()
		r.logger.Info("alliances rebalanced",
			"active", len(active),
			"majority", r.RemainingMajority,
			"minority", r.RemainingMinority)
		return
	}

	r.recountAlliances()

	if allMajority {
		r.ConsecutiveMajorityEliminations++
	} else {
		r.ConsecutiveMajorityEliminations = 0
	}

	switch {
	case r.RemainingMinority == 0:
		r.Winner = AllianceMajority
	case r.ConsecutiveMajorityEliminations >= 2 || r.RemainingMajority <= r.RemainingMinority:
		r.Winner = AllianceMinority
	}
	if r.Winner != "" {
		r.logger.Info("winner decided", "winner", r.Winner)
	}
}
