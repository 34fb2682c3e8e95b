package game

// Bot play policy. Bots act instantly at the moment a phase opens so a
// room full of bots never waits on anyone: they share a random card when
// the dance starts, vote for a random opponent when voting opens, revote
// within the tied set, and coin-flip their alliance guess. Iteration is
// always in join order so a seeded room replays identically.

// botShareCards makes every active paired bot share a random card.
func (r *Room) botShareCards() {
	for _, id := range r.ActivePlayerIDs() {
		p := r.Players[id]
		if !p.IsBot || len(p.Hand) == 0 {
			continue
		}
		if _, paired := r.DancePairs[id]; !paired {
			continue
		}
		card := p.Hand[r.rng.IntN(len(p.Hand))]
		if err := r.ShareCard(id, card.ID); err != nil {
			r.logger.Warn("bot share failed", "bot", id, "error", err)
		}
	}
}

// botCastVotes makes every eligible active bot vote. With a nil restrict
// set each bot votes for a random other active player; during a revote
// only non-tied bots vote and only tied players are targets.
func (r *Room) botCastVotes(restrictTo []string) {
	for _, id := range r.ActivePlayerIDs() {
		p := r.Players[id]
		if !p.IsBot {
			continue
		}

		var pool []string
		if restrictTo == nil {
			for _, other := range r.ActivePlayerIDs() {
				if other != id {
					pool = append(pool, other)
				}
			}
		} else {
			if r.isTied(id) {
				continue
			}
			pool = restrictTo
		}
		if len(pool) == 0 {
			continue
		}

		r.Votes[id] = pool[r.rng.IntN(len(pool))]
	}
}

// botGuessAlliances seeds a uniform guess for every active bot when the
// alliance-guess tiebreak opens.
func (r *Room) botGuessAlliances() {
	for _, id := range r.ActivePlayerIDs() {
		if !r.Players[id].IsBot {
			continue
		}
		if r.rng.IntN(2) == 0 {
			r.AllianceGuesses[id] = AllianceMajority
		} else {
			r.AllianceGuesses[id] = AllianceMinority
		}
	}
}
