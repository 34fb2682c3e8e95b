package game

// pairActivePlayers builds this round's dance pairing as a single cyclic
// rotation over a uniform shuffle: position i sends to position i+1 mod n.
// Every active player gets exactly one outgoing and one incoming pairing,
// and nobody is paired with themself while at least two players remain.
func (r *Room) pairActivePlayers() map[string]string {
	active := r.ActivePlayerIDs()
	r.rng.Shuffle(len(active), func(i, j int) {
		active[i], active[j] = active[j], active[i]
	})

	pairs := make(map[string]string, len(active))
	for i, id := range active {
		pairs[id] = active[(i+1)%len(active)]
	}
	return pairs
}

// ShareCard moves a card from the caller's hand into this round's shared
// set. BattleRoyale hands are refilled immediately with a fresh clone
// from the content pool, so hand size is invariant there; LionsVsSnakes
// hands shrink by one per share.
func (r *Room) ShareCard(callerID, cardID string) error {
	if r.Phase != PhasePrivateDance {
		return ErrWrongPhase
	}
	p, ok := r.Players[callerID]
	if !ok {
		return ErrNotMember
	}
	if p.IsEliminated {
		return ErrEliminated
	}

	idx := -1
	for i, c := range p.Hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotInHand
	}

	r.SharedCards[callerID] = p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	if r.GameMode == ModeBattleRoyale {
		p.Hand = append(p.Hand, r.drawReplacementCard())
	}
	return nil
}

// dancePartnerOf returns the id whose shared card is shown to viewerID
// during the dance: the viewer's outgoing partner, falling back to
// whoever sends to the viewer.
func (r *Room) dancePartnerOf(viewerID string) string {
	if partner, ok := r.DancePairs[viewerID]; ok {
		return partner
	}
	for sender, receiver := range r.DancePairs {
		if receiver == viewerID {
			return sender
		}
	}
	return ""
}

// allPairsShared reports whether every pairing has both sides populated.
func (r *Room) allPairsShared() bool {
	for sender, receiver := range r.DancePairs {
		if _, ok := r.SharedCards[sender]; !ok {
			return false
		}
		if _, ok := r.SharedCards[receiver]; !ok {
			return false
		}
	}
	return true
}
