package game

// allianceSplit decides how many active players belong to each alliance.
//
// LionsVsSnakes uses a fixed lookup table; nine players get an unweighted
// coin flip between 5/4 and 6/3. BattleRoyale computes the split from the
// active count so it can rebalance after every elimination: even N gives
// the majority a two-seat edge, odd N splits ceil/floor.
func (r *Room) allianceSplit(n int) (majority, minority int) {
	if r.GameMode == ModeBattleRoyale {
		if n%2 == 0 {
			return n/2 + 1, n/2 - 1
		}
		return (n + 1) / 2, n / 2
	}

	switch {
	case n <= 4:
		return 3, 1
	case n == 5:
		return 3, 2
	case n == 6:
		return 4, 2
	case n == 7:
		return 4, 3
	case n == 8:
		return 5, 3
	case n == 9:
		if r.rng.IntN(2) == 0 {
			return 5, 4
		}
		return 6, 3
	default:
		return 6, 4
	}
}

// assignAlliances shuffles the given ids and deals the first majoritySize
// into the majority alliance. No attempt is made to preserve prior
// membership; BattleRoyale rebalancing relies on that.
func (r *Room) assignAlliances(ids []string, majoritySize int) {
	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for i, id := range shuffled {
		if i < majoritySize {
			r.Players[id].Alliance = AllianceMajority
		} else {
			r.Players[id].Alliance = AllianceMinority
		}
	}
}

// assignNewMotifs picks two not-yet-used motif phrases and hands one to
// each alliance. When fewer than two remain unused the used set resets
// and the full pool becomes available again.
func (r *Room) assignNewMotifs() {
	available := make([]int, 0, len(r.pool.Motifs))
	for i, m := range r.pool.Motifs {
		if !r.UsedMotifs[m.Text] {
			available = append(available, i)
		}
	}

	if len(available) < 2 {
		r.UsedMotifs = make(map[string]bool)
		available = available[:0]
		for i := range r.pool.Motifs {
			available = append(available, i)
		}
	}

	r.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	maj := r.pool.Motifs[available[0]]
	min := r.pool.Motifs[available[1]]

	r.AllianceMotifs[AllianceMajority] = maj.Text
	r.AllianceKeywords[AllianceMajority] = maj.Keywords
	r.AllianceMotifs[AllianceMinority] = min.Text
	r.AllianceKeywords[AllianceMinority] = min.Keywords
	r.UsedMotifs[maj.Text] = true
	r.UsedMotifs[min.Text] = true
}

// recountAlliances recomputes the live per-alliance counts from the
// roster. Must be called after every elimination or rebalance so that
// RemainingMajority+RemainingMinority always equals the active count.
func (r *Room) recountAlliances() {
	maj, min := 0, 0
	for _, p := range r.Players {
		if !p.Active() {
			continue
		}
		switch p.Alliance {
		case AllianceMajority:
			maj++
		case AllianceMinority:
			min++
		}
	}
	r.RemainingMajority = maj
	r.RemainingMinority = min
}
