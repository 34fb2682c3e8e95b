package game

import "strconv"

// Hand composition on deal: every player starts with seven image cards
// and eight word cards.
const (
	handImageCards = 7
	handWordCards  = 8
)

// newCard clones pool content into a dealt card with a room-unique id, so
// two players holding the same word still hold distinct cards.
func (r *Room) newCard(kind CardType, content string) Card {
	r.nextCardID++
	return Card{
		ID:      "c" + strconv.Itoa(r.nextCardID),
		Type:    kind,
		Content: content,
	}
}

// dealHand draws a fresh hand from the content pool. Pools may be smaller
// than the hand size; draws are with replacement across players, without
// replacement within one player's draw where the pool allows it.
func (r *Room) dealHand() []Card {
	hand := make([]Card, 0, handImageCards+handWordCards)
	for _, idx := range r.samplePool(len(r.pool.Images), handImageCards) {
		hand = append(hand, r.newCard(CardImage, r.pool.Images[idx]))
	}
	for _, idx := range r.samplePool(len(r.pool.Words), handWordCards) {
		hand = append(hand, r.newCard(CardWord, r.pool.Words[idx]))
	}
	return hand
}

// drawReplacementCard picks a random card from either pool, used to refill
// a BattleRoyale hand after a share.
func (r *Room) drawReplacementCard() Card {
	if r.rng.IntN(2) == 0 {
		return r.newCard(CardImage, r.pool.Images[r.rng.IntN(len(r.pool.Images))])
	}
	return r.newCard(CardWord, r.pool.Words[r.rng.IntN(len(r.pool.Words))])
}

// samplePool returns up to want distinct indices into a pool of size n,
// or n indices when the pool is smaller than the request.
func (r *Room) samplePool(n, want int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	r.rng.Shuffle(n, func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})
	if want > n {
		want = n
	}
	return idx[:want]
}
