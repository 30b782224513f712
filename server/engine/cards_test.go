package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardSet(cards []Card) map[Card]bool {
	set := make(map[Card]bool, len(cards))
	for _, c := range cards {
		set[c] = true
	}
	return set
}

func TestNewDeckComplete(t *testing.T) {
	d := NewDeck()

	require.Equal(t, 52, d.Remaining())
	require.Equal(t, 0, d.Drawn())

	set := cardSet(d.remaining)
	assert.Len(t, set, 52, "every (suit, rank) pair exactly once")

	// Suit-major, rank-minor construction order.
	assert.Equal(t, Card{Suit: Clubs, Rank: Two}, d.remaining[0])
	assert.Equal(t, Card{Suit: Clubs, Rank: Ace}, d.remaining[12])
	assert.Equal(t, Card{Suit: Spades, Rank: Ace}, d.remaining[51])
}

func TestShufflePreservesCardSet(t *testing.T) {
	d := NewDeck()
	before := cardSet(d.remaining)

	d.Shuffle(rand.New(rand.NewSource(42)))

	assert.Equal(t, before, cardSet(d.remaining))
	assert.Equal(t, 52, d.Remaining())
	assert.Equal(t, 0, d.Drawn())
}

func TestDrawMovesCardsUntilEmpty(t *testing.T) {
	d := NewShuffledDeck(7)

	seen := make(map[Card]bool)
	for i := 1; i <= 52; i++ {
		c, ok := d.Draw()
		require.True(t, ok, "draw %d", i)
		require.False(t, seen[c], "card %s drawn twice", c)
		seen[c] = true

		assert.Equal(t, 52-i, d.Remaining())
		assert.Equal(t, i, d.Drawn())
	}

	assert.Len(t, seen, 52)

	// Exhausted deck: no card, not an error, and the counts stay put.
	_, ok := d.Draw()
	assert.False(t, ok)
	assert.Equal(t, 0, d.Remaining())
	assert.Equal(t, 52, d.Drawn())
}

func TestDrawIsAStack(t *testing.T) {
	d := NewDeck()

	c, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, Card{Suit: Spades, Rank: Ace}, c, "draw takes the last remaining card")
	assert.Equal(t, c, d.drawn[len(d.drawn)-1])
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{Card{Suit: Spades, Rank: Ace}, "A♠"},
		{Card{Suit: Hearts, Rank: Ten}, "10♥"},
		{Card{Suit: Clubs, Rank: Two}, "2♣"},
		{Card{Suit: Diamonds, Rank: King}, "K♦"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.card.String())
	}
}
