package engine

import (
	"fmt"
	"math/rand"
	"time"
)

type Suit int

const (
	Clubs Suit = iota
	Hearts
	Diamonds
	Spades
)

func (s Suit) String() string {
	suits := []string{"♣", "♥", "♦", "♠"}
	return suits[s]
}

type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

func (r Rank) String() string {
	ranks := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	return ranks[r-Two]
}

// Card is an immutable (suit, rank) pair.
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

const deckSize = 52

// Deck partitions the 52-card set into the cards still in the pile and the
// cards handed out so far. Cards only ever move from remaining to drawn.
type Deck struct {
	remaining []Card
	drawn     []Card
}

// NewDeck builds a full deck in suit-major, rank-minor order with nothing
// drawn yet.
func NewDeck() *Deck {
	cards := make([]Card, 0, deckSize)
	for s := Clubs; s <= Spades; s++ {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return &Deck{remaining: cards}
}

// NewShuffledDeck builds and shuffles a deck. A zero seed falls back to the
// clock so casual play gets a fresh deal.
func NewShuffledDeck(seed int64) *Deck {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	d := NewDeck()
	d.Shuffle(rand.New(rand.NewSource(seed)))
	return d
}

// Shuffle permutes the remaining cards in place.
func (d *Deck) Shuffle(r *rand.Rand) {
	for i := len(d.remaining) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		d.remaining[i], d.remaining[j] = d.remaining[j], d.remaining[i]
	}
}

// Draw pops the top of the pile onto the drawn stack. An exhausted deck
// reports false rather than an error; callers treat it as no card.
func (d *Deck) Draw() (Card, bool) {
	if len(d.remaining) == 0 {
		return Card{}, false
	}
	c := d.remaining[len(d.remaining)-1]
	d.remaining = d.remaining[:len(d.remaining)-1]
	d.drawn = append(d.drawn, c)
	return c, true
}

func (d *Deck) Remaining() int { return len(d.remaining) }
func (d *Deck) Drawn() int     { return len(d.drawn) }
