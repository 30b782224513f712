package engine

import "strings"

type Action string

const (
	Hit        Action = "hit"
	Stand      Action = "stand"
	DoubleDown Action = "double-down"
	SplitCards Action = "split"
	Surrender  Action = "surrender"
)

// ParseAction maps a raw command line to an action. Matching is
// case-sensitive after trimming surrounding whitespace; unrecognized input
// is no action at all, not an error.
func ParseAction(raw string) (Action, bool) {
	switch strings.TrimSpace(raw) {
	case "hit":
		return Hit, true
	case "stand":
		return Stand, true
	case "double-down":
		return DoubleDown, true
	case "split":
		return SplitCards, true
	case "surrender":
		return Surrender, true
	default:
		return "", false
	}
}

type Status string

const (
	Continuing Status = "Continuing"
	Won        Status = "Won"
	Lost       Status = "Lost"
)

// Round owns the deck and the player's hand for one play-through. Nothing
// else touches either until the round is over.
type Round struct {
	status Status
	deck   *Deck
	hand   []Card
}

// Start begins a round, taking sole ownership of the deck.
func Start(deck *Deck) *Round {
	return &Round{status: Continuing, deck: deck}
}

// Apply advances the round by one action and returns the resulting status.
// Won and Lost are fixed points: every action on a finished round is a no-op.
func (r *Round) Apply(a Action) Status {
	if r.status != Continuing {
		return r.status
	}
	switch a {
	case Hit:
		if c, ok := r.deck.Draw(); ok {
			r.hand = append(r.hand, c)
		}
		// An exhausted deck re-evaluates the unchanged hand.
		switch {
		case HandTooLarge(r.hand):
			r.status = Lost
		case HandHitsTwentyOne(r.hand):
			r.status = Won
		}
	case Surrender:
		r.status = Lost
	case Stand, DoubleDown, SplitCards:
		// Not implemented yet; for now these forfeit the round.
		r.status = Lost
	}
	return r.status
}

func (r *Round) Status() Status { return r.status }

// Hand returns a copy of the player's cards in draw order.
func (r *Round) Hand() []Card {
	out := make([]Card, len(r.hand))
	copy(out, r.hand)
	return out
}

// Totals returns the hand's achievable totals, sorted and deduplicated.
func (r *Round) Totals() []int {
	return PossibleTotals(handRanks(r.hand))
}

func (r *Round) CardsRemaining() int { return r.deck.Remaining() }
