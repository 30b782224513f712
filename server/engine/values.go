package engine

import (
	"fmt"
	"sort"
)

const maxTotal = 21

// HandValue is one partial hand total. A standalone value sits strictly
// below 21; only Combine may land on 21 exactly. The two bounds differ on
// purpose and must stay that way.
type HandValue struct {
	value int
}

// NewHandValue rejects anything outside [0, 21).
func NewHandValue(x int) (HandValue, bool) {
	if x < 0 || x >= maxTotal {
		return HandValue{}, false
	}
	return HandValue{value: x}, true
}

func mustHandValue(x int) HandValue {
	v, ok := NewHandValue(x)
	if !ok {
		panic(fmt.Sprintf("hand value %d out of range", x))
	}
	return v
}

func (v HandValue) Value() int { return v.value }

// Combine adds two partial totals, keeping sums up to and including 21.
func (v HandValue) Combine(other HandValue) (HandValue, bool) {
	sum := v.value + other.value
	if sum > maxTotal {
		return HandValue{}, false
	}
	return HandValue{value: sum}, true
}

// RankValues maps a rank to the totals one card of that rank can contribute.
// Faces count 10; an ace is both 1 and 11.
func RankValues(r Rank) []HandValue {
	switch r {
	case Ace:
		return []HandValue{mustHandValue(1), mustHandValue(11)}
	case Jack, Queen, King:
		return []HandValue{mustHandValue(10)}
	default:
		return []HandValue{mustHandValue(int(r))}
	}
}

func combineValues(acc, card []HandValue) []HandValue {
	out := make([]HandValue, 0, len(acc)*len(card))
	for _, a := range acc {
		for _, c := range card {
			if sum, ok := a.Combine(c); ok {
				out = append(out, sum)
			}
		}
	}
	return out
}

// PossibleTotals folds the hand over every ace interpretation, pruning
// anything above 21 at each step. The pruning is what keeps the fold bounded;
// without it N aces would fan out into 2^N branches. Returned totals are
// sorted and deduplicated (two aces reach 12 twice).
func PossibleTotals(ranks []Rank) []int {
	acc := []HandValue{mustHandValue(0)}
	for _, r := range ranks {
		acc = combineValues(acc, RankValues(r))
	}
	totals := make([]int, 0, len(acc))
	seen := make(map[int]bool, len(acc))
	for _, v := range acc {
		if !seen[v.Value()] {
			seen[v.Value()] = true
			totals = append(totals, v.Value())
		}
	}
	sort.Ints(totals)
	return totals
}

func handRanks(hand []Card) []Rank {
	ranks := make([]Rank, len(hand))
	for i, c := range hand {
		ranks[i] = c.Rank
	}
	return ranks
}

// HandTooLarge reports a bust: a non-empty hand whose every ace
// interpretation exceeds 21. An empty hand is never too large.
func HandTooLarge(hand []Card) bool {
	if len(hand) == 0 {
		return false
	}
	return len(PossibleTotals(handRanks(hand))) == 0
}

// HandHitsTwentyOne reports whether some ace interpretation totals exactly 21.
func HandHitsTwentyOne(hand []Card) bool {
	for _, t := range PossibleTotals(handRanks(hand)) {
		if t == maxTotal {
			return true
		}
	}
	return false
}
