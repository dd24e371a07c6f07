package rank

import (
	"sort"
)

type tier struct {
	strength int
	hands    []Hand
}

// WinManager groups hands by strength
type WinManager map[int]*tier

// NewWinManager returns an empty WinManager
func NewWinManager() WinManager {
	return make(WinManager)
}

// AddHand adds an evaluated hand
func (w WinManager) AddHand(h Hand) {
	t, ok := w[h.Strength.Value]
	if !ok {
		t = &tier{
			strength: h.Strength.Value,
			hands:    make([]Hand, 0),
		}
	}

	t.hands = append(t.hands, h)
	w[h.Strength.Value] = t
}

// GetSortedTiers returns groups of hands from strongest to weakest
func (w WinManager) GetSortedTiers() [][]Hand {
	tiers := make([]*tier, 0, len(w))
	for _, tier := range w {
		tiers = append(tiers, tier)
	}

	sort.Sort(sort.Reverse(sortByStrength(tiers)))

	tiered := make([][]Hand, len(tiers))
	for i, t := range tiers {
		tiered[i] = t.hands
	}

	return tiered
}

type sortByStrength []*tier

func (s sortByStrength) Len() int {
	return len(s)
}

func (s sortByStrength) Less(i, j int) bool {
	return s[i].strength < s[j].strength
}

func (s sortByStrength) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
