package rank

import (
	"sort"

	"holdem-server/pkg/card"
)

// partialStrength evaluates fewer than five cards
// Only rank groupings are possible: high card, pairs, trips, and quads. Kickers break ties.
func partialStrength(cards card.Cards) Strength {
	counts := make(map[int]int)
	for _, c := range cards {
		counts[c.Rank()]++
	}

	type group struct {
		rank  int
		count int
	}

	groups := make([]group, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, group{rank: r, count: n})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].rank > groups[j].rank
	})

	var cat Category
	switch {
	case groups[0].count == 4:
		cat = FourOfAKind
	case groups[0].count == 3:
		cat = ThreeOfAKind
	case groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2:
		cat = TwoPair
	case groups[0].count == 2:
		cat = OnePair
	default:
		cat = HighCard
	}

	value := int(cat)
	for i := 0; i < 4; i++ {
		value *= 13
		if i < len(groups) {
			value += groups[i].rank
		}
	}

	return Strength{
		Category: cat,
		Value:    value,
	}
}
