package rank

import (
	"github.com/chehsunliu/poker"

	"holdem-server/pkg/card"
)

// worstRank is the weakest rank returned by the lookup tables (7-5-4-3-2 offsuit)
const worstRank = 7462

// Treys evaluates hands with the chehsunliu/poker lookup tables
// Five to seven cards are evaluated by the library. Two to four cards, which can only happen before the
// board is complete, are evaluated by counting ranks.
type Treys struct{}

// Strength returns the strength of the cards
func (Treys) Strength(cards card.Cards) (Strength, error) {
	if err := validate(cards); err != nil {
		return Strength{}, err
	}

	if len(cards) < 5 {
		return partialStrength(cards), nil
	}

	pc := make([]poker.Card, len(cards))
	for i, c := range cards {
		pc[i] = poker.NewCard(c.String())
	}

	r := poker.Evaluate(pc)
	return Strength{
		Category: categoryFromRank(r),
		Value:    worstRank + 1 - int(r),
	}, nil
}

func categoryFromRank(r int32) Category {
	if r == 1 {
		return RoyalFlush
	}

	switch poker.RankClass(r) {
	case 1:
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return OnePair
	}

	return HighCard
}
