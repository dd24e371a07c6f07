package ai

import (
	"holdem-server/pkg/card"
)

// hasFlushDraw returns true if four cards share a suit and a hole card is one of them
func hasFlushDraw(hole, community card.Cards) bool {
	counts := make(map[card.Suit]int)
	for _, c := range hole {
		counts[c.Suit()]++
	}

	for _, c := range community {
		counts[c.Suit()]++
	}

	for _, c := range hole {
		if counts[c.Suit()] == 4 {
			return true
		}
	}

	return false
}

// hasOpenEndedStraightDraw returns true if four consecutive ranks can be completed at either end
// A hole card must be part of the run. An ace counts high and low.
func hasOpenEndedStraightDraw(hole, community card.Cards) bool {
	// index 0 is a low ace, 1 is a two, ..., 13 is a high ace
	var present, fromHole [14]bool
	mark := func(c card.Card, isHole bool) {
		idx := c.Rank() + 1
		present[idx] = true
		fromHole[idx] = fromHole[idx] || isHole
		if c.Rank() == card.Ace {
			present[0] = true
			fromHole[0] = fromHole[0] || isHole
		}
	}

	for _, c := range hole {
		mark(c, true)
	}

	for _, c := range community {
		mark(c, false)
	}

	// the run low..low+3 needs an open rank on both sides
	for low := 1; low+4 <= 13; low++ {
		usesHole := false
		complete := true
		for i := low; i < low+4; i++ {
			if !present[i] {
				complete = false
				break
			}

			usesHole = usesHole || fromHole[i]
		}

		if complete && usesHole && !present[low-1] && !present[low+4] {
			return true
		}
	}

	return false
}
