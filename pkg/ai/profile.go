package ai

import (
	"holdem-server/pkg/holdem"
)

// profile tunes the decisions of a tier
type profile struct {
	// broadPreflop plays high cards and suited connectors, not just pairs
	broadPreflop bool
	// potOpen scales the opening raise with the pot instead of using the increment
	potOpen bool
	// strongFraction is the share of the pot raised with better than one pair
	strongFraction float64
	// potOdds is the most a call may be of the resulting pot
	potOdds float64
	// countDraws treats an open draw like one pair
	countDraws    bool
	bluffChance   float64
	bluffFraction float64
	bluffFrom     holdem.Street
}

var profiles = map[holdem.Tier]profile{
	holdem.Easy: {
		strongFraction: 0.5,
		potOdds:        0.25,
		bluffChance:    0.15,
		bluffFraction:  0.33,
		bluffFrom:      holdem.Flop,
	},
	holdem.Medium: {
		broadPreflop:   true,
		strongFraction: 0.75,
		potOdds:        0.35,
		bluffChance:    0.2,
		bluffFraction:  0.5,
		bluffFrom:      holdem.Turn,
	},
	holdem.Hard: {
		broadPreflop:   true,
		potOpen:        true,
		strongFraction: 1,
		potOdds:        0.4,
		countDraws:     true,
		bluffChance:    0.25,
		bluffFraction:  0.66,
		bluffFrom:      holdem.River,
	},
}

func profileFor(tier holdem.Tier) profile {
	if p, ok := profiles[tier]; ok {
		return p
	}

	return profiles[holdem.Medium]
}
