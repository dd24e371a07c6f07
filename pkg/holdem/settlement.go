package holdem

import (
	"holdem-server/pkg/card"
	"holdem-server/pkg/potmanager"
	"holdem-server/pkg/rank"
)

// SettlementReason is why the hand ended
type SettlementReason string

// settlement reasons
const (
	FoldOut  SettlementReason = "fold-out"
	Showdown SettlementReason = "showdown"
)

// Settlement is the outcome of a hand
type Settlement struct {
	Reason SettlementReason `json:"reason"`
	// Payouts maps each winner to the chips awarded
	Payouts map[string]int  `json:"payouts"`
	Pots    potmanager.Pots `json:"pots"`
	// Hands are the hands shown down, in seat order
	Hands []ShownHand `json:"hands,omitempty"`
}

// ShownHand is a hand revealed at showdown
type ShownHand struct {
	Participant string        `json:"participant"`
	HoleCards   card.Cards    `json:"holeCards"`
	Category    rank.Category `json:"category"`
	Value       int           `json:"value"`
}

// Winners returns the participants paid by the settlement, in the order given
func (s *Settlement) Winners(order []string) []string {
	winners := make([]string, 0, len(s.Payouts))
	for _, id := range order {
		if s.Payouts[id] > 0 {
			winners = append(winners, id)
		}
	}

	return winners
}

func (s *Settlement) clone() *Settlement {
	c := *s
	c.Payouts = cloneInts(s.Payouts)
	c.Pots = make(potmanager.Pots, len(s.Pots))
	for i, pot := range s.Pots {
		p := *pot
		p.Eligible = cloneStrings(pot.Eligible)
		p.Winners = cloneStrings(pot.Winners)
		c.Pots[i] = &p
	}

	if s.Hands != nil {
		c.Hands = make([]ShownHand, len(s.Hands))
		for i, h := range s.Hands {
			h.HoleCards = h.HoleCards.Clone()
			c.Hands[i] = h
		}
	}

	return &c
}

// settleFoldOut awards everything to the last contender without evaluating any hands
func (s *Session) settleFoldOut() *Settlement {
	s.sweep()

	winner := s.Players[0]
	amount := s.Pot

	s.Stacks[winner] += amount
	s.Pot = 0
	s.TurnIndex = 0
	s.Street = Complete
	s.Settlement = &Settlement{
		Reason:  FoldOut,
		Payouts: map[string]int{winner: amount},
		Pots: potmanager.Pots{{
			Amount:   amount,
			Eligible: []string{winner},
			Winners:  []string{winner},
		}},
	}

	return s.Settlement
}

// settleShowdown splits the pot into layers and awards each to its best eligible hands
func (s *Session) settleShowdown(oracle rank.Oracle) (*Settlement, error) {
	hands := make(map[string]rank.Hand, len(s.Players))
	shown := make([]ShownHand, 0, len(s.Players))
	for _, id := range s.AllParticipants {
		if !s.IsContending(id) {
			continue
		}

		cards := append(s.HoleCards[id].Clone(), s.Community...)
		h, err := rank.Evaluate(oracle, id, cards)
		if err != nil {
			return nil, &SettlementError{HandID: s.HandID, Err: err}
		}

		hands[id] = h
		shown = append(shown, ShownHand{
			Participant: id,
			HoleCards:   s.HoleCards[id].Clone(),
			Category:    h.Strength.Category,
			Value:       h.Strength.Value,
		})
	}

	contributions := s.contributions()
	pots := potmanager.Layers(contributions)
	payouts, err := potmanager.Distribute(pots, contributions, s.Button, len(s.AllParticipants), func(eligible []string) ([]string, error) {
		candidates := make([]rank.Hand, len(eligible))
		for i, id := range eligible {
			candidates[i] = hands[id]
		}

		winners := rank.Winners(candidates)
		ids := make([]string, len(winners))
		for i, w := range winners {
			ids[i] = w.ID
		}

		return ids, nil
	})
	if err != nil {
		return nil, &SettlementError{HandID: s.HandID, Err: err}
	}

	for id, amount := range payouts {
		s.Stacks[id] += amount
	}

	s.Pot = 0
	s.TurnIndex = 0
	s.Street = Complete
	s.Settlement = &Settlement{
		Reason:  Showdown,
		Payouts: payouts,
		Pots:    pots,
		Hands:   shown,
	}

	return s.Settlement, nil
}

// contributions returns what every participant has committed this hand
func (s *Session) contributions() []potmanager.Contribution {
	c := make([]potmanager.Contribution, len(s.AllParticipants))
	for i, id := range s.AllParticipants {
		c[i] = potmanager.Contribution{
			ID:     id,
			Seat:   i,
			Amount: s.Contributed[id] + s.BetsThisRound[id],
			Folded: !s.IsContending(id),
		}
	}

	return c
}
