// Package potmanager splits the chips committed during a hand into a main pot and side pots, and pays them
// out to the winners of each
package potmanager

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoContenders is returned when there is nobody left to award a pot to
var ErrNoContenders = errors.New("no contenders")

// WinnersFunc returns the subset of eligible participants that win a pot
type WinnersFunc func(eligible []string) ([]string, error)

// Layers computes the pots from each participant's total contribution
//
// Every distinct contribution of a contending participant is a level. The pot for a level receives, from every
// participant including the folded ones, whatever they committed between the previous level and this one.
// Anything committed above the highest contending level is added to the last pot.
func Layers(contributions []Contribution) Pots {
	levelSet := make(map[int]bool)
	for _, c := range contributions {
		if c.contending() && c.Amount > 0 {
			levelSet[c.Amount] = true
		}
	}

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	if len(levels) == 0 {
		total := 0
		for _, c := range contributions {
			total += c.Amount
		}

		if total == 0 {
			return Pots{}
		}

		return Pots{{Amount: total, Eligible: contenders(contributions, 0)}}
	}

	pots := make(Pots, 0, len(levels))
	prevLevel := 0
	for _, level := range levels {
		amount := 0
		for _, c := range contributions {
			amount += clamp(min(c.Amount, level) - prevLevel)
		}

		pots = append(pots, &Pot{
			Amount:   amount,
			Eligible: contenders(contributions, level),
		})

		prevLevel = level
	}

	last := pots[len(pots)-1]
	for _, c := range contributions {
		last.Amount += clamp(c.Amount - prevLevel)
	}

	return pots
}

// Distribute resolves the winners of every pot and returns how much each participant is paid
// Uneven chips go to the winners nearest clockwise from the button, one chip at a time.
func Distribute(pots Pots, contributions []Contribution, button, seats int, winnersFor WinnersFunc) (map[string]int, error) {
	bySeat := make(map[string]Contribution, len(contributions))
	for _, c := range contributions {
		bySeat[c.ID] = c
	}

	payouts := make(map[string]int)
	for i, pot := range pots {
		if len(pot.Eligible) == 0 {
			return nil, fmt.Errorf("pot %d: %w", i, ErrNoContenders)
		}

		winners := pot.Eligible
		if len(winners) > 1 {
			var err error
			if winners, err = winnersFor(pot.Eligible); err != nil {
				return nil, fmt.Errorf("pot %d: %w", i, err)
			}

			if len(winners) == 0 {
				return nil, fmt.Errorf("pot %d: %w", i, ErrNoContenders)
			}
		}

		pot.Winners = winners

		seated := make([]Contribution, len(winners))
		for j, id := range winners {
			c, ok := bySeat[id]
			if !ok {
				return nil, fmt.Errorf("pot %d: unknown winner %s", i, id)
			}

			seated[j] = c
		}

		for id, amount := range Split(pot.Amount, seated, button, seats) {
			payouts[id] += amount
		}
	}

	return payouts, nil
}

// Split divides the amount evenly among the winners
// The remainder is handed out one chip at a time, starting with the winner nearest clockwise from the button.
func Split(amount int, winners []Contribution, button, seats int) map[string]int {
	split := make(map[string]int, len(winners))
	if len(winners) == 0 {
		return split
	}

	ordered := make([]Contribution, len(winners))
	copy(ordered, winners)
	sort.SliceStable(ordered, func(i, j int) bool {
		return clockwiseDistance(ordered[i].Seat, button, seats) < clockwiseDistance(ordered[j].Seat, button, seats)
	})

	share := amount / len(ordered)
	remainder := amount % len(ordered)
	for i, w := range ordered {
		split[w.ID] = share
		if i < remainder {
			split[w.ID]++
		}
	}

	return split
}

// clockwiseDistance is how many seats after the button the seat is, the seat left of the button being 0
func clockwiseDistance(seat, button, seats int) int {
	if seats <= 0 {
		return seat
	}

	return ((seat-button-1)%seats + seats) % seats
}

func contenders(contributions []Contribution, level int) []string {
	ids := make([]string, 0, len(contributions))
	for _, c := range contributions {
		if c.contending() && c.Amount >= level {
			ids = append(ids, c.ID)
		}
	}

	return ids
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}

	return n
}
