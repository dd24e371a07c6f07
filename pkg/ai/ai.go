// Package ai decides actions for automated participants
//
// Decisions never change the session. The only random choice is whether to bluff, and it is drawn from the
// injected source so that a fixed source always yields the same action.
package ai

import (
	"errors"
	"math"

	"holdem-server/internal/rng"
	"holdem-server/pkg/card"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/rank"
)

// DefaultRaiseIncrement is the minimum a raise is increased by when corrected
const DefaultRaiseIncrement = 20

// ErrNotSeated is returned when the participant is not in the hand
var ErrNotSeated = errors.New("participant is not in the hand")

// Actor chooses actions for automated participants
type Actor struct {
	Oracle         rank.Oracle
	Rand           rng.Source
	RaiseIncrement int
}

// New returns an actor with the default raise increment
func New(oracle rank.Oracle, source rng.Source) *Actor {
	return &Actor{
		Oracle:         oracle,
		Rand:           source,
		RaiseIncrement: DefaultRaiseIncrement,
	}
}

// situation is what the participant is facing
type situation struct {
	session *holdem.Session
	hole    card.Cards
	toCall  int
	stack   int
	bet     int
	// pot is the pot including bets not yet swept
	pot int
}

// Decide returns the action the participant takes at its tier
func (a *Actor) Decide(s *holdem.Session, participant string, tier holdem.Tier) (holdem.Action, error) {
	if s == nil || !s.IsContending(participant) {
		return holdem.Action{}, ErrNotSeated
	}

	sit := situation{
		session: s,
		hole:    s.HoleCards[participant],
		toCall:  s.ToCall(participant),
		stack:   s.Stacks[participant],
		bet:     s.BetsThisRound[participant],
		pot:     s.Pot,
	}

	for _, id := range s.AllParticipants {
		sit.pot += s.BetsThisRound[id]
	}

	p := profileFor(tier)
	if len(s.Community) == 0 {
		return a.preflop(sit, p), nil
	}

	return a.postflop(sit, p)
}

func (a *Actor) preflop(sit situation, p profile) holdem.Action {
	if !playable(sit.hole, p) {
		return foldOrCheck(sit)
	}

	if sit.toCall > 0 {
		return holdem.CallAction()
	}

	amount := a.increment()
	if p.potOpen {
		amount = 2*a.increment() + sit.pot/2
	}

	return a.raiseTo(sit, sit.session.CurrentBet+amount)
}

func (a *Actor) postflop(sit situation, p profile) (holdem.Action, error) {
	cards := append(sit.hole.Clone(), sit.session.Community...)
	strength, err := a.Oracle.Strength(cards)
	if err != nil {
		return holdem.Action{}, err
	}

	if strength.Category > rank.OnePair {
		return a.raiseTo(sit, sit.session.CurrentBet+fraction(sit.pot, p.strongFraction)), nil
	}

	drawing := p.countDraws && sit.session.Street < holdem.River &&
		(hasFlushDraw(sit.hole, sit.session.Community) || hasOpenEndedStraightDraw(sit.hole, sit.session.Community))

	if strength.Category == rank.OnePair || drawing {
		if sit.toCall == 0 {
			return holdem.CheckAction(), nil
		}

		if float64(sit.toCall)/float64(sit.pot+sit.toCall) < p.potOdds {
			return holdem.CallAction(), nil
		}

		return holdem.FoldAction(), nil
	}

	if sit.toCall == 0 && sit.session.Street >= p.bluffFrom && a.Rand.Float64() < p.bluffChance {
		return a.raiseTo(sit, sit.session.CurrentBet+fraction(sit.pot, p.bluffFraction)), nil
	}

	return foldOrCheck(sit), nil
}

// raiseTo returns a legal raise as close to amount as possible
// A raise that does not exceed the current bet is bumped by the increment. A raise beyond the stack is all-in,
// and if even that is not a raise, the participant calls or checks.
func (a *Actor) raiseTo(sit situation, amount int) holdem.Action {
	currentBet := sit.session.CurrentBet
	if amount <= currentBet {
		amount = currentBet + a.increment()
	}

	if most := sit.bet + sit.stack; amount > most {
		if most <= currentBet {
			return callOrCheck(sit)
		}

		amount = most
	}

	return holdem.RaiseAction(amount)
}

func (a *Actor) increment() int {
	if a.RaiseIncrement <= 0 {
		return DefaultRaiseIncrement
	}

	return a.RaiseIncrement
}

// playable returns true if the hole cards are worth playing before the flop
func playable(hole card.Cards, p profile) bool {
	if len(hole) != 2 {
		return false
	}

	r1, r2 := hole[0].Rank(), hole[1].Rank()
	if r1 == r2 {
		return true
	}

	if !p.broadPreflop {
		return false
	}

	if r1 >= card.Jack || r2 >= card.Jack {
		return true
	}

	return hole[0].Suit() == hole[1].Suit() && rankGap(r1, r2) <= 2
}

// rankGap returns the distance between two ranks
func rankGap(r1, r2 int) int {
	if r1 > r2 {
		return r1 - r2
	}

	return r2 - r1
}

func fraction(pot int, f float64) int {
	return int(math.Round(float64(pot) * f))
}

func foldOrCheck(sit situation) holdem.Action {
	if sit.toCall > 0 {
		return holdem.FoldAction()
	}

	return holdem.CheckAction()
}

func callOrCheck(sit situation) holdem.Action {
	if sit.toCall > 0 {
		return holdem.CallAction()
	}

	return holdem.CheckAction()
}
