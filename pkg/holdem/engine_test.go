package holdem

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-server/pkg/card"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/rank"
)

func TestApply_rejections(t *testing.T) {
	s := newSession(t, nil, 100, 100, 100)

	_, _, err := Apply(nil, rank.Treys{}, "a", CheckAction())
	assert.ErrorIs(t, err, ErrGameNotFound)

	assertRejected(t, s, "b", CheckAction(), ErrOutOfTurn)
	assertRejected(t, s, "z", CheckAction(), ErrUnknownParticipant)
	assertRejected(t, s, "a", RaiseAction(0), ErrIllegalRaise)
	assertRejected(t, s, "a", RaiseAction(101), ErrInsufficientFunds)
	assertRejected(t, s, "a", Action{Kind: "bet"}, ErrUnknownAction)

	s, _ = mustApply(t, s, "a", RaiseAction(40))
	assertRejected(t, s, "b", CheckAction(), ErrIllegalCheck)
	assertRejected(t, s, "b", RaiseAction(40), ErrIllegalRaise)
	assertRejected(t, s, "b", RaiseAction(30), ErrIllegalRaise)
	assertRejected(t, s, "a", CallAction(), ErrOutOfTurn)

	s, _ = mustApply(t, s, "b", FoldAction())
	assertRejected(t, s, "b", CallAction(), ErrOutOfTurn)

	s, _ = mustApply(t, s, "c", FoldAction())
	require.True(t, s.IsOver())
	assertRejected(t, s, "a", CheckAction(), ErrHandOver)
}

func TestApply_doesNotModifySession(t *testing.T) {
	s := newSession(t, nil, 100, 100)
	before := s.Clone()

	next, result := mustApply(t, s, "a", RaiseAction(30))
	assert.Equal(t, before, s)
	assert.Equal(t, 70, next.Stacks["a"])
	assert.Equal(t, 30, next.BetsThisRound["a"])
	assert.Equal(t, 30, next.CurrentBet)
	assert.Equal(t, ActionRecord{Seq: 1, Participant: "a", Action: RaiseAction(30), Committed: 30, Street: Preflop}, result.Record)
}

func TestApply_checkRoundClosesOnLastCheck(t *testing.T) {
	a := assert.New(t)

	d := stackDeck(t, "2c,3c,4c,5d,7s", "Ah,Ad", "Kh,Kd", "Qh,Qd", "Jh,Jd")
	s := newSession(t, d, 100, 100, 100, 100)

	var result *Result
	for i, id := range []string{"a", "b", "c"} {
		s, result = mustApply(t, s, id, CheckAction())
		a.False(result.RoundClosed, "check %d", i)
		a.Empty(s.Community)
		a.Equal(Preflop, s.Street)
	}

	s, result = mustApply(t, s, "d", CheckAction())
	a.True(result.RoundClosed)
	a.Equal(Flop, result.Street)
	a.Equal("2c,3c,4c", s.Community.String())
	a.Equal(card.NumCards-8-4, s.Deck.CardsLeft())
	a.Empty(s.ActionLog)
	a.Equal("a", s.Actor())

	for _, id := range []string{"a", "b", "c"} {
		s, result = mustApply(t, s, id, CheckAction())
		a.False(result.RoundClosed)
	}

	s, result = mustApply(t, s, "d", CheckAction())
	a.True(result.RoundClosed)
	a.Equal("2c,3c,4c,5d", s.Community.String())
	a.Equal(Turn, s.Street)
}

func TestApply_raiseReopensAction(t *testing.T) {
	a := assert.New(t)

	s := newSession(t, nil, 500, 500, 500)
	s, _ = mustApply(t, s, "a", CheckAction())
	s, _ = mustApply(t, s, "b", RaiseAction(40))
	s, result := mustApply(t, s, "c", CallAction())
	a.False(result.RoundClosed, "a acted before the raise and must act again")
	a.Equal("a", s.Actor())

	s, result = mustApply(t, s, "a", CallAction())
	a.True(result.RoundClosed)
	a.Equal(120, s.Pot)
	a.Equal(map[string]int{"a": 40, "b": 40, "c": 40}, s.Contributed)
	a.Equal(0, s.CurrentBet)
	a.Equal(map[string]int{"a": 0, "b": 0, "c": 0}, s.BetsThisRound)
	a.Len(s.History, 4)
}

func TestApply_reraise(t *testing.T) {
	a := assert.New(t)

	s := newSession(t, nil, 500, 500)
	s, _ = mustApply(t, s, "a", RaiseAction(20))
	s, _ = mustApply(t, s, "b", RaiseAction(60))
	s, result := mustApply(t, s, "a", RaiseAction(100))
	a.Equal(80, result.Record.Committed)
	a.Equal(400, s.Stacks["a"])

	s, result = mustApply(t, s, "b", CallAction())
	a.Equal(40, result.Record.Committed)
	a.True(result.RoundClosed)
	a.Equal(200, s.Pot)
}

func TestApply_turnOrderAfterFold(t *testing.T) {
	a := assert.New(t)

	s := newSession(t, nil, 100, 100, 100, 100)
	s, _ = mustApply(t, s, "a", CheckAction())
	a.Equal(1, s.TurnIndex)

	s, _ = mustApply(t, s, "b", FoldAction())
	a.Equal([]string{"a", "c", "d"}, s.Players)
	a.Equal("c", s.Actor())
	a.Equal([]string{"a", "b", "c", "d"}, s.AllParticipants)

	// a fold can close the round
	s, _ = mustApply(t, s, "c", CheckAction())
	s, _ = mustApply(t, s, "d", RaiseAction(10))
	s, _ = mustApply(t, s, "a", CallAction())
	s, _ = mustApply(t, s, "c", FoldAction())
	a.Equal([]string{"a", "d"}, s.Players)
	a.Equal(Flop, s.Street, "c folding closed the round")
	a.Equal("a", s.Actor())
}

func TestApply_foldOut(t *testing.T) {
	a := assert.New(t)

	s := newSession(t, nil, 300, 300, 300, 300)
	oracle := failingOracle(t)

	var result *Result
	var err error
	s, result, err = Apply(s, oracle, "a", RaiseAction(100))
	require.NoError(t, err)

	for _, id := range []string{"b", "c", "d"} {
		s, result, err = Apply(s, oracle, id, FoldAction())
		require.NoError(t, err)
	}

	require.NotNil(t, result.Settlement)
	a.True(s.IsOver())
	a.Equal(FoldOut, result.Settlement.Reason)
	a.Equal(map[string]int{"a": 100}, result.Settlement.Payouts)
	a.Equal(300, s.Stacks["a"])
	a.Equal(0, s.Pot)
	a.Empty(s.Community)
	a.Equal(Complete, s.Street)
	a.Equal("", s.Actor())
	assertConserved(t, s)
}

func TestApply_foldOutAfterChipsInPot(t *testing.T) {
	s := newSession(t, nil, 300, 300, 300)
	s, _ = mustApply(t, s, "a", RaiseAction(50))
	s, _ = mustApply(t, s, "b", CallAction())
	s, _ = mustApply(t, s, "c", CallAction())
	require.Equal(t, Flop, s.Street)

	s, _ = mustApply(t, s, "a", RaiseAction(100))
	s, _ = mustApply(t, s, "b", FoldAction())
	s, result := mustApply(t, s, "c", FoldAction())

	assert.Equal(t, map[string]int{"a": 250}, result.Settlement.Payouts)
	assert.Equal(t, 400, s.Stacks["a"])
	assert.Equal(t, 250, s.Stacks["b"])
	assert.Equal(t, 250, s.Stacks["c"])
	assert.Equal(t, 3, len(s.Community))
}

func TestApply_sidePot(t *testing.T) {
	a := assert.New(t)

	d := stackDeck(t, "2c,7d,9s,Jc,4h", "Kh,Qd", "Ah,Ad", "Ks,Qc")
	s := newSession(t, d, 500, 100, 500)

	s, _ = mustApply(t, s, "a", CheckAction())
	s, result := mustApply(t, s, "b", RaiseAction(100))
	a.True(result.Record.AllIn)
	s, _ = mustApply(t, s, "c", CallAction())
	s, result = mustApply(t, s, "a", CallAction())
	a.True(result.RoundClosed)
	a.Equal(Flop, s.Street, "a and c can still bet")
	a.Equal("a", s.Actor())

	s, _ = mustApply(t, s, "a", CheckAction())
	a.Equal("c", s.Actor(), "b is all-in and skipped")

	s = checkDown(t, s)
	require.NotNil(t, s.Settlement)
	a.Equal(Showdown, s.Settlement.Reason)
	a.Len(s.Settlement.Pots, 1)
	a.Equal(300, s.Settlement.Pots.Total())
	a.Equal(map[string]int{"b": 300}, s.Settlement.Payouts)
	a.Equal(400, s.Stacks["a"])
	a.Equal(300, s.Stacks["b"])
	a.Equal(400, s.Stacks["c"])
	a.Len(s.Settlement.Hands, 3)
	a.Equal(rank.OnePair, s.Settlement.Hands[1].Category)
	assertConserved(t, s)
}

func TestApply_sidePotWonByBiggerStack(t *testing.T) {
	a := assert.New(t)

	// b has the best hand but only wins the main pot
	d := stackDeck(t, "2c,7d,9s,Jc,4h", "Kh,Kd", "Ah,Ad", "Qs,Qc")
	s := newSession(t, d, 500, 100, 500)

	s, _ = mustApply(t, s, "a", RaiseAction(300))
	s, _ = mustApply(t, s, "b", CallAction())
	s, _ = mustApply(t, s, "c", CallAction())
	s = checkDown(t, s)

	require.NotNil(t, s.Settlement)
	a.Len(s.Settlement.Pots, 2)
	a.Equal(300, s.Settlement.Pots[0].Amount)
	a.Equal([]string{"a", "b", "c"}, s.Settlement.Pots[0].Eligible)
	a.Equal([]string{"b"}, s.Settlement.Pots[0].Winners)
	a.Equal(400, s.Settlement.Pots[1].Amount)
	a.Equal([]string{"a", "c"}, s.Settlement.Pots[1].Eligible)
	a.Equal([]string{"a"}, s.Settlement.Pots[1].Winners)
	a.Equal(map[string]int{"a": 400, "b": 300}, s.Settlement.Payouts)
	a.Equal(600, s.Stacks["a"])
	a.Equal(300, s.Stacks["b"])
	a.Equal(200, s.Stacks["c"])
}

func TestApply_remainderGoesClockwiseFromButton(t *testing.T) {
	a := assert.New(t)

	// everybody plays the royal flush on the board
	d := stackDeck(t, "Ah,Kh,Qh,Jh,Th", "2c,3d", "4c,5d", "6c,7d")
	s := newSession(t, d, 1000, 1000, 1000)
	require.Equal(t, 2, s.Button)

	s, _ = mustApply(t, s, "a", RaiseAction(1))
	s, _ = mustApply(t, s, "b", CallAction())
	s, _ = mustApply(t, s, "c", RaiseAction(150))
	s, _ = mustApply(t, s, "a", CallAction())
	s, _ = mustApply(t, s, "b", FoldAction())
	require.Equal(t, 301, s.Pot)

	s = checkDown(t, s)
	require.NotNil(t, s.Settlement)
	a.Equal(map[string]int{"a": 151, "c": 150}, s.Settlement.Payouts)
	a.Equal(1001, s.Stacks["a"])
	a.Equal(999, s.Stacks["b"])
	a.Equal(1000, s.Stacks["c"])
	a.Equal(rank.RoyalFlush, s.Settlement.Hands[0].Category)
}

func TestApply_underFundedCallGoesAllIn(t *testing.T) {
	a := assert.New(t)

	d := stackDeck(t, "2c,7d,9s,Jc,4h", "Ah,Ad", "Kh,Kd")
	s := newSession(t, d, 1000, 100)

	s, _ = mustApply(t, s, "a", RaiseAction(300))
	s, result := mustApply(t, s, "b", CallAction())
	a.Equal(100, result.Record.Committed)
	a.True(result.Record.AllIn)
	a.True(result.RoundClosed)

	// nobody can bet, so the board is run out
	require.NotNil(t, result.Settlement)
	a.Len(s.Community, 5)
	a.Equal(map[string]int{"a": 400}, result.Settlement.Payouts)
	a.Equal(1100, s.Stacks["a"])
	a.Equal(0, s.Stacks["b"])
	a.Len(result.Settlement.Pots, 2)
	a.Equal(200, result.Settlement.Pots[1].Amount, "uncalled chips are returned")
}

func TestApply_allInRunOutAfterFlop(t *testing.T) {
	a := assert.New(t)

	d := stackDeck(t, "2c,7d,9s,Jc,4h", "Kh,Kd", "Ah,Ad")
	s := newSession(t, d, 1000, 300)

	s, _ = mustApply(t, s, "a", RaiseAction(100))
	s, _ = mustApply(t, s, "b", CallAction())
	require.Equal(t, Flop, s.Street)

	s, _ = mustApply(t, s, "a", RaiseAction(200))
	s, result := mustApply(t, s, "b", CallAction())
	require.NotNil(t, result.Settlement)
	a.Equal("2c,7d,9s,Jc,4h", s.Community.String())
	a.Equal(map[string]int{"b": 600}, result.Settlement.Payouts)
	a.Equal(700, s.Stacks["a"])
	a.Equal(600, s.Stacks["b"])

	streets := make([]Street, 0)
	for _, r := range s.History {
		streets = append(streets, r.Street)
	}
	a.Equal([]Street{Preflop, Preflop, Flop, Flop}, streets)
}

func TestApply_callWithNothingOwed(t *testing.T) {
	s := newSession(t, nil, 100, 100)
	s, result := mustApply(t, s, "a", CallAction())
	assert.Equal(t, 0, result.Record.Committed)
	assert.Equal(t, 100, s.Stacks["a"])
	assert.Equal(t, "b", s.Actor())
}

func TestApply_settlementFailureLeavesSessionUnchanged(t *testing.T) {
	s := newSession(t, nil, 100, 100)
	s, _ = mustApply(t, s, "a", RaiseAction(50))

	boom := errors.New("oracle unavailable")
	oracle := rank.OracleFunc(func(cards card.Cards) (rank.Strength, error) {
		return rank.Strength{}, boom
	})

	before := s.Clone()
	// b moves all-in, and a calling for the rest of their stack runs the board out to showdown
	next, result, err := Apply(s, oracle, "b", RaiseAction(100))
	require.NoError(t, err)
	require.Nil(t, result.Settlement)

	_, _, err = Apply(next, oracle, "a", CallAction())
	var settlementErr *SettlementError
	require.True(t, errors.As(err, &settlementErr))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "hand", settlementErr.HandID)
	assert.False(t, next.IsOver())
	assert.Equal(t, before, s)
}

func TestApply_conservationUnderRandomPlay(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed)) // nolint:gosec
		n := 2 + rng.Intn(5)
		stacks := make([]int, n)
		for i := range stacks {
			stacks[i] = 50 + rng.Intn(500)
		}

		s := newSession(t, deck.NewShuffled(seed), stacks...)
		for i := 0; !s.IsOver(); i++ {
			require.Less(t, i, 500, "seed %d did not finish", seed)

			actor := s.Actor()
			legal := s.LegalActions(actor)
			require.NotNil(t, legal, "seed %d", seed)

			kind := legal.Actions[rng.Intn(len(legal.Actions))]
			a := Action{Kind: kind}
			if kind == Raise {
				a.Amount = legal.MinRaiseTo + rng.Intn(legal.MaxRaiseTo-legal.MinRaiseTo+1)
			}

			var err error
			s, _, err = Apply(s, rank.Treys{}, actor, a)
			require.NoError(t, err, "seed %d: %s by %s", seed, a, actor)
			require.NoError(t, s.Validate(), "seed %d", seed)
		}

		total := 0
		for _, amount := range s.Settlement.Payouts {
			total += amount
		}

		contributed := 0
		for _, amount := range s.Contributed {
			contributed += amount
		}

		assert.Equal(t, contributed, total, "seed %d", seed)
		assert.Equal(t, s.StartingChips, s.TotalChips(), "seed %d", seed)
	}
}
