package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-server/internal/rng"
	"holdem-server/pkg/card"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/rank"
)

func decide(t *testing.T, oracle rank.Oracle, source rng.Source, tier holdem.Tier, s spot) holdem.Action {
	t.Helper()

	action, err := New(oracle, source).Decide(s.session(t), "ai", tier)
	require.NoError(t, err)
	return action
}

func TestActor_preflop(t *testing.T) {
	tests := []struct {
		name     string
		tier     holdem.Tier
		spot     spot
		expected holdem.Action
	}{
		{"easy pair opens", holdem.Easy, spot{hole: "Ah,Ad"}, holdem.RaiseAction(20)},
		{"easy pair calls", holdem.Easy, spot{hole: "Ah,Ad", currentBet: 40}, holdem.CallAction()},
		{"easy high cards check", holdem.Easy, spot{hole: "Ah,Kd"}, holdem.CheckAction()},
		{"easy high cards fold", holdem.Easy, spot{hole: "Ah,Kd", currentBet: 40}, holdem.FoldAction()},
		{"medium high cards open", holdem.Medium, spot{hole: "Ah,Kd"}, holdem.RaiseAction(20)},
		{"medium suited connectors open", holdem.Medium, spot{hole: "7h,9h"}, holdem.RaiseAction(20)},
		{"medium suited gap of three checks", holdem.Medium, spot{hole: "7h,Th"}, holdem.CheckAction()},
		{"medium offsuit connectors fold", holdem.Medium, spot{hole: "7h,8d", currentBet: 20}, holdem.FoldAction()},
		{"hard opens bigger", holdem.Hard, spot{hole: "Qh,Qd"}, holdem.RaiseAction(40)},
		{"hard open scales with pot", holdem.Hard, spot{hole: "Qh,Jd", pot: 60}, holdem.RaiseAction(70)},
		{"hard calls a raise", holdem.Hard, spot{hole: "Qh,Jd", currentBet: 200}, holdem.CallAction()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, decide(t, nil, rng.Fixed(0.99), test.tier, test.spot))
		})
	}
}

func TestActor_strongHands(t *testing.T) {
	tests := []struct {
		name     string
		tier     holdem.Tier
		spot     spot
		expected holdem.Action
	}{
		{"medium bets three quarters of the pot", holdem.Medium, spot{hole: "Ah,Ad", community: "2c,7d,9s", pot: 200}, holdem.RaiseAction(150)},
		{"easy bets half the pot", holdem.Easy, spot{hole: "Ah,Ad", community: "2c,7d,9s", pot: 200}, holdem.RaiseAction(100)},
		{"hard raises the pot", holdem.Hard, spot{hole: "Ah,Ad", community: "2c,7d,9s", pot: 200, currentBet: 50}, holdem.RaiseAction(300)},
		{"empty pot raises the increment", holdem.Easy, spot{hole: "Ah,Ad", community: "2c,7d,9s"}, holdem.RaiseAction(20)},
		{"short stack goes all-in", holdem.Hard, spot{hole: "Ah,Ad", community: "2c,7d,9s", pot: 1000, stack: 100}, holdem.RaiseAction(100)},
		{"all-in raise includes the bet", holdem.Hard, spot{hole: "Ah,Ad", community: "2c,7d,9s", pot: 1000, currentBet: 80, bet: 40, stack: 100}, holdem.RaiseAction(140)},
		{"stack too short to raise calls", holdem.Hard, spot{hole: "Ah,Ad", community: "2c,7d,9s", pot: 100, currentBet: 50, stack: 30}, holdem.CallAction()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, decide(t, scripted(rank.TwoPair), rng.Fixed(0.99), test.tier, test.spot))
		})
	}
}

func TestActor_onePairUsesPotOdds(t *testing.T) {
	oracle := scripted(rank.OnePair)
	facing := spot{hole: "Ah,Kd", community: "Ac,7d,9s", pot: 150, currentBet: 150}

	assert.Equal(t, holdem.FoldAction(), decide(t, oracle, rng.Fixed(0), holdem.Easy, facing))
	assert.Equal(t, holdem.CallAction(), decide(t, oracle, rng.Fixed(0), holdem.Medium, facing))
	assert.Equal(t, holdem.CallAction(), decide(t, oracle, rng.Fixed(0), holdem.Hard, facing))

	cheap := spot{hole: "Ah,Kd", community: "Ac,7d,9s", pot: 250, currentBet: 50}
	assert.Equal(t, holdem.CallAction(), decide(t, oracle, rng.Fixed(0), holdem.Easy, cheap))

	checked := spot{hole: "Ah,Kd", community: "Ac,7d,9s", pot: 250}
	for _, tier := range []holdem.Tier{holdem.Easy, holdem.Medium, holdem.Hard} {
		assert.Equal(t, holdem.CheckAction(), decide(t, oracle, rng.Fixed(0), tier, checked), tier)
	}
}

func TestActor_draws(t *testing.T) {
	flushDraw := spot{hole: "Ah,Kh", community: "2h,7h,9c", pot: 150, currentBet: 50}
	assert.Equal(t, holdem.CallAction(), decide(t, rank.Treys{}, rng.Fixed(0.99), holdem.Hard, flushDraw))
	assert.Equal(t, holdem.FoldAction(), decide(t, rank.Treys{}, rng.Fixed(0.99), holdem.Medium, flushDraw))

	straightDraw := spot{hole: "8c,9d", community: "Ts,Jh,2c", pot: 150, currentBet: 50}
	assert.Equal(t, holdem.CallAction(), decide(t, rank.Treys{}, rng.Fixed(0.99), holdem.Hard, straightDraw))

	gutshot := spot{hole: "8c,9d", community: "Js,Qh,2c", pot: 150, currentBet: 50}
	assert.Equal(t, holdem.FoldAction(), decide(t, rank.Treys{}, rng.Fixed(0.99), holdem.Hard, gutshot))

	river := spot{hole: "Ah,Kh", community: "2h,7h,9c,3d,4s", pot: 150, currentBet: 50}
	assert.Equal(t, holdem.FoldAction(), decide(t, rank.Treys{}, rng.Fixed(0.99), holdem.Hard, river))
}

func TestActor_bluffs(t *testing.T) {
	flop := spot{hole: "2c,7d", community: "Jh,Qs,4h", pot: 90}
	turn := spot{hole: "2c,7d", community: "Jh,Qs,4h,9s", pot: 100}
	river := spot{hole: "2c,7d", community: "Jh,Qs,4h,9s,Kd", pot: 100}

	assert.Equal(t, holdem.RaiseAction(30), decide(t, rank.Treys{}, rng.Fixed(0.1), holdem.Easy, flop))
	assert.Equal(t, holdem.CheckAction(), decide(t, rank.Treys{}, rng.Fixed(0.99), holdem.Easy, flop))

	assert.Equal(t, holdem.CheckAction(), decide(t, rank.Treys{}, rng.Fixed(0), holdem.Medium, flop))
	assert.Equal(t, holdem.RaiseAction(50), decide(t, rank.Treys{}, rng.Fixed(0), holdem.Medium, turn))

	assert.Equal(t, holdem.CheckAction(), decide(t, rank.Treys{}, rng.Fixed(0), holdem.Hard, turn))
	assert.Equal(t, holdem.RaiseAction(66), decide(t, rank.Treys{}, rng.Fixed(0), holdem.Hard, river))
	assert.Equal(t, holdem.CheckAction(), decide(t, rank.Treys{}, rng.Fixed(0.25), holdem.Hard, river))
}

func TestActor_randomOnlyDrawnForBluffs(t *testing.T) {
	source := &countingSource{Source: rng.Fixed(0)}
	actor := New(rank.Treys{}, source)

	facing := spot{hole: "2c,7d", community: "Jh,Qs,4h,9s,Kd", pot: 100, currentBet: 50}
	action, err := actor.Decide(facing.session(t), "ai", holdem.Hard)
	require.NoError(t, err)
	assert.Equal(t, holdem.FoldAction(), action)
	assert.Equal(t, 0, source.calls)

	strong := spot{hole: "Kh,Ks", community: "Jh,Qs,4h,9s,Kd", pot: 100}
	_, err = actor.Decide(strong.session(t), "ai", holdem.Hard)
	require.NoError(t, err)
	assert.Equal(t, 0, source.calls)

	checked := spot{hole: "2c,7d", community: "Jh,Qs,4h,9s,Kd", pot: 100}
	_, err = actor.Decide(checked.session(t), "ai", holdem.Hard)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
}

func TestActor_deterministic(t *testing.T) {
	spots := []spot{
		{hole: "Ah,Ad"},
		{hole: "7h,8h", currentBet: 20},
		{hole: "2c,7d", community: "Jh,Qs,4h", pot: 90},
		{hole: "2c,7d", community: "Jh,Qs,4h,9s,Kd", pot: 100},
		{hole: "Ah,Kh", community: "2h,7h,9c", pot: 150, currentBet: 50},
		{hole: "Qh,Qd", community: "Qs,7h,9c,2d", pot: 400, currentBet: 100, stack: 150},
	}

	for _, tier := range []holdem.Tier{holdem.Easy, holdem.Medium, holdem.Hard} {
		for i, s := range spots {
			first := decide(t, rank.Treys{}, rng.Fixed(0.99), tier, s)
			for j := 0; j < 5; j++ {
				assert.Equal(t, first, decide(t, rank.Treys{}, rng.Fixed(0.99), tier, s), "%s spot %d", tier, i)
			}
		}
	}
}

func TestActor_errors(t *testing.T) {
	boom := errors.New("boom")
	oracle := rank.OracleFunc(func(cards card.Cards) (rank.Strength, error) {
		return rank.Strength{}, boom
	})

	s := spot{hole: "Ah,Ad", community: "2c,7d,9s"}.session(t)
	_, err := New(oracle, rng.Fixed(0)).Decide(s, "ai", holdem.Easy)
	assert.ErrorIs(t, err, boom)

	_, err = New(oracle, rng.Fixed(0)).Decide(s, "nobody", holdem.Easy)
	assert.ErrorIs(t, err, ErrNotSeated)
}

func TestActor_alwaysLegal(t *testing.T) {
	tiers := []holdem.Tier{holdem.Easy, holdem.Medium, holdem.Hard, holdem.Hard}
	participants := []string{"easy", "medium", "hard-1", "hard-2"}

	for seed := int64(1); seed <= 100; seed++ {
		stacks := make(map[string]int)
		for _, id := range participants {
			stacks[id] = 500
		}

		s, err := holdem.NewHand(holdem.Options{
			Participants: participants,
			Stacks:       stacks,
			Button:       -1,
			Deck:         deck.NewShuffled(seed),
		})
		require.NoError(t, err)

		actor := New(rank.Treys{}, rng.NewSeeded(seed))
		for i := 0; !s.IsOver(); i++ {
			require.Less(t, i, 1000, "seed %d did not finish", seed)

			id := s.Actor()
			action, err := actor.Decide(s, id, tiers[indexOf(participants, id)])
			require.NoError(t, err)

			s, _, err = holdem.Apply(s, rank.Treys{}, id, action)
			require.NoError(t, err, "seed %d: %s by %s", seed, action, id)
			require.NoError(t, s.Validate())
		}
	}
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}

	return -1
}
