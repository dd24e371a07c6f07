// Package simulate plays hands between automated participants and checks the table after every action
package simulate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"holdem-server/internal/rng"
	"holdem-server/pkg/ai"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/rank"
)

// maxActions stops a hand that never finishes
const maxActions = 1000

// Options configures a simulation
type Options struct {
	Hands   int
	Workers int
	// Tiers are assigned to the seats in turn
	Tiers          []holdem.Tier
	Seats          int
	StartingStack  int
	RaiseIncrement int
	// Seed is the seed of the first hand. Each hand after it uses the next seed.
	Seed int64
}

// TierReport is how one tier fared
type TierReport struct {
	Seats int `json:"seats"`
	Wins  int `json:"wins"`
	// Net is chips won less chips lost
	Net int `json:"net"`
}

// Report summarizes a simulation
type Report struct {
	Hands     int                         `json:"hands"`
	Actions   int                         `json:"actions"`
	Showdowns int                         `json:"showdowns"`
	FoldOuts  int                         `json:"foldOuts"`
	Tiers     map[holdem.Tier]*TierReport `json:"tiers"`
}

func (r *Report) add(h *handReport) {
	r.Hands++
	r.Actions += h.actions
	if h.reason == holdem.Showdown {
		r.Showdowns++
	} else {
		r.FoldOuts++
	}

	for tier, t := range h.tiers {
		tr, ok := r.Tiers[tier]
		if !ok {
			tr = &TierReport{}
			r.Tiers[tier] = tr
		}

		tr.Seats += t.Seats
		tr.Wins += t.Wins
		tr.Net += t.Net
	}
}

type handReport struct {
	actions int
	reason  holdem.SettlementReason
	tiers   map[holdem.Tier]TierReport
}

func (o Options) validate() error {
	if o.Hands <= 0 {
		return errors.New("hands must be greater than zero")
	}

	if o.Seats < 2 {
		return errors.New("there must be at least two seats")
	}

	if len(o.Tiers) == 0 {
		return errors.New("at least one tier is required")
	}

	if o.StartingStack <= 0 {
		return errors.New("starting stack must be greater than zero")
	}

	if o.Seed <= 0 {
		return errors.New("seed must be greater than zero")
	}

	return nil
}

// Run plays the hands, calling progress after each one
// The report does not depend on the number of workers.
func Run(ctx context.Context, opts Options, progress func(done int)) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	report := &Report{Tiers: make(map[holdem.Tier]*TierReport)}
	var lock sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	hands := make(chan int)

	g.Go(func() error {
		defer close(hands)
		for i := 0; i < opts.Hands; i++ {
			select {
			case hands <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range hands {
				h, err := playHand(opts, opts.Seed+int64(i))
				if err != nil {
					return fmt.Errorf("hand %d: %w", i, err)
				}

				lock.Lock()
				report.add(h)
				done := report.Hands
				lock.Unlock()

				if progress != nil {
					progress(done)
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

func playHand(opts Options, seed int64) (*handReport, error) {
	participants := make([]string, opts.Seats)
	stacks := make(map[string]int, opts.Seats)
	tiers := make(map[string]holdem.Tier, opts.Seats)
	for i := range participants {
		id := fmt.Sprintf("seat-%d", i+1)
		participants[i] = id
		stacks[id] = opts.StartingStack
		tiers[id] = opts.Tiers[i%len(opts.Tiers)]
	}

	s, err := holdem.NewHand(holdem.Options{
		TableID:        "simulation",
		HandID:         fmt.Sprintf("hand-%d", seed),
		Participants:   participants,
		Stacks:         stacks,
		AIParticipants: tiers,
		Button:         int(seed % int64(opts.Seats)),
		Deck:           deck.NewShuffled(seed),
	})
	if err != nil {
		return nil, err
	}

	oracle := rank.Treys{}
	actor := ai.New(oracle, rng.NewSeeded(seed))
	if opts.RaiseIncrement > 0 {
		actor.RaiseIncrement = opts.RaiseIncrement
	}

	actions := 0
	for !s.IsOver() {
		if actions == maxActions {
			return nil, fmt.Errorf("did not finish after %d actions", maxActions)
		}

		participant := s.Actor()
		action, err := actor.Decide(s, participant, tiers[participant])
		if err != nil {
			return nil, err
		}

		next, _, err := holdem.Apply(s, oracle, participant, action)
		if err != nil {
			return nil, fmt.Errorf("%s could not %s: %w", participant, action, err)
		}

		if err := next.Validate(); err != nil {
			return nil, fmt.Errorf("after %s by %s: %w", action, participant, err)
		}

		s = next
		actions++
	}

	h := &handReport{
		actions: actions,
		reason:  s.Settlement.Reason,
		tiers:   make(map[holdem.Tier]TierReport),
	}

	for _, id := range participants {
		t := h.tiers[tiers[id]]
		t.Seats++
		t.Net += s.Stacks[id] - opts.StartingStack
		if s.Settlement.Payouts[id] > 0 {
			t.Wins++
		}

		h.tiers[tiers[id]] = t
	}

	return h, nil
}
