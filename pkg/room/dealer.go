package room

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/rng"
	"holdem-server/internal/util"
	"holdem-server/pkg/ai"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/rank"
	"holdem-server/pkg/store"
)

// ErrDealerClosed is returned when the dealer's shift has ended
var ErrDealerClosed = errors.New("the table is closed")

// RequestError is returned when a table request cannot be fulfilled as asked
type RequestError struct {
	Err error
}

func (r *RequestError) Error() string {
	return r.Err.Error()
}

// Unwrap returns the underlying error
func (r *RequestError) Unwrap() error {
	return r.Err
}

func requestError(format string, a ...interface{}) error {
	return &RequestError{Err: fmt.Errorf(format, a...)}
}

// HandOptions configures the first hand at a table
type HandOptions struct {
	// Participants are in seat order
	Participants []string `json:"participants"`
	// AIParticipants are participants, seated or not, whose actions are automated
	// Automated participants that are not already seated are seated after the others.
	AIParticipants map[string]holdem.Tier `json:"aiParticipants"`
	// Bots are unnamed automated participants
	Bots []holdem.Tier `json:"bots"`
	// Stacks override the carried over and starting stacks
	Stacks map[string]int `json:"stacks"`
	// Seed shuffles the deck. Zero picks a seed and a negative seed is rejected.
	Seed int64 `json:"seed"`
}

// Outcome is the result of an accepted action
type Outcome struct {
	Record     holdem.ActionRecord `json:"record"`
	Snapshot   *holdem.Snapshot    `json:"state"`
	Settlement *holdem.Settlement  `json:"settlement,omitempty"`
}

// Dealer is responsible for running the hands at a table
// Every change to the table happens on the dealer's run loop.
type Dealer struct {
	tableID    string
	store      store.Store
	oracle     rank.Oracle
	actor      *ai.Actor
	clock      quartz.Clock
	rand       rng.Generator
	log        logrus.FieldLogger
	thinkDelay time.Duration
	maxSeats   int
	startStack int

	clients map[*Client]bool
	lock    sync.RWMutex

	// owned by the run loop
	ctx         context.Context
	session     *holdem.Session
	pending     *pendingDecision
	logMessages []*LogMessage

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer for the table
// This is called from a blocking state, so it needs to return quickly
func NewDealer(tableID string, svc Services) *Dealer {
	svc = svc.withDefaults()

	return &Dealer{
		tableID:       tableID,
		store:         svc.Store,
		oracle:        svc.Oracle,
		actor:         svc.Actor,
		clock:         svc.Clock,
		rand:          svc.Rand,
		log:           svc.Logger.WithField("table", tableID),
		thinkDelay:    svc.ThinkDelay,
		maxSeats:      svc.MaxSeats,
		startStack:    svc.StartingStack,
		clients:       make(map[*Client]bool),
		ctx:           context.Background(),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// TableID returns the table the dealer runs
func (d *Dealer) TableID() string {
	return d.tableID
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.cancelDecision()
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// enqueue schedules the function on the run loop without waiting for it
func (d *Dealer) enqueue(fn func()) bool {
	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// exec runs the function on the run loop and waits for it to finish
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	done := make(chan bool)
	queued := func() {
		defer close(done)
		fn()
	}

	select {
	case d.execInRunLoop <- queued:
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// a queued closure still runs, so wait for its result even if ctx ends
	select {
	case <-done:
		return nil
	case <-d.close:
		return ErrDealerClosed
	}
}

// AddClient adds a client and sends it the current state
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.enqueue(func() {
		if _, err := d.load(d.ctx); err != nil {
			if !errors.Is(err, holdem.ErrGameNotFound) {
				d.log.WithError(err).Error("could not load session")
			}

			return
		}

		d.sendState(client)
	})
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	delete(d.clients, client)
	return len(d.clients) == 0
}

// StartHand deals the first hand at the table
func (d *Dealer) StartHand(ctx context.Context, opts HandOptions) (*holdem.Session, error) {
	var s *holdem.Session
	var err error
	if execErr := d.exec(ctx, func() {
		s, err = d.startHand(ctx, opts)
	}); execErr != nil {
		return nil, execErr
	}

	return s, err
}

// NextHand deals the next hand at the table with the stacks carried over
func (d *Dealer) NextHand(ctx context.Context, seed int64) (*holdem.Session, error) {
	var s *holdem.Session
	var err error
	if execErr := d.exec(ctx, func() {
		s, err = d.nextHand(ctx, seed)
	}); execErr != nil {
		return nil, execErr
	}

	return s, err
}

// Submit applies an action by the participant
func (d *Dealer) Submit(ctx context.Context, participant string, action holdem.Action) (*Outcome, error) {
	var outcome *Outcome
	var err error
	if execErr := d.exec(ctx, func() {
		next, result, applyErr := d.apply(ctx, participant, action)
		if applyErr != nil {
			err = applyErr
			return
		}

		outcome = &Outcome{
			Record:     result.Record,
			Snapshot:   next.SnapshotFor(participant),
			Settlement: result.Settlement,
		}
	}); execErr != nil {
		return nil, execErr
	}

	return outcome, err
}

// State returns the snapshot of the hand for the viewer
// An empty viewer is a spectator.
func (d *Dealer) State(ctx context.Context, viewer string) (*holdem.Snapshot, error) {
	var snap *holdem.Snapshot
	var err error
	if execErr := d.exec(ctx, func() {
		s, loadErr := d.load(ctx)
		if loadErr != nil {
			err = loadErr
			return
		}

		if viewer != "" && !s.IsSeated(viewer) {
			err = holdem.ErrUnknownParticipant
			return
		}

		snap = s.SnapshotFor(viewer)
	}); execErr != nil {
		return nil, execErr
	}

	return snap, err
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	if msg.Action == "state" {
		d.enqueue(func() {
			if _, err := d.load(d.ctx); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			d.sendState(c)
		})

		return
	}

	action, err := holdem.ParseAction(msg.Action, msg.Amount)
	if err != nil {
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	d.enqueue(func() {
		if c.participant == "" {
			c.Send(newErrorResponse(msg.Context, holdem.ErrUnknownParticipant))
			return
		}

		if _, _, err := d.apply(d.ctx, c.participant, action); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(OK(msg.Context))
	})
}

// load returns the session, loading it from the store the first time
// Note: this must only be called from within the run loop
func (d *Dealer) load(ctx context.Context) (*holdem.Session, error) {
	if d.session != nil {
		return d.session, nil
	}

	s, err := d.store.Load(ctx, d.tableID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, holdem.ErrGameNotFound
		}

		return nil, err
	}

	d.session = s
	d.scheduleDecision()
	return s, nil
}

// Note: this must only be called from within the run loop
func (d *Dealer) startHand(ctx context.Context, opts HandOptions) (*holdem.Session, error) {
	if current, err := d.load(ctx); err == nil && !current.IsOver() {
		return nil, requestError("a hand is already in progress")
	} else if err != nil && !errors.Is(err, holdem.ErrGameNotFound) {
		return nil, err
	}

	seed, err := d.seed(opts.Seed)
	if err != nil {
		return nil, err
	}

	participants, automated, err := d.seat(opts)
	if err != nil {
		return nil, err
	}

	carried, err := d.store.LoadStacks(ctx, d.tableID)
	if err != nil {
		return nil, err
	}

	stacks := make(map[string]int, len(participants))
	for _, id := range participants {
		stack, ok := opts.Stacks[id]
		if !ok {
			stack, ok = carried[id]
		}

		if !ok {
			stack = d.startStack
		}

		stacks[id] = stack
	}

	s, err := holdem.NewHand(holdem.Options{
		TableID:        d.tableID,
		Participants:   participants,
		Stacks:         stacks,
		AIParticipants: automated,
		Button:         -1,
		Deck:           deck.NewShuffled(seed),
	})
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	return s, d.begin(ctx, s)
}

// seat returns the participants in seat order and the automated participants
func (d *Dealer) seat(opts HandOptions) ([]string, map[string]holdem.Tier, error) {
	participants := append([]string(nil), opts.Participants...)
	automated := make(map[string]holdem.Tier, len(opts.AIParticipants)+len(opts.Bots))
	seated := make(map[string]bool, len(participants))
	for _, id := range participants {
		seated[id] = true
	}

	for id, tier := range opts.AIParticipants {
		t, err := holdem.ParseTier(string(tier))
		if err != nil {
			return nil, nil, &RequestError{Err: err}
		}

		automated[id] = t
		if !seated[id] {
			seated[id] = true
			participants = append(participants, id)
		}
	}

	for _, tier := range opts.Bots {
		t, err := holdem.ParseTier(string(tier))
		if err != nil {
			return nil, nil, &RequestError{Err: err}
		}

		name := util.RandomName(d.rand)
		for i := 2; seated[name]; i++ {
			name = fmt.Sprintf("%s %d", util.RandomName(d.rand), i)
		}

		seated[name] = true
		participants = append(participants, name)
		automated[name] = t
	}

	if len(participants) > d.maxSeats {
		return nil, nil, requestError("a table seats at most %d participants", d.maxSeats)
	}

	return participants, automated, nil
}

// Note: this must only be called from within the run loop
func (d *Dealer) nextHand(ctx context.Context, seed int64) (*holdem.Session, error) {
	seed, err := d.seed(seed)
	if err != nil {
		return nil, err
	}

	current, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	s, err := current.NextHand("", deck.NewShuffled(seed))
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	return s, d.begin(ctx, s)
}

// seed returns the deck seed, picking a random one when none is given
func (d *Dealer) seed(seed int64) (int64, error) {
	if seed < 0 {
		return 0, requestError("seed cannot be negative")
	}

	if seed != 0 {
		return seed, nil
	}

	return int64(d.rand.Intn(math.MaxInt32)) + 1, nil
}

// begin saves and announces a newly dealt hand
// Note: this must only be called from within the run loop
func (d *Dealer) begin(ctx context.Context, s *holdem.Session) error {
	if err := d.store.Save(ctx, s); err != nil {
		return fmt.Errorf("could not save hand: %w", err)
	}

	d.session = s
	d.logMessages = nil
	d.log.WithFields(logrus.Fields{
		"hand":         s.HandID,
		"participants": len(s.AllParticipants),
	}).Info("dealt hand")

	d.changed()
	return nil
}

// apply validates and applies the action, then saves and announces the new session
// Note: this must only be called from within the run loop
func (d *Dealer) apply(ctx context.Context, participant string, action holdem.Action) (*holdem.Session, *holdem.Result, error) {
	log := d.log.WithFields(logrus.Fields{
		"participant": participant,
		"action":      action.String(),
	})

	s, err := d.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	next, result, err := holdem.Apply(s, d.oracle, participant, action)
	if err != nil {
		var settlementErr *holdem.SettlementError
		if errors.As(err, &settlementErr) {
			log.WithError(err).Error("could not settle hand")
		} else {
			log.WithError(err).Info("rejected action")
		}

		return nil, nil, err
	}

	if err := d.store.Save(ctx, next); err != nil {
		log.WithError(err).Error("could not save session")
		return nil, nil, fmt.Errorf("could not save session: %w", err)
	}

	if result.Settlement != nil {
		if err := d.store.SaveStacks(ctx, d.tableID, next.Stacks); err != nil {
			log.WithError(err).Error("could not save stacks")
		}

		log.WithFields(logrus.Fields{
			"hand":    next.HandID,
			"reason":  result.Settlement.Reason,
			"payouts": result.Settlement.Payouts,
		}).Info("settled hand")
	}

	log.WithField("seq", next.Seq).Debug("accepted action")
	d.session = next
	d.addLogMessages(newLogMessage(result.Record, d.clock.Now()))
	d.changed()

	return next, result, nil
}

// changed sends the new state to every client and schedules the next automated decision
// Note: this must only be called from within the run loop
func (d *Dealer) changed() {
	for _, client := range d.Clients() {
		d.sendState(client)
	}

	d.scheduleDecision()
}

// Note: this must only be called from within the run loop
func (d *Dealer) sendState(client *Client) {
	s := d.session
	if s == nil {
		return
	}

	if !client.Send(&Response{
		Key:  keyGameState,
		Data: stateData{Snapshot: s.SnapshotFor(client.participant), Log: d.logMessages},
	}) {
		d.log.WithField("client", client.String()).Warn("client is not keeping up, dropped state")
	}

	if s.Settlement != nil {
		client.Send(&Response{
			Key:  keyHandEnded,
			Data: s.Settlement,
		})
	}
}
