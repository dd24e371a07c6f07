package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/rng"
	"holdem-server/pkg/ai"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/rank"
	"holdem-server/pkg/store"
)

// Services are what a dealer needs to run a table
type Services struct {
	Store  store.Store
	Oracle rank.Oracle
	Actor  *ai.Actor
	Clock  quartz.Clock
	Rand   rng.Generator
	Logger logrus.FieldLogger
	// ThinkDelay is how long an automated participant waits before acting
	ThinkDelay    time.Duration
	MaxSeats      int
	StartingStack int
}

func (s Services) withDefaults() Services {
	if s.Store == nil {
		s.Store = store.NewMemory()
	}

	if s.Oracle == nil {
		s.Oracle = rank.Treys{}
	}

	if s.Rand == nil {
		s.Rand = rng.Crypto{}
	}

	if s.Actor == nil {
		s.Actor = ai.New(s.Oracle, rng.Crypto{})
	}

	if s.Clock == nil {
		s.Clock = quartz.NewReal()
	}

	if s.Logger == nil {
		s.Logger = logrus.StandardLogger()
	}

	if s.MaxSeats <= 0 {
		s.MaxSeats = 8
	}

	if s.StartingStack <= 0 {
		s.StartingStack = 1000
	}

	return s
}

// PitBoss is responsible for dispatching tables to dealers
type PitBoss struct {
	svc     Services
	dealers map[string]*Dealer
	lock    sync.Mutex
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(svc Services) *PitBoss {
	return &PitBoss{
		svc:     svc.withDefaults(),
		dealers: make(map[string]*Dealer),
	}
}

// CreateTable opens a new table and deals the first hand
func (p *PitBoss) CreateTable(ctx context.Context, opts HandOptions) (*Dealer, *holdem.Session, error) {
	d := NewDealer(uuid.New().String(), p.svc)
	d.StartShift()

	s, err := d.StartHand(ctx, opts)
	if err != nil {
		d.EndShift()
		return nil, nil, err
	}

	p.lock.Lock()
	p.dealers[d.tableID] = d
	p.lock.Unlock()

	return d, s, nil
}

// Dealer returns the dealer for the table
// A table that was saved but has no dealer yet, i.e., after a restart, is given one.
func (p *PitBoss) Dealer(ctx context.Context, tableID string) (*Dealer, error) {
	p.lock.Lock()
	d, ok := p.dealers[tableID]
	p.lock.Unlock()
	if ok {
		return d, nil
	}

	// loaded without holding the registry lock
	if _, err := p.svc.Store.Load(ctx, tableID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, holdem.ErrGameNotFound
		}

		return nil, err
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	if d, ok := p.dealers[tableID]; ok {
		return d, nil
	}

	d = NewDealer(tableID, p.svc)
	d.StartShift()
	p.dealers[tableID] = d

	// resumes any automated participant on the clock
	d.enqueue(func() {
		if _, err := d.load(d.ctx); err != nil {
			d.log.WithError(err).Error("could not load session")
		}
	})

	return d, nil
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(ctx context.Context, client *Client) error {
	d, err := p.Dealer(ctx, client.tableID)
	if err != nil {
		return err
	}

	p.svc.Logger.WithField("client", client.String()).Debug("client connected")
	d.AddClient(client)
	return nil
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.svc.Logger.WithField("client", client.String()).Debug("client disconnected")
	if client.dealer != nil {
		client.dealer.RemoveClient(client)
	}
}

// EndShift ends every dealer's shift
func (p *PitBoss) EndShift() {
	p.lock.Lock()
	defer p.lock.Unlock()

	for id, d := range p.dealers {
		d.EndShift()
		delete(p.dealers, id)
	}
}
