package room

import (
	"github.com/coder/quartz"

	"holdem-server/pkg/holdem"
)

// pendingDecision is an automated participant waiting out its think delay
type pendingDecision struct {
	handID      string
	seq         int
	participant string
	tier        holdem.Tier
	timer       *quartz.Timer
}

// isStale returns true if the session has moved on since the decision was scheduled
func (p *pendingDecision) isStale(s *holdem.Session) bool {
	return s == nil || s.HandID != p.handID || s.Seq != p.seq || s.Actor() != p.participant
}

// scheduleDecision starts the think delay for the participant on the clock, if they are automated
// Note: this must only be called from within the run loop
func (d *Dealer) scheduleDecision() {
	d.cancelDecision()

	s := d.session
	if s == nil || s.IsOver() {
		return
	}

	participant := s.Actor()
	tier, ok := s.IsAI(participant)
	if !ok {
		return
	}

	p := &pendingDecision{
		handID:      s.HandID,
		seq:         s.Seq,
		participant: participant,
		tier:        tier,
	}

	p.timer = d.clock.AfterFunc(d.thinkDelay, func() {
		d.enqueue(func() {
			d.decide(p)
		})
	}, "dealer", "decide")

	d.pending = p
}

// Note: this must only be called from within the run loop
func (d *Dealer) cancelDecision() {
	if d.pending != nil {
		d.pending.timer.Stop()
		d.pending = nil
	}
}

// decide applies the automated participant's action
// Note: this must only be called from within the run loop
func (d *Dealer) decide(p *pendingDecision) {
	if d.pending != p || p.isStale(d.session) {
		d.log.WithField("participant", p.participant).Debug("discarding stale decision")
		return
	}

	d.pending = nil
	log := d.log.WithField("participant", p.participant)

	action, err := d.actor.Decide(d.session, p.participant, p.tier)
	if err != nil {
		log.WithError(err).Error("could not decide, folding")
		action = holdem.FoldAction()
	}

	if _, _, err := d.apply(d.ctx, p.participant, action); err != nil {
		log.WithError(err).WithField("action", action.String()).Error("automated action was rejected")
		if action.Kind == holdem.Fold {
			return
		}

		if _, _, err := d.apply(d.ctx, p.participant, holdem.FoldAction()); err != nil {
			log.WithError(err).Error("could not fold")
		}
	}
}
