package round

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ErrNoResponse is returned by deciders that could not obtain an answer.
var ErrNoResponse = errors.New("no response to decision request")

type RequestKind int

const (
	// RequestDomino asks the owner of a unit about to be pushed aside whether
	// it steps into one of Hexes instead.
	RequestDomino RequestKind = iota
	// RequestAMS asks whether a unit engages an incoming telemissile with
	// its AMS.
	RequestAMS
)

// Request is a question put to a player mid-resolution.
type Request struct {
	Kind   RequestKind
	Unit   world.UnitID
	Owner  world.PlayerID
	Hexes  []hexgrid.HexCoord
	Prompt string
}

// Answer is a player's reply. Choice indexes Request.Hexes for domino
// requests; for yes/no requests 1 is yes.
type Answer struct {
	Choice int
}

// NoAnswer is the reply used when no decision was made.
var NoAnswer = Answer{Choice: -1}

// Decision is a suspended resolution step waiting on an answer.
type Decision struct {
	Request Request
	Resume  func(Answer) Outcome
}

// Outcome is the result of a resolution step: either finished, or suspended
// on a Decision.
type Outcome struct {
	Pending *Decision
}

// Done is the finished outcome.
func Done() Outcome { return Outcome{} }

// Ask suspends resolution until req is answered.
func Ask(req Request, resume func(Answer) Outcome) Outcome {
	return Outcome{Pending: &Decision{Request: req, Resume: resume}}
}

// Finished reports whether nothing is pending.
func (o Outcome) Finished() bool { return o.Pending == nil }

// Then runs next once o has finished, threading through any pending decision.
func (o Outcome) Then(next func() Outcome) Outcome {
	if o.Pending == nil {
		return next()
	}
	d := o.Pending
	return Ask(d.Request, func(a Answer) Outcome {
		return d.Resume(a).Then(next)
	})
}

// Sequence runs steps in order, each after the previous has finished.
func Sequence(steps ...func() Outcome) Outcome {
	out := Done()
	for _, step := range steps {
		out = out.Then(step)
	}
	return out
}

// ─── Deciders ───────────────────────────────────────────────────────────────

// Decider answers requests. Implementations may block.
type Decider interface {
	Decide(ctx context.Context, req Request) (Answer, error)
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, req Request) (Answer, error)

func (f DeciderFunc) Decide(ctx context.Context, req Request) (Answer, error) {
	return f(ctx, req)
}

// AutoDecider answers every request with NoAnswer.
type AutoDecider struct{}

func (AutoDecider) Decide(context.Context, Request) (Answer, error) { return NoAnswer, nil }

// ChannelDecider forwards requests on Requests and waits for the reply on
// Answers. A closed answer channel yields NoAnswer.
type ChannelDecider struct {
	Requests chan<- Request
	Answers  <-chan Answer
}

func (d ChannelDecider) Decide(ctx context.Context, req Request) (Answer, error) {
	select {
	case d.Requests <- req:
	case <-ctx.Done():
		return NoAnswer, ctx.Err()
	}
	select {
	case a, ok := <-d.Answers:
		if !ok {
			return NoAnswer, ErrNoResponse
		}
		return a, nil
	case <-ctx.Done():
		return NoAnswer, ctx.Err()
	}
}

// Settle drives o to completion, asking d for every pending decision. A
// failed decision resumes with NoAnswer.
func Settle(ctx context.Context, rc *Context, o Outcome, d Decider) {
	for o.Pending != nil {
		ans, err := d.Decide(ctx, o.Pending.Request)
		if err != nil {
			rc.Log.Warn("decision failed, using default",
				zap.Int("unit", int(o.Pending.Request.Unit)),
				zap.Int("kind", int(o.Pending.Request.Kind)),
				zap.Error(err))
			ans = NoAnswer
		}
		o = o.Pending.Resume(ans)
	}
}
