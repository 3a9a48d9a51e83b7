package physical

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/JustinWhittecar/physcombat/internal/damage"
	"github.com/JustinWhittecar/physcombat/internal/displacement"
	"github.com/JustinWhittecar/physcombat/internal/hazard"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ErrUnknownAction is reported for an action the dispatcher has no handler
// for.
var ErrUnknownAction = errors.New("unknown attack action")

// Wire installs the default engines on rc where none are set.
func Wire(rc *round.Context) *round.Context {
	if rc.Damage == nil {
		rc.Damage = damage.New()
	}
	if rc.Displace == nil {
		rc.Displace = displacement.New()
	}
	if rc.Hazards == nil {
		rc.Hazards = hazard.New()
	}
	return rc
}

// Phase is one physical attack phase: the snapshot of declared attacks and
// the context they resolve in.
type Phase struct {
	rc        *round.Context
	results   []*Result
	redirects []*Result
}

// NewPhase wires rc, clears the per-round flags left on its units and
// returns an empty phase.
func NewPhase(rc *round.Context) *Phase {
	rc.World.ResetRound()
	return &Phase{rc: Wire(rc)}
}

func (p *Phase) Context() *round.Context { return p.rc }

// Results returns the phase's results in declaration order.
func (p *Phase) Results() []*Result { return p.results }

// Run resolves the whole phase: single-unit resolutions first, then every
// result in declaration order, then the end-of-phase rolls.
func (p *Phase) Run(ctx context.Context, d round.Decider) {
	p.Begin()
	last := world.NoUnit
	for _, r := range p.results {
		last = p.Resolve(ctx, r, last, d)
		for len(p.redirects) > 0 {
			next := p.redirects[0]
			p.redirects = p.redirects[1:]
			last = p.Resolve(ctx, next, last, d)
		}
	}
	p.Finish()
}

// Begin runs the resolutions that belong to a unit rather than an attack:
// self-destruct and unjamming.
func (p *Phase) Begin() {
	for _, u := range p.rc.World.Units() {
		if u.Gone() {
			continue
		}
		if u.SelfDestructInitiated {
			p.SelfDestruct(u)
		}
		if u.UnjamRequested {
			p.Unjam(u)
		}
	}
}

// Finish resolves the piloting and control rolls queued during the phase
// and the environment's end-of-phase effects.
func (p *Phase) Finish() {
	p.rc.Displace.ResolvePilotingRolls(p.rc)
	p.rc.Displace.ResolveControlRolls(p.rc)
	p.rc.Hazards.EndPhase(p.rc)
	p.rc.EndPhase()
}

// Resolve runs one result to completion, answering any decision through d,
// and returns the attacker it was made by. Consecutive results by the same
// attacker share one header report.
func (p *Phase) Resolve(ctx context.Context, r *Result, last world.UnitID, d round.Decider) world.UnitID {
	if r.Resolution == Resolved {
		return last
	}
	rc := p.rc
	atk := r.Action.common()
	attacker := rc.World.Unit(atk.Attacker)
	if attacker == nil {
		rc.Report(report.New(report.AttackerInvalid).Indented(1).Add(fmt.Sprintf("unit %d", atk.Attacker)))
		r.Resolution = Resolved
		return last
	}
	if attacker.ID != last {
		rc.Report(report.New(report.AttackerHeader).Subject(int(attacker.ID)).Add(attacker.Name))
	}

	var target *world.Combatant
	if atk.Target.Kind == TargetUnit {
		target = rc.World.Unit(atk.Target.Unit)
	}
	wasDestroyed := target != nil && target.Destroyed

	round.Settle(ctx, rc, p.dispatch(r, attacker, target), d)
	r.Resolution = Resolved
	attacker.Done = true

	if target != nil {
		target.Struck = true
		if !wasDestroyed && target.Destroyed && target.ID != attacker.ID {
			target.CreditKill(attacker)
		}
	}
	return attacker.ID
}

// dispatch routes a result to its handler after the checks every attack
// shares.
func (p *Phase) dispatch(r *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	name := r.Action.Name()
	if attacker.Gone() {
		rc.Report(report.New(report.AttackerInvalid).Subject(int(attacker.ID)).Indented(1).Add(attacker.Name))
		return round.Done()
	}
	if r.Action.common().Target.Kind == TargetUnit && (target == nil || target.Gone()) {
		targetName := "unknown"
		if target != nil {
			targetName = target.Name
		}
		rc.Report(report.New(report.TargetInvalid).Subject(int(attacker.ID)).Indented(1).Add(name, targetName))
		return round.Done()
	}

	switch a := r.Action.(type) {
	case Punch:
		return p.punch(r, a, attacker, target)
	case Kick:
		return p.kick(r, a, attacker, target)
	case Club:
		return p.club(r, a, attacker, target)
	case Push:
		return p.push(r, attacker, target)
	case Trip:
		return p.trip(r, attacker, target)
	case Grapple:
		return p.grapple(r, a, attacker, target)
	case BreakGrapple:
		return p.breakGrapple(r, attacker, target)
	case Charge:
		return p.charge(r, attacker, target)
	case AirmechRam:
		return p.airmechRam(r, attacker, target)
	case DFA:
		return p.dfa(r, attacker, target)
	case Ram:
		return p.ram(r, attacker, target)
	case JumpJet:
		return p.jumpJet(r, a, attacker, target)
	case Thrash:
		return p.thrash(r, attacker, target)
	case Vibroclaw:
		return p.vibroclaw(r, attacker, target)
	case BrushOff:
		return p.brushOff(r, a, attacker, target)
	case ProtoAttack:
		return p.protoAttack(r, attacker, target)
	case TeleMissile:
		return p.teleMissile(r, attacker, target)
	case LayExplosives:
		return p.layExplosives(r, attacker)
	case FindClub:
		return p.findClub(attacker)
	case TriggerPod:
		return p.triggerPod(a, attacker)
	case ClearMinefield:
		return p.clearMinefield(r, attacker)
	case DetonateExplosives:
		return p.detonateExplosives(r, attacker)
	case Inferno:
		return p.inferno(r, attacker)
	default:
		rc.Log.Error("no handler for attack",
			zap.Int("attacker", int(attacker.ID)),
			zap.String("action", name),
			zap.Error(ErrUnknownAction))
		rc.Report(report.New(report.InternalError).Subject(int(attacker.ID)).Add(int(attacker.ID), name))
		return round.Done()
	}
}

// redirect queues a follow-up result that resolves right after the current
// one. A redirected result never redirects again.
func (p *Phase) redirect(r *Result) {
	r.redirected = true
	p.redirects = append(p.redirects, r)
}
