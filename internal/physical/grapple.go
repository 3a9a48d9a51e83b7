package physical

import (
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Push, trip and grapple ─────────────────────────────────────────────────

// reciprocal finds the pending result of the same kind that target declared
// against attacker.
func (p *Phase) reciprocal(r *Result, same func(Action) bool) *Result {
	atk := r.Action.common()
	if atk.Target.Kind != TargetUnit {
		return nil
	}
	for _, o := range p.results {
		if o == r || o.Resolution != Pending || !same(o.Action) {
			continue
		}
		oa := o.Action.common()
		if oa.Attacker == atk.Target.Unit && oa.Target.Kind == TargetUnit && oa.Target.Unit == atk.Attacker {
			return o
		}
	}
	return nil
}

func isPush(a Action) bool {
	_, ok := a.(Push)
	return ok
}

func isGrapple(a Action) bool {
	_, ok := a.(Grapple)
	return ok
}

func (p *Phase) push(r *Result, attacker, target *world.Combatant) round.Outcome {
	if o := p.reciprocal(r, isPush); o != nil {
		return p.mutualPush(r, o, attacker, target)
	}
	c := p.roll(attacker, "push", target.Name, r.ToHit, r.Roll)
	if c.verdict == verdictImpossible {
		return round.Done()
	}
	p.rc.QueuePSR(target, "pushed", 0)
	if !c.hit() {
		return round.Done()
	}
	return p.pushAway(attacker, target)
}

// mutualPush resolves two pushes declared against each other in one pass.
// When both land neither unit moves.
func (p *Phase) mutualPush(r, o *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	r.Resolution, o.Resolution = Resolved, Resolved
	target.Struck, attacker.Struck = true, true
	rc.Report(report.New(report.MutualPush).Subject(int(attacker.ID)).Indented(2).Add(attacker.Name, target.Name))

	mine := p.roll(attacker, "push", target.Name, r.ToHit, r.Roll)
	theirs := p.roll(target, "push", attacker.Name, o.ToHit, o.Roll)
	if mine.verdict != verdictImpossible {
		rc.QueuePSR(target, "pushed", 0)
	}
	if theirs.verdict != verdictImpossible {
		rc.QueuePSR(attacker, "pushed", 0)
	}
	switch {
	case mine.hit() && theirs.hit():
		return round.Done()
	case mine.hit():
		return p.pushAway(attacker, target)
	case theirs.hit():
		return p.pushAway(target, attacker)
	}
	return round.Done()
}

// pushAway moves target one hex along attacker's facing and the attacker
// into the hex it left. The destination must be free.
func (p *Phase) pushAway(attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	dir := attacker.Facing
	from := target.Pos
	to := hexgrid.Neighbor(from, dir)
	if !rc.World.IsLegalDisplacement(target, from, dir) || rc.World.StackingViolation(target, to) != nil {
		rc.Report(report.New(report.PushNoRoom).Subject(int(target.ID)).Indented(3).Add(target.Name))
		return round.Done()
	}
	return rc.Displace.Displace(rc, target, dir, "pushed").Then(func() round.Outcome {
		if target.Pos == from || attacker.Gone() {
			return round.Done()
		}
		return rc.Displace.MoveTo(rc, attacker, from)
	})
}

func (p *Phase) trip(r *Result, attacker, target *world.Combatant) round.Outcome {
	c := p.roll(attacker, "trip", target.Name, r.ToHit, r.Roll)
	if c.hit() {
		p.rc.Report(report.New(report.TripFall).Subject(int(target.ID)).Indented(3).Add(target.Name))
		p.rc.QueuePSR(target, "tripped", 0)
	}
	return round.Done()
}

func (p *Phase) grapple(r *Result, a Grapple, attacker, target *world.Combatant) round.Outcome {
	if o := p.reciprocal(r, isGrapple); o != nil {
		return p.mutualGrapple(r, o, a, attacker, target)
	}
	if c := p.roll(attacker, "grapple", target.Name, r.ToHit, r.Roll); c.hit() {
		p.bind(attacker, target, a.Side)
	}
	return round.Done()
}

// mutualGrapple resolves two grapples declared against each other. If both
// land, the larger margin holds the grapple; ties go to the earlier
// declaration.
func (p *Phase) mutualGrapple(r, o *Result, a Grapple, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	r.Resolution, o.Resolution = Resolved, Resolved
	target.Struck, attacker.Struck = true, true

	mine := p.roll(attacker, "grapple", target.Name, r.ToHit, r.Roll)
	theirs := p.roll(target, "grapple", attacker.Name, o.ToHit, o.Roll)
	theirSide := world.GrappleBody
	if g, ok := o.Action.(Grapple); ok {
		theirSide = g.Side
	}

	winner, loser, side := attacker, target, a.Side
	switch {
	case mine.hit() && theirs.hit():
		if theirs.margin > mine.margin {
			winner, loser, side = target, attacker, theirSide
		}
	case theirs.hit():
		winner, loser, side = target, attacker, theirSide
	case !mine.hit():
		return round.Done()
	}
	rc.Report(report.New(report.MutualGrapple).Subject(int(winner.ID)).Indented(2).Add(winner.Name, loser.Name))
	p.bind(winner, loser, side)
	return round.Done()
}

// bind grapples target. A whole-body grapple brings the attacker into the
// target's hex.
func (p *Phase) bind(attacker, target *world.Combatant, side world.GrappleSide) {
	rc := p.rc
	rc.World.Grapple(attacker, target, side)
	rc.Report(report.New(report.GrappleMade).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, target.Name))
	if side != world.GrappleBody || attacker.Pos == target.Pos {
		return
	}
	from := attacker.Pos
	attacker.Pos = target.Pos
	rc.Report(report.New(report.Displaced).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, from.String(), target.Pos.String()))
	rc.Hazards.EnterHex(rc, attacker)
}

// breakGrapple frees the attacker. A unit that started the grapple steps
// into the safest free hex; one breaking out throws its grappler into the
// most dangerous.
func (p *Phase) breakGrapple(r *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	if attacker.GrappledWith != target.ID {
		rc.Report(report.New(report.GrappleNotHeld).Subject(int(attacker.ID)).Indented(2).Add(attacker.Name))
		return round.Done()
	}
	if c := p.roll(attacker, "break grapple", target.Name, r.ToHit, r.Roll); !c.hit() {
		return round.Done()
	}
	initiator := attacker.GrappleAttacker
	shared := attacker.Pos == target.Pos
	rc.World.ReleaseGrapple(attacker)
	rc.Report(report.New(report.GrappleBroken).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, target.Name))
	if !shared {
		return round.Done()
	}

	mover, safest := attacker, true
	if !initiator {
		mover, safest = target, false
	}
	h, ok := pickHex(rc.World, mover, safest)
	if !ok {
		return round.Done()
	}
	return rc.Displace.MoveTo(rc, mover, h)
}

// danger scores how hazardous it is for u to be moved into h.
func danger(w *world.World, u *world.Combatant, h hexgrid.HexCoord) int {
	hx := w.Hex(h)
	if hx == nil {
		return 0
	}
	score := hx.Level(hexgrid.TerrainMagma)*10 + hx.Level(hexgrid.TerrainWater)*3
	if drop := w.SurfaceAt(u.Pos) - w.SurfaceAt(h); drop > 0 {
		score += drop * 2
	}
	return score
}

// pickHex returns the least (or most) dangerous free hex adjacent to u.
// Ties keep the lower facing.
func pickHex(w *world.World, u *world.Combatant, safest bool) (hexgrid.HexCoord, bool) {
	var best hexgrid.HexCoord
	bestScore, found := 0, false
	for dir := 0; dir < hexgrid.NumFacings; dir++ {
		h := hexgrid.Neighbor(u.Pos, dir)
		if !w.IsLegalDisplacement(u, u.Pos, dir) || w.StackingViolation(u, h) != nil {
			continue
		}
		s := danger(w, u, h)
		if !found || (safest && s < bestScore) || (!safest && s > bestScore) {
			best, bestScore, found = h, s, true
		}
	}
	return best, found
}
