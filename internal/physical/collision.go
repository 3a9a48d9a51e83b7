package physical

import (
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Charge, airmech ram and death from above ───────────────────────────────

// fizzled reports whether a collision attack can no longer land. The
// attacker still finishes its move into the hex it was headed for.
func (p *Phase) fizzled(r *Result, attacker, target *world.Combatant) (round.Outcome, bool) {
	rc := p.rc
	moved := target != nil && target.Pos != r.TargetPos
	if !moved && !attacker.Prone && !attacker.Immobile {
		return round.Done(), false
	}
	rc.Report(report.New(report.ChargeFizzles).Subject(int(attacker.ID)).Indented(2).Add(attacker.Name, r.TargetPos.String()))
	if attacker.Prone || attacker.Immobile || attacker.Pos == r.TargetPos {
		return round.Done(), true
	}
	return rc.Displace.MoveTo(rc, attacker, r.TargetPos), true
}

// counterDamage is what a unit takes for slamming into a building hex.
func counterDamage(w *world.World, h hexgrid.HexCoord) int {
	if b := w.BuildingAt(h); b != nil {
		return ceilDiv(b.CF(h), 10)
	}
	return 0
}

// collide applies the attacker's own damage from a landed collision.
func (p *Phase) collide(attacker *world.Combatant, dmg int, table round.HitTable) {
	if dmg <= 0 || attacker.Destroyed {
		return
	}
	p.rc.Report(report.New(report.CollisionDamage).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, dmg))
	p.rc.Damage.ApplyClusters(p.rc, attacker, dmg, 5, table, round.SideFront, round.DamagePhysical)
}

// knockBack pushes target one hex directly away from the attacker and moves
// the attacker into the vacated hex.
func (p *Phase) knockBack(attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	from := target.Pos
	dir := hexgrid.Bearing(attacker.Pos, from)
	var out round.Outcome
	if !target.Destroyed {
		out = rc.Displace.Displace(rc, target, dir, "collision")
	}
	return out.Then(func() round.Outcome {
		if attacker.Gone() || attacker.Pos == from {
			return round.Done()
		}
		if target.Pos == from && !target.Destroyed {
			return round.Done()
		}
		return rc.Displace.MoveTo(rc, attacker, from)
	})
}

func (p *Phase) charge(r *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	attacker.DisplacementAttack = nil
	if out, done := p.fizzled(r, attacker, target); done {
		return out
	}
	counter := 0
	if target == nil {
		counter = counterDamage(rc.World, r.TargetPos)
	}

	c := p.strike(r, attacker, target, blow{
		name: "charge", th: r.ToHit, roll: r.Roll, damage: r.Damage, cluster: 5, typ: round.DamagePhysical,
		contact: bodyContact(attacker),
	})
	switch c.verdict {
	case verdictImpossible:
		return round.Done()
	case verdictMiss:
		for _, h := range hexgrid.SideHexes(attacker.Pos, r.TargetPos) {
			dir := hexgrid.Bearing(attacker.Pos, h)
			if !rc.World.IsLegalDisplacement(attacker, attacker.Pos, dir) || rc.World.StackingViolation(attacker, h) != nil {
				continue
			}
			rc.Report(report.New(report.ChargeMisses).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, h.String()))
			return rc.Displace.MoveTo(rc, attacker, h)
		}
		return round.Done()
	}

	if target == nil {
		p.collide(attacker, counter, round.TableStandard)
		return round.Done()
	}
	p.collide(attacker, ChargeDamageTaken(target.Weight), round.TableStandard)
	if target.Vehicle() && !target.Destroyed {
		rc.Damage.Motive(rc, target, 0)
	}
	if attacker.Vehicle() && !attacker.Destroyed {
		rc.Damage.Motive(rc, attacker, 0)
	}
	rc.QueuePSR(target, "charged", 2)
	rc.QueuePSR(attacker, "charging", 2)
	return p.knockBack(attacker, target)
}

func (p *Phase) airmechRam(r *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	attacker.DisplacementAttack = nil
	if out, done := p.fizzled(r, attacker, target); done {
		return out
	}
	counter := 0
	if target == nil {
		counter = counterDamage(rc.World, r.TargetPos)
	}

	c := p.strike(r, attacker, target, blow{
		name: "airmech ram", th: r.ToHit, roll: r.Roll, damage: r.Damage, cluster: 5, typ: round.DamagePhysical,
		contact: bodyContact(attacker),
	})
	switch c.verdict {
	case verdictImpossible:
		return round.Done()
	case verdictMiss:
		rc.Report(report.New(report.AttackerControlRoll).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, "missed ram"))
		rc.QueueControlRoll(attacker, "missed ram", 0)
		return round.Done()
	}

	if target == nil {
		p.collide(attacker, counter, round.TableStandard)
	} else {
		p.collide(attacker, ChargeDamageTaken(target.Weight), round.TableStandard)
		if target.Vehicle() && !target.Destroyed {
			rc.Damage.Motive(rc, target, 0)
		}
		rc.QueuePSR(target, "rammed", 2)
	}
	rc.QueueControlRoll(attacker, "airmech ram", 0)
	return round.Done()
}

func (p *Phase) dfa(r *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	attacker.DisplacementAttack = nil
	if out, done := p.fizzled(r, attacker, target); done {
		return out
	}
	counter := 0
	if target == nil {
		counter = counterDamage(rc.World, r.TargetPos)
	}

	dmg := r.Damage
	submerged := false
	if target != nil {
		if hx := rc.World.Hex(target.Pos); hx != nil && hx.Level(hexgrid.TerrainWater) > 0 && !target.Airborne() {
			dmg = (dmg + 1) / 2
			submerged = true
		}
	}
	th := r.ToHit
	if target != nil && !target.Prone {
		th.Table = round.TablePunch
	}

	c := p.strike(r, attacker, target, blow{
		name: "death from above", th: th, roll: r.Roll, damage: dmg, cluster: 5, typ: round.DamagePhysical,
		contact: []int{world.LocLL, world.LocRL},
	})
	switch c.verdict {
	case verdictImpossible:
		return round.Done()
	case verdictMiss:
		rc.Report(report.New(report.DFAMissFall).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name))
		return rc.Displace.FallInto(rc, attacker, r.TargetPos, 2)
	}

	if target == nil {
		p.collide(attacker, counter, round.TableKick)
		return round.Done()
	}
	if submerged {
		rc.Report(report.New(report.WaterHalves).Subject(int(target.ID)).Indented(3).Add(dmg))
	}
	p.collide(attacker, DFADamageTaken(attacker.Weight), round.TableKick)
	if target.Vehicle() && !target.Destroyed {
		rc.Damage.Motive(rc, target, 0)
	}
	rc.QueuePSR(target, "hit by death from above", 2)
	rc.QueuePSR(attacker, "executed death from above", 4)
	return p.knockBack(attacker, target)
}
