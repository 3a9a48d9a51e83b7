package physical

import (
	"github.com/JustinWhittecar/physcombat/internal/damage"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Aerospace ram and telemissiles ─────────────────────────────────────────

// ramSteel is the 2d6 a pilot must make to hold course into a ram.
const ramSteel = 11

func (p *Phase) ram(r *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	steel := rc.Roll2d6().Total
	rc.Report(report.New(report.RamSteel).Subject(int(attacker.ID)).Indented(2).Add(attacker.Name, steel, ramSteel))
	if steel < ramSteel {
		rc.Report(report.New(report.RamSteelFails).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name))
		return round.Done()
	}

	c := p.roll(attacker, "ram", p.targetName(r, target), r.ToHit, r.Roll)
	if !c.hit() {
		return round.Done()
	}
	if target == nil {
		p.strikeStructure(r, r.Damage)
		return round.Done()
	}

	dealt := r.Damage
	taken := RamDamage(target.Weight, attacker.Velocity)
	if g := rc.Roll1d6().Total; g == 1 {
		dealt, taken = (dealt+1)/2, (taken+1)/2
		rc.Report(report.New(report.RamGlancing).Subject(int(attacker.ID)).Indented(3).Add(g))
	}
	p.ramHit(target, dealt, r.ToHit)
	p.ramHit(attacker, taken, ToHit{Table: round.TableStandard, Side: round.SideFront})
	return round.Done()
}

// ramHit lands one side of a ram. A blow more than twice the location's
// original armor wrecks the unit outright.
func (p *Phase) ramHit(u *world.Combatant, dmg int, th ToHit) {
	rc := p.rc
	if u.Gone() || dmg <= 0 {
		return
	}
	hit := rc.Damage.RollLocation(rc, u, th.Table, th.Side)
	hit.Type = round.DamagePhysical
	rc.Report(report.New(report.AttackHits).Subject(int(u.ID)).Indented(2).Add("ram", u.LocName(hit.Location), dmg))
	if loc := u.Loc(hit.Location); loc != nil && dmg > 2*loc.Armor.Max() {
		rc.Report(report.New(report.RamDestroys).Subject(int(u.ID)).Indented(3).Add(u.Name, u.LocName(hit.Location)))
		damage.Destroy(rc, u, "rammed")
		return
	}
	rc.Damage.Apply(rc, u, hit, dmg)
}

// teleMissile runs the target's point defence, then the missile's attack.
// The missile is spent whether or not it hits.
func (p *Phase) teleMissile(r *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	if target == nil || !target.AMS || target.AMSAmmo <= 0 {
		return p.missileStrike(r, attacker, target)
	}
	if !rc.Options.ManualAMS {
		return p.intercept(r, attacker, target)
	}
	return round.Ask(round.Request{
		Kind:   round.RequestAMS,
		Unit:   target.ID,
		Owner:  target.Owner,
		Prompt: "engage " + attacker.Name + " with AMS?",
	}, func(a round.Answer) round.Outcome {
		if a.Choice == 1 {
			return p.intercept(r, attacker, target)
		}
		return p.missileStrike(r, attacker, target)
	})
}

func (p *Phase) intercept(r *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	shots := rc.Roll1d6().Total
	target.AMSAmmo--
	attacker.SI.Absorb(shots)
	rc.Report(report.New(report.TeleMissileAMS).Subject(int(attacker.ID)).Indented(2).Add(attacker.Name, shots, attacker.SI.Value()))
	if attacker.SI.Value() == 0 {
		rc.Report(report.New(report.TeleMissileGone).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name))
		damage.Destroy(rc, attacker, "shot down")
		return round.Done()
	}
	return p.missileStrike(r, attacker, target)
}

func (p *Phase) missileStrike(r *Result, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	th := r.ToHit
	if parent := rc.World.Unit(attacker.Parent); parent != nil && !th.IsImpossible() && !th.IsAutomatic() {
		if parent.SensorHits > 0 || parent.FireControlHits > 0 {
			th.Value += parent.SensorHits + 2*parent.FireControlHits
			rc.Report(report.New(report.TeleMissileDegraded).Subject(int(attacker.ID)).Indented(3).Add(parent.SensorHits, parent.FireControlHits))
		}
	}
	p.strike(r, attacker, target, blow{
		name: "telemissile", th: th, roll: r.Roll, damage: r.Damage, cluster: 5, typ: round.DamageExplosion,
	})
	damage.Destroy(rc, attacker, "telemissile expended")
	return round.Done()
}
