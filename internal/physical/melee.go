package physical

import (
	"strings"

	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Punch, kick, club and the other single blows ───────────────────────────

// limbs expands a limb choice into the blows it makes.
func limbs(l Limb) []Limb {
	if l == LimbBoth {
		return []Limb{LimbLeft, LimbRight}
	}
	return []Limb{l}
}

// blowFor returns the to-hit, roll and damage of the i'th blow of r.
func blowFor(r *Result, i int) (ToHit, int, int) {
	if i == 1 {
		return r.ToHitRight, r.RollRight, r.DamageRight
	}
	return r.ToHit, r.Roll, r.Damage
}

// airbornePenalty queues a control roll for an airborne attacker whose blow
// did not land.
func (p *Phase) airbornePenalty(attacker *world.Combatant, c check, reason string) {
	if c.hit() || !attacker.Airborne() {
		return
	}
	p.rc.Report(report.New(report.AttackerControlRoll).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, reason))
	p.rc.QueueControlRoll(attacker, reason, 0)
}

func (p *Phase) punch(r *Result, a Punch, attacker, target *world.Combatant) round.Outcome {
	for i, arm := range limbs(a.Arm) {
		if target != nil && target.Gone() {
			break
		}
		th, roll, dmg := blowFor(r, i)
		c := p.strike(r, attacker, target, blow{
			name: "punch", th: th, roll: roll, damage: dmg,
			typ: round.DamagePhysical, contact: []int{armLoc(arm)},
		})
		p.airbornePenalty(attacker, c, "missed punch")
	}
	return round.Done()
}

func (p *Phase) kick(r *Result, a Kick, attacker, target *world.Combatant) round.Outcome {
	c := p.strike(r, attacker, target, blow{
		name: "kick", th: r.ToHit, roll: r.Roll, damage: r.Damage,
		typ: round.DamagePhysical, contact: []int{legLoc(a.Leg)},
	})
	switch c.verdict {
	case verdictHit:
		if target != nil && target.Kind == world.KindMech {
			p.rc.QueuePSR(target, "kicked", 0)
		}
	case verdictMiss:
		p.rc.QueuePSR(attacker, "missed kick", 0)
	}
	p.airbornePenalty(attacker, c, "missed kick")
	return round.Done()
}

// redirectsOnFumble lists weapons that hit their wielder on a roll of 2.
var redirectsOnFumble = map[string]bool{"flail": true, "wrecking ball": true}

func (p *Phase) club(r *Result, a Club, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	weapon := strings.ToLower(a.Weapon)
	if weapon == "" {
		weapon = strings.ToLower(attacker.Club)
	}
	c := p.strike(r, attacker, target, blow{
		name: "club", th: r.ToHit, roll: r.Roll, damage: r.Damage, typ: round.DamagePhysical,
	})
	p.airbornePenalty(attacker, c, "missed club")

	switch {
	case c.verdict == verdictMiss && redirectsOnFumble[weapon] && c.roll == 2 && !r.redirected:
		rc.Report(report.New(report.RedirectAttack).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name))
		p.redirect(&Result{
			Action:    Club{Attack: Attack{Attacker: attacker.ID, Target: UnitTarget(attacker.ID)}, Weapon: weapon},
			ToHit:     automatic("own " + weapon),
			Damage:    r.Damage,
			TargetPos: attacker.Pos,
		})
	case c.hit() && weapon == "retractable blade":
		if dice.Roll2d6(rc.Dice) == 2 {
			rc.Report(report.New(report.WeaponBreaks).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, weapon))
			if strings.EqualFold(attacker.Club, weapon) {
				attacker.Club = ""
			}
		}
	case c.hit() && weapon == "taser" && target != nil && !target.Gone():
		if dice.Roll2d6(rc.Dice) >= 8 && !target.IsInfantry() {
			target.Shutdown = true
			rc.Report(report.New(report.TaserShutdown).Subject(int(target.ID)).Indented(3).Add(target.Name))
		}
	}
	return round.Done()
}

func (p *Phase) jumpJet(r *Result, a JumpJet, attacker, target *world.Combatant) round.Outcome {
	c := p.strike(r, attacker, target, blow{
		name: "jump jet", th: r.ToHit, roll: r.Roll, damage: r.Damage, typ: round.DamageEnergy,
	})
	if c.hit() && target != nil && target.Kind == world.KindMech {
		p.rc.QueuePSR(target, "jump jet attack", 0)
	}
	return round.Done()
}

func (p *Phase) thrash(r *Result, attacker, target *world.Combatant) round.Outcome {
	p.strike(r, attacker, target, blow{
		name: "thrash", th: r.ToHit, roll: r.Roll, damage: r.Damage, cluster: 5, typ: round.DamagePhysical,
	})
	if !r.ToHit.IsImpossible() {
		p.rc.QueuePSR(attacker, "thrashing", 0)
	}
	return round.Done()
}

func (p *Phase) vibroclaw(r *Result, attacker, target *world.Combatant) round.Outcome {
	p.strike(r, attacker, target, blow{
		name: "vibroclaw", th: r.ToHit, roll: r.Roll, damage: r.Damage, cluster: 5, typ: round.DamagePhysical,
	})
	return round.Done()
}

func (p *Phase) protoAttack(r *Result, attacker, target *world.Combatant) round.Outcome {
	p.strike(r, attacker, target, blow{
		name: "protomech attack", th: r.ToHit, roll: r.Roll, damage: r.Damage, typ: round.DamagePhysical,
	})
	return round.Done()
}

// brushOff swats at infantry swarming the attacker. A miss lands the blow
// on the attacker itself.
func (p *Phase) brushOff(r *Result, a BrushOff, attacker, target *world.Combatant) round.Outcome {
	rc := p.rc
	for i := range limbs(a.Arm) {
		if target.Gone() || target.SwarmingOn != attacker.ID {
			break
		}
		th, roll, dmg := blowFor(r, i)
		c := p.strike(r, attacker, target, blow{
			name: "brush off", th: th, roll: roll, damage: dmg, typ: round.DamagePhysical,
		})
		switch c.verdict {
		case verdictHit:
			target.SwarmingOn = world.NoUnit
			rc.Report(report.New(report.SwarmDislodged).Subject(int(target.ID)).Indented(3).Add(target.Name))
		case verdictMiss:
			rc.Report(report.New(report.BrushOffSelfHit).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, dmg))
			hit := rc.Damage.RollLocation(rc, attacker, round.TablePunch, round.SideFront)
			rc.Damage.Apply(rc, attacker, hit, dmg)
		}
	}
	return round.Done()
}
