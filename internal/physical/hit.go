package physical

import (
	"github.com/JustinWhittecar/physcombat/internal/damage"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Shared hit shape ───────────────────────────────────────────────────────

type verdict int

const (
	verdictImpossible verdict = iota
	verdictMiss
	verdictHit
)

// check is the outcome of one to-hit test.
type check struct {
	verdict  verdict
	roll     int
	margin   int
	glancing bool
	direct   bool
}

func (c check) hit() bool { return c.verdict == verdictHit }

// Hits reports whether roll hits th. Impossible never hits and automatic
// success always does, whatever the roll.
func Hits(th ToHit, roll int) bool {
	switch {
	case th.IsImpossible():
		return false
	case th.IsAutomatic():
		return true
	}
	return roll >= th.Value
}

// Margin is the roll's margin of success over th.
func Margin(th ToHit, roll int) int {
	if th.IsAutomatic() || th.IsImpossible() {
		return 0
	}
	target := th.Value
	if target < 2 {
		target = 2
	}
	return roll - target
}

// Shelter is the part of dmg that reaches a unit inside a building: the
// building's absorption comes off first, then its class scale applies.
func Shelter(dmg, absorption int, scale float64) int {
	if absorption > dmg {
		absorption = dmg
	}
	return int(float64(dmg-absorption) * scale)
}

// Spiked is dmg after striking a spiked location.
func Spiked(dmg int) int {
	if dmg-4 < 1 {
		return 1
	}
	return dmg - 4
}

// Retaliation is the damage spikes deal back to each attacker location in
// contact: 2 for a single limb, 1 each for two, none where the attacker is
// spiked itself.
func Retaliation(attacker *world.Combatant, contact []int) map[int]int {
	out := make(map[int]int)
	per := 2
	if len(contact) > 1 {
		per = 1
	}
	for _, loc := range contact {
		if attacker.HasSpikes(loc) {
			continue
		}
		out[loc] += per
	}
	return out
}

// roll runs the to-hit test for one blow and reports it.
func (p *Phase) roll(attacker *world.Combatant, name, targetName string, th ToHit, rolled int) check {
	rc := p.rc
	sub := int(attacker.ID)
	if th.IsImpossible() {
		rc.Report(report.New(report.AttackImpossible).Subject(sub).Indented(2).Add(name, targetName, th.Desc))
		return check{verdict: verdictImpossible}
	}
	c := check{roll: rolled}
	if th.IsAutomatic() {
		c.roll = Impossible
		rc.Report(report.New(report.AttackAutoHit).Subject(sub).Indented(2).Add(name, targetName))
	} else {
		rc.Report(report.New(report.AttackRoll).Subject(sub).Indented(2).Add(name, targetName, th.Value, rolled))
		c.margin = Margin(th, rolled)
		c.glancing = rc.Options.GlancingBlows && rolled == th.Value
		c.direct = rc.Options.DirectBlows && c.margin/3 >= 1
	}
	if !Hits(th, rolled) {
		c.verdict = verdictMiss
		rc.Report(report.New(report.AttackMisses).Subject(sub).Indented(2).Add(name))
		return c
	}
	c.verdict = verdictHit
	return c
}

// blow is one instance of the shared hit shape.
type blow struct {
	name    string
	th      ToHit
	roll    int
	damage  int
	cluster int // 0 for a single hit
	typ     round.DamageType
	contact []int // attacker locations touching the target
}

// strike tests b for a hit and, on a hit, delivers its damage to target or
// to the building at the result's target hex.
func (p *Phase) strike(r *Result, attacker, target *world.Combatant, b blow) check {
	rc := p.rc
	c := p.roll(attacker, b.name, p.targetName(r, target), b.th, b.roll)
	if !c.hit() {
		return c
	}

	if target == nil {
		p.strikeStructure(r, b.damage)
		return c
	}

	dmg := b.damage
	hit := round.HitData{Type: b.typ}
	if b.cluster == 0 {
		hit = rc.Damage.RollLocation(rc, target, b.th.Table, b.th.Side)
		hit.Type = b.typ
		if target.Kind == world.KindVTOL {
			hit.Location = world.LocRotor
		}
	}

	absorbed := 0
	bldg := rc.World.InBuilding(target)
	if bldg != nil && attacker.Pos != target.Pos {
		absorbed = bldg.Absorption(target.Pos)
		if absorbed > dmg {
			absorbed = dmg
		}
		rc.Report(report.New(report.BuildingAbsorbs).Subject(int(target.ID)).Indented(3).Add(bldg.Name, absorbed))
		dmg = Shelter(dmg, absorbed, 1)
		if scale := bldg.DamageScale(); scale != 1 {
			dmg = Shelter(dmg, 0, scale)
			rc.Report(report.New(report.BuildingScaled).Subject(int(target.ID)).Indented(3).Add(bldg.Name, dmg))
		}
	}

	if c.glancing {
		if target.Kind == world.KindInfantry {
			dmg = (dmg + 1) / 2
		} else {
			dmg /= 2
		}
		hit.Glancing = true
		rc.Report(report.New(report.GlancingBlow).Subject(int(target.ID)).Indented(3).Add(dmg))
	}
	if c.direct {
		bonus := c.margin / 3
		dmg += bonus
		hit.DirectBlow = true
		hit.CritMod += 2
		rc.Report(report.New(report.DirectBlow).Subject(int(target.ID)).Indented(3).Add(bonus))
	}

	if b.cluster == 0 {
		dmg = p.spikes(attacker, target, b, hit.Location, dmg)
		rc.Report(report.New(report.AttackHits).Subject(int(target.ID)).Indented(2).Add(b.name, target.LocName(hit.Location), dmg))
		rc.Damage.Apply(rc, target, hit, dmg)
	} else {
		rc.Report(report.New(report.AttackHits).Subject(int(target.ID)).Indented(2).Add(b.name, "clusters", dmg))
		for _, grp := range damage.Clusters(dmg, b.cluster) {
			if target.Destroyed {
				break
			}
			h := rc.Damage.RollLocation(rc, target, b.th.Table, b.th.Side)
			h.Type, h.Glancing, h.DirectBlow, h.CritMod = b.typ, hit.Glancing, hit.DirectBlow, hit.CritMod
			if b.typ == round.DamagePhysical {
				grp = p.spikes(attacker, target, b, h.Location, grp)
			}
			rc.Damage.Apply(rc, target, h, grp)
		}
	}

	if absorbed > 0 {
		rc.Hazards.DamageBuilding(rc, bldg, target.Pos, absorbed)
	}
	return c
}

// spikes reduces dmg landing on a spiked location of target and hits the
// attacker's contact locations back.
func (p *Phase) spikes(attacker, target *world.Combatant, b blow, loc, dmg int) int {
	rc := p.rc
	if !target.HasSpikes(loc) {
		return dmg
	}
	dmg = Spiked(dmg)
	rc.Report(report.New(report.SpikesReduce).Subject(int(target.ID)).Indented(3).Add(target.LocName(loc), dmg))
	back := Retaliation(attacker, b.contact)
	for _, c := range b.contact {
		n := back[c]
		if n == 0 || attacker.Destroyed {
			continue
		}
		rc.Report(report.New(report.SpikesRetaliate).Subject(int(attacker.ID)).Indented(3).Add(attacker.LocName(c), n))
		rc.Damage.Apply(rc, attacker, round.HitData{Location: c, Type: round.DamagePhysical}, n)
	}
	return dmg
}

// bodyContact is the part of attacker that strikes in a charge or ram.
func bodyContact(attacker *world.Combatant) []int {
	switch attacker.Kind {
	case world.KindMech:
		return []int{world.LocCT}
	case world.KindTank:
		return []int{world.LocFront}
	}
	return nil
}

// strikeStructure delivers dmg to the building in the result's target hex
// and to any infantry sheltering in it.
func (p *Phase) strikeStructure(r *Result, dmg int) {
	rc := p.rc
	h := r.Action.common().Target.Hex
	b := rc.World.BuildingAt(h)
	if b == nil {
		rc.Report(report.New(report.AttackHits).Indented(2).Add(r.Action.Name(), h.String(), 0))
		return
	}
	rc.Report(report.New(report.AttackHits).Indented(2).Add(r.Action.Name(), b.Name, dmg))
	rc.Hazards.DamageShelter(rc, b, h, dmg)
	rc.Hazards.DamageBuilding(rc, b, h, dmg)
}

func (p *Phase) targetName(r *Result, target *world.Combatant) string {
	if target != nil {
		return target.Name
	}
	h := r.Action.common().Target.Hex
	if b := p.rc.World.BuildingAt(h); b != nil {
		return b.Name
	}
	return h.String()
}
