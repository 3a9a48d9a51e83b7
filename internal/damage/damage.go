// Package damage applies damage to units: armor, internal structure,
// transfer, critical hits, ammunition explosions and destruction.
package damage

import (
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// Engine is the damage application engine. It is stateless; all state lives
// in the round context and the world.
type Engine struct{}

func New() Engine { return Engine{} }

var _ round.Damager = Engine{}

// Clusters splits total into groups of size, the last group holding the
// remainder.
func Clusters(total, size int) []int {
	if total <= 0 {
		return nil
	}
	if size <= 0 {
		return []int{total}
	}
	var out []int
	for remaining := total; remaining > 0; {
		grp := size
		if remaining < size {
			grp = remaining
		}
		out = append(out, grp)
		remaining -= grp
	}
	return out
}

// ApplyClusters applies total damage in groups of size, each to a freshly
// rolled location.
func (e Engine) ApplyClusters(rc *round.Context, t *world.Combatant, total, size int, table round.HitTable, side round.Side, typ round.DamageType) {
	for _, grp := range Clusters(total, size) {
		if t.Destroyed {
			return
		}
		hit := e.RollLocation(rc, t, table, side)
		hit.Type = typ
		e.Apply(rc, t, hit, grp)
	}
}

// Apply deals dmg to one location of t.
func (e Engine) Apply(rc *round.Context, t *world.Combatant, hit round.HitData, dmg int) {
	if dmg <= 0 || t.Destroyed {
		return
	}
	switch t.Kind {
	case world.KindMech:
		e.applyMech(rc, t, hit.Location, dmg, hit)
		if hit.PossibleTAC && !t.Destroyed && !t.Loc(hit.Location).Destroyed() {
			rc.Report(report.New(report.PossibleTAC).Subject(int(t.ID)).Indented(3).Add(t.LocName(hit.Location)))
			e.rollCrits(rc, t, hit.Location, hit.CritMod)
		}
	case world.KindTank, world.KindVTOL:
		e.applyVehicle(rc, t, hit, dmg)
	case world.KindInfantry:
		e.applyInfantry(rc, t, dmg)
	case world.KindBattleArmor, world.KindProtoMech:
		e.applySimple(rc, t, hit.Location, dmg)
	case world.KindAero, world.KindTeleMissile:
		e.applyAero(rc, t, hit.Location, dmg)
	}
	e.checkDestroyed(rc, t)
}

// applyMech runs armor -> IS -> crits -> transfer for a mech location.
func (e Engine) applyMech(rc *round.Context, t *world.Combatant, loc, dmg int, hit round.HitData) {
	l := t.Loc(loc)
	if l == nil || dmg <= 0 {
		return
	}
	if l.Destroyed() {
		e.transfer(rc, t, loc, dmg, hit)
		return
	}

	remaining := dmg
	if hit.Rear && world.IsTorso(loc) {
		rc.Report(report.New(report.RearArmorHit).Subject(int(t.ID)).Indented(3).Add(t.LocName(loc)))
		remaining = l.Rear.Absorb(remaining)
	} else {
		remaining = l.Armor.Absorb(remaining)
	}

	if remaining == 0 {
		e.reportDamage(rc, t, loc, dmg, hit.Rear)
		return
	}

	overflow := l.IS.Absorb(remaining)
	e.reportDamage(rc, t, loc, dmg-overflow, hit.Rear)
	if !l.Destroyed() {
		e.rollCrits(rc, t, loc, hit.CritMod)
		return
	}

	e.destroyLocation(rc, t, loc)
	if overflow > 0 {
		e.transfer(rc, t, loc, overflow, hit)
	}
}

func (e Engine) transfer(rc *round.Context, t *world.Combatant, from, dmg int, hit round.HitData) {
	to := t.TransferLocation(from)
	if to == world.NoLocation {
		return
	}
	rc.Report(report.New(report.DamageTransfer).Subject(int(t.ID)).Indented(3).
		Add(t.LocName(from), t.LocName(to), dmg))
	e.applyMech(rc, t, to, dmg, hit)
}

func (e Engine) reportDamage(rc *round.Context, t *world.Combatant, loc, dmg int, rear bool) {
	l := t.Loc(loc)
	armor := l.Armor.Value()
	if rear && world.IsTorso(loc) {
		armor = l.Rear.Value()
	}
	rc.Report(report.New(report.DamageApplied).Subject(int(t.ID)).Indented(3).
		Add(t.LocName(loc), dmg, armor, l.IS.Value()))
}

// destroyLocation marks a location and everything mounted in it destroyed.
func (e Engine) destroyLocation(rc *round.Context, t *world.Combatant, loc int) {
	l := t.Loc(loc)
	l.Armor.Zero()
	l.Rear.Zero()
	l.IS.Zero()
	for i := range t.Weapons {
		if t.Weapons[i].Location == loc {
			t.Weapons[i].Destroyed = true
		}
	}
	for i := range t.Pods {
		if t.Pods[i].Location == loc {
			t.Pods[i].Used = true
		}
	}
	rc.Report(report.New(report.LocationDestroyed).Subject(int(t.ID)).Indented(3).Add(t.LocName(loc)))
	if world.IsArm(loc) && t.Club != "" {
		t.Club = ""
	}
	if t.Kind == world.KindMech && world.IsLeg(loc) && !t.Prone {
		rc.QueuePSR(t, "leg destroyed", 0)
	}
}

func (e Engine) applySimple(rc *round.Context, t *world.Combatant, loc, dmg int) {
	l := t.Loc(loc)
	if l == nil || l.Destroyed() {
		return
	}
	remaining := l.Armor.Absorb(dmg)
	l.IS.Absorb(remaining)
	e.reportDamage(rc, t, loc, dmg, false)
	if l.Destroyed() {
		e.destroyLocation(rc, t, loc)
	}
}

func (e Engine) applyInfantry(rc *round.Context, t *world.Combatant, dmg int) {
	l := t.Loc(world.LocTroops)
	before := l.IS.Value()
	l.IS.Absorb(dmg)
	rc.Report(report.New(report.TroopersKilled).Subject(int(t.ID)).Indented(3).Add(t.Name, before-l.IS.Value()))
}

func (e Engine) applyAero(rc *round.Context, t *world.Combatant, loc, dmg int) {
	l := t.Loc(loc)
	if l == nil {
		l = t.Loc(0)
	}
	remaining := l.Armor.Absorb(dmg)
	e.reportDamage(rc, t, loc, dmg-remaining, false)
	if remaining > 0 {
		t.SI.Absorb(remaining)
		rc.Report(report.New(report.SIDamage).Subject(int(t.ID)).Indented(3).Add(remaining, t.SI.Value()))
	}
}

// checkDestroyed applies the destruction conditions for t's kind.
func (e Engine) checkDestroyed(rc *round.Context, t *world.Combatant) {
	if t.Destroyed {
		return
	}
	cause := destructionCause(t)
	if cause != "" {
		Destroy(rc, t, cause)
	}
}

func destructionCause(t *world.Combatant) string {
	switch t.Kind {
	case world.KindMech:
		switch {
		case t.PilotHits >= 6:
			return "pilot killed"
		case t.CockpitHit:
			return "cockpit destroyed"
		case t.EngineHits >= 3:
			return "engine destroyed"
		case t.Loc(world.LocCT).Destroyed():
			return "center torso destroyed"
		case t.Loc(world.LocHD).Destroyed():
			return "head destroyed"
		}
	case world.KindTank, world.KindVTOL:
		for loc := range t.Locations {
			if loc == world.LocTurret {
				continue
			}
			if t.Locations[loc].Destroyed() {
				return t.LocName(loc) + " destroyed"
			}
		}
	case world.KindInfantry:
		if t.Loc(world.LocTroops).IS.Value() == 0 {
			return "all troopers killed"
		}
	case world.KindBattleArmor:
		for i := range t.Locations {
			if !t.Locations[i].Destroyed() {
				return ""
			}
		}
		return "all troopers killed"
	case world.KindProtoMech:
		if t.Loc(world.LocProtoTorso).Destroyed() {
			return "torso destroyed"
		}
		if t.Loc(world.LocProtoHead).Destroyed() {
			return "head destroyed"
		}
	case world.KindAero, world.KindTeleMissile:
		if t.SI.Empty() {
			return "structural integrity destroyed"
		}
	}
	return ""
}

// Destroy marks t destroyed and reports why.
func Destroy(rc *round.Context, t *world.Combatant, cause string) {
	if t.Destroyed {
		return
	}
	t.Destroyed = true
	rc.DropPSRs(t.ID)
	if t.GrappledWith != world.NoUnit {
		rc.World.ReleaseGrapple(t)
	}
	rc.Report(report.New(report.UnitDestroyed).Subject(int(t.ID)).Indented(2).Add(t.Name, cause))
}
