package damage

import (
	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Vehicles ───────────────────────────────────────────────────────────────

func (e Engine) applyVehicle(rc *round.Context, t *world.Combatant, hit round.HitData, dmg int) {
	loc := hit.Location
	l := t.Loc(loc)
	if l == nil || l.Destroyed() {
		return
	}
	remaining := l.Armor.Absorb(dmg)
	overflow := l.IS.Absorb(remaining)
	e.reportDamage(rc, t, loc, dmg-overflow, false)
	if l.Destroyed() {
		e.destroyLocation(rc, t, loc)
		if t.Kind == world.KindVTOL && loc == world.LocRotor {
			e.Crash(rc, t)
			return
		}
	}

	if t.Kind == world.KindVTOL && loc == world.LocRotor {
		return
	}
	mod := 0
	switch loc {
	case world.LocLeft, world.LocRight:
		mod = 2
	case world.LocRear:
		mod = 1
	case world.LocTurret:
		return
	}
	e.Motive(rc, t, mod)
}

// Motive rolls on the motive system damage table for a vehicle.
func (e Engine) Motive(rc *round.Context, t *world.Combatant, mod int) {
	if !t.Vehicle() || t.Destroyed || t.Immobile {
		return
	}
	switch t.Motive {
	case world.MotiveWheeled:
		mod += 2
	case world.MotiveHover:
		mod += 3
	}
	roll := dice.Roll2d6(rc.Dice) + mod
	effect := "none"
	switch {
	case roll >= 12:
		t.Immobile = true
		effect = "immobilized"
	case roll >= 10:
		t.MotiveHalved = true
		t.WalkMP /= 2
		effect = "heavy damage"
	case roll >= 8:
		t.MotivePenalty += 2
		effect = "moderate damage"
	case roll >= 6:
		t.MotivePenalty++
		effect = "minor damage"
	}
	if t.WalkMP-t.MotivePenalty <= 0 && effect != "none" {
		t.Immobile = true
	}
	rc.Report(report.New(report.MotiveDamage).Subject(int(t.ID)).Indented(3).Add(t.Name, roll, effect))
}

// Crash destroys a VTOL's rotor and drops it from its elevation. Falling
// damage is a tenth of weight per level fallen (plus one), in 5-point
// clusters against the front of the vehicle.
func (e Engine) Crash(rc *round.Context, t *world.Combatant) {
	if t.Destroyed || t.Kind == world.KindVTOL && t.RotorDestroyed {
		return
	}
	levels := t.Elevation
	t.Immobile = true
	t.Elevation = 0
	if t.Kind == world.KindVTOL {
		t.RotorDestroyed = true
		rc.Report(report.New(report.RotorDestroyed).Subject(int(t.ID)).Indented(3).Add(t.Name))
	}
	rc.Report(report.New(report.Crash).Subject(int(t.ID)).Indented(3).Add(t.Name))

	if hx := rc.World.Hex(t.Pos); hx != nil && hx.Level(hexgrid.TerrainWater) > 0 {
		Destroy(rc, t, "crashed into water")
		return
	}
	dmg := (t.Weight + 9) / 10 * (levels + 1)
	e.ApplyClusters(rc, t, dmg, 5, round.TableStandard, round.SideFront, round.DamageFall)
}
