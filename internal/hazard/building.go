package hazard

import (
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Buildings ──────────────────────────────────────────────────────────────

// DamageBuilding takes dmg off the CF of b's hex h and checks whether the
// hex comes down.
func (e Engine) DamageBuilding(rc *round.Context, b *world.Building, h hexgrid.HexCoord, dmg int) {
	bh := b.Hex(h)
	if bh == nil || bh.Collapsed || dmg <= 0 {
		return
	}
	bh.CF.Absorb(dmg)
	rc.Report(report.New(report.BuildingHit).Indented(3).Add(b.Name, dmg, bh.CF.Value()))
	e.CheckCollapse(rc, b, h)
}

// DamageShelter passes dmg to every infantry unit sheltering in b's hex h.
func (e Engine) DamageShelter(rc *round.Context, b *world.Building, h hexgrid.HexCoord, dmg int) {
	if dmg <= 0 {
		return
	}
	for _, u := range rc.World.UnitsAt(h) {
		if !u.IsInfantry() || u.Gone() {
			continue
		}
		rc.Report(report.New(report.ShelterHit).Subject(int(u.ID)).Indented(3).Add(u.Name, dmg))
		hit := rc.Damage.RollLocation(rc, u, round.TableStandard, round.SideFront)
		rc.Damage.Apply(rc, u, hit, dmg)
	}
}

// CheckCollapse brings down b's hex h when its CF is gone or the ground
// units inside weigh more than it can bear. Units inside take a tenth of the
// original CF for each floor above them and fall.
func (e Engine) CheckCollapse(rc *round.Context, b *world.Building, h hexgrid.HexCoord) {
	bh := b.Hex(h)
	if bh == nil || bh.Collapsed {
		return
	}
	inside := groundUnits(rc.World, h)
	weight := 0
	for _, u := range inside {
		weight += u.Weight
	}
	if bh.CF.Value() > 0 && weight <= bh.CF.Value() {
		return
	}

	bh.Collapsed = true
	bh.Explosives = nil
	if hx := rc.World.Hex(h); hx != nil {
		hx.RemoveTerrain(hexgrid.TerrainBuilding)
		hx.SetTerrain(hexgrid.TerrainRubble, 1)
	}
	rc.Report(report.New(report.BuildingCollapses).Indented(2).Add(b.Name, h.String()))

	perFloor := (bh.CF.Max() + 9) / 10
	for _, u := range inside {
		above := bh.Floors - u.Elevation
		if above < 1 {
			above = 1
		}
		dmg := perFloor * above
		rc.Report(report.New(report.CollapseDamage).Subject(int(u.ID)).Indented(3).Add(u.Name, dmg))
		rc.Damage.ApplyClusters(rc, u, dmg, 5, round.TableStandard, round.SideFront, round.DamagePhysical)
		if !u.Destroyed && rc.Displace != nil {
			rc.Displace.Fall(rc, u, u.Elevation, "building collapse")
		}
	}

	if b.FuelTank {
		e.explodeFuelTank(rc, h, bh.CF.Max())
	}
}

// explodeFuelTank deals dmg to every unit in h and the hexes around it and
// sets h on fire.
func (e Engine) explodeFuelTank(rc *round.Context, h hexgrid.HexCoord, dmg int) {
	if hx := rc.World.Hex(h); hx != nil {
		hx.RemoveTerrain(hexgrid.TerrainFuelTank)
	}
	rc.Report(report.New(report.FuelTankExplodes).Indented(2).Add(h.String(), dmg))
	around := hexgrid.Neighbors(h)
	hexes := append([]hexgrid.HexCoord{h}, around[:]...)
	for _, at := range hexes {
		for _, u := range rc.World.UnitsAt(at) {
			if u.Gone() {
				continue
			}
			rc.Damage.ApplyClusters(rc, u, dmg, 5, round.TableStandard, round.SideFront, round.DamageExplosion)
		}
	}
	e.Ignite(rc, h, false)
}

// DetonateExplosives sets off every charge laid in b's hex h.
func (e Engine) DetonateExplosives(rc *round.Context, b *world.Building, h hexgrid.HexCoord) {
	bh := b.Hex(h)
	if bh == nil || len(bh.Explosives) == 0 {
		rc.Report(report.New(report.NoExplosives).Indented(2).Add(h.String()))
		return
	}
	total := 0
	for _, x := range bh.Explosives {
		total += x.Damage
	}
	bh.Explosives = nil
	rc.Report(report.New(report.ExplosivesBlow).Indented(2).Add(b.Name, h.String(), total))
	e.DamageBuilding(rc, b, h, total)
}

func groundUnits(w *world.World, h hexgrid.HexCoord) []*world.Combatant {
	var out []*world.Combatant
	for _, u := range w.UnitsAt(h) {
		if u.Airborne() || u.Kind == world.KindAero {
			continue
		}
		out = append(out, u)
	}
	return out
}
