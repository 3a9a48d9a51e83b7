package hazard

import (
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Fire and smoke ─────────────────────────────────────────────────────────

const (
	fireLevel     = 1
	infernoLevel  = 2
	burningHeat   = 6
	fireHexHeat   = 2
	burningDamage = 2
	heavySmokeLvl = 2
	lightSmokeLvl = 1
)

// Ignite starts a fire in h. Water hexes never burn. An inferno fire also
// sets every ground unit in the hex burning.
func (e Engine) Ignite(rc *round.Context, h hexgrid.HexCoord, inferno bool) {
	hx := rc.World.Hex(h)
	if hx == nil {
		return
	}
	if hx.Level(hexgrid.TerrainWater) > 0 {
		rc.Report(report.New(report.FireOut).Indented(3).Add(h.String()))
		return
	}
	lvl := fireLevel
	if inferno {
		lvl = infernoLevel
	}
	if hx.Level(hexgrid.TerrainFire) < lvl {
		hx.SetTerrain(hexgrid.TerrainFire, lvl)
		rc.Report(report.New(report.FireStarted).Indented(3).Add(h.String()))
	}
	if !inferno {
		return
	}
	for _, u := range rc.World.UnitsAt(h) {
		if !u.Airborne() {
			e.SetBurning(rc, u)
		}
	}
}

// SetBurning coats u in burning inferno gel.
func (e Engine) SetBurning(rc *round.Context, u *world.Combatant) {
	if u.Burning || u.Gone() {
		return
	}
	if hx := rc.World.Hex(u.Pos); hx != nil && hx.Level(hexgrid.TerrainWater) > 0 && !u.Airborne() {
		return
	}
	u.Burning = true
	rc.Report(report.New(report.InfernoIgnites).Subject(int(u.ID)).Indented(3).Add(u.Name))
}

// EndPhase applies the heat of fire and burning gel, puts out units that
// stand in water, and lets smoke drift downwind from burning hexes.
func (e Engine) EndPhase(rc *round.Context) {
	for _, u := range rc.World.Units() {
		if u.Gone() {
			continue
		}
		hx := rc.World.Hex(u.Pos)
		inWater := hx != nil && hx.Level(hexgrid.TerrainWater) > 0 && !u.Airborne()
		if u.Burning && inWater {
			u.Burning = false
			rc.Report(report.New(report.FireOut).Subject(int(u.ID)).Indented(3).Add(u.Pos.String()))
		}
		heat := 0
		if u.Burning {
			heat += burningHeat
		}
		if hx != nil && hx.Level(hexgrid.TerrainFire) > 0 && !u.Airborne() {
			heat += fireHexHeat
		}
		if heat == 0 {
			continue
		}
		if u.Kind == world.KindMech {
			u.Heat += heat
			rc.Report(report.New(report.FireHeat).Subject(int(u.ID)).Indented(2).Add(u.Name, heat))
			continue
		}
		// Units without heat sinks burn instead.
		rc.Damage.ApplyClusters(rc, u, burningDamage, 5, round.TableStandard, round.SideFront, round.DamageEnergy)
	}
	e.driftSmoke(rc)
}

// driftSmoke puts smoke into the hex downwind of every fire. Burning woods
// give heavy smoke.
func (e Engine) driftSmoke(rc *round.Context) {
	b := rc.World.Board
	type drift struct {
		h   hexgrid.HexCoord
		lvl int
	}
	var drifts []drift
	for i := range b.Grid {
		hx := &b.Grid[i]
		if hx.Level(hexgrid.TerrainFire) == 0 {
			continue
		}
		lvl := lightSmokeLvl
		if hx.Level(hexgrid.TerrainWoods) > 0 {
			lvl = heavySmokeLvl
		}
		drifts = append(drifts, drift{hexgrid.Neighbor(hx.Coord, rc.World.Wind), lvl})
	}
	for _, d := range drifts {
		hx := rc.World.Hex(d.h)
		if hx == nil || hx.Level(hexgrid.TerrainSmoke) >= d.lvl {
			continue
		}
		hx.SetTerrain(hexgrid.TerrainSmoke, d.lvl)
		rc.Report(report.New(report.SmokeDrifts).Indented(2).Add(d.h.String(), d.lvl))
	}
}
