package displacement

import (
	"github.com/JustinWhittecar/physcombat/internal/damage"
	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Falling ────────────────────────────────────────────────────────────────

// fallTable maps the 1d6 fall roll to the facing change and the side that
// takes the damage.
var fallTable = [6]struct {
	turn int
	side round.Side
}{
	{0, round.SideFront},
	{1, round.SideRight},
	{2, round.SideRight},
	{3, round.SideRear},
	{4, round.SideLeft},
	{5, round.SideLeft},
}

// FallDamage is the damage a unit takes falling the given number of levels:
// a tenth of its weight, rounded up, for each level plus one.
func FallDamage(weight, levels int) int {
	if levels < 0 {
		levels = 0
	}
	return (weight + 9) / 10 * (levels + 1)
}

// Fall knocks u down in its current hex.
func (e Engine) Fall(rc *round.Context, u *world.Combatant, levels int, reason string) {
	if u.Destroyed {
		return
	}
	switch u.Kind {
	case world.KindVTOL, world.KindAero, world.KindTeleMissile:
		rc.Damage.Crash(rc, u)
		return
	case world.KindInfantry, world.KindBattleArmor:
		return
	}

	rc.DropPSRs(u.ID)
	cancelDisplacementAttack(rc, u)
	if u.GrappledWith != world.NoUnit {
		rc.World.ReleaseGrapple(u)
	}
	if u.Kind == world.KindMech {
		u.Prone = true
	}
	u.Elevation = 0

	roll := dice.Roll1d6(rc.Dice)
	entry := fallTable[roll-1]
	u.Facing = hexgrid.NormalizeFacing(u.Facing + entry.turn)
	rc.Report(report.New(report.FallFacing).Subject(int(u.ID)).Indented(3).Add(roll, entry.side.String()))

	dmg := FallDamage(u.Weight, levels)
	if hx := rc.World.Hex(u.Pos); hx != nil && hx.Level(hexgrid.TerrainWater) > 0 {
		dmg = (dmg + 1) / 2
		rc.Report(report.New(report.WaterFall).Subject(int(u.ID)).Indented(3).Add(dmg))
	}
	rc.Report(report.New(report.FallDamage).Subject(int(u.ID)).Indented(2).Add(u.Name, dmg, levels))
	rc.Damage.ApplyClusters(rc, u, dmg, 5, round.TableStandard, entry.side, round.DamageFall)
	if u.Destroyed {
		return
	}

	target := u.Piloting + u.PSRPreexistingMod() + levels
	if u.Unconscious || dice.Roll2d6(rc.Dice) < target {
		rc.Damage.PilotHit(rc, u, 1, reason)
	}
}

// FallInto drops u from above into hex 'to'. A unit already there may be hit
// by the falling unit (2d6 against 7); on a miss the faller lands in a free
// adjacent hex instead.
func (e Engine) FallInto(rc *round.Context, u *world.Combatant, to hexgrid.HexCoord, levels int) round.Outcome {
	from := u.Pos
	cancelDisplacementAttack(rc, u)
	occupant := rc.World.StackingViolation(u, to)
	if occupant == nil {
		e.place(rc, u, from, to)
		e.Fall(rc, u, levels, "fell")
		return round.Done()
	}

	const target = 7
	roll := dice.Roll2d6(rc.Dice)
	rc.Report(report.New(report.FallIntoRoll).Subject(int(u.ID)).Indented(2).
		Add(u.Name, occupant.Name, target, roll))

	if roll >= target {
		dmg := (u.Weight*3 + 9) / 10
		rc.Report(report.New(report.CollisionDamage).Subject(int(occupant.ID)).Indented(3).Add(occupant.Name, dmg))
		rc.Damage.ApplyClusters(rc, occupant, dmg, 5, round.TablePunch, round.SideFront, round.DamagePhysical)
		rc.QueuePSR(occupant, "hit by falling unit", 0)
		dir := hexgrid.Bearing(from, to)
		if from == to {
			dir = u.Facing
		}
		var out round.Outcome
		if !occupant.Destroyed {
			out = e.domino(rc, occupant, from, dir)
		}
		return out.Then(func() round.Outcome {
			return e.land(rc, u, from, to, levels, "fell onto a unit")
		})
	}

	rc.Report(report.New(report.FallIntoMiss).Subject(int(u.ID)).Indented(3).Add(u.Name))
	if hexes := freeHexesAround(rc.World, u, to, to); len(hexes) > 0 {
		e.place(rc, u, from, hexes[0])
		e.Fall(rc, u, levels, "fell")
		return round.Done()
	}
	// Nowhere to slide to: the occupant is shoved out of the hex instead.
	dir := hexgrid.Bearing(from, to)
	if from == to {
		dir = u.Facing
	}
	return e.domino(rc, occupant, from, dir).Then(func() round.Outcome {
		return e.land(rc, u, from, to, levels, "fell")
	})
}

// land finishes a fall into 'to' once its occupant has been dealt with. A
// unit still standing there leaves the faller nowhere to go.
func (e Engine) land(rc *round.Context, u *world.Combatant, from, to hexgrid.HexCoord, levels int, reason string) round.Outcome {
	if occupant := rc.World.StackingViolation(u, to); occupant != nil {
		if hexes := freeHexesAround(rc.World, u, to, to); len(hexes) > 0 {
			to = hexes[0]
		} else {
			damage.Destroy(rc, u, "impossible displacement")
			return round.Done()
		}
	}
	e.place(rc, u, from, to)
	e.Fall(rc, u, levels, reason)
	return round.Done()
}
