// Package hazard resolves the environment: minefields, fire and smoke, and
// building damage and collapse.
package hazard

import (
	"github.com/JustinWhittecar/physcombat/internal/damage"
	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

type Engine struct{}

func New() Engine { return Engine{} }

var _ round.Hazards = Engine{}

// ─── Minefields ─────────────────────────────────────────────────────────────

// EnterHex detonates the minefields in u's hex that u triggers.
func (e Engine) EnterHex(rc *round.Context, u *world.Combatant) {
	fields := append([]*world.Minefield(nil), rc.World.MinefieldsAt(u.Pos)...)
	for _, m := range fields {
		if u.Destroyed {
			return
		}
		if !triggers(m, u) {
			rc.Report(report.New(report.MineNotAffected).Subject(int(u.ID)).Indented(3).Add(u.Name, m.Type.String()))
			continue
		}
		e.Detonate(rc, m, u)
	}
}

// triggers reports whether u sets off m by entering its hex.
func triggers(m *world.Minefield, u *world.Combatant) bool {
	lowFlyer := u.Motive == world.MotiveHover || (u.Kind == world.KindVTOL && u.Elevation <= 1)
	switch m.Type {
	case world.MineActive:
		return lowFlyer
	case world.MineVibrabomb:
		return !u.Airborne() && u.Weight >= m.Sensitivity
	default:
		return !u.Airborne() && u.Motive != world.MotiveHover && !u.Jumped
	}
}

// Detonate sets off m against the unit that triggered it and rolls for the
// field's reduction afterwards.
func (e Engine) Detonate(rc *round.Context, m *world.Minefield, u *world.Combatant) {
	m.Detonated = true
	m.RevealTo(u.Owner)
	rc.Report(report.New(report.MineDetonates).Subject(int(u.ID)).Indented(2).
		Add(m.Type.String(), m.Pos.String(), u.Name))

	switch m.Type {
	case world.MineInferno:
		e.SetBurning(rc, u)
		heat := m.Density / 5 * 2
		u.Heat += heat
		rc.Report(report.New(report.FireHeat).Subject(int(u.ID)).Indented(3).Add(u.Name, heat))
	case world.MineVibrabomb:
		rc.Report(report.New(report.VibrabombTrigger).Indented(3).Add(m.Pos.String(), u.Weight))
		for _, v := range rc.World.UnitsAt(m.Pos) {
			if v.Airborne() {
				continue
			}
			mineDamage(rc, v, m.Density)
		}
	case world.MineActive:
		rc.Report(report.New(report.MineDamage).Subject(int(u.ID)).Indented(3).Add(u.Name, m.Density))
		rc.Damage.ApplyClusters(rc, u, m.Density, 5, round.TableStandard, round.SideFront, round.DamageExplosion)
	default:
		mineDamage(rc, u, m.Density)
	}
	e.Reduce(rc, m)
}

// mineDamage hits legs for mechs, the front for vehicles, and anything else
// on its standard table.
func mineDamage(rc *round.Context, u *world.Combatant, dmg int) {
	rc.Report(report.New(report.MineDamage).Subject(int(u.ID)).Indented(3).Add(u.Name, dmg))
	switch u.Kind {
	case world.KindMech:
		rc.Damage.ApplyClusters(rc, u, dmg, 5, round.TableKick, round.SideFront, round.DamageExplosion)
	case world.KindTank:
		for _, c := range damage.Clusters(dmg, 5) {
			rc.Damage.Apply(rc, u, round.HitData{Location: world.LocFront, Type: round.DamageExplosion}, c)
		}
	default:
		rc.Damage.ApplyClusters(rc, u, dmg, 5, round.TableStandard, round.SideFront, round.DamageExplosion)
	}
}

// Reduce rolls 2d6 after a detonation; on 10+ the field loses 5 density and
// is removed once empty.
func (e Engine) Reduce(rc *round.Context, m *world.Minefield) {
	if dice.Roll2d6(rc.Dice) < 10 {
		return
	}
	m.Density -= 5
	if m.Density <= 0 {
		rc.World.RemoveMinefield(m)
		rc.Report(report.New(report.MineCleared).Indented(3).Add(m.Pos.String()))
		return
	}
	rc.Report(report.New(report.MineReduced).Indented(3).Add(m.Pos.String(), m.Density))
}

// Reveal makes m known to player p.
func (e Engine) Reveal(rc *round.Context, m *world.Minefield, p world.PlayerID) {
	if m.KnownTo(p) {
		return
	}
	m.RevealTo(p)
	rc.Report(report.New(report.MinefieldRevealed).Indented(2).Add(int(p), m.Pos.String()))
}

// Clear is a clearance attempt by u against m: 2d6, 6+ removes the field, a
// natural 2 sets it off.
func (e Engine) Clear(rc *round.Context, u *world.Combatant, m *world.Minefield) {
	roll := rc.Roll2d6()
	rc.Report(report.New(report.ClearanceRoll).Subject(int(u.ID)).Indented(2).Add(u.Name, m.Pos.String(), roll.Total))
	switch {
	case roll.Total == 2:
		rc.Report(report.New(report.ClearanceDetonates).Subject(int(u.ID)).Indented(3).Add(m.Pos.String()))
		e.Detonate(rc, m, u)
	case roll.Total >= 6:
		rc.World.RemoveMinefield(m)
		rc.Report(report.New(report.ClearanceSucceeds).Subject(int(u.ID)).Indented(3).Add(m.Pos.String()))
	default:
		rc.Report(report.New(report.ClearanceFails).Subject(int(u.ID)).Indented(3).Add(m.Pos.String()))
	}
}
