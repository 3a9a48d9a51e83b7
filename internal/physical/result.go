package physical

import (
	"fmt"
	"strings"

	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// Resolution tracks whether a result has been consumed.
type Resolution int

const (
	Pending Resolution = iota
	Resolved
)

// Result is the snapshot of one declared attack taken before any attack in
// the round resolves. Two-limb attacks carry a second blow in the *Right
// fields.
type Result struct {
	Action Action

	ToHit  ToHit
	Roll   int
	Damage int

	ToHitRight  ToHit
	RollRight   int
	DamageRight int

	// TargetPos is where the target stood when the attack was declared.
	TargetPos hexgrid.HexCoord

	Resolution Resolution

	redirected bool
}

// Declaration is an action plus any values fixed in advance. Zero values
// are computed or rolled by Preprocess.
type Declaration struct {
	Action    Action
	ToHit     *ToHit
	Roll      int
	ToHitR    *ToHit
	RollRight int
}

// Preprocess snapshots every declaration into a result, in declaration
// order.
func (p *Phase) Preprocess(decls []Declaration) error {
	w := p.rc.World
	for i, d := range decls {
		if d.Action == nil {
			return fmt.Errorf("declaration %d: %w", i, ErrUnknownAction)
		}
		atk := d.Action.common()
		attacker, err := w.Lookup(atk.Attacker)
		if err != nil {
			return fmt.Errorf("declaration %d (%s): %w", i, d.Action.Name(), err)
		}

		r := &Result{Action: d.Action, TargetPos: atk.Target.Hex}
		var target *world.Combatant
		if atk.Target.Kind == TargetUnit {
			if target, err = w.Lookup(atk.Target.Unit); err != nil {
				return fmt.Errorf("declaration %d (%s): %w", i, d.Action.Name(), err)
			}
			r.TargetPos = target.Pos
		}

		first := firstLimb(d.Action)
		r.ToHit = pick(d.ToHit, func() ToHit { return Estimate(w, d.Action, first) })
		r.Roll = d.Roll
		if r.Roll == 0 {
			r.Roll = dice.Roll2d6(p.rc.Dice)
		}
		r.Damage = baseDamage(attacker, target, d.Action, first)

		if twoRolls(d.Action) {
			r.ToHitRight = pick(d.ToHitR, func() ToHit { return Estimate(w, d.Action, LimbRight) })
			r.RollRight = d.RollRight
			if r.RollRight == 0 {
				r.RollRight = dice.Roll2d6(p.rc.Dice)
			}
			r.DamageRight = baseDamage(attacker, target, d.Action, LimbRight)
		}

		if kind, ok := displacementKind(d.Action); ok && target != nil {
			attacker.DisplacementAttack = &world.DisplacementAttack{Kind: kind, Target: target.ID}
		}
		p.results = append(p.results, r)
	}
	return nil
}

func pick(fixed *ToHit, estimate func() ToHit) ToHit {
	if fixed != nil {
		return *fixed
	}
	return estimate()
}

func firstLimb(a Action) Limb {
	switch a := a.(type) {
	case Punch:
		if a.Arm == LimbBoth {
			return LimbLeft
		}
		return a.Arm
	case BrushOff:
		if a.Arm == LimbBoth {
			return LimbLeft
		}
		return a.Arm
	case Kick:
		return a.Leg
	case JumpJet:
		return a.Leg
	}
	return LimbLeft
}

// ─── Damage formulas ────────────────────────────────────────────────────────

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// halveFor halves dmg once per damaged actuator.
func halveFor(dmg, hits int) int {
	for ; hits > 0 && dmg > 0; hits-- {
		dmg /= 2
	}
	return dmg
}

// PunchDamage is a tenth of the attacker's weight, rounded up.
func PunchDamage(c *world.Combatant, arm Limb) int {
	return halveFor(ceilDiv(c.Weight, 10), armActuatorHits(c, arm))
}

// KickDamage is a fifth of the attacker's weight.
func KickDamage(c *world.Combatant, leg Limb) int {
	return halveFor(c.Weight/5, legActuatorHits(c, leg))
}

// ClubDamage is the damage of a named physical weapon.
func ClubDamage(c *world.Combatant, weapon string) int {
	switch strings.ToLower(weapon) {
	case "sword":
		return ceilDiv(c.Weight, 10) + 1
	case "mace":
		return ceilDiv(c.Weight, 4)
	case "retractable blade", "taser":
		return ceilDiv(c.Weight, 10)
	case "flail":
		return 9
	case "wrecking ball":
		return 8
	case "chain whip":
		return 3
	}
	// clubs, hatchets, lances, trees and girders
	return ceilDiv(c.Weight, 5)
}

// ChargeDamage is dealt by a unit of weight w that moved hexes hexes.
func ChargeDamage(w, hexes int) int {
	if hexes < 2 {
		hexes = 2
	}
	return ceilDiv(w*(hexes-1), 10)
}

// ChargeDamageTaken is what the charging unit takes from a target of weight
// w.
func ChargeDamageTaken(w int) int { return ceilDiv(w, 10) }

func DFADamage(w int) int { return ceilDiv(w*3, 10) }

func DFADamageTaken(w int) int { return ceilDiv(w, 5) }

// RamDamage is dealt to the other party by a unit of weight w at velocity v.
func RamDamage(w, v int) int {
	if v < 1 {
		v = 1
	}
	return ceilDiv(w, 10) * v
}

// JumpJetDamage is three points per jet brought to bear.
func JumpJetDamage(c *world.Combatant, leg Limb) int {
	jets := c.JumpMP
	if leg != LimbBoth {
		jets = ceilDiv(c.JumpMP, 2)
	}
	return 3 * jets
}

func ThrashDamage(w int) int { return ceilDiv(w, 3) }

// TeleMissileDamage is the missile's capital damage in standard points.
func TeleMissileDamage(w int) int { return ceilDiv(w, 10) * 10 }

func liveTroopers(c *world.Combatant) int {
	n := 0
	for i := range c.Locations {
		if !c.Locations[i].Destroyed() && c.Locations[i].IS.Max() > 0 {
			n++
		}
	}
	return n
}

func baseDamage(attacker, target *world.Combatant, a Action, limb Limb) int {
	switch a := a.(type) {
	case Punch:
		return PunchDamage(attacker, limb)
	case BrushOff:
		return PunchDamage(attacker, limb)
	case Kick:
		return KickDamage(attacker, a.Leg)
	case Club:
		weapon := a.Weapon
		if weapon == "" {
			weapon = attacker.Club
		}
		return ClubDamage(attacker, weapon)
	case Charge, AirmechRam:
		return ChargeDamage(attacker.Weight, attacker.HexesMoved)
	case DFA:
		return DFADamage(attacker.Weight)
	case Ram:
		return RamDamage(attacker.Weight, attacker.Velocity)
	case JumpJet:
		return JumpJetDamage(attacker, a.Leg)
	case Thrash:
		return ThrashDamage(attacker.Weight)
	case Vibroclaw:
		return a.Claws * liveTroopers(attacker)
	case ProtoAttack:
		return ceilDiv(attacker.Weight, 5)
	case TeleMissile:
		return TeleMissileDamage(attacker.Weight)
	case LayExplosives:
		if attacker.Kind == world.KindInfantry {
			return attacker.Loc(world.LocTroops).IS.Value()
		}
		return 5 * liveTroopers(attacker)
	}
	return 0
}
