package physical

import (
	"math"

	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// Special to-hit values.
const (
	Impossible       = math.MaxInt32
	AutomaticSuccess = math.MinInt32
)

// ToHit is the precomputed target number for one blow.
type ToHit struct {
	Value int
	Table round.HitTable
	Side  round.Side
	Desc  string
}

func (t ToHit) IsImpossible() bool { return t.Value == Impossible }
func (t ToHit) IsAutomatic() bool  { return t.Value == AutomaticSuccess }

func impossible(desc string) ToHit { return ToHit{Value: Impossible, Desc: desc} }

func automatic(desc string) ToHit { return ToHit{Value: AutomaticSuccess, Desc: desc} }

// baseMods are the flat to-hit modifiers by attack, added to the attacker's
// piloting skill.
var baseMods = map[string]int{
	"punch":            0,
	"kick":             -2,
	"club":             -1,
	"push":             -1,
	"trip":             -1,
	"grapple":          0,
	"break grapple":    0,
	"charge":           0,
	"airmech ram":      0,
	"death from above": 0,
	"ram":              0,
	"jump jet":         0,
	"thrash":           0,
	"vibroclaw":        0,
	"brush off":        4,
	"protomech attack": 0,
	"telemissile":      0,
}

// movementMod is the target movement modifier for hexes moved this turn.
func movementMod(c *world.Combatant) int {
	mod := 0
	switch n := c.HexesMoved; {
	case n >= 10:
		mod = 4
	case n >= 7:
		mod = 3
	case n >= 5:
		mod = 2
	case n >= 3:
		mod = 1
	}
	if c.Jumped {
		mod++
	}
	return mod
}

// sideOf maps the arc the attacker stands in to the side it strikes.
func sideOf(target, attacker *world.Combatant) round.Side {
	switch hexgrid.DetermineArc(target.Pos, target.Facing, attacker.Pos) {
	case hexgrid.ArcLeft:
		return round.SideLeft
	case hexgrid.ArcRight:
		return round.SideRight
	case hexgrid.ArcRear:
		return round.SideRear
	}
	return round.SideFront
}

// Estimate computes a to-hit number for a declared action from the current
// world state. limb selects the right-hand blow of a two-armed attack.
func Estimate(w *world.World, a Action, limb Limb) ToHit {
	atk := a.common()
	attacker := w.Unit(atk.Attacker)
	if attacker == nil || attacker.Gone() {
		return impossible("attacker unavailable")
	}
	if _, ok := a.(FindClub); ok {
		return automatic("searching")
	}
	if _, ok := a.(TriggerPod); ok {
		return automatic("pod")
	}
	if _, ok := a.(LayExplosives); ok {
		return automatic("laying charges")
	}
	if _, ok := a.(DetonateExplosives); ok {
		return automatic("remote trigger")
	}

	if atk.Target.Kind != TargetUnit {
		if hexgrid.Distance(attacker.Pos, atk.Target.Hex) > 1 {
			return impossible("target out of reach")
		}
		return automatic("stationary target")
	}

	target := w.Unit(atk.Target.Unit)
	if target == nil || target.Gone() {
		return impossible("target unavailable")
	}
	reach := 1
	switch a.(type) {
	case BrushOff, Thrash:
		reach = 0
	}
	if d := hexgrid.Distance(attacker.Pos, target.Pos); d > reach {
		return impossible("target out of reach")
	}
	if reason := blocked(attacker, target, a, limb); reason != "" {
		return impossible(reason)
	}

	th := ToHit{
		Value: attacker.Piloting + baseMods[a.Name()] + movementMod(target),
		Side:  sideOf(target, attacker),
	}
	switch a.(type) {
	case Punch, BrushOff:
		th.Table = round.TablePunch
		th.Value += armActuatorHits(attacker, limb)
	case Kick:
		th.Table = round.TableKick
		th.Value += legActuatorHits(attacker, limb)
	case TeleMissile:
		th.Value = attacker.Gunnery
	}
	if target.Prone {
		th.Table = round.TableStandard
		th.Value -= 2
	}
	if target.Immobile {
		th.Value -= 4
	}
	return th
}

// blocked returns why attacker cannot make the attack at all, or "".
func blocked(attacker, target *world.Combatant, a Action, limb Limb) string {
	switch a := a.(type) {
	case Punch:
		if attacker.Prone {
			return "attacker prone"
		}
		if l := attacker.Loc(armLoc(limb)); l == nil || l.Destroyed() {
			return "arm missing"
		}
	case Kick:
		if attacker.Prone {
			return "attacker prone"
		}
		if l := attacker.Loc(legLoc(a.Leg)); l == nil || l.Destroyed() {
			return "leg missing"
		}
	case Push, Trip, Charge, DFA:
		if attacker.Prone {
			return "attacker prone"
		}
		if _, trip := a.(Trip); trip && target.Prone {
			return "target already prone"
		}
		if attacker.Immobile {
			return "attacker immobile"
		}
	case Grapple:
		if attacker.GrappledWith != world.NoUnit || target.GrappledWith != world.NoUnit {
			return "already grappled"
		}
	case BreakGrapple:
		if attacker.GrappledWith != target.ID {
			return "not grappled"
		}
	case Thrash:
		if !attacker.Prone {
			return "attacker not prone"
		}
		if !target.IsInfantry() {
			return "target not infantry"
		}
	case BrushOff:
		if target.SwarmingOn != attacker.ID {
			return "target not swarming"
		}
	case Club:
		if a.Weapon == "" && attacker.Club == "" {
			return "no club"
		}
	}
	return ""
}

func armLoc(l Limb) int {
	if l == LimbRight {
		return world.LocRA
	}
	return world.LocLA
}

func legLoc(l Limb) int {
	if l == LimbRight {
		return world.LocRL
	}
	return world.LocLL
}

func armActuatorHits(c *world.Combatant, l Limb) int {
	if loc := c.Loc(armLoc(l)); loc != nil {
		return loc.ActuatorHits
	}
	return 0
}

func legActuatorHits(c *world.Combatant, l Limb) int {
	if loc := c.Loc(legLoc(l)); loc != nil {
		return loc.ActuatorHits
	}
	return 0
}
