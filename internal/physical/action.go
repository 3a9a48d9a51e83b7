// Package physical resolves the physical attacks declared in a round: it
// snapshots them into results, dispatches each to its handler in declaration
// order, and drives the damage, displacement and hazard engines.
package physical

import (
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// TargetKind says what an attack is aimed at.
type TargetKind int

const (
	TargetUnit TargetKind = iota
	TargetBuilding
	TargetHex
	TargetFuelTank
)

// Target references the object of an attack. Unit targets use Unit; the
// others use Hex.
type Target struct {
	Kind TargetKind
	Unit world.UnitID
	Hex  hexgrid.HexCoord
}

func UnitTarget(id world.UnitID) Target { return Target{Kind: TargetUnit, Unit: id} }

func BuildingTarget(h hexgrid.HexCoord) Target { return Target{Kind: TargetBuilding, Hex: h} }

func HexTarget(h hexgrid.HexCoord) Target { return Target{Kind: TargetHex, Hex: h} }

func FuelTankTarget(h hexgrid.HexCoord) Target { return Target{Kind: TargetFuelTank, Hex: h} }

// Limb picks which arm or leg an attack uses.
type Limb int

const (
	LimbLeft Limb = iota
	LimbRight
	LimbBoth
)

func (l Limb) String() string {
	return [...]string{"left", "right", "both"}[l]
}

// Attack is the part every action shares.
type Attack struct {
	Attacker world.UnitID
	Target   Target
}

func (a Attack) common() Attack { return a }

// Action is a declared attack. The set of variants is closed.
type Action interface {
	common() Attack
	Name() string
}

type Punch struct {
	Attack
	Arm Limb
}

type Kick struct {
	Attack
	Leg Limb
}

// Club swings a carried weapon. Weapon names a physical weapon ("hatchet",
// "sword", "flail", ...); empty uses the club the attacker picked up.
type Club struct {
	Attack
	Weapon string
}

type Push struct{ Attack }

type Trip struct{ Attack }

type Grapple struct {
	Attack
	Side world.GrappleSide
}

type BreakGrapple struct{ Attack }

type Charge struct{ Attack }

type AirmechRam struct{ Attack }

type DFA struct{ Attack }

// Ram is an aerospace unit flying into its target.
type Ram struct{ Attack }

type JumpJet struct {
	Attack
	Leg Limb
}

// Thrash is a prone mech flailing at infantry in its hex.
type Thrash struct{ Attack }

type Vibroclaw struct {
	Attack
	Claws int
}

// BrushOff is a mech swatting at infantry swarming it.
type BrushOff struct {
	Attack
	Arm Limb
}

type ProtoAttack struct{ Attack }

// TeleMissile is the missile unit itself striking its target.
type TeleMissile struct{ Attack }

type LayExplosives struct{ Attack }

// ClearMinefield is a clearance attempt against the minefields in a hex.
type ClearMinefield struct{ Attack }

// DetonateExplosives sets off the charges laid in a building hex.
type DetonateExplosives struct{ Attack }

// Inferno delivers inferno gel to a hex, setting it and the ground units in
// it burning.
type Inferno struct{ Attack }

// FindClub searches the attacker's hex for something to swing.
type FindClub struct{ Attack }

// TriggerPod fires one of the attacker's anti-infantry pods.
type TriggerPod struct {
	Attack
	Pod int
}

func (Punch) Name() string         { return "punch" }
func (Kick) Name() string          { return "kick" }
func (Club) Name() string          { return "club" }
func (Push) Name() string          { return "push" }
func (Trip) Name() string          { return "trip" }
func (Grapple) Name() string       { return "grapple" }
func (BreakGrapple) Name() string  { return "break grapple" }
func (Charge) Name() string        { return "charge" }
func (AirmechRam) Name() string    { return "airmech ram" }
func (DFA) Name() string           { return "death from above" }
func (Ram) Name() string           { return "ram" }
func (JumpJet) Name() string       { return "jump jet" }
func (Thrash) Name() string        { return "thrash" }
func (Vibroclaw) Name() string     { return "vibroclaw" }
func (BrushOff) Name() string      { return "brush off" }
func (ProtoAttack) Name() string   { return "protomech attack" }
func (TeleMissile) Name() string   { return "telemissile" }
func (LayExplosives) Name() string { return "lay explosives" }
func (FindClub) Name() string      { return "find club" }
func (TriggerPod) Name() string    { return "trigger pod" }

func (ClearMinefield) Name() string     { return "clear minefield" }
func (DetonateExplosives) Name() string { return "detonate explosives" }
func (Inferno) Name() string            { return "inferno" }

// twoRolls reports whether the action resolves a second, independent blow.
func twoRolls(a Action) bool {
	switch a := a.(type) {
	case Punch:
		return a.Arm == LimbBoth
	case BrushOff:
		return a.Arm == LimbBoth
	}
	return false
}

// displacementKind is the pending-attack marker a charge-like action leaves
// on its attacker until it resolves.
func displacementKind(a Action) (world.DisplacementKind, bool) {
	switch a.(type) {
	case Charge:
		return world.DisplaceCharge, true
	case DFA:
		return world.DisplaceDFA, true
	case AirmechRam:
		return world.DisplaceAirmechRam, true
	}
	return 0, false
}
