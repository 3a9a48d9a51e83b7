package world

import (
	"strings"

	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
)

// UnitID identifies a combatant. IDs are positive; NoUnit is the zero value.
type UnitID int

const NoUnit UnitID = 0

// PlayerID identifies the owner of units and minefields.
type PlayerID int

type Kind int

const (
	KindMech Kind = iota
	KindTank
	KindVTOL
	KindInfantry
	KindBattleArmor
	KindProtoMech
	KindAero
	KindTeleMissile
)

var kindNames = map[Kind]string{
	KindMech:        "mech",
	KindTank:        "tank",
	KindVTOL:        "vtol",
	KindInfantry:    "infantry",
	KindBattleArmor: "battlearmor",
	KindProtoMech:   "protomech",
	KindAero:        "aero",
	KindTeleMissile: "telemissile",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a kind name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

type Motive int

const (
	MotiveLegged Motive = iota
	MotiveTracked
	MotiveWheeled
	MotiveHover
	MotiveVTOL
	MotiveAero
)

// GrappleSide records which limb holds a chain-whip grapple.
type GrappleSide int

const (
	GrappleBody GrappleSide = iota
	GrappleLeft
	GrappleRight
)

// DisplacementKind is the type of a declared charge-like attack that has not
// resolved yet.
type DisplacementKind int

const (
	DisplaceCharge DisplacementKind = iota + 1
	DisplaceDFA
	DisplaceAirmechRam
)

type DisplacementAttack struct {
	Kind   DisplacementKind
	Target UnitID
}

// Slot is one critical slot.
type Slot struct {
	Name string
	Hit  bool
}

// Location is one hit location of a unit.
type Location struct {
	Armor Pool
	Rear  Pool // torso rear armor; empty elsewhere
	IS    Pool
	Slots []Slot

	CASE   bool
	CASEII bool
	Spikes bool

	HipHit       bool
	ActuatorHits int // leg/foot or arm actuator criticals
	BlownOff     bool
}

// Destroyed reports whether the location's structure is gone.
func (l *Location) Destroyed() bool { return l.IS.Empty() || l.BlownOff }

type Weapon struct {
	Name       string
	Location   int
	Destroyed  bool
	Jammed     bool
	Autocannon bool // can jam and be unjammed
}

type PodKind int

const (
	PodAntiPersonnel PodKind = iota
	PodAntiBattleArmor
)

type Pod struct {
	Kind     PodKind
	Location int
	Used     bool
}

// Combatant is a unit on the board. Relationships to other units are held
// as ids resolved through the World.
type Combatant struct {
	ID     UnitID
	Name   string
	Owner  PlayerID
	Kind   Kind
	Motive Motive
	Weight int

	Pos       hexgrid.HexCoord
	Facing    int
	Elevation int // levels above the hex surface

	Locations []Location

	// Crew
	Piloting    int
	Gunnery     int
	PilotHits   int
	Unconscious bool
	Ejected     bool

	// Systems
	EngineRating    int
	EngineHits      int
	GyroHits        int
	SensorHits      int
	FireControlHits int
	CockpitHit      bool
	Shutdown        bool
	Heat            int
	Burning         bool

	// Vehicle motive state
	WalkMP         int
	MotivePenalty  int
	MotiveHalved   bool
	Immobile       bool
	RotorDestroyed bool

	// Aerospace
	SI       Pool
	Velocity int
	Parent   UnitID // launching craft of a telemissile

	// Movement this turn
	Prone      bool
	HexesMoved int
	Jumped     bool
	JumpMP     int

	Weapons []Weapon
	Ammo    map[string]int
	Pods    []Pod
	AMS     bool
	AMSAmmo int
	Club    string // name of a carried improvised club

	// Links
	GrappledWith       UnitID
	GrappleAttacker    bool
	GrappleSide        GrappleSide
	SwarmingOn         UnitID
	DisplacementAttack *DisplacementAttack

	// Round flags
	Done                   bool
	Struck                 bool
	Destroyed              bool
	Doomed                 bool
	KilledBy               UnitID
	Kills                  []UnitID
	SelfDestructInitiated  bool
	SelfDestructedThisTurn bool
	UnjamRequested         bool
	NeedsPSRFromCrit       bool
}

// NewCombatant builds a unit with n empty locations.
func NewCombatant(id UnitID, name string, kind Kind, weight int, n int) *Combatant {
	c := &Combatant{
		ID:        id,
		Name:      name,
		Kind:      kind,
		Weight:    weight,
		Locations: make([]Location, n),
		Piloting:  5,
		Gunnery:   4,
		Ammo:      make(map[string]int),
	}
	switch kind {
	case KindTank:
		c.Motive = MotiveTracked
	case KindVTOL:
		c.Motive = MotiveVTOL
	case KindAero, KindTeleMissile:
		c.Motive = MotiveAero
	}
	return c
}

// NewMech builds a mech with standard structure for its tonnage and armor
// given as HD, CT, LT, RT, LA, RA, LL, RL plus CT/LT/RT rear.
func NewMech(id UnitID, name string, tons int, armor [NumMechLoc]int, rear [3]int) *Combatant {
	c := NewCombatant(id, name, KindMech, tons, NumMechLoc)
	is := MechIS(tons)
	for loc := 0; loc < NumMechLoc; loc++ {
		c.Locations[loc].Armor = NewPool(armor[loc])
		c.Locations[loc].IS = NewPool(is[loc])
	}
	c.Locations[LocCT].Rear = NewPool(rear[0])
	c.Locations[LocLT].Rear = NewPool(rear[1])
	c.Locations[LocRT].Rear = NewPool(rear[2])
	return c
}

// Loc returns a location by index, or nil if the unit has no such location.
func (c *Combatant) Loc(loc int) *Location {
	if loc < 0 || loc >= len(c.Locations) {
		return nil
	}
	return &c.Locations[loc]
}

// LocName names a location for reports.
func (c *Combatant) LocName(loc int) string {
	names := LocationNames(c.Kind, len(c.Locations))
	if loc < 0 || loc >= len(names) {
		return "?"
	}
	return names[loc]
}

// TransferLocation is where damage goes past a destroyed location.
func (c *Combatant) TransferLocation(loc int) int {
	if c.Kind == KindMech && loc >= 0 && loc < NumMechLoc {
		return mechTransfer[loc]
	}
	return NoLocation
}

// Airborne reports whether the unit is above the ground for rolls that
// distinguish control rolls from piloting rolls.
func (c *Combatant) Airborne() bool {
	switch c.Kind {
	case KindVTOL, KindAero, KindTeleMissile:
		return c.Elevation > 0
	}
	return false
}

// IsInfantry reports whether the unit is conventional or battle armor
// infantry.
func (c *Combatant) IsInfantry() bool {
	return c.Kind == KindInfantry || c.Kind == KindBattleArmor
}

// Vehicle reports whether the unit has a motive system.
func (c *Combatant) Vehicle() bool { return c.Kind == KindTank || c.Kind == KindVTOL }

// HasCrew reports whether the unit has a pilot who can be wounded.
func (c *Combatant) HasCrew() bool {
	switch c.Kind {
	case KindInfantry, KindBattleArmor, KindTeleMissile:
		return false
	}
	return true
}

// Gone reports whether the unit can no longer act or be targeted.
func (c *Combatant) Gone() bool { return c.Destroyed || c.Doomed }

// HasSpikes reports whether a location carries spikes.
func (c *Combatant) HasSpikes(loc int) bool {
	l := c.Loc(loc)
	return l != nil && l.Spikes
}

// PSRPreexistingMod is the standing modifier for every piloting roll: damaged
// gyro, destroyed legs, hip and leg actuator hits.
func (c *Combatant) PSRPreexistingMod() int {
	if c.Kind != KindMech {
		return 0
	}
	mod := c.GyroHits * 3
	for _, loc := range []int{LocLL, LocRL} {
		l := &c.Locations[loc]
		switch {
		case l.Destroyed():
			mod += 5
		case l.HipHit:
			mod += 2
		default:
			mod += l.ActuatorHits
		}
	}
	return mod
}

// TotalArmor sums front and rear armor over all locations.
func (c *Combatant) TotalArmor() int {
	total := 0
	for i := range c.Locations {
		total += c.Locations[i].Armor.Value() + c.Locations[i].Rear.Value()
	}
	return total
}

// JammedWeapons returns the indexes of jammed, undestroyed weapons.
func (c *Combatant) JammedWeapons() []int {
	var out []int
	for i, w := range c.Weapons {
		if w.Jammed && !w.Destroyed {
			out = append(out, i)
		}
	}
	return out
}

// EngineSlots counts engine critical slots that have not been hit.
func (c *Combatant) EngineSlots() int {
	n := 0
	for i := range c.Locations {
		for _, s := range c.Locations[i].Slots {
			if !s.Hit && strings.Contains(strings.ToLower(s.Name), "engine") {
				n++
			}
		}
	}
	return n
}

// CreditKill records that killer destroyed c.
func (c *Combatant) CreditKill(killer *Combatant) {
	if killer == nil || c.KilledBy != NoUnit {
		return
	}
	c.KilledBy = killer.ID
	killer.Kills = append(killer.Kills, c.ID)
}
