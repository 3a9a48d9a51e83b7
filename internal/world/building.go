package world

import (
	"strings"

	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
)

type BuildingID int

type BuildingClass int

const (
	ClassLight BuildingClass = iota
	ClassMedium
	ClassHeavy
	ClassHardened
	ClassFortress
)

// ParseBuildingClass maps a class name to its value; unknown names are
// medium.
func ParseBuildingClass(s string) BuildingClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ClassLight
	case "heavy":
		return ClassHeavy
	case "hardened":
		return ClassHardened
	case "fortress":
		return ClassFortress
	}
	return ClassMedium
}

// Explosive is a charge laid in a building hex by an infantry unit.
type Explosive struct {
	LaidBy UnitID
	Damage int
}

// BuildingHex is the per-hex state of a building.
type BuildingHex struct {
	CF         Pool
	Floors     int
	Collapsed  bool
	Explosives []Explosive
}

type Building struct {
	ID       BuildingID
	Name     string
	Class    BuildingClass
	FuelTank bool
	Hexes    map[hexgrid.HexCoord]*BuildingHex
}

// NewBuilding returns a building with no hexes.
func NewBuilding(id BuildingID, name string, class BuildingClass) *Building {
	return &Building{ID: id, Name: name, Class: class, Hexes: make(map[hexgrid.HexCoord]*BuildingHex)}
}

// AddHex registers a hex of the building with the given CF and height.
func (b *Building) AddHex(h hexgrid.HexCoord, cf, floors int) *BuildingHex {
	if floors < 1 {
		floors = 1
	}
	bh := &BuildingHex{CF: NewPool(cf), Floors: floors}
	b.Hexes[h] = bh
	return bh
}

// Hex returns the building's state at h, or nil.
func (b *Building) Hex(h hexgrid.HexCoord) *BuildingHex {
	return b.Hexes[h]
}

// CF returns the current construction factor at h.
func (b *Building) CF(h hexgrid.HexCoord) int {
	if bh := b.Hexes[h]; bh != nil {
		return bh.CF.Value()
	}
	return 0
}

// Absorption is the damage the building soaks before it reaches a unit
// inside: one tenth of current CF, rounded up.
func (b *Building) Absorption(h hexgrid.HexCoord) int {
	return (b.CF(h) + 9) / 10
}

// DamageScale is the factor applied to damage passing through to units
// inside the building.
func (b *Building) DamageScale() float64 {
	switch b.Class {
	case ClassHardened, ClassFortress:
		return 0.5
	}
	return 1.0
}

// Standing reports whether any hex of the building is still up.
func (b *Building) Standing() bool {
	for _, bh := range b.Hexes {
		if !bh.Collapsed {
			return true
		}
	}
	return false
}
