// Package world is the arena that owns every combatant, building and
// minefield on the board. Cross-entity links are ids resolved here.
package world

import (
	"errors"
	"fmt"
	"sort"

	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
)

var (
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrDuplicateUnit = errors.New("duplicate unit id")
	ErrInvalidUnitID = errors.New("unit ids must be positive")
	ErrOffBoard      = errors.New("position off board")
)

type World struct {
	Board *hexgrid.Board
	// Wind is the facing the wind blows toward; smoke drifts that way.
	Wind int

	units      map[UnitID]*Combatant
	buildings  map[BuildingID]*Building
	minefields map[hexgrid.HexCoord][]*Minefield
	nextMineID int
}

func New(board *hexgrid.Board) *World {
	return &World{
		Board:      board,
		units:      make(map[UnitID]*Combatant),
		buildings:  make(map[BuildingID]*Building),
		minefields: make(map[hexgrid.HexCoord][]*Minefield),
	}
}

// ─── Units ──────────────────────────────────────────────────────────────────

func (w *World) AddUnit(c *Combatant) error {
	if c.ID <= NoUnit {
		return fmt.Errorf("add %q: %w", c.Name, ErrInvalidUnitID)
	}
	if _, ok := w.units[c.ID]; ok {
		return fmt.Errorf("add unit %d: %w", c.ID, ErrDuplicateUnit)
	}
	if !w.Board.InBounds(c.Pos) && c.Kind != KindAero {
		return fmt.Errorf("add unit %d at %s: %w", c.ID, c.Pos, ErrOffBoard)
	}
	w.units[c.ID] = c
	return nil
}

// Unit returns the combatant with id, or nil.
func (w *World) Unit(id UnitID) *Combatant {
	if id == NoUnit {
		return nil
	}
	return w.units[id]
}

// Lookup is Unit with an error for callers that need one.
func (w *World) Lookup(id UnitID) (*Combatant, error) {
	if c := w.Unit(id); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("unit %d: %w", id, ErrUnknownUnit)
}

func (w *World) RemoveUnit(id UnitID) {
	delete(w.units, id)
}

// Units returns every unit ordered by id.
func (w *World) Units() []*Combatant {
	out := make([]*Combatant, 0, len(w.units))
	for _, c := range w.units {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UnitsAt returns the live units in a hex ordered by id.
func (w *World) UnitsAt(h hexgrid.HexCoord) []*Combatant {
	var out []*Combatant
	for _, c := range w.units {
		if c.Pos == h && !c.Destroyed {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ─── Terrain ────────────────────────────────────────────────────────────────

// Hex returns the board hex at h, or nil off-board.
func (w *World) Hex(h hexgrid.HexCoord) *hexgrid.Hex {
	return w.Board.Get(h)
}

// SurfaceAt is the standing elevation of a hex; off-board hexes report 0.
func (w *World) SurfaceAt(h hexgrid.HexCoord) int {
	if hx := w.Hex(h); hx != nil {
		return hx.Surface()
	}
	return 0
}

// ─── Buildings ──────────────────────────────────────────────────────────────

func (w *World) AddBuilding(b *Building) {
	w.buildings[b.ID] = b
	for h := range b.Hexes {
		if hx := w.Hex(h); hx != nil {
			hx.SetTerrain(hexgrid.TerrainBuilding, int(b.Class)+1)
			if b.FuelTank {
				hx.SetTerrain(hexgrid.TerrainFuelTank, 1)
			}
		}
	}
}

func (w *World) Building(id BuildingID) *Building {
	return w.buildings[id]
}

// BuildingAt returns the standing building occupying h, or nil.
func (w *World) BuildingAt(h hexgrid.HexCoord) *Building {
	for _, b := range w.Buildings() {
		if bh := b.Hexes[h]; bh != nil && !bh.Collapsed {
			return b
		}
	}
	return nil
}

// Buildings returns every building ordered by id.
func (w *World) Buildings() []*Building {
	out := make([]*Building, 0, len(w.buildings))
	for _, b := range w.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InBuilding reports whether a ground unit is inside a standing building.
func (w *World) InBuilding(c *Combatant) *Building {
	if c.Airborne() || c.Kind == KindAero {
		return nil
	}
	return w.BuildingAt(c.Pos)
}

// ─── Minefields ─────────────────────────────────────────────────────────────

func (w *World) AddMinefield(m *Minefield) {
	w.nextMineID++
	m.ID = w.nextMineID
	w.minefields[m.Pos] = append(w.minefields[m.Pos], m)
}

// MinefieldsAt returns the fields in h in placement order.
func (w *World) MinefieldsAt(h hexgrid.HexCoord) []*Minefield {
	return w.minefields[h]
}

func (w *World) RemoveMinefield(m *Minefield) {
	list := w.minefields[m.Pos]
	for i, f := range list {
		if f == m {
			w.minefields[m.Pos] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(w.minefields[m.Pos]) == 0 {
		delete(w.minefields, m.Pos)
	}
}

// ─── Stacking and displacement ──────────────────────────────────────────────

// StackingViolation returns the unit already in h that mover could not share
// the hex with, or nil. Infantry and airborne units never violate stacking.
func (w *World) StackingViolation(mover *Combatant, h hexgrid.HexCoord) *Combatant {
	if mover.IsInfantry() || mover.Airborne() {
		return nil
	}
	for _, c := range w.UnitsAt(h) {
		if c.ID == mover.ID || c.IsInfantry() || c.Airborne() || c.Kind == KindAero {
			continue
		}
		return c
	}
	return nil
}

// IsLegalDisplacement reports whether c can be forced from 'from' one hex in
// direction dir: the destination is on the board and no more than one level
// higher.
func (w *World) IsLegalDisplacement(c *Combatant, from hexgrid.HexCoord, dir int) bool {
	to := hexgrid.Neighbor(from, dir)
	if !w.Board.InBounds(to) {
		return false
	}
	if c.Airborne() {
		return true
	}
	return w.SurfaceAt(to)-w.SurfaceAt(from) <= 1
}

// ─── Grapples ───────────────────────────────────────────────────────────────

// Grapple binds two units. The link is always written on both sides.
func (w *World) Grapple(attacker, target *Combatant, side GrappleSide) {
	w.ReleaseGrapple(attacker)
	w.ReleaseGrapple(target)
	attacker.GrappledWith = target.ID
	attacker.GrappleAttacker = true
	attacker.GrappleSide = side
	target.GrappledWith = attacker.ID
	target.GrappleAttacker = false
	target.GrappleSide = side
}

// ReleaseGrapple clears c's grapple and its partner's.
func (w *World) ReleaseGrapple(c *Combatant) {
	if p := w.Unit(c.GrappledWith); p != nil && p.GrappledWith == c.ID {
		p.GrappledWith = NoUnit
		p.GrappleAttacker = false
		p.GrappleSide = GrappleBody
	}
	c.GrappledWith = NoUnit
	c.GrappleAttacker = false
	c.GrappleSide = GrappleBody
}

// ResetRound clears per-round flags before a new resolution phase.
func (w *World) ResetRound() {
	for _, c := range w.units {
		c.Struck = false
		c.Done = false
		c.SelfDestructedThisTurn = false
		c.DisplacementAttack = nil
	}
}
