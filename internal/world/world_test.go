package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
)

func TestPoolAbsorb(t *testing.T) {
	tests := []struct {
		start, dmg   int
		wantLeft     int
		wantOverflow int
	}{
		{10, 3, 7, 0},
		{10, 10, 0, 0},
		{10, 14, 0, 4},
		{0, 5, 0, 5},
		{5, -2, 5, 0},
	}
	for _, tt := range tests {
		p := NewPool(tt.start)
		overflow := p.Absorb(tt.dmg)
		if p.Value() != tt.wantLeft || overflow != tt.wantOverflow {
			t.Errorf("Absorb(%d) on %d = left %d overflow %d, want %d/%d",
				tt.dmg, tt.start, p.Value(), overflow, tt.wantLeft, tt.wantOverflow)
		}
	}
}

func TestPoolNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := NewPool(rapid.IntRange(-5, 50).Draw(rt, "start"))
		hits := rapid.SliceOf(rapid.IntRange(-10, 30)).Draw(rt, "hits")
		for _, h := range hits {
			before := p.Value()
			overflow := p.Absorb(h)
			if p.Value() < 0 {
				rt.Fatalf("pool went negative: %d", p.Value())
			}
			if h > 0 && before-p.Value()+overflow != h {
				rt.Fatalf("absorbed %d + overflow %d != %d", before-p.Value(), overflow, h)
			}
		}
		p.Set(-3)
		if p.Value() != 0 {
			rt.Fatalf("Set(-3) = %d", p.Value())
		}
	})
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return New(hexgrid.NewBoard(8, 8))
}

func TestAddUnitValidation(t *testing.T) {
	w := newTestWorld(t)
	m := NewMech(1, "Atlas", 100, [NumMechLoc]int{9, 47, 32, 32, 34, 34, 41, 41}, [3]int{14, 10, 10})
	m.Pos = hexgrid.HexCoord{Col: 2, Row: 2}
	require.NoError(t, w.AddUnit(m))

	dup := NewMech(1, "Other", 50, [NumMechLoc]int{}, [3]int{})
	dup.Pos = hexgrid.HexCoord{Col: 3, Row: 3}
	assert.True(t, errors.Is(w.AddUnit(dup), ErrDuplicateUnit))

	zero := NewMech(0, "Zero", 50, [NumMechLoc]int{}, [3]int{})
	zero.Pos = hexgrid.HexCoord{Col: 3, Row: 3}
	assert.True(t, errors.Is(w.AddUnit(zero), ErrInvalidUnitID))

	off := NewMech(2, "Off", 50, [NumMechLoc]int{}, [3]int{})
	off.Pos = hexgrid.HexCoord{Col: 20, Row: 3}
	assert.True(t, errors.Is(w.AddUnit(off), ErrOffBoard))

	_, err := w.Lookup(99)
	assert.True(t, errors.Is(err, ErrUnknownUnit))
}

func TestUnitsAtSortedAndStacking(t *testing.T) {
	w := newTestWorld(t)
	h := hexgrid.HexCoord{Col: 4, Row: 4}
	for _, id := range []UnitID{5, 2, 9} {
		c := NewCombatant(id, "u", KindInfantry, 3, 1)
		c.Pos = h
		require.NoError(t, w.AddUnit(c))
	}
	got := w.UnitsAt(h)
	require.Len(t, got, 3)
	assert.Equal(t, []UnitID{2, 5, 9}, []UnitID{got[0].ID, got[1].ID, got[2].ID})

	mover := NewMech(10, "Hunchback", 50, [NumMechLoc]int{}, [3]int{})
	assert.Nil(t, w.StackingViolation(mover, h), "infantry never blocks")

	mech := NewMech(11, "Wolverine", 55, [NumMechLoc]int{}, [3]int{})
	mech.Pos = h
	require.NoError(t, w.AddUnit(mech))
	assert.Equal(t, mech, w.StackingViolation(mover, h))
}

func TestIsLegalDisplacement(t *testing.T) {
	w := newTestWorld(t)
	from := hexgrid.HexCoord{Col: 4, Row: 4}
	w.Hex(hexgrid.Neighbor(from, 0)).Elevation = 2
	w.Hex(hexgrid.Neighbor(from, 1)).Elevation = 1
	c := NewMech(1, "m", 50, [NumMechLoc]int{}, [3]int{})

	assert.False(t, w.IsLegalDisplacement(c, from, 0), "two levels up")
	assert.True(t, w.IsLegalDisplacement(c, from, 1))
	assert.False(t, w.IsLegalDisplacement(c, hexgrid.HexCoord{Col: 1, Row: 1}, 0), "off board")
}

func TestGrappleSymmetry(t *testing.T) {
	w := newTestWorld(t)
	a := NewMech(1, "a", 50, [NumMechLoc]int{}, [3]int{})
	b := NewMech(2, "b", 50, [NumMechLoc]int{}, [3]int{})
	c := NewMech(3, "c", 50, [NumMechLoc]int{}, [3]int{})
	for _, u := range []*Combatant{a, b, c} {
		u.Pos = hexgrid.HexCoord{Col: 1, Row: int(u.ID)}
		require.NoError(t, w.AddUnit(u))
	}

	w.Grapple(a, b, GrappleBody)
	assert.Equal(t, b.ID, a.GrappledWith)
	assert.Equal(t, a.ID, b.GrappledWith)
	assert.True(t, a.GrappleAttacker)
	assert.False(t, b.GrappleAttacker)

	// Re-grappling b releases a.
	w.Grapple(c, b, GrappleLeft)
	assert.Equal(t, NoUnit, a.GrappledWith)
	assert.Equal(t, c.ID, b.GrappledWith)

	w.ReleaseGrapple(b)
	assert.Equal(t, NoUnit, b.GrappledWith)
	assert.Equal(t, NoUnit, c.GrappledWith)
}

func TestBuildingAbsorptionAndScale(t *testing.T) {
	b := NewBuilding(1, "Depot", ClassHardened)
	h := hexgrid.HexCoord{Col: 3, Row: 3}
	b.AddHex(h, 41, 2)
	assert.Equal(t, 5, b.Absorption(h))
	assert.Equal(t, 0.5, b.DamageScale())
	assert.Equal(t, 1.0, NewBuilding(2, "Shed", ClassLight).DamageScale())

	w := newTestWorld(t)
	w.AddBuilding(b)
	assert.Equal(t, b, w.BuildingAt(h))
	ok, _ := w.Hex(h).HasTerrain(hexgrid.TerrainBuilding)
	assert.True(t, ok)

	b.Hexes[h].Collapsed = true
	assert.Nil(t, w.BuildingAt(h))
}

func TestMinefields(t *testing.T) {
	w := newTestWorld(t)
	h := hexgrid.HexCoord{Col: 2, Row: 5}
	m := &Minefield{Pos: h, Type: MineConventional, Density: 20, Owner: 1}
	w.AddMinefield(m)
	assert.Equal(t, 1, m.ID)
	assert.True(t, m.KnownTo(1))
	assert.False(t, m.KnownTo(2))
	m.RevealTo(2)
	assert.True(t, m.KnownTo(2))

	w.RemoveMinefield(m)
	assert.Empty(t, w.MinefieldsAt(h))
}

func TestPSRPreexistingMod(t *testing.T) {
	m := NewMech(1, "m", 50, [NumMechLoc]int{}, [3]int{})
	m.GyroHits = 1
	m.Locations[LocLL].HipHit = true
	m.Locations[LocRL].ActuatorHits = 1
	assert.Equal(t, 6, m.PSRPreexistingMod())

	m.Locations[LocRL].IS.Zero()
	assert.Equal(t, 10, m.PSRPreexistingMod())
}
