package hazard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinWhittecar/physcombat/internal/damage"
	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/displacement"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

var center = hexgrid.HexCoord{Col: 3, Row: 3}

func setup(t *testing.T, src dice.Source) (*round.Context, *world.Combatant) {
	t.Helper()
	w := world.New(hexgrid.NewBoard(6, 6))
	m := world.NewMech(1, "Centurion", 50,
		[world.NumMechLoc]int{9, 16, 12, 12, 2, 16, 16, 16}, [3]int{5, 4, 4})
	m.Pos = center
	m.Owner = 1
	require.NoError(t, w.AddUnit(m))
	rc := round.New(w, src, round.Options{})
	rc.Damage = damage.New()
	rc.Displace = displacement.New()
	rc.Hazards = New()
	return rc, m
}

func TestConventionalMineHitsLegs(t *testing.T) {
	// kick table 1 -> RL, 4 -> LL; reduction roll 2 fails
	rc, m := setup(t, dice.NewScripted(1, 4, 1, 1))
	rc.World.AddMinefield(&world.Minefield{Pos: center, Type: world.MineConventional, Density: 10, Owner: 2})

	New().EnterHex(rc, m)

	assert.Equal(t, 11, m.Loc(world.LocRL).Armor.Value())
	assert.Equal(t, 11, m.Loc(world.LocLL).Armor.Value())
	require.Len(t, rc.World.MinefieldsAt(center), 1)
	assert.True(t, rc.World.MinefieldsAt(center)[0].KnownTo(m.Owner))
	assert.True(t, rc.Reports.Has(report.MineDetonates))
}

func TestMineReductionRemovesEmptyField(t *testing.T) {
	rc, m := setup(t, dice.NewScripted(1, 5, 5))
	rc.World.AddMinefield(&world.Minefield{Pos: center, Type: world.MineConventional, Density: 5})

	New().EnterHex(rc, m)

	assert.Empty(t, rc.World.MinefieldsAt(center))
	assert.True(t, rc.Reports.Has(report.MineCleared))
}

func TestMinefieldTriggers(t *testing.T) {
	hover := world.NewCombatant(2, "Savannah Master", world.KindTank, 5, world.NumVehicleLoc)
	hover.Motive = world.MotiveHover
	mech := world.NewMech(3, "Atlas", 100, [world.NumMechLoc]int{}, [3]int{})
	jumper := world.NewMech(4, "Jenner", 35, [world.NumMechLoc]int{}, [3]int{})
	jumper.Jumped = true

	tests := []struct {
		name string
		m    world.Minefield
		u    *world.Combatant
		want bool
	}{
		{"conventional mech", world.Minefield{Type: world.MineConventional}, mech, true},
		{"conventional hover", world.Minefield{Type: world.MineConventional}, hover, false},
		{"conventional jumped", world.Minefield{Type: world.MineConventional}, jumper, false},
		{"active mech", world.Minefield{Type: world.MineActive}, mech, false},
		{"active hover", world.Minefield{Type: world.MineActive}, hover, true},
		{"vibrabomb heavy", world.Minefield{Type: world.MineVibrabomb, Sensitivity: 60}, mech, true},
		{"vibrabomb light", world.Minefield{Type: world.MineVibrabomb, Sensitivity: 60}, jumper, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, triggers(&tt.m, tt.u))
		})
	}
}

func TestInfernoMineSetsBurning(t *testing.T) {
	rc, m := setup(t, dice.NewScripted(1, 1))
	rc.World.AddMinefield(&world.Minefield{Pos: center, Type: world.MineInferno, Density: 10})

	New().EnterHex(rc, m)

	assert.True(t, m.Burning)
	assert.Equal(t, 4, m.Heat)
}

func TestClearance(t *testing.T) {
	rc, m := setup(t, dice.NewScripted(3, 3))
	f := &world.Minefield{Pos: center, Type: world.MineConventional, Density: 10}
	rc.World.AddMinefield(f)
	New().Clear(rc, m, f)
	assert.Empty(t, rc.World.MinefieldsAt(center))

	// a natural 2 sets the field off: kick 1, kick 1, reduction 1+1
	rc, m = setup(t, dice.NewScripted(1, 1, 1, 1, 1, 1))
	f = &world.Minefield{Pos: center, Type: world.MineConventional, Density: 10}
	rc.World.AddMinefield(f)
	New().Clear(rc, m, f)
	assert.True(t, f.Detonated)
	assert.Equal(t, 6, m.Loc(world.LocRL).Armor.Value())
}

func TestReveal(t *testing.T) {
	rc, _ := setup(t, dice.NewScripted())
	f := &world.Minefield{Pos: center, Owner: 1}
	assert.False(t, f.KnownTo(2))
	New().Reveal(rc, f, 2)
	assert.True(t, f.KnownTo(2))
	assert.Equal(t, 1, rc.Reports.Len())
	New().Reveal(rc, f, 2)
	assert.Equal(t, 1, rc.Reports.Len())
}

func TestIgniteAndEndPhase(t *testing.T) {
	rc, m := setup(t, dice.NewScripted())
	rc.World.Wind = 2
	e := New()

	e.Ignite(rc, center, true)
	assert.True(t, m.Burning)
	assert.Equal(t, 2, rc.World.Hex(center).Level(hexgrid.TerrainFire))

	e.EndPhase(rc)
	assert.Equal(t, burningHeat+fireHexHeat, m.Heat)
	downwind := rc.World.Hex(hexgrid.Neighbor(center, 2))
	assert.Equal(t, lightSmokeLvl, downwind.Level(hexgrid.TerrainSmoke))
}

func TestWaterPutsOutFire(t *testing.T) {
	rc, m := setup(t, dice.NewScripted())
	wet := hexgrid.HexCoord{Col: 2, Row: 2}
	rc.World.Hex(wet).SetTerrain(hexgrid.TerrainWater, 1)

	New().Ignite(rc, wet, false)
	assert.Zero(t, rc.World.Hex(wet).Level(hexgrid.TerrainFire))

	m.Burning = true
	m.Pos = wet
	New().EndPhase(rc)
	assert.False(t, m.Burning)
	assert.Zero(t, m.Heat)
}

func TestBuildingCollapseDamagesAndFells(t *testing.T) {
	rc, m := setup(t, dice.NewScripted())
	b := world.NewBuilding(1, "Warehouse", world.ClassMedium)
	b.AddHex(center, 100, 2)
	rc.World.AddBuilding(b)

	New().DamageBuilding(rc, b, center, 30)
	assert.Equal(t, 70, b.CF(center))
	assert.False(t, b.Hex(center).Collapsed)

	// the 50 ton mech is now heavier than what is left
	New().DamageBuilding(rc, b, center, 30)
	assert.True(t, b.Hex(center).Collapsed)
	assert.Nil(t, rc.World.BuildingAt(center))
	assert.Equal(t, 1, rc.World.Hex(center).Level(hexgrid.TerrainRubble))
	assert.True(t, m.Prone)
	// every roll of 2 lands on the CT: 10 per floor for two floors, then the fall
	assert.Zero(t, m.Loc(world.LocCT).Armor.Value())
	assert.Equal(t, 7, m.Loc(world.LocCT).IS.Value())
}

func TestOverweightBuildingCollapses(t *testing.T) {
	rc, m := setup(t, dice.NewScripted())
	b := world.NewBuilding(1, "Shed", world.ClassLight)
	b.AddHex(center, 40, 1)
	rc.World.AddBuilding(b)

	New().CheckCollapse(rc, b, center)

	assert.True(t, b.Hex(center).Collapsed)
	assert.True(t, rc.Reports.Has(report.CollapseDamage))
	assert.True(t, m.Prone)
}

func TestDetonateExplosives(t *testing.T) {
	rc, _ := setup(t, dice.NewScripted())
	rc.World.RemoveUnit(1)
	b := world.NewBuilding(1, "Bunker", world.ClassHeavy)
	bh := b.AddHex(center, 40, 1)
	rc.World.AddBuilding(b)
	bh.Explosives = []world.Explosive{{LaidBy: 5, Damage: 10}, {LaidBy: 6, Damage: 5}}

	New().DetonateExplosives(rc, b, center)
	assert.Equal(t, 25, b.CF(center))
	assert.Empty(t, bh.Explosives)

	New().DetonateExplosives(rc, b, center)
	assert.True(t, rc.Reports.Has(report.NoExplosives))
	assert.Equal(t, 25, b.CF(center))
}

func TestShelterDamagesInfantryOnly(t *testing.T) {
	rc, m := setup(t, dice.NewScripted())
	inf := world.NewCombatant(2, "Foot Platoon", world.KindInfantry, 3, 1)
	inf.Locations[0].IS = world.NewPool(21)
	inf.Pos = center
	require.NoError(t, rc.World.AddUnit(inf))
	b := world.NewBuilding(1, "Office", world.ClassMedium)
	b.AddHex(center, 80, 3)
	rc.World.AddBuilding(b)
	armor := m.TotalArmor()

	New().DamageShelter(rc, b, center, 6)

	assert.Equal(t, 15, inf.Loc(world.LocTroops).IS.Value())
	assert.Equal(t, armor, m.TotalArmor())
}

func TestFuelTankExplosion(t *testing.T) {
	rc, m := setup(t, dice.NewScripted())
	tank := hexgrid.Neighbor(center, 0)
	b := world.NewBuilding(1, "Depot", world.ClassLight)
	b.FuelTank = true
	b.AddHex(tank, 10, 1)
	rc.World.AddBuilding(b)
	armor := m.TotalArmor()

	New().DamageBuilding(rc, b, tank, 10)

	assert.True(t, rc.Reports.Has(report.FuelTankExplodes))
	assert.Equal(t, armor-10, m.TotalArmor())
	assert.Equal(t, 1, rc.World.Hex(tank).Level(hexgrid.TerrainFire))
}
