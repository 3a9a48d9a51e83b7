package damage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

func setup(t *testing.T, src *dice.Scripted) (*round.Context, *world.Combatant) {
	t.Helper()
	w := world.New(hexgrid.NewBoard(6, 6))
	m := world.NewMech(1, "Centurion", 50,
		[world.NumMechLoc]int{9, 16, 12, 12, 2, 16, 16, 16}, [3]int{5, 4, 4})
	m.Pos = hexgrid.HexCoord{Col: 3, Row: 3}
	require.NoError(t, w.AddUnit(m))
	rc := round.New(w, src, round.Options{})
	rc.Damage = New()
	return rc, m
}

func TestClusters(t *testing.T) {
	tests := []struct {
		total, size int
		want        []int
	}{
		{17, 5, []int{5, 5, 5, 2}},
		{10, 5, []int{5, 5}},
		{3, 5, []int{3}},
		{0, 5, nil},
		{7, 0, []int{7}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clusters(tt.total, tt.size), "Clusters(%d,%d)", tt.total, tt.size)
	}
}

func TestClustersSumToTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		total := rapid.IntRange(0, 500).Draw(rt, "total")
		size := rapid.IntRange(1, 20).Draw(rt, "size")
		sum := 0
		for i, c := range Clusters(total, size) {
			if c <= 0 || c > size {
				rt.Fatalf("cluster %d = %d out of range", i, c)
			}
			sum += c
		}
		if sum != total {
			rt.Fatalf("clusters sum %d, want %d", sum, total)
		}
	})
}

func TestApplyTransfersPastDestroyedArm(t *testing.T) {
	rc, m := setup(t, dice.NewScripted())
	e := New()

	// LA: 2 armor + 8 IS; 15 damage leaves 5 for the left torso.
	e.Apply(rc, m, round.HitData{Location: world.LocLA}, 15)

	assert.True(t, m.Loc(world.LocLA).Destroyed())
	assert.Equal(t, 7, m.Loc(world.LocLT).Armor.Value())
	assert.Equal(t, 12, m.Loc(world.LocLT).IS.Value())
	assert.True(t, rc.Reports.Has(report.DamageTransfer))
	assert.False(t, m.Destroyed)
}

func TestApplyRearArmor(t *testing.T) {
	rc, m := setup(t, dice.NewScripted())
	New().Apply(rc, m, round.HitData{Location: world.LocCT, Rear: true}, 3)
	assert.Equal(t, 2, m.Loc(world.LocCT).Rear.Value())
	assert.Equal(t, 16, m.Loc(world.LocCT).Armor.Value())
}

func TestStructureDamageRollsCrits(t *testing.T) {
	src := dice.NewScripted(4, 4, 1) // crit roll 8, slot 1
	rc, m := setup(t, src)
	m.Loc(world.LocCT).Slots = []world.Slot{{Name: "Gyro"}}

	New().Apply(rc, m, round.HitData{Location: world.LocCT}, 18)

	assert.Equal(t, 14, m.Loc(world.LocCT).IS.Value())
	assert.Equal(t, 1, m.GyroHits)
	assert.True(t, m.Loc(world.LocCT).Slots[0].Hit)
	require.Len(t, rc.PendingPSRs(), 1)
	assert.Equal(t, "gyro hit", rc.PendingPSRs()[0].Reason)
}

func TestHeadCritTwelveKillsPilot(t *testing.T) {
	src := dice.NewScripted(6, 6)
	rc, m := setup(t, src)
	New().Apply(rc, m, round.HitData{Location: world.LocHD}, 10)
	assert.True(t, m.CockpitHit)
	assert.True(t, m.Destroyed)
	assert.True(t, rc.Reports.Has(report.UnitDestroyed))
}

func TestLimbBlownOffLeavesLimbInHex(t *testing.T) {
	src := dice.NewScripted(6, 6)
	rc, m := setup(t, src)
	New().Apply(rc, m, round.HitData{Location: world.LocRA}, 17)
	assert.True(t, m.Loc(world.LocRA).Destroyed())
	ok, _ := rc.World.Hex(m.Pos).HasTerrain(hexgrid.TerrainLimbs)
	assert.True(t, ok)
}

func TestAmmoExplosionWithCASE(t *testing.T) {
	src := dice.NewScripted(4, 4, 1, 6, 6) // crit 8, slot 1, consciousness 12
	rc, m := setup(t, src)
	lt := m.Loc(world.LocLT)
	lt.CASE = true
	lt.Slots = []world.Slot{{Name: "IS Ammo AC/10"}}
	m.Ammo["IS Ammo AC/10"] = 10

	New().Apply(rc, m, round.HitData{Location: world.LocLT}, 13)

	assert.True(t, lt.Destroyed())
	assert.Equal(t, 0, m.Ammo["IS Ammo AC/10"])
	assert.Equal(t, 2, m.PilotHits)
	assert.Equal(t, 16, m.Loc(world.LocCT).IS.Value(), "CASE keeps the blast out of the CT")
	assert.True(t, rc.Reports.Has(report.CASEVents))
}

func TestVehicleMotiveImmobilizes(t *testing.T) {
	src := dice.NewScripted(6, 6)
	rc, _ := setup(t, src)
	tank := world.NewCombatant(2, "Manticore", world.KindTank, 60, world.NumVehicleLoc)
	for i := range tank.Locations {
		tank.Locations[i].Armor = world.NewPool(20)
		tank.Locations[i].IS = world.NewPool(6)
	}
	tank.WalkMP = 4
	tank.Pos = hexgrid.HexCoord{Col: 1, Row: 1}
	require.NoError(t, rc.World.AddUnit(tank))

	New().Apply(rc, tank, round.HitData{Location: world.LocFront}, 5)
	assert.Equal(t, 15, tank.Loc(world.LocFront).Armor.Value())
	assert.True(t, tank.Immobile)
}

func TestInfantryLosesTroopers(t *testing.T) {
	rc, _ := setup(t, dice.NewScripted())
	inf := world.NewCombatant(3, "Foot Platoon", world.KindInfantry, 3, 1)
	inf.Locations[0].IS = world.NewPool(21)
	inf.Pos = hexgrid.HexCoord{Col: 2, Row: 2}
	require.NoError(t, rc.World.AddUnit(inf))

	New().Apply(rc, inf, round.HitData{Location: world.LocTroops}, 7)
	assert.Equal(t, 14, inf.Loc(world.LocTroops).IS.Value())
	New().Apply(rc, inf, round.HitData{Location: world.LocTroops}, 30)
	assert.True(t, inf.Destroyed)
}

func TestPilotHitConsciousness(t *testing.T) {
	src := dice.NewScripted(1, 1) // roll 2 vs needed 3
	rc, m := setup(t, src)
	New().PilotHit(rc, m, 1, "fall")
	assert.True(t, m.Unconscious)

	New().PilotHit(rc, m, 5, "fall")
	assert.True(t, m.Destroyed)
}

func TestEngineExplosionHitsNeighbors(t *testing.T) {
	src := dice.NewScripted()
	src.Fallback = dice.NewSource(7)
	rc, m := setup(t, src)
	m.EngineRating = 20
	near := world.NewMech(2, "Jenner", 35, [world.NumMechLoc]int{20, 20, 20, 20, 20, 20, 20, 20}, [3]int{})
	near.Pos = hexgrid.Neighbor(m.Pos, 2)
	require.NoError(t, rc.World.AddUnit(near))
	before := near.TotalArmor()

	New().ExplodeEngine(rc, m)

	assert.True(t, m.Destroyed)
	assert.Equal(t, before-10, near.TotalArmor())
}

func TestRollLocationTables(t *testing.T) {
	e := New()
	rc, m := setup(t, dice.NewScripted(1, 1, 3, 6, 2))

	hit := e.RollLocation(rc, m, round.TableStandard, round.SideFront)
	assert.Equal(t, world.LocCT, hit.Location)
	assert.True(t, hit.PossibleTAC)

	hit = e.RollLocation(rc, m, round.TableKick, round.SideFront)
	assert.Equal(t, world.LocRL, hit.Location)

	hit = e.RollLocation(rc, m, round.TablePunch, round.SideFront)
	assert.Equal(t, world.LocHD, hit.Location)

	hit = e.RollLocation(rc, m, round.TableKick, round.SideLeft)
	assert.Equal(t, world.LocLL, hit.Location)

	hit = e.RollLocation(rc, m, round.TablePunch, round.SideRear)
	assert.Equal(t, world.LocLT, hit.Location)
	assert.True(t, hit.Rear)
}
