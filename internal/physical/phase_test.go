package physical

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

var center = hexgrid.HexCoord{Col: 5, Row: 5}

// setup places a Centurion at center facing north and a Jenner in front of
// it, facing back.
func setup(t *testing.T, src dice.Source, opts round.Options) (*Phase, *world.Combatant, *world.Combatant) {
	t.Helper()
	w := world.New(hexgrid.NewBoard(9, 9))
	m := world.NewMech(1, "Centurion", 50,
		[world.NumMechLoc]int{9, 16, 12, 12, 16, 16, 16, 16}, [3]int{5, 4, 4})
	m.Pos = center
	m.Owner = 1
	require.NoError(t, w.AddUnit(m))

	j := world.NewMech(2, "Jenner", 35,
		[world.NumMechLoc]int{20, 20, 20, 20, 20, 20, 20, 20}, [3]int{8, 8, 8})
	j.Pos = hexgrid.Neighbor(center, 0)
	j.Facing = 3
	j.Owner = 2
	require.NoError(t, w.AddUnit(j))

	return NewPhase(round.New(w, src, opts)), m, j
}

func on(attacker, target world.UnitID) Attack {
	return Attack{Attacker: attacker, Target: UnitTarget(target)}
}

func fixed(value int) *ToHit {
	return &ToHit{Value: value, Table: round.TableStandard, Side: round.SideFront}
}

func count(rc *round.Context, templateID int) int {
	n := 0
	for _, r := range rc.Reports.Reports() {
		if r.TemplateID == templateID {
			n++
		}
	}
	return n
}

func resolveAll(p *Phase) {
	last := world.NoUnit
	for _, r := range p.Results() {
		last = p.Resolve(context.Background(), r, last, round.AutoDecider{})
	}
}

func TestPunchDirectBlow(t *testing.T) {
	p, _, j := setup(t, dice.NewScripted(), round.Options{DirectBlows: true})
	before := j.TotalArmor()

	th := &ToHit{Value: 8, Table: round.TablePunch, Side: round.SideFront}
	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Punch{Attack: on(1, 2), Arm: LimbLeft}, ToHit: th, Roll: 11},
	}))
	p.Run(context.Background(), round.AutoDecider{})

	// 50 tons punches for 5; a margin of 3 adds 1.
	assert.Equal(t, before-6, j.TotalArmor())
	assert.True(t, p.Context().Reports.Has(report.DirectBlow))
	assert.Equal(t, Resolved, p.Results()[0].Resolution)
}

func TestPunchMissLeavesTargetAlone(t *testing.T) {
	p, _, j := setup(t, dice.NewScripted(), round.Options{})
	before := j.TotalArmor()

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Punch{Attack: on(1, 2), Arm: LimbLeft}, ToHit: fixed(9), Roll: 8},
	}))
	p.Run(context.Background(), round.AutoDecider{})

	assert.Equal(t, before, j.TotalArmor())
	assert.True(t, p.Context().Reports.Has(report.AttackMisses))
}

func TestImpossibleAttackIsReportedOnly(t *testing.T) {
	p, m, j := setup(t, dice.NewScripted(), round.Options{})
	j.Pos = hexgrid.HexCoord{Col: 1, Row: 1}
	before := j.TotalArmor()

	require.NoError(t, p.Preprocess([]Declaration{{Action: Kick{Attack: on(1, 2), Leg: LimbLeft}}}))
	assert.True(t, p.Results()[0].ToHit.IsImpossible())
	resolveAll(p)

	assert.Equal(t, before, j.TotalArmor())
	assert.True(t, p.Context().Reports.Has(report.AttackImpossible))
	assert.Empty(t, p.Context().PendingPSRs(), "an impossible kick is not a missed kick for %s", m.Name)
}

func TestChargeFizzlesWhenTargetMoved(t *testing.T) {
	p, m, j := setup(t, dice.NewScripted(), round.Options{})
	declared := j.Pos
	before := j.TotalArmor()

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Charge{Attack: on(1, 2)}, ToHit: &ToHit{Value: AutomaticSuccess}},
	}))
	require.NotNil(t, m.DisplacementAttack)
	j.Pos = hexgrid.Neighbor(center, 3)
	resolveAll(p)

	assert.True(t, p.Context().Reports.Has(report.ChargeFizzles))
	assert.Equal(t, declared, m.Pos)
	assert.Equal(t, before, j.TotalArmor())
	assert.Nil(t, m.DisplacementAttack)
}

func TestChargeKillIsCredited(t *testing.T) {
	p, m, j := setup(t, dice.NewScripted(), round.Options{})
	from := j.Pos
	for i := range j.Locations {
		j.Locations[i].Armor = world.NewPool(0)
		j.Locations[i].Rear = world.NewPool(0)
		j.Locations[i].IS = world.NewPool(1)
	}

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Charge{Attack: on(1, 2)}, ToHit: &ToHit{Value: AutomaticSuccess}},
	}))
	resolveAll(p)

	require.True(t, j.Destroyed)
	assert.Equal(t, m.ID, j.KilledBy)
	assert.Equal(t, []world.UnitID{j.ID}, m.Kills)
	assert.Equal(t, from, m.Pos, "charger takes the hex of a destroyed target")
	assert.True(t, p.Context().Reports.Has(report.CollisionDamage))
}

func TestMutualPushResolvesOnce(t *testing.T) {
	p, m, j := setup(t, dice.NewScripted(), round.Options{})
	mPos, jPos := m.Pos, j.Pos

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Push{Attack: on(1, 2)}, ToHit: fixed(4), Roll: 10},
		{Action: Push{Attack: on(2, 1)}, ToHit: fixed(4), Roll: 10},
	}))
	resolveAll(p)

	rc := p.Context()
	assert.Equal(t, 1, count(rc, report.MutualPush))
	assert.Equal(t, mPos, m.Pos)
	assert.Equal(t, jPos, j.Pos)
	assert.Len(t, rc.PendingPSRs(), 2)
	for _, r := range p.Results() {
		assert.Equal(t, Resolved, r.Resolution)
	}
}

func TestPushMovesTargetAlongFacing(t *testing.T) {
	p, m, j := setup(t, dice.NewScripted(), round.Options{})
	jPos := j.Pos

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Push{Attack: on(1, 2)}, ToHit: fixed(4), Roll: 10},
	}))
	resolveAll(p)

	assert.Equal(t, hexgrid.Neighbor(jPos, 0), j.Pos)
	assert.Equal(t, jPos, m.Pos)
}

func TestMutualGrappleHigherMarginWins(t *testing.T) {
	p, m, j := setup(t, dice.NewScripted(), round.Options{})

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Grapple{Attack: on(1, 2), Side: world.GrappleBody}, ToHit: fixed(5), Roll: 9},
		{Action: Grapple{Attack: on(2, 1), Side: world.GrappleBody}, ToHit: fixed(5), Roll: 11},
	}))
	resolveAll(p)

	assert.Equal(t, 1, count(p.Context(), report.MutualGrapple))
	assert.Equal(t, m.ID, j.GrappledWith)
	assert.Equal(t, j.ID, m.GrappledWith)
	assert.True(t, j.GrappleAttacker)
	assert.False(t, m.GrappleAttacker)
	assert.Equal(t, center, j.Pos, "body grapple brings the winner into the hex")
}

func TestFlailFumbleHitsWielder(t *testing.T) {
	p, m, j := setup(t, dice.NewScripted(), round.Options{})
	m.Club = "flail"
	mBefore, jBefore := m.TotalArmor(), j.TotalArmor()

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Club{Attack: on(1, 2)}, ToHit: fixed(8), Roll: 2},
	}))
	p.Run(context.Background(), round.AutoDecider{})

	rc := p.Context()
	assert.True(t, rc.Reports.Has(report.RedirectAttack))
	assert.Equal(t, 1, count(rc, report.RedirectAttack))
	assert.Equal(t, mBefore-9, m.TotalArmor())
	assert.Equal(t, jBefore, j.TotalArmor())
}

func TestAttackerHeaderOncePerRun(t *testing.T) {
	p, _, _ := setup(t, dice.NewScripted(), round.Options{})

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Punch{Attack: on(1, 2), Arm: LimbLeft}, ToHit: fixed(12), Roll: 3},
		{Action: Kick{Attack: on(1, 2), Leg: LimbLeft}, ToHit: fixed(12), Roll: 3},
		{Action: Punch{Attack: on(2, 1), Arm: LimbRight}, ToHit: fixed(12), Roll: 3},
	}))
	resolveAll(p)

	assert.Equal(t, 2, count(p.Context(), report.AttackerHeader))
}

func TestDestroyedAttackerIsInvalid(t *testing.T) {
	p, m, j := setup(t, dice.NewScripted(), round.Options{})
	before := j.TotalArmor()

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Punch{Attack: on(1, 2), Arm: LimbLeft}, ToHit: fixed(2), Roll: 12},
	}))
	m.Destroyed = true
	resolveAll(p)

	assert.True(t, p.Context().Reports.Has(report.AttackerInvalid))
	assert.Equal(t, before, j.TotalArmor())
}

func TestRemovedAttackerIsInvalid(t *testing.T) {
	p, _, j := setup(t, dice.NewScripted(), round.Options{})
	before := j.TotalArmor()

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Punch{Attack: on(1, 2), Arm: LimbLeft}, ToHit: fixed(2), Roll: 12},
	}))
	p.Context().World.RemoveUnit(1)
	resolveAll(p)

	assert.True(t, p.Context().Reports.Has(report.AttackerInvalid))
	assert.Equal(t, Resolved, p.Results()[0].Resolution)
	assert.Equal(t, before, j.TotalArmor())
}

func TestNewPhaseClearsLastRound(t *testing.T) {
	p, m, j := setup(t, dice.NewScripted(), round.Options{})
	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Punch{Attack: on(1, 2), Arm: LimbLeft}, ToHit: fixed(12), Roll: 3},
	}))
	resolveAll(p)
	assert.True(t, m.Done)
	assert.True(t, j.Struck)
	assert.False(t, j.Done, "a unit is done once its own attacks resolve")

	m.Struck = true
	j.DisplacementAttack = &world.DisplacementAttack{Kind: world.DisplaceCharge, Target: 1}
	NewPhase(round.New(p.Context().World, dice.NewScripted(), round.Options{}))

	assert.False(t, m.Done)
	assert.False(t, m.Struck)
	assert.False(t, j.Struck)
	assert.Nil(t, j.DisplacementAttack)
}

func TestPreprocessUnknownUnit(t *testing.T) {
	p, _, _ := setup(t, dice.NewScripted(), round.Options{})
	err := p.Preprocess([]Declaration{{Action: Punch{Attack: on(1, 99)}}})
	assert.Error(t, err)

	err = p.Preprocess([]Declaration{{}})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

// ─── Single-unit resolutions ────────────────────────────────────────────────

func TestSelfDestruct(t *testing.T) {
	tests := []struct {
		name      string
		roll      int
		autoEject bool
		destroyed bool
		ejected   bool
	}{
		{"success", 7, false, true, false},
		{"success with auto-eject", 9, true, true, true},
		{"failure", 3, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := dice.NewScripted()
			src.PushTotals(tt.roll)
			p, m, _ := setup(t, src, round.Options{AutoEject: tt.autoEject})
			m.Pos = hexgrid.HexCoord{Col: 2, Row: 7}
			m.SelfDestructInitiated = true

			p.Run(context.Background(), round.AutoDecider{})

			assert.Equal(t, tt.destroyed, m.Destroyed)
			assert.Equal(t, tt.destroyed, m.SelfDestructedThisTurn)
			assert.Equal(t, tt.ejected, m.Ejected)
			assert.False(t, m.SelfDestructInitiated)
		})
	}
}

func TestUnjam(t *testing.T) {
	src := dice.NewScripted()
	src.PushTotals(8, 5)
	p, m, _ := setup(t, src, round.Options{})
	m.Weapons = []world.Weapon{
		{Name: "AC/10", Jammed: true, Autocannon: true},
		{Name: "AC/5", Jammed: true, Autocannon: true},
	}
	m.UnjamRequested = true

	p.Begin()

	assert.False(t, m.Weapons[0].Jammed)
	assert.True(t, m.Weapons[1].Jammed)
	assert.False(t, m.UnjamRequested)
}

func TestFindClubInWoods(t *testing.T) {
	src := dice.NewScripted()
	src.PushTotals(4)
	p, m, _ := setup(t, src, round.Options{})
	p.Context().World.Hex(center).SetTerrain(hexgrid.TerrainWoods, 1)

	require.NoError(t, p.Preprocess([]Declaration{{Action: FindClub{Attack: on(1, 1)}, Roll: 12}}))
	resolveAll(p)

	assert.Equal(t, "tree", m.Club)
	assert.True(t, p.Context().Reports.Has(report.ClubFound))
}

func TestFindClubOnOpenGround(t *testing.T) {
	p, m, _ := setup(t, dice.NewScripted(), round.Options{})

	require.NoError(t, p.Preprocess([]Declaration{{Action: FindClub{Attack: on(1, 1)}, Roll: 12}}))
	resolveAll(p)

	assert.Empty(t, m.Club)
	assert.True(t, p.Context().Reports.Has(report.ClubNotFound))
}

func addInfantry(t *testing.T, rc *round.Context, id world.UnitID, at hexgrid.HexCoord, troopers int) *world.Combatant {
	t.Helper()
	u := world.NewCombatant(id, "Foot Platoon", world.KindInfantry, 3, 1)
	u.Locations[world.LocTroops].IS = world.NewPool(troopers)
	u.Pos = at
	u.Owner = 2
	require.NoError(t, rc.World.AddUnit(u))
	return u
}

func TestTriggerPodIsSingleUse(t *testing.T) {
	src := dice.NewScripted()
	src.Push(4)
	p, m, _ := setup(t, src, round.Options{})
	m.Pods = []world.Pod{{Kind: world.PodAntiPersonnel, Location: world.LocLL}}
	inf := addInfantry(t, p.Context(), 3, center, 21)

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: TriggerPod{Attack: on(1, 1), Pod: 0}, Roll: 12},
		{Action: TriggerPod{Attack: on(1, 1), Pod: 0}, Roll: 12},
	}))
	resolveAll(p)

	rc := p.Context()
	assert.Equal(t, 17, inf.Loc(world.LocTroops).IS.Value())
	assert.True(t, m.Pods[0].Used)
	assert.Equal(t, 1, count(rc, report.PodTriggered))
	assert.Equal(t, 1, count(rc, report.PodSpent))
}

func TestLayExplosives(t *testing.T) {
	p, _, _ := setup(t, dice.NewScripted(), round.Options{})
	rc := p.Context()
	b := world.NewBuilding(1, "Depot", world.ClassMedium)
	bh := b.AddHex(hexgrid.HexCoord{Col: 7, Row: 7}, 40, 2)
	rc.World.AddBuilding(b)
	addInfantry(t, rc, 3, hexgrid.HexCoord{Col: 7, Row: 7}, 21)
	addInfantry(t, rc, 4, hexgrid.HexCoord{Col: 1, Row: 7}, 21)

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: LayExplosives{Attack: Attack{Attacker: 3, Target: HexTarget(hexgrid.HexCoord{Col: 7, Row: 7})}}},
		{Action: LayExplosives{Attack: Attack{Attacker: 4, Target: HexTarget(hexgrid.HexCoord{Col: 1, Row: 7})}}},
	}))
	resolveAll(p)

	require.Len(t, bh.Explosives, 1)
	assert.Equal(t, world.Explosive{LaidBy: 3, Damage: 21}, bh.Explosives[0])
	assert.True(t, rc.Reports.Has(report.ExplosivesNoBuilding))
}

func TestClearMinefield(t *testing.T) {
	src := dice.NewScripted()
	src.PushTotals(8)
	p, m, _ := setup(t, src, round.Options{})
	rc := p.Context()
	mined := hexgrid.Neighbor(center, 1)
	f := &world.Minefield{Pos: mined, Type: world.MineConventional, Density: 10, Owner: 2}
	rc.World.AddMinefield(f)

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: ClearMinefield{Attack: Attack{Attacker: 1, Target: HexTarget(mined)}}, Roll: 12},
		{Action: ClearMinefield{Attack: Attack{Attacker: 1, Target: HexTarget(center)}}, Roll: 12},
		{Action: ClearMinefield{Attack: Attack{Attacker: 1, Target: HexTarget(hexgrid.HexCoord{Col: 1, Row: 1})}}, Roll: 12},
	}))
	resolveAll(p)

	assert.True(t, f.KnownTo(m.Owner))
	assert.Empty(t, rc.World.MinefieldsAt(mined))
	assert.True(t, rc.Reports.Has(report.MinefieldRevealed))
	assert.True(t, rc.Reports.Has(report.ClearanceSucceeds))
	assert.Equal(t, 1, count(rc, report.NoMinefield))
	assert.Equal(t, 1, count(rc, report.AttackImpossible), "a hex out of reach cannot be cleared")
}

func TestLaidExplosivesCanBeDetonated(t *testing.T) {
	p, _, _ := setup(t, dice.NewScripted(), round.Options{})
	rc := p.Context()
	depot := hexgrid.HexCoord{Col: 7, Row: 7}
	b := world.NewBuilding(1, "Depot", world.ClassMedium)
	bh := b.AddHex(depot, 40, 2)
	rc.World.AddBuilding(b)
	addInfantry(t, rc, 3, depot, 21)

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: LayExplosives{Attack: Attack{Attacker: 3, Target: HexTarget(depot)}}},
		{Action: DetonateExplosives{Attack: Attack{Attacker: 1, Target: HexTarget(depot)}}},
		{Action: DetonateExplosives{Attack: Attack{Attacker: 1, Target: HexTarget(center)}}},
	}))
	assert.True(t, p.Results()[1].ToHit.IsAutomatic(), "charges go off at any range")
	resolveAll(p)

	assert.Empty(t, bh.Explosives)
	assert.Equal(t, 19, b.CF(depot))
	assert.True(t, rc.Reports.Has(report.ExplosivesBlow))
	assert.True(t, rc.Reports.Has(report.ExplosivesNoBuilding))
}

func TestInfernoSetsHexAndUnitsBurning(t *testing.T) {
	p, _, j := setup(t, dice.NewScripted(), round.Options{})
	rc := p.Context()

	require.NoError(t, p.Preprocess([]Declaration{
		{Action: Inferno{Attack: Attack{Attacker: 1, Target: HexTarget(j.Pos)}}, Roll: 12},
	}))
	resolveAll(p)

	assert.True(t, j.Burning)
	assert.Equal(t, 2, rc.World.Hex(j.Pos).Level(hexgrid.TerrainFire))
	assert.True(t, rc.Reports.Has(report.InfernoIgnites))
}
