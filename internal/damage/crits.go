package damage

import (
	"strings"

	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Critical hits ──────────────────────────────────────────────────────────

// critCount maps a determining roll to the number of critical hits. A
// negative result means the location itself is lost (limb blown off or
// cockpit hit).
func critCount(loc, roll int) int {
	switch {
	case roll >= 12:
		if loc == world.LocHD || world.IsArm(loc) || world.IsLeg(loc) {
			return -1
		}
		return 3
	case roll >= 10:
		return 2
	case roll >= 8:
		return 1
	}
	return 0
}

func (e Engine) rollCrits(rc *round.Context, t *world.Combatant, loc, mod int) {
	if t.Kind != world.KindMech || t.Destroyed {
		return
	}
	roll := dice.Roll2d6(rc.Dice) + mod
	rc.Report(report.New(report.CritRoll).Subject(int(t.ID)).Indented(3).Add(t.LocName(loc), roll))

	n := critCount(loc, roll)
	if n < 0 {
		if loc == world.LocHD {
			t.CockpitHit = true
			rc.Report(report.New(report.CritHit).Subject(int(t.ID)).Indented(4).Add(t.LocName(loc), "Cockpit"))
			return
		}
		t.Loc(loc).BlownOff = true
		rc.Report(report.New(report.LimbBlownOff).Subject(int(t.ID)).Indented(4).Add(t.LocName(loc)))
		e.destroyLocation(rc, t, loc)
		if hx := rc.World.Hex(t.Pos); hx != nil {
			hx.SetTerrain(hexgrid.TerrainLimbs, 1)
		}
		return
	}
	for i := 0; i < n && !t.Destroyed; i++ {
		e.applyCrit(rc, t, loc)
	}
}

// pickSlot chooses an unhit, non-empty slot: a d6 picks the half of a
// twelve-slot location, a second d6 the slot, rerolling empties.
func pickSlot(src dice.Source, slots []world.Slot) int {
	var valid []int
	for i, s := range slots {
		if !s.Hit && s.Name != "" && s.Name != "-Empty-" {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return -1
	}
	for attempt := 0; attempt < 6; attempt++ {
		idx := dice.Roll1d6(src) - 1
		if len(slots) > 6 && dice.Roll1d6(src) > 3 {
			idx += 6
		}
		if idx < len(slots) {
			s := slots[idx]
			if !s.Hit && s.Name != "" && s.Name != "-Empty-" {
				return idx
			}
		}
	}
	return valid[0]
}

func (e Engine) applyCrit(rc *round.Context, t *world.Combatant, loc int) {
	l := t.Loc(loc)
	idx := pickSlot(rc.Dice, l.Slots)
	if idx < 0 {
		return
	}
	l.Slots[idx].Hit = true
	name := l.Slots[idx].Name
	slot := strings.ToLower(name)
	rc.Report(report.New(report.CritHit).Subject(int(t.ID)).Indented(4).Add(t.LocName(loc), name))

	switch {
	case strings.Contains(slot, "engine"):
		t.EngineHits++
		if t.EngineHits >= 3 && rc.Options.EngineExplosions {
			roll := dice.Roll2d6(rc.Dice)
			rc.Report(report.New(report.EngineExplodeRoll).Subject(int(t.ID)).Indented(4).Add(t.Name, roll))
			if roll >= 10 {
				e.ExplodeEngine(rc, t)
			}
		}
	case strings.Contains(slot, "gyro"):
		t.GyroHits++
		t.NeedsPSRFromCrit = true
		rc.QueuePSR(t, "gyro hit", 0)
	case strings.Contains(slot, "cockpit"):
		t.CockpitHit = true
	case strings.Contains(slot, "sensors"):
		t.SensorHits++
	case strings.Contains(slot, "shoulder") || strings.Contains(slot, "upper arm") ||
		strings.Contains(slot, "lower arm") || strings.Contains(slot, "hand"):
		if world.IsArm(loc) {
			l.ActuatorHits++
		}
	case strings.Contains(slot, "hip"):
		if !l.HipHit {
			l.HipHit = true
			t.NeedsPSRFromCrit = true
			rc.QueuePSR(t, "hip actuator hit", 0)
		}
	case strings.Contains(slot, "upper leg") || strings.Contains(slot, "lower leg") || strings.Contains(slot, "foot"):
		l.ActuatorHits++
		t.NeedsPSRFromCrit = true
		rc.QueuePSR(t, "leg actuator hit", 0)
	case strings.Contains(slot, "ammo"):
		e.ammoExplosion(rc, t, loc, name)
	case strings.Contains(slot, "spikes"):
		l.Spikes = false
	default:
		for i := range t.Weapons {
			w := &t.Weapons[i]
			if w.Location == loc && !w.Destroyed && strings.Contains(slot, strings.ToLower(w.Name)) {
				w.Destroyed = true
				return
			}
		}
	}
}

// ─── Ammunition ─────────────────────────────────────────────────────────────

func estimateAmmoDamage(ammoKey string) int {
	k := strings.ToLower(ammoKey)
	switch {
	case strings.Contains(k, "ac/20"):
		return 20
	case strings.Contains(k, "ac/10"):
		return 10
	case strings.Contains(k, "ac/5"):
		return 5
	case strings.Contains(k, "ac/2"):
		return 2
	case strings.Contains(k, "gauss"):
		return 15
	case strings.Contains(k, "lrm"), strings.Contains(k, "mml"), strings.Contains(k, "mrm"):
		return 1
	case strings.Contains(k, "srm"), strings.Contains(k, "streak"), strings.Contains(k, "atm"):
		return 2
	default:
		return 5
	}
}

func (e Engine) ammoExplosion(rc *round.Context, t *world.Combatant, loc int, slotName string) {
	if strings.Contains(strings.ToLower(slotName), "gauss") {
		return
	}
	shots := t.Ammo[slotName]
	if shots <= 0 {
		return
	}
	t.Ammo[slotName] = 0
	total := shots * estimateAmmoDamage(slotName)
	rc.Report(report.New(report.AmmoExplosion).Subject(int(t.ID)).Indented(4).Add(slotName, total))
	e.PilotHit(rc, t, 2, "ammunition explosion")

	l := t.Loc(loc)
	switch {
	case l.CASEII:
		rc.Report(report.New(report.CASEVents).Subject(int(t.ID)).Indented(4).Add(t.LocName(loc)))
		l.IS.Absorb(1)
		if l.Destroyed() {
			e.destroyLocation(rc, t, loc)
		}
	case l.CASE:
		rc.Report(report.New(report.CASEVents).Subject(int(t.ID)).Indented(4).Add(t.LocName(loc)))
		l.IS.Absorb(total)
		if l.Destroyed() {
			e.destroyLocation(rc, t, loc)
		}
	default:
		overflow := l.IS.Absorb(total)
		if l.Destroyed() {
			e.destroyLocation(rc, t, loc)
			if overflow > 0 {
				e.transfer(rc, t, loc, overflow, round.HitData{Type: round.DamageExplosion})
			}
		}
	}
}

// ─── Engine explosion ───────────────────────────────────────────────────────

// ExplodeEngine destroys t in a fusion explosion: units in its hex take the
// engine rating in damage, units in adjacent hexes half of it, in 5-point
// clusters.
func (e Engine) ExplodeEngine(rc *round.Context, t *world.Combatant) {
	rating := t.EngineRating
	if rating <= 0 {
		rating = t.Weight * 4
	}
	rc.Report(report.New(report.EngineExplosion).Subject(int(t.ID)).Indented(2).Add(t.Name, rating))
	Destroy(rc, t, "engine explosion")

	for _, u := range rc.World.UnitsAt(t.Pos) {
		if u.ID == t.ID {
			continue
		}
		e.ApplyClusters(rc, u, rating, 5, round.TableStandard, round.SideFront, round.DamageExplosion)
	}
	for dir := 0; dir < 6; dir++ {
		for _, u := range rc.World.UnitsAt(hexgrid.Neighbor(t.Pos, dir)) {
			e.ApplyClusters(rc, u, rating/2, 5, round.TableStandard, round.SideFront, round.DamageExplosion)
		}
	}
}

// ─── Pilot ──────────────────────────────────────────────────────────────────

var consciousnessThresholds = [6]int{3, 5, 7, 10, 11, 99}

// PilotHit wounds t's pilot n times and rolls for consciousness.
func (e Engine) PilotHit(rc *round.Context, t *world.Combatant, n int, reason string) {
	if n <= 0 || t.Destroyed || !t.HasCrew() {
		return
	}
	t.PilotHits += n
	if t.PilotHits > 6 {
		t.PilotHits = 6
	}
	rc.Report(report.New(report.PilotHit).Subject(int(t.ID)).Indented(3).Add(t.Name, t.PilotHits, reason))
	if t.PilotHits >= 6 {
		Destroy(rc, t, "pilot killed")
		return
	}
	if t.Unconscious {
		return
	}
	needed := consciousnessThresholds[t.PilotHits-1]
	roll := dice.Roll2d6(rc.Dice)
	if roll < needed {
		t.Unconscious = true
		rc.Report(report.New(report.PilotKnockedOut).Subject(int(t.ID)).Indented(3).Add(t.Name, roll, needed))
		return
	}
	rc.Report(report.New(report.PilotConscious).Subject(int(t.ID)).Indented(3).Add(t.Name, roll, needed))
}
