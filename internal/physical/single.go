package physical

import (
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Resolutions that involve one unit ──────────────────────────────────────

// SelfDestruct resolves a unit's self-destruct order with a piloting roll.
// Success ejects the crew when auto-eject is on and blows the engine.
func (p *Phase) SelfDestruct(u *world.Combatant) {
	rc := p.rc
	u.SelfDestructInitiated = false
	roll := rc.Roll2d6().Total
	rc.Report(report.New(report.SelfDestructRoll).Subject(int(u.ID)).Indented(1).Add(u.Name, u.Piloting, roll))
	if roll < u.Piloting {
		rc.Report(report.New(report.SelfDestructFail).Subject(int(u.ID)).Indented(2).Add(u.Name))
		return
	}
	rc.Report(report.New(report.SelfDestructSuccess).Subject(int(u.ID)).Indented(2).Add(u.Name))
	if rc.Options.AutoEject && u.HasCrew() {
		u.Ejected = true
		rc.Report(report.New(report.AutoEject).Subject(int(u.ID)).Indented(2).Add(u.Name))
	}
	rc.Damage.ExplodeEngine(rc, u)
	u.SelfDestructedThisTurn = true
}

// Unjam tries once to clear each jammed autocannon on u.
func (p *Phase) Unjam(u *world.Combatant) {
	rc := p.rc
	u.UnjamRequested = false
	need := u.Gunnery + 3
	for _, i := range u.JammedWeapons() {
		w := &u.Weapons[i]
		if !w.Autocannon {
			continue
		}
		roll := rc.Roll2d6().Total
		rc.Report(report.New(report.UnjamRoll).Subject(int(u.ID)).Indented(1).Add(w.Name, need, roll))
		if roll >= need {
			w.Jammed = false
			rc.Report(report.New(report.Unjammed).Subject(int(u.ID)).Indented(2).Add(w.Name))
		} else {
			rc.Report(report.New(report.UnjamFails).Subject(int(u.ID)).Indented(2).Add(w.Name))
		}
	}
}

func (p *Phase) layExplosives(r *Result, attacker *world.Combatant) round.Outcome {
	rc := p.rc
	b := rc.World.BuildingAt(attacker.Pos)
	bh := (*world.BuildingHex)(nil)
	if b != nil {
		bh = b.Hex(attacker.Pos)
	}
	if bh == nil || bh.Collapsed {
		rc.Report(report.New(report.ExplosivesNoBuilding).Subject(int(attacker.ID)).Indented(2).Add(attacker.Pos.String()))
		return round.Done()
	}
	bh.Explosives = append(bh.Explosives, world.Explosive{LaidBy: attacker.ID, Damage: r.Damage})
	rc.Report(report.New(report.ExplosivesLaid).Subject(int(attacker.ID)).Indented(2).Add(b.Name, attacker.Pos.String()))
	return round.Done()
}

// hexAction runs the to-hit test of an action aimed at a hex and returns the
// hex when it goes ahead.
func (p *Phase) hexAction(r *Result, attacker *world.Combatant) (hexgrid.HexCoord, bool) {
	h := r.Action.common().Target.Hex
	c := p.roll(attacker, r.Action.Name(), h.String(), r.ToHit, r.Roll)
	return h, c.verdict == verdictHit
}

// clearMinefield makes a clearance attempt on every field in the target hex.
// The attacker's side learns of each field first.
func (p *Phase) clearMinefield(r *Result, attacker *world.Combatant) round.Outcome {
	rc := p.rc
	h, ok := p.hexAction(r, attacker)
	if !ok {
		return round.Done()
	}
	fields := append([]*world.Minefield(nil), rc.World.MinefieldsAt(h)...)
	if len(fields) == 0 {
		rc.Report(report.New(report.NoMinefield).Subject(int(attacker.ID)).Indented(3).Add(h.String()))
		return round.Done()
	}
	for _, m := range fields {
		if attacker.Gone() {
			break
		}
		rc.Hazards.Reveal(rc, m, attacker.Owner)
		rc.Hazards.Clear(rc, attacker, m)
	}
	return round.Done()
}

func (p *Phase) detonateExplosives(r *Result, attacker *world.Combatant) round.Outcome {
	rc := p.rc
	h, ok := p.hexAction(r, attacker)
	if !ok {
		return round.Done()
	}
	b := rc.World.BuildingAt(h)
	if b == nil {
		rc.Report(report.New(report.ExplosivesNoBuilding).Subject(int(attacker.ID)).Indented(3).Add(h.String()))
		return round.Done()
	}
	rc.Hazards.DetonateExplosives(rc, b, h)
	return round.Done()
}

func (p *Phase) inferno(r *Result, attacker *world.Combatant) round.Outcome {
	h, ok := p.hexAction(r, attacker)
	if ok {
		p.rc.Hazards.Ignite(p.rc, h, true)
	}
	return round.Done()
}

// clubSource is something in a hex that can be pulled up and swung.
type clubSource struct {
	terrain hexgrid.TerrainType
	name    string
	club    string
	need    int
}

// clubSources are searched in order; the first present wins.
var clubSources = []clubSource{
	{hexgrid.TerrainLimbs, "severed limb", "limb", 2},
	{hexgrid.TerrainWoods, "woods", "tree", 4},
	{hexgrid.TerrainRubble, "rubble", "girder", 7},
}

func (p *Phase) findClub(attacker *world.Combatant) round.Outcome {
	rc := p.rc
	hx := rc.World.Hex(attacker.Pos)
	for _, s := range clubSources {
		if hx == nil || hx.Level(s.terrain) == 0 {
			continue
		}
		roll := rc.Roll2d6().Total
		rc.Report(report.New(report.FindClubRoll).Subject(int(attacker.ID)).Indented(2).Add(attacker.Name, s.name, s.need, roll))
		if roll >= s.need {
			attacker.Club = s.club
			rc.Report(report.New(report.ClubFound).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name, s.club))
			return round.Done()
		}
		break
	}
	rc.Report(report.New(report.ClubNotFound).Subject(int(attacker.ID)).Indented(3).Add(attacker.Name))
	return round.Done()
}

func podName(k world.PodKind) string {
	if k == world.PodAntiBattleArmor {
		return "B-pod"
	}
	return "A-pod"
}

// triggerPod fires a single-use pod at the infantry sharing the attacker's
// hex. Anti-personnel pods hit conventional infantry, B-pods battle armor.
func (p *Phase) triggerPod(a TriggerPod, attacker *world.Combatant) round.Outcome {
	rc := p.rc
	if a.Pod < 0 || a.Pod >= len(attacker.Pods) || attacker.Pods[a.Pod].Used {
		rc.Report(report.New(report.PodSpent).Subject(int(attacker.ID)).Indented(2).Add(attacker.Name))
		return round.Done()
	}
	pod := &attacker.Pods[a.Pod]
	pod.Used = true
	rc.Report(report.New(report.PodTriggered).Subject(int(attacker.ID)).Indented(2).Add(attacker.Name, podName(pod.Kind), attacker.LocName(pod.Location)))

	want := world.KindInfantry
	if pod.Kind == world.PodAntiBattleArmor {
		want = world.KindBattleArmor
	}
	for _, u := range rc.World.UnitsAt(attacker.Pos) {
		if u.ID == attacker.ID || u.Kind != want || u.Gone() {
			continue
		}
		dmg := rc.Roll1d6().Total
		rc.Report(report.New(report.PodDamage).Subject(int(u.ID)).Indented(3).Add(u.Name, dmg))
		hit := rc.Damage.RollLocation(rc, u, round.TableStandard, round.SideFront)
		hit.Type = round.DamageExplosion
		rc.Damage.Apply(rc, u, hit, dmg)
	}
	return round.Done()
}
