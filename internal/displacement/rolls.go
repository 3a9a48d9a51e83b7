package displacement

import (
	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── End-of-phase rolls ─────────────────────────────────────────────────────

// autoFailReason returns why u fails every piloting roll, or "".
func autoFailReason(u *world.Combatant) string {
	switch {
	case u.Unconscious:
		return "pilot unconscious"
	case u.PilotHits >= 6:
		return "pilot dead"
	case u.GyroHits >= 2:
		return "gyro destroyed"
	}
	return ""
}

// ResolvePilotingRolls drains the piloting roll queue. Rolls are grouped per
// unit in the order each unit first appears; a unit's first failure makes it
// fall and discards its remaining rolls.
func (e Engine) ResolvePilotingRolls(rc *round.Context) {
	queued := rc.TakePSRs()
	var order []world.UnitID
	byUnit := make(map[world.UnitID][]round.PSR)
	for _, p := range queued {
		if _, seen := byUnit[p.Unit]; !seen {
			order = append(order, p.Unit)
		}
		byUnit[p.Unit] = append(byUnit[p.Unit], p)
	}

	for _, id := range order {
		u := rc.World.Unit(id)
		if u == nil || u.Gone() || u.Kind != world.KindMech || u.Prone {
			continue
		}
		rolls := byUnit[id]
		for i, p := range rolls {
			if !e.pilotingRoll(rc, u, p) {
				if left := len(rolls) - i - 1; left > 0 {
					rc.Report(report.New(report.PSRsDropped).Subject(int(u.ID)).Indented(3).Add(u.Name, left))
				}
				e.Fall(rc, u, 0, p.Reason)
				break
			}
		}
	}
}

func (e Engine) pilotingRoll(rc *round.Context, u *world.Combatant, p round.PSR) bool {
	if reason := autoFailReason(u); reason != "" {
		rc.Report(report.New(report.PSRAutoFail).Subject(int(u.ID)).Indented(2).Add(u.Name, reason))
		return false
	}
	target := u.Piloting + u.PSRPreexistingMod() + p.Mod
	roll := dice.Roll2d6(rc.Dice)
	rc.Report(report.New(report.PSRRoll).Subject(int(u.ID)).Indented(2).Add(u.Name, p.Reason, target, roll))
	if roll >= target {
		rc.Report(report.New(report.PSRPassed).Subject(int(u.ID)).Indented(3).Add(u.Name))
		return true
	}
	rc.Report(report.New(report.PSRFailed).Subject(int(u.ID)).Indented(3).Add(u.Name))
	return false
}

// ResolveControlRolls drains the control roll queue. Each failure costs an
// airborne unit one level of elevation; reaching the ground is a crash.
func (e Engine) ResolveControlRolls(rc *round.Context) {
	for _, c := range rc.TakeControlRolls() {
		u := rc.World.Unit(c.Unit)
		if u == nil || u.Gone() {
			continue
		}
		if !u.Airborne() {
			// Ground units that lost their footing roll piloting instead.
			if u.Kind == world.KindMech && !u.Prone && !e.pilotingRoll(rc, u, round.PSR{Unit: u.ID, Reason: c.Reason, Mod: c.Mod}) {
				e.Fall(rc, u, 0, c.Reason)
			}
			continue
		}
		target := u.Piloting + c.Mod + u.SensorHits
		roll := dice.Roll2d6(rc.Dice)
		rc.Report(report.New(report.ControlRoll).Subject(int(u.ID)).Indented(2).Add(u.Name, c.Reason, target, roll))
		if roll >= target && !u.Unconscious {
			continue
		}
		u.Elevation--
		if rc.Options.FallingEnds {
			u.Elevation = 0
		}
		rc.Report(report.New(report.ControlFailed).Subject(int(u.ID)).Indented(3).Add(u.Name, u.Elevation))
		if u.Elevation <= 0 {
			u.Elevation = 0
			rc.Damage.Crash(rc, u)
		}
	}
}
