// Package displacement moves units between hexes as a result of attacks,
// falls and collisions, and resolves the piloting and control rolls queued
// during a phase.
package displacement

import (
	"github.com/JustinWhittecar/physcombat/internal/damage"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

type Engine struct{}

func New() Engine { return Engine{} }

var _ round.Displacer = Engine{}

// Displace forces u one hex in direction dir.
func (e Engine) Displace(rc *round.Context, u *world.Combatant, dir int, reason string) round.Outcome {
	to := hexgrid.Neighbor(u.Pos, dir)
	if !rc.World.IsLegalDisplacement(u, u.Pos, dir) {
		rc.Report(report.New(report.DisplaceBlocked).Subject(int(u.ID)).Indented(3).Add(u.Name, to.String()))
		return round.Done()
	}
	return e.displace(rc, u, to, dir)
}

// MoveTo forces u into an arbitrary hex, chaining through any unit already
// there in the direction of travel.
func (e Engine) MoveTo(rc *round.Context, u *world.Combatant, to hexgrid.HexCoord) round.Outcome {
	if u.Pos == to {
		e.enter(rc, u, to)
		return round.Done()
	}
	if !rc.World.Board.InBounds(to) {
		rc.Report(report.New(report.DisplaceBlocked).Subject(int(u.ID)).Indented(3).Add(u.Name, to.String()))
		return round.Done()
	}
	return e.displace(rc, u, to, hexgrid.Bearing(u.Pos, to))
}

func (e Engine) displace(rc *round.Context, u *world.Combatant, to hexgrid.HexCoord, dir int) round.Outcome {
	from := u.Pos
	cancelDisplacementAttack(rc, u)

	if !u.Airborne() {
		if drop := rc.World.SurfaceAt(from) - rc.World.SurfaceAt(to); drop >= 2 {
			return e.FallInto(rc, u, to, drop)
		}
	}

	occupant := rc.World.StackingViolation(u, to)
	if occupant == nil {
		e.place(rc, u, from, to)
		return round.Done()
	}
	return e.domino(rc, occupant, from, dir).Then(func() round.Outcome {
		if rc.World.StackingViolation(u, to) != nil {
			rc.Report(report.New(report.DisplaceBlocked).Subject(int(u.ID)).Indented(3).Add(u.Name, to.String()))
			return round.Done()
		}
		e.place(rc, u, from, to)
		return round.Done()
	})
}

// domino clears occupant out of the way of a unit arriving from 'from'. Its
// owner may step aside into a free hex; otherwise it is pushed on in the same
// direction and must make a piloting roll.
func (e Engine) domino(rc *round.Context, occupant *world.Combatant, from hexgrid.HexCoord, dir int) round.Outcome {
	options := freeHexesAround(rc.World, occupant, occupant.Pos, from)
	chain := func() round.Outcome {
		rc.Report(report.New(report.DominoChain).Subject(int(occupant.ID)).Indented(3).Add(occupant.Name))
		rc.QueuePSR(occupant, "domino effect", 0)
		d, ok := chainDirection(rc.World, occupant, dir, from)
		if !ok {
			damage.Destroy(rc, occupant, "impossible displacement")
			return round.Done()
		}
		return e.Displace(rc, occupant, d, "domino effect")
	}
	if len(options) == 0 || occupant.Immobile || occupant.Prone {
		return chain()
	}

	rc.Report(report.New(report.DominoAsk).Subject(int(occupant.ID)).Indented(3).Add(occupant.Name))
	req := round.Request{
		Kind:   round.RequestDomino,
		Unit:   occupant.ID,
		Owner:  occupant.Owner,
		Hexes:  options,
		Prompt: "step aside to avoid being displaced",
	}
	return round.Ask(req, func(a round.Answer) round.Outcome {
		if a.Choice < 0 || a.Choice >= len(options) {
			return chain()
		}
		dest := options[a.Choice]
		rc.Report(report.New(report.DominoStepAside).Subject(int(occupant.ID)).Indented(3).
			Add(occupant.Name, dest.String()))
		e.place(rc, occupant, occupant.Pos, dest)
		return round.Done()
	})
}

// chainDirection picks the direction a chained unit is pushed in: dir when
// legal, otherwise the nearest legal turn away from it. The hex the push
// came from is never chosen.
func chainDirection(w *world.World, u *world.Combatant, dir int, from hexgrid.HexCoord) (int, bool) {
	for _, turn := range []int{0, 1, -1, 2, -2, 3} {
		d := hexgrid.NormalizeFacing(dir + turn)
		if hexgrid.Neighbor(u.Pos, d) == from {
			continue
		}
		if w.IsLegalDisplacement(u, u.Pos, d) {
			return d, true
		}
	}
	return 0, false
}

// freeHexesAround lists the hexes adjacent to center, in facing order, that
// u could be moved into without a fall or a further displacement. 'exclude'
// is skipped.
func freeHexesAround(w *world.World, u *world.Combatant, center, exclude hexgrid.HexCoord) []hexgrid.HexCoord {
	var out []hexgrid.HexCoord
	for dir := 0; dir < hexgrid.NumFacings; dir++ {
		h := hexgrid.Neighbor(center, dir)
		if h == exclude || !w.IsLegalDisplacement(u, center, dir) {
			continue
		}
		if w.SurfaceAt(center)-w.SurfaceAt(h) >= 2 {
			continue
		}
		if w.StackingViolation(u, h) != nil {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (e Engine) place(rc *round.Context, u *world.Combatant, from, to hexgrid.HexCoord) {
	u.Pos = to
	rc.Report(report.New(report.Displaced).Subject(int(u.ID)).Indented(3).Add(u.Name, from.String(), to.String()))
	e.enter(rc, u, to)
}

// enter applies the consequences of arriving in a hex: minefields and the
// weight a building must bear.
func (e Engine) enter(rc *round.Context, u *world.Combatant, to hexgrid.HexCoord) {
	if rc.Hazards == nil {
		return
	}
	rc.Hazards.EnterHex(rc, u)
	if b := rc.World.BuildingAt(to); b != nil {
		rc.Hazards.CheckCollapse(rc, b, to)
	}
}

// cancelDisplacementAttack drops a pending charge or DFA of a unit that has
// been moved before it could resolve.
func cancelDisplacementAttack(rc *round.Context, u *world.Combatant) {
	if u.DisplacementAttack == nil {
		return
	}
	u.DisplacementAttack = nil
	rc.Report(report.New(report.DisplaceCancel).Subject(int(u.ID)).Indented(3).Add(u.Name))
}
