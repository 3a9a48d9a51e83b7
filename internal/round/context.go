// Package round carries the per-phase resolution state shared by the damage,
// displacement, hazard and physical-attack engines.
package round

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// Options are the optional rules in force for a phase.
type Options struct {
	GlancingBlows    bool `mapstructure:"glancing_blows" yaml:"glancing_blows"`
	DirectBlows      bool `mapstructure:"direct_blows" yaml:"direct_blows"`
	EngineExplosions bool `mapstructure:"engine_explosions" yaml:"engine_explosions"`
	AutoEject        bool `mapstructure:"auto_eject" yaml:"auto_eject"`
	ManualAMS        bool `mapstructure:"manual_ams" yaml:"manual_ams"`

	// FallingEnds drops an airborne unit straight to the ground on a failed
	// control roll instead of one level.
	FallingEnds bool `mapstructure:"falling_ends_elevation" yaml:"falling_ends_elevation"`
}

// PSR is a queued piloting skill roll.
type PSR struct {
	Unit   world.UnitID
	Reason string
	Mod    int
}

// ControlRoll is a queued control roll for an airborne unit.
type ControlRoll struct {
	Unit   world.UnitID
	Reason string
	Mod    int
}

// Damager applies damage to units.
type Damager interface {
	Apply(rc *Context, t *world.Combatant, hit HitData, dmg int)
	ApplyClusters(rc *Context, t *world.Combatant, total, size int, table HitTable, side Side, typ DamageType)
	RollLocation(rc *Context, t *world.Combatant, table HitTable, side Side) HitData
	Motive(rc *Context, t *world.Combatant, mod int)
	Crash(rc *Context, t *world.Combatant)
	PilotHit(rc *Context, t *world.Combatant, n int, reason string)
	ExplodeEngine(rc *Context, t *world.Combatant)
}

// Displacer moves units and resolves falls.
type Displacer interface {
	Displace(rc *Context, u *world.Combatant, dir int, reason string) Outcome
	MoveTo(rc *Context, u *world.Combatant, to hexgrid.HexCoord) Outcome
	Fall(rc *Context, u *world.Combatant, levels int, reason string)
	FallInto(rc *Context, u *world.Combatant, to hexgrid.HexCoord, levels int) Outcome
	ResolvePilotingRolls(rc *Context)
	ResolveControlRolls(rc *Context)
}

// Hazards resolves buildings, minefields and fire.
type Hazards interface {
	EnterHex(rc *Context, u *world.Combatant)
	DamageBuilding(rc *Context, b *world.Building, h hexgrid.HexCoord, dmg int)
	DamageShelter(rc *Context, b *world.Building, h hexgrid.HexCoord, dmg int)
	CheckCollapse(rc *Context, b *world.Building, h hexgrid.HexCoord)
	Ignite(rc *Context, h hexgrid.HexCoord, inferno bool)
	SetBurning(rc *Context, u *world.Combatant)
	DetonateExplosives(rc *Context, b *world.Building, h hexgrid.HexCoord)
	Reveal(rc *Context, m *world.Minefield, p world.PlayerID)
	Clear(rc *Context, u *world.Combatant, m *world.Minefield)
	EndPhase(rc *Context)
}

// Context is the explicit state of one resolution phase. It is not safe for
// concurrent use; a phase resolves on a single goroutine.
type Context struct {
	ID      uuid.UUID
	World   *world.World
	Dice    dice.Source
	Reports *report.Sink
	Options Options
	Log     *zap.Logger

	Damage   Damager
	Displace Displacer
	Hazards  Hazards

	psrs     []PSR
	controls []ControlRoll
}

// New returns a context with a fresh id, an empty report sink and a no-op
// logger. Engines are wired by the caller.
func New(w *world.World, src dice.Source, opts Options) *Context {
	return &Context{
		ID:      uuid.New(),
		World:   w,
		Dice:    src,
		Reports: &report.Sink{},
		Options: opts,
		Log:     zap.NewNop(),
	}
}

// Report appends to the phase's report log.
func (rc *Context) Report(rs ...report.Report) {
	rc.Reports.Append(rs...)
}

func (rc *Context) Roll2d6() dice.Roll { return rc.Dice.RollD6(2) }
func (rc *Context) Roll1d6() dice.Roll { return rc.Dice.RollD6(1) }

// ─── Pending rolls ──────────────────────────────────────────────────────────

// QueuePSR records a piloting roll for end-of-phase resolution.
func (rc *Context) QueuePSR(u *world.Combatant, reason string, mod int) {
	if u == nil || u.Gone() {
		return
	}
	rc.psrs = append(rc.psrs, PSR{Unit: u.ID, Reason: reason, Mod: mod})
	rc.Report(report.New(report.PSRQueued).Subject(int(u.ID)).Indented(3).Add(u.Name, reason))
}

// QueueControlRoll records a control roll for end-of-phase resolution.
func (rc *Context) QueueControlRoll(u *world.Combatant, reason string, mod int) {
	if u == nil || u.Gone() {
		return
	}
	rc.controls = append(rc.controls, ControlRoll{Unit: u.ID, Reason: reason, Mod: mod})
}

// PendingPSRs returns the queued piloting rolls in enqueue order.
func (rc *Context) PendingPSRs() []PSR { return append([]PSR(nil), rc.psrs...) }

// PendingControlRolls returns the queued control rolls in enqueue order.
func (rc *Context) PendingControlRolls() []ControlRoll {
	return append([]ControlRoll(nil), rc.controls...)
}

// TakePSRs drains the piloting roll queue.
func (rc *Context) TakePSRs() []PSR {
	out := rc.psrs
	rc.psrs = nil
	return out
}

// TakeControlRolls drains the control roll queue.
func (rc *Context) TakeControlRolls() []ControlRoll {
	out := rc.controls
	rc.controls = nil
	return out
}

// DropPSRs removes every queued piloting roll for a unit.
func (rc *Context) DropPSRs(id world.UnitID) {
	out := rc.psrs[:0]
	for _, p := range rc.psrs {
		if p.Unit != id {
			out = append(out, p)
		}
	}
	rc.psrs = out
}

// EndPhase clears the pending-roll queues.
func (rc *Context) EndPhase() {
	rc.psrs = nil
	rc.controls = nil
}
