// Package scenario loads a board, its units and the attacks they declared
// from a YAML file.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
	"github.com/JustinWhittecar/physcombat/internal/ingestion"
	"github.com/JustinWhittecar/physcombat/internal/physical"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// ─── File format ────────────────────────────────────────────────────────────

type Coord struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

func (c Coord) hex() hexgrid.HexCoord { return hexgrid.HexCoord{Col: c.Col, Row: c.Row} }

type HexSpec struct {
	Coord     `yaml:",inline"`
	Elevation int            `yaml:"elevation"`
	Terrain   map[string]int `yaml:"terrain"`
}

type BoardSpec struct {
	File   string    `yaml:"file"`
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	Hexes  []HexSpec `yaml:"hexes"`
}

type WeaponSpec struct {
	Name       string `yaml:"name"`
	Location   int    `yaml:"location"`
	Jammed     bool   `yaml:"jammed"`
	Autocannon bool   `yaml:"autocannon"`
}

type PodSpec struct {
	Kind     string `yaml:"kind"` // "a" or "b"
	Location int    `yaml:"location"`
}

type UnitSpec struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	MTF      string `yaml:"mtf"`
	Tons     int    `yaml:"tons"`
	Owner    int    `yaml:"owner"`
	Pos      Coord  `yaml:"pos"`
	Facing   int    `yaml:"facing"`
	Piloting int    `yaml:"piloting"`
	Gunnery  int    `yaml:"gunnery"`

	Armor     []int `yaml:"armor"`
	Rear      []int `yaml:"rear"`
	Structure []int `yaml:"structure"`
	Troopers  int   `yaml:"troopers"`
	SI        int   `yaml:"si"`

	Motive       string       `yaml:"motive"`
	Elevation    int          `yaml:"elevation"`
	Velocity     int          `yaml:"velocity"`
	Parent       int          `yaml:"parent"`
	HexesMoved   int          `yaml:"hexes_moved"`
	Jumped       bool         `yaml:"jumped"`
	JumpMP       int          `yaml:"jump_mp"`
	WalkMP       int          `yaml:"walk_mp"`
	Prone        bool         `yaml:"prone"`
	Immobile     bool         `yaml:"immobile"`
	Club         string       `yaml:"club"`
	Spikes       []int        `yaml:"spikes"`
	Pods         []PodSpec    `yaml:"pods"`
	AMS          int          `yaml:"ams_ammo"`
	Weapons      []WeaponSpec `yaml:"weapons"`
	SwarmingOn   int          `yaml:"swarming_on"`
	SelfDestruct bool         `yaml:"self_destruct"`
	Unjam        bool         `yaml:"unjam"`
}

type BuildingHexSpec struct {
	Coord  `yaml:",inline"`
	CF     int `yaml:"cf"`
	Floors int `yaml:"floors"`
}

type BuildingSpec struct {
	ID       int               `yaml:"id"`
	Name     string            `yaml:"name"`
	Class    string            `yaml:"class"`
	FuelTank bool              `yaml:"fuel_tank"`
	Hexes    []BuildingHexSpec `yaml:"hexes"`
}

type MinefieldSpec struct {
	Coord       `yaml:",inline"`
	Type        string `yaml:"type"`
	Density     int    `yaml:"density"`
	Sensitivity int    `yaml:"sensitivity"`
	Owner       int    `yaml:"owner"`
}

type ActionSpec struct {
	Attacker int    `yaml:"attacker"`
	Type     string `yaml:"type"`
	Target   int    `yaml:"target"`
	Hex      *Coord `yaml:"hex"`
	Limb     string `yaml:"limb"`
	Weapon   string `yaml:"weapon"`
	Side     string `yaml:"side"`
	Claws    int    `yaml:"claws"`
	Pod      int    `yaml:"pod"`

	// Fixed values; omitted ones are estimated and rolled.
	ToHit      *int `yaml:"to_hit"`
	Roll       int  `yaml:"roll"`
	ToHitRight *int `yaml:"to_hit_right"`
	RollRight  int  `yaml:"roll_right"`
}

// File is a scenario document.
type File struct {
	Name       string          `yaml:"name"`
	Wind       int             `yaml:"wind"`
	Options    OptionSpec      `yaml:"options"`
	Board      BoardSpec       `yaml:"board"`
	Units      []UnitSpec      `yaml:"units"`
	Buildings  []BuildingSpec  `yaml:"buildings"`
	Minefields []MinefieldSpec `yaml:"minefields"`
	Actions    []ActionSpec    `yaml:"actions"`
}

// OptionSpec holds the rules a scenario sets explicitly. A nil field leaves
// the engine's configured value alone.
type OptionSpec struct {
	GlancingBlows    *bool `yaml:"glancing_blows"`
	DirectBlows      *bool `yaml:"direct_blows"`
	EngineExplosions *bool `yaml:"engine_explosions"`
	AutoEject        *bool `yaml:"auto_eject"`
	ManualAMS        *bool `yaml:"manual_ams"`
	FallingEnds      *bool `yaml:"falling_ends_elevation"`
}

// Apply returns base with every explicitly set rule replaced.
func (o OptionSpec) Apply(base round.Options) round.Options {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.GlancingBlows, o.GlancingBlows)
	set(&base.DirectBlows, o.DirectBlows)
	set(&base.EngineExplosions, o.EngineExplosions)
	set(&base.AutoEject, o.AutoEject)
	set(&base.ManualAMS, o.ManualAMS)
	set(&base.FallingEnds, o.FallingEnds)
	return base
}

// Scenario is a loaded, validated scenario ready to resolve.
type Scenario struct {
	Name         string
	World        *world.World
	Options      round.Options
	Overrides    OptionSpec
	Declarations []physical.Declaration
}

// ─── Loading ────────────────────────────────────────────────────────────────

// LoadFile reads a scenario. Relative board and unit file paths resolve
// against the scenario's directory.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Load(bytes.NewReader(data), filepath.Dir(path))
}

// Load decodes and builds a scenario. Unknown keys are rejected.
func Load(r io.Reader, dir string) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return f.Build(dir)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}

// Build turns the document into a world and declarations.
func (f *File) Build(dir string) (*Scenario, error) {
	board, err := f.Board.build(dir)
	if err != nil {
		return nil, err
	}
	w := world.New(board)
	w.Wind = hexgrid.NormalizeFacing(f.Wind)

	for _, b := range f.Buildings {
		if err := addBuilding(w, b); err != nil {
			return nil, err
		}
	}
	for _, m := range f.Minefields {
		t, ok := world.ParseMinefieldType(m.Type)
		if !ok {
			return nil, invalid("minefield at %02d%02d: unknown type %q", m.Col, m.Row, m.Type)
		}
		if !board.InBounds(m.hex()) {
			return nil, invalid("minefield at %02d%02d is off the board", m.Col, m.Row)
		}
		w.AddMinefield(&world.Minefield{
			Pos: m.hex(), Type: t, Density: m.Density, Sensitivity: m.Sensitivity, Owner: world.PlayerID(m.Owner),
		})
	}
	for _, u := range f.Units {
		c, err := u.build(dir)
		if err != nil {
			return nil, err
		}
		if err := w.AddUnit(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
	}
	for _, c := range w.Units() {
		if c.SwarmingOn != world.NoUnit && w.Unit(c.SwarmingOn) == nil {
			return nil, invalid("unit %d swarms unknown unit %d", c.ID, c.SwarmingOn)
		}
	}

	s := &Scenario{Name: f.Name, World: w, Options: f.Options.Apply(round.Options{}), Overrides: f.Options}
	for i, a := range f.Actions {
		d, err := a.declaration()
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		s.Declarations = append(s.Declarations, d)
	}
	return s, nil
}

func (b BoardSpec) build(dir string) (*hexgrid.Board, error) {
	var board *hexgrid.Board
	switch {
	case b.File != "":
		var err error
		if board, err = hexgrid.ParseBoardFile(resolve(dir, b.File)); err != nil {
			return nil, err
		}
	case b.Width > 0 && b.Height > 0:
		board = hexgrid.NewBoard(b.Width, b.Height)
	default:
		return nil, invalid("board needs a file or a size")
	}
	for _, h := range b.Hexes {
		hx := board.Get(h.hex())
		if hx == nil {
			return nil, invalid("hex %02d%02d is off the board", h.Col, h.Row)
		}
		hx.Elevation = h.Elevation
		for name, level := range h.Terrain {
			t, ok := hexgrid.ParseTerrainType(name)
			if !ok {
				return nil, invalid("hex %02d%02d: unknown terrain %q", h.Col, h.Row, name)
			}
			hx.SetTerrain(t, level)
		}
	}
	return board, nil
}

func addBuilding(w *world.World, s BuildingSpec) error {
	if s.ID <= 0 {
		return invalid("building %q needs a positive id", s.Name)
	}
	if len(s.Hexes) == 0 {
		return invalid("building %d has no hexes", s.ID)
	}
	b := world.NewBuilding(world.BuildingID(s.ID), s.Name, world.ParseBuildingClass(s.Class))
	b.FuelTank = s.FuelTank
	for _, h := range s.Hexes {
		if !w.Board.InBounds(h.hex()) {
			return invalid("building %d: hex %02d%02d is off the board", s.ID, h.Col, h.Row)
		}
		b.AddHex(h.hex(), h.CF, h.Floors)
	}
	w.AddBuilding(b)
	return nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

// ─── Units ──────────────────────────────────────────────────────────────────

var motives = map[string]world.Motive{
	"legged":  world.MotiveLegged,
	"tracked": world.MotiveTracked,
	"wheeled": world.MotiveWheeled,
	"hover":   world.MotiveHover,
	"vtol":    world.MotiveVTOL,
	"aero":    world.MotiveAero,
}

// locationCount is how many locations a unit kind carries.
func locationCount(k world.Kind, troopers int) int {
	switch k {
	case world.KindMech:
		return world.NumMechLoc
	case world.KindTank, world.KindVTOL:
		return world.NumVehicleLoc
	case world.KindProtoMech:
		return world.NumProtoLoc
	case world.KindAero:
		return world.NumAeroLoc
	case world.KindBattleArmor:
		return troopers
	}
	return 1
}

func (s UnitSpec) build(dir string) (*world.Combatant, error) {
	id := world.UnitID(s.ID)
	var c *world.Combatant
	if s.MTF != "" {
		data, err := ingestion.ParseMTFFile(resolve(dir, s.MTF))
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", s.ID, err)
		}
		if c, err = data.Combatant(id); err != nil {
			return nil, fmt.Errorf("unit %d: %w", s.ID, err)
		}
	} else {
		kind, ok := world.ParseKind(s.Kind)
		if !ok {
			return nil, invalid("unit %d: unknown kind %q", s.ID, s.Kind)
		}
		if s.Tons <= 0 {
			return nil, invalid("unit %d: tons must be positive", s.ID)
		}
		if kind == world.KindMech {
			var armor [world.NumMechLoc]int
			var rear [3]int
			copy(armor[:], s.Armor)
			copy(rear[:], s.Rear)
			c = world.NewMech(id, s.Name, s.Tons, armor, rear)
		} else {
			if kind == world.KindBattleArmor && s.Troopers <= 0 {
				return nil, invalid("unit %d: battle armor needs troopers", s.ID)
			}
			c = world.NewCombatant(id, s.Name, kind, s.Tons, locationCount(kind, s.Troopers))
			for i := range c.Locations {
				if i < len(s.Armor) {
					c.Locations[i].Armor = world.NewPool(s.Armor[i])
				}
				if i < len(s.Structure) {
					c.Locations[i].IS = world.NewPool(s.Structure[i])
				}
			}
			if kind == world.KindInfantry && s.Troopers > 0 {
				c.Locations[world.LocTroops].IS = world.NewPool(s.Troopers)
			}
			c.SI = world.NewPool(s.SI)
		}
	}
	if s.Name != "" {
		c.Name = s.Name
	}
	if s.Motive != "" {
		m, ok := motives[strings.ToLower(s.Motive)]
		if !ok {
			return nil, invalid("unit %d: unknown motive %q", s.ID, s.Motive)
		}
		c.Motive = m
	}

	c.Owner = world.PlayerID(s.Owner)
	c.Pos = s.Pos.hex()
	c.Facing = hexgrid.NormalizeFacing(s.Facing)
	if s.Piloting > 0 {
		c.Piloting = s.Piloting
	}
	if s.Gunnery > 0 {
		c.Gunnery = s.Gunnery
	}
	c.Elevation = s.Elevation
	c.Velocity = s.Velocity
	c.Parent = world.UnitID(s.Parent)
	c.HexesMoved = s.HexesMoved
	c.Jumped = s.Jumped
	if s.JumpMP > 0 {
		c.JumpMP = s.JumpMP
	}
	if s.WalkMP > 0 {
		c.WalkMP = s.WalkMP
	}
	c.Prone = s.Prone
	c.Immobile = s.Immobile
	if s.Club != "" {
		c.Club = s.Club
	}
	for _, loc := range s.Spikes {
		l := c.Loc(loc)
		if l == nil {
			return nil, invalid("unit %d: no location %d for spikes", s.ID, loc)
		}
		l.Spikes = true
	}
	for _, p := range s.Pods {
		kind := world.PodAntiPersonnel
		if strings.EqualFold(p.Kind, "b") {
			kind = world.PodAntiBattleArmor
		}
		c.Pods = append(c.Pods, world.Pod{Kind: kind, Location: p.Location})
	}
	if s.AMS > 0 {
		c.AMS = true
		c.AMSAmmo = s.AMS
	}
	for _, wpn := range s.Weapons {
		c.Weapons = append(c.Weapons, world.Weapon{
			Name: wpn.Name, Location: wpn.Location, Jammed: wpn.Jammed, Autocannon: wpn.Autocannon,
		})
	}
	c.SwarmingOn = world.UnitID(s.SwarmingOn)
	c.SelfDestructInitiated = s.SelfDestruct
	c.UnjamRequested = s.Unjam
	return c, nil
}

// ─── Actions ────────────────────────────────────────────────────────────────

func parseLimb(s string) (physical.Limb, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return physical.LimbLeft, nil
	case "right":
		return physical.LimbRight, nil
	case "both":
		return physical.LimbBoth, nil
	}
	return 0, invalid("unknown limb %q", s)
}

func parseGrappleSide(s string) (world.GrappleSide, error) {
	switch strings.ToLower(s) {
	case "", "body":
		return world.GrappleBody, nil
	case "left":
		return world.GrappleLeft, nil
	case "right":
		return world.GrappleRight, nil
	}
	return 0, invalid("unknown grapple side %q", s)
}

func (a ActionSpec) attack() (physical.Attack, error) {
	atk := physical.Attack{Attacker: world.UnitID(a.Attacker)}
	switch {
	case a.Hex != nil && a.Target != 0:
		return atk, invalid("%s: both a target unit and a target hex", a.Type)
	case a.Hex != nil:
		atk.Target = physical.BuildingTarget(a.Hex.hex())
	case a.Target != 0:
		atk.Target = physical.UnitTarget(world.UnitID(a.Target))
	default:
		// self-targeted: pods, club search, charges laid in place
		atk.Target = physical.UnitTarget(atk.Attacker)
	}
	return atk, nil
}

func (a ActionSpec) action() (physical.Action, error) {
	atk, err := a.attack()
	if err != nil {
		return nil, err
	}
	limb, err := parseLimb(a.Limb)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(a.Type) {
	case "punch":
		return physical.Punch{Attack: atk, Arm: limb}, nil
	case "kick":
		return physical.Kick{Attack: atk, Leg: limb}, nil
	case "club":
		return physical.Club{Attack: atk, Weapon: a.Weapon}, nil
	case "push":
		return physical.Push{Attack: atk}, nil
	case "trip":
		return physical.Trip{Attack: atk}, nil
	case "grapple":
		side, err := parseGrappleSide(a.Side)
		if err != nil {
			return nil, err
		}
		return physical.Grapple{Attack: atk, Side: side}, nil
	case "break grapple", "break_grapple":
		return physical.BreakGrapple{Attack: atk}, nil
	case "charge":
		return physical.Charge{Attack: atk}, nil
	case "airmech ram", "airmech_ram":
		return physical.AirmechRam{Attack: atk}, nil
	case "dfa", "death from above":
		return physical.DFA{Attack: atk}, nil
	case "ram":
		return physical.Ram{Attack: atk}, nil
	case "jump jet", "jump_jet":
		return physical.JumpJet{Attack: atk, Leg: limb}, nil
	case "thrash":
		return physical.Thrash{Attack: atk}, nil
	case "vibroclaw":
		return physical.Vibroclaw{Attack: atk, Claws: a.Claws}, nil
	case "brush off", "brush_off":
		return physical.BrushOff{Attack: atk, Arm: limb}, nil
	case "protomech", "proto":
		return physical.ProtoAttack{Attack: atk}, nil
	case "telemissile":
		return physical.TeleMissile{Attack: atk}, nil
	case "lay explosives", "lay_explosives", "clear minefield", "clear_minefield",
		"detonate explosives", "detonate_explosives", "inferno":
		return a.hexAction(atk)
	case "find club", "find_club":
		return physical.FindClub{Attack: atk}, nil
	case "trigger pod", "trigger_pod":
		return physical.TriggerPod{Attack: atk, Pod: a.Pod}, nil
	}
	return nil, invalid("unknown action %q", a.Type)
}

// hexAction builds the actions aimed at a hex rather than a unit.
func (a ActionSpec) hexAction(atk physical.Attack) (physical.Action, error) {
	if a.Hex == nil {
		return nil, invalid("%s needs a hex", a.Type)
	}
	atk.Target = physical.HexTarget(a.Hex.hex())
	switch strings.ReplaceAll(strings.ToLower(a.Type), "_", " ") {
	case "lay explosives":
		return physical.LayExplosives{Attack: atk}, nil
	case "clear minefield":
		return physical.ClearMinefield{Attack: atk}, nil
	case "detonate explosives":
		return physical.DetonateExplosives{Attack: atk}, nil
	}
	return physical.Inferno{Attack: atk}, nil
}

func (a ActionSpec) declaration() (physical.Declaration, error) {
	act, err := a.action()
	if err != nil {
		return physical.Declaration{}, err
	}
	d := physical.Declaration{Action: act, Roll: a.Roll, RollRight: a.RollRight}
	if a.ToHit != nil {
		d.ToHit = &physical.ToHit{Value: *a.ToHit, Desc: "fixed"}
	}
	if a.ToHitRight != nil {
		d.ToHitR = &physical.ToHit{Value: *a.ToHitRight, Desc: "fixed"}
	}
	return d, nil
}

// ─── Resolution ─────────────────────────────────────────────────────────────

// Phase builds a round context over the scenario's world and snapshots its
// declarations into a physical phase ready to run.
func (s *Scenario) Phase(src dice.Source, log *zap.Logger) (*physical.Phase, error) {
	rc := round.New(s.World, src, s.Options)
	if log != nil {
		rc.Log = log.With(zap.String("round", rc.ID.String()), zap.String("scenario", s.Name))
	}
	p := physical.NewPhase(rc)
	if err := p.Preprocess(s.Declarations); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return p, nil
}
