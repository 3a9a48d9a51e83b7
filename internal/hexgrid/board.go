package hexgrid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ─── Terrain ────────────────────────────────────────────────────────────────

type TerrainType int

const (
	TerrainWoods    TerrainType = iota // level 1=light, 2=heavy
	TerrainWater                       // level = depth
	TerrainRough                       // level 1 or 2
	TerrainPavement
	TerrainRoad
	TerrainBuilding // level = CF class (1-4)
	TerrainSand
	TerrainSwamp
	TerrainMud
	TerrainMagma  // 1=crust, 2=liquid
	TerrainRubble
	TerrainFire   // 1=normal, 2=inferno
	TerrainSmoke  // 1=light, 2=heavy
	TerrainIce
	TerrainLimbs  // severed arms/legs lying in the hex
	TerrainFuelTank
)

var terrainNames = map[string]TerrainType{
	"woods":     TerrainWoods,
	"water":     TerrainWater,
	"rough":     TerrainRough,
	"pavement":  TerrainPavement,
	"road":      TerrainRoad,
	"building":  TerrainBuilding,
	"sand":      TerrainSand,
	"swamp":     TerrainSwamp,
	"mud":       TerrainMud,
	"magma":     TerrainMagma,
	"rubble":    TerrainRubble,
	"fire":      TerrainFire,
	"smoke":     TerrainSmoke,
	"ice":       TerrainIce,
	"arms":      TerrainLimbs,
	"legs":      TerrainLimbs,
	"fuel_tank": TerrainFuelTank,
}

// ParseTerrainType maps a board-file terrain name to its type.
func ParseTerrainType(name string) (TerrainType, bool) {
	t, ok := terrainNames[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

type TerrainFeature struct {
	Type  TerrainType
	Level int
}

type Hex struct {
	Coord     HexCoord
	Elevation int
	Terrain   []TerrainFeature
}

// HasTerrain reports whether the hex carries t and at what level.
func (h *Hex) HasTerrain(t TerrainType) (bool, int) {
	if h == nil {
		return false, 0
	}
	for _, f := range h.Terrain {
		if f.Type == t {
			return true, f.Level
		}
	}
	return false, 0
}

// Level returns the level of t, or 0 when absent.
func (h *Hex) Level(t TerrainType) int {
	_, lvl := h.HasTerrain(t)
	return lvl
}

// SetTerrain adds t or overwrites its level.
func (h *Hex) SetTerrain(t TerrainType, level int) {
	for i := range h.Terrain {
		if h.Terrain[i].Type == t {
			h.Terrain[i].Level = level
			return
		}
	}
	h.Terrain = append(h.Terrain, TerrainFeature{Type: t, Level: level})
}

// RemoveTerrain drops t from the hex.
func (h *Hex) RemoveTerrain(t TerrainType) {
	out := h.Terrain[:0]
	for _, f := range h.Terrain {
		if f.Type != t {
			out = append(out, f)
		}
	}
	h.Terrain = out
}

// Surface returns the elevation a ground unit stands at: the floor of the
// hex, lowered by water depth.
func (h *Hex) Surface() int {
	return h.Elevation - h.Level(TerrainWater)
}

// ─── Board ──────────────────────────────────────────────────────────────────

type Board struct {
	Width, Height int
	Grid          []Hex // flat 2D grid: (col-1)*Height + (row-1)
}

// NewBoard allocates a board with every in-bounds hex present at elevation 0.
func NewBoard(w, h int) *Board {
	b := &Board{Width: w, Height: h, Grid: make([]Hex, w*h)}
	for col := 1; col <= w; col++ {
		for row := 1; row <= h; row++ {
			b.Grid[(col-1)*h+(row-1)] = Hex{Coord: HexCoord{Col: col, Row: row}}
		}
	}
	return b
}

func (b *Board) InBounds(h HexCoord) bool {
	return h.Col >= 1 && h.Col <= b.Width && h.Row >= 1 && h.Row <= b.Height
}

// Get returns the hex at h, or nil when out of bounds.
func (b *Board) Get(h HexCoord) *Hex {
	if !b.InBounds(h) {
		return nil
	}
	return &b.Grid[(h.Col-1)*b.Height+(h.Row-1)]
}

// ─── Board Parser ───────────────────────────────────────────────────────────

// ParseBoardFile reads a MegaMek .board file.
func ParseBoardFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board: %w", err)
	}
	defer f.Close()
	return ParseBoard(f)
}

// ParseBoard reads the .board text format:
//
//	size 16 17
//	hex 0101 0 "woods:1;water:2" ""
//	end
func ParseBoard(r io.Reader) (*Board, error) {
	var board *Board
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line == "end" {
			continue
		}

		if strings.HasPrefix(line, "size ") {
			parts := strings.Fields(line)
			if len(parts) < 3 {
				return nil, fmt.Errorf("malformed size line %q", line)
			}
			w, errW := strconv.Atoi(parts[1])
			h, errH := strconv.Atoi(parts[2])
			if errW != nil || errH != nil || w <= 0 || h <= 0 {
				return nil, fmt.Errorf("malformed size line %q", line)
			}
			board = NewBoard(w, h)
			continue
		}

		if strings.HasPrefix(line, "hex ") {
			if board == nil {
				return nil, fmt.Errorf("hex line before size: %q", line)
			}
			parseHexLine(board, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan board: %w", err)
	}
	if board == nil {
		return nil, fmt.Errorf("board has no size line")
	}
	return board, nil
}

func parseHexLine(board *Board, line string) {
	// Format: hex XXYY elevation "terrain;terrain" "theme"
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return
	}

	coord := parts[1]
	if len(coord) != 4 {
		return
	}
	col, _ := strconv.Atoi(coord[:2])
	row, _ := strconv.Atoi(coord[2:])
	hex := board.Get(HexCoord{Col: col, Row: row})
	if hex == nil {
		return
	}
	hex.Elevation, _ = strconv.Atoi(parts[2])
	hex.Terrain = nil

	if len(parts) >= 4 {
		terrainStr := strings.Trim(parts[3], "\"")
		for _, feat := range strings.Split(terrainStr, ";") {
			if tf, ok := parseTerrainFeature(feat); ok {
				hex.Terrain = append(hex.Terrain, tf)
			}
		}
	}
}

func parseTerrainFeature(s string) (TerrainFeature, bool) {
	// Format: "type:level:extra" or "type:level"
	parts := strings.Split(strings.TrimSpace(s), ":")
	if parts[0] == "" {
		return TerrainFeature{}, false
	}
	t, ok := ParseTerrainType(parts[0])
	if !ok {
		// ground_fluff, foliage_elev, bridge, etc. are cosmetic
		return TerrainFeature{}, false
	}
	level := 1
	if len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			level = n
		}
	}
	return TerrainFeature{Type: t, Level: level}, true
}
