// Package hexgrid implements the MegaMek-style hex board: odd-q offset
// coordinates (1-indexed XXYY), cube conversion for distance, the six
// facings, and per-hex terrain.
package hexgrid

import "fmt"

// ─── Hex Coordinates ────────────────────────────────────────────────────────
// Offset coordinates (col, row) with odd columns shifted down, converted to
// cube coordinates for distance and bearing.

type HexCoord struct {
	Col, Row int
}

func (h HexCoord) String() string { return fmt.Sprintf("%02d%02d", h.Col, h.Row) }

type CubeCoord struct {
	Q, R, S int
}

// OffsetToCube converts offset coords (odd-q layout) to cube coords.
func OffsetToCube(h HexCoord) CubeCoord {
	q := h.Col - 1
	r := h.Row - 1
	x := q
	z := r - (q-(q&1))/2
	y := -x - z
	return CubeCoord{Q: x, R: y, S: z}
}

// CubeToOffset converts cube coords back to offset coords (odd-q, 1-indexed).
func CubeToOffset(c CubeCoord) HexCoord {
	col := c.Q
	row := c.S + (c.Q-(c.Q&1))/2
	return HexCoord{Col: col + 1, Row: row + 1}
}

// Distance returns the hex distance between two offset coordinates.
func Distance(a, b HexCoord) int {
	ac := OffsetToCube(a)
	bc := OffsetToCube(b)
	return (abs(ac.Q-bc.Q) + abs(ac.R-bc.R) + abs(ac.S-bc.S)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ─── Facing & Neighbors ─────────────────────────────────────────────────────
// Facing 0-5: 0=N, 1=NE, 2=SE, 3=S, 4=SW, 5=NW (clockwise from top)

const NumFacings = 6

// NormalizeFacing folds any integer onto 0-5.
func NormalizeFacing(f int) int { return ((f % NumFacings) + NumFacings) % NumFacings }

// Opposite returns the facing pointing the other way.
func Opposite(f int) int { return NormalizeFacing(f + 3) }

// Neighbors returns the 6 adjacent hex coordinates indexed by facing.
func Neighbors(h HexCoord) [NumFacings]HexCoord {
	col := h.Col
	row := h.Row
	if col%2 == 1 {
		return [NumFacings]HexCoord{
			{col, row - 1},
			{col + 1, row},
			{col + 1, row + 1},
			{col, row + 1},
			{col - 1, row + 1},
			{col - 1, row},
		}
	}
	return [NumFacings]HexCoord{
		{col, row - 1},
		{col + 1, row - 1},
		{col + 1, row},
		{col, row + 1},
		{col - 1, row},
		{col - 1, row - 1},
	}
}

// Neighbor returns the hex adjacent to h in direction dir.
func Neighbor(h HexCoord, dir int) HexCoord {
	return Neighbors(h)[NormalizeFacing(dir)]
}

// Bearing returns which of the 6 hex directions 'to' lies in from 'from',
// using integer dot products against the cube direction vectors.
func Bearing(from, to HexCoord) int {
	if from == to {
		return 0
	}
	fc := OffsetToCube(from)
	tc := OffsetToCube(to)
	dq := tc.Q - fc.Q
	dr := tc.R - fc.R
	ds := tc.S - fc.S

	// 0(N): (0,+1,-1), 1(NE): (+1,0,-1), 2(SE): (+1,-1,0)
	// 3(S): (0,-1,+1), 4(SW): (-1,0,+1), 5(NW): (-1,+1,0)
	dirs := [NumFacings][3]int{
		{0, 1, -1}, {1, 0, -1}, {1, -1, 0},
		{0, -1, 1}, {-1, 0, 1}, {-1, 1, 0},
	}

	best := 0
	bestDot := -(1 << 30)
	for i, d := range dirs {
		dot := dq*d[0] + dr*d[1] + ds*d[2]
		if dot > bestDot {
			bestDot = dot
			best = i
		}
	}
	return best
}

// ArcType represents which arc a point is in relative to a unit's facing.
type ArcType int

const (
	ArcFront ArcType = iota
	ArcLeft
	ArcRight
	ArcRear
)

func (a ArcType) String() string {
	switch a {
	case ArcLeft:
		return "left"
	case ArcRight:
		return "right"
	case ArcRear:
		return "rear"
	default:
		return "front"
	}
}

// DetermineArc returns the arc 'target' occupies relative to a unit at
// 'pos' facing 'facing'. Forward covers three hexsides, the other arcs one.
func DetermineArc(pos HexCoord, facing int, target HexCoord) ArcType {
	diff := NormalizeFacing(Bearing(pos, target) - facing)
	switch diff {
	case 2:
		return ArcRight
	case 4:
		return ArcLeft
	case 3:
		return ArcRear
	}
	return ArcFront
}

// SideHexes returns the two hexes adjacent to both 'from' and 'to', one
// hexside either side of the line of approach.
func SideHexes(from, to HexCoord) [2]HexCoord {
	dir := Bearing(from, to)
	return [2]HexCoord{Neighbor(from, dir-1), Neighbor(from, dir+1)}
}
