package world

import (
	"strings"

	"github.com/JustinWhittecar/physcombat/internal/hexgrid"
)

type MinefieldType int

const (
	MineConventional MinefieldType = iota
	MineInferno
	MineActive
	MineVibrabomb
)

var mineNames = [...]string{"conventional", "inferno", "active", "vibrabomb"}

func (t MinefieldType) String() string {
	if int(t) < len(mineNames) {
		return mineNames[t]
	}
	return "unknown"
}

// ParseMinefieldType maps a name to a minefield type.
func ParseMinefieldType(s string) (MinefieldType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range mineNames {
		if n == s {
			return MinefieldType(i), true
		}
	}
	return 0, false
}

type Minefield struct {
	ID          int
	Pos         hexgrid.HexCoord
	Type        MinefieldType
	Density     int
	Sensitivity int // vibrabomb trigger weight
	Detonated   bool
	Owner       PlayerID
	Revealed    map[PlayerID]bool
}

// RevealTo marks the field as known to p.
func (m *Minefield) RevealTo(p PlayerID) {
	if m.Revealed == nil {
		m.Revealed = make(map[PlayerID]bool)
	}
	m.Revealed[p] = true
}

// KnownTo reports whether p knows about the field. Owners always do.
func (m *Minefield) KnownTo(p PlayerID) bool {
	return p == m.Owner || m.Revealed[p]
}
