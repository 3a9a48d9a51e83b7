package round

// HitTable selects the location table an attack rolls on.
type HitTable int

const (
	TableStandard HitTable = iota
	TablePunch
	TableKick
)

func (t HitTable) String() string {
	switch t {
	case TablePunch:
		return "punch"
	case TableKick:
		return "kick"
	}
	return "standard"
}

// Side is the side of the target an attack strikes.
type Side int

const (
	SideFront Side = iota
	SideLeft
	SideRight
	SideRear
)

func (s Side) String() string {
	return [...]string{"front", "left", "right", "rear"}[s]
}

type DamageType int

const (
	DamagePhysical DamageType = iota
	DamageEnergy
	DamageExplosion
	DamageFall
)

// HitData describes where a blow lands.
type HitData struct {
	Location   int
	Rear       bool
	Type       DamageType
	DirectBlow bool
	Glancing   bool
	// PossibleTAC is set when the location roll allows a through-armor
	// critical; CritMod adds to any critical roll made for this hit.
	PossibleTAC bool
	CritMod     int
}
