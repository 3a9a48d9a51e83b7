package world

import "strconv"

// ─── Location constants ─────────────────────────────────────────────────────

// Mech locations.
const (
	LocHD = 0
	LocCT = 1
	LocLT = 2
	LocRT = 3
	LocLA = 4
	LocRA = 5
	LocLL = 6
	LocRL = 7

	NumMechLoc = 8
)

// Vehicle locations. VTOLs use LocRotor in place of a turret.
const (
	LocBody   = 0
	LocFront  = 1
	LocRight  = 2
	LocLeft   = 3
	LocRear   = 4
	LocTurret = 5
	LocRotor  = 5

	NumVehicleLoc = 6
)

// ProtoMech locations.
const (
	LocProtoHead    = 0
	LocProtoTorso   = 1
	LocProtoRArm    = 2
	LocProtoLArm    = 3
	LocProtoLegs    = 4
	LocProtoMainGun = 5

	NumProtoLoc = 6
)

// Aerospace arcs. Telemissiles carry a single LocNose.
const (
	LocNose  = 0
	LocLWing = 1
	LocRWing = 2
	LocAft   = 3

	NumAeroLoc = 4
)

// LocTroops is the single location of conventional infantry.
const LocTroops = 0

// NoLocation marks "no transfer" in location tables.
const NoLocation = -1

var mechLocNames = [NumMechLoc]string{"HD", "CT", "LT", "RT", "LA", "RA", "LL", "RL"}
var vehicleLocNames = [NumVehicleLoc]string{"Body", "Front", "Right", "Left", "Rear", "Turret"}
var vtolLocNames = [NumVehicleLoc]string{"Body", "Front", "Right", "Left", "Rear", "Rotor"}
var protoLocNames = [NumProtoLoc]string{"Head", "Torso", "RArm", "LArm", "Legs", "MainGun"}
var aeroLocNames = [NumAeroLoc]string{"Nose", "LWing", "RWing", "Aft"}

// mechTransfer is where damage goes when a mech location is destroyed.
var mechTransfer = [NumMechLoc]int{
	NoLocation, NoLocation, LocCT, LocCT, LocLT, LocRT, LocLT, LocRT,
}

// IS by tonnage (HD, CT, LT, RT, LA, RA, LL, RL).
var mechISTable = map[int][NumMechLoc]int{
	20:  {3, 6, 5, 5, 3, 3, 4, 4},
	25:  {3, 8, 6, 6, 4, 4, 6, 6},
	30:  {3, 10, 7, 7, 5, 5, 7, 7},
	35:  {3, 11, 8, 8, 6, 6, 8, 8},
	40:  {3, 12, 10, 10, 6, 6, 10, 10},
	45:  {3, 14, 11, 11, 7, 7, 11, 11},
	50:  {3, 16, 12, 12, 8, 8, 12, 12},
	55:  {3, 18, 13, 13, 9, 9, 13, 13},
	60:  {3, 20, 14, 14, 10, 10, 14, 14},
	65:  {3, 21, 15, 15, 10, 10, 15, 15},
	70:  {3, 22, 15, 15, 11, 11, 15, 15},
	75:  {3, 23, 16, 16, 12, 12, 16, 16},
	80:  {3, 25, 17, 17, 13, 13, 17, 17},
	85:  {3, 27, 18, 18, 14, 14, 18, 18},
	90:  {3, 29, 19, 19, 15, 15, 19, 19},
	95:  {3, 30, 20, 20, 16, 16, 20, 20},
	100: {3, 31, 21, 21, 17, 17, 21, 21},
}

// MechIS returns the standard internal structure for a tonnage, rounding
// down to the nearest table entry.
func MechIS(tons int) [NumMechLoc]int {
	if v, ok := mechISTable[tons]; ok {
		return v
	}
	best := 20
	for t := range mechISTable {
		if t <= tons && t > best {
			best = t
		}
	}
	return mechISTable[best]
}

// LocationNames returns the display names of a unit kind's locations. Battle
// armor names are generated per trooper.
func LocationNames(kind Kind, n int) []string {
	switch kind {
	case KindMech:
		return mechLocNames[:]
	case KindTank:
		return vehicleLocNames[:]
	case KindVTOL:
		return vtolLocNames[:]
	case KindProtoMech:
		return protoLocNames[:]
	case KindAero:
		return aeroLocNames[:]
	case KindTeleMissile:
		return []string{"Body"}
	case KindInfantry:
		return []string{"Troops"}
	}
	names := make([]string, n)
	for i := range names {
		names[i] = "Trooper " + strconv.Itoa(i+1)
	}
	return names
}

// IsLeg reports whether loc is a mech leg.
func IsLeg(loc int) bool { return loc == LocLL || loc == LocRL }

// IsArm reports whether loc is a mech arm.
func IsArm(loc int) bool { return loc == LocLA || loc == LocRA }

// IsTorso reports whether loc is a mech torso location with rear armor.
func IsTorso(loc int) bool { return loc == LocCT || loc == LocLT || loc == LocRT }
