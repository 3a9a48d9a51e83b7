package damage

import (
	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

// ─── Mech hit tables (2d6, index 0-10 for rolls 2-12) ───────────────────────

var mechFrontTable = [11]int{
	world.LocCT, world.LocRA, world.LocRA, world.LocRL, world.LocRT, world.LocCT,
	world.LocLT, world.LocLL, world.LocLA, world.LocLA, world.LocHD,
}

var mechLeftTable = [11]int{
	world.LocLT, world.LocLL, world.LocLA, world.LocLA, world.LocLL, world.LocLT,
	world.LocCT, world.LocRT, world.LocRA, world.LocRL, world.LocHD,
}

var mechRightTable = [11]int{
	world.LocRT, world.LocRL, world.LocRA, world.LocRA, world.LocRL, world.LocRT,
	world.LocCT, world.LocLT, world.LocLA, world.LocLL, world.LocHD,
}

// Punch tables (1d6, index 0-5).
var mechPunchFront = [6]int{world.LocLA, world.LocLT, world.LocCT, world.LocRT, world.LocRA, world.LocHD}
var mechPunchLeft = [6]int{world.LocLT, world.LocLT, world.LocCT, world.LocLA, world.LocLA, world.LocHD}
var mechPunchRight = [6]int{world.LocRT, world.LocRT, world.LocCT, world.LocRA, world.LocRA, world.LocHD}

// ─── Vehicle hit tables (2d6) ───────────────────────────────────────────────

var vehicleFrontTable = [11]int{
	world.LocFront, world.LocFront, world.LocFront, world.LocRight, world.LocFront, world.LocFront,
	world.LocFront, world.LocLeft, world.LocTurret, world.LocTurret, world.LocTurret,
}

var vehicleRearTable = [11]int{
	world.LocRear, world.LocRear, world.LocRear, world.LocLeft, world.LocRear, world.LocRear,
	world.LocRear, world.LocRight, world.LocTurret, world.LocTurret, world.LocTurret,
}

var vehicleLeftTable = [11]int{
	world.LocLeft, world.LocLeft, world.LocLeft, world.LocFront, world.LocLeft, world.LocLeft,
	world.LocLeft, world.LocRear, world.LocTurret, world.LocTurret, world.LocTurret,
}

var vehicleRightTable = [11]int{
	world.LocRight, world.LocRight, world.LocRight, world.LocFront, world.LocRight, world.LocRight,
	world.LocRight, world.LocRear, world.LocTurret, world.LocTurret, world.LocTurret,
}

var protoTable = [11]int{
	world.LocProtoMainGun, world.LocProtoLArm, world.LocProtoLegs, world.LocProtoLArm,
	world.LocProtoLegs, world.LocProtoTorso, world.LocProtoLegs, world.LocProtoRArm,
	world.LocProtoLegs, world.LocProtoRArm, world.LocProtoHead,
}

// RollLocation rolls where a blow lands on t.
func (Engine) RollLocation(rc *round.Context, t *world.Combatant, table round.HitTable, side round.Side) round.HitData {
	hit := round.HitData{Type: round.DamagePhysical}
	switch t.Kind {
	case world.KindMech:
		hit = rollMechLocation(rc.Dice, table, side)
	case world.KindTank, world.KindVTOL:
		hit = rollVehicleLocation(rc.Dice, t, side)
	case world.KindProtoMech:
		roll := dice.Roll2d6(rc.Dice)
		hit.Location = protoTable[roll-2]
		if hit.Location == world.LocProtoMainGun && t.Loc(world.LocProtoMainGun).IS.Max() == 0 {
			hit.Location = world.LocProtoTorso
		}
	case world.KindBattleArmor:
		hit.Location = rollTrooper(rc.Dice, t)
	case world.KindAero:
		hit.Location = [...]int{world.LocNose, world.LocLWing, world.LocRWing, world.LocAft}[side]
	default:
		hit.Location = 0
	}
	return hit
}

func rollMechLocation(src dice.Source, table round.HitTable, side round.Side) round.HitData {
	hit := round.HitData{Type: round.DamagePhysical, Rear: side == round.SideRear}
	switch table {
	case round.TablePunch:
		roll := dice.Roll1d6(src) - 1
		switch side {
		case round.SideLeft:
			hit.Location = mechPunchLeft[roll]
		case round.SideRight:
			hit.Location = mechPunchRight[roll]
		default:
			hit.Location = mechPunchFront[roll]
		}
	case round.TableKick:
		switch side {
		case round.SideLeft:
			hit.Location = world.LocLL
		case round.SideRight:
			hit.Location = world.LocRL
		default:
			if dice.Roll1d6(src) <= 3 {
				hit.Location = world.LocRL
			} else {
				hit.Location = world.LocLL
			}
		}
	default:
		roll := dice.Roll2d6(src)
		switch side {
		case round.SideLeft:
			hit.Location = mechLeftTable[roll-2]
		case round.SideRight:
			hit.Location = mechRightTable[roll-2]
		default:
			hit.Location = mechFrontTable[roll-2]
		}
		hit.PossibleTAC = roll == 2
	}
	if !world.IsTorso(hit.Location) {
		hit.Rear = false
	}
	return hit
}

func rollVehicleLocation(src dice.Source, t *world.Combatant, side round.Side) round.HitData {
	roll := dice.Roll2d6(src)
	var loc int
	switch side {
	case round.SideLeft:
		loc = vehicleLeftTable[roll-2]
	case round.SideRight:
		loc = vehicleRightTable[roll-2]
	case round.SideRear:
		loc = vehicleRearTable[roll-2]
	default:
		loc = vehicleFrontTable[roll-2]
	}
	if loc == world.LocTurret && t.Loc(world.LocTurret).IS.Max() == 0 {
		loc = sideLocation(side)
	}
	return round.HitData{Type: round.DamagePhysical, Location: loc, PossibleTAC: roll == 2}
}

func sideLocation(side round.Side) int {
	switch side {
	case round.SideLeft:
		return world.LocLeft
	case round.SideRight:
		return world.LocRight
	case round.SideRear:
		return world.LocRear
	}
	return world.LocFront
}

// rollTrooper picks a surviving battle armor trooper.
func rollTrooper(src dice.Source, t *world.Combatant) int {
	var live []int
	for i := range t.Locations {
		if !t.Locations[i].Destroyed() {
			live = append(live, i)
		}
	}
	if len(live) == 0 {
		return 0
	}
	return live[(dice.Roll1d6(src)-1)%len(live)]
}
