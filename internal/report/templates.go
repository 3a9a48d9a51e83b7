package report

// Template ids. The comment beside each id lists its parameters in order.
const (
	// ─── Dispatcher / generic hit shape ─────────────────────────────────────
	AttackerHeader   = 4005 // attacker name
	InternalError    = 4006 // attacker id, action name
	AttackerInvalid  = 4007 // attacker name
	TargetInvalid    = 4008 // attack name, target name
	AttackImpossible = 4009 // attack name, target name, reason
	AttackRoll       = 4010 // attack name, target name, to-hit value, roll
	AttackAutoHit    = 4011 // attack name, target name
	AttackMisses     = 4012 // attack name
	AttackHits       = 4013 // attack name, location name, damage
	GlancingBlow     = 4015 // damage after halving
	DirectBlow       = 4016 // bonus damage
	BuildingAbsorbs  = 4017 // building name, absorbed damage
	BuildingScaled   = 4018 // building name, scaled damage
	SpikesReduce     = 4019 // location name, damage after spikes
	SpikesRetaliate  = 4020 // attacker location name, damage
	BuildingHit      = 4021 // building name, damage, CF remaining
	ShelterHit       = 4022 // unit name, damage

	// ─── Push / trip / grapple ──────────────────────────────────────────────
	PushNoRoom     = 4030 // target name
	MutualPush     = 4031 // first unit name, second unit name
	TripFall       = 4032 // target name
	GrappleMade    = 4033 // attacker name, target name
	GrappleBroken  = 4034 // attacker name, target name
	MutualGrapple  = 4035 // winner name, loser name
	GrappleNotHeld = 4036 // attacker name

	// ─── Collision attacks ──────────────────────────────────────────────────
	ChargeFizzles   = 4040 // attacker name, hex moved to
	ChargeMisses    = 4041 // attacker name, side hex
	CollisionDamage = 4042 // unit name, damage
	DFAMissFall     = 4043 // attacker name
	WaterHalves     = 4044 // damage after halving
	RamSteel        = 4045 // attacker name, roll, needed
	RamSteelFails   = 4046 // attacker name
	RamGlancing     = 4047 // roll
	RamDestroys     = 4048 // unit name, location name
	DisplaceCancel  = 4049 // attacker name

	// ─── Aerospace / special weapons ────────────────────────────────────────
	TeleMissileAMS       = 4050 // missile name, AMS shots, body remaining
	TeleMissileGone      = 4051 // missile name
	TeleMissileDegraded  = 4052 // sensor hits, fire control hits
	WeaponBreaks         = 4053 // attacker name, weapon name
	RedirectAttack       = 4054 // attacker name
	BrushOffSelfHit      = 4055 // attacker name, damage
	TaserShutdown        = 4056 // target name
	SwarmDislodged       = 4057 // swarming unit name
	ExplosivesLaid       = 4058 // building name, hex
	ExplosivesNoBuilding = 4059 // hex
	AttackerControlRoll  = 4060 // attacker name, reason

	// ─── Single-entity resolutions ──────────────────────────────────────────
	SelfDestructRoll    = 4100 // unit name, target, roll
	SelfDestructSuccess = 4101 // unit name
	SelfDestructFail    = 4102 // unit name
	AutoEject           = 4103 // unit name
	UnjamRoll           = 4104 // weapon name, target, roll
	Unjammed            = 4105 // weapon name
	UnjamFails          = 4106 // weapon name
	PodTriggered        = 4107 // unit name, pod kind, location name
	PodDamage           = 4108 // unit name, damage
	PodSpent            = 4109 // unit name
	FindClubRoll        = 4110 // unit name, terrain, target, roll
	ClubFound           = 4111 // unit name, club
	ClubNotFound        = 4112 // unit name

	// ─── Damage application ─────────────────────────────────────────────────
	DamageApplied     = 6000 // location name, damage, armor left, structure left
	LocationDestroyed = 6001 // location name
	DamageTransfer    = 6002 // from location, to location, damage
	CritRoll          = 6003 // location name, roll
	CritHit           = 6004 // location name, slot name
	LimbBlownOff      = 6005 // location name
	AmmoExplosion     = 6006 // slot name, damage
	CASEVents         = 6007 // location name
	UnitDestroyed     = 6008 // unit name, cause
	EngineExplodeRoll = 6009 // unit name, roll
	EngineExplosion   = 6010 // unit name, damage
	MotiveDamage      = 6011 // unit name, roll, effect
	RotorDestroyed    = 6012 // unit name
	PilotHit          = 6013 // unit name, total hits, reason
	PilotKnockedOut   = 6014 // unit name, roll, needed
	PilotConscious    = 6015 // unit name, roll, needed
	PossibleTAC       = 6016 // location name
	SIDamage          = 6017 // damage, SI remaining
	TroopersKilled    = 6018 // unit name, casualties
	RearArmorHit      = 6019 // location name

	// ─── Displacement / rolls ───────────────────────────────────────────────
	Displaced       = 2000 // unit name, from hex, to hex
	DisplaceBlocked = 2001 // unit name, hex
	DominoAsk       = 2002 // unit name
	DominoStepAside = 2003 // unit name, hex
	DominoChain     = 2004 // unit name
	FallDamage      = 2005 // unit name, damage, levels
	FallFacing      = 2006 // roll, side
	FallIntoRoll    = 2007 // unit name, occupant name, target, roll
	FallIntoMiss    = 2008 // unit name
	PSRRoll         = 2009 // unit name, reason, target, roll
	PSRPassed       = 2010 // unit name
	PSRFailed       = 2011 // unit name
	PSRAutoFail     = 2012 // unit name, reason
	ControlRoll     = 2013 // unit name, reason, target, roll
	ControlFailed   = 2014 // unit name, new elevation
	Crash           = 2015 // unit name
	PSRsDropped     = 2016 // unit name, rolls discarded
	PSRQueued       = 2017 // unit name, reason
	WaterFall       = 2018 // damage after halving

	// ─── Hazards ────────────────────────────────────────────────────────────
	MinefieldRevealed  = 5000 // player id, hex
	ClearanceRoll      = 5001 // unit name, hex, roll
	ClearanceSucceeds  = 5002 // hex
	ClearanceFails     = 5003 // hex
	ClearanceDetonates = 5004 // hex
	MineDetonates      = 5005 // minefield type, hex, unit name
	MineDamage         = 5006 // unit name, damage
	MineReduced        = 5007 // hex, density
	MineCleared        = 5008 // hex
	VibrabombTrigger   = 5009 // hex, weight
	InfernoIgnites     = 5010 // unit name
	FireHeat           = 5011 // unit name, heat
	FireStarted        = 5012 // hex
	FireOut            = 5013 // hex
	SmokeDrifts        = 5014 // hex, level
	BuildingCollapses  = 5015 // building name, hex
	CollapseDamage     = 5016 // unit name, damage
	FuelTankExplodes   = 5017 // hex, damage
	ExplosivesBlow     = 5018 // building name, hex, damage
	NoExplosives       = 5019 // hex
	MineNotAffected    = 5020 // unit name, minefield type
	NoMinefield        = 5021 // hex
)

var names = map[int]string{
	AttackerHeader: "attacker", InternalError: "internal-error", AttackerInvalid: "attacker-invalid",
	TargetInvalid: "target-invalid", AttackImpossible: "impossible", AttackRoll: "attack-roll",
	AttackAutoHit: "auto-hit", AttackMisses: "misses", AttackHits: "hits", GlancingBlow: "glancing",
	DirectBlow: "direct-blow", BuildingAbsorbs: "building-absorbs", BuildingScaled: "building-scaled",
	SpikesReduce: "spikes", SpikesRetaliate: "spikes-retaliate", BuildingHit: "building-hit",
	ShelterHit: "shelter-hit",

	PushNoRoom: "push-no-room", MutualPush: "mutual-push", TripFall: "trip-fall",
	GrappleMade: "grapple", GrappleBroken: "grapple-broken", MutualGrapple: "mutual-grapple",
	GrappleNotHeld: "grapple-not-held",

	ChargeFizzles: "charge-fizzles", ChargeMisses: "charge-misses", CollisionDamage: "collision-damage",
	DFAMissFall: "dfa-miss-fall", WaterHalves: "water-halves", RamSteel: "ram-steel",
	RamSteelFails: "ram-steel-fails", RamGlancing: "ram-glancing", RamDestroys: "ram-destroys",
	DisplaceCancel: "displacement-cancelled",

	TeleMissileAMS: "telemissile-ams", TeleMissileGone: "telemissile-gone",
	TeleMissileDegraded: "telemissile-degraded", WeaponBreaks: "weapon-breaks",
	RedirectAttack: "redirect", BrushOffSelfHit: "brush-off-self", TaserShutdown: "taser-shutdown",
	SwarmDislodged: "swarm-dislodged", ExplosivesLaid: "explosives-laid",
	ExplosivesNoBuilding: "explosives-no-building", AttackerControlRoll: "attacker-control-roll",

	SelfDestructRoll: "self-destruct-roll", SelfDestructSuccess: "self-destruct",
	SelfDestructFail: "self-destruct-fails", AutoEject: "auto-eject", UnjamRoll: "unjam-roll",
	Unjammed: "unjammed", UnjamFails: "unjam-fails", PodTriggered: "pod", PodDamage: "pod-damage",
	PodSpent: "pod-spent", FindClubRoll: "find-club-roll", ClubFound: "club-found",
	ClubNotFound: "club-not-found",

	DamageApplied: "damage", LocationDestroyed: "location-destroyed", DamageTransfer: "transfer",
	CritRoll: "crit-roll", CritHit: "crit", LimbBlownOff: "limb-blown-off",
	AmmoExplosion: "ammo-explosion", CASEVents: "case", UnitDestroyed: "destroyed",
	EngineExplodeRoll: "engine-explosion-roll", EngineExplosion: "engine-explosion",
	MotiveDamage: "motive", RotorDestroyed: "rotor-destroyed", PilotHit: "pilot-hit",
	PilotKnockedOut: "pilot-unconscious", PilotConscious: "pilot-conscious",
	PossibleTAC: "possible-tac", SIDamage: "si-damage", TroopersKilled: "troopers-killed",
	RearArmorHit: "rear-armor",

	Displaced: "displaced", DisplaceBlocked: "displace-blocked", DominoAsk: "domino-ask",
	DominoStepAside: "domino-step-aside", DominoChain: "domino-chain", FallDamage: "fall",
	FallFacing: "fall-facing", FallIntoRoll: "fall-into-roll", FallIntoMiss: "fall-into-miss",
	PSRRoll: "psr", PSRPassed: "psr-passed", PSRFailed: "psr-failed", PSRAutoFail: "psr-auto-fail",
	ControlRoll: "control-roll", ControlFailed: "control-failed", Crash: "crash",
	PSRsDropped: "psr-dropped", PSRQueued: "psr-queued", WaterFall: "water-fall",

	MinefieldRevealed: "minefield-revealed", ClearanceRoll: "clearance-roll",
	ClearanceSucceeds: "clearance-succeeds", ClearanceFails: "clearance-fails",
	ClearanceDetonates: "clearance-detonates", MineDetonates: "mine-detonates",
	MineDamage: "mine-damage", MineReduced: "mine-reduced", MineCleared: "mine-cleared",
	VibrabombTrigger: "vibrabomb", InfernoIgnites: "inferno", FireHeat: "fire-heat",
	FireStarted: "fire", FireOut: "fire-out", SmokeDrifts: "smoke", BuildingCollapses: "collapse",
	CollapseDamage: "collapse-damage", FuelTankExplodes: "fuel-tank", ExplosivesBlow: "explosives",
	NoExplosives: "no-explosives", MineNotAffected: "mine-not-affected", NoMinefield: "no-minefield",
}

// Name returns a stable short name for a template id, for logs and the CLI.
func Name(templateID int) string {
	if n, ok := names[templateID]; ok {
		return n
	}
	return "unknown"
}
