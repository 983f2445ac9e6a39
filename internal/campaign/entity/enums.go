package entity

// DayPart 是每天四个推进段之一。
type DayPart string

const (
	PartMorning DayPart = "morning"
	PartMidday  DayPart = "midday"
	PartEvening DayPart = "evening"
	PartNight   DayPart = "night"
)

// DayParts 按推进顺序排列。
var DayParts = [4]DayPart{PartMorning, PartMidday, PartEvening, PartNight}

// DayFraction 每个推进段占一天的比例。
const DayFraction = 0.25

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

type ArmyStatus string

const (
	ArmyIdle        ArmyStatus = "idle"
	ArmyMarching    ArmyStatus = "marching"
	ArmyForcedMarch ArmyStatus = "forced_march"
	ArmyNightMarch  ArmyStatus = "night_march"
	ArmyResting     ArmyStatus = "resting"
	ArmyForaging    ArmyStatus = "foraging"
	ArmyTorching    ArmyStatus = "torching"
	ArmyBesieging   ArmyStatus = "besieging"
	ArmyInBattle    ArmyStatus = "in_battle"
	ArmyHarrying    ArmyStatus = "harrying"
	ArmyRouted      ArmyStatus = "routed"
	ArmyGarrisoned  ArmyStatus = "garrisoned"
)

type HexTerrain string

const (
	TerrainFlatland HexTerrain = "flatland"
	TerrainHills    HexTerrain = "hills"
	TerrainForest   HexTerrain = "forest"
	TerrainMountain HexTerrain = "mountain"
	TerrainWater    HexTerrain = "water"
	TerrainCoast    HexTerrain = "coast"
)

type StrongholdType string

const (
	StrongholdTown     StrongholdType = "town"
	StrongholdCity     StrongholdType = "city"
	StrongholdFortress StrongholdType = "fortress"
)

type RelationType string

const (
	RelationAllied  RelationType = "allied"
	RelationNeutral RelationType = "neutral"
	RelationHostile RelationType = "hostile"
)

// MessengerTerritory 决定信使速度与送达概率。
type MessengerTerritory string

const (
	TerritoryFriendly MessengerTerritory = "friendly"
	TerritoryNeutral  MessengerTerritory = "neutral"
	TerritoryHostile  MessengerTerritory = "hostile"
)

type MovementType string

const (
	MoveStandard MovementType = "standard"
	MoveForced   MovementType = "forced"
	MoveNight    MovementType = "night"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderExecuting OrderStatus = "executing"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderFailed    OrderStatus = "failed"
)

type SiegeStatus string

const (
	SiegeOngoing           SiegeStatus = "ongoing"
	SiegeGatesOpened       SiegeStatus = "gates_opened"
	SiegeSuccessfulAssault SiegeStatus = "successful_assault"
	SiegeLifted            SiegeStatus = "lifted"
)

type NavalStatus string

const (
	NavalAvailable    NavalStatus = "available"
	NavalTransporting NavalStatus = "transporting"
	NavalFled         NavalStatus = "fled"
)

type OperationType string

const (
	OpIntelligence  OperationType = "intelligence"
	OpAssassination OperationType = "assassination"
	OpSabotage      OperationType = "sabotage"
)

type OperationOutcome string

const (
	OutcomePending     OperationOutcome = "pending"
	OutcomeSuccess     OperationOutcome = "success"
	OutcomeFailure     OperationOutcome = "failure"
	OutcomeInterrupted OperationOutcome = "interrupted"
)
