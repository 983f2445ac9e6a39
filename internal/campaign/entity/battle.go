package entity

// Battle 是一次会战的结算记录。
type Battle struct {
	ID                 BattleID            `json:"id"`
	CampaignID         CampaignID          `json:"campaign_id"`
	GameDay            int                 `json:"game_day"`
	HexID              HexID               `json:"hex_id"`
	AttackerArmyIDs    []ArmyID            `json:"attacker_army_ids"`
	DefenderArmyIDs    []ArmyID            `json:"defender_army_ids"`
	AttackerRolls      map[ArmyID]int      `json:"attacker_rolls"`
	DefenderRolls      map[ArmyID]int      `json:"defender_rolls"`
	VictorSide         string              `json:"victor_side"` // attacker / defender
	RollDifference     int                 `json:"roll_difference"`
	Casualties         map[ArmyID]float64  `json:"casualties"`
	MoraleChanges      map[ArmyID]int      `json:"morale_changes"`
	CommandersCaptured []CommanderID       `json:"commanders_captured,omitempty"`
	LootCaptured       int                 `json:"loot_captured"`
	Routs              []ArmyID            `json:"routs,omitempty"`
}
