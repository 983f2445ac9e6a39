package entity

// SiegeModifier 是作用在每周攻城检定上的修正。
type SiegeModifier struct {
	Kind  string `json:"kind"` // disease / resupplied / attacked / custom
	Value int    `json:"value"`
	Day   int    `json:"day"`
	Note  string `json:"note,omitempty"`
}

// SiegeAttempt 记录一次每周检定。
type SiegeAttempt struct {
	Week      int  `json:"week"`
	Roll      int  `json:"roll"`
	Threshold int  `json:"threshold"`
	Opened    bool `json:"opened"`
}

// Siege 是进行中的围城。
type Siege struct {
	ID                 SiegeID         `json:"id"`
	StrongholdID       StrongholdID    `json:"stronghold_id"`
	AttackerArmyIDs    []ArmyID        `json:"attacker_army_ids"`
	DefenderArmyID     *ArmyID         `json:"defender_army_id,omitempty"`
	StartedOnDay       int             `json:"started_on_day"`
	WeeksElapsed       int             `json:"weeks_elapsed"`
	CurrentThreshold   int             `json:"current_threshold"`
	ThresholdModifiers []SiegeModifier `json:"threshold_modifiers,omitempty"`
	SiegeEnginesCount  int             `json:"siege_engines_count"`
	Attempts           []SiegeAttempt  `json:"attempts,omitempty"`
	Status             SiegeStatus     `json:"status"`
}
