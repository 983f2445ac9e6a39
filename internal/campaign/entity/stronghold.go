package entity

// Stronghold 是据点（town/city/fortress）。
type Stronghold struct {
	ID                   StrongholdID   `json:"id"`
	CampaignID           CampaignID     `json:"campaign_id"`
	HexID                HexID          `json:"hex_id"`
	Type                 StrongholdType `json:"type"`
	ControllingFactionID FactionID      `json:"controlling_faction_id"`
	DefensiveBonus       int            `json:"defensive_bonus"`
	Threshold            int            `json:"threshold"`
	CurrentThreshold     int            `json:"current_threshold"`
	GatesOpen            bool           `json:"gates_open"`
	GarrisonArmyID       *ArmyID        `json:"garrison_army_id,omitempty"`
	SuppliesHeld         int            `json:"supplies_held"`
	LootHeld             int            `json:"loot_held"`
}

// RecruitmentPriority 征兵归集时的据点优先级：fortress > city > town。
func (s *Stronghold) RecruitmentPriority() int {
	switch s.Type {
	case StrongholdFortress:
		return 3
	case StrongholdCity:
		return 2
	default:
		return 1
	}
}
