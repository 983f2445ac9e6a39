package entity

// MercenaryCompany 是可雇佣的佣兵团目录项。
type MercenaryCompany struct {
	ID                 MercenaryCompanyID `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	BaseRates          map[string]int     `json:"base_rates"` // 类别 -> 每人每日军饷（战利品）
	DefaultComposition []map[string]any   `json:"default_composition,omitempty"`
	Available          bool               `json:"available"`
}

// MercenaryContract 是生效中的雇佣合同。
type MercenaryContract struct {
	ID              MercenaryContractID `json:"id"`
	CompanyID       MercenaryCompanyID  `json:"company_id"`
	CommanderID     CommanderID         `json:"commander_id"`
	ArmyID          *ArmyID             `json:"army_id,omitempty"`
	StartDay        int                 `json:"start_day"`
	EndDay          *int                `json:"end_day,omitempty"`
	Status          string              `json:"status"` // active / unpaid / terminated
	LastUpkeepDay   int                 `json:"last_upkeep_day"`
	NegotiatedRates map[string]int      `json:"negotiated_rates,omitempty"`
	DaysUnpaid      int                 `json:"days_unpaid"`
}
