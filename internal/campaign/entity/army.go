package entity

// UnitType 是兵种目录项（目录数据，不随战役演变）。
type UnitType struct {
	ID               UnitTypeID     `json:"id"`
	Name             string         `json:"name"`
	Category         string         `json:"category"` // infantry / cavalry / skirmisher ...
	BattleMultiplier float64        `json:"battle_multiplier"`
	SupplyCostPerDay int            `json:"supply_cost_per_day"`
	CanTravelOffroad bool           `json:"can_travel_offroad"`
	SpecialAbilities map[string]any `json:"special_abilities,omitempty"`
}

// Detachment 是军队里的一个分队。
type Detachment struct {
	ID             DetachmentID `json:"id"`
	UnitTypeID     UnitTypeID   `json:"unit_type_id"`
	Soldiers       int          `json:"soldiers"`
	Wagons         int          `json:"wagons"`
	Engines        int          `json:"engines"`
	Name           string       `json:"name,omitempty"`
	RegionOfOrigin string       `json:"region_of_origin,omitempty"`
	Honors         []string     `json:"honors,omitempty"`
}

// HarriedEffect 记录当天被袭扰后的移动惩罚。
type HarriedEffect struct {
	Day       int     `json:"day"`
	Objective string  `json:"objective"`
	Penalty   float64 `json:"penalty"`
}

// DepartedDetachments 记录因士气后果临时离队的分队。
type DepartedDetachments struct {
	DetachmentIDs []DetachmentID `json:"detachment_ids"`
	ReturnDay     int            `json:"return_day"`
}

// MercenariesDeserted 记录佣兵开小差事件。
type MercenariesDeserted struct {
	ContractID MercenaryContractID `json:"contract_id"`
	Day        int                 `json:"day"`
}

// StatusEffects 是军队身上的状态标记。固定字段而不是 map，
// 每种状态的负载形状在编译期就定死。
type StatusEffects struct {
	Harried             *HarriedEffect       `json:"harried,omitempty"`
	DepartedDetachments *DepartedDetachments `json:"departed_detachments,omitempty"`
	MercenariesDeserted *MercenariesDeserted `json:"mercenaries_deserted,omitempty"`
	SickOrExhausted     bool                 `json:"sick_or_exhausted,omitempty"`
	Undersupplied       bool                 `json:"undersupplied,omitempty"`
	ExclusiveSkirmisher bool                 `json:"exclusive_skirmisher,omitempty"`
	Revolt              bool                 `json:"revolt,omitempty"`
}

// Army 是战役里的一支军队。
type Army struct {
	ID                      ArmyID        `json:"id"`
	CampaignID              CampaignID    `json:"campaign_id"`
	CommanderID             CommanderID   `json:"commander_id"`
	CurrentHexID            HexID         `json:"current_hex_id"`
	Detachments             []*Detachment `json:"detachments"`
	Status                  ArmyStatus    `json:"status"`
	MovementPointsRemaining float64       `json:"movement_points_remaining"`
	MoraleCurrent           int           `json:"morale_current"`
	MoraleResting           int           `json:"morale_resting"`
	MoraleMax               int           `json:"morale_max"`
	SuppliesCurrent         int           `json:"supplies_current"`
	SuppliesCapacity        int           `json:"supplies_capacity"`
	DailySupplyConsumption  int           `json:"daily_supply_consumption"`
	LootCarried             int           `json:"loot_carried"`
	NoncombatantCount       int           `json:"noncombatant_count"`
	NoncombatantPercentage  float64       `json:"noncombatant_percentage"`
	ForcedMarchDays         float64       `json:"forced_march_days"`
	DaysWithoutSupplies     int           `json:"days_without_supplies"`
	DaysMarchedThisWeek     int           `json:"days_marched_this_week"`
	StatusEffects           StatusEffects `json:"status_effects"`
	ColumnLengthMiles       float64       `json:"column_length_miles"`
	RestDurationDays        int           `json:"rest_duration_days,omitempty"`
	RestStartedDay          *int          `json:"rest_started_day,omitempty"`
	DestinationHexID        *HexID        `json:"destination_hex_id,omitempty"`
	EmbarkedShipID          *ShipID       `json:"embarked_ship_id,omitempty"`
	IsBlockaded             bool          `json:"is_blockaded"`
	OrdersQueue             []OrderID     `json:"orders_queue"`
	LastBattleDay           *int          `json:"last_battle_day,omitempty"`
	LastRetreatDay          *int          `json:"last_retreat_day,omitempty"`
}

// TotalSoldiers 全军现役士兵数（不含随军非战斗人员）。
func (a *Army) TotalSoldiers() int {
	total := 0
	for _, d := range a.Detachments {
		total += d.Soldiers
	}
	return total
}

// TotalWagons 全军辎重车数。
func (a *Army) TotalWagons() int {
	total := 0
	for _, d := range a.Detachments {
		total += d.Wagons
	}
	return total
}

// TotalEngines 全军攻城器械数。
func (a *Army) TotalEngines() int {
	total := 0
	for _, d := range a.Detachments {
		total += d.Engines
	}
	return total
}

// SoldiersByCategory 按兵种类别统计士兵数。
func (a *Army) SoldiersByCategory(unitTypes map[UnitTypeID]*UnitType) map[string]int {
	out := make(map[string]int)
	for _, d := range a.Detachments {
		category := "infantry"
		if ut, ok := unitTypes[d.UnitTypeID]; ok && ut.Category != "" {
			category = ut.Category
		}
		out[category] += d.Soldiers
	}
	return out
}

// HasCategory 军队里是否存在指定类别的分队。
func (a *Army) HasCategory(unitTypes map[UnitTypeID]*UnitType, category string) bool {
	for _, d := range a.Detachments {
		if ut, ok := unitTypes[d.UnitTypeID]; ok && ut.Category == category {
			return true
		}
	}
	return false
}
