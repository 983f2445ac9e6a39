package entity

import "time"

// Order 是下达给军队/指挥官的命令。
// parameters 保持开放 map：不同命令类型的参数形状由各自 handler 校验。
type Order struct {
	ID          OrderID        `json:"id"`
	CampaignID  CampaignID     `json:"campaign_id"`
	ArmyID      *ArmyID        `json:"army_id,omitempty"`
	CommanderID CommanderID    `json:"commander_id"`
	OrderType   string         `json:"order_type"`
	Parameters  map[string]any `json:"parameters"`
	IssuedAt    time.Time      `json:"issued_at"`
	ExecuteDay  *int           `json:"execute_day,omitempty"`
	ExecutePart *DayPart       `json:"execute_part,omitempty"`
	Status      OrderStatus    `json:"status"`
	Result      map[string]any `json:"result,omitempty"`
	Priority    int            `json:"priority"`
}

// MovementLeg 是一段计划好的行军路径。
type MovementLeg struct {
	FromHexID      HexID   `json:"from_hex_id"`
	ToHexID        HexID   `json:"to_hex_id"`
	DistanceMiles  float64 `json:"distance_miles"`
	OnRoad         bool    `json:"on_road"`
	HasRiverFord   bool    `json:"has_river_ford"`
	IsNight        bool    `json:"is_night"`
	HasFork        bool    `json:"has_fork"`
	AlternateHexID *HexID  `json:"alternate_hex_id,omitempty"`
}
