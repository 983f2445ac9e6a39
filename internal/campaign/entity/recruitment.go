package entity

// RecruitmentProject 是进行中的募兵项目（30 天后在集结格成军）。
type RecruitmentProject struct {
	ID             RecruitmentID `json:"id"`
	StrongholdID   StrongholdID  `json:"stronghold_id"`
	FactionID      FactionID     `json:"faction_id"`
	CommanderID    CommanderID   `json:"commander_id"`
	RallyHexID     HexID         `json:"rally_hex_id"`
	StartedOnDay   int           `json:"started_on_day"`
	CompletesOnDay int           `json:"completes_on_day"`
	Infantry       int           `json:"infantry"`
	Cavalry        int           `json:"cavalry"`
	Wagons         int           `json:"wagons"`
	Noncombatants  int           `json:"noncombatants"`
	SourceHexIDs   []HexID       `json:"source_hex_ids"`
	PendingOrderID OrderID       `json:"pending_order_id"`
	RevoltTriggered bool         `json:"revolt_triggered"`
}
