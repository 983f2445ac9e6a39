package entity

// Operation 是谍报/特别行动。
type Operation struct {
	ID                 OperationID        `json:"id"`
	CommanderID        CommanderID        `json:"commander_id"`
	OperationType      OperationType      `json:"operation_type"`
	TargetDescriptor   map[string]any     `json:"target_descriptor"`
	LootCost           int                `json:"loot_cost"`
	Complexity         string             `json:"complexity"` // simple / standard / complex
	ExecutedOnDay      *int               `json:"executed_on_day,omitempty"`
	Outcome            OperationOutcome   `json:"outcome"`
	Result             map[string]any     `json:"result,omitempty"`
	TerritoryType      MessengerTerritory `json:"territory_type,omitempty"`
	DifficultyModifier int                `json:"difficulty_modifier"`
}
