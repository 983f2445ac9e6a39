package entity

// Trait 是指挥官特质目录项。
type Trait struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	ScopeTags   []string       `json:"scope_tags,omitempty"`
	EffectData  map[string]any `json:"effect_data,omitempty"`
}

// Commander 是参与战役的指挥官。
type Commander struct {
	ID                  CommanderID `json:"id"`
	CampaignID          CampaignID  `json:"campaign_id"`
	Name                string      `json:"name"`
	FactionID           FactionID   `json:"faction_id"`
	Age                 int         `json:"age"`
	Traits              []*Trait    `json:"traits,omitempty"`
	PlayerID            *PlayerID   `json:"player_id,omitempty"`
	CurrentHexID        *HexID      `json:"current_hex_id,omitempty"`
	Status              string      `json:"status"` // active / captured / dead
	CapturedByFactionID *FactionID  `json:"captured_by_faction_id,omitempty"`
}

// HasTrait 判断指挥官是否拥有指定特质（按名字，大小写不敏感调用方自理）。
func (c *Commander) HasTrait(name string) bool {
	for _, t := range c.Traits {
		if t != nil && t.Name == name {
			return true
		}
	}
	return false
}

// FactionRelation 是两个势力之间的关系。
type FactionRelation struct {
	OtherFactionID FactionID    `json:"other_faction_id"`
	RelationType   RelationType `json:"relation_type"`
	SinceDay       int          `json:"since_day"`
}

// Faction 是控制领土与指挥官的势力。
type Faction struct {
	ID           FactionID                     `json:"id"`
	CampaignID   CampaignID                    `json:"campaign_id"`
	Name         string                        `json:"name"`
	Color        string                        `json:"color"`
	Description  string                        `json:"description,omitempty"`
	SpecialRules map[string]any                `json:"special_rules,omitempty"`
	Relations    map[FactionID]FactionRelation `json:"relations,omitempty"`
}

// RelationTo 返回对另一个势力的关系，未登记时视为中立。
func (f *Faction) RelationTo(other FactionID) RelationType {
	if f == nil {
		return RelationNeutral
	}
	if rel, ok := f.Relations[other]; ok {
		return rel.RelationType
	}
	return RelationNeutral
}
