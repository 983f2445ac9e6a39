package entity

// Hex 是 6 英里一格的地图单元。
type Hex struct {
	ID                      HexID      `json:"id"`
	CampaignID              CampaignID `json:"campaign_id"`
	Q                       int        `json:"q"`
	R                       int        `json:"r"`
	Terrain                 HexTerrain `json:"terrain"`
	Settlement              int        `json:"settlement"` // 0~5 聚落等级
	IsGoodCountry           bool       `json:"is_good_country"`
	HasRoad                 bool       `json:"has_road"`
	RiverSides              []string   `json:"river_sides,omitempty"`
	ForagingTimesRemaining  int        `json:"foraging_times_remaining"`
	IsTorched               bool       `json:"is_torched"`
	LastForagedDay          *int       `json:"last_foraged_day,omitempty"`
	LastRecruitedDay        *int       `json:"last_recruited_day,omitempty"`
	LastTorchedDay          *int       `json:"last_torched_day,omitempty"`
	LastControlChangeDay    *int       `json:"last_control_change_day,omitempty"`
	ControllingFactionID    *FactionID `json:"controlling_faction_id,omitempty"`
}

// RoadEdge 是道路图的一条边。
type RoadEdge struct {
	FromHexID         HexID              `json:"from_hex_id"`
	ToHexID           HexID              `json:"to_hex_id"`
	Quality           string             `json:"quality"`
	BaseCostHours     float64            `json:"base_cost_hours"`
	Status            string             `json:"status"` // open | damaged | closed
	SeasonalModifiers map[string]float64 `json:"seasonal_modifiers,omitempty"`
}

// RiverCrossing 是桥或浅滩。
type RiverCrossing struct {
	FromHexID        HexID           `json:"from_hex_id"`
	ToHexID          HexID           `json:"to_hex_id"`
	CrossingType     string          `json:"crossing_type"` // bridge | ford | none
	Status           string          `json:"status"`
	FordQuality      string          `json:"ford_quality,omitempty"` // easy | difficult | impassable
	SeasonalClosures map[string]bool `json:"seasonal_closures,omitempty"`
}

// CampaignMap 是地图整体状态。
type CampaignMap struct {
	Hexes          map[HexID]*Hex   `json:"hexes"`
	Roads          []*RoadEdge      `json:"roads"`
	RiverCrossings []*RiverCrossing `json:"river_crossings"`
}

func NewCampaignMap() *CampaignMap {
	return &CampaignMap{
		Hexes: make(map[HexID]*Hex),
	}
}
