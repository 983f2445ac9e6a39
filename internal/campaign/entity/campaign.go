package entity

import "time"

// Weather 是某一天的天气记录。
type Weather struct {
	ID          int    `json:"id"`
	CampaignID  CampaignID `json:"campaign_id"`
	GameDay     int    `json:"game_day"`
	Description string `json:"description"`
	Severity    string `json:"severity"` // clear / rain / storm ...
	// MovementModifier 对当天行军里程的修正（负数减速），ranger 特质免疫。
	MovementModifier float64 `json:"movement_modifier"`
	// VisibilityPenalty 对侦察/征粮范围的修正（0/-1/-2）。
	VisibilityPenalty int `json:"visibility_penalty"`
}

// Event 是事件流里的一条记录，type 为判别字段。
type Event struct {
	ID               EventID          `json:"id"`
	CampaignID       CampaignID       `json:"campaign_id"`
	GameDay          int              `json:"game_day"`
	Timestamp        time.Time        `json:"timestamp"`
	EventType        string           `json:"event_type"`
	InvolvedEntities map[string][]int `json:"involved_entities,omitempty"`
	Description      string           `json:"description"`
	Details          map[string]any   `json:"details,omitempty"`
	VisibleTo        []CommanderID    `json:"visible_to,omitempty"`
	RefereeNotes     string           `json:"referee_notes,omitempty"`
}

// Campaign 是战役聚合根。所有规则函数只操作这棵对象树，
// 持久化层把整棵树按 JSON 文档存取。
type Campaign struct {
	ID          CampaignID `json:"id"`
	Name        string     `json:"name"`
	StartDate   time.Time  `json:"start_date"`
	CurrentDay  int        `json:"current_day"`
	CurrentPart DayPart    `json:"current_part"`
	Season      Season     `json:"season"`
	Status      string     `json:"status"` // setup / active / paused / completed

	Map *CampaignMap `json:"map"`

	Factions           map[FactionID]*Faction                   `json:"factions"`
	Commanders         map[CommanderID]*Commander               `json:"commanders"`
	Armies             map[ArmyID]*Army                         `json:"armies"`
	Strongholds        map[StrongholdID]*Stronghold             `json:"strongholds"`
	Ships              map[ShipID]*Ship                         `json:"ships"`
	ShipTypes          map[ShipTypeID]*ShipType                 `json:"ship_types"`
	UnitTypes          map[UnitTypeID]*UnitType                 `json:"unit_types"`
	Sieges             map[SiegeID]*Siege                       `json:"sieges"`
	Battles            map[BattleID]*Battle                     `json:"battles"`
	MercenaryCompanies map[MercenaryCompanyID]*MercenaryCompany `json:"mercenary_companies"`
	MercenaryContracts map[MercenaryContractID]*MercenaryContract `json:"mercenary_contracts"`
	Operations         map[OperationID]*Operation               `json:"operations"`
	Orders             map[OrderID]*Order                       `json:"orders"`
	Messages           map[MessageID]*Message                   `json:"messages"`
	Events             []*Event                                 `json:"events"`
	Weather            map[int]*Weather                         `json:"weather"` // game_day -> 天气
	Recruitments       map[RecruitmentID]*RecruitmentProject    `json:"recruitments"`
}

// NewCampaign 创建一个空战役（day 0、清晨、active）。
func NewCampaign(id CampaignID, name string, startDate time.Time, season Season) *Campaign {
	return &Campaign{
		ID:          id,
		Name:        name,
		StartDate:   startDate,
		CurrentDay:  0,
		CurrentPart: PartMorning,
		Season:      season,
		Status:      "active",
		Map:         NewCampaignMap(),

		Factions:           make(map[FactionID]*Faction),
		Commanders:         make(map[CommanderID]*Commander),
		Armies:             make(map[ArmyID]*Army),
		Strongholds:        make(map[StrongholdID]*Stronghold),
		Ships:              make(map[ShipID]*Ship),
		ShipTypes:          make(map[ShipTypeID]*ShipType),
		UnitTypes:          make(map[UnitTypeID]*UnitType),
		Sieges:             make(map[SiegeID]*Siege),
		Battles:            make(map[BattleID]*Battle),
		MercenaryCompanies: make(map[MercenaryCompanyID]*MercenaryCompany),
		MercenaryContracts: make(map[MercenaryContractID]*MercenaryContract),
		Operations:         make(map[OperationID]*Operation),
		Orders:             make(map[OrderID]*Order),
		Messages:           make(map[MessageID]*Message),
		Weather:            make(map[int]*Weather),
		Recruitments:       make(map[RecruitmentID]*RecruitmentProject),
	}
}

// HexAt 按坐标找格子。
func (c *Campaign) HexAt(q, r int) *Hex {
	for _, h := range c.Map.Hexes {
		if h.Q == q && h.R == r {
			return h
		}
	}
	return nil
}

// StrongholdAtHex 找某格上的据点。
func (c *Campaign) StrongholdAtHex(hexID HexID) *Stronghold {
	for _, s := range c.Strongholds {
		if s.HexID == hexID {
			return s
		}
	}
	return nil
}

// ArmiesAtHex 找某格上的全部军队。
func (c *Campaign) ArmiesAtHex(hexID HexID) []*Army {
	var out []*Army
	for _, a := range c.Armies {
		if a.CurrentHexID == hexID {
			out = append(out, a)
		}
	}
	return out
}

// WeatherToday 返回当天天气，没有记录时为 nil。
func (c *Campaign) WeatherToday() *Weather {
	return c.Weather[c.CurrentDay]
}

// AppendEvent 把事件追加到事件流并补全日期与序号。
func (c *Campaign) AppendEvent(e *Event) {
	if e == nil {
		return
	}
	e.ID = EventID(len(c.Events) + 1)
	e.CampaignID = c.ID
	e.GameDay = c.CurrentDay
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	c.Events = append(c.Events, e)
}
