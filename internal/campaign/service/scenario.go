package service

import (
	"encoding/json"

	"Cataphract/internal/campaign/entity"
	"Cataphract/modules/kit/errx"
)

var ErrBadScenario = errx.NewBiz("SCENARIO_INVALID", "想定文件不合法")

// ImportScenario 从 JSON 想定文件还原一棵战役聚合树。
// 想定文件的形状就是战役文档本身，导入时补齐缺失的容器并做基本一致性校验。
func (s *CampaignService) ImportScenario(raw []byte) (*entity.Campaign, error) {
	var c entity.Campaign
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, ErrBadScenario.WithCause(err)
	}
	if c.Name == "" {
		return nil, ErrBadScenario.WithData("reason", "missing name")
	}
	if c.Map == nil || len(c.Map.Hexes) == 0 {
		return nil, ErrBadScenario.WithData("reason", "missing map")
	}

	normalizeContainers(&c)

	if c.Status == "" {
		c.Status = "active"
	}
	if c.CurrentPart == "" {
		c.CurrentPart = entity.PartMorning
	}
	if c.Season == "" {
		c.Season = entity.SeasonSummer
	}

	// 想定里军队引用的格子、指挥官必须都在册。
	for _, a := range c.Armies {
		if c.Map.Hexes[a.CurrentHexID] == nil {
			return nil, ErrBadScenario.WithData("reason", "army on unknown hex").WithData("army_id", int(a.ID))
		}
		if _, ok := c.Commanders[a.CommanderID]; !ok {
			return nil, ErrBadScenario.WithData("reason", "army without commander").WithData("army_id", int(a.ID))
		}
	}
	for _, st := range c.Strongholds {
		if c.Map.Hexes[st.HexID] == nil {
			return nil, ErrBadScenario.WithData("reason", "stronghold on unknown hex").WithData("stronghold_id", int(st.ID))
		}
	}

	return &c, nil
}

// normalizeContainers 把 JSON 里缺省的 map 容器补成空 map，
// 规则代码可以放心读写而不必每处判 nil。
func normalizeContainers(c *entity.Campaign) {
	if c.Factions == nil {
		c.Factions = make(map[entity.FactionID]*entity.Faction)
	}
	if c.Commanders == nil {
		c.Commanders = make(map[entity.CommanderID]*entity.Commander)
	}
	if c.Armies == nil {
		c.Armies = make(map[entity.ArmyID]*entity.Army)
	}
	if c.Strongholds == nil {
		c.Strongholds = make(map[entity.StrongholdID]*entity.Stronghold)
	}
	if c.Ships == nil {
		c.Ships = make(map[entity.ShipID]*entity.Ship)
	}
	if c.ShipTypes == nil {
		c.ShipTypes = make(map[entity.ShipTypeID]*entity.ShipType)
	}
	if c.UnitTypes == nil {
		c.UnitTypes = make(map[entity.UnitTypeID]*entity.UnitType)
	}
	if c.Sieges == nil {
		c.Sieges = make(map[entity.SiegeID]*entity.Siege)
	}
	if c.Battles == nil {
		c.Battles = make(map[entity.BattleID]*entity.Battle)
	}
	if c.MercenaryCompanies == nil {
		c.MercenaryCompanies = make(map[entity.MercenaryCompanyID]*entity.MercenaryCompany)
	}
	if c.MercenaryContracts == nil {
		c.MercenaryContracts = make(map[entity.MercenaryContractID]*entity.MercenaryContract)
	}
	if c.Operations == nil {
		c.Operations = make(map[entity.OperationID]*entity.Operation)
	}
	if c.Orders == nil {
		c.Orders = make(map[entity.OrderID]*entity.Order)
	}
	if c.Messages == nil {
		c.Messages = make(map[entity.MessageID]*entity.Message)
	}
	if c.Weather == nil {
		c.Weather = make(map[int]*entity.Weather)
	}
	if c.Recruitments == nil {
		c.Recruitments = make(map[entity.RecruitmentID]*entity.RecruitmentProject)
	}
}
