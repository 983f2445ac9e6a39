package service

import (
	"sort"

	"Cataphract/internal/campaign/domain"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

// CampaignDetail 是裁判视角的战役全貌投影（不含整棵聚合树）。
type CampaignDetail struct {
	ID           entity.CampaignID `json:"id"`
	Name         string            `json:"name"`
	CurrentDay   int               `json:"current_day"`
	CurrentPart  entity.DayPart    `json:"current_part"`
	Season       entity.Season     `json:"season"`
	Status       string            `json:"status"`
	HexCount     int               `json:"hex_count"`
	Factions     []FactionView     `json:"factions"`
	Armies       []ArmyView        `json:"armies"`
	Strongholds  int               `json:"strongholds"`
	ActiveSieges int               `json:"active_sieges"`
	PendingOrders int              `json:"pending_orders"`
	RecentEvents []*entity.Event   `json:"recent_events"`
}

type FactionView struct {
	ID    entity.FactionID `json:"id"`
	Name  string           `json:"name"`
	Color string           `json:"color"`
}

type ArmyView struct {
	ID              entity.ArmyID      `json:"id"`
	CommanderID     entity.CommanderID `json:"commander_id"`
	CommanderName   string             `json:"commander_name"`
	FactionID       entity.FactionID   `json:"faction_id"`
	HexID           entity.HexID       `json:"hex_id"`
	Status          entity.ArmyStatus  `json:"status"`
	Soldiers        int                `json:"soldiers"`
	Morale          int                `json:"morale"`
	MoraleMax       int                `json:"morale_max"`
	SuppliesCurrent int                `json:"supplies_current"`
	SuppliesDays    int                `json:"supplies_days"`
	QueuedOrders    int                `json:"queued_orders"`
	ScoutingRadius  int                `json:"scouting_radius"`
	SightedArmies   []entity.ArmyID    `json:"sighted_armies,omitempty"`
}

const recentEventWindow = 50

// Detail 把聚合树压成裁判台账：军队按 ID 排序，事件取末尾一段，
// 每支军队附上当天的侦察半径与视野内的敌我军队。
func (s *CampaignService) Detail(c *entity.Campaign, cfg *rules.Config) CampaignDetail {
	d := CampaignDetail{
		ID:          c.ID,
		Name:        c.Name,
		CurrentDay:  c.CurrentDay,
		CurrentPart: c.CurrentPart,
		Season:      c.Season,
		Status:      c.Status,
		Strongholds: len(c.Strongholds),
	}
	if c.Map != nil {
		d.HexCount = len(c.Map.Hexes)
	}

	for _, f := range c.Factions {
		d.Factions = append(d.Factions, FactionView{ID: f.ID, Name: f.Name, Color: f.Color})
	}
	for i := 0; i < len(d.Factions); i++ {
		for j := i + 1; j < len(d.Factions); j++ {
			if d.Factions[j].ID < d.Factions[i].ID {
				d.Factions[i], d.Factions[j] = d.Factions[j], d.Factions[i]
			}
		}
	}

	for _, id := range sortedArmyIDs(c) {
		a := c.Armies[id]
		view := ArmyView{
			ID:              a.ID,
			CommanderID:     a.CommanderID,
			HexID:           a.CurrentHexID,
			Status:          a.Status,
			Soldiers:        a.TotalSoldiers(),
			Morale:          a.MoraleCurrent,
			MoraleMax:       a.MoraleMax,
			SuppliesCurrent: a.SuppliesCurrent,
			QueuedOrders:    len(a.OrdersQueue),
		}
		if a.DailySupplyConsumption > 0 {
			view.SuppliesDays = a.SuppliesCurrent / a.DailySupplyConsumption
		}
		if cmd, ok := c.Commanders[a.CommanderID]; ok {
			view.CommanderName = cmd.Name
			view.FactionID = cmd.FactionID
		}
		if cfg != nil {
			view.ScoutingRadius = domain.ScoutingRadius(c, a, cfg)
			for _, sighted := range domain.VisibleArmies(c, a, cfg) {
				view.SightedArmies = append(view.SightedArmies, sighted.ID)
			}
			sort.Slice(view.SightedArmies, func(i, j int) bool {
				return view.SightedArmies[i] < view.SightedArmies[j]
			})
		}
		d.Armies = append(d.Armies, view)
	}

	for _, s := range c.Sieges {
		if s.Status == entity.SiegeOngoing {
			d.ActiveSieges++
		}
	}
	for _, o := range c.Orders {
		if o.Status == entity.OrderPending {
			d.PendingOrders++
		}
	}

	events := c.Events
	if len(events) > recentEventWindow {
		events = events[len(events)-recentEventWindow:]
	}
	d.RecentEvents = events
	return d
}
