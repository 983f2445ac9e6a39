package domain

import (
	"fmt"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

const hexMiles = 6

// NavalActionResult 是登船/下船/设定航线的执行结果。
type NavalActionResult struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

// EmbarkArmy 军队登船，双方必须同格。登船本身耗 1 天。
func EmbarkArmy(army *entity.Army, ship *entity.Ship, cfg *rules.Config) NavalActionResult {
	if army.EmbarkedShipID != nil {
		return NavalActionResult{false, "army already embarked"}
	}
	if ship.EmbarkedArmyID != nil {
		return NavalActionResult{false, "ship already transporting an army"}
	}
	if army.CurrentHexID != ship.CurrentHexID {
		return NavalActionResult{false, "army and ship must share a hex"}
	}
	if ship.Status != entity.NavalAvailable && ship.Status != entity.NavalTransporting {
		return NavalActionResult{false, fmt.Sprintf("ship status %s disallows embarkation", ship.Status)}
	}

	shipID := ship.ID
	armyID := army.ID
	army.EmbarkedShipID = &shipID
	ship.EmbarkedArmyID = &armyID
	ship.Status = entity.NavalTransporting
	if embarkDays := float64(cfg.Naval.EmbarkDays); ship.TravelDaysRemaining < embarkDays {
		ship.TravelDaysRemaining = embarkDays
	}
	return NavalActionResult{true, "army embarked"}
}

// DisembarkArmy 军队下船，船必须已经到港。下船耗 1 天。
func DisembarkArmy(army *entity.Army, ship *entity.Ship, cfg *rules.Config) NavalActionResult {
	if army.EmbarkedShipID == nil || *army.EmbarkedShipID != ship.ID ||
		ship.EmbarkedArmyID == nil || *ship.EmbarkedArmyID != army.ID {
		return NavalActionResult{false, "army not embarked on specified ship"}
	}
	if ship.TravelDaysRemaining > 0 {
		return NavalActionResult{false, "ship is still en route"}
	}

	army.EmbarkedShipID = nil
	ship.EmbarkedArmyID = nil
	ship.Status = entity.NavalAvailable
	ship.TravelDaysRemaining = float64(cfg.Naval.DisembarkDays)
	army.CurrentHexID = ship.CurrentHexID
	return NavalActionResult{true, "army disembarked"}
}

// SetCourse 给船设定航线并换算成航行天数。
func SetCourse(c *entity.Campaign, ship *entity.Ship, route []entity.HexID, cfg *rules.Config) NavalActionResult {
	if len(route) == 0 {
		return NavalActionResult{false, "route required"}
	}
	if ship.EmbarkedArmyID != nil && c.Armies[*ship.EmbarkedArmyID] == nil {
		return NavalActionResult{false, "embarked army missing"}
	}

	totalMiles := 0
	current := ship.CurrentHexID
	for _, target := range route {
		start := c.Map.Hexes[current]
		end := c.Map.Hexes[target]
		if start == nil || end == nil {
			return NavalActionResult{false, "route references unknown hex"}
		}
		totalMiles += maxInt(1, hexDistance(start, end)) * hexMiles
		current = target
	}

	ship.CurrentRoute = route
	ship.TravelDaysRemaining = float64(totalMiles) / float64(cfg.Naval.FriendlyMilesPerDay)
	ship.MovementPointsRemaining = 1.0
	if ship.EmbarkedArmyID != nil {
		ship.Status = entity.NavalTransporting
	} else {
		ship.Status = entity.NavalAvailable
	}
	return NavalActionResult{true, fmt.Sprintf("course set for %d leg(s)", len(route))}
}

// AdvanceShips 推进所有船的航行计时，载着的军队随船落位。
func AdvanceShips(c *entity.Campaign, dayFraction float64) {
	for _, ship := range c.Ships {
		if len(ship.CurrentRoute) == 0 {
			if ship.TravelDaysRemaining > 0 {
				ship.TravelDaysRemaining = maxFloat(0, ship.TravelDaysRemaining-dayFraction)
			}
			continue
		}

		ship.TravelDaysRemaining = maxFloat(0, ship.TravelDaysRemaining-dayFraction)
		if ship.TravelDaysRemaining > 0 {
			continue
		}

		destination := ship.CurrentRoute[len(ship.CurrentRoute)-1]
		ship.CurrentHexID = destination
		ship.CurrentRoute = nil
		ship.MovementPointsRemaining = 0
		if ship.EmbarkedArmyID == nil {
			ship.Status = entity.NavalAvailable
		} else {
			ship.Status = entity.NavalTransporting
			if army := c.Armies[*ship.EmbarkedArmyID]; army != nil {
				army.CurrentHexID = destination
				army.IsBlockaded = false
			}
		}
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
