package domain

import (
	"container/heap"
	"errors"

	"Cataphract/internal/campaign/entity"
	"Cataphract/modules/kit/hexx"
)

// ErrNoPath 在两格之间不存在可走路径时返回。
var ErrNoPath = errors.New("no path exists between hexes")

const (
	nominalFordDelayHours     = 12.0
	roadDamagedTimeMultiplier = 2.0
	offroadLegHours           = 24.0 // 6 英里野地按半速走一整天
)

var fordQualityTimeMultipliers = map[string]float64{
	"easy":      1.0,
	"difficult": 1.5,
}

// RouteLeg 是寻路结果里的一段。
type RouteLeg struct {
	FromHexID          entity.HexID `json:"from_hex_id"`
	ToHexID            entity.HexID `json:"to_hex_id"`
	DistanceMiles      float64      `json:"distance_miles"`
	TravelTimeHours    float64      `json:"travel_time_hours"`
	IsRoad             bool         `json:"is_road"`
	RequiresCrossing   bool         `json:"requires_river_crossing"`
	CrossingType       string       `json:"crossing_type,omitempty"`
	CrossingDelayHours float64      `json:"crossing_delay_hours,omitempty"`
	FordQuality        string       `json:"ford_quality,omitempty"`
	FordDelayIsNominal bool         `json:"ford_delay_is_nominal,omitempty"`
}

type pqItem struct {
	hexID entity.HexID
	time  float64
}

type routePQ []pqItem

func (q routePQ) Len() int            { return len(q) }
func (q routePQ) Less(i, j int) bool  { return q[i].time < q[j].time }
func (q routePQ) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *routePQ) Push(x any)         { *q = append(*q, x.(pqItem)) }
func (q *routePQ) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// FindRoute 用 Dijkstra 在道路图上找最短耗时路径。
// allowOffRoad 为 false 时只走有路的边；army 非空时浅滩延迟按实际纵队算。
func FindRoute(c *entity.Campaign, startHexID, endHexID entity.HexID, season entity.Season, allowOffRoad bool, army *entity.Army) ([]RouteLeg, error) {
	hexMap := c.Map.Hexes
	if hexMap[startHexID] == nil || hexMap[endHexID] == nil {
		return nil, ErrNoPath
	}

	coordToHex := make(map[hexx.Coord]*entity.Hex, len(hexMap))
	for _, h := range hexMap {
		coordToHex[hexx.New(h.Q, h.R)] = h
	}

	// 双向道路邻接表
	roadGraph := make(map[entity.HexID][]*entity.RoadEdge)
	for _, edge := range c.Map.Roads {
		if edge.Status != "open" && edge.Status != "damaged" {
			continue
		}
		roadGraph[edge.FromHexID] = append(roadGraph[edge.FromHexID], edge)
		roadGraph[edge.ToHexID] = append(roadGraph[edge.ToHexID], edge)
	}

	type edgeKey struct{ from, to entity.HexID }
	crossings := make(map[edgeKey]*entity.RiverCrossing)
	for _, crossing := range c.Map.RiverCrossings {
		crossings[edgeKey{crossing.FromHexID, crossing.ToHexID}] = crossing
		crossings[edgeKey{crossing.ToHexID, crossing.FromHexID}] = crossing
	}

	baseFordDelayHours := nominalFordDelayHours
	if army != nil {
		baseFordDelayHours = fordDelayHours(c, army)
	}

	visited := make(map[entity.HexID]bool)
	bestTime := map[entity.HexID]float64{startHexID: 0}
	type cameFrom struct {
		prev entity.HexID
		leg  RouteLeg
	}
	previous := make(map[entity.HexID]cameFrom)

	pq := &routePQ{{hexID: startHexID, time: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if visited[item.hexID] {
			continue
		}
		visited[item.hexID] = true
		if item.hexID == endHexID {
			break
		}

		currentHex := hexMap[item.hexID]
		for _, neighborCoord := range hexx.Neighbors(hexx.New(currentHex.Q, currentHex.R)) {
			neighborHex := coordToHex[neighborCoord]
			if neighborHex == nil || visited[neighborHex.ID] {
				continue
			}

			var roadEdge *entity.RoadEdge
			for _, edge := range roadGraph[item.hexID] {
				if edge.FromHexID == neighborHex.ID || edge.ToHexID == neighborHex.ID {
					roadEdge = edge
					break
				}
			}
			if roadEdge == nil && !allowOffRoad {
				continue
			}

			var travelHours float64
			if roadEdge != nil {
				travelHours = roadEdge.BaseCostHours
				if roadEdge.Status == "damaged" {
					travelHours *= roadDamagedTimeMultiplier
				}
				if modifier, ok := roadEdge.SeasonalModifiers[string(season)]; ok {
					travelHours *= modifier
				}
			} else {
				travelHours = offroadLegHours
			}

			leg := RouteLeg{
				FromHexID:       item.hexID,
				ToHexID:         neighborHex.ID,
				DistanceMiles:   hexMiles,
				TravelTimeHours: travelHours,
				IsRoad:          roadEdge != nil,
			}

			if crossing, ok := crossings[edgeKey{item.hexID, neighborHex.ID}]; ok {
				leg.RequiresCrossing = true
				if crossing.Status != "open" {
					continue
				}
				if crossing.SeasonalClosures[string(season)] {
					continue
				}
				leg.CrossingType = crossing.CrossingType
				switch crossing.CrossingType {
				case "ford":
					if crossing.FordQuality == "impassable" {
						continue
					}
					multiplier := fordQualityTimeMultipliers[crossing.FordQuality]
					if multiplier == 0 {
						multiplier = 1.0
					}
					leg.CrossingDelayHours = baseFordDelayHours * multiplier
					leg.FordQuality = crossing.FordQuality
					leg.FordDelayIsNominal = army == nil
				case "bridge":
				default: // none
					continue
				}
			}

			newTime := item.time + leg.TravelTimeHours + leg.CrossingDelayHours
			if best, seen := bestTime[neighborHex.ID]; !seen || newTime < best {
				bestTime[neighborHex.ID] = newTime
				previous[neighborHex.ID] = cameFrom{prev: item.hexID, leg: leg}
				heap.Push(pq, pqItem{hexID: neighborHex.ID, time: newTime})
			}
		}
	}

	if startHexID == endHexID {
		return []RouteLeg{}, nil
	}
	if _, ok := previous[endHexID]; !ok {
		return nil, ErrNoPath
	}

	var route []RouteLeg
	for current := endHexID; current != startHexID; {
		step := previous[current]
		route = append(route, step.leg)
		current = step.prev
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route, nil
}

// fordDelayHours 渡滩延迟：步兵+非战斗人员纵队每英里半天，换算成小时。
func fordDelayHours(c *entity.Campaign, army *entity.Army) float64 {
	slowInfantry := 0
	hasSlow := false
	for _, det := range army.Detachments {
		if unitCategory(c.UnitTypes, det.UnitTypeID) == "cavalry" ||
			abilityTrue(c.UnitTypes, det.UnitTypeID, "acts_as_cavalry_for_fording") {
			continue
		}
		hasSlow = true
		slowInfantry += det.Soldiers
	}
	if !hasSlow {
		return 0
	}
	columnMiles := float64(slowInfantry+army.NoncombatantCount) / 5000.0
	return columnMiles * 0.5 * 24.0
}

// CanArmyTravelRoute 带辎重车的军队不能走野地、不能渡滩。
func CanArmyTravelRoute(route []RouteLeg, army *entity.Army) error {
	if army.TotalWagons() == 0 {
		return nil
	}
	for _, leg := range route {
		if !leg.IsRoad {
			return errors.New("wagons cannot travel off-road")
		}
	}
	for _, leg := range route {
		if leg.RequiresCrossing && leg.CrossingType == "ford" {
			return errors.New("wagons cannot cross fords")
		}
	}
	return nil
}

// TotalTravelHours 按军队实际构成累计整条路线的耗时。
func TotalTravelHours(c *entity.Campaign, route []RouteLeg, army *entity.Army) float64 {
	total := 0.0
	for _, leg := range route {
		hours := leg.TravelTimeHours
		if leg.RequiresCrossing {
			if leg.CrossingType == "ford" {
				multiplier := fordQualityTimeMultipliers[leg.FordQuality]
				if multiplier == 0 {
					multiplier = 1.0
				}
				if leg.CrossingDelayHours > 0 && !leg.FordDelayIsNominal {
					hours += leg.CrossingDelayHours
				} else {
					hours += fordDelayHours(c, army) * multiplier
				}
			} else {
				hours += leg.CrossingDelayHours
			}
		}
		total += hours
	}
	return total
}
