package domain

import (
	"errors"
	"testing"

	"Cataphract/internal/campaign/entity"
)

func TestFindRoute_沿路寻径(t *testing.T) {
	c := newTestCampaign()
	addRoad(c, 1, 2, "open")
	addRoad(c, 2, 3, "open")

	route, err := FindRoute(c, 1, 3, c.Season, false, nil)
	if err != nil {
		t.Fatalf("FindRoute err=%v", err)
	}
	if len(route) != 2 || route[0].ToHexID != 2 || route[1].ToHexID != 3 {
		t.Fatalf("路线不符: %+v", route)
	}
	if !route[0].IsRoad || route[0].DistanceMiles != 6 || route[0].TravelTimeHours != 12 {
		t.Fatalf("路段口径不符: %+v", route[0])
	}

	// 只走路时断头路不可达；放开野地后按整天一格走
	if _, err := FindRoute(c, 1, 12, c.Season, false, nil); !errors.Is(err, ErrNoPath) {
		t.Fatalf("断路期望 ErrNoPath, got %v", err)
	}
	offroad, err := FindRoute(c, 1, 5, c.Season, true, nil)
	if err != nil {
		t.Fatalf("野地寻径 err=%v", err)
	}
	last := offroad[len(offroad)-1]
	if last.IsRoad || last.TravelTimeHours != 24 {
		t.Fatalf("野地段口径不符: %+v", last)
	}

	// 起终同格返回空路线
	if same, err := FindRoute(c, 1, 1, c.Season, false, nil); err != nil || len(same) != 0 {
		t.Fatalf("同格路线应为空: %+v err=%v", same, err)
	}
}

func TestFindRoute_损毁与季节修正(t *testing.T) {
	c := newTestCampaign()
	addRoad(c, 1, 2, "damaged")
	route, err := FindRoute(c, 1, 2, c.Season, false, nil)
	if err != nil || route[0].TravelTimeHours != 24 {
		t.Fatalf("损毁路段耗时应翻倍: %+v err=%v", route, err)
	}

	c2 := newTestCampaign()
	edge := addRoad(c2, 1, 2, "open")
	edge.SeasonalModifiers = map[string]float64{"summer": 1.5}
	route2, err := FindRoute(c2, 1, 2, c2.Season, false, nil)
	if err != nil || route2[0].TravelTimeHours != 18 {
		t.Fatalf("季节修正不符: %+v err=%v", route2, err)
	}

	c3 := newTestCampaign()
	addRoad(c3, 1, 2, "closed")
	if _, err := FindRoute(c3, 1, 2, c3.Season, false, nil); !errors.Is(err, ErrNoPath) {
		t.Fatalf("封闭路段期望 ErrNoPath, got %v", err)
	}
}

func TestFindRoute_渡口与辎重(t *testing.T) {
	c := newTestCampaign()
	addCommander(c, 1, 1)
	army := addArmy(c, 1, 1, 1, infantryDet(1, 1000, 0))
	addRoad(c, 1, 2, "open")
	c.Map.RiverCrossings = append(c.Map.RiverCrossings, &entity.RiverCrossing{
		FromHexID: 1, ToHexID: 2, CrossingType: "ford", Status: "open", FordQuality: "difficult",
	})

	route, err := FindRoute(c, 1, 2, c.Season, false, army)
	if err != nil {
		t.Fatalf("FindRoute err=%v", err)
	}
	if !route[0].RequiresCrossing || route[0].CrossingType != "ford" {
		t.Fatalf("渡口信息缺失: %+v", route[0])
	}
	// 千人步兵纵队 0.2 英里，半天一英里换算成小时，难滩再乘 1.5
	want := float64(1000) / 5000.0 * 0.5 * 24.0 * 1.5
	if route[0].CrossingDelayHours != want {
		t.Fatalf("渡滩延迟期望 %v, got %v", want, route[0].CrossingDelayHours)
	}

	if err := CanArmyTravelRoute(route, army); err != nil {
		t.Fatalf("无辎重应可渡滩: %v", err)
	}
	army.Detachments[0].Wagons = 10
	if err := CanArmyTravelRoute(route, army); err == nil {
		t.Fatalf("带辎重车不可渡滩")
	}

	// 当季封闭的渡口直接不可走
	c.Map.RiverCrossings[0].SeasonalClosures = map[string]bool{"summer": true}
	if _, err := FindRoute(c, 1, 2, c.Season, false, army); !errors.Is(err, ErrNoPath) {
		t.Fatalf("封闭渡口期望 ErrNoPath, got %v", err)
	}
}
