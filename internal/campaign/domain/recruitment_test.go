package domain

import (
	"fmt"
	"testing"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

// 给格 1~3 挂上势力 1 的聚落，在格 1 放一个 town。
func setupRecruitmentGround(c *entity.Campaign) *entity.Stronghold {
	faction := entity.FactionID(1)
	settlements := map[entity.HexID]int{1: 260, 2: 120, 3: 40}
	for id, pop := range settlements {
		hex := c.Map.Hexes[id]
		hex.Settlement = pop
		f := faction
		hex.ControllingFactionID = &f
	}
	c.Map.Hexes[2].IsGoodCountry = true

	stronghold := &entity.Stronghold{
		ID: 1, CampaignID: c.ID, HexID: 1, Type: entity.StrongholdTown,
		ControllingFactionID: faction, Threshold: 10, CurrentThreshold: 10,
	}
	c.Strongholds[1] = stronghold
	return stronghold
}

func TestStartRecruitment_腹地与规模(t *testing.T) {
	c := newTestCampaign()
	stronghold := setupRecruitmentGround(c)
	commander := addCommander(c, 1, 1)
	cfg := rules.Default()

	result, err := StartRecruitment(c, RecruitmentInput{
		Stronghold: stronghold, Commander: commander, RallyHexID: 1, PendingOrderID: 7,
	}, cfg)
	if err != nil {
		t.Fatalf("StartRecruitment err=%v", err)
	}
	project := result.Project
	// 420 人丁凑整到 400；好乡野格贡献骑兵与辎重车
	if project.Infantry != 400 {
		t.Fatalf("步兵期望 400, got %d", project.Infantry)
	}
	if project.Cavalry != 29 || project.Wagons != 6 {
		t.Fatalf("骑兵/辎重车期望 29/6, got %d/%d", project.Cavalry, project.Wagons)
	}
	if project.Noncombatants != 100 {
		t.Fatalf("随军人员期望 100, got %d", project.Noncombatants)
	}
	if project.CompletesOnDay != c.CurrentDay+30 {
		t.Fatalf("成军日期期望 +30 天, got %d", project.CompletesOnDay)
	}
	if len(project.SourceHexIDs) != 3 {
		t.Fatalf("腹地期望 3 格, got %v", project.SourceHexIDs)
	}
	for _, id := range project.SourceHexIDs {
		if day := c.Map.Hexes[id].LastRecruitedDay; day == nil || *day != c.CurrentDay {
			t.Fatalf("格 %d 应记录征募日期", id)
		}
	}
	// 首次征募不触发叛乱
	if project.RevoltTriggered || len(result.Revolts) != 0 {
		t.Fatalf("首次征募不该叛乱: %+v", result)
	}
	if c.Recruitments[project.ID] != project {
		t.Fatalf("项目未入册")
	}
}

func TestStartRecruitment_腹地归属最近据点(t *testing.T) {
	c := newTestCampaign()
	stronghold := setupRecruitmentGround(c)
	commander := addCommander(c, 1, 1)
	// 格 5 放一座更近格 3 的城：格 3 改投对方腹地
	faction := entity.FactionID(1)
	c.Map.Hexes[4].Settlement = 100
	c.Map.Hexes[4].ControllingFactionID = &faction
	c.Strongholds[2] = &entity.Stronghold{
		ID: 2, CampaignID: c.ID, HexID: 4, Type: entity.StrongholdCity, ControllingFactionID: faction,
	}

	result, err := StartRecruitment(c, RecruitmentInput{
		Stronghold: stronghold, Commander: commander, RallyHexID: 1, PendingOrderID: 1,
	}, rules.Default())
	if err != nil {
		t.Fatalf("StartRecruitment err=%v", err)
	}
	// 格 3 离城更近，只剩格 1、2 归本据点（260+120 凑整 400）
	if len(result.Project.SourceHexIDs) != 2 {
		t.Fatalf("腹地应只剩 2 格: %v", result.Project.SourceHexIDs)
	}
	if result.Project.Infantry != 400 {
		t.Fatalf("步兵期望 400, got %d", result.Project.Infantry)
	}
}

func TestStartRecruitment_无腹地报错(t *testing.T) {
	c := newTestCampaign()
	stronghold := &entity.Stronghold{ID: 1, HexID: 1, Type: entity.StrongholdTown, ControllingFactionID: 1}
	c.Strongholds[1] = stronghold
	commander := addCommander(c, 1, 1)

	if _, err := StartRecruitment(c, RecruitmentInput{
		Stronghold: stronghold, Commander: commander, RallyHexID: 1,
	}, rules.Default()); err == nil {
		t.Fatalf("没有聚落应报错")
	}
}

func TestCompleteRecruitment_成军(t *testing.T) {
	c := newTestCampaign()
	stronghold := setupRecruitmentGround(c)
	commander := addCommander(c, 1, 1)
	cfg := rules.Default()

	result, err := StartRecruitment(c, RecruitmentInput{
		Stronghold: stronghold, Commander: commander, RallyHexID: 2, PendingOrderID: 1,
	}, cfg)
	if err != nil {
		t.Fatalf("StartRecruitment err=%v", err)
	}
	c.CurrentDay = result.Project.CompletesOnDay

	completion, err := CompleteRecruitment(c, result.Project, RecruitmentCompletionOptions{
		ArmyName:     "Northern Levy",
		InfantryType: c.UnitTypes[utInfantry],
		CavalryType:  c.UnitTypes[utCavalry],
	}, cfg)
	if err != nil {
		t.Fatalf("CompleteRecruitment err=%v", err)
	}
	army := completion.Army
	if army.CurrentHexID != 2 {
		t.Fatalf("应在集结格成军, got %d", army.CurrentHexID)
	}
	if len(army.Detachments) != 2 || army.Detachments[0].Soldiers != 400 || army.Detachments[1].Soldiers != 29 {
		t.Fatalf("分队编成不符: %+v", army.Detachments)
	}
	if army.SuppliesCurrent != army.DailySupplyConsumption*14 {
		t.Fatalf("开拔补给应为 14 天口粮: current=%d consumption=%d", army.SuppliesCurrent, army.DailySupplyConsumption)
	}
	if army.MoraleCurrent != cfg.Morale.DefaultResting || army.MoraleMax != cfg.Morale.DefaultMax {
		t.Fatalf("新军士气不符: %d/%d", army.MoraleCurrent, army.MoraleMax)
	}
	if commander.CurrentHexID == nil || *commander.CurrentHexID != 2 {
		t.Fatalf("统帅应随军就位: %+v", commander.CurrentHexID)
	}
	if len(c.Recruitments) != 0 {
		t.Fatalf("成军后项目应销案: %+v", c.Recruitments)
	}
	if _, err := CompleteRecruitment(c, result.Project, RecruitmentCompletionOptions{ArmyName: "X"}, cfg); err == nil {
		t.Fatalf("缺步兵兵种应报错")
	}
}

func TestSpawnRevolt_规模与归属(t *testing.T) {
	c := newTestCampaign()
	c.CurrentDay = 5
	cfg := rules.Default()
	tile := c.Map.Hexes[4]

	armiesBefore := len(c.Armies)
	factionsBefore := len(c.Factions)
	army := SpawnRevolt(c, tile, cfg)

	roll := dicex.MustRoll(fmt.Sprintf("revolt-size:%d:%d", tile.ID, c.CurrentDay), "1d20").Total
	want := roll * 500
	if want < 500 {
		want = 500
	}
	if army.TotalSoldiers() != want {
		t.Fatalf("叛军规模期望 %d, got %d", want, army.TotalSoldiers())
	}
	if !army.StatusEffects.Revolt || army.CurrentHexID != 4 {
		t.Fatalf("叛军标记不符: %+v", army)
	}
	if len(c.Armies) != armiesBefore+1 || len(c.Factions) != factionsBefore+1 {
		t.Fatalf("应新建势力与军队")
	}
	commander := c.Commanders[army.CommanderID]
	if commander == nil || commander.FactionID == 0 {
		t.Fatalf("叛军统帅未登记")
	}
	if army.SuppliesCurrent != army.DailySupplyConsumption*14 {
		t.Fatalf("叛军应带 14 天口粮")
	}
}
