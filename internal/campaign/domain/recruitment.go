package domain

import (
	"errors"
	"fmt"
	"math"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
	"Cataphract/modules/kit/hexx"
)

// RecruitmentInput 是发起募兵所需的参数。
type RecruitmentInput struct {
	Stronghold     *entity.Stronghold
	Commander      *entity.Commander
	RallyHexID     entity.HexID
	PendingOrderID entity.OrderID
}

// RecruitmentResult 是募兵立项的结果。
type RecruitmentResult struct {
	Project *entity.RecruitmentProject
	Revolts []*entity.Army
	Detail  string
}

// RecruitmentCompletionOptions 控制成军时的兵种与命名。
type RecruitmentCompletionOptions struct {
	ArmyName     string
	InfantryType *entity.UnitType
	CavalryType  *entity.UnitType
}

// RecruitmentCompletion 是募兵完成的结果。
type RecruitmentCompletion struct {
	Army   *entity.Army
	Detail string
}

// StartRecruitment 以据点为中心圈定征募腹地并立项。
// 腹地是同势力、有聚落、且离本据点最近的格子；一年内重复征募会
// 触发 1/6 叛乱判定，刚征服地区概率翻倍。
func StartRecruitment(c *entity.Campaign, input RecruitmentInput, cfg *rules.Config) (RecruitmentResult, error) {
	eligible := eligibleRecruitmentHexes(c, input.Stronghold)
	if len(eligible) == 0 {
		return RecruitmentResult{}, errors.New("no eligible hexes for recruitment")
	}

	infantryRaw := 0
	cavalryRaw := 0.0
	wagonRaw := 0.0
	for _, hexID := range eligible {
		tile := c.Map.Hexes[hexID]
		infantryRaw += tile.Settlement
		if tile.IsGoodCountry {
			cavalryRaw += float64(tile.Settlement) * 0.25
			wagonRaw += float64(tile.Settlement) * 0.05
		}
	}
	if infantryRaw <= 0 {
		return RecruitmentResult{}, errors.New("recruitment area has zero settlement")
	}

	infantryTotal := roundToNearestHundred(float64(infantryRaw))
	if infantryTotal <= 0 {
		return RecruitmentResult{}, errors.New("recruitment yielded too few infantry")
	}

	scale := float64(infantryTotal) / float64(infantryRaw)
	cavalryTotal := 0
	if cavalryRaw > 0 {
		cavalryTotal = int(math.Round(cavalryRaw * scale))
	}
	wagonTotal := 0
	if wagonRaw > 0 {
		wagonTotal = int(math.Round(wagonRaw * scale))
	}
	noncombatants := int(float64(infantryTotal) * cfg.Supply.BaseNoncombatantRatio)

	var revolts []*entity.Army
	revoltTriggered := false
	for _, hexID := range eligible {
		tile := c.Map.Hexes[hexID]
		if shouldRecruitmentRevolt(c, tile, cfg) {
			revoltTriggered = true
			revolts = append(revolts, SpawnRevolt(c, tile, cfg))
		}
		day := c.CurrentDay
		tile.LastRecruitedDay = &day
	}

	project := &entity.RecruitmentProject{
		ID:              nextRecruitmentID(c),
		StrongholdID:    input.Stronghold.ID,
		FactionID:       input.Commander.FactionID,
		CommanderID:     input.Commander.ID,
		RallyHexID:      input.RallyHexID,
		StartedOnDay:    c.CurrentDay,
		CompletesOnDay:  c.CurrentDay + cfg.Recruitment.MusterDurationDays,
		Infantry:        infantryTotal,
		Cavalry:         cavalryTotal,
		Wagons:          wagonTotal,
		Noncombatants:   noncombatants,
		SourceHexIDs:    eligible,
		PendingOrderID:  input.PendingOrderID,
		RevoltTriggered: revoltTriggered,
	}
	c.Recruitments[project.ID] = project

	detail := fmt.Sprintf("recruitment underway; infantry=%d, cavalry=%d, wagons=%d, completes day %d",
		infantryTotal, cavalryTotal, wagonTotal, project.CompletesOnDay)
	return RecruitmentResult{Project: project, Revolts: revolts, Detail: detail}, nil
}

// CompleteRecruitment 募兵期满，在集结格成军。
func CompleteRecruitment(c *entity.Campaign, project *entity.RecruitmentProject, opts RecruitmentCompletionOptions, cfg *rules.Config) (RecruitmentCompletion, error) {
	commander := c.Commanders[project.CommanderID]
	if commander == nil {
		return RecruitmentCompletion{}, errors.New("assigned commander not found")
	}
	if c.Map.Hexes[project.RallyHexID] == nil {
		return RecruitmentCompletion{}, errors.New("rally hex not found")
	}
	if opts.InfantryType == nil {
		return RecruitmentCompletion{}, errors.New("infantry unit type required")
	}

	detachments := []*entity.Detachment{{
		ID:         nextDetachmentID(c),
		UnitTypeID: opts.InfantryType.ID,
		Soldiers:   project.Infantry,
		Wagons:     project.Wagons,
		Name:       opts.ArmyName + " Infantry",
	}}
	if project.Cavalry > 0 && opts.CavalryType != nil {
		detachments = append(detachments, &entity.Detachment{
			ID:         detachments[0].ID + 1,
			UnitTypeID: opts.CavalryType.ID,
			Soldiers:   project.Cavalry,
			Name:       opts.ArmyName + " Cavalry",
		})
	}

	army := &entity.Army{
		ID:                     nextArmyID(c),
		CampaignID:             c.ID,
		CommanderID:            commander.ID,
		CurrentHexID:           project.RallyHexID,
		Detachments:            detachments,
		Status:                 entity.ArmyIdle,
		MoraleCurrent:          cfg.Morale.DefaultResting,
		MoraleResting:          cfg.Morale.DefaultResting,
		MoraleMax:              cfg.Morale.DefaultMax,
		NoncombatantCount:      project.Noncombatants,
		NoncombatantPercentage: cfg.Supply.BaseNoncombatantRatio,
	}
	c.Armies[army.ID] = army
	rallyHexID := project.RallyHexID
	commander.CurrentHexID = &rallyHexID

	snapshot := BuildSupplySnapshot(c, army, cfg)
	army.SuppliesCapacity = snapshot.Capacity
	army.DailySupplyConsumption = snapshot.Consumption
	army.ColumnLengthMiles = snapshot.ColumnLengthMiles
	army.SuppliesCurrent = snapshot.Consumption * 14

	detail := fmt.Sprintf("army %s raised with %d infantry", opts.ArmyName, project.Infantry)
	if project.Cavalry > 0 {
		detail += fmt.Sprintf(" and %d cavalry", project.Cavalry)
	}

	delete(c.Recruitments, project.ID)
	return RecruitmentCompletion{Army: army, Detail: detail}, nil
}

// SpawnRevolt 就地拉起一支叛军（新势力 + 新指挥官 + 1d20×500 步兵）。
func SpawnRevolt(c *entity.Campaign, tile *entity.Hex, cfg *rules.Config) *entity.Army {
	faction := &entity.Faction{
		ID:         nextFactionID(c),
		CampaignID: c.ID,
		Name:       fmt.Sprintf("Rebels of Hex %d", tile.ID),
		Color:      "#777777",
	}
	c.Factions[faction.ID] = faction

	commanderID := nextCommanderID(c)
	commander := &entity.Commander{
		ID:         commanderID,
		CampaignID: c.ID,
		Name:       fmt.Sprintf("Rebel Leader %d", commanderID),
		FactionID:  faction.ID,
		Age:        30,
		Status:     "active",
	}
	c.Commanders[commander.ID] = commander

	roll := dicex.MustRoll(
		fmt.Sprintf("revolt-size:%d:%d", tile.ID, c.CurrentDay),
		fmt.Sprintf("1d%d", cfg.RevoltOutcome.InfantryDieSize),
	)
	infantry := maxInt(500, roll.Total*cfg.RevoltOutcome.InfantryMultiplier)

	army := &entity.Army{
		ID:           nextArmyID(c),
		CampaignID:   c.ID,
		CommanderID:  commander.ID,
		CurrentHexID: tile.ID,
		Detachments: []*entity.Detachment{{
			ID:         nextDetachmentID(c),
			UnitTypeID: defaultInfantryType(c),
			Soldiers:   infantry,
		}},
		Status:            entity.ArmyIdle,
		MoraleCurrent:     cfg.Morale.DefaultResting,
		MoraleResting:     cfg.Morale.DefaultResting,
		MoraleMax:         cfg.Morale.DefaultMax,
		NoncombatantCount: int(float64(infantry) * cfg.Supply.BaseNoncombatantRatio),
		StatusEffects:     entity.StatusEffects{Revolt: true},
	}
	c.Armies[army.ID] = army
	hexID := tile.ID
	commander.CurrentHexID = &hexID

	snapshot := BuildSupplySnapshot(c, army, cfg)
	army.SuppliesCapacity = snapshot.Capacity
	army.DailySupplyConsumption = snapshot.Consumption
	army.SuppliesCurrent = snapshot.Consumption * 14

	return army
}

// eligibleRecruitmentHexes 圈定据点的征募腹地：同势力、有聚落，
// 且没有别的据点离它更近（等距时 fortress > city > town，再比 ID）。
func eligibleRecruitmentHexes(c *entity.Campaign, stronghold *entity.Stronghold) []entity.HexID {
	strongholdHex := c.Map.Hexes[stronghold.HexID]
	if strongholdHex == nil {
		return nil
	}
	strongholdCoord := hexx.New(strongholdHex.Q, strongholdHex.R)
	priority := stronghold.RecruitmentPriority()

	var eligible []entity.HexID
	for _, tile := range c.Map.Hexes {
		if tile.ControllingFactionID == nil || *tile.ControllingFactionID != stronghold.ControllingFactionID {
			continue
		}
		if tile.Settlement <= 0 {
			continue
		}
		tileCoord := hexx.New(tile.Q, tile.R)
		distanceHere := hexx.Distance(tileCoord, strongholdCoord)
		closerElsewhere := false
		for _, other := range c.Strongholds {
			if other.ID == stronghold.ID {
				continue
			}
			otherHex := c.Map.Hexes[other.HexID]
			if otherHex == nil {
				continue
			}
			distanceOther := hexx.Distance(tileCoord, hexx.New(otherHex.Q, otherHex.R))
			if distanceOther < distanceHere {
				closerElsewhere = true
				break
			}
			if distanceOther == distanceHere {
				otherPriority := other.RecruitmentPriority()
				if otherPriority > priority || (otherPriority == priority && other.ID < stronghold.ID) {
					closerElsewhere = true
					break
				}
			}
		}
		if !closerElsewhere {
			eligible = append(eligible, tile.ID)
		}
	}
	return eligible
}

func roundToNearestHundred(value float64) int {
	return int(math.Round(value/100.0) * 100)
}

func shouldRecruitmentRevolt(c *entity.Campaign, tile *entity.Hex, cfg *rules.Config) bool {
	if tile.LastRecruitedDay == nil {
		return false
	}
	if c.CurrentDay-*tile.LastRecruitedDay > cfg.Recruitment.RecruitmentCooldownDays {
		return false
	}

	chance := cfg.Recruitment.RevoltChance
	recently := tile.LastControlChangeDay != nil &&
		c.CurrentDay-*tile.LastControlChangeDay <= cfg.Recruitment.RecentlyConqueredDays
	if recently {
		chance = minInt(6, chance*2)
	}
	if chance <= 0 {
		return false
	}

	seed := fmt.Sprintf("recruit-revolt:%d:%d", tile.ID, c.CurrentDay)
	return dicex.MustRoll(seed, "1d6").Total <= chance
}

func nextRecruitmentID(c *entity.Campaign) entity.RecruitmentID {
	next := entity.RecruitmentID(1)
	for id := range c.Recruitments {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func nextArmyID(c *entity.Campaign) entity.ArmyID {
	next := entity.ArmyID(1)
	for id := range c.Armies {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func nextFactionID(c *entity.Campaign) entity.FactionID {
	next := entity.FactionID(1)
	for id := range c.Factions {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func nextCommanderID(c *entity.Campaign) entity.CommanderID {
	next := entity.CommanderID(1)
	for id := range c.Commanders {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func nextDetachmentID(c *entity.Campaign) entity.DetachmentID {
	next := entity.DetachmentID(0)
	for _, army := range c.Armies {
		for _, det := range army.Detachments {
			if det.ID > next {
				next = det.ID
			}
		}
	}
	return next + 1
}

func defaultInfantryType(c *entity.Campaign) entity.UnitTypeID {
	var fallback entity.UnitTypeID
	for id, ut := range c.UnitTypes {
		if ut.Category == "infantry" {
			return id
		}
		if fallback == 0 || id < fallback {
			fallback = id
		}
	}
	if fallback != 0 {
		return fallback
	}
	return entity.UnitTypeID(1)
}
