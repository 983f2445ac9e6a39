package domain

import (
	"fmt"
	"strings"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

const commanderEscapeThreshold = 3

// OrderContext 是传给每个命令 handler 的共享上下文。
type OrderContext struct {
	Campaign *entity.Campaign
	DayPart  entity.DayPart
	Rules    *rules.Config
}

// OrderExecutionResult 是一次命令执行的产出。
type OrderExecutionResult struct {
	Status entity.OrderStatus
	Detail string
	Events []map[string]any
}

// OrderHandler 按命令类型注册的执行函数。
type OrderHandler func(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult

var orderHandlers = map[string]OrderHandler{
	"move":             handleMove,
	"rest":             handleRest,
	"forage":           handleForage,
	"torch":            handleTorch,
	"supply_transfer":  handleSupplyTransfer,
	"besiege":          handleBesiege,
	"assault":          handleAssault,
	"embark":           handleEmbark,
	"disembark":        handleDisembark,
	"naval_move":       handleNavalMove,
	"send_message":     handleSendMessage,
	"launch_operation": handleLaunchOperation,
	"raise_army":       handleRaiseArmy,
	"harry":            handleHarry,
}

// KnownOrderType 判断命令类型是否有注册 handler。
func KnownOrderType(orderType string) bool {
	_, ok := orderHandlers[orderType]
	return ok
}

// ExecuteOrder 执行一条待处理命令并回写其状态与结果。
func ExecuteOrder(ctx *OrderContext, order *entity.Order) OrderExecutionResult {
	if order.Status != entity.OrderPending && order.Status != entity.OrderExecuting {
		return OrderExecutionResult{Status: order.Status, Detail: "order already resolved"}
	}

	handler := orderHandlers[order.OrderType]
	if handler == nil {
		detail := fmt.Sprintf("unsupported order type: %s", order.OrderType)
		order.Status = entity.OrderFailed
		order.Result = map[string]any{"detail": detail}
		return OrderExecutionResult{Status: entity.OrderFailed, Detail: detail}
	}

	var army *entity.Army
	if order.ArmyID != nil {
		army = ctx.Campaign.Armies[*order.ArmyID]
		if army == nil {
			detail := fmt.Sprintf("army %d not found", *order.ArmyID)
			order.Status = entity.OrderFailed
			order.Result = map[string]any{"detail": detail}
			return OrderExecutionResult{Status: entity.OrderFailed, Detail: detail}
		}
	}

	order.Status = entity.OrderExecuting
	result := handler(ctx, order, army)
	order.Status = result.Status
	if result.Detail != "" || len(result.Events) > 0 {
		order.Result = map[string]any{"detail": result.Detail, "events": result.Events}
	} else {
		order.Result = nil
	}
	return result
}

func failure(detail string) OrderExecutionResult {
	return OrderExecutionResult{Status: entity.OrderFailed, Detail: detail}
}

func completed(detail string, events ...map[string]any) OrderExecutionResult {
	return OrderExecutionResult{Status: entity.OrderCompleted, Detail: detail, Events: events}
}

// ---------------------------------------------------------------------------
// 行军

type movementPlan struct {
	movementType    entity.MovementType
	legs            []entity.MovementLeg
	totalFraction   float64
	finalHex        entity.HexID
	diverted        bool
	diversionDetail string
}

func handleMove(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("movement order requires an army")
	}

	plan, err := prepareMovementPlan(ctx, army, order)
	if err != nil {
		return failure(err.Error())
	}

	army.CurrentHexID = plan.finalHex
	army.DestinationHexID = nil
	army.MovementPointsRemaining = maxFloat(0, 1.0-plan.totalFraction)
	army.DaysMarchedThisWeek++

	anyNightLeg := false
	for _, leg := range plan.legs {
		if leg.IsNight {
			anyNightLeg = true
			break
		}
	}
	switch {
	case plan.movementType == entity.MoveForced:
		army.Status = entity.ArmyForcedMarch
		army.ForcedMarchDays += plan.totalFraction
	case plan.movementType == entity.MoveNight || anyNightLeg:
		army.Status = entity.ArmyNightMarch
	default:
		army.Status = entity.ArmyMarching
	}

	detail := fmt.Sprintf("moved to hex %d via %d leg(s)", plan.finalHex, len(plan.legs))
	if plan.diverted && plan.diversionDetail != "" {
		detail += fmt.Sprintf(" (%s)", plan.diversionDetail)
	}
	return completed(detail)
}

func prepareMovementPlan(ctx *OrderContext, army *entity.Army, order *entity.Order) (movementPlan, error) {
	movementType := entity.MovementType(paramString(order.Parameters, "movement_type", string(entity.MoveStandard)))
	switch movementType {
	case entity.MoveStandard, entity.MoveForced, entity.MoveNight:
	default:
		return movementPlan{}, fmt.Errorf("invalid movement type: %s", movementType)
	}

	var legs []entity.MovementLeg
	var err error
	if legsRaw, ok := order.Parameters["legs"].([]any); ok && len(legsRaw) > 0 {
		legs, err = buildMovementLegs(army, legsRaw)
	} else if dest, ok := paramInt(order.Parameters, "destination_hex_id"); ok {
		legs, err = routeMovementLegs(ctx, army, entity.HexID(dest),
			paramBool(order.Parameters, "allow_off_road", false))
	} else {
		return movementPlan{}, fmt.Errorf("movement order requires legs or destination_hex_id")
	}
	if err != nil {
		return movementPlan{}, err
	}

	offRoad := make([]bool, len(legs))
	fords := make([]bool, len(legs))
	anyNight := movementType == entity.MoveNight
	for i, leg := range legs {
		offRoad[i] = !leg.OnRoad
		fords[i] = leg.HasRiverFord
		if leg.IsNight {
			anyNight = true
		}
	}
	if err := ValidateMovementOrder(army, offRoad, fords, anyNight); err != nil {
		return movementPlan{}, err
	}

	totalFraction := 0.0
	finalHex := army.CurrentHexID
	diverted := false
	diversionDetail := ""
	var travelled []entity.MovementLeg

	for index, leg := range legs {
		legType := movementType
		if leg.IsNight {
			legType = entity.MoveNight
		}
		allowance := DailyMovementMiles(ctx.Campaign, army, legType, leg.OnRoad, ctx.Rules)
		if allowance <= 0 {
			return movementPlan{}, fmt.Errorf("movement allowance is zero for a leg")
		}
		totalFraction += leg.DistanceMiles / allowance
		travelled = append(travelled, leg)
		finalHex = leg.ToHexID

		if (movementType == entity.MoveNight || leg.IsNight) && leg.HasFork && !diverted {
			seed := fmt.Sprintf("night-fork:%d:%d:%d", order.ID, ctx.Campaign.CurrentDay, index+1)
			if ShouldTakeWrongFork(seed, ctx.Rules) {
				if leg.AlternateHexID == nil {
					return movementPlan{}, fmt.Errorf("night fork requires alternate_hex_id")
				}
				finalHex = *leg.AlternateHexID
				diverted = true
				diversionDetail = fmt.Sprintf("took wrong fork on leg %d", index+1)
				break
			}
		}
	}

	if totalFraction > 1.0 {
		return movementPlan{}, fmt.Errorf("movement exceeds daily allowance")
	}

	return movementPlan{
		movementType:    movementType,
		legs:            travelled,
		totalFraction:   totalFraction,
		finalHex:        finalHex,
		diverted:        diverted,
		diversionDetail: diversionDetail,
	}, nil
}

// routeMovementLegs 只给目的格时按道路图寻路，把路线换算成行军段。
func routeMovementLegs(ctx *OrderContext, army *entity.Army, dest entity.HexID, allowOffRoad bool) ([]entity.MovementLeg, error) {
	route, err := FindRoute(ctx.Campaign, army.CurrentHexID, dest, ctx.Campaign.Season, allowOffRoad, army)
	if err != nil {
		return nil, err
	}
	if len(route) == 0 {
		return nil, fmt.Errorf("army is already at hex %d", dest)
	}
	if err := CanArmyTravelRoute(route, army); err != nil {
		return nil, err
	}

	legs := make([]entity.MovementLeg, 0, len(route))
	for _, step := range route {
		legs = append(legs, entity.MovementLeg{
			FromHexID:     step.FromHexID,
			ToHexID:       step.ToHexID,
			DistanceMiles: step.DistanceMiles,
			OnRoad:        step.IsRoad,
			HasRiverFord:  step.RequiresCrossing && step.CrossingType == "ford",
		})
	}
	return legs, nil
}

func buildMovementLegs(army *entity.Army, legsRaw []any) ([]entity.MovementLeg, error) {
	legs := make([]entity.MovementLeg, 0, len(legsRaw))
	currentFrom := army.CurrentHexID
	for _, raw := range legsRaw {
		payload, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("movement leg must be an object")
		}
		toHex, ok := paramInt(payload, "to_hex_id")
		if !ok {
			return nil, fmt.Errorf("movement leg missing to_hex_id")
		}
		distance := paramFloat(payload, "distance_miles", 0)
		if distance <= 0 {
			return nil, fmt.Errorf("movement leg requires positive distance")
		}
		leg := entity.MovementLeg{
			FromHexID:     currentFrom,
			ToHexID:       entity.HexID(toHex),
			DistanceMiles: distance,
			OnRoad:        paramBool(payload, "on_road", true),
			HasRiverFord:  paramBool(payload, "has_river_ford", false),
			IsNight:       paramBool(payload, "is_night", false),
			HasFork:       paramBool(payload, "has_fork", false),
		}
		if alt, ok := paramInt(payload, "alternate_hex_id"); ok {
			altID := entity.HexID(alt)
			leg.AlternateHexID = &altID
		}
		if leg.HasFork && leg.AlternateHexID == nil {
			return nil, fmt.Errorf("movement leg with fork requires alternate_hex_id")
		}
		legs = append(legs, leg)
		currentFrom = leg.ToHexID
	}
	return legs, nil
}

// ---------------------------------------------------------------------------
// 休整 / 征粮 / 焚掠 / 补给转运

func handleRest(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("rest order requires an army")
	}

	if harried := army.StatusEffects.Harried; harried != nil && harried.Day == ctx.Campaign.CurrentDay {
		return failure("army is harried and cannot rest today")
	}

	duration := paramIntDefault(order.Parameters, "duration_days", 1)
	if duration <= 0 {
		return failure("rest duration must be positive")
	}

	startDay := ctx.Campaign.CurrentDay
	army.Status = entity.ArmyResting
	army.RestDurationDays = duration
	army.RestStartedDay = &startDay
	army.DaysMarchedThisWeek = 0
	army.MovementPointsRemaining = 0
	army.DestinationHexID = nil
	AdjustMorale(army, maxInt(0, army.MoraleResting-army.MoraleCurrent), army.MoraleMax)

	return completed(fmt.Sprintf("resting for %d day(s)", duration))
}

func handleForage(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("forage order requires an army")
	}
	hexIDs := hexIDList(order.Parameters["hex_ids"])
	if len(hexIDs) == 0 {
		return failure("forage order missing hex_ids")
	}

	seed := fmt.Sprintf("forage:%d:%d", army.ID, ctx.Campaign.CurrentDay)
	outcome := Forage(ctx.Campaign, army, hexIDs, seed, ctx.Rules)
	detail := fmt.Sprintf("foraged %d hex(es)", len(outcome.ForagedHexes))
	if outcome.SuppliesGained > 0 {
		detail += fmt.Sprintf(" gaining %d supplies", outcome.SuppliesGained)
	}
	if len(outcome.RevoltHexes) > 0 {
		detail += "; revolt triggered"
		spawnRevoltsForHexes(ctx, outcome.RevoltHexes)
	}
	if !outcome.Success {
		return failure(detail)
	}
	army.Status = entity.ArmyForaging
	return completed(detail)
}

func handleTorch(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("torch order requires an army")
	}
	hexIDs := hexIDList(order.Parameters["hex_ids"])
	if len(hexIDs) == 0 {
		return failure("torch order missing hex_ids")
	}

	seed := fmt.Sprintf("torch:%d:%d", army.ID, ctx.Campaign.CurrentDay)
	outcome := Torch(ctx.Campaign, army, hexIDs, seed, ctx.Rules)
	detail := fmt.Sprintf("torched %d hex(es)", len(outcome.TorchedHexes))
	if len(outcome.RevoltHexes) > 0 {
		detail += "; revolt triggered"
		spawnRevoltsForHexes(ctx, outcome.RevoltHexes)
	}
	if !outcome.Success {
		return failure(detail)
	}
	army.Status = entity.ArmyTorching
	return completed(detail)
}

func spawnRevoltsForHexes(ctx *OrderContext, hexIDs []entity.HexID) {
	for _, hexID := range hexIDs {
		if tile := ctx.Campaign.Map.Hexes[hexID]; tile != nil {
			SpawnRevolt(ctx.Campaign, tile, ctx.Rules)
		}
	}
}

func handleSupplyTransfer(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("supply transfer requires an army")
	}
	targetID, ok1 := paramInt(order.Parameters, "target_army_id")
	amount, ok2 := paramInt(order.Parameters, "amount")
	if !ok1 || !ok2 {
		return failure("supply transfer requires target_army_id and amount")
	}
	if amount <= 0 {
		return failure("transfer amount must be positive")
	}
	target := ctx.Campaign.Armies[entity.ArmyID(targetID)]
	if target == nil {
		return failure("target army not found")
	}

	available := minInt(amount, army.SuppliesCurrent)
	capacity := maxInt(0, target.SuppliesCapacity-target.SuppliesCurrent)
	transfer := minInt(available, capacity)
	if transfer <= 0 {
		return failure("no supplies transferable")
	}

	army.SuppliesCurrent -= transfer
	target.SuppliesCurrent += transfer
	return completed(fmt.Sprintf("transferred %d supplies to army %d", transfer, targetID))
}

// ---------------------------------------------------------------------------
// 围城 / 强攻

func handleBesiege(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("besiege order requires an army")
	}
	strongholdID, ok := paramInt(order.Parameters, "stronghold_id")
	if !ok {
		return failure("besiege order missing stronghold_id")
	}
	stronghold := ctx.Campaign.Strongholds[entity.StrongholdID(strongholdID)]
	if stronghold == nil {
		return failure("stronghold not found")
	}
	siegeEngines := paramIntDefault(order.Parameters, "siege_engines", 0)

	existing := findSiegeByStronghold(ctx.Campaign, stronghold.ID)
	if existing == nil {
		existing = &entity.Siege{
			ID:                nextSiegeID(ctx.Campaign),
			StrongholdID:      stronghold.ID,
			AttackerArmyIDs:   []entity.ArmyID{army.ID},
			DefenderArmyID:    stronghold.GarrisonArmyID,
			StartedOnDay:      ctx.Campaign.CurrentDay,
			CurrentThreshold:  stronghold.CurrentThreshold,
			SiegeEnginesCount: siegeEngines,
			Status:            entity.SiegeOngoing,
		}
		ctx.Campaign.Sieges[existing.ID] = existing
	} else if !containsArmy(existing.AttackerArmyIDs, army.ID) {
		existing.AttackerArmyIDs = append(existing.AttackerArmyIDs, army.ID)
	}

	army.Status = entity.ArmyBesieging
	return completed(fmt.Sprintf("besieging stronghold %d", strongholdID))
}

func handleAssault(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("assault order requires an army")
	}

	stronghold, defender, siege, opts, err := prepareAssaultContext(ctx, order)
	if err != nil {
		return failure(err.Error())
	}

	army.Status = entity.ArmyInBattle
	defender.Status = entity.ArmyInBattle

	opts.Seed = fmt.Sprintf("assault:%d:%d", order.ID, ctx.Campaign.CurrentDay)
	result := ResolveBattle([]*entity.Army{army}, []*entity.Army{defender}, ctx.Campaign.UnitTypes, opts, ctx.Rules)

	// 强攻比野战更血腥，败方额外折损一成。
	if result.Winner == "attacker" {
		applyAdditionalLosses(defender, 0.10)
	} else {
		applyAdditionalLosses(army, 0.10)
	}

	var events []map[string]any
	detailParts := []string{fmt.Sprintf("assault result: %s", result.Winner)}

	if result.Winner == "attacker" {
		captureDetail, captureEvents := resolveStrongholdCapture(ctx, army, defender, stronghold, siege, paramBool(order.Parameters, "pillage", false))
		if captureDetail != "" {
			detailParts = append(detailParts, captureDetail)
		}
		events = append(events, captureEvents...)
	}

	if army.Status != entity.ArmyRouted {
		army.Status = entity.ArmyIdle
	}
	if result.Winner == "attacker" {
		defender.Status = entity.ArmyRouted
	} else if defender.Status != entity.ArmyRouted {
		defender.Status = entity.ArmyIdle
	}
	return completed(strings.Join(detailParts, "; "), events...)
}

func prepareAssaultContext(ctx *OrderContext, order *entity.Order) (*entity.Stronghold, *entity.Army, *entity.Siege, BattleOptions, error) {
	strongholdID, ok := paramInt(order.Parameters, "stronghold_id")
	if !ok {
		return nil, nil, nil, BattleOptions{}, fmt.Errorf("assault order missing stronghold_id")
	}
	stronghold := ctx.Campaign.Strongholds[entity.StrongholdID(strongholdID)]
	if stronghold == nil {
		return nil, nil, nil, BattleOptions{}, fmt.Errorf("stronghold not found")
	}
	if stronghold.GarrisonArmyID == nil {
		return nil, nil, nil, BattleOptions{}, fmt.Errorf("stronghold has no garrison army")
	}
	defender := ctx.Campaign.Armies[*stronghold.GarrisonArmyID]
	if defender == nil {
		return nil, nil, nil, BattleOptions{}, fmt.Errorf("stronghold has no garrison army")
	}

	siege := findSiegeByStronghold(ctx.Campaign, stronghold.ID)
	defenderBonus := stronghold.DefensiveBonus
	if siege != nil {
		defenderBonus = maxInt(0, defenderBonus-siege.SiegeEnginesCount)
	}

	opts := BattleOptions{
		AttackerModifier: -1 + paramIntDefault(order.Parameters, "attacker_modifier", 0),
		DefenderModifier: defenderBonus + paramIntDefault(order.Parameters, "defender_modifier", 0),
	}
	if fixed, ok := paramInt(order.Parameters, "attacker_fixed_roll"); ok && order.ArmyID != nil {
		opts.AttackerFixedRolls = map[entity.ArmyID]int{*order.ArmyID: fixed}
	}
	if fixed, ok := paramInt(order.Parameters, "defender_fixed_roll"); ok {
		opts.DefenderFixedRolls = map[entity.ArmyID]int{defender.ID: fixed}
	}
	return stronghold, defender, siege, opts, nil
}

func resolveStrongholdCapture(ctx *OrderContext, attacker, defender *entity.Army, stronghold *entity.Stronghold, siege *entity.Siege, pillage bool) (string, []map[string]any) {
	commander := ctx.Campaign.Commanders[attacker.CommanderID]

	if commander != nil {
		stronghold.ControllingFactionID = commander.FactionID
	}
	stronghold.GatesOpen = true
	garrisonID := attacker.ID
	stronghold.GarrisonArmyID = &garrisonID
	if siege != nil {
		siege.Status = entity.SiegeSuccessfulAssault
	}

	var details []string
	var events []map[string]any

	if gain := captureSupplyGain(stronghold, siege); gain > 0 {
		capacity := maxInt(0, attacker.SuppliesCapacity-attacker.SuppliesCurrent)
		loaded := minInt(gain, capacity)
		attacker.SuppliesCurrent += loaded
		stored := gain - loaded
		stronghold.SuppliesHeld += stored
		detail := fmt.Sprintf("captured %d supplies", gain)
		if loaded > 0 {
			detail += fmt.Sprintf(" (%d loaded)", loaded)
		}
		details = append(details, detail)
		events = append(events, map[string]any{
			"type": "capture_supplies", "amount": gain, "loaded": loaded, "stored": stored,
		})
	}

	if ratio := captureNoncombatantRatio(stronghold.Type); ratio > 0 {
		basePool := attacker.NoncombatantCount
		if basePool == 0 {
			basePool = attacker.TotalSoldiers()
		}
		gain := maxInt(1, int(float64(basePool)*ratio+0.5))
		attacker.NoncombatantCount += gain
		details = append(details, fmt.Sprintf("gained %d camp followers", gain))
		events = append(events, map[string]any{"type": "noncombatant_gain", "amount": gain})
	}

	if pillage {
		lootTaken := stronghold.LootHeld / 2
		stronghold.LootHeld -= lootTaken
		attacker.LootCarried += lootTaken

		suppliesTaken := stronghold.SuppliesHeld / 2
		stronghold.SuppliesHeld -= suppliesTaken
		capacity := maxInt(0, attacker.SuppliesCapacity-attacker.SuppliesCurrent)
		loaded := minInt(suppliesTaken, capacity)
		attacker.SuppliesCurrent += loaded

		AdjustMorale(attacker, 2, attacker.MoraleMax)
		details = append(details, fmt.Sprintf("pillage authorised (%d loot, %d supplies)", lootTaken, loaded))
		events = append(events, map[string]any{"type": "pillage", "loot": lootTaken, "supplies": loaded})
	} else {
		// 破城不纵掠需要军纪判定，输了照士气后果表走。
		seed := fmt.Sprintf("discipline:%d:%d", attacker.ID, ctx.Campaign.CurrentDay)
		success, roll := RollMoraleCheck(attacker.MoraleCurrent, seed)
		if !success {
			var traits []*entity.Trait
			if commander != nil {
				traits = commander.Traits
			}
			ApplyMoraleConsequence(attacker, roll, traits, seed+":consequence", ctx.Campaign.CurrentDay)
			details = append(details, "discipline check failed")
			events = append(events, map[string]any{"type": "discipline_failed", "roll": roll})
		}
	}

	if fate := resolveDefenderCommander(ctx.Campaign, defender, commander); fate != nil {
		details = append(details, fate["detail"].(string))
		delete(fate, "detail")
		events = append(events, fate)
	}

	return strings.Join(details, "; "), events
}

func resolveDefenderCommander(c *entity.Campaign, defender *entity.Army, attackerCommander *entity.Commander) map[string]any {
	defenderCommander := c.Commanders[defender.CommanderID]
	if defenderCommander == nil {
		return nil
	}

	seed := fmt.Sprintf("assault-escape:%d:%d", defenderCommander.ID, c.CurrentDay)
	if dicex.MustRoll(seed, "1d6").Total <= commanderEscapeThreshold {
		defenderCommander.Status = "escaped"
		defenderCommander.CurrentHexID = nil
		return map[string]any{
			"detail": "defender commander escaped",
			"type":   "commander_escaped", "commander_id": int(defenderCommander.ID),
		}
	}

	defenderCommander.Status = "captured"
	if attackerCommander != nil {
		factionID := attackerCommander.FactionID
		defenderCommander.CapturedByFactionID = &factionID
	}
	return map[string]any{
		"detail": "defender commander captured",
		"type":   "commander_captured", "commander_id": int(defenderCommander.ID),
	}
}

// captureSupplyGain 破城缴获：(1d6 - 围城周数) × 据点系数。
func captureSupplyGain(stronghold *entity.Stronghold, siege *entity.Siege) int {
	weeks := 0
	if siege != nil {
		weeks = siege.WeeksElapsed
	}
	var multiplier int
	switch stronghold.Type {
	case entity.StrongholdTown:
		multiplier = 10_000
	case entity.StrongholdCity:
		multiplier = 100_000
	case entity.StrongholdFortress:
		multiplier = 1_000
	}
	if multiplier <= 0 {
		return 0
	}
	roll := dicex.MustRoll(fmt.Sprintf("capture-supply:%d:%d", stronghold.ID, weeks), "1d6").Total
	return maxInt(0, roll-weeks) * multiplier
}

func captureNoncombatantRatio(strongholdType entity.StrongholdType) float64 {
	switch strongholdType {
	case entity.StrongholdFortress:
		return 0.05
	case entity.StrongholdTown:
		return 0.10
	case entity.StrongholdCity:
		return 0.15
	}
	return 0
}

// ---------------------------------------------------------------------------
// 海运

func handleEmbark(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("embark order requires an army")
	}
	ship, err := lookupShip(ctx, order, "embark order missing ship_id")
	if err != nil {
		return failure(err.Error())
	}
	result := EmbarkArmy(army, ship, ctx.Rules)
	if !result.Success {
		return failure(result.Detail)
	}
	return completed(result.Detail)
}

func handleDisembark(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("disembark order requires an army")
	}
	ship, err := lookupShip(ctx, order, "disembark order missing ship_id")
	if err != nil {
		return failure(err.Error())
	}
	result := DisembarkArmy(army, ship, ctx.Rules)
	if !result.Success {
		return failure(result.Detail)
	}
	return completed(result.Detail)
}

func handleNavalMove(ctx *OrderContext, order *entity.Order, _ *entity.Army) OrderExecutionResult {
	ship, err := lookupShip(ctx, order, "naval move requires ship_id")
	if err != nil {
		return failure(err.Error())
	}
	route := hexIDList(order.Parameters["route"])
	if len(route) == 0 {
		return failure("naval move requires route")
	}
	result := SetCourse(ctx.Campaign, ship, route, ctx.Rules)
	if !result.Success {
		return failure(result.Detail)
	}
	return completed(result.Detail)
}

func lookupShip(ctx *OrderContext, order *entity.Order, missingDetail string) (*entity.Ship, error) {
	shipID, ok := paramInt(order.Parameters, "ship_id")
	if !ok {
		return nil, fmt.Errorf("%s", missingDetail)
	}
	ship := ctx.Campaign.Ships[entity.ShipID(shipID)]
	if ship == nil {
		return nil, fmt.Errorf("ship not found")
	}
	return ship, nil
}

// ---------------------------------------------------------------------------
// 信使 / 谍报

func handleSendMessage(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	recipientID, ok := paramInt(order.Parameters, "recipient_id")
	if !ok {
		return failure("send_message requires recipient_id")
	}

	sender := order.CommanderID
	if army != nil {
		sender = army.CommanderID
	}

	message := &entity.Message{
		ID:            nextMessageID(ctx.Campaign),
		CampaignID:    ctx.Campaign.ID,
		SenderID:      sender,
		RecipientID:   entity.CommanderID(recipientID),
		Content:       paramString(order.Parameters, "content", ""),
		SentAt:        order.IssuedAt,
		TerritoryType: entity.MessengerTerritory(strings.ToLower(paramString(order.Parameters, "territory_type", "friendly"))),
		Status:        "pending",
	}

	var fromHex *entity.HexID
	if army != nil {
		hexID := army.CurrentHexID
		fromHex = &hexID
	}
	var toHex *entity.HexID
	if recipient := ctx.Campaign.Commanders[message.RecipientID]; recipient != nil {
		toHex = recipient.CurrentHexID
	}

	result := DispatchMessage(ctx.Campaign, message, fromHex, toHex, ctx.Rules)
	if !result.Success {
		return failure(result.Detail)
	}
	return completed(result.Detail)
}

func handleLaunchOperation(ctx *OrderContext, order *entity.Order, _ *entity.Army) OrderExecutionResult {
	var operation *entity.Operation
	if opID, ok := paramInt(order.Parameters, "operation_id"); ok {
		operation = ctx.Campaign.Operations[entity.OperationID(opID)]
	}

	if operation == nil {
		targetDescriptor := map[string]any{}
		if raw, ok := order.Parameters["target_descriptor"].(map[string]any); ok {
			targetDescriptor = raw
		}

		operationType := entity.OperationType(paramString(order.Parameters, "operation_type", string(entity.OpIntelligence)))
		switch operationType {
		case entity.OpIntelligence, entity.OpAssassination, entity.OpSabotage:
		default:
			operationType = entity.OpIntelligence
		}

		operation = &entity.Operation{
			ID:                 nextOperationID(ctx.Campaign),
			CommanderID:        order.CommanderID,
			OperationType:      operationType,
			TargetDescriptor:   targetDescriptor,
			LootCost:           paramIntDefault(order.Parameters, "loot_cost", ctx.Rules.Operations.LootCostDefault),
			Complexity:         paramString(order.Parameters, "complexity", "standard"),
			TerritoryType:      entity.MessengerTerritory(paramString(order.Parameters, "territory_type", "friendly")),
			DifficultyModifier: paramIntDefault(order.Parameters, "difficulty_modifier", 0),
			Outcome:            entity.OutcomePending,
		}
		ctx.Campaign.Operations[operation.ID] = operation
	}

	outcome := ResolveOperation(ctx.Campaign, operation, "", ctx.Rules)
	return completed(outcome.Detail)
}

// ---------------------------------------------------------------------------
// 募兵（两阶段：立项 -> 期满成军）

func handleRaiseArmy(ctx *OrderContext, order *entity.Order, _ *entity.Army) OrderExecutionResult {
	if projectID, ok := paramInt(order.Parameters, "_project_id"); ok {
		return completeRaiseArmy(ctx, order, entity.RecruitmentID(projectID))
	}
	return startRaiseArmy(ctx, order)
}

func startRaiseArmy(ctx *OrderContext, order *entity.Order) OrderExecutionResult {
	strongholdID, ok := paramInt(order.Parameters, "stronghold_id")
	if !ok {
		return failure("stronghold_id must be an int")
	}
	stronghold := ctx.Campaign.Strongholds[entity.StrongholdID(strongholdID)]
	if stronghold == nil {
		return failure("stronghold not found")
	}

	commanderID, ok := paramInt(order.Parameters, "new_commander_id")
	if !ok {
		return failure("commander not found")
	}
	commander := ctx.Campaign.Commanders[entity.CommanderID(commanderID)]
	if commander == nil {
		return failure("commander not found")
	}

	infantryType, err := lookupUnitType(ctx, order.Parameters["infantry_unit_type_id"])
	if err != nil {
		return failure(err.Error())
	}

	var cavalryTypeID *entity.UnitTypeID
	if raw, ok := order.Parameters["cavalry_unit_type_id"]; ok && raw != nil {
		cavalryType, err := lookupUnitType(ctx, raw)
		if err != nil {
			return failure(err.Error())
		}
		cavalryTypeID = &cavalryType.ID
	}

	rallyRaw := order.Parameters["rally_hex_id"]
	if rallyRaw == nil {
		rallyRaw = order.Parameters["stronghold_id"]
	}
	rallyID, ok := anyToInt(rallyRaw)
	if !ok || ctx.Campaign.Map.Hexes[entity.HexID(rallyID)] == nil {
		return failure("rally hex not found")
	}

	armyName := paramString(order.Parameters, "army_name", commander.Name)

	result, err := StartRecruitment(ctx.Campaign, RecruitmentInput{
		Stronghold:     stronghold,
		Commander:      commander,
		RallyHexID:     entity.HexID(rallyID),
		PendingOrderID: order.ID,
	}, ctx.Rules)
	if err != nil {
		return failure(err.Error())
	}

	order.Parameters["_project_id"] = int(result.Project.ID)
	order.Parameters["infantry_unit_type_id"] = int(infantryType.ID)
	if cavalryTypeID != nil {
		order.Parameters["_cavalry_type_id"] = int(*cavalryTypeID)
	}
	order.Parameters["army_name"] = armyName
	completesDay := result.Project.CompletesOnDay
	order.ExecuteDay = &completesDay

	var events []map[string]any
	if len(result.Revolts) > 0 {
		armyIDs := make([]int, 0, len(result.Revolts))
		for _, revolt := range result.Revolts {
			armyIDs = append(armyIDs, int(revolt.ID))
		}
		events = append(events, map[string]any{"type": "recruitment_revolt", "army_ids": armyIDs})
	}
	return OrderExecutionResult{Status: entity.OrderExecuting, Detail: result.Detail, Events: events}
}

func completeRaiseArmy(ctx *OrderContext, order *entity.Order, projectID entity.RecruitmentID) OrderExecutionResult {
	project := ctx.Campaign.Recruitments[projectID]
	if project == nil {
		return failure("recruitment project missing")
	}

	if ctx.Campaign.CurrentDay < project.CompletesOnDay {
		remaining := project.CompletesOnDay - ctx.Campaign.CurrentDay
		completesDay := project.CompletesOnDay
		order.ExecuteDay = &completesDay
		return OrderExecutionResult{
			Status: entity.OrderExecuting,
			Detail: fmt.Sprintf("recruitment in progress; %d day(s) remaining", remaining),
		}
	}

	infantryType, err := lookupUnitType(ctx, order.Parameters["infantry_unit_type_id"])
	if err != nil {
		return failure(err.Error())
	}
	var cavalryType *entity.UnitType
	if raw, ok := order.Parameters["_cavalry_type_id"]; ok && raw != nil {
		cavalryType, err = lookupUnitType(ctx, raw)
		if err != nil {
			return failure(err.Error())
		}
	}

	completion, err := CompleteRecruitment(ctx.Campaign, project, RecruitmentCompletionOptions{
		ArmyName:     paramString(order.Parameters, "army_name", "Raised Army"),
		InfantryType: infantryType,
		CavalryType:  cavalryType,
	}, ctx.Rules)
	if err != nil {
		return failure(err.Error())
	}
	return completed(completion.Detail)
}

func lookupUnitType(ctx *OrderContext, raw any) (*entity.UnitType, error) {
	typeID, ok := anyToInt(raw)
	if !ok {
		return nil, fmt.Errorf("unit type id must be an int")
	}
	unitType := ctx.Campaign.UnitTypes[entity.UnitTypeID(typeID)]
	if unitType == nil {
		return nil, fmt.Errorf("unit type not found")
	}
	return unitType, nil
}

// ---------------------------------------------------------------------------
// 袭扰

func handleHarry(ctx *OrderContext, order *entity.Order, army *entity.Army) OrderExecutionResult {
	if army == nil {
		return failure("harry order requires an army")
	}

	detIDsRaw, ok := order.Parameters["detachment_ids"].([]any)
	if !ok || len(detIDsRaw) == 0 {
		return failure("harry order requires detachment_ids")
	}
	wanted := make(map[entity.DetachmentID]struct{}, len(detIDsRaw))
	for _, raw := range detIDsRaw {
		id, ok := anyToInt(raw)
		if !ok {
			return failure("detachment_ids must be integers")
		}
		wanted[entity.DetachmentID(id)] = struct{}{}
	}
	var selected []*entity.Detachment
	for _, det := range army.Detachments {
		if _, ok := wanted[det.ID]; ok {
			selected = append(selected, det)
		}
	}
	if len(selected) == 0 {
		return failure("no matching detachments for harrying")
	}

	targetID, ok := paramInt(order.Parameters, "target_army_id")
	if !ok {
		return failure("harry order requires target_army_id")
	}
	target := ctx.Campaign.Armies[entity.ArmyID(targetID)]
	if target == nil {
		return failure("target army not found")
	}

	objective := strings.ToLower(paramString(order.Parameters, "objective", HarryObjectiveKill))
	outcome, err := ResolveHarrying(ctx.Campaign, army, target, selected, objective)
	if err != nil {
		return failure(err.Error())
	}

	event := map[string]any{
		"type":                 "harry",
		"success":              outcome.Success,
		"target_army_id":       targetID,
		"objective":            objective,
		"roll":                 outcome.Roll,
		"modifier":             outcome.Modifier,
		"inflicted_casualties": outcome.InflictedCasualties,
		"attacker_losses":      outcome.AttackerLosses,
		"supplies_burned":      outcome.SuppliesBurned,
		"supplies_stolen":      outcome.SuppliesStolen,
		"loot_stolen":          outcome.LootStolen,
	}
	if !outcome.Success {
		return OrderExecutionResult{Status: entity.OrderFailed, Detail: outcome.Detail, Events: []map[string]any{event}}
	}
	return completed(outcome.Detail, event)
}

// ---------------------------------------------------------------------------
// 参数取值与编号

func paramInt(params map[string]any, key string) (int, bool) {
	return anyToInt(params[key])
}

func paramIntDefault(params map[string]any, key string, fallback int) int {
	if v, ok := anyToInt(params[key]); ok {
		return v
	}
	return fallback
}

func anyToInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case float32:
		return int(v), true
	}
	return 0, false
}

func paramFloat(params map[string]any, key string, fallback float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return fallback
}

func paramString(params map[string]any, key, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func paramBool(params map[string]any, key string, fallback bool) bool {
	switch v := params[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "1", "on":
			return true
		case "false", "no", "n", "0", "off":
			return false
		}
	case int:
		return v != 0
	case float64:
		return v != 0
	}
	return fallback
}

func hexIDList(raw any) []entity.HexID {
	values, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []entity.HexID
	for _, value := range values {
		if id, ok := anyToInt(value); ok {
			out = append(out, entity.HexID(id))
		}
	}
	return out
}

func findSiegeByStronghold(c *entity.Campaign, strongholdID entity.StrongholdID) *entity.Siege {
	for _, siege := range c.Sieges {
		if siege.StrongholdID == strongholdID {
			return siege
		}
	}
	return nil
}

func containsArmy(ids []entity.ArmyID, id entity.ArmyID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func applyAdditionalLosses(army *entity.Army, percentage float64) {
	for _, det := range army.Detachments {
		det.Soldiers = maxInt(1, int(float64(det.Soldiers)*(1-percentage)))
	}
	army.SuppliesCurrent = int(float64(army.SuppliesCurrent) * (1 - percentage))
}

func nextSiegeID(c *entity.Campaign) entity.SiegeID {
	next := entity.SiegeID(1)
	for id := range c.Sieges {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func nextMessageID(c *entity.Campaign) entity.MessageID {
	next := entity.MessageID(1)
	for id := range c.Messages {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func nextOperationID(c *entity.Campaign) entity.OperationID {
	next := entity.OperationID(1)
	for id := range c.Operations {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
