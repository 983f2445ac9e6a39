package domain

import (
	"fmt"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/dicex"
)

// ProcessMercenaryUpkeep 对所有生效合同按日扣军饷。
// 付不出就记欠薪并扣士气，超出宽限期后每天 1/6 概率整团开小差。
func ProcessMercenaryUpkeep(c *entity.Campaign, cfg *rules.Config) {
	for _, contract := range c.MercenaryContracts {
		if contract.Status != "active" && contract.Status != "unpaid" {
			continue
		}
		if contract.ArmyID == nil {
			continue
		}
		army := c.Armies[*contract.ArmyID]
		if army == nil {
			continue
		}

		daysDue := c.CurrentDay - contract.LastUpkeepDay
		if daysDue <= 0 {
			continue
		}

		totalDue := dailyUpkeepCost(c, contract, army, cfg) * daysDue

		if army.LootCarried >= totalDue {
			army.LootCarried -= totalDue
			contract.LastUpkeepDay = c.CurrentDay
			contract.DaysUnpaid = 0
			if contract.Status == "unpaid" {
				contract.Status = "active"
			}
			continue
		}

		contract.DaysUnpaid += daysDue
		contract.Status = "unpaid"
		contract.LastUpkeepDay = c.CurrentDay
		AdjustMorale(army, -cfg.Mercenaries.MoralePenaltyUnpaid, army.MoraleMax)

		if contract.DaysUnpaid > cfg.Mercenaries.GraceDaysWithoutPay {
			maybeTriggerDesertion(c, contract, army, cfg)
		}
	}
}

func dailyUpkeepCost(c *entity.Campaign, contract *entity.MercenaryContract, army *entity.Army, cfg *rules.Config) int {
	infantry := 0
	cavalry := 0
	for _, det := range army.Detachments {
		if unitCategory(c.UnitTypes, det.UnitTypeID) == "cavalry" {
			cavalry += det.Soldiers
		} else {
			infantry += det.Soldiers
		}
	}

	infantryRate := contract.NegotiatedRates["infantry"]
	if infantryRate == 0 {
		infantryRate = cfg.Mercenaries.InfantryUpkeepPerDay
	}
	cavalryRate := contract.NegotiatedRates["cavalry"]
	if cavalryRate == 0 {
		cavalryRate = cfg.Mercenaries.CavalryUpkeepPerDay
	}
	return infantry*infantryRate + cavalry*cavalryRate
}

func maybeTriggerDesertion(c *entity.Campaign, contract *entity.MercenaryContract, army *entity.Army, cfg *rules.Config) {
	mr := cfg.Mercenaries
	seed := fmt.Sprintf("mercenary-desertion:%d", contract.ID)
	roll := mustRollDie(seed, mr.DesertionChanceDenominator)
	if roll > mr.DesertionChanceNumerator {
		return
	}

	contract.Status = "terminated"
	army.StatusEffects.MercenariesDeserted = &entity.MercenariesDeserted{
		ContractID: contract.ID,
		Day:        c.CurrentDay,
	}
	AdjustMorale(army, -mr.MoralePenaltyUnpaid, army.MoraleMax)
}

func mustRollDie(seed string, sides int) int {
	return dicex.MustRoll(seed, fmt.Sprintf("1d%d", sides)).Total
}
