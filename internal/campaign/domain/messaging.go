package domain

import (
	"fmt"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

// MessageDispatchResult 是一次信使派发的结果。
type MessageDispatchResult struct {
	Success   bool              `json:"success"`
	Detail    string            `json:"detail"`
	MessageID entity.MessageID  `json:"message_id,omitempty"`
}

func messengerSpeed(territory entity.MessengerTerritory, cfg *rules.Config) int {
	switch territory {
	case entity.TerritoryHostile:
		return cfg.Messaging.HostileMilesPerDay
	case entity.TerritoryNeutral:
		return cfg.Messaging.NeutralMilesPerDay
	default:
		return cfg.Messaging.FriendlyMilesPerDay
	}
}

// messengerDeliveryOdds 送达概率：友方/中立 19/20（1d20），敌境 5/6（1d6）。
func messengerDeliveryOdds(territory entity.MessengerTerritory, cfg *rules.Config) (numerator, denominator int) {
	if territory == entity.TerritoryHostile {
		return cfg.Messaging.HostileSuccessNumerator, cfg.Messaging.HostileSuccessDenominator
	}
	return cfg.Messaging.FriendlySuccessNumerator, cfg.Messaging.FriendlySuccessDenominator
}

// DispatchMessage 把消息投入传递队列并计算路上天数。
// fromHex/toHex 传 nil 时取收发双方指挥官的当前位置。
func DispatchMessage(c *entity.Campaign, message *entity.Message, fromHex, toHex *entity.HexID, cfg *rules.Config) MessageDispatchResult {
	switch message.TerritoryType {
	case entity.TerritoryFriendly, entity.TerritoryNeutral, entity.TerritoryHostile:
	default:
		return MessageDispatchResult{Detail: fmt.Sprintf("unknown territory: %s", message.TerritoryType)}
	}

	if fromHex == nil {
		if sender := c.Commanders[message.SenderID]; sender != nil {
			fromHex = sender.CurrentHexID
		}
	}
	if toHex == nil {
		if recipient := c.Commanders[message.RecipientID]; recipient != nil {
			toHex = recipient.CurrentHexID
		}
	}
	if fromHex == nil || toHex == nil {
		return MessageDispatchResult{Detail: "sender or recipient location unknown"}
	}

	origin := c.Map.Hexes[*fromHex]
	destination := c.Map.Hexes[*toHex]
	if origin == nil || destination == nil {
		return MessageDispatchResult{Detail: "origin or destination hex missing"}
	}

	distanceHexes := maxInt(1, hexDistance(origin, destination))
	miles := distanceHexes * hexMiles
	travelDays := maxFloat(1.0, float64(miles)/float64(messengerSpeed(message.TerritoryType, cfg)))

	message.TravelTimeDays = travelDays
	message.DaysRemaining = travelDays
	message.Status = "in_transit"
	c.Messages[message.ID] = message

	return MessageDispatchResult{
		Success:   true,
		Detail:    fmt.Sprintf("message dispatched: %.2f days", travelDays),
		MessageID: message.ID,
	}
}

// AdvanceMessages 推进在途消息，到点后掷骰判定送达或被截。
func AdvanceMessages(c *entity.Campaign, dayFraction float64, cfg *rules.Config) {
	for _, message := range c.Messages {
		if message.Status != "in_transit" {
			continue
		}

		message.DaysRemaining = maxFloat(0, message.DaysRemaining-dayFraction)
		if message.DaysRemaining > 0 {
			continue
		}

		numerator, denominator := messengerDeliveryOdds(message.TerritoryType, cfg)
		seed := fmt.Sprintf("message:%d", message.ID)
		roll := mustRollDie(seed, denominator)
		if roll <= numerator {
			message.Status = "delivered"
			if message.DeliveredAt == nil {
				sent := message.SentAt
				message.DeliveredAt = &sent
			}
			message.FailureReason = ""
		} else {
			message.Status = "failed"
			message.FailureReason = "intercepted"
		}
	}
}

// PendingMessagesForCommander 返回还在路上的、发给该指挥官的消息。
func PendingMessagesForCommander(c *entity.Campaign, commanderID entity.CommanderID) []*entity.Message {
	var out []*entity.Message
	for _, msg := range c.Messages {
		if msg.RecipientID == commanderID && msg.Status == "in_transit" {
			out = append(out, msg)
		}
	}
	return out
}
