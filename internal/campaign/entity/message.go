package entity

import "time"

// MessageLeg 记录信使路途中的一段（用于审计延迟）。
type MessageLeg struct {
	FromHexID       HexID   `json:"from_hex_id"`
	ToHexID         HexID   `json:"to_hex_id"`
	DistanceMiles   float64 `json:"distance_miles"`
	TravelTimeDays  float64 `json:"travel_time_days"`
	Terrain         string  `json:"terrain,omitempty"`
}

// Message 是指挥官之间的通信。
type Message struct {
	ID             MessageID          `json:"id"`
	CampaignID     CampaignID         `json:"campaign_id"`
	SenderID       CommanderID        `json:"sender_id"`
	RecipientID    CommanderID        `json:"recipient_id"`
	Content        string             `json:"content"`
	SentAt         time.Time          `json:"sent_at"`
	DeliveredAt    *time.Time         `json:"delivered_at,omitempty"`
	TravelTimeDays float64            `json:"travel_time_days"`
	TerritoryType  MessengerTerritory `json:"territory_type"`
	Status         string             `json:"status"` // in_transit / delivered / failed
	Legs           []*MessageLeg      `json:"legs,omitempty"`
	DaysRemaining  float64            `json:"days_remaining"`
	FailureReason  string             `json:"failure_reason,omitempty"`
}
