package domain

import (
	"testing"
	"time"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

func newMessage(id entity.MessageID, territory entity.MessengerTerritory) *entity.Message {
	return &entity.Message{
		ID: id, CampaignID: 1, SenderID: 1, RecipientID: 2,
		Content: "测试军情", SentAt: time.Date(1250, 3, 1, 8, 0, 0, 0, time.UTC),
		TerritoryType: territory,
	}
}

func TestDispatchMessage_行程换算(t *testing.T) {
	c := newTestCampaign()
	cfg := rules.Default()
	from := entity.HexID(1)
	to := entity.HexID(12)

	msg := newMessage(1, entity.TerritoryFriendly)
	result := DispatchMessage(c, msg, &from, &to, cfg)
	if !result.Success {
		t.Fatalf("派发失败: %+v", result)
	}
	// 11 格 × 6 英里 / 48 英里每天
	if want := 66.0 / 48.0; msg.TravelTimeDays != want {
		t.Fatalf("友方地界行程期望 %v, got %v", want, msg.TravelTimeDays)
	}
	if msg.Status != "in_transit" || c.Messages[1] != msg {
		t.Fatalf("消息未入队: %+v", msg)
	}

	hostile := newMessage(2, entity.TerritoryHostile)
	DispatchMessage(c, hostile, &from, &to, cfg)
	if want := 66.0 / 36.0; hostile.TravelTimeDays != want {
		t.Fatalf("敌方地界行程期望 %v, got %v", want, hostile.TravelTimeDays)
	}
}

func TestDispatchMessage_最短一天(t *testing.T) {
	c := newTestCampaign()
	from := entity.HexID(1)
	to := entity.HexID(2)

	msg := newMessage(1, entity.TerritoryFriendly)
	DispatchMessage(c, msg, &from, &to, rules.Default())
	if msg.TravelTimeDays != 1.0 {
		t.Fatalf("相邻格也至少一天, got %v", msg.TravelTimeDays)
	}
}

func TestDispatchMessage_非法输入(t *testing.T) {
	c := newTestCampaign()
	from := entity.HexID(1)
	to := entity.HexID(2)
	cfg := rules.Default()

	bad := newMessage(1, "underworld")
	if result := DispatchMessage(c, bad, &from, &to, cfg); result.Success {
		t.Fatalf("未知地界类型应失败")
	}
	missing := newMessage(2, entity.TerritoryFriendly)
	if result := DispatchMessage(c, missing, nil, nil, cfg); result.Success {
		t.Fatalf("收发双方位置未知应失败")
	}
}

func TestAdvanceMessages_必达与必截(t *testing.T) {
	c := newTestCampaign()
	cfg := rules.Default()
	// 把送达概率调到必达/必截，消除掷骰分支
	cfg.Messaging.FriendlySuccessNumerator = cfg.Messaging.FriendlySuccessDenominator
	cfg.Messaging.HostileSuccessNumerator = 0

	from := entity.HexID(1)
	to := entity.HexID(2)
	sure := newMessage(1, entity.TerritoryFriendly)
	doomed := newMessage(2, entity.TerritoryHostile)
	DispatchMessage(c, sure, &from, &to, cfg)
	DispatchMessage(c, doomed, &from, &to, cfg)

	for i := 0; i < 4; i++ {
		AdvanceMessages(c, entity.DayFraction, cfg)
	}

	if sure.Status != "delivered" || sure.DeliveredAt == nil {
		t.Fatalf("友方消息应送达: %+v", sure)
	}
	if doomed.Status != "failed" || doomed.FailureReason != "intercepted" {
		t.Fatalf("敌境消息应被截获: %+v", doomed)
	}
}

func TestPendingMessagesForCommander_只数在途(t *testing.T) {
	c := newTestCampaign()
	cfg := rules.Default()
	from := entity.HexID(1)
	to := entity.HexID(5)

	inTransit := newMessage(1, entity.TerritoryFriendly)
	DispatchMessage(c, inTransit, &from, &to, cfg)
	done := newMessage(2, entity.TerritoryFriendly)
	DispatchMessage(c, done, &from, &to, cfg)
	done.Status = "delivered"

	pending := PendingMessagesForCommander(c, 2)
	if len(pending) != 1 || pending[0].ID != 1 {
		t.Fatalf("在途消息期望只剩一条: %+v", pending)
	}
	if len(PendingMessagesForCommander(c, 9)) != 0 {
		t.Fatalf("别人的消息不该被数进来")
	}
}
