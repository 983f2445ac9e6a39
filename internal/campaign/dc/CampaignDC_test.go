package dc

import (
	"context"
	"testing"
	"time"

	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/infra/persistence/memory"
)

func TestCampaignDC_编码失败保留脏标(t *testing.T) {
	d := NewCampaignDC(memory.NewCampaignRepo())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = d.Close(ctx)
	}()

	c := entity.NewCampaign(1, "测试战役", time.Date(1250, 3, 1, 0, 0, 0, 0, time.UTC), entity.SeasonSummer)
	d.Adopt(c)

	// 命令参数里塞进无法 JSON 化的值，编码必败
	c.Orders[1] = &entity.Order{
		ID: 1, CampaignID: 1, CommanderID: 1, OrderType: "rest",
		Status:     entity.OrderPending,
		Parameters: map[string]any{"bad": make(chan int)},
	}

	if err := d.Flush(context.Background()); err == nil {
		t.Fatalf("编码失败应返回错误")
	}
	if !d.IsDirty() {
		t.Fatalf("编码失败后脏标不该被清掉")
	}

	// 清掉坏参数后重试落库成功
	c.Orders[1].Parameters = map[string]any{}
	if err := d.Flush(context.Background()); err != nil {
		t.Fatalf("重试 Flush err=%v", err)
	}
	if d.IsDirty() {
		t.Fatalf("编码成功后脏标应清除")
	}
}
