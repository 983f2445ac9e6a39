package port

import (
	"context"

	"Cataphract/internal/campaign/entity"
	"Cataphract/modules/kit/errx"
)

// ErrCampaignNotFound 各仓储实现统一复用，errors.Is 按错误码匹配。
var ErrCampaignNotFound = errx.NewBiz("CAMPAIGN_NOT_FOUND", "战役不存在")

// CampaignSummary 是战役列表里的一行（不加载整棵聚合树）。
type CampaignSummary struct {
	ID         entity.CampaignID `json:"id"`
	Name       string            `json:"name"`
	CurrentDay int               `json:"current_day"`
	Status     string            `json:"status"`
}

// CampaignRepository 整存整取战役聚合。
// 核心只认内存对象树：Load 给出整棵树，Save 把整棵树写回。
type CampaignRepository interface {
	Load(ctx context.Context, id entity.CampaignID) (*entity.Campaign, error)
	Save(ctx context.Context, c *entity.Campaign) error
	List(ctx context.Context) ([]CampaignSummary, error)
	NextID(ctx context.Context) (entity.CampaignID, error)
}
