package memory

import (
	"context"
	"sort"
	"sync"

	"Cataphract/internal/campaign/app/port"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/infra/persistence/model"
)

var ErrCampaignNotFound = port.ErrCampaignNotFound

// CampaignRepo 是纯内存仓储，给测试与离线推演用。
// 存取都走一遍 JSON 编解码，行为与真仓储一致（调用方拿到的是独立副本）。
type CampaignRepo struct {
	mu   sync.RWMutex
	docs map[entity.CampaignID][]byte
}

func NewCampaignRepo() *CampaignRepo {
	return &CampaignRepo{
		docs: make(map[entity.CampaignID][]byte),
	}
}

func (r *CampaignRepo) Load(ctx context.Context, id entity.CampaignID) (*entity.Campaign, error) {
	_ = ctx
	r.mu.RLock()
	raw, ok := r.docs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrCampaignNotFound.WithData("campaign_id", int(id))
	}
	return model.Decode(raw)
}

func (r *CampaignRepo) Save(ctx context.Context, c *entity.Campaign) error {
	_ = ctx
	row, err := model.Encode(c)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.docs[c.ID] = row.Document
	r.mu.Unlock()
	return nil
}

func (r *CampaignRepo) List(ctx context.Context) ([]port.CampaignSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]port.CampaignSummary, 0, len(r.docs))
	for id, raw := range r.docs {
		c, err := model.Decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, port.CampaignSummary{
			ID:         id,
			Name:       c.Name,
			CurrentDay: c.CurrentDay,
			Status:     c.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CampaignRepo) NextID(ctx context.Context) (entity.CampaignID, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	next := entity.CampaignID(1)
	for id := range r.docs {
		if id >= next {
			next = id + 1
		}
	}
	return next, nil
}
