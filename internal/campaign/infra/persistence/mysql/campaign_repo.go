package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Cataphract/internal/campaign/app/port"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/infra/persistence/model"
	"Cataphract/modules/kit/errx"
)

var ErrCampaignNotFound = port.ErrCampaignNotFound

type CampaignRepo struct {
	db *gorm.DB
}

func NewCampaignRepo(db *gorm.DB) *CampaignRepo {
	return &CampaignRepo{db: db}
}

func (r *CampaignRepo) Load(ctx context.Context, id entity.CampaignID) (*entity.Campaign, error) {
	var row model.CampaignRow
	err := r.db.WithContext(ctx).Where("id = ?", int(id)).First(&row).Error
	switch {
	case err == nil:
		return model.Decode(row.Document)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrCampaignNotFound.WithData("campaign_id", int(id))
	default:
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", "repo.campaign.Load")
	}
}

func (r *CampaignRepo) Save(ctx context.Context, c *entity.Campaign) error {
	row, err := model.Encode(c)
	if err != nil {
		return errx.ErrInternal.WithCause(err).WithData("op", "repo.campaign.Save")
	}
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", "repo.campaign.Save")
	}
	return nil
}

func (r *CampaignRepo) List(ctx context.Context) ([]port.CampaignSummary, error) {
	var rows []model.CampaignRow
	err := r.db.WithContext(ctx).
		Select("id", "name", "current_day", "status").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", "repo.campaign.List")
	}

	out := make([]port.CampaignSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, port.CampaignSummary{
			ID:         entity.CampaignID(row.ID),
			Name:       row.Name,
			CurrentDay: row.CurrentDay,
			Status:     row.Status,
		})
	}
	return out, nil
}

func (r *CampaignRepo) NextID(ctx context.Context) (entity.CampaignID, error) {
	var maxID *int
	err := r.db.WithContext(ctx).
		Model(&model.CampaignRow{}).
		Select("MAX(id)").
		Scan(&maxID).Error
	if err != nil {
		return 0, errx.ErrUnavailable.WithCause(err).WithData("op", "repo.campaign.NextID")
	}
	if maxID == nil {
		return 1, nil
	}
	return entity.CampaignID(*maxID + 1), nil
}
