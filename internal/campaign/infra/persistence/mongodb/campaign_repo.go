package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"Cataphract/internal/campaign/app/port"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/infra/persistence/model"
	"Cataphract/modules/kit/errx"
)

const defaultCollectionName = "campaigns"

var ErrCampaignNotFound = port.ErrCampaignNotFound

type CampaignRepo struct {
	coll *mongo.Collection
}

func NewCampaignRepo(db *mongo.Database) *CampaignRepo {
	return &CampaignRepo{
		coll: db.Collection(defaultCollectionName),
	}
}

func (r *CampaignRepo) Load(ctx context.Context, id entity.CampaignID) (*entity.Campaign, error) {
	if r == nil || r.coll == nil {
		return nil, errx.ErrUnavailable.WithData("op", "repo.campaign.Load")
	}

	var doc model.CampaignDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": int(id)}).Decode(&doc)
	switch {
	case err == nil:
		return model.Decode(doc.Document)
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrCampaignNotFound.WithData("campaign_id", int(id))
	default:
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", "repo.campaign.Load")
	}
}

func (r *CampaignRepo) Save(ctx context.Context, c *entity.Campaign) error {
	if r == nil || r.coll == nil {
		return errx.ErrUnavailable.WithData("op", "repo.campaign.Save")
	}

	row, err := model.Encode(c)
	if err != nil {
		return errx.ErrInternal.WithCause(err).WithData("op", "repo.campaign.Save")
	}
	doc := model.CampaignDoc{
		ID:         row.ID,
		Name:       row.Name,
		CurrentDay: row.CurrentDay,
		Status:     row.Status,
		Document:   row.Document,
	}

	_, err = r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("op", "repo.campaign.Save")
	}
	return nil
}

func (r *CampaignRepo) List(ctx context.Context) ([]port.CampaignSummary, error) {
	if r == nil || r.coll == nil {
		return nil, errx.ErrUnavailable.WithData("op", "repo.campaign.List")
	}

	projection := bson.M{"name": 1, "current_day": 1, "status": 1}
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(projection).SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", "repo.campaign.List")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var out []port.CampaignSummary
	for cursor.Next(ctx) {
		var doc model.CampaignDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errx.ErrUnavailable.WithCause(err).WithData("op", "repo.campaign.List")
		}
		out = append(out, port.CampaignSummary{
			ID:         entity.CampaignID(doc.ID),
			Name:       doc.Name,
			CurrentDay: doc.CurrentDay,
			Status:     doc.Status,
		})
	}
	return out, cursor.Err()
}

func (r *CampaignRepo) NextID(ctx context.Context) (entity.CampaignID, error) {
	summaries, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	next := entity.CampaignID(1)
	for _, s := range summaries {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next, nil
}
