package actors

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"

	"Cataphract/internal/campaign/service"
)

type CampaignHandler struct{}

var CH = &CampaignHandler{}

func (h *CampaignHandler) HandleAdvanceDays(ctx actor.Context, p *CampaignActor, req AdvanceDays) {
	if p.entity == nil {
		ctx.Respond(TickReply{Reason: "campaign not loaded"})
		return
	}

	reports := service.CS.AdvanceDays(p.entity, p.rules, req.Days)
	p.dc.MarkDirty()
	if err := p.dc.Flush(context.TODO()); err != nil {
		ctx.Logger().Error("campaign flush after tick failed", "campaign_id", p.campaignID, "err", err)
	}

	if p.broadcast != nil {
		for _, r := range reports {
			p.broadcast(p.campaignID, r)
		}
	}
	p.publishNewEvents()

	ctx.Respond(TickReply{OK: true, Reports: reports})
}

func (h *CampaignHandler) HandleSubmitOrder(ctx actor.Context, p *CampaignActor, req SubmitOrder) {
	if p.entity == nil {
		ctx.Respond(OrderReply{Reason: "campaign not loaded"})
		return
	}

	order, err := service.CS.CreateOrder(p.entity, req.Draft)
	if err != nil {
		ctx.Respond(OrderReply{Reason: err.Error()})
		return
	}
	p.dc.MarkDirty()
	ctx.Respond(OrderReply{OK: true, Order: order})
}

func (h *CampaignHandler) HandleCancelOrder(ctx actor.Context, p *CampaignActor, req CancelOrder) {
	if p.entity == nil {
		ctx.Respond(OrderReply{Reason: "campaign not loaded"})
		return
	}

	order, err := service.CS.CancelOrder(p.entity, req.OrderID)
	if err != nil {
		ctx.Respond(OrderReply{Reason: err.Error()})
		return
	}
	p.dc.MarkDirty()
	ctx.Respond(OrderReply{OK: true, Order: order})
}

func (h *CampaignHandler) HandleGetDetail(ctx actor.Context, p *CampaignActor, req GetDetail) {
	_ = req
	if p.entity == nil {
		ctx.Respond(DetailReply{Reason: "campaign not loaded"})
		return
	}

	detail := service.CS.Detail(p.entity, p.rules)
	ctx.Respond(DetailReply{OK: true, Detail: &detail})
}

func (h *CampaignHandler) HandleCreateCampaign(ctx actor.Context, p *CampaignActor, req CreateCampaign) {
	if p.entity != nil {
		ctx.Respond(AckReply{Reason: "campaign already exists"})
		return
	}

	c := service.CS.CreateCampaign(p.campaignID, req.Name, req.StartDate, req.Season)
	p.entity = c
	p.sentEvents = 0
	p.dc.Adopt(c)
	if err := p.dc.Flush(context.TODO()); err != nil {
		ctx.Logger().Error("campaign flush after create failed", "campaign_id", p.campaignID, "err", err)
	}
	ctx.Respond(AckReply{OK: true})
}

func (h *CampaignHandler) HandleImportScenario(ctx actor.Context, p *CampaignActor, req ImportScenario) {
	if p.entity != nil {
		ctx.Respond(AckReply{Reason: "campaign already exists"})
		return
	}

	c, err := service.CS.ImportScenario(req.Raw)
	if err != nil {
		ctx.Respond(AckReply{Reason: err.Error()})
		return
	}
	c.ID = p.campaignID
	for _, a := range c.Armies {
		a.CampaignID = c.ID
	}
	p.entity = c
	p.sentEvents = len(c.Events)
	p.dc.Adopt(c)
	if err := p.dc.Flush(context.TODO()); err != nil {
		ctx.Logger().Error("campaign flush after import failed", "campaign_id", p.campaignID, "err", err)
	}
	ctx.Respond(AckReply{OK: true})
}
