package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"Cataphract/internal/campaign/app/port"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

// ManagerActor 按战役 ID 路由请求，懒创建对应的战役 actor。
type ManagerActor struct {
	repo           port.CampaignRepository
	rules          *rules.Config
	broadcast      BroadcastFunc
	campaignActors map[entity.CampaignID]*actor.PID
}

func NewManagerActor(repo port.CampaignRepository, cfg *rules.Config, broadcast BroadcastFunc) *ManagerActor {
	return &ManagerActor{
		repo:           repo,
		rules:          cfg,
		broadcast:      broadcast,
		campaignActors: make(map[entity.CampaignID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	req, ok := ctx.Message().(CampaignMessage)
	if !ok {
		return
	}
	if req == nil {
		ctx.Respond(AckReply{Reason: "nil request"})
		return
	}

	campaignID := req.TargetCampaign()
	if campaignID <= 0 {
		ctx.Respond(AckReply{Reason: "invalid campaign id"})
		return
	}

	ctx.Forward(m.getOrSpawn(ctx, campaignID))
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, campaignID entity.CampaignID) *actor.PID {
	if pid, ok := m.campaignActors[campaignID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewCampaignActor(campaignID, m.repo, m.rules, m.broadcast)
	})
	pid := ctx.Spawn(props)
	m.campaignActors[campaignID] = pid
	return pid
}
