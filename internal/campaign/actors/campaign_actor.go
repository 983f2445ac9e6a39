package actors

import (
	"context"
	"errors"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"Cataphract/internal/campaign/app/port"
	"Cataphract/internal/campaign/dc"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// BroadcastFunc 把事件推给订阅该战役的 ws 客户端。
type BroadcastFunc func(campaignID entity.CampaignID, event any)

// CampaignActor 独占一棵战役聚合树：所有读写都经过它的邮箱串行化，
// 规则代码因此不需要任何锁。
type CampaignActor struct {
	state      State
	campaignID entity.CampaignID
	dc         *dc.CampaignDC
	entity     *entity.Campaign
	rules      *rules.Config
	dispatcher *Dispatcher
	broadcast  BroadcastFunc
	// sentEvents 记录已广播到的事件流位置。
	sentEvents int
	flushStop  chan struct{}
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

func NewCampaignActor(campaignID entity.CampaignID, repo port.CampaignRepository, cfg *rules.Config, broadcast BroadcastFunc) *CampaignActor {
	return &CampaignActor{
		state:      None,
		campaignID: campaignID,
		dc:         dc.NewCampaignDC(repo),
		rules:      cfg,
		dispatcher: NewDispatcher(),
		broadcast:  broadcast,
	}
}

func (p *CampaignActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopFlushLoop()
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.dc.Close(closeCtx); err != nil {
			ctx.Logger().Error("campaign dc close failed", "campaign_id", p.campaignID, "err", err)
		}
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopFlushLoop()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopFlushLoop()
		p.state = Init
		return
	case flushTick:
		if p.state != Online {
			return
		}
		if err := p.dc.Flush(context.TODO()); err != nil {
			ctx.Logger().Error("campaign periodic flush failed", "campaign_id", p.campaignID, "err", err)
		}
		return
	case CampaignMessage:
		if p.state != Online {
			ctx.Respond(AckReply{Reason: "campaign actor not online"})
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

// init 加载聚合树。战役还不存在时 actor 保持在线、实体为空，
// 等 CreateCampaign/ImportScenario 消息来接管。
func (p *CampaignActor) init(ctx actor.Context) {
	e, err := p.dc.Load(context.TODO(), p.campaignID)
	switch {
	case err == nil:
		p.entity = e
		p.sentEvents = len(e.Events)
	case errors.Is(err, port.ErrCampaignNotFound):
		p.entity = nil
	default:
		ctx.Logger().Error("campaign load failed", "campaign_id", p.campaignID, "err", err)
		p.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}
	p.state = Online
	p.startFlushLoop(ctx)
}

func (p *CampaignActor) CampaignID() entity.CampaignID {
	return p.campaignID
}

func (p *CampaignActor) Entity() *entity.Campaign {
	return p.entity
}

func (p *CampaignActor) DC() *dc.CampaignDC {
	return p.dc
}

// publishNewEvents 把上次广播之后新增的事件推送出去。
func (p *CampaignActor) publishNewEvents() {
	if p.broadcast == nil || p.entity == nil {
		return
	}
	events := p.entity.Events
	for ; p.sentEvents < len(events); p.sentEvents++ {
		p.broadcast(p.campaignID, events[p.sentEvents])
	}
}

func (p *CampaignActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *CampaignActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}
