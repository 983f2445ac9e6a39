package actors

import (
	"time"

	"Cataphract/internal/campaign/domain"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/service"
)

// CampaignMessage 是所有战役 actor 请求的路由接口：
// ManagerActor 按 TargetCampaign 把请求转给对应的战役 actor。
type CampaignMessage interface {
	TargetCampaign() entity.CampaignID
}

// Routing 嵌进各请求体，免得每个消息都手写 TargetCampaign。
type Routing struct {
	CampaignID entity.CampaignID `json:"campaign_id"`
}

func (r Routing) TargetCampaign() entity.CampaignID { return r.CampaignID }

func Route(id entity.CampaignID) Routing { return Routing{CampaignID: id} }

// AdvanceDays 请求推进 N 个完整游戏日。
type AdvanceDays struct {
	Routing
	Days int `json:"days"`
}

// SubmitOrder 请求入册一条新命令。
type SubmitOrder struct {
	Routing
	Draft service.OrderDraft `json:"draft"`
}

// CancelOrder 请求撤销一条待执行命令。
type CancelOrder struct {
	Routing
	OrderID entity.OrderID `json:"order_id"`
}

// GetDetail 请求战役全貌投影。
type GetDetail struct {
	Routing
}

// CreateCampaign 请求新建一个空战役（ID 由调用方先从仓储领取）。
type CreateCampaign struct {
	Routing
	Name      string        `json:"name"`
	StartDate time.Time     `json:"start_date"`
	Season    entity.Season `json:"season"`
}

// ImportScenario 请求用想定 JSON 初始化战役。
type ImportScenario struct {
	Routing
	Raw []byte `json:"raw"`
}

// TickReply 是一次推进的结果。
type TickReply struct {
	OK      bool                `json:"ok"`
	Reason  string              `json:"reason,omitempty"`
	Reports []domain.TickReport `json:"reports,omitempty"`
}

// OrderReply 是命令入册/撤销的结果。
type OrderReply struct {
	OK     bool          `json:"ok"`
	Reason string        `json:"reason,omitempty"`
	Order  *entity.Order `json:"order,omitempty"`
}

// DetailReply 是战役投影查询的结果。
type DetailReply struct {
	OK     bool                    `json:"ok"`
	Reason string                  `json:"reason,omitempty"`
	Detail *service.CampaignDetail `json:"detail,omitempty"`
}

// AckReply 是没有业务负载的通用应答。
type AckReply struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}
