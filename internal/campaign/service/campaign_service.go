package service

import (
	"sort"
	"time"

	"Cataphract/internal/campaign/domain"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/rules"
	"Cataphract/modules/kit/errx"
)

// 业务错误码（战役域专用，系统类错误码在 errx 里统一定义）。
var (
	ErrUnknownOrderType = errx.NewBiz("ORDER_TYPE_UNKNOWN", "未知的命令类型")
	ErrOrderNotFound    = errx.NewBiz("ORDER_NOT_FOUND", "命令不存在")
	ErrOrderNotPending  = errx.NewBiz("ORDER_NOT_PENDING", "命令已不在待执行状态")
	ErrArmyNotFound     = errx.NewBiz("ARMY_NOT_FOUND", "军队不存在")
	ErrCommanderMissing = errx.NewBiz("COMMANDER_NOT_FOUND", "指挥官不存在")
	ErrCampaignInactive = errx.NewBiz("CAMPAIGN_INACTIVE", "战役不在进行中")
	ErrExecuteDayPast   = errx.NewBiz("ORDER_EXECUTE_DAY_PAST", "执行日早于当前战役日")
)

type CampaignService struct{}

var CS = &CampaignService{}

// OrderDraft 是裁判录入命令时的请求体。
type OrderDraft struct {
	ArmyID      *int           `json:"army_id,omitempty"`
	CommanderID int            `json:"commander_id"`
	OrderType   string         `json:"order_type"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	ExecuteDay  *int           `json:"execute_day,omitempty"`
	ExecutePart *string        `json:"execute_part,omitempty"`
	Priority    int            `json:"priority"`
}

// CreateCampaign 建一个空战役聚合（地图与兵力之后通过想定导入补齐）。
func (s *CampaignService) CreateCampaign(id entity.CampaignID, name string, startDate time.Time, season entity.Season) *entity.Campaign {
	if season == "" {
		season = entity.SeasonSummer
	}
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}
	return entity.NewCampaign(id, name, startDate, season)
}

// CreateOrder 校验并入册一条命令：发 ID、盖签发时间、挂进军队命令队列。
func (s *CampaignService) CreateOrder(c *entity.Campaign, draft OrderDraft) (*entity.Order, error) {
	if c.Status != "active" {
		return nil, ErrCampaignInactive.WithData("status", c.Status)
	}
	if !domain.KnownOrderType(draft.OrderType) {
		return nil, ErrUnknownOrderType.WithData("order_type", draft.OrderType)
	}
	if draft.ExecuteDay != nil && *draft.ExecuteDay < c.CurrentDay {
		return nil, ErrExecuteDayPast.WithData("execute_day", *draft.ExecuteDay)
	}
	commanderID := entity.CommanderID(draft.CommanderID)
	if _, ok := c.Commanders[commanderID]; !ok {
		return nil, ErrCommanderMissing.WithData("commander_id", draft.CommanderID)
	}

	var armyID *entity.ArmyID
	var army *entity.Army
	if draft.ArmyID != nil {
		id := entity.ArmyID(*draft.ArmyID)
		a, ok := c.Armies[id]
		if !ok {
			return nil, ErrArmyNotFound.WithData("army_id", *draft.ArmyID)
		}
		armyID = &id
		army = a
	}

	var executePart *entity.DayPart
	if draft.ExecutePart != nil {
		p := entity.DayPart(*draft.ExecutePart)
		executePart = &p
	}

	order := &entity.Order{
		ID:          nextOrderID(c),
		CampaignID:  c.ID,
		ArmyID:      armyID,
		CommanderID: commanderID,
		OrderType:   draft.OrderType,
		Parameters:  draft.Parameters,
		IssuedAt:    time.Now().UTC(),
		ExecuteDay:  draft.ExecuteDay,
		ExecutePart: executePart,
		Status:      entity.OrderPending,
		Priority:    draft.Priority,
	}
	if order.Parameters == nil {
		order.Parameters = map[string]any{}
	}

	c.Orders[order.ID] = order
	if army != nil {
		army.OrdersQueue = append(army.OrdersQueue, order.ID)
	}
	return order, nil
}

// CancelOrder 撤销一条还没执行的命令，并把它从军队队列里摘掉。
func (s *CampaignService) CancelOrder(c *entity.Campaign, orderID entity.OrderID) (*entity.Order, error) {
	order, ok := c.Orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound.WithData("order_id", int(orderID))
	}
	if order.Status != entity.OrderPending {
		return nil, ErrOrderNotPending.WithData("status", string(order.Status))
	}

	order.Status = entity.OrderCancelled
	if order.ArmyID != nil {
		if army, ok := c.Armies[*order.ArmyID]; ok {
			army.OrdersQueue = removeOrderID(army.OrdersQueue, orderID)
		}
	}
	return order, nil
}

// AdvanceDays 连续推进 N 个完整游戏日。
func (s *CampaignService) AdvanceDays(c *entity.Campaign, cfg *rules.Config, days int) []domain.TickReport {
	if days < 1 {
		days = 1
	}
	reports := make([]domain.TickReport, 0, days)
	for i := 0; i < days; i++ {
		if c.Status != "active" {
			break
		}
		reports = append(reports, domain.RunDailyTick(c, cfg))
	}
	return reports
}

func nextOrderID(c *entity.Campaign) entity.OrderID {
	next := entity.OrderID(1)
	for id := range c.Orders {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

func removeOrderID(queue []entity.OrderID, target entity.OrderID) []entity.OrderID {
	out := queue[:0]
	for _, id := range queue {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// sortedArmyIDs 给投影输出一个稳定顺序。
func sortedArmyIDs(c *entity.Campaign) []entity.ArmyID {
	ids := make([]entity.ArmyID, 0, len(c.Armies))
	for id := range c.Armies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
