package handler

import (
	"errors"
	"io"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/gin-gonic/gin"

	"Cataphract/internal/campaign/actors"
	"Cataphract/internal/campaign/app/port"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/service"
	"Cataphract/internal/shared/security"
	"Cataphract/internal/shared/transport"
	"Cataphract/internal/shared/transport/ws"
	"Cataphract/modules/kit/errx"
)

// 想定文件上限，超过基本可以断定不是合法想定。
const maxScenarioBytes = 16 << 20

// HttpHandler 是裁判控制台的 HTTP 入口：列表/详情走仓储或 actor，
// 所有改写操作都经 ManagerActor 串行化到对应战役。
type HttpHandler struct {
	root       *actor.RootContext
	manager    *actor.PID
	repo       port.CampaignRepository
	hub        *ws.Hub
	askTimeout time.Duration
}

func NewHttpHandler(root *actor.RootContext, manager *actor.PID, repo port.CampaignRepository, hub *ws.Hub, askTimeout time.Duration) *HttpHandler {
	if askTimeout <= 0 {
		askTimeout = 10 * time.Second
	}
	return &HttpHandler{
		root:       root,
		manager:    manager,
		repo:       repo,
		hub:        hub,
		askTimeout: askTimeout,
	}
}

func (h *HttpHandler) RegisterPublic(group *gin.RouterGroup) {
	group.POST("/auth/token", h.AwardToken)
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/campaigns", h.ListCampaigns)
	group.POST("/campaigns", h.CreateCampaign)
	group.POST("/campaigns/import", h.ImportScenario)
	group.GET("/campaigns/:id", h.CampaignDetail)
	group.POST("/campaigns/:id/tick", h.AdvanceDays)
	group.POST("/campaigns/:id/orders", h.SubmitOrder)
	group.DELETE("/campaigns/:id/orders/:orderID", h.CancelOrder)
	group.GET("/campaigns/:id/feed", h.SubscribeFeed)
}

type tokenReq struct {
	Referee string `json:"referee" binding:"required"`
}

func (h *HttpHandler) AwardToken(c *gin.Context) {
	var req tokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	token, err := security.Award(req.Referee)
	if err != nil {
		h.fail(c, transport.SystemError, "签发令牌失败")
		return
	}
	h.ok(c, gin.H{"token": token})
}

func (h *HttpHandler) ListCampaigns(c *gin.Context) {
	summaries, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, summaries)
}

type createCampaignReq struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date"` // RFC3339，缺省取当前时间
	Season    string `json:"season"`
}

func (h *HttpHandler) CreateCampaign(c *gin.Context) {
	var req createCampaignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			h.fail(c, transport.InvalidParam, "start_date 需要 RFC3339 格式")
			return
		}
		startDate = parsed
	}

	id, err := h.repo.NextID(c.Request.Context())
	if err != nil {
		h.error(c, err)
		return
	}

	reply, err := h.ask(actors.CreateCampaign{
		Routing:   actors.Route(id),
		Name:      req.Name,
		StartDate: startDate,
		Season:    entity.Season(req.Season),
	})
	if err != nil {
		h.error(c, err)
		return
	}
	ack, ok := reply.(actors.AckReply)
	if !ok || !ack.OK {
		h.fail(c, transport.Conflict, replyReason(reply))
		return
	}
	h.ok(c, gin.H{"campaign_id": int(id)})
}

func (h *HttpHandler) ImportScenario(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxScenarioBytes+1))
	if err != nil || len(raw) == 0 || len(raw) > maxScenarioBytes {
		h.fail(c, transport.InvalidParam, "想定文件读取失败")
		return
	}

	id, err := h.repo.NextID(c.Request.Context())
	if err != nil {
		h.error(c, err)
		return
	}

	reply, err := h.ask(actors.ImportScenario{
		Routing: actors.Route(id),
		Raw:     raw,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	ack, ok := reply.(actors.AckReply)
	if !ok || !ack.OK {
		h.fail(c, transport.InvalidParam, replyReason(reply))
		return
	}
	h.ok(c, gin.H{"campaign_id": int(id)})
}

func (h *HttpHandler) CampaignDetail(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}

	reply, err := h.ask(actors.GetDetail{Routing: actors.Route(id)})
	if err != nil {
		h.error(c, err)
		return
	}
	detail, ok := reply.(actors.DetailReply)
	if !ok || !detail.OK {
		h.fail(c, transport.NotFound, replyReason(reply))
		return
	}
	h.ok(c, detail.Detail)
}

type tickReq struct {
	Days int `json:"days"`
}

func (h *HttpHandler) AdvanceDays(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}

	var req tickReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	if req.Days <= 0 {
		req.Days = 1
	}

	reply, err := h.ask(actors.AdvanceDays{Routing: actors.Route(id), Days: req.Days})
	if err != nil {
		h.error(c, err)
		return
	}
	tick, ok := reply.(actors.TickReply)
	if !ok || !tick.OK {
		h.fail(c, transport.NotFound, replyReason(reply))
		return
	}
	h.ok(c, tick.Reports)
}

func (h *HttpHandler) SubmitOrder(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}

	var draft service.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	reply, err := h.ask(actors.SubmitOrder{Routing: actors.Route(id), Draft: draft})
	if err != nil {
		h.error(c, err)
		return
	}
	orderReply, ok := reply.(actors.OrderReply)
	if !ok || !orderReply.OK {
		h.fail(c, transport.InvalidParam, replyReason(reply))
		return
	}
	h.ok(c, orderReply.Order)
}

func (h *HttpHandler) CancelOrder(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}
	orderID, err := strconv.Atoi(c.Param("orderID"))
	if err != nil || orderID <= 0 {
		h.fail(c, transport.InvalidParam, "命令 ID 有误")
		return
	}

	reply, err := h.ask(actors.CancelOrder{
		Routing: actors.Route(id),
		OrderID: entity.OrderID(orderID),
	})
	if err != nil {
		h.error(c, err)
		return
	}
	orderReply, ok := reply.(actors.OrderReply)
	if !ok || !orderReply.OK {
		h.fail(c, transport.Conflict, replyReason(reply))
		return
	}
	h.ok(c, orderReply.Order)
}

// SubscribeFeed 把连接升级成 websocket，推送该战役的推进事件流。
func (h *HttpHandler) SubscribeFeed(c *gin.Context) {
	id, ok := h.campaignID(c)
	if !ok {
		return
	}
	if err := h.hub.Subscribe(c.Writer, c.Request, strconv.Itoa(int(id))); err != nil {
		h.fail(c, transport.SystemError, "订阅失败")
	}
}

func (h *HttpHandler) ask(msg actors.CampaignMessage) (any, error) {
	future := h.root.RequestFuture(h.manager, msg, h.askTimeout)
	return future.Result()
}

func (h *HttpHandler) campaignID(c *gin.Context) (entity.CampaignID, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.fail(c, transport.InvalidParam, "战役 ID 有误")
		return 0, false
	}
	return entity.CampaignID(id), true
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, gin.H{"code": transport.OK, "msg": "ok", "data": data})
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, gin.H{"code": code, "msg": msg})
}

// error 把下层错误折叠成业务码：业务拒绝回给调用方，系统错误统一兜底。
func (h *HttpHandler) error(c *gin.Context, err error) {
	var e *errx.Error
	if errors.As(err, &e) {
		transport.SetErrorReason(c.Request.Context(), e.CodeText())
		switch {
		case errors.Is(err, port.ErrCampaignNotFound):
			h.fail(c, transport.NotFound, e.Msg())
		case errors.Is(err, errx.ErrUnavailable), errors.Is(err, errx.ErrInternal), errors.Is(err, errx.ErrTimeout):
			h.fail(c, transport.SystemError, "系统繁忙，请稍后重试")
		default:
			h.fail(c, transport.Conflict, e.Msg())
		}
		return
	}
	h.fail(c, transport.SystemError, "系统繁忙，请稍后重试")
}

func replyReason(reply any) string {
	switch r := reply.(type) {
	case actors.AckReply:
		return r.Reason
	case actors.OrderReply:
		return r.Reason
	case actors.TickReply:
		return r.Reason
	case actors.DetailReply:
		return r.Reason
	default:
		return "未知应答"
	}
}
