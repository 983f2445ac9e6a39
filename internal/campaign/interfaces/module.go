package interfaces

import (
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/gin-gonic/gin"

	"Cataphract/internal/campaign/app/port"
	"Cataphract/internal/campaign/interfaces/handler"
	"Cataphract/internal/shared/transport/http/middleware"
	"Cataphract/internal/shared/transport/ws"
)

// Module 把战役域的 HTTP/ws 入口挂到路由上。
type Module struct {
	httpHandler *handler.HttpHandler
}

func New(root *actor.RootContext, manager *actor.PID, repo port.CampaignRepository, hub *ws.Hub, askTimeout time.Duration) *Module {
	return &Module{
		httpHandler: handler.NewHttpHandler(root, manager, repo, hub, askTimeout),
	}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	api := g.Group("/api/v1")
	m.httpHandler.RegisterPublic(api)

	authed := api.Group("")
	authed.Use(middleware.Auth())
	m.httpHandler.RegisterRoutes(authed)
}
