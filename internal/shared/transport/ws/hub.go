package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Cataphract/modules/kit/logx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 45 * time.Second
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 裁判控制台跨域部署，握手阶段由 JWT 中间件把关。
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub 按战役分组维护观战连接，把每次推进产生的事件推给订阅方。
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*client]struct{}
	log  logx.Logger
}

type client struct {
	conn *websocket.Conn
	send chan any
}

func NewHub(log logx.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[*client]struct{}),
		log:  log,
	}
}

// Subscribe 把一个 HTTP 连接升级成 websocket 并挂到指定战役的订阅列表。
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, campaignID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		conn: conn,
		send: make(chan any, sendBufferSize),
	}

	h.mu.Lock()
	if h.subs[campaignID] == nil {
		h.subs[campaignID] = make(map[*client]struct{})
	}
	h.subs[campaignID][c] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(campaignID, c)
	go h.readLoop(campaignID, c)
	return nil
}

// Broadcast 向某个战役的全部订阅者推送一条事件。满载的慢连接直接丢弃该事件。
func (h *Hub) Broadcast(campaignID string, event any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.subs[campaignID] {
		select {
		case c.send <- event:
		default:
		}
	}
}

func (h *Hub) drop(campaignID string, c *client) {
	h.mu.Lock()
	if set, ok := h.subs[campaignID]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			close(c.send)
			if len(set) == 0 {
				delete(h.subs, campaignID)
			}
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// readLoop 只消费控制帧（pong/close），观战连接不接收业务消息。
func (h *Hub) readLoop(campaignID string, c *client) {
	defer h.drop(campaignID, c)
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(campaignID string, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.drop(campaignID, c)
	}()
	for {
		select {
		case event, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				if h.log != nil {
					h.log.Warn("ws write event failed", zap.Error(err))
				}
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
