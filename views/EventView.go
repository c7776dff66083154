package views

import (
	"log"
	"net/http"
	"sync"

	"github.com/GrainArc/GeoPrep/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// 图层事件推送

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 生产环境需要严格检查
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// EventHub 把图层事件广播给所有websocket连接
type EventHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewEventHub() *EventHub {
	return &EventHub{conns: make(map[*websocket.Conn]bool)}
}

// Attach 订阅图层事件流
func (h *EventHub) Attach(layers *services.LayerService) {
	layers.Subscribe(func(ev services.Event) {
		h.Broadcast(ev)
	})
}

// Broadcast 推送事件，写失败的连接直接关掉移除
func (h *EventHub) Broadcast(ev services.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ServeEvents websocket入口，连接只收不发，读循环用来感知断开
func (h *EventHub) ServeEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to websocket: %v", err)
		return
	}
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
