// Package notifier đẩy thông báo realtime qua websocket và email.
// Mọi API của package đều fire-and-forget: lỗi gửi được log và nuốt,
// không bao giờ lan ngược vào luồng nghiệp vụ.
package notifier

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/devxankit/CRM-SaaS-sub000/internal/api/middleware"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
)

// Notification là payload đẩy xuống client qua websocket.
type Notification struct {
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	ProjectID string                 `json:"projectId,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// client là một kết nối websocket của một actor.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub quản lý các kết nối websocket theo actor (key = role:id).
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]bool
}

// NewHub tạo hub rỗng.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*client]bool),
	}
}

// defaultHub là hub dùng chung của process.
var defaultHub = NewHub()

// Default trả về hub dùng chung.
func Default() *Hub {
	return defaultHub
}

func actorKey(role, id string) string {
	return role + ":" + id
}

func (h *Hub) register(key string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[key] == nil {
		h.clients[key] = make(map[*client]bool)
	}
	h.clients[key][c] = true
}

func (h *Hub) unregister(key string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[key]; ok {
		if set[c] {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.clients, key)
		}
	}
}

// NotifyUser đẩy thông báo cho một actor cụ thể. Không block: nếu buffer
// của client đầy thì thông báo bị bỏ qua cho client đó.
func (h *Hub) NotifyUser(role, id string, n Notification) {
	if n.Timestamp == 0 {
		n.Timestamp = time.Now().UnixMilli()
	}
	data, err := json.Marshal(n)
	if err != nil {
		logger.GetErrorLogger().WithError(err).Error("Failed to marshal notification payload")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[actorKey(role, id)] {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Broadcast đẩy thông báo cho tất cả client đang kết nối.
func (h *Hub) Broadcast(n Notification) {
	if n.Timestamp == 0 {
		n.Timestamp = time.Now().UnixMilli()
	}
	data, err := json.Marshal(n)
	if err != nil {
		logger.GetErrorLogger().WithError(err).Error("Failed to marshal notification payload")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, set := range h.clients {
		for c := range set {
			select {
			case c.send <- data:
			default:
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin đã được chặn ở tầng CORS của API; hub chạy sau reverse proxy nội bộ
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS upgrade kết nối và bơm thông báo cho client.
// Token truyền qua query param "token" vì browser không set được header khi mở websocket.
func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	actor, err := middleware.ParseToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.GetErrorLogger().WithError(err).Error("Websocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 64)}
	key := actorKey(actor.Role, actor.ID.Hex())
	h.register(key, c)

	// Writer: đẩy payload từ channel xuống connection
	go func() {
		defer conn.Close()
		for data := range c.send {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	// Reader: chỉ để phát hiện client đóng kết nối
	go func() {
		defer h.unregister(key, c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Serve chạy websocket hub trên địa chỉ riêng (hub không đi qua fasthttp của Fiber).
// Gọi trong goroutine từ main.
func (h *Hub) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/notifications", h.handleWS)
	logger.GetAppLogger().WithField("address", addr).Info("Notification websocket hub listening")
	return http.ListenAndServe(addr, mux)
}
