package ws

import (
	"net/http"
	"sync"

	"storefront/entity"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// NotifyHub fans notifications out to every open connection of their
// owner. It implements services.NotificationSink.
type NotifyHub struct {
	clients    map[string]map[*websocket.Conn]bool // owner -> set of conns
	broadcast  chan outbound
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	log        *logrus.Logger
}

type subscription struct {
	Conn  *websocket.Conn
	Owner string
}

type outbound struct {
	Owner        string
	Notification entity.Notification
}

func NewNotifyHub(log *logrus.Logger) *NotifyHub {
	return &NotifyHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan outbound, 16),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		log:        log,
	}
}

// Run loops over register/unregister/broadcast until the process exits.
func (h *NotifyHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.Owner] == nil {
				h.clients[sub.Owner] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.Owner][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if conns := h.clients[sub.Owner]; conns != nil {
				if conns[sub.Conn] {
					delete(conns, sub.Conn)
					sub.Conn.Close()
				}
				if len(conns) == 0 {
					delete(h.clients, sub.Owner)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.Owner] {
				if err := conn.WriteJSON(msg.Notification); err != nil {
					h.log.WithFields(logrus.Fields{"owner": msg.Owner, "error": err.Error()}).Warn("notify write failed")
					conn.Close()
					delete(h.clients[msg.Owner], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a notification for the owner's connections.
func (h *NotifyHub) Publish(owner string, n entity.Notification) {
	h.broadcast <- outbound{Owner: owner, Notification: n}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Serve upgrades the request and keeps the connection registered until the
// client goes away. Clients only listen; inbound frames are drained to
// detect the close.
func (h *NotifyHub) Serve(c *gin.Context) {
	owner := utils.Owner(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("websocket upgrade failed")
		return
	}

	sub := subscription{Conn: conn, Owner: owner}
	h.register <- sub

	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
