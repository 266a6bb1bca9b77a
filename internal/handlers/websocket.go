package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"roulette-backend/internal/models"
	"roulette-backend/internal/services"
)

const (
	MessageBalanceUpdate = "BALANCE_UPDATE"
	MessageSpinResult    = "SPIN_RESULT"
	MessagePing          = "PING"
	MessagePong          = "PONG"

	writeWait      = 10 * time.Second
	clientSendSize = 16
	hubQueueSize   = 256
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Message struct {
	Type   string `json:"type"`
	UserID int64  `json:"userId,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Client struct {
	UserID int64
	conn   *websocket.Conn
	send   chan *Message
}

// outbound targets every client of a user, or a single client when client
// is set.
type outbound struct {
	userID int64
	client *Client
	msg    *Message
}

// WebSocketHub fans spin results out to the connected clients of each
// user. All writes to a client's send channel happen on the Run goroutine.
type WebSocketHub struct {
	clients    map[int64]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	outbound   chan outbound
	done       chan struct{}
}

var _ services.Broadcaster = (*WebSocketHub)(nil)

func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan outbound, hubQueueSize),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client.
func (hub *WebSocketHub) Run(ctx context.Context) error {
	defer close(hub.done)

	for {
		select {
		case client := <-hub.register:
			if hub.clients[client.UserID] == nil {
				hub.clients[client.UserID] = make(map[*Client]struct{})
			}
			hub.clients[client.UserID][client] = struct{}{}
			log.WithField("user_id", client.UserID).Debug("WebSocket client registered")

		case client := <-hub.unregister:
			hub.remove(client)
			log.WithField("user_id", client.UserID).Debug("WebSocket client unregistered")

		case out := <-hub.outbound:
			hub.deliver(out)

		case <-ctx.Done():
			for _, set := range hub.clients {
				for client := range set {
					close(client.send)
				}
			}
			hub.clients = make(map[int64]map[*Client]struct{})
			return nil
		}
	}
}

func (hub *WebSocketHub) BroadcastSpin(userID int64, result *models.SpinResult) {
	hub.enqueue(outbound{userID: userID, msg: &Message{
		Type:   MessageSpinResult,
		UserID: userID,
		Data:   result,
	}})
	hub.enqueue(outbound{userID: userID, msg: &Message{
		Type:   MessageBalanceUpdate,
		UserID: userID,
		Data:   result.UpdatedBalances,
	}})
}

func (hub *WebSocketHub) enqueue(out outbound) {
	select {
	case hub.outbound <- out:
	case <-hub.done:
	default:
		log.WithFields(log.Fields{
			"user_id": out.userID,
			"type":    out.msg.Type,
		}).Warn("WebSocket hub queue full, dropping message")
	}
}

func (hub *WebSocketHub) deliver(out outbound) {
	if out.client != nil {
		if _, ok := hub.clients[out.client.UserID][out.client]; ok {
			hub.send(out.client, out.msg)
		}
		return
	}

	for client := range hub.clients[out.userID] {
		hub.send(client, out.msg)
	}
}

// send drops clients that cannot keep up.
func (hub *WebSocketHub) send(client *Client, msg *Message) {
	select {
	case client.send <- msg:
	default:
		hub.remove(client)
	}
}

func (hub *WebSocketHub) remove(client *Client) {
	set, ok := hub.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}

	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(hub.clients, client.UserID)
	}
}

type WebSocketHandler struct {
	ledger services.Ledger
	hub    *WebSocketHub
}

func NewWebSocketHandler(ledger services.Ledger, hub *WebSocketHub) *WebSocketHandler {
	return &WebSocketHandler{
		ledger: ledger,
		hub:    hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	user, found := h.ledger.GetUser(userID)
	if !found {
		writeError(c, http.StatusNotFound, CodeNotFound, "User not found")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Failed to upgrade to WebSocket")
		return
	}

	client := &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan *Message, clientSendSize),
	}
	client.send <- &Message{
		Type:   MessageBalanceUpdate,
		UserID: userID,
		Data:   user.Balances(),
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()

	h.readPump(client)
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		select {
		case h.hub.unregister <- client:
		case <-h.hub.done:
		}
		client.conn.Close()
	}()

	for {
		var msg Message
		if err := client.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithField("user_id", client.UserID).WithError(err).Warn("WebSocket read error")
			}
			return
		}

		if msg.Type == MessagePing {
			h.hub.enqueue(outbound{client: client, msg: &Message{
				Type: MessagePong,
				Data: gin.H{"timestamp": time.Now().Unix()},
			}})
		}
	}
}

func (client *Client) writePump() {
	defer client.conn.Close()

	for msg := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteJSON(msg); err != nil {
			return
		}
	}

	_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = client.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
