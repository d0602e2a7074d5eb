package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nerrad567/smarthome-core/internal/actuator"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/config"
	"github.com/nerrad567/smarthome-core/internal/infrastructure/logging"
	"github.com/nerrad567/smarthome-core/internal/sensor"
	"github.com/nerrad567/smarthome-core/internal/telemetry/metrics"
	"github.com/nerrad567/smarthome-core/internal/value"
)

// WebSocket message types.
const (
	WSTypeSubscribe   = "subscribe"
	WSTypeUnsubscribe = "unsubscribe"
	WSTypePing        = "ping"
	WSTypePong        = "pong"
	WSTypeEvent       = "event"
	WSTypeResponse    = "response"
	WSTypeError       = "error"

	wsSendBufferSize = 256
)

// Event channels.
const (
	ChannelActuatorTarget = "actuator.target_changed"
	ChannelSensorValue    = "sensor.value_recorded"
)

// WSMessage is a message sent to or from a WebSocket client.
type WSMessage struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

// WSSubscribePayload is the payload of subscribe and unsubscribe messages.
type WSSubscribePayload struct {
	Channels []string `json:"channels"`
}

// wsInbound is a client message with the payload left undecoded.
type wsInbound struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

func encodeWS(msg WSMessage) ([]byte, error) {
	msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return json.Marshal(msg)
}

// Hub fans actuator target and sensor value events out to subscribed
// WebSocket clients. It implements service.TargetPublisher and
// service.ValueSink.
//
// Send channels are only written and closed under mu, so a client that
// is being removed never receives on a closed channel.
type Hub struct {
	cfg    config.WebSocketConfig
	logger *logging.Logger

	mu       sync.RWMutex
	clients  map[*wsClient]struct{}
	channels map[string]map[*wsClient]struct{}
}

type wsClient struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	subject string
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are checked by the CORS middleware.
	CheckOrigin: func(*http.Request) bool { return true },
}

// NewHub creates a WebSocket hub.
func NewHub(cfg config.WebSocketConfig, logger *logging.Logger) *Hub {
	return &Hub{
		cfg:      cfg,
		logger:   logger,
		clients:  make(map[*wsClient]struct{}),
		channels: make(map[string]map[*wsClient]struct{}),
	}
}

// Run blocks until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	for c := range h.clients {
		h.dropLocked(c)
		c.conn.Close()
	}
	h.mu.Unlock()
	metrics.SetWebSocketClients(0)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.SetWebSocketClients(n)
	h.logger.Debug("websocket client connected", "clients", n, "subject", c.subject)
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	h.dropLocked(c)
	n := len(h.clients)
	h.mu.Unlock()

	metrics.SetWebSocketClients(n)
	h.logger.Debug("websocket client disconnected", "clients", n)
}

// dropLocked forgets c and closes its send channel once.
func (h *Hub) dropLocked(c *wsClient) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for name, subs := range h.channels {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.channels, name)
		}
	}
	close(c.send)
}

// setSubscriptions adds or removes c from the named channels.
func (h *Hub) setSubscriptions(c *wsClient, names []string, subscribe bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	for _, name := range names {
		subs := h.channels[name]
		switch {
		case subscribe && subs == nil:
			h.channels[name] = map[*wsClient]struct{}{c: {}}
		case subscribe:
			subs[c] = struct{}{}
		case subs != nil:
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.channels, name)
			}
		}
	}
}

// deliver queues data for c, dropping it when the client is gone or its
// buffer is full.
func (h *Hub) deliver(c *wsClient, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; ok {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Broadcast sends an event to every client subscribed to channel.
func (h *Hub) Broadcast(channel string, payload any) {
	data, err := encodeWS(WSMessage{Type: WSTypeEvent, EventType: channel, Payload: payload})
	if err != nil {
		h.logger.Error("failed to encode websocket event", "channel", channel, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.channels[channel] {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("websocket client too slow, event dropped", "channel", channel, "subject", c.subject)
		}
	}
}

// PublishTarget broadcasts an accepted actuator target.
func (h *Hub) PublishTarget(_ context.Context, a actuator.Actuator) error {
	h.Broadcast(ChannelActuatorTarget, newActuatorView(a))
	return nil
}

// ValueRecorded broadcasts a newly recorded sensor value.
func (h *Hub) ValueRecorded(_ context.Context, sn *sensor.Sensor, v value.Value) error {
	h.Broadcast(ChannelSensorValue, map[string]any{
		"device_id":        sn.DeviceID().String(),
		"functionality_id": sn.FunctionalityID().String(),
		"value":            newValueView(v),
	})
	return nil
}

// handleWebSocket authenticates the caller and upgrades the connection.
// The access token comes from the Authorization header or, for browsers,
// the token query parameter.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		writeUnauthorized(w, "access token is required")
		return
	}
	claims, err := s.auth.Verify(token)
	if err != nil {
		writeUnauthorized(w, "invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &wsClient{
		hub:     s.hub,
		conn:    conn,
		send:    make(chan []byte, wsSendBufferSize),
		subject: claims.Subject,
	}
	s.hub.add(c)

	t := newWSTimings(s.wsCfg)
	go c.writeLoop(t)
	go c.readLoop(t, int64(s.wsCfg.MaxMessageSize))
}

type wsTimings struct {
	pingEvery time.Duration
	readWait  time.Duration
	writeWait time.Duration
}

func newWSTimings(cfg config.WebSocketConfig) wsTimings {
	ping := time.Duration(cfg.PingInterval) * time.Second
	pong := time.Duration(cfg.PongTimeout) * time.Second
	if ping <= 0 {
		ping = 30 * time.Second
	}
	if pong <= 0 {
		pong = 10 * time.Second
	}
	return wsTimings{pingEvery: ping, readWait: ping + pong, writeWait: pong}
}

// readLoop handles client messages until the connection fails, then
// removes the client.
func (c *wsClient) readLoop(t wsTimings, limit int64) {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	extend := func(string) error { return c.conn.SetReadDeadline(time.Now().Add(t.readWait)) }
	c.conn.SetReadLimit(limit)
	c.conn.SetPongHandler(extend)
	extend("") //nolint:errcheck // a failed deadline surfaces on read

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error", "subject", c.subject, "error", err)
			}
			return
		}
		extend("") //nolint:errcheck // as above
		c.handle(data)
	}
}

// writeLoop drains the send channel and pings on an interval. A closed
// send channel ends the connection with a close frame.
func (c *wsClient) writeLoop(t wsTimings) {
	ticker := time.NewTicker(t.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		msgType, data := websocket.PingMessage, []byte(nil)
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil) //nolint:errcheck // connection is closing
				return
			}
			msgType, data = websocket.TextMessage, msg
		case <-ticker.C:
		}
		c.conn.SetWriteDeadline(time.Now().Add(t.writeWait)) //nolint:errcheck // a failed deadline surfaces on write
		if err := c.conn.WriteMessage(msgType, data); err != nil {
			return
		}
	}
}

func (c *wsClient) handle(data []byte) {
	var in wsInbound
	if err := json.Unmarshal(data, &in); err != nil {
		c.reply("", WSTypeError, map[string]string{"message": "invalid JSON message"})
		return
	}

	switch in.Type {
	case WSTypeSubscribe, WSTypeUnsubscribe:
		var sub WSSubscribePayload
		if err := json.Unmarshal(in.Payload, &sub); err != nil {
			c.reply(in.ID, WSTypeError, map[string]string{"message": "invalid subscription payload"})
			return
		}
		subscribe := in.Type == WSTypeSubscribe
		c.hub.setSubscriptions(c, sub.Channels, subscribe)
		key := "unsubscribed"
		if subscribe {
			key = "subscribed"
		}
		c.reply(in.ID, WSTypeResponse, map[string]any{key: sub.Channels})
	case WSTypePing:
		c.reply(in.ID, WSTypePong, nil)
	default:
		c.reply(in.ID, WSTypeError, map[string]string{"message": "unknown message type: " + in.Type})
	}
}

func (c *wsClient) reply(id, msgType string, payload any) {
	data, err := encodeWS(WSMessage{Type: msgType, ID: id, Payload: payload})
	if err != nil {
		return
	}
	c.hub.deliver(c, data)
}
