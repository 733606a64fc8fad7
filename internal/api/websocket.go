package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/cuenta-regresiva/backend/internal/clock"
	"github.com/cuenta-regresiva/backend/internal/models"
)

// WebSocket message types for the push protocol
const (
	// Client -> Server messages
	MsgTypeSelect = "select"
	MsgTypePing   = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeTick      = "tick"
	MsgTypeSelected  = "selected"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

// writeWait bounds a single frame write
const writeWait = 5 * time.Second

// WebSocket message structure
type WSMessage struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// SelectPayload is sent by the client to pick a city
type SelectPayload struct {
	City string `json:"city"`
}

// WSSelectedResponse answers a select message with everything the page
// redraws for the new city. Map and Gallery follow the profile's features.
type WSSelectedResponse struct {
	City    models.CityView          `json:"city"`
	Map     *models.MapView          `json:"map,omitempty"`
	Gallery *models.Gallery          `json:"gallery,omitempty"`
	Session *models.SelectionSession `json:"session,omitempty"`
}

// WebSocket error response
type WSErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// wsConn serializes writes; gorilla allows one concurrent writer.
type wsConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *wsConn) send(msg WSMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(msg)
}

func (c *wsConn) closeGoingAway() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))
}

// WebSocketHandler pushes a countdown tick every refresh interval and
// answers city selections
type WebSocketHandler struct {
	page     PageService
	sessions SessionManager
	interval time.Duration
	lifetime context.Context
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocket push handler
func NewWebSocketHandler(page PageService, sessions SessionManager, interval time.Duration, lifetime context.Context) *WebSocketHandler {
	if lifetime == nil {
		lifetime = context.Background()
	}
	return &WebSocketHandler{
		page:     page,
		sessions: sessions,
		interval: interval,
		lifetime: lifetime,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
		},
	}
}

// HandleWebSocket upgrades the connection and runs the tick loop until the
// client disconnects or the server shuts down. ?session= binds city
// selections to a selection session.
func (wsh *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ctx, cancel := streamContext(c.Request().Context(), wsh.lifetime)
	defer cancel()

	conn := &wsConn{ws: ws}
	sessionID := c.QueryParam("session")

	fmt.Println("[WebSocket] Client connected")

	conn.send(WSMessage{
		Type:      MsgTypeConnected,
		ID:        sessionID,
		Payload:   mustJSON(wsh.page.Info()),
		Timestamp: time.Now().UnixMilli(),
	})

	go func() {
		defer cancel()
		wsh.readLoop(conn, sessionID)
	}()

	err = clock.Every(ctx, wsh.interval, func(context.Context) error {
		// An open connection keeps its session alive.
		wsh.touch(sessionID)
		snap := wsh.page.Snapshot()
		return conn.send(WSMessage{
			Type:      MsgTypeTick,
			Payload:   mustJSON(snap),
			Timestamp: snap.GeneratedAt,
		})
	})
	if err != nil && ctx.Err() == nil {
		fmt.Printf("[WebSocket] Tick send failed: %v\n", err)
	}
	if wsh.lifetime.Err() != nil {
		conn.closeGoingAway()
	}

	fmt.Println("[WebSocket] Client disconnected")
	return nil
}

// readLoop handles client messages until the connection fails.
func (wsh *WebSocketHandler) readLoop(conn *wsConn, sessionID string) {
	for {
		var msg WSMessage
		if err := conn.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				fmt.Printf("[WebSocket] Connection error: %v\n", err)
			}
			return
		}
		wsh.touch(sessionID)

		switch msg.Type {
		case MsgTypePing:
			wsh.sendMessage(conn, WSMessage{Type: MsgTypePong, ID: msg.ID, Timestamp: time.Now().UnixMilli()})
		case MsgTypeSelect:
			wsh.handleSelect(conn, sessionID, msg)
		default:
			wsh.sendError(conn, "Unknown message type: "+msg.Type, "INVALID_TYPE")
		}
	}
}

// handleSelect resolves the chosen city and replies with its view.
func (wsh *WebSocketHandler) handleSelect(conn *wsConn, sessionID string, msg WSMessage) {
	var payload SelectPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		wsh.sendError(conn, "Invalid select payload: "+err.Error(), "INVALID_PAYLOAD")
		return
	}
	if payload.City == "" {
		wsh.sendError(conn, "city is required", "VALIDATION_ERROR")
		return
	}

	view, err := wsh.page.City(payload.City)
	if err != nil {
		apiErr := domainError(err, payload.City)
		wsh.sendError(conn, apiErr.Message, apiErr.Code)
		return
	}
	resp := WSSelectedResponse{City: view}

	if sessionID != "" {
		s, err := wsh.sessions.Select(sessionID, payload.City)
		if err != nil {
			apiErr := domainError(err, sessionID)
			wsh.sendError(conn, apiErr.Message, apiErr.Code)
			return
		}
		resp.Session = &s
	}

	if profile := wsh.page.Info().Profile; profile != nil {
		if profile.Features.Map {
			if m, err := wsh.page.Map(payload.City); err == nil {
				resp.Map = &m
			}
		}
		if profile.Features.CityGallery {
			if g, err := wsh.page.Gallery(payload.City); err == nil {
				resp.Gallery = &g
			}
		}
	}

	wsh.sendMessage(conn, WSMessage{
		Type:      MsgTypeSelected,
		ID:        msg.ID,
		Payload:   mustJSON(resp),
		Timestamp: time.Now().UnixMilli(),
	})
	fmt.Printf("[WebSocket] Selected %s\n", payload.City)
}

func (wsh *WebSocketHandler) touch(sessionID string) {
	if sessionID != "" {
		wsh.sessions.TouchSession(sessionID)
	}
}

func (wsh *WebSocketHandler) sendMessage(conn *wsConn, msg WSMessage) {
	if err := conn.send(msg); err != nil {
		fmt.Printf("[WebSocket] Failed to send message: %v\n", err)
	}
}

func (wsh *WebSocketHandler) sendError(conn *wsConn, message, code string) {
	wsh.sendMessage(conn, WSMessage{
		Type:      MsgTypeError,
		Timestamp: time.Now().UnixMilli(),
		Payload: mustJSON(WSErrorResponse{
			Type:    MsgTypeError,
			Message: message,
			Code:    code,
		}),
	})
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
