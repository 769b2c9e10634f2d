package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/iamasit07/connect4/pkg/uid"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second

	// Client messages are tiny JSON commands.
	maxMessageSize = 4096
)

var errUnknownMessage = errors.New("unknown message type")
var errMissingColumn = errors.New("column is required")

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. checkOrigin may be nil to
// accept any origin.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, checkOrigin func(r *http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades GET /ws/:id into a channel bound to one game.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Param("id")
	if _, exists := h.SessionManager.GetSession(gameID); !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": game.ErrSessionNotFound.Error(), "kind": game.KindNotFound})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	connID, err := uid.GenerateConnectionID()
	if err != nil {
		log.Printf("[WS] %v", err)
		conn.Close()
		return
	}

	h.handleConnection(gameID, connID, conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection.
// Messages from one socket are handled one at a time, which is the
// serialization the engine expects from its UI.
func (h *Handler) handleConnection(gameID, connID string, conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	// Keep-alive pinger. WriteControl may run alongside WriteJSON.
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	h.ConnManager.AddConnection(gameID, connID, conn)
	log.Printf("[WS] Connection %s watching game %s", connID, gameID)

	defer func() {
		log.Printf("[WS] Connection %s closed", connID)
		h.ConnManager.RemoveConnection(gameID, connID)
	}()

	session, exists := h.SessionManager.GetSession(gameID)
	if !exists {
		h.ConnManager.SendMessage(gameID, connID, errorMessage(game.ErrSessionNotFound))
		return
	}
	h.ConnManager.SendMessage(gameID, connID, stateMessage(session.Snapshot()))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Connection %s closed unexpectedly: %v", connID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format from %s: %v", connID, err)
			h.ConnManager.SendMessage(gameID, connID, errorMessage(err))
			continue
		}

		// The game may have been deleted or swept while we were connected.
		session, exists = h.SessionManager.GetSession(gameID)
		if !exists {
			h.ConnManager.SendMessage(gameID, connID, errorMessage(game.ErrSessionNotFound))
			return
		}

		if err := h.processMessage(session, msg); err != nil {
			h.ConnManager.SendMessage(gameID, connID, errorMessage(err))
		}
	}
}

// processMessage routes specific actions. Successful changes reach every
// watcher through the session's notifier.
func (h *Handler) processMessage(session *game.Session, msg ClientMessage) error {
	switch msg.Type {
	case MsgDropPiece:
		if msg.Column == nil {
			return errMissingColumn
		}
		_, err := session.DropPiece(*msg.Column)
		return err

	case MsgReset:
		session.Reset()
		return nil

	case MsgSetColors:
		session.SetColors(msg.Player1Color, msg.Player2Color)
		return nil
	}
	return errUnknownMessage
}
