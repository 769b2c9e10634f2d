package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4/internal/service/game"
)

const writeWait = 5 * time.Second

type client struct {
	conn *websocket.Conn

	// writeMu ensures only one goroutine writes to the socket at a time;
	// conn.WriteJSON is not safe for concurrent use.
	writeMu sync.Mutex
}

func (c *client) send(message ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

// ConnectionManager tracks which sockets are watching which game.
type ConnectionManager struct {
	games map[string]map[string]*client // gameID → connID → client
	mu    sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		games: make(map[string]map[string]*client),
	}
}

func (cm *ConnectionManager) AddConnection(gameID, connID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	watchers, exists := cm.games[gameID]
	if !exists {
		watchers = make(map[string]*client)
		cm.games[gameID] = watchers
	}
	watchers[connID] = &client{conn: conn}
}

// RemoveConnection closes the socket and forgets it.
func (cm *ConnectionManager) RemoveConnection(gameID, connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	watchers, exists := cm.games[gameID]
	if !exists {
		return
	}
	if c, ok := watchers[connID]; ok {
		c.conn.Close()
		delete(watchers, connID)
	}
	if len(watchers) == 0 {
		delete(cm.games, gameID)
	}
}

// Watchers returns how many sockets follow gameID.
func (cm *ConnectionManager) Watchers(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.games[gameID])
}

func (cm *ConnectionManager) SendMessage(gameID, connID string, message ServerMessage) error {
	cm.mu.RLock()
	c, exists := cm.games[gameID][connID]
	cm.mu.RUnlock()

	if !exists {
		return nil // Disconnected, ignore
	}
	return c.send(message)
}

// Broadcast sends message to every socket watching gameID, in turn, so each
// socket sees updates in the order they happened.
func (cm *ConnectionManager) Broadcast(gameID string, message ServerMessage) {
	cm.mu.RLock()
	clients := make(map[string]*client, len(cm.games[gameID]))
	for connID, c := range cm.games[gameID] {
		clients[connID] = c
	}
	cm.mu.RUnlock()

	for connID, c := range clients {
		if err := c.send(message); err != nil {
			log.Printf("[WS] Write to %s (game %s) failed: %v", connID, gameID, err)
		}
	}
}

// Notify implements game.Notifier.
func (cm *ConnectionManager) Notify(snapshot game.Snapshot) {
	cm.Broadcast(snapshot.GameID, stateMessage(snapshot))
}

// CloseGame disconnects every watcher of gameID, e.g. after the game is deleted.
func (cm *ConnectionManager) CloseGame(gameID string) {
	cm.mu.Lock()
	watchers := cm.games[gameID]
	delete(cm.games, gameID)
	cm.mu.Unlock()

	for _, c := range watchers {
		c.writeMu.Lock()
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed"),
			time.Now().Add(writeWait))
		c.writeMu.Unlock()
		c.conn.Close()
	}
}
