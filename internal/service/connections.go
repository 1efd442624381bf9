package service

import (
	"sync"

	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Conn is the part of a websocket connection the service writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// GameConnections holds the live connections watching one game. Writes go
// out under the lock because a websocket connection takes one writer at a
// time.
type GameConnections struct {
	connections map[string]Conn // connID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (gc *GameConnections) Add(connID string, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.connections[connID] = conn
}

func (gc *GameConnections) Remove(connID string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	delete(gc.connections, connID)
}

func (gc *GameConnections) Len() int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return len(gc.connections)
}

// Send writes msg to a single connection.
func (gc *GameConnections) Send(connID string, msg ws.Message) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	conn, ok := gc.connections[connID]
	if !ok {
		return ErrConnectionClosed
	}
	if err := conn.WriteJSON(msg); err != nil {
		delete(gc.connections, connID)
		return err
	}
	return nil
}

// Broadcast writes msg to every connection. A connection that fails the
// write is dropped.
func (gc *GameConnections) Broadcast(msg ws.Message) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	for connID, conn := range gc.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("dropping connection %s: %v", connID, err)
			delete(gc.connections, connID)
			conn.Close()
		}
	}
}

func (gc *GameConnections) closeAll() {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	for connID, conn := range gc.connections {
		conn.Close()
		delete(gc.connections, connID)
	}
}
