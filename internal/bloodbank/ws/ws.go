package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/bloodbank-services/internal/comm"
)

const (
	writeWait = 5 * time.Second

	// frames queued per socket before it counts as stalled
	sendBuffer = 64
)

var errSocketStalled = errors.New("socket is closed or not keeping up")

// socket owns one writer goroutine, gorilla connections allow one writer at
// a time. Callers only queue frames, so a slow client never blocks them.
type socket struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newSocket(conn *websocket.Conn) *socket {
	k := &socket{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	go k.writeLoop()
	return k
}

func (k *socket) writeLoop() {
	for {
		select {
		case data := <-k.send:
			_ = k.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := k.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warnf("socket write failed: %v", err)
				k.close()
				return
			}
		case <-k.done:
			return
		}
	}
}

// enqueue never blocks. It reports false when the socket is closed or its
// queue is full.
func (k *socket) enqueue(data []byte) bool {
	select {
	case <-k.done:
		return false
	default:
	}

	select {
	case k.send <- data:
		return true
	default:
		return false
	}
}

func (k *socket) close() {
	k.once.Do(func() {
		close(k.done)
		_ = k.conn.Close()
	})
}

// Ws keeps the dashboard sockets that receive change events.
type Ws struct {
	connMap sync.Map // socketId -> *socket
}

func NewWs() *Ws {
	return &Ws{}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	if prev, loaded := s.connMap.Swap(socketId, newSocket(conn)); loaded {
		prev.(*socket).close()
	}
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	k, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return k.(*socket).conn, true
}

func (s *Ws) HandleDisconnect(socketId string) {
	if k, ok := s.connMap.LoadAndDelete(socketId); ok {
		k.(*socket).close()
	}
}

func (s *Ws) Count() int {
	count := 0
	s.connMap.Range(func(key, value any) bool {
		count++
		return true
	})
	return count
}

// Send queues v as JSON for a single socket.
func (s *Ws) Send(socketId string, v any) error {
	k, ok := s.connMap.Load(socketId)
	if !ok {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if !k.(*socket).enqueue(data) {
		return fmt.Errorf("send to %s: %w", socketId, errSocketStalled)
	}
	return nil
}

// Publish queues ev for every connected socket and returns without waiting
// on the network. A socket whose queue is full is closed and forgotten.
func (s *Ws) Publish(ev comm.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	s.connMap.Range(func(key, value any) bool {
		socketId := key.(string)
		k := value.(*socket)
		if !k.enqueue(data) {
			log.Warnf("dropping socket %s: %v", socketId, errSocketStalled)
			s.connMap.Delete(socketId)
			k.close()
		}
		return true // continue iterating
	})

	return nil
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "ping":
		if err := s.Send(socketId, comm.WSMessage{Type: "pong", SocketId: socketId}); err != nil {
			log.Errorf("Failed to send pong to socket %s: %v", socketId, err)
		}
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}
