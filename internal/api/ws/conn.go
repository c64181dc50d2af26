package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/agencydesk/agency-platform/internal/core/ports"
)

const sendBuffer = 64

// wsConn wraps a websocket connection with a bounded outbound queue so the
// hub never blocks on a slow reader. It implements realtime.Subscriber.
type wsConn struct {
	conn   *websocket.Conn
	userID string
	send   chan Message
	closed chan struct{}
}

func newWsConn(c *websocket.Conn, userID string) *wsConn {
	return &wsConn{
		conn:   c,
		userID: userID,
		send:   make(chan Message, sendBuffer),
		closed: make(chan struct{}),
	}
}

// Deliver queues a task event for writing. If the client's queue is full the
// event is dropped for this connection only.
func (c *wsConn) Deliver(event ports.TaskEvent) {
	c.enqueue(eventMessage(event))
}

func (c *wsConn) enqueue(msg Message) {
	select {
	case c.send <- msg:
	case <-c.closed:
	default:
		// slow consumer, drop
	}
}

func (c *wsConn) close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	_ = c.conn.Close()
}

// writeLoop is the single writer on the underlying connection. It drains the
// send queue and keeps the connection alive with pings.
func (c *wsConn) writeLoop(pingEvery time.Duration) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				c.close()
				return
			}
		case <-c.closed:
			return
		}
	}
}
