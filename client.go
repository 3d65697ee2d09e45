package main

import (
	"sync"
	"time"

	"waitline/waitline-queue-server/pkg/msg"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
)

// Client is a middleman between one watcher's websocket connection
// and the hub.
type Client struct {
	id string

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	sendWsMessage chan *msg.WsMessage

	// Closed once to tell the pumps to shut down.
	close     chan struct{}
	closeOnce sync.Once

	pingPeriod time.Duration

	hub *Hub
}

func (c *Client) Run() {
	go c.writePump()
	go c.readPump()
}

// TryClose signals the pumps to stop. Safe to call more than once.
func (c *Client) TryClose() {
	c.closeOnce.Do(func() {
		close(c.close)
	})
}

// Watchers are receive-only; the read pump exists for pong handling
// and to notice the peer going away.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	pongWait := c.pingPeriod * 5 / 2
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.logger.Errorf("client id[%v] read error %v", c.id, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	pingTicker := time.NewTicker(c.pingPeriod)

	defer func() {
		pingTicker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case wsMessage := <-c.sendWsMessage:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(wsMessage); err != nil {
				c.hub.logger.Errorf("client id[%v] write error %v", c.id, err)
				return
			}

		case <-c.close:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-pingTicker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
