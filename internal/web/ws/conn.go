package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/cardtable/eights/internal/model"
	"github.com/cardtable/eights/internal/session"
)

const (
	// Time allowed to write one message to the peer
	writeWait = 10 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// ErrBufferFull is returned when a client cannot keep up with updates
var ErrBufferFull = errors.New("websocket send buffer full")

// Conn adapts a websocket to a session connection. Send queues JSON
// frames; Serve pumps them to the peer.
type Conn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

// Ensure Conn implements session.Conn
var _ session.Conn = (*Conn)(nil)

// Accept upgrades the request to a websocket and wraps it
func Accept(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The JSON API is already open cross-origin
		InsecureSkipVerify: true,
	})
	if err != nil {
		return nil, err
	}

	return &Conn{
		ws:   ws,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}, nil
}

// Send queues an update without blocking. A full buffer means the
// client stopped reading, so it is reported as a connection failure.
func (c *Conn) Send(msg model.UpdateMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return errors.New("websocket connection closed")
	case c.send <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close releases the connection; Serve returns shortly after
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Serve pumps queued frames to the peer until the client disconnects or
// the connection is closed. It blocks, so call it from the request
// handler goroutine.
func (c *Conn) Serve(ctx context.Context) {
	// CloseRead processes control frames and cancels the context when
	// the peer goes away; the server never expects inbound messages.
	ctx = c.ws.CloseRead(ctx)
	defer c.ws.Close(websocket.StatusNormalClosure, "")

	for {
		select {
		case data := <-c.send:
			if err := c.write(ctx, data); err != nil {
				return
			}

		case <-c.done:
			// Drain anything queued before the close
			for {
				select {
				case data := <-c.send:
					if err := c.write(ctx, data); err != nil {
						return
					}
				default:
					return
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Conn) write(ctx context.Context, data []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	return c.ws.Write(writeCtx, websocket.MessageText, data)
}
