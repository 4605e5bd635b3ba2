package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cardtable/eights/internal/model"
	"github.com/cardtable/eights/internal/session"
)

const (
	// Time between keepalive comments
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// ErrBufferFull is returned when a client cannot keep up with updates
var ErrBufferFull = errors.New("sse send buffer full")

// Conn adapts one SSE request to a session connection. Send queues the
// formatted event; the request goroutine drains the queue in Serve.
type Conn struct {
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

// Ensure Conn implements session.Conn
var _ session.Conn = (*Conn)(nil)

// NewConn creates an unstarted SSE connection
func NewConn() *Conn {
	return &Conn{
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// Send queues an update without blocking. A full buffer means the
// client stopped reading, so it is reported as a connection failure.
func (c *Conn) Send(msg model.UpdateMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	event := fmt.Sprintf("event: %s\ndata: %s\n\n", msg.Type, data)

	select {
	case <-c.done:
		return errors.New("sse connection closed")
	case c.send <- []byte(event):
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

// Serve writes queued events to the response until the client
// disconnects or the connection is closed. It blocks, so call it from
// the request handler goroutine.
func (c *Conn) Serve(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message := <-c.send:
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// Keepalive comment
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-c.done:
			// Drain anything queued before the close
			for {
				select {
				case message := <-c.send:
					if _, err := w.Write(message); err != nil {
						return
					}
					flusher.Flush()
				default:
					return
				}
			}

		case <-r.Context().Done():
			return
		}
	}
}
