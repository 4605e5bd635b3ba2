package session

import (
	"github.com/cardtable/eights/internal/model"
)

// Conn is a push connection to one subscribed player. Send must not
// block; adapters buffer writes and report a full buffer as an error.
type Conn interface {
	Send(msg model.UpdateMessage) error
	Close()
}
