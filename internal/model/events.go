package model

// EventType identifies what happened in a push update
type EventType string

const (
	EventConnected    EventType = "connected"
	EventPlayerJoined EventType = "player_joined"
	EventGameStarted  EventType = "game_started"
	EventCardPlayed   EventType = "card_played"
	EventCardDrawn    EventType = "card_drawn"
	EventGameFinished EventType = "game_finished"
)

// UpdateMessage is the envelope pushed to subscribed connections
type UpdateMessage struct {
	Type EventType   `json:"type"`
	View ViewPayload `json:"view"`
}
