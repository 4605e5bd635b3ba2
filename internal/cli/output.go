package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameCreated:
		o.printGameCreated(v)
	case JoinResult:
		o.printJoinResult(v)
	case GameView:
		o.printGameView(v)
	case DrawResult:
		o.printDrawResult(v)
	case AutoResult:
		o.printAutoResult(v)
	case MovesResult:
		o.printMovesResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// GameCreated response type (matches API)
type GameCreated struct {
	GameID string `json:"game_id"`
}

// JoinResult response type
type JoinResult struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

// Seat response type
type Seat struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HandSize int    `json:"hand_size"`
}

// GameView response type. The API returns the same shape for public and
// player state; Hand and PlayerID are only present in the latter.
type GameView struct {
	GameID          string   `json:"game_id"`
	State           string   `json:"state"`
	Players         []Seat   `json:"players"`
	TopCard         *string  `json:"top_card"`
	ActiveSuit      *string  `json:"active_suit"`
	DrawPileSize    int      `json:"draw_pile_size"`
	DiscardPileSize int      `json:"discard_pile_size"`
	CurrentPlayerID *string  `json:"current_player_id"`
	WinnerID        *string  `json:"winner_id"`
	WinnerName      string   `json:"winner_name,omitempty"`
	PlayerID        string   `json:"player_id,omitempty"`
	Hand            []string `json:"hand,omitempty"`
}

// DrawResult response type
type DrawResult struct {
	Card string   `json:"card"`
	View GameView `json:"view"`
}

// AutoResult response type
type AutoResult struct {
	Type         string   `json:"type"`
	Card         string   `json:"card"`
	DeclaredSuit *string  `json:"declared_suit,omitempty"`
	View         GameView `json:"view"`
}

// Move response type
type Move struct {
	ID           string    `json:"id"`
	GameID       string    `json:"game_id"`
	PlayerID     string    `json:"player_id"`
	Type         string    `json:"type"`
	Card         *string   `json:"card,omitempty"`
	DeclaredSuit *string   `json:"declared_suit,omitempty"`
	PlayedAt     time.Time `json:"played_at"`
}

// MovesResult response type
type MovesResult struct {
	Moves []Move `json:"moves"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGameCreated(g GameCreated) {
	fmt.Printf("Game created: %s\n", g.GameID)
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Joined game: %s\n", j.GameID)
	fmt.Printf("Player ID: %s\n", j.PlayerID)
}

func (o *Output) printGameView(g GameView) {
	fmt.Printf("Game: %s\n", g.GameID)
	fmt.Printf("State: %s\n", g.State)

	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		turnStr := ""
		if g.CurrentPlayerID != nil && *g.CurrentPlayerID == p.ID {
			turnStr = " [to play]"
		}
		fmt.Printf("  - %s (%s) - %d cards%s\n", p.Name, p.ID, p.HandSize, turnStr)
	}

	if g.TopCard != nil {
		fmt.Printf("Top Card: %s\n", *g.TopCard)
	}
	if g.ActiveSuit != nil {
		fmt.Printf("Active Suit: %s\n", *g.ActiveSuit)
	}
	fmt.Printf("Draw Pile: %d cards\n", g.DrawPileSize)
	fmt.Printf("Discard Pile: %d cards\n", g.DiscardPileSize)

	if len(g.Hand) > 0 {
		fmt.Printf("\nYour Hand: %s\n", strings.Join(g.Hand, " "))
	}

	if g.WinnerID != nil {
		name := g.WinnerName
		if name == "" {
			name = *g.WinnerID
		}
		fmt.Printf("\nWinner: %s\n", name)
	}
}

func (o *Output) printDrawResult(d DrawResult) {
	fmt.Printf("Drew: %s\n\n", d.Card)
	o.printGameView(d.View)
}

func (o *Output) printAutoResult(a AutoResult) {
	if a.Type == "draw" {
		fmt.Printf("Drew: %s\n\n", a.Card)
	} else if a.DeclaredSuit != nil {
		fmt.Printf("Played: %s declaring %s\n\n", a.Card, *a.DeclaredSuit)
	} else {
		fmt.Printf("Played: %s\n\n", a.Card)
	}
	o.printGameView(a.View)
}

func (o *Output) printMovesResult(m MovesResult) {
	fmt.Printf("Moves (%d):\n", len(m.Moves))
	for i, mv := range m.Moves {
		detail := mv.Type
		if mv.Card != nil {
			detail = fmt.Sprintf("%s %s", mv.Type, *mv.Card)
		}
		if mv.DeclaredSuit != nil {
			detail = fmt.Sprintf("%s (declared %s)", detail, *mv.DeclaredSuit)
		}
		fmt.Printf("  %d. %s - %s\n", i+1, mv.PlayerID, detail)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
