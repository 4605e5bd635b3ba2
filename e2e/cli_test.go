package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/eights/internal/api"
	"github.com/cardtable/eights/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "eightsctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/eightsctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:    logger,
		Directory: app.Directory,
		Autoplay:  app.Autoplay,
		Registry:  app.Registry,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type gameCreatedResponse struct {
	GameID string `json:"game_id"`
}

type joinResponse struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

type gameViewResponse struct {
	GameID          string  `json:"game_id"`
	State           string  `json:"state"`
	Players         []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		HandSize int    `json:"hand_size"`
	} `json:"players"`
	TopCard         *string  `json:"top_card"`
	ActiveSuit      *string  `json:"active_suit"`
	DrawPileSize    int      `json:"draw_pile_size"`
	DiscardPileSize int      `json:"discard_pile_size"`
	CurrentPlayerID *string  `json:"current_player_id"`
	WinnerID        *string  `json:"winner_id"`
	WinnerName      string   `json:"winner_name"`
	Hand            []string `json:"hand"`
}

type drawResponse struct {
	Card string           `json:"card"`
	View gameViewResponse `json:"view"`
}

type movesResponse struct {
	Moves []struct {
		PlayerID string  `json:"player_id"`
		Type     string  `json:"type"`
		Card     *string `json:"card"`
	} `json:"moves"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Card string helpers. Cards are rendered as rank then suit symbol, e.g.
// "8♥" or "10♦". The suit symbol is always the final rune.
func cardSuit(card string) string {
	runes := []rune(card)
	return string(runes[len(runes)-1])
}

func cardRank(card string) string {
	runes := []rune(card)
	return string(runes[:len(runes)-1])
}

func isLegal(card string, top string, activeSuit *string) bool {
	if cardRank(card) == "8" {
		return true
	}
	if activeSuit != nil {
		return cardSuit(card) == *activeSuit
	}
	return cardSuit(card) == cardSuit(top) || cardRank(card) == cardRank(top)
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_GameSetup(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create a game
	output, err := cli.run("game", "create")
	require.NoError(t, err, "output: %s", output)

	var created gameCreatedResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	require.NotEmpty(t, created.GameID)
	gameID := created.GameID

	// Two players join
	output, err = cli.run("game", "join", gameID, "Alice")
	require.NoError(t, err, "output: %s", output)
	var alice joinResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))
	assert.Equal(t, gameID, alice.GameID)
	assert.NotEmpty(t, alice.PlayerID)

	output, err = cli.run("game", "join", gameID, "Bob")
	require.NoError(t, err, "output: %s", output)
	var bob joinResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))
	assert.NotEqual(t, alice.PlayerID, bob.PlayerID)

	// Start the game
	output, err = cli.run("game", "start", gameID)
	require.NoError(t, err, "output: %s", output)
	var started gameViewResponse
	require.NoError(t, json.Unmarshal([]byte(output), &started))
	assert.Equal(t, "active", started.State)
	require.NotNil(t, started.CurrentPlayerID)
	assert.Equal(t, alice.PlayerID, *started.CurrentPlayerID)
	require.NotNil(t, started.TopCard)

	// Public view shows hand sizes but no hands
	output, err = cli.run("game", "get", gameID)
	require.NoError(t, err, "output: %s", output)
	var public gameViewResponse
	require.NoError(t, json.Unmarshal([]byte(output), &public))
	require.Len(t, public.Players, 2)
	assert.Equal(t, 7, public.Players[0].HandSize)
	assert.Equal(t, 7, public.Players[1].HandSize)
	assert.Empty(t, public.Hand)
	assert.NotContains(t, output, "\"hand\":")

	// Player state includes the hand
	output, err = cli.run("game", "state", gameID, alice.PlayerID)
	require.NoError(t, err, "output: %s", output)
	var state gameViewResponse
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	assert.Len(t, state.Hand, 7)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "create")
	require.NoError(t, err, "output: %s", output)
	var created gameCreatedResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	gameID := created.GameID

	output, err = cli.run("game", "join", gameID, "Alice")
	require.NoError(t, err, "output: %s", output)
	var alice joinResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))

	output, err = cli.run("game", "join", gameID, "Bob")
	require.NoError(t, err, "output: %s", output)
	var bob joinResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))

	output, err = cli.run("game", "start", gameID)
	require.NoError(t, err, "output: %s", output)

	// Play greedily until someone wins: discard the first legal card,
	// draw when stuck
	for step := 0; step < 2000; step++ {
		output, err = cli.run("game", "get", gameID)
		require.NoError(t, err, "output: %s", output)
		var public gameViewResponse
		require.NoError(t, json.Unmarshal([]byte(output), &public))

		if public.State == "finished" {
			require.NotNil(t, public.WinnerID)
			assert.NotEmpty(t, public.WinnerName)
			assert.Nil(t, public.CurrentPlayerID)
			t.Logf("game finished after %d steps, winner: %s", step, public.WinnerName)

			// Move history records the whole game
			output, err = cli.run("game", "moves", gameID)
			require.NoError(t, err, "output: %s", output)
			var moves movesResponse
			require.NoError(t, json.Unmarshal([]byte(output), &moves))
			assert.NotEmpty(t, moves.Moves)
			last := moves.Moves[len(moves.Moves)-1]
			assert.Equal(t, "play", last.Type)
			assert.Equal(t, *public.WinnerID, last.PlayerID)
			return
		}

		require.NotNil(t, public.CurrentPlayerID)
		playerID := *public.CurrentPlayerID

		output, err = cli.run("game", "state", gameID, playerID)
		require.NoError(t, err, "output: %s", output)
		var state gameViewResponse
		require.NoError(t, json.Unmarshal([]byte(output), &state))
		require.NotNil(t, state.TopCard)

		played := false
		for _, card := range state.Hand {
			if !isLegal(card, *state.TopCard, state.ActiveSuit) {
				continue
			}

			args := []string{"game", "play", gameID, playerID, card}
			if cardRank(card) == "8" {
				args = append(args, declareSuitFor(state.Hand, card))
			}
			output, err = cli.run(args...)
			require.NoError(t, err, "step %d play %s: %s", step, card, output)
			played = true
			break
		}

		if !played {
			output, err = cli.run("game", "draw", gameID, playerID)
			require.NoError(t, err, "step %d draw: %s", step, output)
		}
	}

	t.Fatal("game did not finish within the step limit")
}

// declareSuitFor picks the suit of the first remaining non-eight card,
// falling back to the eight's own suit
func declareSuitFor(hand []string, eight string) string {
	for _, card := range hand {
		if card != eight && cardRank(card) != "8" {
			return cardSuit(card)
		}
	}
	return cardSuit(eight)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get non-existent game
	output, err := cli.run("game", "get", "no-such-game")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Third player cannot join
	output, err = cli.run("game", "create")
	require.NoError(t, err)
	var created gameCreatedResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))

	_, err = cli.run("game", "join", created.GameID, "Alice")
	require.NoError(t, err)
	_, err = cli.run("game", "join", created.GameID, "Bob")
	require.NoError(t, err)

	output, err = cli.run("game", "join", created.GameID, "Carol")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "two players")

	// Cannot play before the game starts
	output, err = cli.run("game", "state", created.GameID, "nobody")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not")
}
