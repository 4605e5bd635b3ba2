package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/eights/internal/api"
	"github.com/cardtable/eights/internal/api/response"
	"github.com/cardtable/eights/internal/factory"
	"github.com/cardtable/eights/internal/model"
	"github.com/cardtable/eights/internal/testutil"
)

// testServer wires the real router over an in-memory app. The mocked
// random deals from an unshuffled deck, so plays are deterministic:
// the first joiner holds A♥ 3♥ 5♥ 7♥ 9♥ J♥ K♥, the second holds
// 2♥ 4♥ 6♥ 8♥ 10♥ Q♥ A♦, and the first discard is 2♦.
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:    testutil.NopLogger(),
		Directory: app.Directory,
		Autoplay:  app.Autoplay,
		Registry:  app.Registry,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// startedGame creates a two-player started game and returns its id and
// both player ids
func (ts *testServer) startedGame(t *testing.T) (string, string, string) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/games", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created response.CreateGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/join", map[string]string{"name": "alice"})
	require.Equal(t, http.StatusOK, rr.Code)
	var alice response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &alice))

	rr = ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/join", map[string]string{"name": "bob"})
	require.Equal(t, http.StatusOK, rr.Code)
	var bob response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bob))

	rr = ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/start", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	return created.GameID, alice.PlayerID, bob.PlayerID
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateAndJoinGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games", nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created response.CreateGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.GameID)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/join", map[string]string{"name": "alice"})
	require.Equal(t, http.StatusOK, rr.Code)

	var joined response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Equal(t, created.GameID, joined.GameID)
	assert.NotEmpty(t, joined.PlayerID)

	// Joining again with the same name returns the same player id
	rr = ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/join", map[string]string{"name": "alice"})
	require.Equal(t, http.StatusOK, rr.Code)
	var rejoined response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rejoined))
	assert.Equal(t, joined.PlayerID, rejoined.PlayerID)
}

func TestJoinMissingGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/nope/join", map[string]string{"name": "alice"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestJoinThirdPlayerRejected(t *testing.T) {
	ts := newTestServer(t)
	gameID, _, _ := ts.startedGame(t)

	// Game is active now, so the state error comes first for carol
	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/join", map[string]string{"name": "carol"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_STATE")
}

func TestStartRequiresTwoPlayers(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created response.CreateGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = ts.request(http.MethodPost, "/api/v1/games/"+created.GameID+"/start", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_ENOUGH_PLAYERS")
}

func TestStartIsIdempotent(t *testing.T) {
	ts := newTestServer(t)
	gameID, _, _ := ts.startedGame(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/start", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var view model.PublicView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, model.GameStateActive, view.State)
}

func TestPublicStateHidesHands(t *testing.T) {
	ts := newTestServer(t)
	gameID, _, _ := ts.startedGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/"+gameID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var view model.PublicView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Len(t, view.Players, 2)
	assert.Equal(t, 7, view.Players[0].HandSize)
	assert.NotContains(t, rr.Body.String(), `"hand"`)
}

func TestPlayerStateIncludesHand(t *testing.T) {
	ts := newTestServer(t)
	gameID, aliceID, _ := ts.startedGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/"+gameID+"/state?player_id="+aliceID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var view model.PlayerView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Len(t, view.Hand, 7)
	assert.Contains(t, view.Hand, model.Card{Rank: model.RankAce, Suit: model.SuitHearts})

	// Unknown player ids are rejected
	rr = ts.request(http.MethodGet, "/api/v1/games/"+gameID+"/state?player_id=stranger", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// And the parameter is required
	rr = ts.request(http.MethodGet, "/api/v1/games/"+gameID+"/state", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlayAndDrawFlow(t *testing.T) {
	ts := newTestServer(t)
	gameID, aliceID, bobID := ts.startedGame(t)

	// Alice has no legal play against the 2♦, so she draws
	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/draw?player_id="+aliceID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var draw response.DrawResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &draw))
	assert.Equal(t, model.Card{Rank: model.RankThree, Suit: model.SuitDiamonds}, draw.Card)
	assert.Len(t, draw.View.Hand, 8)

	// Bob plays 2♥ on the 2♦
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/play?player_id="+bobID, map[string]string{"card": "2H"})
	require.Equal(t, http.StatusOK, rr.Code)

	var view model.PlayerView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Len(t, view.Hand, 6)

	// Playing out of turn is forbidden
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/play?player_id="+bobID, map[string]string{"card": "4H"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_YOUR_TURN")

	// An eight needs a declared suit
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/draw?player_id="+aliceID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/play?player_id="+bobID, map[string]string{"card": "8H"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "MISSING_DECLARED_SUIT")

	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/play?player_id="+bobID,
		map[string]string{"card": "8H", "declared_suit": "spades"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.NotNil(t, view.ActiveSuit)
	assert.Equal(t, model.SuitSpades, *view.ActiveSuit)
}

func TestAutoMove(t *testing.T) {
	ts := newTestServer(t)
	gameID, aliceID, bobID := ts.startedGame(t)

	// Alice has nothing against the 2♦, so the auto move draws
	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/auto?player_id="+aliceID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var auto response.AutoResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &auto))
	assert.Equal(t, "draw", auto.Type)
	assert.Equal(t, model.Card{Rank: model.RankThree, Suit: model.SuitDiamonds}, auto.Card)
	assert.Len(t, auto.View.Hand, 8)

	// Bob's auto move matches the rank with his 2♥
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/auto?player_id="+bobID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &auto))
	assert.Equal(t, "play", auto.Type)
	assert.Equal(t, model.Card{Rank: model.RankTwo, Suit: model.SuitHearts}, auto.Card)
	assert.Len(t, auto.View.Hand, 6)

	// Auto moves respect turn order too
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/auto?player_id="+bobID, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_YOUR_TURN")
}

func TestPlayValidation(t *testing.T) {
	ts := newTestServer(t)
	gameID, aliceID, _ := ts.startedGame(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/play?player_id="+aliceID, map[string]string{"card": "not-a-card"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")

	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/play?player_id="+aliceID, map[string]string{"card": "2S"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "CARD_NOT_IN_HAND")

	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/play?player_id="+aliceID, map[string]string{"card": "AH"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ILLEGAL_MOVE")
}

func TestMoveHistory(t *testing.T) {
	ts := newTestServer(t)
	gameID, aliceID, bobID := ts.startedGame(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/draw?player_id="+aliceID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/play?player_id="+bobID, map[string]string{"card": "2H"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+gameID+"/moves", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var moves response.MovesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &moves))
	require.Len(t, moves.Moves, 2)
	assert.Equal(t, model.MoveDraw, moves.Moves[0].Type)
	assert.Equal(t, model.MovePlay, moves.Moves[1].Type)
	require.NotNil(t, moves.Moves[1].Card)
	assert.Equal(t, model.Card{Rank: model.RankTwo, Suit: model.SuitHearts}, *moves.Moves[1].Card)
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	gameID, _, _ := ts.startedGame(t)

	rr := ts.request(http.MethodDelete, "/api/v1/games/"+gameID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+gameID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestSSESubscribeReceivesUpdates(t *testing.T) {
	ts := newTestServer(t)
	gameID, aliceID, _ := ts.startedGame(t)

	// Run the SSE request against a live server so the stream can be
	// read while moves come in
	server := httptest.NewServer(ts.handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/games/" + gameID + "/events?player_id=" + aliceID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// The connected event carries alice's private view
	buf := make([]byte, 4096)
	n, err := resp.Body.Read(buf)
	require.NoError(t, err)
	chunk := string(buf[:n])
	assert.Contains(t, chunk, "event: connected")
	assert.Contains(t, chunk, `"kind":"player"`)

	// A mutation pushes an update to the subscriber
	rr := ts.request(http.MethodPost, "/api/v1/games/"+gameID+"/draw?player_id="+aliceID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	n, err = resp.Body.Read(buf)
	require.NoError(t, err)
	chunk = string(buf[:n])
	assert.Contains(t, chunk, "event: card_drawn")
}

func TestSSERejectsUnknownPlayer(t *testing.T) {
	ts := newTestServer(t)
	gameID, _, _ := ts.startedGame(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/"+gameID+"/events?player_id=stranger", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
