package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closerSpy struct {
	closed []string
}

func (c *closerSpy) CloseGame(gameID string) {
	c.closed = append(c.closed, gameID)
}

type apiFixture struct {
	router   *gin.Engine
	sessions *game.SessionManager
	closer   *closerSpy
}

func newFixture() *apiFixture {
	gin.SetMode(gin.TestMode)
	sessions := game.NewSessionManager(game.Colors{Player1: "purple", Player2: "green"}, nil)
	closer := &closerSpy{}

	router := gin.New()
	NewGameHandler(sessions, 7, 6, closer).RegisterRoutes(router)

	return &apiFixture{router: router, sessions: sessions, closer: closer}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func (f *apiFixture) createGame(t *testing.T, body interface{}) game.Snapshot {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/games", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[game.Snapshot](t, w)
}

func TestCreateGameDefaults(t *testing.T) {
	f := newFixture()

	snap := f.createGame(t, nil)

	assert.NotEmpty(t, snap.GameID)
	assert.Equal(t, 7, snap.Width)
	assert.Equal(t, 6, snap.Height)
	assert.Equal(t, domain.StatusInProgress, snap.Status)
	assert.Equal(t, domain.Player1, snap.CurrentPlayer)
	assert.Equal(t, "purple", snap.Colors.Player1)
}

func TestCreateGameCustomSize(t *testing.T) {
	f := newFixture()

	snap := f.createGame(t, map[string]int{"width": 4, "height": 5})

	assert.Equal(t, 4, snap.Width)
	assert.Equal(t, 5, snap.Height)
	assert.Len(t, snap.Board, 5)
}

func TestCreateGameInvalidDimensions(t *testing.T) {
	f := newFixture()

	w := f.do(t, http.MethodPost, "/api/games", map[string]int{"width": 3, "height": 3})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, game.KindInvalidDimensions, body["kind"])
	assert.Equal(t, 0, f.sessions.Count())
}

func TestCreateGameTooLarge(t *testing.T) {
	f := newFixture()

	for _, body := range []map[string]int64{
		{"width": 4, "height": 1 << 40},
		{"width": 65, "height": 6},
	} {
		w := f.do(t, http.MethodPost, "/api/games", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, game.KindInvalidDimensions, decode[map[string]string](t, w)["kind"])
	}
	assert.Equal(t, 0, f.sessions.Count())
}

func TestDropPieceFlow(t *testing.T) {
	f := newFixture()
	snap := f.createGame(t, map[string]int{"width": 6, "height": 7})
	path := "/api/games/" + snap.GameID + "/moves"

	for i, col := range []int{0, 1, 0, 1, 0, 1} {
		w := f.do(t, http.MethodPost, path, map[string]int{"column": col})
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[moveResponse](t, w)
		assert.Equal(t, domain.OutcomeContinued, res.Result.Outcome)
		assert.Equal(t, i+1, res.State.MoveCount)
	}

	w := f.do(t, http.MethodPost, path, map[string]int{"column": 0})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[moveResponse](t, w)
	assert.Equal(t, domain.OutcomeWon, res.Result.Outcome)
	assert.Equal(t, domain.Player1, res.Result.Player)
	assert.Equal(t, "Purple player won!", res.State.Message)

	w = f.do(t, http.MethodPost, path, map[string]int{"column": 2})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, game.KindGameAlreadyOver, decode[map[string]string](t, w)["kind"])
}

func TestDropPieceErrors(t *testing.T) {
	f := newFixture()
	snap := f.createGame(t, map[string]int{"width": 4, "height": 4})
	path := "/api/games/" + snap.GameID + "/moves"

	w := f.do(t, http.MethodPost, path, map[string]int{"column": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, game.KindInvalidColumn, decode[map[string]string](t, w)["kind"])

	w = f.do(t, http.MethodPost, path, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, game.KindBadRequest, decode[map[string]string](t, w)["kind"])

	for i := 0; i < 4; i++ {
		w = f.do(t, http.MethodPost, path, map[string]int{"column": 0})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w = f.do(t, http.MethodPost, path, map[string]int{"column": 0})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, game.KindColumnFull, decode[map[string]string](t, w)["kind"])

	w = f.do(t, http.MethodPost, "/api/games/nope/moves", map[string]int{"column": 0})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCell(t *testing.T) {
	f := newFixture()
	snap := f.createGame(t, nil)
	f.do(t, http.MethodPost, "/api/games/"+snap.GameID+"/moves", map[string]int{"column": 2})

	w := f.do(t, http.MethodGet, "/api/games/"+snap.GameID+"/cells/5/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cell := decode[cellResponse](t, w)
	assert.Equal(t, domain.Player1, cell.Mark)

	w = f.do(t, http.MethodGet, "/api/games/"+snap.GameID+"/cells/0/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.Empty, decode[cellResponse](t, w).Mark)

	w = f.do(t, http.MethodGet, "/api/games/"+snap.GameID+"/cells/6/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, game.KindInvalidCell, decode[map[string]string](t, w)["kind"])

	w = f.do(t, http.MethodGet, "/api/games/"+snap.GameID+"/cells/x/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetAndColors(t *testing.T) {
	f := newFixture()
	snap := f.createGame(t, nil)
	base := "/api/games/" + snap.GameID

	w := f.do(t, http.MethodPut, base+"/colors", map[string]string{"player1Color": "red"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, game.Colors{Player1: "red", Player2: "green"}, decode[game.Snapshot](t, w).Colors)

	f.do(t, http.MethodPost, base+"/moves", map[string]int{"column": 1})
	w = f.do(t, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reset := decode[game.Snapshot](t, w)
	assert.Equal(t, 0, reset.MoveCount)
	assert.Equal(t, "red", reset.Colors.Player1)
}

func TestListAndDeleteGames(t *testing.T) {
	f := newFixture()
	a := f.createGame(t, nil)
	f.createGame(t, nil)

	w := f.do(t, http.MethodGet, "/api/games", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]game.Snapshot](t, w), 2)

	w = f.do(t, http.MethodDelete, "/api/games/"+a.GameID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{a.GameID}, f.closer.closed)

	w = f.do(t, http.MethodGet, "/api/games/"+a.GameID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/api/games/"+a.GameID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
