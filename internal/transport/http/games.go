package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

// GameCloser is told when a game is deleted so live sockets can be dropped.
type GameCloser interface {
	CloseGame(gameID string)
}

type GameHandler struct {
	SessionManager *game.SessionManager
	DefaultWidth   int
	DefaultHeight  int
	Closer         GameCloser
}

func NewGameHandler(sm *game.SessionManager, width, height int, closer GameCloser) *GameHandler {
	return &GameHandler{
		SessionManager: sm,
		DefaultWidth:   width,
		DefaultHeight:  height,
		Closer:         closer,
	}
}

type createGameRequest struct {
	Width  *int `json:"width"`
	Height *int `json:"height"`
}

type moveRequest struct {
	Column *int `json:"column"`
}

type colorsRequest struct {
	Player1Color string `json:"player1Color"`
	Player2Color string `json:"player2Color"`
}

type moveResponse struct {
	Result domain.MoveResult `json:"result"`
	State  game.Snapshot     `json:"state"`
}

type cellResponse struct {
	Row    int         `json:"row"`
	Column int         `json:"column"`
	Mark   domain.Mark `json:"mark"`
}

var errMissingColumn = errors.New("column is required")

// RegisterRoutes mounts the game API on r.
func (h *GameHandler) RegisterRoutes(r gin.IRouter) {
	games := r.Group("/api/games")
	games.POST("", h.CreateGame)
	games.GET("", h.ListGames)
	games.GET("/:id", h.GetGame)
	games.DELETE("/:id", h.DeleteGame)
	games.GET("/:id/cells/:row/:col", h.GetCell)
	games.POST("/:id/moves", h.DropPiece)
	games.POST("/:id/reset", h.Reset)
	games.PUT("/:id/colors", h.SetColors)
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, err)
		return
	}

	width, height := h.DefaultWidth, h.DefaultHeight
	if req.Width != nil {
		width = *req.Width
	}
	if req.Height != nil {
		height = *req.Height
	}

	session, err := h.SessionManager.CreateSession(width, height)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session.Snapshot())
}

// ListGames returns every live game
func (h *GameHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.ActiveSessions())
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	gameID := c.Param("id")
	if err := h.SessionManager.RemoveSession(gameID); err != nil {
		writeError(c, err)
		return
	}
	if h.Closer != nil {
		h.Closer.CloseGame(gameID)
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) GetCell(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	row, err := strconv.Atoi(c.Param("row"))
	if err != nil {
		writeError(c, err)
		return
	}
	col, err := strconv.Atoi(c.Param("col"))
	if err != nil {
		writeError(c, err)
		return
	}

	mark, err := session.Cell(row, col)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cellResponse{Row: row, Column: col, Mark: mark})
}

func (h *GameHandler) DropPiece(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, err)
		return
	}
	if req.Column == nil {
		writeError(c, errMissingColumn)
		return
	}

	result, err := session.DropPiece(*req.Column)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, moveResponse{Result: result, State: session.Snapshot()})
}

func (h *GameHandler) Reset(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	session.Reset()
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) SetColors(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req colorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, err)
		return
	}

	session.SetColors(req.Player1Color, req.Player2Color)
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) session(c *gin.Context) (*game.Session, bool) {
	session, exists := h.SessionManager.GetSession(c.Param("id"))
	if !exists {
		writeError(c, game.ErrSessionNotFound)
		return nil, false
	}
	return session, true
}

func writeError(c *gin.Context, err error) {
	kind := game.ErrorKind(err)
	c.AbortWithStatusJSON(statusFor(kind), gin.H{"error": err.Error(), "kind": kind})
}

func statusFor(kind string) int {
	switch kind {
	case game.KindNotFound:
		return http.StatusNotFound
	case game.KindColumnFull, game.KindGameAlreadyOver:
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
