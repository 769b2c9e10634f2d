package websocket

import "github.com/iamasit07/connect4/internal/service/game"

const (
	MsgDropPiece = "drop_piece"
	MsgReset     = "reset"
	MsgSetColors = "set_colors"

	MsgState = "state"
	MsgError = "error"
)

// ClientMessage is what the board UI sends.
type ClientMessage struct {
	Type         string `json:"type"`
	Column       *int   `json:"column,omitempty"`
	Player1Color string `json:"player1Color,omitempty"`
	Player2Color string `json:"player2Color,omitempty"`
}

// ServerMessage is either a board update or a rejected request.
type ServerMessage struct {
	Type    string         `json:"type"`
	State   *game.Snapshot `json:"state,omitempty"`
	Kind    string         `json:"kind,omitempty"`
	Message string         `json:"message,omitempty"`
}

func stateMessage(snapshot game.Snapshot) ServerMessage {
	return ServerMessage{Type: MsgState, State: &snapshot}
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: MsgError, Kind: game.ErrorKind(err), Message: err.Error()}
}
