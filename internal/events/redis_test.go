package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	channels []string
	payloads [][]byte
	err      error
}

func (f *fakeClient) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, message.([]byte))
	return redis.NewIntResult(1, f.err)
}

func TestRedisPublisherNotify(t *testing.T) {
	client := &fakeClient{}
	pub := NewRedisPublisher(client, "connect4:games")

	sm := game.NewSessionManager(game.Colors{Player1: "purple", Player2: "green"}, pub)
	session, err := sm.CreateSession(7, 6)
	require.NoError(t, err)

	_, err = session.DropPiece(4)
	require.NoError(t, err)

	require.Len(t, client.channels, 1)
	assert.Equal(t, "connect4:games:"+session.GameID, client.channels[0])

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(client.payloads[0], &snap))
	assert.Equal(t, session.GameID, snap.GameID)
	assert.Equal(t, 1, snap.MoveCount)
	assert.Equal(t, domain.Player1, snap.Board[5][4])
	assert.Equal(t, domain.Player2, snap.CurrentPlayer)
}

func TestRedisPublisherErrorDoesNotAffectGame(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	pub := NewRedisPublisher(client, "p")

	sm := game.NewSessionManager(game.Colors{}, pub)
	session, err := sm.CreateSession(4, 4)
	require.NoError(t, err)

	res, err := session.DropPiece(0)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeContinued, res.Outcome)
	assert.Equal(t, "p:abc", pub.Channel("abc"))
}
