package feed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"arenashooter/game"

	"github.com/coder/websocket"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOp(t *testing.T, frame []byte) int {
	t.Helper()
	var generic GenericMessage
	require.NoError(t, cbor.Unmarshal(frame, &generic))
	return generic.Op
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()
	defer a.Done()
	defer b.Done()

	require.NoError(t, hub.Publish(ScoreMessage{Op: ScoreOp, Score: 100}))

	for _, s := range []*Subscriber{a, b} {
		frame := <-s.Recv()
		var msg ScoreMessage
		require.NoError(t, cbor.Unmarshal(frame, &msg))
		assert.Equal(t, ScoreOp, msg.Op)
		assert.Equal(t, 100, msg.Score)
	}
}

func TestHubReplaysLastSnapshot(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.PublishSnapshot(game.Snapshot{Frame: 7, State: "playing"}))
	require.NoError(t, hub.Publish(FPSMessage{Op: FPSOp, FPS: 60}))

	s := hub.Subscribe()
	defer s.Done()

	var msg SnapshotMessage
	require.NoError(t, cbor.Unmarshal(<-s.Recv(), &msg))
	assert.Equal(t, uint64(7), msg.Snapshot.Frame)
	assert.Equal(t, "playing", msg.Snapshot.State)
	assert.Empty(t, s.Recv())
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe()
	fast := hub.Subscribe()

	for i := 0; i <= SUBSCRIBER_QUEUE; i++ {
		require.NoError(t, hub.Publish(ScoreMessage{Op: ScoreOp, Score: i}))
		<-fast.Recv()
	}

	select {
	case <-slow.Slow():
	default:
		t.Fatal("slow subscriber was not dropped")
	}
	assert.Equal(t, 1, hub.Subscribers())

	fast.Done()
	assert.Equal(t, 0, hub.Subscribers())
}

func TestUIPublishesEvents(t *testing.T) {
	hub := NewHub()
	s := hub.Subscribe()
	defer s.Done()

	var ui game.UI = NewUI(hub)
	ui.OnHealthChanged(75, 100)
	ui.OnAmmoChanged(11, 12)
	ui.OnScoreChanged(200)
	ui.OnGameOver(200)
	ui.OnFPSChanged(59.5)

	var ops []int
	for i := 0; i < 5; i++ {
		ops = append(ops, decodeOp(t, <-s.Recv()))
	}
	assert.Equal(t, []int{HealthOp, AmmoOp, ScoreOp, GameOverOp, FPSOp}, ops)
}

func TestServerStreamsFrames(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(NewServer(hub))
	defer server.Close()

	require.NoError(t, hub.PublishSnapshot(game.Snapshot{Frame: 1}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/feed"
	c, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")

	typ, frame, err := c.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageBinary, typ)
	assert.Equal(t, SnapshotOp, decodeOp(t, frame))

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, hub.Publish(GameOverMessage{Op: GameOverOp, Score: 300}))

	_, frame, err = c.Read(ctx)
	require.NoError(t, err)
	var over GameOverMessage
	require.NoError(t, cbor.Unmarshal(frame, &over))
	assert.Equal(t, 300, over.Score)
}

func TestHealthz(t *testing.T) {
	server := httptest.NewServer(NewServer(NewHub()))
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok 0\n", string(body))
}
