package queue

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivityEvent(t *testing.T) {
	at := time.Date(2026, 10, 19, 20, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	ev := NewActivityEvent(ActionCreated, "venue", 7, "The Musical Hop", at)

	_, err := uuid.Parse(ev.EventID)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19T18:30:00Z", ev.OccurredAt)
	assert.Equal(t, ActionCreated, ev.Action)
	assert.Equal(t, uint64(7), ev.EntityID)
}

func TestFormatLine(t *testing.T) {
	ev := ActivityEvent{EventID: "e1", Action: ActionUpdated, Entity: "artist", EntityID: 4,
		Name: `Guns "N" Petals`, OccurredAt: "2026-10-19T18:30:00Z"}
	assert.Equal(t,
		`[2026-10-19T18:30:00Z] artist updated | id=4 | name="Guns \"N\" Petals" | event_id=e1`+"\n",
		FormatLine(ev))

	ev.Name = ""
	ev.Action = ActionDeleted
	assert.Equal(t, "[2026-10-19T18:30:00Z] artist deleted | id=4 | event_id=e1\n", FormatLine(ev))
}

func TestConsumerHandleAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "activity.log")
	c := Consumer{LogPath: path}

	for _, id := range []uint64{1, 2} {
		body, err := json.Marshal(ActivityEvent{EventID: "x", Action: ActionCreated, Entity: "show", EntityID: id, OccurredAt: "t"})
		require.NoError(t, err)
		require.NoError(t, c.Handle(body))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[t] show created | id=1 | event_id=x\n[t] show created | id=2 | event_id=x\n", string(data))
}

func TestConsumerHandleRejectsGarbage(t *testing.T) {
	c := Consumer{LogPath: filepath.Join(t.TempDir(), "activity.log")}
	assert.Error(t, c.Handle([]byte("not json")))
	assert.Error(t, c.Handle([]byte(`{"entity_id":3}`)))
	_, err := os.Stat(c.LogPath)
	assert.True(t, os.IsNotExist(err))
}

func TestDisabledPublisherDropsEvents(t *testing.T) {
	p := NewPublisher("", "fyyur.activity")
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), NewActivityEvent(ActionDeleted, "venue", 1, "", time.Now())))
	assert.NoError(t, p.Close())

	var nilPub *Publisher
	assert.NoError(t, nilPub.Publish(context.Background(), ActivityEvent{}))
}

func TestSleepHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleep(ctx, time.Hour))
	assert.True(t, sleep(context.Background(), time.Millisecond))
}

// silentBroker accepts TCP connections and never answers the AMQP handshake.
func silentBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	var conns []net.Conn
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, c)
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		<-done
		for _, c := range conns {
			_ = c.Close()
		}
	})
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func TestPublishDoesNotWaitForUnresponsiveBroker(t *testing.T) {
	p := newPublisher(silentBroker(t), "fyyur.activity", 100*time.Millisecond, 8)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, p.Publish(ctx, NewActivityEvent(ActionCreated, "venue", i, "", time.Now())))
	}
	assert.Less(t, time.Since(start), 200*time.Millisecond)
	assert.NoError(t, ctx.Err())

	closed := make(chan struct{})
	go func() {
		_ = p.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		t.Fatal("Close did not return while the broker was unresponsive")
	}
	assert.ErrorIs(t, p.Publish(context.Background(), ActivityEvent{}), ErrPublisherClosed)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	p := newPublisher(silentBroker(t), "fyyur.activity", 500*time.Millisecond, 1)
	defer p.Close()

	var dropped int
	for i := uint64(1); i <= 3; i++ {
		err := p.Publish(context.Background(), NewActivityEvent(ActionDeleted, "artist", i, "", time.Now()))
		if err != nil {
			require.ErrorIs(t, err, ErrPublisherBusy)
			dropped++
		}
	}
	assert.GreaterOrEqual(t, dropped, 1)
}
