package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingEvent struct{}

func (pingEvent) Name() string { return "ping" }

func TestBus_PublishRunsEverySubscriber(t *testing.T) {
	bus := New(zap.NewNop())
	var calls int32
	for i := 0; i < 3; i++ {
		bus.Subscribe("ping", func(context.Context, Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
	}
	bus.Subscribe("other", func(context.Context, Event) error {
		t.Error("listener of another event was called")
		return nil
	})

	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestBus_ListenerErrorDoesNotStopOthers(t *testing.T) {
	bus := New(zap.NewNop())
	var ok int32
	bus.Subscribe("ping", func(context.Context, Event) error { return errors.New("boom") })
	bus.Subscribe("ping", func(context.Context, Event) error {
		atomic.AddInt32(&ok, 1)
		return nil
	})

	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()
	assert.EqualValues(t, 1, atomic.LoadInt32(&ok))
}

func TestBus_ListenerOutlivesCancelledRequest(t *testing.T) {
	bus := New(zap.NewNop())
	var ctxErr atomic.Value
	bus.Subscribe("ping", func(ctx context.Context, _ Event) error {
		ctxErr.Store(ctx.Err() == nil)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pingEvent{})
	bus.Wait()
	assert.Equal(t, true, ctxErr.Load())
}
