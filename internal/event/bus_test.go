package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/storefront/internal/event/topic"
)

// recorder collects handler invocations in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) handler(name string) HandlerFunc {
	return func(_ context.Context, evt Event) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, name+"@"+evt.Topic.String())
		return nil
	}
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func TestBus_SubscribeValidation(t *testing.T) {
	bus := NewBus()
	noop := HandlerFunc(func(context.Context, Event) error { return nil })

	_, err := bus.Subscribe(Exact("basket.changed"), nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = bus.Subscribe(Selector{}, noop)
	assert.ErrorIs(t, err, ErrInvalidSelector)

	_, err = bus.Subscribe(Exact("order.*.change"), noop)
	assert.ErrorIs(t, err, ErrInvalidSelector)

	sub, err := bus.Subscribe(Pattern("order.*.change"), noop)
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID())
	assert.Equal(t, SelectorPattern, sub.Selector().Kind())
}

func TestBus_EmitInvalidTopic(t *testing.T) {
	bus := NewBus()

	for _, tp := range []topic.Topic{"", "order..change", "order.*.change", ".x"} {
		t.Run(tp.String(), func(t *testing.T) {
			assert.ErrorIs(t, bus.Emit(context.Background(), tp, nil), ErrInvalidTopic)
		})
	}
}

func TestBus_EmitPassesPayloadAndName(t *testing.T) {
	bus := NewBus()

	var got Event
	_, err := bus.Subscribe(Exact("preview.changed"), HandlerFunc(func(_ context.Context, evt Event) error {
		got = evt
		return nil
	}))
	require.NoError(t, err)

	require.NoError(t, bus.Emit(context.Background(), "preview.changed", "p-1"))
	assert.Equal(t, topic.Topic("preview.changed"), got.Topic)
	assert.Equal(t, "p-1", got.Payload)
	assert.NotEmpty(t, got.Metadata.ID)
	assert.Equal(t, 0, got.Metadata.Depth)
}

func TestBus_RegistrationOrderAcrossSelectors(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}

	_, _ = bus.Subscribe(Pattern("order.*.change"), rec.handler("pattern"))
	_, _ = bus.Subscribe(Exact("order.email.change"), rec.handler("exact"))
	_, _ = bus.Subscribe(MustRegexp(`^order\..*\.change$`), rec.handler("regexp"))
	_, _ = bus.Subscribe(Exact("contacts.email.change"), rec.handler("other"))

	require.NoError(t, bus.Emit(context.Background(), "order.email.change", nil))

	assert.Equal(t, []string{
		"pattern@order.email.change",
		"exact@order.email.change",
		"regexp@order.email.change",
	}, rec.get())
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NoError(t, bus.Emit(context.Background(), "catalog.changed", nil))
	assert.Equal(t, uint64(1), bus.Stats().EventsEmitted)
}

func TestBus_ReentrantEmitIsQueued(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}

	_, _ = bus.Subscribe(Exact("card.add"), HandlerFunc(func(ctx context.Context, evt Event) error {
		rec.handler("first")(ctx, evt)
		// Nested emission must not run before "second" sees card.add.
		return bus.Emit(ctx, "basket.changed", nil)
	}))
	_, _ = bus.Subscribe(Exact("card.add"), rec.handler("second"))
	_, _ = bus.Subscribe(Exact("basket.changed"), HandlerFunc(func(ctx context.Context, evt Event) error {
		assert.Equal(t, 1, evt.Metadata.Depth)
		return rec.handler("basket")(ctx, evt)
	}))

	require.NoError(t, bus.Emit(context.Background(), "card.add", nil))

	assert.Equal(t, []string{
		"first@card.add",
		"second@card.add",
		"basket@basket.changed",
	}, rec.get())
	assert.Equal(t, uint64(1), bus.Stats().EventsQueued)
}

func TestBus_ReentrantEmitFIFO(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}

	_, _ = bus.Subscribe(Exact("a"), HandlerFunc(func(ctx context.Context, evt Event) error {
		_ = bus.Emit(ctx, "b", nil)
		_ = bus.Emit(ctx, "c", nil)
		return rec.handler("h")(ctx, evt)
	}))
	_, _ = bus.Subscribe(Exact("b"), HandlerFunc(func(ctx context.Context, evt Event) error {
		_ = bus.Emit(ctx, "d", nil)
		return rec.handler("h")(ctx, evt)
	}))
	_, _ = bus.Subscribe(Exact("c"), rec.handler("h"))
	_, _ = bus.Subscribe(Exact("d"), rec.handler("h"))

	require.NoError(t, bus.Emit(context.Background(), "a", nil))
	assert.Equal(t, []string{"h@a", "h@b", "h@c", "h@d"}, rec.get())
}

func TestBus_SubscribeDuringDispatchSeesOnlyLaterEvents(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}

	subscribed := false
	_, _ = bus.Subscribe(Exact("tick"), HandlerFunc(func(context.Context, Event) error {
		if subscribed {
			return nil
		}
		subscribed = true
		_, err := bus.Subscribe(Exact("tick"), rec.handler("late"))
		return err
	}))

	require.NoError(t, bus.Emit(context.Background(), "tick", nil))
	assert.Empty(t, rec.get())

	require.NoError(t, bus.Emit(context.Background(), "tick", nil))
	assert.Equal(t, []string{"late@tick"}, rec.get())
}

func TestBus_UnsubscribeDuringDispatch(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}

	var second Subscription
	_, _ = bus.Subscribe(Exact("tick"), HandlerFunc(func(context.Context, Event) error {
		return bus.Unsubscribe(second)
	}))
	second, _ = bus.Subscribe(Exact("tick"), rec.handler("second"))

	require.NoError(t, bus.Emit(context.Background(), "tick", nil))
	assert.Empty(t, rec.get())
}

func TestBus_HandlerErrorsDoNotStopOthers(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	bus := NewBus(WithLogger(zap.New(core)))
	rec := &recorder{}
	errA := errors.New("a failed")

	subA, _ := bus.Subscribe(Exact("basket.changed"), HandlerFunc(func(context.Context, Event) error { return errA }))
	_, _ = bus.Subscribe(Exact("basket.changed"), HandlerFunc(func(context.Context, Event) error { panic("view exploded") }))
	_, _ = bus.Subscribe(Exact("basket.changed"), rec.handler("last"))

	err := bus.Emit(context.Background(), "basket.changed", nil)
	require.Error(t, err)

	assert.Equal(t, []string{"last@basket.changed"}, rec.get())
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, ErrHandlerPanic)
	assert.Len(t, multierr.Errors(err), 2)

	var herr *HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, subA.ID(), herr.SubscriptionID)
	assert.Equal(t, "basket.changed", herr.Topic)

	stats := bus.Stats()
	assert.Equal(t, uint64(3), stats.HandlersExecuted)
	assert.Equal(t, uint64(1), stats.HandlerErrors)
	assert.Equal(t, uint64(1), stats.HandlerPanics)
	assert.Equal(t, 2, logs.Len())
	for _, entry := range logs.All() {
		assert.Contains(t, entry.ContextMap(), "took")
	}
}

func TestBus_HandlerDurationLogged(t *testing.T) {
	clk := clock.NewMock()
	core, logs := observer.New(zap.DebugLevel)
	bus := NewBus(WithLogger(zap.New(core)), WithClock(clk))

	_, _ = bus.Subscribe(Exact("catalog.changed"), HandlerFunc(func(context.Context, Event) error {
		clk.Add(40 * time.Millisecond)
		return nil
	}))
	require.NoError(t, bus.Emit(context.Background(), "catalog.changed", nil))

	done := logs.FilterMessage("handler done").All()
	require.Len(t, done, 1)
	assert.Equal(t, 40*time.Millisecond, done[0].ContextMap()["took"])
}

func TestBus_NestedFailuresReachOutermostCaller(t *testing.T) {
	bus := NewBus()
	nestedErr := errors.New("nested failed")

	var nestedReturn error
	_, _ = bus.Subscribe(Exact("outer"), HandlerFunc(func(ctx context.Context, _ Event) error {
		nestedReturn = bus.Emit(ctx, "inner", nil)
		return nil
	}))
	_, _ = bus.Subscribe(Exact("inner"), HandlerFunc(func(context.Context, Event) error { return nestedErr }))

	err := bus.Emit(context.Background(), "outer", nil)
	assert.NoError(t, nestedReturn)
	assert.ErrorIs(t, err, nestedErr)

	// The bus recovers and keeps dispatching after a failure.
	assert.ErrorIs(t, bus.Emit(context.Background(), "inner", nil), nestedErr)
}

func TestBus_CancelledContextDropsQueue(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())

	_, _ = bus.Subscribe(Exact("a"), HandlerFunc(func(ctx context.Context, evt Event) error {
		_ = bus.Emit(ctx, "b", nil)
		cancel()
		return rec.handler("h")(ctx, evt)
	}))
	_, _ = bus.Subscribe(Exact("b"), rec.handler("h"))

	err := bus.Emit(ctx, "a", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"h@a"}, rec.get())
	assert.Equal(t, uint64(1), bus.Stats().EventsDropped)

	// A fresh context works again.
	require.NoError(t, bus.Emit(context.Background(), "b", nil))
	assert.Equal(t, []string{"h@a", "h@b"}, rec.get())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}

	sub, _ := bus.Subscribe(Exact("tick"), rec.handler("h"))
	require.NoError(t, bus.Unsubscribe(sub))
	assert.False(t, sub.(*subscription).IsActive())
	assert.ErrorIs(t, bus.Unsubscribe(sub), ErrSubscriptionNotFound)
	assert.ErrorIs(t, bus.Unsubscribe(nil), ErrInvalidSubscription)

	require.NoError(t, bus.Emit(context.Background(), "tick", nil))
	assert.Empty(t, rec.get())
}

func TestBus_UnsubscribeAll(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}

	subs := make([]Subscription, 0, 3)
	for i := 0; i < 3; i++ {
		sub, err := bus.Subscribe(Pattern("**"), rec.handler(fmt.Sprint(i)))
		require.NoError(t, err)
		subs = append(subs, sub)
	}

	bus.UnsubscribeAll()
	require.NoError(t, bus.Emit(context.Background(), "catalog.changed", nil))

	assert.Empty(t, rec.get())
	assert.Equal(t, 0, bus.Stats().ActiveSubscribers)
	for _, sub := range subs {
		assert.False(t, sub.(*subscription).IsActive())
	}
}

func TestBus_Timestamps(t *testing.T) {
	clk := clock.NewMock()
	clk.Set(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	ids := 0
	bus := NewBus(WithClock(clk), WithIDGenerator(func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}))

	var got Metadata
	_, _ = bus.Subscribe(Exact("tick"), HandlerFunc(func(_ context.Context, evt Event) error {
		got = evt.Metadata
		return nil
	}))

	require.NoError(t, bus.Emit(context.Background(), "tick", nil))
	assert.Equal(t, clk.Now(), got.Timestamp)
	assert.Equal(t, "id-2", got.ID)
}

func TestBus_ConcurrentEmit(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	_, _ = bus.Subscribe(Pattern("**"), HandlerFunc(func(context.Context, Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bus.Emit(context.Background(), "tick", nil)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 20, count)
}

func TestTyped(t *testing.T) {
	bus := NewBus()

	var got int
	_, _ = bus.Subscribe(Exact("count"), Typed(func(_ context.Context, n int) error {
		got = n
		return nil
	}))

	require.NoError(t, bus.Emit(context.Background(), "count", 7))
	assert.Equal(t, 7, got)

	err := bus.Emit(context.Background(), "count", "seven")
	assert.ErrorIs(t, err, ErrPayloadType)
	var perr *PayloadTypeError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "int", perr.Want)
	assert.Equal(t, "string", perr.Got)
}
