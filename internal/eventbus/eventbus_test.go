package eventbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := New()

	var got []string
	b.Subscribe(EventFileDiscovered, func(e DomainEvent) {
		got = append(got, "first:"+e.(FileDiscoveredEvent).Path)
	})
	b.Subscribe(EventFileDiscovered, func(e DomainEvent) {
		got = append(got, "second:"+e.(FileDiscoveredEvent).Path)
	})

	b.Publish(FileDiscoveredEvent{Path: "ride.gpx"})

	// Synchronous dispatch in subscription order
	require.Equal(t, []string{"first:ride.gpx", "second:ride.gpx"}, got)
}

func TestPublishFiltersByType(t *testing.T) {
	b := New()

	calls := 0
	b.Subscribe(EventScanStarted, func(DomainEvent) { calls++ })

	b.Publish(ScanCompletedEvent{})
	require.Equal(t, 0, calls)

	b.Publish(ScanStartedEvent{})
	require.Equal(t, 1, calls)
}

func TestUnsubscribe(t *testing.T) {
	b := New()

	calls := 0
	unsub := b.Subscribe(EventSelectionChanged, func(DomainEvent) { calls++ })

	b.Publish(SelectionChangedEvent{Count: 1})
	require.Equal(t, 1, calls)

	unsub()
	b.Publish(SelectionChangedEvent{Count: 2})
	require.Equal(t, 1, calls)

	unsub() // second call is a no-op
}

func TestUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	b := New()

	var first, second int
	handler := func(counter *int) EventHandler {
		return func(DomainEvent) { *counter++ }
	}
	unsubFirst := b.Subscribe(EventError, handler(&first))
	b.Subscribe(EventError, handler(&second))

	unsubFirst()
	b.Publish(ErrorEvent{Message: "boom"})

	require.Equal(t, 0, first)
	require.Equal(t, 1, second)
}

func TestPanickingHandlerDoesNotStopDispatch(t *testing.T) {
	b := New()

	delivered := false
	b.Subscribe(EventFileRemoved, func(DomainEvent) { panic("handler bug") })
	b.Subscribe(EventFileRemoved, func(DomainEvent) { delivered = true })

	require.NotPanics(t, func() {
		b.Publish(FileRemovedEvent{FileID: "f"})
	})
	require.True(t, delivered)
}

func TestSubscribeDuringDispatchDoesNotAffectCurrentPublish(t *testing.T) {
	b := New()

	late := 0
	b.Subscribe(EventScanRequested, func(DomainEvent) {
		b.Subscribe(EventScanRequested, func(DomainEvent) { late++ })
	})

	b.Publish(ScanRequestedEvent{})
	require.Equal(t, 0, late)

	b.Publish(ScanRequestedEvent{})
	require.Equal(t, 1, late)
}
