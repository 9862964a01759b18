package bus

import (
	"testing"

	"drop_notification_bot/internal/domain/drop"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New()

	var first, second []drop.StatusChange
	b.Subscribe(func(ev drop.StatusChange) { first = append(first, ev) })
	b.Subscribe(func(ev drop.StatusChange) { second = append(second, ev) })

	ev := drop.StatusChange{DropID: 1, Slug: "spring", Status: drop.StatusLive}
	b.Publish(ev)

	assert.Equal(t, []drop.StatusChange{ev}, first)
	assert.Equal(t, []drop.StatusChange{ev}, second)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	var got int
	id := b.Subscribe(func(drop.StatusChange) { got++ })

	b.Publish(drop.StatusChange{Status: drop.StatusLive})
	b.Unsubscribe(id)
	b.Publish(drop.StatusChange{Status: drop.StatusEnded})

	assert.Equal(t, 1, got)

	// Unknown ids are ignored.
	b.Unsubscribe(42)
}

func TestSubscribeFromHandlerDoesNotDeadlock(t *testing.T) {
	b := New()

	var nested bool
	b.Subscribe(func(drop.StatusChange) {
		b.Subscribe(func(drop.StatusChange) { nested = true })
	})

	b.Publish(drop.StatusChange{Status: drop.StatusLive})
	assert.False(t, nested, "handler subscribed during publish must not see the same event")

	b.Publish(drop.StatusChange{Status: drop.StatusEnded})
	assert.True(t, nested)
}
