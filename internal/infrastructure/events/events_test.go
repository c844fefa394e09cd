package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"shipzone-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(t domain.EventType) domain.MethodEvent {
	return domain.MethodEvent{
		ID:         "evt-1",
		Type:       t,
		InstanceID: 7,
		MethodID:   "flat_rate",
		ZoneID:     2,
		OccurredAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestDispatcher(t *testing.T) {
	t.Run("Delivers In Order And Survives Failures", func(t *testing.T) {
		d := NewDispatcher()
		var got []string
		d.Subscribe(SubscriberFunc{ID: "a", Fn: func(ctx context.Context, e domain.MethodEvent) error {
			got = append(got, "a")
			return errors.New("boom")
		}})
		d.Subscribe(SubscriberFunc{ID: "b", Fn: func(ctx context.Context, e domain.MethodEvent) error {
			panic("unexpected")
		}})
		d.Subscribe(SubscriberFunc{ID: "c", Fn: func(ctx context.Context, e domain.MethodEvent) error {
			got = append(got, "c")
			return nil
		}})

		d.Publish(context.Background(), sampleEvent(domain.EventMethodCreated))
		assert.Equal(t, []string{"a", "c"}, got)
	})

	t.Run("Log Subscriber Never Fails", func(t *testing.T) {
		e := sampleEvent(domain.EventMethodStatusToggled)
		enabled := false
		e.Enabled = &enabled
		assert.NoError(t, LogSubscriber{}.Handle(context.Background(), e))
	})
}

type memObjects struct {
	objects map[string][]byte
}

func (m *memObjects) PutJSON(ctx context.Context, key string, body []byte) (string, error) {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return "https://cdn.example.com/" + key, nil
}

func TestArchiveSubscriber(t *testing.T) {
	store := &memObjects{}
	a := NewArchiveSubscriber(store, "/shipping-methods/deleted/")

	require.NoError(t, a.Handle(context.Background(), sampleEvent(domain.EventMethodUpdated)))
	assert.Empty(t, store.objects)

	e := sampleEvent(domain.EventMethodDeleted)
	e.Snapshot = &domain.MethodInstance{InstanceID: 7, ZoneID: 2, MethodID: "flat_rate", Order: 1, Enabled: true}
	require.NoError(t, a.Handle(context.Background(), e))

	key := "shipping-methods/deleted/zone-2/flat_rate-7-20260301T123000Z.json"
	assert.Equal(t, key, a.Key(e))
	require.Contains(t, store.objects, key)

	var archived domain.MethodEvent
	require.NoError(t, json.Unmarshal(store.objects[key], &archived))
	require.NotNil(t, archived.Snapshot)
	assert.Equal(t, int64(7), archived.Snapshot.InstanceID)
}

func TestRedisPublisherReportsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	p := NewRedisPublisher(client, "shipping.zone_methods")
	assert.Equal(t, "redis", p.Name())
	assert.Error(t, p.Handle(context.Background(), sampleEvent(domain.EventMethodCreated)))
}
