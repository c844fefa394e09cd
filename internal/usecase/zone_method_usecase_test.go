package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shipzone-backend/config"
	"shipzone-backend/internal/domain"
	infracache "shipzone-backend/internal/infrastructure/cache"
	"shipzone-backend/internal/infrastructure/methodtype"
	"shipzone-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.MethodEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, e domain.MethodEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) ofType(t domain.EventType) []domain.MethodEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.MethodEvent
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// flakyStore fails the selected writes and delegates everything else.
type flakyStore struct {
	*memory.Store
	failSettings bool
	failOrder    bool
	failEnabled  bool
}

var errStoreDown = errors.New("store unavailable")

func (s *flakyStore) WriteSettings(ctx context.Context, key string, settings domain.Settings) error {
	if s.failSettings {
		return errStoreDown
	}
	return s.Store.WriteSettings(ctx, key, settings)
}

func (s *flakyStore) WriteOrder(ctx context.Context, id int64, order int) (bool, error) {
	if s.failOrder {
		return false, errStoreDown
	}
	return s.Store.WriteOrder(ctx, id, order)
}

func (s *flakyStore) WriteEnabled(ctx context.Context, id int64, enabled bool) (bool, error) {
	if s.failEnabled {
		return false, errStoreDown
	}
	return s.Store.WriteEnabled(ctx, id, enabled)
}

type fixture struct {
	store  *flakyStore
	events *recordingPublisher
	zones  *ZoneUsecase
	uc     *ZoneMethodUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &flakyStore{Store: memory.NewStore()}
	events := &recordingPublisher{}
	types := methodtype.NewDefaultRegistry()
	cfg := &config.Config{CacheZoneTTL: time.Minute, CacheMethodTypesTTL: time.Minute}
	zones := NewZoneUsecase(store, types, infracache.NewMemoryCache(time.Minute, time.Minute), cfg)
	return &fixture{
		store:  store,
		events: events,
		zones:  zones,
		uc:     NewZoneMethodUsecase(zones, store, store, types, events, memory.TxManager{}),
	}
}

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestZoneMethodUsecase_ListAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown Zone Is NotFound", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.List(ctx, 42)
		assert.True(t, errors.Is(err, domain.ErrZoneNotFound))

		_, err = f.uc.Get(ctx, 42, 1)
		assert.True(t, errors.Is(err, domain.ErrZoneNotFound))
	})

	t.Run("Zone Resolution Takes Precedence", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})
		require.NoError(t, err)

		_, err = f.uc.Update(ctx, 99, created.Instance.InstanceID, domain.MethodUpdate{})
		assert.True(t, errors.Is(err, domain.ErrZoneNotFound))
		_, err = f.uc.Delete(ctx, 99, 12345, true, domain.MethodUpdate{})
		assert.True(t, errors.Is(err, domain.ErrZoneNotFound))
	})

	t.Run("Empty Zone Lists Nothing", func(t *testing.T) {
		f := newFixture(t)
		methods, err := f.uc.List(ctx, domain.RestOfWorldZoneID)
		require.NoError(t, err)
		assert.Empty(t, methods)
	})

	t.Run("Get Matches List", func(t *testing.T) {
		f := newFixture(t)
		z, _ := f.zones.CreateZone(ctx, "Domestic", 0)
		_, err := f.uc.Create(ctx, z.ID, methodtype.FlatRate, domain.MethodUpdate{})
		require.NoError(t, err)
		_, err = f.uc.Create(ctx, z.ID, methodtype.FreeShipping, domain.MethodUpdate{})
		require.NoError(t, err)

		methods, err := f.uc.List(ctx, z.ID)
		require.NoError(t, err)
		require.Len(t, methods, 2)
		for _, m := range methods {
			got, err := f.uc.Get(ctx, z.ID, m.Instance.InstanceID)
			require.NoError(t, err)
			assert.Equal(t, m.Instance, got.Instance)
		}

		_, err = f.uc.Get(ctx, z.ID, 999)
		assert.True(t, errors.Is(err, domain.ErrMethodNotFound))
	})

	t.Run("Instance Of Another Zone Is NotFound", func(t *testing.T) {
		f := newFixture(t)
		z, _ := f.zones.CreateZone(ctx, "EU", 0)
		created, _ := f.uc.Create(ctx, z.ID, methodtype.FlatRate, domain.MethodUpdate{})

		_, err := f.uc.Get(ctx, domain.RestOfWorldZoneID, created.Instance.InstanceID)
		assert.True(t, errors.Is(err, domain.ErrMethodNotFound))
	})

	t.Run("Unregistered Types Are Skipped", func(t *testing.T) {
		f := newFixture(t)
		custom := &methodtype.Definition{MethodID: "courier", MethodTitle: "Courier"}
		_, err := f.store.AddMethod(ctx, 0, custom)
		require.NoError(t, err)
		_, err = f.uc.Create(ctx, 0, methodtype.LocalPickup, domain.MethodUpdate{})
		require.NoError(t, err)

		methods, err := f.uc.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, methods, 1)
		assert.Equal(t, methodtype.LocalPickup, methods[0].Instance.MethodID)
	})
}

func TestZoneMethodUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Create Then Get", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{
			Settings: map[string]any{"cost": "5.00", "bogus": "ignored"},
			Order:    int64Ptr(3),
		})
		require.NoError(t, err)
		assert.Equal(t, methodtype.FlatRate, created.Instance.MethodID)
		assert.Equal(t, "Flat rate", created.Type.Title())
		assert.Equal(t, "5.00", created.Instance.Settings["cost"].String())
		assert.NotContains(t, created.Instance.Settings, "bogus")
		assert.Equal(t, 3, created.Instance.Order)

		got, err := f.uc.Get(ctx, 0, created.Instance.InstanceID)
		require.NoError(t, err)
		assert.Equal(t, created.Instance, got.Instance)
		assert.Len(t, f.events.ofType(domain.EventMethodCreated), 1)
	})

	t.Run("Ids Are Unique", func(t *testing.T) {
		f := newFixture(t)
		a, err := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})
		require.NoError(t, err)
		b, err := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})
		require.NoError(t, err)
		assert.NotEqual(t, a.Instance.InstanceID, b.Instance.InstanceID)
	})

	t.Run("Unknown Method Type Writes Nothing", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Create(ctx, 0, "teleport", domain.MethodUpdate{})
		assert.True(t, errors.Is(err, domain.ErrInvalidMethodType))

		_, err = f.uc.Create(ctx, 0, "", domain.MethodUpdate{})
		assert.True(t, errors.Is(err, domain.ErrInvalidParam))

		methods, _ := f.uc.List(ctx, 0)
		assert.Empty(t, methods)
		assert.Empty(t, f.events.events)
	})

	t.Run("Invalid Settings Write Nothing", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{
			Settings: map[string]any{"tax_status": "sometimes"},
		})
		assert.True(t, errors.Is(err, domain.ErrInvalidParam))

		methods, _ := f.uc.List(ctx, 0)
		assert.Empty(t, methods)
	})

	t.Run("Unknown Zone", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Create(ctx, 7, methodtype.FlatRate, domain.MethodUpdate{})
		assert.True(t, errors.Is(err, domain.ErrZoneNotFound))
	})
}

type vanishingRepo struct {
	*memory.Store
}

func (r vanishingRepo) ListMethods(ctx context.Context, zoneID int64) ([]domain.MethodInstance, error) {
	return []domain.MethodInstance{}, nil
}

func TestZoneMethodUsecase_CreateRelookupMiss(t *testing.T) {
	store := memory.NewStore()
	repo := vanishingRepo{Store: store}
	uc := NewZoneMethodUsecase(store, repo, store, methodtype.NewDefaultRegistry(), &recordingPublisher{}, memory.TxManager{})

	_, err := uc.Create(context.Background(), 0, methodtype.FlatRate, domain.MethodUpdate{})
	assert.True(t, errors.Is(err, domain.ErrMethodNotCreated))
}

func TestZoneMethodUsecase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Order Round Trip And Clamp", func(t *testing.T) {
		f := newFixture(t)
		created, _ := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})
		id := created.Instance.InstanceID

		for _, tc := range []struct {
			in   int64
			want int
		}{{7, 7}, {0, 0}, {-5, 0}} {
			updated, err := f.uc.Update(ctx, 0, id, domain.MethodUpdate{Order: int64Ptr(tc.in)})
			require.NoError(t, err)
			assert.Equal(t, tc.want, updated.Instance.Order)

			got, _ := f.uc.Get(ctx, 0, id)
			assert.Equal(t, tc.want, got.Instance.Order)
		}
	})

	t.Run("Enabled Round Trip Publishes Once Per Change", func(t *testing.T) {
		f := newFixture(t)
		created, _ := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})
		id := created.Instance.InstanceID
		require.True(t, created.Instance.Enabled)

		updated, err := f.uc.Update(ctx, 0, id, domain.MethodUpdate{Enabled: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, updated.Instance.Enabled)

		got, _ := f.uc.Get(ctx, 0, id)
		assert.False(t, got.Instance.Enabled)

		toggles := f.events.ofType(domain.EventMethodStatusToggled)
		require.Len(t, toggles, 1)
		assert.Equal(t, id, toggles[0].InstanceID)
		assert.Equal(t, methodtype.FlatRate, toggles[0].MethodID)
		assert.Equal(t, int64(0), toggles[0].ZoneID)
		require.NotNil(t, toggles[0].Enabled)
		assert.False(t, *toggles[0].Enabled)

		// Same value again: no change, no event.
		_, err = f.uc.Update(ctx, 0, id, domain.MethodUpdate{Enabled: boolPtr(false)})
		require.NoError(t, err)
		assert.Len(t, f.events.ofType(domain.EventMethodStatusToggled), 1)
	})

	t.Run("Failed Enabled Write Leaves State", func(t *testing.T) {
		f := newFixture(t)
		created, _ := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})
		f.store.failEnabled = true

		updated, err := f.uc.Update(ctx, 0, created.Instance.InstanceID, domain.MethodUpdate{Enabled: boolPtr(false)})
		require.NoError(t, err)
		assert.True(t, updated.Instance.Enabled)
		assert.Empty(t, f.events.ofType(domain.EventMethodStatusToggled))
	})

	t.Run("Settings Merge", func(t *testing.T) {
		f := newFixture(t)
		created, _ := f.uc.Create(ctx, 0, methodtype.FreeShipping, domain.MethodUpdate{})
		id := created.Instance.InstanceID

		_, err := f.uc.Update(ctx, 0, id, domain.MethodUpdate{
			Settings: map[string]any{"requires": "coupon", "ignore_discounts": "yes"},
		})
		require.NoError(t, err)

		got, err := f.uc.Update(ctx, 0, id, domain.MethodUpdate{
			Settings: map[string]any{"min_amount": "50", "nonsense": 1, "title": nil},
		})
		require.NoError(t, err)

		s := got.Instance.Settings
		assert.Equal(t, "coupon", s["requires"].String())
		assert.Equal(t, domain.KindSelect, s["requires"].Kind())
		assert.True(t, s["ignore_discounts"].Bool())
		assert.Equal(t, "50", s["min_amount"].String())
		assert.Equal(t, "Free shipping", s["title"].String())
		assert.NotContains(t, s, "nonsense")

		fresh, _ := f.uc.Get(ctx, 0, id)
		assert.Equal(t, s, fresh.Instance.Settings)
	})

	t.Run("Settings Write Failure Is Best Effort", func(t *testing.T) {
		f := newFixture(t)
		created, _ := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})
		f.store.failSettings = true
		f.store.failOrder = true

		updated, err := f.uc.Update(ctx, 0, created.Instance.InstanceID, domain.MethodUpdate{
			Settings: map[string]any{"cost": "9"},
			Order:    int64Ptr(4),
		})
		require.NoError(t, err)
		assert.Equal(t, "9", updated.Instance.Settings["cost"].String())
		assert.Equal(t, 4, updated.Instance.Order)
	})

	t.Run("Invalid Settings Rejected", func(t *testing.T) {
		f := newFixture(t)
		created, _ := f.uc.Create(ctx, 0, methodtype.FreeShipping, domain.MethodUpdate{})
		_, err := f.uc.Update(ctx, 0, created.Instance.InstanceID, domain.MethodUpdate{
			Settings: map[string]any{"min_amount": "lots"},
		})
		assert.True(t, errors.Is(err, domain.ErrInvalidParam))
	})

	t.Run("Updated Event", func(t *testing.T) {
		f := newFixture(t)
		created, _ := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})

		_, err := f.uc.Update(ctx, 0, created.Instance.InstanceID, domain.MethodUpdate{})
		require.NoError(t, err)
		assert.Empty(t, f.events.ofType(domain.EventMethodUpdated))

		_, err = f.uc.Update(ctx, 0, created.Instance.InstanceID, domain.MethodUpdate{Order: int64Ptr(2)})
		require.NoError(t, err)
		assert.Len(t, f.events.ofType(domain.EventMethodUpdated), 1)
	})
}

func TestZoneMethodUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Without Force Nothing Changes", func(t *testing.T) {
		f := newFixture(t)
		created, _ := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})
		id := created.Instance.InstanceID

		_, err := f.uc.Delete(ctx, 0, id, false, domain.MethodUpdate{Order: int64Ptr(9), Enabled: boolPtr(false)})
		assert.True(t, errors.Is(err, domain.ErrTrashNotSupported))

		got, err := f.uc.Get(ctx, 0, id)
		require.NoError(t, err)
		assert.Equal(t, created.Instance, got.Instance)
		assert.Empty(t, f.events.ofType(domain.EventMethodStatusToggled))
		assert.Empty(t, f.events.ofType(domain.EventMethodDeleted))
	})

	t.Run("Force Removes And Returns Prior State", func(t *testing.T) {
		f := newFixture(t)
		created, _ := f.uc.Create(ctx, 0, methodtype.FlatRate, domain.MethodUpdate{})
		id := created.Instance.InstanceID
		key := created.Type.InstanceOptionKey(id)

		snapshot, err := f.uc.Delete(ctx, 0, id, true, domain.MethodUpdate{Order: int64Ptr(6)})
		require.NoError(t, err)
		assert.Equal(t, id, snapshot.Instance.InstanceID)
		assert.Equal(t, 6, snapshot.Instance.Order)
		assert.Equal(t, "Flat rate", snapshot.Instance.Title())

		_, err = f.uc.Get(ctx, 0, id)
		assert.True(t, errors.Is(err, domain.ErrMethodNotFound))

		_, found, _ := f.store.ReadSettings(ctx, key)
		assert.False(t, found)

		deleted := f.events.ofType(domain.EventMethodDeleted)
		require.Len(t, deleted, 1)
		require.NotNil(t, deleted[0].Snapshot)
		assert.Equal(t, snapshot.Instance, *deleted[0].Snapshot)
	})

	t.Run("Unknown Instance", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Delete(ctx, 0, 5, true, domain.MethodUpdate{})
		assert.True(t, errors.Is(err, domain.ErrMethodNotFound))
	})
}
