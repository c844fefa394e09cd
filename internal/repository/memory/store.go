package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"shipzone-backend/internal/domain"
)

// Store keeps zones, method instances and settings in process memory. It
// implements both domain.ZoneRepository and domain.SettingsStore and is used when
// no database is configured.
type Store struct {
	mu             sync.RWMutex
	zones          map[int64]domain.ShippingZone
	methods        map[int64]domain.MethodInstance // keyed by instance id, settings unused
	options        map[string]domain.Settings
	nextZoneID     int64
	nextInstanceID int64
}

func NewStore() *Store {
	return &Store{
		zones:          make(map[int64]domain.ShippingZone),
		methods:        make(map[int64]domain.MethodInstance),
		options:        make(map[string]domain.Settings),
		nextZoneID:     1,
		nextInstanceID: 1,
	}
}

// --- Zones ---

func (s *Store) GetZone(ctx context.Context, id int64) (*domain.ShippingZone, error) {
	if id == domain.RestOfWorldZoneID {
		return domain.RestOfWorldZone(), nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	z, ok := s.zones[id]
	if !ok {
		return nil, domain.ErrZoneNotFound
	}
	return &z, nil
}

func (s *Store) ListZones(ctx context.Context) ([]domain.ShippingZone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ShippingZone, 0, len(s.zones))
	for _, z := range s.zones {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) CreateZone(ctx context.Context, zone *domain.ShippingZone) (*domain.ShippingZone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	z := domain.ShippingZone{
		ID:        s.nextZoneID,
		Name:      zone.Name,
		Order:     zone.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextZoneID++
	s.zones[z.ID] = z
	return &z, nil
}

func (s *Store) UpdateZone(ctx context.Context, zone *domain.ShippingZone) (*domain.ShippingZone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	z, ok := s.zones[zone.ID]
	if !ok {
		return nil, domain.ErrZoneNotFound
	}
	z.Name = zone.Name
	z.Order = zone.Order
	z.UpdatedAt = time.Now()
	s.zones[z.ID] = z
	return &z, nil
}

func (s *Store) DeleteZone(ctx context.Context, id int64, optionKeys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[id]; !ok {
		return domain.ErrZoneNotFound
	}
	for instanceID, m := range s.methods {
		if m.ZoneID == id {
			delete(s.methods, instanceID)
		}
	}
	for _, key := range optionKeys {
		delete(s.options, key)
	}
	delete(s.zones, id)
	return nil
}

// --- Methods ---

func (s *Store) zoneExists(id int64) bool {
	if id == domain.RestOfWorldZoneID {
		return true
	}
	_, ok := s.zones[id]
	return ok
}

func (s *Store) ListMethods(ctx context.Context, zoneID int64) ([]domain.MethodInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.MethodInstance{}
	for _, m := range s.methods {
		if m.ZoneID == zoneID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].InstanceID < out[j].InstanceID
	})
	return out, nil
}

func (s *Store) AddMethod(ctx context.Context, zoneID int64, mt domain.MethodType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.zoneExists(zoneID) {
		return 0, domain.ErrZoneNotFound
	}

	order := 1
	for _, m := range s.methods {
		if m.ZoneID == zoneID && m.Order >= order {
			order = m.Order + 1
		}
	}

	id := s.nextInstanceID
	s.nextInstanceID++
	s.methods[id] = domain.MethodInstance{
		InstanceID: id,
		ZoneID:     zoneID,
		MethodID:   mt.ID(),
		Order:      order,
		Enabled:    true,
	}
	s.options[mt.InstanceOptionKey(id)] = domain.DefaultSettings(mt)
	return id, nil
}

func (s *Store) RemoveMethod(ctx context.Context, zoneID, instanceID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.methods[instanceID]
	if !ok || m.ZoneID != zoneID {
		return fmt.Errorf("%w: instance %d in zone %d", domain.ErrMethodNotFound, instanceID, zoneID)
	}
	delete(s.methods, instanceID)
	return nil
}

// --- Settings ---

func (s *Store) ReadSettings(ctx context.Context, key string) (domain.Settings, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings, ok := s.options[key]
	if !ok {
		return nil, false, nil
	}
	return settings.Clone(), true, nil
}

func (s *Store) WriteSettings(ctx context.Context, key string, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[key] = settings.Clone()
	return nil
}

func (s *Store) DeleteSettings(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.options, key)
	return nil
}

func (s *Store) WriteOrder(ctx context.Context, instanceID int64, order int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.methods[instanceID]
	if !ok {
		return false, nil
	}
	m.Order = order
	s.methods[instanceID] = m
	return true, nil
}

// WriteEnabled reports false when the stored flag already has the requested value.
func (s *Store) WriteEnabled(ctx context.Context, instanceID int64, enabled bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.methods[instanceID]
	if !ok || m.Enabled == enabled {
		return false, nil
	}
	m.Enabled = enabled
	s.methods[instanceID] = m
	return true, nil
}
