package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/logger"

	"github.com/google/uuid"
)

// ZoneResolver resolves a zone id. ZoneUsecase implements it with caching.
type ZoneResolver interface {
	GetZone(ctx context.Context, id int64) (*domain.ShippingZone, error)
}

// ZoneMethodUsecase manages the shipping method instances of a zone.
type ZoneMethodUsecase struct {
	zones     ZoneResolver
	repo      domain.ZoneRepository
	store     domain.SettingsStore
	types     domain.MethodTypeRegistry
	events    domain.EventPublisher
	txManager domain.TransactionManager
}

func NewZoneMethodUsecase(
	zones ZoneResolver,
	repo domain.ZoneRepository,
	store domain.SettingsStore,
	types domain.MethodTypeRegistry,
	events domain.EventPublisher,
	txManager domain.TransactionManager,
) *ZoneMethodUsecase {
	return &ZoneMethodUsecase{
		zones:     zones,
		repo:      repo,
		store:     store,
		types:     types,
		events:    events,
		txManager: txManager,
	}
}

// List returns every method of the zone ordered by order, then instance id.
func (u *ZoneMethodUsecase) List(ctx context.Context, zoneID int64) ([]domain.ZoneMethod, error) {
	if _, err := u.zones.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}
	return u.loadMethods(ctx, zoneID)
}

func (u *ZoneMethodUsecase) Get(ctx context.Context, zoneID, instanceID int64) (*domain.ZoneMethod, error) {
	if _, err := u.zones.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}
	return u.findMethod(ctx, zoneID, instanceID)
}

// Create adds an instance of methodID to the zone and applies the requested fields.
// Nothing is written when the type is unknown or the settings do not validate.
func (u *ZoneMethodUsecase) Create(ctx context.Context, zoneID int64, methodID string, upd domain.MethodUpdate) (*domain.ZoneMethod, error) {
	if _, err := u.zones.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}
	if methodID == "" {
		return nil, fmt.Errorf("%w: method_id is required", domain.ErrInvalidParam)
	}
	mt, ok := u.types.Get(methodID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMethodType, methodID)
	}
	settings, err := parseSettings(mt, upd.Settings)
	if err != nil {
		return nil, err
	}

	instanceID, err := u.repo.AddMethod(ctx, zoneID, mt)
	if err != nil {
		return nil, err
	}

	zm, err := u.findMethod(ctx, zoneID, instanceID)
	if err != nil {
		if errors.Is(err, domain.ErrMethodNotFound) {
			return nil, fmt.Errorf("%w: instance %d missing after insert", domain.ErrMethodNotCreated, instanceID)
		}
		return nil, err
	}

	u.publish(ctx, newMethodEvent(domain.EventMethodCreated, zm.Instance))
	u.applyFields(ctx, zm, settings, upd)

	return zm, nil
}

// Update applies the requested fields to an existing instance.
func (u *ZoneMethodUsecase) Update(ctx context.Context, zoneID, instanceID int64, upd domain.MethodUpdate) (*domain.ZoneMethod, error) {
	if _, err := u.zones.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}
	zm, err := u.findMethod(ctx, zoneID, instanceID)
	if err != nil {
		return nil, err
	}
	settings, err := parseSettings(zm.Type, upd.Settings)
	if err != nil {
		return nil, err
	}

	u.applyFields(ctx, zm, settings, upd)
	if !upd.IsEmpty() {
		u.publish(ctx, newMethodEvent(domain.EventMethodUpdated, zm.Instance))
	}
	return zm, nil
}

// Delete removes an instance and its settings. Only forced deletion is supported;
// without force nothing is touched. The returned value is the state just before
// removal, after any requested field updates.
func (u *ZoneMethodUsecase) Delete(ctx context.Context, zoneID, instanceID int64, force bool, upd domain.MethodUpdate) (*domain.ZoneMethod, error) {
	if _, err := u.zones.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}
	zm, err := u.findMethod(ctx, zoneID, instanceID)
	if err != nil {
		return nil, err
	}
	if !force {
		return nil, fmt.Errorf("%w: set force=true to delete", domain.ErrTrashNotSupported)
	}
	settings, err := parseSettings(zm.Type, upd.Settings)
	if err != nil {
		return nil, err
	}

	u.applyFields(ctx, zm, settings, upd)
	snapshot := &domain.ZoneMethod{Instance: zm.Instance.Clone(), Type: zm.Type}

	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := u.repo.RemoveMethod(txCtx, zoneID, instanceID); err != nil {
			return err
		}
		return u.store.DeleteSettings(txCtx, zm.Type.InstanceOptionKey(instanceID))
	})
	if err != nil {
		return nil, err
	}

	event := newMethodEvent(domain.EventMethodDeleted, snapshot.Instance)
	inst := snapshot.Instance.Clone()
	event.Snapshot = &inst
	u.publish(ctx, event)

	return snapshot, nil
}

// applyFields writes each field present in the request. Settings and order writes
// are best effort. The enabled flag only changes in memory, and the toggle event
// only fires, when the store reports that the stored flag changed.
func (u *ZoneMethodUsecase) applyFields(ctx context.Context, zm *domain.ZoneMethod, settings domain.Settings, upd domain.MethodUpdate) {
	log := logger.WithContext(ctx)
	inst := &zm.Instance

	if settings != nil {
		merged := inst.Settings.Clone()
		if merged == nil {
			merged = domain.Settings{}
		}
		for k, v := range settings {
			merged[k] = v
		}
		key := zm.Type.InstanceOptionKey(inst.InstanceID)
		if err := u.store.WriteSettings(ctx, key, merged); err != nil {
			log.Warn().Err(err).Str("option", key).Msg("failed to persist method settings")
		}
		inst.Settings = merged
	}

	if upd.Order != nil {
		order := clampOrder(*upd.Order)
		if _, err := u.store.WriteOrder(ctx, inst.InstanceID, order); err != nil {
			log.Warn().Err(err).Int64("instance_id", inst.InstanceID).Msg("failed to persist method order")
		}
		inst.Order = order
	}

	if upd.Enabled != nil {
		changed, err := u.store.WriteEnabled(ctx, inst.InstanceID, *upd.Enabled)
		if err != nil {
			log.Warn().Err(err).Int64("instance_id", inst.InstanceID).Msg("failed to persist method status")
		}
		if err == nil && changed {
			inst.Enabled = *upd.Enabled
			event := newMethodEvent(domain.EventMethodStatusToggled, *inst)
			enabled := inst.Enabled
			event.Enabled = &enabled
			u.publish(ctx, event)
		}
	}
}

// loadMethods lists the zone's instances with their settings. Instances whose
// type is no longer registered are skipped.
func (u *ZoneMethodUsecase) loadMethods(ctx context.Context, zoneID int64) ([]domain.ZoneMethod, error) {
	instances, err := u.repo.ListMethods(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ZoneMethod, 0, len(instances))
	for _, inst := range instances {
		mt, ok := u.types.Get(inst.MethodID)
		if !ok {
			logger.WithContext(ctx).Warn().
				Str("method_id", inst.MethodID).
				Int64("instance_id", inst.InstanceID).
				Msg("skipping method instance of unregistered type")
			continue
		}

		settings, found, err := u.store.ReadSettings(ctx, mt.InstanceOptionKey(inst.InstanceID))
		if err != nil {
			return nil, err
		}
		if !found {
			settings = domain.Settings{}
		}
		inst.Settings = domain.NormalizeSettings(mt.FormFields(), settings)

		result = append(result, domain.ZoneMethod{Instance: inst, Type: mt})
	}
	return result, nil
}

func (u *ZoneMethodUsecase) findMethod(ctx context.Context, zoneID, instanceID int64) (*domain.ZoneMethod, error) {
	methods, err := u.loadMethods(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	for i := range methods {
		if methods[i].Instance.InstanceID == instanceID {
			return &methods[i], nil
		}
	}
	return nil, fmt.Errorf("%w: instance %d in zone %d", domain.ErrMethodNotFound, instanceID, zoneID)
}

func (u *ZoneMethodUsecase) publish(ctx context.Context, event domain.MethodEvent) {
	if u.events == nil {
		return
	}
	u.events.Publish(ctx, event)
}

// parseSettings validates the request values of declared fields. Unknown keys
// and null values are dropped. A nil raw map means settings were not sent.
func parseSettings(mt domain.MethodType, raw map[string]any) (domain.Settings, error) {
	if raw == nil {
		return nil, nil
	}
	parsed := make(domain.Settings, len(raw))
	for _, f := range mt.FormFields() {
		v, ok := raw[f.Key]
		if !ok || v == nil {
			continue
		}
		sv, err := domain.ParseSettingValue(f, v)
		if err != nil {
			return nil, err
		}
		parsed[f.Key] = sv
	}
	return parsed, nil
}

func clampOrder(v int64) int {
	if v < 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

func newMethodEvent(t domain.EventType, inst domain.MethodInstance) domain.MethodEvent {
	return domain.MethodEvent{
		ID:         uuid.NewString(),
		Type:       t,
		InstanceID: inst.InstanceID,
		MethodID:   inst.MethodID,
		ZoneID:     inst.ZoneID,
		OccurredAt: time.Now().UTC(),
	}
}
