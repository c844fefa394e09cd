package usecase

import (
	"context"
	"fmt"
	"strings"

	"shipzone-backend/config"
	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/cache"
)

// ZoneUsecase manages shipping zones. Zone lookups are cached because every
// zone method request resolves its parent zone first.
type ZoneUsecase struct {
	repo  domain.ZoneRepository
	types domain.MethodTypeRegistry
	cache cache.CacheService
	cfg   *config.Config
}

func NewZoneUsecase(repo domain.ZoneRepository, types domain.MethodTypeRegistry, cache cache.CacheService, cfg *config.Config) *ZoneUsecase {
	return &ZoneUsecase{repo: repo, types: types, cache: cache, cfg: cfg}
}

func (u *ZoneUsecase) GetZone(ctx context.Context, id int64) (*domain.ShippingZone, error) {
	key := cache.ZoneKey(id)
	if z, found := cache.GetAs[domain.ShippingZone](u.cache, key); found {
		return &z, nil
	}

	z, err := u.repo.GetZone(ctx, id)
	if err != nil {
		return nil, err
	}
	u.cache.Set(key, *z, u.cfg.CacheZoneTTL)
	return z, nil
}

// ListZones returns the rest-of-world zone followed by the stored zones.
func (u *ZoneUsecase) ListZones(ctx context.Context) ([]domain.ShippingZone, error) {
	if zones, found := cache.GetAs[[]domain.ShippingZone](u.cache, cache.ZoneListKey); found {
		return zones, nil
	}

	stored, err := u.repo.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	zones := make([]domain.ShippingZone, 0, len(stored)+1)
	zones = append(zones, *domain.RestOfWorldZone())
	zones = append(zones, stored...)

	u.cache.Set(cache.ZoneListKey, zones, u.cfg.CacheZoneTTL)
	return zones, nil
}

func (u *ZoneUsecase) CreateZone(ctx context.Context, name string, order int) (*domain.ShippingZone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidParam)
	}

	z, err := u.repo.CreateZone(ctx, &domain.ShippingZone{Name: name, Order: order})
	if err != nil {
		return nil, err
	}
	u.cache.Delete(cache.ZoneListKey)
	return z, nil
}

// UpdateZone changes the fields that are non-nil.
func (u *ZoneUsecase) UpdateZone(ctx context.Context, id int64, name *string, order *int) (*domain.ShippingZone, error) {
	if id == domain.RestOfWorldZoneID {
		return nil, domain.ErrReservedZone
	}
	z, err := u.repo.GetZone(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidParam)
		}
		z.Name = trimmed
	}
	if order != nil {
		z.Order = *order
	}

	updated, err := u.repo.UpdateZone(ctx, z)
	if err != nil {
		return nil, err
	}
	u.invalidate(id)
	return updated, nil
}

// DeleteZone removes a zone together with its methods and their settings.
func (u *ZoneUsecase) DeleteZone(ctx context.Context, id int64, force bool) (*domain.ShippingZone, error) {
	if id == domain.RestOfWorldZoneID {
		return nil, domain.ErrReservedZone
	}
	z, err := u.repo.GetZone(ctx, id)
	if err != nil {
		return nil, err
	}
	if !force {
		return nil, fmt.Errorf("%w: set force=true to delete", domain.ErrTrashNotSupported)
	}

	methods, err := u.repo.ListMethods(ctx, id)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(methods))
	for _, m := range methods {
		if mt, ok := u.types.Get(m.MethodID); ok {
			keys = append(keys, mt.InstanceOptionKey(m.InstanceID))
		}
	}

	if err := u.repo.DeleteZone(ctx, id, keys); err != nil {
		return nil, err
	}
	u.invalidate(id)
	return z, nil
}

func (u *ZoneUsecase) invalidate(id int64) {
	u.cache.Delete(cache.ZoneKey(id))
	u.cache.Delete(cache.ZoneListKey)
}
