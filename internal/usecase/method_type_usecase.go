package usecase

import (
	"context"
	"fmt"

	"shipzone-backend/config"
	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/cache"
)

// MethodTypeUsecase exposes the registered method type catalog.
type MethodTypeUsecase struct {
	types domain.MethodTypeRegistry
	cache cache.CacheService
	cfg   *config.Config
}

func NewMethodTypeUsecase(types domain.MethodTypeRegistry, cache cache.CacheService, cfg *config.Config) *MethodTypeUsecase {
	return &MethodTypeUsecase{types: types, cache: cache, cfg: cfg}
}

func (u *MethodTypeUsecase) List(ctx context.Context) []domain.MethodType {
	if list, found := cache.GetAs[[]domain.MethodType](u.cache, cache.MethodTypesKey); found {
		return list
	}
	list := u.types.List()
	u.cache.Set(cache.MethodTypesKey, list, u.cfg.CacheMethodTypesTTL)
	return list
}

func (u *MethodTypeUsecase) Get(ctx context.Context, id string) (domain.MethodType, error) {
	mt, ok := u.types.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrMethodTypeNotFound, id)
	}
	return mt, nil
}
