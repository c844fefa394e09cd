package sqlcrepo

import (
	"context"
	"fmt"

	"shipzone-backend/db/sqlc"
	"shipzone-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
)

// zoneRepository stores zones and method rows. Option rows written here share
// the shipping_options table with settingsStore.
type zoneRepository struct {
	queries   *sqlc.Queries
	txManager domain.TransactionManager
}

func NewZoneRepository(db *pgxpool.Pool, txManager domain.TransactionManager) domain.ZoneRepository {
	return &zoneRepository{
		queries:   sqlc.New(db),
		txManager: txManager,
	}
}

func (r *zoneRepository) GetZone(ctx context.Context, id int64) (*domain.ShippingZone, error) {
	if id == domain.RestOfWorldZoneID {
		return domain.RestOfWorldZone(), nil
	}
	q := GetQueriesFromContext(ctx, r.queries)
	z, err := q.GetShippingZone(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrZoneNotFound
		}
		return nil, err
	}
	return sqlcZoneToDomain(z), nil
}

func (r *zoneRepository) ListZones(ctx context.Context) ([]domain.ShippingZone, error) {
	zones, err := r.queries.ListShippingZones(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ShippingZone, len(zones))
	for i, z := range zones {
		result[i] = *sqlcZoneToDomain(z)
	}
	return result, nil
}

func (r *zoneRepository) CreateZone(ctx context.Context, zone *domain.ShippingZone) (*domain.ShippingZone, error) {
	z, err := r.queries.CreateShippingZone(ctx, sqlc.CreateShippingZoneParams{
		Name:      zone.Name,
		ZoneOrder: clampInt32(zone.Order),
	})
	if err != nil {
		return nil, err
	}
	return sqlcZoneToDomain(z), nil
}

func (r *zoneRepository) UpdateZone(ctx context.Context, zone *domain.ShippingZone) (*domain.ShippingZone, error) {
	z, err := r.queries.UpdateShippingZone(ctx, sqlc.UpdateShippingZoneParams{
		ID:        zone.ID,
		Name:      zone.Name,
		ZoneOrder: clampInt32(zone.Order),
	})
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrZoneNotFound
		}
		return nil, err
	}
	return sqlcZoneToDomain(z), nil
}

// DeleteZone removes the zone, its method rows and the given option keys atomically.
func (r *zoneRepository) DeleteZone(ctx context.Context, id int64, optionKeys []string) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		q := GetQueriesFromContext(txCtx, r.queries)
		if len(optionKeys) > 0 {
			if err := q.DeleteShippingOptions(txCtx, optionKeys); err != nil {
				return err
			}
		}
		if err := q.DeleteZoneMethodsByZone(txCtx, id); err != nil {
			return err
		}
		n, err := q.DeleteShippingZone(txCtx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrZoneNotFound
		}
		return nil
	})
}

func (r *zoneRepository) ListMethods(ctx context.Context, zoneID int64) ([]domain.MethodInstance, error) {
	q := GetQueriesFromContext(ctx, r.queries)
	rows, err := q.ListZoneMethods(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	result := make([]domain.MethodInstance, len(rows))
	for i, m := range rows {
		result[i] = sqlcMethodToDomain(m)
	}
	return result, nil
}

// AddMethod inserts the instance row and its default settings in one transaction.
func (r *zoneRepository) AddMethod(ctx context.Context, zoneID int64, mt domain.MethodType) (int64, error) {
	defaults, err := json.Marshal(domain.DefaultSettings(mt))
	if err != nil {
		return 0, fmt.Errorf("encode default settings: %w", err)
	}

	var instanceID int64
	err = r.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := r.GetZone(txCtx, zoneID); err != nil {
			return err
		}

		q := GetQueriesFromContext(txCtx, r.queries)
		order, err := q.NextMethodOrder(txCtx, zoneID)
		if err != nil {
			return err
		}

		instanceID, err = q.InsertZoneMethod(txCtx, sqlc.InsertZoneMethodParams{
			ZoneID:      zoneID,
			MethodID:    mt.ID(),
			MethodOrder: order,
		})
		if err != nil {
			return err
		}

		return q.UpsertShippingOption(txCtx, sqlc.UpsertShippingOptionParams{
			OptionName:  mt.InstanceOptionKey(instanceID),
			OptionValue: defaults,
		})
	})
	if err != nil {
		return 0, err
	}
	return instanceID, nil
}

func (r *zoneRepository) RemoveMethod(ctx context.Context, zoneID, instanceID int64) error {
	q := GetQueriesFromContext(ctx, r.queries)
	n, err := q.DeleteZoneMethod(ctx, sqlc.DeleteZoneMethodParams{
		InstanceID: instanceID,
		ZoneID:     zoneID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: instance %d in zone %d", domain.ErrMethodNotFound, instanceID, zoneID)
	}
	return nil
}
