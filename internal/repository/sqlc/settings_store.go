package sqlcrepo

import (
	"context"
	"fmt"

	"shipzone-backend/db/sqlc"
	"shipzone-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
)

// settingsStore keeps instance settings as JSONB rows in shipping_options and
// writes order and enabled onto the method row.
type settingsStore struct {
	queries *sqlc.Queries
}

func NewSettingsStore(db *pgxpool.Pool) domain.SettingsStore {
	return &settingsStore{queries: sqlc.New(db)}
}

func (s *settingsStore) ReadSettings(ctx context.Context, key string) (domain.Settings, bool, error) {
	q := GetQueriesFromContext(ctx, s.queries)
	raw, err := q.GetShippingOption(ctx, key)
	if err != nil {
		if isNoRows(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var settings domain.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, false, fmt.Errorf("decode option %s: %w", key, err)
	}
	if settings == nil {
		settings = domain.Settings{}
	}
	return settings, true, nil
}

func (s *settingsStore) WriteSettings(ctx context.Context, key string, settings domain.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode option %s: %w", key, err)
	}
	q := GetQueriesFromContext(ctx, s.queries)
	return q.UpsertShippingOption(ctx, sqlc.UpsertShippingOptionParams{
		OptionName:  key,
		OptionValue: raw,
	})
}

func (s *settingsStore) DeleteSettings(ctx context.Context, key string) error {
	q := GetQueriesFromContext(ctx, s.queries)
	return q.DeleteShippingOption(ctx, key)
}

func (s *settingsStore) WriteOrder(ctx context.Context, instanceID int64, order int) (bool, error) {
	q := GetQueriesFromContext(ctx, s.queries)
	n, err := q.UpdateMethodOrder(ctx, sqlc.UpdateMethodOrderParams{
		InstanceID:  instanceID,
		MethodOrder: clampInt32(order),
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// WriteEnabled only touches the row when the flag differs, so the affected row
// count tells whether the status actually changed.
func (s *settingsStore) WriteEnabled(ctx context.Context, instanceID int64, enabled bool) (bool, error) {
	q := GetQueriesFromContext(ctx, s.queries)
	n, err := q.UpdateMethodEnabled(ctx, sqlc.UpdateMethodEnabledParams{
		InstanceID: instanceID,
		IsEnabled:  enabled,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
