package sqlcrepo

import (
	"errors"
	"time"

	"shipzone-backend/db/sqlc"
	"shipzone-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func pgtimeToTime(t pgtype.Timestamp) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func sqlcZoneToDomain(z sqlc.ShippingZone) *domain.ShippingZone {
	return &domain.ShippingZone{
		ID:        z.ID,
		Name:      z.Name,
		Order:     int(z.ZoneOrder),
		CreatedAt: pgtimeToTime(z.CreatedAt),
		UpdatedAt: pgtimeToTime(z.UpdatedAt),
	}
}

func sqlcMethodToDomain(m sqlc.ShippingZoneMethod) domain.MethodInstance {
	return domain.MethodInstance{
		InstanceID: m.InstanceID,
		ZoneID:     m.ZoneID,
		MethodID:   m.MethodID,
		Order:      int(m.MethodOrder),
		Enabled:    m.IsEnabled,
	}
}

// clampInt32 keeps an order value inside the column range.
func clampInt32(v int) int32 {
	const maxInt32 = 1<<31 - 1
	switch {
	case v > maxInt32:
		return maxInt32
	case v < -maxInt32-1:
		return -maxInt32 - 1
	}
	return int32(v)
}
