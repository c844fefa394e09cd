package domain

import (
	"context"
	"time"
)

// RestOfWorldZoneID identifies the implicit zone covering every location that no
// other zone matches. It always exists and has no stored row.
const RestOfWorldZoneID int64 = 0

const RestOfWorldZoneName = "Locations not covered by your other zones"

type ShippingZone struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func RestOfWorldZone() *ShippingZone {
	return &ShippingZone{ID: RestOfWorldZoneID, Name: RestOfWorldZoneName}
}

// ZoneRepository resolves zones and owns the zone <-> method instance rows.
// ListMethods returns instances without settings, ordered by order then instance id.
type ZoneRepository interface {
	GetZone(ctx context.Context, id int64) (*ShippingZone, error)
	ListZones(ctx context.Context) ([]ShippingZone, error)
	CreateZone(ctx context.Context, zone *ShippingZone) (*ShippingZone, error)
	UpdateZone(ctx context.Context, zone *ShippingZone) (*ShippingZone, error)
	DeleteZone(ctx context.Context, id int64, optionKeys []string) error

	ListMethods(ctx context.Context, zoneID int64) ([]MethodInstance, error)
	// AddMethod creates an instance of mt under the zone, persists its default
	// settings and returns the assigned instance id.
	AddMethod(ctx context.Context, zoneID int64, mt MethodType) (int64, error)
	RemoveMethod(ctx context.Context, zoneID, instanceID int64) error
}

// SettingsStore is the single persistence path for per-instance state: the
// settings object keyed by the method type's option key, plus order and enabled.
// WriteOrder and WriteEnabled report whether a stored row actually changed.
type SettingsStore interface {
	ReadSettings(ctx context.Context, key string) (Settings, bool, error)
	WriteSettings(ctx context.Context, key string, settings Settings) error
	DeleteSettings(ctx context.Context, key string) error
	WriteOrder(ctx context.Context, instanceID int64, order int) (bool, error)
	WriteEnabled(ctx context.Context, instanceID int64, enabled bool) (bool, error)
}

// TransactionManager runs fn so that repository calls made with the derived
// context share one transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
