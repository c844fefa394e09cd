package events

import (
	"context"

	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/logger"
)

type LogSubscriber struct{}

func (LogSubscriber) Name() string { return "log" }

func (LogSubscriber) Handle(ctx context.Context, event domain.MethodEvent) error {
	e := logger.WithContext(ctx).Info().
		Str("event", string(event.Type)).
		Str("event_id", event.ID).
		Int64("zone_id", event.ZoneID).
		Int64("instance_id", event.InstanceID).
		Str("method_id", event.MethodID)
	if event.Enabled != nil {
		e = e.Bool("enabled", *event.Enabled)
	}
	e.Msg("shipping method event")
	return nil
}
