package events

import (
	"context"
	"fmt"
	"strings"

	"shipzone-backend/internal/domain"

	"github.com/goccy/go-json"
)

// ObjectWriter stores a JSON document under key.
type ObjectWriter interface {
	PutJSON(ctx context.Context, key string, body []byte) (string, error)
}

// ArchiveSubscriber keeps the final state of every deleted method in object storage.
type ArchiveSubscriber struct {
	store  ObjectWriter
	prefix string
}

func NewArchiveSubscriber(store ObjectWriter, prefix string) *ArchiveSubscriber {
	return &ArchiveSubscriber{store: store, prefix: strings.Trim(prefix, "/")}
}

func (a *ArchiveSubscriber) Name() string { return "archive" }

func (a *ArchiveSubscriber) Handle(ctx context.Context, event domain.MethodEvent) error {
	if event.Type != domain.EventMethodDeleted || event.Snapshot == nil {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = a.store.PutJSON(ctx, a.Key(event), body)
	return err
}

// Key is the object key a deleted-method event is archived under.
func (a *ArchiveSubscriber) Key(event domain.MethodEvent) string {
	name := fmt.Sprintf("zone-%d/%s-%d-%s.json",
		event.ZoneID,
		event.MethodID,
		event.InstanceID,
		event.OccurredAt.UTC().Format("20060102T150405Z"),
	)
	if a.prefix == "" {
		return name
	}
	return a.prefix + "/" + name
}
