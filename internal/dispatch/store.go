package dispatch

import (
	"context"
	"fmt"

	"github.com/labsyncio/labsync/client"
	"github.com/labsyncio/labsync/internal/records"
)

// StoreSink persists alerts into the workspace alerts collection.
type StoreSink struct {
	client     *client.Client
	databaseID string
}

// NewStoreSink returns a sink writing into the given alerts collection.
func NewStoreSink(c *client.Client, databaseID string) *StoreSink {
	return &StoreSink{client: c, databaseID: databaseID}
}

func (s *StoreSink) Name() string { return "alerts-collection" }

// Deliver creates one page in the alerts collection for the alert.
func (s *StoreSink) Deliver(ctx context.Context, alert records.Alert) error {
	props, err := records.AlertSchema.EncodeNew(alert.ToRecord())
	if err != nil {
		return fmt.Errorf("encoding alert: %w", err)
	}
	if _, err := s.client.Pages.Create(ctx, s.databaseID, props); err != nil {
		return fmt.Errorf("persisting alert: %w", err)
	}
	return nil
}
