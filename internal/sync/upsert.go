// Package sync reconciles local records against workspace collections.
// An upsert locates an existing page by its identity key and updates it,
// or creates a new page when no match exists.
package sync

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/labsyncio/labsync/client"
	"github.com/labsyncio/labsync/internal/metrics"
)

// Action reports what an upsert did to the collection.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Key identifies the page an upsert targets: the record whose title
// property and date property both match. Employee performance records,
// for example, are keyed by (staff member, date). Collections whose
// title alone is the identity, such as stations and equipment, leave
// DateField empty.
type Key struct {
	TitleField string
	TitleValue string
	DateField  string
	DateValue  string
}

// Upserter writes records into workspace collections.
type Upserter struct {
	client *client.Client
	log    *logrus.Logger
}

// New returns an Upserter backed by the given API client.
func New(c *client.Client, log *logrus.Logger) *Upserter {
	if log == nil {
		log = logrus.New()
	}
	return &Upserter{client: c, log: log}
}

// Upsert writes rec into the collection identified by databaseID. It
// queries for a page matching key; the first match is updated in place,
// otherwise a new page is created. The returned action reports which
// path was taken.
//
// The query and the write are two separate API calls, so two concurrent
// upserts for the same key can both observe no match and create
// duplicate pages. Callers that need stronger guarantees must serialize
// per key.
func (u *Upserter) Upsert(ctx context.Context, databaseID string, schema client.Schema, rec client.Record, key Key) (string, Action, error) {
	filter := client.TitleEquals(key.TitleField, key.TitleValue)
	if key.DateField != "" {
		filter = client.And(filter, client.DateEquals(key.DateField, key.DateValue))
	}
	query := &client.Query{Filter: filter}
	pages, err := u.client.Databases.Query(ctx, databaseID, query)
	if err != nil {
		return "", "", fmt.Errorf("querying %q for %s/%s: %w", databaseID, key.TitleValue, key.DateValue, err)
	}

	if len(pages) > 0 {
		page := pages[0]
		props, err := schema.Encode(rec)
		if err != nil {
			return "", "", err
		}
		if _, err := u.client.Pages.Update(ctx, page.ID, props); err != nil {
			return "", "", fmt.Errorf("updating page %s: %w", page.ID, err)
		}
		metrics.UpsertsTotal.WithLabelValues(string(ActionUpdated)).Inc()
		u.log.WithFields(logrus.Fields{
			"page_id": page.ID,
			"title":   key.TitleValue,
			"date":    key.DateValue,
		}).Debug("upsert updated existing page")
		return page.ID, ActionUpdated, nil
	}

	props, err := schema.EncodeNew(rec)
	if err != nil {
		return "", "", err
	}
	page, err := u.client.Pages.Create(ctx, databaseID, props)
	if err != nil {
		return "", "", fmt.Errorf("creating page for %s/%s: %w", key.TitleValue, key.DateValue, err)
	}
	metrics.UpsertsTotal.WithLabelValues(string(ActionCreated)).Inc()
	u.log.WithFields(logrus.Fields{
		"page_id": page.ID,
		"title":   key.TitleValue,
		"date":    key.DateValue,
	}).Debug("upsert created new page")
	return page.ID, ActionCreated, nil
}
