package client

import (
	"encoding/json"
	"time"
)

// Properties is an encoded property payload as sent to the store.
type Properties map[string]any

// Page represents one row of a collection as returned by the store. The ID
// is the store-assigned opaque identifier; it has no meaning before creation.
type Page struct {
	ID             string                     `json:"id"`
	CreatedTime    time.Time                  `json:"created_time"`
	LastEditedTime time.Time                  `json:"last_edited_time"`
	Archived       bool                       `json:"archived"`
	Properties     map[string]json.RawMessage `json:"properties"`
}

// Query is the body of a database query: an optional filter expression and
// sort ordering.
type Query struct {
	Filter *Filter `json:"filter,omitempty"`
	Sorts  []Sort  `json:"sorts,omitempty"`
}

// parentRef addresses the collection a new page is created under.
type parentRef struct {
	DatabaseID string `json:"database_id"`
}

// createPageRequest is the payload for creating a page.
type createPageRequest struct {
	Parent     parentRef  `json:"parent"`
	Properties Properties `json:"properties"`
}

// updatePageRequest is the payload for a partial page update.
type updatePageRequest struct {
	Properties Properties `json:"properties"`
}

// queryResponse wraps one page of database query results.
type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}
