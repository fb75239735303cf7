package client

import (
	"context"
	"net/url"
)

// PageService handles page-level operations.
type PageService struct {
	c *Client
}

// Create creates a new page under the given collection and returns it.
func (s *PageService) Create(ctx context.Context, databaseID string, props Properties) (*Page, error) {
	var page Page
	req := createPageRequest{Parent: parentRef{DatabaseID: databaseID}, Properties: props}
	if err := s.c.post(ctx, "/v1/pages", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Update patches an existing page's properties. Only the fields present in
// props are touched.
func (s *PageService) Update(ctx context.Context, pageID string, props Properties) (*Page, error) {
	var page Page
	req := updatePageRequest{Properties: props}
	if err := s.c.patch(ctx, "/v1/pages/"+url.PathEscape(pageID), req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Retrieve fetches a single page by its store-assigned ID.
func (s *PageService) Retrieve(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := s.c.get(ctx, "/v1/pages/"+url.PathEscape(pageID), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DatabaseService handles collection-level operations.
type DatabaseService struct {
	c *Client
}

// Query runs a filtered, sorted query against a collection and returns the
// first page of results. Result cursors are not followed; callers that need
// more than one page do not exist in this system today.
func (s *DatabaseService) Query(ctx context.Context, databaseID string, q *Query) ([]Page, error) {
	if q == nil {
		q = &Query{}
	}
	var resp queryResponse
	path := "/v1/databases/" + url.PathEscape(databaseID) + "/query"
	if err := s.c.post(ctx, path, q, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
