package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func TestQueryDatabase(t *testing.T) {
	var body map[string]json.RawMessage
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /v1/databases/db1/query": func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(data, &body); err != nil {
				t.Errorf("query body is not JSON: %v", err)
			}
			jsonResponse(w, 200, queryResponse{
				Results: []Page{{ID: "page-1"}, {ID: "page-2"}},
				HasMore: true,
			})
		},
	})

	filter := And(
		TitleEquals("Staff Member", "Jane Doe"),
		DateEquals("Date", "2024-01-15"),
	)
	pages, err := c.Databases.Query(context.Background(), "db1", &Query{
		Filter: filter,
		Sorts:  []Sort{SortBy("Date", Descending)},
	})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	// First page only; has_more is not followed.
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].ID != "page-1" {
		t.Errorf("got first page %q", pages[0].ID)
	}

	var sentFilter struct {
		And []struct {
			Property string         `json:"property"`
			Title    map[string]any `json:"title"`
			Date     map[string]any `json:"date"`
		} `json:"and"`
	}
	if err := json.Unmarshal(body["filter"], &sentFilter); err != nil {
		t.Fatalf("unmarshal filter: %v", err)
	}
	if len(sentFilter.And) != 2 {
		t.Fatalf("got %d leaf predicates, want 2", len(sentFilter.And))
	}
	if sentFilter.And[0].Title["equals"] != "Jane Doe" {
		t.Errorf("got title predicate %v", sentFilter.And[0].Title)
	}
	if sentFilter.And[1].Date["equals"] != "2024-01-15" {
		t.Errorf("got date predicate %v", sentFilter.And[1].Date)
	}
}

func TestCreatePage(t *testing.T) {
	schema := perfTestSchema()
	var sent createPageRequest
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /v1/pages": func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
				t.Errorf("decode create body: %v", err)
			}
			jsonResponse(w, 200, Page{ID: "new-page"})
		},
	})

	props, err := schema.EncodeNew(Record{
		"Staff Member":      Title("Jane Doe"),
		"Date":              Date("2024-01-15"),
		"Samples Processed": Number(38),
	})
	if err != nil {
		t.Fatalf("EncodeNew() error: %v", err)
	}
	page, err := c.Pages.Create(context.Background(), "db1", props)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if page.ID != "new-page" {
		t.Errorf("got page ID %q", page.ID)
	}
	if sent.Parent.DatabaseID != "db1" {
		t.Errorf("got parent %q, want db1", sent.Parent.DatabaseID)
	}

	// Wire shape: title wraps text content, number passes through bare.
	data, _ := json.Marshal(sent.Properties)
	var onWire map[string]json.RawMessage
	if err := json.Unmarshal(data, &onWire); err != nil {
		t.Fatalf("unmarshal sent properties: %v", err)
	}
	if got := string(onWire["Staff Member"]); got != `{"title":[{"text":{"content":"Jane Doe"}}]}` {
		t.Errorf("title envelope = %s", got)
	}
	if got := string(onWire["Samples Processed"]); got != `{"number":38}` {
		t.Errorf("number envelope = %s", got)
	}
}

func TestUpdatePage(t *testing.T) {
	var sent updatePageRequest
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"PATCH /v1/pages/page-9": func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
				t.Errorf("decode update body: %v", err)
			}
			jsonResponse(w, 200, Page{ID: "page-9"})
		},
	})

	schema := perfTestSchema()
	props, err := schema.Encode(Record{"Samples Processed": Number(44)})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if _, err := c.Pages.Update(context.Background(), "page-9", props); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if len(sent.Properties) != 1 {
		t.Errorf("got %d properties, want partial payload of 1", len(sent.Properties))
	}
}

func TestRetrieveDecodesRoundTrip(t *testing.T) {
	schema := perfTestSchema()
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /v1/pages/page-1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{
				"id": "page-1",
				"properties": map[string]any{
					"Staff Member": map[string]any{
						"type":  "title",
						"title": []any{map[string]any{"text": map[string]any{"content": "Jane Doe"}}},
					},
					"Samples Processed": map[string]any{"type": "number", "number": 38},
					"Performance Score": map[string]any{
						"type":    "formula",
						"formula": map[string]any{"type": "number", "number": 76},
					},
				},
			})
		},
	})

	page, err := c.Pages.Retrieve(context.Background(), "page-1")
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	rec := schema.Decode(page.Properties)
	if got := rec["Staff Member"].String(); got != "Jane Doe" {
		t.Errorf("decoded staff member %q", got)
	}
	if got := rec["Samples Processed"].Float(); got != 38.0 {
		t.Errorf("decoded samples %v, want 38.0", got)
	}
	if got := rec["Performance Score"].Float(); got != 76 {
		t.Errorf("decoded score %v, want 76", got)
	}
	// Notes was never set on the page; it decodes to the zero value.
	if got := rec["Notes"].String(); got != "" {
		t.Errorf("decoded notes %q, want empty", got)
	}
}
