package service

import (
	"encoding/json"
	"testing"

	"github.com/meilisearch/meilisearch-go"
)

func TestIdsFromHits(t *testing.T) {
	hits := meilisearch.Hits{
		{
			"id":      json.RawMessage(`"0198f6a2-1111-7000-8000-000000000001"`),
			"title":   json.RawMessage(`"First"`),
			"content": json.RawMessage(`"Body"`),
		},
		{
			"id": json.RawMessage(`"0198f6a2-2222-7000-8000-000000000002"`),
		},
	}

	ids := idsFromHits(hits)
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 entries", ids)
	}
	if ids[0] != "0198f6a2-1111-7000-8000-000000000001" || ids[1] != "0198f6a2-2222-7000-8000-000000000002" {
		t.Errorf("ids = %v", ids)
	}
}

func TestIdsFromHitsSkipsMalformed(t *testing.T) {
	hits := meilisearch.Hits{
		{"id": json.RawMessage(`12345`)}, // wrong type, Decode fails
		{"title": json.RawMessage(`"no id field"`)},
		{"id": json.RawMessage(`"0198f6a2-3333-7000-8000-000000000003"`)},
	}

	ids := idsFromHits(hits)
	if len(ids) != 1 || ids[0] != "0198f6a2-3333-7000-8000-000000000003" {
		t.Fatalf("ids = %v, want only the valid hit", ids)
	}
}
