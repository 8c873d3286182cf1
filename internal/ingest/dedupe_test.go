package ingest

import (
	"testing"

	"hustlewire/internal/types"
)

func TestFilterNew(t *testing.T) {
	existing := map[string]struct{}{
		"http://example.com/old": {},
	}

	candidates := []types.Item{
		{Title: "old", URL: "http://example.com/old"},
		{Title: "new1", URL: "http://example.com/new1"},
		{Title: "new2", URL: "http://example.com/new2"},
	}

	fresh := FilterNew(candidates, existing)
	if len(fresh) != 2 {
		t.Fatalf("expected 2 new items, got %d", len(fresh))
	}
	if fresh[0].URL != "http://example.com/new1" || fresh[1].URL != "http://example.com/new2" {
		t.Errorf("unexpected filter output: %v", fresh)
	}
}

func TestFilterNewPreservesBatchDuplicates(t *testing.T) {
	candidates := []types.Item{
		{URL: "a"},
		{URL: "b"},
		{URL: "a"},
	}

	fresh := FilterNew(candidates, map[string]struct{}{})
	if len(fresh) != 3 {
		t.Fatalf("expected batch-internal duplicates to pass, got %d items", len(fresh))
	}
	if fresh[0].URL != "a" || fresh[1].URL != "b" || fresh[2].URL != "a" {
		t.Errorf("relative order not preserved: %v", fresh)
	}
}

func TestFilterNewEmptyInputs(t *testing.T) {
	if got := FilterNew(nil, map[string]struct{}{"a": {}}); len(got) != 0 {
		t.Errorf("expected empty output for empty candidates, got %v", got)
	}

	candidates := []types.Item{{URL: "a"}, {URL: "b"}}
	if got := FilterNew(candidates, map[string]struct{}{}); len(got) != 2 {
		t.Errorf("expected all candidates with empty existing set, got %v", got)
	}

	allExisting := map[string]struct{}{"a": {}, "b": {}}
	if got := FilterNew(candidates, allExisting); len(got) != 0 {
		t.Errorf("expected no candidates when all exist, got %v", got)
	}
}
