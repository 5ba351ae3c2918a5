package jobs

import (
	"testing"
	"time"
)

func TestDisplayName(t *testing.T) {
	t.Parallel()

	added := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	got := DisplayName("Data Engineer", added)
	if got != "JD: Data Engineer (08/31)" {
		t.Fatalf("unexpected display name: %q", got)
	}
}

func TestStoreLifecycle(t *testing.T) {
	t.Parallel()

	store := NewStore()

	first := New("JD: First (01/01)", "body one", Metadata{Role: "Dev"})
	second := New("JD: Second (01/02)", "body two", Metadata{Role: "Analyst"})
	store.Add(first)
	store.Add(second)

	if store.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", store.Len())
	}

	if got := store.FindByName("JD: Second (01/02)"); got != second {
		t.Fatalf("expected to find the second entry, got %+v", got)
	}
	if got := store.FindByName("nope"); got != nil {
		t.Fatalf("expected nil for unknown name, got %+v", got)
	}

	names := store.Names()
	if len(names) != 2 || names[0] != first.Name || names[1] != second.Name {
		t.Fatalf("names should preserve insertion order, got %v", names)
	}

	if !store.Remove(first.ID) {
		t.Fatalf("expected removal to succeed")
	}
	if store.Remove(first.ID) {
		t.Fatalf("second removal of the same id should fail")
	}
	if store.Len() != 1 || store.Items()[0] != second {
		t.Fatalf("unexpected store contents after removal: %v", store.Items())
	}

	store.Clear()
	if store.Len() != 0 {
		t.Fatalf("expected empty store after clear, got %d", store.Len())
	}
}
