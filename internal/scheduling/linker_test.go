package scheduling

import (
	"testing"

	"github.com/google/uuid"
)

func TestDedupeServiceIDs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	got := DedupeServiceIDs([]uuid.UUID{a, b, a, c, b, a})
	want := []uuid.UUID{a, b, c}

	if len(got) != len(want) {
		t.Fatalf("got %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s (first-seen order not kept)", i, got[i], want[i])
		}
	}
}

func TestDedupeServiceIDsEmpty(t *testing.T) {
	got := DedupeServiceIDs(nil)
	if len(got) != 0 {
		t.Fatalf("got %d ids, want 0", len(got))
	}
}

func TestDiffLinks(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	d := uuid.New()

	toAdd, toRemove := DiffLinks([]uuid.UUID{a, b, c}, []uuid.UUID{b, c, d})

	if len(toAdd) != 1 || toAdd[0] != d {
		t.Errorf("toAdd = %v, want [%s]", toAdd, d)
	}
	if len(toRemove) != 1 || toRemove[0] != a {
		t.Errorf("toRemove = %v, want [%s]", toRemove, a)
	}
}

func TestDiffLinksNoChange(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	toAdd, toRemove := DiffLinks([]uuid.UUID{a, b}, []uuid.UUID{b, a})
	if len(toAdd) != 0 {
		t.Errorf("toAdd = %v, want empty", toAdd)
	}
	if len(toRemove) != 0 {
		t.Errorf("toRemove = %v, want empty", toRemove)
	}
}

func TestDiffLinksDisjoint(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	toAdd, toRemove := DiffLinks([]uuid.UUID{a}, []uuid.UUID{b})
	if len(toAdd) != 1 || toAdd[0] != b {
		t.Errorf("toAdd = %v, want [%s]", toAdd, b)
	}
	if len(toRemove) != 1 || toRemove[0] != a {
		t.Errorf("toRemove = %v, want [%s]", toRemove, a)
	}
}

func TestDiffLinksEmptyRequested(t *testing.T) {
	a := uuid.New()

	toAdd, toRemove := DiffLinks([]uuid.UUID{a}, nil)
	if len(toAdd) != 0 {
		t.Errorf("toAdd = %v, want empty", toAdd)
	}
	if len(toRemove) != 1 || toRemove[0] != a {
		t.Errorf("toRemove = %v, want [%s]", toRemove, a)
	}
}
