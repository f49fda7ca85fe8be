package session_test

import (
	"testing"

	"github.com/wallon-qodo/multi-term-sub000/internal/session"
)

func TestCreate_AssignsUniqueIDs(t *testing.T) {
	r := session.NewRegistry()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := r.Create("shell", "/bin/sh", "/tmp")
		if s.ID == "" {
			t.Fatal("Expected non-empty session id")
		}
		if seen[s.ID] {
			t.Fatalf("Duplicate session id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if r.Count() != 50 {
		t.Errorf("Expected 50 sessions, got %d", r.Count())
	}
}

func TestCreate_EmptyTitleFallsBackToCommand(t *testing.T) {
	r := session.NewRegistry()
	s := r.Create("", "htop", "")
	if s.Title != "htop" {
		t.Errorf("Expected title 'htop', got %q", s.Title)
	}
}

func TestClose_AnnouncesExit(t *testing.T) {
	r := session.NewRegistry()
	s := r.Create("shell", "/bin/sh", "")

	if !r.Close(s.ID) {
		t.Fatal("Expected close to succeed")
	}
	if r.Close(s.ID) {
		t.Error("Expected repeat close to fail")
	}
	if _, ok := r.Get(s.ID); ok {
		t.Error("Expected closed session to be unregistered")
	}

	select {
	case id := <-r.Exits():
		if id != s.ID {
			t.Errorf("Expected exit for %q, got %q", s.ID, id)
		}
	default:
		t.Error("Expected exit notification on the channel")
	}
}

func TestRename(t *testing.T) {
	r := session.NewRegistry()
	s := r.Create("old", "/bin/sh", "")

	if !r.Rename(s.ID, "new") {
		t.Fatal("Expected rename to succeed")
	}
	got, _ := r.Get(s.ID)
	if got.Title != "new" {
		t.Errorf("Expected title 'new', got %q", got.Title)
	}
	if r.Rename("ghost", "x") {
		t.Error("Expected rename of unknown session to fail")
	}
}

func TestList_CreationOrder(t *testing.T) {
	r := session.NewRegistry()
	a := r.Create("a", "sh", "")
	b := r.Create("b", "sh", "")
	c := r.Create("c", "sh", "")
	r.Close(b.ID)

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(list))
	}
	if list[0].ID != a.ID || list[1].ID != c.ID {
		t.Errorf("Expected creation order [a c], got [%s %s]", list[0].Title, list[1].Title)
	}
}
