package store

import (
	"testing"

	"librarysvc/pkg/domain"
)

func TestMemoryStoreBookVisibility(t *testing.T) {
	m := NewMemoryStore()

	a, err := m.AddBook(domain.Book{Title: "Alpha", ISBN: "111"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := m.AddBook(domain.Book{Title: "Beta", ISBN: "222"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("surrogate keys = %d, %d, want 1, 2", a.ID, b.ID)
	}

	a.Status = "Deleted"
	a.Reason = "withdrawn"
	if err := m.UpdateBook(a); err != nil {
		t.Fatalf("update: %v", err)
	}

	books, err := m.ListBooks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(books) != 1 || books[0].ID != b.ID {
		t.Fatalf("list = %+v, want only Beta", books)
	}
	if _, ok, _ := m.GetBook(a.ID); ok {
		t.Fatalf("soft-deleted book visible through filtered read")
	}
	raw, ok, _ := m.GetBookAnyStatus(a.ID)
	if !ok || raw.Status != "Deleted" || raw.Reason != "withdrawn" {
		t.Fatalf("unfiltered read = %+v ok=%v", raw, ok)
	}
}

// The read filter is a substring test on a nullable field: any status
// containing the marker hides the row, an empty status never does.
func TestMemoryStoreDeletedSubstringMatch(t *testing.T) {
	m := NewMemoryStore()

	kept, _ := m.AddBook(domain.Book{Title: "Kept", Status: ""})
	flagged, _ := m.AddBook(domain.Book{Title: "Flagged", Status: "Deleted (pending review)"})

	books, err := m.ListBooks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(books) != 1 || books[0].ID != kept.ID {
		t.Fatalf("list = %+v, want only Kept", books)
	}
	if _, ok, _ := m.GetBook(flagged.ID); ok {
		t.Fatalf("status with marker substring should be hidden")
	}
}

func TestMemoryStoreDeleteBook(t *testing.T) {
	m := NewMemoryStore()
	b, _ := m.AddBook(domain.Book{Title: "Alpha"})

	if err := m.DeleteBook(b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := m.GetBookAnyStatus(b.ID); ok {
		t.Fatalf("row present after physical delete")
	}
	books, _ := m.ListBooks()
	if len(books) != 0 {
		t.Fatalf("list = %+v, want empty", books)
	}
}

func TestMemoryStoreUsers(t *testing.T) {
	m := NewMemoryStore()

	ada, err := m.AddUser(domain.User{FirstName: "Ada", LibraryCardNumber: "C1"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	grace, _ := m.AddUser(domain.User{FirstName: "Grace", LibraryCardNumber: "C2"})

	users, err := m.ListUsers()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].ID != ada.ID || users[1].ID != grace.ID {
		t.Fatalf("list = %+v, want insertion order", users)
	}

	ada.Notes = "founder"
	if err := m.UpdateUser(ada); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, ok, _ := m.GetUser(ada.ID)
	if !ok || got.Notes != "founder" {
		t.Fatalf("get = %+v ok=%v", got, ok)
	}

	if err := m.DeleteUser(grace.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := m.GetUser(grace.ID); ok {
		t.Fatalf("user present after delete")
	}
}
