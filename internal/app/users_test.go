package app

import (
	"errors"
	"testing"

	"librarysvc/internal/query"
	"librarysvc/pkg/domain"
)

func seedUser(t *testing.T, a *App, first, last, card string) domain.User {
	t.Helper()
	u, err := a.AddUser(domain.User{
		FirstName:         first,
		LastName:          last,
		Position:          "Member",
		LibraryCardNumber: card,
	})
	if err != nil {
		t.Fatalf("seed user %s %s: %v", first, last, err)
	}
	return u
}

func TestAddUserCardNumberUniqueness(t *testing.T) {
	a, _ := newTestApp(t)
	seedUser(t, a, "Ada", "Lovelace", "CARD-1")

	if _, err := a.AddUser(domain.User{FirstName: "Grace", LibraryCardNumber: "card-1"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate card ignoring case: got %v, want conflict", err)
	}

	// Users without a card number never collide with each other.
	seedUser(t, a, "Grace", "Hopper", "")
	seedUser(t, a, "Alan", "Turing", "")
}

// Update performs no card-number re-check, so two users can end up sharing
// one card via sequential updates. That gap is part of the contract.
func TestUpdateUserSkipsCardNumberCheck(t *testing.T) {
	a, _ := newTestApp(t)
	ada := seedUser(t, a, "Ada", "Lovelace", "CARD-1")
	grace := seedUser(t, a, "Grace", "Hopper", "CARD-2")

	if err := a.UpdateUser(grace.ID, domain.User{
		FirstName:         "Grace",
		LastName:          "Hopper",
		Position:          "Member",
		LibraryCardNumber: "CARD-1",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	first, err := a.GetUser(ada.ID)
	if err != nil {
		t.Fatalf("get ada: %v", err)
	}
	second, err := a.GetUser(grace.ID)
	if err != nil {
		t.Fatalf("get grace: %v", err)
	}
	if first.LibraryCardNumber != second.LibraryCardNumber {
		t.Fatalf("expected shared card number, got %q and %q", first.LibraryCardNumber, second.LibraryCardNumber)
	}
}

func TestListUsersPaged(t *testing.T) {
	a, _ := newTestApp(t)

	if _, err := a.ListUsers(query.Page{Number: 0, Size: 5}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero page: got %v, want invalid argument", err)
	}

	res, err := a.ListUsers(query.Page{Number: 1, Size: 5})
	if err != nil {
		t.Fatalf("empty list: %v", err)
	}
	if res.Total != 0 || len(res.Data) != 0 {
		t.Fatalf("empty store: %+v", res)
	}

	seedUser(t, a, "Ada", "Lovelace", "C1")
	seedUser(t, a, "Grace", "Hopper", "C2")
	seedUser(t, a, "Alan", "Turing", "C3")

	res, err = a.ListUsers(query.Page{Number: 2, Size: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 3 {
		t.Fatalf("total = %d, want 3", res.Total)
	}
	if len(res.Data) != 1 || res.Data[0].FirstName != "Alan" {
		t.Fatalf("page 2 = %+v, want [Alan]", res.Data)
	}
}

func TestUserLifecycle(t *testing.T) {
	a, _ := newTestApp(t)

	if _, err := a.GetUser(0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero id: got %v, want invalid argument", err)
	}
	if _, err := a.GetUser(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id: got %v, want not found", err)
	}

	ada := seedUser(t, a, "Ada", "Lovelace", "C1")
	if err := a.UpdateUser(ada.ID, domain.User{FirstName: "Augusta", LastName: "King", Position: "Staff"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := a.GetUser(ada.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Augusta" || got.Position != "Staff" || got.LibraryCardNumber != "" {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := a.DeleteUser(ada.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := a.GetUser(ada.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted user still visible: %v", err)
	}
	if err := a.DeleteUser(ada.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: got %v, want not found", err)
	}
}
