package app

import (
	"fmt"
	"strings"

	"librarysvc/internal/query"
	"librarysvc/pkg/domain"
)

// AddUser inserts a new user after checking library card uniqueness. The
// check only runs at creation; updates never revisit it. Users without a
// card number are not compared against each other.
func (a *App) AddUser(u domain.User) (domain.User, error) {
	if u.LibraryCardNumber != "" {
		existing, err := a.store.ListUsers()
		if err != nil {
			return domain.User{}, fmt.Errorf("list users: %w", err)
		}
		for _, other := range existing {
			if strings.EqualFold(other.LibraryCardNumber, u.LibraryCardNumber) {
				return domain.User{}, fmt.Errorf("user with library card number %s already exists: %w", u.LibraryCardNumber, ErrConflict)
			}
		}
	}
	added, err := a.store.AddUser(u)
	if err != nil {
		return domain.User{}, fmt.Errorf("add user: %w", err)
	}
	return added, nil
}

// ListUsers returns one page of users plus the total count. User listing
// has no filter or search capability.
func (a *App) ListUsers(page query.Page) (domain.Paged[domain.User], error) {
	if page.Number <= 0 || page.Size <= 0 {
		return domain.Paged[domain.User]{}, fmt.Errorf("page number and page size must be greater than zero: %w", ErrInvalidArgument)
	}
	users, err := a.store.ListUsers()
	if err != nil {
		return domain.Paged[domain.User]{}, fmt.Errorf("list users: %w", err)
	}
	return domain.Paged[domain.User]{
		Total: len(users),
		Data:  query.Paginate(users, page),
	}, nil
}

// ListAllUsers returns every user without pagination.
func (a *App) ListAllUsers() ([]domain.User, error) {
	users, err := a.store.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// GetUser returns one user by ID.
func (a *App) GetUser(id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, fmt.Errorf("user ID must be greater than zero: %w", ErrInvalidArgument)
	}
	user, ok, err := a.store.GetUser(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return domain.User{}, fmt.Errorf("user with ID %d was not found: %w", id, ErrNotFound)
	}
	return user, nil
}

// UpdateUser unconditionally overwrites the mutable fields of an existing
// user, including the library card number.
func (a *App) UpdateUser(id int64, u domain.User) error {
	if id <= 0 {
		return fmt.Errorf("user ID must be greater than zero: %w", ErrInvalidArgument)
	}
	existing, ok, err := a.store.GetUser(id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return fmt.Errorf("user with ID %d was not found: %w", id, ErrNotFound)
	}

	updated := existing
	updated.FirstName = u.FirstName
	updated.LastName = u.LastName
	updated.Position = u.Position
	updated.LibraryCardNumber = u.LibraryCardNumber
	updated.Privilege = u.Privilege
	updated.Notes = u.Notes

	if err := a.store.UpdateUser(updated); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// DeleteUser physically removes a user. There is no soft-delete state for
// users.
func (a *App) DeleteUser(id int64) error {
	if id <= 0 {
		return fmt.Errorf("user ID must be greater than zero: %w", ErrInvalidArgument)
	}
	_, ok, err := a.store.GetUser(id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return fmt.Errorf("user with ID %d was not found: %w", id, ErrNotFound)
	}
	if err := a.store.DeleteUser(id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
