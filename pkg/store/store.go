package store

import "librarysvc/pkg/domain"

// Store defines persistence operations for books and users.
//
// The book read path (ListBooks, GetBook) excludes soft-deleted rows: any
// book whose status contains "Deleted" is invisible there. GetBookAnyStatus
// bypasses the exclusion so soft-deleted rows stay inspectable with their
// status and reason.
type Store interface {
	// books
	AddBook(domain.Book) (domain.Book, error)
	ListBooks() ([]domain.Book, error)
	GetBook(id int64) (domain.Book, bool, error)
	GetBookAnyStatus(id int64) (domain.Book, bool, error)
	UpdateBook(domain.Book) error
	DeleteBook(id int64) error

	// users
	AddUser(domain.User) (domain.User, error)
	ListUsers() ([]domain.User, error)
	GetUser(id int64) (domain.User, bool, error)
	UpdateUser(domain.User) error
	DeleteUser(id int64) error
}
