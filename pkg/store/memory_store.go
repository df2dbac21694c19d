package store

import (
	"strings"
	"sync"

	"librarysvc/pkg/domain"
)

// MemoryStore keeps records in-process. It backs unit tests and local runs
// without a database, and mirrors the soft-delete visibility rules of the
// Postgres store.
type MemoryStore struct {
	mu         sync.RWMutex
	books      map[int64]domain.Book
	users      map[int64]domain.User
	bookOrder  []int64
	userOrder  []int64
	nextBookID int64
	nextUserID int64
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books: make(map[int64]domain.Book),
		users: make(map[int64]domain.User),
	}
}

// AddBook assigns the next surrogate key and stores the book.
func (m *MemoryStore) AddBook(b domain.Book) (domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextBookID++
	b.ID = m.nextBookID
	m.books[b.ID] = b
	m.bookOrder = append(m.bookOrder, b.ID)
	return b, nil
}

// ListBooks returns non-deleted books in insertion order.
func (m *MemoryStore) ListBooks() ([]domain.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Book, 0, len(m.bookOrder))
	for _, id := range m.bookOrder {
		if b, ok := m.books[id]; ok && !isDeleted(b) {
			res = append(res, b)
		}
	}
	return res, nil
}

// GetBook retrieves a book by ID, excluding soft-deleted rows.
func (m *MemoryStore) GetBook(id int64) (domain.Book, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	if !ok || isDeleted(b) {
		return domain.Book{}, false, nil
	}
	return b, true, nil
}

// GetBookAnyStatus retrieves a book by ID regardless of soft-delete state.
func (m *MemoryStore) GetBookAnyStatus(id int64) (domain.Book, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	return b, ok, nil
}

// UpdateBook replaces a stored book.
func (m *MemoryStore) UpdateBook(b domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; !ok {
		m.bookOrder = append(m.bookOrder, b.ID)
	}
	m.books[b.ID] = b
	return nil
}

// DeleteBook physically removes a book.
func (m *MemoryStore) DeleteBook(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, id)
	filtered := m.bookOrder[:0]
	for _, item := range m.bookOrder {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.bookOrder = filtered
	return nil
}

// AddUser assigns the next surrogate key and stores the user.
func (m *MemoryStore) AddUser(u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUserID++
	u.ID = m.nextUserID
	m.users[u.ID] = u
	m.userOrder = append(m.userOrder, u.ID)
	return u, nil
}

// ListUsers returns users in insertion order.
func (m *MemoryStore) ListUsers() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		if u, ok := m.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

// GetUser retrieves a user by ID.
func (m *MemoryStore) GetUser(id int64) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// UpdateUser replaces a stored user.
func (m *MemoryStore) UpdateUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		m.userOrder = append(m.userOrder, u.ID)
	}
	m.users[u.ID] = u
	return nil
}

// DeleteUser physically removes a user.
func (m *MemoryStore) DeleteUser(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	filtered := m.userOrder[:0]
	for _, item := range m.userOrder {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.userOrder = filtered
	return nil
}

// isDeleted mirrors the SQL read filter: a substring match on a nullable
// status, where null (empty) means not deleted.
func isDeleted(b domain.Book) bool {
	return strings.Contains(b.Status, domain.StatusDeleted)
}
