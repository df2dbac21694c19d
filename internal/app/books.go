package app

import (
	"fmt"
	"strings"

	"librarysvc/internal/query"
	"librarysvc/pkg/domain"
)

// AddBook inserts a new book after checking that no visible book carries the
// same ISBN or title (case-insensitive). The check and the insert are not one
// atomic step; the database does not enforce the uniqueness on its own.
func (a *App) AddBook(b domain.Book) (domain.Book, error) {
	existing, err := a.store.ListBooks()
	if err != nil {
		return domain.Book{}, fmt.Errorf("list books: %w", err)
	}
	for _, other := range existing {
		if strings.EqualFold(other.ISBN, b.ISBN) || strings.EqualFold(other.Title, b.Title) {
			return domain.Book{}, fmt.Errorf("a book with the same ISBN or title already exists: %w", ErrConflict)
		}
	}
	added, err := a.store.AddBook(b)
	if err != nil {
		return domain.Book{}, fmt.Errorf("add book: %w", err)
	}
	return added, nil
}

// ListBooks returns one page of book summaries. The title sort runs after
// the page is taken, so it orders the returned page only.
func (a *App) ListBooks(page query.Page) ([]domain.BookSummary, error) {
	if page.Number <= 0 || page.Size <= 0 {
		return nil, fmt.Errorf("page number and page size must be greater than zero: %w", ErrInvalidArgument)
	}
	books, err := a.store.ListBooks()
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("no books found: %w", ErrNotFound)
	}
	summaries := make([]domain.BookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, domain.SummaryOf(b))
	}
	pageItems := query.Paginate(summaries, page)
	query.SortSummariesByTitle(pageItems)
	return pageItems, nil
}

// ListAllBooks returns every visible book without pagination.
func (a *App) ListAllBooks() ([]domain.Book, error) {
	books, err := a.store.ListBooks()
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

// GetBook returns the detail view of one book, including price.
func (a *App) GetBook(id int64) (domain.BookDetail, error) {
	if id <= 0 {
		return domain.BookDetail{}, fmt.Errorf("book ID must be greater than zero: %w", ErrInvalidArgument)
	}
	book, ok, err := a.store.GetBook(id)
	if err != nil {
		return domain.BookDetail{}, fmt.Errorf("get book: %w", err)
	}
	if !ok {
		return domain.BookDetail{}, fmt.Errorf("book with ID %d was not found: %w", id, ErrNotFound)
	}
	return domain.DetailOf(book), nil
}

// UpdateBook overwrites the mutable fields of an existing book. When the
// title or ISBN changed, it re-checks for duplicates among visible books.
// The ID guard in the duplicate expression applies to the title clause only;
// the ISBN clause matches any row including the one being updated. That
// asymmetry is part of the operation's contract.
func (a *App) UpdateBook(id int64, b domain.Book) error {
	if id <= 0 {
		return fmt.Errorf("book ID must be greater than zero: %w", ErrInvalidArgument)
	}
	existing, ok, err := a.store.GetBook(id)
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}
	if !ok {
		return fmt.Errorf("book with ID %d was not found: %w", id, ErrNotFound)
	}

	titleChanged := !strings.EqualFold(existing.Title, b.Title)
	isbnChanged := !strings.EqualFold(existing.ISBN, b.ISBN)

	if titleChanged || isbnChanged {
		all, err := a.store.ListBooks()
		if err != nil {
			return fmt.Errorf("list books: %w", err)
		}
		for _, other := range all {
			if (isbnChanged && strings.EqualFold(other.ISBN, b.ISBN)) ||
				(titleChanged && strings.EqualFold(other.Title, b.Title) && other.ID != id) {
				return fmt.Errorf("duplicate ISBN or title found: %w", ErrConflict)
			}
		}
	}

	updated := existing
	updated.Category = b.Category
	updated.Title = b.Title
	updated.ISBN = b.ISBN
	updated.Publisher = b.Publisher
	updated.Author = b.Author
	updated.Description = b.Description
	updated.Location = b.Location
	updated.Price = b.Price
	updated.TotalBook = b.TotalBook
	updated.Language = b.Language

	if err := a.store.UpdateBook(updated); err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// SoftDeleteBook marks a book deleted and records the reason. The row stays
// in storage; only the filtered read path stops returning it.
func (a *App) SoftDeleteBook(id int64, reason string) error {
	if id <= 0 {
		return fmt.Errorf("book ID must be greater than zero: %w", ErrInvalidArgument)
	}
	if reason == "" {
		return fmt.Errorf("the reason should not be empty: %w", ErrInvalidArgument)
	}
	existing, ok, err := a.store.GetBook(id)
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}
	if !ok {
		return fmt.Errorf("book with ID %d was not found: %w", id, ErrNotFound)
	}

	existing.Status = domain.StatusDeleted
	existing.Reason = reason
	if err := a.store.UpdateBook(existing); err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// RemoveBook physically deletes a book row. It resolves the ID through the
// filtered read path, so an already soft-deleted book cannot be purged.
func (a *App) RemoveBook(id int64) error {
	if id <= 0 {
		return fmt.Errorf("book ID must be greater than zero: %w", ErrInvalidArgument)
	}
	_, ok, err := a.store.GetBook(id)
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}
	if !ok {
		return fmt.Errorf("book with ID %d was not found: %w", id, ErrNotFound)
	}
	if err := a.store.DeleteBook(id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// SearchBooks runs the field-based filter chain and returns one page of
// summaries. An empty store yields an empty result, not an error.
func (a *App) SearchBooks(f query.Filters, page query.Page) ([]domain.BookSummary, error) {
	if page.Number <= 0 || page.Size <= 0 {
		return nil, fmt.Errorf("pagination parameters should be greater than zero: %w", ErrInvalidArgument)
	}
	books, err := a.store.ListBooks()
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if len(books) == 0 {
		return []domain.BookSummary{}, nil
	}
	filtered := query.ApplyFilters(books, f)
	pageBooks := query.Paginate(filtered, page)
	summaries := make([]domain.BookSummary, 0, len(pageBooks))
	for _, b := range pageBooks {
		summaries = append(summaries, domain.SummaryOf(b))
	}
	query.SortSummariesByTitle(summaries)
	return summaries, nil
}

// QueryBooks runs the advanced search pipeline and returns full entities
// with the total match count.
func (a *App) QueryBooks(c query.Criteria) (domain.Paged[domain.Book], error) {
	if c.PageNumber <= 0 || c.PageSize <= 0 {
		return domain.Paged[domain.Book]{}, fmt.Errorf("page number and page size must be greater than zero: %w", ErrInvalidArgument)
	}
	books, err := a.store.ListBooks()
	if err != nil {
		return domain.Paged[domain.Book]{}, fmt.Errorf("list books: %w", err)
	}
	return query.Run(books, c), nil
}
