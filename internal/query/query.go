// Package query implements the filter/sort/paginate pipeline shared by the
// book and user listing paths. Filters compose as successive case-insensitive
// substring predicates over an in-memory candidate set the entity store has
// already screened for soft deletion.
package query

import (
	"sort"
	"strconv"
	"strings"

	"librarysvc/pkg/domain"
)

// Defaults applied by the HTTP layer when a caller omits the field entirely.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	DefaultSortBy     = "bookId"
	DefaultSortOrder  = "asc"
)

// Criteria is the advanced search request: every field is optional except
// pagination, which the caller is expected to fill (absent values default at
// the HTTP layer, explicit non-positive values are rejected by the service).
type Criteria struct {
	Keyword    string
	BookID     *int64
	Title      string
	Author     string
	ISBN       string
	Category   string
	Language   string
	SortBy     string
	SortOrder  string
	PageNumber int
	PageSize   int
}

// Filters is the field-based search request used by the search endpoint.
// LogicOperator selects "AND" (default) or "OR" combination of the present
// fields.
type Filters struct {
	Title         string
	Author        string
	ISBN          string
	Category      string
	Language      string
	LogicOperator string
}

// Page addresses one slice of a result set. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Run executes the advanced pipeline over the candidate set: keyword filter,
// per-field filters, total count, sort dispatch, pagination. The total is
// captured after filtering and before paging.
func Run(books []domain.Book, c Criteria) domain.Paged[domain.Book] {
	filtered := books

	if c.Keyword != "" {
		kw := strings.ToLower(c.Keyword)
		filtered = where(filtered, func(b domain.Book) bool {
			return strings.Contains(strings.ToLower(b.Title), kw) ||
				strings.Contains(strings.ToLower(b.Author), kw) ||
				strings.Contains(strings.ToLower(b.ISBN), kw) ||
				strings.Contains(strconv.FormatInt(b.ID, 10), c.Keyword)
		})
	}

	if c.BookID != nil {
		filtered = where(filtered, func(b domain.Book) bool { return b.ID == *c.BookID })
	}
	filtered = containsChain(filtered, Filters{
		Title:    c.Title,
		Author:   c.Author,
		ISBN:     c.ISBN,
		Category: c.Category,
		Language: c.Language,
	})

	total := len(filtered)

	filtered = sortBooks(filtered, c.SortBy, c.SortOrder)

	return domain.Paged[domain.Book]{
		Total: total,
		Data:  Paginate(filtered, Page{Number: c.PageNumber, Size: c.PageSize}),
	}
}

// ApplyFilters narrows the candidate set with each present field filter in
// sequence. When the logic operator is "OR" (case-insensitive) the chain is
// re-run against a fresh copy of the unfiltered set; each filter still
// narrows the previous step's output, so the selected rows match the AND
// path rather than a union across fields.
func ApplyFilters(books []domain.Book, f Filters) []domain.Book {
	filtered := containsChain(books, f)
	if strings.EqualFold(f.LogicOperator, "OR") {
		filtered = containsChain(books, f)
	}
	return filtered
}

// Paginate returns the page-sized slice at the given 1-based page number.
// A skip past the end yields an empty page, not an error.
func Paginate[T any](items []T, p Page) []T {
	skip := (p.Number - 1) * p.Size
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	end := skip + p.Size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-skip)
	copy(out, items[skip:end])
	return out
}

// SortSummariesByTitle orders a page of summaries by title ascending. The
// listing paths apply it after pagination, so it only rearranges the
// returned page, never which items were selected.
func SortSummariesByTitle(items []domain.BookSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Title < items[j].Title
	})
}

func containsChain(books []domain.Book, f Filters) []domain.Book {
	filtered := books
	if f.Title != "" {
		filtered = whereContains(filtered, f.Title, func(b domain.Book) string { return b.Title })
	}
	if f.Author != "" {
		filtered = whereContains(filtered, f.Author, func(b domain.Book) string { return b.Author })
	}
	if f.ISBN != "" {
		filtered = whereContains(filtered, f.ISBN, func(b domain.Book) string { return b.ISBN })
	}
	if f.Category != "" {
		filtered = whereContains(filtered, f.Category, func(b domain.Book) string { return b.Category })
	}
	if f.Language != "" {
		filtered = whereContains(filtered, f.Language, func(b domain.Book) string { return b.Language })
	}
	return filtered
}

// sortBooks dispatches on the sort field name, matched case-insensitively
// against title/author/isbn. Any other non-blank value sorts by ID, and in
// that branch the order comparison is an exact match against "asc" instead
// of a case-insensitive one. A blank sort field leaves the filter order
// untouched.
func sortBooks(books []domain.Book, sortBy, sortOrder string) []domain.Book {
	if strings.TrimSpace(sortBy) == "" {
		return books
	}
	sorted := make([]domain.Book, len(books))
	copy(sorted, books)
	asc := strings.EqualFold(sortOrder, "asc")
	var less func(a, b domain.Book) bool
	switch strings.ToLower(sortBy) {
	case "title":
		less = func(a, b domain.Book) bool { return a.Title < b.Title }
	case "author":
		less = func(a, b domain.Book) bool { return a.Author < b.Author }
	case "isbn":
		less = func(a, b domain.Book) bool { return a.ISBN < b.ISBN }
	default:
		asc = sortOrder == "asc"
		less = func(a, b domain.Book) bool { return a.ID < b.ID }
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if asc {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

func where(books []domain.Book, pred func(domain.Book) bool) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if pred(b) {
			out = append(out, b)
		}
	}
	return out
}

func whereContains(books []domain.Book, needle string, field func(domain.Book) string) []domain.Book {
	needle = strings.ToLower(needle)
	return where(books, func(b domain.Book) bool {
		return strings.Contains(strings.ToLower(field(b)), needle)
	})
}
