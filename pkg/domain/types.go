package domain

import "time"

// StatusDeleted is the marker stored on soft-deleted books. The read path
// excludes any book whose status contains this substring.
const StatusDeleted = "Deleted"

// Book is a catalog record. Status, Reason, and Language are nullable in
// storage; the empty string stands in for null here.
type Book struct {
	ID           int64     `json:"bookId"`
	Category     string    `json:"category"`
	Title        string    `json:"title"`
	ISBN         string    `json:"isbn"`
	Author       string    `json:"author"`
	Publisher    string    `json:"publisher"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	PurchaseDate time.Time `json:"purchaseDate"`
	Price        float64   `json:"price"`
	TotalBook    int       `json:"totalBook"`
	Status       string    `json:"status,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	Language     string    `json:"language,omitempty"`
}

// User is a library member or staff record.
type User struct {
	ID                int64  `json:"userId"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Position          string `json:"position"`
	Privilege         string `json:"privilege,omitempty"`
	LibraryCardNumber string `json:"libraryCardNumber,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// BookSummary is the list-view projection of a book. It omits price,
// purchase date, and the soft-delete bookkeeping fields.
type BookSummary struct {
	ID          int64  `json:"bookId"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	ISBN        string `json:"isbn"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	Description string `json:"description"`
	Location    string `json:"location"`
	TotalBook   int    `json:"totalBook"`
	Language    string `json:"language,omitempty"`
}

// BookDetail is the single-item projection. Unlike the list view it
// includes the price.
type BookDetail struct {
	BookSummary
	Price float64 `json:"price"`
}

// SummaryOf projects a book to its list-view shape.
func SummaryOf(b Book) BookSummary {
	return BookSummary{
		ID:          b.ID,
		Category:    b.Category,
		Title:       b.Title,
		ISBN:        b.ISBN,
		Author:      b.Author,
		Publisher:   b.Publisher,
		Description: b.Description,
		Location:    b.Location,
		TotalBook:   b.TotalBook,
		Language:    b.Language,
	}
}

// DetailOf projects a book to its single-item shape.
func DetailOf(b Book) BookDetail {
	return BookDetail{BookSummary: SummaryOf(b), Price: b.Price}
}

// Paged carries a total match count computed before paging plus one
// page-sized slice of results.
type Paged[T any] struct {
	Total int `json:"total"`
	Data  []T `json:"data"`
}
