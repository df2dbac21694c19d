package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"librarysvc/internal/query"
	"librarysvc/pkg/domain"
)

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleAddBook(w, r)
	case http.MethodGet:
		s.handleListBooks(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /api/v1/books/noPages, /api/v1/books/search, /api/v1/books/query,
// /api/v1/books/{id}, /api/v1/books/{id}/purge
func (s *Server) handleBookByPath(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, apiPrefix+"/books/")
	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	if head == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if len(parts) == 1 {
		switch head {
		case "noPages":
			s.handleListBooksNoPages(w, r)
			return
		case "search":
			s.handleSearchBooks(w, r)
			return
		case "query":
			s.handleQueryBooks(w, r)
			return
		}
		s.handleBookByID(w, r, parseID(head))
		return
	}

	if parts[1] == "purge" {
		s.handlePurgeBook(w, r, parseID(head))
		return
	}
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) handleBookByID(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetBook(w, id)
	case http.MethodPut:
		s.handleUpdateBook(w, r, id)
	case http.MethodDelete:
		s.handleDeleteBook(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	if !s.allowWrite(w, r) {
		return
	}
	var book domain.Book
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	added, err := s.app.AddBook(book)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "book added successfully",
		"book":    added,
	})
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	page := query.Page{
		Number: intQuery(r, "pageNumber", query.DefaultPageNumber),
		Size:   intQuery(r, "pageSize", query.DefaultPageSize),
	}
	books, err := s.app.ListBooks(page)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleListBooksNoPages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	books, err := s.app.ListAllBooks()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleGetBook(w http.ResponseWriter, id int64) {
	book, err := s.app.GetBook(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request, id int64) {
	if !s.allowWrite(w, r) {
		return
	}
	var book domain.Book
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.app.UpdateBook(id, book); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "book updated successfully"})
}

type deleteBookRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request, id int64) {
	if !s.allowWrite(w, r) {
		return
	}
	var req deleteBookRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.app.SoftDeleteBook(id, req.Reason); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "book deleted successfully"})
}

func (s *Server) handlePurgeBook(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	if !s.allowWrite(w, r) {
		return
	}
	if err := s.app.RemoveBook(id); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "book removed successfully"})
}

func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	filters := query.Filters{
		Title:         stringQuery(r, "title", ""),
		Author:        stringQuery(r, "author", ""),
		ISBN:          stringQuery(r, "isbn", ""),
		Category:      stringQuery(r, "category", ""),
		Language:      stringQuery(r, "language", ""),
		LogicOperator: stringQuery(r, "logicOperator", ""),
	}
	page := query.Page{
		Number: intQuery(r, "pageNumber", query.DefaultPageNumber),
		Size:   intQuery(r, "pageSize", query.DefaultPageSize),
	}
	books, err := s.app.SearchBooks(filters, page)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleQueryBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	criteria := query.Criteria{
		Keyword:    stringQuery(r, "keyword", ""),
		Title:      stringQuery(r, "title", ""),
		Author:     stringQuery(r, "author", ""),
		ISBN:       stringQuery(r, "isbn", ""),
		Category:   stringQuery(r, "category", ""),
		Language:   stringQuery(r, "language", ""),
		SortBy:     stringQuery(r, "sortBy", query.DefaultSortBy),
		SortOrder:  stringQuery(r, "sortOrder", query.DefaultSortOrder),
		PageNumber: intQuery(r, "pageNumber", query.DefaultPageNumber),
		PageSize:   intQuery(r, "pageSize", query.DefaultPageSize),
	}
	if raw := stringQuery(r, "bookId", ""); raw != "" {
		id := parseID(raw)
		criteria.BookID = &id
	}
	result, err := s.app.QueryBooks(criteria)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
