package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"librarysvc/internal/query"
	"librarysvc/pkg/domain"
)

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleAddUser(w, r)
	case http.MethodGet:
		s.handleListUsers(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /api/v1/users/noPages or /api/v1/users/{id}
func (s *Server) handleUserByPath(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, apiPrefix+"/users/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if path == "noPages" {
		s.handleListUsersNoPages(w, r)
		return
	}

	id := parseID(path)
	switch r.Method {
	case http.MethodGet:
		s.handleGetUser(w, id)
	case http.MethodPut:
		s.handleUpdateUser(w, r, id)
	case http.MethodDelete:
		s.handleDeleteUser(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	if !s.allowWrite(w, r) {
		return
	}
	var user domain.User
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	added, err := s.app.AddUser(user)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user added successfully",
		"user":    added,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page := query.Page{
		Number: intQuery(r, "pageNumber", query.DefaultPageNumber),
		Size:   intQuery(r, "pageSize", query.DefaultPageSize),
	}
	users, err := s.app.ListUsers(page)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleListUsersNoPages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	users, err := s.app.ListAllUsers()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, id int64) {
	user, err := s.app.GetUser(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, id int64) {
	if !s.allowWrite(w, r) {
		return
	}
	var user domain.User
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.app.UpdateUser(id, user); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user updated successfully"})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, id int64) {
	if !s.allowWrite(w, r) {
		return
	}
	if err := s.app.DeleteUser(id); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
}
