package http

import (
	"encoding/json"
	"net/http"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// handleCreateCategory: POST /categories.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req); err != nil {
		badRequest(w)
		return
	}

	category, err := s.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryView(*category))
}

// handleListCategories: GET /categories?page&limit&name.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.service.ListCategories(r.Context(),
		queryInt64(r, "page"),
		queryInt64(r, "limit"),
		r.URL.Query().Get("name"),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]categoryView, 0, len(list.Items))
	for _, c := range list.Items {
		data = append(data, toCategoryView(c))
	}

	writeJSON(w, http.StatusOK, listView{
		Total: list.Total,
		Page:  list.Page,
		Limit: list.Limit,
		Data:  data,
	})
}

// handleGetCategory: GET /categories/{id}.
func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w)
		return
	}

	category, err := s.service.CategoryByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryView(*category))
}

// handleUpdateCategory: PATCH /categories/{id}.
func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w)
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req); err != nil {
		badRequest(w)
		return
	}

	category, err := s.service.UpdateCategory(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryView(*category))
}

// handleDeleteCategory: DELETE /categories/{id}.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w)
		return
	}

	if err := s.service.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
