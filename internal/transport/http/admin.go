package http

import (
	"encoding/json"
	"net/http"

	"hotel-admin-service/internal/service"
)

type createAdminRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type updateAdminRequest struct {
	Name        *string `json:"name"`
	OldPassword string  `json:"oldPassword"`
	NewPassword string  `json:"newPassword"`
}

// handleCreateAdmin: POST /admins.
func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req); err != nil {
		badRequest(w)
		return
	}

	admin, err := s.service.CreateAdmin(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAdminView(*admin))
}

// handleListAdmins: GET /admins?page&limit&name.
func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	list, err := s.service.ListAdmins(r.Context(),
		queryInt64(r, "page"),
		queryInt64(r, "limit"),
		r.URL.Query().Get("name"),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]adminView, 0, len(list.Items))
	for _, a := range list.Items {
		data = append(data, toAdminView(a))
	}

	writeJSON(w, http.StatusOK, listView{
		Total: list.Total,
		Page:  list.Page,
		Limit: list.Limit,
		Data:  data,
	})
}

// handleGetAdmin: GET /admins/{id}.
func (s *Server) handleGetAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w)
		return
	}

	admin, err := s.service.AdminByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAdminView(*admin))
}

// handleUpdateAdmin: PATCH /admins/{id}.
func (s *Server) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w)
		return
	}

	var req updateAdminRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req); err != nil {
		badRequest(w)
		return
	}

	admin, err := s.service.UpdateAdmin(r.Context(), id, service.UpdateAdminParams{
		Name:        req.Name,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAdminView(*admin))
}
