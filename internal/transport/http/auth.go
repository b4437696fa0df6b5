package http

import (
	"encoding/json"
	"net/http"

	"hotel-admin-service/internal/middleware"
)

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// handleLogin: POST /admins/login.
// Ответ: {admin, accessToken, refreshToken}.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req); err != nil {
		badRequest(w)
		return
	}

	session, err := s.service.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"admin":        toAdminView(session.Admin),
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
	})
}

// handleRefresh: POST /admins/refresh.
// Ответ: {accessToken}.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req); err != nil {
		badRequest(w)
		return
	}

	token, err := s.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": token.Token,
	})
}

// handleLogout: POST /admins/logout.
// ID учётной записи берётся из проверенного access-токена (прослойка auth).
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	message, err := s.service.Logout(r.Context(), adminID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
