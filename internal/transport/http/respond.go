package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/pkg/log"
	"hotel-admin-service/internal/service"

	"github.com/go-chi/chi/v5"
)

// adminView — представление администратора в ответах API.
type adminView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAdminView(a models.Admin) adminView {
	return adminView{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type categoryView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCategoryView(c models.Category) categoryView {
	return categoryView{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type imageView struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type roomView struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       int64         `json:"price"`
	CategoryID  int64         `json:"categoryId"`
	Amenities   []string      `json:"amenities"`
	Images      []imageView   `json:"images"`
	Category    *categoryView `json:"category,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func toRoomView(room models.Room) roomView {
	v := roomView{
		ID:          room.ID,
		Title:       room.Title,
		Description: room.Description,
		Price:       room.Price,
		CategoryID:  room.CategoryID,
		Amenities:   room.Amenities,
		Images:      make([]imageView, 0, len(room.Images)),
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}

	if v.Amenities == nil {
		v.Amenities = []string{}
	}

	for _, img := range room.Images {
		v.Images = append(v.Images, imageView{ID: img.ID, URL: img.URL})
	}

	if room.Category != nil {
		c := toCategoryView(*room.Category)
		v.Category = &c
	}

	return v
}

// listView — общий конверт постраничных ответов.
type listView struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Data  any   `json:"data"`
}

// writeJSON сериализует payload с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError маппит доменную ошибку на HTTP-статус. Внутренние ошибки
// логируются и уходят клиенту с нейтральным сообщением.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, service.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already exists"})
	case errors.Is(err, service.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid argument"})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrNoActiveSession),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenInvalidated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	default:
		log.From(r.Context()).Error("internal_error", slog.String("err", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// badRequest — ответ на синтаксически некорректный запрос.
func badRequest(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
}

// idParam извлекает положительный целочисленный параметр {id} маршрута.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// queryInt64 читает целочисленный query-параметр; 0 — отсутствие.
func queryInt64(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}

	return v
}
