package http

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"hotel-admin-service/internal/service"
)

// handleCreateRoom: POST /rooms (multipart/form-data).
// Поля: title, description, price, categoryId, amenities (через запятую),
// файлы — images.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	form, ok := s.parseMultipart(w, r)
	if !ok {
		return
	}

	price, err := strconv.ParseInt(formValue(form, "price"), 10, 64)
	if err != nil {
		badRequest(w)
		return
	}

	categoryID, err := strconv.ParseInt(formValue(form, "categoryId"), 10, 64)
	if err != nil {
		badRequest(w)
		return
	}

	images, ok := s.readImages(w, form)
	if !ok {
		return
	}

	room, err := s.service.CreateRoom(r.Context(), service.CreateRoomParams{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Price:       price,
		CategoryID:  categoryID,
		Amenities:   splitCSV(formValue(form, "amenities")),
		Images:      images,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRoomView(*room))
}

// handleListRooms: GET /rooms?page&limit&title&categoryId.
func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	list, err := s.service.ListRooms(r.Context(),
		queryInt64(r, "page"),
		queryInt64(r, "limit"),
		r.URL.Query().Get("title"),
		queryInt64(r, "categoryId"),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]roomView, 0, len(list.Items))
	for _, room := range list.Items {
		data = append(data, toRoomView(room))
	}

	writeJSON(w, http.StatusOK, listView{
		Total: list.Total,
		Page:  list.Page,
		Limit: list.Limit,
		Data:  data,
	})
}

// handleGetRoom: GET /rooms/{id}.
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w)
		return
	}

	room, err := s.service.RoomByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRoomView(*room))
}

// handleUpdateRoom: PATCH /rooms/{id} (multipart/form-data).
// Все поля опциональны; deleteImages — ID изображений через запятую,
// новые файлы — images.
func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w)
		return
	}

	form, ok := s.parseMultipart(w, r)
	if !ok {
		return
	}

	var params service.UpdateRoomParams

	if v, ok := formLookup(form, "title"); ok {
		params.Title = &v
	}
	if v, ok := formLookup(form, "description"); ok {
		params.Description = &v
	}
	if v, ok := formLookup(form, "price"); ok {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequest(w)
			return
		}
		params.Price = &price
	}
	if v, ok := formLookup(form, "categoryId"); ok {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequest(w)
			return
		}
		params.CategoryID = &categoryID
	}
	if v, ok := formLookup(form, "amenities"); ok {
		params.Amenities = splitCSV(v)
	}
	if v, ok := formLookup(form, "deleteImages"); ok {
		for _, raw := range splitCSV(v) {
			imageID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				badRequest(w)
				return
			}
			params.DeleteImages = append(params.DeleteImages, imageID)
		}
	}

	images, ok := s.readImages(w, form)
	if !ok {
		return
	}
	params.AddImages = images

	room, err := s.service.UpdateRoom(r.Context(), id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRoomView(*room))
}

// handleDeleteRoom: DELETE /rooms/{id}.
func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w)
		return
	}

	if err := s.service.DeleteRoom(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Room deleted"})
}

// parseMultipart читает multipart-форму с ограничением на размер тела.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) (*multipart.Form, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	if err := r.ParseMultipartForm(s.maxBody); err != nil {
		badRequest(w)
		return nil, false
	}

	return r.MultipartForm, true
}

// readImages вычитывает файлы поля images в память.
// Ограничения на тип/размер каждого файла применяет хранилище изображений.
func (s *Server) readImages(w http.ResponseWriter, form *multipart.Form) ([]service.ImageUpload, bool) {
	var images []service.ImageUpload

	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			badRequest(w)
			return nil, false
		}

		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			badRequest(w)
			return nil, false
		}

		images = append(images, service.ImageUpload{
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return images, true
}

func formValue(form *multipart.Form, name string) string {
	if vs := form.Value[name]; len(vs) > 0 {
		return vs[0]
	}

	return ""
}

func formLookup(form *multipart.Form, name string) (string, bool) {
	if vs := form.Value[name]; len(vs) > 0 {
		return vs[0], true
	}

	return "", false
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
