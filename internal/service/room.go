package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/pkg/log"
	"hotel-admin-service/internal/storage"

	"github.com/google/uuid"
)

// ImageUpload — содержимое одного загружаемого изображения.
// Валидация типа и размера выполняется адаптером объектного хранилища.
type ImageUpload struct {
	ContentType string
	Data        []byte
}

// CreateRoomParams — поля нового номера.
type CreateRoomParams struct {
	Title       string
	Description string
	Price       int64
	CategoryID  int64
	Amenities   []string
	Images      []ImageUpload
}

// UpdateRoomParams — изменяемые поля номера. nil-поле не меняется.
type UpdateRoomParams struct {
	Title        *string
	Description  *string
	Price        *int64
	CategoryID   *int64
	Amenities    []string
	AddImages    []ImageUpload
	DeleteImages []int64
}

// CreateRoom создаёт номер в существующей категории и сохраняет
// приложенные изображения в объектном хранилище.
func (s *Service) CreateRoom(ctx context.Context, p CreateRoomParams) (*models.Room, error) {
	const op = "service.room.CreateRoom"

	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" || p.Price < 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if _, err := s.storage.CategoryByID(ctx, p.CategoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	room := &models.Room{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Amenities:   p.Amenities,
	}

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachImages(ctx, room.ID, p.Images); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.RoomByID(ctx, room.ID)
}

// ListRooms возвращает страницу номеров с фильтрами по заголовку и категории.
func (s *Service) ListRooms(ctx context.Context, page, limit int64, title string, categoryID int64) (*models.RoomList, error) {
	const op = "service.room.ListRooms"

	page, limit = normalizePage(page, limit)

	items, total, err := s.storage.ListRooms(ctx, storage.RoomFilter{
		Limit:      limit,
		Offset:     (page - 1) * limit,
		Title:      strings.TrimSpace(title),
		CategoryID: categoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.RoomList{
		Total: total,
		Page:  page,
		Limit: limit,
		Items: items,
	}, nil
}

// RoomByID возвращает номер вместе с категорией и изображениями.
func (s *Service) RoomByID(ctx context.Context, id int64) (*models.Room, error) {
	const op = "service.room.RoomByID"

	room, err := s.storage.RoomByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

// UpdateRoom изменяет поля номера, удаляет перечисленные изображения
// и добавляет новые.
func (s *Service) UpdateRoom(ctx context.Context, id int64, p UpdateRoomParams) (*models.Room, error) {
	const op = "service.room.UpdateRoom"

	room, err := s.storage.RoomByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.CategoryID != nil {
		if _, err := s.storage.CategoryByID(ctx, *p.CategoryID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}
		room.CategoryID = *p.CategoryID
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		room.Title = title
	}
	if p.Description != nil {
		room.Description = *p.Description
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		room.Price = *p.Price
	}
	if p.Amenities != nil {
		room.Amenities = p.Amenities
	}

	if err := s.deleteImages(ctx, room.ID, p.DeleteImages); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachImages(ctx, room.ID, p.AddImages); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateRoom(ctx, room); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.RoomByID(ctx, room.ID)
}

// DeleteRoom удаляет номер вместе с объектами изображений.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	const op = "service.room.DeleteRoom"

	lg := log.From(ctx)

	room, err := s.storage.RoomByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	// Сначала объекты: осиротевший объект в бакете безопаснее, чем запись
	// об изображении без объекта.
	for _, img := range room.Images {
		if s.images == nil {
			break
		}
		if err := s.images.RemoveObject(ctx, img.ObjectKey); err != nil {
			lg.Warn("room_image_remove_failed",
				slog.String("op", op),
				slog.String("key", img.ObjectKey),
				slog.String("err", err.Error()),
			)
		}
	}

	if err := s.storage.DeleteRoom(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// attachImages сохраняет изображения в объектное хранилище и регистрирует
// их в БД. Ключ объекта: rooms/<roomID>/<uuid><ext>.
func (s *Service) attachImages(ctx context.Context, roomID int64, images []ImageUpload) error {
	const op = "service.room.attachImages"

	if len(images) == 0 {
		return nil
	}

	if s.images == nil {
		return fmt.Errorf("%s: image storage is not configured: %w", op, ErrInvalidArgument)
	}

	for _, img := range images {
		key := path.Join("rooms", fmt.Sprintf("%d", roomID), uuid.NewString()+extByContentType(img.ContentType))

		url, err := s.images.SaveObject(ctx, key, img.ContentType, img.Data)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidUpload) {
				return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.storage.AddRoomImage(ctx, &models.RoomImage{
			RoomID:    roomID,
			ObjectKey: key,
			URL:       url,
		}); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// deleteImages удаляет изображения по ID, проверяя принадлежность номеру.
func (s *Service) deleteImages(ctx context.Context, roomID int64, ids []int64) error {
	const op = "service.room.deleteImages"

	lg := log.From(ctx)

	for _, imageID := range ids {
		img, err := s.storage.RoomImageByID(ctx, imageID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if img.RoomID != roomID {
			return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		if s.images != nil {
			if err := s.images.RemoveObject(ctx, img.ObjectKey); err != nil {
				lg.Warn("room_image_remove_failed",
					slog.String("op", op),
					slog.String("key", img.ObjectKey),
					slog.String("err", err.Error()),
				)
			}
		}

		if err := s.storage.DeleteRoomImage(ctx, imageID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// extByContentType возвращает расширение файла по MIME-типу.
func extByContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
