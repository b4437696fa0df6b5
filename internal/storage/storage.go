package storage

import (
	"context"
	"errors"

	"hotel-admin-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена (админ/категория/номер/изображение).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (имя админа/категории, ключ объекта).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidUpload — загружаемый объект не проходит ограничения
	// по типу или размеру.
	ErrInvalidUpload = errors.New("invalid upload")
)

// ListParams — параметры постраничной выборки с фильтром по имени.
// Limit/Offset уже нормализованы сервисным слоем.
type ListParams struct {
	Limit  int64
	Offset int64
	Name   string
}

// RoomFilter — параметры выборки номеров.
// CategoryID == 0 означает отсутствие фильтра по категории.
type RoomFilter struct {
	Limit      int64
	Offset     int64
	Title      string
	CategoryID int64
}

// AdminStorage выполняет операции над учётными записями администраторов.
type AdminStorage interface {
	// SaveAdmin создаёт администратора и заполняет ID/таймстемпы.
	SaveAdmin(ctx context.Context, admin *models.Admin) error
	// AdminByName находит администратора по имени.
	AdminByName(ctx context.Context, name string) (*models.Admin, error)
	// AdminByID находит администратора по ID.
	AdminByID(ctx context.Context, id int64) (*models.Admin, error)
	// ListAdmins возвращает страницу администраторов и общее число записей.
	ListAdmins(ctx context.Context, p ListParams) ([]models.Admin, int64, error)
	// UpdateAdmin обновляет имя и/или хэш пароля.
	UpdateAdmin(ctx context.Context, admin *models.Admin) error
	// UpdateRefreshHash записывает хэш refresh-токена; nil очищает его.
	UpdateRefreshHash(ctx context.Context, id int64, hash *string) error
}

// CategoryStorage выполняет операции над категориями номеров.
type CategoryStorage interface {
	SaveCategory(ctx context.Context, category *models.Category) error
	CategoryByID(ctx context.Context, id int64) (*models.Category, error)
	CategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context, p ListParams) ([]models.Category, int64, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// RoomStorage выполняет операции над номерами и их изображениями.
type RoomStorage interface {
	SaveRoom(ctx context.Context, room *models.Room) error
	// RoomByID возвращает номер вместе с категорией и изображениями.
	RoomByID(ctx context.Context, id int64) (*models.Room, error)
	ListRooms(ctx context.Context, f RoomFilter) ([]models.Room, int64, error)
	UpdateRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, id int64) error
	AddRoomImage(ctx context.Context, image *models.RoomImage) error
	RoomImageByID(ctx context.Context, id int64) (*models.RoomImage, error)
	DeleteRoomImage(ctx context.Context, id int64) error
}

// Storage задает контракт работы с БД.
type Storage interface {
	AdminStorage
	CategoryStorage
	RoomStorage
	Close()
}

// ImageStorage — контракт объектного хранилища изображений.
type ImageStorage interface {
	// SaveObject сохраняет объект и возвращает его публичный URL.
	SaveObject(ctx context.Context, key, contentType string, data []byte) (string, error)
	// RemoveObject удаляет объект по ключу.
	RemoveObject(ctx context.Context, key string) error
}
