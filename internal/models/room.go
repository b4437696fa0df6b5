package models

import "time"

// Room - номер отеля.
//
// Price хранится в минимальных денежных единицах.
// Category заполняется при чтении (RoomByID/ListRooms), при записи
// используется только CategoryID.
type Room struct {
	ID          int64
	Title       string
	Description string
	Price       int64
	CategoryID  int64
	Amenities   []string
	Images      []RoomImage
	Category    *Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoomImage — изображение номера в объектном хранилище.
// ObjectKey — ключ в бакете, URL — публичная ссылка.
type RoomImage struct {
	ID        int64
	RoomID    int64
	ObjectKey string
	URL       string
	CreatedAt time.Time
}

// RoomList — страница списка номеров.
type RoomList struct {
	Total int64
	Page  int64
	Limit int64
	Items []Room
}
