package models

import "time"

// Category - категория номеров отеля.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryList — страница списка категорий.
type CategoryList struct {
	Total int64
	Page  int64
	Limit int64
	Items []Category
}
