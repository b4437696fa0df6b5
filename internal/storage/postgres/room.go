package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/storage"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SaveRoom создаёт номер и заполняет ID/таймстемпы.
func (s *Storage) SaveRoom(ctx context.Context, room *models.Room) error {
	const op = "storage.postgres.SaveRoom"

	query := `
		INSERT INTO rooms(title, description, price, category_id, amenities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		room.Title,
		room.Description,
		room.Price,
		room.CategoryID,
		room.Amenities,
		time.Now().UTC(),
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RoomByID возвращает номер вместе с категорией и изображениями.
func (s *Storage) RoomByID(ctx context.Context, id int64) (*models.Room, error) {
	const op = "storage.postgres.RoomByID"

	query := `
		SELECT r.id, r.title, r.description, r.price, r.category_id, r.amenities,
		       r.created_at, r.updated_at,
		       c.id, c.name, c.created_at, c.updated_at
		FROM rooms r
		JOIN categories c ON c.id = r.category_id
		WHERE r.id = $1
	`

	var (
		room     models.Room
		category models.Category
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Title,
		&room.Description,
		&room.Price,
		&room.CategoryID,
		&room.Amenities,
		&room.CreatedAt,
		&room.UpdatedAt,
		&category.ID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	room.Category = &category

	images, err := s.roomImages(ctx, []int64{room.ID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	room.Images = images[room.ID]

	return &room, nil
}

// ListRooms возвращает страницу номеров (свежие первыми) с категориями
// и изображениями, а также общее число записей под фильтром.
func (s *Storage) ListRooms(ctx context.Context, f storage.RoomFilter) ([]models.Room, int64, error) {
	const op = "storage.postgres.ListRooms"

	query := `
		SELECT r.id, r.title, r.description, r.price, r.category_id, r.amenities,
		       r.created_at, r.updated_at,
		       c.id, c.name, c.created_at, c.updated_at,
		       COUNT(*) OVER() AS total
		FROM rooms r
		JOIN categories c ON c.id = r.category_id
		WHERE r.title ILIKE '%' || $1 || '%'
		  AND ($2 = 0 OR r.category_id = $2)
		ORDER BY r.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := s.db.Query(ctx, query, f.Title, f.CategoryID, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var (
		rooms []models.Room
		ids   []int64
		total int64
	)
	for rows.Next() {
		var (
			room     models.Room
			category models.Category
		)
		if err := rows.Scan(
			&room.ID,
			&room.Title,
			&room.Description,
			&room.Price,
			&room.CategoryID,
			&room.Amenities,
			&room.CreatedAt,
			&room.UpdatedAt,
			&category.ID,
			&category.Name,
			&category.CreatedAt,
			&category.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}

		room.Category = &category
		rooms = append(rooms, room)
		ids = append(ids, room.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	if len(rooms) == 0 {
		countQuery := `
			SELECT COUNT(*)
			FROM rooms
			WHERE title ILIKE '%' || $1 || '%'
			  AND ($2 = 0 OR category_id = $2)
		`
		if err := s.db.QueryRow(ctx, countQuery, f.Title, f.CategoryID).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}

		return nil, total, nil
	}

	images, err := s.roomImages(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	for i := range rooms {
		rooms[i].Images = images[rooms[i].ID]
	}

	return rooms, total, nil
}

// UpdateRoom обновляет поля номера.
func (s *Storage) UpdateRoom(ctx context.Context, room *models.Room) error {
	const op = "storage.postgres.UpdateRoom"

	query := `
		UPDATE rooms
		SET title = $2, description = $3, price = $4, category_id = $5, amenities = $6, updated_at = $7
		WHERE id = $1
		RETURNING updated_at
	`

	err := s.db.QueryRow(ctx, query,
		room.ID,
		room.Title,
		room.Description,
		room.Price,
		room.CategoryID,
		room.Amenities,
		time.Now().UTC(),
	).Scan(&room.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteRoom удаляет номер; записи изображений уходят каскадом.
func (s *Storage) DeleteRoom(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteRoom"

	tag, err := s.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// AddRoomImage регистрирует изображение номера.
func (s *Storage) AddRoomImage(ctx context.Context, image *models.RoomImage) error {
	const op = "storage.postgres.AddRoomImage"

	query := `
		INSERT INTO room_images(room_id, object_key, url, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query, image.RoomID, image.ObjectKey, image.URL, time.Now().UTC()).
		Scan(&image.ID, &image.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
			case pgerrcode.ForeignKeyViolation:
				return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RoomImageByID находит изображение по ID.
func (s *Storage) RoomImageByID(ctx context.Context, id int64) (*models.RoomImage, error) {
	const op = "storage.postgres.RoomImageByID"

	query := `
		SELECT id, room_id, object_key, url, created_at
		FROM room_images
		WHERE id = $1
	`

	var img models.RoomImage
	err := s.db.QueryRow(ctx, query, id).Scan(
		&img.ID,
		&img.RoomID,
		&img.ObjectKey,
		&img.URL,
		&img.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &img, nil
}

// DeleteRoomImage удаляет запись изображения.
func (s *Storage) DeleteRoomImage(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteRoomImage"

	tag, err := s.db.Exec(ctx, `DELETE FROM room_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// roomImages загружает изображения для набора номеров одним запросом.
func (s *Storage) roomImages(ctx context.Context, roomIDs []int64) (map[int64][]models.RoomImage, error) {
	const op = "storage.postgres.roomImages"

	query := `
		SELECT id, room_id, object_key, url, created_at
		FROM room_images
		WHERE room_id = ANY($1)
		ORDER BY created_at, id
	`

	rows, err := s.db.Query(ctx, query, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	images := make(map[int64][]models.RoomImage)
	for rows.Next() {
		var img models.RoomImage
		if err := rows.Scan(&img.ID, &img.RoomID, &img.ObjectKey, &img.URL, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		images[img.RoomID] = append(images[img.RoomID], img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return images, nil
}
