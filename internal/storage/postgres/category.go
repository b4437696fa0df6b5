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

// SaveCategory создаёт категорию и заполняет ID/таймстемпы.
func (s *Storage) SaveCategory(ctx context.Context, category *models.Category) error {
	const op = "storage.postgres.SaveCategory"

	query := `
		INSERT INTO categories(name, created_at, updated_at)
		VALUES ($1, $2, $2)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query, category.Name, time.Now().UTC()).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CategoryByID находит категорию по ID.
func (s *Storage) CategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	const op = "storage.postgres.CategoryByID"

	query := `
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	return s.scanCategory(ctx, op, query, id)
}

// CategoryByName находит категорию по имени.
func (s *Storage) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	const op = "storage.postgres.CategoryByName"

	query := `
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE name = $1
	`

	return s.scanCategory(ctx, op, query, name)
}

func (s *Storage) scanCategory(ctx context.Context, op, query string, arg any) (*models.Category, error) {
	var category models.Category
	err := s.db.QueryRow(ctx, query, arg).Scan(
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

	return &category, nil
}

// ListCategories возвращает страницу категорий (свежие первыми)
// и общее число записей под фильтром.
func (s *Storage) ListCategories(ctx context.Context, p storage.ListParams) ([]models.Category, int64, error) {
	const op = "storage.postgres.ListCategories"

	query := `
		SELECT id, name, created_at, updated_at, COUNT(*) OVER() AS total
		FROM categories
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, query, p.Name, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var (
		categories []models.Category
		total      int64
	)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	if len(categories) == 0 {
		countQuery := `SELECT COUNT(*) FROM categories WHERE name ILIKE '%' || $1 || '%'`
		if err := s.db.QueryRow(ctx, countQuery, p.Name).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return categories, total, nil
}

// UpdateCategory обновляет имя категории.
func (s *Storage) UpdateCategory(ctx context.Context, category *models.Category) error {
	const op = "storage.postgres.UpdateCategory"

	query := `
		UPDATE categories
		SET name = $2, updated_at = $3
		WHERE id = $1
		RETURNING updated_at
	`

	err := s.db.QueryRow(ctx, query, category.ID, category.Name, time.Now().UTC()).
		Scan(&category.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteCategory удаляет категорию.
func (s *Storage) DeleteCategory(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteCategory"

	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
