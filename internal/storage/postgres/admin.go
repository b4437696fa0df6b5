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

// SaveAdmin создаёт администратора и заполняет ID/таймстемпы.
func (s *Storage) SaveAdmin(ctx context.Context, admin *models.Admin) error {
	const op = "storage.postgres.SaveAdmin"

	query := `
		INSERT INTO admins(name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()
	err := s.db.QueryRow(ctx, query, admin.Name, admin.PasswordHash, now).
		Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AdminByName находит администратора по имени.
func (s *Storage) AdminByName(ctx context.Context, name string) (*models.Admin, error) {
	const op = "storage.postgres.AdminByName"

	query := `
		SELECT id, name, password_hash, refresh_token_hash, created_at, updated_at
		FROM admins
		WHERE name = $1
	`

	return s.scanAdmin(ctx, op, query, name)
}

// AdminByID находит администратора по ID.
func (s *Storage) AdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	const op = "storage.postgres.AdminByID"

	query := `
		SELECT id, name, password_hash, refresh_token_hash, created_at, updated_at
		FROM admins
		WHERE id = $1
	`

	return s.scanAdmin(ctx, op, query, id)
}

func (s *Storage) scanAdmin(ctx context.Context, op, query string, arg any) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Name,
		&admin.PasswordHash,
		&admin.RefreshTokenHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &admin, nil
}

// ListAdmins возвращает страницу администраторов (свежие первыми)
// и общее число записей под фильтром.
func (s *Storage) ListAdmins(ctx context.Context, p storage.ListParams) ([]models.Admin, int64, error) {
	const op = "storage.postgres.ListAdmins"

	query := `
		SELECT id, name, created_at, updated_at, COUNT(*) OVER() AS total
		FROM admins
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
		admins []models.Admin
		total  int64
	)
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		admins = append(admins, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	// Пустая страница за пределами выборки: total берём отдельным запросом.
	if len(admins) == 0 {
		countQuery := `SELECT COUNT(*) FROM admins WHERE name ILIKE '%' || $1 || '%'`
		if err := s.db.QueryRow(ctx, countQuery, p.Name).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	return admins, total, nil
}

// UpdateAdmin обновляет имя и хэш пароля.
func (s *Storage) UpdateAdmin(ctx context.Context, admin *models.Admin) error {
	const op = "storage.postgres.UpdateAdmin"

	query := `
		UPDATE admins
		SET name = $2, password_hash = $3, updated_at = $4
		WHERE id = $1
		RETURNING updated_at
	`

	err := s.db.QueryRow(ctx, query, admin.ID, admin.Name, admin.PasswordHash, time.Now().UTC()).
		Scan(&admin.UpdatedAt)

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

// UpdateRefreshHash записывает хэш refresh-токена; nil очищает его.
func (s *Storage) UpdateRefreshHash(ctx context.Context, id int64, hash *string) error {
	const op = "storage.postgres.UpdateRefreshHash"

	query := `
		UPDATE admins
		SET refresh_token_hash = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, id, hash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
