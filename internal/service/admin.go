package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/storage"
)

// UpdateAdminParams — изменяемые поля учётной записи. nil-поле не меняется.
// Смена пароля требует старый пароль.
type UpdateAdminParams struct {
	Name        *string
	OldPassword string
	NewPassword string
}

// CreateAdmin создаёт администратора с уникальным именем.
func (s *Service) CreateAdmin(ctx context.Context, name, password string) (*models.Admin, error) {
	const op = "service.admin.CreateAdmin"

	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	_, err := s.storage.AdminByName(ctx, name)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	admin := &models.Admin{
		Name:         name,
		PasswordHash: hash,
	}

	if err := s.storage.SaveAdmin(ctx, admin); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pub := admin.Public()
	return &pub, nil
}

// ListAdmins возвращает страницу администраторов с фильтром по имени.
// limit по умолчанию 10, page — 1.
func (s *Service) ListAdmins(ctx context.Context, page, limit int64, name string) (*models.AdminList, error) {
	const op = "service.admin.ListAdmins"

	page, limit = normalizePage(page, limit)

	items, total, err := s.storage.ListAdmins(ctx, storage.ListParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
		Name:   strings.TrimSpace(name),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range items {
		items[i] = items[i].Public()
	}

	return &models.AdminList{
		Total: total,
		Page:  page,
		Limit: limit,
		Items: items,
	}, nil
}

// AdminByID возвращает администратора без секретных полей.
func (s *Service) AdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	const op = "service.admin.AdminByID"

	admin, err := s.storage.AdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pub := admin.Public()
	return &pub, nil
}

// UpdateAdmin меняет имя и/или пароль. Для смены пароля требуется
// действующий пароль; несовпадение — ErrInvalidCredentials.
func (s *Service) UpdateAdmin(ctx context.Context, id int64, p UpdateAdminParams) (*models.Admin, error) {
	const op = "service.admin.UpdateAdmin"

	admin, err := s.storage.AdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		admin.Name = name
	}

	if p.NewPassword != "" {
		if p.OldPassword == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		if !checkPassword(admin.PasswordHash, p.OldPassword) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		hash, err := hashPassword(p.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		admin.PasswordHash = hash
	}

	if err := s.storage.UpdateAdmin(ctx, admin); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pub := admin.Public()
	return &pub, nil
}

// normalizePage приводит параметры пагинации к допустимым значениям.
func normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
