package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/storage"
)

// CreateCategory создаёт категорию с уникальным именем.
func (s *Service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	const op = "service.category.CreateCategory"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	_, err := s.storage.CategoryByName(ctx, name)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	category := &models.Category{Name: name}

	if err := s.storage.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return category, nil
}

// ListCategories возвращает страницу категорий с фильтром по имени.
func (s *Service) ListCategories(ctx context.Context, page, limit int64, name string) (*models.CategoryList, error) {
	const op = "service.category.ListCategories"

	page, limit = normalizePage(page, limit)

	items, total, err := s.storage.ListCategories(ctx, storage.ListParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
		Name:   strings.TrimSpace(name),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.CategoryList{
		Total: total,
		Page:  page,
		Limit: limit,
		Items: items,
	}, nil
}

// CategoryByID возвращает категорию по идентификатору.
func (s *Service) CategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	const op = "service.category.CategoryByID"

	category, err := s.storage.CategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return category, nil
}

// UpdateCategory переименовывает категорию; пустое имя оставляет прежнее.
func (s *Service) UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error) {
	const op = "service.category.UpdateCategory"

	category, err := s.storage.CategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if name = strings.TrimSpace(name); name != "" {
		category.Name = name
	}

	if err := s.storage.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return category, nil
}

// DeleteCategory удаляет категорию.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	const op = "service.category.DeleteCategory"

	if err := s.storage.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
