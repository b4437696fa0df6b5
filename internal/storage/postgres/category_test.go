package postgres

import (
	"context"
	"testing"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/storage"

	"github.com/stretchr/testify/require"
)

// Интеграционные тесты репозитория категорий (category.go).
// Инфраструктура поднимается хелпером startPostgres (см. admin_test.go).

// TestIntegration_SaveCategory_And_Lookups_OK — создание категории и
// поиск по ID и имени.
func TestIntegration_SaveCategory_And_Lookups_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	c := &models.Category{Name: "Suite"}
	require.NoError(t, st.SaveCategory(ctx, c))
	require.NotZero(t, c.ID)

	byID, err := st.CategoryByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Suite", byID.Name)

	byName, err := st.CategoryByName(ctx, "Suite")
	require.NoError(t, err)
	require.Equal(t, c.ID, byName.ID)
}

// TestIntegration_SaveCategory_UniqueName_Violation — повторное имя ->
// storage.ErrAlreadyExists.
func TestIntegration_SaveCategory_UniqueName_Violation(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.SaveCategory(ctx, &models.Category{Name: "Suite"}))

	err := st.SaveCategory(ctx, &models.Category{Name: "Suite"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// TestIntegration_ListCategories_PagingAndFilter — пагинация и ILIKE-фильтр.
func TestIntegration_ListCategories_PagingAndFilter(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	for _, name := range []string{"Standard", "Superior", "Suite"} {
		require.NoError(t, st.SaveCategory(ctx, &models.Category{Name: name}))
	}

	items, total, err := st.ListCategories(ctx, storage.ListParams{Limit: 2, Offset: 0, Name: "su"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	items, total, err = st.ListCategories(ctx, storage.ListParams{Limit: 10, Offset: 50, Name: ""})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Empty(t, items)
}

// TestIntegration_UpdateCategory_RenameAndConflict — переименование и
// конфликт уникальности при переименовании в занятое имя.
func TestIntegration_UpdateCategory_RenameAndConflict(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	a := &models.Category{Name: "Suite"}
	b := &models.Category{Name: "Deluxe"}
	require.NoError(t, st.SaveCategory(ctx, a))
	require.NoError(t, st.SaveCategory(ctx, b))

	a.Name = "Premium"
	require.NoError(t, st.UpdateCategory(ctx, a))

	got, err := st.CategoryByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Premium", got.Name)

	b.Name = "Premium"
	err = st.UpdateCategory(ctx, b)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// TestIntegration_DeleteCategory_OK_And_NotFound — удаление и повторное
// удаление той же категории.
func TestIntegration_DeleteCategory_OK_And_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	c := &models.Category{Name: "Suite"}
	require.NoError(t, st.SaveCategory(ctx, c))

	require.NoError(t, st.DeleteCategory(ctx, c.ID))

	err := st.DeleteCategory(ctx, c.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.CategoryByID(ctx, c.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
