package service

import (
	"context"
	"testing"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/storage"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// TestCreateCategory_OK — создание категории с обрезкой имени.
func TestCreateCategory_OK(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().CategoryByName(gomock.Any(), "Suite").Return(nil, storage.ErrNotFound)
	env.st.EXPECT().SaveCategory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Category) error {
			require.Equal(t, "Suite", c.Name)
			c.ID = 1
			return nil
		})

	c, err := env.svc.CreateCategory(context.Background(), " Suite ")
	require.NoError(t, err)
	require.Equal(t, int64(1), c.ID)
}

// TestCreateCategory_EmptyName — пустое имя -> ErrInvalidArgument.
func TestCreateCategory_EmptyName(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	_, err := env.svc.CreateCategory(context.Background(), "   ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestCreateCategory_NameTaken — занятое имя -> ErrAlreadyExists.
func TestCreateCategory_NameTaken(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().CategoryByName(gomock.Any(), "Suite").
		Return(&models.Category{ID: 1, Name: "Suite"}, nil)

	_, err := env.svc.CreateCategory(context.Background(), "Suite")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

// TestListCategories_OK — пагинация с фильтром по имени.
func TestListCategories_OK(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().ListCategories(gomock.Any(), storage.ListParams{Limit: 5, Offset: 5, Name: "su"}).
		Return([]models.Category{{ID: 6, Name: "Suite"}}, int64(11), nil)

	list, err := env.svc.ListCategories(context.Background(), 2, 5, "su")
	require.NoError(t, err)
	require.Equal(t, int64(11), list.Total)
	require.Equal(t, int64(2), list.Page)
	require.Len(t, list.Items, 1)
}

// TestUpdateCategory_EmptyNameKeepsOld — пустое имя в PATCH оставляет прежнее.
func TestUpdateCategory_EmptyNameKeepsOld(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().CategoryByID(gomock.Any(), int64(1)).
		Return(&models.Category{ID: 1, Name: "Suite"}, nil)
	env.st.EXPECT().UpdateCategory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Category) error {
			require.Equal(t, "Suite", c.Name)
			return nil
		})

	c, err := env.svc.UpdateCategory(context.Background(), 1, "  ")
	require.NoError(t, err)
	require.Equal(t, "Suite", c.Name)
}

// TestUpdateCategory_ConflictOnRename — переименование в занятое имя ->
// ErrAlreadyExists от хранилища.
func TestUpdateCategory_ConflictOnRename(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().CategoryByID(gomock.Any(), int64(1)).
		Return(&models.Category{ID: 1, Name: "Suite"}, nil)
	env.st.EXPECT().UpdateCategory(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	_, err := env.svc.UpdateCategory(context.Background(), 1, "Deluxe")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

// TestDeleteCategory_NotFound — удаление отсутствующей категории -> ErrNotFound.
func TestDeleteCategory_NotFound(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().DeleteCategory(gomock.Any(), int64(404)).Return(storage.ErrNotFound)

	err := env.svc.DeleteCategory(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}
