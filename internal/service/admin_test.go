package service

import (
	"context"
	"testing"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/storage"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// TestCreateAdmin_OK — создание администратора: имя обрезается,
// пароль хэшируется, секреты не возвращаются.
func TestCreateAdmin_OK(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().AdminByName(gomock.Any(), "root").Return(nil, storage.ErrNotFound)
	env.st.EXPECT().SaveAdmin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Admin) error {
			require.Equal(t, "root", a.Name)
			require.True(t, checkPassword(a.PasswordHash, "p@ss"))
			a.ID = 1
			return nil
		})

	admin, err := env.svc.CreateAdmin(context.Background(), "  root  ", "p@ss")
	require.NoError(t, err)
	require.Equal(t, int64(1), admin.ID)
	require.Empty(t, admin.PasswordHash)
}

// TestCreateAdmin_EmptyFields — пустое имя или пароль -> ErrInvalidArgument.
func TestCreateAdmin_EmptyFields(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	_, err := env.svc.CreateAdmin(context.Background(), "   ", "p@ss")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = env.svc.CreateAdmin(context.Background(), "root", "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestCreateAdmin_NameTaken — занятое имя -> ErrAlreadyExists.
func TestCreateAdmin_NameTaken(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().AdminByName(gomock.Any(), "root").
		Return(&models.Admin{ID: 1, Name: "root"}, nil)

	_, err := env.svc.CreateAdmin(context.Background(), "root", "p@ss")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

// TestCreateAdmin_RaceOnUnique — гонка с конкурентным созданием:
// хранилище возвращает конфликт уникальности уже на вставке.
func TestCreateAdmin_RaceOnUnique(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().AdminByName(gomock.Any(), "root").Return(nil, storage.ErrNotFound)
	env.st.EXPECT().SaveAdmin(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	_, err := env.svc.CreateAdmin(context.Background(), "root", "p@ss")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

// TestListAdmins_NormalizesPaging — нулевые и завышенные параметры
// пагинации приводятся к дефолтам (page 1, limit 10, cap 100).
func TestListAdmins_NormalizesPaging(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().ListAdmins(gomock.Any(), storage.ListParams{Limit: 10, Offset: 0}).
		Return([]models.Admin{{ID: 1, Name: "root", PasswordHash: "h"}}, int64(1), nil)

	list, err := env.svc.ListAdmins(context.Background(), 0, 0, "")
	require.NoError(t, err)
	require.Equal(t, int64(1), list.Page)
	require.Equal(t, int64(10), list.Limit)
	require.Equal(t, int64(1), list.Total)
	require.Len(t, list.Items, 1)
	require.Empty(t, list.Items[0].PasswordHash)

	env.st.EXPECT().ListAdmins(gomock.Any(), storage.ListParams{Limit: 100, Offset: 200, Name: "ro"}).
		Return(nil, int64(0), nil)

	list, err = env.svc.ListAdmins(context.Background(), 3, 1000, " ro ")
	require.NoError(t, err)
	require.Equal(t, int64(100), list.Limit)
}

// TestAdminByID_NotFound — отсутствующая учётная запись -> ErrNotFound.
func TestAdminByID_NotFound(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().AdminByID(gomock.Any(), int64(404)).Return(nil, storage.ErrNotFound)

	_, err := env.svc.AdminByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestUpdateAdmin_Rename — смена имени без пароля.
func TestUpdateAdmin_Rename(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().AdminByID(gomock.Any(), int64(1)).
		Return(&models.Admin{ID: 1, Name: "root", PasswordHash: "h"}, nil)
	env.st.EXPECT().UpdateAdmin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Admin) error {
			require.Equal(t, "admin", a.Name)
			require.Equal(t, "h", a.PasswordHash)
			return nil
		})

	name := "  admin "
	got, err := env.svc.UpdateAdmin(context.Background(), 1, UpdateAdminParams{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "admin", got.Name)
}

// TestUpdateAdmin_ChangePassword — смена пароля со сверкой старого.
func TestUpdateAdmin_ChangePassword(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	oldHash := mustHashPW(t, "old")
	env.st.EXPECT().AdminByID(gomock.Any(), int64(1)).
		Return(&models.Admin{ID: 1, Name: "root", PasswordHash: oldHash}, nil)
	env.st.EXPECT().UpdateAdmin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Admin) error {
			require.True(t, checkPassword(a.PasswordHash, "new"))
			return nil
		})

	_, err := env.svc.UpdateAdmin(context.Background(), 1, UpdateAdminParams{
		OldPassword: "old",
		NewPassword: "new",
	})
	require.NoError(t, err)
}

// TestUpdateAdmin_WrongOldPassword — несовпадение старого пароля ->
// ErrInvalidCredentials, запись не обновляется.
func TestUpdateAdmin_WrongOldPassword(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	oldHash := mustHashPW(t, "old")
	env.st.EXPECT().AdminByID(gomock.Any(), int64(1)).
		Return(&models.Admin{ID: 1, Name: "root", PasswordHash: oldHash}, nil)

	_, err := env.svc.UpdateAdmin(context.Background(), 1, UpdateAdminParams{
		OldPassword: "wrong",
		NewPassword: "new",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// TestUpdateAdmin_NewPasswordWithoutOld — новый пароль без старого ->
// ErrInvalidArgument.
func TestUpdateAdmin_NewPasswordWithoutOld(t *testing.T) {
	t.Parallel()

	env, ctrl := newEnv(t)
	defer ctrl.Finish()

	env.st.EXPECT().AdminByID(gomock.Any(), int64(1)).
		Return(&models.Admin{ID: 1, Name: "root", PasswordHash: "h"}, nil)

	_, err := env.svc.UpdateAdmin(context.Background(), 1, UpdateAdminParams{NewPassword: "new"})
	require.ErrorIs(t, err, ErrInvalidArgument)
}
