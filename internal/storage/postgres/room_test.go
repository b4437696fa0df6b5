package postgres

import (
	"context"
	"fmt"
	"testing"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/storage"

	"github.com/stretchr/testify/require"
)

// Интеграционные тесты репозитория номеров (room.go).
// Инфраструктура поднимается хелпером startPostgres (см. admin_test.go).

func mustCategory(t *testing.T, st *Storage, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	require.NoError(t, st.SaveCategory(context.Background(), c))
	return c
}

func mustRoom(t *testing.T, st *Storage, title string, categoryID int64) *models.Room {
	t.Helper()
	r := &models.Room{
		Title:       title,
		Description: "desc",
		Price:       100,
		CategoryID:  categoryID,
		Amenities:   []string{"wifi", "tv"},
	}
	require.NoError(t, st.SaveRoom(context.Background(), r))
	return r
}

// TestIntegration_SaveRoom_And_RoomByID_OK — создание номера и чтение
// вместе с категорией, amenities и изображениями.
func TestIntegration_SaveRoom_And_RoomByID_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	cat := mustCategory(t, st, "Suite")
	room := mustRoom(t, st, "Sea view", cat.ID)
	require.NotZero(t, room.ID)

	require.NoError(t, st.AddRoomImage(ctx, &models.RoomImage{
		RoomID:    room.ID,
		ObjectKey: fmt.Sprintf("rooms/%d/a.png", room.ID),
		URL:       "http://cdn/a.png",
	}))

	got, err := st.RoomByID(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, "Sea view", got.Title)
	require.Equal(t, []string{"wifi", "tv"}, got.Amenities)
	require.NotNil(t, got.Category)
	require.Equal(t, "Suite", got.Category.Name)
	require.Len(t, got.Images, 1)
	require.Equal(t, "http://cdn/a.png", got.Images[0].URL)
}

// TestIntegration_SaveRoom_UnknownCategory — FK-нарушение маппится
// в storage.ErrNotFound.
func TestIntegration_SaveRoom_UnknownCategory(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	err := st.SaveRoom(context.Background(), &models.Room{
		Title:      "Room",
		Price:      1,
		CategoryID: 99999,
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_ListRooms_Filters — фильтры по заголовку и категории,
// total под фильтром, изображения подгружаются пакетно.
func TestIntegration_ListRooms_Filters(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	suite := mustCategory(t, st, "Suite")
	std := mustCategory(t, st, "Standard")

	sea := mustRoom(t, st, "Sea view", suite.ID)
	mustRoom(t, st, "Garden view", suite.ID)
	mustRoom(t, st, "Sea breeze", std.ID)

	require.NoError(t, st.AddRoomImage(ctx, &models.RoomImage{
		RoomID:    sea.ID,
		ObjectKey: "rooms/sea/a.png",
		URL:       "http://cdn/sea.png",
	}))

	// Фильтр по заголовку.
	items, total, err := st.ListRooms(ctx, storage.RoomFilter{Limit: 10, Title: "sea"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	// Фильтр по категории.
	items, total, err = st.ListRooms(ctx, storage.RoomFilter{Limit: 10, CategoryID: suite.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, r := range items {
		require.Equal(t, suite.ID, r.CategoryID)
		if r.ID == sea.ID {
			require.Len(t, r.Images, 1)
		}
	}

	// Оба фильтра сразу.
	_, total, err = st.ListRooms(ctx, storage.RoomFilter{Limit: 10, Title: "sea", CategoryID: std.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	// Пустая страница за пределами выборки.
	items, total, err = st.ListRooms(ctx, storage.RoomFilter{Limit: 10, Offset: 100})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Empty(t, items)
}

// TestIntegration_UpdateRoom_OK_And_UnknownCategory — обновление полей
// и перенос в несуществующую категорию.
func TestIntegration_UpdateRoom_OK_And_UnknownCategory(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	cat := mustCategory(t, st, "Suite")
	room := mustRoom(t, st, "Room", cat.ID)

	room.Title = "Renamed"
	room.Price = 250
	room.Amenities = []string{"wifi"}
	require.NoError(t, st.UpdateRoom(ctx, room))

	got, err := st.RoomByID(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Title)
	require.Equal(t, int64(250), got.Price)
	require.Equal(t, []string{"wifi"}, got.Amenities)

	room.CategoryID = 99999
	err = st.UpdateRoom(ctx, room)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_DeleteRoom_CascadesImages — удаление номера каскадно
// удаляет записи изображений.
func TestIntegration_DeleteRoom_CascadesImages(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	cat := mustCategory(t, st, "Suite")
	room := mustRoom(t, st, "Room", cat.ID)

	img := &models.RoomImage{RoomID: room.ID, ObjectKey: "rooms/x/a.png", URL: "http://cdn/a.png"}
	require.NoError(t, st.AddRoomImage(ctx, img))

	require.NoError(t, st.DeleteRoom(ctx, room.ID))

	_, err := st.RoomByID(ctx, room.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.RoomImageByID(ctx, img.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = st.DeleteRoom(ctx, room.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_RoomImages_AddLookupDelete — жизненный цикл записи
// изображения; FK-нарушение при регистрации на чужой ID.
func TestIntegration_RoomImages_AddLookupDelete(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	cat := mustCategory(t, st, "Suite")
	room := mustRoom(t, st, "Room", cat.ID)

	img := &models.RoomImage{RoomID: room.ID, ObjectKey: "rooms/x/b.png", URL: "http://cdn/b.png"}
	require.NoError(t, st.AddRoomImage(ctx, img))
	require.NotZero(t, img.ID)

	got, err := st.RoomImageByID(ctx, img.ID)
	require.NoError(t, err)
	require.Equal(t, img.ObjectKey, got.ObjectKey)

	require.NoError(t, st.DeleteRoomImage(ctx, img.ID))
	err = st.DeleteRoomImage(ctx, img.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = st.AddRoomImage(ctx, &models.RoomImage{RoomID: 99999, ObjectKey: "k", URL: "u"})
	require.ErrorIs(t, err, storage.ErrNotFound)
}
