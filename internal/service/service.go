// service содержит бизнес-логику админского бэкенда: выпуск и ротацию
// токенов, инвалидацию сессий через реестры версий и CRUD-операции над
// администраторами, категориями и номерами через интерфейсы пакета storage.
//
// Основные аспекты:
//   - Экземпляр Service безопасен для конкурентного использования из разных
//     горутин при условии, что переданные хранилище и реестры потокобезопасны.
//   - Операции над сессией одной учётной записи (Login/Refresh/Logout)
//     сериализуются мьютексом на ключ (ID аккаунта): последовательность
//     "прочитать — проверить — инкрементировать — записать хэш" выглядит
//     атомарной для одного аккаунта.
//   - Все ошибки типизированы и далее маппятся транспортом на HTTP-статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"
	"sync"

	"hotel-admin-service/internal/config"
	"hotel-admin-service/internal/storage"
	"hotel-admin-service/internal/version"
)

var (
	// ErrNotFound — учётная запись/категория/номер/изображение не найдены.
	// Транспорт: 404 Not Found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials — пароль не совпал при логине или смене пароля.
	// Транспорт: 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated — refresh-токен не прошёл проверку подписи/срока
	// или не парсится. Транспорт: 401 Unauthorized.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNoActiveSession — у учётной записи нет сохранённого хэша
	// refresh-токена (сессия не открывалась или был logout).
	// Транспорт: 401 Unauthorized.
	ErrNoActiveSession = errors.New("no active session")

	// ErrInvalidToken — предъявленный refresh-токен не совпадает с
	// сохранённым хэшем: подпись валидна, но токен был вытеснен или вообще
	// не выдавался этим сервером. Транспорт: 401 Unauthorized.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenInvalidated — версия в токене отстала от текущего значения
	// реестра (logout/повторный логин сменили эпоху сессии).
	// Транспорт: 401 Unauthorized.
	ErrTokenInvalidated = errors.New("token invalidated")

	// ErrAlreadyExists — имя администратора или категории занято.
	// Транспорт: 409 Conflict.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidArgument — входные данные не проходят доменную валидацию
	// (пустое имя, недопустимый тип изображения и т.п.).
	// Транспорт: 400 Bad Request.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service описывает бизнес-логику админского бэкенда.
type Service struct {
	storage storage.Storage
	images  storage.ImageStorage // может быть nil, если хранилище изображений не сконфигурировано
	access  version.Registry
	refresh version.Registry
	cfg     config.AuthConfig

	// locks сериализует сессионные операции по ID учётной записи.
	locks sync.Map // int64 -> *sync.Mutex
}

// New создаёт новый экземпляр Service поверх хранилища и двух реестров
// версий (access и refresh).
func New(st storage.Storage, access, refresh version.Registry, cfg config.AuthConfig) *Service {
	return &Service{
		storage: st,
		access:  access,
		refresh: refresh,
		cfg:     cfg,
	}
}

// SetImageStorage устанавливает объектное хранилище изображений (опционально).
func (s *Service) SetImageStorage(images storage.ImageStorage) {
	s.images = images
}

// lockAccount захватывает мьютекс учётной записи и возвращает функцию
// освобождения. Мьютексы создаются лениво и живут до конца процесса.
func (s *Service) lockAccount(id int64) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
