// http содержит реализацию REST-эндпоинтов админского бэкенда.
// Здесь выполняется только маппинг данных и ошибок доменного слоя (service)
// в HTTP. Вся валидация и бизнес-логика находятся в пакете service.
//
// Маппинг ошибок:
//   - ErrNotFound -> 404;
//   - ErrAlreadyExists -> 409;
//   - ErrInvalidArgument -> 400;
//   - ErrInvalidCredentials/ErrUnauthenticated/ErrNoActiveSession/
//     ErrInvalidToken/ErrTokenInvalidated -> 401;
//   - иные ошибки -> 500 c единым безопасным сообщением.
//
// Безопасность: для 500 наружу не утекают детали внутренних ошибок;
// подробности попадают в логи через прослойки сервера.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"hotel-admin-service/internal/middleware"
	"hotel-admin-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Server — REST-сервер поверх сервисного слоя.
type Server struct {
	service *service.Service
	maxBody int64
}

// NewServer создаёт HTTP-сервер авторизации и CRUD-операций.
// maxBody ограничивает размер тела запроса (в т.ч. multipart с изображениями).
func NewServer(service *service.Service, maxBody int64) *Server {
	if maxBody <= 0 {
		maxBody = 32 << 20
	}

	return &Server{service: service, maxBody: maxBody}
}

// Router собирает маршруты и прослойки.
// Порядок прослоек: recover снаружи, затем логирование, метрики и таймаут.
func (s *Server) Router(log *slog.Logger, reg prometheus.Registerer, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(log))
	r.Use(middleware.Logging(log))
	if reg != nil {
		r.Use(middleware.Metrics(reg))
	}
	if timeout > 0 {
		r.Use(middleware.WithTimeout(timeout))
	}

	r.Route("/admins", func(r chi.Router) {
		// Открытые эндпоинты сессии.
		r.Post("/login", s.handleLogin)
		r.Post("/refresh", s.handleRefresh)

		// Всё остальное — только с валидным access-токеном.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.service))

			r.Post("/logout", s.handleLogout)
			r.Post("/", s.handleCreateAdmin)
			r.Get("/", s.handleListAdmins)
			r.Get("/{id}", s.handleGetAdmin)
			r.Patch("/{id}", s.handleUpdateAdmin)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.service))

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", s.handleCreateCategory)
			r.Get("/", s.handleListCategories)
			r.Get("/{id}", s.handleGetCategory)
			r.Patch("/{id}", s.handleUpdateCategory)
			r.Delete("/{id}", s.handleDeleteCategory)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", s.handleCreateRoom)
			r.Get("/", s.handleListRooms)
			r.Get("/{id}", s.handleGetRoom)
			r.Patch("/{id}", s.handleUpdateRoom)
			r.Delete("/{id}", s.handleDeleteRoom)
		})
	})

	return r
}
