package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hotel-admin-service/internal/models"
	"hotel-admin-service/internal/pkg/log"
	"hotel-admin-service/internal/pkg/redact"
	"hotel-admin-service/internal/storage"
)

// LogoutMessage — текст подтверждения выхода.
const LogoutMessage = "Logged out successfully"

// Login выполняет вход по имени и паролю.
//
// Шаги:
//  1. поиск учётной записи по имени (ErrNotFound);
//  2. сверка пароля с bcrypt-хэшем (ErrInvalidCredentials);
//  3. инкремент обоих реестров версий — логин всегда открывает новую эпоху
//     сессии и инвалидирует все ранее выданные токены;
//  4. выпуск access- и refresh-токенов с текущими версиями;
//  5. сохранение хэша refresh-токена в учётной записи.
func (s *Service) Login(ctx context.Context, name, password string) (*models.Session, error) {
	const op = "service.auth.Login"

	lg := log.From(ctx)

	admin, err := s.storage.AdminByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(admin.PasswordHash, password) {
		lg.Warn("login_password_mismatch",
			slog.String("op", op),
			slog.String("name", redact.Name(name)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	unlock := s.lockAccount(admin.ID)
	defer unlock()

	if _, err := s.access.Increment(ctx, admin.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.refresh.Increment(ctx, admin.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accessVer, err := s.access.Get(ctx, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refreshVer, err := s.refresh.Get(ctx, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	accessToken, err := s.signToken(ctx, admin.ID, accessVer, s.cfg.AccessSecret, s.cfg.AccessTokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.signToken(ctx, admin.ID, refreshVer, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateRefreshHash(ctx, admin.ID, &hash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("login_ok", slog.Int64("admin_id", admin.ID))

	return &models.Session{
		Admin:           admin.Public(),
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// Refresh выпускает новый access-токен по refresh-токену.
//
// Цепочка проверок (каждая — терминальная для запроса):
//  1. подпись и срок refresh-токена (ErrUnauthenticated);
//  2. существование учётной записи (ErrNotFound);
//  3. наличие сохранённого хэша (ErrNoActiveSession);
//  4. совпадение предъявленного токена с хэшем (ErrInvalidToken) — отсекает
//     вытесненный или никогда не выдававшийся токен с валидной подписью;
//  5. совпадение версии в токене с refresh-реестром (ErrTokenInvalidated) —
//     отсекает токены прошлых эпох даже при совпадении хэша.
//
// При успехе инкрементируется только access-реестр: эпоха refresh-токена
// не меняется, и тот же refresh-токен остаётся действителен до своего
// истечения либо явного logout/login.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.AccessToken, error) {
	const op = "service.auth.Refresh"

	lg := log.From(ctx)

	claims, err := s.parseToken(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		lg.Warn("refresh_parse_failed", slog.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	admin, err := s.storage.AdminByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	unlock := s.lockAccount(admin.ID)
	defer unlock()

	if admin.RefreshTokenHash == nil {
		lg.Warn("refresh_no_session", slog.Int64("admin_id", admin.ID))
		return nil, fmt.Errorf("%s: %w", op, ErrNoActiveSession)
	}

	if !checkRefreshToken(*admin.RefreshTokenHash, refreshToken) {
		lg.Warn("refresh_hash_mismatch", slog.Int64("admin_id", admin.ID))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	currentRefresh, err := s.refresh.Get(ctx, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if claims.Version != currentRefresh {
		lg.Warn("refresh_version_stale",
			slog.Int64("admin_id", admin.ID),
			slog.Int64("token_version", claims.Version),
			slog.Int64("current_version", currentRefresh),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalidated)
	}

	// Каждый refresh ротирует эпоху access-токенов, сужая окно жизни
	// утёкшего access-токена.
	accessVer, err := s.access.Increment(ctx, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	accessToken, err := s.signToken(ctx, admin.ID, accessVer, s.cfg.AccessSecret, s.cfg.AccessTokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("refresh_ok", slog.Int64("admin_id", admin.ID))

	return &models.AccessToken{
		Token:     accessToken,
		ExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// Logout закрывает сессию учётной записи: инкрементирует оба реестра
// (все ранее выданные токены обоих видов немедленно инвалидируются)
// и очищает сохранённый хэш refresh-токена.
func (s *Service) Logout(ctx context.Context, adminID int64) (string, error) {
	const op = "service.auth.Logout"

	lg := log.From(ctx)

	admin, err := s.storage.AdminByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	unlock := s.lockAccount(admin.ID)
	defer unlock()

	if _, err := s.access.Increment(ctx, admin.ID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.refresh.Increment(ctx, admin.ID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateRefreshHash(ctx, admin.ID, nil); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("logout_ok", slog.Int64("admin_id", admin.ID))

	return LogoutMessage, nil
}
