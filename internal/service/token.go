package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"hotel-admin-service/internal/pkg/log"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin — единственная роль, которую выдаёт сервис.
const RoleAdmin = "admin"

// tokenClaims — клеймы access- и refresh-токенов: ID учётной записи, роль
// и версия соответствующего вида. Версия сверяется с реестром при проверке.
type tokenClaims struct {
	AdminID int64  `json:"id"`
	Role    string `json:"role"`
	Version int64  `json:"version"`
	jwt.RegisteredClaims
}

// signToken подписывает токен с клеймами {id, role, version} указанным
// секретом. Секреты access- и refresh-токенов независимы и никогда
// не подставляются друг вместо друга.
func (s *Service) signToken(ctx context.Context, adminID, ver int64, secret string, ttl time.Duration, now time.Time) (string, error) {
	const op = "service.token.signToken"

	lg := log.From(ctx)

	claims := tokenClaims{
		AdminID: adminID,
		Role:    RoleAdmin,
		Version: ver,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		lg.Error("token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// parseToken проверяет подпись и срок токена указанным секретом и
// возвращает клеймы. Любая причина отказа (формат, подпись, exp)
// схлопывается в ErrUnauthenticated.
func (s *Service) parseToken(tokenStr, secret string) (*tokenClaims, error) {
	const op = "service.token.parseToken"

	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
			}

			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
	)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	return claims, nil
}

// ValidateAccessToken проверяет access-токен: подпись, срок и совпадение
// версии с текущим значением access-реестра. Возвращает ID учётной записи
// и роль. Несовпадение версии — ErrTokenInvalidated.
func (s *Service) ValidateAccessToken(ctx context.Context, tokenStr string) (int64, string, error) {
	const op = "service.token.ValidateAccessToken"

	claims, err := s.parseToken(tokenStr, s.cfg.AccessSecret)
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}

	current, err := s.access.Get(ctx, claims.AdminID)
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}

	if claims.Version != current {
		return 0, "", fmt.Errorf("%s: %w", op, ErrTokenInvalidated)
	}

	return claims.AdminID, claims.Role, nil
}

// hashRefreshToken хэширует refresh-токен для сохранения в БД.
// Токен сперва сводится к sha256-дайджесту (bcrypt ограничен 72 байтами,
// а JWT длиннее), затем дайджест хэшируется bcrypt с солью.
func hashRefreshToken(plain string) (string, error) {
	const op = "service.token.hashRefreshToken"

	bytes, err := bcrypt.GenerateFromPassword([]byte(digest(plain)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkRefreshToken сравнивает refresh-токен с сохранённым хэшем.
func checkRefreshToken(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(digest(plain))) == nil
}

// digest - sha256 → base64url.
func digest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.token.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
