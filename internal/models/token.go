package models

import "time"

// Session — результат успешного логина.
//
// Описание:
//   - Admin — учётная запись без секретных полей;
//   - AccessToken — короткоживущий JWT для доступа к API;
//   - RefreshToken — долгоживущий JWT, предъявляется только для выпуска
//     нового access-токена; на сервере хранится лишь его хэш.
type Session struct {
	Admin           Admin
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// AccessToken — свежевыпущенный access-токен (результат Refresh).
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}
