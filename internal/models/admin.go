package models

import "time"

// Admin — учётная запись администратора.
//
// Описание:
//   - PasswordHash — bcrypt-хэш текущего пароля; наружу не отдаётся;
//   - RefreshTokenHash — хэш последнего выданного refresh-токена;
//     nil означает отсутствие активной сессии. На учётную запись
//     одновременно доверяется не более одного refresh-токена.
type Admin struct {
	ID               int64
	Name             string
	PasswordHash     string
	RefreshTokenHash *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Public возвращает копию без секретных полей (для ответов API).
func (a Admin) Public() Admin {
	a.PasswordHash = ""
	a.RefreshTokenHash = nil
	return a
}

// AdminList — страница списка администраторов.
type AdminList struct {
	Total int64
	Page  int64
	Limit int64
	Items []Admin
}
