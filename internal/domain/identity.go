package domain

import "github.com/google/uuid"

// Role роль пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity аутентифицированный вызывающий. Нулевое значение - анонимный запрос.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// Anonymous анонимный вызывающий
var Anonymous = Identity{}

// IsAuthenticated true, если известен пользователь
func (i Identity) IsAuthenticated() bool {
	return i.UserID != uuid.Nil
}

// IsAdmin true для аутентифицированного администратора
func (i Identity) IsAdmin() bool {
	return i.IsAuthenticated() && i.Role == RoleAdmin
}
