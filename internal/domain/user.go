package domain

import "time"

// Role — закрытое перечисление ролей пользователя. Любая проверка прав
// идёт через политику авторизации, а не через сравнение строк на месте.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid сообщает, известна ли роль системе.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User описывает учётную запись пользователя.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func NewUser(name, email, passwordHash string, role Role) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
}

// OwnedBy сообщает, совпадает ли учётная запись с личностью вызывающего.
func (u *User) OwnedBy(userID int64) bool {
	return u.ID == userID
}

// Identity — личность вызывающего, восстановленная из bearer-токена.
// Нулевое значение означает анонимный запрос.
type Identity struct {
	ID   int64
	Role Role
}

// Anonymous сообщает, что запрос пришёл без валидного токена.
func (i Identity) Anonymous() bool {
	return i.ID == 0
}

// IsAdmin сообщает, имеет ли вызывающий административную роль.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
