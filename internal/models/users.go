package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Роли пользователей в порядке убывания привилегий.
// Иерархия ролей обеспечивается бэкендом, здесь только перечень допустимых значений.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RolePartner    = "Partner"
	RoleAssistant  = "Assistant"
	RoleUser       = "User"
)

// Roles - список допустимых ролей для регистрации и изменения пользователя
var Roles = []string{RoleSuperAdmin, RoleAdmin, RolePartner, RoleAssistant, RoleUser}

// UserNode - узел иерархии пользователей: учётная запись и созданные ею
// учётные записи. Поле Children образует дерево, корень которого -
// пользователь, чьи "создания" просматриваются.
type UserNode struct {
	ID        string          `json:"_id"`
	Username  string          `json:"username"`
	Role      string          `json:"role"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
	Children  []*UserNode     `json:"children,omitempty"`
}

// CredentialsRequest - модель для входа в консоль, приходит извне
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest - модель регистрации подчинённой учётной записи
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest - модель изменения пользователя. Пустые поля не передаются бэкенду.
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LoginResponse - ответ консоли на вход: собственный токен сессии и пользователь
type LoginResponse struct {
	Success bool      `json:"success"`
	Status  int       `json:"status"`
	Token   string    `json:"token"`
	User    *UserNode `json:"user"`
	Message string    `json:"message,omitempty"`
}

// UserListResponse - страница списка пользователей с итогами по отфильтрованному набору
type UserListResponse struct {
	Success      bool        `json:"success"`
	Users        []*UserNode `json:"users"`
	Count        int         `json:"count"`
	TotalBalance float64     `json:"totalBalance"`
	Page         int         `json:"page"`
	Pages        int         `json:"pages"`
}

// ErrorResponse - единая форма ошибки консоли
type ErrorResponse struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// MessageResponse - ответ без полезной нагрузки
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
