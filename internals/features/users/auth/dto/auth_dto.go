package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Account  string `json:"account" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=1"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// SessionResponse 登录态快照，前端渲染菜单/表单入口全靠它。
type SessionResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Account        string    `json:"account"`
	Roles          []string  `json:"roles"`
	StoreID        *string   `json:"store_id,omitempty"`
	StoreName      string    `json:"store_name,omitempty"`
	DepartmentID   *string   `json:"department_id,omitempty"`
	DepartmentName string    `json:"department_name,omitempty"`
	DepartmentCode string    `json:"department_code,omitempty"`
	NursingRole    *string   `json:"nursing_role,omitempty"`
	PasswordWeak   bool      `json:"password_weak"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	User        SessionResponse `json:"user"`
}
