package dto

import (
	"time"

	"github.com/google/uuid"

	"chike_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	Account          string   `json:"account" validate:"required,min=3,max=50"`
	Name             string   `json:"name" validate:"required,min=1,max=50"`
	Password         string   `json:"password" validate:"required,min=8,max=72"`
	Roles            []string `json:"roles" validate:"omitempty,dive,min=1"`
	StoreID          *string  `json:"store_id" validate:"omitempty,uuid"`
	DepartmentID     *string  `json:"department_id" validate:"omitempty,uuid"`
	ExtraDepartments []string `json:"extra_department_ids" validate:"omitempty,dive,uuid"`
	NursingRole      *string  `json:"nursing_role" validate:"omitempty,oneof=HEAD_NURSE NURSE ASSISTANT"`
	MarketingSubDept *string  `json:"marketing_sub_dept" validate:"omitempty,oneof=ONLINE OFFLINE"`
}

// UpdateUserRequest 字段全可选，nil 即不改。
type UpdateUserRequest struct {
	Name             *string   `json:"name" validate:"omitempty,min=1,max=50"`
	Roles            *[]string `json:"roles" validate:"omitempty,dive,min=1"`
	StoreID          *string   `json:"store_id" validate:"omitempty,uuid"`
	DepartmentID     *string   `json:"department_id" validate:"omitempty,uuid"`
	ExtraDepartments *[]string `json:"extra_department_ids" validate:"omitempty,dive,uuid"`
	NursingRole      *string   `json:"nursing_role" validate:"omitempty,oneof=HEAD_NURSE NURSE ASSISTANT"`
	MarketingSubDept *string   `json:"marketing_sub_dept" validate:"omitempty,oneof=ONLINE OFFLINE"`
	Password         *string   `json:"password" validate:"omitempty,min=8,max=72"`
	IsActive         *bool     `json:"is_active"`
}

type UserResponse struct {
	ID               uuid.UUID  `json:"id"`
	Account          string     `json:"account"`
	Name             string     `json:"name"`
	Roles            []string   `json:"roles"`
	StoreID          *uuid.UUID `json:"store_id,omitempty"`
	DepartmentID     *uuid.UUID `json:"department_id,omitempty"`
	ExtraDepartments []string   `json:"extra_department_ids,omitempty"`
	NursingRole      *string    `json:"nursing_role,omitempty"`
	MarketingSubDept *string    `json:"marketing_sub_dept,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func ToUserResponse(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Account:          u.Account,
		Name:             u.Name,
		Roles:            u.RoleList(),
		StoreID:          u.StoreID,
		DepartmentID:     u.DepartmentID,
		ExtraDepartments: u.ExtraDepartments(),
		NursingRole:      u.NursingRole,
		MarketingSubDept: u.MarketingSubDept,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
