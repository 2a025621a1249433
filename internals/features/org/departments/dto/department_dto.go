package dto

type DepartmentRequest struct {
	Code string `json:"code" validate:"required,min=2,max=32,uppercase"`
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type DepartmentUpdateRequest struct {
	Code *string `json:"code" validate:"omitempty,min=2,max=32,uppercase"`
	Name *string `json:"name" validate:"omitempty,min=1,max=50"`
}
