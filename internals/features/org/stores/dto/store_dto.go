package dto

type StoreRequest struct {
	Code     string  `json:"code" validate:"required,min=2,max=32"`
	Name     string  `json:"name" validate:"required,min=1,max=50"`
	City     *string `json:"city" validate:"omitempty,max=50"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	ChairCnt int     `json:"chair_cnt" validate:"gte=0,lte=500"`
}

type StoreUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=50"`
	City     *string `json:"city" validate:"omitempty,max=50"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	ChairCnt *int    `json:"chair_cnt" validate:"omitempty,gte=0,lte=500"`
	IsActive *bool   `json:"is_active"`
}
