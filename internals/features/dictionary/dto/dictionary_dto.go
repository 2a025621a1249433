package dto

type DictionaryItemRequest struct {
	Category  string `json:"category" validate:"required,min=1,max=50"`
	Name      string `json:"name" validate:"required,min=1,max=50"`
	Value     string `json:"value" validate:"required,min=1,max=100"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

type DictionaryItemUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=50"`
	Value     *string `json:"value" validate:"omitempty,min=1,max=100"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
	IsActive  *bool   `json:"is_active"`
}
