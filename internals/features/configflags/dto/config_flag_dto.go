package dto

import "encoding/json"

type ConfigFlagRequest struct {
	Scope       string          `json:"scope" validate:"required,oneof=GLOBAL STORE"`
	StoreID     *string         `json:"store_id" validate:"omitempty,uuid"`
	Key         string          `json:"key" validate:"required,min=1,max=50"`
	Value       json.RawMessage `json:"value" validate:"required"`
	Description string          `json:"description" validate:"max=255"`
	IsActive    *bool           `json:"is_active"`
}
