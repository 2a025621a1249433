package dto

import (
	"time"

	"github.com/google/uuid"
)

type GrantRequest struct {
	UserID       uuid.UUID  `json:"user_id" validate:"required"`
	StoreID      uuid.UUID  `json:"store_id" validate:"required"`
	CanViewAll   bool       `json:"can_view_all"`
	CanViewStats bool       `json:"can_view_stats"`
	CanExport    bool       `json:"can_export"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
}
