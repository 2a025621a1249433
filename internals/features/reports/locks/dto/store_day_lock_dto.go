package dto

import (
	"github.com/google/uuid"
)

type LockRequest struct {
	StoreID    uuid.UUID `json:"store_id" validate:"required"`
	ReportDate string    `json:"report_date" validate:"required,len=10"` // YYYY-MM-DD
	Locked     bool      `json:"locked"`
	Note       *string   `json:"note,omitempty"`
}
