package documentations

import (
	"time"

	"cajj-backend/internal/upload"
)

type Documentation struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	PDFURL      string    `bson:"pdf_url" json:"pdf_url"`
	Visible     bool      `bson:"visible" json:"visible"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Title       *string `json:"title" validate:"required,notblank,max=255"`
	Description *string `json:"description"`
	Visible     *bool   `json:"visible"`

	PDF *upload.File `json:"-" validate:"-"`
}

type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=255"`
	Description *string `json:"description"`
	Visible     *bool   `json:"visible"`

	PDF *upload.File `json:"-" validate:"-"`
}
