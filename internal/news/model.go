package news

import (
	"time"

	"cajj-backend/internal/upload"
)

const DefaultAuthor = "CAJJ"

type News struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Author    string    `bson:"author" json:"author"`
	Date      time.Time `bson:"date" json:"date"`
	MediaURL  string    `bson:"media_url" json:"media_url"`
	MediaType string    `bson:"media_type" json:"media_type"`
	PDFURL    string    `bson:"pdf_url" json:"pdf_url"`
	Visible   bool      `bson:"visible" json:"visible"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Title   *string `json:"title" validate:"required,notblank,max=255"`
	Content *string `json:"content" validate:"required,notblank"`
	Author  *string `json:"author" validate:"omitnil,max=255"`
	Date    *string `json:"date" validate:"omitnil,date"`
	Visible *bool   `json:"visible"`

	Media *upload.File `json:"-" validate:"-"`
	PDF   *upload.File `json:"-" validate:"-"`
}

// UpdateRequest is a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=255"`
	Content     *string `json:"content" validate:"omitnil,notblank"`
	Author      *string `json:"author" validate:"omitnil,max=255"`
	Date        *string `json:"date" validate:"omitnil,date"`
	Visible     *bool   `json:"visible"`
	RemoveMedia bool    `json:"remove_media"`
	RemovePDF   bool    `json:"remove_pdf"`

	Media *upload.File `json:"-" validate:"-"`
	PDF   *upload.File `json:"-" validate:"-"`
}
