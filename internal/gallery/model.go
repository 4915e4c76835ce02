package gallery

import (
	"time"

	"cajj-backend/internal/upload"
)

const DefaultVideoTitle = "Vidéo"

type Photo struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	URL         string    `bson:"url" json:"url"`
	Filename    string    `bson:"filename" json:"filename"`
	Visible     bool      `bson:"visible" json:"visible"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Video is either an uploaded file (Filename set, URL derived from it) or an
// external link such as a YouTube page (Filename empty).
type Video struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	URL         string    `bson:"url" json:"url"`
	Filename    string    `bson:"filename" json:"filename"`
	Visible     bool      `bson:"visible" json:"visible"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

func (v Video) External() bool {
	return v.Filename == ""
}

// Gallery is the public listing shape.
type Gallery struct {
	Photos []Photo `json:"photos"`
	Videos []Video `json:"videos"`
}

type PhotoCreateRequest struct {
	Title       *string `json:"title" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	Visible     *bool   `json:"visible"`

	File *upload.File `json:"-" validate:"-"`
}

type VideoCreateRequest struct {
	Title       *string `json:"title" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	URL         *string `json:"url" validate:"omitnil,weburl"`
	Visible     *bool   `json:"visible"`

	File *upload.File `json:"-" validate:"-"`
}

type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=255"`
	Description *string `json:"description"`
	URL         *string `json:"url" validate:"omitnil,weburl"`
	Visible     *bool   `json:"visible"`
}
