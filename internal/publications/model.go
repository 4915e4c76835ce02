package publications

import (
	"time"

	"cajj-backend/internal/upload"
)

const (
	TypeCAJJ     = "cajj"
	TypePartners = "partners"
)

// Publication is either a CAJJ publication, identified by Title, or a partner
// entry, identified by Name.
type Publication struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Type        string    `bson:"type" json:"type"`
	Title       string    `bson:"title" json:"title"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	URL         string    `bson:"url" json:"url"`
	MediaURL    string    `bson:"media_url" json:"media_url"`
	MediaType   string    `bson:"media_type" json:"media_type"`
	PDFURL      string    `bson:"pdf_url" json:"pdf_url"`
	Visible     bool      `bson:"visible" json:"visible"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type Grouped struct {
	CAJJ     []Publication `json:"cajj"`
	Partners []Publication `json:"partners"`
}

type CreateRequest struct {
	Title       *string `json:"title" validate:"omitnil,max=255"`
	Name        *string `json:"name" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	URL         *string `json:"url" validate:"omitnil,weburl"`
	Visible     *bool   `json:"visible"`

	Media *upload.File `json:"-" validate:"-"`
	PDF   *upload.File `json:"-" validate:"-"`
}

type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitnil,max=255"`
	Name        *string `json:"name" validate:"omitnil,max=255"`
	Description *string `json:"description"`
	URL         *string `json:"url" validate:"omitnil,weburl"`
	Visible     *bool   `json:"visible"`
	RemoveMedia bool    `json:"remove_media"`
	RemovePDF   bool    `json:"remove_pdf"`

	Media *upload.File `json:"-" validate:"-"`
	PDF   *upload.File `json:"-" validate:"-"`
}
