package about

import "time"

// Section is one block of the "Nous connaître" page. The set is fixed by the
// seed; sections are addressed by SectionID and only ever updated.
type Section struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	SectionID string    `bson:"section_id" json:"section_id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Position  int       `bson:"position" json:"position"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type PublicSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Page struct {
	Sections []PublicSection `json:"sections"`
}

// UpdateRequest changes a section. Content may be set to an empty string.
type UpdateRequest struct {
	Title   *string `json:"title" validate:"omitnil,notblank,max=255"`
	Content *string `json:"content"`
}
