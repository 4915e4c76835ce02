package actions

import "time"

// Action is one entry of the "Nos actions" list, addressed by ActionID.
type Action struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	ActionID    string    `bson:"action_id" json:"action_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Order       int       `bson:"order" json:"order"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type PublicAction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=255"`
	Description *string `json:"description" validate:"omitnil,notblank"`
	Order       *int    `json:"order" validate:"omitnil,min=0"`
}

// ReorderRequest lists action slugs in their new display order.
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,unique,dive,notblank"`
}
