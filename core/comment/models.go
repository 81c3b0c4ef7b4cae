package comment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vecindario/barrios/core"
)

type Comment struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Neighborhood string    `json:"neighborhood"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// NewComment is what a user posts. The author is the authenticated user.
type NewComment struct {
	Text         string `json:"text" validate:"required,max=2000"`
	Neighborhood string `json:"neighborhood" validate:"required,objectid"`
	Author       string `json:"-"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Text = core.CleanString(nc.Text)
	nc.Neighborhood = core.CleanString(nc.Neighborhood, true /* lower */)
	return validate.Struct(nc)
}

type UpdateComment struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (uc *UpdateComment) Validate(validate *validator.Validate) error {
	uc.Text = core.CleanString(uc.Text)
	return validate.Struct(uc)
}
