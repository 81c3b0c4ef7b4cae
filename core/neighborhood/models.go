package neighborhood

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vecindario/barrios/core"
)

type Neighborhood struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Streets     []string  `json:"streets"`
	Description string    `json:"description"`
	Comments    []string  `json:"comments"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

func (nb *Neighborhood) HasComment(id string) bool {
	for _, c := range nb.Comments {
		if c == id {
			return true
		}
	}
	return false
}

type NewNeighborhood struct {
	Name        string   `json:"name" validate:"required"`
	Streets     []string `json:"streets" validate:"required,min=1"`
	Description string   `json:"description" validate:"required"`
}

func (nn *NewNeighborhood) Validate(validate *validator.Validate) error {
	nn.Name = core.CleanString(nn.Name)
	nn.Streets = core.CleanStrings(nn.Streets)
	nn.Description = core.CleanString(nn.Description)
	return validate.Struct(nn)
}

// UpdateNeighborhood holds the fields to change. Blank fields keep their current value.
type UpdateNeighborhood struct {
	Name        string   `json:"name"`
	Streets     []string `json:"streets"`
	Description string   `json:"description"`
}

func (un *UpdateNeighborhood) Validate(orig Neighborhood, validate *validator.Validate) error {
	if un.Name = core.CleanString(un.Name); un.Name == "" {
		un.Name = orig.Name
	}
	if un.Description = core.CleanString(un.Description); un.Description == "" {
		un.Description = orig.Description
	}
	if un.Streets = core.CleanStrings(un.Streets); len(un.Streets) == 0 {
		un.Streets = orig.Streets
	}
	return validate.Struct(un)
}

type AddComment struct {
	CommentID string `json:"comment_id" validate:"required,objectid"`
}

func (ac *AddComment) Validate(validate *validator.Validate) error {
	ac.CommentID = core.CleanString(ac.CommentID, true /* lower */)
	return validate.Struct(ac)
}
