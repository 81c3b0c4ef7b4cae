// Package place manages the leisure venues, job offers and schools users keep track of.
package place

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core"
)

// Kind of place. Each kind is stored in its own collection.
type Kind string

const (
	KindLeisure Kind = "leisure"
	KindJob     Kind = "jobs"
	KindSchool  Kind = "schools"
)

var Kinds = []Kind{KindLeisure, KindJob, KindSchool}

var errPhoneRequired = errors.New("this field is required")

// PhoneRequired reports whether places of this kind must carry a phone number.
func (k Kind) PhoneRequired() bool {
	return k == KindSchool
}

type Place struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Street      string    `json:"street"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type NewPlace struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Street      string `json:"street" validate:"required"`
	Phone       string `json:"phone"`
}

func (np *NewPlace) Validate(kind Kind, validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	np.Description = core.CleanString(np.Description)
	np.Street = core.CleanString(np.Street)
	np.Phone = core.CleanString(np.Phone)

	if err := validate.Struct(np); err != nil {
		return err
	}
	return checkPhone(kind, np.Phone)
}

// UpdatePlace holds the fields to change. Blank fields keep their current value.
type UpdatePlace struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Street      string `json:"street"`
	Phone       string `json:"phone"`
}

func (up *UpdatePlace) Validate(orig Place, validate *validator.Validate) error {
	fill := func(val, orig string) string {
		if val = core.CleanString(val); val != "" {
			return val
		}
		return orig
	}
	up.Name = fill(up.Name, orig.Name)
	up.Description = fill(up.Description, orig.Description)
	up.Street = fill(up.Street, orig.Street)
	up.Phone = fill(up.Phone, orig.Phone)

	if err := validate.Struct(up); err != nil {
		return err
	}
	return checkPhone(orig.Kind, up.Phone)
}

func checkPhone(kind Kind, phone string) error {
	if kind.PhoneRequired() && phone == "" {
		return core.NewValidationError(errPhoneRequired, core.FieldError{Field: "phone", Error: errPhoneRequired.Error()})
	}
	return nil
}
