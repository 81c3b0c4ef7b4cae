package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/vecindario/barrios/core"
)

// Roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// RefList names one of the reference lists a User holds.
type RefList string

const (
	RefComments RefList = "comments"
	RefLeisure  RefList = "leisure"
	RefJobs     RefList = "jobs"
	RefSchools  RefList = "schools"
)

var RefLists = []RefList{RefComments, RefLeisure, RefJobs, RefSchools}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Phone        string    `json:"phone"`
	Nickname     string    `json:"nickname"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	Role         string    `json:"role"`
	Blocked      bool      `json:"blocked"`
	Comments     []string  `json:"comments"`
	Leisure      []string  `json:"leisure"`
	Jobs         []string  `json:"jobs"`
	Schools      []string  `json:"schools"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Refs returns the reference list named `list`.
func (u *User) Refs(list RefList) []string {
	switch list {
	case RefComments:
		return u.Comments
	case RefLeisure:
		return u.Leisure
	case RefJobs:
		return u.Jobs
	case RefSchools:
		return u.Schools
	}
	return nil
}

// HasRef reports whether `id` is in the reference list named `list`.
func (u *User) HasRef(list RefList, id string) bool {
	for _, ref := range u.Refs(list) {
		if ref == id {
			return true
		}
	}
	return false
}

// AddRef appends `id` to the reference list named `list`.
func (u *User) AddRef(list RefList, id string) {
	switch list {
	case RefComments:
		u.Comments = append(u.Comments, id)
	case RefLeisure:
		u.Leisure = append(u.Leisure, id)
	case RefJobs:
		u.Jobs = append(u.Jobs, id)
	case RefSchools:
		u.Schools = append(u.Schools, id)
	}
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Nickname string `json:"nickname" validate:"required,min=3,alphanum_"`
	Role     string `json:"-" validate:"omitempty,oneof=USER ADMIN"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	nu.Surname = core.CleanString(nu.Surname)
	nu.Phone = core.CleanString(nu.Phone)
	nu.Nickname = core.CleanString(nu.Nickname, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Email, nu.Nickname)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Email        string  `json:"email" validate:"omitempty,email"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Phone        string  `json:"phone"`
	Nickname     string  `json:"nickname" validate:"omitempty,min=3,alphanum_"`
	Neighborhood *string `json:"neighborhood" validate:"omitempty,objectid"`
	Role         string  `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	Blocked      *bool   `json:"blocked"`
	Password     string  `json:"password"`
}

// Validate fills the blank fields from `origUsr` then validates the result.
func (uu *UpdateUser) Validate(ctx context.Context, origUsr User, validate *validator.Validate, svc Service) error {
	fill := func(val, orig string, lower bool) string {
		if val = core.CleanString(val, lower); val != "" {
			return val
		}
		return orig
	}
	uu.Email = fill(uu.Email, origUsr.Email, true)
	uu.Name = fill(uu.Name, origUsr.Name, false)
	uu.Surname = fill(uu.Surname, origUsr.Surname, false)
	uu.Phone = fill(uu.Phone, origUsr.Phone, false)
	uu.Nickname = fill(uu.Nickname, origUsr.Nickname, true)
	uu.Role = fill(uu.Role, origUsr.Role, false)
	if uu.Neighborhood != nil {
		nb := core.CleanString(*uu.Neighborhood, true /* lower */)
		uu.Neighborhood = &nb
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, uu.Email, uu.Nickname, origUsr.ID)
}

// AddRef is the payload used to link an object to one of the user's reference lists.
type AddRef struct {
	List RefList `json:"list" validate:"required,oneof=comments leisure jobs schools"`
	ID   string  `json:"id" validate:"required,objectid"`
}

func (ar *AddRef) Validate(validate *validator.Validate) error {
	ar.List = RefList(core.CleanString(string(ar.List), true /* lower */))
	ar.ID = core.CleanString(ar.ID, true /* lower */)
	return validate.Struct(ar)
}
