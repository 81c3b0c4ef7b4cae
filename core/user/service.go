package user

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vecindario/barrios/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("user not found")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrNicknameExists = errors.New("a user with this nickname already exists")
)

type (
	Repository interface {
		// CheckUniqueness returns ErrEmailExists or ErrNicknameExists when another user
		// (not in excludedIDs) already holds the email or the nickname.
		CheckUniqueness(ctx context.Context, email, nickname string, excludedIDs ...string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryUsers(ctx context.Context, orderings ...core.DBOrdering) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		// UpdateUser replaces the profile fields of the stored user. Reference lists are left as is.
		UpdateUser(ctx context.Context, usr User) (User, error)
		AddUserRef(ctx context.Context, id string, list RefList, ref string) (User, error)
		DeleteUser(ctx context.Context, id string) error
	}

	Service interface {
		CheckUniqueness(ctx context.Context, email, nickname string, excludedIDs ...string) error
		Create(ctx context.Context, nu NewUser) (User, error)
		Query(ctx context.Context, orderings ...core.DBOrdering) ([]User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		Exists(ctx context.Context, id string) (bool, error)
		Update(ctx context.Context, id string, uu UpdateUser) (User, error)
		AddRef(ctx context.Context, id string, ar AddRef) (User, error)
		SetLastLogin(ctx context.Context, usr User) (User, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) CheckUniqueness(ctx context.Context, email, nickname string, excludedIDs ...string) error {
	if err := svc.repo.CheckUniqueness(ctx, email, nickname, excludedIDs...); err != nil {
		var field string
		switch errors.Cause(err) {
		case ErrNicknameExists:
			field = "nickname"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *service) Create(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Email:     nu.Email,
		Name:      nu.Name,
		Surname:   nu.Surname,
		Phone:     nu.Phone,
		Nickname:  nu.Nickname,
		Role:      nu.Role,
		Comments:  []string{},
		Leisure:   []string{},
		Jobs:      []string{},
		Schools:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if usr.Role == "" {
		usr.Role = RoleUser
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *service) Query(ctx context.Context, orderings ...core.DBOrdering) ([]User, error) {
	return svc.repo.QueryUsers(ctx, orderings...)
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, core.CleanString(id, true /* lower */))
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *service) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := svc.GetByID(ctx, id); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (svc *service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	usr.Email = uu.Email
	usr.Name = uu.Name
	usr.Surname = uu.Surname
	usr.Phone = uu.Phone
	usr.Nickname = uu.Nickname
	usr.Role = uu.Role
	if uu.Neighborhood != nil {
		usr.Neighborhood = *uu.Neighborhood
	}
	if uu.Blocked != nil {
		usr.Blocked = *uu.Blocked
	}
	if uu.Password != "" {
		if err = usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *service) AddRef(ctx context.Context, id string, ar AddRef) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if usr.HasRef(ar.List, ar.ID) {
		return usr, nil
	}
	return svc.repo.AddUserRef(ctx, id, ar.List, ar.ID)
}

func (svc *service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteUser(ctx, id)
}
