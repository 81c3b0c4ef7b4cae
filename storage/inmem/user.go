package inmemdb

import (
	"context"

	"github.com/vecindario/barrios/core"
	"github.com/vecindario/barrios/core/user"
)

var userOrderings = map[string]compareFunc[user.User]{
	"email":      func(a, b user.User) int { return compareStrings(a.Email, b.Email) },
	"nickname":   func(a, b user.User) int { return compareStrings(a.Nickname, b.Nickname) },
	"name":       func(a, b user.User) int { return compareStrings(a.Name, b.Name) },
	"surname":    func(a, b user.User) int { return compareStrings(a.Surname, b.Surname) },
	"created_at": func(a, b user.User) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"last_login": func(a, b user.User) int { return a.LastLogin.Compare(b.LastLogin) },
}

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.table))
	for _, u := range repo.db.table {
		users = append(users, copyUser(*u))
	}
	return users
}

func copyUser(usr user.User) user.User {
	usr.Comments = copyStrings(usr.Comments)
	usr.Leisure = copyStrings(usr.Leisure)
	usr.Jobs = copyStrings(usr.Jobs)
	usr.Schools = copyStrings(usr.Schools)
	return usr
}

func (repo *userRepository) CheckUniqueness(_ context.Context, email, nickname string, excludedIDs ...string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excluded := make(map[string]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	for _, usr := range repo.db.table {
		if excluded[usr.ID] {
			continue
		}
		if usr.Email == email {
			return user.ErrEmailExists
		}
		if usr.Nickname == nickname {
			return user.ErrNicknameExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = newID()
	stored := copyUser(usr)
	repo.db.table[usr.ID] = &stored
	return usr, nil
}

func (repo *userRepository) QueryUsers(_ context.Context, orderings ...core.DBOrdering) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := repo.query()
	sortBy(users, orderings, userOrderings, func(u user.User) string { return u.ID })
	return users, nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.table[id]; ok {
		return copyUser(*usr), nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.db.table {
		if usr.Email == email {
			return copyUser(*usr), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origUsr, ok := repo.db.table[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	// reference lists only change through AddUserRef
	usr.Comments = origUsr.Comments
	usr.Leisure = origUsr.Leisure
	usr.Jobs = origUsr.Jobs
	usr.Schools = origUsr.Schools
	usr.CreatedAt = origUsr.CreatedAt
	if usr.PasswordHash == nil {
		usr.PasswordHash = origUsr.PasswordHash
	}

	repo.db.table[usr.ID] = &usr
	return copyUser(usr), nil
}

func (repo *userRepository) AddUserRef(_ context.Context, id string, list user.RefList, ref string) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.table[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if !usr.HasRef(list, ref) {
		usr.AddRef(list, ref)
	}
	return copyUser(*usr), nil
}

func (repo *userRepository) DeleteUser(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return user.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
