//go:generate go run go.uber.org/mock/mockgen -source=user_repository.go -destination=../../mocks/mock_user_repository.go -package=mocks
package storage

import (
	stderrors "errors"
	"fmt"
	"forum-lab/domain"
	"forum-lab/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IUserRepository interface {
	CreateUser(user domain.User) error
	GetUserByEmail(email string) (domain.User, error)
	GetUserByID(id string) (domain.User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

type diskUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Username     string    `json:"username"`
	IconURL      string    `json:"icon_url,omitempty"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

func userKey(id string) []byte {
	return []byte("user:id:" + id)
}

func userEmailKey(email string) []byte {
	return []byte("user:email:" + email)
}

// CreateUser persists the user under its id and indexes it by email.
// The email index makes the operation fail with ErrUserAlreadyExists on duplicates.
func (u UserRepository) CreateUser(user domain.User) error {
	return u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userEmailKey(user.Email)); err == nil {
			return errors.ErrUserAlreadyExists
		} else if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := setJSON(txn, userKey(user.ID), fromUser(user)); err != nil {
			return err
		}
		return txn.Set(userEmailKey(user.Email), []byte(user.ID))
	})
}

func (u UserRepository) GetUserByEmail(email string) (domain.User, error) {
	var disk diskUser
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userEmailKey(email))
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return getJSON(txn, userKey(string(id)), &disk)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return toUser(disk), nil
}

func (u UserRepository) GetUserByID(id string) (domain.User, error) {
	var disk diskUser
	err := u.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, userKey(id), &disk)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return toUser(disk), nil
}

func fromUser(user domain.User) diskUser {
	return diskUser{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Username:     user.Username,
		IconURL:      user.IconURL,
		Roles:        user.Roles,
		CreatedAt:    user.CreatedAt,
	}
}

func toUser(disk diskUser) domain.User {
	return domain.User{
		ID:           disk.ID,
		Email:        disk.Email,
		PasswordHash: disk.PasswordHash,
		Username:     disk.Username,
		IconURL:      disk.IconURL,
		Roles:        disk.Roles,
		CreatedAt:    disk.CreatedAt.UTC(),
	}
}
