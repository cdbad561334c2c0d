//go:generate go run go.uber.org/mock/mockgen -source=member_repository.go -destination=../../mocks/mock_member_repository.go -package=mocks
package storage

import (
	stderrors "errors"
	"fmt"
	"forum-lab/domain"
	"forum-lab/errors"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// IMemberRepository keeps who belongs to a private conversation.
type IMemberRepository interface {
	AddMember(room domain.ChannelKey, userID string, at time.Time) error
	RemoveMember(room domain.ChannelKey, userID string) error
	IsMember(room domain.ChannelKey, userID string) (bool, error)
	ListMembers(room domain.ChannelKey) ([]string, error)
	ListRoomsOf(userID string) ([]domain.ChannelKey, error)
	DeleteMembers(room domain.ChannelKey) (int, error)
}

// MemberRepository writes each membership twice so both directions are a
// prefix scan: "member:{room}:{user}" and "joined:{user}:{room}".
type MemberRepository struct {
	db *badger.DB
}

func NewMemberRepository(db *badger.DB) MemberRepository {
	return MemberRepository{db: db}
}

type diskMember struct {
	Room     string    `json:"room"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func memberPrefix(room domain.ChannelKey) string {
	return "member:" + string(room) + ":"
}

func memberKey(room domain.ChannelKey, userID string) []byte {
	return []byte(memberPrefix(room) + userID)
}

func joinedPrefix(userID string) string {
	return "joined:" + userID + ":"
}

func joinedKey(userID string, room domain.ChannelKey) []byte {
	return []byte(joinedPrefix(userID) + string(room))
}

func (m MemberRepository) AddMember(room domain.ChannelKey, userID string, at time.Time) error {
	err := m.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(memberKey(room, userID)); err == nil {
			return errors.ErrAlreadyMember
		} else if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := setJSON(txn, memberKey(room, userID), diskMember{Room: string(room), UserID: userID, JoinedAt: at}); err != nil {
			return err
		}
		return txn.Set(joinedKey(userID, room), []byte(string(room)))
	})
	if err != nil && !stderrors.Is(err, errors.ErrAlreadyMember) {
		return fmt.Errorf("add member %s to %s: %w", userID, room, err)
	}
	return err
}

func (m MemberRepository) RemoveMember(room domain.ChannelKey, userID string) error {
	err := m.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(memberKey(room, userID)); err != nil {
			return err
		}
		if err := txn.Delete(memberKey(room, userID)); err != nil {
			return err
		}
		return txn.Delete(joinedKey(userID, room))
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrNotMember
	}
	if err != nil {
		return fmt.Errorf("remove member %s from %s: %w", userID, room, err)
	}
	return nil
}

func (m MemberRepository) IsMember(room domain.ChannelKey, userID string) (bool, error) {
	err := m.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(memberKey(room, userID))
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check member %s of %s: %w", userID, room, err)
	}
	return true, nil
}

// ListMembers returns the user ids of a conversation, earliest member first.
func (m MemberRepository) ListMembers(room domain.ChannelKey) ([]string, error) {
	var members []diskMember
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(memberPrefix(room))
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var disk diskMember
			if err := it.Item().Value(func(val []byte) error {
				return decode(val, &disk)
			}); err != nil {
				return err
			}
			members = append(members, disk)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list members of %s: %w", room, err)
	}
	slices.SortStableFunc(members, func(a, b diskMember) int {
		return a.JoinedAt.Compare(b.JoinedAt)
	})
	ids := make([]string, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.UserID)
	}
	return ids, nil
}

func (m MemberRepository) ListRoomsOf(userID string) ([]domain.ChannelKey, error) {
	var rooms []domain.ChannelKey
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := joinedPrefix(userID)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = []byte(prefix)
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			rooms = append(rooms, domain.ChannelKey(strings.TrimPrefix(string(it.Item().Key()), prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list rooms of %s: %w", userID, err)
	}
	return rooms, nil
}

// DeleteMembers drops every membership of a conversation and returns how many there were.
func (m MemberRepository) DeleteMembers(room domain.ChannelKey) (int, error) {
	members, err := m.ListMembers(room)
	if err != nil {
		return 0, err
	}
	wb := m.db.NewWriteBatch()
	defer wb.Cancel()
	for _, userID := range members {
		if err = wb.Delete(memberKey(room, userID)); err != nil {
			return 0, fmt.Errorf("delete members of %s: %w", room, err)
		}
		if err = wb.Delete(joinedKey(userID, room)); err != nil {
			return 0, fmt.Errorf("delete members of %s: %w", room, err)
		}
	}
	if err = wb.Flush(); err != nil {
		return 0, fmt.Errorf("delete members of %s: %w", room, err)
	}
	return len(members), nil
}
