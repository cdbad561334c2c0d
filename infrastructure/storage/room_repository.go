//go:generate go run go.uber.org/mock/mockgen -source=room_repository.go -destination=../../mocks/mock_room_repository.go -package=mocks
package storage

import (
	stderrors "errors"
	"fmt"
	"forum-lab/domain"
	"forum-lab/errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IRoomRepository interface {
	CreateRoom(room domain.Room) error
	GetRoom(id domain.ChannelKey) (domain.Room, error)
	ListRooms(kind domain.RoomKind) ([]domain.Room, error)
	UpdateMemo(id domain.ChannelKey, memo string) (domain.Room, error)
	DeleteRoom(id domain.ChannelKey) error
}

type RoomRepository struct {
	db *badger.DB
}

func NewRoomRepository(db *badger.DB) RoomRepository {
	return RoomRepository{db: db}
}

type diskRoom struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Memo      string    `json:"memo,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func roomKey(id domain.ChannelKey) []byte {
	return []byte("room:" + string(id))
}

func (r RoomRepository) CreateRoom(room domain.Room) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, roomKey(room.ID), fromRoom(room))
	})
}

func (r RoomRepository) GetRoom(id domain.ChannelKey) (domain.Room, error) {
	var disk diskRoom
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, roomKey(id), &disk)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Room{}, errors.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("get room %s: %w", id, err)
	}
	return toRoom(disk), nil
}

// UpdateMemo rewrites the memo of a room and returns the updated room.
func (r RoomRepository) UpdateMemo(id domain.ChannelKey, memo string) (domain.Room, error) {
	var disk diskRoom
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := getJSON(txn, roomKey(id), &disk); err != nil {
			return err
		}
		disk.Memo = memo
		return setJSON(txn, roomKey(id), disk)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Room{}, errors.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("update memo of %s: %w", id, err)
	}
	return toRoom(disk), nil
}

func (r RoomRepository) DeleteRoom(id domain.ChannelKey) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(roomKey(id)); err != nil {
			return err
		}
		return txn.Delete(roomKey(id))
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrRoomNotFound
	}
	if err != nil {
		return fmt.Errorf("delete room %s: %w", id, err)
	}
	return nil
}

// ListRooms returns the rooms of the given kind, newest first.
func (r RoomRepository) ListRooms(kind domain.RoomKind) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte("room:")
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var disk diskRoom
			if err := it.Item().Value(func(val []byte) error {
				return decode(val, &disk)
			}); err != nil {
				return err
			}
			if domain.RoomKind(disk.Kind) == kind {
				rooms = append(rooms, toRoom(disk))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	slices.SortFunc(rooms, func(a, b domain.Room) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return rooms, nil
}

func fromRoom(room domain.Room) diskRoom {
	return diskRoom{
		ID:        string(room.ID),
		Kind:      string(room.Kind),
		Name:      room.Name,
		Memo:      room.Memo,
		CreatedBy: room.CreatedBy,
		CreatedAt: room.CreatedAt,
	}
}

func toRoom(disk diskRoom) domain.Room {
	return domain.Room{
		ID:        domain.ChannelKey(disk.ID),
		Kind:      domain.RoomKind(disk.Kind),
		Name:      disk.Name,
		Memo:      disk.Memo,
		CreatedBy: disk.CreatedBy,
		CreatedAt: disk.CreatedAt.UTC(),
	}
}
