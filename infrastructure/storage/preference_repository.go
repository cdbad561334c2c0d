//go:generate go run go.uber.org/mock/mockgen -source=preference_repository.go -destination=../../mocks/mock_preference_repository.go -package=mocks
package storage

import (
	stderrors "errors"
	"fmt"
	"forum-lab/domain"

	"github.com/dgraph-io/badger/v4"
)

type IPreferenceRepository interface {
	SetPreference(pref domain.NotificationPreference) error
	GetPreference(userID string, room domain.ChannelKey) (domain.NotificationPreference, error)
	ListSubscribers(room domain.ChannelKey) ([]domain.NotificationPreference, error)
}

type PreferenceRepository struct {
	db *badger.DB
}

func NewPreferenceRepository(db *badger.DB) PreferenceRepository {
	return PreferenceRepository{db: db}
}

type diskPreference struct {
	UserID string `json:"user_id"`
	Room   string `json:"room"`
	Notify bool   `json:"notify"`
}

// Preferences are grouped by room so the fan-out reads them with one prefix scan.
func preferenceKey(room domain.ChannelKey, userID string) []byte {
	return []byte(fmt.Sprintf("pref:%s:%s", room, userID))
}

// SetPreference upserts the (user, room) flag.
func (p PreferenceRepository) SetPreference(pref domain.NotificationPreference) error {
	return p.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, preferenceKey(pref.Room, pref.UserID), diskPreference{
			UserID: pref.UserID,
			Room:   string(pref.Room),
			Notify: pref.Notify,
		})
	})
}

// GetPreference returns the stored flag, or a disabled preference when the
// user never set one.
func (p PreferenceRepository) GetPreference(userID string, room domain.ChannelKey) (domain.NotificationPreference, error) {
	var disk diskPreference
	err := p.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, preferenceKey(room, userID), &disk)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.NotificationPreference{UserID: userID, Room: room}, nil
	}
	if err != nil {
		return domain.NotificationPreference{}, fmt.Errorf("get preference: %w", err)
	}
	return toPreference(disk), nil
}

// ListSubscribers returns the preferences of the room having notify enabled.
func (p PreferenceRepository) ListSubscribers(room domain.ChannelKey) ([]domain.NotificationPreference, error) {
	var prefs []domain.NotificationPreference
	err := p.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(fmt.Sprintf("pref:%s:", room))
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var disk diskPreference
			if err := it.Item().Value(func(val []byte) error {
				return decode(val, &disk)
			}); err != nil {
				return err
			}
			if disk.Notify {
				prefs = append(prefs, toPreference(disk))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list subscribers of %s: %w", room, err)
	}
	return prefs, nil
}

func toPreference(disk diskPreference) domain.NotificationPreference {
	return domain.NotificationPreference{
		UserID: disk.UserID,
		Room:   domain.ChannelKey(disk.Room),
		Notify: disk.Notify,
	}
}
