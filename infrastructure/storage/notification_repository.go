//go:generate go run go.uber.org/mock/mockgen -source=notification_repository.go -destination=../../mocks/mock_notification_repository.go -package=mocks
package storage

import (
	stderrors "errors"
	"fmt"
	"forum-lab/domain"
	"forum-lab/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type INotificationRepository interface {
	CreateNotification(notification domain.Notification) error
	GetNotification(id string) (domain.Notification, error)
	ListNotifications(userID string) ([]domain.Notification, error)
	CountUnread(userID string) (int, error)
	MarkRead(id string) error
	MarkAllRead(userID string) (int, error)
}

type NotificationRepository struct {
	db *badger.DB
}

func NewNotificationRepository(db *badger.DB) NotificationRepository {
	return NotificationRepository{db: db}
}

type diskNotification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	URL       string    `json:"url"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func notificationPrefix(userID string) string {
	return fmt.Sprintf("notif:%s:", userID)
}

func notificationIDKey(id string) []byte {
	return []byte("notifid:" + id)
}

// CreateNotification stores the record under "notif:{user_id}:{timestamp_padded}:{id}"
// so the inbox of a user is a single prefix scan, plus an id index.
func (n NotificationRepository) CreateNotification(notification domain.Notification) error {
	key := []byte(notificationPrefix(notification.UserID) + padTime(notification.CreatedAt) + ":" + notification.ID)
	return n.db.Update(func(txn *badger.Txn) error {
		if err := setJSON(txn, key, fromNotification(notification)); err != nil {
			return err
		}
		return txn.Set(notificationIDKey(notification.ID), key)
	})
}

func (n NotificationRepository) GetNotification(id string) (domain.Notification, error) {
	var disk diskNotification
	err := n.db.View(func(txn *badger.Txn) error {
		key, err := n.resolve(txn, id)
		if err != nil {
			return err
		}
		return getJSON(txn, key, &disk)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Notification{}, errors.ErrNotificationNotFound
	}
	if err != nil {
		return domain.Notification{}, fmt.Errorf("get notification %s: %w", id, err)
	}
	return toNotification(disk), nil
}

// ListNotifications returns the inbox of a user, newest first.
func (n NotificationRepository) ListNotifications(userID string) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := n.db.View(func(txn *badger.Txn) error {
		prefix := []byte(notificationPrefix(userID))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(append([]byte(notificationPrefix(userID)), []byte(maxTimestamp)...)); it.ValidForPrefix(prefix); it.Next() {
			var disk diskNotification
			if err := it.Item().Value(func(val []byte) error {
				return decode(val, &disk)
			}); err != nil {
				return err
			}
			notifications = append(notifications, toNotification(disk))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications of %s: %w", userID, err)
	}
	return notifications, nil
}

func (n NotificationRepository) CountUnread(userID string) (int, error) {
	count := 0
	err := n.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(notificationPrefix(userID))
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var disk diskNotification
			if err := it.Item().Value(func(val []byte) error {
				return decode(val, &disk)
			}); err != nil {
				return err
			}
			if !disk.IsRead {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count unread of %s: %w", userID, err)
	}
	return count, nil
}

func (n NotificationRepository) MarkRead(id string) error {
	err := n.db.Update(func(txn *badger.Txn) error {
		key, err := n.resolve(txn, id)
		if err != nil {
			return err
		}
		var disk diskNotification
		if err = getJSON(txn, key, &disk); err != nil {
			return err
		}
		if disk.IsRead {
			return nil
		}
		disk.IsRead = true
		return setJSON(txn, key, disk)
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return errors.ErrNotificationNotFound
	}
	return err
}

// MarkAllRead flags every unread notification of the user and returns how many changed.
func (n NotificationRepository) MarkAllRead(userID string) (int, error) {
	type pending struct {
		key  []byte
		disk diskNotification
	}
	var updated int
	err := n.db.Update(func(txn *badger.Txn) error {
		var unread []pending
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(notificationPrefix(userID))
		it := txn.NewIterator(options)
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var disk diskNotification
			if err := item.Value(func(val []byte) error {
				return decode(val, &disk)
			}); err != nil {
				it.Close()
				return err
			}
			if !disk.IsRead {
				unread = append(unread, pending{key: item.KeyCopy(nil), disk: disk})
			}
		}
		it.Close()

		for _, p := range unread {
			p.disk.IsRead = true
			if err := setJSON(txn, p.key, p.disk); err != nil {
				return err
			}
		}
		updated = len(unread)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("mark all read for %s: %w", userID, err)
	}
	return updated, nil
}

func (n NotificationRepository) resolve(txn *badger.Txn, id string) ([]byte, error) {
	item, err := txn.Get(notificationIDKey(id))
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func fromNotification(notification domain.Notification) diskNotification {
	return diskNotification{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Message:   notification.Message,
		URL:       notification.URL,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}

func toNotification(disk diskNotification) domain.Notification {
	return domain.Notification{
		ID:        disk.ID,
		UserID:    disk.UserID,
		Message:   disk.Message,
		URL:       disk.URL,
		IsRead:    disk.IsRead,
		CreatedAt: disk.CreatedAt.UTC(),
	}
}
