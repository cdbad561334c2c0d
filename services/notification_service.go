//go:generate go run go.uber.org/mock/mockgen -source=notification_service.go -destination=../mocks/mock_notification_service.go -package=mocks
package services

import (
	"forum-lab/domain"
	"forum-lab/errors"
	"forum-lab/infrastructure/storage"
)

type INotificationService interface {
	List(userID string) ([]domain.Notification, error)
	CountUnread(userID string) (int, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) (int, error)
}

type NotificationService struct {
	repository storage.INotificationRepository
}

func NewNotificationService(repository storage.INotificationRepository) *NotificationService {
	return &NotificationService{repository: repository}
}

func (s *NotificationService) List(userID string) ([]domain.Notification, error) {
	return s.repository.ListNotifications(userID)
}

func (s *NotificationService) CountUnread(userID string) (int, error) {
	return s.repository.CountUnread(userID)
}

// MarkRead only lets the recipient touch its own notification.
func (s *NotificationService) MarkRead(userID, notificationID string) error {
	notification, err := s.repository.GetNotification(notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return errors.ErrForbidden
	}
	return s.repository.MarkRead(notificationID)
}

func (s *NotificationService) MarkAllRead(userID string) (int, error) {
	return s.repository.MarkAllRead(userID)
}
