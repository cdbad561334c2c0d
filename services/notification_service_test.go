package services

import (
	"forum-lab/domain"
	"forum-lab/errors"
	"forum-lab/mocks"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotificationService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockINotificationRepository(ctrl)
	svc := NewNotificationService(repo)

	t.Run("should mark the recipient's own notification", func(t *testing.T) {
		req := require.New(t)
		repo.EXPECT().GetNotification("n1").Return(domain.Notification{ID: "n1", UserID: "alice"}, nil)
		repo.EXPECT().MarkRead("n1").Return(nil)

		req.NoError(svc.MarkRead("alice", "n1"))
	})

	t.Run("should refuse someone else's notification", func(t *testing.T) {
		req := require.New(t)
		repo.EXPECT().GetNotification("n1").Return(domain.Notification{ID: "n1", UserID: "alice"}, nil)
		repo.EXPECT().MarkRead(gomock.Any()).Times(0)

		req.ErrorIs(svc.MarkRead("mallory", "n1"), errors.ErrForbidden)
	})

	t.Run("should propagate unknown ids", func(t *testing.T) {
		req := require.New(t)
		repo.EXPECT().GetNotification("missing").Return(domain.Notification{}, errors.ErrNotificationNotFound)

		req.ErrorIs(svc.MarkRead("alice", "missing"), errors.ErrNotificationNotFound)
	})
}

func TestNotificationService_Inbox(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockINotificationRepository(ctrl)
	svc := NewNotificationService(repo)

	// Given
	repo.EXPECT().ListNotifications("alice").Return([]domain.Notification{{ID: "n2"}, {ID: "n1", IsRead: true}}, nil)
	repo.EXPECT().CountUnread("alice").Return(1, nil)
	repo.EXPECT().MarkAllRead("alice").Return(1, nil)

	// When / Then
	list, err := svc.List("alice")
	req.NoError(err)
	req.Len(list, 2)

	count, err := svc.CountUnread("alice")
	req.NoError(err)
	req.Equal(1, count)

	marked, err := svc.MarkAllRead("alice")
	req.NoError(err)
	req.Equal(1, marked)
}
