package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrSubscriberClosed     = fmt.Errorf("subscriber connection closed")
	ErrSubscriberBacklogged = fmt.Errorf("subscriber buffer is full")
	ErrQueueFull            = fmt.Errorf("notification queue is full")

	ErrRoomNotFound         = fmt.Errorf("room not found")
	ErrPostNotFound         = fmt.Errorf("post not found")
	ErrParentRequired       = fmt.Errorf("parent id is required")
	ErrParentNotFound       = fmt.Errorf("parent post not found")
	ErrNotificationNotFound = fmt.Errorf("notification not found")
	ErrUserNotFound         = fmt.Errorf("user not found")
	ErrBannedWords          = fmt.Errorf("content contains banned words")
	ErrContentTooLong       = fmt.Errorf("content is too long")
	ErrInvalidRequest       = fmt.Errorf("invalid request")
	ErrForbidden            = fmt.Errorf("forbidden")
	ErrAlreadyMember        = fmt.Errorf("user is already a member")
	ErrNotMember            = fmt.Errorf("user is not a member")

	ErrUnauthenticated    = fmt.Errorf("authentication required")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrInvalidToken       = fmt.Errorf("invalid or expired token")
)

// HTTPStatus maps a domain error to the status code written by the transport layer.
// Anything unknown is an internal error.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.Is(err, ErrRoomNotFound),
		stderrors.Is(err, ErrPostNotFound),
		stderrors.Is(err, ErrParentNotFound),
		stderrors.Is(err, ErrNotificationNotFound),
		stderrors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, ErrParentRequired),
		stderrors.Is(err, ErrBannedWords),
		stderrors.Is(err, ErrContentTooLong),
		stderrors.Is(err, ErrInvalidRequest),
		stderrors.Is(err, ErrInvalidPassword):
		return http.StatusBadRequest
	case stderrors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case stderrors.Is(err, ErrUnauthenticated),
		stderrors.Is(err, ErrInvalidCredentials),
		stderrors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case stderrors.Is(err, ErrUserAlreadyExists),
		stderrors.Is(err, ErrAlreadyMember),
		stderrors.Is(err, ErrNotMember):
		return http.StatusConflict
	case stderrors.Is(err, ErrQueueFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
