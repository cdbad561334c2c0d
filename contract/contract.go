//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"forum-lab/domain"
	"forum-lab/domain/event"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one live subscriber: a handle able to push a named event to its client.
// Implementations must be comparable (pointer receivers) since the registry keys on them.
// Consume must not block past ctx; an error means the subscriber is dead.
type EventSink interface {
	Consume(ctx context.Context, e event.Envelope) error
}

// ClosableSink is a sink owning a client connection. The registry closes it
// when it evicts the sink so the connection writer stops and the client reconnects.
type ClosableSink interface {
	EventSink
	Close()
}

type IRegistry interface {
	Subscribe(key domain.ChannelKey, sink EventSink)
	Unsubscribe(key domain.ChannelKey, sink EventSink)
	Publish(ctx context.Context, key domain.ChannelKey, name event.Name, payload any)
	Channels() []domain.ChannelKey
	Subscribers(key domain.ChannelKey) []EventSink
	Len() int
}

type INotifier interface {
	Notify(ctx context.Context, job domain.NotificationJob) int
}

type IDispatcher interface {
	OnPostCreated(ctx context.Context, evt domain.PostCreated)
	OnReplyCreated(ctx context.Context, evt domain.ReplyCreated)
	OnAnnouncement(ctx context.Context, evt domain.PostCreated)
}
