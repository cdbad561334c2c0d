package workers

import (
	"context"
	"forum-lab/domain"
	"forum-lab/domain/event"
	"forum-lab/mocks"
	"forum-lab/observability"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHeartbeatWorker_Pings_Every_Live_Channel(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	monitoring := observability.NewMonitoringManager(slog.Default(), nil)

	// Given two live channels
	registry.EXPECT().Channels().Return([]domain.ChannelKey{"R1", "R2"}).AnyTimes()
	registry.EXPECT().Len().Return(3).AnyTimes()

	// Then each of them gets a ping
	registry.EXPECT().Publish(gomock.Any(), domain.ChannelKey("R1"), event.Ping, gomock.Any())
	registry.EXPECT().Publish(gomock.Any(), domain.ChannelKey("R2"), event.Ping, gomock.Any())

	worker := NewHeartbeatWorker(slog.Default(), registry, monitoring, time.Hour)
	worker.sweep(context.Background(), time.Now().UTC())

	stats := monitoring.GetLatest()
	req.Equal(2, stats.LiveChannels)
	req.Equal(3, stats.LiveSubscribers)
}

func TestHeartbeatWorker_Run_Until_Cancel(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	registry.EXPECT().Channels().Return(nil).AnyTimes()
	registry.EXPECT().Len().Return(0).AnyTimes()

	worker := NewHeartbeatWorker(slog.Default(), registry, nil, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req.ErrorIs(worker.Run(ctx), context.DeadlineExceeded)
}
