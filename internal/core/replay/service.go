package replay

import (
	"context"
	"errors"
	"fmt"
	"time"

	recorderconfig "github.com/weisyn/taskrace/internal/config/recorder"
	"github.com/weisyn/taskrace/internal/core/infrastructure/metrics"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/taskrace/pkg/types"
)

// Service 录制、持久化与回放的组合服务
type Service struct {
	store   storage.SessionStore
	opts    *recorderconfig.RecorderOptions
	logger  log.Logger
	bus     event.EventBus
	metrics *metrics.RaceMetrics
}

// NewService 创建服务；logger、bus、m 均可为 nil
func NewService(store storage.SessionStore, opts *recorderconfig.RecorderOptions, logger log.Logger, bus event.EventBus, m *metrics.RaceMetrics) *Service {
	if opts == nil {
		opts = recorderconfig.New(nil).GetOptions()
	}
	return &Service{store: store, opts: opts, logger: logger, bus: bus, metrics: m}
}

// Options 当前录制配置
func (s *Service) Options() *recorderconfig.RecorderOptions { return s.opts }

func (s *Service) hooks() []CaptureHook {
	var hooks []CaptureHook
	if s.bus != nil {
		hooks = append(hooks, func(snap types.Snapshot) {
			s.bus.Publish(types.EventTypeSnapshotCaptured, snap)
		})
	}
	if s.metrics != nil {
		hooks = append(hooks, func(types.Snapshot) { s.metrics.SnapshotCaptured() })
	}
	return hooks
}

// Record 录制一个会话并保存；duration/interval 为 0 时使用配置值
func (s *Service) Record(ctx context.Context, duration, interval time.Duration, onTick func(int, types.Snapshot)) (*types.RecordingSession, error) {
	if duration <= 0 {
		duration = s.opts.Duration
	}
	if interval <= 0 {
		interval = s.opts.Interval
	}

	rec := NewRecorder(s.hooks()...)
	session, err := rec.Record(ctx, RecordOptions{Duration: duration, Interval: interval, OnTick: onTick})
	if err != nil {
		return session, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return session, fmt.Errorf("保存会话失败: %w", err)
	}
	if s.logger != nil {
		s.logger.Infof("会话已保存: id=%s snapshots=%d", session.ID, len(session.Snapshots))
	}
	return session, nil
}

// Replay 读取会话并回放，返回会话与回放得到的快照
func (s *Service) Replay(ctx context.Context, id string, onStep func(int, types.Snapshot)) (*types.RecordingSession, []types.Snapshot, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("读取会话 %s 失败: %w", id, err)
	}

	replayed, err := Replay(session.Snapshots, onStep)
	var mismatch *MismatchError
	if errors.As(err, &mismatch) {
		if s.metrics != nil {
			s.metrics.ReplayMismatch()
		}
		if s.logger != nil {
			s.logger.Warnf("回放不一致: id=%s %v", id, err)
		}
	}
	return session, replayed, err
}

// Latest 最近一次录制的会话 ID
func (s *Service) Latest(ctx context.Context) (string, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", storage.ErrSessionNotFound
	}
	return ids[len(ids)-1], nil
}

// Sessions 全部会话 ID
func (s *Service) Sessions(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}
