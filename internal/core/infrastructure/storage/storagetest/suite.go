// Package storagetest 提供各会话存储实现共用的行为测试
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storage "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/taskrace/pkg/types"
)

// NewSession 构造一个带 n 个逐秒递增快照的会话
func NewSession(id string, start time.Time, n int) *types.RecordingSession {
	session := &types.RecordingSession{ID: id, StartedUtc: start.UTC()}
	for i := 0; i < n; i++ {
		at := start.Add(time.Duration(i)*time.Second + time.Duration(i)*1500*time.Microsecond)
		session.Snapshots = append(session.Snapshots, types.NewSnapshot(at))
	}
	return session
}

// Run 对 newStore 创建的存储执行完整的行为测试
func Run(t *testing.T, newStore func(t *testing.T) storage.SessionStore) {
	t.Run("SaveLoad", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		start := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)
		session := NewSession("s-1", start, 5)

		require.NoError(t, store.Save(ctx, session))

		loaded, err := store.Load(ctx, "s-1")
		require.NoError(t, err)
		assert.Equal(t, session.ID, loaded.ID)
		assert.True(t, session.StartedUtc.Equal(loaded.StartedUtc))
		require.Len(t, loaded.Snapshots, 5)
		for i := range session.Snapshots {
			assert.True(t, session.Snapshots[i].Equal(loaded.Snapshots[i]), "snapshot %d", i)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Load(context.Background(), "missing")
		assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, store.Save(ctx, NewSession("s-1", start, 2)))
		require.NoError(t, store.Save(ctx, NewSession("s-1", start, 4)))

		loaded, err := store.Load(ctx, "s-1")
		require.NoError(t, err)
		assert.Len(t, loaded.Snapshots, 4)

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"s-1"}, ids)
	})

	t.Run("ListOrdersByStart", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, store.Save(ctx, NewSession("late", base.Add(2*time.Hour), 1)))
		require.NoError(t, store.Save(ctx, NewSession("early", base, 1)))
		require.NoError(t, store.Save(ctx, NewSession("middle", base.Add(time.Hour), 1)))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"early", "middle", "late"}, ids)
	})

	t.Run("RejectsInvalid", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		assert.Error(t, store.Save(ctx, nil))
		assert.Error(t, store.Save(ctx, &types.RecordingSession{}))
	})

	t.Run("LoadedCopyIsIndependent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		session := NewSession("s-1", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 3)
		require.NoError(t, store.Save(ctx, session))

		// 保存后修改原对象不影响已存储内容
		session.Snapshots[0].X = 999

		loaded, err := store.Load(ctx, "s-1")
		require.NoError(t, err)
		assert.NotEqual(t, 999, loaded.Snapshots[0].X)
	})

	t.Run("ConcurrentSave", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("s-%02d", i)
				assert.NoError(t, store.Save(ctx, NewSession(id, base.Add(time.Duration(i)*time.Minute), 2)))
			}(i)
		}
		wg.Wait()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, 16)
		assert.Equal(t, "s-00", ids[0])
		assert.Equal(t, "s-15", ids[15])
	})
}
