package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/taskrace/pkg/types"
	"github.com/weisyn/taskrace/pkg/utils/timeutil"
)

func testAppConfig() *types.AppConfig {
	return &types.AppConfig{
		Log:      &types.UserLogConfig{Level: types.StringPtr("error")},
		Clock:    &types.UserClockConfig{Type: types.StringPtr("system")},
		Recorder: &types.UserRecorderConfig{Store: types.StringPtr("memory")},
		Metrics:  &types.UserMetricsConfig{Enabled: types.BoolPtr(false)},
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	assert.Equal(t, DefaultConfigPath, resolveConfigPath(""))

	t.Setenv(ConfigEnvVar, "/tmp/from-env.json")
	assert.Equal(t, "/tmp/from-env.json", resolveConfigPath(""))
	assert.Equal(t, "explicit.json", resolveConfigPath("explicit.json"))
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file falls back to embedded defaults", func(t *testing.T) {
		cfg, err := LoadConfigFile(filepath.Join(dir, "none.json"))
		require.NoError(t, err)
		require.NotNil(t, cfg.Recorder)
		assert.Equal(t, "taskrace", *cfg.AppName)
		assert.Equal(t, "memory", *cfg.Recorder.Store)
		assert.False(t, *cfg.Metrics.Enabled)
		assert.Len(t, cfg.Lookup.URLs, 4)
	})

	t.Run("parses sections", func(t *testing.T) {
		path := filepath.Join(dir, "taskrace.json")
		data := `{"app_name":"demo","race":{"timeout_ms":2500},"recorder":{"store":"badger","interval_ms":250}}`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Race)
		assert.Equal(t, "demo", *cfg.AppName)
		assert.Equal(t, int64(2500), *cfg.Race.TimeoutMs)
		assert.Equal(t, "badger", *cfg.Recorder.Store)
		assert.Equal(t, int64(250), *cfg.Recorder.IntervalMs)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		_, err := LoadConfigFile(path)
		assert.Error(t, err)
	})
}

func TestLoadAppConfig_OverridesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	badgerPath := filepath.Join(dir, "sessions")

	o := newOptions(
		WithAppConfig(&types.AppConfig{}),
		WithOverride(func(c *types.AppConfig) {
			c.Recorder = &types.UserRecorderConfig{
				Store:      types.StringPtr("badger"),
				BadgerPath: types.StringPtr(badgerPath),
			}
		}),
		WithOverride(nil),
	)
	require.NoError(t, o.loadAppConfig())

	assert.Equal(t, "badger", *o.GetAppConfig().Recorder.Store)
	info, err := os.Stat(badgerPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStart_WiresServices(t *testing.T) {
	prev := timeutil.Swap(nil)
	t.Cleanup(func() { timeutil.Install(prev) })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := Start(ctx, WithAppConfig(testAppConfig()))
	require.NoError(t, err)

	assert.NotNil(t, a.Provider)
	assert.NotNil(t, a.Logger)
	assert.NotNil(t, a.Resolver)
	require.NotNil(t, a.Replay)
	assert.Equal(t, "memory", a.Replay.Options().Store)

	// 启动后进程级时钟已安装
	_, err = timeutil.Current()
	assert.NoError(t, err)

	require.NoError(t, a.Stop())
}

func TestRun_RecordsAndReplays(t *testing.T) {
	prev := timeutil.Swap(nil)
	t.Cleanup(func() { timeutil.Install(prev) })

	cfg := testAppConfig()
	err := Run(context.Background(), func(ctx context.Context, a *App) error {
		session, err := a.Replay.Record(ctx, 30*time.Millisecond, 10*time.Millisecond, nil)
		if err != nil {
			return err
		}
		_, replayed, err := a.Replay.Replay(ctx, session.ID, nil)
		if err != nil {
			return err
		}
		assert.Len(t, replayed, len(session.Snapshots))
		return nil
	}, WithAppConfig(cfg), WithoutAPI())
	require.NoError(t, err)
}

func TestStart_InvalidStore(t *testing.T) {
	cfg := testAppConfig()
	cfg.Recorder.Store = types.StringPtr("tape")

	_, err := Start(context.Background(), WithAppConfig(cfg))
	assert.Error(t, err)
}
