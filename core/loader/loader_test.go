package loader_test

import (
	"context"
	"errors"
	"testing"

	"packetgen/core/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	calls   *[]string
}

func (f fakeFeature) Name() string    { return f.name }
func (f fakeFeature) IsEnabled() bool { return f.enabled }
func (f fakeFeature) Run(ctx context.Context) error {
	*f.calls = append(*f.calls, f.name)
	return f.err
}

func TestManager_RunAll(t *testing.T) {
	var calls []string
	m := loader.NewManager(zap.NewNop())
	require.NoError(t, m.Register(fakeFeature{name: "packets", enabled: true, calls: &calls}))
	require.NoError(t, m.Register(fakeFeature{name: "disabled", enabled: false, calls: &calls}))
	require.NoError(t, m.Register(fakeFeature{name: "remap", enabled: true, calls: &calls}))

	require.NoError(t, m.RunAll(context.Background()))
	assert.Equal(t, []string{"packets", "remap"}, calls)
	assert.Equal(t, []string{"packets", "disabled", "remap"}, m.Names())
}

func TestManager_StopsAtFirstError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	m := loader.NewManager(zap.NewNop())
	require.NoError(t, m.Register(fakeFeature{name: "packets", enabled: true, err: boom, calls: &calls}))
	require.NoError(t, m.Register(fakeFeature{name: "remap", enabled: true, calls: &calls}))

	err := m.RunAll(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "feature packets: boom")
	assert.Equal(t, []string{"packets"}, calls)
}

func TestManager_Register(t *testing.T) {
	var calls []string
	m := loader.NewManager(zap.NewNop())
	require.NoError(t, m.Register(fakeFeature{name: "packets", calls: &calls}))
	assert.EqualError(t, m.Register(fakeFeature{name: "packets", calls: &calls}), "feature packets already registered")
}

func TestManager_CancelledContext(t *testing.T) {
	var calls []string
	m := loader.NewManager(zap.NewNop())
	require.NoError(t, m.Register(fakeFeature{name: "packets", enabled: true, calls: &calls}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.RunAll(ctx), context.Canceled)
	assert.Empty(t, calls)
}
