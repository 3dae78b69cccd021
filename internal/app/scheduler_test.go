package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeExpirer struct {
	before []time.Time
}

func (f *fakeExpirer) Expire(before time.Time) int {
	f.before = append(f.before, before)
	return 2
}

func TestScheduler_ExpireSessions(t *testing.T) {
	expirer := &fakeExpirer{}
	s := NewScheduler(expirer, 2*time.Hour, zap.NewNop())
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.Equal(t, 2, s.expireSessions())
	assert.Equal(t, []time.Time{now.Add(-2 * time.Hour)}, expirer.before)
	assert.Equal(t, 30*time.Minute, s.interval)
}

func TestScheduler_MinimumInterval(t *testing.T) {
	s := NewScheduler(&fakeExpirer{}, time.Minute, zap.NewNop())
	assert.Equal(t, time.Minute, s.interval)
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	s := NewScheduler(&fakeExpirer{}, time.Hour, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, s.Run(ctx))
}

func TestScheduler_ZeroTTLKeepsSessions(t *testing.T) {
	expirer := &fakeExpirer{}
	s := NewScheduler(expirer, 0, zap.NewNop())

	assert.False(t, s.Enabled())
	assert.Equal(t, 0, s.expireSessions())
	assert.Empty(t, expirer.before)

	// Run возвращается сразу, не дожидаясь отмены
	assert.NoError(t, s.Run(context.Background()))
	assert.Empty(t, expirer.before)
}
