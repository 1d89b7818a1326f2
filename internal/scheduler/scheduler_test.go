package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocker struct {
	held     bool
	released int
	err      error
}

func (f *fakeLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if f.held {
		return nil, false, nil
	}
	return func() { f.released++ }, true, nil
}

func TestRunRespectsLock(t *testing.T) {
	calls := 0
	job := func(context.Context) error { calls++; return nil }

	locker := &fakeLocker{}
	s := New(time.UTC, locker)

	s.run("reminders", time.Minute, job)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, locker.released)

	locker.held = true
	s.run("reminders", time.Minute, job)
	assert.Equal(t, 1, calls)

	locker.held = false
	locker.err = errors.New("redis down")
	s.run("reminders", time.Minute, job)
	assert.Equal(t, 1, calls)
}

func TestRunWithoutLocker(t *testing.T) {
	calls := 0
	s := New(time.UTC, nil)
	s.run("reminders", time.Minute, func(context.Context) error { calls++; return nil })
	assert.Equal(t, 1, calls)
}

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(time.UTC, nil)
	require.NoError(t, s.Add("reminders", []string{"0 10 * * *", "*/30 9-18 * * *"}, time.Minute, nil))
	assert.Error(t, s.Add("reminders", []string{"every day"}, time.Minute, nil))
}
