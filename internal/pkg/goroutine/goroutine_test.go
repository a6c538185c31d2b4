package goroutine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CollectsErrors(t *testing.T) {
	// Arrange
	m := NewManager(4)
	boom := errors.New("boom")

	// Act
	m.Go(context.Background(), func(context.Context) error { return nil })
	m.Go(context.Background(), func(context.Context) error { return boom })
	err := m.Wait()

	// Assert
	assert.ErrorIs(t, err, boom)
}

func TestManager_IgnoresCanceled(t *testing.T) {
	m := NewManager(1)

	m.Go(context.Background(), func(context.Context) error { return context.Canceled })

	assert.NoError(t, m.Wait())
}

func TestManager_RecoversPanic(t *testing.T) {
	m := NewManager(1)

	m.Go(context.Background(), func(context.Context) error { panic("consumer exploded") })

	assert.NoError(t, m.Wait())
}

func TestManager_LimitReached(t *testing.T) {
	// Arrange
	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	m.Go(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	// Act
	m.Go(context.Background(), func(context.Context) error { return nil })
	close(release)
	err := m.Wait()

	// Assert
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestManager_ClosedAfterWait(t *testing.T) {
	m := NewManager(1)
	require.NoError(t, m.Wait())

	ran := false
	m.Go(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})

	assert.False(t, ran)
	assert.ErrorIs(t, m.Wait(), ErrManagerClosed)
}

func TestManager_SkipsCanceledContext(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := make(chan struct{}, 1)
	m.Go(ctx, func(context.Context) error {
		ran <- struct{}{}
		return nil
	})

	require.NoError(t, m.Wait())
	assert.Empty(t, ran)
}

func TestManager_Nil(t *testing.T) {
	var m *Manager

	m.Go(context.Background(), func(context.Context) error { return nil })

	assert.NoError(t, m.Wait())
}
