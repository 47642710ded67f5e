package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	err   error
	calls int
}

func (f *fakeSender) SendEmail(_ context.Context, _, _, _ string) error {
	f.calls++
	return f.err
}

func TestFailover_PrimarySucceeds(t *testing.T) {
	primary := &fakeSender{}
	secondary := &fakeSender{}

	f := NewFailover(primary, secondary)
	err := f.SendEmail(context.Background(), "a@b.com", "s", "b")

	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestFailover_PrimaryFails_FallbackUsed(t *testing.T) {
	primary := &fakeSender{err: errors.New("connection refused")}
	secondary := &fakeSender{}

	f := NewFailover(primary, secondary)
	err := f.SendEmail(context.Background(), "a@b.com", "s", "b")

	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestFailover_BothFail_ReturnsError(t *testing.T) {
	primary := &fakeSender{err: errors.New("connection refused")}
	secondary := &fakeSender{err: errors.New("throttled")}

	f := NewFailover(primary, secondary)
	err := f.SendEmail(context.Background(), "a@b.com", "s", "b")

	assert.ErrorContains(t, err, "throttled")
}

func TestFailover_NoSecondary_ReturnsPrimaryError(t *testing.T) {
	primary := &fakeSender{err: errors.New("connection refused")}

	f := NewFailover(primary, nil)
	err := f.SendEmail(context.Background(), "a@b.com", "s", "b")

	assert.ErrorContains(t, err, "connection refused")
}

func TestFailover_NoProviders(t *testing.T) {
	f := NewFailover(nil, nil)
	err := f.SendEmail(context.Background(), "a@b.com", "s", "b")
	assert.Error(t, err)
}
