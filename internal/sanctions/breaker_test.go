package sanctions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleargate/pkg/platform/circuit"
	"cleargate/pkg/platform/sentinel"
)

type scriptedLookup struct {
	errs   []error
	listed bool
	calls  int
}

func (l *scriptedLookup) Contains(context.Context, string) (bool, error) {
	l.calls++
	if len(l.errs) > 0 {
		err := l.errs[0]
		l.errs = l.errs[1:]
		if err != nil {
			return false, err
		}
	}
	return l.listed, nil
}

func TestBreakerLookupPassesThroughWhenClosed(t *testing.T) {
	next := &scriptedLookup{listed: true}
	lookup := NewBreaker(next, circuit.New("sanctions"))

	listed, err := lookup.Contains(context.Background(), "0xbadactor")
	require.NoError(t, err)
	assert.True(t, listed)
	assert.Equal(t, 1, next.calls)
}

func TestBreakerLookupOpensAfterConsecutiveFailures(t *testing.T) {
	remoteErr := errors.New("screening service down")
	next := &scriptedLookup{errs: []error{remoteErr, remoteErr, remoteErr}}
	lookup := NewBreaker(next, circuit.New("sanctions", circuit.WithFailureThreshold(3)))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := lookup.Contains(ctx, "0xaddr")
		assert.ErrorIs(t, err, remoteErr)
	}

	// Circuit is open: the wrapped lookup is no longer consulted.
	_, err := lookup.Contains(ctx, "0xaddr")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.Equal(t, 3, next.calls)
}

func TestBreakerLookupResetRestoresPrimary(t *testing.T) {
	remoteErr := errors.New("screening service down")
	next := &scriptedLookup{errs: []error{remoteErr}, listed: true}
	lookup := NewBreaker(next, circuit.New("sanctions", circuit.WithFailureThreshold(1)))
	ctx := context.Background()

	_, err := lookup.Contains(ctx, "0xaddr")
	require.ErrorIs(t, err, remoteErr)
	_, err = lookup.Contains(ctx, "0xaddr")
	require.ErrorIs(t, err, sentinel.ErrUnavailable)

	lookup.Reset()

	listed, err := lookup.Contains(ctx, "0xaddr")
	require.NoError(t, err)
	assert.True(t, listed)
}
