package run

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Aggregate())
	errs.Add(nil, errors.New("a"), nil, errors.New("b"))
	err := errs.Aggregate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "a")
	require.Contains(t, err.Error(), "b")
}

func TestRunnerCollectsErrors(t *testing.T) {
	fail := errors.New("boom")
	r := NewRunner()
	r.Go(
		Func(func(ctx context.Context) error { return nil }),
		Func(func(ctx context.Context) error { return fail }),
	)
	err := r.Wait()
	agg, ok := err.(*AggregatedError)
	require.True(t, ok)
	require.Equal(t, []error{fail}, agg.Errors)
}

func TestRunnerIgnoresCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunnerWith(ctx)
	r.Go(Func(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	cancel()
	require.NoError(t, r.Wait())
}

type closeOnce struct {
	closed chan struct{}
}

func (c *closeOnce) Close() error {
	close(c.closed)
	return nil
}

var _ io.Closer = (*closeOnce)(nil)

func TestWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	closer := &closeOnce{closed: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		done <- WithContextCloser(ctx, closer, func() error {
			<-closer.closed // blocks like a read loop until closed
			return io.EOF
		})
	}()
	cancel()
	select {
	case err := <-done:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("closer was not invoked on cancel")
	}
}
