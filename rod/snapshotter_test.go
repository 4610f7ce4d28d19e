package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/mock"
	"github.com/fwojciec/pagesmith/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotter_Snapshot_Validation(t *testing.T) {
	t.Parallel()

	t.Run("empty html", func(t *testing.T) {
		t.Parallel()

		_, err := rod.NewSnapshotter(nil).Snapshot(context.Background(), "  ", nil)

		require.Error(t, err)
		assert.Equal(t, pagesmith.EINVALID, pagesmith.ErrorCode(err))
	})

	t.Run("invalid device size", func(t *testing.T) {
		t.Parallel()

		devices := []pagesmith.Device{{Name: "watch", Width: 0, Height: 200}}
		_, err := rod.NewSnapshotter(nil).Snapshot(context.Background(), "<p>x</p>", devices)

		require.Error(t, err)
		assert.Equal(t, pagesmith.EINVALID, pagesmith.ErrorCode(err))
		assert.Contains(t, pagesmith.ErrorMessage(err), "watch")
	})
}

func TestLoggingSnapshotter(t *testing.T) {
	t.Parallel()

	t.Run("logs totals", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		next := &mock.Snapshotter{
			SnapshotFn: func(context.Context, string, []pagesmith.Device) ([]*pagesmith.Snapshot, error) {
				return []*pagesmith.Snapshot{
					{Device: pagesmith.DefaultDevices[0], PNG: []byte("abc")},
					{Device: pagesmith.DefaultDevices[1], PNG: []byte("de")},
				}, nil
			},
		}

		snaps, err := rod.NewLoggingSnapshotter(next, logger).Snapshot(context.Background(), "<p>x</p>", pagesmith.DefaultDevices[:2])

		require.NoError(t, err)
		assert.Len(t, snaps, 2)
		out := buf.String()
		assert.Contains(t, out, "msg=snapshot")
		assert.Contains(t, out, "devices=2")
		assert.Contains(t, out, "bytes=5")
	})

	t.Run("logs error and delegates close", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closed := false
		next := &mock.Snapshotter{
			SnapshotFn: func(context.Context, string, []pagesmith.Device) ([]*pagesmith.Snapshot, error) {
				return nil, errors.New("chrome crashed")
			},
			CloseFn: func() error { closed = true; return nil },
		}
		s := rod.NewLoggingSnapshotter(next, logger)

		_, err := s.Snapshot(context.Background(), "<p>x</p>", nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "chrome crashed")
		require.NoError(t, s.Close())
		assert.True(t, closed)
	})
}
