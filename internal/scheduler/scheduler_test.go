package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ledger-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChecker struct {
	calls  atomic.Int32
	report service.Report
	err    error
}

func (f *fakeChecker) CheckPendingPayments(ctx context.Context) (service.Report, error) {
	f.calls.Add(1)
	return f.report, f.err
}

func TestNewRejectsBadSchedule(t *testing.T) {
	_, err := New("every tuesday", &fakeChecker{}, zap.NewNop())
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	checker := &fakeChecker{report: service.Report{Selected: 2, Sent: 2}}
	s, err := New("@daily", checker, zap.NewNop())
	require.NoError(t, err)

	report, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, int32(1), checker.calls.Load())

	checker.err = errors.New("smtp down")
	_, err = s.RunOnce(context.Background())
	assert.EqualError(t, err, "smtp down")
}

func TestStartAndStop(t *testing.T) {
	checker := &fakeChecker{}
	s, err := New("@every 10ms", checker, zap.NewNop())
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return checker.calls.Load() > 0 }, 3*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
