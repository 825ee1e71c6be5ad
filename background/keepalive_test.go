package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingPinger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return p.err
}

func TestKeepalive_PingsUntilStopped(t *testing.T) {
	p := &countingPinger{}
	k := NewKeepalive(p, 5*time.Millisecond, time.Second)
	k.Start()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, time.Millisecond)
	k.Stop()

	after := p.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, p.calls.Load(), "no pings after Stop")
}

func TestKeepalive_SurvivesFailures(t *testing.T) {
	p := &countingPinger{err: errors.New("connection reset")}
	k := NewKeepalive(p, 5*time.Millisecond, time.Second)
	k.Start()
	defer k.Stop()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, time.Millisecond)
}
