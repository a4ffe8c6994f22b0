package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errUnavailable = errors.New("broker unavailable")

// fakeClock 可手动拨动的时钟
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := New("test", cfg)
	cb.now = clock.Now
	cb.mu.Lock()
	cb.toNewGeneration(clock.Now())
	cb.mu.Unlock()
	return cb, clock
}

func fail(context.Context) error    { return errUnavailable }
func succeed(context.Context) error { return nil }

func TestClosedStateCountsSuccesses(t *testing.T) {
	cb, _ := newTestBreaker(Config{Timeout: time.Minute})

	for i := 0; i < 10; i++ {
		if err := cb.Execute(context.Background(), succeed); err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}
	if got := cb.Counts().TotalSuccesses; got != 10 {
		t.Errorf("期望成功10次，实际%d次", got)
	}
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	var transitions []string
	cb, _ := newTestBreaker(Config{
		Timeout:     time.Minute,
		ReadyToTrip: ConsecutiveFailures(3),
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	for i := 0; i < 3; i++ {
		if err := cb.Execute(context.Background(), fail); !errors.Is(err, errUnavailable) {
			t.Fatalf("期望返回原始错误，实际%v", err)
		}
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	called := false
	err := cb.Execute(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应调用fn")
	}
	if len(transitions) != 1 || transitions[0] != "CLOSED->OPEN" {
		t.Errorf("状态变化回调错误: %v", transitions)
	}
}

func TestHalfOpenRecovery(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: ConsecutiveFailures(1),
	})

	_ = cb.Execute(context.Background(), fail)
	if cb.State() != StateOpen {
		t.Fatalf("期望OPEN，实际%s", cb.State())
	}

	clock.Advance(31 * time.Second)
	if cb.State() != StateHalfOpen {
		t.Fatalf("超时后期望HALF_OPEN，实际%s", cb.State())
	}

	if err := cb.Execute(context.Background(), succeed); err != nil {
		t.Fatalf("半开探测请求失败: %v", err)
	}
	if cb.State() != StateHalfOpen {
		t.Errorf("未达到MaxRequests次成功前应保持HALF_OPEN，实际%s", cb.State())
	}
	if err := cb.Execute(context.Background(), succeed); err != nil {
		t.Fatalf("半开探测请求失败: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望CLOSED，实际%s", cb.State())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Timeout:     10 * time.Second,
		ReadyToTrip: ConsecutiveFailures(1),
	})

	_ = cb.Execute(context.Background(), fail)
	clock.Advance(11 * time.Second)
	_ = cb.Execute(context.Background(), fail)

	if cb.State() != StateOpen {
		t.Errorf("半开失败后期望OPEN，实际%s", cb.State())
	}
}

func TestCancelledContextNotCountedAsFailure(t *testing.T) {
	cb, _ := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(1)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := cb.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })

	if !errors.Is(err, context.Canceled) {
		t.Errorf("期望context.Canceled，实际%v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("ctx取消不应触发熔断，实际%s", cb.State())
	}
}

func TestIntervalResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Interval:    time.Minute,
		ReadyToTrip: ConsecutiveFailures(3),
	})

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	clock.Advance(2 * time.Minute)
	_ = cb.Execute(context.Background(), fail)

	if cb.State() != StateClosed {
		t.Errorf("统计窗口重置后不应熔断，实际%s", cb.State())
	}
	if got := cb.Counts().ConsecutiveFailures; got != 1 {
		t.Errorf("期望连续失败1次，实际%d", got)
	}
}
