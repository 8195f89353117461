package state

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoller_TicksImmediatelyAndPeriodically(t *testing.T) {
	var ticks atomic.Int32
	p := NewStatusPoller(20*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		return nil
	})

	p.Start()
	defer p.Stop()

	// 启动即触发一次
	time.Sleep(10 * time.Millisecond)
	if ticks.Load() < 1 {
		t.Fatal("启动后应立即执行一次")
	}

	time.Sleep(60 * time.Millisecond)
	if ticks.Load() < 2 {
		t.Errorf("应按间隔持续触发, got %d", ticks.Load())
	}
}

func TestPoller_StopPreventsFurtherTicks(t *testing.T) {
	var ticks atomic.Int32
	p := NewStatusPoller(10*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		return nil
	})

	p.Start()
	time.Sleep(25 * time.Millisecond)
	p.Stop()

	if p.Running() {
		t.Error("Stop 后 Running 应为 false")
	}

	before := ticks.Load()
	time.Sleep(40 * time.Millisecond)
	if ticks.Load() != before {
		t.Errorf("Stop 之后不应再触发: before=%d after=%d", before, ticks.Load())
	}
}

func TestPoller_StartStopIdempotent(t *testing.T) {
	p := NewStatusPoller(time.Hour, func(ctx context.Context) error { return nil })

	p.Start()
	p.Start() // 重复启动无效果
	if !p.Running() {
		t.Fatal("启动后应处于运行态")
	}

	p.Stop()
	p.Stop() // 重复停止不阻塞不崩溃
	if p.Running() {
		t.Error("停止后应处于非运行态")
	}
}
