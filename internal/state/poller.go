package state

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// StatusPoller 固定间隔轮询器，生命周期与使用方（面板）绑定：
// Start 启动，Stop 停止并保证之后不再发生任何状态写入。
// 不做飞行中请求的取消，迟到的应答在 stopped 检查处被丢弃。
type StatusPoller struct {
	interval time.Duration
	tick     func(ctx context.Context) error

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped atomic.Bool
	wg      sync.WaitGroup
}

// NewStatusPoller 创建轮询器。tick 为每次轮询执行的动作
// （典型用法是 SyncStore.FetchStatus）
func NewStatusPoller(interval time.Duration, tick func(ctx context.Context) error) *StatusPoller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &StatusPoller{interval: interval, tick: tick}
}

// Start 启动轮询（立刻执行一次，之后按间隔触发）。重复调用无效果
func (p *StatusPoller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.stopped.Store(false)

	p.wg.Add(1)
	go p.loop(ctx)
}

func (p *StatusPoller) loop(ctx context.Context) {
	defer p.wg.Done()

	p.run(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.run(ctx)
		}
	}
}

func (p *StatusPoller) run(ctx context.Context) {
	// 停止后迟到的 tick 直接丢弃，保证 Stop 之后没有状态写入
	if p.stopped.Load() {
		return
	}
	if err := p.tick(ctx); err != nil {
		log.Printf("[Poller] 轮询失败: %v", err)
	}
}

// Stop 停止轮询并等待循环退出。幂等
func (p *StatusPoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	p.stopped.Store(true)
	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

// Running 是否在轮询中
func (p *StatusPoller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
