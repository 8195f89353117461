// Package notify 是非阻塞的用户通知通道。
// 请求层和状态容器只向它投递消息，由具体实现决定怎么呈现
// （控制台彩色输出、测试里收集断言等）。
package notify

import (
	"log"
	"sync"
)

// Level 通知级别
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier 通知出口
type Notifier interface {
	Notify(level Level, message string)
}

// ==================== 日志实现 ====================

// LogNotifier 默认实现，打到标准日志
type LogNotifier struct{}

func (LogNotifier) Notify(level Level, message string) {
	log.Printf("[Notify][%s] %s", level, message)
}

// ==================== 收集实现 ====================

// Notice 一条已投递的通知
type Notice struct {
	Level   Level
	Message string
}

// Center 线程安全地收集通知，控制台渲染和测试断言共用
type Center struct {
	mu      sync.Mutex
	notices []Notice
	sink    Notifier // 可选的下游出口
}

func NewCenter(sink Notifier) *Center {
	return &Center{sink: sink}
}

func (c *Center) Notify(level Level, message string) {
	c.mu.Lock()
	c.notices = append(c.notices, Notice{Level: level, Message: message})
	c.mu.Unlock()

	if c.sink != nil {
		c.sink.Notify(level, message)
	}
}

// Drain 取走并清空当前积压的通知
func (c *Center) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}

// Last 最近一条通知，没有则返回零值
func (c *Center) Last() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.notices) == 0 {
		return Notice{}, false
	}
	return c.notices[len(c.notices)-1], true
}
