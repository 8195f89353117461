// Package cache 提供带 TTL 的内存缓存。
// 读取时惰性过期，另有基于 cron 的周期清扫兜底。
package cache

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

type item struct {
	value  interface{}
	expiry time.Time
}

func (i item) expired(now time.Time) bool {
	return !now.Before(i.expiry)
}

// Cache TTL 内存缓存，过期条目与不存在等价
type Cache struct {
	mu    sync.RWMutex
	items map[string]item
	cron  *cron.Cron
}

// New 创建缓存实例（不启动后台清扫）
func New() *Cache {
	return &Cache{
		items: make(map[string]item),
	}
}

// Set 写入带 TTL 的条目。ttl <= 0 的条目在下一次读取时即视为不存在
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{value: value, expiry: time.Now().Add(ttl)}
}

// Get 读取条目，过期即惰性删除
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if it.expired(time.Now()) {
		delete(c.items, key)
		return nil, false
	}
	return it.value, true
}

// Has 条目是否存在且未过期
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Remove 删除条目
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear 清空全部条目
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item)
}

// Cleanup 主动清理已过期条目，返回清理数量
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Stats 缓存统计（统计前先做一轮清理）
type Stats struct {
	Size int
	Keys []string
}

func (c *Cache) Stats() Stats {
	c.Cleanup()

	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return Stats{Size: len(c.items), Keys: keys}
}

// StartSweeper 启动周期清扫任务，interval 为空时默认 5 分钟
func (c *Cache) StartSweeper(interval string) {
	if c.cron != nil {
		return
	}
	if interval == "" {
		interval = "@every 5m"
	}

	c.cron = cron.New()
	_, err := c.cron.AddFunc(interval, func() {
		if n := c.Cleanup(); n > 0 {
			log.Printf("[Cache] 清理过期条目 %d 个", n)
		}
	})
	if err != nil {
		log.Printf("[Cache] 清扫任务启动失败: %v", err)
		c.cron = nil
		return
	}
	c.cron.Start()
}

// StopSweeper 停止周期清扫
func (c *Cache) StopSweeper() {
	if c.cron != nil {
		c.cron.Stop()
		c.cron = nil
	}
}
