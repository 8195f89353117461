package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New()

	c.Set("k", "v", time.Minute)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("未过期的条目应命中")
	}
	if got.(string) != "v" {
		t.Errorf("值不一致: %v", got)
	}
}

func TestCache_ZeroTTLImmediatelyAbsent(t *testing.T) {
	c := New()

	c.Set("k", "v", 0)

	if _, ok := c.Get("k"); ok {
		t.Error("ttl=0 的条目下一次 Get 应等价于不存在")
	}

	c.Set("k2", "v", -time.Second)
	if c.Has("k2") {
		t.Error("负 ttl 的条目 Has 应为 false")
	}
}

func TestCache_LazyExpiry(t *testing.T) {
	c := New()

	c.Set("short", 1, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("过期条目应视为不存在")
	}

	// 惰性删除后不再占用空间
	if s := c.Stats(); s.Size != 0 {
		t.Errorf("过期条目应被删除, size=%d", s.Size)
	}
}

func TestCache_Cleanup(t *testing.T) {
	c := New()

	c.Set("a", 1, 10*time.Millisecond)
	c.Set("b", 2, 10*time.Millisecond)
	c.Set("keep", 3, time.Minute)

	time.Sleep(20 * time.Millisecond)

	if n := c.Cleanup(); n != 2 {
		t.Errorf("应清理 2 个过期条目, 实际 %d", n)
	}
	if !c.Has("keep") {
		t.Error("未过期条目不应被清理")
	}
}

func TestCache_RemoveAndClear(t *testing.T) {
	c := New()

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Remove("a")
	if c.Has("a") {
		t.Error("Remove 后条目应消失")
	}

	c.Clear()
	if s := c.Stats(); s.Size != 0 {
		t.Errorf("Clear 后应为空, size=%d", s.Size)
	}
}

func TestCache_OverwriteRefreshesTTL(t *testing.T) {
	c := New()

	c.Set("k", "old", 10*time.Millisecond)
	c.Set("k", "new", time.Minute)

	time.Sleep(20 * time.Millisecond)

	got, ok := c.Get("k")
	if !ok || got.(string) != "new" {
		t.Errorf("覆盖写入应刷新 TTL: %v %v", got, ok)
	}
}
