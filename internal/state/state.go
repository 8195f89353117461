// Package state 持有控制台各页面的视图状态。
// 每个容器对应一个领域切片：列表/详情、loading 标志、分页、筛选器，
// 以及改变它们的动作函数。动作统一遵循
// 置 loading → 调服务 → 成功改状态（可选成功提示）/ 失败提示 → 清 loading。
// 所有改列表的动作完成后重新拉取列表，而不是本地修补，
// 以保证后端计算字段（计数、同步状态）一致。
package state

import "sync"

// Pagination 分页状态
type Pagination struct {
	Current  int   `json:"current"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// DefaultPageSize 默认每页条数
const DefaultPageSize = 20

// loadingGuard 每容器一个的 loading 标志
// 不是互斥锁：标志更新前的快速重复触发不做防护
type loadingGuard struct {
	mu      sync.Mutex
	loading bool
}

func (g *loadingGuard) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loading {
		return false
	}
	g.loading = true
	return true
}

func (g *loadingGuard) end() {
	g.mu.Lock()
	g.loading = false
	g.mu.Unlock()
}

func (g *loadingGuard) isLoading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}
