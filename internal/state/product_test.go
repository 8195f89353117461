package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"xianyu_admin_v1_202509/internal/client"
	"xianyu_admin_v1_202509/internal/notify"
)

// newListBackend 返回固定分页应答并记录收到的 query
func newListBackend(t *testing.T) (*ProductStore, *sync.Map) {
	t.Helper()
	queries := &sync.Map{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for key, values := range r.URL.Query() {
			queries.Store(key, values[0])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"list": []map[string]interface{}{
					{"id": 1, "itemId": "item-001", "title": "键盘"},
				},
				"total": 41, "page": 1, "pageSize": 20,
			},
		})
	}))
	t.Cleanup(server.Close)

	c := client.New(server.URL, nullTokenStore{}, notify.NewCenter(nil))
	return NewProductStore(c, nil), queries
}

func TestProductStore_FetchList(t *testing.T) {
	store, _ := newListBackend(t)

	if err := store.FetchList(context.Background()); err != nil {
		t.Fatalf("拉取列表失败: %v", err)
	}

	list := store.List()
	if len(list) != 1 || list[0].ItemID != "item-001" {
		t.Fatalf("列表内容错误: %+v", list)
	}
	if store.Pagination().Total != 41 {
		t.Errorf("total = %d, want 41", store.Pagination().Total)
	}
}

func TestProductStore_SetFiltersResetsPage(t *testing.T) {
	store, queries := newListBackend(t)
	ctx := context.Background()

	store.SetPage(3, 20)
	if store.Pagination().Current != 3 {
		t.Fatalf("翻页失败: %d", store.Pagination().Current)
	}

	// 改筛选器必须回到第 1 页
	store.SetFilters(ProductFilters{Keyword: "键盘"})
	if store.Pagination().Current != 1 {
		t.Errorf("改筛选器后应回到第 1 页, got %d", store.Pagination().Current)
	}

	if err := store.FetchList(ctx); err != nil {
		t.Fatalf("拉取列表失败: %v", err)
	}
	if keyword, _ := queries.Load("keyword"); keyword != "键盘" {
		t.Errorf("筛选参数未下发: %v", keyword)
	}
	if page, _ := queries.Load("page"); page != "1" {
		t.Errorf("page 参数 = %v, want 1", page)
	}
}

func TestProductStore_BatchClearsSelection(t *testing.T) {
	store, _ := newListBackend(t)

	store.SetSelected([]string{"1", "2"})
	if len(store.SelectedIDs()) != 2 {
		t.Fatal("选中状态未生效")
	}

	if err := store.BatchDelete(context.Background(), []string{"1", "2"}); err != nil {
		t.Fatalf("批量删除失败: %v", err)
	}
	if len(store.SelectedIDs()) != 0 {
		t.Error("批量操作完成后选中应清空")
	}
}

func TestProductStore_Reset(t *testing.T) {
	store, _ := newListBackend(t)

	store.FetchList(context.Background())
	store.SetFilters(ProductFilters{Keyword: "键盘"})
	store.Reset()

	if len(store.List()) != 0 {
		t.Error("重置后列表应为空")
	}
	if store.Filters().Keyword != "" {
		t.Error("重置后筛选器应清空")
	}
	if p := store.Pagination(); p.Current != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("重置后分页错误: %+v", p)
	}
}
