package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xianyu_admin_v1_202509/internal/controller"
	"xianyu_admin_v1_202509/internal/model"
	"xianyu_admin_v1_202509/internal/repository"
	"xianyu_admin_v1_202509/internal/service"
	"xianyu_admin_v1_202509/pkg/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

// setupServer 起一个走真实服务与内存库的完整后端
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := database.InitMemoryDB(
		&model.SysUser{}, &model.Product{}, &model.PromptTemplate{},
		&model.SyncRun{}, &model.SyncLog{}, &model.AutoSyncSettings{},
		&model.DeliveryConfig{}, &model.DeliveryRecord{},
		&model.XianyuItem{}, &model.CookieEntry{}, &model.NotificationMessage{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	syncRepo := repository.NewSyncRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	xianyuRepo := repository.NewXianyuRepository(db)

	authSvc := service.NewAuthService(userRepo)
	require.NoError(t, authSvc.EnsureAdmin(context.Background(), "admin", "123456"))

	r := gin.New()
	InitRoutes(r,
		controller.NewAuthController(authSvc),
		controller.NewProductController(service.NewProductService(productRepo)),
		controller.NewPromptController(service.NewPromptService(productRepo, templateRepo)),
		controller.NewSyncController(service.NewSyncService(syncRepo, productRepo)),
		controller.NewDeliveryController(service.NewDeliveryService(deliveryRepo, productRepo)),
		controller.NewSystemController(
			service.NewSystemService(productRepo, syncRepo, notificationRepo),
			service.NewXianyuService(xianyuRepo, productRepo),
		),
	)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
}

func request(r http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	w, env := request(r, "POST", "/api/auth/login", "", map[string]string{
		"username": "admin", "password": "123456",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

// ==================== 鉴权 ====================

func TestLoginAndProtectedAccess(t *testing.T) {
	r := setupServer(t)

	// 健康检查不需要登录
	w0, env0 := request(r, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w0.Code)
	assert.True(t, env0.Success)

	// 未登录访问受保护接口：HTTP 401 + code 401
	w, env := request(r, "GET", "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, 401, env.Code)

	token := login(t, r)

	w, env = request(r, "GET", "/api/products", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestLogin_WrongPassword(t *testing.T) {
	r := setupServer(t)

	w, env := request(r, "POST", "/api/auth/login", "", map[string]string{
		"username": "admin", "password": "bad",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
}

func TestAuthMe(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)

	_, env := request(r, "GET", "/api/auth/me", token, nil)
	require.True(t, env.Success)

	var user model.UserView
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "super_admin", user.Role)
}

// ==================== 商品接口 ====================

func TestProductLifecycleOverHTTP(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)

	// 创建
	_, env := request(r, "POST", "/api/products", token, map[string]interface{}{
		"itemId": "item-001", "title": "机械键盘", "price": 299.0,
	})
	require.True(t, env.Success, env.Message)

	var created struct {
		ID     int64  `json:"id"`
		ItemID string `json:"itemId"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "draft", created.Status)

	// 重复 itemId：业务失败但 HTTP 200
	w, env := request(r, "POST", "/api/products", token, map[string]interface{}{
		"itemId": "item-001", "title": "another", "price": 1.0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)

	// 列表信封结构
	_, env = request(r, "GET", "/api/products?page=1&pageSize=10", token, nil)
	require.True(t, env.Success)
	var page struct {
		List  []json.RawMessage `json:"list"`
		Total int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Total)

	// 更新时 itemId 不可改
	_, env = request(r, "PUT", "/api/products/1", token, map[string]interface{}{
		"itemId": "item-999", "title": "改名",
	})
	require.True(t, env.Success)
	var updated struct {
		ItemID string `json:"itemId"`
		Title  string `json:"title"`
	}
	json.Unmarshal(env.Data, &updated)
	assert.Equal(t, "item-001", updated.ItemID)
	assert.Equal(t, "改名", updated.Title)

	// 不存在的商品：业务 404，HTTP 仍是 200
	w, env = request(r, "GET", "/api/products/999", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, 404, env.Code)
}

// ==================== 提示词接口 ====================

func TestPromptEndpoints(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)

	_, env := request(r, "POST", "/api/products", token, map[string]interface{}{
		"itemId": "item-001", "title": "键盘", "price": 100.0,
	})
	require.True(t, env.Success)

	// 四键恒全
	_, env = request(r, "GET", "/api/products/1/prompts", token, nil)
	require.True(t, env.Success)
	var prompts map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &prompts))
	for _, key := range []string{"price", "tech", "default", "classify"} {
		_, ok := prompts[key]
		assert.True(t, ok, "缺少槽位 %s", key)
	}

	// 写入单个槽位
	_, env = request(r, "PUT", "/api/products/1/prompts", token, map[string]string{
		"type": "price", "content": "最低 {price} 元",
	})
	require.True(t, env.Success, env.Message)

	// 预览
	_, env = request(r, "POST", "/api/prompts/preview", token, map[string]interface{}{
		"content":     "{title} 特价，问:{q}",
		"productId":   "1",
		"productInfo": map[string]interface{}{"q": "还能便宜吗"},
	})
	require.True(t, env.Success, env.Message)
	var preview struct {
		Preview string `json:"preview"`
	}
	json.Unmarshal(env.Data, &preview)
	assert.Contains(t, preview.Preview, "键盘")
	assert.Contains(t, preview.Preview, "还能便宜吗")
}

// ==================== 发货接口 ====================

func TestDeliveryEndpoints(t *testing.T) {
	r := setupServer(t)
	token := login(t, r)

	// 路径携带 itemId，body 不带
	_, env := request(r, "POST", "/api/delivery/configs/item-001", token, map[string]interface{}{
		"delivery_type":    "cardkey",
		"delivery_content": "KEY-AAAA",
		"stock_count":      1,
	})
	require.True(t, env.Success, env.Message)

	// 发货
	_, env = request(r, "POST", "/api/delivery/deliver", token, map[string]string{
		"item_id": "item-001", "buyer_id": "buyer-1",
	})
	require.True(t, env.Success, env.Message)

	// 库存耗尽后发货失败（HTTP 200 业务失败）
	w, env := request(r, "POST", "/api/delivery/deliver", token, map[string]string{
		"item_id": "item-001", "buyer_id": "buyer-2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)

	// 流水为平铺数组
	_, env = request(r, "GET", "/api/delivery/records", token, nil)
	require.True(t, env.Success)
	var records []model.DeliveryRecord
	require.NoError(t, json.Unmarshal(env.Data, &records))
	assert.Len(t, records, 2)
}
