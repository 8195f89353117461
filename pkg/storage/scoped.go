package storage

// 固定键名，与控制台各页面共享
const (
	KeyAuthToken        = "auth_token"
	KeyUserInfo         = "user_info"
	KeyTheme            = "theme"
	KeySidebarCollapsed = "sidebar_collapsed"
	KeyTableColumns     = "table_columns"
	KeyFilters          = "filters"
)

// ==================== 认证存储 ====================

// AuthStorage 会话凭证存储，token 与用户快照总是一起清除
type AuthStorage struct {
	store *Store
}

func NewAuthStorage(store *Store) *AuthStorage {
	return &AuthStorage{store: store}
}

func (a *AuthStorage) SetToken(token string) {
	_ = a.store.Set(KeyAuthToken, token)
}

func (a *AuthStorage) Token() string {
	return a.store.GetString(KeyAuthToken)
}

func (a *AuthStorage) SetUserInfo(user interface{}) {
	_ = a.store.Set(KeyUserInfo, user)
}

func (a *AuthStorage) UserInfo(out interface{}) bool {
	return a.store.Get(KeyUserInfo, out, nil)
}

// Clear 登出或 401 强制下线时调用
func (a *AuthStorage) Clear() {
	a.store.Remove(KeyAuthToken)
	a.store.Remove(KeyUserInfo)
}

// ==================== 主题存储 ====================

type ThemeStorage struct {
	store *Store
}

func NewThemeStorage(store *Store) *ThemeStorage {
	return &ThemeStorage{store: store}
}

func (t *ThemeStorage) SetTheme(theme string) {
	_ = t.store.Set(KeyTheme, theme)
}

func (t *ThemeStorage) Theme() string {
	var v string
	t.store.Get(KeyTheme, &v, "light")
	return v
}

func (t *ThemeStorage) SetSidebarCollapsed(collapsed bool) {
	_ = t.store.Set(KeySidebarCollapsed, collapsed)
}

func (t *ThemeStorage) SidebarCollapsed() bool {
	var v bool
	t.store.Get(KeySidebarCollapsed, &v, false)
	return v
}

// ==================== 表格列配置 ====================

type TableStorage struct {
	store *Store
}

func NewTableStorage(store *Store) *TableStorage {
	return &TableStorage{store: store}
}

func (t *TableStorage) SetColumns(tableKey string, columns []string) {
	_ = t.store.Set(KeyTableColumns+"_"+tableKey, columns)
}

func (t *TableStorage) Columns(tableKey string) []string {
	var v []string
	t.store.Get(KeyTableColumns+"_"+tableKey, &v, nil)
	return v
}

func (t *TableStorage) RemoveColumns(tableKey string) {
	t.store.Remove(KeyTableColumns + "_" + tableKey)
}

// ==================== 筛选器存储 ====================

type FilterStorage struct {
	store *Store
}

func NewFilterStorage(store *Store) *FilterStorage {
	return &FilterStorage{store: store}
}

func (f *FilterStorage) SetFilters(pageKey string, filters map[string]string) {
	_ = f.store.Set(KeyFilters+"_"+pageKey, filters)
}

func (f *FilterStorage) Filters(pageKey string) map[string]string {
	var v map[string]string
	f.store.Get(KeyFilters+"_"+pageKey, &v, nil)
	return v
}

func (f *FilterStorage) RemoveFilters(pageKey string) {
	f.store.Remove(KeyFilters + "_" + pageKey)
}
