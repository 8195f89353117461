// Package storage 提供带命名空间的本地持久化键值存储。
// 是控制台本地 localStorage 的服务端等价物：token、用户快照、
// 主题、表格列配置、筛选器都落在这里。
package storage

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
)

// kvEntry 底层存储行，所有值统一 JSON 序列化
type kvEntry struct {
	Key       string `gorm:"size:255;primaryKey"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// Store 命名空间化的键值存储
// 所有键写入前都会加上前缀，Keys/Clear 只作用于本命名空间
type Store struct {
	db     *gorm.DB
	prefix string
}

const defaultPrefix = "xianyu_admin_"

// New 创建存储实例。prefix 为空时使用默认前缀
func New(db *gorm.DB, prefix string) (*Store, error) {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, err
	}
	return &Store{db: db, prefix: prefix}, nil
}

func (s *Store) fullKey(key string) string {
	return s.prefix + key
}

// Set 写入任意可 JSON 序列化的值
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[Storage] 序列化失败 key=%s: %v", key, err)
		return err
	}
	entry := kvEntry{Key: s.fullKey(key), Value: string(raw), UpdatedAt: time.Now()}
	return s.db.Save(&entry).Error
}

// Get 读取并反序列化到 out。键不存在或解析失败时写入 defaultValue（可为 nil），
// 不向调用方抛错，与前端 localStorage 包装的降级行为一致
func (s *Store) Get(key string, out interface{}, defaultValue interface{}) bool {
	var entry kvEntry
	err := s.db.Where("key = ?", s.fullKey(key)).First(&entry).Error
	if err != nil {
		s.applyDefault(out, defaultValue)
		return false
	}
	if err := json.Unmarshal([]byte(entry.Value), out); err != nil {
		log.Printf("[Storage] 反序列化失败 key=%s: %v", key, err)
		s.applyDefault(out, defaultValue)
		return false
	}
	return true
}

// GetString 字符串快捷读取，缺失返回空串
func (s *Store) GetString(key string) string {
	var v string
	s.Get(key, &v, "")
	return v
}

func (s *Store) applyDefault(out interface{}, defaultValue interface{}) {
	if defaultValue == nil {
		return
	}
	raw, err := json.Marshal(defaultValue)
	if err != nil {
		return
	}
	// 默认值经过一轮 JSON 往返写入 out，类型不匹配时保持零值
	_ = json.Unmarshal(raw, out)
}

// Remove 删除单个键
func (s *Store) Remove(key string) {
	s.db.Where("key = ?", s.fullKey(key)).Delete(&kvEntry{})
}

// Has 键是否存在
func (s *Store) Has(key string) bool {
	var count int64
	s.db.Model(&kvEntry{}).Where("key = ?", s.fullKey(key)).Count(&count)
	return count > 0
}

// Keys 返回本命名空间内的全部键（去掉前缀）
func (s *Store) Keys() []string {
	var entries []kvEntry
	s.db.Where("key LIKE ?", s.prefix+"%").Find(&entries)

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, strings.TrimPrefix(e.Key, s.prefix))
	}
	return keys
}

// Clear 清空本命名空间，不碰其他前缀的数据
func (s *Store) Clear() {
	s.db.Where("key LIKE ?", s.prefix+"%").Delete(&kvEntry{})
}

// Usage 返回命名空间占用字节数
func (s *Store) Usage() int64 {
	var entries []kvEntry
	s.db.Where("key LIKE ?", s.prefix+"%").Find(&entries)

	var used int64
	for _, e := range entries {
		used += int64(len(e.Key) + len(e.Value))
	}
	return used
}
