package model

// ==================== 商品状态 ====================

// ProductStatus 商品上下架状态（封闭枚举，禁止裸字符串比较）
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"   // 在售
	ProductStatusInactive ProductStatus = "inactive" // 下架
	ProductStatusDraft    ProductStatus = "draft"    // 草稿
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDraft:
		return true
	}
	return false
}

// ==================== 商品同步状态 ====================

// ProductSyncStatus 单个商品相对闲鱼侧的同步状态
type ProductSyncStatus string

const (
	ProductSyncPending ProductSyncStatus = "pending" // 待同步
	ProductSyncSynced  ProductSyncStatus = "synced"  // 已同步
	ProductSyncSyncing ProductSyncStatus = "syncing" // 同步中
	ProductSyncError   ProductSyncStatus = "error"   // 同步失败
)

func (s ProductSyncStatus) Valid() bool {
	switch s {
	case ProductSyncPending, ProductSyncSynced, ProductSyncSyncing, ProductSyncError:
		return true
	}
	return false
}

// ==================== 同步任务状态 ====================

// SyncRunStatus 一次同步任务的生命周期状态
// 合法迁移: pending → running → {completed | error | cancelled}
//
//	error → running (重试产生新任务时新任务直接进入 running)
type SyncRunStatus string

const (
	SyncRunPending   SyncRunStatus = "pending"
	SyncRunRunning   SyncRunStatus = "running"
	SyncRunCompleted SyncRunStatus = "completed"
	SyncRunError     SyncRunStatus = "error"
	SyncRunCancelled SyncRunStatus = "cancelled"
)

func (s SyncRunStatus) Valid() bool {
	switch s {
	case SyncRunPending, SyncRunRunning, SyncRunCompleted, SyncRunError, SyncRunCancelled:
		return true
	}
	return false
}

// Terminal 是否为终态
func (s SyncRunStatus) Terminal() bool {
	switch s {
	case SyncRunCompleted, SyncRunError, SyncRunCancelled:
		return true
	}
	return false
}

// CanTransition 校验状态迁移是否合法
// 不允许跳过 running（pending 不能直达 completed）
func (s SyncRunStatus) CanTransition(to SyncRunStatus) bool {
	switch s {
	case SyncRunPending:
		return to == SyncRunRunning || to == SyncRunCancelled
	case SyncRunRunning:
		return to == SyncRunCompleted || to == SyncRunError || to == SyncRunCancelled
	case SyncRunError:
		// 重试：失败任务允许重新进入 running
		return to == SyncRunRunning
	}
	return false
}

// ==================== 提示词类型 ====================

// PromptType 商品提示词槽位，固定四种
type PromptType string

const (
	PromptTypePrice    PromptType = "price"    // 议价
	PromptTypeTech     PromptType = "tech"     // 技术咨询
	PromptTypeDefault  PromptType = "default"  // 默认应答
	PromptTypeClassify PromptType = "classify" // 意图分类
)

// AllPromptTypes 固定顺序的全部槽位，ProductPrompts 四键恒全依赖它
var AllPromptTypes = []PromptType{
	PromptTypePrice, PromptTypeTech, PromptTypeDefault, PromptTypeClassify,
}

func (t PromptType) Valid() bool {
	switch t {
	case PromptTypePrice, PromptTypeTech, PromptTypeDefault, PromptTypeClassify:
		return true
	}
	return false
}

// ==================== 发货类型 ====================

// DeliveryType 虚拟商品自动发货类型
type DeliveryType string

const (
	DeliveryTypeNetdisk DeliveryType = "netdisk" // 网盘链接
	DeliveryTypeCardKey DeliveryType = "cardkey" // 卡密
	DeliveryTypeText    DeliveryType = "text"    // 固定文本
)

func (t DeliveryType) Valid() bool {
	switch t {
	case DeliveryTypeNetdisk, DeliveryTypeCardKey, DeliveryTypeText:
		return true
	}
	return false
}

// ==================== 发货结果 ====================

// DeliveryResult 单次发货结果
type DeliveryResult string

const (
	DeliverySuccess DeliveryResult = "success"
	DeliveryFailed  DeliveryResult = "failed"
)

// UnlimitedStock stock_count 为 -1 表示不限库存，发货不扣减
const UnlimitedStock = -1
