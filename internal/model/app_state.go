package model

// AppState 应用状态标记表 — 对应 app_state
// 键值对形式存放结构版本标记与一次性种子完成标记
type AppState struct {
	Key   string `gorm:"type:varchar(50);primaryKey" json:"key"`
	Value string `gorm:"type:varchar(100);not null"  json:"value"`
}

// TableName 指定表名
func (AppState) TableName() string { return "app_state" }

// 状态键
const (
	StateKeyVersion  = "schema_version"
	StateKeyDemoDone = "demo_seed_done"
)
