package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ── SQLite JSON 列自定义类型 ──

// Mark 单科成绩：obtained ≤ max_marks，由 Service 层写入前校验
type Mark struct {
	Obtained int `json:"obtained"`
	MaxMarks int `json:"maxMarks"`
}

// Percentage 计算该科得分百分比（保留一位小数）
func (m Mark) Percentage() float64 {
	if m.MaxMarks <= 0 {
		return 0
	}
	return round1(float64(m.Obtained) / float64(m.MaxMarks) * 100)
}

// MarkMap 科目名 → 成绩 的 JSON 列，实现 GORM Scanner/Valuer 接口
type MarkMap map[string]Mark

// Scan 将数据库 JSON 文本解析为 MarkMap
func (m *MarkMap) Scan(src interface{}) error {
	if src == nil {
		*m = MarkMap{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("MarkMap.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*m = MarkMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Value 将 MarkMap 序列化为 JSON 文本
func (m MarkMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// StatusMap 学生 ID → 出勤状态码（"P"/"A"）的 JSON 列
type StatusMap map[string]string

// Scan 将数据库 JSON 文本解析为 StatusMap
func (s *StatusMap) Scan(src interface{}) error {
	if src == nil {
		*s = StatusMap{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StatusMap.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*s = StatusMap{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Value 将 StatusMap 序列化为 JSON 文本
func (s StatusMap) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// BaseModel 通用审计字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
