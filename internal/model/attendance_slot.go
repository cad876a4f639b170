package model

// AttendanceSlot 考勤记录表 — 对应 attendance_slots
// 一行即一条 SlotRecord：(course, semester, date, slot_no) 复合唯一键，
// 行的存在本身就是"该节已点名"的唯一信号；重复保存整体覆盖而非合并
type AttendanceSlot struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"            json:"-"`
	Course   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_slot_key,priority:1" json:"course"`
	Semester int       `gorm:"not null;uniqueIndex:idx_slot_key,priority:2"                  json:"semester"`
	Date     string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_slot_key,priority:3" json:"date"` // YYYY-MM-DD
	SlotNo   int       `gorm:"not null;uniqueIndex:idx_slot_key,priority:4"                  json:"slot"`
	Subject  string    `gorm:"type:varchar(100);not null"          json:"subject"`
	Time     string    `gorm:"type:varchar(30);not null"           json:"time"`
	Statuses StatusMap `gorm:"type:text;not null"                  json:"records"`
	BaseModel
}

// TableName 指定表名
func (AttendanceSlot) TableName() string { return "attendance_slots" }
