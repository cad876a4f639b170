package model

// Student 学生表 — 对应 students
// 学号 (Roll) 全局唯一；Marks 为科目成绩 JSON 列；Remark 为成绩写入时
// 重新计算并缓存的评语字段
type Student struct {
	StudentID    string  `gorm:"type:varchar(32);primaryKey"       json:"id"`
	Roll         string  `gorm:"type:varchar(50);not null;uniqueIndex" json:"roll"`
	Name         string  `gorm:"type:varchar(100);not null"        json:"name"`
	Course       string  `gorm:"type:varchar(20);not null;index"   json:"course"`
	Semester     int     `gorm:"not null"                          json:"semester"`
	AcademicYear string  `gorm:"type:varchar(20);not null"         json:"academicYear"`
	Marks        MarkMap `gorm:"type:text;not null"                json:"marks"`
	Remark       string  `gorm:"type:varchar(255);not null;default:''" json:"remark"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
