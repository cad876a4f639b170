package dto

// ── 课表模块 DTO ──

// TimetableSlot 课表中的一节课
type TimetableSlot struct {
	SlotNo  int    `json:"slot"`
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Type    string `json:"type"` // Lecture | Lab
}

// TimetableResponse 周课表：星期名 → 当日节次序列
type TimetableResponse struct {
	Course   string                     `json:"course"`
	Semester int                        `json:"semester"`
	Days     map[string][]TimetableSlot `json:"days"`
}
