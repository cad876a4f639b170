package dto

// ── 考勤模块 DTO ──

// MarkSlotRequest 保存单节考勤请求
// Statuses: 学生 ID → "P"/"A"
type MarkSlotRequest struct {
	Course   string            `json:"course"`
	Semester int               `json:"semester"`
	Date     string            `json:"date"` // YYYY-MM-DD
	SlotNo   int               `json:"slot"`
	Subject  string            `json:"subject"`
	Time     string            `json:"time"`
	Statuses map[string]string `json:"statuses"`
}

// SlotResponse 单节考勤记录响应
type SlotResponse struct {
	Course   string            `json:"course"`
	Semester int               `json:"semester"`
	Date     string            `json:"date"`
	SlotNo   int               `json:"slot"`
	Subject  string            `json:"subject"`
	Time     string            `json:"time"`
	Statuses map[string]string `json:"records"`
}

// SubjectAttendance 单科出勤统计（每次查询时从原始记录重算）
type SubjectAttendance struct {
	Total      int     `json:"total"`
	Attended   int     `json:"attended"`
	Percentage float64 `json:"percentage"`
}

// AttendanceSummary 学生出勤汇总
type AttendanceSummary struct {
	TotalLectures int                          `json:"total_lectures"`
	Attended      int                          `json:"attended"`
	Percentage    float64                      `json:"percentage"`
	Subjects      map[string]SubjectAttendance `json:"subjects"`
}

// CourseAttendanceEntry 班级出勤汇总条目
type CourseAttendanceEntry struct {
	Student    StudentResponse    `json:"student"`
	Attendance *AttendanceSummary `json:"attendance"`
}
